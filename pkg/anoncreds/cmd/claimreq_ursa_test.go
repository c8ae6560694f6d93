//go:build ursa
// +build ursa

package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scoir/anoncreds/pkg/failure"
	"github.com/scoir/anoncreds/pkg/internal/testutil"
)

func TestClaimRequestCreateWithUrsa(t *testing.T) {
	ctx = nil
	dir := t.TempDir()
	defer func() { createUrsaKeyProof = "" }()

	defFile := writeFile(t, dir, "claimdef.json", testutil.ClaimDefinitionJSON(testutil.IssuerDID, 1))
	offerFile := writeFile(t, dir, "offer.json", testutil.ClaimOffer(testutil.IssuerDID, 1))
	proofFile := writeFile(t, dir, "key_proof.json", `{"c":"not a proof"}`)

	_, err := execute(t, "mastersecret", "create", testutil.MasterSecretName)
	require.NoError(t, err)

	t.Run("no proof keeps the built in blinder", func(t *testing.T) {
		createUrsaKeyProof = ""
		opt, err := ursaBlinderOption(claimReqCreateCmd)
		require.NoError(t, err)
		require.Nil(t, opt)
	})

	t.Run("missing proof file", func(t *testing.T) {
		_, err := execute(t, "claimreq", "create", offerFile,
			"--prover", testutil.ProverDID,
			"--master-secret", testutil.MasterSecretName,
			"--claimdef", defFile,
			"--ursa-key-proof", dir+"/missing.json")
		require.Error(t, err)
	})

	t.Run("ursa rejects the proof", func(t *testing.T) {
		_, err := execute(t, "claimreq", "create", offerFile,
			"--prover", testutil.ProverDID,
			"--master-secret", testutil.MasterSecretName,
			"--claimdef", defFile,
			"--ursa-key-proof", proofFile)
		require.True(t, failure.Is(err, failure.CryptoInvalid))
	})
}
