/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/scoir/anoncreds/pkg/cl"
	"github.com/scoir/anoncreds/pkg/claimdef"
	"github.com/scoir/anoncreds/pkg/schema"
)

var claimDefCmd = &cobra.Command{
	Use:   "claimdef",
	Short: "Manage claim definitions",
}

var claimDefPutCmd = &cobra.Command{
	Use:   "put <claimdef.json|->",
	Short: "Stores a claim definition for later claim requests",
	Args:  cobra.ExactArgs(1),
	RunE:  runClaimDefPut,
}

var claimDefGenerateCmd = &cobra.Command{
	Use:   "generate <schema.json|->",
	Short: "Generates a CL claim definition for a schema (issuer and test tooling)",
	Args:  cobra.ExactArgs(1),
	RunE:  runClaimDefGenerate,
}

var (
	generateIssuer     string
	generateBits       int
	generateOut        string
	generatePrivateOut string
	generateStore      bool
)

func runClaimDefPut(cmd *cobra.Command, args []string) error {
	d, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	def, err := schema.ParseClaimDefinition(d)
	if err != nil {
		return err
	}

	store, err := claimdef.Open(ctx.StorageProvider())
	if err != nil {
		return err
	}

	if err = store.Put(cmd.Context(), def); err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "claim definition %s stored\n", def.ID())
	return err
}

func runClaimDefGenerate(cmd *cobra.Command, args []string) error {
	d, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	s, err := schema.ParseSchema(d)
	if err != nil {
		return err
	}

	issuer := generateIssuer
	if issuer == "" {
		issuer = s.DID
	}

	gen := cl.NewCredentialDefinition(generateBits)
	gen.AddSchemaFields(s.AttrNames...)
	if err = gen.Finalize(); err != nil {
		return errors.Wrap(err, "unable to generate claim definition keys")
	}

	pk, err := gen.PublicKey()
	if err != nil {
		return err
	}

	def := &schema.ClaimDefinition{
		IssuerDID:     issuer,
		SchemaKey:     s.Key(),
		SignatureType: schema.CLSignatureType,
		Data:          schema.ClaimDefData{Primary: pk.ToSchema()},
	}

	out, err := def.Serialize()
	if err != nil {
		return err
	}

	if generatePrivateOut != "" {
		sk, err := gen.PrivateKey()
		if err != nil {
			return err
		}

		skd, err := json.Marshal(sk)
		if err != nil {
			return errors.Wrap(err, "unable to serialize private key")
		}

		if err = writeOutput(cmd, generatePrivateOut, skd); err != nil {
			return err
		}
	}

	if generateStore {
		store, err := claimdef.Open(ctx.StorageProvider())
		if err != nil {
			return err
		}
		if err = store.Put(cmd.Context(), def); err != nil {
			return err
		}
	}

	return writeOutput(cmd, generateOut, []byte(out))
}

func init() {
	claimDefGenerateCmd.Flags().StringVar(&generateIssuer, "issuer", "", "issuer DID (defaults to the schema DID)")
	claimDefGenerateCmd.Flags().IntVar(&generateBits, "bits", cl.MinModulusBits, "modulus size in bits")
	claimDefGenerateCmd.Flags().StringVar(&generateOut, "out", "", "claim definition output file (default stdout)")
	claimDefGenerateCmd.Flags().StringVar(&generatePrivateOut, "private-out", "", "write the private key factors to this file")
	claimDefGenerateCmd.Flags().BoolVar(&generateStore, "store", false, "also store the definition in the wallet")

	claimDefCmd.AddCommand(claimDefPutCmd)
	claimDefCmd.AddCommand(claimDefGenerateCmd)
	rootCmd.AddCommand(claimDefCmd)
}
