//go:build ursa
// +build ursa

/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/scoir/anoncreds/pkg/anoncreds"
	"github.com/scoir/anoncreds/pkg/cl"
)

var createUrsaKeyProof string

func init() {
	claimReqCreateCmd.Flags().StringVar(&createUrsaKeyProof, "ursa-key-proof", "",
		"issuer key correctness proof file; blinds with libursa instead of the built in blinder")
	blinderOption = ursaBlinderOption
}

func ursaBlinderOption(cmd *cobra.Command) (anoncreds.Option, error) {
	if createUrsaKeyProof == "" {
		return nil, nil
	}

	proof, err := readInput(cmd, createUrsaKeyProof)
	if err != nil {
		return nil, err
	}

	return anoncreds.WithBlinder(cl.NewUrsaBlinder(proof)), nil
}
