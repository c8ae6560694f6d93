/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/scoir/anoncreds/pkg/failure"
	"github.com/scoir/anoncreds/pkg/vault"
)

var masterSecretCmd = &cobra.Command{
	Use:   "mastersecret",
	Short: "Manage master secrets in the wallet",
}

var masterSecretCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Generates and stores a new master secret",
	Args:  cobra.ExactArgs(1),
	RunE:  runMasterSecretCreate,
}

var masterSecretImportCmd = &cobra.Command{
	Use:   "import <name> <decimal value>",
	Short: "Stores an existing master secret under a new name",
	Args:  cobra.ExactArgs(2),
	RunE:  runMasterSecretImport,
}

func runMasterSecretCreate(cmd *cobra.Command, args []string) error {
	v, err := vault.Open(ctx.StorageProvider())
	if err != nil {
		return err
	}

	if err = v.Create(cmd.Context(), args[0]); err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "master secret %s created\n", args[0])
	return err
}

func runMasterSecretImport(cmd *cobra.Command, args []string) error {
	ms, ok := new(big.Int).SetString(args[1], 10)
	if !ok {
		return failure.Structural(failure.MalformedInput, "master secret value must be a decimal integer")
	}

	v, err := vault.Open(ctx.StorageProvider())
	if err != nil {
		return err
	}

	if err = v.Import(cmd.Context(), args[0], ms); err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "master secret %s imported\n", args[0])
	return err
}

func init() {
	masterSecretCmd.AddCommand(masterSecretCreateCmd)
	masterSecretCmd.AddCommand(masterSecretImportCmd)
	rootCmd.AddCommand(masterSecretCmd)
}
