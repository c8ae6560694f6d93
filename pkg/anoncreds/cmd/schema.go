/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scoir/anoncreds/pkg/registry"
	"github.com/scoir/anoncreds/pkg/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Manage the local schema registry",
}

var schemaPutCmd = &cobra.Command{
	Use:   "put <schema.json|->",
	Short: "Registers a schema so claim requests check definitions against its attributes",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchemaPut,
}

func runSchemaPut(cmd *cobra.Command, args []string) error {
	d, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	s, err := schema.ParseSchema(d)
	if err != nil {
		return err
	}

	reg, err := registry.Open(ctx.StorageProvider())
	if err != nil {
		return err
	}

	if err = reg.Put(cmd.Context(), s); err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema %s registered\n", s.Key())
	return err
}

func init() {
	schemaCmd.AddCommand(schemaPutCmd)
	rootCmd.AddCommand(schemaCmd)
}
