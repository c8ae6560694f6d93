/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"io"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// readInput reads a file argument, "-" meaning stdin.
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		d, err := ioutil.ReadAll(cmd.InOrStdin())
		return d, errors.Wrap(err, "unable to read stdin")
	}

	d, err := ioutil.ReadFile(name)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", name)
	}

	return d, nil
}

// writeOutput writes to a file, or to the command's output when name is empty.
func writeOutput(cmd *cobra.Command, name string, d []byte) error {
	var w io.Writer = cmd.OutOrStdout()
	if name != "" {
		f, err := os.Create(name)
		if err != nil {
			return errors.Wrapf(err, "unable to create %s", name)
		}
		defer f.Close()
		w = f
	}

	if _, err := w.Write(append(d, '\n')); err != nil {
		return errors.Wrap(err, "unable to write output")
	}

	return nil
}
