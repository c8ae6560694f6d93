/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/scoir/anoncreds/pkg/anoncreds"
	"github.com/scoir/anoncreds/pkg/cl"
	"github.com/scoir/anoncreds/pkg/config"
	"github.com/scoir/anoncreds/pkg/datastore"
	"github.com/scoir/anoncreds/pkg/datastore/manager"
)

var (
	cfgFile        string
	logLevel       string
	ctx            *Provider
	configProvider config.Provider
)

var rootCmd = &cobra.Command{
	Use:   "anoncreds",
	Short: "Prover side anoncreds claim request tooling.",
	Long: `Manages master secrets, claim definitions and schemas in a local wallet
and builds blinded claim requests for issuer claim offers.`,
	SilenceUsage: true,
}

// Provider wires configuration to the prover's collaborators.
type Provider struct {
	conf   config.Config
	mgr    *manager.DataProviderManager
	sp     datastore.Provider
	oracle anoncreds.Oracle
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initLogging, initConfig)
	configProvider = &config.ViperConfigProvider{
		DefaultConfigName: "anoncreds-config",
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/anoncreds/anoncreds-config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "logrus log level")
}

func initLogging() {
	lvl, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.WithError(err).Warn("unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if ctx != nil {
		return
	}

	conf := configProvider.Load(cfgFile).
		WithDatastore().
		WithAMQP().
		WithExecutor()

	dc, err := conf.DataStore()
	if err != nil {
		logrus.WithError(err).Fatal("invalid datastore key in configuration")
	}

	ctx = &Provider{
		conf:   conf,
		mgr:    manager.NewDataProviderManager(dc),
		oracle: &cl.CryptoOracle{},
	}
}

func (r *Provider) StorageProvider() datastore.Provider {
	if r.sp != nil {
		return r.sp
	}

	sp, err := r.mgr.DefaultStoreProvider()
	if err != nil {
		logrus.WithError(err).Fatal("unable to open datastore")
	}
	r.sp = sp

	return sp
}

func (r *Provider) Oracle() anoncreds.Oracle {
	return r.oracle
}

func (r *Provider) Prover(opts ...anoncreds.Option) (*anoncreds.Prover, error) {
	p, err := anoncreds.New(r, opts...)
	return p, errors.Wrap(err, "unable to create prover")
}

func (r *Provider) Executor(p *anoncreds.Prover) (*anoncreds.Executor, error) {
	ec, err := r.conf.Executor()
	if err != nil {
		return nil, errors.Wrap(err, "invalid executor key in configuration")
	}

	return anoncreds.NewExecutor(p, ec), nil
}
