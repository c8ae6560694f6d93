/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/scoir/anoncreds/pkg/amqp"
	"github.com/scoir/anoncreds/pkg/amqp/rabbitmq"
	"github.com/scoir/anoncreds/pkg/anoncreds"
	"github.com/scoir/anoncreds/pkg/cl"
	"github.com/scoir/anoncreds/pkg/claimdef"
	"github.com/scoir/anoncreds/pkg/framework"
	"github.com/scoir/anoncreds/pkg/registry"
	"github.com/scoir/anoncreds/pkg/schema"
)

var claimReqCmd = &cobra.Command{
	Use:   "claimreq",
	Short: "Create and check claim requests",
}

var claimReqCreateCmd = &cobra.Command{
	Use:   "create <offer.json|->",
	Short: "Builds a claim request for a claim offer",
	Long: `Builds a blinded claim request for a claim offer using the named master secret.
Without --claimdef the definition is looked up in the wallet.`,
	Args: cobra.ExactArgs(1),
	RunE: runClaimReqCreate,
}

var claimReqVerifyCmd = &cobra.Command{
	Use:   "verify <request.json|->",
	Short: "Checks a claim request's correctness proof against the stored claim definition",
	Args:  cobra.ExactArgs(1),
	RunE:  runClaimReqVerify,
}

var claimReqListenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Verifies claim requests arriving on the AMQP queue",
	Args:  cobra.NoArgs,
	RunE:  runClaimReqListen,
}

var (
	createProver       string
	createClaimDef     string
	createMasterSecret string
	createOut          string
	createMetadataOut  string
	createStore        bool
	createPublish      bool
	createCheckSchema  bool

	// blinderOption lets alternative blinders, such as the ursa build, plug
	// into claimreq create.
	blinderOption = func(*cobra.Command) (anoncreds.Option, error) { return nil, nil }

	newPublisher = func(ac *framework.AMQPConfig) (amqp.Publisher, error) { return rabbitmq.NewPublisher(ac) }
	newListener  = func(ac *framework.AMQPConfig) (amqp.Listener, error) { return rabbitmq.NewListener(ac) }
)

func runClaimReqCreate(cmd *cobra.Command, args []string) error {
	offer, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	var opts []anoncreds.Option
	if createCheckSchema {
		reg, err := registry.Open(ctx.StorageProvider())
		if err != nil {
			return err
		}
		opts = append(opts, anoncreds.WithRegistry(reg))
	}

	bo, err := blinderOption(cmd)
	if err != nil {
		return err
	}
	if bo != nil {
		opts = append(opts, bo)
	}

	prover, err := ctx.Prover(opts...)
	if err != nil {
		return err
	}

	exec, err := ctx.Executor(prover)
	if err != nil {
		return err
	}
	defer exec.Close()

	command := anoncreds.ClaimRequestCommand{
		ProverDID:        createProver,
		OfferJSON:        string(offer),
		MasterSecretName: createMasterSecret,
		Store:            createStore,
	}

	if createClaimDef != "" {
		def, err := readInput(cmd, createClaimDef)
		if err != nil {
			return err
		}
		command.ClaimDefJSON = string(def)
	}

	f := exec.Submit(cmd.Context(), command, func(handle string, _ *anoncreds.ClaimRequestResult, err error) {
		logrus.WithField("handle", handle).WithError(err).Debug("claim request command finished")
	})

	res, err := f.Get(cmd.Context())
	if err != nil {
		return err
	}

	if createMetadataOut != "" {
		md, err := json.Marshal(res.Metadata)
		if err != nil {
			return errors.Wrap(err, "unable to serialize claim request metadata")
		}
		if err = writeOutput(cmd, createMetadataOut, md); err != nil {
			return err
		}
	}

	if createPublish {
		if err = publish(cmd.Context(), res.Request); err != nil {
			return err
		}
	}

	return writeOutput(cmd, createOut, []byte(res.JSON))
}

func publish(c context.Context, req *schema.ClaimRequest) error {
	ac, err := ctx.conf.AMQPConfig()
	if err != nil {
		return errors.Wrap(err, "invalid amqp key in configuration")
	}

	pub, err := newPublisher(ac)
	if err != nil {
		return err
	}
	defer pub.Close()

	return pub.Publish(c, req)
}

func runClaimReqVerify(cmd *cobra.Command, args []string) error {
	d, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	req, err := schema.ParseClaimRequest(d)
	if err != nil {
		return err
	}

	defs, err := claimdef.Open(ctx.StorageProvider())
	if err != nil {
		return err
	}

	if err = verify(cmd.Context(), defs, req); err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "claim request from %s verified\n", req.ProverDID)
	return err
}

func verify(c context.Context, defs *claimdef.Store, req *schema.ClaimRequest) error {
	def, err := defs.Get(c, req.IssuerDID, req.SchemaKey, schema.CLSignatureType)
	if err != nil {
		return err
	}

	return cl.VerifyClaimRequest(def, req)
}

func runClaimReqListen(cmd *cobra.Command, _ []string) error {
	ac, err := ctx.conf.AMQPConfig()
	if err != nil {
		return errors.Wrap(err, "invalid amqp key in configuration")
	}

	listener, err := newListener(ac)
	if err != nil {
		return err
	}
	defer listener.Close()

	defs, err := claimdef.Open(ctx.StorageProvider())
	if err != nil {
		return err
	}

	c, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deliveries, err := listener.Listen(c)
	if err != nil {
		return err
	}

	logrus.Info("listening for claim requests")
	for d := range deliveries {
		if d.Err != nil {
			logrus.WithError(d.Err).WithField("message_id", d.MessageID).Warn("discarding malformed claim request")
			continue
		}

		req := d.Request
		log := logrus.WithFields(logrus.Fields{
			"message_id": d.MessageID,
			"prover_did": req.ProverDID,
			"issuer_did": req.IssuerDID,
			"schema":     req.SchemaKey.String(),
		})
		if err = verify(c, defs, req); err != nil {
			log.WithError(err).Warn("claim request rejected")
			continue
		}
		log.Info("claim request verified")
	}

	if c.Err() == nil {
		return errors.New("delivery channel closed")
	}

	logrus.Info("shutdown")
	return nil
}

func init() {
	claimReqCreateCmd.Flags().StringVar(&createProver, "prover", "", "prover DID")
	claimReqCreateCmd.Flags().StringVar(&createClaimDef, "claimdef", "", "claim definition file (default: look up in the wallet)")
	claimReqCreateCmd.Flags().StringVar(&createMasterSecret, "master-secret", "", "name of the master secret to blind")
	claimReqCreateCmd.Flags().StringVar(&createOut, "out", "", "claim request output file (default stdout)")
	claimReqCreateCmd.Flags().StringVar(&createMetadataOut, "metadata-out", "", "write the prover's blinding metadata to this file")
	claimReqCreateCmd.Flags().BoolVar(&createStore, "store", false, "keep the blinding metadata in the wallet")
	claimReqCreateCmd.Flags().BoolVar(&createPublish, "publish", false, "publish the claim request to the configured AMQP queue")
	claimReqCreateCmd.Flags().BoolVar(&createCheckSchema, "check-schema", false, "require the definition to cover every attribute of the registered schema")
	_ = claimReqCreateCmd.MarkFlagRequired("prover")
	_ = claimReqCreateCmd.MarkFlagRequired("master-secret")

	claimReqCmd.AddCommand(claimReqCreateCmd)
	claimReqCmd.AddCommand(claimReqVerifyCmd)
	claimReqCmd.AddCommand(claimReqListenCmd)
	rootCmd.AddCommand(claimReqCmd)
}
