/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package testutil holds shared fixtures: two 2048 bit CL primary keys
// for the gvt schema (age, height, name, sex) and the JSON templates the
// claim request tests are written against.
package testutil

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/scoir/anoncreds/pkg/schema"
)

const (
	IssuerDID        = "NcYxiDXkpYi6ov5FcYDi1e"
	OtherIssuerDID   = "acWziYqKpYi6ov5FcYDi1e3"
	ProverDID        = "CnEDk9HrMnmiHXEV1WFgbVCRteYnPqsJwrTdcZaNhFVW"
	MasterSecretName = "master_secret_name"

	// ClaimOfferTemplate takes the issuer DID and the schema major version.
	ClaimOfferTemplate = `{"issuer_did":"%s","schema_key":{"name":"gvt","version":"%d.0","did":"%s"}}`
)

//go:embed testdata/*.json
var testdata embed.FS

var GVTAttrs = []string{"age", "height", "name", "sex"}

// PrimaryKey returns fixture key 1 or 2.
func PrimaryKey(i int) *schema.PrimaryPublicKey {
	d, err := testdata.ReadFile(fmt.Sprintf("testdata/gvt_primary_key_%d.json", i))
	if err != nil {
		panic(err)
	}

	pk := &schema.PrimaryPublicKey{}
	if err = json.Unmarshal(d, pk); err != nil {
		panic(err)
	}

	return pk
}

func ClaimOffer(issuerDID string, version int) string {
	return fmt.Sprintf(ClaimOfferTemplate, issuerDID, version, IssuerDID)
}

// ClaimDefinition builds a gvt version 1.0 definition for issuerDID using
// fixture key i.
func ClaimDefinition(issuerDID string, i int) *schema.ClaimDefinition {
	return &schema.ClaimDefinition{
		IssuerDID:     issuerDID,
		SchemaKey:     GVTSchemaKey(1),
		SignatureType: schema.CLSignatureType,
		Data:          schema.ClaimDefData{Primary: PrimaryKey(i)},
	}
}

func ClaimDefinitionJSON(issuerDID string, i int) string {
	d, err := json.Marshal(ClaimDefinition(issuerDID, i))
	if err != nil {
		panic(err)
	}
	return string(d)
}

func GVTSchemaKey(version int) schema.SchemaKey {
	return schema.SchemaKey{Name: "gvt", Version: fmt.Sprintf("%d.0", version), DID: IssuerDID}
}

func GVTSchema() *schema.Schema {
	return &schema.Schema{DID: IssuerDID, Name: "gvt", Version: "1.0", AttrNames: GVTAttrs}
}
