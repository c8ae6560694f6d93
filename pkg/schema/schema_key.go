/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"strings"

	"github.com/scoir/anoncreds/pkg/did"
)

const (
	DELIMITER = ":"
	MARKER    = "2"
)

// SchemaKey identifies a schema by issuer, name and version.
type SchemaKey struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	DID     string `json:"did"`
}

type rawSchemaKey struct {
	Name    *string `json:"name"`
	Version *string `json:"version"`
	DID     *string `json:"did"`
}

// String renders the ledger style schema id, did:2:name:version, with
// the issuer DID in unqualified form.
func (r SchemaKey) String() string {
	return strings.Join([]string{did.Unqualified(r.DID), MARKER, r.Name, r.Version}, DELIMITER)
}

// Equal treats did:sov:X and X as the same issuer.
func (r SchemaKey) Equal(o SchemaKey) bool {
	return r.Name == o.Name && r.Version == o.Version && did.Unqualified(r.DID) == did.Unqualified(o.DID)
}

func (r *rawSchemaKey) build(what string) (SchemaKey, error) {
	var (
		out SchemaKey
		err error
	)

	if out.Name, err = required("schema_key.name", what, r.Name); err != nil {
		return out, err
	}
	if out.Version, err = required("schema_key.version", what, r.Version); err != nil {
		return out, err
	}
	if out.DID, err = required("schema_key.did", what, r.DID); err != nil {
		return out, err
	}

	return out, nil
}
