/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"encoding/json"

	"github.com/scoir/anoncreds/pkg/failure"
)

// Schema is the attribute list published for a SchemaKey.
type Schema struct {
	DID       string   `json:"did"`
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	AttrNames []string `json:"attr_names"`
}

func (r *Schema) Key() SchemaKey {
	return SchemaKey{Name: r.Name, Version: r.Version, DID: r.DID}
}

func ParseSchema(data []byte) (*Schema, error) {
	out := &Schema{}
	err := decodeStrict(data, out, "schema")
	if err != nil {
		return nil, err
	}

	if out.DID == "" || out.Name == "" || out.Version == "" {
		return nil, failure.Structural(failure.MissingField, "schema: did, name and version are required")
	}

	if len(out.AttrNames) == 0 {
		return nil, failure.Structural(failure.MissingField, "schema: attr_names must not be empty")
	}

	seen := map[string]bool{}
	for _, a := range out.AttrNames {
		if a == "" || seen[a] {
			return nil, failure.Structural(failure.MalformedInput, "schema: attribute names must be unique and non-empty")
		}
		seen[a] = true
	}

	return out, nil
}

func (r *Schema) Serialize() ([]byte, error) {
	return json.Marshal(r)
}
