/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/scoir/anoncreds/pkg/failure"
)

// decodeStrict unmarshals exactly one JSON value into v, rejecting unknown
// fields and trailing data.
func decodeStrict(data []byte, v interface{}, what string) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return failure.Structural(failure.MalformedInput, "%s is empty", what)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return failure.Structural(failure.MalformedInput, "invalid %s JSON: %v", what, err)
	}

	if _, err := dec.Token(); err != io.EOF {
		return failure.Structural(failure.MalformedInput, "unexpected trailing data after %s", what)
	}

	return nil
}

func required(field, what string, s *string) (string, error) {
	if s == nil || *s == "" {
		return "", failure.Structural(failure.MissingField, "%s: required field %q missing", what, field)
	}
	return *s, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
