/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package did

import (
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const prefix = "did:"

type DIDValue struct {
	DID    string
	Method string
}

func (r *DIDValue) String() string {
	if r.Method == "" {
		return fmt.Sprintf("did:%s", r.DID)
	}
	return fmt.Sprintf("did:%s:%s", r.Method, r.DID)
}

// Parse accepts either a bare indy identifier ("NcYxiDXkpYi6ov5FcYDi1e")
// or a qualified one ("did:sov:NcYxiDXkpYi6ov5FcYDi1e"). The method
// specific part must be base58.
func Parse(s string) (*DIDValue, error) {
	if s == "" {
		return nil, errors.New("DID is empty")
	}

	out := &DIDValue{DID: s}
	if strings.HasPrefix(s, prefix) {
		parts := strings.SplitN(strings.TrimPrefix(s, prefix), ":", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, errors.Errorf("invalid qualified DID %q", s)
		}
		out.Method, out.DID = parts[0], parts[1]
	}

	b, err := base58.Decode(out.DID)
	if err != nil || len(b) == 0 {
		return nil, errors.Errorf("DID %q is not base58", s)
	}

	return out, nil
}

// Unqualified strips any did:method: prefix.
func Unqualified(s string) string {
	v, err := Parse(s)
	if err != nil {
		return s
	}
	return v.DID
}
