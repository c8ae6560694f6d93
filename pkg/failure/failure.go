/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package failure holds the closed error taxonomy surfaced by the claim
// request pipeline. Every error leaving the core carries exactly one
// Category; callers branch on the category, never on message text.
package failure

import (
	"fmt"

	"github.com/pkg/errors"
)

type Category int

const (
	// StructuralInvalid covers malformed offers or definitions and any issuer or schema mismatch.
	StructuralInvalid Category = iota + 1
	// NotFound covers a missing master secret, claim definition or schema.
	NotFound
	// CryptoInvalid covers degenerate or malformed public key parameters.
	CryptoInvalid
	// StorageError is an I/O failure surfaced by a backing store.
	StorageError
)

func (c Category) String() string {
	switch c {
	case StructuralInvalid:
		return "StructuralInvalid"
	case NotFound:
		return "NotFound"
	case CryptoInvalid:
		return "CryptoInvalid"
	case StorageError:
		return "StorageError"
	}

	return fmt.Sprintf("Category(%d)", int(c))
}

// Code maps a category onto the numeric error codes used by indy wallets
// and bindings.
func (c Category) Code() int {
	switch c {
	case StructuralInvalid:
		return 113
	case NotFound:
		return 212
	case CryptoInvalid:
		return 111
	case StorageError:
		return 114
	}

	return 100
}

type Reason string

const (
	MalformedInput       Reason = "malformed_input"
	MissingField         Reason = "missing_field"
	IssuerMismatch       Reason = "issuer_mismatch"
	SchemaMismatch       Reason = "schema_mismatch"
	UnsupportedSignature Reason = "unsupported_signature"
	AttributeMismatch    Reason = "attribute_mismatch"
	DuplicateName        Reason = "duplicate_name"
	InvalidParameter     Reason = "invalid_parameter"
)

// Error is a categorised failure. Reason refines StructuralInvalid for
// diagnostics only; the category is the public contract.
type Error struct {
	Category Category
	Reason   Reason
	msg      string
	cause    error
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.msg
	}

	if e.msg == "" {
		return e.cause.Error()
	}

	return e.msg + ": " + e.cause.Error()
}

func (e *Error) Cause() error {
	return e.cause
}

func (e *Error) Unwrap() error {
	return e.cause
}

func New(c Category, msg string) error {
	return &Error{Category: c, msg: msg}
}

func Newf(c Category, format string, args ...interface{}) error {
	return &Error{Category: c, msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a category to err. A nil err yields nil. If err already
// carries a category it is preserved and only context is added.
func Wrap(c Category, err error, msg string) error {
	if err == nil {
		return nil
	}

	if _, ok := CategoryOf(err); ok {
		return errors.Wrap(err, msg)
	}

	return &Error{Category: c, msg: msg, cause: err}
}

func Wrapf(c Category, err error, format string, args ...interface{}) error {
	return Wrap(c, err, fmt.Sprintf(format, args...))
}

// Structured builds an error carrying both a category and a diagnostic reason.
func Structured(c Category, r Reason, format string, args ...interface{}) error {
	return &Error{Category: c, Reason: r, msg: fmt.Sprintf(format, args...)}
}

// Structural is shorthand for a StructuralInvalid error with a reason.
func Structural(r Reason, format string, args ...interface{}) error {
	return Structured(StructuralInvalid, r, format, args...)
}

func as(err error) (*Error, bool) {
	for err != nil {
		if fe, ok := err.(*Error); ok {
			return fe, true
		}

		switch x := err.(type) {
		case interface{ Unwrap() error }:
			err = x.Unwrap()
		case interface{ Cause() error }:
			err = x.Cause()
		default:
			return nil, false
		}
	}

	return nil, false
}

// CategoryOf returns the category of the outermost categorised error in
// the chain.
func CategoryOf(err error) (Category, bool) {
	fe, ok := as(err)
	if !ok {
		return 0, false
	}

	return fe.Category, true
}

func ReasonOf(err error) Reason {
	fe, ok := as(err)
	if !ok {
		return ""
	}

	return fe.Reason
}

func Is(err error, c Category) bool {
	got, ok := CategoryOf(err)
	return ok && got == c
}
