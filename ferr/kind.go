// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ferr implements the solver error taxonomy: a small
// sentinel Kind wrapped by gosl/chk-style formatted errors, so callers can
// branch on errors.Is/errors.As at outer-iteration boundaries while keeping
// a single wrapped-string error idiom for the message itself.
package ferr

import (
	"errors"
	"fmt"

	"github.com/cpmech/gosl/chk"
)

// Kind is one of the behavioral error categories the outer loop branches on.
type Kind int

const (
	// InputInvalid: mesh topology or config keys are malformed. Abort before
	// iteration.
	InputInvalid Kind = iota
	// GeometryDegenerate: a dual volume is non-positive or a face normal is
	// the zero vector. Abort.
	GeometryDegenerate
	// NumericNonAdmissible: a candidate update yields negative density or
	// pressure. Cut back CFL and retry; abort if it recurs.
	NumericNonAdmissible
	// LinearSolverDiverged: the Krylov solve stagnated or blew up. Cut back
	// CFL and retry.
	LinearSolverDiverged
	// Diverged: CFL collapsed below its floor, or a residual went NaN.
	// Terminate the run.
	Diverged
)

func (k Kind) String() string {
	switch k {
	case InputInvalid:
		return "InputInvalid"
	case GeometryDegenerate:
		return "GeometryDegenerate"
	case NumericNonAdmissible:
		return "NumericNonAdmissible"
	case LinearSolverDiverged:
		return "LinearSolverDiverged"
	case Diverged:
		return "Diverged"
	}
	return "Unknown"
}

// flowError pairs a Kind with a formatted diagnostic message, built with
// gosl/chk so the message style matches the rest of the wired stack.
type flowError struct {
	kind Kind
	msg  string
}

func (e *flowError) Error() string { return fmt.Sprintf("%s: %s", e.kind, e.msg) }

// Is supports errors.Is(err, SomeKind) via a sentinel comparison against the
// Kind value boxed as an error through New(kind, "").
func (e *flowError) Is(target error) bool {
	var other *flowError
	if errors.As(target, &other) {
		return other.kind == e.kind
	}
	return false
}

// New builds a wrapped error of the given Kind using a
// chk.Err-style formatted message.
func New(kind Kind, format string, args ...interface{}) error {
	return &flowError{kind: kind, msg: chk.Err(format, args...).Error()}
}

// Sentinel returns a zero-message error usable as the target of errors.Is
// for a given Kind, e.g. errors.Is(err, ferr.Sentinel(ferr.Diverged)).
func Sentinel(kind Kind) error {
	return &flowError{kind: kind}
}

// KindOf extracts the Kind from err, returning ok=false if err was not
// produced by this package.
func KindOf(err error) (Kind, bool) {
	var fe *flowError
	if errors.As(err, &fe) {
		return fe.kind, true
	}
	return 0, false
}
