// Copyright PolyHorn Contributors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package solver

import (
	"context"
	"fmt"
	"math/big"
)

// Verdict of an oracle on an existential constraint system.
type Verdict uint8

const (
	// Unknown indicates the oracle could not decide the system.
	Unknown Verdict = iota
	// Sat indicates the system is satisfiable, and a model is available.
	Sat
	// Unsat indicates the system is unsatisfiable.
	Unsat
)

func (v Verdict) String() string {
	switch v {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	default:
		return "unknown"
	}
}

// Model assigns exact rational values to variables by name.
type Model map[string]*big.Rat

// Result of one oracle invocation.
type Result struct {
	// Verdict on the submitted script.
	Verdict Verdict
	// Values assigned to the requested variables; only meaningful when the
	// verdict is Sat.
	Values Model
	// Core lists the names of the named assertions in the unsatisfiable
	// core, when one was requested and the verdict is Unsat.
	Core []string
}

// Oracle decides SMT-LIB scripts.  Implementations must be safe for
// sequential reuse; concurrent use is not required.
type Oracle interface {
	// Solve submits a script and interprets the response.  Errors are
	// transport failures (missing binary, crash, timeout), never logical
	// verdicts.
	Solve(ctx context.Context, script *Script) (Result, error)
}

// ErrorKind classifies oracle transport failures.
type ErrorKind uint8

const (
	// ErrUnavailable indicates no usable solver binary was found.
	ErrUnavailable ErrorKind = iota
	// ErrTimeout indicates the solver exceeded its deadline.
	ErrTimeout
	// ErrCrashed indicates the solver exited abnormally or produced
	// unintelligible output.
	ErrCrashed
)

// OracleError wraps a transport failure with its classification.
type OracleError struct {
	Kind   ErrorKind
	Solver string
	Err    error
}

func (e *OracleError) Error() string {
	var kind string
	//
	switch e.Kind {
	case ErrUnavailable:
		kind = "unavailable"
	case ErrTimeout:
		kind = "timed out"
	default:
		kind = "crashed"
	}
	//
	return fmt.Sprintf("solver %s %s: %v", e.Solver, kind, e.Err)
}

func (e *OracleError) Unwrap() error {
	return e.Err
}
