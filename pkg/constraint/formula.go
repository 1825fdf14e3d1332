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
package constraint

import (
	"math/big"
	"strings"
)

// Formula is a quantifier-free boolean combination of atomic polynomial
// constraints.  Formulas are acyclic trees owned by value; they are never
// mutated after construction.
type Formula interface {
	isFormula()
	String() string
}

func (Atom) isFormula() {}

// Truth is the constant true or false formula.
type Truth struct {
	Value bool
}

func (Truth) isFormula() {}

func (t Truth) String() string {
	if t.Value {
		return "true"
	}
	//
	return "false"
}

// And is the conjunction of zero or more sub-formulas (empty being true).
type And struct {
	Args []Formula
}

func (And) isFormula() {}

func (f And) String() string { return nary("and", f.Args) }

// Or is the disjunction of zero or more sub-formulas (empty being false).
type Or struct {
	Args []Formula
}

func (Or) isFormula() {}

func (f Or) String() string { return nary("or", f.Args) }

// Not is the negation of a sub-formula.
type Not struct {
	Arg Formula
}

func (Not) isFormula() {}

func (f Not) String() string {
	return "(not " + f.Arg.String() + ")"
}

// NewAnd conjoins the given formulas.
func NewAnd(args ...Formula) Formula {
	if len(args) == 1 {
		return args[0]
	}
	//
	return And{args}
}

// NewOr disjoins the given formulas.
func NewOr(args ...Formula) Formula {
	if len(args) == 1 {
		return args[0]
	}
	//
	return Or{args}
}

// EvalFormula evaluates a formula under environments for the quantified and
// unknown/auxiliary variables.
func EvalFormula(f Formula, qenv func(string) *big.Rat, uenv func(string) *big.Rat) bool {
	switch f := f.(type) {
	case Atom:
		return f.Eval(qenv, uenv)
	case Truth:
		return f.Value
	case And:
		for _, arg := range f.Args {
			if !EvalFormula(arg, qenv, uenv) {
				return false
			}
		}
		//
		return true
	case Or:
		for _, arg := range f.Args {
			if EvalFormula(arg, qenv, uenv) {
				return true
			}
		}
		//
		return false
	case Not:
		return !EvalFormula(f.Arg, qenv, uenv)
	default:
		panic("unreachable")
	}
}

// Atoms appends every atom occurring in the formula to the given slice.
func Atoms(f Formula, atoms []Atom) []Atom {
	switch f := f.(type) {
	case Atom:
		return append(atoms, f)
	case Truth:
		return atoms
	case And:
		for _, arg := range f.Args {
			atoms = Atoms(arg, atoms)
		}
		//
		return atoms
	case Or:
		for _, arg := range f.Args {
			atoms = Atoms(arg, atoms)
		}
		//
		return atoms
	case Not:
		return Atoms(f.Arg, atoms)
	default:
		panic("unreachable")
	}
}

func nary(op string, args []Formula) string {
	strs := make([]string, len(args)+1)
	strs[0] = op
	//
	for i, arg := range args {
		strs[i+1] = arg.String()
	}
	//
	return "(" + strings.Join(strs, " ") + ")"
}
