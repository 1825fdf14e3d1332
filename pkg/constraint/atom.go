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

	"github.com/polyhorn/go-polyhorn/pkg/poly"
)

// Relation describes how a polynomial relates to zero in an atomic
// constraint.  Only the four canonical relations are representable; "p < 0"
// and "p <= 0" are normalised on construction by negating the polynomial.
type Relation uint8

const (
	// GT represents "p > 0".
	GT Relation = iota
	// GE represents "p >= 0".
	GE
	// EQ represents "p = 0".
	EQ
	// NE represents "p != 0".
	NE
)

func (r Relation) String() string {
	switch r {
	case GT:
		return ">"
	case GE:
		return ">="
	case EQ:
		return "="
	default:
		return "!="
	}
}

// Atom is an atomic polynomial constraint "p ▷ 0".
type Atom struct {
	Poly poly.Polynomial
	Rel  Relation
}

// GtZero constructs the atom "p > 0".
func GtZero(p poly.Polynomial) Atom { return Atom{p, GT} }

// GeZero constructs the atom "p >= 0".
func GeZero(p poly.Polynomial) Atom { return Atom{p, GE} }

// EqZero constructs the atom "p = 0".
func EqZero(p poly.Polynomial) Atom { return Atom{p, EQ} }

// NeZero constructs the atom "p != 0".
func NeZero(p poly.Polynomial) Atom { return Atom{p, NE} }

// IsStrict checks whether this atom is a strict inequality.
func (a Atom) IsStrict() bool {
	return a.Rel == GT
}

// Negate returns the logical negation of this atom, flipping strictness
// across the inequality pair and toggling (dis)equality:
//
//	¬(p > 0)  =  -p >= 0
//	¬(p >= 0) =  -p > 0
//	¬(p = 0)  =   p != 0
//	¬(p != 0) =   p = 0
func (a Atom) Negate() Atom {
	switch a.Rel {
	case GT:
		return Atom{a.Poly.Neg(), GE}
	case GE:
		return Atom{a.Poly.Neg(), GT}
	case EQ:
		return Atom{a.Poly, NE}
	default:
		return Atom{a.Poly, EQ}
	}
}

// Eval evaluates this atom under environments for the quantified and
// unknown/auxiliary variables.
func (a Atom) Eval(qenv func(string) *big.Rat, uenv func(string) *big.Rat) bool {
	return holds(a.Poly.Eval(qenv, uenv).Sign(), a.Rel)
}

func holds(sign int, rel Relation) bool {
	switch rel {
	case GT:
		return sign > 0
	case GE:
		return sign >= 0
	case EQ:
		return sign == 0
	default:
		return sign != 0
	}
}

func (a Atom) String() string {
	return a.Poly.String() + a.Rel.String() + "0"
}
