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
package poly

import (
	"math/big"
	"slices"
	"strings"
)

type term struct {
	mono  Monomial
	coeff Expr
}

// Polynomial is a mapping from monomials (over quantified variables) to
// coefficient expressions (over unknown and auxiliary variables), held as a
// normalised term list: monomials are distinct and sorted, coefficients are
// non-zero.  Two polynomials are identically equal over the quantified
// variables iff their coefficient expressions match monomial by monomial.
// Polynomials are immutable; arithmetic always produces fresh values.
type Polynomial struct {
	terms []term
}

// ZeroPoly returns the zero polynomial.
func ZeroPoly() Polynomial {
	return Polynomial{nil}
}

// NewConstPoly lifts a coefficient expression into a polynomial via the
// constant monomial.
func NewConstPoly(coeff Expr) Polynomial {
	return NewTermPoly(coeff, UnitMonomial())
}

// NewVarPoly returns the polynomial consisting of a single quantified
// variable.
func NewVarPoly(name string) Polynomial {
	return NewTermPoly(One(), VarMonomial(name))
}

// NewTermPoly returns the single-term polynomial coeff*mono.
func NewTermPoly(coeff Expr, mono Monomial) Polynomial {
	if coeff.IsZero() {
		return ZeroPoly()
	}
	//
	return Polynomial{[]term{{mono, coeff}}}
}

// Len returns the number of (non-zero) terms in this polynomial.
func (p Polynomial) Len() uint {
	return uint(len(p.terms))
}

// Term returns the ith monomial and its coefficient expression.
func (p Polynomial) Term(i uint) (Monomial, Expr) {
	return p.terms[i].mono, p.terms[i].coeff
}

// IsZero checks whether this is the zero polynomial.
func (p Polynomial) IsZero() bool {
	return len(p.terms) == 0
}

// Constant checks whether this polynomial has no quantified-variable
// monomials and, if so, returns its constant-monomial coefficient.
func (p Polynomial) Constant() (Expr, bool) {
	switch {
	case len(p.terms) == 0:
		return Zero(), true
	case len(p.terms) == 1 && p.terms[0].mono.IsUnit():
		return p.terms[0].coeff, true
	}
	//
	return Expr{}, false
}

// Degree returns the maximum total degree over the quantified variables.
func (p Polynomial) Degree() uint {
	var deg uint
	//
	for _, t := range p.terms {
		deg = max(deg, t.mono.Degree())
	}
	//
	return deg
}

// IsAffine checks whether every monomial has total degree at most one.
func (p Polynomial) IsAffine() bool {
	return p.Degree() <= 1
}

// Add returns the sum of two polynomials.
func (p Polynomial) Add(o Polynomial) Polynomial {
	return revise(slices.Concat(p.terms, o.terms))
}

// Sub returns the difference of two polynomials.
func (p Polynomial) Sub(o Polynomial) Polynomial {
	return p.Add(o.Neg())
}

// Neg returns the negation of this polynomial.
func (p Polynomial) Neg() Polynomial {
	terms := make([]term, len(p.terms))
	//
	for i, t := range p.terms {
		terms[i] = term{t.mono, t.coeff.Neg()}
	}
	//
	return Polynomial{terms}
}

// Mul returns the product of two polynomials, convolving monomial mappings
// and multiplying the coefficient expressions of matching products.  The
// degree of the result is at most the sum of the argument degrees.
func (p Polynomial) Mul(o Polynomial) Polynomial {
	var terms []term
	//
	for _, l := range p.terms {
		for _, r := range o.terms {
			terms = append(terms, term{l.mono.Mul(r.mono), l.coeff.Mul(r.coeff)})
		}
	}
	//
	return revise(terms)
}

// Scale multiplies every coefficient expression by the given expression.
func (p Polynomial) Scale(coeff Expr) Polynomial {
	return p.Mul(NewConstPoly(coeff))
}

// Substitute replaces a quantified variable with a rational constant,
// folding the constant into the affected coefficient expressions.
func (p Polynomial) Substitute(name string, val *big.Rat) Polynomial {
	terms := make([]term, len(p.terms))
	//
	for i, t := range p.terms {
		mono, exp := t.mono.without(name)
		coeff := t.coeff
		//
		for range exp {
			coeff = coeff.Scale(val)
		}
		//
		terms[i] = term{mono, coeff}
	}
	//
	return revise(terms)
}

// Coefficients returns the coefficient expression of every monomial, in
// monomial order.  This is the hook used by the theorem encoders for
// coefficient matching.
func (p Polynomial) Coefficients() []Expr {
	coeffs := make([]Expr, len(p.terms))
	//
	for i, t := range p.terms {
		coeffs[i] = t.coeff
	}
	//
	return coeffs
}

// CoefficientOf returns the coefficient expression of the given monomial,
// with absent monomials having implicit zero coefficient.
func (p Polynomial) CoefficientOf(mono Monomial) Expr {
	for _, t := range p.terms {
		if t.mono.Equal(mono) {
			return t.coeff
		}
	}
	//
	return Zero()
}

// Monomials returns every monomial with a non-zero coefficient, in order.
func (p Polynomial) Monomials() []Monomial {
	monos := make([]Monomial, len(p.terms))
	//
	for i, t := range p.terms {
		monos[i] = t.mono
	}
	//
	return monos
}

// Equal checks whether two polynomials have identical coefficient
// expressions monomial by monomial.
func (p Polynomial) Equal(o Polynomial) bool {
	if len(p.terms) != len(o.terms) {
		return false
	}
	//
	for i := range p.terms {
		l, r := p.terms[i], o.terms[i]
		if !l.mono.Equal(r.mono) || !l.coeff.Equal(r.coeff) {
			return false
		}
	}
	//
	return true
}

// Eval evaluates this polynomial under environments for the quantified
// variables and the unknown/auxiliary variables respectively.
func (p Polynomial) Eval(qenv func(string) *big.Rat, uenv func(string) *big.Rat) *big.Rat {
	val := new(big.Rat)
	//
	for _, t := range p.terms {
		prod := t.mono.Eval(qenv)
		prod.Mul(prod, t.coeff.Eval(uenv))
		val.Add(val, prod)
	}
	//
	return val
}

// CollectQuantified inserts every quantified variable appearing in some
// monomial into the given set.
func (p Polynomial) CollectQuantified(set map[string]bool) {
	for _, t := range p.terms {
		for _, name := range t.mono.Variables() {
			set[name] = true
		}
	}
}

// CollectCoeffVars inserts every unknown/auxiliary variable appearing in some
// coefficient expression into the given set.
func (p Polynomial) CollectCoeffVars(set map[string]bool) {
	for _, t := range p.terms {
		t.coeff.CollectVars(set)
	}
}

func (p Polynomial) String() string {
	if len(p.terms) == 0 {
		return "0"
	}
	//
	strs := make([]string, len(p.terms))
	//
	for i, t := range p.terms {
		if t.mono.IsUnit() {
			strs[i] = "(" + t.coeff.String() + ")"
		} else {
			strs[i] = "(" + t.coeff.String() + ")*" + t.mono.String()
		}
	}
	//
	return strings.Join(strs, "+")
}

// revise sorts terms and merges those sharing a monomial, dropping terms
// whose combined coefficient is zero.  The slice is owned by the caller.
func revise(terms []term) Polynomial {
	slices.SortFunc(terms, func(l, r term) int {
		return l.mono.Cmp(r.mono)
	})
	//
	merged := make([]term, 0, len(terms))
	//
	for i := 0; i < len(terms); {
		j := i + 1
		coeff := terms[i].coeff
		//
		for j < len(terms) && terms[i].mono.Cmp(terms[j].mono) == 0 {
			coeff = coeff.Add(terms[j].coeff)
			j++
		}
		//
		if !coeff.IsZero() {
			merged = append(merged, term{terms[i].mono, coeff})
		}
		//
		i = j
	}
	//
	return Polynomial{merged}
}
