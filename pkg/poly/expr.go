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

// Element is a rational constant multiplied by zero or more unknown or
// auxiliary variables.  For example, "2*a*b" is an element with constant 2 and
// variables [a,b], whilst "1/2" is an element with no variables.  Variables
// are kept sorted, with repetitions representing powers (e.g. [c,c,c] is c^3).
type Element struct {
	constant *big.Rat
	vars     []string
}

// NewElement constructs an element from a rational constant and zero or more
// variable names.
func NewElement(constant *big.Rat, vars ...string) Element {
	sorted := slices.Clone(vars)
	slices.Sort(sorted)
	//
	return Element{new(big.Rat).Set(constant), sorted}
}

// Constant returns the rational constant of this element.
func (e Element) Constant() *big.Rat {
	return new(big.Rat).Set(e.constant)
}

// Vars returns the (sorted) variable names of this element, with repetitions
// denoting powers.
func (e Element) Vars() []string {
	return slices.Clone(e.vars)
}

// Degree returns the number of variable occurrences in this element.
func (e Element) Degree() uint {
	return uint(len(e.vars))
}

// Mul multiplies two elements, concatenating variable products and
// multiplying constants.
func (e Element) Mul(o Element) Element {
	return NewElement(new(big.Rat).Mul(e.constant, o.constant), slices.Concat(e.vars, o.vars)...)
}

// Neg negates the constant of this element.
func (e Element) Neg() Element {
	return Element{new(big.Rat).Neg(e.constant), e.vars}
}

// Cmp provides a total ordering over elements, first by the number of
// variables, then lexicographically over the variables themselves.  Two
// elements comparing equal under Cmp carry the same variable product (though
// possibly different constants).
func (e Element) Cmp(o Element) int {
	if c := len(e.vars) - len(o.vars); c != 0 {
		return c
	}
	//
	return slices.Compare(e.vars, o.vars)
}

func (e Element) String() string {
	if len(e.vars) == 0 {
		return e.constant.RatString()
	}
	//
	return e.constant.RatString() + "*" + strings.Join(e.vars, "*")
}

// Expr is a coefficient expression: a normalised sum of elements, hence a
// polynomial over unknown and auxiliary variables with exact rational
// coefficients.  The zero expression has no elements.  Expressions are
// immutable; arithmetic always produces fresh values.
type Expr struct {
	elems []Element
}

// Zero returns the zero expression.
func Zero() Expr {
	return Expr{nil}
}

// One returns the unit expression.
func One() Expr {
	return ConstInt(1)
}

// Const lifts a rational constant into an expression.
func Const(c *big.Rat) Expr {
	return normalise([]Element{NewElement(c)})
}

// ConstInt lifts an integer constant into an expression.
func ConstInt(n int64) Expr {
	return Const(big.NewRat(n, 1))
}

// Var lifts a variable (given by name) into an expression.
func Var(name string) Expr {
	return Expr{[]Element{NewElement(big.NewRat(1, 1), name)}}
}

// NewExpr constructs an expression as the normalised sum of the given
// elements.
func NewExpr(elems ...Element) Expr {
	return normalise(slices.Clone(elems))
}

// Elements returns the elements summed by this expression.
func (e Expr) Elements() []Element {
	return e.elems
}

// IsZero checks whether this is (syntactically) the zero expression.
func (e Expr) IsZero() bool {
	return len(e.elems) == 0
}

// Constant checks whether this expression is a plain rational constant and,
// if so, returns it.
func (e Expr) Constant() (*big.Rat, bool) {
	switch {
	case len(e.elems) == 0:
		return new(big.Rat), true
	case len(e.elems) == 1 && len(e.elems[0].vars) == 0:
		return e.elems[0].Constant(), true
	}
	//
	return nil, false
}

// Degree returns the maximum number of variable occurrences across the
// elements of this expression.
func (e Expr) Degree() uint {
	var deg uint
	//
	for _, el := range e.elems {
		deg = max(deg, el.Degree())
	}
	//
	return deg
}

// Add returns the sum of two expressions.
func (e Expr) Add(o Expr) Expr {
	return normalise(slices.Concat(e.elems, o.elems))
}

// Sub returns the difference of two expressions.
func (e Expr) Sub(o Expr) Expr {
	return e.Add(o.Neg())
}

// Neg returns the negation of this expression.
func (e Expr) Neg() Expr {
	elems := make([]Element, len(e.elems))
	//
	for i, el := range e.elems {
		elems[i] = el.Neg()
	}
	//
	return Expr{elems}
}

// Mul returns the product of two expressions, convolving their elements.
func (e Expr) Mul(o Expr) Expr {
	var elems []Element
	//
	for _, l := range e.elems {
		for _, r := range o.elems {
			elems = append(elems, l.Mul(r))
		}
	}
	//
	return normalise(elems)
}

// Scale multiplies this expression by a rational constant.
func (e Expr) Scale(c *big.Rat) Expr {
	return e.Mul(Const(c))
}

// SubstituteVar replaces every occurrence of the given variable with a
// rational constant, folding it into the element constants.
func (e Expr) SubstituteVar(name string, val *big.Rat) Expr {
	elems := make([]Element, len(e.elems))
	//
	for i, el := range e.elems {
		constant := new(big.Rat).Set(el.constant)
		vars := make([]string, 0, len(el.vars))
		//
		for _, v := range el.vars {
			if v == name {
				constant.Mul(constant, val)
			} else {
				vars = append(vars, v)
			}
		}
		//
		elems[i] = Element{constant, vars}
	}
	//
	return normalise(elems)
}

// Eval evaluates this expression under an environment mapping variable names
// to rational values.
func (e Expr) Eval(env func(string) *big.Rat) *big.Rat {
	val := new(big.Rat)
	//
	for _, el := range e.elems {
		acc := new(big.Rat).Set(el.constant)
		for _, v := range el.vars {
			acc.Mul(acc, env(v))
		}
		//
		val.Add(val, acc)
	}
	//
	return val
}

// CollectVars inserts every variable referenced by this expression into the
// given set.
func (e Expr) CollectVars(set map[string]bool) {
	for _, el := range e.elems {
		for _, v := range el.vars {
			set[v] = true
		}
	}
}

// Equal checks whether two expressions are syntactically identical (which,
// given normalisation, coincides with equality as polynomials over the
// unknowns).
func (e Expr) Equal(o Expr) bool {
	if len(e.elems) != len(o.elems) {
		return false
	}
	//
	for i := range e.elems {
		l, r := e.elems[i], o.elems[i]
		if l.Cmp(r) != 0 || l.constant.Cmp(r.constant) != 0 {
			return false
		}
	}
	//
	return true
}

func (e Expr) String() string {
	if len(e.elems) == 0 {
		return "0"
	}
	//
	strs := make([]string, len(e.elems))
	for i, el := range e.elems {
		strs[i] = el.String()
	}
	//
	return strings.Join(strs, "+")
}

// normalise sorts elements and merges those sharing the same variable
// product, dropping any whose constant sums to zero.  The slice is owned by
// the caller.
func normalise(elems []Element) Expr {
	slices.SortFunc(elems, Element.Cmp)
	//
	merged := make([]Element, 0, len(elems))
	//
	for i := 0; i < len(elems); {
		j := i + 1
		constant := new(big.Rat).Set(elems[i].constant)
		//
		for j < len(elems) && elems[i].Cmp(elems[j]) == 0 {
			constant.Add(constant, elems[j].constant)
			j++
		}
		//
		if constant.Sign() != 0 {
			merged = append(merged, Element{constant, elems[i].vars})
		}
		//
		i = j
	}
	//
	return Expr{merged}
}
