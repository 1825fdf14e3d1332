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

	"github.com/polyhorn/go-polyhorn/pkg/poly"
)

// ExprConstraint is an atomic constraint "expr ▷ 0" over unknown and
// auxiliary variables only; no quantified variable remains.  These form the
// existential system handed to the oracle.
type ExprConstraint struct {
	Expr poly.Expr
	Rel  Relation
}

// Eval evaluates this constraint under an assignment of the unknown and
// auxiliary variables.
func (c ExprConstraint) Eval(env func(string) *big.Rat) bool {
	return holds(c.Expr.Eval(env).Sign(), c.Rel)
}

func (c ExprConstraint) String() string {
	return c.Expr.String() + c.Rel.String() + "0"
}

// ExprConjunction is a set of expression constraints which must hold
// simultaneously.
type ExprConjunction []ExprConstraint

// Eval evaluates this conjunction under the given assignment.
func (c ExprConjunction) Eval(env func(string) *big.Rat) bool {
	for _, ec := range c {
		if !ec.Eval(env) {
			return false
		}
	}
	//
	return true
}

// CollectVars inserts every variable referenced by this conjunction into the
// given set.
func (c ExprConjunction) CollectVars(set map[string]bool) {
	for _, ec := range c {
		ec.Expr.CollectVars(set)
	}
}

// ExprDNF is a disjunction of expression-constraint conjunctions.  A
// certificate system whose clause admits several certificate shapes (e.g. the
// satisfying branch and the infeasible-hypothesis branches) is asserted as
// one ExprDNF.
type ExprDNF []ExprConjunction

// Eval evaluates this disjunction under the given assignment.
func (d ExprDNF) Eval(env func(string) *big.Rat) bool {
	for _, c := range d {
		if c.Eval(env) {
			return true
		}
	}
	//
	return false
}

// CollectVars inserts every variable referenced by this disjunction into the
// given set.
func (d ExprDNF) CollectVars(set map[string]bool) {
	for _, c := range d {
		c.CollectVars(set)
	}
}

func (d ExprDNF) String() string {
	strs := make([]string, len(d))
	//
	for i, c := range d {
		inner := make([]string, len(c))
		for j, ec := range c {
			inner[j] = ec.String()
		}
		//
		strs[i] = "(" + strings.Join(inner, " /\\ ") + ")"
	}
	//
	return strings.Join(strs, " \\/ ")
}
