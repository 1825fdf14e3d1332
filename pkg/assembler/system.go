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
package assembler

import (
	"math/big"

	"github.com/polyhorn/go-polyhorn/pkg/constraint"
	"github.com/polyhorn/go-polyhorn/pkg/encoder"
	"github.com/polyhorn/go-polyhorn/pkg/poly"
)

// AggregateSystem is the purely existential problem handed to the oracle:
// the union of every certificate system plus every direct clause constraint.
// It contains no quantified variable, and is never mutated once assembled.
type AggregateSystem struct {
	// Unknowns are the user-declared variables; their entries in the oracle
	// model constitute the answer.
	Unknowns []poly.Variable
	// Aux variables created during encoding, with provenance.
	Aux []encoder.AuxVar
	// Assertions over unknown and auxiliary variables; each must hold.
	Assertions []constraint.ExprDNF
}

// Variables returns every variable of the system, unknowns first, in
// deterministic order.
func (s *AggregateSystem) Variables() []poly.Variable {
	vars := make([]poly.Variable, 0, len(s.Unknowns)+len(s.Aux))
	vars = append(vars, s.Unknowns...)
	//
	for _, aux := range s.Aux {
		vars = append(vars, aux.Var)
	}
	//
	return vars
}

// Eval checks whether every assertion holds under the given assignment of
// unknown and auxiliary variables.
func (s *AggregateSystem) Eval(env func(string) *big.Rat) bool {
	for _, a := range s.Assertions {
		if !a.Eval(env) {
			return false
		}
	}
	//
	return true
}

// Project filters an oracle valuation down to the user-declared unknowns,
// dropping every auxiliary entry.  This is the model projection map: an
// identity relation on unknown variables.
func (s *AggregateSystem) Project(valuation map[string]*big.Rat) map[string]*big.Rat {
	model := make(map[string]*big.Rat, len(s.Unknowns))
	//
	for _, v := range s.Unknowns {
		if val, ok := valuation[v.Name]; ok {
			model[v.Name] = val
		}
	}
	//
	return model
}

// EliminateConstants repeatedly substitutes auxiliary variables fixed by a
// "v = c" equality out of the assertions, shrinking the system the oracle
// sees.  Only auxiliary variables are eliminated: unknowns must survive into
// the model.  Only safe when every assertion is a single conjunction, hence
// callers gate this on the assume-SAT heuristic being enabled.
func (s *AggregateSystem) EliminateConstants() {
	unknowns := make(map[string]bool)
	//
	for _, v := range s.Unknowns {
		unknowns[v.Name] = true
	}
	//
	for {
		name, val, ok := findConstantEquality(s.Assertions, unknowns)
		if !ok {
			return
		}
		//
		for i, dnf := range s.Assertions {
			for j, conj := range dnf {
				for k, ec := range conj {
					s.Assertions[i][j][k].Expr = ec.Expr.SubstituteVar(name, val)
				}
			}
		}
	}
}

// findConstantEquality looks for an equality constraint of the form
// "a*v + b = 0" over a single auxiliary variable v, returning v and its
// forced value -b/a.
func findConstantEquality(assertions []constraint.ExprDNF, unknowns map[string]bool) (string, *big.Rat, bool) {
	for _, dnf := range assertions {
		for _, conj := range dnf {
			for _, ec := range conj {
				if name, val, ok := constantEquality(ec, unknowns); ok {
					return name, val, true
				}
			}
		}
	}
	//
	return "", nil, false
}

func constantEquality(ec constraint.ExprConstraint, unknowns map[string]bool) (string, *big.Rat, bool) {
	if ec.Rel != constraint.EQ {
		return "", nil, false
	}
	//
	var (
		name  string
		scale *big.Rat
		shift = new(big.Rat)
	)
	//
	for _, el := range ec.Expr.Elements() {
		vars := el.Vars()
		//
		switch {
		case len(vars) == 0:
			shift.Add(shift, el.Constant())
		case len(vars) == 1 && scale == nil && !unknowns[vars[0]]:
			name = vars[0]
			scale = el.Constant()
		default:
			return "", nil, false
		}
	}
	//
	if scale == nil {
		return "", nil, false
	}
	// v = -shift/scale
	val := new(big.Rat).Neg(shift)
	val.Quo(val, scale)
	//
	return name, val, true
}
