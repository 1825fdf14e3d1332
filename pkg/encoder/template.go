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
package encoder

import (
	"github.com/polyhorn/go-polyhorn/pkg/poly"
)

// builder accumulates the auxiliary variables created whilst constructing
// the branches of one certificate system.
type builder struct {
	alloc *Allocator
	prov  Provenance
	aux   []AuxVar
}

// fresh creates a new auxiliary variable and returns it as an expression.
func (b *builder) fresh(prefix string, origin string) poly.Expr {
	v := b.alloc.Fresh(prefix)
	b.aux = append(b.aux, AuxVar{v, Provenance{b.prov.Clause, b.prov.Disjunct, origin}})
	//
	return poly.Var(v.Name)
}

// freshQuantified creates a new quantified witness variable (used by
// Putinar's strict decomposition, where fresh universally interpreted
// variables extend the clause's own).  Witnesses are eliminated by
// coefficient matching, so they are not recorded as auxiliaries and never
// reach the solver.
func (b *builder) freshQuantified(prefix string) poly.Variable {
	v := b.alloc.Fresh(prefix)
	//
	return poly.QuantifiedVar(v.Name, poly.Real)
}

// exponentVectors enumerates every vector of n non-negative exponents whose
// sum is at most maxD, in lexicographic order.
func exponentVectors(n int, maxD int) [][]int {
	var (
		result [][]int
		rec    func(prefix []int, budget int)
	)
	//
	rec = func(prefix []int, budget int) {
		if len(prefix) == n {
			result = append(result, append([]int(nil), prefix...))
			return
		}
		//
		for i := 0; i <= budget; i++ {
			rec(append(prefix, i), budget-i)
		}
	}
	//
	rec(make([]int, 0, n), maxD)
	//
	return result
}

// monomialsUpTo returns, as polynomials, every monomial over the given
// quantified variables with total degree at most maxD.
func monomialsUpTo(vars []poly.Variable, maxD int) []poly.Polynomial {
	var monos []poly.Polynomial
	//
	for _, exps := range exponentVectors(len(vars), maxD) {
		mapping := make(map[string]uint, len(vars))
		//
		for i, e := range exps {
			mapping[vars[i].Name] = uint(e)
		}
		//
		monos = append(monos, poly.NewTermPoly(poly.One(), poly.NewMonomial(mapping)))
	}
	//
	return monos
}
