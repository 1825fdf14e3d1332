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
	"github.com/polyhorn/go-polyhorn/pkg/constraint"
	"github.com/polyhorn/go-polyhorn/pkg/poly"
)

// encodePutinar constructs certificates by Putinar's Positivstellensatz: the
// goal polynomial must equal a combination "h_0 + sum_i h_i * g_i" where the
// h_i are sum-of-squares multipliers.  Each SOS multiplier is materialised as
// a Gram matrix L*L^T with L lower triangular, fresh auxiliary entries and a
// nonnegative diagonal, re-linearised monomial by monomial so the downstream
// solver sees polynomial (rather than matrix) constraints.
func encodePutinar(cfg Config, alloc *Allocator, prov Provenance, vars []poly.Variable,
	hyp constraint.Conjunction, goal constraint.Atom, branches Branches,
) (CertificateSystem, error) {
	var (
		b   = builder{alloc, prov, nil}
		dnf constraint.ExprDNF
	)
	// Satisfying branch.
	dnf = append(dnf, putinarBranch(&b, vars, hyp, cfg.DegreeOfSat, goal.Poly, goal.IsStrict()))
	// Infeasible-hypothesis branch.
	if branches.Unsat {
		minusOne := poly.NewConstPoly(poly.ConstInt(-1))
		dnf = append(dnf, putinarBranch(&b, vars, hyp, cfg.DegreeOfNonstrictUnsat, minusOne, false))
	}
	// Strict emptiness decomposition, one branch per strict hypothesis atom.
	if branches.StrictUnsat {
		dnf = append(dnf, strictUnsatBranches(&b, vars, hyp, cfg.DegreeOfStrictUnsat, cfg.MaxDOfStrict)...)
	}
	//
	return CertificateSystem{b.aux, dnf}, nil
}

// sumOfSquares generates a fresh SOS template over the given variables with
// multiplier degree at most maxD.  The returned polynomial is linear in fresh
// "t" variables, one per monomial of the expanded Gram product; the returned
// constraints tie each t to the corresponding (quadratic) Gram entry sum and
// keep the Cholesky diagonal nonnegative.
func sumOfSquares(b *builder, vars []poly.Variable, maxD int) (poly.Polynomial, constraint.ExprConjunction) {
	var (
		conj  constraint.ExprConjunction
		basis = monomialsUpTo(vars, maxD/2)
		dim   = len(basis)
	)
	// Lower triangular matrix with nonnegative diagonal.
	lower := make([][]poly.Expr, dim)
	//
	for i := range dim {
		lower[i] = make([]poly.Expr, i+1)
		//
		for j := 0; j <= i; j++ {
			lower[i][j] = b.fresh("l", "gram matrix entry")
		}
		//
		conj = append(conj, nonNegative(lower[i][i]))
	}
	// Expand basis * (L*L^T) * basis^T.
	expanded := poly.ZeroPoly()
	//
	for i := range dim {
		for j := range dim {
			entry := poly.Zero()
			//
			for k := 0; k <= min(i, j); k++ {
				entry = entry.Add(lower[i][k].Mul(lower[j][k]))
			}
			//
			expanded = expanded.Add(basis[i].Mul(basis[j]).Scale(entry))
		}
	}
	// Re-linearise: one fresh t per monomial of the expansion.
	template := poly.ZeroPoly()
	//
	for i := range expanded.Len() {
		mono, coeff := expanded.Term(i)
		t := b.fresh("t", "sum of squares template")
		conj = append(conj, constraint.ExprConstraint{Expr: t.Sub(coeff), Rel: constraint.EQ})
		template = template.Add(poly.NewTermPoly(t, mono))
	}
	//
	return template, conj
}

// putinarBranch emits the constraints equating rhs with "h_0 + sum_i h_i *
// g_i" over fresh SOS multipliers.  When the rhs is strict, nonnegative
// slacks are added (one constant slack, plus one per strict hypothesis atom)
// and their sum is required strictly positive.
func putinarBranch(b *builder, vars []poly.Variable, hyp constraint.Conjunction,
	maxD int, rhs poly.Polynomial, rhsStrict bool,
) constraint.ExprConjunction {
	combo, conj := sumOfSquares(b, vars, maxD)
	strictSum := poly.Zero()
	//
	if rhsStrict {
		y := b.fresh("y", "putinar strict slack")
		combo = combo.Add(poly.NewConstPoly(y))
		strictSum = strictSum.Add(y)
		conj = append(conj, nonNegative(y))
	}
	//
	for _, atom := range hyp {
		multiplier, side := sumOfSquares(b, vars, maxD)
		conj = append(conj, side...)
		//
		if rhsStrict && atom.IsStrict() {
			y := b.fresh("y", "putinar strict slack")
			multiplier = multiplier.Add(poly.NewConstPoly(y))
			strictSum = strictSum.Add(y)
			conj = append(conj, nonNegative(y))
		}
		//
		combo = combo.Add(multiplier.Mul(atom.Poly))
	}
	//
	if rhsStrict {
		conj = append(conj, positive(strictSum))
	}
	//
	return append(conj, matchEquality(combo, rhs)...)
}

// strictUnsatBranches emits, for every strict hypothesis atom g_j, the
// decomposition "w_j^(2k) = sum_i eta_i * (g_i - w_i^2)" over fresh
// universally interpreted witness variables w_i and unconstrained template
// multipliers eta, certifying that the strict region is empty.
func strictUnsatBranches(b *builder, vars []poly.Variable, hyp constraint.Conjunction,
	maxD int, power int,
) constraint.ExprDNF {
	var dnf constraint.ExprDNF
	// Extend the quantified variables with one witness per hypothesis atom.
	witnesses := make([]poly.Variable, len(hyp))
	for i := range hyp {
		witnesses[i] = b.freshQuantified("w")
	}
	//
	allVars := append(append([]poly.Variable(nil), vars...), witnesses...)
	basis := monomialsUpTo(allVars, maxD)
	//
	for j, atom := range hyp {
		if !atom.IsStrict() {
			continue
		}
		//
		combo := poly.ZeroPoly()
		//
		for i, g := range hyp {
			square := poly.NewVarPoly(witnesses[i].Name)
			square = square.Mul(square)
			combo = combo.Add(generalTemplate(b, basis).Mul(g.Poly.Sub(square)))
		}
		// w_j^(2*power)
		lhs := poly.NewConstPoly(poly.One())
		wj := poly.NewVarPoly(witnesses[j].Name)
		//
		for range 2 * power {
			lhs = lhs.Mul(wj)
		}
		//
		dnf = append(dnf, matchEquality(lhs, combo))
	}
	//
	return dnf
}

// generalTemplate sums every basis monomial weighted by a fresh,
// unconstrained auxiliary variable.
func generalTemplate(b *builder, basis []poly.Polynomial) poly.Polynomial {
	template := poly.ZeroPoly()
	//
	for _, mono := range basis {
		template = template.Add(mono.Scale(b.fresh("eta", "strict unsat template")))
	}
	//
	return template
}
