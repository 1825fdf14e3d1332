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

// encodeFarkas constructs certificates by Farkas' lemma: the goal polynomial
// must equal a nonnegative linear combination of the hypothesis polynomials
// plus a nonnegative constant, monomial by monomial over the affine terms.
// Applicable only when every polynomial involved is affine in the quantified
// variables.
func encodeFarkas(cfg Config, alloc *Allocator, prov Provenance,
	hyp constraint.Conjunction, goal constraint.Atom, branches Branches,
) (CertificateSystem, error) {
	for _, a := range hyp {
		if !a.Poly.IsAffine() {
			return CertificateSystem{}, &InapplicableError{
				Farkas, prov.Clause, prov.Disjunct, "non-affine hypothesis polynomial " + a.Poly.String(),
			}
		}
	}
	//
	if !goal.Poly.IsAffine() {
		return CertificateSystem{}, &InapplicableError{
			Farkas, prov.Clause, prov.Disjunct, "non-affine goal polynomial " + goal.Poly.String(),
		}
	}
	//
	var (
		b   = builder{alloc, prov, nil}
		dnf constraint.ExprDNF
	)
	// Satisfying branch: goal follows from the hypothesis.
	dnf = append(dnf, farkasBranch(&b, hyp, goal.Poly, goal.IsStrict()))
	// Infeasible-hypothesis branches: the region itself is empty, making the
	// implication vacuous.
	if branches.Unsat {
		minusOne := poly.NewConstPoly(poly.ConstInt(-1))
		dnf = append(dnf, farkasBranch(&b, hyp, minusOne, false))
	}
	//
	if branches.StrictUnsat {
		dnf = append(dnf, farkasBranch(&b, hyp, poly.ZeroPoly(), true))
	}
	//
	return CertificateSystem{b.aux, dnf}, nil
}

// farkasBranch emits the constraints equating rhs with "lam_0 + sum_i lam_i *
// f_i" where every multiplier is nonnegative.  When needStrict holds, the
// branch additionally requires a strictly positive slack: the constant
// multiplier plus the multipliers of strict hypothesis atoms must exceed
// zero.
func farkasBranch(b *builder, hyp constraint.Conjunction, rhs poly.Polynomial, needStrict bool) constraint.ExprConjunction {
	var conj constraint.ExprConjunction
	// Multiplier for the trivial fact "1 >= 0".
	lam0 := b.fresh("lam", "farkas constant multiplier")
	combo := poly.NewConstPoly(lam0)
	strictSum := lam0
	//
	conj = append(conj, nonNegative(lam0))
	//
	for _, atom := range hyp {
		lam := b.fresh("lam", "farkas multiplier")
		combo = combo.Add(atom.Poly.Scale(lam))
		conj = append(conj, nonNegative(lam))
		//
		if atom.IsStrict() {
			strictSum = strictSum.Add(lam)
		}
	}
	//
	if needStrict {
		conj = append(conj, positive(strictSum))
	}
	//
	return append(conj, matchEquality(combo, rhs)...)
}
