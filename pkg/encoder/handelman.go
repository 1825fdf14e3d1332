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

// encodeHandelman constructs certificates by Handelman's theorem: the goal
// polynomial must equal a nonnegative combination of monoids (products of
// hypothesis polynomials) up to the configured degree.  Completeness holds
// for hypotheses describing a bounded region; boundedness is not statically
// checkable and remains a caller obligation, though the construction is sound
// regardless.
func encodeHandelman(cfg Config, alloc *Allocator, prov Provenance,
	hyp constraint.Conjunction, goal constraint.Atom, branches Branches,
) (CertificateSystem, error) {
	var (
		b   = builder{alloc, prov, nil}
		dnf constraint.ExprDNF
	)
	// Satisfying branch.
	dnf = append(dnf, handelmanBranch(&b, hyp, cfg.DegreeOfSat, goal.Poly, goal.IsStrict()))
	// Infeasible-hypothesis branches.
	if branches.Unsat {
		minusOne := poly.NewConstPoly(poly.ConstInt(-1))
		dnf = append(dnf, handelmanBranch(&b, hyp, cfg.DegreeOfNonstrictUnsat, minusOne, false))
	}
	//
	if branches.StrictUnsat {
		dnf = append(dnf, handelmanBranch(&b, hyp, cfg.DegreeOfNonstrictUnsat, poly.ZeroPoly(), true))
	}
	//
	return CertificateSystem{b.aux, dnf}, nil
}

// monoid is a product of hypothesis polynomials together with an indication
// of whether every factor used is a strict inequality (the empty product is
// vacuously strict).
type monoid struct {
	poly   poly.Polynomial
	strict bool
}

// monoids enumerates every product of hypothesis polynomials of total degree
// (in factors) at most maxD.  The first monoid is always the empty product 1.
func monoids(hyp constraint.Conjunction, maxD int) []monoid {
	var result []monoid
	//
	for _, exps := range exponentVectors(len(hyp), maxD) {
		m := monoid{poly.NewConstPoly(poly.One()), true}
		//
		for i, e := range exps {
			if e > 0 && !hyp[i].IsStrict() {
				m.strict = false
			}
			//
			for range e {
				m.poly = m.poly.Mul(hyp[i].Poly)
			}
		}
		//
		result = append(result, m)
	}
	//
	return result
}

// handelmanBranch emits the constraints equating rhs with the
// multiplier-weighted sum of monoids.  When needStrict holds, the sum of the
// multipliers attached to strict monoids must be strictly positive.
func handelmanBranch(b *builder, hyp constraint.Conjunction, maxD int, rhs poly.Polynomial, needStrict bool) constraint.ExprConjunction {
	var (
		conj      constraint.ExprConjunction
		combo     = poly.ZeroPoly()
		strictSum = poly.Zero()
	)
	//
	for _, m := range monoids(hyp, maxD) {
		y := b.fresh("y", "handelman multiplier")
		combo = combo.Add(m.poly.Scale(y))
		conj = append(conj, nonNegative(y))
		//
		if m.strict {
			strictSum = strictSum.Add(y)
		}
	}
	//
	if needStrict {
		conj = append(conj, positive(strictSum))
	}
	//
	return append(conj, matchEquality(combo, rhs)...)
}
