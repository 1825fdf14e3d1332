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

// Package encoder eliminates the universal quantifier of a polynomial Horn
// clause by constructing a Positivstellensatz certificate template.  Each
// encoder consumes a hypothesis conjunction and a goal atom over the
// quantified variables and emits fresh auxiliary multiplier variables
// together with coefficient-matching constraints over the unknowns and
// auxiliaries only.  Satisfiability of the emitted system implies the
// original implication unconditionally; unsatisfiability at a given degree is
// inconclusive.
package encoder

import (
	"fmt"

	"github.com/polyhorn/go-polyhorn/pkg/constraint"
	"github.com/polyhorn/go-polyhorn/pkg/poly"
	log "github.com/sirupsen/logrus"
)

// Theorem identifies which Positivstellensatz variant generates certificates.
// The set is mathematically closed, hence a closed enumeration rather than an
// open plugin mechanism.
type Theorem uint8

const (
	// Farkas handles affine hypotheses and goals with plain nonnegative
	// multipliers.
	Farkas Theorem = iota
	// Handelman multiplies products of hypothesis polynomials up to a degree
	// bound; complete for bounded polyhedral hypotheses.
	Handelman
	// Putinar uses sum-of-squares multipliers and handles the general case.
	Putinar
	// Auto selects the weakest applicable theorem per clause.
	Auto
)

// ParseTheorem parses a theorem name as it appears in configuration files.
func ParseTheorem(name string) (Theorem, error) {
	switch name {
	case "farkas":
		return Farkas, nil
	case "handelman":
		return Handelman, nil
	case "putinar":
		return Putinar, nil
	case "auto":
		return Auto, nil
	}
	//
	return 0, fmt.Errorf("unknown theorem %q", name)
}

func (t Theorem) String() string {
	switch t {
	case Farkas:
		return "farkas"
	case Handelman:
		return "handelman"
	case Putinar:
		return "putinar"
	default:
		return "auto"
	}
}

// Config carries the degree parameters governing certificate search.  Degree
// parameters bound the search because coefficient expressions of polynomial
// products grow in degree over the unknowns.
type Config struct {
	// Theorem selects the certificate construction.
	Theorem Theorem
	// DegreeOfSat bounds multiplier degree on the satisfying branch
	// (Handelman monoid degree, Putinar SOS degree).
	DegreeOfSat int
	// DegreeOfNonstrictUnsat bounds multiplier degree when proving the
	// hypothesis region maps to "-1 >= 0".
	DegreeOfNonstrictUnsat int
	// DegreeOfStrictUnsat bounds template degree in Putinar's strict
	// emptiness decomposition.
	DegreeOfStrictUnsat int
	// MaxDOfStrict is the power of the fresh witness variable in Putinar's
	// strict decomposition.
	MaxDOfStrict int
	// Domain which unknown and auxiliary variables range over.
	Domain poly.Domain
}

// Branches selects which certificate branches an encoder generates.  The
// satisfying branch is always present; the unsat branches are added when the
// assume-SAT heuristic is disabled.
type Branches struct {
	Unsat       bool
	StrictUnsat bool
}

// Validate checks that every degree parameter required by the selected
// theorem and branch set is non-negative.
func (c Config) Validate(branches Branches) error {
	if c.Theorem == Farkas {
		// Degree-1 instance; takes no degree parameters.
		return nil
	}
	//
	if c.DegreeOfSat < 0 {
		return &DegreeError{c.Theorem, "degree_of_sat", c.DegreeOfSat}
	}
	//
	if branches.Unsat && c.DegreeOfNonstrictUnsat < 0 {
		return &DegreeError{c.Theorem, "degree_of_nonstrict_unsat", c.DegreeOfNonstrictUnsat}
	}
	//
	if c.Theorem == Putinar && branches.StrictUnsat {
		if c.DegreeOfStrictUnsat < 0 {
			return &DegreeError{c.Theorem, "degree_of_strict_unsat", c.DegreeOfStrictUnsat}
		}
		//
		if c.MaxDOfStrict < 0 {
			return &DegreeError{c.Theorem, "max_d_of_strict", c.MaxDOfStrict}
		}
	}
	//
	return nil
}

// DegreeError reports a missing or nonsensical degree parameter for the
// selected theorem.  It is fatal and reported before any encoder is invoked.
type DegreeError struct {
	Theorem Theorem
	Param   string
	Value   int
}

func (e *DegreeError) Error() string {
	return fmt.Sprintf("theorem %s requires a non-negative %s (got %d)", e.Theorem, e.Param, e.Value)
}

// InapplicableError reports that the selected theorem cannot encode a given
// clause (e.g. Farkas with a non-affine hypothesis).  It is fatal for that
// clause and carries its identity so the caller can switch theorem.
type InapplicableError struct {
	Theorem  Theorem
	Clause   int
	Disjunct int
	Msg      string
}

func (e *InapplicableError) Error() string {
	return fmt.Sprintf("theorem %s inapplicable to clause %d, disjunct %d: %s",
		e.Theorem, e.Clause, e.Disjunct, e.Msg)
}

// Provenance records where an auxiliary variable came from, for diagnostics.
// Auxiliary variables never enter the model projection map.
type Provenance struct {
	// Clause index within the system.
	Clause int
	// Disjunct index within the clause's normalised implication body.
	Disjunct int
	// Origin names the construction which created the variable.
	Origin string
}

// AuxVar is an auxiliary variable together with its provenance.
type AuxVar struct {
	Var        poly.Variable
	Provenance Provenance
}

// CertificateSystem is the output of one encoder invocation: the auxiliary
// variables it created and a disjunction of constraint conjunctions over
// unknown and auxiliary variables.  Multiplier nonnegativity constraints are
// included in the branches they belong to.
type CertificateSystem struct {
	Aux      []AuxVar
	Branches constraint.ExprDNF
}

// Encode generates the certificate system for one (hypothesis, goal) pair
// under the given configuration.  vars are the quantified variables of the
// owning clause.  The hypothesis must contain only > and >= atoms (the
// assembler canonicalises = and != away beforehand); the goal must be > or
// >=.
func Encode(cfg Config, alloc *Allocator, prov Provenance, vars []poly.Variable,
	hyp constraint.Conjunction, goal constraint.Atom, branches Branches,
) (CertificateSystem, error) {
	log.Debugf("encoding clause %d disjunct %d via %s (%d hypothesis atoms)",
		prov.Clause, prov.Disjunct, cfg.Theorem, len(hyp))
	//
	switch cfg.Theorem {
	case Farkas:
		return encodeFarkas(cfg, alloc, prov, hyp, goal, branches)
	case Handelman:
		return encodeHandelman(cfg, alloc, prov, hyp, goal, branches)
	case Putinar:
		return encodePutinar(cfg, alloc, prov, vars, hyp, goal, branches)
	default:
		return CertificateSystem{}, fmt.Errorf("theorem %s must be resolved before encoding", cfg.Theorem)
	}
}

// matchEquality equates two polynomials monomial by monomial over the
// quantified variables, producing one "difference = 0" constraint per
// monomial in the union of their supports.  This syntactic identity is the
// algebraic foundation every encoder rests on.
func matchEquality(lhs poly.Polynomial, rhs poly.Polynomial) constraint.ExprConjunction {
	var (
		conj constraint.ExprConjunction
		seen = make(map[string]bool)
	)
	//
	for _, mono := range lhs.Monomials() {
		diff := lhs.CoefficientOf(mono).Sub(rhs.CoefficientOf(mono))
		conj = append(conj, constraint.ExprConstraint{Expr: diff, Rel: constraint.EQ})
		seen[mono.String()] = true
	}
	//
	for _, mono := range rhs.Monomials() {
		if !seen[mono.String()] {
			diff := lhs.CoefficientOf(mono).Sub(rhs.CoefficientOf(mono))
			conj = append(conj, constraint.ExprConstraint{Expr: diff, Rel: constraint.EQ})
		}
	}
	//
	return conj
}

// nonNegative constrains a multiplier expression to be at least zero.
func nonNegative(e poly.Expr) constraint.ExprConstraint {
	return constraint.ExprConstraint{Expr: e, Rel: constraint.GE}
}

// positive constrains a slack expression to be strictly positive.
func positive(e poly.Expr) constraint.ExprConstraint {
	return constraint.ExprConstraint{Expr: e, Rel: constraint.GT}
}
