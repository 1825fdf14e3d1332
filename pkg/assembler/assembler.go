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
	"fmt"

	"github.com/polyhorn/go-polyhorn/pkg/constraint"
	"github.com/polyhorn/go-polyhorn/pkg/encoder"
	"github.com/polyhorn/go-polyhorn/pkg/poly"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Config determines how a Horn clause system is compiled down to an
// existential constraint system.
type Config struct {
	// Encoder holds the certificate theorem and its degree parameters.
	Encoder encoder.Config
	// AssumeSAT restricts encoding to the satisfiable branch of every
	// implication, trading completeness for far smaller systems.
	AssumeSAT bool
	// EliminateConstants substitutes away auxiliary variables which some
	// equality pins to a constant.  Requires AssumeSAT, since substitution
	// under a disjunction is unsound.
	EliminateConstants bool
	// Parallel compiles clauses on separate goroutines.  Output is
	// deterministic either way.
	Parallel bool
}

// clauseResult is the outcome of compiling a single clause: zero or more
// assertions which must all hold, plus the auxiliary variables they mention.
type clauseResult struct {
	aux        []encoder.AuxVar
	assertions []constraint.ExprDNF
}

func (r *clauseResult) add(cert encoder.CertificateSystem) {
	r.aux = append(r.aux, cert.Aux...)
	r.assertions = append(r.assertions, cert.Branches)
}

// Compile translates a validated Horn clause system into an aggregate
// existential system, ready for an oracle.  Clauses are encoded
// independently, each with its own variable scope, so the result does not
// depend on clause evaluation order.
func Compile(cfg Config, system *constraint.System) (*AggregateSystem, error) {
	if err := system.Validate(); err != nil {
		return nil, err
	}
	//
	branches := encoder.Branches{
		Unsat:       !cfg.AssumeSAT,
		StrictUnsat: !cfg.AssumeSAT,
	}
	// An automatic theorem is resolved (and validated) per implication.
	if cfg.Encoder.Theorem != encoder.Auto {
		if err := cfg.Encoder.Validate(branches); err != nil {
			return nil, err
		}
	}
	//
	results := make([]clauseResult, len(system.Clauses))
	//
	if cfg.Parallel {
		var group errgroup.Group
		//
		for i := range system.Clauses {
			group.Go(func() error {
				var err error
				results[i], err = compileClause(cfg, i, &system.Clauses[i], branches)
				//
				return err
			})
		}
		//
		if err := group.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range system.Clauses {
			var err error
			//
			if results[i], err = compileClause(cfg, i, &system.Clauses[i], branches); err != nil {
				return nil, err
			}
		}
	}
	//
	aggregate := &AggregateSystem{Unknowns: system.Unknowns}
	//
	for _, r := range results {
		aggregate.Aux = append(aggregate.Aux, r.aux...)
		aggregate.Assertions = append(aggregate.Assertions, r.assertions...)
	}
	//
	if cfg.EliminateConstants && cfg.AssumeSAT {
		before := countConstraints(aggregate.Assertions)
		aggregate.EliminateConstants()
		log.Debugf("constant elimination: %d constraints in, %d out",
			before, countConstraints(aggregate.Assertions))
	}
	//
	return aggregate, nil
}

// compileClause encodes one clause.  A fresh allocator scope keeps auxiliary
// names disjoint across clauses.
func compileClause(cfg Config, index int, clause *constraint.Clause, branches encoder.Branches) (clauseResult, error) {
	if clause.IsDirect() {
		return compileDirect(index, clause)
	}
	//
	var result clauseResult
	//
	alloc := encoder.NewAllocator(cfg.Encoder.Domain).ForClause(index)
	hypDNF := constraint.Normalize(clause.Hypothesis).SplitDisequalities()
	goalDNF := constraint.Normalize(clause.Conclusion)
	//
	switch {
	case hypDNF.IsFalse():
		log.Debugf("clause %d holds vacuously, skipping", index)
		return result, nil
	case goalDNF.IsTrue():
		log.Debugf("clause %d concludes trivially, skipping", index)
		return result, nil
	}
	// An implication whose conclusion is a disjunction "g0 or rest" is
	// encoded as "hypothesis and not(rest) implies g0".  Negating rest
	// yields a further DNF, each disjunct of which strengthens the
	// hypothesis of a separate implication.
	goal, negRest := splitConclusion(goalDNF)
	//
	for _, hyp := range hypDNF.Disjuncts() {
		for _, extra := range negRest.Disjuncts() {
			strengthened := make(constraint.Conjunction, 0, len(hyp)+len(extra))
			strengthened = append(strengthened, hyp...)
			strengthened = append(strengthened, extra...)
			//
			if err := encodePair(cfg, alloc, index, clause, strengthened, goal, branches, &result); err != nil {
				return clauseResult{}, err
			}
		}
	}
	//
	return result, nil
}

// splitConclusion picks the first disjunct of the conclusion as the proof
// goal and returns the negation of the remainder, in DNF with disequalities
// split.  A logically false conclusion yields the unprovable goal "-1 >= 0",
// which forces the encoder onto the hypothesis-emptiness branches.
func splitConclusion(goalDNF constraint.DNF) (constraint.Conjunction, constraint.DNF) {
	disjuncts := goalDNF.Disjuncts()
	//
	if len(disjuncts) == 0 {
		falsum := constraint.GeZero(poly.NewConstPoly(poly.ConstInt(-1)))
		return constraint.Conjunction{falsum}, constraint.TruthDNF(true)
	}
	//
	goal := disjuncts[0]
	rest := constraint.NewDNF(disjuncts[1:]...)
	//
	return goal, rest.Not().SplitDisequalities()
}

// encodePair encodes a single (hypothesis conjunction, goal conjunction)
// implication.  Equality atoms are first canonicalised into the inequality
// fragment the certificate theorems operate on.
func encodePair(cfg Config, alloc *encoder.Allocator, index int, clause *constraint.Clause,
	hyp constraint.Conjunction, goal constraint.Conjunction, branches encoder.Branches, result *clauseResult,
) error {
	hyp = canonicalHypothesis(hyp)
	//
	goals, err := canonicalGoals(index, goal)
	if err != nil {
		return err
	}
	//
	encCfg := cfg.Encoder
	//
	if encCfg.Theorem == encoder.Auto {
		encCfg.Theorem = resolveTheorem(hyp, goals)
		// Degree budgets follow the degrees actually present in the pair.
		deg := maxDegree(hyp, goals)
		encCfg.DegreeOfSat = deg
		encCfg.DegreeOfNonstrictUnsat = deg
		encCfg.DegreeOfStrictUnsat = deg
		encCfg.MaxDOfStrict = deg
		//
		if err := encCfg.Validate(branches); err != nil {
			return err
		}
	}
	//
	prov := encoder.Provenance{Clause: index, Disjunct: len(result.assertions)}
	//
	for _, g := range goals {
		cert, err := encoder.Encode(encCfg, alloc, prov, clause.Quantified, hyp, g, branches)
		if err != nil {
			return err
		}
		//
		result.add(cert)
		prov.Disjunct = len(result.assertions)
	}
	//
	return nil
}

// compileDirect turns a direct (unquantified) clause into assertions over the
// unknowns themselves.  Every polynomial must be free of quantified
// variables, i.e. consist of the unit monomial only.
func compileDirect(index int, clause *constraint.Clause) (clauseResult, error) {
	dnf := constraint.Normalize(clause.Conclusion).SplitDisequalities()
	//
	var out constraint.ExprDNF
	//
	for _, conj := range dnf.Disjuncts() {
		var econj constraint.ExprConjunction
		//
		for _, atom := range conj {
			expr, ok := directExpr(atom.Poly)
			if !ok {
				return clauseResult{}, &constraint.FormulaError{
					Clause: index,
					Msg:    fmt.Sprintf("direct constraint %s mentions a quantified variable", atom.String()),
				}
			}
			//
			econj = append(econj, constraint.ExprConstraint{Expr: expr, Rel: atom.Rel})
		}
		//
		out = append(out, econj)
	}
	//
	return clauseResult{assertions: []constraint.ExprDNF{out}}, nil
}

// directExpr extracts the coefficient expression of a polynomial with no
// quantified variables.
func directExpr(p poly.Polynomial) (poly.Expr, bool) {
	if p.IsZero() {
		return poly.Zero(), true
	}
	//
	expr, ok := p.Constant()
	//
	return expr, ok
}

// canonicalHypothesis rewrites hypothesis atoms into the GT/GE fragment:
// "p = 0" becomes "p >= 0" together with "-p >= 0".  Disequalities were
// already split during DNF construction.
func canonicalHypothesis(hyp constraint.Conjunction) constraint.Conjunction {
	out := make(constraint.Conjunction, 0, len(hyp))
	//
	for _, atom := range hyp {
		if atom.Rel == constraint.EQ {
			out = append(out, constraint.GeZero(atom.Poly), constraint.GeZero(atom.Poly.Neg()))
		} else {
			out = append(out, atom)
		}
	}
	//
	return out
}

// canonicalGoals splits a goal conjunction into individual inequality atoms:
// "p = 0" proves as "p >= 0" together with "-p >= 0".  Disequality goals
// have no certificate form and are rejected.
func canonicalGoals(index int, goal constraint.Conjunction) ([]constraint.Atom, error) {
	out := make([]constraint.Atom, 0, len(goal))
	//
	for _, atom := range goal {
		switch atom.Rel {
		case constraint.EQ:
			out = append(out, constraint.GeZero(atom.Poly), constraint.GeZero(atom.Poly.Neg()))
		case constraint.NE:
			return nil, &constraint.FormulaError{
				Clause: index,
				Msg:    fmt.Sprintf("disequality conclusion %s has no certificate", atom.String()),
			}
		default:
			out = append(out, atom)
		}
	}
	//
	return out, nil
}

// resolveTheorem picks a concrete certificate theorem for one implication:
// Farkas when everything is affine, Handelman when only the hypothesis is
// affine, Putinar otherwise.
func resolveTheorem(hyp constraint.Conjunction, goals []constraint.Atom) encoder.Theorem {
	hypAffine, goalAffine := true, true
	//
	for _, atom := range hyp {
		hypAffine = hypAffine && atom.Poly.IsAffine()
	}
	//
	for _, atom := range goals {
		goalAffine = goalAffine && atom.Poly.IsAffine()
	}
	//
	switch {
	case hypAffine && goalAffine:
		return encoder.Farkas
	case hypAffine:
		return encoder.Handelman
	default:
		return encoder.Putinar
	}
}

// maxDegree is the largest polynomial degree occurring in the pair, the
// default degree budget under automatic theorem resolution.
func maxDegree(hyp constraint.Conjunction, goals []constraint.Atom) int {
	d := uint(0)
	//
	for _, atom := range hyp {
		d = max(d, atom.Poly.Degree())
	}
	//
	for _, atom := range goals {
		d = max(d, atom.Poly.Degree())
	}
	//
	return int(d)
}

func countConstraints(assertions []constraint.ExprDNF) int {
	n := 0
	//
	for _, dnf := range assertions {
		for _, conj := range dnf {
			n += len(conj)
		}
	}
	//
	return n
}
