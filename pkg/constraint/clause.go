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
	"fmt"

	"github.com/polyhorn/go-polyhorn/pkg/poly"
)

// Clause is one obligation of a constraint system: either a direct
// (quantifier-free) constraint over the unknown variables alone, or a
// polynomial Horn clause "forall quantified vars . hypothesis ==> conclusion".
type Clause struct {
	// Quantified variables bound by this clause, with their domains.  Empty
	// for direct clauses.
	Quantified []poly.Variable
	// Hypothesis of the implication, or nil for a direct clause.
	Hypothesis Formula
	// Conclusion of the implication; for a direct clause, the constraint
	// itself.
	Conclusion Formula
}

// DirectClause constructs a clause holding a bare constraint over the unknown
// variables.
func DirectClause(f Formula) Clause {
	return Clause{Conclusion: f}
}

// HornClause constructs a universally quantified implication.
func HornClause(quantified []poly.Variable, hypothesis Formula, conclusion Formula) Clause {
	return Clause{Quantified: quantified, Hypothesis: hypothesis, Conclusion: conclusion}
}

// IsDirect checks whether this clause is a direct constraint rather than an
// implication.
func (c *Clause) IsDirect() bool {
	return c.Hypothesis == nil
}

// FormulaError reports a structurally malformed clause.  It is fatal and
// raised before any encoding takes place.
type FormulaError struct {
	// Clause index within the system.
	Clause int
	// Msg describes what is malformed.
	Msg string
}

func (e *FormulaError) Error() string {
	return fmt.Sprintf("clause %d: %s", e.Clause, e.Msg)
}

// System is the parsed formula model consumed by the pipeline: the
// user-declared unknown variables and the clauses constraining them.
type System struct {
	// Unknowns are the user-declared template variables whose values
	// constitute the answer.
	Unknowns []poly.Variable
	// Clauses of the system, in declaration order.
	Clauses []Clause
}

// Validate checks the structural well-formedness of the system: conclusions
// are present, every variable mentioned is declared, and direct clauses do
// not reference quantified variables.  The first offence is reported as a
// FormulaError.
func (s *System) Validate() error {
	unknowns := make(map[string]bool)
	//
	for _, v := range s.Unknowns {
		unknowns[v.Name] = true
	}
	//
	for i := range s.Clauses {
		if err := s.Clauses[i].validate(i, unknowns); err != nil {
			return err
		}
	}
	//
	return nil
}

func (c *Clause) validate(index int, unknowns map[string]bool) error {
	if c.Conclusion == nil {
		return &FormulaError{index, "clause has no conclusion"}
	}
	//
	quantified := make(map[string]bool)
	//
	for _, v := range c.Quantified {
		if v.Kind != poly.Quantified {
			return &FormulaError{index, fmt.Sprintf("bound variable %s is not quantified", v.Name)}
		}
		//
		quantified[v.Name] = true
	}
	// Gather every atom of the clause
	atoms := Atoms(c.Conclusion, nil)
	if c.Hypothesis != nil {
		atoms = Atoms(c.Hypothesis, atoms)
	}
	//
	for _, a := range atoms {
		qvars := make(map[string]bool)
		uvars := make(map[string]bool)
		a.Poly.CollectQuantified(qvars)
		a.Poly.CollectCoeffVars(uvars)
		//
		for name := range qvars {
			if !quantified[name] {
				return &FormulaError{index, fmt.Sprintf("undeclared quantified variable %s", name)}
			}
		}
		//
		for name := range uvars {
			if !unknowns[name] {
				return &FormulaError{index, fmt.Sprintf("undeclared unknown variable %s", name)}
			}
		}
	}
	//
	return nil
}
