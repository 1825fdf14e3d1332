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
package solver

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/polyhorn/go-polyhorn/pkg/constraint"
	"github.com/polyhorn/go-polyhorn/pkg/poly"
)

// Script is an SMT-LIB 2 problem under construction: declarations,
// assertions and an optional set of named "pin to zero" assertions used for
// unsat core extraction.
type Script struct {
	vars    []poly.Variable
	asserts []string
	pins    []pin
	cores   bool
}

type pin struct {
	label string
	name  string
}

// NewScript starts an empty script.
func NewScript() *Script {
	return &Script{}
}

// Declare adds a constant declaration for the given variable.
func (s *Script) Declare(v poly.Variable) {
	s.vars = append(s.vars, v)
}

// Assert adds one assertion covering the whole disjunction.  A single
// conjunction is flattened into one assertion per constraint, which solvers
// digest better.
func (s *Script) Assert(d constraint.ExprDNF) {
	if len(d) == 1 {
		for _, ec := range d[0] {
			s.asserts = append(s.asserts, sexpConstraint(ec))
		}
		//
		return
	}
	//
	var disjuncts []string
	//
	for _, conj := range d {
		disjuncts = append(disjuncts, sexpConjunction(conj))
	}
	//
	s.asserts = append(s.asserts, sexpApply("or", disjuncts))
}

// Pin adds a named assertion forcing the given variable to zero, and enables
// unsat core production.  Labels are reported back verbatim in cores.
func (s *Script) Pin(label string, name string) {
	s.pins = append(s.pins, pin{label, name})
	s.cores = true
}

// Variables returns the declared variable names, in declaration order.
func (s *Script) Variables() []string {
	names := make([]string, len(s.vars))
	//
	for i, v := range s.vars {
		names[i] = v.Name
	}
	//
	return names
}

// String renders the complete script: options, declarations, assertions,
// check-sat and the appropriate followup queries.
func (s *Script) String() string {
	var sb strings.Builder
	//
	if s.cores {
		sb.WriteString("(set-option :produce-unsat-cores true)\n")
	}
	//
	for _, v := range s.vars {
		fmt.Fprintf(&sb, "(declare-const %s %s)\n", v.Name, v.Domain)
	}
	//
	for _, a := range s.asserts {
		fmt.Fprintf(&sb, "(assert %s)\n", a)
	}
	//
	for _, p := range s.pins {
		fmt.Fprintf(&sb, "(assert (! (= %s 0) :named %s))\n", p.name, p.label)
	}
	//
	sb.WriteString("(check-sat)\n")
	//
	if s.cores {
		sb.WriteString("(get-unsat-core)\n")
	}
	//
	if len(s.vars) > 0 {
		fmt.Fprintf(&sb, "(get-value (%s))\n", strings.Join(s.Variables(), " "))
	}
	//
	return sb.String()
}

// ===================================================================
// Preorder rendering
// ===================================================================

// sexpConstraint renders one constraint as "(rel expr 0)".
func sexpConstraint(ec constraint.ExprConstraint) string {
	expr := sexpExpr(ec.Expr)
	//
	if ec.Rel == constraint.NE {
		return fmt.Sprintf("(not (= %s 0))", expr)
	}
	//
	return fmt.Sprintf("(%s %s 0)", ec.Rel, expr)
}

func sexpConjunction(conj constraint.ExprConjunction) string {
	parts := make([]string, len(conj))
	//
	for i, ec := range conj {
		parts[i] = sexpConstraint(ec)
	}
	//
	return sexpApply("and", parts)
}

// sexpExpr renders a linear expression over unknown and auxiliary variables
// as a sum of products.
func sexpExpr(e poly.Expr) string {
	elems := e.Elements()
	//
	if len(elems) == 0 {
		return "0"
	}
	//
	parts := make([]string, len(elems))
	//
	for i, el := range elems {
		parts[i] = sexpElement(el)
	}
	//
	return sexpApply("+", parts)
}

func sexpElement(el poly.Element) string {
	vars := el.Vars()
	c := el.Constant()
	//
	if len(vars) == 0 {
		return sexpRat(c)
	}
	// Omit unit coefficients to keep scripts readable.
	if c.Cmp(big.NewRat(1, 1)) == 0 {
		return sexpApply("*", vars)
	}
	//
	return sexpApply("*", append([]string{sexpRat(c)}, vars...))
}

// sexpRat renders an exact rational in SMT-LIB syntax, wrapping negatives in
// a unary minus.
func sexpRat(r *big.Rat) string {
	neg := r.Sign() < 0
	abs := new(big.Rat).Abs(r)
	//
	var body string
	//
	if abs.IsInt() {
		body = abs.Num().String()
	} else {
		body = fmt.Sprintf("(/ %s %s)", abs.Num(), abs.Denom())
	}
	//
	if neg {
		return fmt.Sprintf("(- %s)", body)
	}
	//
	return body
}

// sexpApply renders an n-ary application, collapsing the unary case and
// substituting the operator's neutral element for the empty one.
func sexpApply(op string, args []string) string {
	switch {
	case len(args) == 1:
		return args[0]
	case len(args) > 1:
		return fmt.Sprintf("(%s %s)", op, strings.Join(args, " "))
	case op == "and":
		return "true"
	case op == "or":
		return "false"
	default:
		return "0"
	}
}
