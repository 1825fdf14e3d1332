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
	"math/big"
	"testing"

	"github.com/polyhorn/go-polyhorn/pkg/constraint"
	"github.com/polyhorn/go-polyhorn/pkg/poly"
)

func Test_Script_01(t *testing.T) {
	// single-conjunction assertions are flattened constraint by constraint
	script := NewScript()
	script.Declare(poly.UnknownVar("a", poly.Real))
	script.Declare(poly.UnknownVar("b", poly.Integer))
	script.Assert(constraint.ExprDNF{{
		{Expr: poly.Var("a").Sub(poly.ConstInt(1)), Rel: constraint.GE},
		{Expr: poly.Var("b"), Rel: constraint.GT},
	}})
	//
	expected := "(declare-const a Real)\n" +
		"(declare-const b Int)\n" +
		"(assert (>= (+ (- 1) a) 0))\n" +
		"(assert (> b 0))\n" +
		"(check-sat)\n" +
		"(get-value (a b))\n"
	//
	checkScript(t, script, expected)
}

func Test_Script_02(t *testing.T) {
	// a proper disjunction renders as one or-assertion
	script := NewScript()
	script.Declare(poly.UnknownVar("a", poly.Real))
	script.Assert(constraint.ExprDNF{
		{
			{Expr: poly.Var("a"), Rel: constraint.GE},
			{Expr: poly.Var("b"), Rel: constraint.GE},
		},
		{
			{Expr: poly.Var("a"), Rel: constraint.NE},
		},
	})
	//
	expected := "(declare-const a Real)\n" +
		"(assert (or (and (>= a 0) (>= b 0)) (not (= a 0))))\n" +
		"(check-sat)\n" +
		"(get-value (a))\n"
	//
	checkScript(t, script, expected)
}

func Test_Script_03(t *testing.T) {
	// pinning enables unsat core production
	script := NewScript()
	script.Declare(poly.AuxiliaryVar("lam!c0!0", poly.Real))
	script.Assert(constraint.ExprDNF{{
		{Expr: poly.Var("lam!c0!0"), Rel: constraint.GE},
	}})
	script.Pin("pin-lam!c0!0", "lam!c0!0")
	//
	expected := "(set-option :produce-unsat-cores true)\n" +
		"(declare-const lam!c0!0 Real)\n" +
		"(assert (>= lam!c0!0 0))\n" +
		"(assert (! (= lam!c0!0 0) :named pin-lam!c0!0))\n" +
		"(check-sat)\n" +
		"(get-unsat-core)\n" +
		"(get-value (lam!c0!0))\n"
	//
	checkScript(t, script, expected)
}

func Test_Script_04(t *testing.T) {
	// exact rationals, negative coefficients, quadratic elements
	half := poly.Var("a").Scale(big.NewRat(1, 2)).Add(poly.Const(big.NewRat(-1, 2)))
	square := poly.Var("b").Mul(poly.Var("b")).Sub(poly.Var("a").Scale(big.NewRat(3, 1)))
	//
	script := NewScript()
	script.Assert(constraint.ExprDNF{{
		{Expr: half, Rel: constraint.EQ},
		{Expr: square, Rel: constraint.GT},
	}})
	//
	expected := "(assert (= (+ (- (/ 1 2)) (* (/ 1 2) a)) 0))\n" +
		"(assert (> (+ (* (- 3) a) (* b b)) 0))\n" +
		"(check-sat)\n"
	//
	checkScript(t, script, expected)
}

func Test_Script_05(t *testing.T) {
	// degenerate bodies: the zero expression and the empty disjunction
	script := NewScript()
	script.Assert(constraint.ExprDNF{{
		{Expr: poly.Zero(), Rel: constraint.EQ},
	}})
	script.Assert(constraint.ExprDNF{})
	//
	expected := "(assert (= 0 0))\n" +
		"(assert false)\n" +
		"(check-sat)\n"
	//
	checkScript(t, script, expected)
}

func checkScript(t *testing.T, script *Script, expected string) {
	t.Helper()
	//
	if got := script.String(); got != expected {
		t.Errorf("script mismatch:\n--- expected\n%s--- got\n%s", expected, got)
	}
}
