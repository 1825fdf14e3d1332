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
package poly

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func Test_Expr_01(t *testing.T) {
	checkExprEval(t, Zero(), 0)
}

func Test_Expr_02(t *testing.T) {
	checkExprEval(t, One(), 1)
}

func Test_Expr_03(t *testing.T) {
	// a + b under a=2, b=3
	checkExprEval(t, Var("a").Add(Var("b")), 5)
}

func Test_Expr_04(t *testing.T) {
	// a * b under a=2, b=3
	checkExprEval(t, Var("a").Mul(Var("b")), 6)
}

func Test_Expr_05(t *testing.T) {
	// a - a collapses to zero
	e := Var("a").Sub(Var("a"))
	//
	if !e.IsZero() {
		t.Errorf("expected zero, got %s", e)
	}
}

func Test_Expr_06(t *testing.T) {
	// 2a + 3a = 5a
	lhs := Var("a").Scale(big.NewRat(2, 1)).Add(Var("a").Scale(big.NewRat(3, 1)))
	rhs := Var("a").Scale(big.NewRat(5, 1))
	//
	if !lhs.Equal(rhs) {
		t.Errorf("expected %s == %s", lhs, rhs)
	}
}

func Test_Expr_07(t *testing.T) {
	// (a + 1)(a - 1) = a² - 1
	one := One()
	lhs := Var("a").Add(one).Mul(Var("a").Sub(one))
	rhs := Var("a").Mul(Var("a")).Sub(one)
	//
	if !lhs.Equal(rhs) {
		t.Errorf("expected %s == %s", lhs, rhs)
	}
}

func Test_Expr_08(t *testing.T) {
	// substituting a=2 into a*b + a yields 2b + 2
	e := Var("a").Mul(Var("b")).Add(Var("a"))
	sub := e.SubstituteVar("a", big.NewRat(2, 1))
	expected := Var("b").Scale(big.NewRat(2, 1)).Add(Const(big.NewRat(2, 1)))
	//
	if !sub.Equal(expected) {
		t.Errorf("expected %s == %s", sub, expected)
	}
}

func Test_Expr_09(t *testing.T) {
	// substitution into a² is applied at every occurrence
	e := Var("a").Mul(Var("a"))
	sub := e.SubstituteVar("a", big.NewRat(3, 1))
	//
	if c, ok := sub.Constant(); !ok || c.Cmp(big.NewRat(9, 1)) != 0 {
		t.Errorf("expected 9, got %s", sub)
	}
}

func Test_Expr_10(t *testing.T) {
	// degree of a*b + c is 2
	e := Var("a").Mul(Var("b")).Add(Var("c"))
	//
	if e.Degree() != 2 {
		t.Errorf("expected degree 2, got %d", e.Degree())
	}
}

func Test_Expr_11(t *testing.T) {
	vars := make(map[string]bool)
	Var("a").Mul(Var("b")).Add(Var("c")).CollectVars(vars)
	//
	if len(vars) != 3 || !vars["a"] || !vars["b"] || !vars["c"] {
		t.Errorf("expected {a b c}, got %v", vars)
	}
}

// ===================================================================
// Ring laws
// ===================================================================

func Test_Expr_Laws(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	//
	properties.Property("addition commutes", prop.ForAll(
		func(a, b int64) bool {
			x, y := genExpr(a), genExpr(b)
			return x.Add(y).Equal(y.Add(x))
		}, gen.Int64(), gen.Int64()))
	//
	properties.Property("multiplication commutes", prop.ForAll(
		func(a, b int64) bool {
			x, y := genExpr(a), genExpr(b)
			return x.Mul(y).Equal(y.Mul(x))
		}, gen.Int64(), gen.Int64()))
	//
	properties.Property("multiplication distributes over addition", prop.ForAll(
		func(a, b, c int64) bool {
			x, y, z := genExpr(a), genExpr(b), genExpr(c)
			return x.Mul(y.Add(z)).Equal(x.Mul(y).Add(x.Mul(z)))
		}, gen.Int64(), gen.Int64(), gen.Int64()))
	//
	properties.Property("subtraction inverts addition", prop.ForAll(
		func(a, b int64) bool {
			x, y := genExpr(a), genExpr(b)
			return x.Add(y).Sub(y).Equal(x)
		}, gen.Int64(), gen.Int64()))
	//
	properties.TestingRun(t)
}

// genExpr derives a small expression from a seed, mixing constants and the
// variables a and b.
func genExpr(seed int64) Expr {
	c := seed % 7
	//
	switch seed % 3 {
	case 0:
		return ConstInt(c)
	case 1:
		return Var("a").Scale(big.NewRat(c, 1)).Add(ConstInt(seed % 5))
	default:
		return Var("a").Mul(Var("b")).Scale(big.NewRat(c, 1)).Add(Var("b"))
	}
}

func checkExprEval(t *testing.T, e Expr, expected int64) {
	t.Helper()
	//
	env := ratEnv(map[string]int64{"a": 2, "b": 3, "c": 4})
	actual := e.Eval(env)
	//
	if actual.Cmp(big.NewRat(expected, 1)) != 0 {
		t.Errorf("evaluating %s: expected %d, got %s", e, expected, actual)
	}
}

func ratEnv(vals map[string]int64) func(string) *big.Rat {
	return func(name string) *big.Rat {
		if v, ok := vals[name]; ok {
			return big.NewRat(v, 1)
		}
		//
		return big.NewRat(0, 1)
	}
}
