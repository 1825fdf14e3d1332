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
	"math/big"
	"testing"

	"github.com/polyhorn/go-polyhorn/pkg/poly"
)

func Test_Reader_01(t *testing.T) {
	system := checkRead(t, `
		(declare-const c Real)
		(assert (>= c 1))
		(check-sat)
	`)
	//
	if len(system.Unknowns) != 1 || system.Unknowns[0].Name != "c" {
		t.Fatalf("expected unknown c, got %v", system.Unknowns)
	}
	//
	if len(system.Clauses) != 1 || !system.Clauses[0].IsDirect() {
		t.Fatalf("expected one direct clause")
	}
}

func Test_Reader_02(t *testing.T) {
	system := checkRead(t, `
		(declare-const c1 Real)
		(declare-const c2 Real)
		(assert (forall ((x Real))
			(=> (>= x 0) (>= (+ (* c1 x) c2) 0))))
	`)
	//
	clause := system.Clauses[0]
	//
	if clause.IsDirect() {
		t.Fatal("expected Horn clause")
	}
	//
	if len(clause.Quantified) != 1 || clause.Quantified[0].Name != "x" {
		t.Fatalf("expected quantified x, got %v", clause.Quantified)
	}
	// Under c1=1, c2=2, x=3: hypothesis 3>=0 and conclusion 5>=0 hold.
	qenv := env(map[string]int64{"x": 3})
	uenv := env(map[string]int64{"c1": 1, "c2": 2})
	//
	if !EvalFormula(clause.Hypothesis, qenv, uenv) {
		t.Error("hypothesis should hold")
	}
	//
	if !EvalFormula(clause.Conclusion, qenv, uenv) {
		t.Error("conclusion should hold")
	}
	// Under c1=-1, c2=0, x=3: conclusion -3>=0 fails.
	uenv = env(map[string]int64{"c1": -1, "c2": 0})
	//
	if EvalFormula(clause.Conclusion, qenv, uenv) {
		t.Error("conclusion should fail")
	}
}

func Test_Reader_03(t *testing.T) {
	// relations <, <=, = and != all normalise onto "p ▷ 0"
	system := checkRead(t, `
		(declare-const c Real)
		(assert (forall ((x Real))
			(=> (and (< x 10) (<= 0 x)) (!= (- x c) 5))))
	`)
	//
	clause := system.Clauses[0]
	qenv := env(map[string]int64{"x": 3})
	uenv := env(map[string]int64{"c": 1})
	// 3 < 10 and 0 <= 3
	if !EvalFormula(clause.Hypothesis, qenv, uenv) {
		t.Error("hypothesis should hold")
	}
	// 3 - 1 != 5
	if !EvalFormula(clause.Conclusion, qenv, uenv) {
		t.Error("conclusion should hold")
	}
	// x - c = 5 under x=6, c=1
	qenv = env(map[string]int64{"x": 6})
	//
	if EvalFormula(clause.Conclusion, qenv, uenv) {
		t.Error("conclusion should fail")
	}
}

func Test_Reader_04(t *testing.T) {
	// integer sorts, nested arithmetic and division by a constant
	system := checkRead(t, `
		(declare-const c Int)
		(assert (forall ((n Int))
			(=> (>= n 0) (>= (/ (* 2 n) 2) (- 0 c)))))
	`)
	//
	if system.Unknowns[0].Domain != poly.Integer {
		t.Error("expected integer unknown")
	}
	//
	if system.Clauses[0].Quantified[0].Domain != poly.Integer {
		t.Error("expected integer quantified variable")
	}
}

func Test_Reader_05(t *testing.T) {
	// forall without implication means an unconditional conclusion
	system := checkRead(t, `
		(declare-const c Real)
		(assert (forall ((x Real)) (>= (* x x) c)))
	`)
	//
	clause := system.Clauses[0]
	//
	if clause.IsDirect() {
		t.Fatal("expected Horn clause")
	}
	//
	if !EvalFormula(clause.Hypothesis, zeroEnv, zeroEnv) {
		t.Error("hypothesis should be trivially true")
	}
}

func Test_Reader_06(t *testing.T) {
	// declare-fun with no arguments is a constant declaration
	system := checkRead(t, `
		(declare-fun c () Real)
		(assert (>= c 0))
	`)
	//
	if len(system.Unknowns) != 1 || system.Unknowns[0].Name != "c" {
		t.Fatalf("expected unknown c, got %v", system.Unknowns)
	}
}

func Test_Reader_Err_01(t *testing.T) {
	checkReadErr(t, "(assert (>= c 0))") // undeclared variable
}

func Test_Reader_Err_02(t *testing.T) {
	checkReadErr(t, "(declare-const c Real)(declare-const c Real)")
}

func Test_Reader_Err_03(t *testing.T) {
	checkReadErr(t, "(declare-const c Bool)")
}

func Test_Reader_Err_04(t *testing.T) {
	// quantified variable shadowing an unknown
	checkReadErr(t, `
		(declare-const x Real)
		(assert (forall ((x Real)) (>= x 0)))
	`)
}

func Test_Reader_Err_05(t *testing.T) {
	// non-constant divisor
	checkReadErr(t, `
		(declare-const c Real)
		(assert (forall ((x Real)) (>= (/ c x) 0)))
	`)
}

// ===================================================================
// Helpers
// ===================================================================

func checkRead(t *testing.T, input string) *System {
	t.Helper()
	//
	system, err := ReadSystem(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	//
	if err := system.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	//
	return system
}

func checkReadErr(t *testing.T, input string) {
	t.Helper()
	//
	if _, err := ReadSystem(input); err == nil {
		t.Fatal("expected error")
	}
}

func env(vals map[string]int64) func(string) *big.Rat {
	return func(name string) *big.Rat {
		if v, ok := vals[name]; ok {
			return big.NewRat(v, 1)
		}
		//
		return big.NewRat(0, 1)
	}
}
