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

// x, y as quantified polynomials
func xPoly() poly.Polynomial { return poly.NewVarPoly("x") }
func yPoly() poly.Polynomial { return poly.NewVarPoly("y") }

func Test_Dnf_01(t *testing.T) {
	checkNormalize(t, GtZero(xPoly()))
}

func Test_Dnf_02(t *testing.T) {
	checkNormalize(t, NewAnd(GtZero(xPoly()), GeZero(yPoly())))
}

func Test_Dnf_03(t *testing.T) {
	checkNormalize(t, NewOr(GtZero(xPoly()), GeZero(yPoly())))
}

func Test_Dnf_04(t *testing.T) {
	// (x > 0 or y >= 0) and (y > 0 or x >= 0) distributes into four disjuncts
	f := NewAnd(
		NewOr(GtZero(xPoly()), GeZero(yPoly())),
		NewOr(GtZero(yPoly()), GeZero(xPoly())))
	//
	checkNormalize(t, f)
	//
	if n := len(Normalize(f).Disjuncts()); n != 4 {
		t.Errorf("expected 4 disjuncts, got %d", n)
	}
}

func Test_Dnf_05(t *testing.T) {
	// negation pushes through conjunction
	checkNormalize(t, Not{NewAnd(GtZero(xPoly()), GeZero(yPoly()))})
}

func Test_Dnf_06(t *testing.T) {
	// negation pushes through disjunction
	checkNormalize(t, Not{NewOr(GtZero(xPoly()), EqZero(yPoly()))})
}

func Test_Dnf_07(t *testing.T) {
	// double negation
	checkNormalize(t, Not{Not{GtZero(xPoly())}})
}

func Test_Dnf_08(t *testing.T) {
	checkNormalize(t, Truth{true})
	checkNormalize(t, Truth{false})
}

func Test_Dnf_09(t *testing.T) {
	// conjunction with false short-circuits
	f := NewAnd(GtZero(xPoly()), Truth{false}, GeZero(yPoly()))
	//
	if !Normalize(f).IsFalse() {
		t.Error("expected false DNF")
	}
}

func Test_Dnf_10(t *testing.T) {
	// DNF negation is logically sound
	f := NewOr(NewAnd(GtZero(xPoly()), GeZero(yPoly())), EqZero(xPoly()))
	dnf := Normalize(f)
	neg := dnf.Not()
	//
	forEachEnv(func(qenv func(string) *big.Rat) {
		a := dnf.Eval(qenv, zeroEnv)
		b := neg.Eval(qenv, zeroEnv)
		//
		if a == b {
			t.Errorf("negation agrees with original under x=%s y=%s", qenv("x"), qenv("y"))
		}
	})
}

func Test_Dnf_11(t *testing.T) {
	// disequality split preserves meaning and eliminates every != atom
	f := NewAnd(NeZero(xPoly()), GeZero(yPoly()))
	dnf := Normalize(f)
	split := dnf.SplitDisequalities()
	//
	for _, conj := range split.Disjuncts() {
		for _, atom := range conj {
			if atom.Rel == NE {
				t.Fatalf("residual disequality %s", atom)
			}
		}
	}
	//
	forEachEnv(func(qenv func(string) *big.Rat) {
		if dnf.Eval(qenv, zeroEnv) != split.Eval(qenv, zeroEnv) {
			t.Errorf("split disagrees under x=%s y=%s", qenv("x"), qenv("y"))
		}
	})
}

func Test_Dnf_12(t *testing.T) {
	// atom negation table
	checkNegation(t, GtZero(xPoly()))
	checkNegation(t, GeZero(xPoly()))
	checkNegation(t, EqZero(xPoly()))
	checkNegation(t, NeZero(xPoly()))
}

// ===================================================================
// Helpers
// ===================================================================

// checkNormalize verifies that DNF conversion preserves meaning over a grid
// of environments.
func checkNormalize(t *testing.T, f Formula) {
	t.Helper()
	//
	dnf := Normalize(f)
	//
	forEachEnv(func(qenv func(string) *big.Rat) {
		expected := EvalFormula(f, qenv, zeroEnv)
		actual := dnf.Eval(qenv, zeroEnv)
		//
		if expected != actual {
			t.Errorf("normalising %s: expected %t under x=%s y=%s, got %t",
				f, expected, qenv("x"), qenv("y"), actual)
		}
	})
}

func checkNegation(t *testing.T, a Atom) {
	t.Helper()
	//
	neg := a.Negate()
	//
	forEachEnv(func(qenv func(string) *big.Rat) {
		if a.Eval(qenv, zeroEnv) == neg.Eval(qenv, zeroEnv) {
			t.Errorf("%s agrees with %s under x=%s", a, neg, qenv("x"))
		}
	})
}

// forEachEnv enumerates environments assigning x and y small values either
// side of zero.
func forEachEnv(fn func(func(string) *big.Rat)) {
	vals := []int64{-2, -1, 0, 1, 2}
	//
	for _, x := range vals {
		for _, y := range vals {
			env := map[string]*big.Rat{
				"x": big.NewRat(x, 1),
				"y": big.NewRat(y, 1),
			}
			//
			fn(func(name string) *big.Rat {
				if v, ok := env[name]; ok {
					return v
				}
				//
				return big.NewRat(0, 1)
			})
		}
	}
}

func zeroEnv(string) *big.Rat {
	return big.NewRat(0, 1)
}
