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
	"math/big"
	"testing"

	"github.com/polyhorn/go-polyhorn/pkg/constraint"
	"github.com/polyhorn/go-polyhorn/pkg/poly"
)

func Test_Eliminate_01(t *testing.T) {
	// forall x. x >= 0 ==> x + 1 >= 0 pins both multipliers to 1; elimination
	// leaves a closed system
	x := poly.NewVarPoly("x")
	clause := constraint.HornClause(
		[]poly.Variable{poly.QuantifiedVar("x", poly.Real)},
		constraint.GeZero(x), constraint.GeZero(x.Add(onePoly())))
	system := &constraint.System{Clauses: []constraint.Clause{clause}}
	//
	cfg := farkasConfig()
	cfg.EliminateConstants = true
	aggregate := compileOk(t, cfg, system)
	// every occurrence substituted away: the empty assignment satisfies it
	checkEval(t, aggregate, nil, true)
	//
	set := make(map[string]bool)
	for _, a := range aggregate.Assertions {
		a.CollectVars(set)
	}
	//
	if len(set) != 0 {
		t.Errorf("variables survived elimination: %v", set)
	}
}

func Test_Eliminate_02(t *testing.T) {
	// unknowns are never eliminated, even when pinned by an equality
	system := &constraint.System{
		Unknowns: []poly.Variable{poly.UnknownVar("c1", poly.Real)},
		Clauses: []constraint.Clause{
			constraint.DirectClause(constraint.EqZero(unknownPoly("c1").Sub(onePoly()))),
		},
	}
	cfg := farkasConfig()
	cfg.EliminateConstants = true
	aggregate := compileOk(t, cfg, system)
	//
	checkEval(t, aggregate, map[string]int64{"c1": 1}, true)
	checkEval(t, aggregate, nil, false)
}

func Test_Eliminate_03(t *testing.T) {
	// multipliers tied to an unknown rather than a constant stay put
	aggregate := compileOk(t, farkasConfig(), templateSystem())
	before := aggregate.Assertions[0].String()
	//
	aggregate.EliminateConstants()
	//
	if after := aggregate.Assertions[0].String(); before != after {
		t.Errorf("elimination changed a non-constant system:\n%s\n%s", before, after)
	}
}

func Test_Project_01(t *testing.T) {
	aggregate := compileOk(t, farkasConfig(), templateSystem())
	valuation := map[string]*big.Rat{
		"c1":       big.NewRat(1, 1),
		"c2":       big.NewRat(1, 2),
		"lam!c0!0": big.NewRat(1, 2),
		"lam!c0!1": big.NewRat(1, 1),
	}
	model := aggregate.Project(valuation)
	//
	if len(model) != 2 {
		t.Fatalf("expected 2 model entries, got %d", len(model))
	}
	//
	if model["c1"].Cmp(big.NewRat(1, 1)) != 0 || model["c2"].Cmp(big.NewRat(1, 2)) != 0 {
		t.Errorf("unexpected model %v", model)
	}
	//
	if _, ok := model["lam!c0!0"]; ok {
		t.Error("auxiliary leaked into the model")
	}
}

func Test_Project_02(t *testing.T) {
	// unknowns absent from the valuation are simply omitted
	aggregate := compileOk(t, farkasConfig(), templateSystem())
	model := aggregate.Project(map[string]*big.Rat{"c1": big.NewRat(3, 1)})
	//
	if len(model) != 1 || model["c1"].Cmp(big.NewRat(3, 1)) != 0 {
		t.Errorf("unexpected model %v", model)
	}
}
