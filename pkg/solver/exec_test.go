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
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/polyhorn/go-polyhorn/pkg/constraint"
	"github.com/polyhorn/go-polyhorn/pkg/poly"
)

func Test_Exec_01(t *testing.T) {
	_, err := NewExecOracle("no-such-solver")
	//
	var oerr *OracleError
	if !errors.As(err, &oerr) || oerr.Kind != ErrUnavailable {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}

func Test_Exec_02(t *testing.T) {
	oracle := requireZ3(t)
	// x >= 1 is satisfiable
	script := NewScript()
	script.Declare(poly.UnknownVar("x", poly.Real))
	script.Assert(constraint.ExprDNF{{
		{Expr: poly.Var("x").Sub(poly.ConstInt(1)), Rel: constraint.GE},
	}})
	//
	result := solveOk(t, oracle, script)
	//
	if result.Verdict != Sat {
		t.Fatalf("expected sat, got %s", result.Verdict)
	}
	//
	val, ok := result.Values["x"]
	if !ok || val.Cmp(big.NewRat(1, 1)) < 0 {
		t.Errorf("unexpected model %v", result.Values)
	}
}

func Test_Exec_03(t *testing.T) {
	oracle := requireZ3(t)
	// x >= 1 and -x >= 0 is unsatisfiable; the pinned assertion is innocent
	script := NewScript()
	script.Declare(poly.UnknownVar("x", poly.Real))
	script.Declare(poly.AuxiliaryVar("lam", poly.Real))
	script.Assert(constraint.ExprDNF{{
		{Expr: poly.Var("x").Sub(poly.ConstInt(1)), Rel: constraint.GE},
		{Expr: poly.Var("x").Neg(), Rel: constraint.GE},
	}})
	script.Pin("pin-lam", "lam")
	//
	result := solveOk(t, oracle, script)
	//
	if result.Verdict != Unsat {
		t.Fatalf("expected unsat, got %s", result.Verdict)
	}
	//
	for _, label := range result.Core {
		if label == "pin-lam" {
			t.Errorf("innocent pin implicated in core %v", result.Core)
		}
	}
}

func requireZ3(t *testing.T) *ExecOracle {
	t.Helper()
	//
	oracle, err := NewExecOracle("z3")
	if err != nil {
		t.Skip("z3 not on PATH")
	}
	//
	return oracle
}

func solveOk(t *testing.T, oracle *ExecOracle, script *Script) Result {
	t.Helper()
	//
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	//
	result, err := oracle.Solve(ctx, script)
	if err != nil {
		t.Fatal(err)
	}
	//
	return result
}
