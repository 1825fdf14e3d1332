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
	"sort"

	"github.com/polyhorn/go-polyhorn/pkg/assembler"
	log "github.com/sirupsen/logrus"
)

// Dispatcher turns an aggregate constraint system into oracle scripts,
// interprets the verdict, and projects any model back onto the user-declared
// unknowns.
type Dispatcher struct {
	// Oracle which decides the generated scripts.
	Oracle Oracle
	// UnsatCore enables a heuristic which first pins every auxiliary
	// variable to zero and then, guided by unsatisfiable cores, releases
	// only those the oracle objects to.  Sparse certificates solve much
	// faster when the heuristic lands.
	UnsatCore bool
}

// Outcome of deciding a constraint system.
type Outcome struct {
	// Verdict on the existential system.
	Verdict Verdict
	// Model for the unknowns, populated only when the verdict is Sat.
	Model Model
}

// Solve decides the given system.
func (d *Dispatcher) Solve(ctx context.Context, sys *assembler.AggregateSystem) (Outcome, error) {
	if d.UnsatCore {
		return d.solveWithCores(ctx, sys)
	}
	//
	result, err := d.Oracle.Solve(ctx, buildScript(sys, nil))
	if err != nil {
		return Outcome{}, err
	}
	//
	return outcome(sys, result), nil
}

// solveWithCores implements the pinning heuristic.  Each round pins the
// surviving auxiliary variables to zero under named assertions; an unsat
// verdict whose core names some pins releases them for the next round.  An
// unsat verdict implicating no pin is genuine.
func (d *Dispatcher) solveWithCores(ctx context.Context, sys *assembler.AggregateSystem) (Outcome, error) {
	pinned := make(map[string]string) // label -> variable
	//
	for _, aux := range sys.Aux {
		pinned["pin-"+aux.Var.Name] = aux.Var.Name
	}
	//
	for round := 0; ; round++ {
		result, err := d.Oracle.Solve(ctx, buildScript(sys, pinned))
		if err != nil {
			return Outcome{}, err
		}
		//
		if result.Verdict != Unsat {
			return outcome(sys, result), nil
		}
		//
		released := 0
		//
		for _, label := range result.Core {
			if _, ok := pinned[label]; ok {
				delete(pinned, label)
				released++
			}
		}
		//
		log.Debugf("unsat core round %d: released %d pins, %d remain", round, released, len(pinned))
		//
		if released == 0 {
			return Outcome{Verdict: Unsat}, nil
		}
	}
}

// BuildScript renders a system as a plain SMT-LIB script, with no pinned
// variables.
func BuildScript(sys *assembler.AggregateSystem) *Script {
	return buildScript(sys, nil)
}

// buildScript declares every variable of the system, asserts every
// constraint, and pins the given auxiliary variables under named assertions.
func buildScript(sys *assembler.AggregateSystem, pinned map[string]string) *Script {
	script := NewScript()
	//
	for _, v := range sys.Variables() {
		script.Declare(v)
	}
	//
	for _, a := range sys.Assertions {
		script.Assert(a)
	}
	//
	labels := make([]string, 0, len(pinned))
	//
	for label := range pinned {
		labels = append(labels, label)
	}
	//
	sort.Strings(labels)
	//
	for _, label := range labels {
		script.Pin(label, pinned[label])
	}
	//
	return script
}

func outcome(sys *assembler.AggregateSystem, result Result) Outcome {
	out := Outcome{Verdict: result.Verdict}
	//
	if result.Verdict == Sat {
		out.Model = sys.Project(result.Values)
	}
	//
	return out
}
