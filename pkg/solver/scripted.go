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

import "context"

// ScriptedOracle replays canned responses, recording each submitted script.
// It exists for tests and dry runs; responses are consumed in order, with the
// final one repeated indefinitely.
type ScriptedOracle struct {
	// Responses replayed in order.
	Responses []Result
	// Scripts submitted so far, rendered.
	Scripts []string
}

// Solve records the script and replays the next response.
func (o *ScriptedOracle) Solve(_ context.Context, script *Script) (Result, error) {
	i := len(o.Scripts)
	o.Scripts = append(o.Scripts, script.String())
	//
	if i >= len(o.Responses) {
		i = len(o.Responses) - 1
	}
	//
	if i < 0 {
		return Result{Verdict: Unknown}, nil
	}
	//
	return o.Responses[i], nil
}
