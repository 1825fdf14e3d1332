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
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
)

// commands maps supported solver names to the command line which accepts an
// SMT-LIB script on standard input.
var commands = map[string][]string{
	"z3":      {"z3", "-in"},
	"cvc5":    {"cvc5", "--lang", "smt2.6", "-"},
	"mathsat": {"mathsat", "-model_generation=true"},
}

// Available lists the supported solvers found on the current PATH, sorted by
// name.
func Available() []string {
	var found []string
	//
	for name, argv := range commands {
		if _, err := exec.LookPath(argv[0]); err == nil {
			found = append(found, name)
		}
	}
	//
	sort.Strings(found)
	//
	return found
}

// ExecOracle drives an external SMT solver process, one invocation per
// script.
type ExecOracle struct {
	name string
	argv []string
}

// NewExecOracle constructs an oracle for the named solver, failing when the
// solver is unsupported or its binary cannot be found.
func NewExecOracle(name string) (*ExecOracle, error) {
	argv, ok := commands[name]
	if !ok {
		return nil, &OracleError{ErrUnavailable, name,
			fmt.Errorf("unsupported solver (supported: %s)", strings.Join(supported(), ", "))}
	}
	//
	if _, err := exec.LookPath(argv[0]); err != nil {
		return nil, &OracleError{ErrUnavailable, name, err}
	}
	//
	return &ExecOracle{name, argv}, nil
}

// Name of the underlying solver.
func (o *ExecOracle) Name() string {
	return o.name
}

// Solve pipes the script into the solver and parses its response.
func (o *ExecOracle) Solve(ctx context.Context, script *Script) (Result, error) {
	text := script.String()
	log.Debugf("submitting %d byte script to %s", len(text), o.name)
	//
	cmd := exec.CommandContext(ctx, o.argv[0], o.argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	//
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	//
	err := cmd.Run()
	//
	if ctx.Err() != nil {
		return Result{}, &OracleError{ErrTimeout, o.name, ctx.Err()}
	}
	// Solvers exit non-zero on (error ...) responses whilst still printing a
	// usable verdict, so only give up when the output is unparseable.
	result, perr := parseResponse(stdout.String())
	//
	if perr != nil {
		if err != nil {
			perr = errors.Join(perr, err, errors.New(truncate(stderr.String())))
		}
		//
		return Result{}, &OracleError{ErrCrashed, o.name, perr}
	}
	//
	log.Debugf("%s answered %s", o.name, result.Verdict)
	//
	return result, nil
}

func supported() []string {
	names := make([]string, 0, len(commands))
	//
	for name := range commands {
		names = append(names, name)
	}
	//
	sort.Strings(names)
	//
	return names
}
