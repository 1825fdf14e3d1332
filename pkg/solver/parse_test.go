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

	"github.com/google/go-cmp/cmp"
)

func Test_Parse_01(t *testing.T) {
	result := parseOk(t, "sat\n((x 1) (y (- 1)) (z (/ 1 2)))\n")
	//
	if result.Verdict != Sat {
		t.Fatalf("expected sat, got %s", result.Verdict)
	}
	//
	checkValue(t, result, "x", big.NewRat(1, 1))
	checkValue(t, result, "y", big.NewRat(-1, 1))
	checkValue(t, result, "z", big.NewRat(1, 2))
}

func Test_Parse_02(t *testing.T) {
	result := parseOk(t, "unsat\n")
	//
	if result.Verdict != Unsat || len(result.Core) != 0 {
		t.Errorf("expected bare unsat, got %v", result)
	}
}

func Test_Parse_03(t *testing.T) {
	result := parseOk(t, "unsat\n(pin-lam!c0!0 pin-y!c1!2)\n")
	//
	if result.Verdict != Unsat {
		t.Fatalf("expected unsat, got %s", result.Verdict)
	}
	//
	if diff := cmp.Diff([]string{"pin-lam!c0!0", "pin-y!c1!2"}, result.Core); diff != "" {
		t.Errorf("unexpected core (-want +got):\n%s", diff)
	}
}

func Test_Parse_04(t *testing.T) {
	result := parseOk(t, "unknown\n")
	//
	if result.Verdict != Unknown {
		t.Errorf("expected unknown, got %s", result.Verdict)
	}
}

func Test_Parse_05(t *testing.T) {
	// noise ahead of the verdict is tolerated
	output := "unsupported\n" +
		"success\n" +
		"(error \"line 1: unknown option\")\n" +
		"\n" +
		"sat\n" +
		"((x 2))\n"
	result := parseOk(t, output)
	//
	if result.Verdict != Sat {
		t.Fatalf("expected sat, got %s", result.Verdict)
	}
	//
	checkValue(t, result, "x", big.NewRat(2, 1))
}

func Test_Parse_06(t *testing.T) {
	// nested negative rational
	result := parseOk(t, "sat\n((x (- (/ 3 2))))\n")
	//
	checkValue(t, result, "x", big.NewRat(-3, 2))
}

func Test_Parse_Err_01(t *testing.T) {
	checkParseErr(t, "")
}

func Test_Parse_Err_02(t *testing.T) {
	// sat without a value list
	checkParseErr(t, "sat\n")
}

func Test_Parse_Err_03(t *testing.T) {
	// arbitrary garbage before any verdict
	checkParseErr(t, "segmentation fault\n")
}

func Test_Parse_Err_04(t *testing.T) {
	// malformed value binding
	checkParseErr(t, "sat\n((x))\n")
}

func Test_Parse_Err_05(t *testing.T) {
	// non-numeric value
	checkParseErr(t, "sat\n((x hello))\n")
}

func parseOk(t *testing.T, output string) Result {
	t.Helper()
	//
	result, err := parseResponse(output)
	if err != nil {
		t.Fatal(err)
	}
	//
	return result
}

func checkParseErr(t *testing.T, output string) {
	t.Helper()
	//
	if _, err := parseResponse(output); err == nil {
		t.Errorf("expected parse failure on %q", output)
	}
}

func checkValue(t *testing.T, result Result, name string, expected *big.Rat) {
	t.Helper()
	//
	val, ok := result.Values[name]
	if !ok {
		t.Fatalf("no value for %s in %v", name, result.Values)
	}
	//
	if val.Cmp(expected) != 0 {
		t.Errorf("expected %s = %s, got %s", name, expected.RatString(), val.RatString())
	}
}
