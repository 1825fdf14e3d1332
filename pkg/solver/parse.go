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
	"fmt"
	"math/big"
	"strings"

	"github.com/polyhorn/go-polyhorn/pkg/sexp"
)

// parseResponse interprets a solver's stdout: the check-sat verdict, then
// (optionally) an unsat core and a value list.  Lines reading "unsupported"
// and error S-expressions ahead of the verdict are skipped, since some
// solvers emit them for options they do not recognise.
func parseResponse(output string) (Result, error) {
	rest := output
	result := Result{Verdict: Unknown}
	//
	verdictSeen := false
	//
	for !verdictSeen {
		line, tail, ok := nextLine(rest)
		if !ok {
			return result, fmt.Errorf("no verdict in solver output %q", truncate(output))
		}
		//
		rest = tail
		//
		switch line {
		case "sat":
			result.Verdict, verdictSeen = Sat, true
		case "unsat":
			result.Verdict, verdictSeen = Unsat, true
		case "unknown":
			return result, nil
		case "unsupported", "success", "":
			// ignore
		default:
			if !strings.HasPrefix(line, "(error") {
				return result, fmt.Errorf("unexpected solver output %q", truncate(line))
			}
		}
	}
	//
	forms, err := sexp.ParseAll(rest)
	if err != nil {
		return result, err
	}
	//
	switch result.Verdict {
	case Unsat:
		if len(forms) > 0 {
			result.Core = symbolList(forms[0])
		}
	case Sat:
		if len(forms) == 0 {
			return result, fmt.Errorf("sat verdict without values in solver output %q", truncate(output))
		}
		//
		if result.Values, err = parseValues(forms[len(forms)-1]); err != nil {
			return result, err
		}
	}
	//
	return result, nil
}

func nextLine(s string) (string, string, bool) {
	if s == "" {
		return "", "", false
	}
	//
	line, tail, _ := strings.Cut(s, "\n")
	//
	return strings.TrimSpace(line), tail, true
}

func truncate(s string) string {
	if len(s) > 120 {
		return s[:120] + "..."
	}
	//
	return s
}

// parseValues interprets a "((x 1) (y (- 1)) (z (/ 1 2)))" value list.
func parseValues(form sexp.SExp) (Model, error) {
	pairs := form.AsList()
	if pairs == nil {
		return nil, fmt.Errorf("malformed value list %s", form)
	}
	//
	model := make(Model, pairs.Len())
	//
	for _, p := range pairs.Elements {
		pair := p.AsList()
		//
		if pair == nil || pair.Len() != 2 || pair.Get(0).AsSymbol() == nil {
			return nil, fmt.Errorf("malformed value binding %s", p)
		}
		//
		val, err := parseNumeral(pair.Get(1))
		if err != nil {
			return nil, err
		}
		//
		model[pair.Get(0).AsSymbol().Value] = val
	}
	//
	return model, nil
}

// parseNumeral interprets an exact SMT-LIB numeral: a literal, a unary
// minus, or a division.
func parseNumeral(form sexp.SExp) (*big.Rat, error) {
	if atom := form.AsSymbol(); atom != nil {
		var r big.Rat
		//
		if _, ok := r.SetString(atom.Value); !ok {
			return nil, fmt.Errorf("malformed numeral %q", atom.Value)
		}
		//
		return &r, nil
	}
	//
	list := form.AsList()
	//
	if list != nil && list.Len() == 2 && list.MatchSymbols(1, "-") {
		inner, err := parseNumeral(list.Get(1))
		if err != nil {
			return nil, err
		}
		//
		return inner.Neg(inner), nil
	}
	//
	if list != nil && list.Len() == 3 && list.MatchSymbols(1, "/") {
		num, err := parseNumeral(list.Get(1))
		if err != nil {
			return nil, err
		}
		//
		den, err := parseNumeral(list.Get(2))
		if err != nil {
			return nil, err
		}
		//
		return num.Quo(num, den), nil
	}
	//
	return nil, fmt.Errorf("malformed numeral %s", form)
}

func symbolList(form sexp.SExp) []string {
	list := form.AsList()
	if list == nil {
		return nil
	}
	//
	var symbols []string
	//
	for _, f := range list.Elements {
		if s := f.AsSymbol(); s != nil {
			symbols = append(symbols, s.Value)
		}
	}
	//
	return symbols
}
