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
	"fmt"
	"math/big"

	"github.com/polyhorn/go-polyhorn/pkg/poly"
	"github.com/polyhorn/go-polyhorn/pkg/sexp"
)

// ReadSystem parses an SMT-LIB flavoured system description: constant
// declarations for the unknowns followed by assertions, where a
// universally quantified implication denotes a Horn clause and anything else
// a direct constraint.  Commands irrelevant to the pipeline (set-logic,
// check-sat, get-model and friends) are accepted and ignored.
func ReadSystem(input string) (*System, error) {
	forms, err := sexp.ParseAll(input)
	if err != nil {
		return nil, err
	}
	//
	r := &reader{unknowns: make(map[string]poly.Variable)}
	//
	for _, form := range forms {
		if err := r.command(form); err != nil {
			return nil, err
		}
	}
	//
	return &System{Unknowns: r.order, Clauses: r.clauses}, nil
}

type reader struct {
	unknowns map[string]poly.Variable
	order    []poly.Variable
	clauses  []Clause
}

func (r *reader) command(form sexp.SExp) error {
	list := form.AsList()
	if list == nil {
		return fmt.Errorf("malformed command %s", form)
	}
	//
	switch {
	case list.MatchSymbols(3, "declare-const"):
		return r.declare(list.Get(1), list.Get(2))
	case list.MatchSymbols(4, "declare-fun"):
		// Only nullary functions, i.e. constants in disguise.
		if args := list.Get(2).AsList(); args == nil || args.Len() != 0 {
			return fmt.Errorf("unsupported declaration %s", form)
		}
		//
		return r.declare(list.Get(1), list.Get(3))
	case list.MatchSymbols(2, "assert"):
		return r.assertion(list.Get(1))
	case list.MatchSymbols(1, "set-logic"),
		list.MatchSymbols(1, "set-option"),
		list.MatchSymbols(1, "set-info"),
		list.MatchSymbols(1, "check-sat"),
		list.MatchSymbols(1, "get-model"),
		list.MatchSymbols(1, "exit"):
		return nil
	default:
		return fmt.Errorf("unsupported command %s", form)
	}
}

func (r *reader) declare(name sexp.SExp, sort sexp.SExp) error {
	symbol := name.AsSymbol()
	if symbol == nil {
		return fmt.Errorf("malformed declaration name %s", name)
	}
	//
	domain, err := parseSort(sort)
	if err != nil {
		return err
	}
	//
	if _, ok := r.unknowns[symbol.Value]; ok {
		return fmt.Errorf("variable %s declared twice", symbol.Value)
	}
	//
	v := poly.UnknownVar(symbol.Value, domain)
	r.unknowns[symbol.Value] = v
	r.order = append(r.order, v)
	//
	return nil
}

func (r *reader) assertion(body sexp.SExp) error {
	list := body.AsList()
	//
	if list != nil && list.MatchSymbols(3, "forall") {
		return r.hornClause(list.Get(1), list.Get(2))
	}
	// Direct constraint over the unknowns.
	formula, err := r.formula(body, nil)
	if err != nil {
		return err
	}
	//
	r.clauses = append(r.clauses, DirectClause(formula))
	//
	return nil
}

func (r *reader) hornClause(bindings sexp.SExp, body sexp.SExp) error {
	quantified, err := r.bindings(bindings)
	if err != nil {
		return err
	}
	//
	scope := make(map[string]bool, len(quantified))
	//
	for _, v := range quantified {
		scope[v.Name] = true
	}
	//
	if list := body.AsList(); list != nil && list.MatchSymbols(3, "=>") {
		hyp, err := r.formula(list.Get(1), scope)
		if err != nil {
			return err
		}
		//
		concl, err := r.formula(list.Get(2), scope)
		if err != nil {
			return err
		}
		//
		r.clauses = append(r.clauses, HornClause(quantified, hyp, concl))
		//
		return nil
	}
	// No implication: an unconditional fact about the quantified space.
	concl, err := r.formula(body, scope)
	if err != nil {
		return err
	}
	//
	r.clauses = append(r.clauses, HornClause(quantified, Truth{true}, concl))
	//
	return nil
}

func (r *reader) bindings(form sexp.SExp) ([]poly.Variable, error) {
	list := form.AsList()
	if list == nil {
		return nil, fmt.Errorf("malformed quantifier bindings %s", form)
	}
	//
	quantified := make([]poly.Variable, list.Len())
	//
	for i, b := range list.Elements {
		binding := b.AsList()
		//
		if binding == nil || binding.Len() != 2 || binding.Get(0).AsSymbol() == nil {
			return nil, fmt.Errorf("malformed quantifier binding %s", b)
		}
		//
		domain, err := parseSort(binding.Get(1))
		if err != nil {
			return nil, err
		}
		//
		name := binding.Get(0).AsSymbol().Value
		//
		if _, ok := r.unknowns[name]; ok {
			return nil, fmt.Errorf("quantified variable %s shadows an unknown", name)
		}
		//
		quantified[i] = poly.QuantifiedVar(name, domain)
	}
	//
	return quantified, nil
}

func parseSort(form sexp.SExp) (poly.Domain, error) {
	symbol := form.AsSymbol()
	//
	if symbol != nil {
		switch symbol.Value {
		case "Real":
			return poly.Real, nil
		case "Int":
			return poly.Integer, nil
		}
	}
	//
	return poly.Real, fmt.Errorf("unsupported sort %s", form)
}

// formula parses a boolean combination of polynomial comparisons.  scope
// holds the quantified variables in force, nil for direct constraints.
func (r *reader) formula(form sexp.SExp, scope map[string]bool) (Formula, error) {
	list := form.AsList()
	//
	if list == nil {
		switch form.String() {
		case "true":
			return Truth{true}, nil
		case "false":
			return Truth{false}, nil
		}
		//
		return nil, fmt.Errorf("malformed formula %s", form)
	}
	//
	switch {
	case list.MatchSymbols(1, "and"):
		args, err := r.formulae(list.Elements[1:], scope)
		if err != nil {
			return nil, err
		}
		//
		return NewAnd(args...), nil
	case list.MatchSymbols(1, "or"):
		args, err := r.formulae(list.Elements[1:], scope)
		if err != nil {
			return nil, err
		}
		//
		return NewOr(args...), nil
	case list.MatchSymbols(2, "not") && list.Len() == 2:
		arg, err := r.formula(list.Get(1), scope)
		if err != nil {
			return nil, err
		}
		//
		return Not{arg}, nil
	case list.MatchSymbols(3, "=>") && list.Len() == 3:
		lhs, err := r.formula(list.Get(1), scope)
		if err != nil {
			return nil, err
		}
		//
		rhs, err := r.formula(list.Get(2), scope)
		if err != nil {
			return nil, err
		}
		// Material implication.
		return NewOr(Not{lhs}, rhs), nil
	default:
		return r.comparison(list, scope)
	}
}

func (r *reader) formulae(forms []sexp.SExp, scope map[string]bool) ([]Formula, error) {
	args := make([]Formula, len(forms))
	//
	for i, f := range forms {
		var err error
		//
		if args[i], err = r.formula(f, scope); err != nil {
			return nil, err
		}
	}
	//
	return args, nil
}

func (r *reader) comparison(list *sexp.List, scope map[string]bool) (Formula, error) {
	if list.Len() != 3 || list.Get(0).AsSymbol() == nil {
		return nil, fmt.Errorf("malformed comparison %s", list)
	}
	//
	lhs, err := r.term(list.Get(1), scope)
	if err != nil {
		return nil, err
	}
	//
	rhs, err := r.term(list.Get(2), scope)
	if err != nil {
		return nil, err
	}
	// Everything normalises to "p ▷ 0" with the right hand side folded in.
	diff := lhs.Sub(rhs)
	//
	switch list.Get(0).AsSymbol().Value {
	case ">":
		return GtZero(diff), nil
	case ">=":
		return GeZero(diff), nil
	case "<":
		return GtZero(diff.Neg()), nil
	case "<=":
		return GeZero(diff.Neg()), nil
	case "=":
		return EqZero(diff), nil
	case "!=", "distinct":
		return NeZero(diff), nil
	default:
		return nil, fmt.Errorf("unsupported relation %s", list.Get(0))
	}
}

// term parses an arithmetic expression into a polynomial over the quantified
// variables whose coefficients are expressions over the unknowns.
func (r *reader) term(form sexp.SExp, scope map[string]bool) (poly.Polynomial, error) {
	if symbol := form.AsSymbol(); symbol != nil {
		return r.atom(symbol.Value, scope)
	}
	//
	list := form.AsList()
	//
	if list == nil || list.Len() < 2 || list.Get(0).AsSymbol() == nil {
		return poly.ZeroPoly(), fmt.Errorf("malformed term %s", form)
	}
	//
	args := make([]poly.Polynomial, list.Len()-1)
	//
	for i, f := range list.Elements[1:] {
		var err error
		//
		if args[i], err = r.term(f, scope); err != nil {
			return poly.ZeroPoly(), err
		}
	}
	//
	switch list.Get(0).AsSymbol().Value {
	case "+":
		return fold(args, poly.Polynomial.Add), nil
	case "*":
		return fold(args, poly.Polynomial.Mul), nil
	case "-":
		if len(args) == 1 {
			return args[0].Neg(), nil
		}
		//
		return fold(args, poly.Polynomial.Sub), nil
	case "/":
		return divide(list, args)
	default:
		return poly.ZeroPoly(), fmt.Errorf("unsupported operator in term %s", form)
	}
}

func (r *reader) atom(token string, scope map[string]bool) (poly.Polynomial, error) {
	if scope[token] {
		return poly.NewVarPoly(token), nil
	}
	//
	if _, ok := r.unknowns[token]; ok {
		return poly.NewConstPoly(poly.Var(token)), nil
	}
	//
	var rat big.Rat
	//
	if _, ok := rat.SetString(token); ok {
		return poly.NewConstPoly(poly.Const(&rat)), nil
	}
	//
	return poly.ZeroPoly(), fmt.Errorf("undeclared variable %s", token)
}

// divide handles constant division, the only kind the polynomial
// representation admits.
func divide(list *sexp.List, args []poly.Polynomial) (poly.Polynomial, error) {
	result := args[0]
	//
	for _, arg := range args[1:] {
		expr, ok := arg.Constant()
		if !ok {
			return poly.ZeroPoly(), fmt.Errorf("non-constant divisor in %s", list)
		}
		//
		rat, ok := expr.Constant()
		if !ok || rat.Sign() == 0 {
			return poly.ZeroPoly(), fmt.Errorf("non-numeric or zero divisor in %s", list)
		}
		//
		result = result.Scale(poly.Const(new(big.Rat).Inv(rat)))
	}
	//
	return result, nil
}

func fold(args []poly.Polynomial, op func(poly.Polynomial, poly.Polynomial) poly.Polynomial) poly.Polynomial {
	result := args[0]
	//
	for _, arg := range args[1:] {
		result = op(result, arg)
	}
	//
	return result
}
