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
	"slices"
	"strings"
)

// Conjunction is a set of atoms which must hold simultaneously.  The empty
// conjunction denotes logical truth.
type Conjunction []Atom

// Eval evaluates a conjunction under the given environments.
func (c Conjunction) Eval(qenv func(string) *big.Rat, uenv func(string) *big.Rat) bool {
	for _, a := range c {
		if !a.Eval(qenv, uenv) {
			return false
		}
	}
	//
	return true
}

func (c Conjunction) String() string {
	if len(c) == 0 {
		return "true"
	}
	//
	strs := make([]string, len(c))
	//
	for i, a := range c {
		strs[i] = a.String()
	}
	//
	return strings.Join(strs, " /\\ ")
}

// DNF is a disjunction of conjunctions of atoms.  The empty disjunction
// denotes logical falsehood; a DNF containing an empty conjunction is
// trivially true.
type DNF struct {
	disjuncts []Conjunction
}

// NewDNF constructs a DNF from its disjuncts.
func NewDNF(disjuncts ...Conjunction) DNF {
	return DNF{disjuncts}
}

// TruthDNF returns the DNF form of logical truth or falsehood.
func TruthDNF(val bool) DNF {
	if val {
		return DNF{[]Conjunction{{}}}
	}
	//
	return DNF{nil}
}

// IsFalse checks whether this DNF is the empty disjunction.
func (d DNF) IsFalse() bool {
	return len(d.disjuncts) == 0
}

// IsTrue checks whether some disjunct is the empty conjunction, making the
// whole DNF trivially true.
func (d DNF) IsTrue() bool {
	for _, c := range d.disjuncts {
		if len(c) == 0 {
			return true
		}
	}
	//
	return false
}

// Disjuncts returns the conjunctions whose disjunction forms this DNF.
func (d DNF) Disjuncts() []Conjunction {
	return d.disjuncts
}

// Or returns the disjunction of two DNFs, which is simply the union of their
// disjuncts.
func (d DNF) Or(o DNF) DNF {
	return DNF{slices.Concat(d.disjuncts, o.disjuncts)}
}

// And returns the conjunction of two DNFs via the distributive expansion:
// every pair of disjuncts is merged.  Worst case this is quadratic per
// application and exponential over a whole formula, which is accepted since
// inputs are small, template-generated clauses.
func (d DNF) And(o DNF) DNF {
	var disjuncts []Conjunction
	//
	for _, l := range d.disjuncts {
		for _, r := range o.disjuncts {
			disjuncts = append(disjuncts, slices.Concat(l, r))
		}
	}
	//
	return DNF{disjuncts}
}

// Not returns the negation of this DNF, itself in DNF: every disjunct is
// negated atom-wise (each negation being a disjunction of negated atoms) and
// the results conjoined via the distributive expansion.
func (d DNF) Not() DNF {
	result := TruthDNF(true)
	//
	for _, conj := range d.disjuncts {
		negated := DNF{}
		//
		for _, a := range conj {
			negated = negated.Or(DNF{[]Conjunction{{a.Negate()}}})
		}
		//
		result = result.And(negated)
	}
	//
	return result
}

// SplitDisequalities rewrites every disequality atom "p != 0" as the
// disjunction "p > 0 or -p > 0", fanning the affected conjunctions out.
// Certificate encoders only handle the > and >= fragment.
func (d DNF) SplitDisequalities() DNF {
	result := TruthDNF(false)
	//
	for _, conj := range d.disjuncts {
		expanded := TruthDNF(true)
		//
		for _, a := range conj {
			if a.Rel == NE {
				expanded = expanded.And(NewDNF(
					Conjunction{GtZero(a.Poly)},
					Conjunction{GtZero(a.Poly.Neg())},
				))
			} else {
				expanded = expanded.And(NewDNF(Conjunction{a}))
			}
		}
		//
		result = result.Or(expanded)
	}
	//
	return result
}

// Eval evaluates this DNF under the given environments.
func (d DNF) Eval(qenv func(string) *big.Rat, uenv func(string) *big.Rat) bool {
	for _, c := range d.disjuncts {
		if c.Eval(qenv, uenv) {
			return true
		}
	}
	//
	return false
}

func (d DNF) String() string {
	if len(d.disjuncts) == 0 {
		return "false"
	}
	//
	strs := make([]string, len(d.disjuncts))
	//
	for i, c := range d.disjuncts {
		strs[i] = "(" + c.String() + ")"
	}
	//
	return strings.Join(strs, " \\/ ")
}

// Normalize rewrites an arbitrary quantifier-free formula into disjunctive
// normal form: negations are pushed inward (De Morgan, with relation
// operators negated at the atoms) and conjunction is distributed over
// disjunction until no disjunction remains nested inside a conjunction.  The
// result is satisfied by exactly the same assignments as the input.
func Normalize(f Formula) DNF {
	switch f := f.(type) {
	case Atom:
		return DNF{[]Conjunction{{f}}}
	case Truth:
		return TruthDNF(f.Value)
	case And:
		dnf := TruthDNF(true)
		//
		for _, arg := range f.Args {
			dnf = dnf.And(Normalize(arg))
			// Short circuit
			if dnf.IsFalse() {
				break
			}
		}
		//
		return dnf
	case Or:
		dnf := TruthDNF(false)
		//
		for _, arg := range f.Args {
			dnf = dnf.Or(Normalize(arg))
		}
		//
		return dnf
	case Not:
		return Normalize(negate(f.Arg))
	default:
		panic("unreachable")
	}
}

// negate pushes a negation one level into a formula.
func negate(f Formula) Formula {
	switch f := f.(type) {
	case Atom:
		return f.Negate()
	case Truth:
		return Truth{!f.Value}
	case And:
		args := make([]Formula, len(f.Args))
		//
		for i, arg := range f.Args {
			args[i] = Not{arg}
		}
		//
		return Or{args}
	case Or:
		args := make([]Formula, len(f.Args))
		//
		for i, arg := range f.Args {
			args[i] = Not{arg}
		}
		//
		return And{args}
	case Not:
		return f.Arg
	default:
		panic("unreachable")
	}
}
