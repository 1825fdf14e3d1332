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
package poly

import (
	"fmt"
	"math/big"
	"slices"
	"strings"
)

type factor struct {
	name string
	exp  uint
}

// Monomial is a finite mapping from quantified variables to strictly positive
// exponents, kept sorted by variable name.  The empty mapping is the constant
// monomial.  Monomials are immutable.
type Monomial struct {
	factors []factor
}

// UnitMonomial returns the constant monomial (every exponent zero).
func UnitMonomial() Monomial {
	return Monomial{nil}
}

// NewMonomial constructs a monomial from an exponent mapping.  Zero exponents
// are dropped.
func NewMonomial(exponents map[string]uint) Monomial {
	factors := make([]factor, 0, len(exponents))
	//
	for name, exp := range exponents {
		if exp > 0 {
			factors = append(factors, factor{name, exp})
		}
	}
	//
	slices.SortFunc(factors, func(l, r factor) int {
		return strings.Compare(l.name, r.name)
	})
	//
	return Monomial{factors}
}

// VarMonomial returns the degree-1 monomial of a single variable.
func VarMonomial(name string) Monomial {
	return Monomial{[]factor{{name, 1}}}
}

// IsUnit checks whether this is the constant monomial.
func (m Monomial) IsUnit() bool {
	return len(m.factors) == 0
}

// Degree returns the total degree, i.e. the sum of all exponents.
func (m Monomial) Degree() uint {
	var deg uint
	//
	for _, f := range m.factors {
		deg += f.exp
	}
	//
	return deg
}

// Exponent returns the exponent of the given variable (zero if absent).
func (m Monomial) Exponent(name string) uint {
	for _, f := range m.factors {
		if f.name == name {
			return f.exp
		}
	}
	//
	return 0
}

// Variables returns the variables of this monomial in sorted order.
func (m Monomial) Variables() []string {
	names := make([]string, len(m.factors))
	//
	for i, f := range m.factors {
		names[i] = f.name
	}
	//
	return names
}

// Mul multiplies two monomials by summing exponents.
func (m Monomial) Mul(o Monomial) Monomial {
	var (
		factors []factor
		i, j    int
	)
	//
	for i < len(m.factors) && j < len(o.factors) {
		l, r := m.factors[i], o.factors[j]
		//
		switch strings.Compare(l.name, r.name) {
		case -1:
			factors = append(factors, l)
			i++
		case 1:
			factors = append(factors, r)
			j++
		default:
			factors = append(factors, factor{l.name, l.exp + r.exp})
			i++
			j++
		}
	}
	//
	factors = append(factors, m.factors[i:]...)
	factors = append(factors, o.factors[j:]...)
	//
	return Monomial{factors}
}

// without returns this monomial with the given variable erased, along with
// its previous exponent.
func (m Monomial) without(name string) (Monomial, uint) {
	for i, f := range m.factors {
		if f.name == name {
			factors := slices.Concat(m.factors[:i], m.factors[i+1:])
			return Monomial{factors}, f.exp
		}
	}
	//
	return m, 0
}

// Cmp provides a deterministic total ordering over monomials (graded, then
// lexicographic on the factor list).
func (m Monomial) Cmp(o Monomial) int {
	if c := int(m.Degree()) - int(o.Degree()); c != 0 {
		return c
	}
	//
	return slices.CompareFunc(m.factors, o.factors, func(l, r factor) int {
		if c := strings.Compare(l.name, r.name); c != 0 {
			return c
		}
		//
		return int(l.exp) - int(r.exp)
	})
}

// Equal checks whether two monomials have identical exponent mappings.
func (m Monomial) Equal(o Monomial) bool {
	return m.Cmp(o) == 0
}

// Eval evaluates this monomial under an environment mapping quantified
// variables to rational values.
func (m Monomial) Eval(env func(string) *big.Rat) *big.Rat {
	val := big.NewRat(1, 1)
	//
	for _, f := range m.factors {
		v := env(f.name)
		for range f.exp {
			val.Mul(val, v)
		}
	}
	//
	return val
}

func (m Monomial) String() string {
	if len(m.factors) == 0 {
		return "1"
	}
	//
	strs := make([]string, len(m.factors))
	//
	for i, f := range m.factors {
		if f.exp == 1 {
			strs[i] = f.name
		} else {
			strs[i] = fmt.Sprintf("%s^%d", f.name, f.exp)
		}
	}
	//
	return strings.Join(strs, "*")
}
