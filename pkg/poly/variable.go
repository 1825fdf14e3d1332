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

// Kind distinguishes the three classes of variable manipulated by the
// pipeline.
type Kind uint8

const (
	// Quantified variables are universally bound within a single clause and
	// never escape it.
	Quantified Kind = iota
	// Unknown variables are declared by the user and persist across the whole
	// run; their final values constitute the answer.
	Unknown
	// Auxiliary variables are multipliers and slacks created by a theorem
	// encoder.  They are solved for, but dropped before the model is
	// presented.
	Auxiliary
)

// Domain identifies the numeric domain a variable ranges over.
type Domain uint8

const (
	// Real valued variables.
	Real Domain = iota
	// Integer valued variables.
	Integer
)

// String returns the SMT-LIB sort name for this domain.
func (d Domain) String() string {
	if d == Integer {
		return "Int"
	}
	//
	return "Real"
}

// Variable represents a named variable of a given kind and domain.  Variables
// are identified by name; the allocator guarantees names are unique within a
// run.
type Variable struct {
	// Name uniquely identifies this variable.
	Name string
	// Kind of this variable (quantified, unknown or auxiliary).
	Kind Kind
	// Domain over which this variable ranges.
	Domain Domain
}

// QuantifiedVar constructs a universally quantified variable.
func QuantifiedVar(name string, domain Domain) Variable {
	return Variable{Name: name, Kind: Quantified, Domain: domain}
}

// UnknownVar constructs a user-declared unknown variable.
func UnknownVar(name string, domain Domain) Variable {
	return Variable{Name: name, Kind: Unknown, Domain: domain}
}

// AuxiliaryVar constructs an encoder-generated auxiliary variable.
func AuxiliaryVar(name string, domain Domain) Variable {
	return Variable{Name: name, Kind: Auxiliary, Domain: domain}
}

func (v Variable) String() string {
	return v.Name
}
