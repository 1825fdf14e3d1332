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
package encoder

import (
	"fmt"

	"github.com/polyhorn/go-polyhorn/pkg/poly"
)

// Allocator hands out fresh auxiliary variables with collision-free,
// deterministic names.  Names embed the clause scope ("lam!c2!5" is the 5th
// variable of prefix "lam" within clause 2), so per-clause allocators are
// independent of each other: parallel clause encoding keeps deterministic
// naming without any shared counter.  An Allocator itself is not safe for
// concurrent use; concurrency is obtained by giving each clause its own.
type Allocator struct {
	domain poly.Domain
	scope  string
	next   map[string]uint
}

// NewAllocator constructs a root allocator whose variables range over the
// given domain.
func NewAllocator(domain poly.Domain) *Allocator {
	return &Allocator{domain, "", make(map[string]uint)}
}

// ForClause derives the allocator scoped to the given clause index.
func (a *Allocator) ForClause(clause int) *Allocator {
	return &Allocator{a.domain, fmt.Sprintf("c%d", clause), make(map[string]uint)}
}

// Fresh returns a new auxiliary variable with the given prefix.
func (a *Allocator) Fresh(prefix string) poly.Variable {
	n := a.next[prefix]
	a.next[prefix] = n + 1
	//
	name := fmt.Sprintf("%s!%s!%d", prefix, a.scope, n)
	if a.scope == "" {
		name = fmt.Sprintf("%s!%d", prefix, n)
	}
	//
	return poly.AuxiliaryVar(name, a.domain)
}
