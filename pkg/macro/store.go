// Copyright Consensys Software Inc.
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
package macro

import (
	"slices"
	"strings"
)

// Store holds the macros found in a source tree, in the order they were
// discovered.  A store is filled during a build phase, after which it is only
// queried.
type Store struct {
	macros []*Macro
}

// Match associates a macro with its position in the store.
type Match struct {
	Index int
	Macro *Macro
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{}
}

// Append a macro to this store.
func (p *Store) Append(m *Macro) {
	p.macros = append(p.macros, m)
}

// Reset removes all macros from this store.
func (p *Store) Reset() {
	p.macros = nil
}

// Len returns the number of macros in this store.
func (p *Store) Len() int {
	return len(p.macros)
}

// Macros returns every macro in this store, in discovery order.
func (p *Store) Macros() []*Macro {
	return slices.Clone(p.macros)
}

// LookupExact returns all macros with the given name.  Macros defined more
// than once (e.g. in different files) are all returned.
func (p *Store) LookupExact(name string) []*Macro {
	return p.filter(func(m *Macro) bool {
		return m.Name() == name
	})
}

// LookupContains returns all macros whose name contains the given text.  All
// macros are returned when the text is empty.
func (p *Store) LookupContains(text string) []*Macro {
	return p.filter(func(m *Macro) bool {
		return strings.Contains(m.Name(), text)
	})
}

// LookupBody returns all macros whose replacement text contains the given text.
func (p *Store) LookupBody(text string) []*Macro {
	return p.filter(func(m *Macro) bool {
		body, ok := m.Body()
		return ok && strings.Contains(body, text)
	})
}

// LookupFile returns all macros defined in a file whose path ends with the
// given suffix.
func (p *Store) LookupFile(suffix string) []*Macro {
	return p.filter(func(m *Macro) bool {
		return strings.HasSuffix(m.File(), suffix)
	})
}

// LookupPasteMatch returns all macros which could produce the given token by
// pasting their arguments together, along with their positions in this store.
func (p *Store) LookupPasteMatch(token string) []Match {
	var matches []Match
	//
	for i, m := range p.macros {
		if m.MatchesPaste(token) {
			matches = append(matches, Match{i, m})
		}
	}
	//
	return matches
}

// Files returns the distinct source files containing macros in this store, in
// sorted order.
func (p *Store) Files() []string {
	var files []string
	//
	for _, m := range p.macros {
		files = append(files, m.File())
	}
	//
	slices.Sort(files)
	//
	return slices.Compact(files)
}

func (p *Store) filter(fn func(*Macro) bool) []*Macro {
	var macros []*Macro
	//
	for _, m := range p.macros {
		if fn(m) {
			macros = append(macros, m)
		}
	}
	//
	return macros
}
