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
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// PASTE is the token-pasting operator.
const PASTE = "##"

// Macro represents a single macro definition, as found in a given source file.
// Macros are either "object-like" (i.e. have no parameter list) or
// "function-like" (i.e. declared with a parenthesised parameter list, which may
// be empty).  A macro is immutable once constructed, except for its paste
// matchers which are computed on demand.
type Macro struct {
	name string
	// Parameters of a function-like macro, or nil.
	params []string
	// Indicates whether this is a function-like macro.
	function bool
	// Replacement text, or empty.
	body string
	// Indicates whether there is any replacement text.
	hasBody bool
	// Source file where this macro was defined.
	file string
	// Line where this macro definition begins (counting from 1).
	line int
	// Paste matchers are computed at most once.
	once     sync.Once
	matchers []*regexp.Regexp
}

// NewObjectMacro constructs a macro which has no parameter list.  An empty
// body indicates the macro has no replacement text.
func NewObjectMacro(name string, body string, file string, line int) *Macro {
	return &Macro{name: name, body: body, hasBody: body != "", file: file, line: line}
}

// NewFunctionMacro constructs a macro with a (possibly empty) parameter list.
// An empty body indicates the macro has no replacement text.
func NewFunctionMacro(name string, params []string, body string, file string, line int) *Macro {
	if params == nil {
		params = []string{}
	}
	//
	return &Macro{name: name, params: params, function: true, body: body, hasBody: body != "",
		file: file, line: line}
}

// Name returns the name of this macro.
func (p *Macro) Name() string {
	return p.name
}

// Params returns the parameter list of this macro, and a flag indicating
// whether it has one at all (i.e. whether or not it is function-like).
func (p *Macro) Params() ([]string, bool) {
	return p.params, p.function
}

// Body returns the replacement text of this macro, and a flag indicating
// whether there is any.
func (p *Macro) Body() (string, bool) {
	return p.body, p.hasBody
}

// File returns the source file in which this macro was defined.
func (p *Macro) File() string {
	return p.file
}

// Line returns the line on which this macro definition begins.
func (p *Macro) Line() int {
	return p.line
}

// IsFunctionLike determines whether this macro was declared with a parameter
// list.
func (p *Macro) IsFunctionLike() bool {
	return p.function
}

// HasParams determines whether this macro has at least one parameter.
func (p *Macro) HasParams() bool {
	return len(p.params) > 0
}

// HasPasteTokens determines whether the body of this macro uses the
// token-pasting operator.
func (p *Macro) HasPasteTokens() bool {
	return strings.Contains(p.body, PASTE)
}

// PasteMatchers returns the matchers describing tokens which this macro could
// produce by pasting its arguments together.  These are computed on first use
// and cached thereafter.  A macro without parameters, or whose body does not
// use the token-pasting operator, has no matchers.
func (p *Macro) PasteMatchers() []*regexp.Regexp {
	p.once.Do(func() {
		if !p.HasParams() || !p.HasPasteTokens() {
			return
		}
		//
		for _, pattern := range DerivePastePatterns(p.params, p.body) {
			p.matchers = append(p.matchers, pattern.Compile())
		}
	})
	//
	return p.matchers
}

// MatchesPaste determines whether a given token could be (or contain) the
// result of expanding this macro.
func (p *Macro) MatchesPaste(token string) bool {
	for _, m := range p.PasteMatchers() {
		if m.MatchString(token) {
			return true
		}
	}
	//
	return false
}

// Definition returns a normalised "#define" statement for this macro.
func (p *Macro) Definition() string {
	var builder strings.Builder
	//
	builder.WriteString("#define ")
	builder.WriteString(p.name)
	//
	if p.function {
		builder.WriteString("(")
		builder.WriteString(strings.Join(p.params, ","))
		builder.WriteString(")")
	}
	//
	if p.hasBody {
		builder.WriteString(" ")
		builder.WriteString(p.body)
	}
	//
	return builder.String()
}

func (p *Macro) String() string {
	return fmt.Sprintf("%s\n%s:%d\n", p.Definition(), p.file, p.line)
}
