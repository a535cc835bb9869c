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
	"strings"
)

// MALFORMED_DEFINE indicates a logical line which does not start with a
// recognisable "#define" directive followed by a macro name.
const MALFORMED_DEFINE = uint(0)

// UNBALANCED_PARENS indicates a parameter list with a stray closing
// parenthesis, or one which is never closed.
const UNBALANCED_PARENS = uint(1)

// ParseError is reported for a macro definition which could not be parsed.  It
// retains the offending text and its location.
type ParseError struct {
	// Kind of error (e.g. MALFORMED_DEFINE).
	Kind uint
	// Offending text
	Text string
	// Source file and line where the definition begins.
	File string
	Line int
}

func (p *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:Unable to parse\n%s", p.File, p.Line, p.Text)
}

// Parse a logical macro definition, as produced by an Assembler, into a macro.
// Not every valid definition is recognised.  In particular, "#" and "define"
// may only be separated by whitespace, and "define" must be followed by
// whitespace.  Some examples:
//
//	#define NAME
//	#define NAME body
//	#    define NAME body
//	#define NAME(x,y) body
func Parse(text string, file string, line int) (*Macro, error) {
	rest, ok := cutDefine(text)
	//
	if !ok || rest == "" {
		return nil, &ParseError{MALFORMED_DEFINE, text, file, line}
	}
	// Index of opening parenthesis (if any)
	start := 0
	depth := 0
	//
	for i, c := range rest {
		switch {
		case depth == 0 && c == ')':
			return nil, &ParseError{UNBALANCED_PARENS, text, file, line}
		case depth == 0 && c == '(':
			if i == 0 {
				return nil, &ParseError{MALFORMED_DEFINE, text, file, line}
			}
			//
			start = i
			depth = 1
		case depth == 0 && isSpace(c):
			return NewObjectMacro(rest[:i], strings.TrimSpace(rest[i+1:]), file, line), nil
		case c == '(':
			depth++
		case c == ')':
			depth--
			//
			if depth == 0 {
				params := splitParams(rest[start+1 : i])
				body := strings.TrimSpace(rest[i+1:])
				//
				return NewFunctionMacro(rest[:start], params, body, file, line), nil
			}
		}
	}
	//
	if depth > 0 {
		return nil, &ParseError{UNBALANCED_PARENS, text, file, line}
	}
	// Bare flag macro
	return NewObjectMacro(rest, "", file, line), nil
}

// Strip the leading "#define" (or "# define") from a logical line, returning
// what remains.
func cutDefine(text string) (string, bool) {
	text = strings.TrimSpace(text)
	//
	rest, ok := strings.CutPrefix(text, "#")
	if !ok {
		return "", false
	}
	//
	rest, ok = strings.CutPrefix(strings.TrimLeft(rest, " \t"), "define")
	// Directive must be separated from the name
	if !ok || (rest != "" && !isSpace(rune(rest[0]))) {
		return "", false
	}
	//
	return strings.TrimLeft(rest, " \t\n"), true
}

// Split a parameter list on commas.  A blank list has no parameters.
func splitParams(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	//
	params := strings.Split(text, ",")
	//
	for i, p := range params {
		params[i] = strings.TrimSpace(p)
	}
	//
	return params
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n'
}
