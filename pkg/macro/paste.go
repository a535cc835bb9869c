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
	"regexp"
	"slices"
	"strings"
)

// WILDCARD is the regular expression which matches any (non-empty) argument
// pasted into a macro expansion.
const WILDCARD = `\w+`

// VA_ARGS identifies the variable arguments of a variadic macro.
const VA_ARGS = "__VA_ARGS__"

// Matches the token-pasting operator along with any surrounding whitespace.
var pasteOperator = regexp.MustCompile(`\s*##\s*`)

// Matches runs of characters which separate tokens in a macro body.
var separators = regexp.MustCompile(`[()\[\]{}.,?:;+\-=<>*^~|&%!/\s\\]+`)

// Segment is a single component of a paste pattern, which is either some
// literal text or a wildcard standing for a macro argument.
type Segment struct {
	// Literal text, or empty for a wildcard.
	Text string
	// Indicates whether this segment is a wildcard.
	Wildcard bool
}

// Literal constructs a segment which matches exactly the given text.
func Literal(text string) Segment {
	return Segment{text, false}
}

// Wildcard constructs a segment which matches any argument.
func Wildcard() Segment {
	return Segment{"", true}
}

// Pattern describes the tokens which can result from pasting together a
// sequence of literal text and macro arguments.  For example, the body
// "prefix_##a" of a macro with parameter "a" gives the pattern "prefix_" then a
// wildcard.  Adjacent wildcards are always merged.
type Pattern struct {
	segments []Segment
}

// NewPattern constructs a pattern from a given sequence of segments, merging
// any adjacent wildcards.
func NewPattern(segments ...Segment) Pattern {
	var merged []Segment
	//
	for _, s := range segments {
		if s.Wildcard && len(merged) > 0 && merged[len(merged)-1].Wildcard {
			continue
		}
		//
		merged = append(merged, s)
	}
	//
	return Pattern{merged}
}

// Segments returns the segments making up this pattern.
func (p Pattern) Segments() []Segment {
	return p.segments
}

// IsEmpty checks whether this pattern has no segments.
func (p Pattern) IsEmpty() bool {
	return len(p.segments) == 0
}

// Regexp returns the regular expression corresponding to this pattern.
func (p Pattern) Regexp() string {
	var builder strings.Builder
	//
	for _, s := range p.segments {
		if s.Wildcard {
			builder.WriteString(WILDCARD)
		} else {
			builder.WriteString(regexp.QuoteMeta(s.Text))
		}
	}
	//
	return builder.String()
}

// Compile this pattern into a matcher.  Matchers are intended to be used for
// searching, rather than matching a token in its entirety.
func (p Pattern) Compile() *regexp.Regexp {
	// Literals are quoted, hence this cannot fail.
	return regexp.MustCompile(p.Regexp())
}

func (p Pattern) String() string {
	var builder strings.Builder
	//
	for _, s := range p.segments {
		if s.Wildcard {
			builder.WriteString("*")
		} else {
			builder.WriteString(s.Text)
		}
	}
	//
	return builder.String()
}

// DerivePastePatterns determines the set of patterns describing the tokens
// that can be produced by the token-pasting operators in a given macro body.
// Each run of pasted tokens in the body gives one pattern, where those tokens
// naming a parameter become wildcards.
func DerivePastePatterns(params []string, body string) []Pattern {
	var patterns []Pattern
	//
	if len(params) == 0 || !strings.Contains(body, PASTE) {
		return nil
	}
	//
	params = pasteParams(params)
	body = pasteOperator.ReplaceAllString(body, PASTE)
	//
	for _, fragment := range separators.Split(body, -1) {
		if !strings.Contains(fragment, PASTE) {
			continue
		}
		//
		var segments []Segment
		//
		for _, piece := range strings.Split(fragment, "#") {
			switch {
			case piece == "":
				continue
			case slices.Contains(params, piece):
				segments = append(segments, Wildcard())
			default:
				segments = append(segments, Literal(piece))
			}
		}
		//
		if pattern := NewPattern(segments...); !pattern.IsEmpty() {
			patterns = append(patterns, pattern)
		}
	}
	//
	return patterns
}

// Determine the names by which parameters can be referred to in a macro body.
// This accounts for variadic macros, where "..." is referred to as __VA_ARGS__
// and "args..." as args.
func pasteParams(params []string) []string {
	last := params[len(params)-1]
	//
	if last == "..." {
		return append(slices.Clone(params[:len(params)-1]), VA_ARGS)
	} else if name, ok := strings.CutSuffix(last, "..."); ok {
		return append(slices.Clone(params[:len(params)-1]), strings.TrimSpace(name))
	}
	//
	return params
}
