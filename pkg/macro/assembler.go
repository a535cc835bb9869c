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

// Text is a logical macro definition, possibly assembled from several physical
// lines, along with the line on which it starts.
type Text struct {
	Text string
	Line int
}

// ContractViolation is reported when a new macro definition begins whilst a
// previous definition is still being continued.  The input stream is
// considered broken at this point.
type ContractViolation struct {
	// Line where the pending definition started.
	Start int
	// Line where the new definition was found.
	Line int
	// Text of the offending line.
	Text string
}

func (p *ContractViolation) Error() string {
	return fmt.Sprintf("line %d: macro definition started whilst continuing definition from line %d: %s",
		p.Line, p.Start, p.Text)
}

// Assembler joins physical source lines into logical macro definitions.  It is
// a simple state machine which is either idle, or accumulating a definition
// that has been continued with a trailing backslash.
type Assembler struct {
	// Indicates whether a definition is being accumulated.
	accumulating bool
	// Line where the accumulated definition starts.
	start int
	// Text accumulated so far.
	buffer strings.Builder
}

// NewAssembler constructs an idle assembler.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// IsAccumulating determines whether a continued definition is pending.
func (p *Assembler) IsAccumulating() bool {
	return p.accumulating
}

// Feed passes the next physical line into this assembler.  When the line
// completes a logical macro definition, it is returned and the flag is true.
// Lines outside of a macro definition are ignored.
func (p *Assembler) Feed(line string, number int) (Text, bool, error) {
	line = strings.TrimSpace(line)
	//
	if !p.accumulating {
		if !IsMacroStart(line) {
			return Text{}, false, nil
		} else if body, ok := cutContinuation(line); ok {
			p.accumulating = true
			p.start = number
			p.buffer.Reset()
			p.buffer.WriteString(body)
			//
			return Text{}, false, nil
		}
		//
		return Text{line, number}, true, nil
	} else if IsMacroStart(line) {
		err := &ContractViolation{p.start, number, line}
		p.reset()
		//
		return Text{}, false, err
	}
	//
	body, more := cutContinuation(line)
	p.buffer.WriteString(body)
	//
	if more {
		return Text{}, false, nil
	}
	//
	text := Text{p.buffer.String(), p.start}
	p.reset()
	//
	return text, true, nil
}

// Flush returns any definition still being accumulated (i.e. whose last line
// ended with a continuation), and resets this assembler.
func (p *Assembler) Flush() (Text, bool) {
	if !p.accumulating {
		return Text{}, false
	}
	//
	text := Text{p.buffer.String(), p.start}
	p.reset()
	//
	return text, true
}

func (p *Assembler) reset() {
	p.accumulating = false
	p.start = 0
	p.buffer.Reset()
}

// IsMacroStart determines whether a (trimmed) line begins a macro definition.
// That is, "#" followed by optional spaces or tabs and then "define".
// Comments between "#" and "define" are not recognised.
func IsMacroStart(line string) bool {
	rest, ok := strings.CutPrefix(line, "#")
	//
	return ok && strings.HasPrefix(strings.TrimLeft(rest, " \t"), "define")
}

// Replace a trailing continuation with a newline.
func cutContinuation(line string) (string, bool) {
	if body, ok := strings.CutSuffix(line, "\\"); ok {
		return body + "\n", true
	}
	//
	return line, false
}
