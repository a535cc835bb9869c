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
package source

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"os"
	"strings"
)

// Line represents a single physical line of a source file, without its line
// terminator.
type Line struct {
	// Text of this line.
	text string
	// Line number of this line (counting from 1).
	number int
}

// NewLine constructs a line with a given number.
func NewLine(text string, number int) Line {
	return Line{text, number}
}

// Get the string representing this line.
func (p *Line) String() string {
	return p.text
}

// Number gets the line number of this line, where the first line in a file has
// line number 1.
func (p *Line) Number() int {
	return p.number
}

// File represents a given source file stored on disk.  Its contents are not
// held in memory; rather, they are read on demand one line at a time.
type File struct {
	// File name for this source file.
	filename string
}

// NewSourceFile constructs a new source file for a given filename.
func NewSourceFile(filename string) *File {
	return &File{filename}
}

// Filename returns the filename associated with this source file.
func (s *File) Filename() string {
	return s.filename
}

// Lines returns the sequence of physical lines in this file.  The file is
// (re)opened each time the sequence is iterated, and closed when iteration
// finishes or is abandoned.  Failing to open the file yields a single error.
func (s *File) Lines() iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		f, err := os.Open(s.filename)
		if err != nil {
			yield(Line{}, err)
			return
		}
		//
		defer f.Close()
		//
		for line, err := range ReadLines(f) {
			if !yield(line, err) {
				return
			}
		}
	}
}

// ReadLines splits a given reader into physical lines, numbered from 1.  Both
// "\n" and "\r\n" terminate a line.  Byte sequences which are not valid UTF-8
// are discarded.  A read error is yielded once, after which the sequence ends.
func ReadLines(r io.Reader) iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		reader := bufio.NewReader(r)
		//
		for number := 1; ; number++ {
			text, err := reader.ReadString('\n')
			// Check for end of input
			if err != nil && !errors.Is(err, io.EOF) {
				yield(Line{}, err)
				return
			} else if text == "" && err != nil {
				return
			}
			//
			text = strings.TrimSuffix(text, "\n")
			text = strings.TrimSuffix(text, "\r")
			//
			if !yield(Line{strings.ToValidUTF8(text, ""), number}, nil) || err != nil {
				return
			}
		}
	}
}
