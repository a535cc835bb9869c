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
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/consensys/go-cmacros/pkg/util/file"
	"github.com/consensys/go-cmacros/pkg/util/source"
	log "github.com/sirupsen/logrus"
)

// DEFAULT_SUFFIXES identifies the C source and header files scanned by default.
var DEFAULT_SUFFIXES = []string{".c", ".h"}

// Stats summarises the outcome of a build.
type Stats struct {
	// Number of files scanned.
	Files int
	// Number of files skipped because they could not be read.
	Skipped int
	// Number of macros added to the store.
	Macros int
	// Number of macro definitions which could not be parsed.
	Failures int
}

// Builder populates a store with the macros defined in a source tree.
type Builder struct {
	// Filename suffixes to scan
	suffixes []string
	// Destination for diagnostics
	logger log.FieldLogger
}

// NewBuilder constructs a builder which scans files with the given suffixes,
// or DEFAULT_SUFFIXES if none are given.
func NewBuilder(suffixes ...string) *Builder {
	if len(suffixes) == 0 {
		suffixes = DEFAULT_SUFFIXES
	}
	//
	return &Builder{suffixes, log.StandardLogger()}
}

// WithLogger sets the logger used to report macros which cannot be parsed.
func (p *Builder) WithLogger(logger log.FieldLogger) *Builder {
	p.logger = logger
	return p
}

// Build clears the given store, and then fills it with every macro defined in
// the source tree at root.  An error is returned immediately if root does not
// exist.  Macros which cannot be parsed are logged and skipped.  If the build
// is cancelled, or fails, the store retains the macros found up to that point.
func (p *Builder) Build(ctx context.Context, store *Store, root string) (Stats, error) {
	var stats Stats
	//
	tree, err := file.NewTree(root, p.suffixes...)
	if err != nil {
		return stats, err
	}
	//
	store.Reset()
	//
	err = tree.Walk(func(filename string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		//
		return p.Scan(store, filename, source.NewSourceFile(filename).Lines(), &stats)
	})
	//
	return stats, err
}

// Scan the lines of a single file, appending every macro defined therein to
// the given store.  A file which cannot be read at all is logged and counted
// as skipped, whilst a read failure part way through skips the remainder of
// the file.  The only error returned is a ContractViolation.
func (p *Builder) Scan(store *Store, filename string, lines iter.Seq2[source.Line, error], stats *Stats) error {
	assembler := NewAssembler()
	opened := false
	//
	for line, err := range lines {
		if err != nil {
			p.logger.WithField("file", filename).Debugf("skipping %s: %v", filename, err)
			//
			if !opened {
				stats.Skipped++
				return nil
			}
			//
			break
		} else if !opened {
			opened = true
			stats.Files++
		}
		//
		text, ok, err := assembler.Feed(line.String(), line.Number())
		//
		if err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		} else if ok {
			p.parse(store, text, filename, stats)
		}
	}
	// Empty files are still scanned
	if !opened {
		stats.Files++
	}
	// Handle a continuation on the last line
	if text, ok := assembler.Flush(); ok {
		p.parse(store, text, filename, stats)
	}
	//
	return nil
}

func (p *Builder) parse(store *Store, text Text, filename string, stats *Stats) {
	var perr *ParseError
	//
	m, err := Parse(text.Text, filename, text.Line)
	//
	if errors.As(err, &perr) {
		stats.Failures++
		//
		p.logger.WithFields(log.Fields{"file": perr.File, "line": perr.Line}).Warn(perr.Error())
	} else {
		stats.Macros++
		//
		store.Append(m)
	}
}
