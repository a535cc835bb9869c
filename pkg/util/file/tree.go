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
package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ErrNoRoot is reported when the root of a source tree does not exist.
var ErrNoRoot = errors.New("path doesn't exist")

// Tree describes a directory tree of source files, restricted to those files
// whose names end with one of a given set of suffixes (e.g. ".c" or ".h").
type Tree struct {
	// Root directory of the tree.
	root string
	// Filename suffixes of interest.  An empty set matches every file.
	suffixes []string
}

// NewTree constructs a new source tree rooted at a given directory.  This
// fails immediately if the root does not exist, before anything is scanned.
func NewTree(root string, suffixes ...string) (*Tree, error) {
	if _, err := os.Stat(root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", root, ErrNoRoot)
		}
		//
		return nil, err
	}
	//
	return &Tree{root, suffixes}, nil
}

// Root returns the root directory of this tree.
func (p *Tree) Root() string {
	return p.root
}

// Matches determines whether a given filename is of interest for this tree.
func (p *Tree) Matches(filename string) bool {
	if len(p.suffixes) == 0 {
		return true
	}
	//
	for _, suffix := range p.suffixes {
		if strings.HasSuffix(filename, suffix) {
			return true
		}
	}
	//
	return false
}

// Walk visits every matching regular file in this tree (including symbolic
// links to regular files), in lexical order within each directory.  Entries which cannot be read (e.g. due to
// permissions) are skipped.  Walking stops at the first error returned by fn,
// and that error is returned.
func (p *Tree) Walk(fn func(filename string) error) error {
	return filepath.WalkDir(p.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == p.root {
				return err
			}
			// Absorb unreadable entries
			log.Debugf("skipping %s: %v", path, err)
			//
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			//
			return nil
		} else if !p.Matches(d.Name()) || !isRegular(path, d) {
			return nil
		}
		//
		return fn(path)
	})
}

// Determine whether an entry is a regular file, or a symbolic link to one.
// Links which cannot be resolved are skipped.
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return d.Type().IsRegular()
	}
	//
	info, err := os.Stat(path)
	if err != nil {
		log.Debugf("skipping %s: %v", path, err)
		return false
	}
	//
	return info.Mode().IsRegular()
}

// Files returns the list of matching files in this tree, in walk order.
func (p *Tree) Files() ([]string, error) {
	var files []string
	//
	err := p.Walk(func(filename string) error {
		files = append(files, filename)
		return nil
	})
	//
	return files, err
}
