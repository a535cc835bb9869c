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
package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/consensys/go-cmacros/pkg/macro"
)

// Shell executes query commands against a store of macros, writing their
// results to a given output.
type Shell struct {
	store *macro.Store
	out   io.Writer
}

// shellCommand describes a single command understood by the shell.
type shellCommand struct {
	// Usage of this command
	usage string
	// Brief description of this command
	help string
	// Indicates whether an argument is required
	required bool
	// Executes the command with a given argument (which may be empty).
	run func(*Shell, string)
}

// Commands understood by the shell, indexed by name.
var shellCommands map[string]shellCommand

func init() {
	shellCommands = map[string]shellCommand{
		"expr":  {"expr NAME", "list macros with the given name", true, (*Shell).exactCommand},
		"head":  {"head NAME", "same as expr", true, (*Shell).exactCommand},
		"list":  {"list [TEXT]", "list macros whose name contains TEXT (or all macros)", false, (*Shell).listCommand},
		"body":  {"body TOKEN", "list macros which can expand to TOKEN by token pasting", true, (*Shell).pasteCommand},
		"tail":  {"tail TOKEN", "same as body", true, (*Shell).pasteCommand},
		"text":  {"text TEXT", "list macros whose body contains TEXT", true, (*Shell).textCommand},
		"from":  {"from FILE", "list macros defined in FILE", true, (*Shell).fromCommand},
		"files": {"files", "list all files which contain macros", false, (*Shell).filesCommand},
		"help":  {"help", "print this message", false, (*Shell).helpCommand},
	}
}

// NewShell constructs a shell over a given store.
func NewShell(store *macro.Store, out io.Writer) *Shell {
	return &Shell{store, out}
}

// Execute a single command line.  This returns false when the shell should
// terminate.
func (p *Shell) Execute(line string) bool {
	line = strings.TrimSpace(line)
	//
	if line == "" {
		return true
	}
	//
	name, arg := line, ""
	//
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		name, arg = line[:i], strings.TrimSpace(line[i+1:])
	}
	//
	if name == "quit" || name == "exit" {
		return false
	} else if command, ok := shellCommands[name]; !ok {
		fmt.Fprintf(p.out, "unknown command \"%s\" (try help)\n", name)
	} else if command.required && arg == "" {
		fmt.Fprintf(p.out, "usage: %s\n", command.usage)
	} else {
		command.run(p, arg)
	}
	//
	return true
}

func (p *Shell) exactCommand(name string) {
	p.printMacros(p.store.LookupExact(name))
}

func (p *Shell) listCommand(text string) {
	p.printMacros(p.store.LookupContains(text))
}

func (p *Shell) textCommand(text string) {
	p.printMacros(p.store.LookupBody(text))
}

func (p *Shell) fromCommand(file string) {
	p.printMacros(p.store.LookupFile(file))
}

func (p *Shell) pasteCommand(token string) {
	matches := p.store.LookupPasteMatch(token)
	//
	for _, m := range matches {
		fmt.Fprintf(p.out, "Macro:%d\n", m.Index)
		fmt.Fprintln(p.out, m.Macro)
	}
	//
	fmt.Fprintf(p.out, "Total possible macros:%d\n", len(matches))
}

func (p *Shell) filesCommand(string) {
	files := p.store.Files()
	//
	for _, f := range files {
		fmt.Fprintln(p.out, f)
	}
	//
	fmt.Fprintf(p.out, "Total files with Macros: %d\n", len(files))
}

func (p *Shell) helpCommand(string) {
	names := make([]string, 0, len(shellCommands))
	//
	for name := range shellCommands {
		names = append(names, name)
	}
	//
	sort.Strings(names)
	//
	for _, name := range names {
		command := shellCommands[name]
		fmt.Fprintf(p.out, "%-14s %s\n", command.usage, command.help)
	}
	//
	fmt.Fprintf(p.out, "%-14s %s\n", "quit", "leave the shell")
}

func (p *Shell) printMacros(macros []*macro.Macro) {
	for _, m := range macros {
		fmt.Fprintln(p.out, m)
	}
	//
	fmt.Fprintf(p.out, "Total matching macros:%d\n", len(macros))
}
