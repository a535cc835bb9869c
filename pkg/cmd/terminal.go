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
	"bufio"
	"errors"
	"io"
	"os"

	"golang.org/x/term"
)

// RunTerminal runs an interactive shell on the terminal attached to standard
// input, with line editing and history.  If standard input is not a terminal,
// commands are simply read from it line by line.
func RunTerminal(shell func(io.Writer) *Shell, prompt string) error {
	fd := int(os.Stdin.Fd())
	//
	if !term.IsTerminal(fd) {
		return RunLines(os.Stdin, shell(os.Stdout))
	}
	// Move terminal into raw mode
	state, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	//
	defer term.Restore(fd, state) //nolint:errcheck
	// Construct "screen"
	screen := struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}
	// Output must go through the terminal, as it translates newlines.
	terminal := term.NewTerminal(screen, prompt)
	sh := shell(terminal)
	//
	for {
		line, err := terminal.ReadLine()
		//
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		} else if !sh.Execute(line) {
			return nil
		}
	}
}

// RunLines executes each line read from a given reader as a shell command,
// until either the input is exhausted or the shell terminates.
func RunLines(r io.Reader, shell *Shell) error {
	scanner := bufio.NewScanner(r)
	//
	for scanner.Scan() {
		if !shell.Execute(scanner.Text()) {
			return nil
		}
	}
	//
	return scanner.Err()
}
