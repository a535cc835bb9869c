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
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/consensys/go-cmacros/pkg/macro"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is filled when building with make, but *not* when installing via "go
// install".
var Version string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cmacros [flags] source_dir",
	Short: "Query the preprocessor macros defined in a C source tree.",
	Long: `Scan a tree of C source and header files for macro definitions, and then
	query them interactively.  Macros can be looked up by name, by the file
	defining them, or by a token which they could produce through token
	pasting (i.e. "##").`,
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			printVersion()
			return
		}
		//
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		store := buildStore(args[0], GetStringArray(cmd, "ext"))
		fmt.Printf("Total Macros:%d\n", store.Len())
		// Run commands given on the command line (if any)
		if commands := GetStringArray(cmd, "exec"); len(commands) > 0 {
			shell := NewShell(store, os.Stdout)
			//
			for _, c := range commands {
				if !shell.Execute(c) {
					break
				}
			}
			//
			return
		}
		//
		err := RunTerminal(func(out io.Writer) *Shell {
			return NewShell(store, out)
		}, GetString(cmd, "prompt"))
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	},
}

// Build the store of macros for a given source tree, or exit if the tree does
// not exist.  An interrupt during the build stops scanning, but retains those
// macros found so far.
func buildStore(root string, suffixes []string) *macro.Store {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	//
	store := macro.NewStore()
	stats, err := macro.NewBuilder(suffixes...).Build(ctx, store, root)
	//
	if ctx.Err() != nil {
		log.Warnf("build interrupted after %d files", stats.Files)
	} else if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	log.Debugf("scanned %d files (%d skipped): %d macros, %d failures", stats.Files, stats.Skipped, stats.Macros,
		stats.Failures)
	//
	return store
}

func printVersion() {
	fmt.Print("cmacros ")
	//
	if Version != "" {
		// Built via "make"
		fmt.Printf("%s", Version)
	} else if info, ok := debug.ReadBuildInfo(); ok {
		// Built via "go install"
		fmt.Printf("%s", info.Main.Version)
	} else {
		// Unknown, perhaps "go run"
		fmt.Printf("(unknown version)")
	}
	//
	fmt.Println()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "Report version of this executable")
	rootCmd.Flags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.Flags().StringArray("ext", macro.DEFAULT_SUFFIXES, "filename suffix of files to scan")
	rootCmd.Flags().StringArrayP("exec", "e", []string{}, "execute query command(s) and exit")
	rootCmd.Flags().String("prompt", "Def: ", "prompt for the interactive shell")
}
