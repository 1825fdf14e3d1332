// Copyright PolyHorn Contributors.
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
	"os"

	"github.com/polyhorn/go-polyhorn/pkg/assembler"
	"github.com/polyhorn/go-polyhorn/pkg/solver"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// encodeCmd compiles a system and emits the SMT-LIB script without invoking
// any solver, for inspection or offline dispatch.
var encodeCmd = &cobra.Command{
	Use:   "encode [flags] system_file",
	Short: "Compile a Horn clause system into an SMT-LIB script.",
	Long: `Translate a universally quantified polynomial Horn clause system into an
existential constraint system and print the resulting SMT-LIB script, leaving
solving to the caller.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		settings, err := LoadSettings(cmd)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		if name := GetString(cmd, "theorem"); name != "" {
			settings.TheoremName = name
		}
		//
		system := readSystemFile(args[0])
		//
		cfg, err := settings.AssemblerConfig()
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		aggregate, err := assembler.Compile(cfg, system)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		script := solver.BuildScript(aggregate)
		//
		if settings.OutputPath != "" {
			if err := os.WriteFile(settings.OutputPath, []byte(script.String()), 0644); err != nil {
				fmt.Println(err)
				os.Exit(2)
			}
			//
			return
		}
		//
		fmt.Print(script.String())
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().String("theorem", "", "certificate theorem (farkas, handelman, putinar, auto)")
}
