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
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/polyhorn/go-polyhorn/pkg/assembler"
	"github.com/polyhorn/go-polyhorn/pkg/solver"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// solveCmd decides a Horn clause system end to end: read, compile, dispatch,
// report.
var solveCmd = &cobra.Command{
	Use:   "solve [flags] system_file",
	Short: "Decide a polynomial Horn clause system.",
	Long: `Translate a universally quantified polynomial Horn clause system into an
existential constraint system, hand it to an SMT solver, and report the verdict
together with a model for the unknowns (when one exists).`,
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
		if name := GetString(cmd, "solver"); name != "" {
			settings.SolverName = name
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
		if settings.OutputPath != "" {
			script := solver.BuildScript(aggregate)
			//
			if err := os.WriteFile(settings.OutputPath, []byte(script.String()), 0644); err != nil {
				fmt.Println(err)
				os.Exit(2)
			}
		}
		//
		oracle, err := solver.NewExecOracle(settings.SolverName)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		ctx := context.Background()
		//
		if timeout := GetUint(cmd, "timeout"); timeout != 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
			//
			defer cancel()
		}
		//
		dispatcher := solver.Dispatcher{Oracle: oracle, UnsatCore: settings.UnsatCoreHeuristic}
		//
		outcome, err := dispatcher.Solve(ctx, aggregate)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		reportOutcome(aggregate, outcome)
		//
		if outcome.Verdict == solver.Unsat {
			os.Exit(1)
		}
	},
}

// reportOutcome prints the verdict and, for a satisfiable system, one line
// per unknown in declaration order.
func reportOutcome(aggregate *assembler.AggregateSystem, outcome solver.Outcome) {
	switch outcome.Verdict {
	case solver.Sat:
		color.Green("sat")
		//
		for _, v := range aggregate.Unknowns {
			if val, ok := outcome.Model[v.Name]; ok {
				fmt.Printf("  %s = %s\n", v.Name, val.RatString())
			}
		}
	case solver.Unsat:
		color.Red("unsat")
	default:
		color.Yellow("unknown")
	}
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().String("solver", "", "external SMT solver to dispatch to")
	solveCmd.Flags().String("theorem", "", "certificate theorem (farkas, handelman, putinar, auto)")
	solveCmd.Flags().Uint("timeout", 0, "solver timeout in seconds (0 for none)")
}
