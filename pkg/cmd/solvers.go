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

	"github.com/polyhorn/go-polyhorn/pkg/solver"
	"github.com/spf13/cobra"
)

// solversCmd reports which supported SMT solvers are installed.
var solversCmd = &cobra.Command{
	Use:   "solvers",
	Short: "List the supported SMT solvers found on the PATH.",
	Run: func(cmd *cobra.Command, args []string) {
		available := solver.Available()
		//
		if len(available) == 0 {
			fmt.Println("no supported solver found")
			return
		}
		//
		for _, name := range available {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(solversCmd)
}
