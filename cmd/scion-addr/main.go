// Copyright 2025 Network Systems Lab, OVGU Magdeburg
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/netsys-lab/scion-addr/pkg/log"
	"github.com/netsys-lab/scion-addr/pkg/private/serrors"
)

// CommandPather returns the path to a command.
type CommandPather interface {
	CommandPath() string
}

const logLevelUsage = "Console logging level verbosity (debug|info|error)"

func main() {
	executable := filepath.Base(os.Args[0])
	cmd := &cobra.Command{
		Use:           executable,
		Short:         "SCION address literal utilities",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
	}
	cmd.AddCommand(
		newInspect(cmd),
		newFormat(cmd),
	)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

// setupLog initializes console logging for a command invocation. An empty
// level selects the default.
func setupLog(level string) error {
	if err := log.Setup(log.Config{
		Console: log.ConsoleConfig{Level: level},
	}); err != nil {
		return serrors.Wrap("setting up logging", err)
	}
	return nil
}
