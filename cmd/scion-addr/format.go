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

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/netsys-lab/scion-addr/pkg/addr"
	"github.com/netsys-lab/scion-addr/pkg/log"
	"github.com/netsys-lab/scion-addr/pkg/private/serrors"
)

var (
	_ pflag.Value = (*asVal)(nil)
	_ pflag.Value = (*addr.IA)(nil)
	_ pflag.Value = (*addr.Addr)(nil)
)

type asVal addr.AS

func (v *asVal) Set(val string) error {
	a, err := addr.ParseAS(val)
	if err != nil {
		return err
	}
	*v = asVal(a)
	return nil
}

func (v *asVal) Type() string   { return "as" }
func (v *asVal) String() string { return addr.AS(*v).String() }

func newFormat(pather CommandPather) *cobra.Command {
	var flags struct {
		ia       addr.IA
		isd      uint16
		as       asVal
		file     bool
		prefix   bool
		logLevel string
	}

	var cmd = &cobra.Command{
		Use:   "format",
		Short: "Print the textual renderings of an ISD-AS",
		Example: fmt.Sprintf(`  %[1]s format --ia 19-ffaa:1:1067
  %[1]s format --isd 19 --as ffaa:1:1067 --file
  %[1]s format --ia 19-ffaa:1:1067 --file --prefix`, pather.CommandPath()),
		Long: `'format' prints the textual renderings of an ISD-AS.

The ISD-AS is given either assembled with --ia, or as separate --isd and
--as parts. Without further flags all renderings are printed: the canonical
form, the file-system form with '_' for ':', the form with the ISD/AS
prefixes, and the packed decimal value. With --file or --prefix exactly one
rendering is printed, suitable for scripting; the two flags combine.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setupLog(flags.logLevel); err != nil {
				return err
			}
			defer log.Flush()
			cmd.SilenceUsage = true

			ia := flags.ia
			switch {
			case cmd.Flags().Changed("isd") || cmd.Flags().Changed("as"):
				if cmd.Flags().Changed("ia") {
					return serrors.New("--ia cannot be combined with --isd and --as")
				}
				var err error
				ia, err = addr.IAFrom(addr.ISD(flags.isd), addr.AS(flags.as))
				if err != nil {
					return serrors.Wrap("assembling ISD-AS", err)
				}
			case !cmd.Flags().Changed("ia"):
				return serrors.New("an ISD-AS is required, use --ia or --isd and --as")
			}
			log.Debug("Resolved ISD-AS", "ia", ia)

			out := cmd.OutOrStdout()
			if flags.file || flags.prefix {
				var opts []addr.FormatOption
				if flags.file {
					opts = append(opts, addr.WithFileSeparator())
				}
				if flags.prefix {
					opts = append(opts, addr.WithDefaultPrefix())
				}
				_, err := fmt.Fprintln(out, addr.FormatIA(ia, opts...))
				return err
			}
			fmt.Fprintf(out, "%10s: %s\n", "canonical", ia)
			fmt.Fprintf(out, "%10s: %s\n", "file", addr.FormatIA(ia, addr.WithFileSeparator()))
			fmt.Fprintf(out, "%10s: %s\n", "prefixed", addr.FormatIA(ia, addr.WithDefaultPrefix()))
			fmt.Fprintf(out, "%10s: %d\n", "decimal", uint64(ia))
			return nil
		},
	}
	cmd.Flags().Var(&flags.ia, "ia", "The ISD-AS to format (e.g. 19-ffaa:1:1067)")
	cmd.Flags().Uint16Var(&flags.isd, "isd", 0, "The ISD part as a decimal number")
	cmd.Flags().Var(&flags.as, "as", "The AS part (decimal or colon-hex)")
	cmd.Flags().BoolVar(&flags.file, "file", false,
		"Print only the file-system rendering ('_' for ':')")
	cmd.Flags().BoolVar(&flags.prefix, "prefix", false,
		"Print only the rendering with the ISD/AS prefixes")
	cmd.Flags().StringVar(&flags.logLevel, "log.level", "", logLevelUsage)
	return cmd
}
