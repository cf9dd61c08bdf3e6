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
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/netsys-lab/scion-addr/pkg/addr"
	"github.com/netsys-lab/scion-addr/pkg/log"
	"github.com/netsys-lab/scion-addr/pkg/private/serrors"
)

// addrInfo is the decomposition of a single address literal. Fields that do
// not apply to the kind of the literal are left unset.
type addrInfo struct {
	Kind      string    `json:"kind" yaml:"kind"`
	Canonical string    `json:"canonical" yaml:"canonical"`
	IA        *addr.IA  `json:"isd_as,omitempty" yaml:"isd_as,omitempty"`
	ISD       *addr.ISD `json:"isd,omitempty" yaml:"isd,omitempty"`
	AS        string    `json:"as,omitempty" yaml:"as,omitempty"`
	ASDecimal *uint64   `json:"as_decimal,omitempty" yaml:"as_decimal,omitempty"`
	IADecimal *uint64   `json:"isd_as_decimal,omitempty" yaml:"isd_as_decimal,omitempty"`
	Host      string    `json:"host" yaml:"host"`
	Family    string    `json:"family" yaml:"family"`
	Port      *uint16   `json:"port,omitempty" yaml:"port,omitempty"`
	ScopeID   *uint32   `json:"scope_id,omitempty" yaml:"scope_id,omitempty"`
}

func newInspect(pather CommandPather) *cobra.Command {
	var flags struct {
		format   string
		logLevel string
	}

	var cmd = &cobra.Command{
		Use:   "inspect <literal>",
		Short: "Decompose an address literal into its fields",
		Example: fmt.Sprintf(`  %[1]s inspect 19-ffaa:1:1067,[127.0.0.1]:53
  %[1]s inspect 2001:db8::1 --format json
  %[1]s inspect '[fe80::1%%25]:8080' --format table`, pather.CommandPath()),
		Long: `'inspect' parses an address literal and prints its decomposed fields.

The literal is tried as a socket address with a port, as a SCION address
without one, and finally as a bare IP address, in that order. The output
always contains the kind of the literal, its canonical rendering, the host
address and its family; ISD-AS, port and scope fields appear when the
literal carries them.
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setupLog(flags.logLevel); err != nil {
				return err
			}
			defer log.Flush()
			cmd.SilenceUsage = true

			info, err := inspect(args[0])
			if err != nil {
				return err
			}
			switch flags.format {
			case "human":
				info.human(cmd.OutOrStdout())
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(info)
			case "yaml":
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				return enc.Encode(info)
			case "table":
				info.table(cmd.OutOrStdout())
			default:
				return serrors.New("format not supported", "format", flags.format)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.format, "format", "human",
		"Specify the output format (human|json|yaml|table)")
	cmd.Flags().StringVar(&flags.logLevel, "log.level", "", logLevelUsage)
	return cmd
}

// inspect parses literal with the trial order of the socket-address grammar:
// socket address first, then SCION address, then bare IP.
func inspect(literal string) (*addrInfo, error) {
	sa, err := addr.ParseSocketAddr(literal)
	if err == nil {
		return socketAddrInfo(sa), nil
	}
	log.Debug("Not a socket address", "literal", literal, "err", err)

	a, err := addr.ParseAddr(literal)
	if err == nil {
		return scionAddrInfo(a), nil
	}
	log.Debug("Not a SCION address", "literal", literal, "err", err)

	ip, err := addr.ParseIP(literal)
	if err == nil {
		return ipAddrInfo(ip), nil
	}
	log.Debug("Not an IP address", "literal", literal, "err", err)

	return nil, serrors.New("unrecognized address literal", "literal", literal)
}

func ipAddrInfo(ip addr.IP) *addrInfo {
	return &addrInfo{
		Kind:      "address",
		Canonical: ip.String(),
		Host:      ip.String(),
		Family:    family(ip),
	}
}

func scionAddrInfo(a addr.Addr) *addrInfo {
	info := &addrInfo{
		Kind:      "scion address",
		Canonical: a.String(),
		Host:      a.Host.String(),
		Family:    family(a.Host),
	}
	info.fillIA(a.IA)
	return info
}

func socketAddrInfo(sa addr.SocketAddr) *addrInfo {
	port := sa.Port()
	info := &addrInfo{
		Kind:      "socket address",
		Canonical: sa.String(),
		Host:      sa.IP().String(),
		Family:    family(sa.IP()),
		Port:      &port,
	}
	switch sa.Type() {
	case addr.SocketAddrSCION:
		info.Kind = "scion socket address"
		info.fillIA(sa.IA())
	case addr.SocketAddrIPv6:
		if scope := sa.ScopeID(); scope != 0 {
			info.ScopeID = &scope
		}
	}
	return info
}

func (i *addrInfo) fillIA(ia addr.IA) {
	isd := ia.ISD()
	asDecimal := uint64(ia.AS())
	iaDecimal := uint64(ia)
	i.IA = &ia
	i.ISD = &isd
	i.AS = ia.AS().String()
	i.ASDecimal = &asDecimal
	i.IADecimal = &iaDecimal
}

func family(ip addr.IP) string {
	if ip.Is4() {
		return "IPv4"
	}
	return "IPv6"
}

// fields returns the name/value rows in display order, shared by the human
// and table renderings.
func (i *addrInfo) fields() [][]string {
	rows := [][]string{
		{"kind", i.Kind},
		{"canonical", i.Canonical},
	}
	if i.IA != nil {
		rows = append(rows,
			[]string{"isd-as", i.IA.String()},
			[]string{"isd", strconv.Itoa(int(*i.ISD))},
			[]string{"as", i.AS},
			[]string{"as decimal", strconv.FormatUint(*i.ASDecimal, 10)},
			[]string{"isd-as decimal", strconv.FormatUint(*i.IADecimal, 10)},
		)
	}
	rows = append(rows,
		[]string{"host", i.Host},
		[]string{"family", i.Family},
	)
	if i.Port != nil {
		rows = append(rows, []string{"port", strconv.Itoa(int(*i.Port))})
	}
	if i.ScopeID != nil {
		rows = append(rows, []string{"scope id", strconv.FormatUint(uint64(*i.ScopeID), 10)})
	}
	return rows
}

func (i *addrInfo) human(w io.Writer) {
	for _, row := range i.fields() {
		fmt.Fprintf(w, "%14s: %s\n", row[0], row[1])
	}
}

func (i *addrInfo) table(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"Field", "Value"})
	table.AppendBulk(i.fields())
	table.Render()
}
