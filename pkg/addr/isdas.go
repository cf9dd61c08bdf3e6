// Copyright 2024 Network Systems Lab, OVGU Magdeburg
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

package addr

import (
	"encoding"
	"fmt"
	"strconv"
	"strings"

	"github.com/netsys-lab/scion-addr/pkg/private/serrors"
)

const (
	IABytes   = 8
	ISDBits   = 16
	ASBits    = 48
	BGPASBits = 32
	MaxISD    = (1 << ISDBits) - 1
	MaxAS     = (1 << ASBits) - 1
	MaxBGPAS  = (1 << BGPASBits) - 1

	asPartBits = 16
	asPartBase = 16
	asPartMask = (1 << asPartBits) - 1
	asParts    = ASBits / asPartBits

	longestIA = len("65535-ffff:ffff:ffff")
)

// ISD is the ISolation Domain identifier. See formatting and allocations
// here: https://github.com/scionproto/scion/wiki/ISD-and-AS-numbering#isd-numbers
type ISD uint16

// ParseISD parses an ISD from a decimal string. Note that ISD 0 is parsed
// without any errors.
func ParseISD(s string) (ISD, error) {
	isd, err := strconv.ParseUint(s, 10, ISDBits)
	if err != nil {
		return 0, serrors.Wrap("parsing ISD", err)
	}
	return ISD(isd), nil
}

// AS is the Autonomous System identifier. See formatting and allocations
// here: https://github.com/scionproto/scion/wiki/ISD-and-AS-numbering#as-numbers
type AS uint64

// ParseAS parses an AS from a decimal (in the case of the 32bit BGP AS
// number space) or colon-hex (in the case of SCION-only AS numbers) string.
func ParseAS(as string) (AS, error) {
	return parseAS(as, ":")
}

func parseAS(as string, sep string) (AS, error) {
	parts := strings.Split(as, sep)
	if len(parts) == 1 {
		// This must be a BGP AS, parse as 32-bit decimal number.
		return asParseBGP(as)
	}
	if len(parts) != asParts {
		return 0, serrors.New("wrong number of separators", "sep", sep, "value", as)
	}
	var parsed AS
	for i := 0; i < asParts; i++ {
		parsed <<= asPartBits
		v, err := strconv.ParseUint(parts[i], asPartBase, asPartBits)
		if err != nil {
			return 0, serrors.Wrap("parsing AS part", err, "index", i, "value", as)
		}
		parsed |= AS(v)
	}
	return parsed, nil
}

func asParseBGP(s string) (AS, error) {
	as, err := strconv.ParseUint(s, 10, BGPASBits)
	if err != nil {
		return 0, serrors.Wrap("parsing BGP AS", err)
	}
	return AS(as), nil
}

// ASFromDottedHex decodes the raw colon-hex rendering of an AS number. Every
// run of ':' characters separates a token; tokens are zero-padded to 4 hex
// digits, concatenated and read as one base-16 number. Any token count is
// accepted as long as the padded concatenation stays within 48 bits. ParseAS
// is the strict configuration-string surface; this is the codec behind the
// in-address grammar and the colon-hex display.
func ASFromDottedHex(s string) (AS, error) {
	var digits strings.Builder
	digits.Grow(asParts * 4)
	for _, tok := range strings.FieldsFunc(s, func(r rune) bool { return r == ':' }) {
		for i := len(tok); i < 4; i++ {
			digits.WriteByte('0')
		}
		digits.WriteString(tok)
	}
	if digits.Len() == 0 || digits.Len() > asParts*4 {
		return 0, serrors.New("invalid colon-hex AS", "value", s)
	}
	as, err := strconv.ParseUint(digits.String(), 16, 64)
	if err != nil {
		return 0, serrors.Wrap("parsing colon-hex AS", err, "value", s)
	}
	return AS(as), nil
}

func (as AS) String() string {
	return fmtAS(as, ":")
}

// DottedHex renders the AS in the colon-hex convention regardless of its
// numeric range. It is the inverse of ASFromDottedHex for values whose
// natural hex string is a multiple of four digits long; outside that domain
// the grouping shifts and the rendering does not decode back (see dottedHex).
func (as AS) DottedHex() string {
	return dottedHex(as, ":")
}

func (as AS) inRange() bool {
	return as <= MaxAS
}

var _ fmt.Stringer = IA(0)
var _ encoding.TextUnmarshaler = (*IA)(nil)

// IA represents the ISD (ISolation Domain) and AS (Autonomous System) ID of
// a given SCION AS.
//
// The highest 16 bit form the ISD number and the lower 48 bits form the AS
// number.
type IA uint64

// IAFrom creates an IA from the ISD and AS number. It returns an error if
// the AS number is not in the valid range.
func IAFrom(isd ISD, as AS) (IA, error) {
	if !as.inRange() {
		return 0, serrors.New("AS out of range", "max", MaxAS, "value", as)
	}
	return IA(isd)<<ASBits | IA(as&MaxAS), nil
}

// MustIAFrom creates an IA from the ISD and AS number. It panics if any of
// the sub parts is not valid.
func MustIAFrom(isd ISD, as AS) IA {
	ia, err := IAFrom(isd, as)
	if err != nil {
		panic(fmt.Sprintf("parsing ISD-AS: %s", err))
	}
	return ia
}

// ParseIA parses an IA from a string of the format 'isd-as'.
func ParseIA(ia string) (IA, error) {
	parts := strings.Split(ia, "-")
	if len(parts) != 2 {
		return 0, serrors.New("invalid ISD-AS", "value", ia)
	}
	isd, err := ParseISD(parts[0])
	if err != nil {
		return 0, err
	}
	as, err := ParseAS(parts[1])
	if err != nil {
		return 0, err
	}
	return MustIAFrom(isd, as), nil
}

// MustParseIA parses s and returns the corresponding IA value. It panics if
// s is not a valid textual representation of an ISD-AS.
func MustParseIA(s string) IA {
	ia, err := ParseIA(s)
	if err != nil {
		panic(err)
	}
	return ia
}

func (ia IA) ISD() ISD {
	return ISD(ia >> ASBits)
}

func (ia IA) AS() AS {
	return AS(ia) & MaxAS
}

func (ia IA) MarshalText() ([]byte, error) {
	return []byte(ia.String()), nil
}

// UnmarshalText allows IA to be used as a map key in JSON. The empty string
// unmarshals to the zero IA.
func (ia *IA) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*ia = 0
		return nil
	}
	parsed, err := ParseIA(string(b))
	if err != nil {
		return err
	}
	*ia = parsed
	return nil
}

func (ia IA) IsZero() bool {
	return ia == 0
}

func (ia IA) Equal(other IA) bool {
	return ia == other
}

// Set implements the flag.Value interface.
func (ia *IA) Set(s string) error {
	parsed, err := ParseIA(s)
	if err != nil {
		return err
	}
	*ia = parsed
	return nil
}

// Type implements the pflag.Value interface.
func (ia IA) Type() string {
	return "isd-as"
}

func (ia IA) String() string {
	var b strings.Builder
	b.Grow(longestIA)
	b.WriteString(strconv.Itoa(int(ia.ISD())))
	b.WriteByte('-')
	b.WriteString(ia.AS().String())
	return b.String()
}
