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
	"fmt"
)

// Addr is a full SCION address, composed of ISD, AS and host part.
type Addr struct {
	IA   IA
	Host IP
}

// ParseAddr parses s as a SCION address in the format <ISD>-<AS>,<Host>.
// The ISD is decimal with up to six digits, the AS number is colon-hex per
// the address-literal grammar, and the host is an IPv4 or IPv6 address.
// Brackets around the host are consumed when present but not required.
func ParseAddr(s string) (Addr, error) {
	return parseWith(s, ErrAddr, (*parser).readAddr)
}

// MustParseAddr calls ParseAddr on s and panics on error. It is intended
// for use in tests with hard-coded strings.
func MustParseAddr(s string) Addr {
	a, err := ParseAddr(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Addr) String() string {
	return fmt.Sprintf("%s,%s", a.IA, a.Host)
}

// MarshalText implements encoding.TextMarshaler. The zero Addr marshals to
// the empty string.
func (a Addr) MarshalText() ([]byte, error) {
	if a == (Addr{}) {
		return nil, nil
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The empty string
// unmarshals to the zero Addr.
func (a *Addr) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*a = Addr{}
		return nil
	}
	parsed, err := ParseAddr(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Set implements the flag.Value interface.
func (a *Addr) Set(s string) error {
	parsed, err := ParseAddr(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Type implements the pflag.Value interface.
func (a Addr) Type() string {
	return "scion-address"
}
