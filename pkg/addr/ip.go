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
	"bytes"
	"strconv"
)

// family discriminates the address families of IP.
type family uint8

const (
	familyNone family = iota
	family4
	family6
)

// Longest possible canonical literals, used to size staging buffers.
const (
	longestIPv4 = len("255.255.255.255")
	longestIPv6 = len("ffff:ffff:ffff:ffff:ffff:ffff:ffff:ffff")
)

// IP is an IPv4 or IPv6 address, stored in network byte order. IPv4
// addresses occupy the first four octets. The zero value is not a valid
// address; IP values are comparable with == and == means identical family
// and octets, so an IPv4 address never equals its IPv4-mapped IPv6
// counterpart.
type IP struct {
	octets [16]byte
	fam    family
}

// IPv4 returns the IPv4 address a.b.c.d.
func IPv4(a, b, c, d byte) IP {
	return IPFrom4([4]byte{a, b, c, d})
}

// IPFrom4 returns the IPv4 address of the given octets.
func IPFrom4(octets [4]byte) IP {
	ip := IP{fam: family4}
	copy(ip.octets[:4], octets[:])
	return ip
}

// IPFrom16 returns the IPv6 address of the given octets.
func IPFrom16(octets [16]byte) IP {
	return IP{octets: octets, fam: family6}
}

// IPv6Segments returns the IPv6 address of the given 16-bit segments.
func IPv6Segments(segments [8]uint16) IP {
	ip := IP{fam: family6}
	for i, s := range segments {
		ip.octets[2*i] = byte(s >> 8)
		ip.octets[2*i+1] = byte(s)
	}
	return ip
}

// IPv4Unspecified returns 0.0.0.0.
func IPv4Unspecified() IP { return IPv4(0, 0, 0, 0) }

// IPv4Broadcast returns the limited broadcast address 255.255.255.255.
func IPv4Broadcast() IP { return IPv4(255, 255, 255, 255) }

// IPv6Unspecified returns ::.
func IPv6Unspecified() IP { return IP{fam: family6} }

// IPv6Loopback returns ::1.
func IPv6Loopback() IP { return IPv6Segments([8]uint16{7: 1}) }

// ParseIP parses an IP address literal, trying the IPv4 grammar first and
// the IPv6 grammar second.
func ParseIP(s string) (IP, error) {
	return parseWith(s, ErrIP, (*parser).readIP)
}

// ParseIPv4 parses an IPv4 address literal: four dotted decimal octets
// without leading zeros.
func ParseIPv4(s string) (IP, error) {
	if len(s) > longestIPv4 {
		// No IPv4 literal is longer, reject without scanning.
		return IP{}, ErrIPv4
	}
	return parseWith(s, ErrIPv4, (*parser).readIPv4)
}

// ParseIPv6 parses an IPv6 address literal: colon-separated hex groups with
// at most one "::" and an optional trailing embedded IPv4 address.
func ParseIPv6(s string) (IP, error) {
	return parseWith(s, ErrIPv6, (*parser).readIPv6)
}

// MustParseIP parses s as an IP address and panics on error. It is intended
// for tests and package level declarations.
func MustParseIP(s string) IP {
	ip, err := ParseIP(s)
	if err != nil {
		panic(err)
	}
	return ip
}

// IsValid reports whether ip is an initialized address, as opposed to the
// zero IP.
func (ip IP) IsValid() bool { return ip.fam != familyNone }

// Is4 reports whether ip is an IPv4 address. An IPv4-mapped IPv6 address is
// not an IPv4 address.
func (ip IP) Is4() bool { return ip.fam == family4 }

// Is6 reports whether ip is an IPv6 address, including IPv4-mapped ones.
func (ip IP) Is6() bool { return ip.fam == family6 }

// Is4In6 reports whether ip is an IPv4-mapped IPv6 address, that is in
// ::ffff:0:0/96.
func (ip IP) Is4In6() bool {
	if ip.fam != family6 {
		return false
	}
	for _, b := range ip.octets[:10] {
		if b != 0 {
			return false
		}
	}
	return ip.octets[10] == 0xff && ip.octets[11] == 0xff
}

// As4 returns the octets of an IPv4 or IPv4-mapped IPv6 address. It panics
// for any other address.
func (ip IP) As4() [4]byte {
	if ip.fam == family4 {
		return [4]byte(ip.octets[:4])
	}
	if ip.Is4In6() {
		return [4]byte(ip.octets[12:])
	}
	panic("As4 called on non-IPv4 address")
}

// As16 returns the address as 16 octets, mapping an IPv4 address into the
// IPv4-mapped range ::ffff:0:0/96. It panics for the zero IP.
func (ip IP) As16() [16]byte {
	switch ip.fam {
	case family4:
		var o [16]byte
		o[10], o[11] = 0xff, 0xff
		copy(o[12:], ip.octets[:4])
		return o
	case family6:
		return ip.octets
	default:
		panic("As16 called on zero IP")
	}
}

// Segments returns the eight 16-bit segments of an IPv6 address. It panics
// for any other address.
func (ip IP) Segments() [8]uint16 {
	if ip.fam != family6 {
		panic("Segments called on non-IPv6 address")
	}
	return ip.segments6()
}

func (ip IP) segments6() [8]uint16 {
	var segs [8]uint16
	for i := range segs {
		segs[i] = uint16(ip.octets[2*i])<<8 | uint16(ip.octets[2*i+1])
	}
	return segs
}

// Compare orders addresses: the zero IP first, then all IPv4 addresses,
// then all IPv6 addresses, each family ordered by octets. The result is -1,
// 0 or 1.
func (ip IP) Compare(other IP) int {
	if ip.fam != other.fam {
		if ip.fam < other.fam {
			return -1
		}
		return 1
	}
	return bytes.Compare(ip.octets[:], other.octets[:])
}

// Less reports whether ip sorts before other, see Compare.
func (ip IP) Less(other IP) bool { return ip.Compare(other) < 0 }

// Unmap returns the IPv4 address of an IPv4-mapped IPv6 address, and ip
// itself for everything else.
func (ip IP) Unmap() IP {
	if ip.Is4In6() {
		return IPFrom4([4]byte(ip.octets[12:]))
	}
	return ip
}

// To4 returns the address as IPv4 if it is an IPv4 or an IPv4-mapped IPv6
// address.
func (ip IP) To4() (IP, bool) {
	switch {
	case ip.fam == family4:
		return ip, true
	case ip.Is4In6():
		return ip.Unmap(), true
	default:
		return IP{}, false
	}
}

// ToIPv6Mapped maps an IPv4 address into the ::ffff:0:0/96 range and
// returns IPv6 addresses unchanged. It panics for the zero IP.
func (ip IP) ToIPv6Mapped() IP {
	if ip.fam == family6 {
		return ip
	}
	return IPFrom16(ip.As16())
}

// ToIPv6Compatible returns an IPv4 address in the deprecated
// IPv4-compatible form ::a.b.c.d. It panics unless ip is IPv4.
func (ip IP) ToIPv6Compatible() IP {
	if !ip.Is4() {
		panic("ToIPv6Compatible called on non-IPv4 address")
	}
	var o [16]byte
	copy(o[12:], ip.octets[:4])
	return IPFrom16(o)
}

// And returns the bitwise AND of two addresses of the same family. Mixing
// families or passing the zero IP panics.
func (ip IP) And(other IP) IP {
	checkSameFamily(ip, other, "And")
	out := IP{fam: ip.fam}
	for i := range out.octets {
		out.octets[i] = ip.octets[i] & other.octets[i]
	}
	return out
}

// Or returns the bitwise OR of two addresses of the same family. Mixing
// families or passing the zero IP panics.
func (ip IP) Or(other IP) IP {
	checkSameFamily(ip, other, "Or")
	out := IP{fam: ip.fam}
	for i := range out.octets {
		out.octets[i] = ip.octets[i] | other.octets[i]
	}
	return out
}

// Not returns the bitwise complement of the address. It panics for the zero
// IP.
func (ip IP) Not() IP {
	out := IP{fam: ip.fam}
	switch ip.fam {
	case family4:
		for i := 0; i < 4; i++ {
			out.octets[i] = ^ip.octets[i]
		}
	case family6:
		for i := range out.octets {
			out.octets[i] = ^ip.octets[i]
		}
	default:
		panic("Not called on zero IP")
	}
	return out
}

func checkSameFamily(a, b IP, op string) {
	if !a.IsValid() || a.fam != b.fam {
		panic(op + " needs two addresses of the same family")
	}
}

// String returns the canonical text of the address: dotted decimal for
// IPv4; for IPv6 the leftmost longest run of two or more zero segments is
// compressed to "::", segments print as lowercase hex without leading
// zeros, and the IPv4-mapped range keeps its embedded dotted form
// ::ffff:a.b.c.d. The zero IP prints as "invalid IP".
func (ip IP) String() string {
	switch ip.fam {
	case family4:
		return string(ip.appendTo4(make([]byte, 0, longestIPv4)))
	case family6:
		return string(ip.appendTo6(make([]byte, 0, longestIPv6)))
	default:
		return "invalid IP"
	}
}

// AppendTo appends the canonical text of the address to b and returns the
// extended buffer. The zero IP appends nothing.
func (ip IP) AppendTo(b []byte) []byte {
	switch ip.fam {
	case family4:
		return ip.appendTo4(b)
	case family6:
		return ip.appendTo6(b)
	default:
		return b
	}
}

func (ip IP) appendTo4(b []byte) []byte {
	for i := 0; i < 4; i++ {
		if i > 0 {
			b = append(b, '.')
		}
		b = strconv.AppendUint(b, uint64(ip.octets[i]), 10)
	}
	return b
}

func (ip IP) appendTo6(b []byte) []byte {
	if ip.Is4In6() {
		b = append(b, "::ffff:"...)
		return ip.Unmap().appendTo4(b)
	}
	segs := ip.segments6()
	at, n := zeroRun(segs)
	for i := 0; i < 8; i++ {
		if i == at {
			b = append(b, ':', ':')
			i += n
			if i >= 8 {
				break
			}
		} else if i > 0 {
			b = append(b, ':')
		}
		b = strconv.AppendUint(b, uint64(segs[i]), 16)
	}
	return b
}

// zeroRun finds the segment run replaced by "::": the leftmost longest run
// of two or more zero segments. A later run replaces the current best only
// when strictly longer. Without such a run, at is -1; a single zero segment
// always prints as "0".
func zeroRun(segs [8]uint16) (at, n int) {
	at, n = -1, 0
	runAt, runLen := -1, 0
	for i := 0; i < 8; i++ {
		if segs[i] != 0 {
			runAt, runLen = -1, 0
			continue
		}
		if runAt < 0 {
			runAt = i
		}
		runLen++
		if runLen > n {
			at, n = runAt, runLen
		}
	}
	if n < 2 {
		return -1, 0
	}
	return at, n
}

// MarshalText implements encoding.TextMarshaler. The encoding is the
// canonical String form; the zero IP encodes as the empty string.
func (ip IP) MarshalText() ([]byte, error) {
	if !ip.IsValid() {
		return []byte{}, nil
	}
	return ip.AppendTo(make([]byte, 0, longestIPv6)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The empty string
// decodes to the zero IP.
func (ip *IP) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*ip = IP{}
		return nil
	}
	parsed, err := ParseIP(string(text))
	if err != nil {
		return err
	}
	*ip = parsed
	return nil
}
