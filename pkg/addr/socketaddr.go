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
	"strconv"
)

const (
	longestSocketAddrIPv4  = len("255.255.255.255:65535")
	longestSocketAddrIPv6  = len("[ffff:ffff:ffff:ffff:ffff:ffff:ffff:ffff%4294967295]:65535")
	longestSocketAddrSCION = longestIA + len(",[") + longestIPv6 + len("]:65535")
)

// SocketAddrType discriminates the variants of a SocketAddr.
type SocketAddrType uint8

const (
	SocketAddrNone SocketAddrType = iota
	SocketAddrIPv4
	SocketAddrIPv6
	SocketAddrSCION
)

func (t SocketAddrType) String() string {
	switch t {
	case SocketAddrNone:
		return "None"
	case SocketAddrIPv4:
		return "IPv4"
	case SocketAddrIPv6:
		return "IPv6"
	case SocketAddrSCION:
		return "SCION"
	}
	return fmt.Sprintf("UNKNOWN (%d)", t)
}

// SocketAddr is a tagged union of an IPv4, an IPv6 and a SCION socket
// address. Every variant carries a 16-bit port. The IPv6 variant
// additionally carries flow information and a numeric scope identifier; the
// SCION variant carries the ISD-AS of the host. The zero SocketAddr has no
// variant.
type SocketAddr struct {
	ia    IA
	ip    IP
	port  uint16
	flow  uint32
	scope uint32
	t     SocketAddrType
}

// SocketAddrFrom returns the socket address of the family matching ip: the
// IPv4 variant for an IPv4 address, the IPv6 variant with zero flow
// information and scope for an IPv6 address. The zero IP yields the zero
// SocketAddr.
func SocketAddrFrom(ip IP, port uint16) SocketAddr {
	switch {
	case ip.Is4():
		return SocketAddrFromIPv4(ip, port)
	case ip.Is6():
		return SocketAddrFromIPv6(ip, port, 0, 0)
	}
	return SocketAddr{}
}

// SocketAddrFromIPv4 returns an IPv4 socket address. It panics if ip is not
// an IPv4 address.
func SocketAddrFromIPv4(ip IP, port uint16) SocketAddr {
	if !ip.Is4() {
		panic("SocketAddrFromIPv4 called with a non-IPv4 address")
	}
	return SocketAddr{ip: ip, port: port, t: SocketAddrIPv4}
}

// SocketAddrFromIPv6 returns an IPv6 socket address with the given flow
// information and scope identifier. It panics if ip is not an IPv6 address.
func SocketAddrFromIPv6(ip IP, port uint16, flowinfo, scopeID uint32) SocketAddr {
	if !ip.Is6() {
		panic("SocketAddrFromIPv6 called with a non-IPv6 address")
	}
	return SocketAddr{
		ip:    ip,
		port:  port,
		flow:  flowinfo,
		scope: scopeID,
		t:     SocketAddrIPv6,
	}
}

// SocketAddrFromSCION returns a SCION socket address.
func SocketAddrFromSCION(a Addr, port uint16) SocketAddr {
	return SocketAddr{ia: a.IA, ip: a.Host, port: port, t: SocketAddrSCION}
}

// ParseSocketAddr parses s as a socket address, trying the IPv4, IPv6 and
// SCION grammars in that order.
func ParseSocketAddr(s string) (SocketAddr, error) {
	return parseWith(s, ErrSocketAddr, (*parser).readSocketAddr)
}

// ParseSocketAddrIPv4 parses s as an IPv4 socket address of the form
// ip:port.
func ParseSocketAddrIPv4(s string) (SocketAddr, error) {
	return parseWith(s, ErrSocketAddrIPv4, (*parser).readSocketAddrV4)
}

// ParseSocketAddrIPv6 parses s as an IPv6 socket address of the form
// [ip]:port or [ip%scope]:port.
func ParseSocketAddrIPv6(s string) (SocketAddr, error) {
	return parseWith(s, ErrSocketAddrIPv6, (*parser).readSocketAddrV6)
}

// ParseSocketAddrSCION parses s as a SCION socket address of the form
// isd-as,host:port.
func ParseSocketAddrSCION(s string) (SocketAddr, error) {
	return parseWith(s, ErrSocketAddrSCION, (*parser).readSocketAddrSCION)
}

// MustParseSocketAddr calls ParseSocketAddr on s and panics on error. It is
// intended for use in tests with hard-coded strings.
func MustParseSocketAddr(s string) SocketAddr {
	sa, err := ParseSocketAddr(s)
	if err != nil {
		panic(err)
	}
	return sa
}

// Type returns the variant of the socket address.
func (a SocketAddr) Type() SocketAddrType {
	return a.t
}

// IP returns the host IP address of any variant. For the SCION variant this
// is the host part of the SCION address.
func (a SocketAddr) IP() IP {
	return a.ip
}

// Port returns the port number.
func (a SocketAddr) Port() uint16 {
	return a.port
}

// Flowinfo returns the IPv6 flow information. It is zero for the other
// variants.
func (a SocketAddr) Flowinfo() uint32 {
	return a.flow
}

// ScopeID returns the IPv6 scope identifier. It is zero for the other
// variants.
func (a SocketAddr) ScopeID() uint32 {
	return a.scope
}

// IA returns the ISD-AS of a SCION socket address. It panics for the other
// variants.
func (a SocketAddr) IA() IA {
	if a.t != SocketAddrSCION {
		panic("IA called on non-SCION socket address")
	}
	return a.ia
}

// Addr returns the SCION address of a SCION socket address, without the
// port. It panics for the other variants.
func (a SocketAddr) Addr() Addr {
	if a.t != SocketAddrSCION {
		panic("Addr called on non-SCION socket address")
	}
	return Addr{IA: a.ia, Host: a.ip}
}

// Equal reports whether two socket addresses are the same.
func (a SocketAddr) Equal(other SocketAddr) bool {
	return a == other
}

// SetPort changes the port number.
func (a *SocketAddr) SetPort(port uint16) {
	a.port = port
}

// SetIP changes the host IP address. When the family of ip does not match
// the variant, the socket address switches to the variant of ip, keeping
// the port and dropping flow information, scope and ISD-AS. The SCION
// variant keeps its ISD-AS and takes hosts of both families.
func (a *SocketAddr) SetIP(ip IP) {
	switch {
	case a.t == SocketAddrSCION:
		a.ip = ip
	case a.t == SocketAddrIPv4 && ip.Is4(), a.t == SocketAddrIPv6 && ip.Is6():
		a.ip = ip
	default:
		*a = SocketAddrFrom(ip, a.port)
	}
}

func (a SocketAddr) String() string {
	switch a.t {
	case SocketAddrIPv4:
		b := make([]byte, 0, longestSocketAddrIPv4)
		b = a.ip.AppendTo(b)
		b = append(b, ':')
		b = strconv.AppendUint(b, uint64(a.port), 10)
		return string(b)
	case SocketAddrIPv6:
		b := make([]byte, 0, longestSocketAddrIPv6)
		b = append(b, '[')
		b = a.ip.AppendTo(b)
		if a.scope != 0 {
			b = append(b, '%')
			b = strconv.AppendUint(b, uint64(a.scope), 10)
		}
		b = append(b, ']', ':')
		b = strconv.AppendUint(b, uint64(a.port), 10)
		return string(b)
	case SocketAddrSCION:
		b := make([]byte, 0, longestSocketAddrSCION)
		b = append(b, a.ia.String()...)
		b = append(b, ',')
		if a.ip.Is6() {
			b = append(b, '[')
			b = a.ip.AppendTo(b)
			b = append(b, ']')
		} else {
			b = a.ip.AppendTo(b)
		}
		b = append(b, ':')
		b = strconv.AppendUint(b, uint64(a.port), 10)
		return string(b)
	}
	return "invalid SocketAddr"
}

// MarshalText implements encoding.TextMarshaler. The zero SocketAddr
// marshals to the empty string.
func (a SocketAddr) MarshalText() ([]byte, error) {
	if a.t == SocketAddrNone {
		return nil, nil
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The empty string
// unmarshals to the zero SocketAddr.
func (a *SocketAddr) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*a = SocketAddr{}
		return nil
	}
	parsed, err := ParseSocketAddr(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Set implements the flag.Value interface.
func (a *SocketAddr) Set(s string) error {
	parsed, err := ParseSocketAddr(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
