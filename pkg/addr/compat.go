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
	"net"
	"net/netip"
	"strconv"

	"inet.af/netaddr"
)

// NetipAddr returns ip as a netip.Addr. The zero IP converts to the zero
// netip.Addr.
func (ip IP) NetipAddr() netip.Addr {
	switch ip.fam {
	case family4:
		return netip.AddrFrom4([4]byte(ip.octets[:4]))
	case family6:
		return netip.AddrFrom16(ip.octets)
	}
	return netip.Addr{}
}

// IPFromNetipAddr converts a netip.Addr. Zoned addresses and the zero Addr
// have no representation here and yield ok false.
func IPFromNetipAddr(a netip.Addr) (IP, bool) {
	if a.Zone() != "" {
		return IP{}, false
	}
	switch {
	case a.Is4():
		return IPFrom4(a.As4()), true
	case a.Is6():
		return IPFrom16(a.As16()), true
	}
	return IP{}, false
}

// NetIP returns ip as a net.IP: four bytes for an IPv4 address, sixteen for
// an IPv6 one, nil for the zero IP.
func (ip IP) NetIP() net.IP {
	switch ip.fam {
	case family4:
		return net.IP(ip.octets[:4:4])
	case family6:
		return net.IP(ip.octets[:])
	}
	return nil
}

// IPFromNetIP converts a net.IP, going by its length: a four-byte slice is
// an IPv4 address, a sixteen-byte slice an IPv6 one, the mapped form
// included. Other lengths, nil among them, yield ok false. Note that
// net.ParseIP stores IPv4 addresses in the sixteen-byte mapped form; Unmap
// recovers the IPv4 address.
func IPFromNetIP(ip net.IP) (IP, bool) {
	switch len(ip) {
	case net.IPv4len:
		return IPFrom4([4]byte(ip)), true
	case net.IPv6len:
		return IPFrom16([16]byte(ip)), true
	}
	return IP{}, false
}

// NetaddrIP returns ip as a netaddr.IP. The zero IP converts to the zero
// netaddr.IP.
func (ip IP) NetaddrIP() netaddr.IP {
	switch ip.fam {
	case family4:
		return netaddr.IPv4(ip.octets[0], ip.octets[1], ip.octets[2], ip.octets[3])
	case family6:
		return netaddr.IPv6Raw(ip.octets)
	}
	return netaddr.IP{}
}

// IPFromNetaddrIP converts a netaddr.IP. Zoned addresses and the zero IP
// yield ok false.
func IPFromNetaddrIP(a netaddr.IP) (IP, bool) {
	if a.Zone() != "" {
		return IP{}, false
	}
	switch {
	case a.Is4():
		return IPFrom4(a.As4()), true
	case a.Is6():
		return IPFrom16(a.As16()), true
	}
	return IP{}, false
}

// AddrPort returns the IPv4 or IPv6 variant as a netip.AddrPort, carrying a
// nonzero scope identifier as a decimal zone. Values a netip.AddrPort
// cannot represent yield ok false: the SCION variant, the zero SocketAddr,
// and IPv6 sockets with nonzero flow information.
func (a SocketAddr) AddrPort() (netip.AddrPort, bool) {
	switch a.t {
	case SocketAddrIPv4:
		return netip.AddrPortFrom(a.ip.NetipAddr(), a.port), true
	case SocketAddrIPv6:
		if a.flow != 0 {
			return netip.AddrPort{}, false
		}
		na := a.ip.NetipAddr()
		if a.scope != 0 {
			na = na.WithZone(strconv.FormatUint(uint64(a.scope), 10))
		}
		return netip.AddrPortFrom(na, a.port), true
	}
	return netip.AddrPort{}, false
}

// SocketAddrFromAddrPort converts a netip.AddrPort into the variant
// matching its address family. A zone is taken as the scope identifier when
// it is decimal; any other zone yields ok false, as does the zero AddrPort.
func SocketAddrFromAddrPort(ap netip.AddrPort) (SocketAddr, bool) {
	na := ap.Addr()
	var scope uint32
	if z := na.Zone(); z != "" {
		v, err := strconv.ParseUint(z, 10, 32)
		if err != nil {
			return SocketAddr{}, false
		}
		scope = uint32(v)
		na = na.WithZone("")
	}
	ip, ok := IPFromNetipAddr(na)
	if !ok {
		return SocketAddr{}, false
	}
	if ip.Is4() {
		return SocketAddrFromIPv4(ip, ap.Port()), true
	}
	return SocketAddrFromIPv6(ip, ap.Port(), 0, scope), true
}

// UDPAddr returns the IPv4 or IPv6 variant as a *net.UDPAddr, carrying a
// nonzero scope identifier as a decimal zone. Values a net.UDPAddr cannot
// represent return nil: the SCION variant, the zero SocketAddr, and IPv6
// sockets with nonzero flow information.
func (a SocketAddr) UDPAddr() *net.UDPAddr {
	switch a.t {
	case SocketAddrIPv4:
		return &net.UDPAddr{IP: a.ip.NetIP(), Port: int(a.port)}
	case SocketAddrIPv6:
		if a.flow != 0 {
			return nil
		}
		u := &net.UDPAddr{IP: a.ip.NetIP(), Port: int(a.port)}
		if a.scope != 0 {
			u.Zone = strconv.FormatUint(uint64(a.scope), 10)
		}
		return u
	}
	return nil
}
