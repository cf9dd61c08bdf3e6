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

// Address classification. All predicates are pure range lookups on the
// octets; the zero IP is in none of the classes.

// IsUnspecified reports whether ip is the unspecified address of its
// family, 0.0.0.0 or ::.
func (ip IP) IsUnspecified() bool {
	return ip == IPv4Unspecified() || ip == IPv6Unspecified()
}

// IsLoopback reports whether ip is a loopback address, 127.0.0.0/8 or ::1.
func (ip IP) IsLoopback() bool {
	switch ip.fam {
	case family4:
		return ip.octets[0] == 127
	case family6:
		return ip == IPv6Loopback()
	}
	return false
}

// IsPrivate reports whether ip is a private address: the RFC 1918 ranges
// 10.0.0.0/8, 172.16.0.0/12 and 192.168.0.0/16, or the RFC 4193 unique
// local range fc00::/7.
func (ip IP) IsPrivate() bool {
	switch ip.fam {
	case family4:
		return ip.octets[0] == 10 ||
			(ip.octets[0] == 172 && ip.octets[1]&0xf0 == 16) ||
			(ip.octets[0] == 192 && ip.octets[1] == 168)
	case family6:
		return ip.octets[0]&0xfe == 0xfc
	}
	return false
}

// IsLinkLocalUnicast reports whether ip is a link-local unicast address,
// 169.254.0.0/16 or fe80::/10.
func (ip IP) IsLinkLocalUnicast() bool {
	switch ip.fam {
	case family4:
		return ip.octets[0] == 169 && ip.octets[1] == 254
	case family6:
		return ip.octets[0] == 0xfe && ip.octets[1]&0xc0 == 0x80
	}
	return false
}

// IsMulticast reports whether ip is a multicast address, 224.0.0.0/4 or
// ff00::/8.
func (ip IP) IsMulticast() bool {
	switch ip.fam {
	case family4:
		return ip.octets[0]&0xf0 == 0xe0
	case family6:
		return ip.octets[0] == 0xff
	}
	return false
}

// IsBroadcast reports whether ip is the IPv4 limited broadcast address
// 255.255.255.255. IPv6 has no broadcast addresses.
func (ip IP) IsBroadcast() bool {
	return ip == IPv4Broadcast()
}

// IsDocumentation reports whether ip is reserved for documentation:
// 192.0.2.0/24, 198.51.100.0/24, 203.0.113.0/24 or 2001:db8::/32.
func (ip IP) IsDocumentation() bool {
	switch ip.fam {
	case family4:
		return (ip.octets[0] == 192 && ip.octets[1] == 0 && ip.octets[2] == 2) ||
			(ip.octets[0] == 198 && ip.octets[1] == 51 && ip.octets[2] == 100) ||
			(ip.octets[0] == 203 && ip.octets[1] == 0 && ip.octets[2] == 113)
	case family6:
		segs := ip.segments6()
		return segs[0] == 0x2001 && segs[1] == 0xdb8
	}
	return false
}

// IsBenchmarking reports whether ip is reserved for benchmarking,
// 198.18.0.0/15 or 2001:2::/48.
func (ip IP) IsBenchmarking() bool {
	switch ip.fam {
	case family4:
		return ip.octets[0] == 198 && ip.octets[1]&0xfe == 18
	case family6:
		segs := ip.segments6()
		return segs[0] == 0x2001 && segs[1] == 0x2 && segs[2] == 0
	}
	return false
}

// IsShared reports whether ip is in the IPv4 shared address space
// 100.64.0.0/10 reserved for carrier-grade NAT.
func (ip IP) IsShared() bool {
	return ip.fam == family4 && ip.octets[0] == 100 && ip.octets[1]&0xc0 == 64
}

// IsReserved reports whether ip is in the IPv4 reserved block 240.0.0.0/4,
// excluding the broadcast address.
func (ip IP) IsReserved() bool {
	return ip.fam == family4 && ip.octets[0]&0xf0 == 0xf0 && !ip.IsBroadcast()
}

// IsGlobal reports whether ip is reachable on the global internet, that is
// outside every range reserved for special use.
func (ip IP) IsGlobal() bool {
	switch ip.fam {
	case family4:
		return !(ip.octets[0] == 0 || // "this network"
			ip.IsPrivate() ||
			ip.IsShared() ||
			ip.IsLoopback() ||
			ip.IsLinkLocalUnicast() ||
			// IETF protocol assignments 192.0.0.0/24, except the globally
			// reachable 192.0.0.9/32 and 192.0.0.10/32.
			(ip.octets[0] == 192 && ip.octets[1] == 0 && ip.octets[2] == 0 &&
				ip.octets[3] != 9 && ip.octets[3] != 10) ||
			ip.IsDocumentation() ||
			ip.IsBenchmarking() ||
			ip.IsReserved() ||
			ip.IsBroadcast())
	case family6:
		segs := ip.segments6()
		return !(ip.IsUnspecified() ||
			ip.IsLoopback() ||
			ip.Is4In6() ||
			// IPv4-IPv6 translation 64:ff9b:1::/48.
			(segs[0] == 0x64 && segs[1] == 0xff9b && segs[2] == 1) ||
			// Discard-only block 100::/64.
			(segs[0] == 0x100 && segs[1] == 0 && segs[2] == 0 && segs[3] == 0) ||
			// IETF protocol assignments 2001::/23, except the ranges below
			// which are globally reachable.
			(segs[0] == 0x2001 && segs[1] < 0x200 &&
				!(ip == IPv6Segments([8]uint16{0x2001, 1, 0, 0, 0, 0, 0, 1}) || // port control protocol anycast
					ip == IPv6Segments([8]uint16{0x2001, 1, 0, 0, 0, 0, 0, 2}) || // TURN anycast
					(segs[0] == 0x2001 && segs[1] == 3) || // AMT 2001:3::/32
					(segs[0] == 0x2001 && segs[1] == 4 && segs[2] == 0x112) || // AS112-v6
					(segs[0] == 0x2001 && segs[1] >= 0x20 && segs[1] <= 0x2f))) || // ORCHIDv2
			ip.IsDocumentation() ||
			ip.IsPrivate() ||
			ip.IsLinkLocalUnicast())
	}
	return false
}

// MulticastScope is the scope nibble of an IPv6 multicast address.
type MulticastScope uint8

// Multicast scopes assigned by RFC 7346.
const (
	ScopeInterfaceLocal    MulticastScope = 0x1
	ScopeLinkLocal         MulticastScope = 0x2
	ScopeRealmLocal        MulticastScope = 0x3
	ScopeAdminLocal        MulticastScope = 0x4
	ScopeSiteLocal         MulticastScope = 0x5
	ScopeOrganizationLocal MulticastScope = 0x8
	ScopeGlobal            MulticastScope = 0xe
)

func (s MulticastScope) String() string {
	switch s {
	case ScopeInterfaceLocal:
		return "interface-local"
	case ScopeLinkLocal:
		return "link-local"
	case ScopeRealmLocal:
		return "realm-local"
	case ScopeAdminLocal:
		return "admin-local"
	case ScopeSiteLocal:
		return "site-local"
	case ScopeOrganizationLocal:
		return "organization-local"
	case ScopeGlobal:
		return "global"
	default:
		return "unassigned"
	}
}

// MulticastScope returns the scope of an IPv6 multicast address. The second
// result is false for IPv4 addresses, non-multicast addresses and
// unassigned scope values.
func (ip IP) MulticastScope() (MulticastScope, bool) {
	if ip.fam != family6 || !ip.IsMulticast() {
		return 0, false
	}
	switch s := MulticastScope(ip.segments6()[0] & 0xf); s {
	case ScopeInterfaceLocal, ScopeLinkLocal, ScopeRealmLocal, ScopeAdminLocal,
		ScopeSiteLocal, ScopeOrganizationLocal, ScopeGlobal:
		return s, true
	default:
		return 0, false
	}
}
