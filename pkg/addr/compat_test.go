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

package addr_test

import (
	"net"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"inet.af/netaddr"

	"github.com/netsys-lab/scion-addr/pkg/addr"
)

func TestNetipConversions(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		for _, s := range []string{
			"0.0.0.0",
			"127.0.0.1",
			"255.255.255.255",
			"::",
			"::1",
			"2001:db8::1",
			"::ffff:192.0.2.1",
		} {
			ip := addr.MustParseIP(s)
			na := ip.NetipAddr()
			assert.Equal(t, netip.MustParseAddr(s), na)
			back, ok := addr.IPFromNetipAddr(na)
			require.True(t, ok)
			assert.Equal(t, ip, back)
		}
	})
	t.Run("mapped stays IPv6", func(t *testing.T) {
		na := addr.MustParseIP("::ffff:192.0.2.1").NetipAddr()
		assert.False(t, na.Is4())
		assert.True(t, na.Is4In6())
	})
	t.Run("zero and zoned", func(t *testing.T) {
		assert.Equal(t, netip.Addr{}, addr.IP{}.NetipAddr())
		_, ok := addr.IPFromNetipAddr(netip.Addr{})
		assert.False(t, ok)
		_, ok = addr.IPFromNetipAddr(netip.MustParseAddr("fe80::1%eth0"))
		assert.False(t, ok)
	})
}

func TestNetIPConversions(t *testing.T) {
	t.Run("lengths", func(t *testing.T) {
		assert.Equal(t, net.IP{127, 0, 0, 1}, addr.MustParseIP("127.0.0.1").NetIP())
		assert.Len(t, addr.MustParseIP("::1").NetIP(), net.IPv6len)
		assert.Nil(t, addr.IP{}.NetIP())
	})
	t.Run("round trip", func(t *testing.T) {
		for _, s := range []string{"127.0.0.1", "2001:db8::1", "::ffff:192.0.2.1"} {
			ip := addr.MustParseIP(s)
			back, ok := addr.IPFromNetIP(ip.NetIP())
			require.True(t, ok)
			assert.Equal(t, ip, back)
		}
	})
	t.Run("sixteen byte mapped form", func(t *testing.T) {
		// net.ParseIP stores IPv4 addresses in the mapped form.
		ip, ok := addr.IPFromNetIP(net.ParseIP("192.0.2.1"))
		require.True(t, ok)
		assert.True(t, ip.Is4In6())
		assert.Equal(t, addr.IPv4(192, 0, 2, 1), ip.Unmap())
	})
	t.Run("bad lengths", func(t *testing.T) {
		_, ok := addr.IPFromNetIP(nil)
		assert.False(t, ok)
		_, ok = addr.IPFromNetIP(net.IP{1, 2, 3})
		assert.False(t, ok)
	})
}

func TestNetaddrConversions(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		for _, s := range []string{"127.0.0.1", "2001:db8::1", "::ffff:192.0.2.1", "::"} {
			ip := addr.MustParseIP(s)
			na := ip.NetaddrIP()
			assert.Equal(t, s, na.String())
			back, ok := addr.IPFromNetaddrIP(na)
			require.True(t, ok)
			assert.Equal(t, ip, back)
		}
	})
	t.Run("zero and zoned", func(t *testing.T) {
		assert.True(t, addr.IP{}.NetaddrIP().IsZero())
		_, ok := addr.IPFromNetaddrIP(netaddr.IP{})
		assert.False(t, ok)
		zoned := netaddr.IPv6Raw(addr.MustParseIP("fe80::1").As16()).WithZone("eth0")
		_, ok = addr.IPFromNetaddrIP(zoned)
		assert.False(t, ok)
	})
}

func TestSocketAddrAddrPort(t *testing.T) {
	for _, s := range []string{
		"127.0.0.1:53",
		"[2001:db8::1]:443",
		"[fe80::1%25]:8080",
	} {
		sa := addr.MustParseSocketAddr(s)
		ap, ok := sa.AddrPort()
		require.True(t, ok)
		assert.Equal(t, s, ap.String())
		back, ok := addr.SocketAddrFromAddrPort(ap)
		require.True(t, ok)
		assert.Equal(t, sa, back)
	}

	t.Run("unrepresentable", func(t *testing.T) {
		_, ok := addr.SocketAddr{}.AddrPort()
		assert.False(t, ok)
		_, ok = addr.MustParseSocketAddr("19-ffaa:1:1067,127.0.0.1:53").AddrPort()
		assert.False(t, ok)
		flowed := addr.SocketAddrFromIPv6(addr.MustParseIP("::1"), 80, 7, 0)
		_, ok = flowed.AddrPort()
		assert.False(t, ok)
	})
	t.Run("zones", func(t *testing.T) {
		sa, ok := addr.SocketAddrFromAddrPort(netip.MustParseAddrPort("[fe80::1%25]:8080"))
		require.True(t, ok)
		assert.Equal(t, uint32(25), sa.ScopeID())
		_, ok = addr.SocketAddrFromAddrPort(netip.MustParseAddrPort("[fe80::1%eth0]:8080"))
		assert.False(t, ok)
		_, ok = addr.SocketAddrFromAddrPort(netip.AddrPort{})
		assert.False(t, ok)
	})
}

func TestSocketAddrUDPAddr(t *testing.T) {
	assert.Equal(t,
		&net.UDPAddr{IP: net.IP{127, 0, 0, 1}, Port: 53},
		addr.MustParseSocketAddr("127.0.0.1:53").UDPAddr())
	assert.Equal(t,
		&net.UDPAddr{IP: net.ParseIP("2001:db8::1"), Port: 443},
		addr.MustParseSocketAddr("[2001:db8::1]:443").UDPAddr())
	assert.Equal(t,
		&net.UDPAddr{IP: net.ParseIP("fe80::1"), Port: 8080, Zone: "25"},
		addr.MustParseSocketAddr("[fe80::1%25]:8080").UDPAddr())

	assert.Nil(t, addr.SocketAddr{}.UDPAddr())
	assert.Nil(t, addr.MustParseSocketAddr("19-ffaa:1:1067,127.0.0.1:53").UDPAddr())
	assert.Nil(t, addr.SocketAddrFromIPv6(addr.MustParseIP("::1"), 80, 7, 0).UDPAddr())
}
