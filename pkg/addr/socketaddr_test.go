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
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netsys-lab/scion-addr/pkg/addr"
)

func TestParseSocketAddr(t *testing.T) {
	tests := []struct {
		address string
		isError bool
		typ     addr.SocketAddrType
		ia      string
		host    string
		port    uint16
		scope   uint32
	}{
		{address: "", isError: true},
		{address: "foo", isError: true},
		{address: "1.2.3.4", isError: true},
		{address: "1.2.3.4:", isError: true},
		{address: ":80", isError: true},
		{address: "1.2.3.4:70000", isError: true},
		{address: "1.2.3.4:80x", isError: true},
		{address: "127.0.0.1:80 ", isError: true},
		{address: "2001:db8::1:8080", isError: true},
		{address: "[2001:db8::1]", isError: true},
		{address: "[2001:db8::1]:", isError: true},
		{address: "[2001:db8::1:443", isError: true},
		{address: "2001:db8::1]:443", isError: true},
		{address: "[1.2.3.4]:80", isError: true},
		{address: "[fe80::1%]:80", isError: true},
		{address: "[fe80::1%net0]:80", isError: true},
		{address: "[fe80::1%4294967296]:80", isError: true},
		{address: "19-ffaa:1:1067", isError: true},
		{address: "19-ffaa:1:1067,127.0.0.1", isError: true},
		{address: "19-ffaa:1:1067,2001:db8::1:443", isError: true},
		{address: "19-ffaa:1:1067,[2001:db8::1:443", isError: true},
		{address: "19-1:2,127.0.0.1:80", isError: true},
		{address: "65536-1,127.0.0.1:80", isError: true},
		{address: "0.0.0.0:0",
			typ:  addr.SocketAddrIPv4,
			host: "0.0.0.0",
			port: 0,
		},
		{address: "127.0.0.1:53",
			typ:  addr.SocketAddrIPv4,
			host: "127.0.0.1",
			port: 53,
		},
		{address: "1.2.3.4:007",
			typ:  addr.SocketAddrIPv4,
			host: "1.2.3.4",
			port: 7,
		},
		{address: "255.255.255.255:65535",
			typ:  addr.SocketAddrIPv4,
			host: "255.255.255.255",
			port: 65535,
		},
		{address: "[::]:0",
			typ:  addr.SocketAddrIPv6,
			host: "::",
			port: 0,
		},
		{address: "[2001:db8::1]:443",
			typ:  addr.SocketAddrIPv6,
			host: "2001:db8::1",
			port: 443,
		},
		{address: "[fe80::1%25]:8080",
			typ:   addr.SocketAddrIPv6,
			host:  "fe80::1",
			port:  8080,
			scope: 25,
		},
		{address: "[fe80::1%025]:8080",
			typ:   addr.SocketAddrIPv6,
			host:  "fe80::1",
			port:  8080,
			scope: 25,
		},
		{address: "[::1%0]:80",
			typ:   addr.SocketAddrIPv6,
			host:  "::1",
			port:  80,
			scope: 0,
		},
		{address: "[::ffff:192.0.2.1]:80",
			typ:  addr.SocketAddrIPv6,
			host: "::ffff:192.0.2.1",
			port: 80,
		},
		{address: "19-ffaa:1:1067,127.0.0.1:53",
			typ:  addr.SocketAddrSCION,
			ia:   "19-ffaa:1:1067",
			host: "127.0.0.1",
			port: 53,
		},
		{address: "19-ffaa:1:1067,[127.0.0.1]:53",
			typ:  addr.SocketAddrSCION,
			ia:   "19-ffaa:1:1067",
			host: "127.0.0.1",
			port: 53,
		},
		{address: "19-ffaa:1:1067,[2001:db8::1]:443",
			typ:  addr.SocketAddrSCION,
			ia:   "19-ffaa:1:1067",
			host: "2001:db8::1",
			port: 443,
		},
		{address: "19-ffaa:1:1067,2001:db8::1]:443",
			typ:  addr.SocketAddrSCION,
			ia:   "19-ffaa:1:1067",
			host: "2001:db8::1",
			port: 443,
		},
		// A bare AS group is hex.
		{address: "1-10,1.2.3.4:80",
			typ:  addr.SocketAddrSCION,
			ia:   "1-16",
			host: "1.2.3.4",
			port: 80,
		},
		{address: "19-0:0:0,127.0.0.1:80",
			typ:  addr.SocketAddrSCION,
			ia:   "19-0",
			host: "127.0.0.1",
			port: 80,
		},
		{address: "65535-ffff:ffff:ffff,255.255.255.255:65535",
			typ:  addr.SocketAddrSCION,
			ia:   "65535-ffff:ffff:ffff",
			host: "255.255.255.255",
			port: 65535,
		},
	}
	for _, test := range tests {
		t.Logf("given address %q", test.address)
		a, err := addr.ParseSocketAddr(test.address)
		if test.isError {
			assert.ErrorIs(t, err, addr.ErrSocketAddr)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, test.typ, a.Type())
		assert.Equal(t, addr.MustParseIP(test.host), a.IP())
		assert.Equal(t, test.port, a.Port())
		assert.Equal(t, test.scope, a.ScopeID())
		assert.Zero(t, a.Flowinfo())
		if test.typ == addr.SocketAddrSCION {
			assert.Equal(t, test.ia, a.IA().String())
		}
	}
}

func TestParseSocketAddrFamilies(t *testing.T) {
	tests := map[string]struct {
		parse  func(string) (addr.SocketAddr, error)
		err    error
		accept string
		reject []string
	}{
		"ipv4": {
			parse:  addr.ParseSocketAddrIPv4,
			err:    addr.ErrSocketAddrIPv4,
			accept: "127.0.0.1:53",
			reject: []string{"[::1]:53", "19-ffaa:1:1067,127.0.0.1:53", "127.0.0.1"},
		},
		"ipv6": {
			parse:  addr.ParseSocketAddrIPv6,
			err:    addr.ErrSocketAddrIPv6,
			accept: "[2001:db8::1]:443",
			reject: []string{"127.0.0.1:53", "::1:53", "19-ffaa:1:1067,[::1]:53"},
		},
		"scion": {
			parse:  addr.ParseSocketAddrSCION,
			err:    addr.ErrSocketAddrSCION,
			accept: "19-ffaa:1:1067,127.0.0.1:53",
			reject: []string{"127.0.0.1:53", "[2001:db8::1]:443"},
		},
	}
	for n, tc := range tests {
		t.Run(n, func(t *testing.T) {
			_, err := tc.parse(tc.accept)
			assert.NoError(t, err)
			for _, s := range tc.reject {
				_, err := tc.parse(s)
				assert.ErrorIs(t, err, tc.err, "input %q", s)
			}
		})
	}
}

func TestSocketAddrString(t *testing.T) {
	tests := []struct {
		sa   addr.SocketAddr
		want string
	}{
		{addr.SocketAddr{}, "invalid SocketAddr"},
		{addr.SocketAddrFromIPv4(addr.MustParseIP("127.0.0.1"), 53), "127.0.0.1:53"},
		{addr.SocketAddrFromIPv6(addr.MustParseIP("2001:db8::1"), 443, 0, 0), "[2001:db8::1]:443"},
		{addr.SocketAddrFromIPv6(addr.MustParseIP("fe80::1"), 8080, 0, 25), "[fe80::1%25]:8080"},
		// Flow information has no textual form.
		{addr.SocketAddrFromIPv6(addr.MustParseIP("fe80::1"), 8080, 0x12345, 0), "[fe80::1]:8080"},
		{addr.SocketAddrFromSCION(addr.MustParseAddr("19-ffaa:1:1067,127.0.0.1"), 53),
			"19-ffaa:1:1067,127.0.0.1:53"},
		{addr.SocketAddrFromSCION(addr.MustParseAddr("19-ffaa:1:1067,2001:db8::1"), 443),
			"19-ffaa:1:1067,[2001:db8::1]:443"},
		// The zero scope is not displayed.
		{addr.MustParseSocketAddr("[::1%0]:80"), "[::1]:80"},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, test.sa.String())
	}

	t.Run("round trip", func(t *testing.T) {
		for _, s := range []string{
			"0.0.0.0:0",
			"255.255.255.255:65535",
			"[::]:0",
			"[2001:db8::1%4294967295]:65535",
			"[::ffff:192.0.2.1]:80",
			"19-ffaa:1:1067,127.0.0.1:53",
			"19-ffaa:1:1067,[2001:db8::1]:443",
			"6-ffaa:0:123,[::ffff:192.0.2.1]:80",
		} {
			assert.Equal(t, s, addr.MustParseSocketAddr(s).String())
		}
	})
}

func TestSocketAddrFrom(t *testing.T) {
	v4 := addr.MustParseIP("10.0.0.1")
	v6 := addr.MustParseIP("2001:db8::1")

	sa := addr.SocketAddrFrom(v4, 80)
	assert.Equal(t, addr.SocketAddrFromIPv4(v4, 80), sa)

	sa = addr.SocketAddrFrom(v6, 80)
	assert.Equal(t, addr.SocketAddrFromIPv6(v6, 80, 0, 0), sa)

	assert.Equal(t, addr.SocketAddr{}, addr.SocketAddrFrom(addr.IP{}, 80))

	assert.Panics(t, func() { addr.SocketAddrFromIPv4(v6, 80) })
	assert.Panics(t, func() { addr.SocketAddrFromIPv6(v4, 80, 0, 0) })
}

func TestSocketAddrAccessors(t *testing.T) {
	sa := addr.MustParseSocketAddr("19-ffaa:1:1067,127.0.0.1:53")
	assert.Equal(t, addr.IA(5629130167095399), sa.IA())
	assert.Equal(t, addr.MustParseAddr("19-ffaa:1:1067,127.0.0.1"), sa.Addr())
	assert.Equal(t, addr.MustParseIP("127.0.0.1"), sa.IP())
	assert.Equal(t, uint16(53), sa.Port())

	t.Run("zero value", func(t *testing.T) {
		var zero addr.SocketAddr
		assert.Equal(t, addr.SocketAddrNone, zero.Type())
		assert.Equal(t, addr.IP{}, zero.IP())
		assert.Zero(t, zero.Port())
		assert.Zero(t, zero.Flowinfo())
		assert.Zero(t, zero.ScopeID())
	})
	t.Run("non-SCION", func(t *testing.T) {
		v4 := addr.MustParseSocketAddr("127.0.0.1:53")
		assert.Panics(t, func() { v4.IA() })
		assert.Panics(t, func() { v4.Addr() })
	})
}

func TestSocketAddrSetIP(t *testing.T) {
	v4 := addr.MustParseIP("10.0.0.1")
	v6 := addr.MustParseIP("2001:db8::1")
	tests := map[string]struct {
		sa   addr.SocketAddr
		ip   addr.IP
		want addr.SocketAddr
	}{
		"v4 in place": {
			sa:   addr.MustParseSocketAddr("127.0.0.1:80"),
			ip:   v4,
			want: addr.MustParseSocketAddr("10.0.0.1:80"),
		},
		"v4 to v6": {
			sa:   addr.MustParseSocketAddr("127.0.0.1:80"),
			ip:   v6,
			want: addr.MustParseSocketAddr("[2001:db8::1]:80"),
		},
		"v6 in place keeps scope": {
			sa:   addr.MustParseSocketAddr("[fe80::1%25]:80"),
			ip:   v6,
			want: addr.MustParseSocketAddr("[2001:db8::1%25]:80"),
		},
		"v6 to v4 drops scope": {
			sa:   addr.MustParseSocketAddr("[fe80::1%25]:80"),
			ip:   v4,
			want: addr.MustParseSocketAddr("10.0.0.1:80"),
		},
		"scion takes v4 host": {
			sa:   addr.MustParseSocketAddr("19-ffaa:1:1067,[2001:db8::1]:80"),
			ip:   v4,
			want: addr.MustParseSocketAddr("19-ffaa:1:1067,10.0.0.1:80"),
		},
		"scion takes v6 host": {
			sa:   addr.MustParseSocketAddr("19-ffaa:1:1067,127.0.0.1:80"),
			ip:   v6,
			want: addr.MustParseSocketAddr("19-ffaa:1:1067,[2001:db8::1]:80"),
		},
	}
	for n, tc := range tests {
		t.Run(n, func(t *testing.T) {
			sa := tc.sa
			sa.SetIP(tc.ip)
			assert.Equal(t, tc.want, sa)
		})
	}

	t.Run("flow information survives in place", func(t *testing.T) {
		sa := addr.SocketAddrFromIPv6(addr.MustParseIP("fe80::1"), 80, 7, 25)
		sa.SetIP(v6)
		assert.Equal(t, addr.SocketAddrFromIPv6(v6, 80, 7, 25), sa)
		sa.SetIP(v4)
		assert.Equal(t, addr.SocketAddrFromIPv4(v4, 80), sa)
	})
}

func TestSocketAddrSetPort(t *testing.T) {
	sa := addr.MustParseSocketAddr("19-ffaa:1:1067,127.0.0.1:53")
	sa.SetPort(8080)
	assert.Equal(t, uint16(8080), sa.Port())
	assert.Equal(t, "19-ffaa:1:1067,127.0.0.1:8080", sa.String())
}

func TestSocketAddrEqual(t *testing.T) {
	tests := map[string]struct {
		a     addr.SocketAddr
		b     addr.SocketAddr
		equal bool
	}{
		"same": {
			a:     addr.MustParseSocketAddr("127.0.0.1:80"),
			b:     addr.MustParseSocketAddr("127.0.0.1:80"),
			equal: true,
		},
		"different port": {
			a:     addr.MustParseSocketAddr("127.0.0.1:80"),
			b:     addr.MustParseSocketAddr("127.0.0.1:81"),
			equal: false,
		},
		"different variant": {
			a:     addr.MustParseSocketAddr("127.0.0.1:80"),
			b:     addr.MustParseSocketAddr("19-ffaa:1:1067,127.0.0.1:80"),
			equal: false,
		},
		"different flow information": {
			a:     addr.SocketAddrFromIPv6(addr.MustParseIP("::1"), 80, 1, 0),
			b:     addr.SocketAddrFromIPv6(addr.MustParseIP("::1"), 80, 2, 0),
			equal: false,
		},
	}
	for n, tc := range tests {
		t.Run(n, func(t *testing.T) {
			assert.Equal(t, tc.equal, tc.a.Equal(tc.b))
		})
	}
}

func TestSocketAddrMarshalText(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		for _, s := range []string{
			"127.0.0.1:53",
			"[fe80::1%25]:8080",
			"19-ffaa:1:1067,[2001:db8::1]:443",
		} {
			raw, err := json.Marshal(addr.MustParseSocketAddr(s))
			require.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("%q", s), string(raw))
			var back addr.SocketAddr
			require.NoError(t, json.Unmarshal(raw, &back))
			assert.Equal(t, addr.MustParseSocketAddr(s), back)
		}
	})
	t.Run("zero value is empty text", func(t *testing.T) {
		raw, err := json.Marshal(addr.SocketAddr{})
		require.NoError(t, err)
		assert.Equal(t, `""`, string(raw))
		sa := addr.MustParseSocketAddr("127.0.0.1:53")
		require.NoError(t, json.Unmarshal([]byte(`""`), &sa))
		assert.Equal(t, addr.SocketAddr{}, sa)
	})
}

func TestSocketAddrSet(t *testing.T) {
	var sa addr.SocketAddr
	assert.Error(t, sa.Set("foo"))
	require.NoError(t, sa.Set("[2001:db8::1]:443"))
	assert.Equal(t, addr.MustParseSocketAddr("[2001:db8::1]:443"), sa)
}

func TestSocketAddrTypeString(t *testing.T) {
	assert.Equal(t, "None", addr.SocketAddrNone.String())
	assert.Equal(t, "IPv4", addr.SocketAddrIPv4.String())
	assert.Equal(t, "IPv6", addr.SocketAddrIPv6.String())
	assert.Equal(t, "SCION", addr.SocketAddrSCION.String())
	assert.Equal(t, "UNKNOWN (77)", addr.SocketAddrType(77).String())
}

func ExampleParseSocketAddr() {
	sa, err := addr.ParseSocketAddr("19-ffaa:1:1067,127.0.0.1:53")
	if err != nil {
		panic(err)
	}
	fmt.Println(sa.IA(), sa.IP(), sa.Port())
	// Output: 19-ffaa:1:1067 127.0.0.1 53
}
