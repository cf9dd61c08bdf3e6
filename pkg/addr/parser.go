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

// parser is a single-pass scanner over the ASCII text of an address
// literal. It holds the not yet consumed suffix of the input; readers
// advance it and are atomic, meaning a failed read leaves the suffix
// untouched so that an alternative grammar can be tried from the same
// position.
type parser struct {
	in []byte
}

// readAtomically runs inner and restores the unconsumed input if inner
// reports failure.
func readAtomically[T any](p *parser, inner func(*parser) (T, bool)) (T, bool) {
	state := p.in
	v, ok := inner(p)
	if !ok {
		p.in = state
	}
	return v, ok
}

// parseWith runs inner over the whole of in. Leftover input after a
// successful read is a failure; every failure collapses to kind.
func parseWith[T any](in string, kind error, inner func(*parser) (T, bool)) (T, error) {
	p := &parser{in: []byte(in)}
	v, ok := inner(p)
	if !ok || len(p.in) != 0 {
		var zero T
		return zero, kind
	}
	return v, nil
}

func (p *parser) peekChar() (byte, bool) {
	if len(p.in) == 0 {
		return 0, false
	}
	return p.in[0], true
}

func (p *parser) readChar() (byte, bool) {
	if len(p.in) == 0 {
		return 0, false
	}
	c := p.in[0]
	p.in = p.in[1:]
	return c, true
}

// readGivenChar consumes target if it is the next character and reports
// whether it did.
func (p *parser) readGivenChar(target byte) bool {
	if len(p.in) > 0 && p.in[0] == target {
		p.in = p.in[1:]
		return true
	}
	return false
}

// readSeparator reads sep before inner for every item except the item at
// index zero. The separator and inner read succeed or fail as a unit; a
// consumed separator is never left behind by a failing inner read.
func readSeparator[T any](p *parser, sep byte, index int, inner func(*parser) (T, bool)) (T, bool) {
	return readAtomically(p, func(p *parser) (T, bool) {
		if index > 0 && !p.readGivenChar(sep) {
			var zero T
			return zero, false
		}
		return inner(p)
	})
}

type unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

func digitValue(c byte, radix uint32) (uint32, bool) {
	var d uint32
	switch {
	case c >= '0' && c <= '9':
		d = uint32(c - '0')
	case c >= 'a' && c <= 'z':
		d = uint32(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		d = uint32(c-'A') + 10
	default:
		return 0, false
	}
	if d >= radix {
		return 0, false
	}
	return d, true
}

// readNumber reads a number in the given radix. The read fails when the
// accumulated value overflows T, when more than maxDigits digits are
// present (maxDigits <= 0 means unbounded), and, with allowZeroPrefix
// false, when a multi-digit number starts with zero.
func readNumber[T unsigned](p *parser, radix uint32, maxDigits int, allowZeroPrefix bool) (T, bool) {
	return readAtomically(p, func(p *parser) (T, bool) {
		var result T
		maxT := ^T(0)
		digitCount := 0
		leadingZero := false
		if c, ok := p.peekChar(); ok {
			leadingZero = c == '0'
		}

		for {
			d, ok := readAtomically(p, func(p *parser) (uint32, bool) {
				c, ok := p.readChar()
				if !ok {
					return 0, false
				}
				return digitValue(c, radix)
			})
			if !ok {
				break
			}
			if result > maxT/T(radix) {
				return 0, false
			}
			result *= T(radix)
			if result > maxT-T(d) {
				return 0, false
			}
			result += T(d)
			digitCount++
			if maxDigits > 0 && digitCount > maxDigits {
				return 0, false
			}
		}
		switch {
		case digitCount == 0:
			return 0, false
		case !allowZeroPrefix && leadingZero && digitCount > 1:
			return 0, false
		default:
			return result, true
		}
	})
}

// readIPv4 reads an IPv4 address: four decimal octets separated by dots.
// Octets with a leading zero are rejected to avoid the octal ambiguity
// described in RFC 6943 section 3.1.1.
func (p *parser) readIPv4() (IP, bool) {
	return readAtomically(p, func(p *parser) (IP, bool) {
		var octets [4]byte
		for i := range octets {
			o, ok := readSeparator(p, '.', i, func(p *parser) (uint8, bool) {
				return readNumber[uint8](p, 10, 3, false)
			})
			if !ok {
				return IP{}, false
			}
			octets[i] = o
		}
		return IPFrom4(octets), true
	})
}

// readIPv6 reads an IPv6 address: up to eight colon-separated groups of at
// most four hex digits, at most one "::" standing for one or more zero
// groups, and optionally a trailing embedded IPv4 address filling the last
// two groups.
func (p *parser) readIPv6() (IP, bool) {
	// readGroups reads a chain of groups into the slots. It returns the
	// number of filled slots and whether an embedded IPv4 address ended the
	// chain.
	readGroups := func(p *parser, groups []uint16) (int, bool) {
		limit := len(groups)
		for i := 0; i < limit; i++ {
			// An embedded IPv4 address needs two free slots and must be the
			// final component.
			if i < limit-1 {
				ip, ok := readSeparator(p, ':', i, func(p *parser) (IP, bool) {
					return p.readIPv4()
				})
				if ok {
					o := ip.As4()
					groups[i] = uint16(o[0])<<8 | uint16(o[1])
					groups[i+1] = uint16(o[2])<<8 | uint16(o[3])
					return i + 2, true
				}
			}
			g, ok := readSeparator(p, ':', i, func(p *parser) (uint16, bool) {
				return readNumber[uint16](p, 16, 4, true)
			})
			if !ok {
				return i, false
			}
			groups[i] = g
		}
		return limit, false
	}

	return readAtomically(p, func(p *parser) (IP, bool) {
		var head [8]uint16
		headSize, headIPv4 := readGroups(p, head[:])
		if headSize == 8 {
			return IPv6Segments(head), true
		}
		// An embedded IPv4 address may not come before a "::".
		if headIPv4 {
			return IP{}, false
		}
		if !p.readGivenChar(':') || !p.readGivenChar(':') {
			return IP{}, false
		}
		// The "::" stands for at least one zero group, so the tail holds at
		// most 8-(headSize+1) groups. The groups between head and tail stay
		// zero.
		var tail [7]uint16
		limit := 8 - (headSize + 1)
		tailSize, _ := readGroups(p, tail[:limit])
		copy(head[8-tailSize:], tail[:tailSize])
		return IPv6Segments(head), true
	})
}

// readIP reads an IPv4 address, or failing that an IPv6 address.
func (p *parser) readIP() (IP, bool) {
	if ip, ok := p.readIPv4(); ok {
		return ip, true
	}
	return p.readIPv6()
}

// readAS reads the AS number of an address literal: either a single hex
// group of up to four digits giving the low 16 bits, or exactly three
// colon-separated groups. Two groups are rejected.
func (p *parser) readAS() (AS, bool) {
	return readAtomically(p, func(p *parser) (AS, bool) {
		var groups [asParts]uint16
		count := 0
		for i := 0; i < asParts; i++ {
			g, ok := readSeparator(p, ':', i, func(p *parser) (uint16, bool) {
				return readNumber[uint16](p, 16, 4, true)
			})
			if !ok {
				break
			}
			groups[i] = g
			count++
		}
		switch count {
		case 1:
			return AS(groups[0]), true
		case asParts:
			var as AS
			for _, g := range groups {
				as = as<<asPartBits | AS(g)
			}
			return as, true
		default:
			return 0, false
		}
	})
}

// readAddr reads a SCION address: a decimal ISD of up to six digits, "-",
// the AS number, "," and the host address. Brackets around the host are
// consumed when present and otherwise ignored; they are not checked for
// balance.
func (p *parser) readAddr() (Addr, bool) {
	return readAtomically(p, func(p *parser) (Addr, bool) {
		isd, ok := readNumber[uint16](p, 10, 6, true)
		if !ok {
			return Addr{}, false
		}
		if !p.readGivenChar('-') {
			return Addr{}, false
		}
		as, ok := p.readAS()
		if !ok {
			return Addr{}, false
		}
		if !p.readGivenChar(',') {
			return Addr{}, false
		}
		p.readGivenChar('[')
		host, ok := p.readIP()
		if !ok {
			return Addr{}, false
		}
		p.readGivenChar(']')
		return Addr{IA: MustIAFrom(ISD(isd), as), Host: host}, true
	})
}

// readPort reads ":" followed by a decimal port number. Any number of
// digits is accepted, leading zeros included; the value must fit 16 bits.
func (p *parser) readPort() (uint16, bool) {
	return readAtomically(p, func(p *parser) (uint16, bool) {
		if !p.readGivenChar(':') {
			return 0, false
		}
		return readNumber[uint16](p, 10, 0, true)
	})
}

// readScopeID reads "%" followed by a decimal scope identifier.
func (p *parser) readScopeID() (uint32, bool) {
	return readAtomically(p, func(p *parser) (uint32, bool) {
		if !p.readGivenChar('%') {
			return 0, false
		}
		return readNumber[uint32](p, 10, 0, true)
	})
}

func (p *parser) readSocketAddrV4() (SocketAddr, bool) {
	return readAtomically(p, func(p *parser) (SocketAddr, bool) {
		ip, ok := p.readIPv4()
		if !ok {
			return SocketAddr{}, false
		}
		port, ok := p.readPort()
		if !ok {
			return SocketAddr{}, false
		}
		return SocketAddrFromIPv4(ip, port), true
	})
}

func (p *parser) readSocketAddrV6() (SocketAddr, bool) {
	return readAtomically(p, func(p *parser) (SocketAddr, bool) {
		if !p.readGivenChar('[') {
			return SocketAddr{}, false
		}
		ip, ok := p.readIPv6()
		if !ok {
			return SocketAddr{}, false
		}
		scope, _ := p.readScopeID()
		if !p.readGivenChar(']') {
			return SocketAddr{}, false
		}
		port, ok := p.readPort()
		if !ok {
			return SocketAddr{}, false
		}
		return SocketAddrFromIPv6(ip, port, 0, scope), true
	})
}

func (p *parser) readSocketAddrSCION() (SocketAddr, bool) {
	return readAtomically(p, func(p *parser) (SocketAddr, bool) {
		a, ok := p.readAddr()
		if !ok {
			return SocketAddr{}, false
		}
		port, ok := p.readPort()
		if !ok {
			return SocketAddr{}, false
		}
		return SocketAddrFromSCION(a, port), true
	})
}

// readSocketAddr reads a socket address, trying the IPv4, IPv6 and SCION
// grammars in that order.
func (p *parser) readSocketAddr() (SocketAddr, bool) {
	if sa, ok := p.readSocketAddrV4(); ok {
		return sa, true
	}
	if sa, ok := p.readSocketAddrV6(); ok {
		return sa, true
	}
	return p.readSocketAddrSCION()
}
