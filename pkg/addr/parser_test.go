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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAtomically(t *testing.T) {
	p := &parser{in: []byte("abc")}
	_, ok := readAtomically(p, func(p *parser) (int, bool) {
		p.readChar()
		p.readChar()
		return 0, false
	})
	assert.False(t, ok)
	// A failing read leaves the input untouched.
	assert.Equal(t, "abc", string(p.in))

	v, ok := readAtomically(p, func(p *parser) (byte, bool) {
		c, _ := p.readChar()
		return c, true
	})
	require.True(t, ok)
	assert.Equal(t, byte('a'), v)
	assert.Equal(t, "bc", string(p.in))
}

func TestReadNumber(t *testing.T) {
	read8 := func(in string, maxDigits int, allowZeroPrefix bool) (uint8, bool, string) {
		p := &parser{in: []byte(in)}
		v, ok := readNumber[uint8](p, 10, maxDigits, allowZeroPrefix)
		return v, ok, string(p.in)
	}

	t.Run("bounds", func(t *testing.T) {
		v, ok, rest := read8("255x", 3, false)
		assert.True(t, ok)
		assert.Equal(t, uint8(255), v)
		assert.Equal(t, "x", rest)

		// Overflow fails the read instead of truncating.
		_, ok, rest = read8("256", 3, false)
		assert.False(t, ok)
		assert.Equal(t, "256", rest)
	})
	t.Run("digit limit", func(t *testing.T) {
		_, ok, rest := read8("0123", 3, true)
		assert.False(t, ok)
		assert.Equal(t, "0123", rest)
	})
	t.Run("leading zero", func(t *testing.T) {
		_, ok, _ := read8("01", 3, false)
		assert.False(t, ok)
		v, ok, _ := read8("01", 3, true)
		assert.True(t, ok)
		assert.Equal(t, uint8(1), v)
		v, ok, _ = read8("0", 3, false)
		assert.True(t, ok)
		assert.Equal(t, uint8(0), v)
	})
	t.Run("no digits", func(t *testing.T) {
		_, ok, rest := read8("x", 3, false)
		assert.False(t, ok)
		assert.Equal(t, "x", rest)
		_, ok, _ = read8("", 3, false)
		assert.False(t, ok)
	})
	t.Run("radix and unbounded digits", func(t *testing.T) {
		p := &parser{in: []byte("ffg")}
		v, ok := readNumber[uint16](p, 16, 4, true)
		require.True(t, ok)
		assert.Equal(t, uint16(0xff), v)
		assert.Equal(t, "g", string(p.in))

		// Leading zeros do not extend the value range.
		p = &parser{in: []byte("000000070000")}
		_, ok = readNumber[uint16](p, 10, 0, true)
		assert.False(t, ok)
	})
}

func TestReadSeparator(t *testing.T) {
	digit := func(p *parser) (byte, bool) {
		c, ok := p.readChar()
		if !ok || c < '0' || c > '9' {
			return 0, false
		}
		return c - '0', true
	}

	p := &parser{in: []byte("1:2")}
	v, ok := readSeparator(p, ':', 0, digit)
	require.True(t, ok)
	assert.Equal(t, byte(1), v)
	v, ok = readSeparator(p, ':', 1, digit)
	require.True(t, ok)
	assert.Equal(t, byte(2), v)

	// The item at index zero takes no separator.
	p = &parser{in: []byte(":1")}
	_, ok = readSeparator(p, ':', 0, digit)
	assert.False(t, ok)
	assert.Equal(t, ":1", string(p.in))

	// A consumed separator is restored when the inner read fails.
	p = &parser{in: []byte(":x")}
	_, ok = readSeparator(p, ':', 1, digit)
	assert.False(t, ok)
	assert.Equal(t, ":x", string(p.in))
}

func TestDigitValue(t *testing.T) {
	tests := []struct {
		c     byte
		radix uint32
		want  uint32
		ok    bool
	}{
		{'0', 10, 0, true},
		{'9', 10, 9, true},
		{'a', 16, 10, true},
		{'F', 16, 15, true},
		{'a', 10, 0, false},
		{'g', 16, 0, false},
		{'/', 10, 0, false},
		{':', 16, 0, false},
	}
	for _, test := range tests {
		v, ok := digitValue(test.c, test.radix)
		assert.Equal(t, test.ok, ok, "%q", test.c)
		assert.Equal(t, test.want, v, "%q", test.c)
	}
}

func TestReaderAtomicity(t *testing.T) {
	p := &parser{in: []byte("1:2:3")}
	_, ok := p.readIPv6()
	assert.False(t, ok)
	assert.Equal(t, "1:2:3", string(p.in))

	p = &parser{in: []byte("300.1.2.3")}
	_, ok = p.readIPv4()
	assert.False(t, ok)
	assert.Equal(t, "300.1.2.3", string(p.in))

	p = &parser{in: []byte("19-ffaa:1:1067,")}
	_, ok = p.readAddr()
	assert.False(t, ok)
	assert.Equal(t, "19-ffaa:1:1067,", string(p.in))
}
