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

import "github.com/netsys-lab/scion-addr/pkg/private/serrors"

// The address literal parsers reject malformed input with one of the
// following errors, matched with errors.Is. The errors carry no position
// information: an input either parses completely or is rejected as a whole.
var (
	// ErrIP is returned for input that is neither an IPv4 nor an IPv6
	// address literal.
	ErrIP = serrors.New("invalid IP address syntax")
	// ErrIPv4 is returned for malformed IPv4 address literals.
	ErrIPv4 = serrors.New("invalid IPv4 address syntax")
	// ErrIPv6 is returned for malformed IPv6 address literals.
	ErrIPv6 = serrors.New("invalid IPv6 address syntax")
	// ErrAddr is returned for malformed SCION address literals.
	ErrAddr = serrors.New("invalid SCION address syntax")
	// ErrSocketAddr is returned for input that matches none of the socket
	// address grammars.
	ErrSocketAddr = serrors.New("invalid socket address syntax")
	// ErrSocketAddrIPv4 is returned for malformed IPv4 socket addresses.
	ErrSocketAddrIPv4 = serrors.New("invalid IPv4 socket address syntax")
	// ErrSocketAddrIPv6 is returned for malformed IPv6 socket addresses.
	ErrSocketAddrIPv6 = serrors.New("invalid IPv6 socket address syntax")
	// ErrSocketAddrSCION is returned for malformed SCION socket addresses.
	ErrSocketAddrSCION = serrors.New("invalid SCION socket address syntax")
)
