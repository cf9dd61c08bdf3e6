// Copyright 2022 Anapaya Systems
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

// IsWildcard returns whether the ISD or the AS part of the ISD-AS is a
// zero-valued wildcard.
func (ia IA) IsWildcard() bool {
	return ia.ISD() == 0 || ia.AS() == 0
}

// Matches matches the input ISD-AS if both the ISD and the AS number are the
// same as the one of the receiver. Zero values of ISD and AS in the receiver
// are treated as wildcards and match everything.
func (ia IA) Matches(other IA) bool {
	switch {
	case ia.IsZero():
		return true
	case ia.ISD() == 0:
		return ia.AS() == other.AS()
	case ia.AS() == 0:
		return ia.ISD() == other.ISD()
	default:
		return ia.Equal(other)
	}
}
