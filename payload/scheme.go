// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package payload embeds opaque overlay-protocol payloads into base ledger
// transaction outputs and recovers them again.
//
// Two embeddings exist. The compact scheme places the marker and payload in a
// single zero-value OP_RETURN output. The expanded scheme frames the payload
// with a compact size length prefix, splits it into sequenced 31-byte packets,
// obfuscates each packet with a hash chain seeded by the sender address and
// hides the packets as public keys in bare 1-of-N multisig outputs.
package payload

import "fmt"

type Scheme uint8

const (
	SchemeCompact Scheme = iota
	SchemeExpanded
)

func (s Scheme) String() string {
	switch s {
	case SchemeCompact:
		return "compact"
	case SchemeExpanded:
		return "expanded"
	}
	return fmt.Sprintf("unknown(%d)", uint8(s))
}

const (
	// DefaultMarker prefixes every compact embedding
	DefaultMarker = "tokn"

	// DefaultDataCarrierSize is the largest OP_RETURN push relayed by default
	DefaultDataCarrierSize = 80

	// PacketSize is the number of payload-carrying bytes in each data key
	PacketSize = 31
	// ChunkSize is the number of stream bytes carried by each packet after the sequence byte
	ChunkSize = PacketSize - 1
	// MaxPackets is bounded by the single sequence byte
	MaxPackets = 255
	// MaxDataKeysPerOutput is the number of data keys placed next to the redemption key
	MaxDataKeysPerOutput = 2

	// Compressed key prefix used for data keys
	dataKeyPrefix = 0x02
	dataKeySize   = 33
)

// ChooseScheme selects the embedding for a payload of the given size. Payloads
// up to and including the compact capacity use the compact scheme unless the
// caller forces the expanded one.
func ChooseScheme(size int, compactCapacity int, forceExpanded bool) Scheme {
	if forceExpanded || size > compactCapacity {
		return SchemeExpanded
	}
	return SchemeCompact
}

// packetCount returns the number of packets needed for a payload of the given size
func packetCount(size int) int {
	stream := compactSizeLen(size) + size
	return (stream + ChunkSize - 1) / ChunkSize
}
