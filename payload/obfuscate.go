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


package payload

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/blinklabs-io/gotokencore/ledger"
)

// obfuscationHashes returns the hash chain used to mask packets. The first
// hash is SHA-256 of the sender address string and every following hash is
// SHA-256 of the uppercase hex form of its predecessor.
func obfuscationHashes(sender ledger.Address, count int) [][sha256.Size]byte {
	ret := make([][sha256.Size]byte, 0, count)
	if count == 0 {
		return ret
	}
	ret = append(ret, sha256.Sum256([]byte(sender.String())))
	for len(ret) < count {
		prev := ret[len(ret)-1]
		ret = append(
			ret,
			sha256.Sum256([]byte(strings.ToUpper(hex.EncodeToString(prev[:])))),
		)
	}
	return ret
}

// xorPacket masks or unmasks a packet in place
func xorPacket(packet []byte, mask [sha256.Size]byte) {
	for i := range packet {
		packet[i] ^= mask[i]
	}
}

func compactSizeLen(size int) int {
	return ledger.CompactSizeLen(uint64(size)) // #nosec G115
}
