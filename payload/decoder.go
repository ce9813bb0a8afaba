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
	"bytes"
	"fmt"

	"github.com/blinklabs-io/gotokencore/ledger"
)

// Decode recovers a payload embedded with the default marker
func Decode(outputs []ledger.TxOut, sender ledger.Address) ([]byte, Scheme, error) {
	return DecodeWithMarker(outputs, sender, []byte(DefaultMarker))
}

// DecodeWithMarker recovers a payload from a transaction's outputs. A marked
// OP_RETURN output takes precedence over multisig outputs.
func DecodeWithMarker(
	outputs []ledger.TxOut,
	sender ledger.Address,
	marker []byte,
) ([]byte, Scheme, error) {
	for _, out := range outputs {
		data, ok := ledger.ExtractNullData(out.PkScript)
		if !ok || !bytes.HasPrefix(data, marker) {
			continue
		}
		if len(data) == len(marker) {
			return nil, SchemeCompact, ErrNoPayload
		}
		return bytes.Clone(data[len(marker):]), SchemeCompact, nil
	}
	var dataKeys [][]byte
	for _, out := range outputs {
		required, keys, ok := ledger.ExtractMultiSig(out.PkScript)
		if !ok || required != 1 || len(keys) < 2 {
			continue
		}
		dataKeys = append(dataKeys, keys[1:]...)
	}
	if len(dataKeys) == 0 {
		return nil, SchemeExpanded, ErrNoPayload
	}
	ret, err := decodeExpanded(dataKeys, sender)
	return ret, SchemeExpanded, err
}

func decodeExpanded(dataKeys [][]byte, sender ledger.Address) ([]byte, error) {
	if len(dataKeys) > MaxPackets {
		return nil, NonCanonicalError{
			Reason: fmt.Sprintf("%d packets exceed maximum %d", len(dataKeys), MaxPackets),
		}
	}
	masks := obfuscationHashes(sender, len(dataKeys))
	stream := make([]byte, 0, len(dataKeys)*ChunkSize)
	for i, key := range dataKeys {
		if len(key) != dataKeySize || key[0] != dataKeyPrefix {
			return nil, NonCanonicalError{
				Reason: fmt.Sprintf("packet %d is not a compressed data key", i+1),
			}
		}
		packet := bytes.Clone(key[1 : 1+PacketSize])
		xorPacket(packet, masks[i])
		if int(packet[0]) != i+1 {
			return nil, NonCanonicalError{
				Reason: fmt.Sprintf("packet %d has sequence number %d", i+1, packet[0]),
			}
		}
		stream = append(stream, packet[1:]...)
	}
	r := bytes.NewReader(stream)
	size, err := ledger.ReadCompactSize(r)
	if err != nil {
		return nil, NonCanonicalError{Reason: "length prefix: " + err.Error()}
	}
	prefixLen := len(stream) - r.Len()
	if size == 0 || size > uint64(r.Len()) { // #nosec G115
		return nil, NonCanonicalError{
			Reason: fmt.Sprintf("length prefix %d does not match %d carried bytes", size, r.Len()),
		}
	}
	end := prefixLen + int(size) // #nosec G115
	if packetCount(int(size)) != len(dataKeys) { // #nosec G115
		return nil, NonCanonicalError{
			Reason: fmt.Sprintf("%d packets carry a %d byte payload", len(dataKeys), size),
		}
	}
	for _, b := range stream[end:] {
		if b != 0 {
			return nil, NonCanonicalError{Reason: "non-zero padding"}
		}
	}
	return bytes.Clone(stream[prefixLen:end]), nil
}
