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
	"testing"

	"github.com/blinklabs-io/gotokencore/ledger"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// embedStream packs an arbitrary stream the way encodeExpanded does, without
// validating that it is a well-formed length-prefixed payload
func embedStream(t *testing.T, stream []byte, sender ledger.Address) []ledger.TxOut {
	t.Helper()
	_, pub := btcec.PrivKeyFromBytes(bytes.Repeat([]byte{0x44}, 32))
	redeemKey := pub.SerializeCompressed()
	count := (len(stream) + ChunkSize - 1) / ChunkSize
	masks := obfuscationHashes(sender, count)
	var ret []ledger.TxOut
	for i := range count {
		packet := make([]byte, PacketSize)
		packet[0] = byte(i + 1)
		copy(packet[1:], stream[i*ChunkSize:min((i+1)*ChunkSize, len(stream))])
		xorPacket(packet, masks[i])
		key, err := packetToKey(packet)
		require.NoError(t, err)
		script, err := ledger.MultiSigScript(1, [][]byte{redeemKey, key})
		require.NoError(t, err)
		ret = append(ret, ledger.NewTxOut(1000, script))
	}
	return ret
}

func testSender() ledger.Address {
	_, pub := btcec.PrivKeyFromBytes(bytes.Repeat([]byte{0x55}, 32))
	return ledger.NewAddressFromPubKey(pub.SerializeCompressed(), ledger.NetworkTestnet)
}

func TestDecodeCanonicalStream(t *testing.T) {
	sender := testSender()
	outputs := embedStream(t, []byte{5, 1, 2, 3, 4, 5}, sender)
	data, scheme, err := Decode(outputs, sender)
	require.NoError(t, err)
	assert.Equal(t, SchemeExpanded, scheme)
	assert.Equal(t, []byte{1, 2, 3, 4, 5}, data)
}

func TestDecodeNonCanonicalStreams(t *testing.T) {
	testDefs := []struct {
		name   string
		stream []byte
	}{
		{"non-zero padding", []byte{5, 1, 2, 3, 4, 5, 0xff}},
		{"non-minimal length prefix", []byte{0xfd, 0x05, 0x00, 1, 2, 3, 4, 5}},
		{"length beyond stream", []byte{50, 1, 2, 3}},
		{"zero length", []byte{0}},
		{"surplus packet", append([]byte{5, 1, 2, 3, 4, 5}, make([]byte, ChunkSize)...)},
	}
	sender := testSender()
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			_, _, err := Decode(embedStream(t, testDef.stream, sender), sender)
			assert.ErrorAs(t, err, &NonCanonicalError{})
		})
	}
}

func TestObfuscationHashChain(t *testing.T) {
	sender := testSender()
	hashes := obfuscationHashes(sender, 3)
	require.Len(t, hashes, 3)
	assert.NotEqual(t, hashes[0], hashes[1])
	assert.NotEqual(t, hashes[1], hashes[2])
	// The chain is a pure function of the sender
	assert.Equal(t, hashes, obfuscationHashes(sender, 3))
	assert.Equal(t, hashes[:2], obfuscationHashes(sender, 2))
	assert.Empty(t, obfuscationHashes(sender, 0))
}

func TestPacketToKeyIsValidPoint(t *testing.T) {
	for seed := range 32 {
		packet := bytes.Repeat([]byte{byte(seed)}, PacketSize)
		key, err := packetToKey(packet)
		require.NoError(t, err)
		assert.Len(t, key, dataKeySize)
		assert.Equal(t, byte(dataKeyPrefix), key[0])
		assert.Equal(t, packet, key[1:1+PacketSize])
		_, err = btcec.ParsePubKey(key)
		assert.NoError(t, err)
	}
}
