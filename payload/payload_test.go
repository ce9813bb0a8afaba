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


package payload_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/blinklabs-io/gotokencore/ledger"
	"github.com/blinklabs-io/gotokencore/payload"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testKeys map[ledger.Address][]byte

func (k testKeys) PubKey(addr ledger.Address) ([]byte, error) {
	key, ok := k[addr]
	if !ok {
		return nil, errors.New("unknown address")
	}
	return key, nil
}

func newTestKey(seed byte) ([]byte, ledger.Address) {
	_, pub := btcec.PrivKeyFromBytes(bytes.Repeat([]byte{seed}, 32))
	pubKey := pub.SerializeCompressed()
	return pubKey, ledger.NewAddressFromPubKey(pubKey, ledger.NetworkRegtest)
}

func testPayload(size int) []byte {
	ret := make([]byte, size)
	for i := range ret {
		ret[i] = byte(i*7 + 3)
	}
	return ret
}

func TestChooseScheme(t *testing.T) {
	testDefs := []struct {
		size     int
		force    bool
		expected payload.Scheme
	}{
		{1, false, payload.SchemeCompact},
		{76, false, payload.SchemeCompact},
		{77, false, payload.SchemeExpanded},
		{1, true, payload.SchemeExpanded},
		{76, true, payload.SchemeExpanded},
	}
	for _, testDef := range testDefs {
		assert.Equal(
			t,
			testDef.expected,
			payload.ChooseScheme(testDef.size, 76, testDef.force),
			"size %d force %v",
			testDef.size,
			testDef.force,
		)
	}
}

func TestDefaultCompactCapacity(t *testing.T) {
	enc := payload.NewEncoder(nil)
	assert.Equal(t, 76, enc.CompactCapacity())
	enc = payload.NewEncoder(
		nil,
		payload.WithEncoderDataCarrierSize(40),
		payload.WithEncoderMarker([]byte("ab")),
	)
	assert.Equal(t, 38, enc.CompactCapacity())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	senderKey, sender := newTestKey(0x11)
	enc := payload.NewEncoder(testKeys{sender: senderKey})
	capacity := enc.CompactCapacity()
	testDefs := []struct {
		size   int
		force  bool
		scheme payload.Scheme
	}{
		{1, false, payload.SchemeCompact},
		{capacity - 1, false, payload.SchemeCompact},
		{capacity, false, payload.SchemeCompact},
		{capacity + 1, false, payload.SchemeExpanded},
		{252, false, payload.SchemeExpanded},
		{253, false, payload.SchemeExpanded},
		{1000, false, payload.SchemeExpanded},
		{1, true, payload.SchemeExpanded},
		{capacity, true, payload.SchemeExpanded},
	}
	for _, testDef := range testDefs {
		t.Run(fmt.Sprintf("%d-%s", testDef.size, testDef.scheme), func(t *testing.T) {
			data := testPayload(testDef.size)
			encoding, err := enc.Encode(payload.Request{
				Payload:       data,
				Sender:        sender,
				ForceExpanded: testDef.force,
			})
			require.NoError(t, err)
			assert.Equal(t, testDef.scheme, encoding.Scheme)
			assert.Equal(t, len(encoding.Outputs), encoding.PayloadOutputs)
			assert.False(t, encoding.HasRecipient())
			decoded, scheme, err := payload.Decode(encoding.Outputs, sender)
			require.NoError(t, err)
			assert.Equal(t, testDef.scheme, scheme)
			assert.Equal(t, data, decoded)
		})
	}
}

func TestCompactOutput(t *testing.T) {
	senderKey, sender := newTestKey(0x11)
	enc := payload.NewEncoder(testKeys{sender: senderKey})
	encoding, err := enc.Encode(payload.Request{
		Payload: []byte{0x00, 0x00, 0x00, 0x00},
		Sender:  sender,
	})
	require.NoError(t, err)
	require.Len(t, encoding.Outputs, 1)
	out := encoding.Outputs[0]
	assert.Equal(t, ledger.Amount(0), out.Value)
	assert.Equal(t, ledger.ScriptNullData, ledger.ClassifyScript(out.PkScript))
	data, ok := ledger.ExtractNullData(out.PkScript)
	require.True(t, ok)
	assert.Equal(t, []byte("tokn\x00\x00\x00\x00"), data)
}

func TestExpandedRecipientIsLast(t *testing.T) {
	senderKey, sender := newTestKey(0x11)
	_, recipient := newTestKey(0x22)
	enc := payload.NewEncoder(testKeys{sender: senderKey})
	data := testPayload(enc.CompactCapacity() + 1)
	encoding, err := enc.Encode(payload.Request{
		Payload:   data,
		Sender:    sender,
		Recipient: &recipient,
	})
	require.NoError(t, err)
	assert.Equal(t, payload.SchemeExpanded, encoding.Scheme)
	require.GreaterOrEqual(t, len(encoding.Outputs), 2)
	assert.True(t, encoding.HasRecipient())
	assert.Equal(t, len(encoding.Outputs)-1, encoding.PayloadOutputs)
	last := encoding.Outputs[len(encoding.Outputs)-1]
	assert.Equal(t, recipient.PkScript(), last.PkScript)
	assert.Equal(t, ledger.Amount(546), last.Value)
	for _, out := range encoding.Outputs[:encoding.PayloadOutputs] {
		assert.Equal(t, ledger.ScriptMultiSig, ledger.ClassifyScript(out.PkScript))
		assert.False(t, ledger.IsDust(out, ledger.DefaultRelayFeeRate))
		_, keys, ok := ledger.ExtractMultiSig(out.PkScript)
		require.True(t, ok)
		assert.Equal(t, senderKey, keys[0])
		assert.LessOrEqual(t, len(keys)-1, payload.MaxDataKeysPerOutput)
	}
	decoded, _, err := payload.Decode(encoding.Outputs, sender)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestReferenceAmount(t *testing.T) {
	senderKey, sender := newTestKey(0x11)
	_, recipient := newTestKey(0x22)
	enc := payload.NewEncoder(testKeys{sender: senderKey})
	encoding, err := enc.Encode(payload.Request{
		Payload:         []byte("hello"),
		Sender:          sender,
		Recipient:       &recipient,
		ReferenceAmount: 12345,
	})
	require.NoError(t, err)
	require.Len(t, encoding.Outputs, 2)
	assert.Equal(t, ledger.Amount(12345), encoding.Outputs[1].Value)
}

func TestRedemptionKeyFirst(t *testing.T) {
	senderKey, sender := newTestKey(0x11)
	redeemKey, redeem := newTestKey(0x33)
	enc := payload.NewEncoder(testKeys{sender: senderKey, redeem: redeemKey})
	encoding, err := enc.Encode(payload.Request{
		Payload:       testPayload(100),
		Sender:        sender,
		Redemption:    &redeem,
		ForceExpanded: true,
	})
	require.NoError(t, err)
	for _, out := range encoding.Outputs {
		_, keys, ok := ledger.ExtractMultiSig(out.PkScript)
		require.True(t, ok)
		assert.Equal(t, redeemKey, keys[0])
	}
	// The hash chain is seeded by the sender, not the redemption address
	decoded, _, err := payload.Decode(encoding.Outputs, sender)
	require.NoError(t, err)
	assert.Equal(t, testPayload(100), decoded)
}

func TestUnresolvableKey(t *testing.T) {
	_, sender := newTestKey(0x11)
	enc := payload.NewEncoder(testKeys{})
	_, err := enc.Encode(payload.Request{
		Payload:       testPayload(10),
		Sender:        sender,
		ForceExpanded: true,
	})
	var encErr payload.EncodingError
	require.ErrorAs(t, err, &encErr)
	// The compact scheme needs no key
	_, err = enc.Encode(payload.Request{
		Payload: testPayload(10),
		Sender:  sender,
	})
	assert.NoError(t, err)
}

func TestInvalidRedemptionKey(t *testing.T) {
	_, sender := newTestKey(0x11)
	enc := payload.NewEncoder(testKeys{sender: bytes.Repeat([]byte{0x05}, 33)})
	_, err := enc.Encode(payload.Request{
		Payload:       testPayload(10),
		Sender:        sender,
		ForceExpanded: true,
	})
	assert.ErrorAs(t, err, &payload.EncodingError{})
}

func TestEmptyPayload(t *testing.T) {
	_, sender := newTestKey(0x11)
	_, err := payload.NewEncoder(nil).Encode(payload.Request{Sender: sender})
	assert.ErrorIs(t, err, payload.ErrEmptyPayload)
}

func TestPacketLimit(t *testing.T) {
	senderKey, sender := newTestKey(0x11)
	enc := payload.NewEncoder(testKeys{sender: senderKey})
	// Three bytes of length prefix leave room for this much payload in 255 packets
	largest := payload.MaxPackets*payload.ChunkSize - 3
	encoding, err := enc.Encode(payload.Request{
		Payload: testPayload(largest),
		Sender:  sender,
	})
	require.NoError(t, err)
	assert.Len(t, encoding.Outputs, (payload.MaxPackets+1)/2)
	_, err = enc.Encode(payload.Request{
		Payload: testPayload(largest + 1),
		Sender:  sender,
	})
	assert.ErrorAs(t, err, &payload.EncodingError{})
}

func TestDecodeRejectsReorderedOutputs(t *testing.T) {
	senderKey, sender := newTestKey(0x11)
	enc := payload.NewEncoder(testKeys{sender: senderKey})
	encoding, err := enc.Encode(payload.Request{
		Payload: testPayload(200),
		Sender:  sender,
	})
	require.NoError(t, err)
	require.Greater(t, len(encoding.Outputs), 2)
	outputs := append([]ledger.TxOut{}, encoding.Outputs...)
	outputs[0], outputs[1] = outputs[1], outputs[0]
	_, _, err = payload.Decode(outputs, sender)
	assert.ErrorAs(t, err, &payload.NonCanonicalError{})
	// Dropping the final packet breaks the length prefix
	_, _, err = payload.Decode(encoding.Outputs[:len(encoding.Outputs)-1], sender)
	assert.ErrorAs(t, err, &payload.NonCanonicalError{})
}

func TestDecodeNothingEmbedded(t *testing.T) {
	_, sender := newTestKey(0x11)
	_, _, err := payload.Decode(nil, sender)
	assert.ErrorIs(t, err, payload.ErrNoPayload)
	_, _, err = payload.Decode(
		[]ledger.TxOut{ledger.NewTxOut(0, ledger.NullDataScript([]byte("tokn")))},
		sender,
	)
	assert.ErrorIs(t, err, payload.ErrNoPayload)
	_, _, err = payload.Decode(
		[]ledger.TxOut{ledger.NewTxOut(546, sender.PkScript())},
		sender,
	)
	assert.ErrorIs(t, err, payload.ErrNoPayload)
}
