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
	"github.com/btcsuite/btcd/btcec/v2"
)

// KeyResolver resolves a wallet address to its serialized public key
type KeyResolver interface {
	PubKey(ledger.Address) ([]byte, error)
}

// Request describes a payload to embed
type Request struct {
	Payload []byte
	Sender  ledger.Address
	// Redemption optionally names the address whose key redeems the expanded
	// scheme outputs. The sender key is used when nil.
	Redemption *ledger.Address
	// Recipient optionally adds a final value output
	Recipient *ledger.Address
	// ReferenceAmount is the recipient output value. Zero means the dust threshold.
	ReferenceAmount ledger.Amount
	ForceExpanded   bool
}

// Encoding is the ordered output list produced for a payload. The first
// PayloadOutputs entries carry the payload and any recipient output follows them.
type Encoding struct {
	Scheme         Scheme
	Outputs        []ledger.TxOut
	PayloadOutputs int
}

// HasRecipient reports whether the encoding ends with a recipient value output
func (e Encoding) HasRecipient() bool {
	return len(e.Outputs) > e.PayloadOutputs
}

type Encoder struct {
	keys            KeyResolver
	marker          []byte
	dataCarrierSize int
	relayFeeRate    ledger.FeeRate
}

type EncoderOptionFunc func(*Encoder)

// NewEncoder returns an Encoder resolving redemption keys with keys
func NewEncoder(keys KeyResolver, opts ...EncoderOptionFunc) *Encoder {
	e := &Encoder{
		keys:            keys,
		marker:          []byte(DefaultMarker),
		dataCarrierSize: DefaultDataCarrierSize,
		relayFeeRate:    ledger.DefaultRelayFeeRate,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithEncoderMarker sets the marker prefixed to compact embeddings
func WithEncoderMarker(marker []byte) EncoderOptionFunc {
	return func(e *Encoder) {
		e.marker = bytes.Clone(marker)
	}
}

// WithEncoderDataCarrierSize sets the largest OP_RETURN push
func WithEncoderDataCarrierSize(size int) EncoderOptionFunc {
	return func(e *Encoder) {
		e.dataCarrierSize = size
	}
}

// WithEncoderRelayFeeRate sets the fee rate used for output dust thresholds
func WithEncoderRelayFeeRate(rate ledger.FeeRate) EncoderOptionFunc {
	return func(e *Encoder) {
		e.relayFeeRate = rate
	}
}

// CompactCapacity returns the largest payload embedded with the compact scheme
func (e *Encoder) CompactCapacity() int {
	return max(e.dataCarrierSize-len(e.marker), 0)
}

func (e *Encoder) Marker() []byte {
	return bytes.Clone(e.marker)
}

// Encode embeds the request payload into an ordered output list
func (e *Encoder) Encode(req Request) (Encoding, error) {
	if len(req.Payload) == 0 {
		return Encoding{}, EncodingError{Reason: "nothing to embed", Cause: ErrEmptyPayload}
	}
	if !req.Sender.IsValid() {
		return Encoding{}, EncodingError{Reason: "sender", Cause: ErrInvalidAddress}
	}
	ret := Encoding{
		Scheme: ChooseScheme(len(req.Payload), e.CompactCapacity(), req.ForceExpanded),
	}
	var err error
	switch ret.Scheme {
	case SchemeCompact:
		ret.Outputs = e.encodeCompact(req.Payload)
	case SchemeExpanded:
		ret.Outputs, err = e.encodeExpanded(req)
		if err != nil {
			return Encoding{}, err
		}
	}
	ret.PayloadOutputs = len(ret.Outputs)
	if req.Recipient != nil {
		if !req.Recipient.IsValid() {
			return Encoding{}, EncodingError{Reason: "recipient", Cause: ErrInvalidAddress}
		}
		pkScript := req.Recipient.PkScript()
		value := req.ReferenceAmount
		if value == 0 {
			value = ledger.DustThreshold(pkScript, e.relayFeeRate)
		}
		ret.Outputs = append(ret.Outputs, ledger.NewTxOut(value, pkScript))
	}
	return ret, nil
}

func (e *Encoder) encodeCompact(payload []byte) []ledger.TxOut {
	data := make([]byte, 0, len(e.marker)+len(payload))
	data = append(data, e.marker...)
	data = append(data, payload...)
	return []ledger.TxOut{ledger.NewTxOut(0, ledger.NullDataScript(data))}
}

func (e *Encoder) encodeExpanded(req Request) ([]ledger.TxOut, error) {
	count := packetCount(len(req.Payload))
	if count > MaxPackets {
		return nil, EncodingError{
			Reason: fmt.Sprintf(
				"payload of %d bytes needs %d packets, at most %d allowed",
				len(req.Payload),
				count,
				MaxPackets,
			),
		}
	}
	redeemKey, err := e.redemptionKey(req)
	if err != nil {
		return nil, err
	}
	stream := ledger.AppendCompactSize(nil, uint64(len(req.Payload)))
	stream = append(stream, req.Payload...)
	masks := obfuscationHashes(req.Sender, count)
	dataKeys := make([][]byte, 0, count)
	for i := range count {
		packet := make([]byte, PacketSize)
		packet[0] = byte(i + 1) // #nosec G115
		start := i * ChunkSize
		copy(packet[1:], stream[start:min(start+ChunkSize, len(stream))])
		xorPacket(packet, masks[i])
		key, err := packetToKey(packet)
		if err != nil {
			return nil, EncodingError{
				Reason: fmt.Sprintf("packet %d", i+1),
				Cause:  err,
			}
		}
		dataKeys = append(dataKeys, key)
	}
	ret := make([]ledger.TxOut, 0, (count+MaxDataKeysPerOutput-1)/MaxDataKeysPerOutput)
	for start := 0; start < len(dataKeys); start += MaxDataKeysPerOutput {
		keys := [][]byte{redeemKey}
		keys = append(keys, dataKeys[start:min(start+MaxDataKeysPerOutput, len(dataKeys))]...)
		script, err := ledger.MultiSigScript(1, keys)
		if err != nil {
			return nil, EncodingError{Reason: "multisig output", Cause: err}
		}
		ret = append(
			ret,
			ledger.NewTxOut(ledger.DustThreshold(script, e.relayFeeRate), script),
		)
	}
	return ret, nil
}

func (e *Encoder) redemptionKey(req Request) ([]byte, error) {
	addr := req.Sender
	if req.Redemption != nil {
		addr = *req.Redemption
	}
	if e.keys == nil {
		return nil, EncodingError{Reason: "no key resolver configured"}
	}
	key, err := e.keys.PubKey(addr)
	if err != nil {
		return nil, EncodingError{
			Reason: "cannot resolve redemption key for " + addr.String(),
			Cause:  err,
		}
	}
	if _, err := btcec.ParsePubKey(key); err != nil {
		return nil, EncodingError{
			Reason: "redemption key for " + addr.String() + " is not a valid public key",
			Cause:  err,
		}
	}
	return key, nil
}

// packetToKey turns an obfuscated packet into a compressed public key by
// appending the smallest nonce byte that yields a point on the curve
func packetToKey(packet []byte) ([]byte, error) {
	key := make([]byte, dataKeySize)
	key[0] = dataKeyPrefix
	copy(key[1:], packet)
	for nonce := range 256 {
		key[dataKeySize-1] = byte(nonce)
		if _, err := btcec.ParsePubKey(key); err == nil {
			return key, nil
		}
	}
	return nil, ErrNoCurvePoint
}
