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

package ledger

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const (
	// TxVersion is the transaction version used for newly built transactions
	TxVersion int32 = 2

	// SequenceFinal disables relative lock-time and replacement signalling
	SequenceFinal uint32 = 0xffffffff

	// MaxScriptSize bounds scripts read from the wire
	MaxScriptSize = 10000

	outPointSize = chainhash.HashSize + 4
	// Smallest possible serialized input: outpoint, empty script, sequence
	minTxInSize = outPointSize + 1 + 4
	// Smallest possible serialized output: value, empty script
	minTxOutSize = 8 + 1
)

// OutPoint references a specific output of a prior transaction
type OutPoint struct {
	Hash  chainhash.Hash
	Index uint32
}

func NewOutPoint(hash chainhash.Hash, index uint32) OutPoint {
	return OutPoint{Hash: hash, Index: index}
}

func (o OutPoint) String() string {
	return fmt.Sprintf("%s:%d", o.Hash.String(), o.Index)
}

// Bytes returns the wire form of the outpoint, which also serves as a stable key
func (o OutPoint) Bytes() []byte {
	ret := make([]byte, 0, outPointSize)
	ret = append(ret, o.Hash[:]...)
	return binary.LittleEndian.AppendUint32(ret, o.Index)
}

// OutPointFromBytes is the inverse of OutPoint.Bytes
func OutPointFromBytes(data []byte) (OutPoint, error) {
	if len(data) != outPointSize {
		return OutPoint{}, fmt.Errorf(
			"outpoint must be %d bytes, got %d",
			outPointSize,
			len(data),
		)
	}
	var ret OutPoint
	copy(ret.Hash[:], data[:chainhash.HashSize])
	ret.Index = binary.LittleEndian.Uint32(data[chainhash.HashSize:])
	return ret, nil
}

// Compare orders outpoints by hash bytes and then by index
func (o OutPoint) Compare(other OutPoint) int {
	if c := bytes.Compare(o.Hash[:], other.Hash[:]); c != 0 {
		return c
	}
	switch {
	case o.Index < other.Index:
		return -1
	case o.Index > other.Index:
		return 1
	}
	return 0
}

type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  []byte
	Sequence         uint32
}

type TxOut struct {
	Value    Amount
	PkScript []byte
}

func NewTxOut(value Amount, pkScript []byte) TxOut {
	return TxOut{Value: value, PkScript: pkScript}
}

func (o TxOut) serializeSize() int {
	return 8 + CompactSizeLen(uint64(len(o.PkScript))) + len(o.PkScript)
}

func (o TxOut) String() string {
	return fmt.Sprintf("%s -> %x", o.Value.String(), o.PkScript)
}

// Transaction is a base-ledger transaction without witness data
type Transaction struct {
	Version  int32
	Inputs   []TxIn
	Outputs  []TxOut
	LockTime uint32
}

func NewTransaction() *Transaction {
	return &Transaction{Version: TxVersion}
}

// AddInput appends an unsigned input spending the given outpoint
func (t *Transaction) AddInput(prevOut OutPoint) {
	t.Inputs = append(
		t.Inputs,
		TxIn{
			PreviousOutPoint: prevOut,
			Sequence:         SequenceFinal,
		},
	)
}

func (t *Transaction) AddOutput(out TxOut) {
	t.Outputs = append(t.Outputs, out)
}

// Copy returns a deep copy of the transaction
func (t *Transaction) Copy() *Transaction {
	ret := &Transaction{
		Version:  t.Version,
		LockTime: t.LockTime,
		Inputs:   make([]TxIn, len(t.Inputs)),
		Outputs:  make([]TxOut, len(t.Outputs)),
	}
	for idx, in := range t.Inputs {
		ret.Inputs[idx] = TxIn{
			PreviousOutPoint: in.PreviousOutPoint,
			SignatureScript:  bytes.Clone(in.SignatureScript),
			Sequence:         in.Sequence,
		}
	}
	for idx, out := range t.Outputs {
		ret.Outputs[idx] = TxOut{
			Value:    out.Value,
			PkScript: bytes.Clone(out.PkScript),
		}
	}
	return ret
}

// TotalOut returns the sum of all output values
func (t *Transaction) TotalOut() Amount {
	var total Amount
	for _, out := range t.Outputs {
		total += out.Value
	}
	return total
}

func (t *Transaction) SerializeSize() int {
	size := 4 + 4
	size += CompactSizeLen(uint64(len(t.Inputs)))
	for _, in := range t.Inputs {
		size += outPointSize + 4
		size += CompactSizeLen(uint64(len(in.SignatureScript))) + len(in.SignatureScript)
	}
	size += CompactSizeLen(uint64(len(t.Outputs)))
	for _, out := range t.Outputs {
		size += out.serializeSize()
	}
	return size
}

// Bytes returns the wire serialization of the transaction
func (t *Transaction) Bytes() []byte {
	ret := make([]byte, 0, t.SerializeSize())
	ret = binary.LittleEndian.AppendUint32(ret, uint32(t.Version)) // #nosec G115
	ret = AppendCompactSize(ret, uint64(len(t.Inputs)))
	for _, in := range t.Inputs {
		ret = append(ret, in.PreviousOutPoint.Bytes()...)
		ret = AppendCompactSize(ret, uint64(len(in.SignatureScript)))
		ret = append(ret, in.SignatureScript...)
		ret = binary.LittleEndian.AppendUint32(ret, in.Sequence)
	}
	ret = AppendCompactSize(ret, uint64(len(t.Outputs)))
	for _, out := range t.Outputs {
		ret = binary.LittleEndian.AppendUint64(ret, uint64(out.Value)) // #nosec G115
		ret = AppendCompactSize(ret, uint64(len(out.PkScript)))
		ret = append(ret, out.PkScript...)
	}
	return binary.LittleEndian.AppendUint32(ret, t.LockTime)
}

// Hex returns the hex encoded wire serialization
func (t *Transaction) Hex() string {
	return hex.EncodeToString(t.Bytes())
}

// TxHash returns the transaction id
func (t *Transaction) TxHash() chainhash.Hash {
	return chainhash.DoubleHashH(t.Bytes())
}

// NewTransactionFromBytes decodes a transaction from its wire serialization
func NewTransactionFromBytes(data []byte) (*Transaction, error) {
	r := bytes.NewReader(data)
	tx := &Transaction{}
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:4]); err != nil {
		return nil, fmt.Errorf("read version: %w", err)
	}
	tx.Version = int32(binary.LittleEndian.Uint32(buf[:4])) // #nosec G115
	inCount, err := readCount(r, "input", minTxInSize)
	if err != nil {
		return nil, err
	}
	tx.Inputs = make([]TxIn, 0, inCount)
	for range inCount {
		var in TxIn
		var prevOut [outPointSize]byte
		if _, err := io.ReadFull(r, prevOut[:]); err != nil {
			return nil, fmt.Errorf("read outpoint: %w", err)
		}
		in.PreviousOutPoint, _ = OutPointFromBytes(prevOut[:])
		if in.SignatureScript, err = readScript(r); err != nil {
			return nil, err
		}
		if _, err := io.ReadFull(r, buf[:4]); err != nil {
			return nil, fmt.Errorf("read sequence: %w", err)
		}
		in.Sequence = binary.LittleEndian.Uint32(buf[:4])
		tx.Inputs = append(tx.Inputs, in)
	}
	outCount, err := readCount(r, "output", minTxOutSize)
	if err != nil {
		return nil, err
	}
	tx.Outputs = make([]TxOut, 0, outCount)
	for range outCount {
		var out TxOut
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, fmt.Errorf("read value: %w", err)
		}
		out.Value = Amount(binary.LittleEndian.Uint64(buf[:])) // #nosec G115
		if out.PkScript, err = readScript(r); err != nil {
			return nil, err
		}
		tx.Outputs = append(tx.Outputs, out)
	}
	if _, err := io.ReadFull(r, buf[:4]); err != nil {
		return nil, fmt.Errorf("read lock time: %w", err)
	}
	tx.LockTime = binary.LittleEndian.Uint32(buf[:4])
	if r.Len() > 0 {
		return nil, ErrTrailingBytes
	}
	return tx, nil
}

// NewTransactionFromHex decodes a hex encoded transaction
func NewTransactionFromHex(data string) (*Transaction, error) {
	raw, err := hex.DecodeString(data)
	if err != nil {
		return nil, err
	}
	return NewTransactionFromBytes(raw)
}

func readCount(r *bytes.Reader, field string, minItemSize int) (uint64, error) {
	count, err := ReadCompactSize(r)
	if err != nil {
		return 0, fmt.Errorf("read %s count: %w", field, err)
	}
	// Each item needs at least minItemSize bytes, which bounds the allocation
	maxCount := uint64(r.Len() / minItemSize) // #nosec G115
	if count > maxCount {
		return 0, CountTooLargeError{Field: field, Count: count, Max: maxCount}
	}
	return count, nil
}

func readScript(r *bytes.Reader) ([]byte, error) {
	size, err := ReadCompactSize(r)
	if err != nil {
		return nil, fmt.Errorf("read script length: %w", err)
	}
	if size > MaxScriptSize {
		return nil, CountTooLargeError{Field: "script byte", Count: size, Max: MaxScriptSize}
	}
	ret := make([]byte, size)
	if _, err := io.ReadFull(r, ret); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ret, nil
}
