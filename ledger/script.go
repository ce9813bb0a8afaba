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
	"encoding/binary"
	"fmt"
)

// Opcodes used by the standard script templates
const (
	OP_0             byte = 0x00
	OP_PUSHDATA1     byte = 0x4c
	OP_PUSHDATA2     byte = 0x4d
	OP_PUSHDATA4     byte = 0x4e
	OP_1             byte = 0x51
	OP_16            byte = 0x60
	OP_RETURN        byte = 0x6a
	OP_DUP           byte = 0x76
	OP_EQUAL         byte = 0x87
	OP_EQUALVERIFY   byte = 0x88
	OP_HASH160       byte = 0xa9
	OP_CHECKSIG      byte = 0xac
	OP_CHECKMULTISIG byte = 0xae
)

const (
	Hash160Size = 20

	// MaxMultiSigKeys is the largest key count expressible with a small integer opcode
	MaxMultiSigKeys = 16
)

type ScriptClass uint8

const (
	ScriptNonStandard ScriptClass = iota
	ScriptPubKeyHash
	ScriptScriptHash
	ScriptWitnessPubKeyHash
	ScriptMultiSig
	ScriptNullData
)

func (c ScriptClass) String() string {
	switch c {
	case ScriptPubKeyHash:
		return "pubkeyhash"
	case ScriptScriptHash:
		return "scripthash"
	case ScriptWitnessPubKeyHash:
		return "witness_v0_keyhash"
	case ScriptMultiSig:
		return "multisig"
	case ScriptNullData:
		return "nulldata"
	default:
		return "nonstandard"
	}
}

type scriptOp struct {
	opcode byte
	data   []byte
}

// AppendPushData appends the minimal push of data to script
func AppendPushData(script []byte, data []byte) []byte {
	size := len(data)
	switch {
	case size == 0:
		return append(script, OP_0)
	case size < int(OP_PUSHDATA1):
		script = append(script, byte(size))
	case size <= 0xff:
		script = append(script, OP_PUSHDATA1, byte(size))
	case size <= 0xffff:
		script = append(script, OP_PUSHDATA2)
		script = binary.LittleEndian.AppendUint16(script, uint16(size))
	default:
		script = append(script, OP_PUSHDATA4)
		script = binary.LittleEndian.AppendUint32(script, uint32(size)) // #nosec G115
	}
	return append(script, data...)
}

func parseScript(script []byte) ([]scriptOp, error) {
	var ret []scriptOp
	for i := 0; i < len(script); {
		op := scriptOp{opcode: script[i]}
		i++
		var size int
		switch {
		case op.opcode > OP_0 && op.opcode < OP_PUSHDATA1:
			size = int(op.opcode)
		case op.opcode == OP_PUSHDATA1:
			if i+1 > len(script) {
				return nil, ErrScriptTruncated
			}
			size = int(script[i])
			i++
		case op.opcode == OP_PUSHDATA2:
			if i+2 > len(script) {
				return nil, ErrScriptTruncated
			}
			size = int(binary.LittleEndian.Uint16(script[i:]))
			i += 2
		case op.opcode == OP_PUSHDATA4:
			if i+4 > len(script) {
				return nil, ErrScriptTruncated
			}
			size = int(binary.LittleEndian.Uint32(script[i:]))
			i += 4
		}
		if size > 0 {
			if size > len(script)-i {
				return nil, ErrScriptTruncated
			}
			op.data = script[i : i+size]
			i += size
		}
		ret = append(ret, op)
	}
	return ret, nil
}

func isPush(op scriptOp) bool {
	return op.opcode <= OP_PUSHDATA4
}

func smallInt(op byte) (int, bool) {
	if op == OP_0 {
		return 0, true
	}
	if op >= OP_1 && op <= OP_16 {
		return int(op-OP_1) + 1, true
	}
	return 0, false
}

func smallIntOp(n int) byte {
	if n == 0 {
		return OP_0
	}
	return OP_1 + byte(n-1) // #nosec G115
}

// PayToPubKeyHashScript builds OP_DUP OP_HASH160 <hash> OP_EQUALVERIFY OP_CHECKSIG
func PayToPubKeyHashScript(hash [Hash160Size]byte) []byte {
	ret := make([]byte, 0, 25)
	ret = append(ret, OP_DUP, OP_HASH160)
	ret = AppendPushData(ret, hash[:])
	return append(ret, OP_EQUALVERIFY, OP_CHECKSIG)
}

// PayToScriptHashScript builds OP_HASH160 <hash> OP_EQUAL
func PayToScriptHashScript(hash [Hash160Size]byte) []byte {
	ret := make([]byte, 0, 23)
	ret = append(ret, OP_HASH160)
	ret = AppendPushData(ret, hash[:])
	return append(ret, OP_EQUAL)
}

// PayToWitnessPubKeyHashScript builds OP_0 <hash>
func PayToWitnessPubKeyHashScript(hash [Hash160Size]byte) []byte {
	return AppendPushData([]byte{OP_0}, hash[:])
}

// NullDataScript builds a provably unspendable OP_RETURN output carrying data
func NullDataScript(data []byte) []byte {
	return AppendPushData([]byte{OP_RETURN}, data)
}

// MultiSigScript builds a bare m-of-n multisig script
func MultiSigScript(required int, pubKeys [][]byte) ([]byte, error) {
	if len(pubKeys) == 0 || len(pubKeys) > MaxMultiSigKeys {
		return nil, fmt.Errorf("multisig key count %d out of range", len(pubKeys))
	}
	if required < 1 || required > len(pubKeys) {
		return nil, fmt.Errorf(
			"multisig requires %d of %d keys",
			required,
			len(pubKeys),
		)
	}
	ret := []byte{smallIntOp(required)}
	for _, key := range pubKeys {
		ret = AppendPushData(ret, key)
	}
	return append(ret, smallIntOp(len(pubKeys)), OP_CHECKMULTISIG), nil
}

// ExtractPubKeyHash returns the key hash of a pay-to-pubkey-hash script
func ExtractPubKeyHash(script []byte) ([Hash160Size]byte, bool) {
	var ret [Hash160Size]byte
	if len(script) != 25 ||
		script[0] != OP_DUP ||
		script[1] != OP_HASH160 ||
		script[2] != Hash160Size ||
		script[23] != OP_EQUALVERIFY ||
		script[24] != OP_CHECKSIG {
		return ret, false
	}
	copy(ret[:], script[3:23])
	return ret, true
}

func extractScriptHash(script []byte) ([Hash160Size]byte, bool) {
	var ret [Hash160Size]byte
	if len(script) != 23 ||
		script[0] != OP_HASH160 ||
		script[1] != Hash160Size ||
		script[22] != OP_EQUAL {
		return ret, false
	}
	copy(ret[:], script[2:22])
	return ret, true
}

func extractWitnessPubKeyHash(script []byte) ([Hash160Size]byte, bool) {
	var ret [Hash160Size]byte
	if len(script) != 22 || script[0] != OP_0 || script[1] != Hash160Size {
		return ret, false
	}
	copy(ret[:], script[2:])
	return ret, true
}

// ExtractNullData returns the concatenated pushes following OP_RETURN
func ExtractNullData(script []byte) ([]byte, bool) {
	if len(script) == 0 || script[0] != OP_RETURN {
		return nil, false
	}
	ops, err := parseScript(script[1:])
	if err != nil {
		return nil, false
	}
	var ret []byte
	for _, op := range ops {
		if !isPush(op) {
			return nil, false
		}
		ret = append(ret, op.data...)
	}
	return ret, true
}

// ExtractMultiSig returns the required signature count and the keys of a bare multisig script
func ExtractMultiSig(script []byte) (int, [][]byte, bool) {
	ops, err := parseScript(script)
	if err != nil || len(ops) < 4 {
		return 0, nil, false
	}
	last := len(ops) - 1
	if ops[last].opcode != OP_CHECKMULTISIG {
		return 0, nil, false
	}
	required, ok := smallInt(ops[0].opcode)
	if !ok || required == 0 {
		return 0, nil, false
	}
	total, ok := smallInt(ops[last-1].opcode)
	if !ok || total != last-2 || required > total {
		return 0, nil, false
	}
	keys := make([][]byte, 0, total)
	for _, op := range ops[1 : last-1] {
		if op.opcode != 33 && op.opcode != 65 {
			return 0, nil, false
		}
		keys = append(keys, op.data)
	}
	return required, keys, true
}

// ClassifyScript matches a script against the standard templates
func ClassifyScript(script []byte) ScriptClass {
	if _, ok := ExtractPubKeyHash(script); ok {
		return ScriptPubKeyHash
	}
	if _, ok := extractScriptHash(script); ok {
		return ScriptScriptHash
	}
	if _, ok := extractWitnessPubKeyHash(script); ok {
		return ScriptWitnessPubKeyHash
	}
	if _, ok := ExtractNullData(script); ok {
		return ScriptNullData
	}
	if _, _, ok := ExtractMultiSig(script); ok {
		return ScriptMultiSig
	}
	return ScriptNonStandard
}

// IsUnspendable reports whether an output with this script can never be spent
func IsUnspendable(script []byte) bool {
	return len(script) > 0 && script[0] == OP_RETURN
}
