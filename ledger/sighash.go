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

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

type SigHashType uint32

const (
	SigHashAll SigHashType = 0x01

	sigHashMask SigHashType = 0x1f
)

// SignatureHash computes the legacy signature digest for input idx. Every
// other input's signature script is blanked, so the digest of one input never
// depends on signatures already placed on another.
func SignatureHash(
	tx *Transaction,
	idx int,
	prevPkScript []byte,
	hashType SigHashType,
) (chainhash.Hash, error) {
	if idx < 0 || idx >= len(tx.Inputs) {
		return chainhash.Hash{}, InputIndexError{Index: idx, Count: len(tx.Inputs)}
	}
	if hashType&sigHashMask != SigHashAll {
		return chainhash.Hash{}, ErrUnsupportedHash
	}
	txCopy := &Transaction{
		Version:  tx.Version,
		LockTime: tx.LockTime,
		Inputs:   make([]TxIn, len(tx.Inputs)),
		Outputs:  tx.Outputs,
	}
	for i, in := range tx.Inputs {
		txCopy.Inputs[i] = TxIn{
			PreviousOutPoint: in.PreviousOutPoint,
			Sequence:         in.Sequence,
		}
		if i == idx {
			txCopy.Inputs[i].SignatureScript = prevPkScript
		}
	}
	data := txCopy.Bytes()
	data = binary.LittleEndian.AppendUint32(data, uint32(hashType))
	return chainhash.DoubleHashH(data), nil
}
