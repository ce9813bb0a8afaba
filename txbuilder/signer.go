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


package txbuilder

import (
	"bytes"
	"fmt"
	"log/slog"
	"slices"

	"github.com/blinklabs-io/gotokencore/ledger"
	"github.com/blinklabs-io/gotokencore/wallet"
	"github.com/jinzhu/copier"
)

// Signer signs every input of a pending transaction with SIGHASH_ALL
type Signer struct {
	backend wallet.Backend
	keys    wallet.KeyProvider
	logger  *slog.Logger
}

// Sign returns a signed copy of pending. Inputs whose prior output is missing
// or already spent are left unsigned and listed in Skipped.
func (s *Signer) Sign(pending *PendingTransaction) (*PendingTransaction, error) {
	ret, err := copyPending(pending)
	if err != nil {
		return nil, newError(KindSigning, "copy pending transaction", err)
	}
	ret.Skipped = nil
	for idx := range ret.Tx.Inputs {
		ref := ret.Tx.Inputs[idx].PreviousOutPoint
		prevOut, ok, err := s.backend.GetOutput(ref)
		if err != nil {
			return nil, newError(KindWalletUnavailable, "look up prior output "+ref.String(), err)
		}
		if !ok {
			s.logger.Warn(
				"skipping input with missing or spent prior output",
				"component", "txbuilder",
				"input", idx,
				"outpoint", ref.String(),
			)
			ret.Skipped = append(ret.Skipped, idx)
			continue
		}
		script, signErr := s.signInput(ret, idx, prevOut)
		if signErr != nil {
			return nil, signErr.withDetail("input", idx)
		}
		ret.Tx.Inputs[idx].SignatureScript = script
	}
	ret.Signed = true
	for idx, in := range ret.Tx.Inputs {
		if len(in.SignatureScript) == 0 && !slices.Contains(ret.Skipped, idx) {
			ret.Signed = false
		}
	}
	return ret, nil
}

func (s *Signer) signInput(
	pending *PendingTransaction,
	idx int,
	prevOut ledger.TxOut,
) ([]byte, *Error) {
	keyHash, ok := ledger.ExtractPubKeyHash(prevOut.PkScript)
	if !ok {
		return nil, newError(
			KindSigning,
			fmt.Sprintf(
				"unsupported prior output script class %s",
				ledger.ClassifyScript(prevOut.PkScript).String(),
			),
			nil,
		)
	}
	network := ledger.NetworkInvalid
	if idx < len(pending.Inputs) {
		network = pending.Inputs[idx].Address.Network()
	}
	addr := ledger.NewAddressPubKeyHash(keyHash, network)
	pubKey, err := s.keys.PubKey(addr)
	if err != nil {
		return nil, newError(KindSigning, "no key for "+addr.String(), err)
	}
	if hash := ledger.Hash160(pubKey); !bytes.Equal(hash[:], keyHash[:]) {
		return nil, newError(KindSigning, "key does not match prior output "+addr.String(), nil)
	}
	digest, err := ledger.SignatureHash(pending.Tx, idx, prevOut.PkScript, ledger.SigHashAll)
	if err != nil {
		return nil, newError(KindSigning, "signature hash", err)
	}
	sig, err := s.keys.SignDigest(addr, digest[:])
	if err != nil {
		return nil, newError(KindSigning, "sign input", err)
	}
	sig = append(sig, byte(ledger.SigHashAll))
	script := ledger.AppendPushData(nil, sig)
	return ledger.AppendPushData(script, pubKey), nil
}

// copyPending deep copies the transaction so the caller's copy is never mutated
func copyPending(pending *PendingTransaction) (*PendingTransaction, error) {
	ret := *pending
	ret.Tx = &ledger.Transaction{}
	if err := copier.CopyWithOption(ret.Tx, pending.Tx, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	ret.Inputs = slices.Clone(pending.Inputs)
	ret.Skipped = slices.Clone(pending.Skipped)
	return &ret, nil
}
