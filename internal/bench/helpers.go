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


// Package bench provides benchmark utilities and fixtures for the payload
// encoder, the transaction codec and the builder.
package bench

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/blinklabs-io/gotokencore/internal/test"
	test_ledger "github.com/blinklabs-io/gotokencore/internal/test/ledger"
	"github.com/blinklabs-io/gotokencore/ledger"
	"github.com/blinklabs-io/gotokencore/payload"
	"github.com/blinklabs-io/gotokencore/wallet"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// PayloadSize is a named payload length used across benchmarks
type PayloadSize struct {
	Name string
	Size int
}

// PayloadSizes returns payload lengths around the scheme boundaries
func PayloadSizes() []PayloadSize {
	return []PayloadSize{
		{"Tiny", 1},
		{"CompactMax", payload.DefaultDataCarrierSize - len(payload.DefaultMarker)},
		{"ExpandedMin", payload.DefaultDataCarrierSize - len(payload.DefaultMarker) + 1},
		{"Kilobyte", 1024},
		{"ExpandedMax", payload.MaxPackets*payload.ChunkSize - 3},
	}
}

// PayloadFixture returns a deterministic payload of the given size
func PayloadFixture(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid payload size %d", size)
	}
	ret := make([]byte, size)
	for i := range ret {
		ret[i] = byte(i*7 + 3)
	}
	return ret, nil
}

// MustPayloadFixture is like PayloadFixture but panics on error
func MustPayloadFixture(size int) []byte {
	ret, err := PayloadFixture(size)
	if err != nil {
		panic(err)
	}
	return ret
}

// TxFixture returns a signed-size transaction with the given input and output counts
func TxFixture(inputs int, outputs int) *ledger.Transaction {
	tx := ledger.NewTransaction()
	for i := range inputs {
		tx.AddInput(ledger.NewOutPoint(chainhash.HashH([]byte{byte(i)}), uint32(i))) // #nosec G115
		tx.Inputs[i].SignatureScript = make([]byte, ledger.P2PKHSignatureScriptSize)
	}
	for i := range outputs {
		var hash [ledger.Hash160Size]byte
		hash[0] = byte(i)
		tx.AddOutput(ledger.NewTxOut(ledger.Amount(1_000+i), ledger.PayToPubKeyHashScript(hash)))
	}
	return tx
}

// BenchWallet is a mock-backed wallet with funded addresses
type BenchWallet struct {
	Backend *test_ledger.MockBackend
	Ledger  *wallet.Ledger
	Keys    *wallet.KeyStore
	Addrs   []ledger.Address
}

// NewBenchWallet funds the first of count addresses with outputs of amount each
func NewBenchWallet(count int, outputs int, amount ledger.Amount) *BenchWallet {
	keys, addrs := test.NewTestKeyStore(ledger.NetworkRegtest, count)
	backend := &test_ledger.MockBackend{}
	for range outputs {
		backend.AddOutput(addrs[0], amount)
	}
	return &BenchWallet{
		Backend: backend,
		Ledger:  wallet.NewLedger(backend, wallet.WithLedgerLogger(DiscardLogger())),
		Keys:    keys,
		Addrs:   addrs,
	}
}

// DiscardLogger returns a logger that drops every record
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
