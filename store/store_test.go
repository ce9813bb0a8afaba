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


package store_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/blinklabs-io/gotokencore/internal/test"
	"github.com/blinklabs-io/gotokencore/ledger"
	"github.com/blinklabs-io/gotokencore/store"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*store.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wallet", "store.db")
	s, err := store.Open(path, ledger.NetworkRegtest)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s, path
}

func testOutput(addr ledger.Address, seed byte, index uint32, amount ledger.Amount) ledger.SpendableOutput {
	return ledger.SpendableOutput{
		OutPoint: ledger.NewOutPoint(chainhash.HashH([]byte{seed}), index),
		Address:  addr,
		Amount:   amount,
		PkScript: addr.PkScript(),
	}
}

// spendTx builds a transaction with placeholder signature scripts
func spendTx(inputs []ledger.SpendableOutput, outputs ...ledger.TxOut) *ledger.Transaction {
	tx := ledger.NewTransaction()
	for _, in := range inputs {
		tx.AddInput(in.OutPoint)
		tx.Inputs[len(tx.Inputs)-1].SignatureScript = bytes.Repeat([]byte{0x01}, ledger.P2PKHSignatureScriptSize)
	}
	for _, out := range outputs {
		tx.AddOutput(out)
	}
	return tx
}

func TestOutputsListedByOwner(t *testing.T) {
	s, _ := openTestStore(t)
	_, addrs := test.NewTestKeyStore(ledger.NetworkRegtest, 2)
	a := testOutput(addrs[0], 1, 0, 50_000)
	b := testOutput(addrs[1], 2, 1, 60_000)
	c := testOutput(addrs[0], 3, 2, 70_000)
	for _, out := range []ledger.SpendableOutput{a, b, c} {
		require.NoError(t, s.AddOutput(out))
	}
	owned, err := s.ListSpendable(addrs[0])
	require.NoError(t, err)
	assert.ElementsMatch(t, []ledger.SpendableOutput{a, c}, owned)
	all, err := s.ListUnspent()
	require.NoError(t, err)
	assert.Len(t, all, 3)
	out, ok, err := s.GetOutput(b.OutPoint)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, b.TxOut(), out)
	_, ok, err = s.GetOutput(ledger.NewOutPoint(chainhash.Hash{}, 9))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSubmitRelayConfirm(t *testing.T) {
	s, _ := openTestStore(t)
	_, addrs := test.NewTestKeyStore(ledger.NetworkRegtest, 2)
	in := testOutput(addrs[0], 1, 0, 100_000)
	require.NoError(t, s.AddOutput(in))
	tx := spendTx(
		[]ledger.SpendableOutput{in},
		ledger.NewTxOut(60_000, addrs[1].PkScript()),
		ledger.NewTxOut(30_000, addrs[0].PkScript()),
	)
	txid := tx.TxHash()
	require.NoError(t, s.Submit(tx))
	_, ok, err := s.GetOutput(in.OutPoint)
	require.NoError(t, err)
	assert.False(t, ok)
	owned, err := s.ListSpendable(addrs[0])
	require.NoError(t, err)
	assert.Empty(t, owned)
	pooled, fee, ok, err := s.PoolTransaction(txid)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, tx.Bytes(), pooled.Bytes())
	assert.Equal(t, ledger.Amount(10_000), fee)
	// Resubmitting is rejected
	assert.ErrorAs(t, s.Submit(tx), &store.RejectError{})

	require.NoError(t, s.Relay(tx))
	queued, err := s.PendingRelay()
	require.NoError(t, err)
	assert.Equal(t, []chainhash.Hash{txid}, queued)
	require.NoError(t, s.AckRelay(txid))
	queued, err = s.PendingRelay()
	require.NoError(t, err)
	assert.Empty(t, queued)

	spent, err := s.ConfirmTransaction(txid)
	require.NoError(t, err)
	assert.Equal(t, []ledger.OutPoint{in.OutPoint}, spent)
	_, _, ok, err = s.PoolTransaction(txid)
	require.NoError(t, err)
	assert.False(t, ok)
	received, err := s.ListSpendable(addrs[1])
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, ledger.NewOutPoint(txid, 0), received[0].OutPoint)
	assert.Equal(t, ledger.Amount(60_000), received[0].Amount)
	change, err := s.ListSpendable(addrs[0])
	require.NoError(t, err)
	require.Len(t, change, 1)
	assert.Equal(t, ledger.NewOutPoint(txid, 1), change[0].OutPoint)
}

func TestRelayRequiresPooledTransaction(t *testing.T) {
	s, _ := openTestStore(t)
	_, addrs := test.NewTestKeyStore(ledger.NetworkRegtest, 1)
	tx := spendTx(
		[]ledger.SpendableOutput{testOutput(addrs[0], 1, 0, 10_000)},
		ledger.NewTxOut(5_000, addrs[0].PkScript()),
	)
	assert.ErrorIs(t, s.Relay(tx), store.ErrNotInPool)
	_, err := s.ConfirmTransaction(tx.TxHash())
	assert.ErrorIs(t, err, store.ErrNotInPool)
}

func TestSubmitRejections(t *testing.T) {
	_, addrs := test.NewTestKeyStore(ledger.NetworkRegtest, 2)
	funded := testOutput(addrs[0], 1, 0, 100_000)
	other := testOutput(addrs[0], 2, 0, 100_000)
	pay := func(amount ledger.Amount) ledger.TxOut {
		return ledger.NewTxOut(amount, addrs[1].PkScript())
	}
	unsigned := spendTx([]ledger.SpendableOutput{funded}, pay(90_000))
	unsigned.Inputs[0].SignatureScript = nil
	testDefs := []struct {
		name string
		tx   *ledger.Transaction
	}{
		{"no inputs", spendTx(nil, pay(1_000))},
		{"missing input", spendTx([]ledger.SpendableOutput{testOutput(addrs[0], 9, 0, 100_000)}, pay(90_000))},
		{"duplicate input", spendTx([]ledger.SpendableOutput{funded, funded}, pay(90_000))},
		{"unsigned input", unsigned},
		{"outputs exceed inputs", spendTx([]ledger.SpendableOutput{funded}, pay(100_001))},
		{"below relay fee", spendTx([]ledger.SpendableOutput{funded}, pay(99_990))},
		{"absurd fee", spendTx([]ledger.SpendableOutput{funded, other}, pay(1_000))},
		{"dust output", spendTx([]ledger.SpendableOutput{funded}, pay(90_000), pay(545))},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			s, err := store.Open(
				filepath.Join(t.TempDir(), "store.db"),
				ledger.NetworkRegtest,
				store.WithMaxTxFee(150_000),
			)
			require.NoError(t, err)
			defer s.Close()
			require.NoError(t, s.AddOutput(funded))
			require.NoError(t, s.AddOutput(other))
			err = s.Submit(testDef.tx)
			assert.ErrorAs(t, err, &store.RejectError{})
			unspent, err := s.ListUnspent()
			require.NoError(t, err)
			assert.Len(t, unspent, 2)
		})
	}
}

func TestSpentInputRejected(t *testing.T) {
	s, _ := openTestStore(t)
	_, addrs := test.NewTestKeyStore(ledger.NetworkRegtest, 2)
	in := testOutput(addrs[0], 1, 0, 100_000)
	require.NoError(t, s.AddOutput(in))
	first := spendTx([]ledger.SpendableOutput{in}, ledger.NewTxOut(90_000, addrs[1].PkScript()))
	second := spendTx([]ledger.SpendableOutput{in}, ledger.NewTxOut(80_000, addrs[1].PkScript()))
	require.NoError(t, s.Submit(first))
	assert.ErrorAs(t, s.Submit(second), &store.RejectError{})
}

func TestStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")
	_, addrs := test.NewTestKeyStore(ledger.NetworkRegtest, 1)
	out := testOutput(addrs[0], 1, 3, 42_000)
	s, err := store.Open(path, ledger.NetworkRegtest)
	require.NoError(t, err)
	require.NoError(t, s.AddOutput(out))
	require.NoError(t, s.Close())
	s, err = store.Open(path, ledger.NetworkRegtest)
	require.NoError(t, err)
	defer s.Close()
	owned, err := s.ListSpendable(addrs[0])
	require.NoError(t, err)
	assert.Equal(t, []ledger.SpendableOutput{out}, owned)
}

func TestOpenValidation(t *testing.T) {
	_, err := store.Open("", ledger.NetworkRegtest)
	assert.Error(t, err)
	_, err = store.Open(filepath.Join(t.TempDir(), "x.db"), ledger.NetworkInvalid)
	assert.Error(t, err)
}
