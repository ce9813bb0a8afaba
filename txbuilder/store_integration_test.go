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


package txbuilder_test

import (
	"path/filepath"
	"testing"

	"github.com/blinklabs-io/gotokencore/internal/test"
	"github.com/blinklabs-io/gotokencore/ledger"
	"github.com/blinklabs-io/gotokencore/payload"
	"github.com/blinklabs-io/gotokencore/store"
	"github.com/blinklabs-io/gotokencore/txbuilder"
	"github.com/blinklabs-io/gotokencore/wallet"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendThroughStore(t *testing.T) {
	st, err := store.Open(
		filepath.Join(t.TempDir(), "wallet.db"),
		ledger.NetworkRegtest,
		store.WithLogger(discardLogger()),
	)
	require.NoError(t, err)
	defer st.Close()
	keys, addrs := test.NewTestKeyStore(ledger.NetworkRegtest, 3)
	sender, receiver, feePayer := addrs[0], addrs[1], addrs[2]
	for idx, amount := range []ledger.Amount{50_000, 700} {
		require.NoError(t, st.AddOutput(ledger.SpendableOutput{
			OutPoint: ledger.NewOutPoint(chainhash.HashH([]byte{byte(idx)}), 0),
			Address:  sender,
			Amount:   amount,
		}))
	}
	require.NoError(t, st.AddOutput(ledger.SpendableOutput{
		OutPoint: ledger.NewOutPoint(chainhash.HashH([]byte("payer")), 1),
		Address:  feePayer,
		Amount:   100_000,
	}))
	l := wallet.NewLedger(st, wallet.WithLedgerLogger(discardLogger()))
	builder := txbuilder.New(l, keys, txbuilder.WithLogger(discardLogger()))
	data := make([]byte, 200)
	for i := range data {
		data[i] = byte(i)
	}
	// Expanded payload funded by the sender
	result, err := builder.Send(txbuilder.SendRequest{
		Sender:   sender,
		Receiver: &receiver,
		Payload:  data,
	})
	require.NoError(t, err)
	require.NoError(t, result.RelayErr)
	pooled, fee, ok, err := st.PoolTransaction(result.Txid)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, result.Fee, fee)
	decoded, scheme, err := payload.Decode(pooled.Outputs, sender)
	require.NoError(t, err)
	assert.Equal(t, payload.SchemeExpanded, scheme)
	assert.Equal(t, data, decoded)
	queue, err := st.PendingRelay()
	require.NoError(t, err)
	assert.Equal(t, []chainhash.Hash{result.Txid}, queue)
	// Fee-delegated send sweeps what the sender has left
	funded, err := builder.SendFunded(txbuilder.FundedRequest{
		Sender:   sender,
		Receiver: &receiver,
		FeePayer: feePayer,
		Payload:  []byte("funded"),
	})
	require.NoError(t, err)
	pooled, _, ok, err = st.PoolTransaction(funded.Txid)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, feePayer.PkScript(), pooled.Outputs[0].PkScript)
	remaining, err := st.ListSpendable(sender)
	require.NoError(t, err)
	assert.Empty(t, remaining)
	// Confirmation turns the change of the first send into a spendable output
	_, err = st.ConfirmTransaction(result.Txid)
	require.NoError(t, err)
	remaining, err = st.ListSpendable(sender)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, result.Change, remaining[0].Amount)
	assert.Equal(t, result.Txid, remaining[0].OutPoint.Hash)
}
