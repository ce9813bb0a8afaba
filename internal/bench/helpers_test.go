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


package bench

import (
	"testing"

	"github.com/blinklabs-io/gotokencore/ledger"
	"github.com/blinklabs-io/gotokencore/payload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadSizes(t *testing.T) {
	encoder := payload.NewEncoder(nil)
	sizes := PayloadSizes()
	require.Len(t, sizes, 5)
	assert.Equal(t, encoder.CompactCapacity(), sizes[1].Size)
	assert.Equal(t, payload.SchemeCompact, payload.ChooseScheme(sizes[1].Size, encoder.CompactCapacity(), false))
	assert.Equal(t, payload.SchemeExpanded, payload.ChooseScheme(sizes[2].Size, encoder.CompactCapacity(), false))
}

func TestPayloadFixture(t *testing.T) {
	data, err := PayloadFixture(10)
	require.NoError(t, err)
	assert.Len(t, data, 10)
	again := MustPayloadFixture(10)
	assert.Equal(t, data, again)
	_, err = PayloadFixture(0)
	assert.Error(t, err)
	assert.Panics(t, func() { MustPayloadFixture(-1) })
}

func TestTxFixture(t *testing.T) {
	tx := TxFixture(3, 2)
	assert.Len(t, tx.Inputs, 3)
	assert.Len(t, tx.Outputs, 2)
	decoded, err := ledger.NewTransactionFromBytes(tx.Bytes())
	require.NoError(t, err)
	assert.Equal(t, tx.TxHash(), decoded.TxHash())
}

func TestBenchWallet(t *testing.T) {
	w := NewBenchWallet(2, 3, 10_000)
	require.Len(t, w.Addrs, 2)
	free, err := w.Ledger.Free(w.Addrs[0])
	require.NoError(t, err)
	assert.Len(t, free, 3)
	assert.Equal(t, ledger.Amount(30_000), ledger.SumAmounts(free))
}
