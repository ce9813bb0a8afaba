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


package ledger_test

import (
	"bytes"
	"testing"

	"github.com/blinklabs-io/gotokencore/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	testDefs := []struct {
		input    string
		expected ledger.Amount
		err      error
	}{
		{input: "1", expected: ledger.Coin},
		{input: "0.0001", expected: 10_000},
		{input: "0.00000546", expected: 546},
		{input: "21000000", expected: ledger.MaxMoney},
		{input: "0.000000001", err: ledger.ErrAmountPrecision},
		{input: "-1", err: ledger.ErrAmountNegative},
		{input: "21000000.00000001", err: ledger.ErrAmountOutOfRange},
	}
	for _, testDef := range testDefs {
		amount, err := ledger.ParseAmount(testDef.input)
		if testDef.err != nil {
			assert.ErrorIs(t, err, testDef.err, testDef.input)
			continue
		}
		require.NoError(t, err, testDef.input)
		assert.Equal(t, testDef.expected, amount, testDef.input)
	}
	_, err := ledger.ParseAmount("abc")
	assert.Error(t, err)
}

func TestAmountString(t *testing.T) {
	assert.Equal(t, "0.00000546", ledger.Amount(546).String())
	assert.Equal(t, "1.50000000", ledger.Amount(150_000_000).String())
	assert.True(t, ledger.MaxMoney.MoneyRange())
	assert.False(t, (ledger.MaxMoney + 1).MoneyRange())
	assert.False(t, ledger.Amount(-1).MoneyRange())
}

func TestFeeForSize(t *testing.T) {
	assert.Equal(t, ledger.Amount(250), ledger.DefaultRelayFeeRate.FeeForSize(250))
	assert.Equal(t, ledger.Amount(2_500), ledger.FeeRate(10_000).FeeForSize(250))
	// Rounds up to the smallest unit
	assert.Equal(t, ledger.Amount(1), ledger.FeeRate(1).FeeForSize(10))
	assert.Equal(t, ledger.Amount(0), ledger.FeeRate(1).FeeForSize(0))
}

func TestDustThreshold(t *testing.T) {
	p2pkh := ledger.PayToPubKeyHashScript([ledger.Hash160Size]byte{})
	assert.Equal(t, ledger.Amount(546), ledger.DustThreshold(p2pkh, ledger.DefaultRelayFeeRate))
	assert.True(t, ledger.IsDust(ledger.NewTxOut(545, p2pkh), ledger.DefaultRelayFeeRate))
	assert.False(t, ledger.IsDust(ledger.NewTxOut(546, p2pkh), ledger.DefaultRelayFeeRate))
	nullData := ledger.NullDataScript([]byte("tokn"))
	assert.Equal(t, ledger.Amount(0), ledger.DustThreshold(nullData, ledger.DefaultRelayFeeRate))
	p2wpkh := ledger.PayToWitnessPubKeyHashScript([ledger.Hash160Size]byte{})
	assert.Less(
		t,
		ledger.DustThreshold(p2wpkh, ledger.DefaultRelayFeeRate),
		ledger.DustThreshold(p2pkh, ledger.DefaultRelayFeeRate),
	)
}

func TestEstimateSignedSize(t *testing.T) {
	tx := ledger.NewTransaction()
	tx.AddInput(ledger.OutPoint{})
	tx.AddInput(ledger.OutPoint{Index: 1})
	tx.Inputs[1].SignatureScript = bytes.Repeat([]byte{0x01}, 10)
	tx.AddOutput(ledger.NewTxOut(1_000, ledger.PayToPubKeyHashScript([ledger.Hash160Size]byte{})))
	assert.Equal(
		t,
		tx.SerializeSize()+ledger.P2PKHSignatureScriptSize,
		ledger.EstimateSignedSize(tx),
	)
}

func TestSumAmounts(t *testing.T) {
	outputs := []ledger.SpendableOutput{
		{Amount: 1_000},
		{Amount: 2_500},
	}
	assert.Equal(t, ledger.Amount(3_500), ledger.SumAmounts(outputs))
	assert.Equal(t, ledger.Amount(0), ledger.SumAmounts(nil))
}
