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

// FeeRate is a fee expressed in base units per 1000 bytes
type FeeRate int64

const (
	// DefaultRelayFeeRate is the minimum fee rate accepted by the pending pool
	DefaultRelayFeeRate FeeRate = 1000

	// DefaultMaxTxFee rejects transactions paying an absurd fee
	DefaultMaxTxFee Amount = Coin / 10

	// P2PKHSignatureScriptSize is the size of <DER sig + hashtype> <compressed pubkey>
	P2PKHSignatureScriptSize = 1 + 72 + 1 + 33

	// Size of a spending input used when computing the dust threshold
	spendInputSize = outPointSize + 1 + P2PKHSignatureScriptSize + 4
	// Witness inputs are discounted to a quarter of their script size
	witnessSpendInputSize = outPointSize + 1 + 4 + (P2PKHSignatureScriptSize+3)/4
)

// FeeForSize returns the fee for a transaction of the given size in bytes
func (r FeeRate) FeeForSize(size int) Amount {
	fee := int64(r) * int64(size) / 1000
	if fee == 0 && size != 0 && r > 0 {
		fee = 1
	}
	return Amount(fee)
}

// DustThreshold returns the smallest value an output with this script may carry
// without being uneconomical to spend at the relay fee rate
func DustThreshold(pkScript []byte, relayFee FeeRate) Amount {
	if IsUnspendable(pkScript) {
		return 0
	}
	out := TxOut{PkScript: pkScript}
	size := out.serializeSize()
	if ClassifyScript(pkScript) == ScriptWitnessPubKeyHash {
		size += witnessSpendInputSize
	} else {
		size += spendInputSize
	}
	return 3 * relayFee.FeeForSize(size)
}

// IsDust reports whether the output value is below the dust threshold for its script
func IsDust(out TxOut, relayFee FeeRate) bool {
	return out.Value < DustThreshold(out.PkScript, relayFee)
}

// EstimateSignedSize returns the serialized size of tx once every unsigned
// pay-to-pubkey-hash input carries its signature script
func EstimateSignedSize(tx *Transaction) int {
	size := tx.SerializeSize()
	for _, in := range tx.Inputs {
		if len(in.SignatureScript) == 0 {
			size += P2PKHSignatureScriptSize
		}
	}
	return size
}
