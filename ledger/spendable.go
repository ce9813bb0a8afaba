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

import "fmt"

// SpendableOutput is an unspent output owned by a wallet address
type SpendableOutput struct {
	OutPoint OutPoint
	Address  Address
	Amount   Amount
	PkScript []byte
}

// TxOut returns the output as it appears in the funding transaction
func (s SpendableOutput) TxOut() TxOut {
	return TxOut{Value: s.Amount, PkScript: s.PkScript}
}

func (s SpendableOutput) String() string {
	return fmt.Sprintf("%s (%s, %s)", s.OutPoint.String(), s.Address.String(), s.Amount.String())
}

// SumAmounts totals the amounts of the given outputs
func SumAmounts(outputs []SpendableOutput) Amount {
	var total Amount
	for _, out := range outputs {
		total += out.Amount
	}
	return total
}
