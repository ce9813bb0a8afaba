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


// Package wallet provides the wallet-side view of the base ledger used when
// building transactions: spendable output listing, key access, coin
// reservations and coin selection.
package wallet

import (
	"github.com/blinklabs-io/gotokencore/ledger"
)

// Backend is the ledger view of a wallet. Implementations must be safe for
// concurrent use.
type Backend interface {
	// ListSpendable returns the unspent outputs owned by addr in a stable order
	ListSpendable(addr ledger.Address) ([]ledger.SpendableOutput, error)
	// ListUnspent returns every unspent output known to the wallet
	ListUnspent() ([]ledger.SpendableOutput, error)
	// GetOutput returns a prior output. The boolean is false when the output
	// is unknown or already spent.
	GetOutput(ref ledger.OutPoint) (ledger.TxOut, bool, error)
	// Submit admits a signed transaction to the local pending pool
	Submit(tx *ledger.Transaction) error
	// Relay announces a pooled transaction to the network
	Relay(tx *ledger.Transaction) error
}

// KeyProvider resolves wallet addresses to keys
type KeyProvider interface {
	PubKey(addr ledger.Address) ([]byte, error)
	// SignDigest returns a DER encoded signature of digest by the key owning addr
	SignDigest(addr ledger.Address, digest []byte) ([]byte, error)
}
