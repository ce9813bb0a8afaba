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

// Package ledger provides the base-ledger primitives used to carry overlay
// protocol payloads: transactions and their wire serialization, output
// scripts, addresses, amounts, fees and the legacy signature hash.
//
// File layout:
//   - tx.go: OutPoint, TxIn, TxOut and Transaction with (de)serialization
//   - compactsize.go: variable length integer encoding
//   - script.go: script construction and standard template matching
//   - address.go: base58check and bech32 addresses
//   - network.go: address prefixes per network
//   - amount.go: Amount and decimal parsing
//   - fee.go: fee rates, dust threshold and size estimation
//   - sighash.go: legacy signature hash
//   - spendable.go: SpendableOutput
package ledger
