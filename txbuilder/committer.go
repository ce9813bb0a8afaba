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
	"log/slog"
	"slices"

	"github.com/blinklabs-io/gotokencore/ledger"
	"github.com/blinklabs-io/gotokencore/wallet"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

type CommitMode uint8

const (
	// CommitSubmit admits the transaction to the pending pool and relays it
	CommitSubmit CommitMode = iota
	// CommitCreateOnly serializes the transaction without submitting it
	CommitCreateOnly
)

func (m CommitMode) String() string {
	switch m {
	case CommitSubmit:
		return "submit"
	case CommitCreateOnly:
		return "create-only"
	}
	return "unknown"
}

// CommitResult describes a built transaction
type CommitResult struct {
	Txid chainhash.Hash
	// RawTx is the hex encoded signed transaction
	RawTx     string
	Fee       ledger.Amount
	Change    ledger.Amount
	Skipped   []int
	Submitted bool
	// RelayErr is set when the transaction was pooled but relaying it failed
	RelayErr error
}

// Committer hands signed transactions to the backend
type Committer struct {
	backend wallet.Backend
	logger  *slog.Logger
}

// Commit serializes or submits a signed transaction. On a successful
// submission the inputs are consumed on the lease. On failure the lease
// still holds them and its release returns them to the free set.
func (c *Committer) Commit(
	lease *wallet.Lease,
	signed *PendingTransaction,
	mode CommitMode,
) (CommitResult, error) {
	txid := signed.Tx.TxHash()
	ret := CommitResult{
		Txid:    txid,
		RawTx:   signed.Tx.Hex(),
		Fee:     signed.Fee,
		Change:  signed.Change,
		Skipped: slices.Clone(signed.Skipped),
	}
	if mode == CommitCreateOnly {
		return ret, nil
	}
	if !signed.Signed {
		return CommitResult{}, newError(KindCommit, "transaction is not fully signed", nil).
			withDetail("txid", txid.String())
	}
	if err := c.backend.Submit(signed.Tx); err != nil {
		c.logger.Error(
			"transaction rejected by pending pool",
			"component", "txbuilder",
			"txid", txid.String(),
			"error", err,
		)
		return CommitResult{}, newError(KindCommit, "submit to pending pool", err).
			withDetail("txid", txid.String())
	}
	lease.Consume(signed.InputRefs(), txid)
	ret.Submitted = true
	if err := c.backend.Relay(signed.Tx); err != nil {
		c.logger.Warn(
			"failed to relay pooled transaction",
			"component", "txbuilder",
			"txid", txid.String(),
			"error", err,
		)
		ret.RelayErr = err
	}
	c.logger.Info(
		"committed transaction",
		"component", "txbuilder",
		"txid", txid.String(),
		"fee", signed.Fee.String(),
	)
	return ret, nil
}
