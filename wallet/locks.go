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


package wallet

import (
	"sync"

	"github.com/blinklabs-io/gotokencore/ledger"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/google/uuid"
)

// CoinLocks is the reservation table for wallet outputs. An output is free,
// reserved by exactly one lease, or consumed by a committed transaction that
// has not confirmed yet. The table is held in memory only.
type CoinLocks struct {
	mu       sync.Mutex
	reserved map[ledger.OutPoint]uuid.UUID
	consumed map[ledger.OutPoint]chainhash.Hash
}

func NewCoinLocks() *CoinLocks {
	return &CoinLocks{
		reserved: make(map[ledger.OutPoint]uuid.UUID),
		consumed: make(map[ledger.OutPoint]chainhash.Hash),
	}
}

// IsFree reports whether ref is neither reserved nor consumed
func (c *CoinLocks) IsFree(ref ledger.OutPoint) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isFreeLocked(ref)
}

func (c *CoinLocks) isFreeLocked(ref ledger.OutPoint) bool {
	if _, ok := c.reserved[ref]; ok {
		return false
	}
	_, ok := c.consumed[ref]
	return !ok
}

func (c *CoinLocks) IsReserved(ref ledger.OutPoint) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.reserved[ref]
	return ok
}

// ConsumedBy returns the committed transaction spending ref, if any
func (c *CoinLocks) ConsumedBy(ref ledger.OutPoint) (chainhash.Hash, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	txid, ok := c.consumed[ref]
	return txid, ok
}

// ReservedCount returns the number of outputs currently reserved by any lease
func (c *CoinLocks) ReservedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.reserved)
}

// Forget drops the consumed marks of outputs once their spend is confirmed
func (c *CoinLocks) Forget(refs ...ledger.OutPoint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ref := range refs {
		delete(c.consumed, ref)
	}
}

// reserve takes every ref for the lease or none of them
func (c *CoinLocks) reserve(id uuid.UUID, refs []ledger.OutPoint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ref := range refs {
		if owner, ok := c.reserved[ref]; ok && owner == id {
			continue
		}
		if !c.isFreeLocked(ref) {
			return CoinLockedError{OutPoint: ref}
		}
	}
	for _, ref := range refs {
		c.reserved[ref] = id
	}
	return nil
}

func (c *CoinLocks) release(id uuid.UUID, refs []ledger.OutPoint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ref := range refs {
		if owner, ok := c.reserved[ref]; ok && owner == id {
			delete(c.reserved, ref)
		}
	}
}

func (c *CoinLocks) consume(id uuid.UUID, refs []ledger.OutPoint, txid chainhash.Hash) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ref := range refs {
		if owner, ok := c.reserved[ref]; ok && owner == id {
			delete(c.reserved, ref)
		}
		c.consumed[ref] = txid
	}
}
