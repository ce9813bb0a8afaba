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
	"log/slog"
	"slices"

	"github.com/blinklabs-io/gotokencore/ledger"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/google/uuid"
)

// Ledger combines a Backend with the coin reservation table. Reservations are
// only taken through leases.
type Ledger struct {
	backend Backend
	locks   *CoinLocks
	logger  *slog.Logger
}

type LedgerOptionFunc func(*Ledger)

// WithLedgerLogger specifies the logger
func WithLedgerLogger(logger *slog.Logger) LedgerOptionFunc {
	return func(l *Ledger) {
		l.logger = logger
	}
}

// WithCoinLocks shares an existing reservation table
func WithCoinLocks(locks *CoinLocks) LedgerOptionFunc {
	return func(l *Ledger) {
		l.locks = locks
	}
}

func NewLedger(backend Backend, opts ...LedgerOptionFunc) *Ledger {
	l := &Ledger{
		backend: backend,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.locks == nil {
		l.locks = NewCoinLocks()
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	return l
}

func (l *Ledger) Backend() Backend {
	return l.backend
}

func (l *Ledger) Locks() *CoinLocks {
	return l.locks
}

// Free returns the outputs of addr that are neither reserved nor consumed, in backend order
func (l *Ledger) Free(addr ledger.Address) ([]ledger.SpendableOutput, error) {
	outputs, err := l.backend.ListSpendable(addr)
	if err != nil {
		return nil, err
	}
	ret := make([]ledger.SpendableOutput, 0, len(outputs))
	for _, out := range outputs {
		if l.locks.IsFree(out.OutPoint) {
			ret = append(ret, out)
		}
	}
	return ret, nil
}

// Lease starts a reservation scope. The caller must Close it on every path.
func (l *Ledger) Lease() *Lease {
	return &Lease{
		id:     uuid.New(),
		ledger: l,
		held:   make(map[ledger.OutPoint]struct{}),
	}
}

// Lease owns a set of reservations for one top-level operation. A Lease is
// not safe for concurrent use.
type Lease struct {
	id     uuid.UUID
	ledger *Ledger
	held   map[ledger.OutPoint]struct{}
	order  []ledger.OutPoint
	closed bool
}

func (l *Lease) ID() uuid.UUID {
	return l.id
}

// Held returns the outputs reserved by the lease in reservation order
func (l *Lease) Held() []ledger.OutPoint {
	return slices.Clone(l.order)
}

func (l *Lease) Holds(ref ledger.OutPoint) bool {
	_, ok := l.held[ref]
	return ok
}

// Free returns the outputs of addr no lease holds, in backend order
func (l *Lease) Free(addr ledger.Address) ([]ledger.SpendableOutput, error) {
	if l.closed {
		return nil, ErrLeaseClosed
	}
	return l.ledger.Free(addr)
}

// Reserve reserves every given output or none of them
func (l *Lease) Reserve(refs ...ledger.OutPoint) error {
	if l.closed {
		return ErrLeaseClosed
	}
	if err := l.ledger.locks.reserve(l.id, refs); err != nil {
		return err
	}
	for _, ref := range refs {
		if _, ok := l.held[ref]; ok {
			continue
		}
		l.held[ref] = struct{}{}
		l.order = append(l.order, ref)
	}
	return nil
}

// Release returns outputs held by the lease to the free set
func (l *Lease) Release(refs ...ledger.OutPoint) {
	l.ledger.locks.release(l.id, refs)
	l.forget(refs)
}

// ReserveOthers reserves every free output not owned by one of keep for the
// rest of the lease, so that nothing outside the kept owners can be drawn in
func (l *Lease) ReserveOthers(keep ...ledger.Address) (int, error) {
	if l.closed {
		return 0, ErrLeaseClosed
	}
	outputs, err := l.ledger.backend.ListUnspent()
	if err != nil {
		return 0, err
	}
	var refs []ledger.OutPoint
	for _, out := range outputs {
		if slices.Contains(keep, out.Address) || !l.ledger.locks.IsFree(out.OutPoint) {
			continue
		}
		refs = append(refs, out.OutPoint)
	}
	if err := l.Reserve(refs...); err != nil {
		return 0, err
	}
	return len(refs), nil
}

// Consume marks outputs as spent by a committed transaction. They stay
// unavailable after the lease closes until the ledger forgets them.
func (l *Lease) Consume(refs []ledger.OutPoint, txid chainhash.Hash) {
	l.ledger.locks.consume(l.id, refs, txid)
	l.forget(refs)
}

// Close releases everything the lease still holds. It is safe to call more than once.
func (l *Lease) Close() {
	if l.closed {
		return
	}
	l.closed = true
	l.ledger.locks.release(l.id, l.order)
	l.held = map[ledger.OutPoint]struct{}{}
	l.order = nil
}

func (l *Lease) forget(refs []ledger.OutPoint) {
	for _, ref := range refs {
		delete(l.held, ref)
	}
	l.order = slices.DeleteFunc(l.order, func(ref ledger.OutPoint) bool {
		_, ok := l.held[ref]
		return !ok
	})
}
