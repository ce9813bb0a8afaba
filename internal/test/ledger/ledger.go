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


package test_ledger

import (
	"encoding/binary"
	"errors"
	"slices"
	"sync"

	"github.com/blinklabs-io/gotokencore/ledger"
	"github.com/blinklabs-io/gotokencore/wallet"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Compile-time check that MockBackend implements wallet.Backend
var _ wallet.Backend = (*MockBackend)(nil)

var ErrMockNotConfigured = errors.New("mock backend: not configured")

// MockBackend is the canonical internal ledger backend mock used by tests.
// By default it serves the outputs added with AddOutput, marks inputs spent
// on Submit and records relayed transactions. Set the function fields to
// override individual calls.
type MockBackend struct {
	mu        sync.Mutex
	outputs   []ledger.SpendableOutput
	spent     map[ledger.OutPoint]chainhash.Hash
	submitted []*ledger.Transaction
	relayed   []*ledger.Transaction
	nextId    uint64

	ListSpendableFunc func(ledger.Address) ([]ledger.SpendableOutput, error)
	ListUnspentFunc   func() ([]ledger.SpendableOutput, error)
	GetOutputFunc     func(ledger.OutPoint) (ledger.TxOut, bool, error)
	// SubmitFunc runs before the default bookkeeping. Returning an error rejects the transaction.
	SubmitFunc func(*ledger.Transaction) error
	RelayFunc  func(*ledger.Transaction) error
}

// AddOutput adds an unspent output paying amount to addr under a fresh outpoint
func (m *MockBackend) AddOutput(addr ledger.Address, amount ledger.Amount) ledger.SpendableOutput {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextId++
	ret := ledger.SpendableOutput{
		OutPoint: ledger.NewOutPoint(
			chainhash.HashH(binary.BigEndian.AppendUint64(nil, m.nextId)),
			uint32(m.nextId%3), // #nosec G115
		),
		Address:  addr,
		Amount:   amount,
		PkScript: addr.PkScript(),
	}
	m.outputs = append(m.outputs, ret)
	return ret
}

// MarkSpent marks an output spent outside of Submit
func (m *MockBackend) MarkSpent(ref ledger.OutPoint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.spent == nil {
		m.spent = make(map[ledger.OutPoint]chainhash.Hash)
	}
	m.spent[ref] = chainhash.Hash{}
}

func (m *MockBackend) Submitted() []*ledger.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.submitted)
}

func (m *MockBackend) Relayed() []*ledger.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.relayed)
}

func (m *MockBackend) ListSpendable(addr ledger.Address) ([]ledger.SpendableOutput, error) {
	if m.ListSpendableFunc != nil {
		return m.ListSpendableFunc(addr)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var ret []ledger.SpendableOutput
	for _, out := range m.outputs {
		if out.Address != addr {
			continue
		}
		if _, ok := m.spent[out.OutPoint]; ok {
			continue
		}
		ret = append(ret, out)
	}
	return ret, nil
}

func (m *MockBackend) ListUnspent() ([]ledger.SpendableOutput, error) {
	if m.ListUnspentFunc != nil {
		return m.ListUnspentFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var ret []ledger.SpendableOutput
	for _, out := range m.outputs {
		if _, ok := m.spent[out.OutPoint]; ok {
			continue
		}
		ret = append(ret, out)
	}
	return ret, nil
}

func (m *MockBackend) GetOutput(ref ledger.OutPoint) (ledger.TxOut, bool, error) {
	if m.GetOutputFunc != nil {
		return m.GetOutputFunc(ref)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.spent[ref]; ok {
		return ledger.TxOut{}, false, nil
	}
	for _, out := range m.outputs {
		if out.OutPoint == ref {
			return out.TxOut(), true, nil
		}
	}
	return ledger.TxOut{}, false, nil
}

func (m *MockBackend) Submit(tx *ledger.Transaction) error {
	if m.SubmitFunc != nil {
		if err := m.SubmitFunc(tx); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.spent == nil {
		m.spent = make(map[ledger.OutPoint]chainhash.Hash)
	}
	txid := tx.TxHash()
	for _, in := range tx.Inputs {
		m.spent[in.PreviousOutPoint] = txid
	}
	m.submitted = append(m.submitted, tx.Copy())
	return nil
}

func (m *MockBackend) Relay(tx *ledger.Transaction) error {
	if m.RelayFunc != nil {
		if err := m.RelayFunc(tx); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.relayed = append(m.relayed, tx.Copy())
	return nil
}
