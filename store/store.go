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


// Package store implements a wallet ledger backend on top of bbolt. It keeps
// the wallet's unspent outputs, a local pending pool of submitted
// transactions and a relay queue.
package store

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/blinklabs-io/gotokencore/cbor"
	"github.com/blinklabs-io/gotokencore/ledger"
	"github.com/blinklabs-io/gotokencore/wallet"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	bolt "go.etcd.io/bbolt"
)

// Compile-time check that Store implements wallet.Backend
var _ wallet.Backend = (*Store)(nil)

var (
	bucketOutputs = []byte("outputs_by_outpoint")
	bucketPool    = []byte("pool_by_txid")
	bucketRelay   = []byte("relay_queue")
)

const openTimeout = 1 * time.Second

type Store struct {
	db           *bolt.DB
	network      ledger.Network
	relayFeeRate ledger.FeeRate
	maxTxFee     ledger.Amount
	logger       *slog.Logger
	now          func() time.Time
}

type StoreOptionFunc func(*Store)

// WithLogger specifies the logger
func WithLogger(logger *slog.Logger) StoreOptionFunc {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithRelayFeeRate sets the minimum fee rate for pool admission
func WithRelayFeeRate(rate ledger.FeeRate) StoreOptionFunc {
	return func(s *Store) {
		s.relayFeeRate = rate
	}
}

// WithMaxTxFee sets the fee above which a transaction is rejected as absurd
func WithMaxTxFee(fee ledger.Amount) StoreOptionFunc {
	return func(s *Store) {
		s.maxTxFee = fee
	}
}

// Open opens or creates the store database at path
func Open(path string, network ledger.Network, opts ...StoreOptionFunc) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store path required")
	}
	if network == ledger.NetworkInvalid {
		return nil, fmt.Errorf("invalid network")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	bdb, err := bolt.Open(path, 0o600, &bolt.Options{
		Timeout: openTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open bbolt: %w", err)
	}
	s := &Store{
		db:           bdb,
		network:      network,
		relayFeeRate: ledger.DefaultRelayFeeRate,
		maxTxFee:     ledger.DefaultMaxTxFee,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if err := s.db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketOutputs, bucketPool, bucketRelay} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("create bucket %s: %w", string(b), err)
			}
		}
		return nil
	}); err != nil {
		_ = bdb.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Network() ledger.Network {
	return s.network
}

// AddOutput records an unspent output owned by the wallet
func (s *Store) AddOutput(out ledger.SpendableOutput) error {
	if !out.Address.IsValid() {
		return fmt.Errorf("output %s has no valid owner", out.OutPoint.String())
	}
	pkScript := out.PkScript
	if len(pkScript) == 0 {
		pkScript = out.Address.PkScript()
	}
	rec := outputRecord{
		Address:  out.Address.String(),
		Amount:   int64(out.Amount),
		PkScript: pkScript,
	}
	data, err := cbor.Encode(&rec)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketOutputs).Put(out.OutPoint.Bytes(), data)
	})
}

func (s *Store) ListSpendable(addr ledger.Address) ([]ledger.SpendableOutput, error) {
	owner := addr.String()
	return s.listOutputs(func(rec outputRecord) bool {
		return rec.Address == owner
	})
}

func (s *Store) ListUnspent() ([]ledger.SpendableOutput, error) {
	return s.listOutputs(func(outputRecord) bool {
		return true
	})
}

// listOutputs returns unspent outputs matching filter in outpoint key order
func (s *Store) listOutputs(filter func(outputRecord) bool) ([]ledger.SpendableOutput, error) {
	var ret []ledger.SpendableOutput
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketOutputs).ForEach(func(k, v []byte) error {
			rec, err := decodeOutput(v)
			if err != nil {
				return err
			}
			if rec.spent() || !filter(rec) {
				return nil
			}
			out, err := s.spendableFromRecord(k, rec)
			if err != nil {
				return err
			}
			ret = append(ret, out)
			return nil
		})
	})
	return ret, err
}

func (s *Store) GetOutput(ref ledger.OutPoint) (ledger.TxOut, bool, error) {
	var (
		ret   ledger.TxOut
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketOutputs).Get(ref.Bytes())
		if v == nil {
			return nil
		}
		rec, err := decodeOutput(v)
		if err != nil {
			return err
		}
		if rec.spent() {
			return nil
		}
		ret = ledger.NewTxOut(ledger.Amount(rec.Amount), rec.PkScript)
		found = true
		return nil
	})
	return ret, found, err
}

// Submit admits a signed transaction to the pending pool and marks its inputs spent
func (s *Store) Submit(ltx *ledger.Transaction) error {
	txid := ltx.TxHash()
	err := s.db.Update(func(tx *bolt.Tx) error {
		outputs := tx.Bucket(bucketOutputs)
		pool := tx.Bucket(bucketPool)
		if pool.Get(txid[:]) != nil {
			return RejectError{Txid: txid, Reason: "already in pending pool"}
		}
		if len(ltx.Inputs) == 0 {
			return RejectError{Txid: txid, Reason: ledger.ErrNoInputs.Error()}
		}
		seen := make(map[ledger.OutPoint]struct{}, len(ltx.Inputs))
		records := make([]outputRecord, 0, len(ltx.Inputs))
		var totalIn ledger.Amount
		for idx, in := range ltx.Inputs {
			ref := in.PreviousOutPoint
			if _, ok := seen[ref]; ok {
				return RejectError{Txid: txid, Reason: "duplicate input " + ref.String()}
			}
			seen[ref] = struct{}{}
			v := outputs.Get(ref.Bytes())
			if v == nil {
				return RejectError{Txid: txid, Reason: "missing input " + ref.String()}
			}
			rec, err := decodeOutput(v)
			if err != nil {
				return err
			}
			if rec.spent() {
				return RejectError{Txid: txid, Reason: "input already spent " + ref.String()}
			}
			if len(in.SignatureScript) == 0 {
				return RejectError{Txid: txid, Reason: fmt.Sprintf("input %d is unsigned", idx)}
			}
			totalIn += ledger.Amount(rec.Amount)
			records = append(records, rec)
		}
		totalOut := ltx.TotalOut()
		if totalIn < totalOut {
			return RejectError{
				Txid:   txid,
				Reason: fmt.Sprintf("inputs %s below outputs %s", totalIn.String(), totalOut.String()),
			}
		}
		fee := totalIn - totalOut
		if minFee := s.relayFeeRate.FeeForSize(ltx.SerializeSize()); fee < minFee {
			return RejectError{
				Txid:   txid,
				Reason: fmt.Sprintf("fee %s below minimum relay fee %s", fee.String(), minFee.String()),
			}
		}
		if s.maxTxFee > 0 && fee > s.maxTxFee {
			return RejectError{
				Txid:   txid,
				Reason: fmt.Sprintf("absurdly high fee %s", fee.String()),
			}
		}
		for idx, out := range ltx.Outputs {
			if ledger.IsDust(out, s.relayFeeRate) {
				return RejectError{Txid: txid, Reason: fmt.Sprintf("output %d is dust", idx)}
			}
		}
		for idx, in := range ltx.Inputs {
			rec := records[idx]
			rec.SpentBy = txid[:]
			data, err := cbor.Encode(&rec)
			if err != nil {
				return err
			}
			if err := outputs.Put(in.PreviousOutPoint.Bytes(), data); err != nil {
				return err
			}
		}
		data, err := cbor.Encode(&poolRecord{
			RawTx:   ltx.Bytes(),
			Fee:     int64(fee),
			AddedAt: s.now().Unix(),
		})
		if err != nil {
			return err
		}
		return pool.Put(txid[:], data)
	})
	if err != nil {
		return err
	}
	s.logger.Debug(
		"transaction admitted to pending pool",
		"component", "store",
		"txid", txid.String(),
	)
	return nil
}

// Relay queues a pooled transaction for announcement to peers
func (s *Store) Relay(ltx *ledger.Transaction) error {
	txid := ltx.TxHash()
	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketPool).Get(txid[:]) == nil {
			return ErrNotInPool
		}
		relay := tx.Bucket(bucketRelay)
		seq, err := relay.NextSequence()
		if err != nil {
			return err
		}
		return relay.Put(binary.BigEndian.AppendUint64(nil, seq), bytes.Clone(txid[:]))
	})
}

// PendingRelay returns queued txids in queue order
func (s *Store) PendingRelay() ([]chainhash.Hash, error) {
	var ret []chainhash.Hash
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRelay).ForEach(func(_, v []byte) error {
			txid, err := chainhash.NewHash(v)
			if err != nil {
				return err
			}
			ret = append(ret, *txid)
			return nil
		})
	})
	return ret, err
}

// AckRelay removes a txid from the relay queue once peers have it
func (s *Store) AckRelay(txid chainhash.Hash) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		relay := tx.Bucket(bucketRelay)
		var keys [][]byte
		err := relay.ForEach(func(k, v []byte) error {
			if bytes.Equal(v, txid[:]) {
				keys = append(keys, bytes.Clone(k))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range keys {
			if err := relay.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// PoolTransaction returns a transaction from the pending pool along with its fee
func (s *Store) PoolTransaction(txid chainhash.Hash) (*ledger.Transaction, ledger.Amount, bool, error) {
	var rec poolRecord
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketPool).Get(txid[:])
		if v == nil {
			return nil
		}
		found = true
		return cbor.DecodeFull(v, &rec)
	})
	if err != nil || !found {
		return nil, 0, false, err
	}
	ltx, err := ledger.NewTransactionFromBytes(rec.RawTx)
	if err != nil {
		return nil, 0, false, err
	}
	return ltx, ledger.Amount(rec.Fee), true, nil
}

// ConfirmTransaction removes a pooled transaction once it is mined. Its spent
// inputs are deleted and its outputs paying standard addresses are recorded as
// new unspent outputs. It returns the outpoints whose spend is now final.
func (s *Store) ConfirmTransaction(txid chainhash.Hash) ([]ledger.OutPoint, error) {
	ltx, _, ok, err := s.PoolTransaction(txid)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotInPool
	}
	var spent []ledger.OutPoint
	err = s.db.Update(func(tx *bolt.Tx) error {
		outputs := tx.Bucket(bucketOutputs)
		for _, in := range ltx.Inputs {
			if err := outputs.Delete(in.PreviousOutPoint.Bytes()); err != nil {
				return err
			}
			spent = append(spent, in.PreviousOutPoint)
		}
		for idx, out := range ltx.Outputs {
			addr, ok := ledger.NewAddressFromPkScript(out.PkScript, s.network)
			if !ok {
				continue
			}
			data, err := cbor.Encode(&outputRecord{
				Address:  addr.String(),
				Amount:   int64(out.Value),
				PkScript: out.PkScript,
			})
			if err != nil {
				return err
			}
			ref := ledger.NewOutPoint(txid, uint32(idx)) // #nosec G115
			if err := outputs.Put(ref.Bytes(), data); err != nil {
				return err
			}
		}
		return tx.Bucket(bucketPool).Delete(txid[:])
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info(
		"transaction confirmed",
		"component", "store",
		"txid", txid.String(),
	)
	return spent, nil
}

func (s *Store) spendableFromRecord(key []byte, rec outputRecord) (ledger.SpendableOutput, error) {
	ref, err := ledger.OutPointFromBytes(key)
	if err != nil {
		return ledger.SpendableOutput{}, err
	}
	addr, err := ledger.NewAddress(rec.Address, s.network)
	if err != nil {
		return ledger.SpendableOutput{}, err
	}
	return ledger.SpendableOutput{
		OutPoint: ref,
		Address:  addr,
		Amount:   ledger.Amount(rec.Amount),
		PkScript: bytes.Clone(rec.PkScript),
	}, nil
}

func decodeOutput(data []byte) (outputRecord, error) {
	var rec outputRecord
	if err := cbor.DecodeFull(data, &rec); err != nil {
		return rec, fmt.Errorf("decode output record: %w", err)
	}
	return rec, nil
}
