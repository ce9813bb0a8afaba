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


// Package txbuilder builds, signs and commits base ledger transactions that
// carry overlay-protocol payloads.
//
// Two funding flows are supported. Send funds the transaction from the
// sender's own outputs and returns change to the sender. SendFunded sweeps
// every output of the sender and lets a separate fee payer cover the fee and
// receive the change. Each call runs under one builder-wide lock, so
// concurrent calls queue instead of interleaving.
package txbuilder

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/blinklabs-io/gotokencore/consensus"
	"github.com/blinklabs-io/gotokencore/ledger"
	"github.com/blinklabs-io/gotokencore/payload"
	"github.com/blinklabs-io/gotokencore/wallet"
)

type Builder struct {
	mu              sync.Mutex
	ledger          *wallet.Ledger
	keys            wallet.KeyProvider
	logger          *slog.Logger
	feeRate         ledger.FeeRate
	relayFeeRate    ledger.FeeRate
	dataCarrierSize int
	marker          []byte
	extraOutput     *ledger.TxOut
	params          *consensus.Params
	encoder         *payload.Encoder
	assembler       *Assembler
	signer          *Signer
	committer       *Committer
}

// New returns a Builder spending from l and signing with keys
func New(l *wallet.Ledger, keys wallet.KeyProvider, opts ...BuilderOptionFunc) *Builder {
	b := &Builder{
		ledger:          l,
		keys:            keys,
		feeRate:         DefaultFeeRate,
		relayFeeRate:    ledger.DefaultRelayFeeRate,
		dataCarrierSize: payload.DefaultDataCarrierSize,
		marker:          []byte(payload.DefaultMarker),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	var resolver payload.KeyResolver
	if keys != nil {
		resolver = keys
	}
	b.encoder = payload.NewEncoder(
		resolver,
		payload.WithEncoderMarker(b.marker),
		payload.WithEncoderDataCarrierSize(b.dataCarrierSize),
		payload.WithEncoderRelayFeeRate(b.relayFeeRate),
	)
	b.assembler = &Assembler{
		feeRate:      b.feeRate,
		relayFeeRate: b.relayFeeRate,
		extraOutput:  b.extraOutput,
		logger:       b.logger,
	}
	if l != nil {
		b.signer = &Signer{
			backend: l.Backend(),
			keys:    keys,
			logger:  b.logger,
		}
		b.committer = &Committer{
			backend: l.Backend(),
			logger:  b.logger,
		}
	}
	return b
}

// IsAllowed evaluates the activation gate. It does not take the builder lock.
func (b *Builder) IsAllowed(
	height uint32,
	asset consensus.AssetId,
	txType uint16,
	version uint16,
) bool {
	return b.params.IsAllowed(height, asset, txType, version)
}

// CompactCapacity returns the largest payload embedded with the compact scheme
func (b *Builder) CompactCapacity() int {
	return b.encoder.CompactCapacity()
}

// SendRequest is a self-funded payload transaction
type SendRequest struct {
	Sender ledger.Address
	// Receiver optionally receives a reference output placed last
	Receiver *ledger.Address
	// Redemption optionally overrides the key that redeems expanded scheme outputs
	Redemption      *ledger.Address
	ReferenceAmount ledger.Amount
	Payload         []byte
	ForceExpanded   bool
	Mode            CommitMode
}

// Send builds a transaction funded by the sender. Change returns to the sender
// between the payload outputs and the reference output.
func (b *Builder) Send(req SendRequest) (CommitResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.available(); err != nil {
		return CommitResult{}, err
	}
	encoding, err := b.encoder.Encode(payload.Request{
		Payload:         req.Payload,
		Sender:          req.Sender,
		Redemption:      req.Redemption,
		Recipient:       req.Receiver,
		ReferenceAmount: req.ReferenceAmount,
		ForceExpanded:   req.ForceExpanded,
	})
	if err != nil {
		return CommitResult{}, newError(KindEncoding, "encode payload", err)
	}
	lease := b.ledger.Lease()
	defer lease.Close()
	target, fee := b.selectionTarget(encoding, req.Sender)
	selected, err := lease.SelectCoins(req.Sender, target, wallet.Minimal(fee))
	if err != nil {
		return CommitResult{}, selectionError(err)
	}
	b.logger.Debug(
		"building self-funded transaction",
		"component", "txbuilder",
		"lease", lease.ID().String(),
		"sender", req.Sender.String(),
		"scheme", encoding.Scheme.String(),
		"payload_size", len(req.Payload),
	)
	return b.complete(
		lease,
		selected,
		encoding,
		FundingPlan{
			Sources:          []ledger.Address{req.Sender},
			Change:           req.Sender,
			ChangePosition:   ChangeAfterPayload,
			AllowExtraInputs: true,
			Recipient:        req.Receiver,
		},
		req.Mode,
	)
}

// FundedRequest is a fee-delegated payload transaction
type FundedRequest struct {
	Sender ledger.Address
	// Receiver optionally receives a reference output. None is added when it is the fee payer.
	Receiver *ledger.Address
	FeePayer ledger.Address
	Payload  []byte
	Mode     CommitMode
}

// SendFunded builds a compact-scheme transaction that spends every output of
// the sender, with the fee payer covering the fee and receiving the change as
// the first output
func (b *Builder) SendFunded(req FundedRequest) (CommitResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.available(); err != nil {
		return CommitResult{}, err
	}
	if !req.FeePayer.IsValid() {
		return CommitResult{}, newError(KindAssembly, "no valid fee payer", nil)
	}
	var recipient *ledger.Address
	if req.Receiver != nil && *req.Receiver != req.FeePayer {
		recipient = req.Receiver
	}
	encoding, err := b.encoder.Encode(payload.Request{
		Payload:   req.Payload,
		Sender:    req.Sender,
		Recipient: recipient,
	})
	if err != nil {
		return CommitResult{}, newError(KindEncoding, "encode payload", err)
	}
	if encoding.Scheme != payload.SchemeCompact {
		return CommitResult{}, newError(
			KindEncoding,
			"fee-delegated transactions require the compact scheme",
			nil,
		).withDetail("payload_size", len(req.Payload)).
			withDetail("compact_capacity", b.encoder.CompactCapacity())
	}
	lease := b.ledger.Lease()
	defer lease.Close()
	locked, err := lease.ReserveOthers(req.Sender, req.FeePayer)
	if err != nil {
		return CommitResult{}, newError(KindWalletUnavailable, "reserve unrelated outputs", err)
	}
	selected, err := lease.SelectCoins(req.Sender, 0, wallet.Exhaustive())
	if err != nil {
		return CommitResult{}, selectionError(err)
	}
	b.logger.Debug(
		"building fee-delegated transaction",
		"component", "txbuilder",
		"lease", lease.ID().String(),
		"sender", req.Sender.String(),
		"fee_payer", req.FeePayer.String(),
		"swept", len(selected),
		"locked_unrelated", locked,
	)
	return b.complete(
		lease,
		selected,
		encoding,
		FundingPlan{
			Sources:          []ledger.Address{req.FeePayer},
			Change:           req.FeePayer,
			ChangePosition:   ChangeFirst,
			AllowExtraInputs: true,
			Recipient:        req.Receiver,
		},
		req.Mode,
	)
}

func (b *Builder) complete(
	lease *wallet.Lease,
	selected []ledger.SpendableOutput,
	encoding payload.Encoding,
	plan FundingPlan,
	mode CommitMode,
) (CommitResult, error) {
	pending, err := b.assembler.Assemble(lease, selected, encoding, plan)
	if err != nil {
		return CommitResult{}, err
	}
	signed, err := b.signer.Sign(pending)
	if err != nil {
		return CommitResult{}, err
	}
	return b.committer.Commit(lease, signed, mode)
}

func (b *Builder) available() error {
	if b.ledger == nil || b.keys == nil {
		return newError(KindWalletUnavailable, "no wallet configured", nil)
	}
	return nil
}

// selectionTarget returns the output total and the fee estimate for a
// single-input transaction with change
func (b *Builder) selectionTarget(
	encoding payload.Encoding,
	change ledger.Address,
) (ledger.Amount, ledger.Amount) {
	draft := ledger.NewTransaction()
	draft.AddInput(ledger.OutPoint{})
	for _, out := range encoding.Outputs {
		draft.AddOutput(out)
	}
	if b.extraOutput != nil {
		draft.AddOutput(*b.extraOutput)
	}
	draft.AddOutput(ledger.TxOut{PkScript: change.PkScript()})
	rate := max(b.feeRate, b.relayFeeRate)
	return draft.TotalOut(), rate.FeeForSize(ledger.EstimateSignedSize(draft))
}

func selectionError(err error) error {
	var selErr wallet.InputSelectionError
	if errors.As(err, &selErr) {
		return newError(KindInputSelection, "select coins", err).
			withDetail("owner", selErr.Owner.String())
	}
	return newError(KindWalletUnavailable, "select coins", err)
}
