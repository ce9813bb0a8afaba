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
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/blinklabs-io/gotokencore/ledger"
	"github.com/blinklabs-io/gotokencore/payload"
	"github.com/blinklabs-io/gotokencore/wallet"
)

// ChangePosition places the change output relative to the payload outputs
type ChangePosition uint8

const (
	// ChangeAfterPayload puts change after the payload outputs and before any value output
	ChangeAfterPayload ChangePosition = iota
	// ChangeFirst puts change at index 0
	ChangeFirst
	// ChangeLast puts change at the end when there is no value output
	ChangeLast
)

// FundingPlan describes who pays for a transaction and where change goes
type FundingPlan struct {
	// Sources are searched in order for extra inputs
	Sources          []ledger.Address
	Change           ledger.Address
	ChangePosition   ChangePosition
	AllowExtraInputs bool
	// Recipient is the receiving address of the request, if any. It is used
	// to refuse a zero-change send back to the change address.
	Recipient *ledger.Address
}

// PendingTransaction is an assembled transaction together with the prior
// outputs it spends, in input order
type PendingTransaction struct {
	Tx     *ledger.Transaction
	Inputs []ledger.SpendableOutput
	// Selected is the number of leading inputs chosen by coin selection
	Selected int
	// PayloadStart and PayloadOutputs locate the payload outputs
	PayloadStart   int
	PayloadOutputs int
	// ChangeIndex is -1 when there is no change output
	ChangeIndex int
	Fee         ledger.Amount
	Change      ledger.Amount
	Signed      bool
	// Skipped lists inputs left unsigned because their prior output could not be resolved
	Skipped []int
}

// InputRefs returns the outpoints spent by the transaction in input order
func (p *PendingTransaction) InputRefs() []ledger.OutPoint {
	ret := make([]ledger.OutPoint, 0, len(p.Inputs))
	for _, in := range p.Inputs {
		ret = append(ret, in.OutPoint)
	}
	return ret
}

// Assembler turns encoded outputs and selected inputs into an unsigned transaction
type Assembler struct {
	feeRate      ledger.FeeRate
	relayFeeRate ledger.FeeRate
	extraOutput  *ledger.TxOut
	logger       *slog.Logger
}

// Assemble orders inputs and outputs and computes fee and change. The
// selected inputs keep their order at the front of the input list and inputs
// discovered through the lease follow in discovery order.
func (a *Assembler) Assemble(
	lease *wallet.Lease,
	selected []ledger.SpendableOutput,
	encoding payload.Encoding,
	plan FundingPlan,
) (*PendingTransaction, error) {
	if !plan.Change.IsValid() {
		return nil, newError(KindAssembly, "no valid change address", nil)
	}
	seen := make(map[ledger.OutPoint]struct{}, len(selected))
	for _, in := range selected {
		if _, ok := seen[in.OutPoint]; ok {
			return nil, newError(
				KindAssembly,
				"duplicate input "+in.OutPoint.String(),
				nil,
			)
		}
		seen[in.OutPoint] = struct{}{}
	}
	layout := outputLayout{
		payload:  encoding.Outputs[:encoding.PayloadOutputs],
		value:    encoding.Outputs[encoding.PayloadOutputs:],
		position: plan.ChangePosition,
	}
	if a.extraOutput != nil {
		layout.extra = []ledger.TxOut{*a.extraOutput}
	}
	targetOut := layout.total()
	rate := max(a.feeRate, a.relayFeeRate)
	changeScript := plan.Change.PkScript()
	changeDust := ledger.DustThreshold(changeScript, a.relayFeeRate)
	inputs := slices.Clone(selected)
	var (
		pending *PendingTransaction
		sources = slices.Clone(plan.Sources)
		queue   []ledger.SpendableOutput
	)
	for {
		totalIn := ledger.SumAmounts(inputs)
		withChange := layout.build(inputs, &ledger.TxOut{PkScript: changeScript})
		feeWithChange := rate.FeeForSize(ledger.EstimateSignedSize(withChange.Tx))
		noChange := layout.build(inputs, nil)
		feeNoChange := rate.FeeForSize(ledger.EstimateSignedSize(noChange.Tx))
		if len(inputs) > 0 && totalIn >= targetOut+feeWithChange+changeDust {
			change := totalIn - targetOut - feeWithChange
			withChange.Tx.Outputs[withChange.ChangeIndex].Value = change
			withChange.Fee = feeWithChange
			withChange.Change = change
			pending = withChange
			break
		}
		if len(inputs) > 0 && totalIn >= targetOut+feeNoChange {
			// Change below dust is folded into the fee
			noChange.Fee = totalIn - targetOut
			pending = noChange
			break
		}
		if !plan.AllowExtraInputs {
			return nil, insufficientFunds(plan, targetOut+feeNoChange, totalIn)
		}
		next, err := a.nextInput(lease, &sources, &queue, seen)
		if err != nil {
			return nil, err
		}
		if next == nil {
			return nil, insufficientFunds(plan, targetOut+feeNoChange, totalIn)
		}
		inputs = append(inputs, *next)
	}
	if pending.Change == 0 && plan.Recipient != nil && *plan.Recipient == plan.Change {
		return nil, newError(
			KindAssembly,
			"send to self without change",
			nil,
		).withDetail("address", plan.Change.String())
	}
	pending.Selected = len(selected)
	a.logger.Debug(
		"assembled transaction",
		"component", "txbuilder",
		"inputs", len(pending.Inputs),
		"selected", pending.Selected,
		"outputs", len(pending.Tx.Outputs),
		"fee", pending.Fee.String(),
		"change", pending.Change.String(),
	)
	return pending, nil
}

// nextInput reserves the next free output of the funding sources on the lease
func (a *Assembler) nextInput(
	lease *wallet.Lease,
	sources *[]ledger.Address,
	queue *[]ledger.SpendableOutput,
	seen map[ledger.OutPoint]struct{},
) (*ledger.SpendableOutput, error) {
	for {
		for len(*queue) > 0 {
			candidate := (*queue)[0]
			*queue = (*queue)[1:]
			if _, ok := seen[candidate.OutPoint]; ok {
				continue
			}
			if err := lease.Reserve(candidate.OutPoint); err != nil {
				var lockErr wallet.CoinLockedError
				if errors.As(err, &lockErr) {
					continue
				}
				return nil, newError(KindWalletUnavailable, "reserve input", err)
			}
			seen[candidate.OutPoint] = struct{}{}
			return &candidate, nil
		}
		if len(*sources) == 0 {
			return nil, nil
		}
		source := (*sources)[0]
		*sources = (*sources)[1:]
		free, err := lease.Free(source)
		if err != nil {
			return nil, newError(KindWalletUnavailable, "list outputs of "+source.String(), err)
		}
		*queue = free
	}
}

func insufficientFunds(plan FundingPlan, required, available ledger.Amount) *Error {
	owner := plan.Change
	if len(plan.Sources) > 0 {
		owner = plan.Sources[0]
	}
	selErr := wallet.InputSelectionError{
		Owner:     owner,
		Required:  required,
		Available: available,
	}
	return newError(
		KindInputSelection,
		fmt.Sprintf("inputs do not cover outputs and fee for %s", owner.String()),
		selErr,
	)
}

// outputLayout orders payload, extra, change and value outputs
type outputLayout struct {
	payload  []ledger.TxOut
	extra    []ledger.TxOut
	value    []ledger.TxOut
	position ChangePosition
}

func (l outputLayout) total() ledger.Amount {
	var ret ledger.Amount
	for _, outs := range [][]ledger.TxOut{l.payload, l.extra, l.value} {
		for _, out := range outs {
			ret += out.Value
		}
	}
	return ret
}

// build lays out a transaction. change is nil when no change output is wanted.
func (l outputLayout) build(
	inputs []ledger.SpendableOutput,
	change *ledger.TxOut,
) *PendingTransaction {
	tx := ledger.NewTransaction()
	for _, in := range inputs {
		tx.AddInput(in.OutPoint)
	}
	ret := &PendingTransaction{
		Tx:             tx,
		Inputs:         slices.Clone(inputs),
		PayloadOutputs: len(l.payload),
		ChangeIndex:    -1,
	}
	addChange := func() {
		if change != nil {
			ret.ChangeIndex = len(tx.Outputs)
			tx.AddOutput(*change)
		}
	}
	changeLast := l.position == ChangeLast && len(l.value) == 0
	if l.position == ChangeFirst {
		addChange()
	}
	ret.PayloadStart = len(tx.Outputs)
	for _, out := range l.payload {
		tx.AddOutput(out)
	}
	for _, out := range l.extra {
		tx.AddOutput(out)
	}
	if l.position != ChangeFirst && !changeLast {
		addChange()
	}
	for _, out := range l.value {
		tx.AddOutput(out)
	}
	if changeLast {
		addChange()
	}
	return ret
}
