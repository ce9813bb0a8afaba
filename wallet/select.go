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
	"cmp"
	"slices"

	"github.com/blinklabs-io/gotokencore/ledger"
)

type SelectionMode uint8

const (
	// SelectMinimal picks the smallest covering set for target plus fee
	SelectMinimal SelectionMode = iota
	// SelectExhaustive sweeps every free output of the owner
	SelectExhaustive
)

func (m SelectionMode) String() string {
	switch m {
	case SelectMinimal:
		return "minimal"
	case SelectExhaustive:
		return "exhaustive"
	}
	return "unknown"
}

// Policy controls coin selection
type Policy struct {
	Mode SelectionMode
	// FeeEstimate is added to the target under the minimal policy
	FeeEstimate ledger.Amount
}

func Minimal(feeEstimate ledger.Amount) Policy {
	return Policy{Mode: SelectMinimal, FeeEstimate: feeEstimate}
}

func Exhaustive() Policy {
	return Policy{Mode: SelectExhaustive}
}

// SelectCoins chooses free outputs of owner covering target and reserves them
// on the lease. Nothing is reserved when selection fails.
func (l *Lease) SelectCoins(
	owner ledger.Address,
	target ledger.Amount,
	policy Policy,
) ([]ledger.SpendableOutput, error) {
	if l.closed {
		return nil, ErrLeaseClosed
	}
	free, err := l.ledger.Free(owner)
	if err != nil {
		return nil, err
	}
	required := target
	if policy.Mode == SelectMinimal {
		required += policy.FeeEstimate
	}
	available := ledger.SumAmounts(free)
	if len(free) == 0 || available < required {
		return nil, InputSelectionError{
			Owner:     owner,
			Required:  required,
			Available: available,
		}
	}
	var selected []ledger.SpendableOutput
	switch policy.Mode {
	case SelectExhaustive:
		selected = free
	default:
		selected = selectMinimal(free, required)
	}
	refs := make([]ledger.OutPoint, 0, len(selected))
	for _, out := range selected {
		refs = append(refs, out.OutPoint)
	}
	if err := l.Reserve(refs...); err != nil {
		return nil, err
	}
	l.ledger.logger.Debug(
		"selected coins",
		"component", "wallet",
		"lease", l.id.String(),
		"owner", owner.String(),
		"policy", policy.Mode.String(),
		"count", len(selected),
		"total", ledger.SumAmounts(selected).String(),
		"required", required.String(),
	)
	return selected, nil
}

// selectMinimal returns the smallest single output covering required, or
// else accumulates outputs largest first. The caller ensures the total covers.
func selectMinimal(
	free []ledger.SpendableOutput,
	required ledger.Amount,
) []ledger.SpendableOutput {
	sorted := slices.Clone(free)
	slices.SortFunc(sorted, func(a, b ledger.SpendableOutput) int {
		return cmp.Or(
			cmp.Compare(a.Amount, b.Amount),
			a.OutPoint.Compare(b.OutPoint),
		)
	})
	for _, out := range sorted {
		if out.Amount >= required {
			return []ledger.SpendableOutput{out}
		}
	}
	slices.SortStableFunc(sorted, func(a, b ledger.SpendableOutput) int {
		return cmp.Or(
			cmp.Compare(b.Amount, a.Amount),
			a.OutPoint.Compare(b.OutPoint),
		)
	})
	var (
		ret   []ledger.SpendableOutput
		total ledger.Amount
	)
	for _, out := range sorted {
		ret = append(ret, out)
		total += out.Amount
		if total >= required {
			break
		}
	}
	return ret
}
