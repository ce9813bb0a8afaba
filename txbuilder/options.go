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
	"bytes"
	"log/slog"

	"github.com/blinklabs-io/gotokencore/consensus"
	"github.com/blinklabs-io/gotokencore/ledger"
)

// DefaultFeeRate is the fee estimate used when none is configured
const DefaultFeeRate ledger.FeeRate = 10_000

type BuilderOptionFunc func(*Builder)

// WithLogger specifies the logger
func WithLogger(logger *slog.Logger) BuilderOptionFunc {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithFeeRate sets the externally estimated fee rate
func WithFeeRate(rate ledger.FeeRate) BuilderOptionFunc {
	return func(b *Builder) {
		b.feeRate = rate
	}
}

// WithRelayFeeRate sets the minimum relay fee rate. It is also the floor for the fee rate.
func WithRelayFeeRate(rate ledger.FeeRate) BuilderOptionFunc {
	return func(b *Builder) {
		b.relayFeeRate = rate
	}
}

// WithDataCarrierSize sets the largest OP_RETURN push used by the compact scheme
func WithDataCarrierSize(size int) BuilderOptionFunc {
	return func(b *Builder) {
		b.dataCarrierSize = size
	}
}

// WithMarker sets the compact scheme marker
func WithMarker(marker []byte) BuilderOptionFunc {
	return func(b *Builder) {
		b.marker = bytes.Clone(marker)
	}
}

// WithExtraOutput adds a fixed output to every built transaction
func WithExtraOutput(addr ledger.Address, amount ledger.Amount) BuilderOptionFunc {
	return func(b *Builder) {
		out := ledger.NewTxOut(amount, addr.PkScript())
		b.extraOutput = &out
	}
}

// WithParams sets the consensus parameters consulted by IsAllowed
func WithParams(params *consensus.Params) BuilderOptionFunc {
	return func(b *Builder) {
		b.params = params
	}
}
