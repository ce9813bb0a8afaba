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


package store

import (
	"github.com/blinklabs-io/gotokencore/cbor"
)

// outputRecord is the stored form of a wallet output
type outputRecord struct {
	cbor.StructAsArray
	Address  string
	Amount   int64
	PkScript []byte
	// SpentBy holds the txid of the pooled transaction spending the output
	SpentBy []byte
}

func (r outputRecord) spent() bool {
	return len(r.SpentBy) > 0
}

// poolRecord is a transaction admitted to the pending pool
type poolRecord struct {
	cbor.StructAsArray
	RawTx   []byte
	Fee     int64
	AddedAt int64
}
