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
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

var ErrNotInPool = errors.New("transaction is not in the pending pool")

// RejectError is returned when the pending pool refuses a transaction
type RejectError struct {
	Txid   chainhash.Hash
	Reason string
}

func (e RejectError) Error() string {
	return fmt.Sprintf("transaction %s rejected: %s", e.Txid.String(), e.Reason)
}
