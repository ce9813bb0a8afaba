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
	"errors"
	"fmt"

	"github.com/blinklabs-io/gotokencore/ledger"
)

var (
	ErrLeaseClosed = errors.New("coin lease is closed")
	ErrInvalidWIF  = errors.New("invalid WIF private key")
)

// InputSelectionError is returned when the owner's free outputs cannot cover a target
type InputSelectionError struct {
	Owner     ledger.Address
	Required  ledger.Amount
	Available ledger.Amount
}

func (e InputSelectionError) Error() string {
	return fmt.Sprintf(
		"insufficient funds for %s: required %s, available %s",
		e.Owner.String(),
		e.Required.String(),
		e.Available.String(),
	)
}

// CoinLockedError is returned when an output is already reserved or consumed
type CoinLockedError struct {
	OutPoint ledger.OutPoint
}

func (e CoinLockedError) Error() string {
	return "output is reserved or spent: " + e.OutPoint.String()
}

type UnknownKeyError struct {
	Address ledger.Address
}

func (e UnknownKeyError) Error() string {
	return "no key for address " + e.Address.String()
}
