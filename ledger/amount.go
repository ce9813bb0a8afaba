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

package ledger

import (
	"github.com/shopspring/decimal"
)

// Amount is a quantity of the base ledger coin in its smallest unit
type Amount int64

const (
	AmountDecimals       = 8
	Coin          Amount = 100_000_000
	MaxMoney      Amount = 21_000_000 * Coin
)

// ParseAmount parses a decimal coin string such as "0.0001"
func ParseAmount(value string) (Amount, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0, err
	}
	if d.IsNegative() {
		return 0, ErrAmountNegative
	}
	units := d.Shift(AmountDecimals)
	if !units.IsInteger() {
		return 0, ErrAmountPrecision
	}
	if units.GreaterThan(decimal.NewFromInt(int64(MaxMoney))) {
		return 0, ErrAmountOutOfRange
	}
	return Amount(units.IntPart()), nil
}

// String formats the amount as a decimal coin value with 8 places
func (a Amount) String() string {
	return decimal.New(int64(a), -AmountDecimals).StringFixed(AmountDecimals)
}

// MoneyRange reports whether the amount is within the valid money range
func (a Amount) MoneyRange() bool {
	return a >= 0 && a <= MaxMoney
}
