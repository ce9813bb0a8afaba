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
	"errors"
	"fmt"
)

var (
	ErrTrailingBytes    = errors.New("trailing bytes after transaction")
	ErrNoInputs         = errors.New("transaction has no inputs")
	ErrScriptTruncated  = errors.New("script push exceeds script length")
	ErrUnsupportedHash  = errors.New("unsupported signature hash type")
	ErrAmountNegative   = errors.New("amount must not be negative")
	ErrAmountPrecision  = errors.New("amount has more than 8 decimal places")
	ErrAmountOutOfRange = errors.New("amount exceeds maximum money supply")
)

type NonCanonicalCompactSizeError struct {
	Value uint64
}

func (e NonCanonicalCompactSizeError) Error() string {
	return fmt.Sprintf("non-canonical compact size encoding for value %d", e.Value)
}

type InputIndexError struct {
	Index int
	Count int
}

func (e InputIndexError) Error() string {
	return fmt.Sprintf("input index %d out of range (%d inputs)", e.Index, e.Count)
}

type InvalidAddressError struct {
	Address string
	Reason  string
}

func (e InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid address %q: %s", e.Address, e.Reason)
}

type CountTooLargeError struct {
	Field string
	Count uint64
	Max   uint64
}

func (e CountTooLargeError) Error() string {
	return fmt.Sprintf(
		"%s count %d exceeds maximum %d",
		e.Field,
		e.Count,
		e.Max,
	)
}
