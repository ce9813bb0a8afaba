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

package consensus

import "fmt"

type InvalidRuleError struct {
	Rule   ActivationRule
	Reason string
}

func (e InvalidRuleError) Error() string {
	scope := fmt.Sprintf("asset %d", e.Rule.Asset)
	if e.Rule.Wildcard {
		scope = "wildcard"
	}
	return fmt.Sprintf(
		"invalid activation rule (type %d, %s, height %d): %s",
		e.Rule.Type,
		scope,
		e.Rule.Height,
		e.Reason,
	)
}
