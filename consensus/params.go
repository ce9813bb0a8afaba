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

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
)

// ActivationRule registers a transaction type for an asset scope from a block height onward
type ActivationRule struct {
	// Asset is ignored when Wildcard is set
	Asset    AssetId `json:"asset"`
	Wildcard bool    `json:"wildcard"`
	// IncludeNative lets a wildcard rule also match the native asset
	IncludeNative bool   `json:"includeNative"`
	Type          uint16 `json:"type"`
	Height        uint32 `json:"height"`
	MaxVersion    uint16 `json:"maxVersion"`
	// NoVersionCeiling allows every version once the rule is active
	NoVersionCeiling bool `json:"noVersionCeiling"`
}

// CarveOut is an (asset, type) pair valid for every version at every height
type CarveOut struct {
	Asset AssetId `json:"asset"`
	Type  uint16  `json:"type"`
}

type ruleKey struct {
	txType   uint16
	asset    AssetId
	wildcard bool
}

// Params is an immutable activation table. It is safe for concurrent use.
type Params struct {
	name      string
	rules     map[ruleKey][]ActivationRule
	carveOuts map[CarveOut]struct{}
}

// NewParams validates and copies the given rules and carve-outs
func NewParams(
	name string,
	rules []ActivationRule,
	carveOuts []CarveOut,
) (*Params, error) {
	p := &Params{
		name:      name,
		rules:     make(map[ruleKey][]ActivationRule),
		carveOuts: make(map[CarveOut]struct{}, len(carveOuts)),
	}
	for _, rule := range rules {
		key := ruleKey{txType: rule.Type, wildcard: rule.Wildcard}
		if rule.Wildcard {
			if rule.Asset != 0 {
				return nil, InvalidRuleError{
					Rule:   rule,
					Reason: "wildcard rule must not name an asset",
				}
			}
		} else {
			if rule.IncludeNative {
				return nil, InvalidRuleError{
					Rule:   rule,
					Reason: "includeNative only applies to wildcard rules",
				}
			}
			key.asset = rule.Asset
		}
		for _, existing := range p.rules[key] {
			if existing.Height == rule.Height {
				return nil, InvalidRuleError{
					Rule:   rule,
					Reason: "duplicate activation height for scope and type",
				}
			}
		}
		p.rules[key] = append(p.rules[key], rule)
	}
	for key := range p.rules {
		slices.SortStableFunc(p.rules[key], func(a, b ActivationRule) int {
			return cmp.Compare(a.Height, b.Height)
		})
	}
	for _, carveOut := range carveOuts {
		p.carveOuts[carveOut] = struct{}{}
	}
	return p, nil
}

func mustParams(
	name string,
	rules []ActivationRule,
	carveOuts []CarveOut,
) *Params {
	p, err := NewParams(name, rules, carveOuts)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in consensus params %s: %s", name, err))
	}
	return p
}

func (p *Params) Name() string {
	return p.name
}

// Rules returns a copy of the registered rules ordered by type, scope and height
func (p *Params) Rules() []ActivationRule {
	var ret []ActivationRule
	for _, rules := range p.rules {
		ret = append(ret, rules...)
	}
	slices.SortFunc(ret, func(a, b ActivationRule) int {
		return cmp.Or(
			cmp.Compare(a.Type, b.Type),
			compareBool(a.Wildcard, b.Wildcard),
			cmp.Compare(a.Asset, b.Asset),
			compareBool(a.IncludeNative, b.IncludeNative),
			cmp.Compare(a.Height, b.Height),
		)
	})
	return ret
}

// CarveOuts returns a copy of the legacy carve-outs
func (p *Params) CarveOuts() []CarveOut {
	ret := make([]CarveOut, 0, len(p.carveOuts))
	for carveOut := range p.carveOuts {
		ret = append(ret, carveOut)
	}
	slices.SortFunc(ret, func(a, b CarveOut) int {
		return cmp.Or(cmp.Compare(a.Asset, b.Asset), cmp.Compare(a.Type, b.Type))
	})
	return ret
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	}
	return 1
}

type paramsFile struct {
	Name      string           `json:"name"`
	Rules     []ActivationRule `json:"rules"`
	CarveOuts []CarveOut       `json:"carveOuts"`
}

// LoadParams reads an activation table from JSON
func LoadParams(r io.Reader) (*Params, error) {
	var tmp paramsFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&tmp); err != nil {
		return nil, fmt.Errorf("decode consensus params: %w", err)
	}
	return NewParams(tmp.Name, tmp.Rules, tmp.CarveOuts)
}

// LoadParamsFile reads an activation table from a JSON file
func LoadParamsFile(path string) (*Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadParams(f)
}
