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

// IsAllowed reports whether a transaction of the given type and version is
// valid for the asset at the block height. Unknown types are never allowed.
func (p *Params) IsAllowed(
	height uint32,
	asset AssetId,
	txType uint16,
	version uint16,
) bool {
	if p == nil {
		return false
	}
	if _, ok := p.carveOuts[CarveOut{Asset: asset, Type: txType}]; ok {
		return true
	}
	active, ok := p.activeRule(height, asset, txType)
	if !ok {
		return false
	}
	return active.NoVersionCeiling || version <= active.MaxVersion
}

// ActivationHeight returns the first height at which the type is registered for the asset
func (p *Params) ActivationHeight(asset AssetId, txType uint16) (uint32, bool) {
	if p == nil {
		return 0, false
	}
	rules := p.rulesFor(asset, txType)
	if len(rules) == 0 {
		return 0, false
	}
	return rules[0].Height, true
}

// activeRule returns the rule with the greatest activation height not above height
func (p *Params) activeRule(
	height uint32,
	asset AssetId,
	txType uint16,
) (ActivationRule, bool) {
	var (
		ret   ActivationRule
		found bool
	)
	for _, rule := range p.rulesFor(asset, txType) {
		if rule.Height > height {
			break
		}
		ret = rule
		found = true
	}
	return ret, found
}

// rulesFor returns the height-ordered rules matching the asset. Rules naming
// the asset take precedence over wildcard rules.
func (p *Params) rulesFor(asset AssetId, txType uint16) []ActivationRule {
	if rules := p.rules[ruleKey{txType: txType, asset: asset}]; len(rules) > 0 {
		return rules
	}
	rules := p.rules[ruleKey{txType: txType, wildcard: true}]
	if asset != AssetNative {
		return rules
	}
	var ret []ActivationRule
	for _, rule := range rules {
		if rule.IncludeNative {
			ret = append(ret, rule)
		}
	}
	return ret
}

// IsTransactionTypeAllowed evaluates the gate against the given parameter set
func IsTransactionTypeAllowed(
	params *Params,
	height uint32,
	asset AssetId,
	txType uint16,
	version uint16,
) bool {
	return params.IsAllowed(height, asset, txType, version)
}
