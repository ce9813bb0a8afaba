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

// Mainnet activation heights
const (
	MainnetSendBlock        uint32 = 10_000
	MainnetPropertyBlock    uint32 = 20_000
	MainnetManagedBlock     uint32 = 30_000
	MainnetMetaDexBlock     uint32 = 40_000
	MainnetSendAllBlock     uint32 = 60_000
	MainnetStoV1Block       uint32 = 65_000
	MainnetFreezeBlock      uint32 = 80_000
	MainnetNonFungibleBlock uint32 = 90_000
)

// Testnet activation heights
const (
	TestnetSendBlock        uint32 = 100
	TestnetPropertyBlock    uint32 = 200
	TestnetMetaDexBlock     uint32 = 300
	TestnetFreezeBlock      uint32 = 400
	TestnetNonFungibleBlock uint32 = 500
)

// Legacy carve-outs predate the activation mechanism
var legacyCarveOuts = []CarveOut{
	{Asset: AssetTest, Type: TypeSimpleSend},
	{Asset: AssetTest, Type: TypeSendToOwners},
}

func wildcard(txType uint16, height uint32, maxVersion uint16) ActivationRule {
	return ActivationRule{
		Wildcard:   true,
		Type:       txType,
		Height:     height,
		MaxVersion: maxVersion,
	}
}

func wildcardWithNative(txType uint16, height uint32, maxVersion uint16) ActivationRule {
	ret := wildcard(txType, height, maxVersion)
	ret.IncludeNative = true
	return ret
}

// Parameter set definitions
var (
	MainnetParams = mustParams(
		"mainnet",
		[]ActivationRule{
			wildcard(TypeSimpleSend, MainnetSendBlock, Version0),
			wildcard(TypeSendToOwners, MainnetPropertyBlock, Version0),
			wildcard(TypeSendToOwners, MainnetStoV1Block, Version1),
			wildcard(TypeSendAll, MainnetSendAllBlock, Version0),
			wildcard(TypeSendNonFungible, MainnetNonFungibleBlock, Version0),
			{Asset: AssetMain, Type: TypeTradeOffer, Height: MainnetPropertyBlock, MaxVersion: Version1},
			wildcardWithNative(TypeAcceptOffer, MainnetPropertyBlock, Version0),
			wildcard(TypeMetaDexTrade, MainnetMetaDexBlock, Version0),
			wildcard(TypeMetaDexCancelPrice, MainnetMetaDexBlock, Version0),
			wildcard(TypeMetaDexCancelPair, MainnetMetaDexBlock, Version0),
			wildcard(TypeMetaDexCancelEcosystem, MainnetMetaDexBlock, Version0),
			wildcardWithNative(TypeCreatePropertyFixed, MainnetSendBlock, Version0),
			wildcardWithNative(TypeCreatePropertyVariable, MainnetPropertyBlock, Version1),
			wildcard(TypeCloseCrowdsale, MainnetPropertyBlock, Version0),
			wildcardWithNative(TypeCreatePropertyManaged, MainnetManagedBlock, Version0),
			wildcard(TypeGrantTokens, MainnetManagedBlock, Version0),
			wildcard(TypeRevokeTokens, MainnetManagedBlock, Version0),
			wildcard(TypeChangeIssuer, MainnetManagedBlock, Version0),
			wildcard(TypeEnableFreezing, MainnetFreezeBlock, Version0),
			wildcard(TypeDisableFreezing, MainnetFreezeBlock, Version0),
			wildcard(TypeFreezeTokens, MainnetFreezeBlock, Version0),
			wildcard(TypeUnfreezeTokens, MainnetFreezeBlock, Version0),
			// The test ecosystem token carries no version ceiling for non-fungible sends
			{Asset: AssetTest, Type: TypeSendNonFungible, Height: MainnetNonFungibleBlock, NoVersionCeiling: true},
		},
		legacyCarveOuts,
	)
	TestnetParams = mustParams(
		"testnet",
		[]ActivationRule{
			wildcard(TypeSimpleSend, TestnetSendBlock, Version0),
			wildcard(TypeSendToOwners, TestnetSendBlock, Version1),
			wildcard(TypeSendAll, TestnetSendBlock, Version0),
			wildcard(TypeSendNonFungible, TestnetNonFungibleBlock, Version0),
			{Asset: AssetMain, Type: TypeTradeOffer, Height: TestnetPropertyBlock, MaxVersion: Version1},
			wildcardWithNative(TypeAcceptOffer, TestnetPropertyBlock, Version0),
			wildcard(TypeMetaDexTrade, TestnetMetaDexBlock, Version0),
			wildcard(TypeMetaDexCancelPrice, TestnetMetaDexBlock, Version0),
			wildcard(TypeMetaDexCancelPair, TestnetMetaDexBlock, Version0),
			wildcard(TypeMetaDexCancelEcosystem, TestnetMetaDexBlock, Version0),
			wildcardWithNative(TypeCreatePropertyFixed, TestnetPropertyBlock, Version0),
			wildcardWithNative(TypeCreatePropertyVariable, TestnetPropertyBlock, Version1),
			wildcard(TypeCloseCrowdsale, TestnetPropertyBlock, Version0),
			wildcardWithNative(TypeCreatePropertyManaged, TestnetPropertyBlock, Version0),
			wildcard(TypeGrantTokens, TestnetPropertyBlock, Version0),
			wildcard(TypeRevokeTokens, TestnetPropertyBlock, Version0),
			wildcard(TypeChangeIssuer, TestnetPropertyBlock, Version0),
			wildcard(TypeEnableFreezing, TestnetFreezeBlock, Version0),
			wildcard(TypeDisableFreezing, TestnetFreezeBlock, Version0),
			wildcard(TypeFreezeTokens, TestnetFreezeBlock, Version0),
			wildcard(TypeUnfreezeTokens, TestnetFreezeBlock, Version0),
			{Asset: AssetTest, Type: TypeSendNonFungible, Height: 0, NoVersionCeiling: true},
		},
		legacyCarveOuts,
	)
	RegtestParams = mustParams(
		"regtest",
		[]ActivationRule{
			wildcard(TypeSimpleSend, 0, Version0),
			wildcard(TypeSendToOwners, 0, Version1),
			wildcard(TypeSendAll, 0, Version0),
			wildcard(TypeSendNonFungible, 0, Version0),
			{Asset: AssetMain, Type: TypeTradeOffer, Height: 0, MaxVersion: Version1},
			wildcardWithNative(TypeAcceptOffer, 0, Version0),
			wildcard(TypeMetaDexTrade, 0, Version0),
			wildcard(TypeMetaDexCancelPrice, 0, Version0),
			wildcard(TypeMetaDexCancelPair, 0, Version0),
			wildcard(TypeMetaDexCancelEcosystem, 0, Version0),
			wildcardWithNative(TypeCreatePropertyFixed, 0, Version0),
			wildcardWithNative(TypeCreatePropertyVariable, 0, Version1),
			wildcard(TypeCloseCrowdsale, 0, Version0),
			wildcardWithNative(TypeCreatePropertyManaged, 0, Version0),
			wildcard(TypeGrantTokens, 0, Version0),
			wildcard(TypeRevokeTokens, 0, Version0),
			wildcard(TypeChangeIssuer, 0, Version0),
			wildcard(TypeEnableFreezing, 0, Version0),
			wildcard(TypeDisableFreezing, 0, Version0),
			wildcard(TypeFreezeTokens, 0, Version0),
			wildcard(TypeUnfreezeTokens, 0, Version0),
			{Asset: AssetTest, Type: TypeSendNonFungible, Height: 0, NoVersionCeiling: true},
		},
		legacyCarveOuts,
	)
)

// List of built-in parameter sets for use in lookup functions
var paramSets = []*Params{
	MainnetParams,
	TestnetParams,
	RegtestParams,
}

// ParamsByName returns a built-in parameter set by name, or nil if none matches
func ParamsByName(name string) *Params {
	for _, params := range paramSets {
		if params.name == name {
			return params
		}
	}
	return nil
}
