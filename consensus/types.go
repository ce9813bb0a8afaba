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

// AssetId identifies a token tracked by the overlay protocol
type AssetId uint32

// Reserved system assets
const (
	AssetNative AssetId = 0 // the base ledger coin
	AssetMain   AssetId = 1 // main ecosystem token
	AssetTest   AssetId = 2 // test ecosystem token
)

// Transaction types
const (
	TypeSimpleSend             uint16 = 0
	TypeSendToOwners           uint16 = 3
	TypeSendAll                uint16 = 4
	TypeSendNonFungible        uint16 = 5
	TypeTradeOffer             uint16 = 20
	TypeAcceptOffer            uint16 = 22
	TypeMetaDexTrade           uint16 = 25
	TypeMetaDexCancelPrice     uint16 = 26
	TypeMetaDexCancelPair      uint16 = 27
	TypeMetaDexCancelEcosystem uint16 = 28
	TypeCreatePropertyFixed    uint16 = 50
	TypeCreatePropertyVariable uint16 = 51
	TypeCloseCrowdsale         uint16 = 53
	TypeCreatePropertyManaged  uint16 = 54
	TypeGrantTokens            uint16 = 55
	TypeRevokeTokens           uint16 = 56
	TypeChangeIssuer           uint16 = 70
	TypeEnableFreezing         uint16 = 71
	TypeDisableFreezing        uint16 = 72
	TypeFreezeTokens           uint16 = 185
	TypeUnfreezeTokens         uint16 = 186
)

// Transaction versions
const (
	Version0 uint16 = 0
	Version1 uint16 = 1
)
