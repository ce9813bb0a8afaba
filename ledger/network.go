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

// Network definitions
var (
	NetworkMainnet = Network{
		Name:             "mainnet",
		PubKeyHashAddrId: 0x00,
		ScriptHashAddrId: 0x05,
		PrivateKeyId:     0x80,
		Bech32Hrp:        "bc",
	}
	NetworkTestnet = Network{
		Name:             "testnet",
		PubKeyHashAddrId: 0x6f,
		ScriptHashAddrId: 0xc4,
		PrivateKeyId:     0xef,
		Bech32Hrp:        "tb",
	}
	NetworkRegtest = Network{
		Name:             "regtest",
		PubKeyHashAddrId: 0x6f,
		ScriptHashAddrId: 0xc4,
		PrivateKeyId:     0xef,
		Bech32Hrp:        "bcrt",
	}

	NetworkInvalid = Network{
		Name: "invalid",
	} // NetworkInvalid is used as a return value for lookup functions when a network isn't found
)

// List of valid networks for use in lookup functions
var networks = []Network{
	NetworkMainnet,
	NetworkTestnet,
	NetworkRegtest,
}

// NetworkByName returns a predefined network by name
func NetworkByName(name string) Network {
	for _, network := range networks {
		if network.Name == name {
			return network
		}
	}
	return NetworkInvalid
}

// Network holds the address and key prefixes of a base ledger network
type Network struct {
	Name             string
	PubKeyHashAddrId byte
	ScriptHashAddrId byte
	PrivateKeyId     byte
	Bech32Hrp        string
}

func (n Network) String() string {
	return n.Name
}
