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
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck
)

type AddressType uint8

const (
	AddressTypeInvalid AddressType = iota
	AddressTypePubKeyHash
	AddressTypeScriptHash
	AddressTypeWitnessPubKeyHash
)

// Address is a decoded base ledger address. The zero value is not a valid address.
type Address struct {
	addrType AddressType
	hash     [Hash160Size]byte
	network  Network
}

// Hash160 computes RIPEMD160(SHA256(data))
func Hash160(data []byte) [Hash160Size]byte {
	sha := sha256.Sum256(data)
	h := ripemd160.New()
	h.Write(sha[:])
	var ret [Hash160Size]byte
	copy(ret[:], h.Sum(nil))
	return ret
}

// NewAddressPubKeyHash returns a pay-to-pubkey-hash address for the given key hash
func NewAddressPubKeyHash(hash [Hash160Size]byte, network Network) Address {
	return Address{
		addrType: AddressTypePubKeyHash,
		hash:     hash,
		network:  network,
	}
}

// NewAddressFromPubKey returns the pay-to-pubkey-hash address of a serialized public key
func NewAddressFromPubKey(pubKey []byte, network Network) Address {
	return NewAddressPubKeyHash(Hash160(pubKey), network)
}

// NewAddress decodes a base58check or bech32 address for the given network
func NewAddress(addr string, network Network) (Address, error) {
	if network == NetworkInvalid {
		return Address{}, InvalidAddressError{Address: addr, Reason: "invalid network"}
	}
	lowered := strings.ToLower(addr)
	if network.Bech32Hrp != "" &&
		strings.HasPrefix(lowered, network.Bech32Hrp+"1") {
		return newAddressFromBech32(addr, network)
	}
	decoded, version, err := base58.CheckDecode(addr)
	if err != nil {
		return Address{}, InvalidAddressError{Address: addr, Reason: err.Error()}
	}
	if len(decoded) != Hash160Size {
		return Address{}, InvalidAddressError{
			Address: addr,
			Reason:  fmt.Sprintf("unexpected payload length %d", len(decoded)),
		}
	}
	ret := Address{network: network}
	copy(ret.hash[:], decoded)
	switch version {
	case network.PubKeyHashAddrId:
		ret.addrType = AddressTypePubKeyHash
	case network.ScriptHashAddrId:
		ret.addrType = AddressTypeScriptHash
	default:
		return Address{}, InvalidAddressError{
			Address: addr,
			Reason: fmt.Sprintf(
				"version byte 0x%02x does not belong to network %s",
				version,
				network.Name,
			),
		}
	}
	return ret, nil
}

func newAddressFromBech32(addr string, network Network) (Address, error) {
	hrp, data, err := bech32.Decode(addr)
	if err != nil {
		return Address{}, InvalidAddressError{Address: addr, Reason: err.Error()}
	}
	if hrp != network.Bech32Hrp {
		return Address{}, InvalidAddressError{Address: addr, Reason: "wrong human readable part"}
	}
	if len(data) < 1 || data[0] != 0 {
		return Address{}, InvalidAddressError{Address: addr, Reason: "only witness version 0 is supported"}
	}
	program, err := bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return Address{}, InvalidAddressError{Address: addr, Reason: err.Error()}
	}
	if len(program) != Hash160Size {
		return Address{}, InvalidAddressError{
			Address: addr,
			Reason:  fmt.Sprintf("unsupported witness program length %d", len(program)),
		}
	}
	ret := Address{
		addrType: AddressTypeWitnessPubKeyHash,
		network:  network,
	}
	copy(ret.hash[:], program)
	return ret, nil
}

// NewAddressFromPkScript returns the address paid by a standard output script
func NewAddressFromPkScript(script []byte, network Network) (Address, bool) {
	if hash, ok := ExtractPubKeyHash(script); ok {
		return Address{addrType: AddressTypePubKeyHash, hash: hash, network: network}, true
	}
	if hash, ok := extractScriptHash(script); ok {
		return Address{addrType: AddressTypeScriptHash, hash: hash, network: network}, true
	}
	if hash, ok := extractWitnessPubKeyHash(script); ok {
		return Address{addrType: AddressTypeWitnessPubKeyHash, hash: hash, network: network}, true
	}
	return Address{}, false
}

func (a Address) Type() AddressType {
	return a.addrType
}

func (a Address) Hash160() [Hash160Size]byte {
	return a.hash
}

func (a Address) Network() Network {
	return a.network
}

func (a Address) IsValid() bool {
	return a.addrType != AddressTypeInvalid
}

// PkScript returns the output script paying to the address
func (a Address) PkScript() []byte {
	switch a.addrType {
	case AddressTypePubKeyHash:
		return PayToPubKeyHashScript(a.hash)
	case AddressTypeScriptHash:
		return PayToScriptHashScript(a.hash)
	case AddressTypeWitnessPubKeyHash:
		return PayToWitnessPubKeyHashScript(a.hash)
	}
	return nil
}

func (a Address) String() string {
	switch a.addrType {
	case AddressTypePubKeyHash:
		return base58.CheckEncode(a.hash[:], a.network.PubKeyHashAddrId)
	case AddressTypeScriptHash:
		return base58.CheckEncode(a.hash[:], a.network.ScriptHashAddrId)
	case AddressTypeWitnessPubKeyHash:
		conv, err := bech32.ConvertBits(a.hash[:], 8, 5, true)
		if err != nil {
			panic(
				fmt.Sprintf("unexpected error converting data to base32: %s", err),
			)
		}
		encoded, err := bech32.Encode(a.network.Bech32Hrp, append([]byte{0}, conv...))
		if err != nil {
			panic(fmt.Sprintf("unexpected error encoding data as bech32: %s", err))
		}
		return encoded
	}
	return ""
}

func (a Address) MarshalJSON() ([]byte, error) {
	if !a.IsValid() {
		return nil, errors.New("cannot marshal invalid address")
	}
	return json.Marshal(a.String())
}
