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
	"slices"
	"strings"
	"sync"

	"github.com/blinklabs-io/gotokencore/ledger"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil/base58"
)

const (
	privKeySize = 32
	// WIF keys for compressed public keys carry this suffix byte
	compressedWIFSuffix = 0x01
)

type storedKey struct {
	privKey    *btcec.PrivateKey
	compressed bool
}

func (k storedKey) pubKey() []byte {
	if k.compressed {
		return k.privKey.PubKey().SerializeCompressed()
	}
	return k.privKey.PubKey().SerializeUncompressed()
}

// KeyStore is an unencrypted in-memory KeyProvider
type KeyStore struct {
	sync.RWMutex
	network ledger.Network
	keys    map[ledger.Address]storedKey
}

func NewKeyStore(network ledger.Network) *KeyStore {
	return &KeyStore{
		network: network,
		keys:    make(map[ledger.Address]storedKey),
	}
}

// AddKey stores a private key and returns its pay-to-pubkey-hash address
func (k *KeyStore) AddKey(privKey *btcec.PrivateKey, compressed bool) ledger.Address {
	key := storedKey{privKey: privKey, compressed: compressed}
	addr := ledger.NewAddressFromPubKey(key.pubKey(), k.network)
	k.Lock()
	defer k.Unlock()
	k.keys[addr] = key
	return addr
}

// ImportWIF decodes a wallet import format key for the store's network
func (k *KeyStore) ImportWIF(wif string) (ledger.Address, error) {
	decoded, version, err := base58.CheckDecode(wif)
	if err != nil {
		return ledger.Address{}, ErrInvalidWIF
	}
	if version != k.network.PrivateKeyId {
		return ledger.Address{}, ErrInvalidWIF
	}
	compressed := false
	switch len(decoded) {
	case privKeySize:
	case privKeySize + 1:
		if decoded[privKeySize] != compressedWIFSuffix {
			return ledger.Address{}, ErrInvalidWIF
		}
		compressed = true
	default:
		return ledger.Address{}, ErrInvalidWIF
	}
	privKey, _ := btcec.PrivKeyFromBytes(decoded[:privKeySize])
	return k.AddKey(privKey, compressed), nil
}

// ExportWIF returns the wallet import format of the key owning addr
func (k *KeyStore) ExportWIF(addr ledger.Address) (string, error) {
	k.RLock()
	key, ok := k.keys[addr]
	k.RUnlock()
	if !ok {
		return "", UnknownKeyError{Address: addr}
	}
	data := key.privKey.Serialize()
	if key.compressed {
		data = append(data, compressedWIFSuffix)
	}
	return base58.CheckEncode(data, k.network.PrivateKeyId), nil
}

// Addresses returns the stored addresses in string order
func (k *KeyStore) Addresses() []ledger.Address {
	k.RLock()
	defer k.RUnlock()
	ret := make([]ledger.Address, 0, len(k.keys))
	for addr := range k.keys {
		ret = append(ret, addr)
	}
	slices.SortFunc(ret, func(a, b ledger.Address) int {
		return strings.Compare(a.String(), b.String())
	})
	return ret
}

func (k *KeyStore) PubKey(addr ledger.Address) ([]byte, error) {
	k.RLock()
	defer k.RUnlock()
	key, ok := k.keys[addr]
	if !ok {
		return nil, UnknownKeyError{Address: addr}
	}
	return key.pubKey(), nil
}

func (k *KeyStore) SignDigest(addr ledger.Address, digest []byte) ([]byte, error) {
	k.RLock()
	key, ok := k.keys[addr]
	k.RUnlock()
	if !ok {
		return nil, UnknownKeyError{Address: addr}
	}
	return ecdsa.Sign(key.privKey, digest).Serialize(), nil
}
