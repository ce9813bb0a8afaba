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


package wallet_test

import (
	"bytes"
	"testing"

	"github.com/blinklabs-io/gotokencore/ledger"
	"github.com/blinklabs-io/gotokencore/wallet"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyStoreImportWIF(t *testing.T) {
	privBytes := bytes.Repeat([]byte{0x07}, 32)
	privKey, pubKey := btcec.PrivKeyFromBytes(privBytes)
	testDefs := []struct {
		name       string
		compressed bool
		expected   []byte
	}{
		{"compressed", true, pubKey.SerializeCompressed()},
		{"uncompressed", false, pubKey.SerializeUncompressed()},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			data := bytes.Clone(privBytes)
			if testDef.compressed {
				data = append(data, 0x01)
			}
			wif := base58.CheckEncode(data, ledger.NetworkTestnet.PrivateKeyId)
			keys := wallet.NewKeyStore(ledger.NetworkTestnet)
			addr, err := keys.ImportWIF(wif)
			require.NoError(t, err)
			assert.Equal(t, ledger.NewAddressFromPubKey(testDef.expected, ledger.NetworkTestnet), addr)
			pub, err := keys.PubKey(addr)
			require.NoError(t, err)
			assert.Equal(t, testDef.expected, pub)
			exported, err := keys.ExportWIF(addr)
			require.NoError(t, err)
			assert.Equal(t, wif, exported)
			digest := chainhash.DoubleHashB([]byte("message"))
			sigBytes, err := keys.SignDigest(addr, digest)
			require.NoError(t, err)
			sig, err := ecdsa.ParseDERSignature(sigBytes)
			require.NoError(t, err)
			assert.True(t, sig.Verify(digest, privKey.PubKey()))
		})
	}
}

func TestKeyStoreRejectsBadWIF(t *testing.T) {
	keys := wallet.NewKeyStore(ledger.NetworkMainnet)
	privBytes := bytes.Repeat([]byte{0x07}, 32)
	testDefs := []struct {
		name string
		wif  string
	}{
		{"garbage", "not-a-key"},
		{"wrong network", base58.CheckEncode(privBytes, ledger.NetworkTestnet.PrivateKeyId)},
		{"bad suffix", base58.CheckEncode(append(bytes.Clone(privBytes), 0x02), ledger.NetworkMainnet.PrivateKeyId)},
		{"short", base58.CheckEncode(privBytes[:31], ledger.NetworkMainnet.PrivateKeyId)},
	}
	for _, testDef := range testDefs {
		_, err := keys.ImportWIF(testDef.wif)
		assert.ErrorIs(t, err, wallet.ErrInvalidWIF, testDef.name)
	}
	assert.Empty(t, keys.Addresses())
}

func TestKeyStoreUnknownAddress(t *testing.T) {
	keys := wallet.NewKeyStore(ledger.NetworkRegtest)
	_, pub := btcec.PrivKeyFromBytes(bytes.Repeat([]byte{0x09}, 32))
	addr := ledger.NewAddressFromPubKey(pub.SerializeCompressed(), ledger.NetworkRegtest)
	_, err := keys.PubKey(addr)
	assert.ErrorAs(t, err, &wallet.UnknownKeyError{})
	_, err = keys.SignDigest(addr, make([]byte, 32))
	assert.ErrorAs(t, err, &wallet.UnknownKeyError{})
}
