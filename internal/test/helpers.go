package test

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/blinklabs-io/gotokencore/ledger"
	"github.com/blinklabs-io/gotokencore/wallet"
	"github.com/btcsuite/btcd/btcec/v2"
)

// DecodeHexString is a helper function for tests that decodes hex strings. It doesn't return
// an error value, which makes it usable inline.
func DecodeHexString(hexData string) []byte {
	// Strip off any leading/trailing whitespace in hex string
	hexData = strings.TrimSpace(hexData)
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		panic(fmt.Sprintf("error decoding hex: %s", err))
	}
	return decoded
}

// NewTestKeyStore returns a key store holding count deterministic compressed
// keys along with their addresses in creation order
func NewTestKeyStore(network ledger.Network, count int) (*wallet.KeyStore, []ledger.Address) {
	keys := wallet.NewKeyStore(network)
	addrs := make([]ledger.Address, 0, count)
	for i := range count {
		privKey, _ := btcec.PrivKeyFromBytes(bytes.Repeat([]byte{byte(i + 1)}, 32))
		addrs = append(addrs, keys.AddKey(privKey, true))
	}
	return keys, addrs
}
