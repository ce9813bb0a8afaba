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


package common

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/blinklabs-io/gotokencore/store"
	"github.com/blinklabs-io/gotokencore/txbuilder"
	"github.com/blinklabs-io/gotokencore/wallet"
)

// OpenStore opens the wallet database named by -db or exits
func OpenStore(f *GlobalFlags) *store.Store {
	st, err := store.Open(
		f.DbPath,
		f.Network,
		store.WithLogger(f.Logger),
		store.WithRelayFeeRate(f.RelayFeeRateValue),
		store.WithMaxTxFee(f.MaxTxFeeValue),
	)
	if err != nil {
		fmt.Printf("failed to open database: %s\n", err)
		os.Exit(1)
	}
	return st
}

// LoadKeys imports the keys given with -wif and -key-file or exits
func LoadKeys(f *GlobalFlags) *wallet.KeyStore {
	keys := wallet.NewKeyStore(f.Network)
	wifs := f.Wifs
	if f.KeyFile != "" {
		file, err := os.Open(f.KeyFile)
		if err != nil {
			fmt.Printf("failed to open key file: %s\n", err)
			os.Exit(1)
		}
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			wifs = append(wifs, line)
		}
		_ = file.Close()
		if err := scanner.Err(); err != nil {
			fmt.Printf("failed to read key file: %s\n", err)
			os.Exit(1)
		}
	}
	for idx, wif := range wifs {
		if _, err := keys.ImportWIF(wif); err != nil {
			fmt.Printf("failed to import key %d: %s\n", idx, err)
			os.Exit(1)
		}
	}
	return keys
}

// NewBuilder wires a transaction builder over the store and key store
func NewBuilder(
	f *GlobalFlags,
	st *store.Store,
	keys *wallet.KeyStore,
	opts ...txbuilder.BuilderOptionFunc,
) *txbuilder.Builder {
	l := wallet.NewLedger(st, wallet.WithLedgerLogger(f.Logger))
	opts = append(
		[]txbuilder.BuilderOptionFunc{
			txbuilder.WithLogger(f.Logger),
			txbuilder.WithFeeRate(f.FeeRateValue),
			txbuilder.WithRelayFeeRate(f.RelayFeeRateValue),
			txbuilder.WithParams(f.Params),
		},
		opts...,
	)
	return txbuilder.New(l, keys, opts...)
}
