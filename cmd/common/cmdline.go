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
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/blinklabs-io/gotokencore/consensus"
	"github.com/blinklabs-io/gotokencore/ledger"
)

type GlobalFlags struct {
	Flagset      *flag.FlagSet
	DbPath       string
	NetworkName  string
	ParamsName   string
	ParamsFile   string
	FeeRate      string
	RelayFeeRate string
	MaxTxFee     string
	KeyFile      string
	Wifs         []string
	Debug        bool

	// Resolved by Parse
	Network           ledger.Network
	Params            *consensus.Params
	FeeRateValue      ledger.FeeRate
	RelayFeeRateValue ledger.FeeRate
	MaxTxFeeValue     ledger.Amount
	Logger            *slog.Logger
}

func NewGlobalFlags() *GlobalFlags {
	f := &GlobalFlags{
		Flagset: flag.NewFlagSet(os.Args[0], flag.ExitOnError),
	}
	f.Flagset.StringVar(
		&f.DbPath,
		"db",
		"tokencore.db",
		"path to the wallet and pending pool database",
	)
	f.Flagset.StringVar(
		&f.NetworkName,
		"network",
		"regtest",
		"specifies network that the wallet is participating in",
	)
	f.Flagset.StringVar(
		&f.ParamsName,
		"params",
		"",
		"named consensus parameter set (defaults to the -network name)",
	)
	f.Flagset.StringVar(
		&f.ParamsFile,
		"params-file",
		"",
		"path to a JSON consensus parameter set. this overrides the -params option",
	)
	f.Flagset.StringVar(
		&f.FeeRate,
		"fee-rate",
		"0.0001",
		"fee rate in coins per 1000 bytes",
	)
	f.Flagset.StringVar(
		&f.RelayFeeRate,
		"relay-fee-rate",
		"0.00001",
		"minimum relay fee rate in coins per 1000 bytes",
	)
	f.Flagset.StringVar(
		&f.MaxTxFee,
		"max-tx-fee",
		"0.1",
		"largest absolute fee accepted by the pending pool",
	)
	f.Flagset.StringVar(
		&f.KeyFile,
		"key-file",
		"",
		"path to a file holding one WIF private key per line",
	)
	f.Flagset.Func(
		"wif",
		"WIF private key to sign with (may be repeated)",
		func(value string) error {
			f.Wifs = append(f.Wifs, value)
			return nil
		},
	)
	f.Flagset.BoolVar(&f.Debug, "debug", false, "enable debug logging")
	return f
}

func (f *GlobalFlags) Parse() {
	if err := f.Flagset.Parse(os.Args[1:]); err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}
	f.Network = ledger.NetworkByName(f.NetworkName)
	if f.Network == ledger.NetworkInvalid {
		fmt.Printf("Invalid network specified: %s\n", f.NetworkName)
		os.Exit(1)
	}
	if f.ParamsFile != "" {
		params, err := consensus.LoadParamsFile(f.ParamsFile)
		if err != nil {
			fmt.Printf("failed to load consensus params: %s\n", err)
			os.Exit(1)
		}
		f.Params = params
	} else {
		name := f.ParamsName
		if name == "" {
			name = f.NetworkName
		}
		f.Params = consensus.ParamsByName(name)
		if f.Params == nil {
			fmt.Printf("Invalid consensus params specified: %s\n", name)
			os.Exit(1)
		}
	}
	f.FeeRateValue = ledger.FeeRate(mustParseAmount("fee-rate", f.FeeRate))
	f.RelayFeeRateValue = ledger.FeeRate(mustParseAmount("relay-fee-rate", f.RelayFeeRate))
	f.MaxTxFeeValue = mustParseAmount("max-tx-fee", f.MaxTxFee)
	level := slog.LevelInfo
	if f.Debug {
		level = slog.LevelDebug
	}
	f.Logger = slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	)
}

func mustParseAmount(name string, value string) ledger.Amount {
	ret, err := ledger.ParseAmount(value)
	if err != nil {
		fmt.Printf("invalid -%s value %q: %s\n", name, value, err)
		os.Exit(1)
	}
	return ret
}

// ParseAddress decodes an address on the selected network or exits
func (f *GlobalFlags) ParseAddress(name string, value string) ledger.Address {
	addr, err := ledger.NewAddress(value, f.Network)
	if err != nil {
		fmt.Printf("invalid -%s value: %s\n", name, err)
		os.Exit(1)
	}
	return addr
}
