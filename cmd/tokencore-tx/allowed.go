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


package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/blinklabs-io/gotokencore/cmd/common"
	"github.com/blinklabs-io/gotokencore/consensus"
)

type allowedFlags struct {
	flagset *flag.FlagSet
	height  uint
	asset   uint
	txType  uint
	version uint
}

func newAllowedFlags() *allowedFlags {
	f := &allowedFlags{
		flagset: flag.NewFlagSet("allowed", flag.ExitOnError),
	}
	f.flagset.UintVar(&f.height, "height", 0, "block height")
	f.flagset.UintVar(&f.asset, "asset", 0, "asset id")
	f.flagset.UintVar(&f.txType, "type", 0, "transaction type")
	f.flagset.UintVar(&f.version, "version", 0, "transaction version")
	return f
}

// runAllowed prints the activation gate result and exits non-zero when disallowed
func runAllowed(f *common.GlobalFlags) {
	allowedFlags := newAllowedFlags()
	if err := allowedFlags.flagset.Parse(f.Flagset.Args()[1:]); err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	if allowedFlags.height > 0xffffffff ||
		allowedFlags.asset > 0xffffffff ||
		allowedFlags.txType > 0xffff ||
		allowedFlags.version > 0xffff {
		fmt.Printf("value out of range\n")
		os.Exit(1)
	}
	// #nosec G115
	allowed := f.Params.IsAllowed(
		uint32(allowedFlags.height),
		consensus.AssetId(allowedFlags.asset),
		uint16(allowedFlags.txType),
		uint16(allowedFlags.version),
	)
	fmt.Printf("%t\n", allowed)
	if !allowed {
		os.Exit(2)
	}
}
