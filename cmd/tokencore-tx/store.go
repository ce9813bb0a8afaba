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
	"github.com/blinklabs-io/gotokencore/ledger"
	"github.com/blinklabs-io/gotokencore/store"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

type addOutputFlags struct {
	flagset *flag.FlagSet
	txid    string
	index   uint
	address string
	amount  string
}

func newAddOutputFlags() *addOutputFlags {
	f := &addOutputFlags{
		flagset: flag.NewFlagSet("add-output", flag.ExitOnError),
	}
	f.flagset.StringVar(&f.txid, "txid", "", "id of the funding transaction")
	f.flagset.UintVar(&f.index, "vout", 0, "output index in the funding transaction")
	f.flagset.StringVar(&f.address, "address", "", "owning address")
	f.flagset.StringVar(&f.amount, "amount", "", "output amount in coins")
	return f
}

// runAddOutput records a confirmed output paying one of the wallet addresses
func runAddOutput(f *common.GlobalFlags) {
	addFlags := newAddOutputFlags()
	if err := addFlags.flagset.Parse(f.Flagset.Args()[1:]); err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	if addFlags.txid == "" || addFlags.address == "" || addFlags.amount == "" {
		fmt.Printf("you must specify -txid, -address and -amount\n")
		os.Exit(1)
	}
	if addFlags.index > 0xffffffff {
		fmt.Printf("-vout out of range\n")
		os.Exit(1)
	}
	hash := parseTxid(addFlags.txid)
	addr := f.ParseAddress("address", addFlags.address)
	amount, err := ledger.ParseAmount(addFlags.amount)
	if err != nil {
		fmt.Printf("invalid -amount value: %s\n", err)
		os.Exit(1)
	}
	st := common.OpenStore(f)
	err = st.AddOutput(ledger.SpendableOutput{
		OutPoint: ledger.NewOutPoint(hash, uint32(addFlags.index)), // #nosec G115
		Address:  addr,
		Amount:   amount,
		PkScript: addr.PkScript(),
	})
	_ = st.Close()
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
}

// runList prints every spendable output, or those of one address
func runList(f *common.GlobalFlags) {
	listFlags := flag.NewFlagSet("list", flag.ExitOnError)
	address := listFlags.String("address", "", "only list outputs of this address")
	if err := listFlags.Parse(f.Flagset.Args()[1:]); err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	st := common.OpenStore(f)
	var (
		outputs []ledger.SpendableOutput
		err     error
	)
	if *address != "" {
		outputs, err = st.ListSpendable(f.ParseAddress("address", *address))
	} else {
		outputs, err = st.ListUnspent()
	}
	_ = st.Close()
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	for _, out := range outputs {
		fmt.Println(out.String())
	}
}

// runConfirm marks a pooled transaction as mined
func runConfirm(f *common.GlobalFlags) {
	confirmFlags := flag.NewFlagSet("confirm", flag.ExitOnError)
	txid := confirmFlags.String("txid", "", "id of the mined transaction")
	if err := confirmFlags.Parse(f.Flagset.Args()[1:]); err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	hash := parseTxid(*txid)
	st := common.OpenStore(f)
	spent, err := st.ConfirmTransaction(hash)
	_ = st.Close()
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	for _, ref := range spent {
		fmt.Printf("spent %s\n", ref.String())
	}
}

// runRelayQueue prints the transactions waiting for relay, acknowledging them with -ack
func runRelayQueue(f *common.GlobalFlags) {
	queueFlags := flag.NewFlagSet("relay-queue", flag.ExitOnError)
	ack := queueFlags.Bool("ack", false, "remove the listed transactions from the queue")
	if err := queueFlags.Parse(f.Flagset.Args()[1:]); err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	st := common.OpenStore(f)
	err := printRelayQueue(st, *ack)
	_ = st.Close()
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
}

func printRelayQueue(st *store.Store, ack bool) error {
	pending, err := st.PendingRelay()
	if err != nil {
		return err
	}
	for _, txid := range pending {
		tx, _, ok, err := st.PoolTransaction(txid)
		if err != nil {
			return err
		}
		if ok {
			fmt.Printf("%s %s\n", txid.String(), tx.Hex())
		}
		if ack {
			if err := st.AckRelay(txid); err != nil {
				return err
			}
		}
	}
	return nil
}

func parseTxid(value string) chainhash.Hash {
	hash, err := chainhash.NewHashFromStr(value)
	if err != nil || value == "" {
		fmt.Printf("invalid transaction id %q\n", value)
		os.Exit(1)
	}
	return *hash
}
