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
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/blinklabs-io/gotokencore/cmd/common"
	"github.com/blinklabs-io/gotokencore/ledger"
	"github.com/blinklabs-io/gotokencore/txbuilder"
)

type sendFlags struct {
	flagset    *flag.FlagSet
	from       string
	to         string
	feePayer   string
	redemption string
	amount     string
	payloadHex string
	expanded   bool
	createOnly bool
}

func newSendFlags(name string, funded bool) *sendFlags {
	f := &sendFlags{
		flagset: flag.NewFlagSet(name, flag.ExitOnError),
	}
	f.flagset.StringVar(&f.from, "from", "", "sending address")
	f.flagset.StringVar(&f.to, "to", "", "optional receiving address")
	f.flagset.StringVar(
		&f.payloadHex,
		"payload",
		"",
		"hex encoded payload to embed",
	)
	f.flagset.BoolVar(
		&f.createOnly,
		"create-only",
		false,
		"print the signed transaction instead of submitting it",
	)
	if funded {
		f.flagset.StringVar(
			&f.feePayer,
			"fee-payer",
			"",
			"address that pays the fee and receives the change",
		)
		return f
	}
	f.flagset.StringVar(
		&f.redemption,
		"redemption",
		"",
		"address whose key redeems expanded payload outputs (defaults to -from)",
	)
	f.flagset.StringVar(
		&f.amount,
		"amount",
		"",
		"reference amount sent to -to (defaults to the dust threshold)",
	)
	f.flagset.BoolVar(
		&f.expanded,
		"expanded",
		false,
		"force the expanded payload scheme",
	)
	return f
}

func (s *sendFlags) parse(f *common.GlobalFlags) []byte {
	if err := s.flagset.Parse(f.Flagset.Args()[1:]); err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	if s.from == "" || s.payloadHex == "" {
		fmt.Printf("you must specify -from and -payload\n")
		os.Exit(1)
	}
	data, err := hex.DecodeString(s.payloadHex)
	if err != nil {
		fmt.Printf("failed to decode payload: %s\n", err)
		os.Exit(1)
	}
	return data
}

func (s *sendFlags) mode() txbuilder.CommitMode {
	if s.createOnly {
		return txbuilder.CommitCreateOnly
	}
	return txbuilder.CommitSubmit
}

func optionalAddress(f *common.GlobalFlags, name string, value string) *ledger.Address {
	if value == "" {
		return nil
	}
	addr := f.ParseAddress(name, value)
	return &addr
}

func runSend(f *common.GlobalFlags) {
	sendFlags := newSendFlags("send", false)
	data := sendFlags.parse(f)
	req := txbuilder.SendRequest{
		Sender:        f.ParseAddress("from", sendFlags.from),
		Receiver:      optionalAddress(f, "to", sendFlags.to),
		Redemption:    optionalAddress(f, "redemption", sendFlags.redemption),
		Payload:       data,
		ForceExpanded: sendFlags.expanded,
		Mode:          sendFlags.mode(),
	}
	if sendFlags.amount != "" {
		amount, err := ledger.ParseAmount(sendFlags.amount)
		if err != nil {
			fmt.Printf("invalid -amount value: %s\n", err)
			os.Exit(1)
		}
		req.ReferenceAmount = amount
	}
	st := common.OpenStore(f)
	builder := common.NewBuilder(f, st, common.LoadKeys(f))
	result, err := builder.Send(req)
	_ = st.Close()
	printResult(result, err)
}

func runSendFunded(f *common.GlobalFlags) {
	sendFlags := newSendFlags("send-funded", true)
	data := sendFlags.parse(f)
	if sendFlags.feePayer == "" {
		fmt.Printf("you must specify -fee-payer\n")
		os.Exit(1)
	}
	req := txbuilder.FundedRequest{
		Sender:   f.ParseAddress("from", sendFlags.from),
		Receiver: optionalAddress(f, "to", sendFlags.to),
		FeePayer: f.ParseAddress("fee-payer", sendFlags.feePayer),
		Payload:  data,
		Mode:     sendFlags.mode(),
	}
	st := common.OpenStore(f)
	builder := common.NewBuilder(f, st, common.LoadKeys(f))
	result, err := builder.SendFunded(req)
	_ = st.Close()
	printResult(result, err)
}

type resultOutput struct {
	Txid      string   `json:"txid"`
	Hex       string   `json:"hex"`
	Fee       string   `json:"fee"`
	Change    string   `json:"change"`
	Submitted bool     `json:"submitted"`
	Skipped   []int    `json:"skipped,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

func printResult(result txbuilder.CommitResult, err error) {
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	out := resultOutput{
		Txid:      result.Txid.String(),
		Hex:       result.RawTx,
		Fee:       result.Fee.String(),
		Change:    result.Change.String(),
		Submitted: result.Submitted,
		Skipped:   result.Skipped,
	}
	if result.RelayErr != nil {
		out.Warnings = append(out.Warnings, "relay failed: "+result.RelayErr.Error())
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}
