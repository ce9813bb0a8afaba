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


package bench

import (
	"testing"

	"github.com/blinklabs-io/gotokencore/ledger"
	"github.com/blinklabs-io/gotokencore/payload"
	"github.com/blinklabs-io/gotokencore/txbuilder"
)

// benchSink prevents compiler dead-code elimination in benchmarks.
var benchSink any

// BenchmarkPayloadEncode benchmarks output encoding by payload size.
func BenchmarkPayloadEncode(b *testing.B) {
	w := NewBenchWallet(1, 0, 0)
	encoder := payload.NewEncoder(w.Keys)
	for _, size := range PayloadSizes() {
		data := MustPayloadFixture(size.Size)
		b.Run(size.Name, func(b *testing.B) {
			req := payload.Request{Payload: data, Sender: w.Addrs[0]}
			if _, err := encoder.Encode(req); err != nil {
				b.Fatalf("Encode failed for %s: %v", size.Name, err)
			}
			b.SetBytes(int64(size.Size))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				benchSink, _ = encoder.Encode(req)
			}
		})
	}
}

// BenchmarkPayloadDecode benchmarks recovering a payload from transaction outputs.
func BenchmarkPayloadDecode(b *testing.B) {
	w := NewBenchWallet(1, 0, 0)
	encoder := payload.NewEncoder(w.Keys)
	for _, size := range PayloadSizes() {
		data := MustPayloadFixture(size.Size)
		b.Run(size.Name, func(b *testing.B) {
			encoding, err := encoder.Encode(payload.Request{Payload: data, Sender: w.Addrs[0]})
			if err != nil {
				b.Fatalf("Encode failed for %s: %v", size.Name, err)
			}
			b.SetBytes(int64(size.Size))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				benchSink, _, _ = payload.Decode(encoding.Outputs, w.Addrs[0])
			}
		})
	}
}

// BenchmarkTxDecode benchmarks wire decoding by transaction shape.
func BenchmarkTxDecode(b *testing.B) {
	for _, shape := range []struct {
		name    string
		inputs  int
		outputs int
	}{
		{"1in_3out", 1, 3},
		{"10in_10out", 10, 10},
		{"100in_2out", 100, 2},
	} {
		raw := TxFixture(shape.inputs, shape.outputs).Bytes()
		b.Run(shape.name, func(b *testing.B) {
			b.SetBytes(int64(len(raw)))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				benchSink, _ = ledger.NewTransactionFromBytes(raw)
			}
		})
	}
}

// BenchmarkTxHash benchmarks transaction id calculation.
func BenchmarkTxHash(b *testing.B) {
	tx := TxFixture(10, 10)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchSink = tx.TxHash()
	}
}

// BenchmarkSignatureHash benchmarks the legacy signature digest.
func BenchmarkSignatureHash(b *testing.B) {
	tx := TxFixture(10, 10)
	prevScript := tx.Outputs[0].PkScript
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchSink, _ = ledger.SignatureHash(tx, i%len(tx.Inputs), prevScript, ledger.SigHashAll)
	}
}

// BenchmarkSendCreateOnly benchmarks selection, assembly and signing without submission.
func BenchmarkSendCreateOnly(b *testing.B) {
	for _, size := range PayloadSizes() {
		data := MustPayloadFixture(size.Size)
		b.Run(size.Name, func(b *testing.B) {
			w := NewBenchWallet(2, 4, ledger.Coin)
			builder := txbuilder.New(w.Ledger, w.Keys, txbuilder.WithLogger(DiscardLogger()))
			req := txbuilder.SendRequest{
				Sender:   w.Addrs[0],
				Receiver: &w.Addrs[1],
				Payload:  data,
				Mode:     txbuilder.CommitCreateOnly,
			}
			if _, err := builder.Send(req); err != nil {
				b.Fatalf("Send failed for %s: %v", size.Name, err)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				benchSink, _ = builder.Send(req)
			}
		})
	}
}
