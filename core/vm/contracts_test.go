// Copyright 2024 The silex Authors
// This file is part of the silex library.
//
// The silex library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The silex library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the silex library. If not, see <http://www.gnu.org/licenses/>.

package vm

import (
	"bytes"
	"errors"
	"testing"

	"github.com/silexvm/silex/common"
	"github.com/silexvm/silex/params"
)

// precompiledTest defines the input/output pair for a built-in contract test.
type precompiledTest struct {
	Input, Expected string
	Name            string
}

// precompiledFailureTest defines the input/error pair for a built-in
// contract failure test.
type precompiledFailureTest struct {
	Input         string
	ExpectedError error
	Name          string
}

func testPrecompiled(t *testing.T, p PrecompiledContract, test precompiledTest) {
	t.Helper()
	in := common.Hex2Bytes(test.Input)
	gas := p.RequiredGas(in)

	t.Run(test.Name, func(t *testing.T) {
		res, remaining, err := RunPrecompiledContract(p, in, gas)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if common.Bytes2Hex(res) != test.Expected {
			t.Errorf("output mismatch: have %x, want %s", res, test.Expected)
		}
		if remaining != 0 {
			t.Errorf("remaining gas mismatch: have %d, want 0", remaining)
		}
	})
}

func testPrecompiledOOG(t *testing.T, p PrecompiledContract, test precompiledTest) {
	t.Helper()
	in := common.Hex2Bytes(test.Input)
	gas := p.RequiredGas(in) - 1

	t.Run(test.Name+"-oog", func(t *testing.T) {
		_, _, err := RunPrecompiledContract(p, in, gas)
		if !errors.Is(err, ErrOutOfGas) {
			t.Errorf("have %v, want %v", err, ErrOutOfGas)
		}
	})
}

func testPrecompiledFailure(t *testing.T, p PrecompiledContract, test precompiledFailureTest) {
	t.Helper()
	in := common.Hex2Bytes(test.Input)
	gas := p.RequiredGas(in)

	t.Run(test.Name, func(t *testing.T) {
		_, _, err := RunPrecompiledContract(p, in, gas)
		if !errors.Is(err, test.ExpectedError) {
			t.Errorf("have %v, want %v", err, test.ExpectedError)
		}
	})
}

func TestPrecompiledEcrecover(t *testing.T) {
	testPrecompiled(t, &ecrecover{}, precompiledTest{
		Input: "38d18acb67d25c8bb9942764b62f18e17054f66a817bd4295423adf9ed98873e" +
			"000000000000000000000000000000000000000000000000000000000000001b" +
			"38d18acb67d25c8bb9942764b62f18e17054f66a817bd4295423adf9ed98873e" +
			"789d1dd423d25f0772d2748d60f7e4b81bb14d086eba8e8e8efb6dcff8a4ae02",
		Expected: "000000000000000000000000ceaccac640adf55b2028469bd36ba501f28b699d",
		Name:     "ecrecover",
	})
}

func TestPrecompiledEcrecoverInvalid(t *testing.T) {
	// corrupted v and a dirty upper v word both yield empty output, no error
	tests := []precompiledTest{
		{
			Input: "38d18acb67d25c8bb9942764b62f18e17054f66a817bd4295423adf9ed98873e" +
				"00000000000000000000000000000000000000000000000000000000000000ff" +
				"38d18acb67d25c8bb9942764b62f18e17054f66a817bd4295423adf9ed98873e" +
				"789d1dd423d25f0772d2748d60f7e4b81bb14d086eba8e8e8efb6dcff8a4ae02",
			Expected: "",
			Name:     "ecrecover-bad-v",
		},
		{
			Input: "38d18acb67d25c8bb9942764b62f18e17054f66a817bd4295423adf9ed98873e" +
				"010000000000000000000000000000000000000000000000000000000000001b" +
				"38d18acb67d25c8bb9942764b62f18e17054f66a817bd4295423adf9ed98873e" +
				"789d1dd423d25f0772d2748d60f7e4b81bb14d086eba8e8e8efb6dcff8a4ae02",
			Expected: "",
			Name:     "ecrecover-dirty-high-v",
		},
		{
			Input:    "",
			Expected: "",
			Name:     "ecrecover-empty",
		},
	}
	for _, test := range tests {
		testPrecompiled(t, &ecrecover{}, test)
	}
}

func TestPrecompiledSha256(t *testing.T) {
	testPrecompiled(t, &sha256hash{}, precompiledTest{
		Input: "38d18acb67d25c8bb9942764b62f18e17054f66a817bd4295423adf9ed98873e" +
			"000000000000000000000000000000000000000000000000000000000000001b" +
			"38d18acb67d25c8bb9942764b62f18e17054f66a817bd4295423adf9ed98873e" +
			"789d1dd423d25f0772d2748d60f7e4b81bb14d086eba8e8e8efb6dcff8a4ae02",
		Expected: "811c7003375852fabd0d362e40e68607a12bdabae61a7d068fe5fdd1dbbf2a5d",
		Name:     "sha256",
	})
}

func TestPrecompiledRipemd160(t *testing.T) {
	testPrecompiled(t, &ripemd160hash{}, precompiledTest{
		Input: "38d18acb67d25c8bb9942764b62f18e17054f66a817bd4295423adf9ed98873e" +
			"000000000000000000000000000000000000000000000000000000000000001b" +
			"38d18acb67d25c8bb9942764b62f18e17054f66a817bd4295423adf9ed98873e" +
			"789d1dd423d25f0772d2748d60f7e4b81bb14d086eba8e8e8efb6dcff8a4ae02",
		Expected: "0000000000000000000000009215b8d9882ff46f0dfde6684d78e831467f65e6",
		Name:     "ripemd160",
	})
}

func TestPrecompiledIdentity(t *testing.T) {
	in := "38d18acb67d25c8bb9942764b62f18e17054f66a817bd4295423adf9ed98873e"
	testPrecompiled(t, &dataCopy{}, precompiledTest{
		Input:    in,
		Expected: in,
		Name:     "identity",
	})
	testPrecompiledOOG(t, &dataCopy{}, precompiledTest{
		Input: in,
		Name:  "identity",
	})
}

func modexpInput(base, exp, mod []byte) string {
	header := make([]byte, 96)
	header[31] = byte(len(base))
	header[63] = byte(len(exp))
	header[95] = byte(len(mod))
	return common.Bytes2Hex(header) + common.Bytes2Hex(base) + common.Bytes2Hex(exp) + common.Bytes2Hex(mod)
}

func TestPrecompiledModExp(t *testing.T) {
	tests := []precompiledTest{
		{
			// 3^5 mod 7 == 5
			Input:    modexpInput([]byte{3}, []byte{5}, []byte{7}),
			Expected: "05",
			Name:     "modexp-small",
		},
		{
			// 2^10 mod 1000 == 24, padded to the modulus width
			Input:    modexpInput([]byte{2}, []byte{10}, []byte{0x03, 0xe8}),
			Expected: "0018",
			Name:     "modexp-two-byte-mod",
		},
		{
			// zero modulus is defined as zero output
			Input:    modexpInput([]byte{3}, []byte{5}, []byte{0}),
			Expected: "00",
			Name:     "modexp-zero-mod",
		},
		{
			// empty base and modulus short-circuit to empty output
			Input:    modexpInput(nil, []byte{5}, nil),
			Expected: "",
			Name:     "modexp-empty",
		},
	}
	for _, test := range tests {
		testPrecompiled(t, &bigModExp{eip2565: false}, test)
		testPrecompiled(t, &bigModExp{eip2565: true}, test)
	}
}

func TestModExpGasFloor(t *testing.T) {
	in := common.Hex2Bytes(modexpInput([]byte{3}, []byte{5}, []byte{7}))
	if gas := (&bigModExp{eip2565: true}).RequiredGas(in); gas != params.ModExpMinGas {
		t.Errorf("berlin modexp gas: have %d, want %d", gas, params.ModExpMinGas)
	}
	if gas := (&bigModExp{eip2565: false}).RequiredGas(in); gas >= params.ModExpMinGas {
		t.Errorf("byzantium modexp gas should undercut the berlin floor, have %d", gas)
	}
}

// g1GeneratorHex is the bn256 G1 generator (1, 2) in contract encoding.
const g1GeneratorHex = "0000000000000000000000000000000000000000000000000000000000000001" +
	"0000000000000000000000000000000000000000000000000000000000000002"

const zero64Hex = "0000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000000"

func TestPrecompiledBn256Add(t *testing.T) {
	tests := []precompiledTest{
		{
			Input:    g1GeneratorHex + zero64Hex,
			Expected: g1GeneratorHex,
			Name:     "bn256add-g-plus-zero",
		},
		{
			Input:    zero64Hex + zero64Hex,
			Expected: zero64Hex,
			Name:     "bn256add-zero-plus-zero",
		},
		{
			// short input is zero-padded, G + 0 again
			Input:    g1GeneratorHex,
			Expected: g1GeneratorHex,
			Name:     "bn256add-short-input",
		},
	}
	for _, test := range tests {
		testPrecompiled(t, &bn256AddByzantium{}, test)
		testPrecompiled(t, &bn256AddIstanbul{}, test)
	}
}

func TestPrecompiledBn256AddOffCurve(t *testing.T) {
	bad := "0000000000000000000000000000000000000000000000000000000000000001" +
		"0000000000000000000000000000000000000000000000000000000000000001" +
		zero64Hex
	in := common.Hex2Bytes(bad)
	p := &bn256AddIstanbul{}
	if _, _, err := RunPrecompiledContract(p, in, p.RequiredGas(in)); err == nil {
		t.Fatal("expected off-curve point to be rejected")
	}
}

func TestPrecompiledBn256ScalarMul(t *testing.T) {
	tests := []precompiledTest{
		{
			Input: g1GeneratorHex +
				"0000000000000000000000000000000000000000000000000000000000000001",
			Expected: g1GeneratorHex,
			Name:     "bn256mul-g-times-one",
		},
		{
			Input: g1GeneratorHex +
				"0000000000000000000000000000000000000000000000000000000000000000",
			Expected: zero64Hex,
			Name:     "bn256mul-g-times-zero",
		},
	}
	for _, test := range tests {
		testPrecompiled(t, &bn256ScalarMulByzantium{}, test)
		testPrecompiled(t, &bn256ScalarMulIstanbul{}, test)
	}
}

func TestPrecompiledBn256Pairing(t *testing.T) {
	g2InfinityHex := zero64Hex + zero64Hex

	tests := []precompiledTest{
		{
			// the empty product is the identity
			Input:    "",
			Expected: common.Bytes2Hex(true32Byte),
			Name:     "bn256pairing-empty",
		},
		{
			// e(G1, O) == 1
			Input:    g1GeneratorHex + g2InfinityHex,
			Expected: common.Bytes2Hex(true32Byte),
			Name:     "bn256pairing-infinity-g2",
		},
	}
	for _, test := range tests {
		testPrecompiled(t, &bn256PairingByzantium{}, test)
		testPrecompiled(t, &bn256PairingIstanbul{}, test)
	}
}

func TestPrecompiledBn256PairingFailure(t *testing.T) {
	p := &bn256PairingIstanbul{}
	in := common.Hex2Bytes(g1GeneratorHex) // 64 bytes, not a multiple of 192
	if _, _, err := RunPrecompiledContract(p, in, p.RequiredGas(in)); !errors.Is(err, errBadPairingInput) {
		t.Fatal("expected ragged pairing input to be rejected")
	}
}

func TestPrecompiledBlake2F(t *testing.T) {
	// the RFC 7693 "abc" vector routed through the EIP-152 encoding
	testPrecompiled(t, &blake2F{}, precompiledTest{
		Input: "0000000c" +
			"48c9bdf267e6096a3ba7ca8485ae67bb2bf894fe72f36e3cf1361d5f3af54fa5" +
			"d182e6ad7f520e511f6c3e2b8c68059b6bbd41fbabd9831f79217e1319cde05b" +
			"6162630000000000000000000000000000000000000000000000000000000000" +
			"0000000000000000000000000000000000000000000000000000000000000000" +
			"0000000000000000000000000000000000000000000000000000000000000000" +
			"0000000000000000000000000000000000000000000000000000000000000000" +
			"0300000000000000" +
			"0000000000000000" +
			"01",
		Expected: "ba80a53f981c4d0d6a2797b69f12f6e94c212f14685ac4b74b12bb6fdbffa2d1" +
			"7d87c5392aab792dc252d5de4533cc9518d38aa8dbf1925ab92386edd4009923",
		Name: "blake2F-abc-12-rounds",
	})
}

func TestPrecompiledBlake2FMalformed(t *testing.T) {
	validPrefix := "0000000c" +
		"48c9bdf267e6096a3ba7ca8485ae67bb2bf894fe72f36e3cf1361d5f3af54fa5" +
		"d182e6ad7f520e511f6c3e2b8c68059b6bbd41fbabd9831f79217e1319cde05b" +
		"6162630000000000000000000000000000000000000000000000000000000000" +
		"0000000000000000000000000000000000000000000000000000000000000000" +
		"0000000000000000000000000000000000000000000000000000000000000000" +
		"0000000000000000000000000000000000000000000000000000000000000000" +
		"0300000000000000" +
		"0000000000000000"

	tests := []precompiledFailureTest{
		{
			Input:         "",
			ExpectedError: errBlake2FInvalidInputLength,
			Name:          "blake2F-empty",
		},
		{
			Input:         validPrefix, // 212 bytes, final flag missing
			ExpectedError: errBlake2FInvalidInputLength,
			Name:          "blake2F-short",
		},
		{
			Input:         validPrefix + "0100", // 214 bytes
			ExpectedError: errBlake2FInvalidInputLength,
			Name:          "blake2F-long",
		},
		{
			Input:         validPrefix + "02",
			ExpectedError: errBlake2FInvalidFinalFlag,
			Name:          "blake2F-bad-final-flag",
		},
	}
	for _, test := range tests {
		testPrecompiledFailure(t, &blake2F{}, test)
	}
}

func TestLinearCost(t *testing.T) {
	tests := []struct {
		length     int
		base, word uint64
		want       uint64
	}{
		{0, 15, 3, 15},
		{1, 15, 3, 18},
		{32, 15, 3, 18},
		{33, 15, 3, 21},
		{64, 60, 12, 84},
	}
	for _, tt := range tests {
		if got := LinearCost(tt.length, tt.base, tt.word); got != tt.want {
			t.Errorf("LinearCost(%d, %d, %d) = %d, want %d", tt.length, tt.base, tt.word, got, tt.want)
		}
	}
}

func TestIdentityPreservesInput(t *testing.T) {
	in := []byte{1, 2, 3, 4}
	out, _, err := RunPrecompiledContract(&dataCopy{}, in, 100)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(in, out) {
		t.Errorf("identity output mismatch: %x != %x", out, in)
	}
	out[0] = 9
	if in[0] == 9 {
		t.Error("identity must copy, not alias, its input")
	}
}

func BenchmarkPrecompiledSha256(b *testing.B) {
	in := common.Hex2Bytes("38d18acb67d25c8bb9942764b62f18e17054f66a817bd4295423adf9ed98873e")
	p := &sha256hash{}
	gas := p.RequiredGas(in)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = RunPrecompiledContract(p, in, gas)
	}
}

func BenchmarkPrecompiledEcrecover(b *testing.B) {
	in := common.Hex2Bytes("38d18acb67d25c8bb9942764b62f18e17054f66a817bd4295423adf9ed98873e" +
		"000000000000000000000000000000000000000000000000000000000000001b" +
		"38d18acb67d25c8bb9942764b62f18e17054f66a817bd4295423adf9ed98873e" +
		"789d1dd423d25f0772d2748d60f7e4b81bb14d086eba8e8e8efb6dcff8a4ae02")
	p := &ecrecover{}
	gas := p.RequiredGas(in)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = RunPrecompiledContract(p, in, gas)
	}
}
