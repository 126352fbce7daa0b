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
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"math"
	"math/big"

	gnark "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/holiman/uint256"
	"github.com/silexvm/silex/common"
	"github.com/silexvm/silex/crypto"
	"github.com/silexvm/silex/crypto/blake2b"
	"github.com/silexvm/silex/crypto/bn254"
	"github.com/silexvm/silex/params"
	"golang.org/x/crypto/ripemd160"
)

// PrecompiledContract is the interface a built-in contract implements. The
// gas charge is computed before Run executes so that a too-small gas limit
// fails without doing the work.
type PrecompiledContract interface {
	RequiredGas(input []byte) uint64
	Run(input []byte) ([]byte, error)
}

// LinearCost returns the charge for an input of the given length priced per
// 32-byte word on top of a fixed base. Arithmetic wraps on uint64 overflow;
// callers bound length.
func LinearCost(length int, base, word uint64) uint64 {
	return word*((uint64(length)+31)/32) + base
}

// RunPrecompiledContract runs p against input, deducting the required gas
// from suppliedGas up front. The leftover gas is returned alongside the
// output; ErrOutOfGas is returned when suppliedGas cannot cover the charge.
func RunPrecompiledContract(p PrecompiledContract, input []byte, suppliedGas uint64) (ret []byte, remainingGas uint64, err error) {
	gasCost := p.RequiredGas(input)
	if suppliedGas < gasCost {
		return nil, 0, ErrOutOfGas
	}
	suppliedGas -= gasCost
	output, err := p.Run(input)
	return output, suppliedGas, err
}

// getData returns a slice of data at [start, start+size), right-padded with
// zeros past the end of data.
func getData(data []byte, start uint64, size uint64) []byte {
	length := uint64(len(data))
	if start > length {
		start = length
	}
	end := start + size
	if end > length {
		end = length
	}
	return common.RightPadBytes(data[start:end], int(size))
}

func allZero(b []byte) bool {
	for _, x := range b {
		if x != 0 {
			return false
		}
	}
	return true
}

// ecrecover implements the 0x01 built-in: public key recovery from an
// ECDSA signature over secp256k1.
type ecrecover struct{}

func (c *ecrecover) RequiredGas(input []byte) uint64 {
	return params.EcrecoverGas
}

func (c *ecrecover) Run(input []byte) ([]byte, error) {
	const ecRecoverInputLength = 128

	input = common.RightPadBytes(input, ecRecoverInputLength)
	// layout is (hash, v, r, s), 32 bytes each; v occupies a full word but
	// only the last byte may carry a value

	r := new(uint256.Int).SetBytes(input[64:96])
	s := new(uint256.Int).SetBytes(input[96:128])
	v := input[63] - 27

	// the homestead s-value restriction applies to transaction signatures
	// only, not to this contract
	if !allZero(input[32:63]) || !crypto.ValidateSignatureValues(v, r, s, false) {
		return nil, nil
	}
	// input must stay untouched, so the (r, s, v) signature the recovery
	// routine wants is assembled in a fresh buffer
	sig := make([]byte, 65)
	copy(sig, input[64:128])
	sig[64] = v

	pubKey, err := crypto.Ecrecover(input[:32], sig)
	if err != nil {
		// unrecoverable signatures yield empty output, not a failure
		return nil, nil
	}
	return common.LeftPadBytes(crypto.Keccak256(pubKey[1:])[12:], 32), nil
}

// sha256hash implements the 0x02 built-in.
type sha256hash struct{}

func (c *sha256hash) RequiredGas(input []byte) uint64 {
	return LinearCost(len(input), params.Sha256BaseGas, params.Sha256PerWordGas)
}

func (c *sha256hash) Run(input []byte) ([]byte, error) {
	h := sha256.Sum256(input)
	return h[:], nil
}

// ripemd160hash implements the 0x03 built-in.
type ripemd160hash struct{}

func (c *ripemd160hash) RequiredGas(input []byte) uint64 {
	return LinearCost(len(input), params.Ripemd160BaseGas, params.Ripemd160PerWordGas)
}

func (c *ripemd160hash) Run(input []byte) ([]byte, error) {
	ripemd := ripemd160.New()
	ripemd.Write(input)
	return common.LeftPadBytes(ripemd.Sum(nil), 32), nil
}

// dataCopy implements the 0x04 built-in, the identity function.
type dataCopy struct{}

func (c *dataCopy) RequiredGas(input []byte) uint64 {
	return LinearCost(len(input), params.IdentityBaseGas, params.IdentityPerWordGas)
}

func (c *dataCopy) Run(input []byte) ([]byte, error) {
	return common.CopyBytes(input), nil
}

// bigModExp implements the 0x05 built-in: arbitrary-precision modular
// exponentiation. The eip2565 flag selects the Berlin repricing.
type bigModExp struct {
	eip2565 bool
}

var (
	big1      = big.NewInt(1)
	big3      = big.NewInt(3)
	big4      = big.NewInt(4)
	big7      = big.NewInt(7)
	big8      = big.NewInt(8)
	big16     = big.NewInt(16)
	big32     = big.NewInt(32)
	big64     = big.NewInt(64)
	big96     = big.NewInt(96)
	big480    = big.NewInt(480)
	big1024   = big.NewInt(1024)
	big3072   = big.NewInt(3072)
	big199680 = big.NewInt(199680)
)

func bigMax(x, y *big.Int) *big.Int {
	if x.Cmp(y) < 0 {
		return y
	}
	return x
}

// modexpMultComplexity implements the EIP-198 multiplication complexity
// formula, destroying x in the process.
func modexpMultComplexity(x *big.Int) *big.Int {
	switch {
	case x.Cmp(big64) <= 0:
		x.Mul(x, x) // x ** 2
	case x.Cmp(big1024) <= 0:
		// (x ** 2 // 4 ) + ( 96 * x - 3072)
		x = new(big.Int).Add(
			new(big.Int).Div(new(big.Int).Mul(x, x), big4),
			new(big.Int).Sub(new(big.Int).Mul(big96, x), big3072),
		)
	default:
		// (x ** 2 // 16) + (480 * x - 199680)
		x = new(big.Int).Add(
			new(big.Int).Div(new(big.Int).Mul(x, x), big16),
			new(big.Int).Sub(new(big.Int).Mul(big480, x), big199680),
		)
	}
	return x
}

func (c *bigModExp) RequiredGas(input []byte) uint64 {
	var (
		baseLen = new(big.Int).SetBytes(getData(input, 0, 32))
		expLen  = new(big.Int).SetBytes(getData(input, 32, 32))
		modLen  = new(big.Int).SetBytes(getData(input, 64, 32))
	)
	if len(input) > 96 {
		input = input[96:]
	} else {
		input = input[:0]
	}
	// the head word of the exponent drives the adjusted exponent length
	var expHead *big.Int
	if big.NewInt(int64(len(input))).Cmp(baseLen) <= 0 {
		expHead = new(big.Int)
	} else {
		if expLen.Cmp(big32) > 0 {
			expHead = new(big.Int).SetBytes(getData(input, baseLen.Uint64(), 32))
		} else {
			expHead = new(big.Int).SetBytes(getData(input, baseLen.Uint64(), expLen.Uint64()))
		}
	}
	var msb int
	if bitlen := expHead.BitLen(); bitlen > 0 {
		msb = bitlen - 1
	}
	adjExpLen := new(big.Int)
	if expLen.Cmp(big32) > 0 {
		adjExpLen.Sub(expLen, big32)
		adjExpLen.Mul(big8, adjExpLen)
	}
	adjExpLen.Add(adjExpLen, big.NewInt(int64(msb)))

	gas := new(big.Int).Set(bigMax(modLen, baseLen))
	if c.eip2565 {
		// EIP-2565: ceil(x/8)^2 complexity, divisor 3, floor of 200 gas
		gas.Add(gas, big7)
		gas.Div(gas, big8)
		gas.Mul(gas, gas)

		gas.Mul(gas, bigMax(adjExpLen, big1))
		gas.Div(gas, big3)
		if gas.BitLen() > 64 {
			return math.MaxUint64
		}
		if gas.Uint64() < params.ModExpMinGas {
			return params.ModExpMinGas
		}
		return gas.Uint64()
	}
	gas = modexpMultComplexity(gas)
	gas.Mul(gas, bigMax(adjExpLen, big1))
	gas.Div(gas, new(big.Int).SetUint64(params.ModExpQuadCoeffDiv))
	if gas.BitLen() > 64 {
		return math.MaxUint64
	}
	return gas.Uint64()
}

func (c *bigModExp) Run(input []byte) ([]byte, error) {
	var (
		baseLen = new(big.Int).SetBytes(getData(input, 0, 32)).Uint64()
		expLen  = new(big.Int).SetBytes(getData(input, 32, 32)).Uint64()
		modLen  = new(big.Int).SetBytes(getData(input, 64, 32)).Uint64()
	)
	if len(input) > 96 {
		input = input[96:]
	} else {
		input = input[:0]
	}
	if baseLen == 0 && modLen == 0 {
		return []byte{}, nil
	}
	var (
		base = new(big.Int).SetBytes(getData(input, 0, baseLen))
		exp  = new(big.Int).SetBytes(getData(input, baseLen, expLen))
		mod  = new(big.Int).SetBytes(getData(input, baseLen+expLen, modLen))
		v    []byte
	)
	switch {
	case mod.BitLen() == 0:
		// modulo 0 is undefined, return zero
		return common.LeftPadBytes([]byte{}, int(modLen)), nil
	case base.BitLen() == 1:
		// base is one, the result is 1 mod m for any exponent
		v = base.Mod(base, mod).Bytes()
	default:
		v = base.Exp(base, exp, mod).Bytes()
	}
	return common.LeftPadBytes(v, int(modLen)), nil
}

// runBn256Add implements the point addition behind the 0x06 built-in,
// shared by the Byzantium and Istanbul pricings.
func runBn256Add(input []byte) ([]byte, error) {
	var p1, p2 gnark.G1Affine
	if err := bn254.UnmarshalG1(getData(input, 0, 64), &p1); err != nil {
		return nil, err
	}
	if err := bn254.UnmarshalG1(getData(input, 64, 64), &p2); err != nil {
		return nil, err
	}
	var res gnark.G1Affine
	res.Add(&p1, &p2)
	return bn254.MarshalG1(&res), nil
}

// bn256AddByzantium implements the 0x06 built-in under Byzantium pricing.
type bn256AddByzantium struct{}

func (c *bn256AddByzantium) RequiredGas(input []byte) uint64 {
	return params.Bn256AddGasByzantium
}

func (c *bn256AddByzantium) Run(input []byte) ([]byte, error) {
	return runBn256Add(input)
}

// bn256AddIstanbul implements the 0x06 built-in under EIP-1108 pricing.
type bn256AddIstanbul struct{}

func (c *bn256AddIstanbul) RequiredGas(input []byte) uint64 {
	return params.Bn256AddGasIstanbul
}

func (c *bn256AddIstanbul) Run(input []byte) ([]byte, error) {
	return runBn256Add(input)
}

// runBn256ScalarMul implements the scalar multiplication behind the 0x07
// built-in, shared by the Byzantium and Istanbul pricings.
func runBn256ScalarMul(input []byte) ([]byte, error) {
	var p gnark.G1Affine
	if err := bn254.UnmarshalG1(getData(input, 0, 64), &p); err != nil {
		return nil, err
	}
	scalar := new(big.Int).SetBytes(getData(input, 64, 32))

	var res gnark.G1Affine
	res.ScalarMultiplication(&p, scalar)
	return bn254.MarshalG1(&res), nil
}

// bn256ScalarMulByzantium implements the 0x07 built-in under Byzantium pricing.
type bn256ScalarMulByzantium struct{}

func (c *bn256ScalarMulByzantium) RequiredGas(input []byte) uint64 {
	return params.Bn256ScalarMulGasByzantium
}

func (c *bn256ScalarMulByzantium) Run(input []byte) ([]byte, error) {
	return runBn256ScalarMul(input)
}

// bn256ScalarMulIstanbul implements the 0x07 built-in under EIP-1108 pricing.
type bn256ScalarMulIstanbul struct{}

func (c *bn256ScalarMulIstanbul) RequiredGas(input []byte) uint64 {
	return params.Bn256ScalarMulGasIstanbul
}

func (c *bn256ScalarMulIstanbul) Run(input []byte) ([]byte, error) {
	return runBn256ScalarMul(input)
}

var (
	// true32Byte is returned when the bn256 pairing check succeeds.
	true32Byte = []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1}

	// false32Byte is returned when the bn256 pairing check fails.
	false32Byte = make([]byte, 32)

	// errBadPairingInput is returned if the bn256 pairing input is invalid.
	errBadPairingInput = errors.New("bad elliptic curve pairing size")
)

// runBn256Pairing implements the pairing check behind the 0x08 built-in,
// shared by the Byzantium and Istanbul pricings.
func runBn256Pairing(input []byte) ([]byte, error) {
	// input is a sequence of 192-byte (G1, G2) pairs, no padding
	if len(input)%192 > 0 {
		return nil, errBadPairingInput
	}
	var (
		cs []gnark.G1Affine
		ts []gnark.G2Affine
	)
	for i := 0; i < len(input); i += 192 {
		var c gnark.G1Affine
		if err := bn254.UnmarshalG1(input[i:i+64], &c); err != nil {
			return nil, err
		}
		var t gnark.G2Affine
		if err := bn254.UnmarshalG2(input[i+64:i+192], &t); err != nil {
			return nil, err
		}
		cs = append(cs, c)
		ts = append(ts, t)
	}
	ok, err := bn254.PairingCheck(cs, ts)
	if err != nil {
		return nil, err
	}
	if ok {
		return true32Byte, nil
	}
	return false32Byte, nil
}

// bn256PairingByzantium implements the 0x08 built-in under Byzantium pricing.
type bn256PairingByzantium struct{}

func (c *bn256PairingByzantium) RequiredGas(input []byte) uint64 {
	return params.Bn256PairingBaseGasByzantium + uint64(len(input)/192)*params.Bn256PairingPerPointGasByzantium
}

func (c *bn256PairingByzantium) Run(input []byte) ([]byte, error) {
	return runBn256Pairing(input)
}

// bn256PairingIstanbul implements the 0x08 built-in under EIP-1108 pricing.
type bn256PairingIstanbul struct{}

func (c *bn256PairingIstanbul) RequiredGas(input []byte) uint64 {
	return params.Bn256PairingBaseGasIstanbul + uint64(len(input)/192)*params.Bn256PairingPerPointGasIstanbul
}

func (c *bn256PairingIstanbul) Run(input []byte) ([]byte, error) {
	return runBn256Pairing(input)
}

// blake2F implements the 0x09 built-in: the BLAKE2b compression function
// exposed per EIP-152.
type blake2F struct{}

const (
	blake2FInputLength        = 213
	blake2FFinalBlockBytes    = byte(1)
	blake2FNonFinalBlockBytes = byte(0)
)

func (c *blake2F) RequiredGas(input []byte) uint64 {
	// malformed input cannot be priced; charge nothing and let Run fault
	if len(input) != blake2FInputLength {
		return 0
	}
	return uint64(binary.BigEndian.Uint32(input[0:4])) * params.Blake2FPerRoundGas
}

var (
	errBlake2FInvalidInputLength = errors.New("invalid input length")
	errBlake2FInvalidFinalFlag   = errors.New("invalid final flag")
)

func (c *blake2F) Run(input []byte) ([]byte, error) {
	if len(input) != blake2FInputLength {
		return nil, errBlake2FInvalidInputLength
	}
	if input[212] != blake2FNonFinalBlockBytes && input[212] != blake2FFinalBlockBytes {
		return nil, errBlake2FInvalidFinalFlag
	}
	var (
		rounds = binary.BigEndian.Uint32(input[0:4])
		final  = input[212] == blake2FFinalBlockBytes

		h [8]uint64
		m [16]uint64
		t [2]uint64
	)
	for i := 0; i < 8; i++ {
		offset := 4 + i*8
		h[i] = binary.LittleEndian.Uint64(input[offset : offset+8])
	}
	for i := 0; i < 16; i++ {
		offset := 68 + i*8
		m[i] = binary.LittleEndian.Uint64(input[offset : offset+8])
	}
	t[0] = binary.LittleEndian.Uint64(input[196:204])
	t[1] = binary.LittleEndian.Uint64(input[204:212])

	blake2b.F(&h, m, t, final, rounds)

	output := make([]byte, 64)
	for i := 0; i < 8; i++ {
		offset := i * 8
		binary.LittleEndian.PutUint64(output[offset:offset+8], h[i])
	}
	return output, nil
}
