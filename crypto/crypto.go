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

// Package crypto implements the hashing and signature-recovery primitives
// backing the built-in contracts.
package crypto

import (
	"errors"
	"hash"

	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"

	"github.com/silexvm/silex/common"
)

// SignatureLength indicates the byte length required to carry a signature
// with recovery id: 64 bytes ECDSA signature + 1 byte recovery id.
const SignatureLength = 64 + 1

var (
	secp256k1N     = uint256.MustFromHex("0xfffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")
	secp256k1HalfN = new(uint256.Int).Rsh(secp256k1N, 1)
)

// KeccakState wraps sha3.state. In addition to the usual hash methods, it
// also supports Read to get a variable amount of data from the hash state.
// Read is faster than Sum because it doesn't copy the internal state.
type KeccakState interface {
	hash.Hash
	Read([]byte) (int, error)
}

// NewKeccakState creates a new KeccakState.
func NewKeccakState() KeccakState {
	return sha3.NewLegacyKeccak256().(KeccakState)
}

// Keccak256 calculates and returns the Keccak256 hash of the input data.
func Keccak256(data ...[]byte) []byte {
	b := make([]byte, 32)
	d := NewKeccakState()
	for _, b := range data {
		d.Write(b)
	}
	d.Read(b)
	return b
}

// Keccak256Hash calculates and returns the Keccak256 hash of the input data,
// converting it to an internal Hash data structure.
func Keccak256Hash(data ...[]byte) (h common.Hash) {
	d := NewKeccakState()
	for _, b := range data {
		d.Write(b)
	}
	d.Read(h[:])
	return h
}

// CreateAddress creates an address given the address and nonce of the creator.
func CreateAddress(b common.Address, nonce uint64) common.Address {
	data := rlpAddressNonce(b, nonce)
	return common.BytesToAddress(Keccak256(data)[12:])
}

// CreateAddress2 creates an address given the creator, salt and init code hash,
// as specified by EIP-1014.
func CreateAddress2(b common.Address, salt common.Hash, inithash []byte) common.Address {
	return common.BytesToAddress(Keccak256([]byte{0xff}, b.Bytes(), salt.Bytes(), inithash)[12:])
}

// rlpAddressNonce encodes the two-element list [address, nonce]. The shapes
// involved are fixed (20-byte string plus a uint64) so the encoder is inlined
// rather than pulling in a generic RLP codec.
func rlpAddressNonce(b common.Address, nonce uint64) []byte {
	payload := make([]byte, 0, 32)
	payload = append(payload, 0x80+common.AddressLength)
	payload = append(payload, b.Bytes()...)
	switch {
	case nonce == 0:
		payload = append(payload, 0x80)
	case nonce < 0x80:
		payload = append(payload, byte(nonce))
	default:
		var be [8]byte
		n := 0
		for v := nonce; v > 0; v >>= 8 {
			n++
		}
		for i := 0; i < n; i++ {
			be[n-1-i] = byte(nonce >> (8 * i))
		}
		payload = append(payload, 0x80+byte(n))
		payload = append(payload, be[:n]...)
	}
	out := make([]byte, 0, len(payload)+1)
	out = append(out, 0xc0+byte(len(payload)))
	return append(out, payload...)
}

// ValidateSignatureValues verifies whether the signature values are valid with
// the given chain rules. The v value is assumed to be either 0 or 1.
func ValidateSignatureValues(v byte, r, s *uint256.Int, homestead bool) bool {
	if r.IsZero() || s.IsZero() {
		return false
	}
	// reject upper range of s values (ECDSA malleability)
	// see discussion in secp256k1/libsecp256k1/include/secp256k1.h
	if homestead && s.Gt(secp256k1HalfN) {
		return false
	}
	// Frontier: allow s to be in full N range
	return r.Lt(secp256k1N) && s.Lt(secp256k1N) && (v == 0 || v == 1)
}

var errInvalidSignature = errors.New("invalid signature")
