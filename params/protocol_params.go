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

// Package params holds the protocol gas schedule for the built-in contracts.
package params

const (
	// CallCreateDepth is the maximum depth of call/create stack.
	CallCreateDepth uint64 = 1024

	// EcrecoverGas is the elliptic curve sender recovery gas price.
	EcrecoverGas uint64 = 3000

	// Sha256BaseGas is the base price for a SHA256 operation.
	Sha256BaseGas uint64 = 60
	// Sha256PerWordGas is the per-word price for a SHA256 operation.
	Sha256PerWordGas uint64 = 12

	// Ripemd160BaseGas is the base price for a RIPEMD160 operation.
	Ripemd160BaseGas uint64 = 600
	// Ripemd160PerWordGas is the per-word price for a RIPEMD160 operation.
	Ripemd160PerWordGas uint64 = 120

	// IdentityBaseGas is the base price for a data copy operation.
	IdentityBaseGas uint64 = 15
	// IdentityPerWordGas is the per-work price for a data copy operation.
	IdentityPerWordGas uint64 = 3

	// ModExpQuadCoeffDiv is the quadratic coefficient divisor (EIP-198 pricing).
	ModExpQuadCoeffDiv uint64 = 20
	// ModExpMinGas is the floor charged for a MODEXP call under EIP-2565 pricing.
	ModExpMinGas uint64 = 200

	// Bn256AddGasByzantium is the Byzantium gas needed for an elliptic curve addition.
	Bn256AddGasByzantium uint64 = 500
	// Bn256AddGasIstanbul is the Istanbul (EIP-1108) gas needed for an elliptic curve addition.
	Bn256AddGasIstanbul uint64 = 150
	// Bn256ScalarMulGasByzantium is the Byzantium gas needed for an elliptic curve scalar multiplication.
	Bn256ScalarMulGasByzantium uint64 = 40000
	// Bn256ScalarMulGasIstanbul is the Istanbul (EIP-1108) gas needed for an elliptic curve scalar multiplication.
	Bn256ScalarMulGasIstanbul uint64 = 6000
	// Bn256PairingBaseGasByzantium is the Byzantium base price for an elliptic curve pairing check.
	Bn256PairingBaseGasByzantium uint64 = 100000
	// Bn256PairingBaseGasIstanbul is the Istanbul (EIP-1108) base price for an elliptic curve pairing check.
	Bn256PairingBaseGasIstanbul uint64 = 45000
	// Bn256PairingPerPointGasByzantium is the Byzantium per-point price for an elliptic curve pairing check.
	Bn256PairingPerPointGasByzantium uint64 = 80000
	// Bn256PairingPerPointGasIstanbul is the Istanbul (EIP-1108) per-point price for an elliptic curve pairing check.
	Bn256PairingPerPointGasIstanbul uint64 = 34000

	// Blake2FPerRoundGas is the per-round price of the BLAKE2b F precompile (EIP-152).
	Blake2FPerRoundGas uint64 = 1
)
