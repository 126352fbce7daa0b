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

// Package bn254 wraps the gnark-crypto bn254 curve with the point encoding
// used on the wire by the elliptic-curve built-in contracts: uncompressed
// big-endian affine coordinates, with the point at infinity encoded as all
// zero bytes and non-canonical field elements rejected.
package bn254

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bn254"
)

var (
	// ErrInvalidCoordinate is returned when a coordinate is not a canonical
	// field element (greater or equal to the field modulus).
	ErrInvalidCoordinate = errors.New("bn254: coordinate exceeds field modulus")
	// ErrPointNotOnCurve is returned when the coordinates do not satisfy the
	// curve equation.
	ErrPointNotOnCurve = errors.New("bn254: point is not on curve")
	// ErrPointNotInSubgroup is returned when a G2 point is on the twist but
	// outside the r-torsion subgroup.
	ErrPointNotInSubgroup = errors.New("bn254: point is not in correct subgroup")
)

// UnmarshalG1 decodes a 64-byte (x || y) blob into p. The all-zero blob
// decodes to the point at infinity.
func UnmarshalG1(in []byte, p *bn254.G1Affine) error {
	if err := p.X.SetBytesCanonical(in[:32]); err != nil {
		return ErrInvalidCoordinate
	}
	if err := p.Y.SetBytesCanonical(in[32:64]); err != nil {
		return ErrInvalidCoordinate
	}
	if !p.IsOnCurve() {
		return ErrPointNotOnCurve
	}
	return nil
}

// MarshalG1 encodes p as 64 bytes of big-endian affine coordinates.
func MarshalG1(p *bn254.G1Affine) []byte {
	out := make([]byte, 64)
	xb := p.X.Bytes()
	yb := p.Y.Bytes()
	copy(out[:32], xb[:])
	copy(out[32:], yb[:])
	return out
}

// UnmarshalG2 decodes a 128-byte blob into p. The twist coordinates arrive
// imaginary part first: (x_im || x_re || y_im || y_re).
func UnmarshalG2(in []byte, p *bn254.G2Affine) error {
	if err := p.X.A1.SetBytesCanonical(in[:32]); err != nil {
		return ErrInvalidCoordinate
	}
	if err := p.X.A0.SetBytesCanonical(in[32:64]); err != nil {
		return ErrInvalidCoordinate
	}
	if err := p.Y.A1.SetBytesCanonical(in[64:96]); err != nil {
		return ErrInvalidCoordinate
	}
	if err := p.Y.A0.SetBytesCanonical(in[96:128]); err != nil {
		return ErrInvalidCoordinate
	}
	if !p.IsOnCurve() {
		return ErrPointNotOnCurve
	}
	if !p.IsInSubGroup() {
		return ErrPointNotInSubgroup
	}
	return nil
}

// PairingCheck computes the product of pairings over the given points and
// reports whether it equals one. The empty product is the identity.
func PairingCheck(as []bn254.G1Affine, bs []bn254.G2Affine) (bool, error) {
	if len(as) != len(bs) {
		return false, errors.New("bn254: mismatched pairing operand counts")
	}
	if len(as) == 0 {
		return true, nil
	}
	return bn254.PairingCheck(as, bs)
}
