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

package bn254

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/silexvm/silex/common"
	"github.com/stretchr/testify/require"
)

// g1Gen returns the canonical G1 generator (1, 2).
func g1Gen(t *testing.T) bn254.G1Affine {
	t.Helper()
	var p bn254.G1Affine
	in := make([]byte, 64)
	in[31] = 1
	in[63] = 2
	require.NoError(t, UnmarshalG1(in, &p))
	return p
}

func TestG1RoundTrip(t *testing.T) {
	g := g1Gen(t)

	var back bn254.G1Affine
	require.NoError(t, UnmarshalG1(MarshalG1(&g), &back))
	require.True(t, g.Equal(&back))
}

func TestG1Infinity(t *testing.T) {
	var p bn254.G1Affine
	require.NoError(t, UnmarshalG1(make([]byte, 64), &p))
	require.True(t, p.IsInfinity())
	require.Equal(t, make([]byte, 64), MarshalG1(&p))
}

func TestG1RejectsNonCanonical(t *testing.T) {
	// x equal to the field modulus is not a canonical encoding.
	in := common.Hex2Bytes("30644e72e131a029b85045b68181585d97816a916871ca8d3c208c16d87cfd47" +
		"0000000000000000000000000000000000000000000000000000000000000002")
	var p bn254.G1Affine
	require.ErrorIs(t, UnmarshalG1(in, &p), ErrInvalidCoordinate)
}

func TestG1RejectsOffCurve(t *testing.T) {
	in := make([]byte, 64)
	in[31] = 1
	in[63] = 1
	var p bn254.G1Affine
	require.ErrorIs(t, UnmarshalG1(in, &p), ErrPointNotOnCurve)
}

func TestG1DoubleMatchesScalarMul(t *testing.T) {
	g := g1Gen(t)

	var sum, twice bn254.G1Affine
	sum.Add(&g, &g)
	twice.ScalarMultiplication(&g, big.NewInt(2))
	require.True(t, sum.Equal(&twice))
}

func TestG2Infinity(t *testing.T) {
	var p bn254.G2Affine
	require.NoError(t, UnmarshalG2(make([]byte, 128), &p))
	require.True(t, p.IsInfinity())
}

func TestG2RejectsOffCurve(t *testing.T) {
	in := make([]byte, 128)
	in[63] = 1
	var p bn254.G2Affine
	require.ErrorIs(t, UnmarshalG2(in, &p), ErrPointNotOnCurve)
}

func TestPairingEmptyInput(t *testing.T) {
	ok, err := PairingCheck(nil, nil)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestPairingIdentity(t *testing.T) {
	// e(P, Q) * e(-P, Q) == 1 for generator points.
	_, _, g1, g2 := bn254.Generators()

	var neg bn254.G1Affine
	neg.Neg(&g1)

	ok, err := PairingCheck([]bn254.G1Affine{g1, neg}, []bn254.G2Affine{g2, g2})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestPairingNonTrivial(t *testing.T) {
	// A single e(P, Q) with both points non-zero is not the identity.
	_, _, g1, g2 := bn254.Generators()

	ok, err := PairingCheck([]bn254.G1Affine{g1}, []bn254.G2Affine{g2})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPairingG2RoundTrip(t *testing.T) {
	_, _, _, g2 := bn254.Generators()

	var back bn254.G2Affine
	out := make([]byte, 128)
	xa1 := g2.X.A1.Bytes()
	xa0 := g2.X.A0.Bytes()
	ya1 := g2.Y.A1.Bytes()
	ya0 := g2.Y.A0.Bytes()
	copy(out[:32], xa1[:])
	copy(out[32:64], xa0[:])
	copy(out[64:96], ya1[:])
	copy(out[96:128], ya0[:])

	require.NoError(t, UnmarshalG2(out, &back))
	require.True(t, g2.Equal(&back))
}
