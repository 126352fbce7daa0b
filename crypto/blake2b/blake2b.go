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

// Package blake2b exposes the BLAKE2b compression function F with a caller
// controlled round count, as required by the EIP-152 built-in contract. The
// full hash lives in golang.org/x/crypto/blake2b; only the raw compression
// step is needed here.
package blake2b

import "math/bits"

// iv holds the BLAKE2b initialization vector (RFC 7693 section 2.6).
var iv = [8]uint64{
	0x6a09e667f3bcc908, 0xbb67ae8584caa73b, 0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
	0x510e527fade682d1, 0x9b05688c2b3e6c1f, 0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
}

// sigma holds the message word schedule. Rounds beyond the tenth reuse the
// schedule modulo ten.
var sigma = [10][16]byte{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	{14, 10, 4, 8, 9, 15, 13, 6, 1, 12, 0, 2, 11, 7, 5, 3},
	{11, 8, 12, 0, 5, 2, 15, 13, 10, 14, 3, 6, 7, 1, 9, 4},
	{7, 9, 3, 1, 13, 12, 11, 14, 2, 6, 5, 10, 4, 0, 15, 8},
	{9, 0, 5, 7, 2, 4, 10, 15, 14, 1, 11, 12, 6, 8, 3, 13},
	{2, 12, 6, 10, 0, 11, 8, 3, 4, 13, 7, 5, 15, 14, 1, 9},
	{12, 5, 1, 15, 14, 13, 4, 10, 0, 7, 6, 3, 9, 2, 8, 11},
	{13, 11, 7, 14, 12, 1, 3, 9, 5, 0, 15, 4, 8, 6, 2, 10},
	{6, 15, 14, 9, 11, 3, 0, 8, 12, 2, 13, 7, 1, 4, 10, 5},
	{10, 2, 8, 4, 7, 6, 1, 5, 15, 11, 9, 14, 3, 12, 13, 0},
}

// F is the compression function of BLAKE2b. It takes the state vector h,
// message block vector m, offset counter t, final block indicator flag, and
// the number of rounds to apply, mixing the result back into h.
func F(h *[8]uint64, m [16]uint64, t [2]uint64, final bool, rounds uint32) {
	var v [16]uint64
	copy(v[:8], h[:])
	copy(v[8:], iv[:])
	v[12] ^= t[0]
	v[13] ^= t[1]
	if final {
		v[14] ^= 0xffffffffffffffff
	}

	for r := uint32(0); r < rounds; r++ {
		s := &sigma[r%10]

		g(&v[0], &v[4], &v[8], &v[12], m[s[0]], m[s[1]])
		g(&v[1], &v[5], &v[9], &v[13], m[s[2]], m[s[3]])
		g(&v[2], &v[6], &v[10], &v[14], m[s[4]], m[s[5]])
		g(&v[3], &v[7], &v[11], &v[15], m[s[6]], m[s[7]])

		g(&v[0], &v[5], &v[10], &v[15], m[s[8]], m[s[9]])
		g(&v[1], &v[6], &v[11], &v[12], m[s[10]], m[s[11]])
		g(&v[2], &v[7], &v[8], &v[13], m[s[12]], m[s[13]])
		g(&v[3], &v[4], &v[9], &v[14], m[s[14]], m[s[15]])
	}

	for i := 0; i < 8; i++ {
		h[i] ^= v[i] ^ v[i+8]
	}
}

// g is the BLAKE2b mixing function applied to a quarter of the work vector.
func g(a, b, c, d *uint64, x, y uint64) {
	*a += *b + x
	*d = bits.RotateLeft64(*d^*a, -32)
	*c += *d
	*b = bits.RotateLeft64(*b^*c, -24)
	*a += *b + y
	*d = bits.RotateLeft64(*d^*a, -16)
	*c += *d
	*b = bits.RotateLeft64(*b^*c, -63)
}
