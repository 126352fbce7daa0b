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

// Gas tracks the metering state of one frame: the immutable limit, the
// amount spent so far and the refund counter accumulated along the way.
type Gas struct {
	limit    uint64
	used     uint64
	refunded int64
}

// NewGas returns a fresh meter with the given limit and nothing spent.
func NewGas(limit uint64) Gas {
	return Gas{limit: limit}
}

// Limit returns the frame's gas limit.
func (g Gas) Limit() uint64 {
	return g.limit
}

// Used returns the gas spent so far.
func (g Gas) Used() uint64 {
	return g.used
}

// Remaining returns the gas still available.
func (g Gas) Remaining() uint64 {
	return g.limit - g.used
}

// Refunded returns the accumulated refund counter.
func (g Gas) Refunded() int64 {
	return g.refunded
}

// RecordCost deducts cost from the remaining gas. It reports false, leaving
// the meter untouched, when the cost exceeds what is left.
func (g *Gas) RecordCost(cost uint64) bool {
	if cost > g.limit-g.used {
		return false
	}
	g.used += cost
	return true
}

// RecordRefund adds to the refund counter.
func (g *Gas) RecordRefund(refund int64) {
	g.refunded += refund
}

// EraseCost returns previously recorded cost to the meter, used when an
// overridden outcome hands gas back.
func (g *Gas) EraseCost(returned uint64) {
	if returned > g.used {
		returned = g.used
	}
	g.used -= returned
}

// ConsumeAll spends everything that is left, the out-of-gas terminal state.
func (g *Gas) ConsumeAll() {
	g.used = g.limit
}
