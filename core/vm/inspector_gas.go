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
	"github.com/silexvm/silex/common"
)

// GasInspector tracks gas consumption across the frames it observes. It
// never overrides an outcome.
type GasInspector struct {
	NoopInspector

	gasRemaining uint64
	lastGasCost  uint64
}

var _ Inspector = (*GasInspector)(nil)

// GasRemaining returns the gas left after the most recent observation.
func (g *GasInspector) GasRemaining() uint64 {
	return g.gasRemaining
}

// LastGasCost returns the cost of the most recently observed step.
func (g *GasInspector) LastGasCost() uint64 {
	return g.lastGasCost
}

func (g *GasInspector) InitializeInterp(interp *Interpreter, _ bool) Signal {
	g.gasRemaining = interp.Gas.Limit()
	return SignalContinue
}

func (g *GasInspector) StepEnd(interp *Interpreter, _ bool, _ Signal) Signal {
	remaining := interp.Gas.Remaining()
	if g.gasRemaining >= remaining {
		g.lastGasCost = g.gasRemaining - remaining
	}
	g.gasRemaining = remaining
	return SignalContinue
}

func (g *GasInspector) CallEnd(_ *Interpreter, _ *CallInputs, remaining Gas, outcome Signal, output []byte, _ bool) (Signal, Gas, []byte) {
	g.gasRemaining = remaining.Remaining()
	return outcome, remaining, output
}

func (g *GasInspector) CreateEnd(_ *Interpreter, _ *CreateInputs, outcome Signal, address *common.Address, remaining Gas, output []byte) (Signal, *common.Address, Gas, []byte) {
	g.gasRemaining = remaining.Remaining()
	return outcome, address, remaining, output
}
