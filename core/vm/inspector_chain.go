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

// ChainInspector composes inspectors into one. Observe-only hooks fan out
// to every element in order. Pre-hooks (InitializeInterp, Step, Call,
// Create) stop at the first non-continue signal, which becomes the chain's
// answer. Post-hooks (StepEnd, CallEnd, CreateEnd) thread the outcome
// through every element, each seeing the substitution of the one before it.
type ChainInspector struct {
	inspectors []Inspector
}

var _ Inspector = (*ChainInspector)(nil)

// NewChainInspector composes the given inspectors in invocation order.
func NewChainInspector(inspectors ...Inspector) *ChainInspector {
	return &ChainInspector{inspectors: inspectors}
}

func (c *ChainInspector) InitializeInterp(interp *Interpreter, static bool) Signal {
	for _, insp := range c.inspectors {
		if sig := insp.InitializeInterp(interp, static); sig != SignalContinue {
			return sig
		}
	}
	return SignalContinue
}

func (c *ChainInspector) Step(interp *Interpreter, static bool) Signal {
	for _, insp := range c.inspectors {
		if sig := insp.Step(interp, static); sig != SignalContinue {
			return sig
		}
	}
	return SignalContinue
}

func (c *ChainInspector) StepEnd(interp *Interpreter, static bool, outcome Signal) Signal {
	override := SignalContinue
	for _, insp := range c.inspectors {
		if sig := insp.StepEnd(interp, static, outcome); sig != SignalContinue {
			override = sig
			outcome = sig
		}
	}
	return override
}

func (c *ChainInspector) Log(interp *Interpreter, address common.Address, topics []common.Hash, data []byte) {
	for _, insp := range c.inspectors {
		insp.Log(interp, address, topics, data)
	}
}

func (c *ChainInspector) Call(interp *Interpreter, inputs *CallInputs, static bool) (Signal, Gas, []byte) {
	for _, insp := range c.inspectors {
		if sig, gas, output := insp.Call(interp, inputs, static); sig != SignalContinue {
			return sig, gas, output
		}
	}
	return SignalContinue, NewGas(inputs.GasLimit), nil
}

func (c *ChainInspector) CallEnd(interp *Interpreter, inputs *CallInputs, remaining Gas, outcome Signal, output []byte, static bool) (Signal, Gas, []byte) {
	for _, insp := range c.inspectors {
		outcome, remaining, output = insp.CallEnd(interp, inputs, remaining, outcome, output, static)
	}
	return outcome, remaining, output
}

func (c *ChainInspector) Create(interp *Interpreter, inputs *CreateInputs) (Signal, *common.Address, Gas, []byte) {
	for _, insp := range c.inspectors {
		if sig, addr, gas, output := insp.Create(interp, inputs); sig != SignalContinue {
			return sig, addr, gas, output
		}
	}
	return SignalContinue, nil, NewGas(inputs.GasLimit), nil
}

func (c *ChainInspector) CreateEnd(interp *Interpreter, inputs *CreateInputs, outcome Signal, address *common.Address, remaining Gas, output []byte) (Signal, *common.Address, Gas, []byte) {
	for _, insp := range c.inspectors {
		outcome, address, remaining, output = insp.CreateEnd(interp, inputs, outcome, address, remaining, output)
	}
	return outcome, address, remaining, output
}

func (c *ChainInspector) Selfdestruct() {
	for _, insp := range c.inspectors {
		insp.Selfdestruct()
	}
}
