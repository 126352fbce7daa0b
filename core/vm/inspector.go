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

// Inspector is the hook surface the engine drives at every boundary of a
// frame's execution. Hooks run synchronously and in-line; override hooks
// return the same tuple shape the engine produces natively, so a substituted
// outcome is indistinguishable from a real one downstream.
//
// Embed NoopInspector to pick up neutral defaults and override only the
// hooks of interest.
type Inspector interface {
	// InitializeInterp runs once before a frame executes its first
	// instruction. A non-continue signal aborts the frame outright.
	InitializeInterp(interp *Interpreter, static bool) Signal

	// Step runs before each instruction. A non-continue signal alters or
	// aborts execution of that instruction.
	Step(interp *Interpreter, static bool) Signal

	// StepEnd runs after each instruction with the instruction's own
	// outcome. A non-continue return overrides that outcome.
	StepEnd(interp *Interpreter, static bool, outcome Signal) Signal

	// Log runs when a log record is about to be emitted. Observe only.
	Log(interp *Interpreter, address common.Address, topics []common.Hash, data []byte)

	// Call runs before a sub-call begins. The descriptor is mutable. A
	// non-continue signal overrides the call's result entirely, skipping
	// execution of the target.
	Call(interp *Interpreter, inputs *CallInputs, static bool) (Signal, Gas, []byte)

	// CallEnd runs after a sub-call completes and its return substitutes
	// the final outcome. The neutral default passes the real outcome
	// through unchanged.
	CallEnd(interp *Interpreter, inputs *CallInputs, remaining Gas, outcome Signal, output []byte, static bool) (Signal, Gas, []byte)

	// Create runs before a contract creation begins. A non-continue signal
	// overrides the creation outcome.
	Create(interp *Interpreter, inputs *CreateInputs) (Signal, *common.Address, Gas, []byte)

	// CreateEnd runs after a contract creation completes; pass-through by
	// default, substitutable like CallEnd.
	CreateEnd(interp *Interpreter, inputs *CreateInputs, outcome Signal, address *common.Address, remaining Gas, output []byte) (Signal, *common.Address, Gas, []byte)

	// Selfdestruct runs when a contract schedules itself for deletion.
	// Observe only.
	Selfdestruct()
}

// NoopInspector implements every hook with its neutral default: observe
// nothing, override nothing. It exists to be embedded.
type NoopInspector struct{}

var _ Inspector = NoopInspector{}

func (NoopInspector) InitializeInterp(*Interpreter, bool) Signal {
	return SignalContinue
}

func (NoopInspector) Step(*Interpreter, bool) Signal {
	return SignalContinue
}

func (NoopInspector) StepEnd(*Interpreter, bool, Signal) Signal {
	return SignalContinue
}

func (NoopInspector) Log(*Interpreter, common.Address, []common.Hash, []byte) {}

func (NoopInspector) Call(_ *Interpreter, inputs *CallInputs, _ bool) (Signal, Gas, []byte) {
	return SignalContinue, NewGas(inputs.GasLimit), nil
}

func (NoopInspector) CallEnd(_ *Interpreter, _ *CallInputs, remaining Gas, outcome Signal, output []byte, _ bool) (Signal, Gas, []byte) {
	return outcome, remaining, output
}

func (NoopInspector) Create(_ *Interpreter, inputs *CreateInputs) (Signal, *common.Address, Gas, []byte) {
	return SignalContinue, nil, NewGas(inputs.GasLimit), nil
}

func (NoopInspector) CreateEnd(_ *Interpreter, _ *CreateInputs, outcome Signal, address *common.Address, remaining Gas, output []byte) (Signal, *common.Address, Gas, []byte) {
	return outcome, address, remaining, output
}

func (NoopInspector) Selfdestruct() {}
