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
	"github.com/silexvm/silex/core/types"
	"github.com/silexvm/silex/crypto"
	"github.com/silexvm/silex/params"
)

// Config configures an EVM instance. The zero value runs the latest spec
// with no inspector and no bytecode interpreter.
type Config struct {
	// Spec selects the active protocol stage, which fixes the precompile
	// table and gas pricings.
	Spec SpecID
	// Inspector receives the hook invocations. Nil disables inspection
	// entirely.
	Inspector Inspector
	// Interpreter executes bytecode for non-precompile targets. Nil makes
	// every such call fail.
	Interpreter InterpreterFunc
}

// EVM is the host object driving precompile dispatch and the inspector
// protocol for one logical execution. It is single-threaded; concurrent
// executions each get their own instance and share only the read-only
// precompile tables.
type EVM struct {
	Config Config

	precompiles *Precompiles
	depth       int
	frame       *Interpreter
	logs        []*types.Log
}

// NewEVM returns an engine running under the configured spec. The
// precompile table is resolved once, up front.
func NewEVM(config Config) *EVM {
	if config.Spec > Latest {
		config.Spec = Latest
	}
	return &EVM{
		Config:      config,
		precompiles: PrecompilesFor(config.Spec),
	}
}

// Precompiles returns the registry active under the configured spec.
func (evm *EVM) Precompiles() *Precompiles {
	return evm.precompiles
}

// Depth returns the current call stack depth.
func (evm *EVM) Depth() int {
	return evm.depth
}

// Logs returns the records emitted so far during this execution.
func (evm *EVM) Logs() []*types.Log {
	return evm.logs
}

// Call runs a sub-call frame. The Call hook fires first and a non-continue
// signal from it replaces the whole call, skipping target execution; the
// CallEnd hook fires last and its return is the final outcome.
func (evm *EVM) Call(inputs *CallInputs) (Signal, Gas, []byte) {
	if evm.depth >= int(params.CallCreateDepth) {
		gas := NewGas(inputs.GasLimit)
		gas.ConsumeAll()
		return signalFromError(ErrDepth), gas, nil
	}
	interp := &Interpreter{Contract: inputs.Target, Gas: NewGas(inputs.GasLimit)}

	if insp := evm.Config.Inspector; insp != nil {
		if sig, gas, output := insp.Call(interp, inputs, inputs.IsStatic); sig != SignalContinue {
			return sig, gas, output
		}
		// the hook may have rewritten the descriptor, including the limit
		interp.Contract = inputs.Target
		interp.Gas = NewGas(inputs.GasLimit)
	}

	evm.depth++
	sig, gas, output := evm.executeCall(interp, inputs)
	evm.depth--

	if insp := evm.Config.Inspector; insp != nil {
		sig, gas, output = insp.CallEnd(interp, inputs, gas, sig, output, inputs.IsStatic)
	}
	return sig, gas, output
}

func (evm *EVM) executeCall(interp *Interpreter, inputs *CallInputs) (Signal, Gas, []byte) {
	prev := evm.frame
	evm.frame = interp
	defer func() { evm.frame = prev }()

	if p, ok := evm.precompiles.Get(inputs.Target); ok {
		out, err := RunPrecompile(p, inputs.Input, interp.Gas.Remaining())
		if err != nil {
			// a failed precompile forfeits the frame's gas
			interp.Gas.ConsumeAll()
			return signalFromError(err), interp.Gas, nil
		}
		interp.Gas.RecordCost(out.GasUsed)
		interp.ReturnData = out.Output
		for i := range out.Logs {
			evm.EmitLog(out.Logs[i].Address, out.Logs[i].Topics, out.Logs[i].Data)
		}
		return SignalReturn, interp.Gas, out.Output
	}

	if evm.Config.Interpreter == nil {
		interp.Gas.ConsumeAll()
		return signalFromError(ErrNoInterpreter), interp.Gas, nil
	}
	if insp := evm.Config.Inspector; insp != nil {
		if sig := insp.InitializeInterp(interp, inputs.IsStatic); sig != SignalContinue {
			return sig, interp.Gas, nil
		}
	}
	sig, output := evm.Config.Interpreter(evm, interp, inputs.Input)
	interp.ReturnData = output
	return sig, interp.Gas, output
}

// Create runs a contract-creation frame. Hook order mirrors Call, with the
// derived address threaded through the end hook.
func (evm *EVM) Create(inputs *CreateInputs) (Signal, *common.Address, Gas, []byte) {
	if evm.depth >= int(params.CallCreateDepth) {
		gas := NewGas(inputs.GasLimit)
		gas.ConsumeAll()
		return signalFromError(ErrDepth), nil, gas, nil
	}
	interp := &Interpreter{Gas: NewGas(inputs.GasLimit)}

	if insp := evm.Config.Inspector; insp != nil {
		if sig, addr, gas, output := insp.Create(interp, inputs); sig != SignalContinue {
			return sig, addr, gas, output
		}
		interp.Gas = NewGas(inputs.GasLimit)
	}

	addr := evm.deriveAddress(inputs)
	interp.Contract = addr

	evm.depth++
	sig, gas, output := evm.executeInit(interp, inputs)
	evm.depth--

	created := &addr
	if insp := evm.Config.Inspector; insp != nil {
		sig, created, gas, output = insp.CreateEnd(interp, inputs, sig, created, gas, output)
	}
	return sig, created, gas, output
}

func (evm *EVM) deriveAddress(inputs *CreateInputs) common.Address {
	if inputs.Scheme == CreateSchemeCreate2 {
		return crypto.CreateAddress2(inputs.Caller, inputs.Salt, crypto.Keccak256(inputs.InitCode))
	}
	return crypto.CreateAddress(inputs.Caller, inputs.Nonce)
}

func (evm *EVM) executeInit(interp *Interpreter, inputs *CreateInputs) (Signal, Gas, []byte) {
	prev := evm.frame
	evm.frame = interp
	defer func() { evm.frame = prev }()

	if evm.Config.Interpreter == nil {
		interp.Gas.ConsumeAll()
		return signalFromError(ErrNoInterpreter), interp.Gas, nil
	}
	if insp := evm.Config.Inspector; insp != nil {
		if sig := insp.InitializeInterp(interp, false); sig != SignalContinue {
			return sig, interp.Gas, nil
		}
	}
	sig, output := evm.Config.Interpreter(evm, interp, inputs.InitCode)
	interp.ReturnData = output
	return sig, interp.Gas, output
}

// EmitLog records a log event and notifies the observe-only Log hook
// before the record is appended.
func (evm *EVM) EmitLog(address common.Address, topics []common.Hash, data []byte) {
	if insp := evm.Config.Inspector; insp != nil {
		insp.Log(evm.frame, address, topics, data)
	}
	evm.logs = append(evm.logs, &types.Log{Address: address, Topics: topics, Data: data})
}

// SelfDestruct forwards the observe-only Selfdestruct hook.
func (evm *EVM) SelfDestruct() {
	if insp := evm.Config.Inspector; insp != nil {
		insp.Selfdestruct()
	}
}

// InspectStep runs the Step hook on behalf of an interpreter loop. A
// non-continue return means the pending instruction must not execute
// natively.
func (evm *EVM) InspectStep(interp *Interpreter, static bool) Signal {
	if insp := evm.Config.Inspector; insp != nil {
		return insp.Step(interp, static)
	}
	return SignalContinue
}

// InspectStepEnd runs the StepEnd hook with the instruction's own outcome;
// a non-continue return overrides it.
func (evm *EVM) InspectStepEnd(interp *Interpreter, static bool, outcome Signal) Signal {
	if insp := evm.Config.Inspector; insp != nil {
		if sig := insp.StepEnd(interp, static, outcome); sig != SignalContinue {
			return sig
		}
	}
	return outcome
}
