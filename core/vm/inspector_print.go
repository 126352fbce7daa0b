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
	"io"

	"github.com/rs/zerolog"
	"github.com/silexvm/silex/common"
)

// PrintInspector writes a structured trace line for every hook invocation.
// It observes only and never overrides an outcome.
type PrintInspector struct {
	NoopInspector

	logger zerolog.Logger
}

var _ Inspector = (*PrintInspector)(nil)

// NewPrintInspector traces to w, one JSON line per hook.
func NewPrintInspector(w io.Writer) *PrintInspector {
	return &PrintInspector{logger: zerolog.New(w)}
}

func (p *PrintInspector) InitializeInterp(interp *Interpreter, static bool) Signal {
	p.logger.Info().
		Str("hook", "initialize_interp").
		Str("contract", interp.Contract.Hex()).
		Uint64("gas_limit", interp.Gas.Limit()).
		Bool("static", static).
		Send()
	return SignalContinue
}

func (p *PrintInspector) Step(interp *Interpreter, static bool) Signal {
	p.logger.Info().
		Str("hook", "step").
		Uint64("pc", interp.PC).
		Uint8("op", interp.Op).
		Uint64("gas_remaining", interp.Gas.Remaining()).
		Bool("static", static).
		Send()
	return SignalContinue
}

func (p *PrintInspector) StepEnd(interp *Interpreter, static bool, outcome Signal) Signal {
	p.logger.Info().
		Str("hook", "step_end").
		Uint64("pc", interp.PC).
		Str("outcome", outcome.String()).
		Uint64("gas_remaining", interp.Gas.Remaining()).
		Bool("static", static).
		Send()
	return SignalContinue
}

func (p *PrintInspector) Log(_ *Interpreter, address common.Address, topics []common.Hash, data []byte) {
	event := p.logger.Info().
		Str("hook", "log").
		Str("address", address.Hex()).
		Int("data_size", len(data))
	strs := make([]string, len(topics))
	for i, topic := range topics {
		strs[i] = topic.Hex()
	}
	event.Strs("topics", strs).Send()
}

func (p *PrintInspector) Call(_ *Interpreter, inputs *CallInputs, static bool) (Signal, Gas, []byte) {
	p.logger.Info().
		Str("hook", "call").
		Str("target", inputs.Target.Hex()).
		Str("caller", inputs.Caller.Hex()).
		Str("scheme", inputs.Scheme.String()).
		Int("input_size", len(inputs.Input)).
		Uint64("gas_limit", inputs.GasLimit).
		Bool("static", static).
		Send()
	return SignalContinue, NewGas(inputs.GasLimit), nil
}

func (p *PrintInspector) CallEnd(_ *Interpreter, inputs *CallInputs, remaining Gas, outcome Signal, output []byte, static bool) (Signal, Gas, []byte) {
	p.logger.Info().
		Str("hook", "call_end").
		Str("target", inputs.Target.Hex()).
		Str("outcome", outcome.String()).
		Uint64("gas_used", remaining.Used()).
		Int("output_size", len(output)).
		Bool("static", static).
		Send()
	return outcome, remaining, output
}

func (p *PrintInspector) Create(_ *Interpreter, inputs *CreateInputs) (Signal, *common.Address, Gas, []byte) {
	p.logger.Info().
		Str("hook", "create").
		Str("caller", inputs.Caller.Hex()).
		Int("init_code_size", len(inputs.InitCode)).
		Uint64("gas_limit", inputs.GasLimit).
		Send()
	return SignalContinue, nil, NewGas(inputs.GasLimit), nil
}

func (p *PrintInspector) CreateEnd(_ *Interpreter, _ *CreateInputs, outcome Signal, address *common.Address, remaining Gas, output []byte) (Signal, *common.Address, Gas, []byte) {
	event := p.logger.Info().
		Str("hook", "create_end").
		Str("outcome", outcome.String()).
		Uint64("gas_used", remaining.Used()).
		Int("output_size", len(output))
	if address != nil {
		event = event.Str("address", address.Hex())
	}
	event.Send()
	return outcome, address, remaining, output
}

func (p *PrintInspector) Selfdestruct() {
	p.logger.Info().Str("hook", "selfdestruct").Send()
}
