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
	"github.com/holiman/uint256"
	"github.com/silexvm/silex/common"
)

// CallScheme identifies how a frame was entered.
type CallScheme uint8

const (
	CallSchemeCall CallScheme = iota
	CallSchemeCallCode
	CallSchemeDelegateCall
	CallSchemeStaticCall
)

func (s CallScheme) String() string {
	switch s {
	case CallSchemeCall:
		return "call"
	case CallSchemeCallCode:
		return "callcode"
	case CallSchemeDelegateCall:
		return "delegatecall"
	case CallSchemeStaticCall:
		return "staticcall"
	}
	return "unknown"
}

// CreateScheme identifies the address-derivation rule of a creation.
type CreateScheme uint8

const (
	// CreateSchemeCreate derives the new address from caller and nonce.
	CreateSchemeCreate CreateScheme = iota
	// CreateSchemeCreate2 derives it from caller, salt and init code hash.
	CreateSchemeCreate2
)

// CallInputs describes a pending sub-call. The Call hook receives it
// before execution and may rewrite any field.
type CallInputs struct {
	Target   common.Address
	Caller   common.Address
	Value    *uint256.Int
	Input    []byte
	GasLimit uint64
	Scheme   CallScheme
	IsStatic bool
}

// CreateInputs describes a pending contract creation.
type CreateInputs struct {
	Caller   common.Address
	Value    *uint256.Int
	InitCode []byte
	GasLimit uint64
	Scheme   CreateScheme
	Salt     common.Hash
	Nonce    uint64
}

// Interpreter carries the execution context the step hooks observe: the
// program counter, the opcode about to run, the frame's gas meter and its
// pending return data. The instruction loop that advances it lives behind
// InterpreterFunc.
type Interpreter struct {
	Contract   common.Address
	PC         uint64
	Op         byte
	Gas        Gas
	ReturnData []byte
}

// InterpreterFunc executes the bytecode of a frame and returns its outcome.
// The engine supplies it for non-precompile targets; a nil function makes
// every such call fail with ErrNoInterpreter.
type InterpreterFunc func(evm *EVM, interp *Interpreter, input []byte) (Signal, []byte)
