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

import "errors"

// Signal is the control value threaded through the hook interface and the
// call/create paths. SignalContinue means native execution proceeds; every
// other value substitutes or terminates the in-flight operation.
type Signal uint8

const (
	SignalContinue Signal = iota
	SignalStop
	SignalReturn
	SignalRevert
	SignalSelfDestruct
	SignalOutOfGas
	SignalInvalidInput
	SignalPrecompileError
	SignalFatal
)

func (s Signal) String() string {
	switch s {
	case SignalContinue:
		return "continue"
	case SignalStop:
		return "stop"
	case SignalReturn:
		return "return"
	case SignalRevert:
		return "revert"
	case SignalSelfDestruct:
		return "selfdestruct"
	case SignalOutOfGas:
		return "out of gas"
	case SignalInvalidInput:
		return "invalid input"
	case SignalPrecompileError:
		return "precompile error"
	case SignalFatal:
		return "fatal"
	}
	return "unknown"
}

// IsOK reports whether s is a successful terminal outcome.
func (s Signal) IsOK() bool {
	return s == SignalStop || s == SignalReturn || s == SignalSelfDestruct
}

// IsError reports whether s terminates execution abnormally. Reverts are
// counted: the caller frame survives but the callee failed.
func (s Signal) IsError() bool {
	return !s.IsOK() && s != SignalContinue
}

// signalFromError maps an execution error onto the signal the embedding
// frame observes.
func signalFromError(err error) Signal {
	switch {
	case err == nil:
		return SignalReturn
	case errors.Is(err, ErrOutOfGas):
		return SignalOutOfGas
	case errors.Is(err, ErrExecutionReverted):
		return SignalRevert
	case errors.Is(err, ErrInvalidInput):
		return SignalInvalidInput
	case errors.Is(err, ErrDepth), errors.Is(err, ErrNoInterpreter):
		return SignalFatal
	default:
		return SignalPrecompileError
	}
}
