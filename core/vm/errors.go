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
	"errors"
)

// List of execution errors surfaced by the call and create paths. All of
// them are recoverable by the caller frame; none abort the process.
var (
	ErrOutOfGas          = errors.New("out of gas")
	ErrDepth             = errors.New("max call depth exceeded")
	ErrExecutionReverted = errors.New("execution reverted")
	ErrInvalidInput      = errors.New("invalid input")
	ErrPrecompileFailure = errors.New("precompile computation failed")
	ErrWriteProtection   = errors.New("write protection")
	ErrNoInterpreter     = errors.New("no interpreter configured")
	ErrUnknownSpec       = errors.New("unknown spec id")
)
