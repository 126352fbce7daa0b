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

// Package types holds the data structures shared between the virtual machine
// and its observers.
package types

import (
	"github.com/silexvm/silex/common"
)

// Log represents a contract log event emitted during execution. Topics are
// indexed by the address that raised the event; Data carries the unindexed
// payload.
type Log struct {
	// Address of the contract that generated the event.
	Address common.Address `json:"address"`
	// Topics the event was indexed under. The first topic is conventionally
	// the event signature hash.
	Topics []common.Hash `json:"topics"`
	// Data holds the non-indexed arguments of the event.
	Data []byte `json:"data"`
}

// Copy returns a deep copy of the log.
func (l *Log) Copy() *Log {
	cpy := &Log{
		Address: l.Address,
		Topics:  make([]common.Hash, len(l.Topics)),
		Data:    common.CopyBytes(l.Data),
	}
	copy(cpy.Topics, l.Topics)
	return cpy
}
