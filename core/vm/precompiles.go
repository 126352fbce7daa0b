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
	"sync"

	"github.com/silexvm/silex/common"
	"github.com/silexvm/silex/core/types"
)

// SpecID marks a protocol upgrade stage. The ordering is total: a feature
// introduced at stage F is active under stage S iff S >= F.
type SpecID uint8

const (
	Homestead SpecID = iota
	Byzantium
	Istanbul
	Berlin

	// Latest aliases the newest concrete stage. It must be bumped whenever
	// a stage is appended to the ladder.
	Latest
)

// Enabled reports whether a feature introduced at featureSpec is active
// under s.
func (s SpecID) Enabled(featureSpec SpecID) bool {
	return s >= featureSpec
}

func (s SpecID) String() string {
	switch s {
	case Homestead:
		return "homestead"
	case Byzantium:
		return "byzantium"
	case Istanbul:
		return "istanbul"
	case Berlin:
		return "berlin"
	case Latest:
		return "latest"
	}
	return "unknown"
}

// PrecompileKind records the provenance of a registry entry. It does not
// affect dispatch; both kinds honor the same call contract.
type PrecompileKind uint8

const (
	// StandardPrecompile marks an entry defined by the protocol itself.
	StandardPrecompile PrecompileKind = iota
	// CustomPrecompile marks an entry injected by an embedding chain.
	CustomPrecompile
)

func (k PrecompileKind) String() string {
	if k == CustomPrecompile {
		return "custom"
	}
	return "standard"
}

// PrecompileFunc executes a built-in routine against input under gasLimit.
// Implementations never panic on malformed input; every failure surfaces as
// an error.
type PrecompileFunc func(input []byte, gasLimit uint64) (*PrecompileOutput, error)

// Precompile is a registry entry: a stateless run function plus a
// provenance tag. The zero value is invalid and reports so via Valid.
type Precompile struct {
	Kind PrecompileKind
	fn   PrecompileFunc
}

// NewStandardPrecompile wraps fn as a protocol-defined entry.
func NewStandardPrecompile(fn PrecompileFunc) Precompile {
	return Precompile{Kind: StandardPrecompile, fn: fn}
}

// NewCustomPrecompile wraps fn as a chain-injected entry.
func NewCustomPrecompile(fn PrecompileFunc) Precompile {
	return Precompile{Kind: CustomPrecompile, fn: fn}
}

// Valid reports whether p carries a run function.
func (p Precompile) Valid() bool {
	return p.fn != nil
}

// Call invokes the underlying routine.
func (p Precompile) Call(input []byte, gasLimit uint64) (*PrecompileOutput, error) {
	if p.fn == nil {
		return nil, ErrPrecompileFailure
	}
	return p.fn(input, gasLimit)
}

// RunPrecompile executes p with the given input under gasLimit. It is the
// invocation surface the dispatch layer uses.
func RunPrecompile(p Precompile, input []byte, gasLimit uint64) (*PrecompileOutput, error) {
	return p.Call(input, gasLimit)
}

// PrecompileOutput is the success result of a precompile call. Logs is a
// forward-compatibility hook and stays empty for every current entry.
type PrecompileOutput struct {
	GasUsed uint64
	Output  []byte
	Logs    []types.Log
}

// NewPrecompileOutput builds a log-free output record.
func NewPrecompileOutput(gasUsed uint64, output []byte) *PrecompileOutput {
	return &PrecompileOutput{GasUsed: gasUsed, Output: output}
}

// adaptPrecompiled lifts a PrecompiledContract into the registry call
// contract, folding its two-step gas protocol into a single invocation.
func adaptPrecompiled(c PrecompiledContract) PrecompileFunc {
	return func(input []byte, gasLimit uint64) (*PrecompileOutput, error) {
		gasCost := c.RequiredGas(input)
		if gasCost > gasLimit {
			return nil, ErrOutOfGas
		}
		output, err := c.Run(input)
		if err != nil {
			return nil, err
		}
		return NewPrecompileOutput(gasCost, output), nil
	}
}

// Precompiles is the immutable address-to-entry table active under one
// SpecID. Once built it is never mutated and is safe for unlimited
// concurrent readers.
type Precompiles struct {
	inner map[common.Address]Precompile
}

// Addresses returns the registered addresses. Order is unspecified.
func (p *Precompiles) Addresses() []common.Address {
	addrs := make([]common.Address, 0, len(p.inner))
	for addr := range p.inner {
		addrs = append(addrs, addr)
	}
	return addrs
}

// Contains reports whether addr is registered.
func (p *Precompiles) Contains(addr common.Address) bool {
	_, ok := p.inner[addr]
	return ok
}

// Get returns the entry registered at addr. The lookup is total: an absent
// address yields (Precompile{}, false), never a fault.
func (p *Precompiles) Get(addr common.Address) (Precompile, bool) {
	entry, ok := p.inner[addr]
	return entry, ok
}

// Len returns the number of registered entries.
func (p *Precompiles) Len() int {
	return len(p.inner)
}

// IsEmpty reports whether the table has no entries.
func (p *Precompiles) IsEmpty() bool {
	return len(p.inner) == 0
}

// precompileEntry binds a reserved address to its callable.
type precompileEntry struct {
	addr common.Address
	p    Precompile
}

func standardEntry(addr uint64, c PrecompiledContract) precompileEntry {
	return precompileEntry{
		addr: common.Uint64ToAddress(addr),
		p:    NewStandardPrecompile(adaptPrecompiled(c)),
	}
}

// Per-stage entry lists. Each stage layers its list over the previous
// stage's finished table. Entries may overwrite (repricings) but a stage
// never removes an address.
func homesteadEntries() []precompileEntry {
	return []precompileEntry{
		standardEntry(1, &ecrecover{}),
		standardEntry(2, &sha256hash{}),
		standardEntry(3, &ripemd160hash{}),
		standardEntry(4, &dataCopy{}),
	}
}

func byzantiumEntries() []precompileEntry {
	return []precompileEntry{
		standardEntry(5, &bigModExp{eip2565: false}),
		standardEntry(6, &bn256AddByzantium{}),
		standardEntry(7, &bn256ScalarMulByzantium{}),
		standardEntry(8, &bn256PairingByzantium{}),
	}
}

func istanbulEntries() []precompileEntry {
	return []precompileEntry{
		standardEntry(6, &bn256AddIstanbul{}),
		standardEntry(7, &bn256ScalarMulIstanbul{}),
		standardEntry(8, &bn256PairingIstanbul{}),
		standardEntry(9, &blake2F{}),
	}
}

func berlinEntries() []precompileEntry {
	return []precompileEntry{
		standardEntry(5, &bigModExp{eip2565: true}),
	}
}

// newPrecompiles clones base and layers entries over the copy. A nil base
// starts from an empty table.
func newPrecompiles(base *Precompiles, entries []precompileEntry) *Precompiles {
	size := len(entries)
	if base != nil {
		size += len(base.inner)
	}
	inner := make(map[common.Address]Precompile, size)
	if base != nil {
		for addr, entry := range base.inner {
			inner[addr] = entry
		}
	}
	for _, e := range entries {
		inner[e.addr] = e.p
	}
	return &Precompiles{inner: inner}
}

// Each stage's table is built at most once per process. Concurrent first
// requests observe the same finished instance.
var (
	homesteadOnce  sync.Once
	homesteadTable *Precompiles

	byzantiumOnce  sync.Once
	byzantiumTable *Precompiles

	istanbulOnce  sync.Once
	istanbulTable *Precompiles

	berlinOnce  sync.Once
	berlinTable *Precompiles
)

// HomesteadPrecompiles returns the table active under Homestead.
func HomesteadPrecompiles() *Precompiles {
	homesteadOnce.Do(func() {
		homesteadTable = newPrecompiles(nil, homesteadEntries())
	})
	return homesteadTable
}

// ByzantiumPrecompiles returns the table active under Byzantium.
func ByzantiumPrecompiles() *Precompiles {
	byzantiumOnce.Do(func() {
		byzantiumTable = newPrecompiles(HomesteadPrecompiles(), byzantiumEntries())
	})
	return byzantiumTable
}

// IstanbulPrecompiles returns the table active under Istanbul.
func IstanbulPrecompiles() *Precompiles {
	istanbulOnce.Do(func() {
		istanbulTable = newPrecompiles(ByzantiumPrecompiles(), istanbulEntries())
	})
	return istanbulTable
}

// BerlinPrecompiles returns the table active under Berlin.
func BerlinPrecompiles() *Precompiles {
	berlinOnce.Do(func() {
		berlinTable = newPrecompiles(IstanbulPrecompiles(), berlinEntries())
	})
	return berlinTable
}

// LatestPrecompiles returns the table of the newest concrete stage.
func LatestPrecompiles() *Precompiles {
	return BerlinPrecompiles()
}

// PrecompilesFor returns the table active under spec. Unknown ordinals map
// to the latest table.
func PrecompilesFor(spec SpecID) *Precompiles {
	switch spec {
	case Homestead:
		return HomesteadPrecompiles()
	case Byzantium:
		return ByzantiumPrecompiles()
	case Istanbul:
		return IstanbulPrecompiles()
	case Berlin:
		return BerlinPrecompiles()
	default:
		return LatestPrecompiles()
	}
}

// DefaultPrecompiles returns the table used when no stage is requested
// explicitly, which is the latest one.
func DefaultPrecompiles() *Precompiles {
	return LatestPrecompiles()
}
