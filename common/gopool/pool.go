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

// Package gopool provides a process-wide goroutine pool for short-lived
// parallel work such as concurrent precompile execution.
package gopool

import (
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"
)

var defaultPool, _ = ants.NewPool(ants.DefaultAntsPoolSize, ants.WithExpiryDuration(10*time.Second))

// Submit schedules task on the shared pool.
func Submit(task func()) error {
	return defaultPool.Submit(task)
}

// Running returns the number of currently running workers.
func Running() int {
	return defaultPool.Running()
}

// Cap returns the capacity of the shared pool.
func Cap() int {
	return defaultPool.Cap()
}

// Free returns the number of idle workers.
func Free() int {
	return defaultPool.Free()
}

// Threads returns a worker count proportional to the task count, capped at
// the number of CPUs.
func Threads(tasks int) int {
	threads := tasks / 4
	if threads > runtime.NumCPU() {
		threads = runtime.NumCPU()
	} else if threads == 0 {
		threads = 1
	}
	return threads
}
