// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"fmt"
	"runtime"
	"sort"
	"time"
)

// Debug prints debugging info to console and the debug log.
func (h *Hub) Debug() {
	fmt.Printf("Debug [%v]\n", time.Now().Format(time.UnixDate))
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	fmt.Printf(" - memstats: %dM/%dM\n", stats.HeapInuse/1e6, stats.NextGC/1e6)

	var (
		sessions   []*Session
		blobs      int
		blocks     int
		generating int
	)

	for client := h.clients.First; client != nil; client = client.Data().Next {
		session := client.Data().Session
		sessions = append(sessions, session)
		blobs += session.controller.Blobs().Count()
		blocks += len(session.controller.Blocks())
		if session.controller.Surface().Generating() {
			generating++
		}
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ID.String() < sessions[j].ID.String()
	})

	fmt.Printf(" - sessions: %d, blobs: %d, blocks: %d, generating: %d\n", len(sessions), blobs, blocks, generating)
	for _, session := range sessions {
		fmt.Printf("   - %s\n", session)
	}

	// Function benchmarks
	var totalDuration time.Duration

	fmt.Print(" - ")
	for i := range h.funcBenches {
		bench := &h.funcBenches[i]

		duration := bench.reset()
		totalDuration += duration

		fmt.Print(bench.name, ": ", duration, ", ")
	}
	fmt.Println("total:", totalDuration)

	if h.debugLog != "" {
		_ = AppendLog(h.debugLog, []interface{}{
			unixMillis(),
			len(sessions),
			blobs,
			blocks,
			generating,
		})
	}
}

func unixMillis() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}

// funcBench is a benchmark of a core function.
type funcBench struct {
	name     string
	duration time.Duration
	runs     int
}

// reset resets the benchmark and returns the average duration
func (bench *funcBench) reset() time.Duration {
	if bench.runs == 0 {
		return 0
	}
	average := bench.duration / time.Duration(bench.runs)
	bench.duration = 0
	bench.runs = 0
	return average
}

// timeFunction times a function.
// defer timeFunction("name", time.Now())
func (h *Hub) timeFunction(name string, start time.Time) {
	end := time.Now()

	var bench *funcBench
	for i := range h.funcBenches {
		b := &h.funcBenches[i]
		if name == b.name {
			bench = b
			break
		}
	}

	if bench == nil {
		h.funcBenches = append(h.funcBenches, funcBench{name: name})
		bench = &h.funcBenches[len(h.funcBenches)-1]
	}

	bench.duration += end.Sub(start)
	bench.runs++
}
