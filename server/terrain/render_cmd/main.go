// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"flag"
	"fmt"
	"github.com/SoftbearStudios/sculpt/server/terrain"
	"github.com/SoftbearStudios/sculpt/server/terrain/compressed"
	"github.com/SoftbearStudios/sculpt/server/terrain/noise"
	"image/png"
	"log"
	"os"
	"runtime/pprof"
	"time"
)

func main() {
	var (
		cpuProfile string
		output     string
		basis      string
		hilliness  float64
		seed       int64
		resolution int
		workers    int
	)

	flag.StringVar(&cpuProfile, "cpuprofile", "", "write cpu profile to `file`")
	flag.StringVar(&output, "o", "out.png", "output `file`")
	flag.StringVar(&basis, "basis", string(noise.BasisValue), "noise basis (value, perlin or simplex)")
	flag.Float64Var(&hilliness, "hilliness", noise.DefaultHilliness, "terrain hilliness, clamped to [0.5, 5]")
	flag.Int64Var(&seed, "seed", noise.DefaultSeed, "noise seed")
	flag.IntVar(&resolution, "resolution", terrain.GenerateResolution*4, "pixels per side")
	flag.IntVar(&workers, "workers", 0, "generation workers (0 for all CPUs)")
	flag.Parse()

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close() // error handling omitted for example
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	params := noise.DefaultParams()
	params.Basis = noise.Basis(basis)
	params.Seed = seed
	params.Hilliness = noise.ClampHilliness(float32(hilliness))

	if err := run(params, resolution, workers, output); err != nil {
		log.Fatal(err)
	}
}

func run(params noise.Params, resolution, workers int, output string) error {
	field, err := noise.New(params)
	if err != nil {
		return err
	}

	start := time.Now()
	heights, err := terrain.Synthesize(field, terrain.GenerateSize, resolution, workers)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	data, err := compressed.Encode(heights)
	if err != nil {
		return err
	}
	lo, hi := heights.Bounds()
	fmt.Printf("generated %dx%d in %s, heights %.2f to %.2f, compressed to %d%% (%dkb)\n",
		resolution, resolution, elapsed, lo, hi, 100*len(data)/(len(heights.Heights)*4), len(data)/1024)

	file, err := os.Create(output)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, terrain.Render(heights))
}
