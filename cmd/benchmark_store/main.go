package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/ripplekit/ripple"
	"github.com/ripplekit/ripple/store"
)

type churnConfig struct {
	name    string
	keys    int
	effects int
	reads   int
	writes  int
}

var seed = flag.Int64("seed", 1, "rng seed")

func main() {
	flag.Parse()

	log.Print("Starting store churn benchmark, please wait...")
	defer log.Print("Finished store churn benchmark")

	cfgs := []churnConfig{
		{name: "narrow", keys: 10, effects: 100, reads: 2, writes: 100_000},
		{name: "wide", keys: 1_000, effects: 1_000, reads: 5, writes: 100_000},
		{name: "dense", keys: 100, effects: 5_000, reads: 10, writes: 50_000},
	}

	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{"scenario", "writes", "re-runs", "re-runs/write", "elapsed", "ns/write"})

	for _, cfg := range cfgs {
		writes, reruns, elapsed := churn(cfg)
		tbl.Append([]string{
			cfg.name,
			humanize.Comma(int64(writes)),
			humanize.Comma(int64(reruns)),
			fmt.Sprintf("%.2f", float64(reruns)/float64(writes)),
			elapsed.String(),
			humanize.Comma(elapsed.Nanoseconds() / int64(writes)),
		})
	}

	tbl.Render()
}

// churn builds a map with cfg.keys keys, subscribes cfg.effects effects each
// reading a random handful of keys, then hammers random single-key updates.
func churn(cfg churnConfig) (writes, reruns int, elapsed time.Duration) {
	rng := rand.New(rand.NewSource(*seed))

	tc := ripple.NewTrackingContext()
	m := store.NewMap(tc)
	keys := make([]string, cfg.keys)
	for i := range keys {
		keys[i] = fmt.Sprintf("k%d", i)
		m.Set(keys[i], 0)
	}

	for i := 0; i < cfg.effects; i++ {
		mine := make([]string, cfg.reads)
		for j := range mine {
			mine[j] = keys[rng.Intn(len(keys))]
		}
		ripple.Effect(tc, func() {
			reruns++
			for _, k := range mine {
				m.Get(k)
			}
		})
	}
	reruns = 0

	start := time.Now()
	for i := 0; i < cfg.writes; i++ {
		m.Set(keys[rng.Intn(len(keys))], i)
	}
	elapsed = time.Since(start)
	return cfg.writes, reruns, elapsed
}
