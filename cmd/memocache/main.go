package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"

	"memocache/internal/config"
	mylog "memocache/internal/log"
	"memocache/internal/memoize"
	"memocache/internal/metrics"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

func realMain() int {
	app := &cli.Command{
		Name:     "memocache",
		Usage:    "Memoization cache demo",
		Commands: []*cli.Command{demoCommand()},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func demoCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "Walk the cache through compute, override, invalidate, and clear",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file",
			},
		},
		Action: demoAction,
	}
}

func demoAction(_ context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}
	mylog.Init(cfg.Log)

	reg := prometheus.NewRegistry()
	m := metrics.New("memocache", reg)

	multiplier := cfg.Demo.Multiplier
	c := memoize.New(memoize.Config[int, int]{
		Key: strconv.Itoa,
		Value: func(n int) (int, error) {
			log.Debugf("computing value for input %d", n)
			return n * multiplier, nil
		},
		Observer: m,
	})

	log.Infof("memocache demo starting (multiplier=%d)", multiplier)

	// -------------------------------------------------------------------
	// 1) Seed the store from config, bypassing computation entirely.
	// -------------------------------------------------------------------
	if len(cfg.Demo.Seed) > 0 {
		entries := make([]memoize.Entry[int], 0, len(cfg.Demo.Seed))
		for _, s := range cfg.Demo.Seed {
			entries = append(entries, memoize.Entry[int]{Key: s.Key, Value: s.Value})
		}
		c.SetMany(entries)
		log.Infof("seeded %d entries: keys=%v", len(entries), c.Keys())
	}

	// -------------------------------------------------------------------
	// 2) First pass over the inputs: seeded keys hit, the rest compute.
	// -------------------------------------------------------------------
	for _, n := range cfg.Demo.Inputs {
		v, err := c.Get(n)
		if err != nil {
			return fmt.Errorf("get %d: %w", n, err)
		}
		log.Infof("GET %d = %d", n, v)
	}

	// Second pass: everything hits now.
	for _, n := range cfg.Demo.Inputs {
		if _, err := c.Get(n); err != nil {
			return fmt.Errorf("get %d: %w", n, err)
		}
	}
	log.Infof("second pass over %d inputs served entirely from the store", len(cfg.Demo.Inputs))

	// -------------------------------------------------------------------
	// 3) Override, invalidate, and clear.
	// -------------------------------------------------------------------
	if len(cfg.Demo.Inputs) > 0 {
		n := cfg.Demo.Inputs[0]
		key := strconv.Itoa(n)

		c.Set(key, -1)
		v, _ := c.Get(n)
		log.Infof("after SET %s=-1: GET %d = %d (override, no recompute)", key, n, v)

		c.Delete(key)
		v, err := c.Get(n)
		if err != nil {
			return fmt.Errorf("get %d: %w", n, err)
		}
		log.Infof("after DELETE %s: GET %d = %d (recomputed)", key, n, v)
	}

	c.Clear()
	log.Infof("after CLEAR: %d entries remain", c.Len())

	// -------------------------------------------------------------------
	// 4) Report counters.
	// -------------------------------------------------------------------
	st := c.Stats()
	log.Infof("stats: lookups=%s hits=%s misses=%s",
		humanize.Comma(int64(st.Lookups)),
		humanize.Comma(int64(st.Hits)),
		humanize.Comma(int64(st.Misses)))

	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		for _, mtr := range mf.GetMetric() {
			if ctr := mtr.GetCounter(); ctr != nil {
				log.Infof("metric %s = %v", mf.GetName(), ctr.GetValue())
			}
		}
	}

	return nil
}
