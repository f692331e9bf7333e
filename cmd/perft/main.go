package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/montanaflynn/stats"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/perft"
	"github.com/hailam/chesscore/internal/storage"
)

func main() {
	if err := run(); err != nil {
		log.WithError(err).Fatal("perft")
	}
}

// run does the work of main; returning instead of exiting lets deferred
// cleanup, the database close in particular, run on every path.
func run() error {
	fen := flag.String("fen", board.StartFEN, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	useCache := flag.Bool("cache", false, "Cache subtree counts in the database")
	cacheDir := flag.String("cachedir", "", "Database directory (defaults to the data directory)")
	record := flag.Bool("record", false, "Store the run and its timings in the database")
	history := flag.Bool("history", false, "List recorded runs and exit")
	verify := flag.Bool("verify", false, "Check the node count against an independent generator")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	log.SetHandler(cli.New(os.Stderr))
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	if !*history && *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}
	pos, err := board.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	var store *storage.Storage
	if *useCache || *record || *history {
		if store, err = storage.Open(*cacheDir); err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.WithError(err).Error("close database")
			}
		}()
	}

	if *history {
		return printHistory(store)
	}

	var opts []perft.Option
	if *useCache {
		opts = append(opts, perft.WithCache(store))
	}
	counter := perft.New(opts...)

	if *divide {
		entries, total, err := counter.Divide(pos, *depth)
		if err != nil {
			return fmt.Errorf("divide: %w", err)
		}
		for _, e := range entries {
			fmt.Printf("%s: %d\n", e.Move, e.Nodes)
		}
		fmt.Printf("Total: %d\n", total)
		return nil
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			return fmt.Errorf("creating cpuprofile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("start cpu profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	started := time.Now()
	nodes, timing, err := counter.Measure(pos, *depth, *repeat)
	if err != nil {
		return err
	}

	// Single line: Label Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, nodes, timing.Mean, timing.NPS)

	if *repeat > 1 {
		p90, err := percentile(timing.Runs, 90)
		if err != nil {
			log.WithError(err).Warn("percentile")
		}
		log.WithFields(log.Fields{
			"runs":   len(timing.Runs),
			"median": timing.Median,
			"stddev": timing.StdDev,
			"min":    timing.Min,
			"max":    timing.Max,
			"p90":    p90,
		}).Info("timings")
	}

	if *verify {
		if err := verifyCount(*fen, *depth, nodes); err != nil {
			return fmt.Errorf("verify: %w", err)
		}
		log.WithField("nodes", nodes).Info("verified")
	}

	if *record {
		rec := &storage.RunRecord{
			Label:     *label,
			FEN:       pos.ToFEN(),
			Depth:     *depth,
			Nodes:     nodes,
			Timings:   timing.Runs,
			Mean:      timing.Mean,
			Median:    timing.Median,
			StdDev:    timing.StdDev,
			NPS:       timing.NPS,
			StartedAt: started,
		}
		if err := store.SaveRun(rec); err != nil {
			return fmt.Errorf("record run: %w", err)
		}
		log.WithField("id", rec.ID).Info("run recorded")
	}

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			return fmt.Errorf("creating memprofile: %w", err)
		}
		defer f.Close()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return fmt.Errorf("write heap profile: %w", err)
		}
	}
	return nil
}

func percentile(runs []time.Duration, p float64) (time.Duration, error) {
	data := make(stats.Float64Data, len(runs))
	for i, d := range runs {
		data[i] = float64(d)
	}
	v, err := data.Percentile(p)
	return time.Duration(v), err
}

// verifyCount recounts with the goosemg generator.
func verifyCount(fen string, depth int, nodes uint64) error {
	b, err := goosemg.ParseFEN(fen)
	if err != nil {
		return err
	}
	if want := goosemg.Perft(b, depth); want != nodes {
		return fmt.Errorf("perft(%d) = %d, reference generator counts %d", depth, nodes, want)
	}
	return nil
}

func printHistory(store *storage.Storage) error {
	runs, err := store.Runs()
	if err != nil {
		return err
	}
	for _, r := range runs {
		fmt.Printf("%s  %s  %-12s depth %d  nodes %d  mean %s  nps %.0f\n",
			r.ID, r.StartedAt.Format(time.RFC3339), r.Label, r.Depth, r.Nodes, r.Mean, r.NPS)
	}
	return nil
}
