package main

import (
	"flag"
	"os"
	"runtime/pprof"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"

	"github.com/hailam/chesscore/internal/perft"
	"github.com/hailam/chesscore/internal/shell"
	"github.com/hailam/chesscore/internal/storage"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	useCache   = flag.Bool("cache", false, "cache perft subtree counts in the database")
	cacheDir   = flag.String("cachedir", "", "database directory (defaults to the data directory)")
	verbose    = flag.Bool("v", false, "verbose logging")
)

func main() {
	flag.Parse()

	log.SetHandler(cli.New(os.Stderr))
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.WithError(err).Fatal("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.WithError(err).Fatal("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
		log.WithField("path", profilePath).Info("CPU profiling enabled")
	}

	var opts []shell.Option
	if *useCache {
		store, err := storage.Open(*cacheDir)
		if err != nil {
			log.WithError(err).Fatal("open database")
		}
		defer store.Close()
		opts = append(opts, shell.WithCounter(perft.New(perft.WithCache(store))))
	}

	if err := shell.New(os.Stdout, opts...).Run(os.Stdin); err != nil {
		log.WithError(err).Error("read commands")
	}
}
