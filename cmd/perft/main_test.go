package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/hailam/chesscore/internal/storage"
)

func runWithArgs(t *testing.T, args ...string) error {
	t.Helper()
	saved := os.Args
	t.Cleanup(func() { os.Args = saved })
	os.Args = append([]string{"perft"}, args...)
	flag.CommandLine = flag.NewFlagSet("perft", flag.ContinueOnError)
	return run()
}

func TestFailedRunClosesDatabase(t *testing.T) {
	dir := t.TempDir()
	badProfile := filepath.Join(dir, "missing", "heap.prof")

	err := runWithArgs(t, "-depth", "2", "-record", "-cachedir", dir, "-memprofile", badProfile)
	if err == nil {
		t.Fatal("expected the heap profile to fail")
	}

	// Badger holds a directory lock while open; reopening proves the close ran.
	store, err := storage.Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()

	runs, err := store.Runs()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Nodes != 400 || runs[0].Depth != 2 {
		t.Fatalf("runs = %+v", runs)
	}
}

func TestCachedRunAndHistory(t *testing.T) {
	dir := t.TempDir()
	if err := runWithArgs(t, "-depth", "3", "-cache", "-verify", "-cachedir", dir); err != nil {
		t.Fatalf("cached run: %v", err)
	}
	if err := runWithArgs(t, "-history", "-cachedir", dir); err != nil {
		t.Fatalf("history: %v", err)
	}
}
