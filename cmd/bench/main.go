package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/memo"
)

func main() {
	count := flag.Int("count", 1000, "Number of notes to generate")
	adapters := flag.String("adapters", "fs,sqlite,memory", "Comma-separated adapters to measure")
	keep := flag.Bool("keep", false, "Keep the benchmark data after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "memo_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	for _, name := range strings.Split(*adapters, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if err := run(benchDir, name, *count, logger); err != nil {
			fmt.Printf("%s: %v\n", name, err)
			os.Exit(1)
		}
	}
}

// run measures adding count notes, reopening the collection and searching it.
// Every add rewrites the whole collection, so the add phase grows
// quadratically with count.
func run(baseDir, adapter string, count int, logger *slog.Logger) error {
	ctx := context.Background()
	dir := filepath.Join(baseDir, adapter)

	ctrl, err := memo.New(dir, memo.WithAdapter(adapter), memo.WithLogger(logger))
	if err != nil {
		return err
	}

	fmt.Printf("[%s] adding %d notes...\n", adapter, count)
	start := time.Now()
	for i := 0; i < count; i++ {
		if _, err := ctrl.AddNote(ctx, fmt.Sprintf("Note %d", i), fmt.Sprintf("benchmark body %d", i)); err != nil {
			return err
		}
	}
	addTook := time.Since(start)
	if err := memo.Close(ctrl); err != nil {
		return err
	}

	start = time.Now()
	ctrl, err = memo.New(dir, memo.WithAdapter(adapter), memo.WithLogger(logger))
	if err != nil {
		return err
	}
	defer memo.Close(ctrl)
	loadTook := time.Since(start)

	start = time.Now()
	ctrl.Search("BODY 99")
	searchTook := time.Since(start)

	fmt.Printf("[%s] add: %v (%v/op), load: %v (%d notes), search: %v (%d hits)\n",
		adapter,
		addTook, addTook/time.Duration(max(count, 1)),
		loadTook, ctrl.Repository().Len(),
		searchTook, len(ctrl.Visible()),
	)
	return nil
}
