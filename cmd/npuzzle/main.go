// Command npuzzle is a thin driver that scrambles an n*n sliding tile
// puzzle and solves it with an A* search backed by a pool.Pool. It exists
// to exercise the allocator at realistic volume; it has no contract of
// its own.
package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/urfave/cli/v2"

	"mempool/internal/npuzzle"
	"mempool/pool"
)

// poolConfig holds the pool tuning knobs, overridable via NPUZZLE_POOL_*
// environment variables so the demo can run unattended in CI.
type poolConfig struct {
	BlocksPerBoard uint32 `envconfig:"BLOCKS_PER_BOARD" default:"8192"`
	ThreadSafe     bool   `envconfig:"THREAD_SAFE" default:"true"`
}

func main() {
	app := &cli.App{
		Name:  "npuzzle",
		Usage: "scramble and solve an n*n sliding tile puzzle using the pool allocator",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "size", Aliases: []string{"n"}, Value: 4, Usage: "puzzle side length N"},
			&cli.IntFlag{Name: "scramble", Aliases: []string{"c"}, Value: 30, Usage: "number of random moves away from solved"},
			&cli.Int64Flag{Name: "seed", Value: 1, Usage: "PRNG seed for the scramble"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	n := c.Int("size")
	complexity := c.Int("scramble")
	if n < 2 {
		return fmt.Errorf("size must be at least 2, got %d", n)
	}

	var cfg poolConfig
	if err := envconfig.Process("npuzzle_pool", &cfg); err != nil {
		return fmt.Errorf("reading pool configuration: %w", err)
	}

	boardSize := uint32(n * n)
	capacity := boardSize * cfg.BlocksPerBoard
	p, err := pool.New(capacity, boardSize, pool.WithThreadSafe(cfg.ThreadSafe))
	if err != nil {
		return fmt.Errorf("initializing pool: %w", err)
	}
	defer p.Destroy()

	r := rand.New(rand.NewSource(c.Int64("seed")))
	start := npuzzle.Scramble(n, complexity, r)

	solver := npuzzle.NewSolver(p, n)
	startedAt := time.Now()
	steps, err := solver.Solve(start)
	if err != nil {
		return fmt.Errorf("solving %dx%d puzzle: %w", n, n, err)
	}

	allocated, free, coalesced := p.Stats()
	fmt.Printf("solved %dx%d puzzle in %d moves (%s)\n", n, n, len(steps), time.Since(startedAt))
	fmt.Printf("pool stats: allocated=%d free=%d coalesced=%d\n", allocated, free, coalesced)
	for i, st := range steps {
		fmt.Printf("  %3d: %s\n", i+1, st.Move)
	}
	return nil
}
