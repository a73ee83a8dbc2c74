package main

import (
	"context"
	"os"
	"syscall"
	"time"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/segmentio/encoding/json"

	"voxmesh/internal/config"
	"voxmesh/internal/registry"
	"voxmesh/internal/store"
	"voxmesh/internal/terrain"
)

type options struct {
	Store    string `cli:"" env:"VOXMESH_STORE"     help:"Path of the SQLite column store."`
	LogLevel string `cli:"" env:"VOXMESH_LOG_LEVEL" help:"Log level (debug|info|warning|error)."`
	Seed     int    `cli:"" env:"VOXMESH_SEED"      help:"Terrain seed."`
	Radius   int    `cli:"" env:"VOXMESH_RADIUS"    help:"Radius in columns around the origin to generate."`
}

func main() {
	conf, err := config.FromEnv()
	if err != nil {
		logs.Fatal(err)
	}

	opts := options{
		Store:    conf.Store,
		LogLevel: conf.LogLevel,
		Seed:     1,
		Radius:   conf.View.Distance,
	}

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Generates demo terrain columns into a store.").
		Options(&opts)
	cli.Load()

	logs.SetLevel(logs.ParseLevel(opts.LogLevel))
	logs.Encoder = json.Marshal
	errors.Encoder = json.Marshal

	if opts.Radius < 0 {
		logs.Fatal(errors.New("negative radius").WithTag("radius", opts.Radius))
	}

	columns, err := store.Open(opts.Store)
	if err != nil {
		logs.Fatal(errors.New("error opening column store").Wrap(err))
	}
	defer columns.Close()

	n, err := seed(ctx, columns, terrain.New(int64(opts.Seed)), opts.Radius)
	if err != nil {
		logs.Fatal(err)
	}
	logs.WithTag("columns", n).
		WithTag("store", opts.Store).
		Info("terrain generated")
}

// seed generates and stores every column within radius of the origin.
func seed(ctx context.Context, columns *store.Store, gen *terrain.Generator, radius int) (int, error) {
	blocks := registry.Default()
	start := time.Now()

	n := 0
	for _, c := range terrain.Origins(0, 0, radius) {
		if err := ctx.Err(); err != nil {
			return n, errors.New("seeding interrupted").Wrap(err)
		}

		col := gen.Column(c.X, c.Z, blocks)
		if err := columns.Put(ctx, c.X, c.Z, col); err != nil {
			return n, err
		}
		n++

		logs.WithTag("x", c.X).
			WithTag("z", c.Z).
			WithTag("sections", col.SectionCount()).
			Debug("column stored")
	}

	logs.WithTag("duration", time.Since(start)).Debug("seed done")
	return n, nil
}
