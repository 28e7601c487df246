package main

import (
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/Garsondee/Chicken-Hunter/internal/game"
	"github.com/Garsondee/Chicken-Hunter/internal/render"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults apply when empty)")
	seed := flag.Int64("seed", 0, "random seed (0 = from the clock)")
	level := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "hunter",
	})
	lvl, err := log.ParseLevel(*level)
	if err != nil {
		logger.Fatal("bad -log-level", "err", err)
	}
	logger.SetLevel(lvl)

	cfg := game.DefaultConfig()
	if *configPath != "" {
		cfg, err = game.LoadConfig(*configPath)
		if err != nil {
			logger.Fatal("load config", "err", err)
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger.Info("starting", "seed", cfg.Seed, "world_size", cfg.WorldSize, "creatures", cfg.TotalCreatures)

	session := game.NewSession(cfg, game.WithLogger(logger))
	scenery := game.GenerateScenery(session.World.Config.WorldSize, false,
		rand.New(rand.NewSource(cfg.Seed+7777))) // #nosec G404 -- scenery only

	g := render.New(session, scenery, logger)
	ebiten.SetWindowTitle("Chicken Hunter")
	ebiten.SetWindowSize(g.Size())
	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal("run", "err", err)
	}
}
