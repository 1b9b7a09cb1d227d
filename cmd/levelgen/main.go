package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hollowmoor/hollowmoor/server/internal/config"
	"github.com/hollowmoor/hollowmoor/server/internal/dungeon"
	"github.com/hollowmoor/hollowmoor/server/internal/logger"
	"github.com/hollowmoor/hollowmoor/server/internal/render"
	"github.com/hollowmoor/hollowmoor/server/internal/rng"
	"github.com/hollowmoor/hollowmoor/server/internal/store"
	"github.com/hollowmoor/hollowmoor/server/internal/wild"
)

// mapInfo is the YAML descriptor written alongside a rendered map
type mapInfo struct {
	Kind        string       `yaml:"kind"`
	Seed        int64        `yaml:"seed"`
	Width       int          `yaml:"width"`
	Height      int          `yaml:"height"`
	Depth       int          `yaml:"depth,omitempty"`
	Rating      int          `yaml:"rating,omitempty"`
	Checksum    string       `yaml:"checksum"`
	GeneratedAt time.Time    `yaml:"generated_at"`
	Places      []wild.Place `yaml:"places,omitempty"`
}

func main() {
	mode := flag.String("mode", "dungeon", "Generation mode: dungeon or wilderness")
	width := flag.Int("width", 80, "Map width (tiles for dungeons, blocks for wilderness)")
	height := flag.Int("height", 40, "Map height")
	depth := flag.Int("depth", 1, "Dungeon depth (ignored in wilderness mode)")
	seed := flag.Int64("seed", 0, "Generation seed (default: random based on current time)")
	configFile := flag.String("config", "data/generator.yaml", "Path to generator config YAML file")
	treeFile := flag.String("tree", "", "Path to terrain tree YAML file (overrides config)")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	outputFile := flag.String("output", "", "Output file (empty for stdout)")
	infoFile := flag.String("info", "", "Write a YAML map descriptor to this file")
	showLegend := flag.Bool("legend", true, "Show legend")
	save := flag.Bool("save", false, "Persist the generated level to the store")
	flag.Parse()

	// Initialize logger first (before any logging)
	logConfig, _ := logger.LoadConfig(*loggingConfig)
	logger.Initialize(logConfig)

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Use provided seed or generate from time
	mapSeed := *seed
	if mapSeed == 0 {
		mapSeed = time.Now().UnixNano()
	}
	logger.Info("Generating level", "mode", *mode, "seed", mapSeed)

	var output strings.Builder
	info := mapInfo{
		Seed:        mapSeed,
		Width:       *width,
		Height:      *height,
		GeneratedAt: time.Now(),
	}

	switch *mode {
	case "dungeon":
		d := generateDungeon(cfg, *width, *height, *depth, mapSeed)
		info.Kind = store.KindDungeon
		info.Depth = d.Depth
		info.Rating = d.Rating
		info.Checksum = d.Grid.ChecksumHex()

		output.WriteString(fmt.Sprintf("Dungeon (Seed: %d, Depth: %d, Rating: %d)\n",
			mapSeed, d.Depth, d.Rating))
		output.WriteString(strings.Repeat("=", 60) + "\n")
		output.WriteString(render.Level(d.Grid))

		if *save {
			saveLevel(cfg, func(s *store.Store) (int64, error) {
				return s.SaveDungeon(d, mapSeed)
			})
		}

	case "wilderness":
		m := generateWilderness(cfg, *treeFile, *width, *height, mapSeed)
		info.Kind = store.KindWilderness
		info.Checksum = m.Grid.ChecksumHex()
		info.Places = m.Places

		output.WriteString(fmt.Sprintf("Wilderness (Seed: %d, Places: %d)\n",
			mapSeed, len(m.Places)))
		output.WriteString(strings.Repeat("=", 60) + "\n")
		output.WriteString(render.Level(m.Grid))
		output.WriteString(placeList(m))

		if *save {
			saveLevel(cfg, func(s *store.Store) (int64, error) {
				return s.SaveWilderness(m, mapSeed)
			})
		}

	default:
		fmt.Fprintf(os.Stderr, "Unknown mode %q (want dungeon or wilderness)\n", *mode)
		os.Exit(1)
	}

	if *showLegend {
		output.WriteString(render.Legend())
	}

	if *infoFile != "" {
		data, err := yaml.Marshal(&info)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding map descriptor: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*infoFile, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing map descriptor: %v\n", err)
			os.Exit(1)
		}
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(output.String()), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Map written to %s\n", *outputFile)
	} else {
		fmt.Print(output.String())
	}
}

func generateDungeon(cfg *config.EngineConfig, width, height, depth int, seed int64) *dungeon.DungeonLevel {
	g := dungeon.NewGenerator(cfg.Dungeon)
	d, err := g.Generate(dungeon.Config{Width: width, Height: height, Depth: depth}, rng.New(seed))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating dungeon: %v\n", err)
		os.Exit(1)
	}
	return d
}

func generateWilderness(cfg *config.EngineConfig, treeFile string, width, height int, seed int64) *wild.Map {
	if treeFile == "" {
		treeFile = cfg.TreeFile
	}

	var tree *wild.Tree
	if treeFile != "" {
		var err error
		tree, err = wild.LoadTreeFromYAML(treeFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading terrain tree: %v\n", err)
			os.Exit(1)
		}
	}

	g := wild.NewGenerator(tree, cfg.Wild)
	m, err := g.Generate(width, height, rng.New(seed))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating wilderness: %v\n", err)
		os.Exit(1)
	}
	return m
}

func saveLevel(cfg *config.EngineConfig, save func(*store.Store) (int64, error)) {
	source := cfg.Store.Path
	if cfg.Store.Driver == "postgres" {
		source = cfg.Store.DSN
	}

	s, err := store.Open(store.DialectType(cfg.Store.Driver), source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	id, err := save(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving level: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Level saved with id %d\n", id)
}

func placeList(m *wild.Map) string {
	if len(m.Places) == 0 {
		return ""
	}

	var output strings.Builder
	output.WriteString("\nPlaces:\n")
	for _, p := range m.Places {
		details := fmt.Sprintf("  %-12s %-8s (%d,%d)", p.Key, p.Kind, p.X, p.Y)
		if p.Kind == wild.PlaceTown {
			details += fmt.Sprintf(" pop %d", p.Population)
		}
		output.WriteString(details + "\n")
	}
	return output.String()
}
