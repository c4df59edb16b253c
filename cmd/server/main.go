package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/Edward-VS/Kerkers-sub000/internal/config"
	"github.com/Edward-VS/Kerkers-sub000/internal/layout"
	"github.com/Edward-VS/Kerkers-sub000/internal/protocol"
	"github.com/Edward-VS/Kerkers-sub000/internal/ws"
)

func main() {
	var (
		layoutPath = flag.String("layout", "", "layout JSON file; empty generates a tower")
		configPath = flag.String("config", "", "scramble config JSON file")
		seed       = flag.Int64("seed", 0, "random seed, overrides the config; 0 keeps the config's")
		floors     = flag.Int("floors", 3, "floors of the generated tower")
		width      = flag.Int("width", 12, "width of the generated tower")
		depth      = flag.Int("depth", 9, "depth of the generated tower")
		scrambles  = flag.Int("scramble", 0, "scramble passes to run before serving or printing")
		printOnly  = flag.Bool("print", false, "print the dungeon and exit")
		schemaOut  = flag.String("schema", "", "write the scramble config JSON schema to this path and exit")
		addr       = flag.String("addr", ":8080", "listen address")
	)
	flag.Parse()

	logger := NewLogger()

	if *schemaOut != "" {
		if err := config.WriteSchema(*schemaOut); err != nil {
			log.Fatalf("Failed to write schema: %v", err)
		}
		logger.Printf("wrote schema to %s", *schemaOut)
		return
	}

	cfg := config.DefaultScrambleConfig()
	if *configPath != "" {
		loaded, err := config.LoadScrambleConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	def := layout.CorridorsAndRooms("tower", *floors, *width, *depth)
	if *layoutPath != "" {
		loaded, err := layout.LoadDefinitionFromFile(*layoutPath)
		if err != nil {
			log.Fatalf("Failed to load layout: %v", err)
		}
		def = loaded
	}

	runSeed := *seed
	if runSeed == 0 {
		runSeed = cfg.GetSeed()
	}
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
	}

	engine, err := NewEngine(def, cfg, runSeed, logger)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	for i := 0; i < *scrambles; i++ {
		if _, err := engine.ProcessScramble(protocol.RequestScramble{}); err != nil {
			log.Fatalf("Scramble failed: %v", err)
		}
	}

	if *printOnly {
		if err := printSnapshot(os.Stdout, engine.Snapshot()); err != nil {
			log.Fatalf("Failed to print dungeon: %v", err)
		}
		return
	}

	hub := ws.NewHub(logger)
	sequence := NewSequenceGenerator()
	broadcaster := NewBroadcaster(hub, sequence, logger)
	handlers := NewIntentHandlers(engine, broadcaster, logger)

	server := &http.Server{
		Addr:              *addr,
		Handler:           newMux(engine, hub, handlers, sequence, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
	fmt.Printf("serving %s on %s\n", def.Name, *addr)
	log.Fatal(server.ListenAndServe())
}
