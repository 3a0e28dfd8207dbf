// Command gridplanner plans paths for a disc-shaped robot on an occupancy
// grid.
//
//	gridplanner plan  [-config scenario.yaml] [-print=false]
//	gridplanner serve [-addr :8080] [-timeout 10s] [-max-expansions N]
//
// Without -config, plan runs the built-in 64×64 demo scenario.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"gridplanner"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "plan":
		err = planCmd(os.Args[2:])
	case "serve":
		err = serveCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: gridplanner plan [-config file] [-print=false]")
	fmt.Fprintln(os.Stderr, "       gridplanner serve [-addr :8080] [-timeout 10s] [-max-expansions N]")
}

func planCmd(args []string) error {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML scenario file (default: built-in demo)")
	printMap := fs.Bool("print", true, "print the map before the path")
	fs.Parse(args)

	sc := DefaultScenario()
	if *configPath != "" {
		var err error
		if sc, err = LoadScenario(*configPath); err != nil {
			return err
		}
	}
	return runPlan(context.Background(), sc, os.Stdout, *printMap)
}

func serveCmd(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":8080", "listen address")
	timeout := fs.Duration("timeout", 10*time.Second, "per-search time budget (0 = none)")
	maxExpansions := fs.Int("max-expansions", 0, "per-search expansion budget (0 = none)")
	fs.Parse(args)

	log.Println("========================================")
	log.Println("🚀 Grid Path Planner Server")
	log.Println("========================================")

	s := newServer(gridplanner.New(gridplanner.WithMaxExpansions(*maxExpansions)), *timeout)

	log.Printf("Server starting on %s\n", *addr)
	log.Println("")
	log.Println("Endpoints:")
	log.Println("  POST /map        - Configure map size")
	log.Println("  GET  /map        - Export map as text")
	log.Println("  GET  /map.png    - Render map as PNG")
	log.Println("  POST /robot      - Set robot radius, safety margin, heuristic weight")
	log.Println("  POST /obstacles  - Replace obstacle field (JSON or GeoJSON)")
	log.Println("  GET  /obstacles  - Obstacle field as GeoJSON")
	log.Println("  POST /route      - Compute route with start and end points")
	log.Println("  GET  /health     - Check server status")
	log.Println("========================================")

	return http.ListenAndServe(*addr, s.routes())
}
