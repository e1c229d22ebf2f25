// Package main provides the TOF monitoring driver. It replays decoded
// track batches from a JSONL file through the matching engine, persists
// the resulting counter snapshots and renders an HTML report.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/banshee-data/tofmon/internal/hist"
	"github.com/banshee-data/tofmon/internal/histdb"
	"github.com/banshee-data/tofmon/internal/report"
	"github.com/banshee-data/tofmon/internal/tof"
	"github.com/banshee-data/tofmon/internal/tof/evtime"
	"github.com/banshee-data/tofmon/internal/version"
)

// Config holds the driver's command-line configuration.
type Config struct {
	BatchFile  string
	ParamsFile string
	DBPath     string
	RunLabel   string
	ReportPath string
	PNGDir     string
	Verbose    bool
	Version    bool
}

func main() {
	cfg := parseFlags()

	if cfg.Version {
		fmt.Println("tofmon", version.String())
		return
	}

	if cfg.BatchFile == "" {
		log.Fatal("batch file is required")
	}
	if _, err := os.Stat(cfg.BatchFile); os.IsNotExist(err) {
		log.Fatalf("Batch file not found: %s", cfg.BatchFile)
	}

	params, err := loadParams(cfg.ParamsFile)
	if err != nil {
		log.Fatalf("Failed to load params: %v", err)
	}

	taskCfg, err := tof.ParseConfig(params)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	task := tof.NewTask(taskCfg, evtime.New(evtime.StandardTable()))

	batches, err := replayBatches(task, cfg)
	if err != nil {
		log.Fatalf("Replay failed: %v", err)
	}
	log.Printf("Processed %d batches from %s", batches, cfg.BatchFile)

	snaps := task.Counters().Set.Snapshots()

	if cfg.DBPath != "" {
		db, err := histdb.Open(cfg.DBPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()

		runID, err := db.BeginRun(cfg.RunLabel)
		if err != nil {
			log.Fatalf("Failed to begin run: %v", err)
		}
		if err := db.SaveSnapshots(runID, snaps); err != nil {
			log.Fatalf("Failed to save snapshots: %v", err)
		}
		log.Printf("Saved %d snapshots under run %s", len(snaps), runID)
	}

	if cfg.ReportPath != "" {
		if err := writeReport(cfg.ReportPath, snaps); err != nil {
			log.Fatalf("Failed to write report: %v", err)
		}
		log.Printf("Report written to: %s", cfg.ReportPath)
	}

	if cfg.PNGDir != "" {
		if err := exportPNGs(cfg, snaps); err != nil {
			log.Printf("Warning: PNG export incomplete: %v", err)
		}
	}
}

func parseFlags() Config {
	cfg := Config{}

	flag.StringVar(&cfg.BatchFile, "batches", "", "Path to JSONL batch file (one batch per line)")
	flag.StringVar(&cfg.ParamsFile, "params", "", "Path to JSON params file")
	flag.StringVar(&cfg.DBPath, "db", "tofmon.db", "SQLite snapshot database path (empty to skip persistence)")
	flag.StringVar(&cfg.RunLabel, "label", "", "Label recorded against this run")
	flag.StringVar(&cfg.ReportPath, "report", "report.html", "HTML report output path (empty to skip)")
	flag.StringVar(&cfg.PNGDir, "png", "", "Directory for per-counter PNG export (1-D only)")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&cfg.Version, "version", false, "Print build identification and exit")

	flag.Parse()

	return cfg
}

// loadParams reads the flat key/value parameter map. A missing path means
// the engine runs on its defaults.
func loadParams(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	params := map[string]string{}
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return params, nil
}

func replayBatches(task *tof.Task, cfg Config) (int, error) {
	f, err := os.Open(cfg.BatchFile)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	// Batches carry whole time frames; allow long lines.
	scanner.Buffer(make([]byte, 0, 1<<20), 64<<20)

	n := 0
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var b tof.Batch
		if err := json.Unmarshal(line, &b); err != nil {
			return n, fmt.Errorf("batch %d: %w", n+1, err)
		}
		if err := task.ProcessBatch(b); err != nil {
			return n, fmt.Errorf("batch %d: %w", n+1, err)
		}
		n++
		if cfg.Verbose && n%100 == 0 {
			log.Printf("Processed %d batches", n)
		}
	}
	return n, scanner.Err()
}

func writeReport(path string, snaps []hist.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return report.WriteHTML(f, snaps)
}

func exportPNGs(cfg Config, snaps []hist.Snapshot) error {
	if err := os.MkdirAll(cfg.PNGDir, 0755); err != nil {
		return err
	}
	for _, s := range snaps {
		if s.Dim != 1 {
			continue
		}
		path := filepath.Join(cfg.PNGDir, s.Name+".png")
		if err := report.SavePNG(s, path); err != nil {
			return err
		}
		if cfg.Verbose {
			log.Printf("Wrote %s", path)
		}
	}
	return nil
}
