// Package storage persists headless runs: one directory per run with
// a metadata.json summary and a frames.csv particle trace.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/skovran/physbox/internal/config"
	"github.com/skovran/physbox/internal/session"
)

var ErrNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata summarizes one stored run.
type RunMetadata struct {
	ID        string             `json:"id"`
	Mode      string             `json:"mode"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
}

// FrameRecord is one particle in one frame, long format: a run of m
// frames with n particles writes m*n rows.
type FrameRecord struct {
	Frame    int     `csv:"frame"`
	Time     float64 `csv:"time"`
	Particle int     `csv:"particle"`
	X        float64 `csv:"x"`
	Y        float64 `csv:"y"`
	VX       float64 `csv:"vx"`
	VY       float64 `csv:"vy"`
	Radius   float64 `csv:"radius"`
}

// Save writes the run under a fresh "<mode>_<unix>" directory and
// returns its id.
func (s *Store) Save(cfg *config.Config, rc session.RunConfig, result *session.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", cfg.Mode, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Mode:      string(cfg.Mode),
		Timestamp: time.Now(),
		Seed:      cfg.Seed,
		Dt:        rc.Dt,
		Duration:  rc.Duration,
		Steps:     result.Steps,
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	records := make([]FrameRecord, 0, len(result.Frames)*4)
	for fi, f := range result.Frames {
		for pi, p := range f.Particles {
			records = append(records, FrameRecord{
				Frame:    fi,
				Time:     f.Time,
				Particle: pi,
				X:        p.Pos.X,
				Y:        p.Pos.Y,
				VX:       p.Vel.X,
				VY:       p.Vel.Y,
				Radius:   p.Radius,
			})
		}
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := gocsv.Marshal(records, csvFile); err != nil {
		return "", fmt.Errorf("writing frames: %w", err)
	}
	return runID, nil
}

// List returns metadata for every readable run, skipping directories
// that are not runs.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads back the long-format particle trace.
func (s *Store) LoadFrames(runID string) ([]FrameRecord, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	var records []FrameRecord
	if err := gocsv.Unmarshal(file, &records); err != nil {
		return nil, fmt.Errorf("reading frames: %w", err)
	}
	return records, nil
}

// Series extracts one particle's column from a loaded trace, for
// plotting and spectrum analysis.
func Series(records []FrameRecord, particle int, pick func(FrameRecord) float64) []float64 {
	var out []float64
	for _, r := range records {
		if r.Particle == particle {
			out = append(out, pick(r))
		}
	}
	return out
}
