package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/numeric"
)

const runSuffix = "_run.json"

// Store keeps run metadata as <prefix>_run.json files in one directory.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string         `json:"id"`
	Timestamp   time.Time      `json:"timestamp"`
	Config      config.Config  `json:"config"`
	N           int            `json:"n"`
	Dx          float64        `json:"dx"`
	R           float64        `json:"r"`
	Steps       int            `json:"steps"`
	FinalTime   float64        `json:"final_time"`
	FinalChange float64        `json:"final_change"`
	FinalError  float64        `json:"final_error,omitempty"`
	StopReason  string         `json:"stop_reason"`
	Counts      numeric.Counts `json:"counts"`
	Curves      []string       `json:"curves,omitempty"`
}

// Save writes meta under its problem name and returns the run ID.
func (s *Store) Save(meta *RunMetadata) (string, error) {
	if meta.ID == "" {
		meta.ID = meta.Config.ProbName
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}

	f, err := os.Create(s.path(meta.ID))
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// List returns every readable run, newest first. A missing directory is
// an empty list.
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
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), runSuffix) {
			continue
		}

		meta, err := s.Load(strings.TrimSuffix(entry.Name(), runSuffix))
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(s.path(runID))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) path(runID string) string {
	return filepath.Join(s.baseDir, runID+runSuffix)
}
