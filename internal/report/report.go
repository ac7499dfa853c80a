// Package report writes the machine-readable run report: run id,
// timestamps, counters, the per-file outcome lists, conflicts, and every
// material with its ordered entries and renderer plan.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/backmassage/pbrexpress/internal/config"
	"github.com/backmassage/pbrexpress/internal/pipeline"
	"github.com/backmassage/pbrexpress/internal/planner"
)

// Report is the serialized form of one run.
type Report struct {
	RunID    string    `yaml:"run_id" toml:"run_id" json:"run_id"`
	Started  time.Time `yaml:"started" toml:"started" json:"started"`
	Finished time.Time `yaml:"finished" toml:"finished" json:"finished"`

	Presets     []string `yaml:"presets" toml:"presets" json:"presets"`
	Renderer    string   `yaml:"renderer" toml:"renderer" json:"renderer"`
	OnDuplicate string   `yaml:"on_duplicate" toml:"on_duplicate" json:"on_duplicate"`

	Stats   Stats   `yaml:"stats" toml:"stats" json:"stats"`
	Outcome Outcome `yaml:"outcome" toml:"outcome" json:"outcome"`
	Batches []Batch `yaml:"batches" toml:"batches" json:"batches"`
}

// Stats mirrors pipeline.RunStats.
type Stats struct {
	FilesProcessed   int `yaml:"files_processed" toml:"files_processed" json:"files_processed"`
	UDIMDetected     int `yaml:"udim_detected" toml:"udim_detected" json:"udim_detected"`
	InvalidExtension int `yaml:"invalid_extension" toml:"invalid_extension" json:"invalid_extension"`
	Unrecognized     int `yaml:"unrecognized" toml:"unrecognized" json:"unrecognized"`
	Redirected       int `yaml:"redirected" toml:"redirected" json:"redirected"`
	Hopeless         int `yaml:"hopeless" toml:"hopeless" json:"hopeless"`
	Conflicts        int `yaml:"conflicts" toml:"conflicts" json:"conflicts"`
	GroupsCreated    int `yaml:"groups_created" toml:"groups_created" json:"groups_created"`
}

// Outcome mirrors pipeline.Outcome.
type Outcome struct {
	InvalidExtension []string `yaml:"invalid_extension" toml:"invalid_extension" json:"invalid_extension"`
	Unrecognized     []string `yaml:"unrecognized" toml:"unrecognized" json:"unrecognized"`
	UDIM             []string `yaml:"udim" toml:"udim" json:"udim"`
	Redirected       []string `yaml:"redirected" toml:"redirected" json:"redirected"`
	Hopeless         []string `yaml:"hopeless" toml:"hopeless" json:"hopeless"`
	Conflicted       []string `yaml:"conflicted" toml:"conflicted" json:"conflicted"`
}

// Batch is one input batch with its materials.
type Batch struct {
	Name      string              `yaml:"name" toml:"name" json:"name"`
	Materials []Material          `yaml:"materials" toml:"materials" json:"materials"`
	Conflicts []pipeline.Conflict `yaml:"conflicts,omitempty" toml:"conflicts,omitempty" json:"conflicts,omitempty"`
}

// Material is one group: its ordered (role, path, extension) entries and
// the renderer plan built for it.
type Material struct {
	Key     string                `yaml:"key" toml:"key" json:"key"`
	Entries []pipeline.Binding    `yaml:"entries" toml:"entries" json:"entries"`
	Plan    *planner.MaterialPlan `yaml:"plan" toml:"plan" json:"plan"`
}

// New assembles a report from a finished run. A fresh run id is assigned.
func New(cfg *config.Config, res *pipeline.Result, started, finished time.Time) *Report {
	r := &Report{
		RunID:       uuid.NewString(),
		Started:     started.UTC().Truncate(time.Second),
		Finished:    finished.UTC().Truncate(time.Second),
		Presets:     reportPresets(cfg),
		Renderer:    string(cfg.Renderer),
		OnDuplicate: string(cfg.OnDuplicate),
		Stats:       Stats(res.Stats),
		Outcome:     Outcome(res.Outcome),
	}
	for _, b := range res.Batches {
		batch := Batch{Name: b.Name, Conflicts: b.Conflicts, Materials: make([]Material, len(b.Groups))}
		for i, g := range b.Groups {
			batch.Materials[i] = Material{Key: g.Key, Entries: g.Entries(), Plan: planner.BuildPlan(cfg, g)}
		}
		r.Batches = append(r.Batches, batch)
	}
	return r
}

func reportPresets(cfg *config.Config) []string {
	presets := append([]string(nil), cfg.PresetNames()...)
	if cfg.PresetFile != "" {
		presets = append(presets, cfg.PresetFile)
	}
	if len(cfg.Custom) > 0 {
		presets = append(presets, "custom")
	}
	return presets
}

// Marshal encodes r in the format named by ext (".yaml", ".yml", ".toml"
// or ".json").
func Marshal(r *Report, ext string) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case ".toml":
		return toml.Marshal(r)
	case ".json":
		b, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported report format %q (use .yaml, .yml, .toml or .json)", ext)
	}
}

// Write encodes r by the extension of path and writes it atomically
// (temp file in the same directory, then rename).
func Write(path string, r *Report) error {
	data, err := Marshal(r, filepath.Ext(path))
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".report-*")
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
