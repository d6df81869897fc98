package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/dampsim/internal/sim"
)

var (
	ErrRunNotFound  = errors.New("storage: run not found")
	ErrInvalidLabel = errors.New("storage: invalid run label")
)

var stateHeader = []string{"time", "position", "velocity", "equilibrium"}

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
	ID               string             `json:"id"`
	Label            string             `json:"label"`
	Timestamp        time.Time          `json:"timestamp"`
	AngularFrequency float64            `json:"angular_frequency"`
	DampingRatio     float64            `json:"damping_ratio"`
	Regime           string             `json:"regime"`
	Precision        string             `json:"precision"`
	Method           string             `json:"method"`
	Dt               float64            `json:"dt"`
	Duration         float64            `json:"duration"`
	Steps            int                `json:"steps"`
	Metrics          map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and states.csv into a fresh run directory. ID,
// Timestamp, Steps and Metrics are filled in from the run.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	if meta.Label == "" {
		meta.Label = "run"
	}
	if err := checkLabel(meta.Label); err != nil {
		return "", err
	}
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Label, now.UnixNano())
	meta.Timestamp = now
	meta.Steps = result.StepsTaken
	meta.Metrics = result.Metrics

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
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

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, result); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// checkLabel keeps run directories inside the store: a label must be a
// single path element.
func checkLabel(label string) error {
	if label == "." || label == ".." || strings.ContainsAny(label, `/\`) || filepath.Base(label) != label {
		return fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	return nil
}

// List returns every readable run, oldest first. Directories without valid
// metadata are skipped.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: decode %s metadata: %w", runID, err)
	}
	return &meta, nil
}

// LoadStates reads a run's trajectory back. Metrics and step counts are not
// part of states.csv; use Load for those.
func (s *Store) LoadStates(runID string) (*sim.Result, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	return ReadCSV(file)
}

// WriteCSV writes one row per sample under the time, position, velocity,
// equilibrium header.
func WriteCSV(w io.Writer, result *sim.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(stateHeader); err != nil {
		return err
	}

	for _, sample := range result.Samples() {
		if err := cw.Write(sampleRow(sample)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func sampleRow(s sim.Sample) []string {
	format := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return []string{format(s.Time), format(s.Position), format(s.Velocity), format(s.Equilibrium)}
}

func ReadCSV(r io.Reader) (*sim.Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(stateHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("storage: read states: %w", err)
	}

	res := &sim.Result{Metrics: make(map[string]float64)}
	if len(records) < 2 {
		return res, nil
	}

	for i, record := range records[1:] {
		var vals [4]float64
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: row %d column %s: %w", i+1, stateHeader[j], err)
			}
			vals[j] = v
		}
		res.Times = append(res.Times, vals[0])
		res.Positions = append(res.Positions, vals[1])
		res.Velocities = append(res.Velocities, vals[2])
		res.Equilibriums = append(res.Equilibriums, vals[3])
	}
	res.StepsTaken = len(res.Times) - 1
	return res, nil
}
