package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/dampsim/internal/sim"
)

type ExportData struct {
	RunMetadata
	Times        []float64 `json:"times"`
	Positions    []float64 `json:"positions"`
	Velocities   []float64 `json:"velocities"`
	Equilibriums []float64 `json:"equilibriums"`
}

func ExportJSON(w io.Writer, meta RunMetadata, result *sim.Result) error {
	meta.Steps = result.StepsTaken
	if len(result.Metrics) > 0 {
		meta.Metrics = result.Metrics
	}
	data := ExportData{
		RunMetadata:  meta,
		Times:        result.Times,
		Positions:    result.Positions,
		Velocities:   result.Velocities,
		Equilibriums: result.Equilibriums,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
