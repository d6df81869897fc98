package storage

import (
	"encoding/csv"
	"io"

	"github.com/san-kum/dampsim/internal/sim"
)

// SampleWriter streams samples as states.csv rows while a run is in
// progress. It implements sim.Observer; the first write error sticks and is
// reported by Flush.
type SampleWriter struct {
	cw      *csv.Writer
	started bool
	err     error
}

func NewSampleWriter(w io.Writer) *SampleWriter {
	return &SampleWriter{cw: csv.NewWriter(w)}
}

func (sw *SampleWriter) OnStep(s sim.Sample) {
	if sw.err != nil {
		return
	}
	if !sw.started {
		sw.started = true
		if sw.err = sw.cw.Write(stateHeader); sw.err != nil {
			return
		}
	}
	sw.err = sw.cw.Write(sampleRow(s))
}

// Flush writes buffered rows and returns the first error seen.
func (sw *SampleWriter) Flush() error {
	sw.cw.Flush()
	if sw.err != nil {
		return sw.err
	}
	return sw.cw.Error()
}
