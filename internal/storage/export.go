package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	RunMetadata
	Times  []float64 `json:"times"`
	States []float64 `json:"states"`
}

// ExportJSON writes the metadata and full trajectory of a run to w.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	times, states, err := s.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{
		RunMetadata: *meta,
		Times:       times,
		States:      states,
	})
}

// ExportCSV copies the trajectory table of a run to w.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	times, states, err := s.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	return WriteCSV(w, times, states)
}
