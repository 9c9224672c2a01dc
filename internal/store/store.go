package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/aperez/cyclab/internal/tester"
)

// Store persists cyclic test runs under a base directory, one
// subdirectory per run holding metadata.json and series.csv.
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
	ID               string    `json:"id"`
	Material         string    `json:"material"`
	Protocol         string    `json:"protocol"`
	Timestamp        time.Time `json:"timestamp"`
	Points           int       `json:"points"`
	Converged        bool      `json:"converged"`
	PeakStress       float64   `json:"peak_stress"`
	PeakStrain       float64   `json:"peak_strain"`
	EnergyDissipated float64   `json:"energy_dissipated"`
}

func (s *Store) Save(result *tester.Result) (string, error) {
	runID := fmt.Sprintf("%s_%s_%d", result.Material, result.Protocol, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:               runID,
		Material:         result.Material,
		Protocol:         result.Protocol,
		Timestamp:        time.Now(),
		Points:           result.NumPoints(),
		Converged:        result.Converged,
		PeakStress:       result.PeakStress(),
		PeakStrain:       result.PeakStrain(),
		EnergyDissipated: result.EnergyDissipated(),
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "series.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time", "strain", "stress"}); err != nil {
		return "", err
	}

	for i := range result.Time {
		row := []string{
			strconv.FormatFloat(result.Time[i], 'g', -1, 64),
			strconv.FormatFloat(result.Strain[i], 'g', -1, 64),
			strconv.FormatFloat(result.Stress[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
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
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSeries reads the stored time, strain and stress columns back into
// a Result. The converged flag is restored from the run metadata.
func (s *Store) LoadSeries(runID string) (*tester.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	csvPath := filepath.Join(s.baseDir, runID, "series.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	result := &tester.Result{
		Material:  meta.Material,
		Protocol:  meta.Protocol,
		Converged: meta.Converged,
	}

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 3 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		strain, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		stress, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}

		result.Time = append(result.Time, t)
		result.Strain = append(result.Strain, strain)
		result.Stress = append(result.Stress, stress)
	}

	return result, nil
}
