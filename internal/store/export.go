package store

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/aperez/cyclab/internal/tester"
)

type ExportData struct {
	Material         string    `json:"material"`
	Protocol         string    `json:"protocol"`
	Points           int       `json:"points"`
	Converged        bool      `json:"converged"`
	PeakStress       float64   `json:"peak_stress"`
	PeakStrain       float64   `json:"peak_strain"`
	EnergyDissipated float64   `json:"energy_dissipated"`
	Time             []float64 `json:"time"`
	Strain           []float64 `json:"strain"`
	Stress           []float64 `json:"stress"`
}

func newExportData(result *tester.Result) ExportData {
	return ExportData{
		Material:         result.Material,
		Protocol:         result.Protocol,
		Points:           result.NumPoints(),
		Converged:        result.Converged,
		PeakStress:       result.PeakStress(),
		PeakStrain:       result.PeakStrain(),
		EnergyDissipated: result.EnergyDissipated(),
		Time:             result.Time,
		Strain:           result.Strain,
		Stress:           result.Stress,
	}
}

func ExportJSON(path string, result *tester.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return writeJSON(file, result)
}

func ExportJSONStdout(result *tester.Result) error {
	return writeJSON(os.Stdout, result)
}

func writeJSON(w io.Writer, result *tester.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(result))
}

func ExportCSV(path string, result *tester.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteCSV(file, result)
}

func WriteCSV(w io.Writer, result *tester.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"time", "strain", "stress"}); err != nil {
		return err
	}
	for i := range result.Time {
		row := []string{
			strconv.FormatFloat(result.Time[i], 'g', -1, 64),
			strconv.FormatFloat(result.Strain[i], 'g', -1, 64),
			strconv.FormatFloat(result.Stress[i], 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}
