package store

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aperez/cyclab/internal/tester"
)

func sampleResult() *tester.Result {
	return &tester.Result{
		Time:      []float64{0.0, 0.5, 1.0},
		Strain:    []float64{0.0, 0.01, 0.0},
		Stress:    []float64{0.0, 300.0, 50.0},
		Converged: true,
		Material:  "steel01",
		Protocol:  "asce41",
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Material != "steel01" {
		t.Errorf("expected material 'steel01', got '%s'", meta.Material)
	}

	if meta.Protocol != "asce41" {
		t.Errorf("expected protocol 'asce41', got '%s'", meta.Protocol)
	}

	if meta.Points != 3 {
		t.Errorf("expected 3 points, got %d", meta.Points)
	}

	if !meta.Converged {
		t.Error("expected converged metadata")
	}

	if meta.PeakStress != 300.0 {
		t.Errorf("expected peak stress 300, got %f", meta.PeakStress)
	}
}

func TestStoreLoadSeries(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}

	if loaded.NumPoints() != 3 {
		t.Fatalf("expected 3 points, got %d", loaded.NumPoints())
	}

	if loaded.Strain[1] != 0.01 {
		t.Errorf("expected strain 0.01, got %f", loaded.Strain[1])
	}

	if loaded.Stress[2] != 50.0 {
		t.Errorf("expected stress 50, got %f", loaded.Stress[2])
	}

	if !loaded.Converged {
		t.Error("expected converged flag restored from metadata")
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty list, got %d runs", len(runs))
	}

	if _, err := st.Save(sampleResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "does-not-exist"))

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty list, got %d runs", len(runs))
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")

	if err := ExportJSON(path, sampleResult()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}

	var exported ExportData
	if err := json.Unmarshal(data, &exported); err != nil {
		t.Fatalf("unmarshal exported data: %v", err)
	}

	if exported.Material != "steel01" {
		t.Errorf("expected material 'steel01', got '%s'", exported.Material)
	}
	if exported.Points != 3 {
		t.Errorf("expected 3 points, got %d", exported.Points)
	}
	if len(exported.Stress) != 3 {
		t.Errorf("expected 3 stress values, got %d", len(exported.Stress))
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer

	if err := WriteCSV(&buf, sampleResult()); err != nil {
		t.Fatalf("write csv failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "time,strain,stress" {
		t.Errorf("unexpected header: %s", lines[0])
	}
}
