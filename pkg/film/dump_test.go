package film

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-bidirectional-renderer/pkg/core"
)

func TestDumpStrategies(t *testing.T) {
	dir := t.TempDir()

	wr := NewWorkResult(analysisConfig(), boxFilter(), 0)
	wr.PutStrategySample(1, 1, core.NewPoint2(0.5, 0.5), core.NewSpectrum(1, 1, 1))
	wr.PutStrategySample(0, 3, core.NewPoint2(2.5, 2.5), core.NewSpectrum(2, 2, 2))
	wr.PutStrategySampleM(2, 0, core.NewPoint2(1.5, 1.5), core.NewSpectrum(0.5, 0.5, 0.5))

	if err := wr.DumpStrategies(dir, "test"); err != nil {
		t.Fatalf("DumpStrategies failed: %v", err)
	}

	// Deposited strategies, per-depth composites, and the secondary
	// bank's deposited slot (which gets no composite)
	expected := []string{
		"test_bdpt_k01_s01_t01.png",
		"test_bdpt_k01.png",
		"test_bdpt_k02_s00_t03.png",
		"test_bdpt_k02.png",
		"test_bdpt_nm_k01_s02_t00.png",
	}
	for _, name := range expected {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Expected dump file %s: %v", name, err)
		}
	}

	// Zero-contribution strategies are skipped
	unexpected := []string{
		"test_bdpt_k01_s02_t00.png",
		"test_bdpt_k02_s01_t02.png",
		"test_bdpt_nm_k01.png",
	}
	for _, name := range unexpected {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			t.Errorf("Unexpected dump file %s for zero strategy", name)
		}
	}
}

func TestDumpStrategiesReadOnly(t *testing.T) {
	dir := t.TempDir()

	wr := NewWorkResult(analysisConfig(), boxFilter(), 0)
	wr.PutStrategySample(1, 1, core.NewPoint2(0.5, 0.5), core.NewSpectrum(1, 1, 1))

	before := wr.StrategyPlane(1, 1).Value(0, 0)
	if err := wr.DumpStrategies(dir, "test"); err != nil {
		t.Fatalf("DumpStrategies failed: %v", err)
	}
	if after := wr.StrategyPlane(1, 1).Value(0, 0); after != before {
		t.Errorf("Dump mutated accumulation state: %v != %v", after, before)
	}
}

func TestDumpStrategiesErrors(t *testing.T) {
	// A result without banks cannot be decomposed
	plain := NewWorkResult(cameraOnlyConfig(), boxFilter(), 0)
	if err := plain.DumpStrategies(t.TempDir(), "test"); err == nil {
		t.Error("Expected error dumping a result without strategy images")
	}

	// An unwritable directory is reported but must not panic
	wr := NewWorkResult(analysisConfig(), boxFilter(), 0)
	wr.PutStrategySample(1, 1, core.NewPoint2(0.5, 0.5), core.NewSpectrum(1, 1, 1))
	if err := wr.DumpStrategies(filepath.Join(t.TempDir(), "missing", "nested"), "test"); err == nil {
		t.Error("Expected error for unwritable dump directory")
	}
}
