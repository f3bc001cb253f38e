package submit

import (
	"context"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		output string
		want   string
	}{
		{"IBM Spectrum LSF 10.1.0.0 build 601088, May 25 2018\n", "10.1.0.0"},
		{"Platform LSF 9.1.3.0 build 12345\n", "9.1.3.0"},
		{"slurm 23.02.7\n", "23.02.7"},
		{"no version here\n", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ParseVersion(tt.output); got != tt.want {
			t.Errorf("ParseVersion(%q) = %q, want %q", tt.output, got, tt.want)
		}
	}
}

func TestSupportsGpuDirective(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"10.1.0.0", true},
		{"10.1", true},
		{"10.2.0.1", true},
		{"11.0.0.0", true},
		{"10.0.9.0", false},
		{"9.1.3.0", false},
		{"10", false}, // no minor component, can't tell
		{"", false},
	}

	for _, tt := range tests {
		if got := SupportsGpuDirective(tt.version); got != tt.want {
			t.Errorf("SupportsGpuDirective(%q) = %v, want %v", tt.version, got, tt.want)
		}
	}
}

func TestGetInfoLsf(t *testing.T) {
	clearJobEnv(t)
	dir := t.TempDir()
	bsub := writeFakeSubmitter(t, dir, "bsub",
		`if [ "$1" = "-V" ]; then
  echo "IBM Spectrum LSF 10.1.0.0 build 601088, May 25 2018" >&2
  exit 0
fi`)

	sub, err := New(bsub, Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	info := sub.GetInfo(context.Background())
	if info.Dialect != DialectLSF {
		t.Errorf("Dialect = %q, want LSF", info.Dialect)
	}
	if info.Version != "10.1.0.0" {
		t.Errorf("Version = %q, want 10.1.0.0", info.Version)
	}
	if !info.GpuDirective {
		t.Error("GpuDirective = false, want true for LSF 10.1")
	}
	if !info.Available || info.InJob {
		t.Errorf("Available = %v, InJob = %v; want available outside a job", info.Available, info.InJob)
	}
}

func TestGetInfoInsideJob(t *testing.T) {
	clearJobEnv(t)
	t.Setenv("LSB_JOBID", "777")

	dir := t.TempDir()
	bsub := writeFakeSubmitter(t, dir, "bsub", `exit 0`)

	sub, err := New(bsub, Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	info := sub.GetInfo(context.Background())
	if !info.InJob {
		t.Error("InJob = false with LSB_JOBID set")
	}
	if info.Available {
		t.Error("Available = true inside a job")
	}
}
