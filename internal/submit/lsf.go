package submit

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"
)

// versionRe matches the first dotted version number in a banner line,
// e.g. "IBM Spectrum LSF 10.1.0.0 build 601088" or "slurm 23.02.7".
var versionRe = regexp.MustCompile(`(\d+(?:\.\d+)+)`)

// Info holds information about the submission command.
type Info struct {
	Command      string  // Resolved path of the submission command
	Dialect      Dialect // Detected dialect
	Version      string  // Scheduler version, if the command reports one
	InJob        bool    // Whether we're currently inside a scheduled job
	Available    bool    // Whether submission is possible right now
	GpuDirective bool    // LSF only: modern -gpu directive syntax available
}

// GetInfo probes the submission command and the environment.
// Version probing is best-effort; a command without a version banner simply
// leaves Version empty.
func (s *Submitter) GetInfo(ctx context.Context) *Info {
	inJob := IsInsideJob()
	info := &Info{
		Command:   s.cmdPath,
		Dialect:   s.dialect,
		InJob:     inJob,
		Available: !inJob,
	}

	if version, err := s.probeVersion(ctx); err == nil {
		info.Version = version
		if s.dialect == DialectLSF {
			info.GpuDirective = SupportsGpuDirective(version)
		}
	}

	return info
}

// probeVersion asks the submission command for its version banner.
func (s *Submitter) probeVersion(ctx context.Context) (string, error) {
	var flag string
	switch s.dialect {
	case DialectLSF, DialectPBS:
		flag = "-V" // bsub -V / qsub -V (banner goes to stderr on LSF)
	case DialectSLURM:
		flag = "--version"
	default:
		return "", fmt.Errorf("no version probe for generic submission command %s", s.cmdPath)
	}

	output, err := runVersionCommand(ctx, s.cmdPath, flag)
	if err != nil {
		// bsub -V exits non-zero on some versions while still printing
		// the banner; fall through if we got something parseable.
		if ParseVersion(output) == "" {
			return "", err
		}
	}

	version := ParseVersion(output)
	if version == "" {
		return "", fmt.Errorf("no version number in output of %s", s.cmdPath)
	}
	return version, nil
}

// runVersionCommand runs the submission command with a version flag and
// returns its combined output.
func runVersionCommand(ctx context.Context, bin string, flag string) (string, error) {
	cmd := exec.CommandContext(ctx, bin, flag)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// ParseVersion extracts the first dotted version number from a banner.
// Returns "" if none is found.
func ParseVersion(output string) string {
	return versionRe.FindString(output)
}

// SupportsGpuDirective reports whether an LSF version understands the
// `-gpu "num=N:type=T"` directive syntax, introduced in LSF 10.1.
// Older clusters must request GPUs via -R "rusage[ngpus_physical=N]".
func SupportsGpuDirective(version string) bool {
	parts := strings.Split(version, ".")
	if len(parts) < 2 {
		return false
	}
	// Compare on major.minor only; LSF versions carry four components.
	v := "v" + parts[0] + "." + parts[1]
	if !semver.IsValid(v) {
		return false
	}
	return semver.Compare(v, "v10.1") >= 0
}
