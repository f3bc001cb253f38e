package submit

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Dialect identifies the submission command family. It only affects how the
// script is handed to the command and how the job ID is extracted from its
// output; the script content itself is opaque payload.
type Dialect string

const (
	DialectGeneric Dialect = ""
	DialectLSF     Dialect = "LSF"
	DialectSLURM   Dialect = "SLURM"
	DialectPBS     Dialect = "PBS"
)

// Job ID patterns per dialect.
//
// LSF:   Job <12345> is submitted to queue <gpu>.
// SLURM: Submitted batch job 12345
// PBS:   the job ID is the first whitespace-delimited token (e.g. 12345.head1)
var (
	lsfJobIDRe   = regexp.MustCompile(`Job <(\d+)> is submitted`)
	slurmJobIDRe = regexp.MustCompile(`Submitted batch job (\d+)`)
)

// DetectDialect infers the dialect from the submission command's base name.
// Unknown commands get DialectGeneric: the script is passed as an argument
// and the trimmed output becomes the job handle.
func DetectDialect(command string) Dialect {
	base := filepath.Base(command)
	// Strip a version or wrapper suffix like "bsub.real" or "sbatch-wrapper"
	if idx := strings.IndexAny(base, ".-"); idx > 0 {
		base = base[:idx]
	}
	switch base {
	case "bsub":
		return DialectLSF
	case "sbatch", "srun":
		return DialectSLURM
	case "qsub":
		return DialectPBS
	default:
		return DialectGeneric
	}
}

// ReadsStdin reports whether the dialect expects the script on standard input.
// LSF's bsub is invoked as `bsub < script`; the others take a path argument.
func (d Dialect) ReadsStdin() bool {
	return d == DialectLSF
}

// ParseHandle extracts the job handle from submitter output.
// Known dialects must match their pattern; generic commands return the
// trimmed output as an opaque handle.
func (d Dialect) ParseHandle(output string) (Handle, error) {
	switch d {
	case DialectLSF:
		if m := lsfJobIDRe.FindStringSubmatch(output); m != nil {
			return Handle(m[1]), nil
		}
	case DialectSLURM:
		if m := slurmJobIDRe.FindStringSubmatch(output); m != nil {
			return Handle(m[1]), nil
		}
	case DialectPBS:
		fields := strings.Fields(output)
		if len(fields) > 0 {
			return Handle(fields[0]), nil
		}
	default:
		trimmed := strings.TrimSpace(output)
		if trimmed != "" {
			return Handle(trimmed), nil
		}
	}
	return "", ErrJobIDParseFailed
}

// jobEnvVars are scheduler environment variables that mark execution inside a
// running job. Submitting from inside a job would nest submissions.
var jobEnvVars = []string{"LSB_JOBID", "SLURM_JOB_ID", "PBS_JOBID"}

// IsInsideJob checks if we're currently running inside a scheduler job.
func IsInsideJob() bool {
	for _, key := range jobEnvVars {
		if _, ok := os.LookupEnv(key); ok {
			return true
		}
	}
	return false
}
