package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"mptrim/internal/config"
)

// Requirement defines an external dependency mptrim relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Available   bool
	Detail      string
}

// Requirements returns the external binaries for the configured engine.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{Name: "FFmpeg", Command: cfg.Engine.FFmpegBinary, Description: "analysis and cut-and-encode passes"},
		{Name: "FFprobe", Command: cfg.Engine.FFprobeBinary, Description: "container duration and stream inspection"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Missing reports the names of required binaries that are unavailable.
func Missing(statuses []Status) []string {
	var missing []string
	for _, status := range statuses {
		if !status.Available {
			missing = append(missing, status.Name)
		}
	}
	return missing
}
