package recolour

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-ps"
)

// ProcessRunning reports whether a process with the given executable name is running.
// The comparison ignores case and a trailing .exe.
func ProcessRunning(name string) (bool, error) {
	processes, err := ps.Processes()
	if err != nil {
		return false, fmt.Errorf("failed to get process list: %w", err)
	}

	want := normaliseExecutable(name)
	for _, p := range processes {
		if normaliseExecutable(p.Executable()) == want {
			return true, nil
		}
	}
	return false, nil
}

func normaliseExecutable(name string) string {
	name = strings.ToLower(filepath.Base(name))
	return strings.TrimSuffix(name, ".exe")
}
