package hwaccel

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var renderDeviceDir = "/dev/dri"

var defaultRenderDevice = resolveRenderDevice

// resolveRenderDevice scans the DRM device directory for render nodes and
// returns the lowest-numbered one.
func resolveRenderDevice() (string, error) {
	entries, err := os.ReadDir(renderDeviceDir)
	if err != nil {
		return "", fmt.Errorf("scan %s: %w", renderDeviceDir, err)
	}

	var nodes []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "renderD") {
			nodes = append(nodes, filepath.Join(renderDeviceDir, entry.Name()))
		}
	}
	if len(nodes) == 0 {
		return "", fmt.Errorf("no render nodes in %s", renderDeviceDir)
	}
	sort.Strings(nodes)
	return nodes[0], nil
}
