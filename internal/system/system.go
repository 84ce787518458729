package system

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// WorkerCount picks a worker pool size from the host's logical CPU count,
// falling back to runtime.NumCPU when the probe fails.
func WorkerCount() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		n = runtime.NumCPU()
	}
	if n < 1 {
		n = 1
	}
	return n
}

// AvailableMemoryMB reports the host's available memory in MiB, 0 when the
// probe fails.
func AvailableMemoryMB() uint64 {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0
	}
	return vm.Available / (1024 * 1024)
}

// FindLatestManifest returns the most recently modified YAML file in dir.
func FindLatestManifest(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		name := strings.ToLower(f.Name())
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no manifest files found in %s", dir)
	}

	return latestFile, nil
}
