// Package workdir resolves the qc project root: the nearest directory at or
// above the working directory holding a .qc directory, optionally redirected
// to a shared root by a .qc-root file.
package workdir

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	stateDir = ".qc"
	rootFile = ".qc-root"
)

// ResolveBaseDir returns the project root for start. A .qc-root file names a
// shared root, for example a network drive used by every bench PC. Without
// markers start is returned unchanged.
func ResolveBaseDir(start string) string {
	for dir := start; ; {
		if target, ok := readRootFile(dir); ok {
			return target
		}
		if info, err := os.Stat(filepath.Join(dir, stateDir)); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}

func readRootFile(dir string) (string, bool) {
	content, err := os.ReadFile(filepath.Join(dir, rootFile))
	if err != nil {
		return "", false
	}
	target := strings.TrimSpace(string(content))
	if target == "" {
		return "", false
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(dir, target)
	}
	return target, true
}
