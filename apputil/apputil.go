// Package apputil has small filesystem predicates shared by the loaders.
package apputil

import (
	"os"
)

// FileExists reports whether filePath names an existing regular file. Directories and paths
// that cannot be stat'ed are reported as not existing.
func FileExists(filePath string) bool {
	fi, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular()
}
