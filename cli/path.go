package cli

import (
	"os"

	"github.com/ardnew/pathfinder/pkg"
)

const (
	// baseConfig is the base name of the configuration file and the name of the
	// group read from it.
	baseConfig = "cli"

	// basePaths is the base name of the default paths document.
	basePaths = "paths.sdoc"
)

var defaultDirMode os.FileMode = 0o700

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{pkg.ConfigDir(), pkg.CacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
