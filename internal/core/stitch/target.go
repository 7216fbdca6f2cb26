package stitch

import (
	"path/filepath"
	"time"
)

// ResolveDateDir maps a stitch target to its date directory. Only the base
// name of target is used, so "2025-01-01", "./2025-01-01" and
// "/elsewhere/2025-01-01" all resolve under outputRoot.
func ResolveDateDir(outputRoot, target string) (dir, date string) {
	date = filepath.Base(filepath.Clean(target))
	return filepath.Join(outputRoot, date), date
}

// IsDateName reports whether name is a YYYY-MM-DD date.
func IsDateName(name string) bool {
	_, err := time.Parse("2006-01-02", name)
	return err == nil
}
