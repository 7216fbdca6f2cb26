package recording

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// DateLayout is the date directory name format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// TimestampLayout is the Go equivalent of the strftime pattern embedded in
// segment names.
const TimestampLayout = "2006-01-02_15-04-05"

// strftimeTimestamp must render the same text as TimestampLayout.
const strftimeTimestamp = "%Y-%m-%d_%H-%M-%S"

// SegmentTemplate returns the strftime filename template handed to the
// capture process, e.g. "camA-%Y-%m-%d_%H-%M-%S.mkv".
func SegmentTemplate(cameraID, format string) string {
	return fmt.Sprintf("%s-%s.%s", cameraID, strftimeTimestamp, format)
}

// OutputDir returns <outputRoot>/<date>/<cameraID> for the given day.
func OutputDir(outputRoot, cameraID string, day time.Time) string {
	return filepath.Join(outputRoot, day.Format(DateLayout), cameraID)
}

// ParseSegmentName extracts the capture timestamp from a segment file name
// produced by SegmentTemplate. ok is false for names that do not belong to
// cameraID or do not carry a timestamp. The result is in loc.
func ParseSegmentName(name, cameraID string, loc *time.Location) (time.Time, bool) {
	prefix := cameraID + "-"
	if !strings.HasPrefix(name, prefix) {
		return time.Time{}, false
	}
	stem := strings.TrimSuffix(name, path.Ext(name))
	ts, err := time.ParseInLocation(TimestampLayout, strings.TrimPrefix(stem, prefix), loc)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}
