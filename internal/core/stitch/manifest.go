package stitch

import "strings"

// Manifest renders a concat demuxer list, one `file '<path>'` line per segment.
func Manifest(paths []string) []byte {
	var b strings.Builder
	for _, p := range paths {
		b.WriteString("file '")
		b.WriteString(quote(p))
		b.WriteString("'\n")
	}
	return []byte(b.String())
}

// quote escapes single quotes for the concat demuxer: close the quoted
// string, emit an escaped quote, reopen.
func quote(p string) string {
	return strings.ReplaceAll(p, "'", `'\''`)
}
