// Package ffmpeg drives the ffmpeg binary for segmented capture and
// lossless concatenation.
package ffmpeg

import "strconv"

// CaptureOptions defines one segmented capture run.
type CaptureOptions struct {
	StreamURL       string
	DurationSeconds int
	SegmentSeconds  int    // 900 = 15 minute segments
	SegmentFormat   string // "mkv"
	OutputPattern   string // strftime pattern, e.g. /out/2025-01-01/cam01/cam01-%Y-%m-%d_%H-%M-%S.mkv
}

// CaptureArgs builds the arguments for a segmented RTSP capture.
//
// Video is stream-copied without audio into fixed-length segments whose
// boundaries align to the wall clock. Segment file names carry their start
// time via strftime, and each segment restarts its timestamps at zero.
func CaptureArgs(opts CaptureOptions) []string {
	return []string{
		"-y",
		"-stats",
		"-rtsp_transport", "tcp",
		"-fflags", "+genpts+igndts",
		"-i", opts.StreamURL,
		"-codec", "copy",
		"-an",
		"-map", "0:v",
		"-f", "segment",
		"-segment_time", strconv.Itoa(opts.SegmentSeconds),
		"-segment_format", opts.SegmentFormat,
		"-segment_atclocktime", "1",
		"-reset_timestamps", "1",
		"-strftime", "1",
		"-t", strconv.Itoa(opts.DurationSeconds),
		opts.OutputPattern,
	}
}

// ConcatArgs builds the arguments for a stream-copy concatenation of the
// files listed in manifest into output. Manifest paths are absolute, so the
// concat demuxer runs with -safe 0.
func ConcatArgs(manifest, output string) []string {
	return []string{
		"-hide_banner",
		"-loglevel", "warning",
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", manifest,
		"-c", "copy",
		output,
	}
}
