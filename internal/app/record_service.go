package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/example/camrec/internal/core/duration"
	"github.com/example/camrec/internal/core/recording"
	"github.com/example/camrec/internal/ffmpeg"
	"github.com/example/camrec/internal/models"
	"github.com/example/camrec/internal/ports/primary"
	"github.com/example/camrec/internal/ports/secondary"
)

// RecordSettings are the configuration values the recorder needs.
type RecordSettings struct {
	OutputRoot     string
	FFmpegPath     string
	SegmentSeconds int
	SegmentFormat  string
	TmuxPrefix     string
}

// RecordServiceImpl implements the RecordService interface.
type RecordServiceImpl struct {
	locator    secondary.CameraLocator
	streams    secondary.StreamConfigLoader
	runner     secondary.ProcessRunner
	store      secondary.SegmentStore
	normalizer secondary.Normalizer
	sessions   secondary.SessionRepository // nil disables the ledger
	launcher   secondary.SessionLauncher
	settings   RecordSettings
	output     io.Writer // capture process progress
	log        zerolog.Logger
	now        func() time.Time
	redact     func(string) string
}

// NewRecordService creates a new RecordService with injected dependencies.
func NewRecordService(
	locator secondary.CameraLocator,
	streams secondary.StreamConfigLoader,
	runner secondary.ProcessRunner,
	store secondary.SegmentStore,
	normalizer secondary.Normalizer,
	sessions secondary.SessionRepository,
	launcher secondary.SessionLauncher,
	settings RecordSettings,
	output io.Writer,
	log zerolog.Logger,
	redact func(string) string,
) *RecordServiceImpl {
	if redact == nil {
		redact = func(s string) string { return s }
	}
	return &RecordServiceImpl{
		locator:    locator,
		streams:    streams,
		runner:     runner,
		store:      store,
		normalizer: normalizer,
		sessions:   sessions,
		launcher:   launcher,
		settings:   settings,
		output:     output,
		log:        log,
		now:        time.Now,
		redact:     redact,
	}
}

// Record runs one bounded recording session.
//
// Resolution failures (duration, camera, stream config) return before any
// file is created. Once capture starts the response is always returned; a
// capture failure additionally returns a *models.ProcessError. Cancelling
// ctx stops the capture cleanly and is not an error.
func (s *RecordServiceImpl) Record(ctx context.Context, req primary.RecordRequest) (*primary.RecordResponse, error) {
	session := &models.RecordingSession{
		ID:       uuid.NewString(),
		CameraID: req.CameraID,
		State:    models.StateIdle,
	}
	log := s.log.With().Str("camera", req.CameraID).Str("session", session.ID).Logger()

	seconds, err := duration.Parse(req.Duration)
	if err != nil {
		return nil, err
	}

	loc, err := s.locator.Locate(ctx, req.CameraID)
	if err != nil {
		return nil, err
	}
	session.LocationPath = loc.LocationPath
	if err := recording.Advance(session, models.StateLocated); err != nil {
		return nil, err
	}

	streamURL, err := s.streams.LoadStreamURL(ctx, loc.LocationPath, req.CameraID)
	if err != nil {
		var cfgErr *models.ConfigError
		if !errors.As(err, &cfgErr) {
			err = &models.ConfigError{CameraID: req.CameraID, Reason: "stream config loader failed", Err: err}
		}
		return nil, err
	}
	if guard := recording.CanStartCapture(recording.StreamContext{CameraID: req.CameraID, StreamURL: streamURL}); !guard.Allowed {
		return nil, &models.ConfigError{CameraID: req.CameraID, Reason: guard.Reason}
	}
	session.StreamURL = streamURL
	if err := recording.Advance(session, models.StateConfigResolved); err != nil {
		return nil, err
	}

	session.StartedAt = s.now()
	session.DurationSeconds = seconds
	session.OutputDir = recording.OutputDir(s.settings.OutputRoot, req.CameraID, session.StartedAt)
	session.SegmentTemplate = recording.SegmentTemplate(req.CameraID, s.settings.SegmentFormat)

	if err := s.store.EnsureDir(ctx, session.OutputDir); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := recording.Advance(session, models.StateRecording); err != nil {
		return nil, err
	}

	log.Info().
		Str("location", session.LocationPath).
		Str("url", s.redact(streamURL)).
		Int("seconds", seconds).
		Str("output", session.OutputDir).
		Msg("recording started")
	s.ledgerCreate(ctx, session, log)

	result, runErr := s.runner.Run(ctx, secondary.ProcessSpec{
		Name: s.settings.FFmpegPath,
		Args: ffmpeg.CaptureArgs(ffmpeg.CaptureOptions{
			StreamURL:       streamURL,
			DurationSeconds: seconds,
			SegmentSeconds:  s.settings.SegmentSeconds,
			SegmentFormat:   s.settings.SegmentFormat,
			OutputPattern:   filepath.Join(session.OutputDir, session.SegmentTemplate),
		}),
		Stdout: s.output,
		Stderr: s.output,
	})
	session.EndedAt = s.now()

	outcome := recording.OutcomeForExit(recording.ExitContext{
		ExitCode:    result.ExitCode,
		Cancelled:   result.Interrupted,
		StartFailed: runErr != nil,
	})
	if err := recording.Advance(session, outcome); err != nil {
		return nil, err
	}

	var captureErr error
	if outcome == models.StateFailed {
		captureErr = &models.ProcessError{Name: "ffmpeg capture", ExitCode: result.ExitCode, Err: runErr}
	}

	// Normalization runs for every terminal outcome, including failure, so
	// whatever segments were flushed stay usable. The date directory is
	// included because this session may have created it.
	norm := s.normalizer.Normalize(context.WithoutCancel(ctx), filepath.Dir(session.OutputDir))
	logNormalize(log, norm)
	if err := recording.Advance(session, models.StateNormalized); err != nil {
		return nil, err
	}

	segments := s.listSegments(ctx, session)
	s.ledgerFinish(ctx, session, len(segments), captureErr, log)

	ev := log.Info()
	if captureErr != nil {
		ev = log.Error().Err(captureErr)
	}
	ev.Str("outcome", string(session.Outcome)).Int("segments", len(segments)).Msg("recording finished")

	return &primary.RecordResponse{
		Session:   session,
		Segments:  segments,
		Normalize: norm,
	}, captureErr
}

// listSegments returns the segment files of this camera whose embedded
// timestamp is not earlier than the session start (to the second).
func (s *RecordServiceImpl) listSegments(ctx context.Context, session *models.RecordingSession) []models.VideoSegment {
	names, err := s.store.ListFiles(context.WithoutCancel(ctx), session.OutputDir)
	if err != nil {
		return nil
	}
	since := session.StartedAt.Truncate(time.Second)
	var segments []models.VideoSegment
	for _, name := range names {
		ts, ok := recording.ParseSegmentName(name, session.CameraID, session.StartedAt.Location())
		if !ok || ts.Before(since) {
			continue
		}
		segments = append(segments, models.VideoSegment{
			Path:             filepath.Join(session.OutputDir, name),
			CameraID:         session.CameraID,
			CaptureTimestamp: ts,
		})
	}
	return segments
}

func (s *RecordServiceImpl) ledgerCreate(ctx context.Context, session *models.RecordingSession, log zerolog.Logger) {
	if s.sessions == nil {
		return
	}
	err := s.sessions.Create(ctx, &secondary.SessionRecord{
		ID:              session.ID,
		CameraID:        session.CameraID,
		LocationPath:    session.LocationPath,
		StreamURL:       s.redact(session.StreamURL),
		DurationSeconds: session.DurationSeconds,
		OutputDir:       session.OutputDir,
		State:           string(models.StateRecording),
		StartedAt:       session.StartedAt.Format(time.RFC3339),
	})
	if err != nil {
		log.Warn().Err(err).Msg("ledger: could not record session start")
	}
}

func (s *RecordServiceImpl) ledgerFinish(ctx context.Context, session *models.RecordingSession, segments int, captureErr error, log zerolog.Logger) {
	if s.sessions == nil {
		return
	}
	result := secondary.SessionResult{
		State:        string(session.Outcome),
		SegmentCount: segments,
		EndedAt:      session.EndedAt,
	}
	if captureErr != nil {
		result.Error = captureErr.Error()
	}
	if err := s.sessions.Finish(context.WithoutCancel(ctx), session.ID, result); err != nil {
		log.Warn().Err(err).Msg("ledger: could not record session outcome")
	}
}

// Detach launches the record command inside a detached terminal session
// named <prefix>-<camera>. The camera id is validated before launching so
// obvious mistakes surface in the calling shell.
func (s *RecordServiceImpl) Detach(ctx context.Context, req primary.DetachRequest) (*primary.DetachResponse, error) {
	if _, err := duration.Parse(req.Duration); err != nil {
		return nil, err
	}
	if _, err := s.locator.Locate(ctx, req.CameraID); err != nil {
		return nil, err
	}
	if s.launcher == nil {
		return nil, errors.New("detached sessions are not available")
	}

	name := fmt.Sprintf("%s-%s", s.settings.TmuxPrefix, req.CameraID)
	if s.launcher.SessionExists(ctx, name) {
		return nil, fmt.Errorf("session %s already exists; camera %s is already recording", name, req.CameraID)
	}

	workDir := s.settings.OutputRoot
	if ok, err := s.store.DirectoryExists(ctx, workDir); err != nil || !ok {
		workDir = "/"
	}
	if err := s.launcher.LaunchDetached(ctx, name, workDir, req.Command); err != nil {
		return nil, fmt.Errorf("failed to launch detached recording: %w", err)
	}

	s.log.Info().Str("camera", req.CameraID).Str("tmux", name).Msg("detached recording launched")
	return &primary.DetachResponse{
		SessionName: name,
		Attach:      s.launcher.AttachInstructions(name),
	}, nil
}

// Ensure RecordServiceImpl implements the interface
var _ primary.RecordService = (*RecordServiceImpl)(nil)
