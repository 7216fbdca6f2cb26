package app

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/camrec/internal/core/effects"
	"github.com/example/camrec/internal/core/recording"
	"github.com/example/camrec/internal/core/stitch"
	"github.com/example/camrec/internal/ffmpeg"
	"github.com/example/camrec/internal/models"
	"github.com/example/camrec/internal/ports/primary"
	"github.com/example/camrec/internal/ports/secondary"
)

// StitchSettings are the configuration values the stitcher needs.
type StitchSettings struct {
	OutputRoot    string
	FFmpegPath    string
	ArchiveFormat string
	Extensions    []string
}

// StitchServiceImpl implements the StitchService interface.
type StitchServiceImpl struct {
	store    secondary.SegmentStore
	runner   secondary.ProcessRunner
	executor EffectExecutor
	archives secondary.ArchiveRepository // nil disables the ledger
	settings StitchSettings
	output   io.Writer // concat process diagnostics
	log      zerolog.Logger
}

// NewStitchService creates a new StitchService with injected dependencies.
func NewStitchService(
	store secondary.SegmentStore,
	runner secondary.ProcessRunner,
	executor EffectExecutor,
	archives secondary.ArchiveRepository,
	settings StitchSettings,
	output io.Writer,
	log zerolog.Logger,
) *StitchServiceImpl {
	return &StitchServiceImpl{
		store:    store,
		runner:   runner,
		executor: executor,
		archives: archives,
		settings: settings,
		output:   output,
		log:      log,
	}
}

// Stitch consolidates every camera directory under the target date directory.
func (s *StitchServiceImpl) Stitch(ctx context.Context, req primary.StitchRequest) (*primary.StitchResponse, error) {
	dateDir, date := stitch.ResolveDateDir(s.settings.OutputRoot, req.Target)
	// Anything but a date name would make the output root, or another
	// directory above the cameras, look like a set of camera directories.
	if !stitch.IsDateName(date) || filepath.Clean(dateDir) == filepath.Clean(s.settings.OutputRoot) {
		return nil, &models.NotFoundError{Kind: "date directory", Name: req.Target, Root: s.settings.OutputRoot}
	}

	exists, err := s.store.DirectoryExists(ctx, dateDir)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &models.NotFoundError{Kind: "directory", Name: dateDir}
	}

	cameras, err := s.store.ListSubdirectories(ctx, dateDir)
	if err != nil {
		return nil, err
	}

	resp := &primary.StitchResponse{
		DateDir:      dateDir,
		Date:         date,
		DeleteSource: !req.KeepSource,
	}
	if len(cameras) == 0 {
		return resp, nil
	}

	scratch, err := s.store.MakeScratchDir(ctx, "camrec-stitch-*")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := s.store.RemoveTree(context.WithoutCancel(ctx), scratch); err != nil {
			s.log.Warn().Err(err).Str("path", scratch).Msg("could not remove scratch directory")
		}
	}()

	for _, cam := range cameras {
		result := s.stitchCamera(ctx, stitchJob{
			dateDir:   dateDir,
			date:      date,
			cameraID:  cam,
			scratch:   scratch,
			keep:      req.KeepSource,
			overwrite: req.Overwrite,
		})
		resp.Cameras = append(resp.Cameras, result)
	}

	return resp, nil
}

type stitchJob struct {
	dateDir   string
	date      string
	cameraID  string
	scratch   string
	keep      bool
	overwrite bool
}

// stitchCamera handles one camera directory. Every failure is contained in
// the returned result so the caller can move on to the next camera.
func (s *StitchServiceImpl) stitchCamera(ctx context.Context, job stitchJob) primary.CameraResult {
	log := s.log.With().Str("camera", job.cameraID).Str("date", job.date).Logger()
	result := primary.CameraResult{CameraID: job.cameraID}
	archivePath := stitch.ArchivePath(job.dateDir, job.cameraID, job.date, s.settings.ArchiveFormat)

	files, err := s.store.ListFiles(ctx, stitch.CameraDir(job.dateDir, job.cameraID))
	if err != nil {
		return s.fail(ctx, job, result, archivePath, err, log)
	}
	archiveExists, err := s.store.FileExists(ctx, archivePath)
	if err != nil {
		return s.fail(ctx, job, result, archivePath, err, log)
	}

	plan := stitch.GenerateCameraPlan(stitch.CameraInput{
		DateDir:       job.dateDir,
		Date:          job.date,
		CameraID:      job.cameraID,
		Files:         files,
		Extensions:    s.settings.Extensions,
		ArchiveFormat: s.settings.ArchiveFormat,
		ArchiveExists: archiveExists,
		Overwrite:     job.overwrite,
		DeleteSource:  !job.keep,
		ScratchDir:    job.scratch,
	})
	result.SegmentCount = len(plan.Segments)

	switch plan.Decision {
	case stitch.DecisionSkipEmpty:
		log.Debug().Msg("no segments, skipping")
		result.Status = primary.CameraSkippedEmpty
		return result
	case stitch.DecisionSkipArchived:
		log.Warn().Str("archive", plan.ArchivePath).Msg("archive already exists, skipping (use --overwrite to replace)")
		result.Status = primary.CameraSkippedExists
		return result
	}

	if _, err := s.executor.Execute(ctx, plan.Prepare); err != nil {
		s.runCleanup(ctx, plan.Always, log)
		return s.fail(ctx, job, result, archivePath, err, log)
	}

	log.Info().Int("segments", len(plan.Segments)).Str("archive", plan.ArchivePath).Msg("stitching")
	res, runErr := s.runner.Run(ctx, secondary.ProcessSpec{
		Name:   s.settings.FFmpegPath,
		Args:   ffmpeg.ConcatArgs(plan.ManifestPath, plan.PartialPath),
		Stdout: s.output,
		Stderr: s.output,
	})
	s.runCleanup(ctx, plan.Always, log)

	if runErr != nil || res.ExitCode != 0 || res.Interrupted {
		s.runCleanup(ctx, plan.OnFailure, log)
		procErr := &models.ProcessError{Name: "ffmpeg concat", ExitCode: res.ExitCode, Err: runErr}
		return s.fail(ctx, job, result, archivePath, procErr, log)
	}

	report, err := s.executor.Execute(context.WithoutCancel(ctx), plan.OnSuccess)
	result.Warnings = report.Warnings()
	if err != nil {
		s.runCleanup(ctx, plan.OnFailure, log)
		return s.fail(ctx, job, result, archivePath, err, log)
	}

	result.Status = primary.CameraStitched
	result.Archive = &models.DailyArchive{
		CameraID:   job.cameraID,
		Date:       job.date,
		Segments:   segmentsOf(job.cameraID, plan.Segments),
		OutputPath: plan.ArchivePath,
	}

	archiveInPlace, _ := s.store.FileExists(ctx, plan.ArchivePath)
	guard := stitch.CanDeleteSource(stitch.DeleteContext{
		CameraID:        job.cameraID,
		DeleteSource:    !job.keep,
		ConcatSucceeded: true,
		ArchiveInPlace:  archiveInPlace,
	})
	if guard.Allowed {
		if _, err := s.executor.Execute(context.WithoutCancel(ctx), plan.SourceCleanup); err != nil {
			log.Error().Err(err).Msg("archive written but source directory could not be removed")
			result.Err = err
		} else {
			result.SourceDeleted = true
		}
	} else {
		log.Debug().Msg(guard.Reason)
	}

	log.Info().Bool("source_deleted", result.SourceDeleted).Msg("archive written")
	s.ledger(ctx, job, result, plan.ArchivePath, log)
	return result
}

// fail records a failed camera. The camera directory is left as it was.
func (s *StitchServiceImpl) fail(ctx context.Context, job stitchJob, result primary.CameraResult, archivePath string, err error, log zerolog.Logger) primary.CameraResult {
	log.Error().Err(err).Msg("stitch failed, segments kept")
	result.Status = primary.CameraFailed
	result.Err = err
	s.ledger(ctx, job, result, archivePath, log)
	return result
}

// runCleanup executes effects whose failure must not change the outcome.
func (s *StitchServiceImpl) runCleanup(ctx context.Context, effs []effects.Effect, log zerolog.Logger) {
	if _, err := s.executor.Execute(context.WithoutCancel(ctx), effs); err != nil {
		log.Warn().Err(err).Msg("cleanup incomplete")
	}
}

func (s *StitchServiceImpl) ledger(ctx context.Context, job stitchJob, result primary.CameraResult, archivePath string, log zerolog.Logger) {
	if s.archives == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)

	id, err := s.archives.GetNextID(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("ledger: could not allocate archive id")
		return
	}

	record := &secondary.ArchiveRecord{
		ID:            id,
		CameraID:      result.CameraID,
		Date:          job.date,
		OutputPath:    archivePath,
		SegmentCount:  result.SegmentCount,
		SourceDeleted: result.SourceDeleted,
		Status:        "stitched",
	}
	if result.Status == primary.CameraFailed {
		record.Status = "failed"
	}
	if result.Err != nil {
		record.Error = result.Err.Error()
	}

	if err := s.archives.Create(ctx, record); err != nil {
		log.Warn().Err(err).Msg("ledger: could not record archive")
	}
}

// segmentsOf fills in capture timestamps for segments named by the recorder.
// Other recognized files keep a zero timestamp.
func segmentsOf(cameraID string, paths []string) []models.VideoSegment {
	segments := make([]models.VideoSegment, 0, len(paths))
	for _, p := range paths {
		ts, _ := recording.ParseSegmentName(filepath.Base(p), cameraID, time.Local)
		segments = append(segments, models.VideoSegment{Path: p, CameraID: cameraID, CaptureTimestamp: ts})
	}
	return segments
}

// Ensure StitchServiceImpl implements the interface
var _ primary.StitchService = (*StitchServiceImpl)(nil)
