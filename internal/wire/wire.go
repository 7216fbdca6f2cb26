// Package wire provides dependency injection for the camrec application.
// It creates singleton services with lazy initialization from the
// configuration installed by Configure.
package wire

import (
	"io"
	"os"
	"sync"

	cliadapter "github.com/example/camrec/internal/adapters/cli"
	"github.com/example/camrec/internal/adapters/filesystem"
	"github.com/example/camrec/internal/adapters/sqlite"
	"github.com/example/camrec/internal/adapters/streamconfig"
	tmuxadapter "github.com/example/camrec/internal/adapters/tmux"
	"github.com/example/camrec/internal/app"
	"github.com/example/camrec/internal/config"
	"github.com/example/camrec/internal/db"
	"github.com/example/camrec/internal/ffmpeg"
	"github.com/example/camrec/internal/logging"
	"github.com/example/camrec/internal/ports/primary"
	"github.com/example/camrec/internal/ports/secondary"
)

var (
	cfg            *config.Config
	recordService  primary.RecordService
	stitchService  primary.StitchService
	historyService primary.HistoryService
	locateService  primary.LocateService
	once           sync.Once
	// progress receives the ffmpeg output of foreground runs.
	progress io.Writer = os.Stderr
)

// Configure installs the configuration used to build services. It must be
// called before any service accessor.
func Configure(c *config.Config) {
	cfg = c
}

// Config returns the installed configuration, or the defaults when
// Configure was never called.
func Config() *config.Config {
	if cfg == nil {
		cfg = config.Default()
	}
	return cfg
}

// RecordService returns the singleton RecordService instance.
func RecordService() primary.RecordService {
	once.Do(initServices)
	return recordService
}

// StitchService returns the singleton StitchService instance.
func StitchService() primary.StitchService {
	once.Do(initServices)
	return stitchService
}

// HistoryService returns the singleton HistoryService instance.
func HistoryService() primary.HistoryService {
	once.Do(initServices)
	return historyService
}

// LocateService returns the singleton LocateService instance.
func LocateService() primary.LocateService {
	once.Do(initServices)
	return locateService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	c := Config()
	log := logging.GetLogger("wire")

	// Secondary adapters
	locator := filesystem.NewCameraLocator(c.LocationsRoot, c.Locator.MaxDepth)
	streams := streamconfig.NewLoader()
	runner := ffmpeg.NewRunner(c.Recording.InterruptGrace)
	store := filesystem.NewSegmentStore(c.Stitch.ScratchDir)
	launcher := tmuxadapter.NewAdapter()

	normalizer, err := filesystem.NewNormalizer(c.Normalize.Strategy)
	if err != nil {
		// Validate rejects unknown strategies, so this only happens for a
		// hand-built config.
		log.Warn().Err(err).Msg("normalization disabled")
		normalizer = filesystem.NoopNormalizer{}
	}

	// The ledger is optional: when disabled or unavailable the repositories
	// stay nil interfaces and the services skip bookkeeping.
	var (
		sessions secondary.SessionRepository
		archives secondary.ArchiveRepository
	)
	if c.Ledger.Enabled {
		db.SetPath(c.Ledger.Path)
		database, err := db.GetDB()
		if err != nil {
			log.Warn().Err(err).Str("path", c.Ledger.Path).Msg("ledger unavailable, continuing without it")
		} else {
			sessions = sqlite.NewSessionRepository(database)
			archives = sqlite.NewArchiveRepository(database)
		}
	}

	executor := app.NewEffectExecutor(store, normalizer, logging.GetLogger("effects"))

	// Services (primary ports implementation)
	recordService = app.NewRecordService(
		locator,
		streams,
		runner,
		store,
		normalizer,
		sessions,
		launcher,
		app.RecordSettings{
			OutputRoot:     c.OutputRoot,
			FFmpegPath:     c.FFmpegPath,
			SegmentSeconds: c.Recording.SegmentSeconds,
			SegmentFormat:  c.Recording.SegmentFormat,
			TmuxPrefix:     c.Recording.TmuxPrefix,
		},
		progress,
		logging.GetLogger("record"),
		streamconfig.RedactURL,
	)
	stitchService = app.NewStitchService(
		store,
		runner,
		executor,
		archives,
		app.StitchSettings{
			OutputRoot:    c.OutputRoot,
			FFmpegPath:    c.FFmpegPath,
			ArchiveFormat: c.Stitch.ArchiveFormat,
			Extensions:    c.Stitch.Extensions,
		},
		progress,
		logging.GetLogger("stitch"),
	)
	historyService = app.NewHistoryService(sessions, archives)
	locateService = app.NewLocateService(locator)
}

// RecordAdapter returns a new RecordAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func RecordAdapter() *cliadapter.RecordAdapter {
	return RecordAdapterWithOutput(os.Stdout)
}

// RecordAdapterWithOutput returns a new RecordAdapter writing to the given output.
func RecordAdapterWithOutput(out io.Writer) *cliadapter.RecordAdapter {
	return cliadapter.NewRecordAdapter(RecordService(), out)
}

// StitchAdapter returns a new StitchAdapter writing to stdout.
func StitchAdapter() *cliadapter.StitchAdapter {
	return StitchAdapterWithOutput(os.Stdout)
}

// StitchAdapterWithOutput returns a new StitchAdapter writing to the given output.
func StitchAdapterWithOutput(out io.Writer) *cliadapter.StitchAdapter {
	return cliadapter.NewStitchAdapter(StitchService(), out)
}

// HistoryAdapter returns a new HistoryAdapter writing to stdout.
func HistoryAdapter() *cliadapter.HistoryAdapter {
	return HistoryAdapterWithOutput(os.Stdout)
}

// HistoryAdapterWithOutput returns a new HistoryAdapter writing to the given output.
func HistoryAdapterWithOutput(out io.Writer) *cliadapter.HistoryAdapter {
	return cliadapter.NewHistoryAdapter(HistoryService(), out)
}

// Shutdown releases the ledger connection if one was opened.
func Shutdown() error {
	return db.Close()
}
