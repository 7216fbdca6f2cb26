package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/example/camrec/internal/models"
	"github.com/example/camrec/internal/ports/secondary"
)

// ============================================================================
// Locator / stream config
// ============================================================================

var _ secondary.CameraLocator = (*mockLocator)(nil)

type mockLocator struct {
	locations map[string]string
	err       error
	calls     int
}

func (m *mockLocator) Locate(ctx context.Context, cameraID string) (*models.CameraLocation, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	loc, ok := m.locations[cameraID]
	if !ok {
		return nil, &models.NotFoundError{Kind: "camera", Name: cameraID, Root: "/locations"}
	}
	return &models.CameraLocation{CameraID: cameraID, LocationPath: loc}, nil
}

var _ secondary.StreamConfigLoader = (*mockStreamLoader)(nil)

type mockStreamLoader struct {
	url string
	err error
}

func (m *mockStreamLoader) LoadStreamURL(ctx context.Context, locationPath, cameraID string) (string, error) {
	return m.url, m.err
}

// ============================================================================
// Process runner
// ============================================================================

var _ secondary.ProcessRunner = (*fakeRunner)(nil)

// fakeRunner records invocations and returns a controllable exit status.
// onRun, when set, runs before the result is returned and may write files
// the way the real process would.
type fakeRunner struct {
	mu       sync.Mutex
	calls    []secondary.ProcessSpec
	result   secondary.ProcessResult
	startErr error
	onRun    func(spec secondary.ProcessSpec) secondary.ProcessResult
}

func (f *fakeRunner) Run(ctx context.Context, spec secondary.ProcessSpec) (secondary.ProcessResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, spec)
	f.mu.Unlock()

	if f.startErr != nil {
		return secondary.ProcessResult{ExitCode: -1}, f.startErr
	}
	if f.onRun != nil {
		return f.onRun(spec), nil
	}
	return f.result, nil
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// lastArg is the output path of both capture and concat invocations.
func lastArg(spec secondary.ProcessSpec) string {
	return spec.Args[len(spec.Args)-1]
}

// argAfter returns the value following flag in spec.Args.
func argAfter(spec secondary.ProcessSpec, flag string) string {
	for i := 0; i < len(spec.Args)-1; i++ {
		if spec.Args[i] == flag {
			return spec.Args[i+1]
		}
	}
	return ""
}

// ============================================================================
// Normalizer
// ============================================================================

var _ secondary.Normalizer = (*mockNormalizer)(nil)

type mockNormalizer struct {
	mu       sync.Mutex
	paths    []string
	warnings []models.PermissionWarning
}

func (m *mockNormalizer) Normalize(ctx context.Context, path string) secondary.NormalizeResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paths = append(m.paths, path)
	return secondary.NormalizeResult{Path: path, Strategy: "mock", Applied: 1, Warnings: m.warnings}
}

func (m *mockNormalizer) Strategy() string { return "mock" }

// ============================================================================
// Ledger
// ============================================================================

var _ secondary.SessionRepository = (*mockSessionRepo)(nil)

type mockSessionRepo struct {
	sessions  map[string]*secondary.SessionRecord
	createErr error
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*secondary.SessionRecord)}
}

func (m *mockSessionRepo) Create(ctx context.Context, session *secondary.SessionRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	cp := *session
	m.sessions[session.ID] = &cp
	return nil
}

func (m *mockSessionRepo) Finish(ctx context.Context, id string, result secondary.SessionResult) error {
	s, ok := m.sessions[id]
	if !ok {
		return errors.New("session not found")
	}
	s.State = result.State
	s.Error = result.Error
	s.SegmentCount = result.SegmentCount
	s.EndedAt = result.EndedAt.String()
	return nil
}

func (m *mockSessionRepo) GetByID(ctx context.Context, id string) (*secondary.SessionRecord, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, errors.New("session not found")
	}
	return s, nil
}

func (m *mockSessionRepo) List(ctx context.Context, filters secondary.SessionFilters) ([]*secondary.SessionRecord, error) {
	var out []*secondary.SessionRecord
	for _, s := range m.sessions {
		if filters.CameraID != "" && s.CameraID != filters.CameraID {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt > out[j].StartedAt })
	if filters.Limit > 0 && len(out) > filters.Limit {
		out = out[:filters.Limit]
	}
	return out, nil
}

var _ secondary.ArchiveRepository = (*mockArchiveRepo)(nil)

type mockArchiveRepo struct {
	archives  []*secondary.ArchiveRecord
	lastLimit int
}

func (m *mockArchiveRepo) Create(ctx context.Context, archive *secondary.ArchiveRecord) error {
	cp := *archive
	m.archives = append(m.archives, &cp)
	return nil
}

func (m *mockArchiveRepo) GetByID(ctx context.Context, id string) (*secondary.ArchiveRecord, error) {
	for _, a := range m.archives {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, errors.New("archive not found")
}

func (m *mockArchiveRepo) List(ctx context.Context, filters secondary.ArchiveFilters) ([]*secondary.ArchiveRecord, error) {
	m.lastLimit = filters.Limit
	var out []*secondary.ArchiveRecord
	for i := len(m.archives) - 1; i >= 0; i-- {
		a := m.archives[i]
		if filters.CameraID != "" && a.CameraID != filters.CameraID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *mockArchiveRepo) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("ARC-%04d", len(m.archives)+1), nil
}

// ============================================================================
// Launcher
// ============================================================================

var _ secondary.SessionLauncher = (*mockLauncher)(nil)

type mockLauncher struct {
	existing map[string]bool
	launched []string
	commands []string
}

func (m *mockLauncher) SessionExists(ctx context.Context, name string) bool {
	return m.existing[name]
}

func (m *mockLauncher) LaunchDetached(ctx context.Context, name, workDir, command string) error {
	m.launched = append(m.launched, name)
	m.commands = append(m.commands, command)
	return nil
}

func (m *mockLauncher) AttachInstructions(name string) string {
	return "attach " + name + "\n"
}

// ============================================================================
// Filesystem helpers
// ============================================================================

// writeFiles creates files (relative to root) with their names as content.
func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		p := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("segment:"+name), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// snapshot captures every entry under root with its mode and content.
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, p)
		entry := info.Mode().String()
		if !d.IsDir() {
			data, err := os.ReadFile(p)
			if err != nil {
				return err
			}
			entry += ":" + string(data)
		}
		out[rel] = entry
		return nil
	})
	if err != nil {
		t.Fatalf("snapshot %s: %v", root, err)
	}
	return out
}

func assertSameTree(t *testing.T, before, after map[string]string) {
	t.Helper()
	if len(before) != len(after) {
		t.Errorf("tree changed: %d entries before, %d after\nbefore=%v\nafter=%v", len(before), len(after), before, after)
		return
	}
	for k, v := range before {
		if after[k] != v {
			t.Errorf("entry %s changed: %q -> %q", k, v, after[k])
		}
	}
}
