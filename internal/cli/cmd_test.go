package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alexanderramin/tripboard/internal/config"
	"github.com/alexanderramin/tripboard/internal/repository"
	"github.com/alexanderramin/tripboard/internal/service"
	"github.com/alexanderramin/tripboard/internal/testutil"
)

const kansaiPath = "testdata/kansai.json"

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	cfg := config.Default()
	dir := t.TempDir()
	cfg.OutputPath = filepath.Join(dir, "index.html")

	trips := service.NewTripService(nil, cfg.Content)
	snapshots := service.NewSnapshotService(trips,
		repository.NewSQLiteSnapshotRepo(database),
		repository.NewSQLiteDayStatRepo(database),
		testutil.NewTestUoW(database),
	)

	return &App{
		Trips:         trips,
		Snapshots:     snapshots,
		Config:        cfg,
		ConfigPath:    filepath.Join(dir, "config.yaml"),
		Logger:        zap.NewNop(),
		IsInteractive: func() bool { return false },
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(t.Context())
	return buf.String(), err
}

func writeDoc(t *testing.T, name, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	return path
}

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	output, err := executeCmd(t, testApp(t))
	require.NoError(t, err)
	assert.Contains(t, output, "tripboard")
	assert.Contains(t, output, "render")
}

func TestRootCmd_VerboseLowersLevel(t *testing.T) {
	app := testApp(t)
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	app.Level = &level

	_, err := executeCmd(t, app, "--verbose", "config", "path")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, level.Level())
}

func TestRootCmd_UnknownCommand(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "frobnicate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestSummaryCmd(t *testing.T) {
	output, err := executeCmd(t, testApp(t), "summary", kansaiPath)
	require.NoError(t, err)
	assert.Contains(t, output, "關西親子遊")
	assert.Contains(t, output, "Day 3 伏見稻荷 / 宇治 / 奈良")
	assert.Contains(t, output, "跨區緊湊日")
}

func TestSummaryCmd_LoadFailure(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "summary", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not be loaded")
}

func TestValidateCmd(t *testing.T) {
	path := writeDoc(t, "odd.json", `{"days":[{"day_label":"D1","items":[{"title":"x","bucket":"神秘"}]}]}`)

	output, err := executeCmd(t, testApp(t), "validate", path)
	require.NoError(t, err)
	assert.Contains(t, output, "1 finding")
	assert.Contains(t, output, `unknown value "神秘"`)

	_, err = executeCmd(t, testApp(t), "validate", "--strict", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 finding(s)")
}

func TestValidateCmd_Clean(t *testing.T) {
	path := writeDoc(t, "clean.json", `{"days":[{"day_label":"D1","items":[{"title":"x","bucket":"景點"}]}]}`)

	output, err := executeCmd(t, testApp(t), "validate", "--strict", path)
	require.NoError(t, err)
	assert.Contains(t, output, "no problems found")
}

func TestSearchCmd(t *testing.T) {
	output, err := executeCmd(t, testApp(t), "search", kansaiPath, "二年坂")
	require.NoError(t, err)
	assert.Contains(t, output, "day-2")
	assert.Contains(t, output, "Day 2 清水寺 / 祇園")
	assert.Contains(t, output, `1 of 4 days match "二年坂"`)
}

func TestSearchCmd_NoMatch(t *testing.T) {
	output, err := executeCmd(t, testApp(t), "search", kansaiPath, "札幌")
	require.NoError(t, err)
	assert.Contains(t, output, `No day matches "札幌"`)
}

func TestBrowseCmd_RequiresTerminal(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "browse", kansaiPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestServeCmd_RejectsStdin(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "serve", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not stdin")
}

func TestExportPDFCmd_RequiresFont(t *testing.T) {
	t.Setenv("TRIPBOARD_PDF_FONT", "")
	out := filepath.Join(t.TempDir(), "trip.pdf")

	_, err := executeCmd(t, testApp(t), "export", "pdf", kansaiPath, "-o", out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TrueType font is required")
	assert.NoFileExists(t, out)
}

func TestConfigCmd_InitShowPath(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, output, app.ConfigPath)
	assert.FileExists(t, app.ConfigPath)

	_, err = executeCmd(t, app, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = executeCmd(t, app, "config", "init", "--force")
	require.NoError(t, err)

	loaded, err := config.Load(app.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Content.LoadError, loaded.Content.LoadError)

	output, err = executeCmd(t, app, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, output, "127.0.0.1:8080")
	assert.Contains(t, output, "load_error:")

	output, err = executeCmd(t, app, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, app.ConfigPath+"\n", output)
}
