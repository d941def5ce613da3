// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Runs commands against a temporary SQLite store with a fixed clock.
package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/apex/internal/models"
	"github.com/harperreed/apex/internal/storage"
	"github.com/harperreed/apex/internal/suggest"
	"github.com/harperreed/apex/internal/tracker"
)

// wednesday keeps "today" stable across runs.
var wednesday = time.Date(2024, 1, 3, 10, 0, 0, 0, time.Local)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "short string no truncation", input: "hello", maxLen: 10, want: "hello"},
		{name: "exact length", input: "hello", maxLen: 5, want: "hello"},
		{name: "needs truncation", input: "hello world this is long", maxLen: 10, want: "hello w..."},
		{name: "empty string", input: "", maxLen: 5, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		length int
		want   string
	}{
		{name: "needs padding", input: "abc", length: 6, want: "abc   "},
		{name: "exact length", input: "abcdef", length: 6, want: "abcdef"},
		{name: "longer than length", input: "abcdefgh", length: 6, want: "abcdefgh"},
		{name: "empty string", input: "", length: 3, want: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := padRight(tt.input, tt.length); got != tt.want {
				t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
			}
		})
	}
}

func TestParseIndexes(t *testing.T) {
	tests := []struct {
		input   string
		want    []int
		wantErr bool
	}{
		{input: "1", want: []int{0}},
		{input: "1,3", want: []int{0, 2}},
		{input: " 2 , 4 ,", want: []int{1, 3}},
		{input: "", want: nil},
		{input: "0", wantErr: true},
		{input: "x", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseIndexes(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseIndexes(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseIndexes(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("parseIndexes(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseIndexes(%q) = %v, want %v", tt.input, got, tt.want)
			}
		}
	}
}

func TestParseDays(t *testing.T) {
	days, err := parseDays("mon,wednesday,4,mon")
	if err != nil {
		t.Fatalf("parseDays failed: %v", err)
	}
	want := []int{0, 2, 4}
	if len(days) != len(want) {
		t.Fatalf("parseDays = %v, want %v", days, want)
	}
	for i := range want {
		if days[i] != want[i] {
			t.Errorf("parseDays = %v, want %v", days, want)
		}
	}

	if _, err := parseDays("mon,funday"); err == nil {
		t.Error("expected error for unknown day")
	}

	days, err = parseDays("")
	if err != nil {
		t.Fatalf("parseDays empty failed: %v", err)
	}
	if days == nil || len(days) != 0 {
		t.Errorf("parseDays(\"\") = %v, want empty non-nil", days)
	}
}

func TestRootCmdFlags(t *testing.T) {
	if rootCmd.Use != "apex" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "apex")
	}
	for _, name := range []string{"backend", "data-dir", "log-level"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected --%s persistent flag", name)
		}
	}
	if rootCmd.Long == "" {
		t.Error("Expected rootCmd.Long to be non-empty")
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{
		"routine", "toggle", "reset", "note", "task", "journal",
		"stats", "analytics", "share", "upgrade", "theme",
		"suggest", "guru", "blueprint", "focus",
		"export", "import", "migrate", "sync", "mcp", "install-skill",
	}
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, n := range want {
		if !names[n] {
			t.Errorf("Expected %s command to be registered", n)
		}
	}
}

func TestSubcommands(t *testing.T) {
	tests := map[string][]string{
		"routine":   {"add", "list", "delete"},
		"task":      {"add", "list", "done", "delete"},
		"journal":   {"write", "show", "list"},
		"suggest":   {"show", "pick", "unpick", "accept", "clear"},
		"guru":      {"history", "accept"},
		"blueprint": {"list", "import"},
	}
	for parent, subs := range tests {
		cmd, _, err := rootCmd.Find([]string{parent})
		if err != nil {
			t.Fatalf("Find(%s): %v", parent, err)
		}
		names := map[string]bool{}
		for _, c := range cmd.Commands() {
			names[c.Name()] = true
		}
		for _, s := range subs {
			if !names[s] {
				t.Errorf("Expected %s %s subcommand", parent, s)
			}
		}
	}
}

func TestSetupSkippedCommands(t *testing.T) {
	for _, c := range []string{"link", "unlink", "repair", "reset", "wipe"} {
		cmd, _, err := rootCmd.Find([]string{"sync", c})
		if err != nil {
			t.Fatalf("Find(sync %s): %v", c, err)
		}
		if cmd.Annotations[skipSetup] == "" {
			t.Errorf("sync %s should skip store setup", c)
		}
	}
	if installSkillCmd.Annotations[skipSetup] == "" {
		t.Error("install-skill should skip store setup")
	}
}

// setupTestCLI points config and data at temp dirs and pins the clock.
// It returns the data directory.
func setupTestCLI(t *testing.T) string {
	t.Helper()

	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv(passphraseEnv, "")

	origClock := clock
	clock = func() time.Time { return wednesday }
	resetFlags()

	t.Cleanup(func() {
		_ = teardown()
		clock = origClock
		resetFlags()
	})
	return filepath.Join(dataHome, "apex")
}

func resetFlags() {
	flagBackend, flagDataDir, flagLogLevel = "", "", ""
	routineCategory, routineNegative, routineDays, routineTarget = "", false, "", 0
	taskDate, taskAll = "", false
	journalMood, journalDate, journalRaw = string(models.MoodNeutral), "", false
	suggestCount, guruPicks, guruLimit = suggest.DefaultCount, "", 0
	exportOutput, exportSince, exportEncrypt, exportPassphrase, importPassphrase = "", "", false, "", ""
	migrateTo, migrateDryRun, migrateForce, migrateSwitch = "", false, false, false
}

// runCLI executes args and returns combined output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := Execute()
	resetFlags()
	return buf.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("apex %s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

// loadState reads what the CLI persisted.
func loadState(t *testing.T, dataDir string) tracker.State {
	t.Helper()
	s, err := storage.OpenSQLite(filepath.Join(dataDir, "apex.db"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer s.Close()
	st, err := storage.NewSnapshot(s, nil).Load(wednesday)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return st
}

func TestDashboardFirstRun(t *testing.T) {
	dataDir := setupTestCLI(t)

	out := mustRun(t)
	if !strings.Contains(out, "APEX") {
		t.Errorf("Expected banner on first run, got:\n%s", out)
	}
	if !strings.Contains(out, "Level 1") {
		t.Errorf("Expected level line, got:\n%s", out)
	}
	if !loadState(t, dataDir).HasEntered {
		t.Error("Expected HasEntered to be persisted")
	}

	out = mustRun(t)
	if strings.Contains(out, "Build the habits") {
		t.Error("Banner should only show on first run")
	}
}

func TestRoutineAddAndToggle(t *testing.T) {
	dataDir := setupTestCLI(t)

	out := mustRun(t, "routine", "add", "Morning", "Run", "--category", "health")
	if !strings.Contains(out, "Added Morning Run") {
		t.Errorf("unexpected add output:\n%s", out)
	}

	st := loadState(t, dataDir)
	if len(st.Routines) != 1 {
		t.Fatalf("Expected 1 routine, got %d", len(st.Routines))
	}
	r := st.Routines[0]
	if r.Category != models.CategoryHealth {
		t.Errorf("Category = %s, want Health", r.Category)
	}

	mustRun(t, "toggle", r.ShortID())
	st = loadState(t, dataDir)
	if !st.Routines[0].CompletedDays[2] {
		t.Error("Expected Wednesday to be checked")
	}
	if st.XP != tracker.XPHabit {
		t.Errorf("XP = %d, want %d", st.XP, tracker.XPHabit)
	}

	mustRun(t, "toggle", r.ShortID(), "wed")
	st = loadState(t, dataDir)
	if st.Routines[0].CompletedDays[2] || st.XP != 0 {
		t.Errorf("Expected toggle off, got day=%v xp=%d", st.Routines[0].CompletedDays[2], st.XP)
	}

	out = mustRun(t, "routine", "list")
	if !strings.Contains(out, "Morning Run") {
		t.Errorf("Expected routine in list, got:\n%s", out)
	}
}

func TestRoutineAddUnknownCategory(t *testing.T) {
	setupTestCLI(t)

	_, err := runCLI(t, "routine", "add", "Thing", "--category", "hobby")
	if err == nil || !strings.Contains(err.Error(), "unknown category") {
		t.Errorf("Expected unknown category error, got %v", err)
	}
}

func TestToggleRestDay(t *testing.T) {
	dataDir := setupTestCLI(t)

	mustRun(t, "routine", "add", "Gym", "--days", "mon,fri")
	id := loadState(t, dataDir).Routines[0].ShortID()

	out := mustRun(t, "toggle", id)
	if !strings.Contains(out, "rest day") {
		t.Errorf("Expected rest day warning, got:\n%s", out)
	}
	if loadState(t, dataDir).XP != 0 {
		t.Error("Rest day toggle must not award XP")
	}
}

func TestToggleUnknownRoutine(t *testing.T) {
	setupTestCLI(t)

	if _, err := runCLI(t, "toggle", "nope"); err == nil {
		t.Error("Expected error for unknown routine")
	}
}

func TestFreeRoutineLimit(t *testing.T) {
	dataDir := setupTestCLI(t)

	for i := 0; i < tracker.FreeRoutineLimit; i++ {
		mustRun(t, "routine", "add", "Habit", string(rune('A'+i)))
	}
	out := mustRun(t, "routine", "add", "One", "Too", "Many")
	if !strings.Contains(out, "limited to 10 habits") {
		t.Errorf("Expected paywall, got:\n%s", out)
	}
	if n := len(loadState(t, dataDir).Routines); n != tracker.FreeRoutineLimit {
		t.Errorf("Expected %d routines, got %d", tracker.FreeRoutineLimit, n)
	}

	mustRun(t, "upgrade")
	mustRun(t, "routine", "add", "One", "Too", "Many")
	if n := len(loadState(t, dataDir).Routines); n != tracker.FreeRoutineLimit+1 {
		t.Errorf("Expected %d routines after upgrade, got %d", tracker.FreeRoutineLimit+1, n)
	}
}

func TestNoteSavesToJournal(t *testing.T) {
	dataDir := setupTestCLI(t)

	mustRun(t, "routine", "add", "Read")
	id := loadState(t, dataDir).Routines[0].ShortID()

	out := mustRun(t, "note", id, "finished", "chapter", "3")
	if !strings.Contains(out, "Note Saved to Journal") {
		t.Errorf("unexpected note output:\n%s", out)
	}

	st := loadState(t, dataDir)
	i := st.FindJournal(models.DateKey(wednesday))
	if i < 0 {
		t.Fatal("Expected journal entry for today")
	}
	if len(st.Journal[i].HabitLog) != 1 || st.Journal[i].HabitLog[0].Note != "finished chapter 3" {
		t.Errorf("unexpected habit log: %+v", st.Journal[i].HabitLog)
	}
}

func TestTaskAddAndDone(t *testing.T) {
	dataDir := setupTestCLI(t)

	mustRun(t, "task", "add", "Call", "the", "bank")
	st := loadState(t, dataDir)
	if len(st.Tasks) != 1 {
		t.Fatalf("Expected 1 task, got %d", len(st.Tasks))
	}
	task := st.Tasks[0]
	if task.Date != "2024-01-03" {
		t.Errorf("Task date = %q, want today", task.Date)
	}

	out := mustRun(t, "task", "list")
	if !strings.Contains(out, "Call the bank") {
		t.Errorf("Expected task in list, got:\n%s", out)
	}
	out = mustRun(t, "task", "list", "--date", "2024-01-04")
	if strings.Contains(out, "Call the bank") {
		t.Errorf("Task should not show on another day:\n%s", out)
	}

	mustRun(t, "task", "done", task.ShortID())
	st = loadState(t, dataDir)
	if !st.Tasks[0].Completed || st.XP != tracker.XPTask {
		t.Errorf("Expected completed task and %d XP, got %v/%d", tracker.XPTask, st.Tasks[0].Completed, st.XP)
	}

	mustRun(t, "task", "delete", task.ShortID())
	if n := len(loadState(t, dataDir).Tasks); n != 0 {
		t.Errorf("Expected task deleted, got %d", n)
	}
}

func TestTaskListInvalidDate(t *testing.T) {
	setupTestCLI(t)

	if _, err := runCLI(t, "task", "list", "--date", "01/03/2024"); err == nil {
		t.Error("Expected invalid date error")
	}
}

func TestJournalWriteAndShow(t *testing.T) {
	dataDir := setupTestCLI(t)

	mustRun(t, "journal", "write", "--mood", "great", "Shipped", "it")
	st := loadState(t, dataDir)
	i := st.FindJournal("2024-01-03")
	if i < 0 {
		t.Fatal("Expected journal entry")
	}
	if st.Journal[i].Mood != models.MoodGreat || st.Journal[i].Content != "Shipped it" {
		t.Errorf("unexpected entry: %+v", st.Journal[i])
	}

	out := mustRun(t, "journal", "show", "--raw")
	if !strings.Contains(out, "Shipped it") {
		t.Errorf("Expected content in show output:\n%s", out)
	}

	out = mustRun(t, "journal", "show", "2023-12-25")
	if !strings.Contains(out, "No journal entry") {
		t.Errorf("Expected empty message, got:\n%s", out)
	}

	out = mustRun(t, "journal", "list")
	if !strings.Contains(out, "2024-01-03") {
		t.Errorf("Expected date in list, got:\n%s", out)
	}
}

func TestSuggestAcceptOffline(t *testing.T) {
	dataDir := setupTestCLI(t)

	out := mustRun(t, "suggest", "get", "fit", "and", "sleep", "better")
	if !strings.Contains(out, "Suggestions for") {
		t.Fatalf("Expected pending suggestions, got:\n%s", out)
	}
	st := loadState(t, dataDir)
	if st.Pending == nil || len(st.Pending.Candidates) == 0 {
		t.Fatal("Expected pending suggestions to be persisted")
	}
	want := len(st.Pending.Selected)

	mustRun(t, "suggest", "unpick", "1")
	mustRun(t, "suggest", "pick", "1")
	mustRun(t, "suggest", "accept")

	st = loadState(t, dataDir)
	if len(st.Routines) != want {
		t.Errorf("Expected %d routines, got %d", want, len(st.Routines))
	}
	if st.Pending != nil {
		t.Error("Expected pending suggestions cleared after accept")
	}
	for _, r := range st.Routines {
		if r.Category != models.CategoryHealth {
			t.Errorf("Expected Health routines, got %s", r.Category)
		}
	}
}

func TestSuggestAcceptWithoutPending(t *testing.T) {
	setupTestCLI(t)

	_, err := runCLI(t, "suggest", "accept")
	if !errors.Is(err, tracker.ErrNoSuggestions) {
		t.Errorf("Expected ErrNoSuggestions, got %v", err)
	}
}

func TestGuruOfflineCountsUsage(t *testing.T) {
	dataDir := setupTestCLI(t)

	out := mustRun(t, "guru", "how", "do", "I", "start?")
	if !strings.Contains(out, "offline") {
		t.Errorf("Expected offline reply, got:\n%s", out)
	}
	st := loadState(t, dataDir)
	if st.Usage.Count != 1 || st.Usage.Date != "2024-01-03" {
		t.Errorf("unexpected usage: %+v", st.Usage)
	}
	if n := len(st.Chat); n < 3 {
		t.Errorf("Expected greeting, message, and reply; got %d messages", n)
	}

	out = mustRun(t, "guru", "history", "-n", "1")
	if !strings.Contains(out, "guru") {
		t.Errorf("Expected reply in history, got:\n%s", out)
	}
}

func TestBlueprintRequiresPro(t *testing.T) {
	dataDir := setupTestCLI(t)
	bp := tracker.Blueprints[0]

	out := mustRun(t, "blueprint", "import", bp.ID)
	if !strings.Contains(out, "Upgrade") {
		t.Errorf("Expected paywall, got:\n%s", out)
	}
	if n := len(loadState(t, dataDir).Routines); n != 0 {
		t.Errorf("Expected no routines, got %d", n)
	}

	mustRun(t, "upgrade")
	mustRun(t, "blueprint", "import", bp.ID)
	if n := len(loadState(t, dataDir).Routines); n != len(bp.Routines) {
		t.Errorf("Expected %d routines, got %d", len(bp.Routines), n)
	}

	out = mustRun(t, "upgrade")
	if !strings.Contains(out, "already") {
		t.Errorf("Expected already-pro message, got:\n%s", out)
	}
}

func TestThemeCommand(t *testing.T) {
	dataDir := setupTestCLI(t)

	out := mustRun(t, "theme")
	if !strings.Contains(out, "dark") {
		t.Errorf("Expected dark default, got:\n%s", out)
	}
	mustRun(t, "theme", "toggle")
	if loadState(t, dataDir).Theme != tracker.ThemeLight {
		t.Error("Expected light theme after toggle")
	}
	if _, err := runCLI(t, "theme", "neon"); err == nil {
		t.Error("Expected error for unknown theme")
	}
}

func TestStatsAndAnalytics(t *testing.T) {
	setupTestCLI(t)

	mustRun(t, "routine", "add", "Meditate", "--category", "mindset")
	out := mustRun(t, "stats")
	if !strings.Contains(out, "Level 1") {
		t.Errorf("Expected level in stats, got:\n%s", out)
	}
	out = mustRun(t, "analytics")
	if !strings.Contains(out, "Mindset") || !strings.Contains(out, "Badges") {
		t.Errorf("unexpected analytics output:\n%s", out)
	}
}

func TestShareCopiesSummary(t *testing.T) {
	setupTestCLI(t)

	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error {
		copied = s
		return nil
	}
	defer func() { copyToClipboard = orig }()

	mustRun(t, "share")
	if !strings.Contains(copied, "Level 1") {
		t.Errorf("unexpected summary: %q", copied)
	}

	copyToClipboard = func(string) error { return errors.New("no display") }
	out := mustRun(t, "share")
	if !strings.Contains(out, "Clipboard unavailable") {
		t.Errorf("Expected fallback output, got:\n%s", out)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	dataDir := setupTestCLI(t)

	mustRun(t, "routine", "add", "Stretch")
	mustRun(t, "task", "add", "Buy", "milk")
	file := filepath.Join(t.TempDir(), "backup.json")
	mustRun(t, "export", "json", "-o", file)

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "Stretch") {
		t.Error("Expected routine in export")
	}

	// Fresh store.
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	dataDir = filepath.Join(os.Getenv("XDG_DATA_HOME"), "apex")

	out := mustRun(t, "import", file)
	if !strings.Contains(out, "1 routines, 1 tasks") {
		t.Errorf("unexpected import output:\n%s", out)
	}
	st := loadState(t, dataDir)
	if len(st.Routines) != 1 || st.Routines[0].Title != "Stretch" {
		t.Errorf("unexpected routines after import: %+v", st.Routines)
	}
}

func TestExportEncrypted(t *testing.T) {
	setupTestCLI(t)

	mustRun(t, "routine", "add", "Secret", "Habit")
	file := filepath.Join(t.TempDir(), "backup.age")

	if _, err := runCLI(t, "export", "json", "--encrypt", "-o", file); !errors.Is(err, storage.ErrPassphraseRequired) {
		t.Fatalf("Expected ErrPassphraseRequired, got %v", err)
	}

	mustRun(t, "export", "json", "--encrypt", "--passphrase", "hunter2", "-o", file)
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !storage.IsEncrypted(data) || strings.Contains(string(data), "Secret Habit") {
		t.Error("Expected encrypted export")
	}

	if _, err := runCLI(t, "import", file); err == nil {
		t.Error("Expected import without passphrase to fail")
	}
	mustRun(t, "import", file, "--passphrase", "hunter2")
}

func TestExportMarkdownAndInvalidFormat(t *testing.T) {
	setupTestCLI(t)

	mustRun(t, "routine", "add", "Walk")
	out := mustRun(t, "export", "markdown")
	if !strings.Contains(out, "Walk") {
		t.Errorf("Expected routine in markdown, got:\n%s", out)
	}
	if _, err := runCLI(t, "export", "markdown", "--since", "yesterday"); err == nil {
		t.Error("Expected invalid --since error")
	}
	if _, err := runCLI(t, "export", "csv"); err == nil {
		t.Error("Expected unknown format error")
	}
}

func TestMigrateToBadger(t *testing.T) {
	dataDir := setupTestCLI(t)

	mustRun(t, "routine", "add", "Portable")
	out := mustRun(t, "migrate", "--to", "badger", "--dry-run")
	if !strings.Contains(strings.ToLower(out), "dry run") {
		t.Errorf("Expected dry run output, got:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(dataDir, "badger")); err == nil {
		t.Error("Dry run must not create the destination")
	}

	mustRun(t, "migrate", "--to", "badger")
	out = mustRun(t, "--backend", "badger", "routine", "list")
	if !strings.Contains(out, "Portable") {
		t.Errorf("Expected migrated routine, got:\n%s", out)
	}
}

func TestMemoryBackend(t *testing.T) {
	dataDir := setupTestCLI(t)

	mustRun(t, "--backend", "memory", "routine", "add", "Ephemeral")
	if _, err := os.Stat(filepath.Join(dataDir, "apex.db")); err == nil {
		t.Error("Memory backend must not touch the SQLite file")
	}
}

func TestInvalidLogLevel(t *testing.T) {
	setupTestCLI(t)

	if _, err := runCLI(t, "--log-level", "loud", "stats"); err == nil {
		t.Error("Expected invalid log level error")
	}
}
