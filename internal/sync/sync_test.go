package sync

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/Paintersrp/knot/internal/config"
)

func TestRunStagesCommitsAndPushes(t *testing.T) {
	vault, logPath := fakeVault(t, true)
	git := fakeGit(t, logPath, "")

	s := newTestSyncer(vault, git, config.SyncConfig{Remote: "origin", Branch: "main"})
	res := s.Run(context.Background())

	if !res.OK() {
		t.Fatalf("expected successful sync, got %v", res.Err())
	}
	if res.Message != "Manual Sync: 2024-03-09 14:05:00" {
		t.Fatalf("unexpected message %q", res.Message)
	}

	want := []string{
		"add -A",
		"commit -m Manual Sync: 2024-03-09 14:05:00",
		"push origin main",
	}
	assertCalls(t, logPath, want)
}

func TestRunInitialisesMissingRepository(t *testing.T) {
	vault, logPath := fakeVault(t, false)
	git := fakeGit(t, logPath, "")

	s := newTestSyncer(vault, git, config.SyncConfig{})
	res := s.Run(context.Background())

	if !res.OK() {
		t.Fatalf("expected successful sync, got %v", res.Err())
	}
	if _, ok := res.Step(StepInit); !ok {
		t.Fatalf("expected init step to be recorded")
	}
	assertCalls(t, logPath, []string{
		"init",
		"add -A",
		"commit -m Manual Sync: 2024-03-09 14:05:00",
		"push",
	})
}

func TestRunStopsWhenAddFails(t *testing.T) {
	vault, logPath := fakeVault(t, true)
	git := fakeGit(t, logPath, "add")

	res := newTestSyncer(vault, git, config.SyncConfig{}).Run(context.Background())

	if res.OK() {
		t.Fatalf("expected failure")
	}
	add, _ := res.Step(StepAdd)
	if add.ExitCode != 3 {
		t.Fatalf("expected exit code 3, got %d", add.ExitCode)
	}
	assertCalls(t, logPath, []string{"add -A"})
}

func TestRunPushesWhenNothingToCommit(t *testing.T) {
	vault, logPath := fakeVault(t, true)
	git := fakeGit(t, logPath, "commit")

	res := newTestSyncer(vault, git, config.SyncConfig{}).Run(context.Background())

	if !res.OK() {
		t.Fatalf("commit failure alone should not fail the sync: %v", res.Err())
	}
	if commit, _ := res.Step(StepCommit); commit.Err == nil {
		t.Fatalf("expected commit failure to be recorded")
	}
	assertCalls(t, logPath, []string{
		"add -A",
		"commit -m Manual Sync: 2024-03-09 14:05:00",
		"push",
	})
}

func TestRunReportsPushFailure(t *testing.T) {
	vault, logPath := fakeVault(t, true)
	git := fakeGit(t, logPath, "push")

	res := newTestSyncer(vault, git, config.SyncConfig{}).Run(context.Background())

	if res.OK() {
		t.Fatalf("expected push failure to fail the sync")
	}
	if !strings.Contains(res.Err().Error(), "git push") {
		t.Fatalf("unexpected error %v", res.Err())
	}
}

func TestInitAddsRemote(t *testing.T) {
	vault, logPath := fakeVault(t, false)
	git := fakeGit(t, logPath, "get-url")

	s := newTestSyncer(vault, git, config.SyncConfig{Remote: "backup"})
	if err := s.Init(context.Background(), "git@example.com:me/notes.git"); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}

	assertCalls(t, logPath, []string{
		"init",
		"remote get-url backup",
		"remote add backup git@example.com:me/notes.git",
	})
}

func TestMessageFormat(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	s := New(t.TempDir(), config.SyncConfig{MessageFormat: "notes @ %s"}, nil)
	if got := s.Message(at); got != "notes @ 2024-01-02 03:04:05" {
		t.Fatalf("unexpected message %q", got)
	}

	s.MessageFormat = "backup"
	if got := s.Message(at); got != "backup 2024-01-02 03:04:05" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestHandoffPrintsVerdictWithoutPausing(t *testing.T) {
	vault, logPath := fakeVault(t, true)
	git := fakeGit(t, logPath, "")

	h := NewHandoff(context.Background(), newTestSyncer(vault, git, config.SyncConfig{}), true)
	var out bytes.Buffer
	h.SetStdin(strings.NewReader(""))
	h.SetStdout(&out)
	h.SetStderr(&out)

	if err := h.Run(); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(out.String(), "Sync complete") {
		t.Fatalf("missing verdict in %q", out.String())
	}
	if strings.Contains(out.String(), "Press [ENTER]") {
		t.Fatalf("should not pause when stdin is not a terminal")
	}
	if !h.Result().OK() {
		t.Fatalf("expected successful result")
	}
}

func newTestSyncer(dir, git string, cfg config.SyncConfig) *Syncer {
	cfg.Git = git
	s := New(dir, cfg, nil)
	s.Stdout = &bytes.Buffer{}
	s.Stderr = &bytes.Buffer{}
	s.Now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 0, 0, time.Local) }
	return s
}

func fakeVault(t *testing.T, repo bool) (string, string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake git is a shell script")
	}

	root := t.TempDir()
	vault := filepath.Join(root, "vault")
	if err := os.MkdirAll(vault, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if repo {
		if err := os.MkdirAll(filepath.Join(vault, ".git"), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	return vault, filepath.Join(root, "calls.log")
}

// fakeGit writes a git stand-in that logs its arguments and exits 3 when its
// first argument (or, for remote, its second) equals failOn.
func fakeGit(t *testing.T, logPath, failOn string) string {
	t.Helper()

	script := strings.Join([]string{
		"#!/bin/sh",
		`echo "$@" >> "` + logPath + `"`,
		`if [ "$1" = "init" ]; then mkdir -p .git; fi`,
		`if [ "$1" = "` + failOn + `" ] || [ "$2" = "` + failOn + `" ]; then exit 3; fi`,
		"exit 0",
		"",
	}, "\n")
	if failOn == "" {
		script = strings.Replace(script, `if [ "$1" = "" ] || [ "$2" = "" ]; then exit 3; fi`, "", 1)
	}

	path := filepath.Join(filepath.Dir(logPath), "git")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake git: %v", err)
	}
	return path
}

func assertCalls(t *testing.T, logPath string, want []string) {
	t.Helper()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read call log: %v", err)
	}
	got := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(got) != len(want) {
		t.Fatalf("git calls = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("git call %d = %q, want %q", i, got[i], want[i])
		}
	}
}
