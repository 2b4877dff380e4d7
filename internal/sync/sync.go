// Package sync hands the vault to git: stage everything, commit with a
// timestamped message and push.
package sync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Paintersrp/knot/internal/config"
	"github.com/Paintersrp/knot/internal/constants"
)

const (
	StepInit   = "init"
	StepAdd    = "add"
	StepCommit = "commit"
	StepPush   = "push"
)

// Step is one git invocation and its outcome.
type Step struct {
	Name     string
	Args     []string
	ExitCode int
	Err      error
}

type Result struct {
	Message  string
	Steps    []Step
	Started  time.Time
	Finished time.Time
}

// Step returns the recorded step with the given name.
func (r Result) Step(name string) (Step, bool) {
	for _, s := range r.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return Step{}, false
}

// Err is the failure that makes the sync unsuccessful. A commit with nothing
// to commit is not one.
func (r Result) Err() error {
	for _, name := range []string{StepInit, StepAdd} {
		if s, ok := r.Step(name); ok && s.Err != nil {
			return s.Err
		}
	}
	push, ok := r.Step(StepPush)
	if !ok {
		return errors.New("push did not run")
	}
	return push.Err
}

func (r Result) OK() bool {
	return r.Err() == nil
}

type Syncer struct {
	Dir           string
	Git           string
	Remote        string
	Branch        string
	MessageFormat string
	Stdout        io.Writer
	Stderr        io.Writer
	Now           func() time.Time

	log *logrus.Entry
}

func New(dir string, cfg config.SyncConfig, log *logrus.Entry) *Syncer {
	git := strings.TrimSpace(cfg.Git)
	if git == "" {
		git = "git"
	}
	format := cfg.MessageFormat
	if strings.TrimSpace(format) == "" {
		format = constants.SyncMessageFmt
	}
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = logrus.NewEntry(discard)
	}

	return &Syncer{
		Dir:           dir,
		Git:           git,
		Remote:        strings.TrimSpace(cfg.Remote),
		Branch:        strings.TrimSpace(cfg.Branch),
		MessageFormat: format,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		Now:           time.Now,
		log:           log.WithField("component", "sync"),
	}
}

// Message formats the commit message for the given time.
func (s *Syncer) Message(at time.Time) string {
	stamp := at.Format(constants.SyncTimeLayout)
	if !strings.Contains(s.MessageFormat, "%s") {
		return strings.TrimSpace(s.MessageFormat + " " + stamp)
	}
	return fmt.Sprintf(s.MessageFormat, stamp)
}

// IsRepo reports whether the vault has a .git entry.
func (s *Syncer) IsRepo() bool {
	_, err := os.Stat(filepath.Join(s.Dir, ".git"))
	return err == nil
}

// Run executes add, commit and push in order with output streamed to Stdout
// and Stderr. A failed add stops the run; a failed commit is recorded and the
// push still runs. Nothing is retried.
func (s *Syncer) Run(ctx context.Context) Result {
	started := s.Now()
	res := Result{Message: s.Message(started), Started: started}

	if !s.IsRepo() {
		step := s.step(ctx, StepInit, "init")
		res.Steps = append(res.Steps, step)
		if step.Err != nil {
			res.Finished = s.Now()
			return res
		}
	}

	add := s.step(ctx, StepAdd, "add", "-A")
	res.Steps = append(res.Steps, add)
	if add.Err != nil {
		res.Finished = s.Now()
		s.log.WithError(add.Err).Warn("sync stopped after failed add")
		return res
	}

	commit := s.step(ctx, StepCommit, "commit", "-m", res.Message)
	res.Steps = append(res.Steps, commit)
	if commit.Err != nil {
		s.log.WithError(commit.Err).Info("commit made no changes or failed; pushing anyway")
	}

	res.Steps = append(res.Steps, s.step(ctx, StepPush, s.pushArgs()...))
	res.Finished = s.Now()

	if err := res.Err(); err != nil {
		s.log.WithError(err).Warn("sync failed")
	} else {
		s.log.WithField("message", res.Message).Info("sync complete")
	}

	return res
}

// Init creates the repository when missing and points the remote at
// remoteURL when one is given.
func (s *Syncer) Init(ctx context.Context, remoteURL string) error {
	if err := os.MkdirAll(s.Dir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create vault: %w", err)
	}

	if !s.IsRepo() {
		if step := s.step(ctx, StepInit, "init"); step.Err != nil {
			return step.Err
		}
	}

	remoteURL = strings.TrimSpace(remoteURL)
	if remoteURL == "" {
		return nil
	}

	remote := s.Remote
	if remote == "" {
		remote = "origin"
	}

	if step := s.quiet(ctx, "remote", "get-url", remote); step.Err == nil {
		return s.step(ctx, "remote", "remote", "set-url", remote, remoteURL).Err
	}
	return s.step(ctx, "remote", "remote", "add", remote, remoteURL).Err
}

func (s *Syncer) pushArgs() []string {
	args := []string{"push"}
	if s.Remote != "" {
		args = append(args, s.Remote)
		if s.Branch != "" {
			args = append(args, s.Branch)
		}
	}
	return args
}

func (s *Syncer) step(ctx context.Context, name string, args ...string) Step {
	return s.exec(ctx, name, s.Stdout, s.Stderr, args...)
}

func (s *Syncer) quiet(ctx context.Context, args ...string) Step {
	return s.exec(ctx, args[0], io.Discard, io.Discard, args...)
}

func (s *Syncer) exec(ctx context.Context, name string, stdout, stderr io.Writer, args ...string) Step {
	cmd := exec.CommandContext(ctx, s.Git, args...)
	cmd.Dir = s.Dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	step := Step{Name: name, Args: args}
	if err := cmd.Run(); err != nil {
		step.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			step.ExitCode = exitErr.ExitCode()
		}
		step.Err = fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}

	s.log.WithFields(logrus.Fields{
		"step": name,
		"exit": step.ExitCode,
	}).Debug("git step finished")

	return step
}
