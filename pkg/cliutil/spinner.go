// Package cliutil holds small CLI presentation helpers shared by cmd/*
// subcommands, adapted from pkg/ui/spinner.go.
package cliutil

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"

	"github.com/eng618/wfc-loom/pkg/wfclog"
)

// Spinner wraps github.com/briandowns/spinner with log-friendly start/stop
// semantics so a status message printed mid-spin doesn't tear the line.
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner creates a spinner with the given suffix message.
func NewSpinner(msg string) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + msg
	_ = s.Color("cyan", "bold")
	return &Spinner{s: s}
}

// Start starts the spinner unless verbose logging is enabled, which would
// otherwise interleave badly with the spinner's redraws.
func (s *Spinner) Start() {
	if !wfclog.VerboseEnabled {
		s.s.Start()
	}
}

// Stop stops the spinner.
func (s *Spinner) Stop() {
	s.s.Stop()
}

// UpdateMessage replaces the spinner's suffix message.
func (s *Spinner) UpdateMessage(format string, args ...interface{}) {
	s.s.Suffix = " " + fmt.Sprintf(format, args...)
}

// LogInfo stops the spinner, logs at info level, and restarts it.
func (s *Spinner) LogInfo(format string, args ...interface{}) {
	wasRunning := s.s.Active()
	if wasRunning {
		s.s.Stop()
	}
	wfclog.Info(format, args...)
	if wasRunning && !wfclog.VerboseEnabled {
		s.s.Start()
	}
}

// LogWarning stops the spinner, logs at warn level, and restarts it.
func (s *Spinner) LogWarning(format string, args ...interface{}) {
	wasRunning := s.s.Active()
	if wasRunning {
		s.s.Stop()
	}
	wfclog.Warning(format, args...)
	if wasRunning && !wfclog.VerboseEnabled {
		s.s.Start()
	}
}
