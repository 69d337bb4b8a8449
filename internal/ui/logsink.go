package ui

import (
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// NewLogger returns a logger that appends every entry to the log pane of
// state and forwards it to console. Entries above verbosity are kept out of
// the pane; console applies its own verbosity.
func NewLogger(state *AppState, console logr.Logger, verbosity int) logr.Logger {
	noLevel := ""
	pane := funcr.New(func(prefix, args string) {
		entry := "[" + time.Now().Format(time.Stamp) + "] "
		if prefix != "" {
			entry += prefix + ": "
		}
		state.AppendLog(entry + args)
	}, funcr.Options{
		Verbosity:    verbosity,
		LogInfoLevel: &noLevel,
	})

	sinks := teeSink{pane.GetSink()}
	if s := console.GetSink(); s != nil {
		sinks = append(sinks, s)
	}
	return logr.New(sinks)
}

// teeSink fans entries out to several sinks.
type teeSink []logr.LogSink

func (t teeSink) Init(info logr.RuntimeInfo) {
	for _, s := range t {
		s.Init(info)
	}
}

func (t teeSink) Enabled(level int) bool {
	for _, s := range t {
		if s.Enabled(level) {
			return true
		}
	}
	return false
}

func (t teeSink) Info(level int, msg string, keysAndValues ...any) {
	for _, s := range t {
		if s.Enabled(level) {
			s.Info(level, msg, keysAndValues...)
		}
	}
}

func (t teeSink) Error(err error, msg string, keysAndValues ...any) {
	for _, s := range t {
		s.Error(err, msg, keysAndValues...)
	}
}

func (t teeSink) WithValues(keysAndValues ...any) logr.LogSink {
	out := make(teeSink, len(t))
	for i, s := range t {
		out[i] = s.WithValues(keysAndValues...)
	}
	return out
}

func (t teeSink) WithName(name string) logr.LogSink {
	out := make(teeSink, len(t))
	for i, s := range t {
		out[i] = s.WithName(name)
	}
	return out
}
