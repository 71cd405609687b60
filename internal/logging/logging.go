// Package logging configures the process-wide gologger instance.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/formatter"
	"github.com/projectdiscovery/gologger/levels"
	"github.com/projectdiscovery/gologger/writer"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects verbosity and an optional log file.
type Options struct {
	Silent  bool
	Verbose bool
	NoColor bool
	// File, when set, receives a copy of every log record. It is rotated at 25 MB.
	File string
}

// Level maps the options to a gologger level. Silent wins over Verbose.
func (o Options) Level() levels.Level {
	switch {
	case o.Silent:
		return levels.LevelSilent
	case o.Verbose:
		return levels.LevelDebug
	default:
		return levels.LevelInfo
	}
}

// Setup applies opts to gologger.DefaultLogger.
// The returned close function flushes and closes the log file, if any.
func Setup(opts Options) (func() error, error) {
	gologger.DefaultLogger.SetMaxLevel(opts.Level())
	// Colour codes would end up in the log file too.
	gologger.DefaultLogger.SetFormatter(formatter.NewCLI(opts.NoColor || opts.File != ""))

	if opts.File == "" {
		gologger.DefaultLogger.SetWriter(writer.NewCLI())
		return func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, fmt.Errorf("could not create log directory: %w", err)
	}

	file := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    25,
		MaxBackups: 10,
		MaxAge:     14,
		Compress:   true,
	}
	gologger.DefaultLogger.SetWriter(&teeWriter{console: writer.NewCLI(), file: file})

	return func() error {
		gologger.DefaultLogger.SetWriter(writer.NewCLI())
		return file.Close()
	}, nil
}

// teeWriter sends records to the console and to a rotating file.
type teeWriter struct {
	mu      sync.Mutex
	console writer.Writer
	file    *lumberjack.Logger
}

func (w *teeWriter) Write(data []byte, level levels.Level) {
	w.console.Write(data, level)

	w.mu.Lock()
	defer w.mu.Unlock()
	_, _ = w.file.Write(append(append([]byte{}, data...), '\n'))
}
