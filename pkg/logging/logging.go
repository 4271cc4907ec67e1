// Package logging builds the structured logger shared by all commands
package logging

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Manu343726/csrgen/pkg/utils"
	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/afero"
)

var ErrInvalidLevel = errors.New("invalid log level")

type Options struct {
	// debug, info, warn or error
	Level string

	// Optional JSON log file, appended to
	File string

	// Human readable output. Defaults to os.Stderr
	Console io.Writer
}

// Parses a level name, case insensitive. An empty name means info.
func ParseLevel(name string) (slog.Level, error) {
	if name == "" {
		return slog.LevelInfo, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return 0, utils.MakeError(ErrInvalidLevel, "'%v', expected one of debug, info, warn, error", name)
	}

	return level, nil
}

// Returns a logger writing text to the console and, if a file is given, JSON records to it.
// The returned function closes the log file.
func New(options Options, fs afero.Fs) (*slog.Logger, func() error, error) {
	level, err := ParseLevel(options.Level)
	if err != nil {
		return nil, nil, err
	}

	console := options.Console
	if console == nil {
		console = os.Stderr
	}

	handlerOptions := &slog.HandlerOptions{Level: level}
	handlers := []slog.Handler{slog.NewTextHandler(console, handlerOptions)}
	closeFunc := func() error { return nil }

	if options.File != "" {
		file, err := fs.OpenFile(options.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}

		handlers = append(handlers, slog.NewJSONHandler(file, handlerOptions))
		closeFunc = file.Close
	}

	return slog.New(slogmulti.Fanout(handlers...)), closeFunc, nil
}
