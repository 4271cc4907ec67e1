// Package app holds the state shared by all csrgen commands
package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Manu343726/csrgen/pkg/config"
	"github.com/Manu343726/csrgen/pkg/export"
	"github.com/Manu343726/csrgen/pkg/logging"
	"github.com/Manu343726/csrgen/pkg/soc"
	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

var (
	ColorError   = color.New(color.FgRed, color.Bold)
	ColorSuccess = color.New(color.FgGreen)
	ColorHeader  = color.New(color.FgWhite, color.Bold, color.Underline)
)

// Exit codes
const (
	ExitSetup      = 1
	ExitGeneration = 2
)

// Terminates the process, replaced in tests
var exit = os.Exit

// Prints an error and terminates the process with the given exit code.
// Commands holding a session use Session.Fatal() instead, so the session is closed first.
func Fatal(code int, format string, args ...any) {
	ColorError.Fprint(os.Stderr, "error: ")
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	exit(code)
}

// Configuration, logger and filesystem of a command invocation
type Session struct {
	Config *config.Config
	Logger *slog.Logger
	Fs     afero.Fs

	closeLog func() error
}

func NewSession(v *viper.Viper, fs afero.Fs) (*Session, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("error reading configuration: %w", err)
	}

	logger, closeLog, err := logging.New(cfg.LoggingOptions(), fs)
	if err != nil {
		return nil, fmt.Errorf("error setting up logging: %w", err)
	}

	slog.SetDefault(logger)

	if used := v.ConfigFileUsed(); used != "" {
		logger.Debug("using config file", slog.String("path", used))
	}

	return &Session{
		Config:   cfg,
		Logger:   logger,
		Fs:       fs,
		closeLog: closeLog,
	}, nil
}

// Returns the session of the current process: global viper configuration and OS filesystem.
// Exits on error.
func MustSession() *Session {
	session, err := NewSession(viper.GetViper(), afero.NewOsFs())
	if err != nil {
		Fatal(ExitSetup, "%v", err)
	}

	return session
}

// Closes the log file. Calling it again does nothing
func (s *Session) Close() {
	if s.closeLog == nil {
		return
	}

	closeLog := s.closeLog
	s.closeLog = nil

	if err := closeLog(); err != nil {
		fmt.Fprintf(os.Stderr, "error closing log file: %v\n", err)
	}
}

// Closes the session, prints an error and terminates the process with the given exit code
func (s *Session) Fatal(code int, format string, args ...any) {
	s.Close()
	Fatal(code, format, args...)
}

// Loads the configured SoC model
func (s *Session) LoadSoC() (*soc.SoC, error) {
	model, err := s.Config.LoadSoC(s.Fs)
	if err != nil {
		return nil, err
	}

	source := "built-in xtrx"
	if s.Config.Description != "" {
		source = s.Config.Description
	}

	s.Logger.Debug("loaded soc", slog.String("source", source), slog.String("soc", model.String()))
	return model, nil
}

// Loads the configured SoC model, exits on error
func (s *Session) MustLoadSoC() *soc.SoC {
	model, err := s.LoadSoC()
	if err != nil {
		s.Fatal(ExitSetup, "loading soc: %v", err)
	}

	return model
}

// Returns a generator writing through the session filesystem, exits on error
func (s *Session) MustGenerator() *export.Generator {
	g, err := export.NewGenerator(s.Config.GeneratorOptions(s.Fs, s.Logger))
	if err != nil {
		s.Fatal(ExitSetup, "initializing generator: %v", err)
	}

	return g
}
