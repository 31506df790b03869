package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the resolved application paths. This is the single
// source of truth for file locations; everything resolves relative to
// the executable directory, never the working directory, so the binary
// behaves the same wherever it is launched from.
type Paths struct {
	ExecutableDir string
	DataDir       string
	LogsDir       string

	// ReportFile is the absolute path of the review report spreadsheet.
	ReportFile string
}

// ResolvePaths resolves the configured paths against the executable
// directory.
func ResolvePaths(cfg PathsConfig) (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}
	exeDir := filepath.Dir(exe)

	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(exeDir, p)
	}

	dataDir := resolve(cfg.DataDir)
	reportFile := cfg.ReportFile
	if !filepath.IsAbs(reportFile) {
		reportFile = filepath.Join(dataDir, reportFile)
	}
	return &Paths{
		ExecutableDir: exeDir,
		DataDir:       dataDir,
		LogsDir:       resolve(cfg.LogsDir),
		ReportFile:    reportFile,
	}, nil
}

// EnsureDirectories creates the required directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// LogPathResolution logs the resolved paths for startup debugging.
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Resolved application paths",
		slog.String("executable_dir", p.ExecutableDir),
		slog.String("data_dir", p.DataDir),
		slog.String("logs_dir", p.LogsDir),
		slog.String("report_file", p.ReportFile))
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
