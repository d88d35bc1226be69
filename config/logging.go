package config

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

// LogWriter is the writer used for application and database logs. It starts
// as stdout and becomes a stdout+file tee once InitLogging succeeds.
var LogWriter io.Writer = os.Stdout

// InitLogging opens the log file at path and points the standard logger at a
// stdout+file tee. On failure logging stays on stdout and the process keeps
// running; a missing log file is not worth refusing to boot over.
func InitLogging(path string) (*os.File, io.Writer) {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		log.Printf("Warning: Failed to create logs directory: %v", err)
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Printf("Warning: Failed to open log file: %v", err)
		LogWriter = os.Stdout
		log.SetOutput(LogWriter)
		return nil, LogWriter
	}

	LogWriter = io.MultiWriter(os.Stdout, logFile)
	log.SetOutput(LogWriter)
	return logFile, LogWriter
}
