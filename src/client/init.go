package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// cliEnv is the process-wide state set up before the command tree runs.
type cliEnv struct {
	Logger    *slog.Logger
	RequestID string
	closer    io.Closer
}

// Close flushes and releases the log file, if any.
func (e *cliEnv) Close() error {
	if e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

// InitCLI prepares logging and the invocation's request id. The returned
// env is always usable; a non-nil error is a warning to print.
func InitCLI(stderr io.Writer) (*cliEnv, error) {
	requestID := uuid.NewString()

	logger, closer, err := InitLogging(GetLogConfig(viper.New()), stderr)
	env := &cliEnv{
		Logger:    logger.With("request_id", requestID),
		RequestID: requestID,
		closer:    closer,
	}
	if err != nil {
		return env, fmt.Errorf("logging: %w", err)
	}

	env.Logger.Debug("cli initialized")
	return env, nil
}
