package command

import (
	"errors"
	"log/slog"

	"github.com/kilikali/kilikali/internal/domain"
)

// Dispatcher runs committed lines against a registry
type Dispatcher struct {
	registry  *Registry
	tokenizer *Tokenizer
	logger    *slog.Logger
}

// NewDispatcher creates a dispatcher. A nil logger uses slog.Default().
func NewDispatcher(registry *Registry, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		registry:  registry,
		tokenizer: NewTokenizer(),
		logger:    logger,
	}
}

// Run tokenizes line, looks the command up by exact name and runs it.
//
// Errors are *domain.CommandError wrapping domain.ErrNoSuchCommand,
// domain.ErrTooManyArguments or domain.ErrCommandFailed. A failing callback's
// own error is joined to ErrCommandFailed so both can be matched.
func (d *Dispatcher) Run(line string) error {
	args, err := d.tokenizer.Tokenize(line)
	if err != nil {
		d.logger.Debug("tokenize failed", "line", line, "error", err)
		return &domain.CommandError{Op: "tokenize", Err: err}
	}

	cmd, ok := d.registry.Lookup(args[0])
	if !ok {
		d.logger.Debug("no such command", "name", args[0])
		return &domain.CommandError{Op: "lookup", Name: args[0], Err: domain.ErrNoSuchCommand}
	}

	d.logger.Debug("running command", "name", cmd.Name, "argc", len(args))
	if err := cmd.Run(args); err != nil {
		d.logger.Warn("command failed", "name", cmd.Name, "error", err)
		return &domain.CommandError{
			Op:   "run",
			Name: cmd.Name,
			Err:  errors.Join(domain.ErrCommandFailed, err),
		}
	}
	return nil
}
