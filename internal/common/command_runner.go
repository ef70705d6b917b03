package common

import (
	"context"

	"jobscout/internal/errors"
)

// OperationFunc is the signature of one pipeline operation as run by a
// CLI command.
type OperationFunc[Output any] func(ctx context.Context) (Output, error)

// RunCommand encapsulates the common logic for pipeline-backed CLI
// commands: run the operation, then route the result through the
// configured output format and destination.
func RunCommand[Output any](
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	operation OperationFunc[Output],
) error {
	result, err := operation(ctx)
	if err != nil {
		return err
	}

	outputHandler := NewOutputHandler(logger)
	return outputHandler.HandleOutput(result, cmdConfig)
}
