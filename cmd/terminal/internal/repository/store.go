package repository

import (
	"context"

	"github.com/shubham-shewale/fx-terminal/pkg/models"
)

// RateStore reads the latest quotes the processor keeps per instrument class.
type RateStore interface {
	// GetSnapshots returns the raw JSON payload of every indexed symbol of
	// class. Symbols whose payload expired are omitted.
	GetSnapshots(ctx context.Context, class models.Class) ([]string, error)
	Close() error
}
