package sheets

import (
	"context"

	"tobuy/internal/core"
)

// Ports for outbound adapters.
type (
	// ListReplacer overwrites the remote copy of the shopping list.
	ListReplacer interface {
		ReplaceItems(ctx context.Context, items []core.Item) error
	}

	// ListReader returns the remote copy of the shopping list.
	ListReader interface {
		ReadItems(ctx context.Context) ([]core.Item, error)
	}
)
