// Package client implements the transport layer talking to the remote note
// service. The Client interface is the only thing the rest of the app sees;
// the HTTP implementation mirrors the service's REST contract.
package client

import (
	"context"

	"github.com/notezapp/notez/internal/client/models"
)

type Client interface {
	Close() error

	// Ping probes service reachability.
	Ping(ctx context.Context) error

	// List returns all notes of the current user, ordered by the service
	// (pinned first, then most recently updated).
	List(ctx context.Context) ([]*models.Note, error)

	// Get returns a single note by id.
	Get(ctx context.Context, id string) (*models.Note, error)

	// Create sends a draft; the service assigns the id and timestamps and
	// fills an empty title with models.DefaultTitle.
	Create(ctx context.Context, draft models.Draft) (*models.Note, error)

	// Update merges a partial patch and returns the full updated note.
	Update(ctx context.Context, id string, patch models.Patch) (*models.Note, error)

	// Delete removes a note.
	Delete(ctx context.Context, id string) error

	// TogglePin flips the pinned flag and returns the updated note.
	TogglePin(ctx context.Context, id string) (*models.Note, error)

	// AddTag adds a tag (duplicate adds are no-ops service-side) and returns
	// the updated note.
	AddTag(ctx context.Context, id string, tag string) (*models.Note, error)

	// RemoveTag removes a tag and returns the updated note.
	RemoveTag(ctx context.Context, id string, tag string) (*models.Note, error)
}
