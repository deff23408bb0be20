package repo

import "context"

// SelectionStore is the durable KV behind the coordinator's bacteria
// selection: one fixed key holding a JSON-encoded array of test ids.
// Load returns (nil, nil) when no entry exists; callers fall back to
// their documented default.
type SelectionStore interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, ids []string) error
}
