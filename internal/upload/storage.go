package upload

import "context"

const (
	SourceSupabase = "supabase"
	SourceLocal    = "local"
)

// StoredObject is where an uploaded image ended up.
type StoredObject struct {
	URL  string
	Path string
}

// Storage is one destination for product images.
type Storage interface {
	Source() string
	Put(ctx context.Context, name, contentType string, data []byte) (*StoredObject, error)
	Remove(ctx context.Context, path string) error
}
