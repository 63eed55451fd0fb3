package outbound

import "context"

// AudioStorePort persists a synthesized audio clip and returns the URL it is
// served under.
type AudioStorePort interface {
	Save(ctx context.Context, audio []byte, name string) (string, error)
}
