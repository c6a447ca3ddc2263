package state

// Interface defines the local tier contract for dependency injection and testing.
type Interface interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	SetMany(values map[string]string) error
	Delete(key string) error
	Progress(itemID string) (float64, bool, error)
	SaveProgress(itemID string, position float64) error
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
