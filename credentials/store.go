package credentials

// Unified storage keys. Both the fetch-style and the interceptor client read
// and write the same two keys.
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)

// Store is a small persisted key-value store holding the credential pair.
// Get returns errors.ErrNotFound when the key is absent. Remove of an absent
// key is not an error.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}
