package redis

import "fmt"

const (
	// KeyPrefixRevision is the prefix for snapshot keys
	KeyPrefixRevision = "sidenav:revision:"
	// KeyRevisions is the sorted set of revision IDs scored by load time
	KeyRevisions = "sidenav:revisions"
	// KeyCurrent holds the ID of the last-known-good revision
	KeyCurrent = "sidenav:current"
)

// RevisionKey returns the Redis key for a snapshot by revision ID
func RevisionKey(id string) string {
	return KeyPrefixRevision + id
}

// ExtractRevisionID extracts the revision ID from a Redis key
func ExtractRevisionID(key string) (string, error) {
	if len(key) <= len(KeyPrefixRevision) || key[:len(KeyPrefixRevision)] != KeyPrefixRevision {
		return "", fmt.Errorf("invalid revision key: %s", key)
	}
	return key[len(KeyPrefixRevision):], nil
}
