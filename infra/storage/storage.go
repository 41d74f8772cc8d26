// Package storage holds the key-value persistence used by the community
// feed. Values are JSON strings under named keys, like browser storage.
package storage

import (
	"fmt"

	"github.com/CrestNiraj12/rivalsnexus/domain"
)

// DefaultQuota mirrors the typical per-origin browser storage limit.
const DefaultQuota = 5 << 20

// Store reads and writes string values under string keys.
// Set returns an error wrapping domain.ErrCapacityExceeded when the write
// would breach the quota; the previous value is kept in that case.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

func entrySize(key, value string) int {
	return len(key) + len(value)
}

// checkQuota validates a write that replaces oldSize bytes with newSize
// bytes against the used total. A quota <= 0 disables the check.
func checkQuota(quota, used, oldSize, newSize int, key string) error {
	if quota <= 0 {
		return nil
	}
	if used-oldSize+newSize > quota {
		return fmt.Errorf("writing %q (%d bytes, %d/%d used): %w", key, newSize, used, quota, domain.ErrCapacityExceeded)
	}
	return nil
}
