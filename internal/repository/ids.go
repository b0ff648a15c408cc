// Package repository holds the domain collections. Each repository owns one
// persisted key, loads it once at construction (falling back to an empty
// collection on missing or malformed data) and writes it back after every
// mutation. There is no referential integrity across repositories.
package repository

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// newID builds a collection-unique id from the current time plus a random
// discriminator, so ids stay distinct even for calls within the same
// millisecond.
func newID(prefix string) string {
	return fmt.Sprintf("%s%d-%s", prefix, time.Now().UnixMilli(), uuid.NewString()[:8])
}
