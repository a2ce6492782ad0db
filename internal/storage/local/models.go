package local

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// CacheEntry is one key/value slot of the durable local cache.
type CacheEntry struct {
	bun.BaseModel `bun:"table:cache_entries,alias:ce"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Key       string    `bun:"cache_key,notnull,unique" json:"cache_key"`
	Value     []byte    `bun:"value" json:"value"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}
