package remote

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DocumentRecord is one stored document payload keyed by handle.
type DocumentRecord struct {
	bun.BaseModel `bun:"table:documents,alias:d"`

	ID        uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	Handle    string         `bun:"handle,notnull,unique" json:"handle"`
	Payload   map[string]any `bun:"payload,type:jsonb" json:"payload"`
	Revision  int            `bun:"revision,notnull,default:0" json:"revision"`
	UpdatedAt time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}
