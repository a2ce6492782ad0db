package identity

import (
	"fmt"
	"strings"
	"sync"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

func DefinitionUUID(blockType, variant string) uuid.UUID {
	return UUID("pagekit:definition:" + strings.ToLower(strings.TrimSpace(blockType)) + ":" + strings.ToLower(strings.TrimSpace(variant)))
}

func DocumentUUID(handle string) uuid.UUID {
	return UUID("pagekit:document:" + strings.ToLower(strings.TrimSpace(handle)))
}

// Generator produces block identifiers.
type Generator func() string

// Random returns random v4 identifiers.
func Random() Generator {
	return func() string {
		return uuid.NewString()
	}
}

// Sequence returns prefix-1, prefix-2, ... and is safe for concurrent use.
func Sequence(prefix string) Generator {
	var (
		mu   sync.Mutex
		next int
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		next++
		return fmt.Sprintf("%s-%d", prefix, next)
	}
}
