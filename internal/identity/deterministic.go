package identity

import (
	"strconv"
	"strings"

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

// DocumentUUID identifies a local document by its source path.
func DocumentUUID(path string) uuid.UUID {
	return UUID("publisher:document:" + strings.TrimSpace(path))
}

// BlockUUID identifies a block by its document and position path, e.g.
// []int{3, 0} for the first child of the fourth top-level block.
func BlockUUID(documentID uuid.UUID, position []int) uuid.UUID {
	parts := make([]string, 0, len(position))
	for _, idx := range position {
		parts = append(parts, strconv.Itoa(idx))
	}
	return UUID("publisher:block:" + documentID.String() + ":" + strings.Join(parts, "."))
}

// Canonical normalises a backend identifier to the dashed UUID form. Values
// that are not UUIDs are returned trimmed.
func Canonical(id string) string {
	trimmed := strings.TrimSpace(id)
	if parsed, err := uuid.Parse(trimmed); err == nil {
		return parsed.String()
	}
	return trimmed
}
