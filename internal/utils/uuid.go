package utils

import "github.com/google/uuid"

// favoriteNamespace is the UUIDv5 namespace of favorite identifiers.
var favoriteNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("catalog-mirror/favorites"))

// FavoriteID returns the deterministic identifier of the favorite linking
// userID to recordID. The same pair always yields the same id.
func FavoriteID(userID, recordID string) string {
	return uuid.NewSHA1(favoriteNamespace, []byte(userID+":"+recordID)).String()
}

type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a time-ordered UUIDv7, falling back to a random UUIDv4.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
