package db

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/brafe/qc/internal/models"
)

const (
	dimIDPrefix  = "dc-"
	bendIDPrefix = "bt-"
	loiIDPrefix  = "lo-"
)

var kindPrefixes = map[models.Kind]string{
	models.KindDimensional: dimIDPrefix,
	models.KindBend:        bendIDPrefix,
	models.KindLOI:         loiIDPrefix,
}

// generateID generates a random record ID with the kind's prefix
func generateID(kind models.Kind) (string, error) {
	bytes := make([]byte, 3) // 6 hex characters
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return kindPrefixes[kind] + hex.EncodeToString(bytes), nil
}

// KindOf returns the record kind encoded in an ID prefix
func KindOf(id string) (models.Kind, bool) {
	for kind, prefix := range kindPrefixes {
		if strings.HasPrefix(id, prefix) {
			return kind, true
		}
	}
	return "", false
}
