package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateWorkOrderID creates a human-readable work order ID.
// Format: wo-{containerNumber}-{8charHexUUID}
//
// Example:
//   - Input: containerNumber="MSCU1234567"
//   - Output: "wo-MSCU1234567-a3f8e2b1"
//
// An empty container number yields "wo-{8charHexUUID}".
func GenerateWorkOrderID(containerNumber string) string {
	return joinID("wo", normalizeSegment(containerNumber), generateShortUUID())
}

// GenerateStayID creates a container stay ID.
// Format: stay-{containerNumber}-{8charHexUUID}
func GenerateStayID(containerNumber string) string {
	return joinID("stay", normalizeSegment(containerNumber), generateShortUUID())
}

// normalizeSegment upper-cases and strips characters that would make the ID
// awkward in URLs and log lines
func normalizeSegment(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(s)) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func joinID(parts ...string) string {
	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "-")
}

// generateShortUUID creates an 8-character hex string from a UUID.
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
