package id

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Generator produces fresh identifiers. Tests swap it for a deterministic one.
type Generator func() uuid.UUID

// Random is the default Generator.
func Random() uuid.UUID {
	return uuid.New()
}

// Sequence returns a Generator that yields predictable UUIDs
// (00000000-0000-0000-0000-000000000001, ...).
func Sequence() Generator {
	var n uint64
	return func() uuid.UUID {
		n++
		var u uuid.UUID
		for i := 0; i < 8; i++ {
			u[15-i] = byte(n >> (8 * i))
		}
		return u
	}
}

// FormatPostingID returns a posting ID like "2025-01-001".
func FormatPostingID(year, month, seq int) string {
	return fmt.Sprintf("%04d-%02d-%03d", year, month, seq)
}

// FormatLineID returns a line ID like "2025-01-001a" (line 0='a', 1='b', etc.).
func FormatLineID(postingID string, line int) string {
	return postingID + string(rune('a'+line))
}

// ParsePostingID parses "2025-01-001" into year, month, seq.
func ParsePostingID(id string) (year, month, seq int, err error) {
	base := PostingGroup(id)

	parts := strings.SplitN(base, "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid posting ID format: %q", id)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in posting ID %q: %w", id, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid month in posting ID %q: %w", id, err)
	}
	if month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("month out of range in posting ID %q", id)
	}

	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid sequence in posting ID %q: %w", id, err)
	}

	return year, month, seq, nil
}

// PostingGroup strips the line suffix from a line ID.
// "2025-01-001a" -> "2025-01-001"
func PostingGroup(lineID string) string {
	i := len(lineID)
	for i > 0 && lineID[i-1] >= 'a' && lineID[i-1] <= 'z' {
		i--
	}
	return lineID[:i]
}
