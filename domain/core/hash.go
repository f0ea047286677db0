package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// DatasetHash fingerprints a table for run identity. Two runs over the
// same rows produce the same hash regardless of when they execute.
type DatasetHash Hash

func (h DatasetHash) String() string { return Hash(h).String() }

func (h DatasetHash) IsEmpty() bool { return Hash(h).IsEmpty() }

// ComputeDatasetHash hashes row values in order. Each row's cells are
// joined with a unit separator so shifted columns cannot collide.
func ComputeDatasetHash(rows [][]string) DatasetHash {
	var data strings.Builder
	for _, row := range rows {
		data.WriteString(strings.Join(row, "\x1f"))
		data.WriteString("\n")
	}
	return DatasetHash(NewHash([]byte(data.String())))
}
