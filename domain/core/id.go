package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// RunID identifies a single pipeline execution.
type RunID ID

func (id RunID) String() string { return ID(id).String() }

// IsEmpty checks if the RunID is empty
func (id RunID) IsEmpty() bool { return ID(id).IsEmpty() }

// NewRunID creates a fresh run identifier.
func NewRunID() RunID {
	return RunID(NewID())
}

// ParseRunID parses a string into RunID
func ParseRunID(s string) (RunID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("run ID cannot be empty")
	}
	return RunID(s), nil
}

// Artifact names one output file of a pipeline run.
type Artifact struct {
	Kind      ArtifactKind `json:"kind"`
	Path      string       `json:"path"`
	CreatedAt Timestamp    `json:"created_at"`
}

// ArtifactKind defines types of artifacts
type ArtifactKind string

const (
	// ArtifactCleanedTable is the cleaned record table written back out.
	ArtifactCleanedTable ArtifactKind = "cleaned_table"
	// ArtifactReportJSON is the structured analysis report.
	ArtifactReportJSON ArtifactKind = "report_json"
	// ArtifactReportMarkdown is the narrative rendering of the report.
	ArtifactReportMarkdown ArtifactKind = "report_markdown"
	// ArtifactReportHTML is the optional HTML preview of the narrative.
	ArtifactReportHTML ArtifactKind = "report_html"
)
