package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Load errors
	ErrEmptyDataset     = errors.New("dataset is empty")
	ErrUnreadableSource = errors.New("source is unreadable")
	ErrMissingColumn    = errors.New("required column missing")

	// Analysis errors
	ErrInsufficientData = errors.New("insufficient data for analysis")
	ErrZeroVariance     = errors.New("zero variance in input")

	// Persistence errors
	ErrRunNotFound = errors.New("run not found")
)

// Error constructors with context
func NewMissingColumnError(column string) error {
	return fmt.Errorf("%w: %s", ErrMissingColumn, column)
}

func NewInsufficientDataError(analysis string, need, have int) error {
	return fmt.Errorf("%w: %s needs %d records, have %d", ErrInsufficientData, analysis, need, have)
}

// Error checking helpers
func IsLoadError(err error) bool {
	return errors.Is(err, ErrEmptyDataset) ||
		errors.Is(err, ErrUnreadableSource) ||
		errors.Is(err, ErrMissingColumn)
}

func IsAnalysisSkip(err error) bool {
	return errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrZeroVariance)
}
