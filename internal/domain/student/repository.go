package student

import (
	"context"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// These interfaces define the contract for the record store.
// Implementations live in infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Repository defines the record-store operations for fee records.
type Repository interface {
	// Create persists a new record. If s.AdmissionNo is empty, the next
	// sequential number is allocated inside the same transaction as the
	// insert and set on s before returning. The store's uniqueness
	// constraint on admission_no is the final arbiter: any collision -
	// caller-supplied or from a concurrent allocation - returns
	// ErrDuplicateAdmissionNo and persists nothing.
	Create(ctx context.Context, s *Student) error

	// GetByAdmissionNo returns the record for an admission number.
	// Returns ErrStudentNotFound if no record matches.
	GetByAdmissionNo(ctx context.Context, no AdmissionNo) (*Student, error)

	// List returns records ordered by insertion, newest first.
	List(ctx context.Context, opts ListOptions) ([]*Student, error)

	// Count returns the total number of records.
	Count(ctx context.Context) (int, error)
}

// ListOptions contains pagination parameters.
type ListOptions struct {
	// Offset is the number of records to skip.
	Offset int

	// Limit is the maximum number of records to return.
	Limit int
}

// DefaultListOptions returns the default pagination.
func DefaultListOptions() ListOptions {
	return ListOptions{Offset: 0, Limit: 50}
}

// WithOffset sets the offset.
func (o ListOptions) WithOffset(offset int) ListOptions {
	o.Offset = offset
	return o
}

// WithLimit sets the limit.
func (o ListOptions) WithLimit(limit int) ListOptions {
	o.Limit = limit
	return o
}

// ══════════════════════════════════════════════════════════════════════════════
// CACHE INTERFACE
// Records are immutable after creation, so cached entries never go stale.
// ══════════════════════════════════════════════════════════════════════════════

// Cache defines read-through caching for fee records.
type Cache interface {
	// Get returns a cached record, or ErrStudentNotFound on a miss.
	Get(ctx context.Context, no AdmissionNo) (*Student, error)

	// Set stores a record with the given TTL.
	Set(ctx context.Context, s *Student, ttl time.Duration) error

	// Delete evicts a record.
	Delete(ctx context.Context, no AdmissionNo) error
}
