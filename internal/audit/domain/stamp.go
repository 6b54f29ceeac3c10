// Package domain holds the audit metadata attached to persisted records:
// who created a record and when, and who last modified it and when.
//
// A Stamp is a value. Nothing in this package mutates one after it has
// been built; recording a modification returns a new Stamp.
package domain

import (
	"strings"
	"time"

	commonerrors "github.com/AlibekovAA/survey-generator/internal/common/errors"
)

// Modification is the last change applied to a record.
type Modification struct {
	By string
	On time.Time
}

type Stamp struct {
	createdBy    string
	createdOn    time.Time
	modification *Modification
}

func NewStamp(createdBy string, createdOn time.Time) (Stamp, error) {
	if strings.TrimSpace(createdBy) == "" {
		return Stamp{}, commonerrors.ErrInvalidAuditActor
	}
	if createdOn.IsZero() {
		return Stamp{}, commonerrors.ErrAuditMissingCreatedOn
	}
	return Stamp{
		createdBy: createdBy,
		createdOn: createdOn,
	}, nil
}

// Restore rebuilds a Stamp from stored columns. modifiedBy and modifiedOn
// must both be nil or both be set.
func Restore(createdBy string, createdOn time.Time, modifiedBy *string, modifiedOn *time.Time) (Stamp, error) {
	s, err := NewStamp(createdBy, createdOn)
	if err != nil {
		return Stamp{}, err
	}

	switch {
	case modifiedBy == nil && modifiedOn == nil:
		return s, nil
	case modifiedBy == nil || modifiedOn == nil:
		return Stamp{}, commonerrors.ErrAuditIncompleteModification
	default:
		return s.Modified(*modifiedBy, *modifiedOn)
	}
}

func (s Stamp) CreatedBy() string {
	return s.createdBy
}

func (s Stamp) CreatedOn() time.Time {
	return s.createdOn
}

// Modification returns a copy of the last modification, if any.
func (s Stamp) Modification() (Modification, bool) {
	if s.modification == nil {
		return Modification{}, false
	}
	return *s.modification, true
}

func (s Stamp) IsModified() bool {
	return s.modification != nil
}

// IsZero reports whether s was never constructed.
func (s Stamp) IsZero() bool {
	return s.createdBy == "" && s.createdOn.IsZero() && s.modification == nil
}

// LastTouchedBy is the modifier if there is one, otherwise the creator.
func (s Stamp) LastTouchedBy() string {
	if s.modification != nil {
		return s.modification.By
	}
	return s.createdBy
}

func (s Stamp) LastTouchedOn() time.Time {
	if s.modification != nil {
		return s.modification.On
	}
	return s.createdOn
}

// Modified returns a copy of s carrying the given modification. The
// modification time may equal but not precede the creation time. A Stamp
// that was never constructed cannot be modified.
func (s Stamp) Modified(by string, on time.Time) (Stamp, error) {
	if s.createdBy == "" {
		return Stamp{}, commonerrors.ErrInvalidAuditActor
	}
	if s.createdOn.IsZero() {
		return Stamp{}, commonerrors.ErrAuditMissingCreatedOn
	}
	if strings.TrimSpace(by) == "" {
		return Stamp{}, commonerrors.ErrInvalidAuditActor
	}
	if on.Before(s.createdOn) {
		return Stamp{}, commonerrors.ErrAuditModifiedBeforeCreated
	}

	return Stamp{
		createdBy:    s.createdBy,
		createdOn:    s.createdOn,
		modification: &Modification{By: by, On: on},
	}, nil
}

// Equal compares instants with time.Time.Equal, so the same moment in
// different offsets is equal.
func (s Stamp) Equal(other Stamp) bool {
	if s.createdBy != other.createdBy || !s.createdOn.Equal(other.createdOn) {
		return false
	}
	a, aok := s.Modification()
	b, bok := other.Modification()
	if aok != bok {
		return false
	}
	return !aok || (a.By == b.By && a.On.Equal(b.On))
}
