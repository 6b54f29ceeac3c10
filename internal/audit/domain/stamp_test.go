package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	commonerrors "github.com/AlibekovAA/survey-generator/internal/common/errors"
)

var (
	plusThree = time.FixedZone("UTC+3", 3*60*60)
	created   = time.Date(2024, time.March, 10, 12, 0, 0, 0, plusThree)
)

func mustStamp(t *testing.T, by string, on time.Time) Stamp {
	t.Helper()
	s, err := NewStamp(by, on)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	return s
}

func TestNewStamp_KeepsCreationValues(t *testing.T) {
	s := mustStamp(t, "alice", created)

	if s.CreatedBy() != "alice" {
		t.Errorf("expected created by alice, got %q", s.CreatedBy())
	}
	if !s.CreatedOn().Equal(created) {
		t.Errorf("expected created on %v, got %v", created, s.CreatedOn())
	}
	if _, offset := s.CreatedOn().Zone(); offset != 3*60*60 {
		t.Errorf("expected offset to be preserved, got %d", offset)
	}
	if s.IsModified() {
		t.Error("expected new stamp to be unmodified")
	}
	if _, ok := s.Modification(); ok {
		t.Error("expected no modification on a new stamp")
	}
}

func TestNewStamp_RejectsEmptyActor(t *testing.T) {
	for _, by := range []string{"", "  ", "\t"} {
		_, err := NewStamp(by, created)
		if !errors.Is(err, commonerrors.ErrInvalidAuditActor) {
			t.Errorf("expected ErrInvalidAuditActor for %q, got %v", by, err)
		}
	}
}

func TestNewStamp_RejectsZeroCreatedOn(t *testing.T) {
	_, err := NewStamp("alice", time.Time{})
	if !errors.Is(err, commonerrors.ErrAuditMissingCreatedOn) {
		t.Errorf("expected ErrAuditMissingCreatedOn, got %v", err)
	}
}

func TestStamp_ZeroValueCannotBeModified(t *testing.T) {
	var zero Stamp

	_, err := zero.Modified("bob", created)
	if !errors.Is(err, commonerrors.ErrInvalidAuditActor) {
		t.Errorf("expected ErrInvalidAuditActor, got %v", err)
	}
}

func TestStamp_ModifiedReturnsNewValue(t *testing.T) {
	original := mustStamp(t, "alice", created)
	modifiedOn := created.Add(2 * time.Hour)

	updated, err := original.Modified("bob", modifiedOn)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if original.IsModified() {
		t.Error("expected original stamp to stay unmodified")
	}
	if updated.CreatedBy() != "alice" || !updated.CreatedOn().Equal(created) {
		t.Errorf("expected creation values to carry over, got (%q, %v)", updated.CreatedBy(), updated.CreatedOn())
	}

	m, ok := updated.Modification()
	if !ok {
		t.Fatal("expected modification to be present")
	}
	if m.By != "bob" || !m.On.Equal(modifiedOn) {
		t.Errorf("expected modification (bob, %v), got (%q, %v)", modifiedOn, m.By, m.On)
	}
	if updated.LastTouchedBy() != "bob" || !updated.LastTouchedOn().Equal(modifiedOn) {
		t.Errorf("expected last touched by bob at %v, got %q at %v", modifiedOn, updated.LastTouchedBy(), updated.LastTouchedOn())
	}
}

func TestStamp_ModificationCopyDoesNotLeak(t *testing.T) {
	s, err := mustStamp(t, "alice", created).Modified("bob", created)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	m, _ := s.Modification()
	m.By = "mallory"

	again, _ := s.Modification()
	if again.By != "bob" {
		t.Errorf("expected stamp to be unaffected by changes to the returned copy, got %q", again.By)
	}
}

func TestStamp_ModifiedRepeatedly(t *testing.T) {
	s := mustStamp(t, "alice", created)
	actors := []string{"bob", "carol", "dave"}

	for i, actor := range actors {
		var err error
		s, err = s.Modified(actor, created.Add(time.Duration(i+1)*time.Minute))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}

	if s.CreatedBy() != "alice" {
		t.Errorf("expected creator to survive modifications, got %q", s.CreatedBy())
	}
	if s.LastTouchedBy() != "dave" {
		t.Errorf("expected last modifier dave, got %q", s.LastTouchedBy())
	}
}

func TestStamp_ModifiedValidation(t *testing.T) {
	s := mustStamp(t, "alice", created)

	testCases := []struct {
		name    string
		by      string
		on      time.Time
		wantErr error
	}{
		{"same instant allowed", "bob", created, nil},
		{"same instant in another offset allowed", "bob", created.UTC(), nil},
		{"later allowed", "bob", created.Add(time.Second), nil},
		{"earlier rejected", "bob", created.Add(-time.Nanosecond), commonerrors.ErrAuditModifiedBeforeCreated},
		{"empty actor rejected", "", created.Add(time.Hour), commonerrors.ErrInvalidAuditActor},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			updated, err := s.Modified(tc.by, tc.on)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				m, ok := updated.Modification()
				if !ok {
					t.Fatal("expected modification to be present")
				}
				if m.On.Before(updated.CreatedOn()) {
					t.Errorf("expected modified on >= created on, got %v < %v", m.On, updated.CreatedOn())
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestRestore(t *testing.T) {
	by := "bob"
	later := created.Add(time.Hour)
	earlier := created.Add(-time.Hour)

	testCases := []struct {
		name         string
		createdOn    time.Time
		modifiedBy   *string
		modifiedOn   *time.Time
		wantErr      error
		wantModified bool
	}{
		{"never modified", created, nil, nil, nil, false},
		{"modified", created, &by, &later, nil, true},
		{"missing modified on", created, &by, nil, commonerrors.ErrAuditIncompleteModification, false},
		{"missing modified by", created, nil, &later, commonerrors.ErrAuditIncompleteModification, false},
		{"modified before created", created, &by, &earlier, commonerrors.ErrAuditModifiedBeforeCreated, false},
		{"missing created on", time.Time{}, nil, nil, commonerrors.ErrAuditMissingCreatedOn, false},
		{"missing created on with modification", time.Time{}, &by, &later, commonerrors.ErrAuditMissingCreatedOn, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Restore("alice", tc.createdOn, tc.modifiedBy, tc.modifiedOn)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Errorf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if s.IsModified() != tc.wantModified {
				t.Errorf("expected modified=%v, got %v", tc.wantModified, s.IsModified())
			}
		})
	}
}

func TestStamp_Equal(t *testing.T) {
	a := mustStamp(t, "alice", created)
	b := mustStamp(t, "alice", created.UTC())

	if !a.Equal(b) {
		t.Error("expected stamps for the same instant to be equal")
	}

	am, _ := a.Modified("bob", created.Add(time.Minute))
	if a.Equal(am) {
		t.Error("expected modified and unmodified stamps to differ")
	}

	bm, _ := b.Modified("bob", created.Add(time.Minute).UTC())
	if !am.Equal(bm) {
		t.Error("expected equally modified stamps to be equal")
	}
}

func TestStamp_IsZero(t *testing.T) {
	var zero Stamp
	if !zero.IsZero() {
		t.Error("expected zero value to report IsZero")
	}
	if mustStamp(t, "alice", created).IsZero() {
		t.Error("expected constructed stamp not to report IsZero")
	}
}

func TestStamp_MarshalJSON_OmitsModificationUntilPresent(t *testing.T) {
	data, err := json.Marshal(mustStamp(t, "alice", created))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	body := string(data)
	if !strings.Contains(body, `"created_on":"2024-03-10T12:00:00+03:00"`) {
		t.Errorf("expected created_on with offset, got %s", body)
	}
	if strings.Contains(body, "modified_by") || strings.Contains(body, "modified_on") {
		t.Errorf("expected modified keys to be omitted, got %s", body)
	}
}

func TestStamp_UnmarshalJSON(t *testing.T) {
	testCases := []struct {
		name         string
		body         string
		wantErr      error
		wantModified bool
	}{
		{
			name: "created only",
			body: `{"created_by":"alice","created_on":"2024-03-10T12:00:00+03:00"}`,
		},
		{
			name:         "modified",
			body:         `{"created_by":"alice","created_on":"2024-03-10T12:00:00+03:00","modified_by":"bob","modified_on":"2024-03-10T10:00:00Z"}`,
			wantModified: true,
		},
		{
			name:    "half present",
			body:    `{"created_by":"alice","created_on":"2024-03-10T12:00:00+03:00","modified_by":"bob"}`,
			wantErr: commonerrors.ErrAuditIncompleteModification,
		},
		{
			name:    "modified before created",
			body:    `{"created_by":"alice","created_on":"2024-03-10T12:00:00+03:00","modified_by":"bob","modified_on":"2024-03-10T08:59:59Z"}`,
			wantErr: commonerrors.ErrAuditModifiedBeforeCreated,
		},
		{
			name:    "missing created on",
			body:    `{"created_by":"alice"}`,
			wantErr: commonerrors.ErrAuditMissingCreatedOn,
		},
		{
			name:    "missing created on with modification",
			body:    `{"created_by":"alice","modified_by":"bob","modified_on":"2024-03-10T10:00:00Z"}`,
			wantErr: commonerrors.ErrAuditMissingCreatedOn,
		},
		{
			name:    "missing creator",
			body:    `{"created_on":"2024-03-10T12:00:00+03:00"}`,
			wantErr: commonerrors.ErrInvalidAuditActor,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var s Stamp
			err := json.Unmarshal([]byte(tc.body), &s)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Errorf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !s.CreatedOn().Equal(created) {
				t.Errorf("expected created on %v, got %v", created, s.CreatedOn())
			}
			if s.IsModified() != tc.wantModified {
				t.Errorf("expected modified=%v, got %v", tc.wantModified, s.IsModified())
			}
		})
	}
}
