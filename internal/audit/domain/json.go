package domain

import (
	"encoding/json"
	"time"
)

type stampJSON struct {
	CreatedBy  string     `json:"created_by"`
	CreatedOn  time.Time  `json:"created_on"`
	ModifiedBy *string    `json:"modified_by,omitempty"`
	ModifiedOn *time.Time `json:"modified_on,omitempty"`
}

// MarshalJSON writes RFC 3339 timestamps with their offsets. The modified
// keys are left out until the record has been modified.
func (s Stamp) MarshalJSON() ([]byte, error) {
	out := stampJSON{
		CreatedBy: s.createdBy,
		CreatedOn: s.createdOn,
	}
	if m, ok := s.Modification(); ok {
		out.ModifiedBy = &m.By
		out.ModifiedOn = &m.On
	}
	return json.Marshal(out)
}

// UnmarshalJSON applies the same rules as Restore.
func (s *Stamp) UnmarshalJSON(data []byte) error {
	var in stampJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	restored, err := Restore(in.CreatedBy, in.CreatedOn, in.ModifiedBy, in.ModifiedOn)
	if err != nil {
		return err
	}
	*s = restored
	return nil
}
