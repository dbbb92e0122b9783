// Package codec converts schedule records and the schedule index to and from
// their stored JSON form.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/gophschedule/internal/client/models"
	"github.com/dmitrijs2005/gophschedule/internal/common"
)

// storedRecord mirrors the payload with pointers so missing fields can be
// told apart from zero values.
type storedRecord struct {
	Title     *string `json:"title"`
	Time      *string `json:"time"`
	Duration  *string `json:"duration"`
	Category  string  `json:"category"`
	Timestamp *int64  `json:"timestamp"`
	Status    string  `json:"status"`
}

// MarshalRecord encodes r. ID is not written.
func MarshalRecord(r models.ScheduleRecord) ([]byte, error) {
	if r.Status == "" {
		r.Status = models.StatusPending
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode record %s: %w", r.ID, err)
	}
	return b, nil
}

// UnmarshalRecord decodes the payload stored for id. Empty input means the
// record is absent and yields (nil, nil). Bad JSON or a wrong shape yields
// common.ErrMalformedRecord.
func UnmarshalRecord(id string, data []byte) (*models.ScheduleRecord, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var s storedRecord
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrMalformedRecord, id, err)
	}

	switch {
	case s.Title == nil:
		return nil, fmt.Errorf("%w: %s: missing title", common.ErrMalformedRecord, id)
	case s.Duration == nil:
		return nil, fmt.Errorf("%w: %s: missing duration", common.ErrMalformedRecord, id)
	case s.Timestamp == nil:
		return nil, fmt.Errorf("%w: %s: missing timestamp", common.ErrMalformedRecord, id)
	}

	category := models.Category(s.Category)
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %s: unknown category %q", common.ErrMalformedRecord, id, s.Category)
	}

	status := models.StatusPending
	if s.Status != "" {
		status = models.Status(s.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: %s: unknown status %q", common.ErrMalformedRecord, id, s.Status)
		}
	}

	r := &models.ScheduleRecord{
		ID:                id,
		Title:             *s.Title,
		EncryptedDuration: *s.Duration,
		Category:          category,
		CreatedAt:         *s.Timestamp,
		Status:            status,
	}
	if s.Time != nil {
		r.Time = *s.Time
	}
	return r, nil
}

// WithStatus returns data with its "status" field set to st. Every other
// field, including ones this package does not know about, is written back
// exactly as stored. Empty input yields (nil, nil); anything that is not a
// JSON object yields common.ErrMalformedRecord.
func WithStatus(id string, data []byte, st models.Status) ([]byte, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrMalformedRecord, id, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: %s: not an object", common.ErrMalformedRecord, id)
	}

	v, err := json.Marshal(string(st))
	if err != nil {
		return nil, fmt.Errorf("encode status %s: %w", id, err)
	}
	fields["status"] = v

	b, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode record %s: %w", id, err)
	}
	return b, nil
}

// LooseRecord decodes whatever known fields data carries without requiring
// any of them. Fields of the wrong type are left zero.
func LooseRecord(id string, data []byte) models.ScheduleRecord {
	r := models.ScheduleRecord{ID: id}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return r
	}
	pick := func(name string, dst any) {
		if raw, ok := fields[name]; ok {
			_ = json.Unmarshal(raw, dst)
		}
	}
	var category, status string
	pick("title", &r.Title)
	pick("time", &r.Time)
	pick("duration", &r.EncryptedDuration)
	pick("category", &category)
	pick("timestamp", &r.CreatedAt)
	pick("status", &status)
	r.Category = models.Category(category)
	r.Status = models.Status(status)
	return r
}

// MarshalKeys encodes the index. A nil slice is written as [].
func MarshalKeys(keys []string) ([]byte, error) {
	if keys == nil {
		keys = []string{}
	}
	return json.Marshal(keys)
}

// UnmarshalKeys decodes the index. Empty input is an empty index; anything
// that is not a JSON array of strings yields common.ErrMalformedIndex.
func UnmarshalKeys(data []byte) ([]string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []string{}, nil
	}

	var keys []string
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedIndex, err)
	}
	if keys == nil {
		return nil, fmt.Errorf("%w: not an array", common.ErrMalformedIndex)
	}
	return keys, nil
}
