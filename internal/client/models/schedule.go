// Package models defines the schedule record, its decrypted view and the
// derived dashboard statistics.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Category classifies a schedule item.
type Category string

const (
	CategoryMeeting  Category = "meeting"
	CategoryTask     Category = "task"
	CategoryReminder Category = "reminder"
	CategoryEvent    Category = "event"
)

// DefaultCategory is used when the caller leaves the category empty.
const DefaultCategory = CategoryMeeting

// Categories lists every accepted category in display order.
var Categories = []Category{CategoryMeeting, CategoryTask, CategoryReminder, CategoryEvent}

func (c Category) Valid() bool {
	switch c {
	case CategoryMeeting, CategoryTask, CategoryReminder, CategoryEvent:
		return true
	}
	return false
}

// Status is the lifecycle state of an item.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusMissed    Status = "missed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusMissed:
		return true
	}
	return false
}

// ScheduleRecord is one persisted schedule item. ID is the suffix of the
// store key and is not part of the payload.
type ScheduleRecord struct {
	ID                string   `json:"-"`
	Title             string   `json:"title"`
	Time              string   `json:"time"`
	EncryptedDuration string   `json:"duration"`
	Category          Category `json:"category"`
	CreatedAt         int64    `json:"timestamp"`
	Status            Status   `json:"status"`
}

// timeLayouts are the accepted forms of ScheduleRecord.Time.
var timeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
}

// ScheduledAt parses Time. Layouts without a zone are read in loc.
func (r ScheduleRecord) ScheduledAt(loc *time.Location) (time.Time, bool) {
	s := strings.TrimSpace(r.Time)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// EffectiveStatus reports missed for a pending item whose time has passed.
// The stored status is never rewritten.
func (r ScheduleRecord) EffectiveStatus(now time.Time) Status {
	if r.Status != StatusPending {
		return r.Status
	}
	at, ok := r.ScheduledAt(now.Location())
	if ok && at.Before(now) {
		return StatusMissed
	}
	return StatusPending
}

// CreatedTime returns CreatedAt as a time.Time.
func (r ScheduleRecord) CreatedTime() time.Time {
	return time.Unix(r.CreatedAt, 0)
}

// DecryptedView is the plaintext projection of one record. It lives only in
// process memory.
type DecryptedView struct {
	ID       string
	Title    string
	Time     string
	Duration int64
}

// DurationText renders the duration as "<n> mins".
func (v DecryptedView) DurationText() string {
	return fmt.Sprintf("%d mins", v.Duration)
}

func (v DecryptedView) String() string {
	return fmt.Sprintf("%s @ %s: %s", v.Title, v.Time, v.DurationText())
}

// CreateInput is what a caller supplies to create an item.
type CreateInput struct {
	Title    string
	Time     string
	Duration int64
	Category Category
}

// Stats is the dashboard summary over a snapshot.
type Stats struct {
	Total        int
	Completed    int
	Pending      int
	Missed       int
	Productivity int
}
