package services

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/gophschedule/internal/client/models"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	recs := []models.ScheduleRecord{
		{Time: "2025-03-01T10:00", Status: models.StatusCompleted},
		{Time: "2025-03-11T10:00", Status: models.StatusCompleted},
		{Time: "2025-03-11T10:00", Status: models.StatusPending},
		{Time: "2025-03-09T10:00", Status: models.StatusPending},
		{Time: "2025-03-09T10:00", Status: models.StatusMissed},
		{Time: "2025-03-12T10:00", Status: models.StatusPending},
	}

	got := Summarize(recs, now)
	assert.Equal(t, models.Stats{Total: 6, Completed: 2, Pending: 2, Missed: 2, Productivity: 33}, got)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, models.Stats{}, Summarize(nil, time.Now()))
}

func TestSummarize_RoundsToNearest(t *testing.T) {
	recs := []models.ScheduleRecord{
		{Status: models.StatusCompleted},
		{Status: models.StatusPending, Time: "2099-01-01T00:00"},
	}
	recs = append(recs, recs...)
	recs = append(recs, models.ScheduleRecord{Status: models.StatusCompleted}, models.ScheduleRecord{Status: models.StatusCompleted})
	// 4 of 6 completed.
	assert.Equal(t, 67, Summarize(recs, time.Now()).Productivity)
}
