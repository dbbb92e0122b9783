package services

import (
	"math"
	"time"

	"github.com/dmitrijs2005/gophschedule/internal/client/models"
)

// Summarize counts records by their effective status at now. Productivity is
// the completed share in whole percent, 0 for an empty list.
func Summarize(records []models.ScheduleRecord, now time.Time) models.Stats {
	st := models.Stats{Total: len(records)}
	for _, r := range records {
		switch r.EffectiveStatus(now) {
		case models.StatusCompleted:
			st.Completed++
		case models.StatusMissed:
			st.Missed++
		default:
			st.Pending++
		}
	}
	if st.Total > 0 {
		st.Productivity = int(math.Round(float64(st.Completed) / float64(st.Total) * 100))
	}
	return st
}
