package services

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/dmitrijs2005/gophschedule/internal/batchx"
	"github.com/dmitrijs2005/gophschedule/internal/client/codec"
	"github.com/dmitrijs2005/gophschedule/internal/client/index"
	"github.com/dmitrijs2005/gophschedule/internal/client/models"
	"github.com/dmitrijs2005/gophschedule/internal/common"
	"github.com/dmitrijs2005/gophschedule/internal/kv"
	"github.com/dmitrijs2005/gophschedule/internal/logging"
)

// SyncService keeps the local snapshot of schedule records in step with the
// store. The snapshot is replaced atomically after each successful refresh.
type SyncService struct {
	reader      kv.Reader
	index       *index.Manager
	logger      logging.Logger
	concurrency int

	snapshot atomic.Pointer[[]models.ScheduleRecord]
}

func NewSyncService(r kv.Reader, idx *index.Manager, logger logging.Logger, concurrency int) *SyncService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &SyncService{reader: r, index: idx, logger: logger, concurrency: concurrency}
}

// Refresh rebuilds the snapshot from the store, newest first. Records that
// cannot be read or parsed are logged and left out. If the store is
// unavailable the previous snapshot is returned with common.ErrUnavailable.
func (s *SyncService) Refresh(ctx context.Context) ([]models.ScheduleRecord, error) {
	ok, err := s.reader.IsAvailable(ctx)
	if err != nil || !ok {
		s.logger.Warn(ctx, "store unavailable, keeping previous snapshot", "error", err)
		if err != nil {
			return s.Snapshot(), fmt.Errorf("%w: %w", common.ErrUnavailable, err)
		}
		return s.Snapshot(), common.ErrUnavailable
	}

	ids, err := s.index.LoadKeys(ctx)
	if err != nil {
		return s.Snapshot(), err
	}

	res, err := batchx.Collect(ctx, ids, s.concurrency, s.fetch)
	if err != nil {
		return s.Snapshot(), err
	}
	for _, f := range res.Failures {
		s.logger.Warn(ctx, "skipping schedule record", "id", f.Key, "error", f.Err)
	}

	records := res.Items
	slices.SortStableFunc(records, func(a, b models.ScheduleRecord) int {
		switch {
		case a.CreatedAt > b.CreatedAt:
			return -1
		case a.CreatedAt < b.CreatedAt:
			return 1
		}
		return 0
	})

	s.snapshot.Store(&records)
	s.logger.Debug(ctx, "refresh finished", "records", len(records), "skipped", len(res.Failures))

	return slices.Clone(records), nil
}

func (s *SyncService) fetch(ctx context.Context, id string) (models.ScheduleRecord, error) {
	data, err := s.reader.GetData(ctx, index.RecordKey(id))
	if err != nil {
		return models.ScheduleRecord{}, fmt.Errorf("read record: %w", err)
	}

	rec, err := codec.UnmarshalRecord(id, data)
	if err != nil {
		return models.ScheduleRecord{}, err
	}
	if rec == nil {
		return models.ScheduleRecord{}, fmt.Errorf("%w: record %s", common.ErrorNotFound, id)
	}
	return *rec, nil
}

// Snapshot returns a copy of the last refreshed records.
func (s *SyncService) Snapshot() []models.ScheduleRecord {
	p := s.snapshot.Load()
	if p == nil {
		return []models.ScheduleRecord{}
	}
	return slices.Clone(*p)
}

// Find looks id up in the current snapshot.
func (s *SyncService) Find(id string) (models.ScheduleRecord, bool) {
	p := s.snapshot.Load()
	if p == nil {
		return models.ScheduleRecord{}, false
	}
	for _, r := range *p {
		if r.ID == id {
			return r, true
		}
	}
	return models.ScheduleRecord{}, false
}
