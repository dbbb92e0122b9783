package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophschedule/internal/cipherx"
	"github.com/dmitrijs2005/gophschedule/internal/client/codec"
	"github.com/dmitrijs2005/gophschedule/internal/client/index"
	"github.com/dmitrijs2005/gophschedule/internal/client/models"
	"github.com/dmitrijs2005/gophschedule/internal/common"
	"github.com/dmitrijs2005/gophschedule/internal/kv"
	"github.com/dmitrijs2005/gophschedule/internal/logging"
	"github.com/google/uuid"
)

// ScheduleService creates records and changes their status. It needs an
// authenticated writer.
type ScheduleService struct {
	reader kv.Reader
	writer kv.Writer
	index  *index.Manager
	cipher cipherx.Cipher
	logger logging.Logger

	now   func() time.Time
	newID func(time.Time) string
}

func NewScheduleService(r kv.Reader, w kv.Writer, idx *index.Manager, c cipherx.Cipher, logger logging.Logger) *ScheduleService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &ScheduleService{
		reader: r,
		writer: w,
		index:  idx,
		cipher: c,
		logger: logger,
		now:    time.Now,
		newID:  NewID,
	}
}

// NewID returns "<unix-millis>-<random>", the random part being the tail of
// a version 7 UUID.
func NewID(now time.Time) string {
	u, err := uuid.NewV7()
	if err != nil {
		u = uuid.New()
	}
	s := u.String()
	return fmt.Sprintf("%d-%s", now.UnixMilli(), s[len(s)-12:])
}

func validate(in models.CreateInput) (models.CreateInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Time = strings.TrimSpace(in.Time)

	switch {
	case in.Title == "":
		return in, fmt.Errorf("%w: title is required", common.ErrInvalidInput)
	case in.Time == "":
		return in, fmt.Errorf("%w: time is required", common.ErrInvalidInput)
	case in.Duration < 0:
		return in, fmt.Errorf("%w: duration must not be negative", common.ErrInvalidInput)
	}

	if in.Category == "" {
		in.Category = models.DefaultCategory
	}
	if !in.Category.Valid() {
		return in, fmt.Errorf("%w: unknown category %q", common.ErrInvalidInput, in.Category)
	}
	return in, nil
}

// Create stores a new pending record and appends its id to the index. When
// the writer supports batches both writes are committed together; otherwise
// a failure after the record write leaves it unindexed.
func (s *ScheduleService) Create(ctx context.Context, in models.CreateInput) (models.ScheduleRecord, error) {
	in, err := validate(in)
	if err != nil {
		return models.ScheduleRecord{}, err
	}
	if s.writer == nil {
		return models.ScheduleRecord{}, common.ErrorUnauthorized
	}

	now := s.now()
	rec := models.ScheduleRecord{
		ID:                s.newID(now),
		Title:             in.Title,
		Time:              in.Time,
		EncryptedDuration: s.cipher.Encode(in.Duration),
		Category:          in.Category,
		CreatedAt:         now.Unix(),
		Status:            models.StatusPending,
	}

	data, err := codec.MarshalRecord(rec)
	if err != nil {
		return models.ScheduleRecord{}, err
	}

	if bw, ok := s.writer.(kv.BatchWriter); ok {
		idx, err := s.index.NextIndex(ctx, rec.ID)
		if err != nil {
			return models.ScheduleRecord{}, err
		}
		err = bw.SetBatch(ctx, []kv.Entry{
			{Key: index.RecordKey(rec.ID), Value: data},
			{Key: index.IndexKey, Value: idx},
		})
		if err != nil {
			return models.ScheduleRecord{}, fmt.Errorf("%w: %w", common.ErrWriteFailed, err)
		}
	} else {
		if err := s.writer.SetData(ctx, index.RecordKey(rec.ID), data); err != nil {
			return models.ScheduleRecord{}, fmt.Errorf("%w: record: %w", common.ErrWriteFailed, err)
		}
		if err := s.index.AppendKey(ctx, rec.ID); err != nil {
			s.logger.Error(ctx, "record written but not indexed", "id", rec.ID, "error", err)
			return models.ScheduleRecord{}, err
		}
	}

	s.logger.Info(ctx, "schedule created", "id", rec.ID, "category", rec.Category)
	return rec, nil
}

// MarkComplete sets the record's status to completed and returns the record
// as stored afterwards. Only the status field is rewritten; fields written
// by other clients survive. It does not check the current status, so
// repeating it is harmless.
func (s *ScheduleService) MarkComplete(ctx context.Context, id string) (models.ScheduleRecord, error) {
	if s.writer == nil {
		return models.ScheduleRecord{}, common.ErrorUnauthorized
	}

	key := index.RecordKey(id)
	data, err := s.reader.GetData(ctx, key)
	if err != nil {
		return models.ScheduleRecord{}, fmt.Errorf("read record: %w", err)
	}

	b, err := codec.WithStatus(id, data, models.StatusCompleted)
	if err != nil {
		return models.ScheduleRecord{}, err
	}
	if b == nil {
		return models.ScheduleRecord{}, fmt.Errorf("%w: record %s", common.ErrorNotFound, id)
	}

	if err := s.writer.SetData(ctx, key, b); err != nil {
		return models.ScheduleRecord{}, fmt.Errorf("%w: record: %w", common.ErrWriteFailed, err)
	}

	rec, err := codec.UnmarshalRecord(id, b)
	if err != nil {
		s.logger.Warn(ctx, "completed record is incomplete", "id", id, "error", err)
		loose := codec.LooseRecord(id, b)
		rec = &loose
	}

	s.logger.Info(ctx, "schedule completed", "id", id)
	return *rec, nil
}
