package usecase

import (
	"context"
	"time"

	"clubops/internal/data/entity"
	"clubops/internal/data/repository"
	"clubops/internal/dto/request"
	"clubops/internal/dto/response"
	"clubops/internal/realtime"
	"clubops/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type QueueService interface {
	Read(ctx context.Context, clubID, stageID uuid.UUID) (*response.QueueResponse, error)
	Enqueue(ctx context.Context, clubID, stageID uuid.UUID, req *request.EnqueueRequest) (*response.QueueEntryResponse, error)
	Reorder(ctx context.Context, clubID, stageID uuid.UUID, req *request.ReorderRequest) (*response.ReorderResponse, error)
	Cancel(ctx context.Context, clubID, stageID, entryID uuid.UUID) (*response.QueueEntryResponse, error)
}

// queueEvent is the payload of queue:updated and queue:reordered.
type queueEvent struct {
	StageID string                       `json:"stageId"`
	Action  string                       `json:"action,omitempty"`
	Entry   *response.QueueEntryResponse `json:"entry,omitempty"`
}

type queueService struct {
	repo   *repository.Repository
	events realtime.Broadcaster
	log    *zap.Logger
	now    func() time.Time
}

func NewQueueService(repo *repository.Repository, events realtime.Broadcaster, log *zap.Logger) QueueService {
	return &queueService{
		repo:   repo,
		events: events,
		log:    log.With(zap.String("service", "queue")),
		now:    time.Now,
	}
}

func (s *queueService) Read(ctx context.Context, clubID, stageID uuid.UUID) (*response.QueueResponse, error) {
	queue, err := s.repo.Queue.FindByStage(ctx, clubID, stageID)
	if err != nil {
		return nil, err
	}
	if queue == nil {
		return nil, newError(ErrNotFound, "Queue not found for this stage")
	}

	stage, err := s.repo.Stage.FindByID(ctx, clubID, stageID)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.Queue.ListActiveEntries(ctx, queue.ID)
	if err != nil {
		return nil, err
	}

	resp := response.QueueToResponse(queue, stage, entries)
	return &resp, nil
}

// Enqueue appends behind the highest position ever used in the queue. The
// queue row stays locked until commit, so concurrent enqueues on one stage
// are applied one after another.
func (s *queueService) Enqueue(ctx context.Context, clubID, stageID uuid.UUID, req *request.EnqueueRequest) (*response.QueueEntryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Enqueue validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}
	dancerID := uuid.MustParse(req.DancerID)

	var (
		entry     *entity.QueueEntry
		stageName string
	)
	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		queue, err := tx.Queue.LockByStage(ctx, clubID, stageID)
		if err != nil {
			return err
		}
		if queue == nil {
			return newError(ErrNotFound, "Queue not found for this stage")
		}

		dancer, err := tx.Dancer.FindByID(ctx, clubID, dancerID)
		if err != nil {
			return err
		}
		if dancer == nil {
			return newError(ErrNotFound, "Dancer not found")
		}
		stageName = dancer.StageName

		maxPosition, err := tx.Queue.MaxPosition(ctx, queue.ID)
		if err != nil {
			return err
		}

		now := s.now()
		entry = &entity.QueueEntry{
			Base:      entity.NewBase(now),
			QueueID:   queue.ID,
			DancerID:  dancerID,
			Position:  maxPosition + 1,
			SongTitle: req.SongTitle,
			Artist:    req.Artist,
			Duration:  req.Duration,
			Status:    entity.QueueEntryActive,
		}
		return tx.Queue.CreateEntry(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Dancer added to queue",
		zap.String("stage_id", stageID.String()),
		zap.String("dancer_id", dancerID.String()),
		zap.Int("position", entry.Position))

	resp := response.QueueEntryToResponse(entry, stageName)
	s.events.Emit(clubID, realtime.EventQueueUpdated, queueEvent{
		StageID: stageID.String(),
		Action:  "added",
		Entry:   &resp,
	})

	return &resp, nil
}

// Reorder overwrites every listed position in one transaction. An entry
// outside the stage's queue aborts the batch and nothing is changed.
func (s *queueService) Reorder(ctx context.Context, clubID, stageID uuid.UUID, req *request.ReorderRequest) (*response.ReorderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Reorder validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		queue, err := tx.Queue.LockByStage(ctx, clubID, stageID)
		if err != nil {
			return err
		}
		if queue == nil {
			return newError(ErrNotFound, "Queue not found for this stage")
		}

		for _, item := range req.Entries {
			entryID := uuid.MustParse(item.ID)
			updated, err := tx.Queue.UpdatePosition(ctx, queue.ID, entryID, item.Position)
			if err != nil {
				return err
			}
			if !updated {
				return newError(ErrNotFound, "Queue entry "+item.ID+" not found in this queue")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Queue reordered",
		zap.String("stage_id", stageID.String()),
		zap.Int("entries", len(req.Entries)))

	s.events.Emit(clubID, realtime.EventQueueReordered, queueEvent{StageID: stageID.String()})

	return &response.ReorderResponse{Success: true}, nil
}

func (s *queueService) Cancel(ctx context.Context, clubID, stageID, entryID uuid.UUID) (*response.QueueEntryResponse, error) {
	queue, err := s.repo.Queue.FindByStage(ctx, clubID, stageID)
	if err != nil {
		return nil, err
	}
	if queue == nil {
		return nil, newError(ErrNotFound, "Queue not found for this stage")
	}

	entry, err := s.repo.Queue.CancelEntry(ctx, queue.ID, entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, newError(ErrNotFound, "Queue entry not found or already cancelled")
	}

	s.log.Info("Queue entry cancelled",
		zap.String("stage_id", stageID.String()),
		zap.String("entry_id", entryID.String()))

	resp := response.QueueEntryToResponse(entry, "")
	s.events.Emit(clubID, realtime.EventQueueUpdated, queueEvent{
		StageID: stageID.String(),
		Action:  "cancelled",
		Entry:   &resp,
	})

	return &resp, nil
}
