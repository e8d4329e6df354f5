package usecase

import (
	"context"
	"testing"
	"time"

	"clubops/internal/data/entity"
	"clubops/internal/dto/request"
	"clubops/internal/realtime"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newQueueFixture(t *testing.T) (pgxmock.PgxPoolIface, *queueService, *eventRecorder, *entity.DJQueue) {
	mock, repo := newMockRepo(t)
	events := &eventRecorder{}

	svc := NewQueueService(repo, events, zap.NewNop()).(*queueService)
	svc.now = func() time.Time { return fixedNow }

	queue := &entity.DJQueue{
		Base:    entity.Base{ID: uuid.New()},
		ClubID:  uuid.New(),
		StageID: uuid.New(),
		Name:    "Main Stage Queue",
	}
	return mock, svc, events, queue
}

func TestEnqueueAssignsIncreasingPositions(t *testing.T) {
	mock, svc, events, queue := newQueueFixture(t)
	ctx := context.Background()

	dancer := &entity.Dancer{Base: entity.Base{ID: uuid.New()}, ClubID: queue.ClubID, StageName: "Aria"}

	for position := 1; position <= 3; position++ {
		insertArgs := anyArgs(10)
		insertArgs[3] = position

		mock.ExpectBegin()
		mock.ExpectQuery("FROM dj_queues").
			WithArgs(queue.StageID, queue.ClubID).
			WillReturnRows(queueRows(queue))
		mock.ExpectQuery("FROM dancers").
			WithArgs(dancer.ID, queue.ClubID).
			WillReturnRows(dancerRows(dancer))
		mock.ExpectQuery("MAX").
			WithArgs(queue.ID).
			WillReturnRows(pgxmock.NewRows([]string{"max"}).AddRow(position - 1))
		mock.ExpectExec("INSERT INTO queue_entries").
			WithArgs(insertArgs...).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()
	}

	for want := 1; want <= 3; want++ {
		entry, err := svc.Enqueue(ctx, queue.ClubID, queue.StageID, &request.EnqueueRequest{
			DancerID: dancer.ID.String(),
		})
		require.NoError(t, err)
		assert.Equal(t, want, entry.Position)
		assert.Equal(t, "Aria", entry.Dancer.StageName)
		assert.Equal(t, entity.QueueEntryActive, entry.Status)
	}

	require.NoError(t, mock.ExpectationsWereMet())

	recorded := events.Events()
	require.Len(t, recorded, 3)
	for _, e := range recorded {
		assert.Equal(t, realtime.EventQueueUpdated, e.Event)
		assert.Equal(t, queue.ClubID, e.ClubID)
		assert.Equal(t, "added", e.Data.(queueEvent).Action)
	}
}

func TestEnqueueUnknownQueue(t *testing.T) {
	mock, svc, events, queue := newQueueFixture(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM dj_queues").
		WithArgs(queue.StageID, queue.ClubID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "club_id", "stage_id", "name", "created_at", "updated_at"}))
	mock.ExpectRollback()

	_, err := svc.Enqueue(context.Background(), queue.ClubID, queue.StageID, &request.EnqueueRequest{
		DancerID: uuid.NewString(),
	})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, events.Events())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnqueueRejectsInvalidBody(t *testing.T) {
	mock, svc, _, queue := newQueueFixture(t)

	_, err := svc.Enqueue(context.Background(), queue.ClubID, queue.StageID, &request.EnqueueRequest{
		DancerID: "not-a-uuid",
	})

	assert.ErrorIs(t, err, ErrValidation)
	var detail *DetailError
	require.ErrorAs(t, err, &detail)
	assert.Contains(t, detail.Fields, "dancerId")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReorderRollsBackWhenAnEntryIsMissing(t *testing.T) {
	mock, svc, events, queue := newQueueFixture(t)

	first, second := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM dj_queues").
		WithArgs(queue.StageID, queue.ClubID).
		WillReturnRows(queueRows(queue))
	mock.ExpectExec("UPDATE queue_entries").
		WithArgs(first, queue.ID, 2).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE queue_entries").
		WithArgs(second, queue.ID, 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	_, err := svc.Reorder(context.Background(), queue.ClubID, queue.StageID, &request.ReorderRequest{
		Entries: []request.ReorderItem{
			{ID: first.String(), Position: 2},
			{ID: second.String(), Position: 1},
		},
	})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, events.Events())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReorderSwapsPositions(t *testing.T) {
	mock, svc, events, queue := newQueueFixture(t)

	a, b := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM dj_queues").
		WithArgs(queue.StageID, queue.ClubID).
		WillReturnRows(queueRows(queue))
	mock.ExpectExec("UPDATE queue_entries").
		WithArgs(a, queue.ID, 2).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE queue_entries").
		WithArgs(b, queue.ID, 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	resp, err := svc.Reorder(context.Background(), queue.ClubID, queue.StageID, &request.ReorderRequest{
		Entries: []request.ReorderItem{
			{ID: a.String(), Position: 2},
			{ID: b.String(), Position: 1},
		},
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.Len(t, events.Events(), 1)
	assert.Equal(t, realtime.EventQueueReordered, events.Events()[0].Event)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReorderWritesPositionsAsGiven(t *testing.T) {
	mock, svc, _, queue := newQueueFixture(t)

	a, b := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM dj_queues").
		WithArgs(queue.StageID, queue.ClubID).
		WillReturnRows(queueRows(queue))
	mock.ExpectExec("UPDATE queue_entries").
		WithArgs(a, queue.ID, 0).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE queue_entries").
		WithArgs(b, queue.ID, 0).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	resp, err := svc.Reorder(context.Background(), queue.ClubID, queue.StageID, &request.ReorderRequest{
		Entries: []request.ReorderItem{
			{ID: a.String(), Position: 0},
			{ID: b.String(), Position: 0},
		},
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReorderRequiresEntries(t *testing.T) {
	_, svc, _, queue := newQueueFixture(t)

	_, err := svc.Reorder(context.Background(), queue.ClubID, queue.StageID, &request.ReorderRequest{})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestReadReturnsEntriesInPositionOrder(t *testing.T) {
	mock, svc, _, queue := newQueueFixture(t)

	entryCols := []string{
		"id", "queue_id", "dancer_id", "position", "song_title", "artist",
		"duration", "status", "created_at", "updated_at", "stage_name",
	}
	song := "Crazy"

	mock.ExpectQuery("FROM dj_queues").
		WithArgs(queue.StageID, queue.ClubID).
		WillReturnRows(queueRows(queue))
	mock.ExpectQuery("FROM stages").
		WithArgs(queue.StageID, queue.ClubID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "club_id", "name", "description", "max_capacity", "created_at"}).
			AddRow(queue.StageID, queue.ClubID, "Main Stage", nil, nil, fixedNow))
	mock.ExpectQuery("FROM queue_entries").
		WithArgs(queue.ID).
		WillReturnRows(pgxmock.NewRows(entryCols).
			AddRow(uuid.New(), queue.ID, uuid.New(), 1, &song, nil, nil, entity.QueueEntryActive, fixedNow, fixedNow, "Bella").
			AddRow(uuid.New(), queue.ID, uuid.New(), 2, nil, nil, nil, entity.QueueEntryActive, fixedNow, fixedNow, "Aria"))

	resp, err := svc.Read(context.Background(), queue.ClubID, queue.StageID)

	require.NoError(t, err)
	assert.Equal(t, "Main Stage", resp.Stage.Name)
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, "Bella", resp.Entries[0].Dancer.StageName)
	assert.Equal(t, "Aria", resp.Entries[1].Dancer.StageName)
	assert.Less(t, resp.Entries[0].Position, resp.Entries[1].Position)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReadUnknownStage(t *testing.T) {
	mock, svc, _, queue := newQueueFixture(t)

	mock.ExpectQuery("FROM dj_queues").
		WithArgs(queue.StageID, queue.ClubID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "club_id", "stage_id", "name", "created_at", "updated_at"}))

	_, err := svc.Read(context.Background(), queue.ClubID, queue.StageID)

	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelEntry(t *testing.T) {
	mock, svc, events, queue := newQueueFixture(t)
	entryID := uuid.New()

	mock.ExpectQuery("FROM dj_queues").
		WithArgs(queue.StageID, queue.ClubID).
		WillReturnRows(queueRows(queue))
	mock.ExpectQuery("UPDATE queue_entries").
		WithArgs(entryID, queue.ID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "queue_id", "dancer_id", "position", "song_title", "artist",
			"duration", "status", "created_at", "updated_at",
		}).AddRow(entryID, queue.ID, uuid.New(), 4, nil, nil, nil, entity.QueueEntryCancelled, fixedNow, fixedNow))

	resp, err := svc.Cancel(context.Background(), queue.ClubID, queue.StageID, entryID)

	require.NoError(t, err)
	assert.Equal(t, entity.QueueEntryCancelled, resp.Status)
	require.Len(t, events.Events(), 1)
	assert.Equal(t, "cancelled", events.Events()[0].Data.(queueEvent).Action)
	require.NoError(t, mock.ExpectationsWereMet())
}
