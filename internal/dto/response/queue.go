package response

import (
	"time"

	"clubops/internal/data/entity"
)

type QueueResponse struct {
	ID      string               `json:"id"`
	Name    string               `json:"name"`
	StageID string               `json:"stageId"`
	Stage   StageResponse        `json:"stage"`
	Entries []QueueEntryResponse `json:"entries"`
}

type StageResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type QueueEntryResponse struct {
	ID        string                  `json:"id"`
	QueueID   string                  `json:"queueId"`
	Position  int                     `json:"position"`
	SongTitle *string                 `json:"songTitle,omitempty"`
	Artist    *string                 `json:"artist,omitempty"`
	Duration  *int                    `json:"duration,omitempty"`
	Status    entity.QueueEntryStatus `json:"status"`
	CreatedAt time.Time               `json:"createdAt"`
	Dancer    DancerSummary           `json:"dancer"`
}

type DancerSummary struct {
	ID        string `json:"id"`
	StageName string `json:"stageName,omitempty"`
}

type ReorderResponse struct {
	Success bool `json:"success"`
}

func QueueToResponse(queue *entity.DJQueue, stage *entity.Stage, entries []*entity.QueueEntryDetail) QueueResponse {
	resp := QueueResponse{
		ID:      queue.ID.String(),
		Name:    queue.Name,
		StageID: queue.StageID.String(),
		Stage:   StageResponse{ID: queue.StageID.String()},
		Entries: make([]QueueEntryResponse, 0, len(entries)),
	}
	if stage != nil {
		resp.Stage.Name = stage.Name
	}

	for _, e := range entries {
		resp.Entries = append(resp.Entries, QueueEntryToResponse(&e.QueueEntry, e.DancerStageName))
	}

	return resp
}

func QueueEntryToResponse(e *entity.QueueEntry, stageName string) QueueEntryResponse {
	return QueueEntryResponse{
		ID:        e.ID.String(),
		QueueID:   e.QueueID.String(),
		Position:  e.Position,
		SongTitle: e.SongTitle,
		Artist:    e.Artist,
		Duration:  e.Duration,
		Status:    e.Status,
		CreatedAt: e.CreatedAt,
		Dancer: DancerSummary{
			ID:        e.DancerID.String(),
			StageName: stageName,
		},
	}
}
