package request

type EnqueueRequest struct {
	DancerID  string  `json:"dancerId" validate:"required,uuid"`
	SongTitle *string `json:"songTitle,omitempty" validate:"omitempty,max=200"`
	Artist    *string `json:"artist,omitempty" validate:"omitempty,max=200"`
	Duration  *int    `json:"duration,omitempty" validate:"omitempty,min=1"`
}

// ReorderRequest assigns new positions. Positions are written as given,
// duplicates, gaps and zero included; only an empty batch is rejected.
type ReorderRequest struct {
	Entries []ReorderItem `json:"entries" validate:"required,min=1,dive"`
}

type ReorderItem struct {
	ID       string `json:"id" validate:"required,uuid"`
	Position int    `json:"position"`
}
