package dto

const (
	MinLimit = 1
	MaxLimit = 100
)

// ListQuery is the skip/limit window shared by every list endpoint. A negative
// skip is rejected, limit defaults to 100 when absent and is clamped by Normalize.
// GET /api/games?skip=0&limit=20
type ListQuery struct {
	Skip  int `form:"skip,default=0" binding:"min=0"`
	Limit int `form:"limit,default=100"`
}

// Normalize clamps values for callers that bypass binding (service layer, tests).
func (q ListQuery) Normalize() ListQuery {
	if q.Skip < 0 {
		q.Skip = 0
	}
	if q.Limit < MinLimit {
		q.Limit = MinLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

// GameListQuery adds the free-text search term used by GET /api/games.
type GameListQuery struct {
	ListQuery
	Search string `form:"search"`
}

// ReviewListQuery adds the optional game/author filters used by GET /api/reviews.
type ReviewListQuery struct {
	ListQuery
	GameID *int64 `form:"game_id" binding:"omitempty,min=1"`
	UserID *int64 `form:"user_id" binding:"omitempty,min=1"`
}
