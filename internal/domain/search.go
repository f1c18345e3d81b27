package domain

// Search defaults used when the query leaves them out
const (
	DefaultSearchPage  = 1
	DefaultSearchLimit = 12
)

// SearchParams filters GET /activities/search. Empty values are not sent.
type SearchParams struct {
	Page      int    `json:"page" validate:"min=1"`
	Limit     int    `json:"limit" validate:"min=1,max=50"`
	StartDate string `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	City      string `json:"city,omitempty" validate:"omitempty,max=32"`
	District  string `json:"district,omitempty" validate:"omitempty,max=32"`
	Title     string `json:"title,omitempty" validate:"omitempty,max=20"`
	Location  string `json:"location,omitempty" validate:"omitempty,max=20"`
}

// ActivityPage is one page of search results
type ActivityPage struct {
	Items      []Activity `json:"items"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit,omitempty"`
	TotalPages int        `json:"totalPages"`
}
