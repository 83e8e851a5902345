package dto

type BoardCreate struct {
	Name      string `json:"name"`
	ProjectID string `json:"project_id"`
}

type BoardUpdate struct {
	Name *string `json:"name,omitempty"`
}

type BoardResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	ProjectID string     `json:"project_id"`
	CreatedAt *Timestamp `json:"created_at"`
	UpdatedAt *Timestamp `json:"updated_at"`
}

// ColumnCreate always sends wip_limit, null meaning no limit.
type ColumnCreate struct {
	BoardID  string `json:"board_id"`
	Title    string `json:"title"`
	Position int    `json:"position"`
	WIPLimit *int   `json:"wip_limit"`
}

type ColumnUpdate struct {
	Title    *string `json:"title,omitempty"`
	Position *int    `json:"position,omitempty"`
	WIPLimit *int    `json:"wip_limit,omitempty"`
}

type ColumnResponse struct {
	ID        string     `json:"id"`
	BoardID   string     `json:"board_id"`
	Title     string     `json:"title"`
	Position  int        `json:"position"`
	WIPLimit  *int       `json:"wip_limit"`
	CreatedAt *Timestamp `json:"created_at"`
	UpdatedAt *Timestamp `json:"updated_at"`
}
