package dto

// APIPriority is the three-level priority the API stores.
type APIPriority string

const (
	APIPriorityLow    APIPriority = "low"
	APIPriorityMedium APIPriority = "medium"
	APIPriorityHigh   APIPriority = "high"
)

type TaskCreate struct {
	Title       string      `json:"title"`
	Description *string     `json:"description"`
	Priority    APIPriority `json:"priority"`
	DueDate     *Timestamp  `json:"due_date"`
	ColumnID    string      `json:"column_id"`
	AssigneeID  *string     `json:"assignee_id"`
}

type TaskUpdate struct {
	Title       *string      `json:"title,omitempty"`
	Description *string      `json:"description,omitempty"`
	Priority    *APIPriority `json:"priority,omitempty"`
	DueDate     *Timestamp   `json:"due_date,omitempty"`
	AssigneeID  *string      `json:"assignee_id,omitempty"`
}

// TaskMove relocates a task to a column at a position.
type TaskMove struct {
	ColumnID string `json:"column_id"`
	Position int    `json:"position"`
}

type TaskResponse struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description *string     `json:"description"`
	Priority    APIPriority `json:"priority"`
	DueDate     *Timestamp  `json:"due_date"`
	Position    int         `json:"position"`
	ColumnID    string      `json:"column_id"`
	AssigneeID  *string     `json:"assignee_id"`
	CreatedBy   string      `json:"created_by"`
	CreatedAt   *Timestamp  `json:"created_at"`
	UpdatedAt   *Timestamp  `json:"updated_at"`
}

// TaskListFilter holds the query filters of GET /tasks. Empty fields are not
// sent.
type TaskListFilter struct {
	ColumnID   string
	Priority   APIPriority
	AssigneeID string
	Skip       int
	Limit      int
}
