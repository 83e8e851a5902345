package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBoard() *KanbanBoard {
	wip := 1
	return &KanbanBoard{
		ID: "brd-1",
		Columns: []KanbanColumn{
			{ID: "c1", Title: "Backlog", Status: StatusBacklog, Tasks: []Task{
				{ID: "t1", Title: "Write docs", Description: "README", Priority: PriorityBaixa, Status: StatusBacklog, ColumnID: "c1"},
				{ID: "t2", Title: "Fix login bug", Priority: PriorityUrgente, Status: StatusBacklog, ColumnID: "c1"},
			}},
			{ID: "c2", Title: "Em Progresso", Status: StatusEmProgresso, WIPLimit: &wip, Tasks: []Task{
				{ID: "t3", Title: "Deploy", Description: "docs site", Priority: PriorityAlta, Status: StatusEmProgresso, ColumnID: "c2"},
			}},
			{ID: "c3", Title: "Concluído", Status: StatusConcluido, Tasks: []Task{}},
		},
	}
}

func TestSortColumnsIsStable(t *testing.T) {
	cols := []KanbanColumn{{ID: "a", Position: 2}, {ID: "b", Position: 0}, {ID: "c", Position: 2}, {ID: "d", Position: 1}}
	SortColumns(cols)

	ids := make([]string, len(cols))
	for i, c := range cols {
		ids[i] = c.ID
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids)
}

func TestCloneIsDeep(t *testing.T) {
	b := sampleBoard()
	clone := b.Clone()

	assert.Equal(t, b, clone)
	clone.Columns[0].Tasks[0].Title = "changed"
	clone.Columns[0].Title = "changed"
	assert.Equal(t, "Write docs", b.Columns[0].Tasks[0].Title)
	assert.Equal(t, "Backlog", b.Columns[0].Title)

	var nilBoard *KanbanBoard
	assert.Nil(t, nilBoard.Clone())
}

func TestWithTaskMoved(t *testing.T) {
	b := sampleBoard()
	target := b.Columns[2]

	moved := b.WithTaskMoved("t1", target)

	require.NotSame(t, b, moved)
	assert.Len(t, moved.Columns[0].Tasks, 1)
	assert.Equal(t, "t2", moved.Columns[0].Tasks[0].ID)
	require.Len(t, moved.Columns[2].Tasks, 1)
	got := moved.Columns[2].Tasks[0]
	assert.Equal(t, "t1", got.ID)
	assert.Equal(t, StatusConcluido, got.Status)
	assert.Equal(t, "c3", got.ColumnID)

	// original untouched
	assert.Len(t, b.Columns[0].Tasks, 2)
	assert.Empty(t, b.Columns[2].Tasks)

	assert.Same(t, b, b.WithTaskMoved("missing", target))
}

func TestWithTaskMovedAppendsAtEnd(t *testing.T) {
	b := sampleBoard()

	moved := b.WithTaskMoved("t1", b.Columns[1])

	require.Len(t, moved.Columns[1].Tasks, 2)
	assert.Equal(t, "t3", moved.Columns[1].Tasks[0].ID)
	assert.Equal(t, "t1", moved.Columns[1].Tasks[1].ID)
	assert.True(t, moved.Columns[1].OverWIP())
	assert.False(t, b.Columns[1].OverWIP())
}

func TestWithoutTask(t *testing.T) {
	b := sampleBoard()

	out := b.WithoutTask("t3")

	_, found := out.FindTask("t3")
	assert.False(t, found)
	assert.Equal(t, b.Columns[0].Tasks, out.Columns[0].Tasks)
	assert.Empty(t, out.Columns[1].Tasks)
	assert.Len(t, b.Columns[1].Tasks, 1)
}

func TestBoardLookups(t *testing.T) {
	b := sampleBoard()

	assert.Len(t, b.AllTasks(), 3)
	col, ok := b.ColumnByStatus(StatusEmProgresso)
	assert.True(t, ok)
	assert.Equal(t, "c2", col.ID)
	_, ok = b.ColumnByStatus(StatusAFazer)
	assert.False(t, ok)
	assert.Equal(t, []string{"Backlog", "Em Progresso", "Concluído"}, b.ColumnTitles())
}

func TestFiltered(t *testing.T) {
	b := sampleBoard()

	tests := []struct {
		name   string
		filter TaskFilter
		want   []string
	}{
		{"no filter", TaskFilter{}, []string{"t1", "t2", "t3"}},
		{"all priorities", TaskFilter{Priority: "all"}, []string{"t1", "t2", "t3"}},
		{"query matches title case-insensitively", TaskFilter{Query: "LOGIN"}, []string{"t2"}},
		{"query matches description", TaskFilter{Query: "docs"}, []string{"t1", "t3"}},
		{"priority", TaskFilter{Priority: PriorityAlta}, []string{"t3"}},
		{"query and priority", TaskFilter{Query: "docs", Priority: PriorityBaixa}, []string{"t1"}},
		{"nothing", TaskFilter{Query: "zzz"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := b.Filtered(tt.filter)
			var ids []string
			for _, task := range out.AllTasks() {
				ids = append(ids, task.ID)
			}
			assert.Equal(t, tt.want, ids)
			assert.Len(t, out.Columns, 3)
		})
	}
	assert.Len(t, b.AllTasks(), 3)
}

func TestEnums(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, s.Valid())
	}
	assert.False(t, ColumnStatus("done").Valid())
	assert.Equal(t, "Concluído", StatusConcluido.Title())

	for _, p := range Priorities {
		assert.True(t, p.Valid())
	}
	assert.False(t, Priority("high").Valid())
	assert.Equal(t, "Média", PriorityMedia.Label())
}
