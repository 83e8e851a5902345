// Package testutil provides an in-memory implementation of the board REST API
// for tests.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-web/internal/dto"
)

// InterceptFunc runs before the fake handles a request. Returning true means
// the interceptor has written a response and the fake must not.
type InterceptFunc func(c *gin.Context) bool

// Fail returns an interceptor answering status with detail.
func Fail(status int, detail string) InterceptFunc {
	return func(c *gin.Context) bool {
		c.JSON(status, gin.H{"detail": detail})
		return true
	}
}

// Block returns an interceptor that signals arrived and waits for release
// before letting the fake handle the request.
func Block(arrived chan<- struct{}, release <-chan struct{}) InterceptFunc {
	return func(c *gin.Context) bool {
		arrived <- struct{}{}
		<-release
		return false
	}
}

type fakeUser struct {
	user     dto.UserResponse
	password string
}

// FakeAPI serves the /api endpoints from memory. Ids are deterministic
// (prj-1, brd-1, col-1, tsk-1, ...) and timestamps advance one second per
// write from a fixed epoch.
type FakeAPI struct {
	server *httptest.Server

	mu         sync.Mutex
	seq        map[string]int
	clock      time.Time
	users      map[string]*fakeUser
	access     map[string]string
	refresh    map[string]string
	projects   []dto.ProjectResponse
	boards     []dto.BoardResponse
	columns    []dto.ColumnResponse
	tasks      []dto.TaskResponse
	calls      map[string]int
	intercepts map[string]InterceptFunc
}

// NewFakeAPI starts a FakeAPI that is closed when the test ends.
func NewFakeAPI(t testing.TB) *FakeAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &FakeAPI{
		seq:        make(map[string]int),
		clock:      time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		users:      make(map[string]*fakeUser),
		access:     make(map[string]string),
		refresh:    make(map[string]string),
		calls:      make(map[string]int),
		intercepts: make(map[string]InterceptFunc),
	}
	f.server = httptest.NewServer(f.routes())
	t.Cleanup(f.server.Close)
	return f
}

// URL is the base URL to hand to repository.NewClient.
func (f *FakeAPI) URL() string {
	return f.server.URL
}

// Intercept installs fn for method and route, a gin pattern relative to /api
// such as "/tasks/:id/move". A nil fn removes the interceptor.
func (f *FakeAPI) Intercept(method, route string, fn InterceptFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := method + " " + route
	if fn == nil {
		delete(f.intercepts, key)
		return
	}
	f.intercepts[key] = fn
}

// Calls reports how many requests reached method and route.
func (f *FakeAPI) Calls(method, route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method+" "+route]
}

// TotalCalls reports the number of requests received on any route.
func (f *FakeAPI) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

// ResetCalls zeroes the call counters.
func (f *FakeAPI) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = make(map[string]int)
}

// SeedUser registers a user and returns an access token for it.
func (f *FakeAPI) SeedUser(username, password string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.addUser(dto.UserCreate{Username: username, Email: username + "@example.com", Password: password})
	access, _ := f.issueTokens(u.user.Username)
	return access
}

func (f *FakeAPI) SeedProject(name string) dto.ProjectResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addProject(dto.ProjectCreate{Name: name}, "usr-0")
}

func (f *FakeAPI) SeedBoard(projectID, name string) dto.BoardResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addBoard(dto.BoardCreate{Name: name, ProjectID: projectID})
}

func (f *FakeAPI) SeedColumn(boardID, title string, position int, wipLimit *int) dto.ColumnResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addColumn(dto.ColumnCreate{BoardID: boardID, Title: title, Position: position, WIPLimit: wipLimit})
}

// SeedTask adds a task at the end of column.
func (f *FakeAPI) SeedTask(columnID, title string, priority dto.APIPriority) dto.TaskResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addTask(dto.TaskCreate{Title: title, Priority: priority, ColumnID: columnID}, "usr-0")
}

// SeedBoardWithDefaults creates a project with a board holding the four
// standard columns and returns them.
func (f *FakeAPI) SeedBoardWithDefaults(name string) (dto.ProjectResponse, dto.BoardResponse, []dto.ColumnResponse) {
	p := f.SeedProject(name)
	b := f.SeedBoard(p.ID, name+" - Board Principal")
	five, three := 5, 3
	cols := []dto.ColumnResponse{
		f.SeedColumn(b.ID, "Backlog", 0, nil),
		f.SeedColumn(b.ID, "A Fazer", 1, &five),
		f.SeedColumn(b.ID, "Em Progresso", 2, &three),
		f.SeedColumn(b.ID, "Concluído", 3, nil),
	}
	return p, b, cols
}

// Columns returns the stored columns of board.
func (f *FakeAPI) Columns(boardID string) []dto.ColumnResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.columnsOf(boardID)
}

// Boards returns the stored boards of project.
func (f *FakeAPI) Boards(projectID string) []dto.BoardResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []dto.BoardResponse
	for _, b := range f.boards {
		if b.ProjectID == projectID {
			out = append(out, b)
		}
	}
	return out
}

// Task returns a stored task.
func (f *FakeAPI) Task(id string) (dto.TaskResponse, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.taskIndex(id)
	if i < 0 {
		return dto.TaskResponse{}, false
	}
	return f.tasks[i], true
}

func (f *FakeAPI) routes() *gin.Engine {
	r := gin.New()
	api := r.Group("/api", f.track)

	api.POST("/auth/register", f.register)
	api.POST("/auth/login", f.login)
	api.POST("/auth/refresh", f.refreshTokens)

	authed := api.Group("", f.requireUser)
	authed.GET("/auth/me", f.me)

	authed.GET("/projects", f.listProjects)
	authed.POST("/projects", f.createProject)
	authed.GET("/projects/:id", f.getProject)
	authed.PUT("/projects/:id", f.updateProject)
	authed.DELETE("/projects/:id", f.deleteProject)

	authed.GET("/boards", f.listBoards)
	authed.GET("/boards/project/:project_id", f.listBoardsByProject)
	authed.POST("/boards", f.createBoard)
	authed.GET("/boards/:id", f.getBoard)
	authed.PUT("/boards/:id", f.updateBoard)
	authed.DELETE("/boards/:id", f.deleteBoard)

	authed.GET("/columns", f.listColumns)
	authed.GET("/columns/board/:board_id", f.listColumnsByBoard)
	authed.POST("/columns", f.createColumn)
	authed.GET("/columns/:id", f.getColumn)
	authed.PUT("/columns/:id", f.updateColumn)
	authed.DELETE("/columns/:id", f.deleteColumn)

	authed.GET("/tasks", f.listTasks)
	authed.POST("/tasks", f.createTask)
	authed.GET("/tasks/:id", f.getTask)
	authed.PUT("/tasks/:id", f.updateTask)
	authed.PATCH("/tasks/:id/move", f.moveTask)
	authed.DELETE("/tasks/:id", f.deleteTask)

	return r
}

func (f *FakeAPI) track(c *gin.Context) {
	key := c.Request.Method + " " + strings.TrimPrefix(c.FullPath(), "/api")

	f.mu.Lock()
	f.calls[key]++
	fn := f.intercepts[key]
	f.mu.Unlock()

	if fn != nil && fn(c) {
		c.Abort()
		return
	}
	c.Next()
}

func (f *FakeAPI) requireUser(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

	f.mu.Lock()
	username, ok := f.access[token]
	f.mu.Unlock()

	if token == "" || !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
		return
	}
	c.Set("username", username)
	c.Next()
}

func detail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"detail": msg})
}

func (f *FakeAPI) nextID(prefix string) string {
	f.seq[prefix]++
	return fmt.Sprintf("%s-%d", prefix, f.seq[prefix])
}

func (f *FakeAPI) now() *dto.Timestamp {
	f.clock = f.clock.Add(time.Second)
	return dto.NewTimestamp(f.clock)
}

func (f *FakeAPI) addUser(in dto.UserCreate) *fakeUser {
	ts := f.now()
	u := &fakeUser{
		user: dto.UserResponse{
			ID:        f.nextID("usr"),
			Username:  in.Username,
			Email:     in.Email,
			FullName:  in.FullName,
			IsActive:  true,
			CreatedAt: ts,
			UpdatedAt: ts,
		},
		password: in.Password,
	}
	f.users[in.Username] = u
	return u
}

func (f *FakeAPI) issueTokens(username string) (string, string) {
	access := f.nextID("access")
	refresh := f.nextID("refresh")
	f.access[access] = username
	f.refresh[refresh] = username
	return access, refresh
}

func (f *FakeAPI) register(c *gin.Context) {
	var in dto.UserCreate
	if err := c.ShouldBindJSON(&in); err != nil || in.Username == "" || in.Password == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []gin.H{
			{"loc": []string{"body", "username"}, "msg": "field required"},
		}})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[in.Username]; exists {
		detail(c, http.StatusBadRequest, "Username already registered")
		return
	}
	u := f.addUser(in)
	c.JSON(http.StatusCreated, u.user)
}

func (f *FakeAPI) login(c *gin.Context) {
	var in dto.UserLogin
	if err := c.ShouldBindJSON(&in); err != nil {
		detail(c, http.StatusBadRequest, "invalid body")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[in.Username]
	if !ok || u.password != in.Password {
		detail(c, http.StatusUnauthorized, "Incorrect username or password")
		return
	}
	access, refresh := f.issueTokens(in.Username)
	c.JSON(http.StatusOK, dto.Token{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"})
}

func (f *FakeAPI) refreshTokens(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

	f.mu.Lock()
	defer f.mu.Unlock()
	username, ok := f.refresh[token]
	if !ok {
		detail(c, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	delete(f.refresh, token)
	access, refresh := f.issueTokens(username)
	c.JSON(http.StatusOK, dto.Token{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"})
}

func (f *FakeAPI) me(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[c.GetString("username")]
	if !ok {
		detail(c, http.StatusNotFound, "User not found")
		return
	}
	c.JSON(http.StatusOK, u.user)
}

func (f *FakeAPI) currentUserID(c *gin.Context) string {
	if u, ok := f.users[c.GetString("username")]; ok {
		return u.user.ID
	}
	return "usr-0"
}

func window[T any](c *gin.Context, items []T) []T {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if skip > len(items) {
		skip = len(items)
	}
	items = items[skip:]
	if limit >= 0 && limit < len(items) {
		items = items[:limit]
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}

// Projects

func (f *FakeAPI) addProject(in dto.ProjectCreate, ownerID string) dto.ProjectResponse {
	ts := f.now()
	p := dto.ProjectResponse{
		ID:          f.nextID("prj"),
		Name:        in.Name,
		Description: in.Description,
		OwnerID:     ownerID,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	f.projects = append(f.projects, p)
	return p
}

func (f *FakeAPI) projectIndex(id string) int {
	for i, p := range f.projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (f *FakeAPI) listProjects(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.JSON(http.StatusOK, window(c, f.projects))
}

func (f *FakeAPI) createProject(c *gin.Context) {
	var in dto.ProjectCreate
	if err := c.ShouldBindJSON(&in); err != nil || in.Name == "" {
		detail(c, http.StatusBadRequest, "name is required")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	c.JSON(http.StatusCreated, f.addProject(in, f.currentUserID(c)))
}

func (f *FakeAPI) getProject(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.projectIndex(c.Param("id"))
	if i < 0 {
		detail(c, http.StatusNotFound, "Project not found")
		return
	}
	c.JSON(http.StatusOK, f.projects[i])
}

func (f *FakeAPI) updateProject(c *gin.Context) {
	var in dto.ProjectUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		detail(c, http.StatusBadRequest, "invalid body")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.projectIndex(c.Param("id"))
	if i < 0 {
		detail(c, http.StatusNotFound, "Project not found")
		return
	}
	if in.Name != nil {
		f.projects[i].Name = *in.Name
	}
	if in.Description != nil {
		f.projects[i].Description = in.Description
	}
	f.projects[i].UpdatedAt = f.now()
	c.JSON(http.StatusOK, f.projects[i])
}

func (f *FakeAPI) deleteProject(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := c.Param("id")
	i := f.projectIndex(id)
	if i < 0 {
		detail(c, http.StatusNotFound, "Project not found")
		return
	}
	f.projects = append(f.projects[:i], f.projects[i+1:]...)

	var kept []dto.BoardResponse
	for _, b := range f.boards {
		if b.ProjectID == id {
			f.removeBoardContents(b.ID)
			continue
		}
		kept = append(kept, b)
	}
	f.boards = kept
	c.Status(http.StatusNoContent)
}

// Boards

func (f *FakeAPI) addBoard(in dto.BoardCreate) dto.BoardResponse {
	ts := f.now()
	b := dto.BoardResponse{
		ID:        f.nextID("brd"),
		Name:      in.Name,
		ProjectID: in.ProjectID,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	f.boards = append(f.boards, b)
	return b
}

func (f *FakeAPI) boardIndex(id string) int {
	for i, b := range f.boards {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (f *FakeAPI) removeBoardContents(boardID string) {
	var keptCols []dto.ColumnResponse
	removed := make(map[string]bool)
	for _, col := range f.columns {
		if col.BoardID == boardID {
			removed[col.ID] = true
			continue
		}
		keptCols = append(keptCols, col)
	}
	f.columns = keptCols

	var keptTasks []dto.TaskResponse
	for _, t := range f.tasks {
		if !removed[t.ColumnID] {
			keptTasks = append(keptTasks, t)
		}
	}
	f.tasks = keptTasks
}

func (f *FakeAPI) listBoards(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.JSON(http.StatusOK, window(c, f.boards))
}

func (f *FakeAPI) listBoardsByProject(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []dto.BoardResponse{}
	for _, b := range f.boards {
		if b.ProjectID == c.Param("project_id") {
			out = append(out, b)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (f *FakeAPI) createBoard(c *gin.Context) {
	var in dto.BoardCreate
	if err := c.ShouldBindJSON(&in); err != nil || in.Name == "" {
		detail(c, http.StatusBadRequest, "name is required")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.projectIndex(in.ProjectID) < 0 {
		detail(c, http.StatusNotFound, "Project not found")
		return
	}
	c.JSON(http.StatusCreated, f.addBoard(in))
}

func (f *FakeAPI) getBoard(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.boardIndex(c.Param("id"))
	if i < 0 {
		detail(c, http.StatusNotFound, "Board not found")
		return
	}
	c.JSON(http.StatusOK, f.boards[i])
}

func (f *FakeAPI) updateBoard(c *gin.Context) {
	var in dto.BoardUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		detail(c, http.StatusBadRequest, "invalid body")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.boardIndex(c.Param("id"))
	if i < 0 {
		detail(c, http.StatusNotFound, "Board not found")
		return
	}
	if in.Name != nil {
		f.boards[i].Name = *in.Name
	}
	f.boards[i].UpdatedAt = f.now()
	c.JSON(http.StatusOK, f.boards[i])
}

func (f *FakeAPI) deleteBoard(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.boardIndex(c.Param("id"))
	if i < 0 {
		detail(c, http.StatusNotFound, "Board not found")
		return
	}
	f.removeBoardContents(f.boards[i].ID)
	f.boards = append(f.boards[:i], f.boards[i+1:]...)
	c.Status(http.StatusNoContent)
}

// Columns

func (f *FakeAPI) addColumn(in dto.ColumnCreate) dto.ColumnResponse {
	ts := f.now()
	col := dto.ColumnResponse{
		ID:        f.nextID("col"),
		BoardID:   in.BoardID,
		Title:     in.Title,
		Position:  in.Position,
		WIPLimit:  in.WIPLimit,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	f.columns = append(f.columns, col)
	return col
}

func (f *FakeAPI) columnIndex(id string) int {
	for i, col := range f.columns {
		if col.ID == id {
			return i
		}
	}
	return -1
}

func (f *FakeAPI) columnsOf(boardID string) []dto.ColumnResponse {
	out := []dto.ColumnResponse{}
	for _, col := range f.columns {
		if col.BoardID == boardID {
			out = append(out, col)
		}
	}
	return out
}

func (f *FakeAPI) listColumns(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.JSON(http.StatusOK, window(c, f.columns))
}

func (f *FakeAPI) listColumnsByBoard(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.JSON(http.StatusOK, f.columnsOf(c.Param("board_id")))
}

func (f *FakeAPI) createColumn(c *gin.Context) {
	var in dto.ColumnCreate
	if err := c.ShouldBindJSON(&in); err != nil || in.Title == "" {
		detail(c, http.StatusBadRequest, "title is required")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.boardIndex(in.BoardID) < 0 {
		detail(c, http.StatusNotFound, "Board not found")
		return
	}
	c.JSON(http.StatusCreated, f.addColumn(in))
}

func (f *FakeAPI) getColumn(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.columnIndex(c.Param("id"))
	if i < 0 {
		detail(c, http.StatusNotFound, "Column not found")
		return
	}
	c.JSON(http.StatusOK, f.columns[i])
}

func (f *FakeAPI) updateColumn(c *gin.Context) {
	var in dto.ColumnUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		detail(c, http.StatusBadRequest, "invalid body")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.columnIndex(c.Param("id"))
	if i < 0 {
		detail(c, http.StatusNotFound, "Column not found")
		return
	}
	if in.Title != nil {
		f.columns[i].Title = *in.Title
	}
	if in.Position != nil {
		f.columns[i].Position = *in.Position
	}
	if in.WIPLimit != nil {
		f.columns[i].WIPLimit = in.WIPLimit
	}
	f.columns[i].UpdatedAt = f.now()
	c.JSON(http.StatusOK, f.columns[i])
}

func (f *FakeAPI) deleteColumn(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := c.Param("id")
	i := f.columnIndex(id)
	if i < 0 {
		detail(c, http.StatusNotFound, "Column not found")
		return
	}
	f.columns = append(f.columns[:i], f.columns[i+1:]...)
	var kept []dto.TaskResponse
	for _, t := range f.tasks {
		if t.ColumnID != id {
			kept = append(kept, t)
		}
	}
	f.tasks = kept
	c.Status(http.StatusNoContent)
}

// Tasks

func (f *FakeAPI) addTask(in dto.TaskCreate, createdBy string) dto.TaskResponse {
	position := 0
	for _, t := range f.tasks {
		if t.ColumnID == in.ColumnID && t.Position >= position {
			position = t.Position + 1
		}
	}
	if in.Priority == "" {
		in.Priority = dto.APIPriorityMedium
	}
	ts := f.now()
	t := dto.TaskResponse{
		ID:          f.nextID("tsk"),
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		Position:    position,
		ColumnID:    in.ColumnID,
		AssigneeID:  in.AssigneeID,
		CreatedBy:   createdBy,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	f.tasks = append(f.tasks, t)
	return t
}

func (f *FakeAPI) taskIndex(id string) int {
	for i, t := range f.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (f *FakeAPI) listTasks(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []dto.TaskResponse{}
	for _, t := range f.tasks {
		if v := c.Query("column_id"); v != "" && t.ColumnID != v {
			continue
		}
		if v := c.Query("priority"); v != "" && string(t.Priority) != v {
			continue
		}
		if v := c.Query("assignee_id"); v != "" && (t.AssigneeID == nil || *t.AssigneeID != v) {
			continue
		}
		out = append(out, t)
	}
	c.JSON(http.StatusOK, window(c, out))
}

func (f *FakeAPI) createTask(c *gin.Context) {
	var in dto.TaskCreate
	if err := c.ShouldBindJSON(&in); err != nil || in.Title == "" {
		detail(c, http.StatusBadRequest, "title is required")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.columnIndex(in.ColumnID) < 0 {
		detail(c, http.StatusNotFound, "Column not found")
		return
	}
	c.JSON(http.StatusCreated, f.addTask(in, f.currentUserID(c)))
}

func (f *FakeAPI) getTask(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.taskIndex(c.Param("id"))
	if i < 0 {
		detail(c, http.StatusNotFound, "Task not found")
		return
	}
	c.JSON(http.StatusOK, f.tasks[i])
}

func (f *FakeAPI) updateTask(c *gin.Context) {
	var in dto.TaskUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		detail(c, http.StatusBadRequest, "invalid body")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.taskIndex(c.Param("id"))
	if i < 0 {
		detail(c, http.StatusNotFound, "Task not found")
		return
	}
	t := &f.tasks[i]
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = in.Description
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if in.DueDate != nil {
		t.DueDate = in.DueDate
	}
	if in.AssigneeID != nil {
		t.AssigneeID = in.AssigneeID
	}
	t.UpdatedAt = f.now()
	c.JSON(http.StatusOK, *t)
}

// moveTask inserts the task at position in the target column, shifting the
// tasks at or after it.
func (f *FakeAPI) moveTask(c *gin.Context) {
	var in dto.TaskMove
	if err := c.ShouldBindJSON(&in); err != nil {
		detail(c, http.StatusBadRequest, "invalid body")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.taskIndex(c.Param("id"))
	if i < 0 {
		detail(c, http.StatusNotFound, "Task not found")
		return
	}
	if f.columnIndex(in.ColumnID) < 0 {
		detail(c, http.StatusNotFound, "Column not found")
		return
	}

	for j := range f.tasks {
		if j != i && f.tasks[j].ColumnID == in.ColumnID && f.tasks[j].Position >= in.Position {
			f.tasks[j].Position++
		}
	}

	f.tasks[i].ColumnID = in.ColumnID
	f.tasks[i].Position = in.Position
	f.tasks[i].UpdatedAt = f.now()
	c.JSON(http.StatusOK, f.tasks[i])
}

func (f *FakeAPI) deleteTask(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.taskIndex(c.Param("id"))
	if i < 0 {
		detail(c, http.StatusNotFound, "Task not found")
		return
	}
	f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	c.Status(http.StatusNoContent)
}
