package handlers

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"atelier/internal/board"
	"atelier/internal/models"
	"atelier/internal/preset"
	"atelier/internal/service"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(_ context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

// mockBoards records the last call and answers with view or err.
type mockBoards struct {
	mu sync.Mutex

	view  service.BoardView
	list  []models.Board
	err   error
	calls []string

	lastCreate service.CreateParams
	lastValues map[string]any
	lastPreset string
	lastStage  string
	lastOffset int
}

func (m *mockBoards) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *mockBoards) Create(_ context.Context, p service.CreateParams) (service.BoardView, error) {
	m.record("create")
	m.lastCreate = p
	return m.view, m.err
}
func (m *mockBoards) Get(_ context.Context, id string) (service.BoardView, error) {
	m.record("get:" + id)
	return m.view, m.err
}
func (m *mockBoards) List(context.Context) ([]models.Board, error) {
	m.record("list")
	return m.list, m.err
}
func (m *mockBoards) SetParams(_ context.Context, id string, values map[string]any) (service.BoardView, error) {
	m.record("params:" + id)
	m.lastValues = values
	return m.view, m.err
}
func (m *mockBoards) Reset(_ context.Context, id string) (service.BoardView, error) {
	m.record("reset:" + id)
	return m.view, m.err
}
func (m *mockBoards) SelectStage(_ context.Context, id, presetName, stageName string) (service.BoardView, error) {
	m.record("stage:" + id)
	m.lastPreset, m.lastStage = presetName, stageName
	return m.view, m.err
}
func (m *mockBoards) Advance(_ context.Context, id string, offset int) (service.BoardView, error) {
	m.record("advance:" + id)
	m.lastOffset = offset
	return m.view, m.err
}
func (m *mockBoards) Delete(_ context.Context, id string) error {
	m.record("delete:" + id)
	return m.err
}

type mockRender struct {
	view     board.View
	err      error
	link     string
	linkErr  error
	lastRaw  string
	lastLink [2]string
}

func (m *mockRender) Render(raw string) (board.View, error) {
	m.lastRaw = raw
	return m.view, m.err
}
func (m *mockRender) Presets() *preset.Catalog { return preset.DefaultCatalog() }
func (m *mockRender) Link(p, st string) (string, error) {
	m.lastLink = [2]string{p, st}
	return m.link, m.linkErr
}

type mockHistory struct {
	resp []models.BoardEvent
	err  error
	last service.LogFilter
}

func (m *mockHistory) List(_ context.Context, f service.LogFilter) ([]models.BoardEvent, error) {
	m.last = f
	return m.resp, m.err
}

type mockQuestions struct {
	questions []string
	err       error
	calls     int
}

func (m *mockQuestions) Generate(context.Context, string, string) ([]string, error) {
	m.calls++
	return m.questions, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
