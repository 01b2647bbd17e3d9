package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"atelier/internal/board"
	"atelier/internal/models"
	"atelier/internal/service"
)

func do(r http.Handler, method, path, body string, hdr http.Header) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var out struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal error body %q: %v", w.Body.String(), err)
	}
	return out.Error
}

func boardServices(b *mockBoards) *service.Service {
	return &service.Service{Boards: b, Authorization: &mockAuth{parseID: 1}}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})
	w := do(r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestBoardWrites_RequireToken(t *testing.T) {
	b := &mockBoards{}
	r := newTestRouter(boardServices(b))

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/v1/boards"},
		{http.MethodPatch, "/api/v1/boards/b1/params"},
		{http.MethodPost, "/api/v1/boards/b1/reset"},
		{http.MethodPost, "/api/v1/boards/b1/stage"},
		{http.MethodPost, "/api/v1/boards/b1/advance"},
		{http.MethodDelete, "/api/v1/boards/b1"},
	} {
		w := do(r, tc.method, tc.path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: status=%d, want 401", tc.method, tc.path, w.Code)
		}
	}
	if len(b.calls) != 0 {
		t.Fatalf("services should not be reached, got %v", b.calls)
	}
}

func TestCreateBoard(t *testing.T) {
	b := &mockBoards{view: service.BoardView{ID: "b1", Name: "Main"}}
	r := newTestRouter(boardServices(b))

	w := do(r, http.MethodPost, "/api/v1/boards", `{"name":"Main","query":"centerText=hi"}`, authHeader("t"))
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if b.lastCreate.Name != "Main" || b.lastCreate.Query != "centerText=hi" {
		t.Fatalf("unexpected create params: %+v", b.lastCreate)
	}

	// An empty body is allowed.
	w = do(r, http.MethodPost, "/api/v1/boards", "", authHeader("t"))
	if w.Code != http.StatusCreated {
		t.Fatalf("empty body: status=%d body=%s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodPost, "/api/v1/boards", `{"name":`, authHeader("t"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad body: status=%d", w.Code)
	}
}

func TestGetBoard(t *testing.T) {
	b := &mockBoards{view: service.BoardView{ID: "b1", View: board.View{MainContent: board.ContentText, CenterText: "hi"}}}
	r := newTestRouter(boardServices(b))

	w := do(r, http.MethodGet, "/api/v1/boards/b1", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var got map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got["id"] != "b1" || got["center_text"] != "hi" || got["main_content"] != "text" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestListBoards(t *testing.T) {
	b := &mockBoards{list: []models.Board{{ID: "a"}, {ID: "b"}}}
	r := newTestRouter(boardServices(b))

	w := do(r, http.MethodGet, "/api/v1/boards", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var got struct {
		Count int `json:"count"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.Count != 2 {
		t.Fatalf("count=%d", got.Count)
	}
}

func TestBoardWrites_PassArguments(t *testing.T) {
	b := &mockBoards{view: service.BoardView{ID: "b1"}}
	r := newTestRouter(boardServices(b))
	hdr := authHeader("t")

	if w := do(r, http.MethodPatch, "/api/v1/boards/b1/params", `{"centerText":"hi","topLeftNotesSize":2}`, hdr); w.Code != http.StatusOK {
		t.Fatalf("params status=%d", w.Code)
	}
	if b.lastValues["centerText"] != "hi" || b.lastValues["topLeftNotesSize"] != float64(2) {
		t.Fatalf("unexpected values: %v", b.lastValues)
	}

	if w := do(r, http.MethodPost, "/api/v1/boards/b1/stage", `{"preset":"UBC","stage":"break"}`, hdr); w.Code != http.StatusOK {
		t.Fatalf("stage status=%d", w.Code)
	}
	if b.lastPreset != "UBC" || b.lastStage != "break" {
		t.Fatalf("unexpected stage: %s/%s", b.lastPreset, b.lastStage)
	}
	if w := do(r, http.MethodPost, "/api/v1/boards/b1/stage", `{"preset":"UBC"}`, hdr); w.Code != http.StatusBadRequest {
		t.Fatalf("missing stage status=%d", w.Code)
	}

	if w := do(r, http.MethodPost, "/api/v1/boards/b1/advance", "", hdr); w.Code != http.StatusOK || b.lastOffset != 1 {
		t.Fatalf("advance default: status=%d offset=%d", w.Code, b.lastOffset)
	}
	if w := do(r, http.MethodPost, "/api/v1/boards/b1/advance", `{"offset":-1}`, hdr); w.Code != http.StatusOK || b.lastOffset != -1 {
		t.Fatalf("advance back: status=%d offset=%d", w.Code, b.lastOffset)
	}

	if w := do(r, http.MethodPost, "/api/v1/boards/b1/reset", "", hdr); w.Code != http.StatusOK {
		t.Fatalf("reset status=%d", w.Code)
	}
	if w := do(r, http.MethodDelete, "/api/v1/boards/b1", "", hdr); w.Code != http.StatusOK {
		t.Fatalf("delete status=%d", w.Code)
	}
}

func TestBoardErrors_MapToStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: x", service.ErrBoardNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: nope", service.ErrInvalidParams), http.StatusBadRequest},
		{fmt.Errorf("%w: UBC / x", service.ErrUnknownStage), http.StatusBadRequest},
		{fmt.Errorf("%w: offset 1", service.ErrNoStage), http.StatusConflict},
		{errors.New("disk"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		b := &mockBoards{err: tc.err}
		r := newTestRouter(boardServices(b))
		w := do(r, http.MethodPost, "/api/v1/boards/b1/advance", "", authHeader("t"))
		if w.Code != tc.want {
			t.Fatalf("%v: status=%d, want %d", tc.err, w.Code, tc.want)
		}
		if tc.want == http.StatusInternalServerError && decodeError(t, w) != errSaveBoard {
			t.Fatalf("internal errors must not leak: %s", w.Body.String())
		}
	}
}
