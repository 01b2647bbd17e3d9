package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"atelier/internal/service"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK      = "ok"
	statusDeleted = "deleted"

	errLoadBoard       = "failed to load board"
	errSaveBoard       = "failed to update board"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// boardError maps service errors to HTTP codes. Client mistakes are reported
// with the service message; everything else is logged under logKey.
func (h *Handler) boardError(c *gin.Context, err error, fallback, logKey string, kv ...interface{}) {
	switch {
	case errors.Is(err, service.ErrBoardNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "board not found"})
	case errors.Is(err, service.ErrInvalidParams), errors.Is(err, service.ErrUnknownStage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNoStage):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, fallback, logKey, err, kv...)
	}
}

// CreateBoardRequest is the optional body of a board creation.
type CreateBoardRequest struct {
	// Display name of the board
	Name string `json:"name" example:"Main hall"`
	// Encoded parameters the board starts from
	Query string `json:"query,omitempty" example:"mainContentState=timer&countdownToTime=13:20"`
}

// SelectStageRequest names a preset stage.
type SelectStageRequest struct {
	Preset string `json:"preset" binding:"required" example:"UBC"`
	Stage  string `json:"stage" binding:"required" example:"break"`
}

// AdvanceRequest moves through the current preset. Offset defaults to 1.
type AdvanceRequest struct {
	Offset *int `json:"offset,omitempty" example:"1"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      List boards
// @Tags         boards
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, boards"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/boards [get]
func (h *Handler) listBoards(c *gin.Context) {
	boards, err := h.services.Boards.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to list boards", "board_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(boards), "boards": boards})
}

// @Summary      Create board
// @Tags         boards
// @Accept       json
// @Produce      json
// @Param        body  body      CreateBoardRequest  false  "Board"
// @Success      201   {object}  service.BoardView
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/boards [post]
// @Security     BearerAuth
func (h *Handler) createBoard(c *gin.Context) {
	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	v, err := h.services.Boards.Create(c.Request.Context(), service.CreateParams{Name: req.Name, Query: req.Query})
	if err != nil {
		h.boardError(c, err, "failed to create board", "board_create_failed", "name", req.Name)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// @Summary      Get board
// @Description  The board drawn at the current time.
// @Tags         boards
// @Produce      json
// @Param        id   path      string  true  "Board ID"
// @Success      200  {object}  service.BoardView
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/boards/{id} [get]
func (h *Handler) getBoard(c *gin.Context) {
	id := c.Param("id")
	v, err := h.services.Boards.Get(c.Request.Context(), id)
	if err != nil {
		h.boardError(c, err, errLoadBoard, "board_get_failed", "board_id", id)
		return
	}
	c.JSON(http.StatusOK, v)
}

// @Summary      Set parameters
// @Description  Writes every given parameter as one navigation entry. Unknown keys or rejected values fail the whole request.
// @Tags         boards
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "Board ID"
// @Param        body  body      map[string]interface{}  true  "Parameter values"
// @Success      200   {object}  service.BoardView
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/boards/{id}/params [patch]
// @Security     BearerAuth
func (h *Handler) setParams(c *gin.Context) {
	var values map[string]any
	if err := c.ShouldBindJSON(&values); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	id := c.Param("id")
	v, err := h.services.Boards.SetParams(c.Request.Context(), id, values)
	if err != nil {
		h.boardError(c, err, errSaveBoard, "board_set_params_failed", "board_id", id)
		return
	}
	c.JSON(http.StatusOK, v)
}

// @Summary      Reset board
// @Tags         boards
// @Produce      json
// @Param        id   path      string  true  "Board ID"
// @Success      200  {object}  service.BoardView
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/boards/{id}/reset [post]
// @Security     BearerAuth
func (h *Handler) resetBoard(c *gin.Context) {
	id := c.Param("id")
	v, err := h.services.Boards.Reset(c.Request.Context(), id)
	if err != nil {
		h.boardError(c, err, errSaveBoard, "board_reset_failed", "board_id", id)
		return
	}
	c.JSON(http.StatusOK, v)
}

// @Summary      Select stage
// @Tags         boards
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Board ID"
// @Param        body  body      SelectStageRequest  true  "Stage"
// @Success      200   {object}  service.BoardView
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/boards/{id}/stage [post]
// @Security     BearerAuth
func (h *Handler) selectStage(c *gin.Context) {
	var req SelectStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	id := c.Param("id")
	v, err := h.services.Boards.SelectStage(c.Request.Context(), id, req.Preset, req.Stage)
	if err != nil {
		h.boardError(c, err, errSaveBoard, "board_stage_failed", "board_id", id, "preset", req.Preset, "stage", req.Stage)
		return
	}
	c.JSON(http.StatusOK, v)
}

// @Summary      Advance stage
// @Description  Moves offset stages through the board's current preset (default 1, negative goes back).
// @Tags         boards
// @Accept       json
// @Produce      json
// @Param        id    path      string          true   "Board ID"
// @Param        body  body      AdvanceRequest  false  "Offset"
// @Success      200   {object}  service.BoardView
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/boards/{id}/advance [post]
// @Security     BearerAuth
func (h *Handler) advanceStage(c *gin.Context) {
	var req AdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	offset := 1
	if req.Offset != nil {
		offset = *req.Offset
	}
	id := c.Param("id")
	v, err := h.services.Boards.Advance(c.Request.Context(), id, offset)
	if err != nil {
		h.boardError(c, err, errSaveBoard, "board_advance_failed", "board_id", id, "offset", offset)
		return
	}
	c.JSON(http.StatusOK, v)
}

// @Summary      Delete board
// @Tags         boards
// @Produce      json
// @Param        id   path      string  true  "Board ID"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/boards/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteBoard(c *gin.Context) {
	id := c.Param("id")
	if err := h.services.Boards.Delete(c.Request.Context(), id); err != nil {
		h.boardError(c, err, "failed to delete board", "board_delete_failed", "board_id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusDeleted, "id": id})
}
