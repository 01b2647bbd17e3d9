package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"atelier/internal/qotd"
	"atelier/internal/service"
)

// @Summary      Render parameters
// @Description  Draws a board straight from the query string. Nothing is stored.
// @Tags         display
// @Produce      json
// @Success      200  {object}  board.View
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/render [get]
func (h *Handler) render(c *gin.Context) {
	v, err := h.services.Render.Render(c.Request.URL.RawQuery)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, v)
}

// @Summary      List presets
// @Tags         display
// @Produce      json
// @Success      200  {object}  preset.Catalog
// @Router       /api/v1/presets [get]
func (h *Handler) listPresets(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Render.Presets())
}

// @Summary      Stage link
// @Description  The shareable board URL for a preset stage applied to an empty board.
// @Tags         display
// @Produce      json
// @Param        preset  query     string  true  "Preset"  example(UBC)
// @Param        stage   query     string  true  "Stage"   example(break)
// @Success      200     {object}  map[string]string  "url"
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /api/v1/presets/link [get]
func (h *Handler) presetLink(c *gin.Context) {
	p, st := c.Query("preset"), c.Query("stage")
	if p == "" || st == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "preset and stage are required"})
		return
	}
	u, err := h.services.Render.Link(p, st)
	if err != nil {
		if errors.Is(err, service.ErrUnknownStage) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to build link", "preset_link_failed", err, "preset", p, "stage", st)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": u})
}

// @Summary      Question of the day suggestions
// @Tags         qotd
// @Produce      json
// @Param        location  query     string  true  "Location"  example(Vancouver, BC, Canada)
// @Param        date      query     string  true  "Date"      example(Friday, October 16, 2026)
// @Success      200       {object}  map[string]interface{}  "questions, categories"
// @Failure      400       {object}  map[string]string
// @Failure      502       {object}  map[string]string
// @Failure      503       {object}  map[string]string
// @Router       /api/qotd [get]
func (h *Handler) getQuestions(c *gin.Context) {
	location := strings.TrimSpace(c.Query("location"))
	date := strings.TrimSpace(c.Query("date"))
	if location == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing location or date"})
		return
	}

	questions, err := h.services.Questions.Generate(c.Request.Context(), location, date)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrQuestionsUnavailable):
		h.logAndJSONError(c, http.StatusServiceUnavailable, "Question generation is not configured", "qotd_unavailable", err)
		return
	default:
		h.logAndJSONError(c, http.StatusBadGateway, "Failed to generate questions", "qotd_generate_failed", err,
			"location", location, "date", date)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"questions":  questions,
		"categories": qotd.Group(questions),
	})
}
