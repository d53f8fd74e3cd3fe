package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jmvaldes/setlist-helper/internal/model"
	"github.com/jmvaldes/setlist-helper/internal/repository"
)

// SongHandler exposes catalog CRUD. Reads are open to every
// authenticated role; mutations are restricted to admins by the router.
type SongHandler struct {
	Songs *repository.SongRepo
}

func NewSongHandler(songs *repository.SongRepo) *SongHandler {
	if songs == nil {
		panic("nil repository passed to NewSongHandler")
	}
	return &SongHandler{Songs: songs}
}

type songReq struct {
	Title       string `json:"title"`
	Key         string `json:"key"`
	Tempo       string `json:"tempo"`
	DurationMin int    `json:"duration_min"`
	Notes       string `json:"notes"`
}

func (r *songReq) validate() (string, bool) {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return "title is required", false
	}
	if r.DurationMin < 0 {
		return "duration_min must not be negative", false
	}
	return "", true
}

// CreateSong handles POST /v1/songs.
func (h *SongHandler) CreateSong(c echo.Context) error {
	var req songReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg, ok := req.validate(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	song := &model.Song{
		Title:       req.Title,
		Key:         strings.TrimSpace(req.Key),
		Tempo:       strings.TrimSpace(req.Tempo),
		DurationMin: req.DurationMin,
		Notes:       req.Notes,
	}
	if err := h.Songs.Create(c.Request().Context(), song); err != nil {
		log.Printf("song: create failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create song"})
	}
	return c.JSON(http.StatusCreated, song)
}

// ListSongs handles GET /v1/songs. The optional ?q= parameter filters by
// a case-insensitive substring of title or key; ?page and ?page_size
// window the result, clamping an out-of-range page to the last one.
func (h *SongHandler) ListSongs(c echo.Context) error {
	items, err := h.Songs.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		log.Printf("song: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	total := len(items)
	page, pageSize := pageParams(c)
	items = repository.Paginate(items, pageSize, page)
	return c.JSON(http.StatusOK, echo.Map{"items": items, "total": total})
}

// GetSong handles GET /v1/songs/:id.
func (h *SongHandler) GetSong(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	song, err := h.Songs.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrSongNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "song not found"})
		}
		log.Printf("song: get %d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, song)
}

// UpdateSong handles PUT /v1/songs/:id with a full-field replace.
func (h *SongHandler) UpdateSong(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req songReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg, ok := req.validate(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	song := &model.Song{
		ID:          id,
		Title:       req.Title,
		Key:         strings.TrimSpace(req.Key),
		Tempo:       strings.TrimSpace(req.Tempo),
		DurationMin: req.DurationMin,
		Notes:       req.Notes,
	}
	if err := h.Songs.Update(c.Request().Context(), song); err != nil {
		if errors.Is(err, repository.ErrSongNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "song not found"})
		}
		log.Printf("song: update %d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, song)
}

// DeleteSong handles DELETE /v1/songs/:id. The repository cascades the
// delete into every setlist embedding the song.
func (h *SongHandler) DeleteSong(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Songs.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrSongNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "song not found"})
		}
		log.Printf("song: delete %d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
