package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jmvaldes/setlist-helper/internal/config"
	"github.com/jmvaldes/setlist-helper/internal/model"
	"github.com/jmvaldes/setlist-helper/internal/queue"
	"github.com/jmvaldes/setlist-helper/internal/repository"
	queue_publisher "github.com/jmvaldes/setlist-helper/internal/service"
)

// SetlistHandler exposes setlist creation, listing and deletion. Whether
// listings and deletes are scoped to the owner or global is decided by
// Cfg.SetlistScope, not by separate code paths.
type SetlistHandler struct {
	Cfg      config.Config
	Setlists *repository.SetlistRepo
}

func NewSetlistHandler(cfg config.Config, setlists *repository.SetlistRepo) *SetlistHandler {
	if setlists == nil {
		panic("nil repository passed to NewSetlistHandler")
	}
	return &SetlistHandler{Cfg: cfg, Setlists: setlists}
}

type setlistReq struct {
	Name    string   `json:"name"`
	Date    string   `json:"date"`
	SongIDs []uint64 `json:"song_ids"`
}

// CreateSetlist handles POST /v1/setlists. The referenced songs are
// snapshotted into the setlist in the given order; duplicates are
// allowed. After a successful create a setlist.created event is
// published best-effort.
func (h *SetlistHandler) CreateSetlist(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req setlistReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if len(req.SongIDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "song_ids must not be empty"})
	}
	req.Date = strings.TrimSpace(req.Date)
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	sl := &model.Setlist{OwnerID: uid, Name: req.Name, Date: req.Date}
	if err := h.Setlists.Create(c.Request().Context(), sl, req.SongIDs); err != nil {
		if errors.Is(err, repository.ErrSongNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		}
		log.Printf("setlist: create failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create setlist"})
	}

	// Best-effort event; a broker outage never fails the request.
	titles := make([]string, len(sl.Songs))
	for i, s := range sl.Songs {
		titles[i] = s.Title
	}
	_ = queue_publisher.PublishSetlistCreated(c.Request().Context(), queue.SetlistCreatedEvent{
		SetlistID:  sl.ID,
		OwnerID:    sl.OwnerID,
		Name:       sl.Name,
		Date:       sl.Date,
		SongTitles: titles,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, sl)
}

// ListSetlists handles GET /v1/setlists, owner-scoped or global per
// configuration.
func (h *SetlistHandler) ListSetlists(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var items []model.Setlist
	if h.Cfg.SetlistScope == config.ScopeGlobal {
		items, err = h.Setlists.ListAll(c.Request().Context())
	} else {
		items, err = h.Setlists.ListByOwner(c.Request().Context(), uid)
	}
	if err != nil {
		log.Printf("setlist: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	total := len(items)
	page, pageSize := pageParams(c)
	items = repository.Paginate(items, pageSize, page)
	return c.JSON(http.StatusOK, echo.Map{"items": items, "total": total})
}

// GetSetlist handles GET /v1/setlists/:id.
func (h *SetlistHandler) GetSetlist(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	sl, err := h.Setlists.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrSetlistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "setlist not found"})
		}
		log.Printf("setlist: get %d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if h.Cfg.SetlistScope == config.ScopeOwner && sl.OwnerID != 0 && sl.OwnerID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, sl)
}

// DeleteSetlist handles DELETE /v1/setlists/:id.
func (h *SetlistHandler) DeleteSetlist(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if h.Cfg.SetlistScope == config.ScopeGlobal {
		err = h.Setlists.DeleteByID(c.Request().Context(), id)
	} else {
		err = h.Setlists.DeleteByIDAndOwner(c.Request().Context(), id, uid)
	}
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSetlistNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "setlist not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		log.Printf("setlist: delete %d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
