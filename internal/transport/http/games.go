package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4/internal/domain"
	"github.com/iamasit07/connect4/internal/service/game"
)

// GameCloser drops websocket watchers of a discarded game.
type GameCloser interface {
	CloseGame(gameID string, reason string)
}

type GameHandler struct {
	SessionManager *game.SessionManager
	Closer         GameCloser
	DefaultHeight  string
	DefaultWidth   string
	DefaultColors  [2]string
}

func NewGameHandler(sm *game.SessionManager, closer GameCloser, defaultHeight, defaultWidth string, defaultColors [2]string) *GameHandler {
	return &GameHandler{
		SessionManager: sm,
		Closer:         closer,
		DefaultHeight:  defaultHeight,
		DefaultWidth:   defaultWidth,
		DefaultColors:  defaultColors,
	}
}

func (h *GameHandler) Register(r gin.IRouter) {
	r.POST("/api/games", h.CreateGame)
	r.GET("/api/games", h.ListGames)
	r.GET("/api/games/:id", h.GetGame)
	r.POST("/api/games/:id/reset", h.ResetGame)
	r.POST("/api/games/:id/drops", h.DropPiece)
	r.DELETE("/api/games/:id", h.DeleteGame)
}

// dimension accepts either a JSON number or a JSON string so that bad input
// like "abc" reaches the engine's validation instead of failing decoding.
type dimension string

func (d *dimension) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*d = dimension(s)
		return nil
	}
	*d = dimension(strings.TrimSpace(string(data)))
	return nil
}

type createGameRequest struct {
	Height       *dimension `json:"height"`
	Width        *dimension `json:"width"`
	Player1Color string     `json:"player1Color"`
	Player2Color string     `json:"player2Color"`
}

type dropRequest struct {
	Column *int `json:"column"`
}

func (h *GameHandler) CreateGame(c *gin.Context) {
	var req createGameRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	height, width := h.DefaultHeight, h.DefaultWidth
	if req.Height != nil {
		height = string(*req.Height)
	}
	if req.Width != nil {
		width = string(*req.Width)
	}
	p1Color, p2Color := req.Player1Color, req.Player2Color
	if p1Color == "" && p2Color == "" {
		p1Color, p2Color = h.DefaultColors[0], h.DefaultColors[1]
	}

	rows, cols, err := domain.ParseDimensions(height, width)
	if err != nil {
		writeError(c, err)
		return
	}

	session, err := h.SessionManager.CreateSession(rows, cols, p1Color, p2Color)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session.View())
}

func (h *GameHandler) ListGames(c *gin.Context) {
	c.JSON(http.StatusOK, h.SessionManager.ListSessions())
}

func (h *GameHandler) GetGame(c *gin.Context) {
	session, err := h.SessionManager.GetSession(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, session.View())
}

func (h *GameHandler) ResetGame(c *gin.Context) {
	session, err := h.SessionManager.GetSession(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, session.Restart())
}

func (h *GameHandler) DropPiece(c *gin.Context) {
	session, err := h.SessionManager.GetSession(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	var req dropRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Column == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "column is required"})
		return
	}

	result, err := session.HandleDrop(*req.Column)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"move":  result,
		"state": session.View().State,
	})
}

func (h *GameHandler) DeleteGame(c *gin.Context) {
	gameID := c.Param("id")
	if err := h.SessionManager.RemoveSession(gameID); err != nil {
		writeError(c, err)
		return
	}
	if h.Closer != nil {
		h.Closer.CloseGame(gameID, "game deleted")
	}
	c.Status(http.StatusNoContent)
}

// writeError maps engine and service errors onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "violations": verr.Violations})
	case errors.Is(err, game.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidColumn),
		errors.Is(err, game.ErrColorTaken),
		errors.Is(err, game.ErrUnknownPlayer):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrColumnFull),
		errors.Is(err, domain.ErrGameAlreadyOver),
		errors.Is(err, domain.ErrNotStarted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("unexpected error: %v", err)})
	}
}
