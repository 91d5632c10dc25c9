package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/avvvet/minigolf-services/internal/golfsvc/hub"
	"github.com/avvvet/minigolf-services/internal/golfsvc/service"
	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	tokenAuth *jwtauth.JWTAuth
	upgrader  websocket.Upgrader
	heartbeat time.Duration

	games   *service.GameService
	players *service.PlayerService
	scores  *service.ScoreService
	users   *service.UserService
	hub     *hub.Hub
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func NewHandler(games *service.GameService, players *service.PlayerService,
	scores *service.ScoreService, users *service.UserService, h *hub.Hub) *Handler {
	return &Handler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		heartbeat: 30 * time.Second,
		games:     games,
		players:   players,
		scores:    scores,
		users:     users,
		hub:       h,
	}
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)
	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

// errorResponse maps the service error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is an internal failure and is not echoed
// back to the client.
func (h *Handler) errorResponse(w http.ResponseWriter, err error) {
	var (
		ve *service.ValidationError
		nf *service.NotFoundError
		ce *service.ConflictError
	)

	switch {
	case errors.As(err, &ve):
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: ve.Error()})
	case errors.As(err, &nf):
		h.CreateResponse(w, Response{Code: http.StatusNotFound, Error: nf.Error()})
	case errors.As(err, &ce):
		h.CreateResponse(w, Response{Code: http.StatusConflict, Error: ce.Error()})
	default:
		log.Errorf("internal error: %v", err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "internal server error"})
	}
}

func urlInt64(r *http.Request, key string) (int64, error) {
	v, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil {
		return 0, &service.ValidationError{Msg: "invalid " + key}
	}
	return v, nil
}

func urlInt(r *http.Request, key string) (int, error) {
	v, err := strconv.Atoi(chi.URLParam(r, key))
	if err != nil {
		return 0, &service.ValidationError{Msg: "invalid " + key}
	}
	return v, nil
}

func (h *Handler) CreateGameHandler(w http.ResponseWriter, r *http.Request) {
	game, err := h.games.CreateGame(r.Context())
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{Message: "game created", Code: http.StatusCreated, Data: game})
}

func (h *Handler) GetGameHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.games.GameViewByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: view})
}

type playerRequest struct {
	Name      string `json:"name"`
	BallColor string `json:"ball_color"`
}

func (h *Handler) AddPlayerHandler(w http.ResponseWriter, r *http.Request) {
	gameID, err := urlInt64(r, "gameID")
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	var req playerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, &service.ValidationError{Msg: "invalid request body"})
		return
	}

	player, err := h.players.AddPlayer(r.Context(), gameID, req.Name, req.BallColor)
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{Message: "player added", Code: http.StatusCreated, Data: player})
}

func (h *Handler) UpdatePlayerHandler(w http.ResponseWriter, r *http.Request) {
	gameID, err := urlInt64(r, "gameID")
	if err != nil {
		h.errorResponse(w, err)
		return
	}
	playerID, err := urlInt64(r, "playerID")
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	var req playerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, &service.ValidationError{Msg: "invalid request body"})
		return
	}

	player, err := h.players.UpdatePlayer(r.Context(), playerID, gameID, req.Name, req.BallColor)
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{Message: "player updated", Code: http.StatusOK, Data: player})
}

type scoreRequest struct {
	PlayerID   int64 `json:"player_id"`
	HoleNumber int   `json:"hole_number"`
	Score      int   `json:"score"`
}

func (h *Handler) SubmitScoreHandler(w http.ResponseWriter, r *http.Request) {
	gameID, err := urlInt64(r, "gameID")
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, &service.ValidationError{Msg: "invalid request body"})
		return
	}

	score, err := h.scores.SubmitScore(r.Context(), req.PlayerID, gameID, req.HoleNumber, req.Score)
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{Message: "score recorded", Code: http.StatusOK, Data: score})
}

type currentHoleRequest struct {
	HoleNumber int `json:"hole_number"`
}

func (h *Handler) UpdateCurrentHoleHandler(w http.ResponseWriter, r *http.Request) {
	gameID, err := urlInt64(r, "gameID")
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	var req currentHoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, &service.ValidationError{Msg: "invalid request body"})
		return
	}

	game, err := h.games.UpdateCurrentHole(r.Context(), gameID, req.HoleNumber)
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{Message: "current hole updated", Code: http.StatusOK, Data: game})
}

func (h *Handler) AddHoleHandler(w http.ResponseWriter, r *http.Request) {
	gameID, err := urlInt64(r, "gameID")
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	game, err := h.games.AddHole(r.Context(), gameID)
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{Message: "hole added", Code: http.StatusOK, Data: game})
}

func (h *Handler) AverageScoreHandler(w http.ResponseWriter, r *http.Request) {
	gameID, err := urlInt64(r, "gameID")
	if err != nil {
		h.errorResponse(w, err)
		return
	}
	holeNumber, err := urlInt(r, "hole")
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	avg, err := h.scores.GetAverageScoreForHole(r.Context(), gameID, holeNumber)
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: map[string]int{"average": avg}})
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.CreateResponse(w, Response{
		Message: "golf service is running",
		Code:    http.StatusOK,
	})
}
