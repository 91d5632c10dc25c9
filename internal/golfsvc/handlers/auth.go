package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/avvvet/minigolf-services/internal/golfsvc/service"
	"github.com/go-chi/jwtauth"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

func (h *Handler) token(userID int64) (string, error) {
	_, tokenString, err := h.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"exp":     time.Now().Add(7 * 24 * time.Hour).Unix(),
	})
	return tokenString, err
}

func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.errorResponse(w, &service.ValidationError{Msg: "invalid request body"})
		return
	}

	user, err := h.users.Register(r.Context(), creds.Username, creds.Password)
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	tokenString, err := h.token(user.ID)
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "registered",
		Code:    http.StatusCreated,
		Data:    authResponse{UserID: user.ID, Username: user.Username, Token: tokenString},
	})
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.errorResponse(w, &service.ValidationError{Msg: "invalid request body"})
		return
	}

	user, err := h.users.Login(r.Context(), creds.Username, creds.Password)
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	tokenString, err := h.token(user.ID)
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "logged in",
		Code:    http.StatusOK,
		Data:    authResponse{UserID: user.ID, Username: user.Username, Token: tokenString},
	})
}

func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "unauthorized"})
		return
	}

	id, ok := claims["user_id"].(float64)
	if !ok {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "unauthorized"})
		return
	}

	user, err := h.users.GetByID(r.Context(), int64(id))
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: user})
}
