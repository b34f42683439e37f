package authhandler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"opsboard/internal/domain/auth"
	"opsboard/internal/transport/http/api"
	"opsboard/internal/transport/http/middleware"
)

const tokenTTL = 12 * time.Hour

type Handler struct {
	DB        *pgxpool.Pool
	JWTSecret string
}

func NewHandler(db *pgxpool.Pool, jwtSecret string) *Handler {
	return &Handler{DB: db, JWTSecret: jwtSecret}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		api.Fail(w, http.StatusBadRequest, "bad_request", "email and password are required", middleware.GetRequestID(r.Context()))
		return
	}

	var userID, orgID, role, passwordHash string
	err := h.DB.QueryRow(r.Context(), `
    SELECT id, org_id, role, password_hash
    FROM users
    WHERE lower(email) = $1 AND is_active = true
  `, req.Email).Scan(&userID, &orgID, &role, &passwordHash)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}

	if err := auth.CheckPassword(passwordHash, req.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, auth.Claims{UserID: userID, OrgID: orgID, Role: role}, tokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "token generation failed", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"token": token,
		"user":  map[string]string{"id": userID, "orgId": orgID, "role": role},
	}, middleware.GetRequestID(r.Context()))
}
