package handlers

import (
	"errors"
	"mime"
	"net/http"
	"time"

	"github.com/Dosada05/magic-tournament/middleware"
	"github.com/Dosada05/magic-tournament/models"
	"github.com/Dosada05/magic-tournament/services"
)

type AuthHandler struct {
	authService services.AuthService
	jwtSecret   []byte
	tokenTTL    time.Duration
}

func NewAuthHandler(authService services.AuthService, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    tokenTTL,
	}
}

type tokenResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresAt   time.Time      `json:"expires_at"`
	User        *models.Player `json:"user"`
}

// Register godoc
// @Summary Зарегистрировать игрока
// @Tags players
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Имя, email и пароль"
// @Success 201 {object} models.Player
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /players [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.authService.Register(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// readCredentials принимает и JSON {email, password}, и форму OAuth2
// password flow (username, password).
func readCredentials(w http.ResponseWriter, r *http.Request) (services.LoginInput, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		if err := r.ParseForm(); err != nil {
			return services.LoginInput{}, errors.New("invalid form body")
		}
		email := r.PostForm.Get("username")
		if email == "" {
			email = r.PostForm.Get("email")
		}
		return services.LoginInput{Email: email, Password: r.PostForm.Get("password")}, nil
	}

	var creds models.Credentials
	if err := readJSON(w, r, &creds); err != nil {
		return services.LoginInput{}, err
	}
	return services.LoginInput{Email: creds.Email, Password: creds.Password}, nil
}

// Login godoc
// @Summary Получить токен доступа
// @Tags auth
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param body body models.Credentials true "Email и пароль"
// @Success 200 {object} tokenResponse
// @Failure 401 {object} map[string]string
// @Router /token [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	input, err := readCredentials(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Email == "" || input.Password == "" {
		badRequestResponse(w, r, errors.New("email and password are required"))
		return
	}

	player, err := h.authService.Login(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	token, expiresAt, err := middleware.IssueToken(h.jwtSecret, player.ID, player.Email, h.tokenTTL)
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	resp := tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt.UTC(),
		User:        player,
	}
	if err := writeJSON(w, http.StatusOK, resp, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
