package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/clinicore/clinic-registry/internal/logger"
	"github.com/clinicore/clinic-registry/internal/service"
	"github.com/clinicore/clinic-registry/internal/store"
	"github.com/clinicore/clinic-registry/internal/utils"
	"github.com/clinicore/clinic-registry/models"
)

// registerRequest is the body accepted by the registration endpoint.
type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginRequest is the body accepted by the login endpoint. Username doubles
// as the identifier field and may carry either a username or an email.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			utils.WriteError(w, "username, email and password are required", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrUserAlreadyExists):
			log.Err(err).Msg("username or email already taken")
			utils.WriteError(w, store.ErrUserAlreadyExists.Error(), http.StatusConflict)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
			utils.WriteError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	token, err := h.services.AuthService.CreateToken(ctx, registeredUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		utils.WriteError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.RegisterResponse{
		Message: "User registered successfully",
		Token:   token.SignedString,
		User:    registeredUser,
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			utils.WriteError(w, "username and password are required", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrUserNotFound) || errors.Is(err, service.ErrWrongPassword):
			// Unknown identifier and wrong password must be indistinguishable.
			log.Err(err).Msg("no user was found/wrong password")
			utils.WriteError(w, "invalid credentials", http.StatusUnauthorized)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			utils.WriteError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Debug().Str("id", foundUser.ID).Str("username", foundUser.Username).Msg("user successfully logged in")

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		utils.WriteError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.LoginResponse{
		Message: "Login successful",
		Token:   token.SignedString,
		User:    foundUser,
		IsAdmin: foundUser.IsAdmin(),
	}, http.StatusOK)
}

// verify reports whether the presented bearer token is still valid. Every
// failure mode collapses to 401 {"valid": false}: the endpoint never
// discloses why a token was rejected.
func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	tokenString, err := getTokenFromAuthHeader(r.Header.Get("Authorization"))
	if err != nil {
		log.Err(err).Send()
		utils.WriteJSON(w, models.VerifyResponse{Valid: false}, http.StatusUnauthorized)
		return
	}

	user, err := h.services.AuthService.Authenticate(ctx, tokenString)
	if err != nil {
		log.Err(err).Msg("token verification failed")
		utils.WriteJSON(w, models.VerifyResponse{Valid: false}, http.StatusUnauthorized)
		return
	}

	utils.WriteJSON(w, models.VerifyResponse{Valid: true, User: &user}, http.StatusOK)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.pinger.Ping(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).Msg("database ping failed")
		utils.WriteError(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}

	utils.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
