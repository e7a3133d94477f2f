package handlers

import (
	"errors"
	"net/http"
	"strings"

	"finance-tracker-server/src/middleware"
	"finance-tracker-server/src/models"
	"finance-tracker-server/src/store"
	"finance-tracker-server/src/util"

	"golang.org/x/crypto/bcrypt"
)

func Register(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := env.logger(r)

		var req models.RegisterRequest
		if err := decodeBody(w, r, &req); err != nil {
			log.Error().Err(err).Msg("Failed to decode register request body")
			writeError(w, http.StatusBadRequest, "invalid request", nil)
			return
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		req.Username = strings.TrimSpace(req.Username)
		req.FirstName = strings.TrimSpace(req.FirstName)
		req.LastName = strings.TrimSpace(req.LastName)

		if !util.ValidateEmail(req.Email) {
			log.Error().Str("email", req.Email).Msg("Email validation failed during registration")
			writeError(w, http.StatusBadRequest, "invalid email format", nil)
			return
		}
		if !util.ValidateUsername(req.Username) {
			log.Error().Str("username", req.Username).Msg("Username validation failed during registration")
			writeError(w, http.StatusBadRequest, "username must be between 3 and 30 characters", nil)
			return
		}
		if !util.ValidatePassword(req.Password) {
			log.Error().Str("username", req.Username).Msg("Password validation failed during registration")
			writeError(w, http.StatusBadRequest, "password must be at least 8 characters with uppercase, lowercase, digit, and special character", nil)
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error().Err(err).Str("username", req.Username).Msg("Failed to hash password")
			writeError(w, http.StatusInternalServerError, "internal error", nil)
			return
		}

		user, err := env.Users.CreateUser(r.Context(), req, string(hashedPassword))
		if err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				log.Error().Str("email", req.Email).Str("username", req.Username).Msg("Registration failed - email or username already exists")
				writeError(w, http.StatusConflict, "email or username already exists", nil)
				return
			}
			log.Error().Err(err).Str("username", req.Username).Msg("Failed to create user")
			writeError(w, http.StatusInternalServerError, "internal error", nil)
			return
		}

		log.Info().Str("username", user.Username).Int64("user_id", user.ID).Msg("Successful registration")

		token, err := middleware.IssueToken(env.JWTSecret, user.ID, user.Username, user.SuperAdmin, env.TokenExpiry)
		if err != nil {
			log.Error().Err(err).Str("username", user.Username).Msg("Failed to generate JWT token")
			writeError(w, http.StatusInternalServerError, "Error generating token", nil)
			return
		}

		writeJSON(w, http.StatusCreated, models.RegisterResponse{
			ID:         user.ID,
			Email:      user.Email,
			Username:   user.Username,
			FirstName:  user.FirstName,
			LastName:   user.LastName,
			SuperAdmin: user.SuperAdmin,
			Token:      token,
		})
	}
}

func Login(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := env.logger(r)

		var credentials struct {
			UsernameOrEmail string `json:"username"`
			Password        string `json:"password"`
		}
		if err := decodeBody(w, r, &credentials); err != nil {
			log.Error().Err(err).Msg("Failed to decode login request body")
			writeError(w, http.StatusBadRequest, "invalid request", nil)
			return
		}

		login := strings.TrimSpace(credentials.UsernameOrEmail)
		user, err := env.Users.GetUserByLogin(r.Context(), login)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				log.Error().Str("login", login).Msg("Failed to find user during login")
				writeError(w, http.StatusUnauthorized, "Invalid credentials", nil)
				return
			}
			log.Error().Err(err).Str("login", login).Msg("Failed to look up user during login")
			writeError(w, http.StatusInternalServerError, "internal error", nil)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password)); err != nil {
			log.Error().Str("login", login).Str("remote_addr", r.RemoteAddr).Msg("Invalid password attempt")
			writeError(w, http.StatusUnauthorized, "Invalid credentials", nil)
			return
		}

		token, err := middleware.IssueToken(env.JWTSecret, user.ID, user.Username, user.SuperAdmin, env.TokenExpiry)
		if err != nil {
			log.Error().Err(err).Str("username", user.Username).Msg("Failed to generate JWT token")
			writeError(w, http.StatusInternalServerError, "Error generating token", nil)
			return
		}

		if err := env.Users.UpdateLastLogin(r.Context(), user.ID); err != nil {
			log.Error().Err(err).Str("username", user.Username).Msg("Failed to update last_login")
		}

		log.Info().Str("username", user.Username).Int64("user_id", user.ID).Msg("Successful login")
		writeJSON(w, http.StatusOK, map[string]string{
			"token": token,
		})
	}
}
