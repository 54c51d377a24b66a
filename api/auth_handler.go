package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fundspark/fundspark-backend/auth"
	"github.com/fundspark/fundspark-backend/database"
	"github.com/fundspark/fundspark-backend/errs"
	"github.com/fundspark/fundspark-backend/models"
)

// maxLoginAge is how long a widget payload stays acceptable after auth_date.
const maxLoginAge = 1800 * time.Second

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	tokens    auth.TokenManager
	botToken  string
}

func newAuthHandler(userRepo *database.UserRepo, tokens auth.TokenManager, botToken string) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		tokens:    tokens,
		botToken:  botToken,
	}
}

type loginResponse struct {
	Success     bool          `json:"success"`
	AccessToken string        `json:"access_token"`
	ExpiresAt   string        `json:"expiresAt"`
	IsNew       bool          `json:"is_new"`
	User        loginUserInfo `json:"user"`
}

type loginUserInfo struct {
	TelegramID int64   `json:"telegram_id"`
	FirstName  string  `json:"first_name"`
	LastName   *string `json:"last_name"`
	Username   *string `json:"username"`
	PhotoURL   *string `json:"photo_url"`
}

// telegramLogin verifies the widget payload, upserts the user and issues a
// session token. 201 for a first login, 200 for a returning user.
func (h authHandler) telegramLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload auth.TelegramLogin
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode login request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("login", err))
			return
		}

		if !auth.VerifyTelegramHash(payload, h.botToken) {
			h.responder.WriteError(w, errs.NewInvalidSignatureError())
			return
		}

		if time.Since(time.Unix(payload.AuthDate, 0)) > maxLoginAge {
			h.responder.WriteError(w, errs.NewExpiredLoginError())
			return
		}

		user, err := h.userRepo.FindByTelegramID(payload.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}

		isNew := user == nil
		if isNew {
			user = &models.User{
				TelegramID: payload.ID,
				FirstName:  payload.FirstName,
				LastName:   payload.LastName,
				Username:   payload.Username,
				PhotoURL:   payload.PhotoURL,
			}
			if err := h.userRepo.Add(user); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("create user", "user", err))
				return
			}
		} else {
			// Refresh display fields on every login
			user.FirstName = payload.FirstName
			user.LastName = payload.LastName
			user.Username = payload.Username
			user.PhotoURL = payload.PhotoURL
			if err := h.userRepo.Update(user); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("update user", "user", err))
				return
			}
		}

		token, expiry, err := h.tokens.Issue(user.ID)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to issue access token", err))
			return
		}

		status := http.StatusOK
		if isNew {
			status = http.StatusCreated
		}
		h.responder.WriteJSONStatus(w, status, loginResponse{
			Success:     true,
			AccessToken: token,
			ExpiresAt:   expiry.Format(time.RFC3339),
			IsNew:       isNew,
			User: loginUserInfo{
				TelegramID: user.TelegramID,
				FirstName:  user.FirstName,
				LastName:   user.LastName,
				Username:   user.Username,
				PhotoURL:   user.PhotoURL,
			},
		})
	}
}
