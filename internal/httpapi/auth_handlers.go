package httpapi

import (
	"errors"
	"net/http"

	"shodart.org/internal/auth"
)

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// handleLogin обменивает логин и пароль на токен доступа. Все причины
// отказа выглядят для клиента одинаково.
func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	token, _, err := a.authn.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, r, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "login unavailable")
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{AccessToken: token})
}
