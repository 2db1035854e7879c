package httpapi

import (
	"errors"
	"net/http"
	"time"

	"shodart.org/internal/auth"
	"shodart.org/internal/user"
)

type userResponse struct {
	ID                 string    `json:"id"`
	Login              string    `json:"login"`
	Role               string    `json:"role"`
	CanEditProducts    bool      `json:"canEditProducts"`
	CanManageLogistics bool      `json:"canManageLogistics"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Пароль и хеш наружу не отдаются никогда.
func toUserResponse(u *user.User) userResponse {
	return userResponse{
		ID:                 u.ID,
		Login:              u.Login,
		Role:               string(u.Role),
		CanEditProducts:    u.CanEditProducts,
		CanManageLogistics: u.CanManageLogistics,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

type createUserRequest struct {
	Login              string `json:"login"`
	Password           string `json:"password"`
	Role               string `json:"role"`
	CanEditProducts    bool   `json:"canEditProducts"`
	CanManageLogistics bool   `json:"canManageLogistics"`
}

type updateUserRequest struct {
	Login              *string `json:"login"`
	Password           *string `json:"password"`
	Role               *string `json:"role"`
	CanEditProducts    *bool   `json:"canEditProducts"`
	CanManageLogistics *bool   `json:"canManageLogistics"`
}

func (a *API) handleUsersList(w http.ResponseWriter, r *http.Request) {
	list, err := a.users.List(r.Context())
	if err != nil {
		a.handleUserError(w, r, err)
		return
	}
	out := make([]userResponse, 0, len(list))
	for _, u := range list {
		out = append(out, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) handleUserGet(w http.ResponseWriter, r *http.Request) {
	u, err := a.users.Find(r.Context(), r.PathValue("id"))
	if err != nil {
		a.handleUserError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (a *API) handleUserCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	u, err := a.users.Create(r.Context(), user.CreateInput{
		Login:              req.Login,
		Password:           req.Password,
		Role:               auth.Role(req.Role),
		CanEditProducts:    req.CanEditProducts,
		CanManageLogistics: req.CanManageLogistics,
	})
	if err != nil {
		a.handleUserError(w, r, err)
		return
	}
	w.Header().Set("Location", "/users/"+u.ID)
	writeJSON(w, http.StatusCreated, toUserResponse(u))
}

func (a *API) handleUserUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	in := user.UpdateInput{
		Login:              req.Login,
		Password:           req.Password,
		CanEditProducts:    req.CanEditProducts,
		CanManageLogistics: req.CanManageLogistics,
	}
	if req.Role != nil {
		role := auth.Role(*req.Role)
		in.Role = &role
	}
	u, err := a.users.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		a.handleUserError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (a *API) handleUserDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.users.Delete(r.Context(), r.PathValue("id")); err != nil {
		a.handleUserError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleUserError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, user.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "user not found")
	case errors.Is(err, user.ErrLoginExists):
		writeError(w, r, http.StatusConflict, "login already taken")
	case errors.Is(err, user.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
