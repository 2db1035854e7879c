package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"shodart.org/internal/auth"
)

const bearerScheme = "Bearer "

var errMissingBearer = errors.New("missing bearer token")

// extractBearerToken достаёт токен из заголовка Authorization.
// Схема сравнивается без учёта регистра, как того требует RFC 7235.
func extractBearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingBearer
	}
	if len(header) < len(bearerScheme) || !strings.EqualFold(header[:len(bearerScheme)], bearerScheme) {
		return "", errMissingBearer
	}
	token := strings.TrimSpace(header[len(bearerScheme):])
	if token == "" {
		return "", errMissingBearer
	}
	return token, nil
}

func unauthenticated(w http.ResponseWriter, r *http.Request, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="shodart"`)
	writeError(w, r, http.StatusUnauthorized, msg)
}

func permissionDenied(w http.ResponseWriter, r *http.Request, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="shodart", error="insufficient_scope"`)
	writeError(w, r, http.StatusForbidden, msg)
}

// Authenticate разбирает bearer-токен и кладёт в контекст принципала,
// собранного из актуальной записи в хранилище. Любая причина отказа
// (нет заголовка, битый токен, удалённый или урезанный в правах субъект)
// отвечает одинаковым 401. Отказ самого хранилища — это 500, а не 401:
// маскировать аварию под невалидный токен нельзя.
func (a *API) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := extractBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			unauthenticated(w, r, "authentication required")
			return
		}
		principal, err := a.resolver.Resolve(r.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrUnauthenticated) {
				unauthenticated(w, r, "invalid token")
				return
			}
			writeError(w, r, http.StatusInternalServerError, "authentication unavailable")
			return
		}
		ctx := auth.ContextWithPrincipal(r.Context(), principal)
		ctx = auth.ContextWithToken(ctx, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole пропускает только принципалов с одной из перечисленных
// ролей. Отказ — 403, в отличие от 401 при отсутствии аутентификации.
func RequireRole(allowed ...auth.Role) Middleware {
	names := make([]string, len(allowed))
	for i, role := range allowed {
		names[i] = string(role)
	}
	msg := "requires one of roles: " + strings.Join(names, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := auth.PrincipalFromContext(r.Context())
			if !ok {
				unauthenticated(w, r, "authentication required")
				return
			}
			if !principal.HasRole(allowed...) {
				permissionDenied(w, r, msg)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireCapability пропускает только принципалов с данным флагом.
func RequireCapability(capability auth.Capability) Middleware {
	msg := "requires capability: " + string(capability)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := auth.PrincipalFromContext(r.Context())
			if !ok {
				unauthenticated(w, r, "authentication required")
				return
			}
			if !principal.HasCapability(capability) {
				permissionDenied(w, r, msg)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
