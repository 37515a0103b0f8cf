package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

const (
	errorCodeInternal         = "internal"
	errorCodeRouteNotFound    = "route_not_found"
	errorCodeMethodNotAllowed = "method_not_allowed"
	internalErrorMessage      = "internal error"
)

// errorResponse — JSON-конверт ошибки.
type errorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// StatusForError сопоставляет вид ошибки с HTTP статусом.
func StatusForError(err error) int {
	switch domain.KindOf(err) {
	case domain.KindInvalidInput:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindDomain:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeDomainError пишет ошибку чекаута/расчёта. Внутренние детали наружу не уходят.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	kind := domain.KindOf(err)
	if kind == "" {
		writeError(w, r, http.StatusInternalServerError, errorCodeInternal, internalErrorMessage)
		return
	}
	writeError(w, r, StatusForError(err), string(kind), publicMessage(err))
}

// publicMessage возвращает сообщение доменной ошибки без обёрток инфраструктуры.
func publicMessage(err error) string {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		return domainErr.Error()
	}
	return err.Error()
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Success:   false,
		Error:     code,
		Message:   message,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
