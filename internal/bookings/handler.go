package bookings

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"bookinub-backend/internal/httpx"
	"bookinub-backend/internal/middleware"
	"bookinub-backend/internal/transport"
	"bookinub-backend/internal/validation"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service *Service
	val     *validation.Validator
	log     *slog.Logger
}

func NewHandler(service *Service, val *validation.Validator, log *slog.Logger) *Handler {
	return &Handler{
		service: service,
		val:     val,
		log:     log,
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := h.service.ListAll(ctx)
	if err != nil {
		h.writeServiceError(w, log, "bookings list", err)
		return
	}

	log.Info("bookings list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req CreateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("bookings create: invalid json", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Create(ctx, req)
	if err != nil {
		h.writeServiceError(w, log, "bookings create", err)
		return
	}

	log.Info("bookings create: ok",
		slog.String("booking_id", item.ID),
		slog.String("service", item.Service),
		slog.String("date", item.Date),
		slog.String("time", item.Time),
	)
	transport.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("bookings get: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.Get(ctx, id)
	if err != nil {
		h.writeServiceError(w, log.With(slog.String("booking_id", id)), "bookings get", err)
		return
	}

	log.Info("bookings get: ok", slog.String("booking_id", id))
	transport.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) Services(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items": KnownServices,
	})
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	limit, offset, err := httpx.ParseLimitOffset(r.URL.Query(), 50, 200)
	if err != nil {
		log.Warn("admin bookings list: invalid query", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	filter := ListFilter{
		Status: Status(r.URL.Query().Get("status")),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, total, err := h.service.ListAdmin(ctx, filter, limit, offset)
	if err != nil {
		h.writeServiceError(w, log, "admin bookings list", err)
		return
	}

	log.Info("admin bookings list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items":  items,
		"limit":  limit,
		"offset": offset,
		"total":  total,
	})
}

func (h *Handler) AdminUpdateStatus(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("admin bookings status: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	var req StatusUpdateRequest
	if err := httpx.DecodeJSONStrict(r.Body, &req); err != nil {
		log.Warn("admin bookings status: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		log.Warn("admin bookings status: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.UpdateStatus(ctx, id, Status(req.Status))
	if err != nil {
		h.writeServiceError(w, log.With(slog.String("booking_id", id)), "admin bookings status", err)
		return
	}

	log.Info("admin bookings status: ok", slog.String("booking_id", id), slog.String("status", string(item.Status)))
	transport.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		log.Warn(op+": validation error", slog.String("error", verr.Error()))
		transport.WriteError(w, http.StatusBadRequest, verr.Error(), verr.Fields())
	case errors.Is(err, ErrNotFound):
		log.Warn(op + ": not found")
		transport.WriteError(w, http.StatusNotFound, "booking not found", nil)
	case errors.Is(err, ErrInvalidStatus):
		log.Warn(op + ": invalid status")
		transport.WriteError(w, http.StatusBadRequest, "invalid status", nil)
	case errors.Is(err, ErrInvalidTransition):
		log.Warn(op+": invalid transition", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, ErrStoreUnavailable):
		log.Error(op+": database unavailable", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusServiceUnavailable, "database unavailable", nil)
	default:
		log.Error(op+": internal error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "internal error", nil)
	}
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
