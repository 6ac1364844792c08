package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"order-management-server/internal/apperrors"
	"order-management-server/internal/ports"
	"order-management-server/internal/util"

	"github.com/go-chi/chi/v5"
)

// EntityHandler : HTTP плумбинг CRUD, общий для всех пяти сущностей.
// Swagger-описание маршрутов собрано в пакете docs.
type EntityHandler[E any] struct {
	service ports.EntityService[E]
}

func NewEntityHandler[E any](service ports.EntityService[E]) *EntityHandler[E] {
	return &EntityHandler[E]{service: service}
}

// Routes : монтирует стандартный набор CRUD маршрутов
func (h *EntityHandler[E]) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.GetByID)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)
	})
}

func (h *EntityHandler[E]) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	entities, err := h.service.List(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, entities)
}

func (h *EntityHandler[E]) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		util.HandleError(w, "неверный формат идентификатора", http.StatusBadRequest)
		return
	}

	entity, err := h.service.GetByID(ctx, id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, entity)
}

func (h *EntityHandler[E]) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var entity E
	if err := json.NewDecoder(r.Body).Decode(&entity); err != nil {
		util.HandleError(w, "неверный формат тела запроса", http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(ctx, &entity)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusCreated, created)
}

func (h *EntityHandler[E]) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		util.HandleError(w, "неверный формат идентификатора", http.StatusBadRequest)
		return
	}

	var entity E
	if err := json.NewDecoder(r.Body).Decode(&entity); err != nil {
		util.HandleError(w, "неверный формат тела запроса", http.StatusBadRequest)
		return
	}

	if _, err := h.service.Update(ctx, id, &entity); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *EntityHandler[E]) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		util.HandleError(w, "неверный формат идентификатора", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func handleServiceError(w http.ResponseWriter, err error) {
	log.Println(err)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		util.HandleError(w, "сущность не найдена", http.StatusNotFound)
	case errors.Is(err, apperrors.ErrKeyMismatch):
		util.HandleError(w, "идентификатор в пути не совпадает с телом запроса", http.StatusBadRequest)
	case errors.Is(err, apperrors.ErrConcurrencyConflict):
		util.HandleError(w, "конфликт конкурентного обновления, повторите запрос", http.StatusConflict)
	case errors.Is(err, apperrors.ErrStorageUnavailable):
		util.HandleError(w, "хранилище временно недоступно", http.StatusServiceUnavailable)
	default:
		util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}
