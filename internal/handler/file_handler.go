package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"order-management-server/config"
	"order-management-server/internal/ports"
	"order-management-server/internal/util"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// syncUploadLimit : файлы меньше этого размера уходят в S3 синхронно,
// крупные — в фоне через pre-signed PUT URL
const syncUploadLimit = 5 << 20

// FileHandler : загрузка и выдача бинарных файлов (изображений товаров).
// Файлы не кэшируются — доступ к ним всегда идёт напрямую через S3.
type FileHandler struct {
	storage ports.S3Storage
	cfg     *config.TTL
}

func NewFileHandler(storage ports.S3Storage, cfg *config.TTL) *FileHandler {
	return &FileHandler{storage: storage, cfg: cfg}
}

func (h *FileHandler) Routes(r chi.Router) {
	r.Post("/", h.Upload)
	r.Get("/{name}", h.Download)
	r.Delete("/{name}", h.Delete)
}

// Upload : принимает multipart файл, кладёт его в S3 и возвращает
// pre-signed GET URL со сроком действия из конфигурации (1 час)
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		util.HandleError(w, "файл не найден в запросе", http.StatusBadRequest)
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		util.HandleError(w, "ошибка чтения файла", http.StatusInternalServerError)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(fileBytes)
	}

	fileExt := filepath.Ext(header.Filename)
	fileName := strings.TrimSuffix(header.Filename, fileExt)
	objectName := fmt.Sprintf("%s-%s%s",
		url.PathEscape(fileName),
		uuid.New().String()[:8],
		fileExt,
	)
	storagePath := "images/" + objectName

	expire := time.Duration(h.cfg.PresignedURL) * time.Second

	if len(fileBytes) <= syncUploadLimit {
		if err := h.storage.PutObject(ctx, storagePath, contentType, fileBytes); err != nil {
			handleServiceError(w, err)
			return
		}
	} else {
		putURL, err := h.storage.GeneratePresignedPutURL(ctx, storagePath, expire)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		uploader := util.NewS3Uploader()
		uploader.UploadAsync(putURL, contentType, fileBytes)
	}

	getURL, err := h.storage.GeneratePresignedGetURL(ctx, storagePath, expire)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusAccepted, map[string]interface{}{
		"name":      objectName,
		"mime":      contentType,
		"size":      len(fileBytes),
		"url":       getURL,
		"expire_in": h.cfg.PresignedURL,
	})
}

// Download : отдаёт содержимое файла из S3
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	name := chi.URLParam(r, "name")
	if name == "" {
		util.HandleError(w, "имя файла не задано", http.StatusBadRequest)
		return
	}

	data, err := h.storage.GetObject(ctx, "images/"+name)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Delete : удаляет файл из S3
func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	name := chi.URLParam(r, "name")
	if name == "" {
		util.HandleError(w, "имя файла не задано", http.StatusBadRequest)
		return
	}

	if err := h.storage.DeleteObject(ctx, "images/"+name); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
