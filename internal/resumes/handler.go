package resumes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jobportal/backend/internal/middleware"
	"github.com/jobportal/backend/internal/models"
	"github.com/jobportal/backend/internal/respond"
	"github.com/jobportal/backend/internal/store"
)

// Word documents plus PDF, matching what employers can open.
var allowedMimeTypes = map[string]struct{}{
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

// ResumeStore defines the interface for resume metadata persistence.
type ResumeStore interface {
	Insert(ctx context.Context, resume *models.Resume) (string, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Resume, error)
	GetByID(ctx context.Context, id string) (*models.Resume, error)
	Delete(ctx context.Context, id string) error
}

// FileStore defines the interface for blob storage.
type FileStore interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, string, int64, error)
	Remove(ctx context.Context, key string) error
}

// Handler holds resume HTTP handlers.
type Handler struct {
	resumes   ResumeStore
	files     FileStore
	maxBytes  int64
	ownerOnly bool
	logger    *zap.Logger
}

func NewHandler(resumes ResumeStore, files FileStore, maxBytes int64, ownerOnlyDownload bool, logger *zap.Logger) *Handler {
	return &Handler{
		resumes:   resumes,
		files:     files,
		maxBytes:  maxBytes,
		ownerOnly: ownerOnlyDownload,
		logger:    logger,
	}
}

// Upload accepts a multipart "resume" file, validates its type and size
// and stores blob plus metadata. A rejected upload writes nothing; a
// failed metadata insert removes the already-written blob.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	// Bound the whole request body; the headroom covers multipart framing.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+64*1024)

	file, header, err := r.FormFile("resume")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(w, http.StatusBadRequest, "too_large",
				fmt.Sprintf("file size too large, maximum is %d bytes", h.maxBytes))
			return
		}
		respond.Error(w, http.StatusBadRequest, "validation_error", "no file uploaded")
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if _, ok := allowedMimeTypes[mimeType]; !ok {
		respond.Error(w, http.StatusBadRequest, "unsupported_type", "only PDF and Word documents are allowed")
		return
	}
	if header.Size > h.maxBytes {
		respond.Error(w, http.StatusBadRequest, "too_large",
			fmt.Sprintf("file size too large, maximum is %d bytes", h.maxBytes))
		return
	}

	key := uuid.New().String() + filepath.Ext(header.Filename)
	if err := h.files.Upload(r.Context(), key, file, header.Size, mimeType); err != nil {
		h.logger.Error("upload blob", zap.Error(err), zap.String("key", key))
		respond.Error(w, http.StatusInternalServerError, "internal_error", "server error while uploading resume")
		return
	}

	resume := &models.Resume{
		Jobseeker:    user.ID,
		Filename:     key,
		OriginalName: header.Filename,
		ObjectKey:    key,
		FileSize:     header.Size,
		MimeType:     mimeType,
	}
	if _, err := h.resumes.Insert(r.Context(), resume); err != nil {
		// Don't leave an orphaned blob behind.
		if rmErr := h.files.Remove(r.Context(), key); rmErr != nil {
			h.logger.Error("remove orphaned blob", zap.Error(rmErr), zap.String("key", key))
		}
		h.logger.Error("insert resume", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "internal_error", "server error while uploading resume")
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Resume uploaded successfully",
		"resume": models.ResumeView{
			ID:           resume.ID,
			OriginalName: resume.OriginalName,
			FileSize:     resume.FileSize,
			UploadedAt:   resume.UploadedAt,
		},
	})
}

// List returns the caller's active resumes, most recent first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	resumes, err := h.resumes.ListByOwner(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("list resumes", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "internal_error", "server error while fetching resumes")
		return
	}
	if resumes == nil {
		resumes = []models.Resume{}
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{"resumes": resumes})
}

// Download streams the stored file with its original name. Ownership is
// only enforced when the handler was configured owner-only.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	resume, err := h.resumes.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, "not_found", "resume not found")
		return
	}
	if h.ownerOnly {
		user := middleware.UserFromContext(r.Context())
		if user == nil || user.ID != resume.Jobseeker {
			respond.Error(w, http.StatusForbidden, "forbidden", "not authorized to download this resume")
			return
		}
	}

	rc, _, size, err := h.files.Open(r.Context(), resume.ObjectKey)
	if err != nil {
		respond.Error(w, http.StatusNotFound, "not_found", "file not found")
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", resume.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", resume.OriginalName))
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Error("stream resume", zap.Error(err), zap.String("key", resume.ObjectKey))
	}
}

// Delete removes the blob and the metadata record. Only the owner may
// delete, and a caller never observes one removed without the other.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	resume, err := h.resumes.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, "not_found", "resume not found")
		return
	}
	if resume.Jobseeker != user.ID {
		respond.Error(w, http.StatusForbidden, "forbidden", "not authorized to delete this resume")
		return
	}

	if err := h.files.Remove(r.Context(), resume.ObjectKey); err != nil {
		h.logger.Error("remove blob", zap.Error(err), zap.String("key", resume.ObjectKey))
		respond.Error(w, http.StatusInternalServerError, "internal_error", "server error while deleting resume")
		return
	}
	if err := h.resumes.Delete(r.Context(), resume.ID.Hex()); err != nil && !errors.Is(err, store.ErrNotFound) {
		h.logger.Error("delete resume record", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "internal_error", "server error while deleting resume")
		return
	}

	respond.JSON(w, http.StatusOK, map[string]interface{}{"message": "Resume deleted successfully"})
}

// ServeUpload proxies raw objects at /uploads/{key} without any
// authentication, mirroring the original static upload directory.
func (h *Handler) ServeUpload(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" {
		respond.Error(w, http.StatusNotFound, "not_found", "file not found")
		return
	}

	rc, contentType, size, err := h.files.Open(r.Context(), key)
	if err != nil {
		respond.Error(w, http.StatusNotFound, "not_found", "file not found")
		return
	}
	defer rc.Close()

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Error("stream upload", zap.Error(err), zap.String("key", key))
	}
}
