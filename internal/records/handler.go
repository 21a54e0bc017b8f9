package records

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"medvault-backend/internal/shared/server/middleware"
	"medvault-backend/internal/shared/server/respond"
)

const maxUploadSize = 20 << 20 // 20MB

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches file record routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/files/upload", h.upload)
	rg.GET("/files", h.list)
	rg.DELETE("/files/:id", h.delete)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		if isBodyTooLarge(err) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "file exceeds the upload size limit")
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "No file uploaded")
		return
	}
	category := c.PostForm("category")

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file")
		return
	}
	defer file.Close()

	rec, err := h.Svc.Upload(c.Request.Context(), userID, fileHeader.Filename, category, file)
	if err != nil {
		switch {
		case isBodyTooLarge(err):
			respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "file exceeds the upload size limit")
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, "extraction_failed", err.Error())
		}
		return
	}
	c.Set("recordId", rec.ID)

	respond.JSON(c, http.StatusOK, gin.H{
		"message": "File uploaded and data saved!",
		"data":    toResponse(rec),
	})
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	recs, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list files")
		return
	}

	resp := make([]FileRecordResponse, 0, len(recs))
	for _, rec := range recs {
		resp = append(resp, toResponse(rec))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) delete(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	recordID := c.Param("id")

	err := h.Svc.Delete(c.Request.Context(), userID, recordID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "File not found")
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete file")
		}
		return
	}
	c.Set("recordId", recordID)

	respond.JSON(c, http.StatusOK, gin.H{"message": "File deleted"})
}
