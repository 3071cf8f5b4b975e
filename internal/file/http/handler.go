package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentwheels/car-rental-backend/internal/file"
	"github.com/rentwheels/car-rental-backend/internal/pkg/response"
)

type Handler struct {
	fileService file.Service
}

func NewHandler(fileService file.Service) *Handler {
	return &Handler{fileService: fileService}
}

// ServeFile handles GET /files/:id and streams the original image.
func (h *Handler) ServeFile(c *gin.Context) {
	stream, info, err := h.fileService.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", info.ContentType)
	c.Header("Content-Disposition", "inline; filename=\""+info.Filename+"\"")
	c.Header("Cache-Control", "public, max-age=86400")

	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, stream)
}

// ServeThumbnail handles GET /files/:id/thumbnail. Thumbnails are
// always JPEG.
func (h *Handler) ServeThumbnail(c *gin.Context) {
	stream, info, err := h.fileService.DownloadThumbnail(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", "image/jpeg")
	c.Header("Content-Disposition", "inline; filename=\""+info.Filename+"_thumb.jpg\"")
	c.Header("Cache-Control", "public, max-age=86400")

	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, stream)
}
