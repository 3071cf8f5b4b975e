package file

import (
	"net/http"
	"time"

	"github.com/rentwheels/car-rental-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "file not found")
	ErrUnsupportedContent = apperror.New(http.StatusBadRequest, "only image uploads are supported")
	ErrNoThumbnail        = apperror.New(http.StatusNotFound, "thumbnail not available")
)

// File is a stored car photo and its metadata.
type File struct {
	ID            string
	UserID        string
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// FileURL returns the public URL for accessing a file by its ID.
func FileURL(id string) string {
	return "/files/" + id
}

// ThumbnailURL returns the public URL for a file's thumbnail.
func ThumbnailURL(id string) string {
	return "/files/" + id + "/thumbnail"
}
