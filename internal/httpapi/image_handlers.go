package httpapi

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"shodart.org/internal/image"
)

type imageResponse struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	OriginalName string `json:"original_name"`
	Mimetype     string `json:"mimetype"`
	Size         int64  `json:"size"`
}

func toImageResponse(img *image.Image) imageResponse {
	return imageResponse{
		ID:           img.ID,
		URL:          img.URL(),
		OriginalName: img.OriginalName,
		Mimetype:     img.Mimetype,
		Size:         img.Size,
	}
}

func readUpload(hdr *multipart.FileHeader) (image.Upload, error) {
	f, err := hdr.Open()
	if err != nil {
		return image.Upload{}, fmt.Errorf("open part: %w", err)
	}
	defer f.Close()

	// один лишний байт, чтобы сервис увидел превышение лимита
	data, err := io.ReadAll(io.LimitReader(f, image.MaxFileSize+1))
	if err != nil {
		return image.Upload{}, fmt.Errorf("read part: %w", err)
	}
	return image.Upload{
		OriginalName: hdr.Filename,
		ContentType:  hdr.Header.Get("Content-Type"),
		Data:         data,
	}, nil
}

func (a *API) handleImageUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(image.MaxFileSize); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid multipart form")
		return
	}
	parts := r.MultipartForm.File["file"]
	if len(parts) == 0 {
		writeError(w, r, http.StatusBadRequest, `form field "file" is required`)
		return
	}
	up, err := readUpload(parts[0])
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "unreadable upload")
		return
	}
	img, err := a.images.Upload(r.Context(), up)
	if err != nil {
		a.handleImageError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toImageResponse(img))
}

func (a *API) handleImageUploadMultiple(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(image.MaxBatchSize * image.MaxFileSize); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid multipart form")
		return
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, r, http.StatusBadRequest, `form field "files" is required`)
		return
	}
	if len(files) > image.MaxBatchSize {
		writeError(w, r, http.StatusBadRequest,
			fmt.Sprintf("at most %d files per request", image.MaxBatchSize))
		return
	}

	out := make([]imageResponse, 0, len(files))
	for _, hdr := range files {
		up, err := readUpload(hdr)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "unreadable upload")
			return
		}
		img, err := a.images.Upload(r.Context(), up)
		if err != nil {
			a.handleImageError(w, r, err)
			return
		}
		out = append(out, toImageResponse(img))
	}
	writeJSON(w, http.StatusCreated, out)
}

// handleImageGet отдаёт сам файл. Имя файла — сгенерированный id,
// поэтому содержимое неизменяемо и кешируется на год.
func (a *API) handleImageGet(w http.ResponseWriter, r *http.Request) {
	img, err := a.images.Find(r.Context(), r.PathValue("id"))
	if err != nil {
		a.handleImageError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", img.Mimetype)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	http.ServeFile(w, r, img.Path)
}

func (a *API) handleImageError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, image.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "image not found")
	case errors.Is(err, image.ErrEmptyFile),
		errors.Is(err, image.ErrTooLarge),
		errors.Is(err, image.ErrUnsupportedType):
		writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
