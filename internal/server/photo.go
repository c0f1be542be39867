// photo.go - Profile photo upload: a multipart image streamed to object
// storage, with the resulting URL persisted on the donor record.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// imageExtensions maps the accepted image content types to the extension
// used for the stored object key.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// updatePhotoHandler handles POST /donor/update/photo/{number}. The path
// number must be the donor's primary mobile. The request body is multipart
// form data with the image under the "image" field. The part is streamed to
// object storage without buffering; the donor row is only touched after the
// object is stored.
func (s *Server) updatePhotoHandler(w http.ResponseWriter, r *http.Request) {
	if s.minioClient == nil {
		writeMsg(w, http.StatusServiceUnavailable, "photo storage unavailable")
		return
	}

	if s.cfg.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	}

	number := r.PathValue("number")
	donor, err := s.donors.FindByMobile(r.Context(), number)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeMsg(w, http.StatusNotFound, "Not Found")
			return
		}
		Error("photo: lookup failed", map[string]any{"number": number}, err)
		writeMsg(w, http.StatusInternalServerError, "server error")
		return
	}

	mr, err := r.MultipartReader()
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "bad multipart")
		return
	}

	var imagePart io.Reader
	var contentType string

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			writeMsg(w, http.StatusBadRequest, "bad multipart")
			return
		}
		defer func() { _ = part.Close() }()

		if part.FormName() != "image" {
			continue
		}

		imagePart = part
		contentType = part.Header.Get("Content-Type")
		break
	}

	if imagePart == nil {
		writeMsg(w, http.StatusBadRequest, "missing image")
		return
	}

	ext, ok := imageExtensions[contentType]
	if !ok {
		writeMsg(w, http.StatusBadRequest, "unsupported image type")
		return
	}

	objectKey := "profiles/" + uuid.NewString() + ext

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	info, err := s.minioClient.PutObject(
		ctx,
		s.bucketName,
		objectKey,
		imagePart,
		-1,
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		GetMetrics().RecordPhotoUploadError()
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeMsg(w, http.StatusRequestEntityTooLarge, "image too large")
			return
		}
		Error("photo: putobject failed", map[string]any{
			"request_id": RequestIDFromContext(r.Context()),
			"object_key": objectKey,
		}, err)
		writeMsg(w, http.StatusBadGateway, "upload failed")
		return
	}

	donor.Image = s.objectURL(objectKey)
	if err := s.donors.Update(r.Context(), donor); err != nil {
		Error("photo: write failed", map[string]any{"donor_id": donor.ID}, err)
		writeMsg(w, http.StatusInternalServerError, "failed to update donor")
		return
	}

	GetMetrics().RecordPhotoUpload(info.Size)
	Info("photo uploaded", map[string]any{"mobile": donor.Mobile, "bytes": info.Size})
	writeJSON(w, http.StatusOK, donor)
}
