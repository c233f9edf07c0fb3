package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"church-cms/internal/adapter/http/dto"
	"church-cms/internal/core/ports"
	"church-cms/pkg/apperror"
	"church-cms/pkg/response"

	"github.com/gin-gonic/gin"
)

// multipartMemory is how much of a multipart body is kept in memory before
// spilling to temporary files during parsing.
const multipartMemory = 32 << 20

// UploadHandler handles /api/upload.
type UploadHandler struct {
	svc         ports.UploadService
	maxFileSize int64
}

// NewUploadHandler creates a new UploadHandler. Files are read up to one
// byte past maxFileSize so the service can reject them by size.
func NewUploadHandler(svc ports.UploadService, maxFileSize int64) *UploadHandler {
	return &UploadHandler{svc: svc, maxFileSize: maxFileSize}
}

// Upload handles POST /api/upload (field "file").
func (h *UploadHandler) Upload(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		response.Error(c, formError(err))
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, formError(err))
		return
	}
	file, err := h.read(fh)
	if err != nil {
		response.Error(c, err)
		return
	}

	obj, err := h.svc.Upload(c.Request.Context(), file, uploadOptions(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.UploadResponse{Success: true, StoredObject: obj})
}

// UploadMultiple handles POST /api/upload/multiple (field "files").
func (h *UploadHandler) UploadMultiple(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, formError(err))
		return
	}

	headers := form.File["files"]
	files := make([]ports.UploadFile, 0, len(headers))
	for _, fh := range headers {
		f, err := h.read(fh)
		if err != nil {
			response.Error(c, err)
			return
		}
		files = append(files, f)
	}

	results, err := h.svc.UploadMany(c.Request.Context(), files, uploadOptions(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.UploadBatchResponse{Success: true, Results: results})
}

// Delete handles DELETE /api/upload with body {bucket, path}.
func (h *UploadHandler) Delete(c *gin.Context) {
	var req dto.DeleteUploadRequest
	if !bind(c, &req) {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), req.Bucket, req.Path); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.SuccessResponse{Success: true, Message: "File deleted successfully"})
}

func (h *UploadHandler) read(fh *multipart.FileHeader) (ports.UploadFile, error) {
	f, err := fh.Open()
	if err != nil {
		return ports.UploadFile{}, apperror.InternalError(err)
	}
	defer f.Close()

	var r io.Reader = f
	if h.maxFileSize > 0 {
		r = io.LimitReader(f, h.maxFileSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return ports.UploadFile{}, apperror.InternalError(err)
	}
	return ports.UploadFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func uploadOptions(c *gin.Context) ports.UploadOptions {
	return ports.UploadOptions{
		Bucket: c.PostForm("bucket"),
		Folder: c.PostForm("folder"),
	}
}

// formError maps "no file in this request" shapes to ErrNoFile and leaves
// size errors for the response classifier.
func formError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return err
	}
	if errors.Is(err, multipart.ErrMessageTooLarge) {
		return apperror.ErrPayloadTooLarge()
	}
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return apperror.ErrNoFile()
	}
	return apperror.Validation("Malformed multipart body")
}
