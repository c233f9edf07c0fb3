package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"church-cms/internal/core/domain"
	"church-cms/internal/core/ports"
	"church-cms/pkg/apperror"

	"github.com/rs/zerolog"
)

var (
	allowedExtensions = map[string]string{
		".jpg": domain.BucketImages, ".jpeg": domain.BucketImages, ".png": domain.BucketImages,
		".gif": domain.BucketImages, ".webp": domain.BucketImages,
		".mp3": domain.BucketSermonsAudio, ".wav": domain.BucketSermonsAudio,
		".m4a": domain.BucketSermonsAudio, ".ogg": domain.BucketSermonsAudio,
		".mp4": domain.BucketSermonsVideo, ".mov": domain.BucketSermonsVideo,
		".avi": domain.BucketSermonsVideo, ".webm": domain.BucketSermonsVideo,
	}
	extensionContentTypes = map[string]string{
		".jpg": "image/jpeg", ".jpeg": "image/jpeg", ".png": "image/png",
		".gif": "image/gif", ".webp": "image/webp",
		".mp3": "audio/mpeg", ".wav": "audio/wav", ".m4a": "audio/mp4", ".ogg": "audio/ogg",
		".mp4": "video/mp4", ".mov": "video/quicktime", ".avi": "video/x-msvideo", ".webm": "video/webm",
	}
	allowedMIMESubtype = regexp.MustCompile(`jpeg|jpg|png|gif|webp|mp3|mpeg|wav|m4a|ogg|mp4|quicktime|mov|avi|msvideo|webm`)
	unsafeNameChars    = regexp.MustCompile(`[^a-z0-9]`)
	unsafeFolderChars  = regexp.MustCompile(`[^a-z0-9_-]`)
)

// UploadConfig bounds what the relay accepts.
type UploadConfig struct {
	MaxFileSize int64
	MaxFiles    int
}

type uploadService struct {
	store ports.ObjectStore
	cfg   UploadConfig
	log   zerolog.Logger
	now   func() time.Time
}

// NewUploadService creates the upload relay. store may be nil when object
// storage is not configured.
func NewUploadService(store ports.ObjectStore, cfg UploadConfig, log zerolog.Logger) ports.UploadService {
	if cfg.MaxFiles <= 0 {
		cfg.MaxFiles = 10
	}
	return &uploadService{store: store, cfg: cfg, log: log, now: time.Now}
}

// Upload stores one file and returns where it landed.
func (s *uploadService) Upload(ctx context.Context, file ports.UploadFile, opts ports.UploadOptions) (*domain.StoredObject, error) {
	if s.store == nil {
		return nil, apperror.ErrStorageNotConfigured()
	}
	if opts.Bucket != "" && !domain.IsKnownBucket(opts.Bucket) {
		return nil, apperror.ErrUnknownBucket(opts.Bucket)
	}
	return s.put(ctx, file, opts)
}

// UploadMany stores each file independently; one failure does not abort the
// batch. Request-level problems fail the whole call.
func (s *uploadService) UploadMany(ctx context.Context, files []ports.UploadFile, opts ports.UploadOptions) ([]ports.UploadResult, error) {
	if s.store == nil {
		return nil, apperror.ErrStorageNotConfigured()
	}
	if len(files) == 0 {
		return nil, apperror.ErrNoFile()
	}
	if len(files) > s.cfg.MaxFiles {
		return nil, apperror.ErrTooManyFiles(s.cfg.MaxFiles)
	}
	if opts.Bucket != "" && !domain.IsKnownBucket(opts.Bucket) {
		return nil, apperror.ErrUnknownBucket(opts.Bucket)
	}

	results := make([]ports.UploadResult, 0, len(files))
	for _, f := range files {
		obj, err := s.put(ctx, f, opts)
		if err != nil {
			results = append(results, ports.UploadResult{OriginalName: f.Name, Error: clientMessage(err)})
			continue
		}
		results = append(results, ports.UploadResult{OriginalName: f.Name, Success: true, Object: obj})
	}
	return results, nil
}

// Delete removes bucket/path from the store.
func (s *uploadService) Delete(ctx context.Context, bucket, p string) error {
	if s.store == nil {
		return apperror.ErrStorageNotConfigured()
	}
	if bucket == "" || p == "" {
		return apperror.Validation("Bucket and path are required")
	}
	if !domain.IsKnownBucket(bucket) {
		return apperror.ErrUnknownBucket(bucket)
	}
	if strings.Contains(p, "..") {
		return apperror.Validation("Invalid path")
	}
	if err := s.store.Delete(ctx, bucket, strings.TrimPrefix(p, "/")); err != nil {
		return apperror.ErrUpstream("Failed to delete file", err)
	}
	s.log.Info().Str("bucket", bucket).Str("path", p).Msg("File deleted")
	return nil
}

func (s *uploadService) put(ctx context.Context, file ports.UploadFile, opts ports.UploadOptions) (*domain.StoredObject, error) {
	if len(file.Data) == 0 {
		return nil, apperror.ErrNoFile()
	}
	if s.cfg.MaxFileSize > 0 && int64(len(file.Data)) > s.cfg.MaxFileSize {
		return nil, apperror.ErrFileTooLarge()
	}
	if !Allowed(file.ContentType, file.Name) {
		return nil, apperror.ErrFileType(file.Name)
	}

	contentType := StoredContentType(file.ContentType, file.Name)
	bucket := opts.Bucket
	if bucket == "" {
		bucket = BucketFor(contentType, file.Name)
	}
	key := s.objectName(file.Name, opts.Folder)

	url, err := s.store.Put(ctx, bucket, key, contentType, file.Data)
	if err != nil {
		s.log.Error().Err(err).Str("bucket", bucket).Str("path", key).Msg("Upload failed")
		return nil, apperror.ErrUpstream("Failed to upload file", err)
	}
	s.log.Info().Str("bucket", bucket).Str("path", key).Int("size", len(file.Data)).Msg("File uploaded")

	return &domain.StoredObject{
		URL:          url,
		Path:         key,
		Bucket:       bucket,
		Size:         int64(len(file.Data)),
		MimeType:     contentType,
		OriginalName: file.Name,
	}, nil
}

// objectName builds <folder/><clean basename>_<millis>_<random><ext>.
func (s *uploadService) objectName(original, folder string) string {
	ext := strings.ToLower(path.Ext(original))
	base := strings.TrimSuffix(path.Base(strings.ReplaceAll(original, `\`, "/")), path.Ext(original))
	name := fmt.Sprintf("%s_%d_%s%s", unsafeNameChars.ReplaceAllString(strings.ToLower(base), "_"),
		s.now().UnixMilli(), randomSuffix(12), ext)

	if prefix := cleanFolder(folder); prefix != "" {
		return prefix + "/" + name
	}
	return name
}

func cleanFolder(folder string) string {
	var parts []string
	for _, seg := range strings.Split(folder, "/") {
		seg = unsafeFolderChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(seg)), "_")
		if seg == "" || strings.Trim(seg, "_") == "" {
			continue
		}
		parts = append(parts, seg)
	}
	return strings.Join(parts, "/")
}

// Allowed accepts a file when either its MIME type or its extension is on the
// media allowlist.
func Allowed(contentType, name string) bool {
	if _, ok := allowedExtensions[strings.ToLower(path.Ext(name))]; ok {
		return true
	}
	return allowedMediaType(contentType)
}

func allowedMediaType(contentType string) bool {
	family, subtype, ok := strings.Cut(strings.ToLower(contentType), "/")
	if !ok {
		return false
	}
	switch family {
	case "image", "audio", "video":
		return allowedMIMESubtype.MatchString(subtype)
	}
	return false
}

// StoredContentType is the Content-Type the object is served with. A declared
// type off the media allowlist is replaced by the one its extension implies,
// so a file admitted by extension alone is never served as e.g. text/html.
func StoredContentType(declared, name string) string {
	if allowedMediaType(declared) {
		return declared
	}
	if ct, ok := extensionContentTypes[strings.ToLower(path.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// BucketFor picks the bucket from the MIME family, then the extension,
// defaulting to images.
func BucketFor(contentType, name string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return domain.BucketImages
	case strings.HasPrefix(contentType, "audio/"):
		return domain.BucketSermonsAudio
	case strings.HasPrefix(contentType, "video/"):
		return domain.BucketSermonsVideo
	}
	if b, ok := allowedExtensions[strings.ToLower(path.Ext(name))]; ok {
		return b
	}
	return domain.BucketImages
}

func clientMessage(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.Detail != "" {
			return appErr.Detail
		}
		return appErr.Message
	}
	return "Upload failed"
}
