package storage

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// MediaService defines the image hosting operations used by the import tools.
type MediaService interface {
	UploadImage(ctx context.Context, localFilePath, publicID string) (string, error)
	DeleteImage(ctx context.Context, publicID string) error
}

// Uploader is the subset of the Cloudinary upload API the service relies on.
type Uploader interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// CloudinaryMediaService implements MediaService on top of Cloudinary.
type CloudinaryMediaService struct {
	upload Uploader
	folder string
}

// NewMediaService creates a new CloudinaryMediaService uploading into folder.
func NewMediaService(upload Uploader, folder string) *CloudinaryMediaService {
	return &CloudinaryMediaService{
		upload: upload,
		folder: folder,
	}
}

// UploadImage uploads the file under a deterministic public ID so that
// re-running an import overwrites the asset instead of duplicating it.
// It returns the secure delivery URL.
func (s *CloudinaryMediaService) UploadImage(ctx context.Context, localFilePath, publicID string) (string, error) {
	if publicID == "" {
		publicID = PublicIDFor(localFilePath)
	}
	params := uploader.UploadParams{
		Folder:         s.folder,
		PublicID:       publicID,
		Overwrite:      api.Bool(true),
		UniqueFilename: api.Bool(false),
	}
	result, err := s.upload.Upload(ctx, localFilePath, params)
	if err != nil {
		return "", fmt.Errorf("CloudinaryMediaService: failed to upload file: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("CloudinaryMediaService: no secure URL returned")
	}
	return result.SecureURL, nil
}

// DeleteImage deletes an image from Cloudinary given its public ID.
func (s *CloudinaryMediaService) DeleteImage(ctx context.Context, publicID string) error {
	if _, err := s.upload.Destroy(ctx, uploader.DestroyParams{PublicID: path.Join(s.folder, publicID)}); err != nil {
		return fmt.Errorf("CloudinaryMediaService: failed to delete file: %w", err)
	}
	return nil
}

// PublicIDFor derives a stable public ID from a local path: the extension is
// dropped and separators become dashes, e.g. "/img/tours/x.png" -> "img-tours-x".
func PublicIDFor(localPath string) string {
	p := filepath.ToSlash(localPath)
	p = strings.TrimSuffix(p, path.Ext(p))
	p = strings.Trim(p, "/")
	return strings.ReplaceAll(p, "/", "-")
}
