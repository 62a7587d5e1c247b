package utils

import (
	"fmt"

	"bookingdesk/config"
	"bookingdesk/services/storage"

	"github.com/cloudinary/cloudinary-go/v2"
)

// Cloudinary initializes and returns a Cloudinary-based MediaService.
func Cloudinary(cfg config.Config) (storage.MediaService, error) {
	if !cfg.CloudinaryEnabled() {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("utils.Cloudinary: failed to initialize Cloudinary: %w", err)
	}

	return storage.NewMediaService(&cld.Upload, cfg.CloudinaryFolder), nil
}
