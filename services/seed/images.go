package seed

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"bookingdesk/services/storage"

	"go.uber.org/zap"
)

const (
	MainImageSize   = "600x400"
	DetailImageSize = "400x300"
)

// ImageRef describes a local media reference found in a service record.
type ImageRef struct {
	Path  string // the local-style path as written in the fixture
	Size  string // MainImageSize or DetailImageSize
	Label string // placeholder text: the service name, plus " <n>" for detail images
}

// ImageResolver turns a local media reference into a remote URL.
type ImageResolver interface {
	Resolve(ctx context.Context, ref ImageRef) (string, error)
}

// IsLocalPath reports whether a media reference is a local filesystem-style path.
func IsLocalPath(ref string) bool {
	return strings.HasPrefix(ref, "/")
}

// uriComponent keeps the characters encodeURIComponent leaves alone and
// writes spaces as %20.
var uriComponent = strings.NewReplacer("+", "%20", "%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")

func encodeURIComponent(s string) string {
	return uriComponent.Replace(url.QueryEscape(s))
}

// Placeholder builds https://<host>/<size>/<bg>/<fg>?text=<label> URLs.
type Placeholder struct {
	Host       string
	Background string
	Foreground string
}

func DefaultPlaceholder() Placeholder {
	return Placeholder{Host: "via.placeholder.com", Background: "4F46E5", Foreground: "ffffff"}
}

func (p Placeholder) URL(size, label string) string {
	return fmt.Sprintf("https://%s/%s/%s/%s?text=%s", p.Host, size, p.Background, p.Foreground, encodeURIComponent(label))
}

// Resolve implements ImageResolver; it never fails.
func (p Placeholder) Resolve(_ context.Context, ref ImageRef) (string, error) {
	return p.URL(ref.Size, ref.Label), nil
}

// MediaResolver uploads the referenced file from Root to the media service
// when it exists locally, and falls back to Fallback otherwise.
type MediaResolver struct {
	Media    storage.MediaService
	Root     string
	Fallback ImageResolver
	Logger   *zap.Logger
}

func (m *MediaResolver) Resolve(ctx context.Context, ref ImageRef) (string, error) {
	localFile := filepath.Join(m.Root, filepath.FromSlash(strings.TrimPrefix(ref.Path, "/")))
	info, err := os.Stat(localFile)
	if err != nil || info.IsDir() {
		m.Logger.Debug("seed: local image not found, using placeholder", zap.String("path", ref.Path))
		return m.Fallback.Resolve(ctx, ref)
	}

	remote, err := m.Media.UploadImage(ctx, localFile, storage.PublicIDFor(ref.Path))
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", ref.Path, err)
	}
	m.Logger.Info("seed: uploaded image", zap.String("path", ref.Path), zap.String("url", remote))
	return remote, nil
}
