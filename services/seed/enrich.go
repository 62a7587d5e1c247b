package seed

import (
	"context"
	"fmt"
	"time"

	"bookingdesk/models"
)

// Enricher rewrites a fixture record before it is written. It must not
// modify its input.
type Enricher func(ctx context.Context, rec models.Record) (models.Record, error)

// Timestamp formats t the way the dashboard expects createdAt values:
// ISO-8601, UTC, millisecond precision.
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// CategoryEnricher attaches createdAt.
func CategoryEnricher(now func() time.Time) Enricher {
	return func(_ context.Context, rec models.Record) (models.Record, error) {
		out := rec.Clone()
		out.Set(models.FieldCreatedAt, Timestamp(now()))
		return out, nil
	}
}

// ServiceEnricher attaches createdAt and resolves local mainImage and
// detailedImages entries. Remote entries and non-string values are kept.
// A missing or null detailedImages becomes an empty list.
func ServiceEnricher(now func() time.Time, images ImageResolver) Enricher {
	return func(ctx context.Context, rec models.Record) (models.Record, error) {
		out := rec.Clone()
		out.Set(models.FieldCreatedAt, Timestamp(now()))
		name := rec.Name()

		if v, ok := out.Get(models.FieldMainImage); ok {
			if ref, ok := v.(string); ok && IsLocalPath(ref) {
				remote, err := images.Resolve(ctx, ImageRef{Path: ref, Size: MainImageSize, Label: name})
				if err != nil {
					return models.Record{}, err
				}
				out.Set(models.FieldMainImage, remote)
			}
		}

		v, _ := out.Get(models.FieldDetailedImages)
		switch refs := v.(type) {
		case nil:
			out.Set(models.FieldDetailedImages, []interface{}{})
		case []interface{}:
			resolved := make([]interface{}, len(refs))
			for i, entry := range refs {
				ref, ok := entry.(string)
				if !ok || !IsLocalPath(ref) {
					resolved[i] = entry
					continue
				}
				remote, err := images.Resolve(ctx, ImageRef{
					Path:  ref,
					Size:  DetailImageSize,
					Label: fmt.Sprintf("%s %d", name, i+1),
				})
				if err != nil {
					return models.Record{}, err
				}
				resolved[i] = remote
			}
			out.Set(models.FieldDetailedImages, resolved)
		}
		return out, nil
	}
}
