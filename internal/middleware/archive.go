package middleware

import (
	"context"
	"net/http"

	"github.com/drstein77/shopcart/internal/compress"
)

type ctxKey int

const archiveTypeKey ctxKey = iota

// ArchiveTypeMiddleware reads the archiveType query parameter, falling back
// to zip for missing or unknown values, and stores it in the request context.
func ArchiveTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		archiveType := r.URL.Query().Get("archiveType")
		if archiveType != compress.TypeTar && archiveType != compress.TypeZip {
			archiveType = compress.TypeZip // Default value
		}

		next.ServeHTTP(w, r.WithContext(WithArchiveType(r.Context(), archiveType)))
	})
}

// WithArchiveType returns a copy of ctx carrying the archive type.
func WithArchiveType(ctx context.Context, archiveType string) context.Context {
	return context.WithValue(ctx, archiveTypeKey, archiveType)
}

// ArchiveType returns the archive type chosen by ArchiveTypeMiddleware.
func ArchiveType(ctx context.Context) string {
	if v, ok := ctx.Value(archiveTypeKey).(string); ok {
		return v
	}
	return compress.TypeZip
}
