package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ViewerHeader carries the opaque board viewer id chosen by the UI
const ViewerHeader = "X-Viewer-ID"

// AnonymousViewer is used when the request names no viewer
const AnonymousViewer = "anonymous"

const viewerKey = "viewer_id"

const maxViewerIDLength = 64

// Viewer resolves the viewer id of the request and stores it in the context.
// Per-viewer state (expanded attachment panels) is keyed by this id; it is
// not an authenticated identity.
func Viewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer := strings.TrimSpace(c.GetHeader(ViewerHeader))
		if viewer == "" {
			viewer = strings.TrimSpace(c.Query("viewer"))
		}
		if viewer == "" || len(viewer) > maxViewerIDLength {
			viewer = AnonymousViewer
		}
		c.Set(viewerKey, viewer)
		c.Next()
	}
}

// GetViewerID returns the viewer id set by Viewer, or AnonymousViewer
func GetViewerID(c *gin.Context) string {
	if v, ok := c.Get(viewerKey); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return AnonymousViewer
}
