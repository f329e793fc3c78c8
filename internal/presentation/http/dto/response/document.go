package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Document sends a printable HTML document. The ETag is the document
// digest, so an unchanged document answers 304.
func Document(c *gin.Context, html, digest string) {
	etag := `"` + digest + `"`
	c.Header("ETag", etag)
	c.Header("Cache-Control", "private, no-cache")
	if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
