package respond

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"cv-forge/internal/shared/util"
)

// fallbackFileName is offered when an artifact name cannot be sanitized.
const fallbackFileName = "download"

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}

// Attachment marks the response as a download named name. Non-ASCII names
// are also sent in the RFC 5987 filename* form.
func Attachment(c *gin.Context, name string) {
	c.Header("Content-Disposition", ContentDisposition(name))
}

// ContentDisposition builds the attachment header value for name.
func ContentDisposition(name string) string {
	name, err := util.SanitizeFileName(name)
	if err != nil {
		name = fallbackFileName
	}
	quoted := strings.NewReplacer(`"`, `\"`).Replace(name)
	value := `attachment; filename="` + quoted + `"`
	if !isASCII(name) {
		value += "; filename*=UTF-8''" + url.PathEscape(name)
	}
	return value
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
