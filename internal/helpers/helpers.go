package helpers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDKey  = "request_id"
	SessionIDKey  = "session_id"
	RequestHeader = "X-Request-ID"
	SessionCookie = "planner_session"
	SeqHeader     = "X-Submission-Seq"
	PageField     = "page"
)

// StringTrim trims spaces and surrounding quotes that clients sometimes
// send around form or header values.
func StringTrim(s string) string {
	s = strings.TrimSpace(s)
	return strings.Trim(s, "\"'")
}

func RequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// SessionID returns the planner session set by the Session middleware,
// falling back to the client IP when it is missing.
func SessionID(c *gin.Context) string {
	if id := c.GetString(SessionIDKey); id != "" {
		return id
	}
	return c.ClientIP()
}

// SubmissionKey scopes submission sequencing to one loaded page. The page
// script sends a UUID per page load; plain form posts fall back to the
// session alone.
func SubmissionKey(c *gin.Context) string {
	session := SessionID(c)
	page := StringTrim(c.PostForm(PageField))
	if page == "" || uuid.Validate(page) != nil {
		return session
	}
	return session + "/" + page
}

// WantsFragment reports whether the page script asked for the output
// area only rather than the full page.
func WantsFragment(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader("X-Requested-With"), "fetch")
}
