package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const githubTokenKey = "githubToken"

// GitHubToken extracts an optional GitHub access token from the request and
// stores it in context. Requests without a token proceed unauthenticated;
// public repositories do not require one.
//
// Accepted forms:
//
//	Authorization: Bearer <token>
//	Authorization: token <token>
//	X-Github-Token: <token>
func GitHubToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		token := tokenFromHeaders(c)
		if token != "" {
			c.Set(githubTokenKey, token)
		}
		c.Next()
	}
}

func tokenFromHeaders(c *gin.Context) string {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader != "" {
		for _, scheme := range []string{"Bearer ", "token "} {
			if len(authHeader) > len(scheme) && strings.EqualFold(authHeader[:len(scheme)], scheme) {
				return strings.TrimSpace(authHeader[len(scheme):])
			}
		}
	}
	return strings.TrimSpace(c.GetHeader("X-Github-Token"))
}

// GitHubTokenFromContext fetches the token stored by the GitHubToken
// middleware. Empty when the request carried no token.
func GitHubTokenFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(githubTokenKey)
	if token, ok := val.(string); ok {
		return token
	}
	return ""
}
