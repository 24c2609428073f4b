package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"migration-backend/internal/githubclient"
	"migration-backend/internal/shared/server/middleware"
	"migration-backend/internal/shared/server/respond"
)

// registerMeRoutes attaches the /me endpoint, which proxies the GitHub
// identity of the caller's token.
func registerMeRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", meHandler)
}

func meHandler(c *gin.Context) {
	token := middleware.GitHubTokenFromContext(c)
	if token == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}

	client := githubclient.NewClient(token, nil)
	user, err := client.AuthenticatedUser(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}

	response := gin.H{
		"login": user.Login,
	}
	if user.Name != "" {
		response["name"] = user.Name
	}
	if user.Email != "" {
		response["email"] = user.Email
	}
	if user.AvatarURL != "" {
		response["avatarUrl"] = user.AvatarURL
	}

	respond.JSON(c, http.StatusOK, response)
}
