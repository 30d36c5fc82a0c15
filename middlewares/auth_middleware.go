package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/andrelmbraga/barraquinha/utils"
)

// AdminAuthMiddleware protege o painel administrativo. Aceita o token tanto
// no header Authorization quanto no cookie admin_auth (o painel web usa o
// cookie, scripts usam o header).
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""

		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
		if tokenString == "" {
			if cookie, err := c.Cookie("admin_auth"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("autenticação necessária"))
			c.Abort()
			return
		}

		claims, err := utils.ParseAdminToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}

		c.Set("role", claims.Role)
		c.Set("token", tokenString)
		c.Next()
	}
}
