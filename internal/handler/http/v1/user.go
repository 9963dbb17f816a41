package v1

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/geo_checkin/internal/config"
)

const (
	userIDHeader  = "X-User-ID"
	userIDContext = "user_id"
)

// UserIDMiddleware определяет пользователя по заголовку X-User-ID.
// Аутентификации нет: без заголовка используется пользователь по умолчанию.
func UserIDMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(userIDHeader))
		if userID == "" {
			userID = cfg.DefaultUserID
		}
		c.Set(userIDContext, userID)
		c.Next()
	}
}

func userIDFrom(c *gin.Context) string {
	return c.GetString(userIDContext)
}
