package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tavvy/tavvy-pros-api/internal/middleware"
	"github.com/tavvy/tavvy-pros-api/internal/models"
	"github.com/tavvy/tavvy-pros-api/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)

	_ = logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
		ServiceName: "handlers-test",
	})
}

// withTestSession injects an authenticated session, standing in for the
// session cookie middleware.
func withTestSession(userID, email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ProSessionContextKey, &models.ProSession{
			UserID: userID,
			Email:  email,
		})
		c.Next()
	}
}
