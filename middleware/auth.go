package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Private-Fox7/Empathy-Pulse/store"
	"github.com/Private-Fox7/Empathy-Pulse/types"
	"github.com/Private-Fox7/Empathy-Pulse/utils"
)

// AuthMiddleware validates JWT bearer tokens for employee sessions and sets
// the employee in the request context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get the Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Authorization header required",
				"message": "Please provide a valid token",
			})
			c.Abort()
			return
		}

		// Check if the header starts with "Bearer "
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid token format",
				"message": "Token must be in format: Bearer <token>",
			})
			c.Abort()
			return
		}

		// Parse and validate the token
		claims, err := utils.VerifyToken(tokenString)
		if err != nil {
			log.Printf("🔍 AuthMiddleware: Token parsing error: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid token",
				"message": "Token is invalid or expired",
			})
			c.Abort()
			return
		}

		if claims.Role != types.RoleEmployee {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "Employee access required",
				"message": "This endpoint is for employee sessions",
			})
			c.Abort()
			return
		}

		// Get employee from the document store
		employee, err := store.Data.GetEmployee(claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Employee not found",
				"message": "Employee associated with token not found",
			})
			c.Abort()
			return
		}

		// Set employee in context
		c.Set("employee", *employee)
		c.Set("emp_id", employee.EmpID)

		c.Next()
	}
}
