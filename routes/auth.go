package routes

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Private-Fox7/Empathy-Pulse/models"
	"github.com/Private-Fox7/Empathy-Pulse/store"
	"github.com/Private-Fox7/Empathy-Pulse/types"
	"github.com/Private-Fox7/Empathy-Pulse/utils"
)

// SignupRequest represents the employee signup request
type SignupRequest struct {
	EmpID           string `json:"emp_id" binding:"required"`
	Name            string `json:"name" binding:"required"`
	Department      string `json:"dept" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// LoginRequest represents the employee login request
type LoginRequest struct {
	EmpID    string `json:"emp_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// EmployeeResponse is an employee record without the password digest
type EmployeeResponse struct {
	EmpID      string    `json:"emp_id"`
	Name       string    `json:"name"`
	Department string    `json:"dept"`
	CreatedAt  time.Time `json:"created_at"`
}

func employeeResponse(e models.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmpID:      e.EmpID,
		Name:       e.Name,
		Department: e.Department,
		CreatedAt:  e.CreatedAt,
	}
}

// RegisterAuthRoutes registers employee authentication routes
func RegisterAuthRoutes(router *gin.RouterGroup) {
	router.POST("/signup", signUp)
	router.POST("/login", logIn)
	router.POST("/forgot-password", forgotPassword)
	router.POST("/reset-password", resetPassword)
}

// signUp handles employee registration
func signUp(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	if !models.IsValidDepartment(req.Department) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid department",
			"message": "Department must be one of the known departments",
		})
		return
	}

	if err := utils.ValidatePassword(req.Password, req.ConfirmPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid password",
			"message": err.Error(),
		})
		return
	}

	// Check if employee already exists
	if _, err := store.Data.GetEmployee(req.EmpID); err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Employee already exists",
			"message": "Employee ID already exists. Please log in or use a different ID.",
		})
		return
	}

	// Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Password hashing failed",
			"message": "Failed to process password",
		})
		return
	}

	employee := models.Employee{
		EmpID:        req.EmpID,
		Name:         req.Name,
		Department:   req.Department,
		PasswordHash: hashedPassword,
	}

	if err := store.Data.AddEmployee(employee); err != nil {
		log.Printf("❌ Failed to create employee %s: %v", req.EmpID, err)
		storeError(c, err, "Failed to create employee account")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Account created successfully! Please log in.",
		"employee": employeeResponse(employee),
	})
}

// logIn handles employee authentication
func logIn(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	employee, err := store.Data.GetEmployee(req.EmpID)
	if err != nil || !utils.CheckPasswordHash(req.Password, employee.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Invalid credentials",
			"message": "Invalid Employee ID or Password.",
		})
		return
	}

	token, err := utils.GenerateToken(employee.EmpID, types.RoleEmployee)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Token generation failed",
			"message": "Failed to generate authentication token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Welcome back, " + employee.Name + "!",
		"token":    token,
		"employee": employeeResponse(*employee),
	})
}

// forgotPassword generates a reset token for an employee. Token delivery is
// out-of-band: the token is returned directly instead of being emailed.
func forgotPassword(c *gin.Context) {
	var req struct {
		EmpID string `json:"emp_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	if _, err := store.Data.GetEmployee(req.EmpID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Employee not found",
			"message": "Employee ID not found.",
		})
		return
	}

	reset := models.PasswordResetToken{
		EmpID: req.EmpID,
		Token: uuid.NewString(),
		Used:  false,
	}

	if err := store.Data.AddPasswordReset(reset); err != nil {
		log.Printf("❌ Failed to create password reset for %s: %v", req.EmpID, err)
		storeError(c, err, "Failed to create password reset token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Password reset token generated. In a real application, this would be sent to your email.",
		"reset_token": reset.Token,
		"expires_at":  time.Now().UTC().Add(time.Hour),
	})
}

// resetPassword consumes a reset token and sets a new password
func resetPassword(c *gin.Context) {
	var req struct {
		Token           string `json:"token" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
		ConfirmPassword string `json:"confirm_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	reset, err := store.Data.GetPasswordResetByToken(req.Token)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid reset token",
				"message": "Invalid or missing reset token.",
			})
			return
		}
		storeError(c, err, "Failed to look up reset token")
		return
	}

	if !reset.IsUsable() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Reset token not usable",
			"message": "Reset token has expired or already been used.",
		})
		return
	}

	if err := utils.ValidatePassword(req.NewPassword, req.ConfirmPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid password",
			"message": err.Error(),
		})
		return
	}

	employee, err := store.Data.GetEmployee(reset.EmpID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Employee not found",
			"message": "Employee for this reset token no longer exists.",
		})
		return
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Password hashing failed",
			"message": "Failed to process password",
		})
		return
	}

	if err := store.Data.UpdateEmployee(employee.EmpID, map[string]any{"password": hashedPassword}); err != nil {
		log.Printf("❌ Failed to reset password for %s: %v", employee.EmpID, err)
		storeError(c, err, "Failed to update password")
		return
	}

	if err := store.Data.UpdatePasswordReset(req.Token, map[string]any{"used": true}); err != nil {
		log.Printf("❌ Failed to mark reset token used: %v", err)
		storeError(c, err, "Failed to consume reset token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password reset successfully! Please log in with your new password.",
	})
}
