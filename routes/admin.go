package routes

import (
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Private-Fox7/Empathy-Pulse/models"
	"github.com/Private-Fox7/Empathy-Pulse/store"
	"github.com/Private-Fox7/Empathy-Pulse/types"
	"github.com/Private-Fox7/Empathy-Pulse/utils"
)

// Admin authentication middleware
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Remove "Bearer " prefix
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}

		// Verify token
		claims, err := utils.VerifyToken(token)
		if err != nil {
			log.Printf("❌ Token verification failed: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		// Check the session role
		if claims.Role != types.RoleAdmin {
			log.Printf("❌ User %s is not admin, role: %s", claims.UserID, claims.Role)
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		// Get admin from the document store
		admin, err := store.Data.GetAdmin(claims.UserID)
		if err != nil {
			log.Printf("❌ Admin not found: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not found"})
			c.Abort()
			return
		}

		// Set admin info in context
		c.Set("admin_id", admin.AdminID)
		c.Next()
	}
}

// AdminSetupRequest represents the first-run admin creation request
type AdminSetupRequest struct {
	AdminID         string `json:"admin_id" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// AdminSetupStatus reports whether the first-run setup flow is still open
func AdminSetupStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"setup_required": len(store.Data.Admins()) == 0,
	})
}

// AdminSetup creates the bootstrap admin account. It is only available
// while zero admins exist; every later visitor is steered to login.
func AdminSetup(c *gin.Context) {
	if len(store.Data.Admins()) > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Admin already set up",
			"message": "Admin is already set up. Please log in.",
		})
		return
	}

	var req AdminSetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
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

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Password hashing failed",
			"message": "Failed to process password",
		})
		return
	}

	admin := models.Admin{
		AdminID:      req.AdminID,
		PasswordHash: hashedPassword,
	}

	if err := store.Data.AddAdmin(admin); err != nil {
		log.Printf("❌ Failed to create admin %s: %v", req.AdminID, err)
		storeError(c, err, "Failed to create admin account")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Admin setup complete! You can now log in as Admin.",
	})
}

// AdminLogin handles admin login
func AdminLogin(c *gin.Context) {
	var req struct {
		AdminID  string `json:"admin_id" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	admin, err := store.Data.GetAdmin(req.AdminID)
	if err != nil || !utils.CheckPasswordHash(req.Password, admin.PasswordHash) {
		log.Printf("❌ Admin login failed for %s", req.AdminID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Admin ID or Password."})
		return
	}

	token, err := utils.GenerateToken(admin.AdminID, types.RoleAdmin)
	if err != nil {
		log.Printf("❌ Failed to generate token for admin %s: %v", admin.AdminID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Welcome back, Admin " + admin.AdminID + "!",
		"token":    token,
		"admin_id": admin.AdminID,
	})
}

// GetCurrentAdmin returns the logged-in admin
func GetCurrentAdmin(c *gin.Context) {
	adminID := c.GetString("admin_id")
	admin, err := store.Data.GetAdmin(adminID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"admin_id":   admin.AdminID,
		"created_at": admin.CreatedAt,
	})
}

// EmployeeDirectoryEntry is one row of the admin employee directory
type EmployeeDirectoryEntry struct {
	EmployeeResponse
	FeedbackCount    int    `json:"feedback_count"`
	OverallSentiment string `json:"overall_sentiment"`
}

// GetAllEmployees returns the employee directory with per-employee feedback
// counts and an overall sentiment summary. Supports department filter and
// id/name search.
func GetAllEmployees(c *gin.Context) {
	dept := c.Query("dept")
	search := strings.ToLower(c.Query("search"))

	feedback := store.Data.Feedback()

	var directory []EmployeeDirectoryEntry
	for _, employee := range store.Data.Employees() {
		if dept != "" && employee.Department != dept {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(employee.EmpID), search) &&
			!strings.Contains(strings.ToLower(employee.Name), search) {
			continue
		}

		var positive, negative, total int
		for _, fb := range feedback {
			if fb.EmpID != employee.EmpID {
				continue
			}
			total++
			switch {
			case strings.EqualFold(fb.Sentiment, "positive"):
				positive++
			case strings.EqualFold(fb.Sentiment, "negative"):
				negative++
			}
		}

		overall := "No Feedback"
		switch {
		case total == 0:
		case positive > negative:
			overall = "Mostly Positive"
		case negative > positive:
			overall = "Mostly Negative"
		default:
			overall = "Mixed or Neutral"
		}

		directory = append(directory, EmployeeDirectoryEntry{
			EmployeeResponse: employeeResponse(employee),
			FeedbackCount:    total,
			OverallSentiment: overall,
		})
	}

	// Sort by name for the directory view
	sort.Slice(directory, func(i, j int) bool {
		return directory[i].Name < directory[j].Name
	})

	c.JSON(http.StatusOK, gin.H{
		"employees": directory,
		"count":     len(directory),
	})
}

// CreateEmployee lets an admin register an employee directly
func CreateEmployee(c *gin.Context) {
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

	if _, err := store.Data.GetEmployee(req.EmpID); err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Employee already exists",
			"message": "Employee ID already exists.",
		})
		return
	}

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
		log.Printf("❌ Failed to add employee %s: %v", req.EmpID, err)
		storeError(c, err, "Failed to add employee")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Employee " + req.Name + " added successfully!",
		"employee": employeeResponse(employee),
	})
}

// DeleteEmployee removes an employee and cascades to their feedback. The
// whole cache is invalidated afterwards to force fresh fetches.
func DeleteEmployee(c *gin.Context) {
	empID := c.Param("emp_id")

	employee, err := store.Data.GetEmployee(empID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Employee not found",
			"message": "No employee with that ID.",
		})
		return
	}

	if err := store.Data.DeleteEmployee(empID); err != nil {
		log.Printf("❌ Failed to delete employee %s: %v", empID, err)
		storeError(c, err, "Failed to delete employee")
		return
	}

	store.Data.InvalidateCache()

	c.JSON(http.StatusOK, gin.H{
		"message": "Employee " + employee.Name + " deleted.",
	})
}
