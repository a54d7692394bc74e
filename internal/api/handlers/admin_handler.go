package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/bookwise/internal/services"
	"github.com/yoockh/bookwise/internal/utils"
)

type AdminHandler struct {
	svc services.AdminService
}

func NewAdminHandler(svc services.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AdminHandler.Register", "invalid request body", err))
		return
	}

	reg, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":            reg.Message,
		"admin_id":           reg.Admin.ID,
		"name":               reg.Admin.Name,
		"email":              reg.Admin.Email,
		"status":             reg.Admin.Status,
		"verification_token": reg.VerificationToken,
	})
}

func (h *AdminHandler) VerifyEmail(c *gin.Context) {
	a, err := h.svc.VerifyEmail(c.Request.Context(), c.Query("token"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Admin account verified and activated successfully",
		"admin_name":  a.Name,
		"admin_email": a.Email,
		"employee_id": a.Employee(),
		"status":      a.Status,
	})
}

type LoginRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AdminHandler.Login", "employee_id and password are required", err))
		return
	}

	res, err := h.svc.Login(c.Request.Context(), req.EmployeeID, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Logout is stateless: tokens simply expire.
func (h *AdminHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AdminHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	a, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AdminHandler) List(c *gin.Context) {
	admins, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total_admins": len(admins),
		"admins":       admins,
	})
}
