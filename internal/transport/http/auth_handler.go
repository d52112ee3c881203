package handlers

import (
	"net/http"

	"goaltracker/internal/application/usecase"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth *usecase.AuthUseCase
}

func NewAuthHandler(auth *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type credentialsReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide both username and password."})
		return
	}

	res, err := h.auth.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err, "Server error during registration.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":    res.Token,
		"userId":   res.UserID,
		"username": res.Username,
		"message":  "User registered successfully.",
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide both username and password."})
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err, "Server error during login.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    res.Token,
		"userId":   res.UserID,
		"username": res.Username,
		"message":  "Login successful.",
	})
}
