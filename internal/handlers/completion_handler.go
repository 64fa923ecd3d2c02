package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"munka_backend/internal/middleware"
	"munka_backend/internal/models"
	"munka_backend/internal/services"
	"munka_backend/internal/services/dto"
)

type CompletionHandler struct {
	*BaseHandler
	completionService services.CompletionService
}

func NewCompletionHandler(base *BaseHandler, completionService services.CompletionService) *CompletionHandler {
	return &CompletionHandler{
		BaseHandler:       base,
		completionService: completionService,
	}
}

func (h *CompletionHandler) RegisterRoutes(r *gin.RouterGroup) {
	codes := r.Group("/works/:workId/completion-code")
	codes.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleEmployer, models.UserRoleAdmin))
	{
		codes.PUT("", h.GenerateCode)
		codes.GET("", h.GetCode)
		codes.POST("/verify", h.VerifyCode)
	}
}

// GenerateCode issues a new completion code for the work, replacing any
// earlier one.
func (h *CompletionHandler) GenerateCode(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	code, err := h.completionService.GenerateCode(c.Param("workId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, code)
}

func (h *CompletionHandler) GetCode(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	code, err := h.completionService.GetCode(c.Param("workId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, code)
}

// VerifyCode checks the submitted code and on success completes the work.
func (h *CompletionHandler) VerifyCode(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.VerifyCodeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	work, err := h.completionService.VerifyAndComplete(c.Param("workId"), userID, req.Code)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, work)
}
