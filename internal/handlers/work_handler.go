package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"munka_backend/internal/appErrors"
	"munka_backend/internal/middleware"
	"munka_backend/internal/models"
	"munka_backend/internal/services"
	"munka_backend/internal/services/dto"
)

type WorkHandler struct {
	*BaseHandler
	workService services.WorkService
}

func NewWorkHandler(base *BaseHandler, workService services.WorkService) *WorkHandler {
	return &WorkHandler{
		BaseHandler: base,
		workService: workService,
	}
}

func (h *WorkHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes
	public := r.Group("/works")
	{
		public.GET("", h.ListWorks)
		public.GET("/:workId", h.GetWork)
	}

	// Protected routes - any authenticated user
	authed := r.Group("/works")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.GET("/code/:manualCode", h.ResolveManualCode)
		authed.GET("/employee/:employeeId/active", h.GetActiveForEmployee)
	}

	// Protected routes - employer only
	works := r.Group("/works")
	works.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleEmployer, models.UserRoleAdmin))
	{
		works.POST("", h.PublishWork)
		works.PUT("/:workId", h.UpdateWork)
		works.DELETE("/:workId", h.DeleteWork)
		works.PUT("/:workId/status", h.UpdateWorkStatus)
		works.POST("/:workId/assign", h.AssignEmployee)
		works.PUT("/:workId/progress", h.UpdateProgress)
	}
}

// --- Public handlers ---

func (h *WorkHandler) ListWorks(c *gin.Context) {
	var q dto.ListWorksQuery
	if !h.BindAndValidateQuery(c, &q) {
		return
	}

	works, total, err := h.workService.List(q)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"works": works,
		"total": total,
	})
}

func (h *WorkHandler) GetWork(c *gin.Context) {
	work, err := h.workService.Get(c.Param("workId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, work)
}

// --- Authenticated handlers ---

func (h *WorkHandler) ResolveManualCode(c *gin.Context) {
	work, err := h.workService.ResolveManualCode(c.Param("manualCode"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, work)
}

func (h *WorkHandler) GetActiveForEmployee(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	employeeID := c.Param("employeeId")
	if employeeID != userID {
		appErrors.HandleError(c, appErrors.NewForbiddenError("Can only view your own active work"))
		return
	}

	work, err := h.workService.GetActiveForEmployee(employeeID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, work)
}

// --- Employer handlers ---

func (h *WorkHandler) PublishWork(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.PublishWorkRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	req.EmployerID = userID

	work, err := h.workService.Publish(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, work)
}

func (h *WorkHandler) UpdateWork(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateWorkRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	work, err := h.workService.UpdateFields(c.Param("workId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, work)
}

func (h *WorkHandler) DeleteWork(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.workService.Delete(c.Param("workId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Work deleted"})
}

func (h *WorkHandler) UpdateWorkStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateWorkStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	work, err := h.workService.UpdateStatus(c.Param("workId"), userID, models.WorkStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, work)
}

func (h *WorkHandler) AssignEmployee(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.AssignEmployeeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	work, err := h.workService.AssignEmployee(c.Param("workId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, work)
}

func (h *WorkHandler) UpdateProgress(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProgressRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	work, err := h.workService.UpdateProgress(c.Param("workId"), userID, req.Progress)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, work)
}
