// Package handler exposes the operation surface over HTTP. It parses
// requests, hands them to the service layer and maps tagged failures
// to status codes; no business rule lives here.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"employees/internal/apperror"
	"employees/internal/auth"
	"employees/internal/employee"
	"employees/internal/metrics"
	"employees/internal/service"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts all routes under /v1. The auth middleware only
// resolves the principal; each operation enforces its own policy.
func (h *Handler) Register(r gin.IRouter, authContext gin.HandlerFunc) {
	v1 := r.Group("/v1", authContext)
	v1.POST("/login", h.Login)
	v1.GET("/employees", h.List)
	v1.GET("/employees/me", h.Me)
	v1.GET("/employees/:id", h.GetOne)
	v1.POST("/employees", h.Create)
	v1.PATCH("/employees/:id", h.Update)
	v1.DELETE("/employees/:id", h.Delete)
}

func statusFor(code apperror.Code) int {
	switch code {
	case apperror.CodeUnauthenticated, apperror.CodeInvalidCredentials:
		return http.StatusUnauthorized
	case apperror.CodeForbidden:
		return http.StatusForbidden
	case apperror.CodeNotFound:
		return http.StatusNotFound
	case apperror.CodeConflict:
		return http.StatusConflict
	case apperror.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	code := apperror.GetCode(err)
	c.JSON(statusFor(code), gin.H{"error": err.Error(), "code": string(code)})
}

// parseQuery reads the flat list-query parameters.
func parseQuery(c *gin.Context) employee.Query {
	var q employee.Query
	q.Filter.NameContains = c.Query("nameContains")
	q.Filter.Role = c.Query("role")
	if v, err := strconv.Atoi(c.Query("minAge")); err == nil {
		q.Filter.MinAge = &v
	}
	if v, err := strconv.Atoi(c.Query("maxAge")); err == nil {
		q.Filter.MaxAge = &v
	}
	if v, err := strconv.ParseFloat(c.Query("attendanceMin"), 64); err == nil {
		q.Filter.AttendanceMin = &v
	}
	if v, err := strconv.ParseFloat(c.Query("attendanceMax"), 64); err == nil {
		q.Filter.AttendanceMax = &v
	}
	if field := c.Query("sortField"); field != "" {
		q.SortBy = &employee.Sort{Field: field, Direction: c.DefaultQuery("sortDir", employee.SortAsc)}
	}
	if v, err := strconv.Atoi(c.Query("page")); err == nil {
		q.Page = v
	}
	if v, err := strconv.Atoi(c.Query("pageSize")); err == nil {
		q.PageSize = v
	}
	return q
}

func (h *Handler) List(c *gin.Context) {
	page, err := h.svc.List(c.Request.Context(), auth.PrincipalFrom(c), parseQuery(c))
	metrics.ObserveOp("list", err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) GetOne(c *gin.Context) {
	e, err := h.svc.GetOne(c.Request.Context(), auth.PrincipalFrom(c), c.Param("id"))
	metrics.ObserveOp("get_one", err)
	if err != nil {
		respondError(c, err)
		return
	}
	if e == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found", "code": string(apperror.CodeNotFound)})
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *Handler) Me(c *gin.Context) {
	e, err := h.svc.Me(c.Request.Context(), auth.PrincipalFrom(c))
	metrics.ObserveOp("me", err)
	if err != nil {
		respondError(c, err)
		return
	}
	if e == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found", "code": string(apperror.CodeNotFound)})
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *Handler) Create(c *gin.Context) {
	var in employee.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.svc.Create(c.Request.Context(), auth.PrincipalFrom(c), in)
	metrics.ObserveOp("create", err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) Update(c *gin.Context) {
	var upd employee.Update
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.svc.Update(c.Request.Context(), auth.PrincipalFrom(c), c.Param("id"), upd)
	metrics.ObserveOp("update", err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), auth.PrincipalFrom(c), c.Param("id"))
	metrics.ObserveOp("delete", err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	metrics.ObserveOp("login", err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
