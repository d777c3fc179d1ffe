package handlers

import (
	"net/http"
	"strconv"

	"github.com/coursebay/lms_backend/internal/core/domain"
	portssvc "github.com/coursebay/lms_backend/internal/core/ports/services"
	"github.com/coursebay/lms_backend/internal/dto"
	"github.com/coursebay/lms_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the platform dashboards.
type AdminHandler struct {
	reporting portssvc.ReportingSvcFacade
	courses   portssvc.CourseSvcFacade
	users     portssvc.UserSvcFacade
}

func NewAdminHandler(reporting portssvc.ReportingSvcFacade, courses portssvc.CourseSvcFacade, users portssvc.UserSvcFacade) *AdminHandler {
	return &AdminHandler{reporting: reporting, courses: courses, users: users}
}

func registerAdminRoutes(rg *gin.RouterGroup, reporting portssvc.ReportingSvcFacade, courses portssvc.CourseSvcFacade, users portssvc.UserSvcFacade) {
	h := NewAdminHandler(reporting, courses, users)

	admin := rg.Group("/admin", middleware.RequireRole("admin"))
	admin.GET("/stats", h.Stats)
	admin.GET("/transactions", h.Transactions)
	admin.GET("/courses", h.AllCourses)
	admin.GET("/users", h.Users)
}

// Stats godoc
// @Summary Platform summary statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.PlatformStats
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.reporting.PlatformStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"stats": stats})
}

// Transactions godoc
// @Summary Recent transaction feed with revenue aggregates
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param type query string false "Filter by transaction type"
// @Param limit query int false "Maximum rows returned"
// @Success 200 {object} dto.AdminTransactionsResult
// @Router /admin/transactions [get]
func (h *AdminHandler) Transactions(c *gin.Context) {
	kind := domain.TransactionKind(c.Query("type"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	result, err := h.reporting.AdminTransactions(c.Request.Context(), kind, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{
		"transactions": result.Transactions,
		"stats":        result.Stats,
	})
}

// AllCourses godoc
// @Summary List every course, active or not
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CourseResponse
// @Router /admin/courses [get]
func (h *AdminHandler) AllCourses(c *gin.Context) {
	courses, err := h.courses.ListAllCourses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"courses": dto.ToCourseResponses(courses)})
}

// Users godoc
// @Summary List users by role
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "Role filter" default(learner)
// @Success 200 {array} dto.UserResponse
// @Router /admin/users [get]
func (h *AdminHandler) Users(c *gin.Context) {
	role := domain.UserRole(c.DefaultQuery("role", string(domain.RoleLearner)))

	users, err := h.users.ListUsersByRole(c.Request.Context(), role)
	if err != nil {
		respondError(c, err)
		return
	}

	res := make([]dto.UserResponse, len(users))
	for i := range users {
		res[i] = dto.ToUserResponse(&users[i])
	}
	respond(c, http.StatusOK, "", gin.H{"users": res})
}
