package handlers

import (
	"net/http"

	portssvc "github.com/coursebay/lms_backend/internal/core/ports/services"
	"github.com/coursebay/lms_backend/internal/dto"
	"github.com/coursebay/lms_backend/internal/middleware"
	"github.com/coursebay/lms_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// CourseHandler exposes the public marketplace plus the authenticated
// purchase and content routes.
type CourseHandler struct {
	courses portssvc.CourseSvcFacade
	ledger  portssvc.LedgerSvcFacade
}

func NewCourseHandler(courses portssvc.CourseSvcFacade, ledger portssvc.LedgerSvcFacade) *CourseHandler {
	return &CourseHandler{courses: courses, ledger: ledger}
}

// registerCourseRoutes mounts the marketplace. Browsing needs no token;
// purchase and materials do.
func registerCourseRoutes(r *gin.Engine, cfg *config.Config, courses portssvc.CourseSvcFacade, ledger portssvc.LedgerSvcFacade) {
	h := NewCourseHandler(courses, ledger)

	public := r.Group("/api/courses")
	public.GET("", h.ListCourses)
	public.GET("/:courseId", h.GetCourse)

	authed := r.Group("/api/courses", middleware.AuthMiddleware(cfg.JWTSecret))
	authed.POST("/:courseId/purchase", middleware.RequireRole("learner"), h.PurchaseCourse)
	authed.GET("/:courseId/materials", h.ListMaterials)
}

// ListCourses godoc
// @Summary List active courses
// @Tags courses
// @Produce json
// @Success 200 {array} dto.CourseResponse
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courses.ListActiveCourses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"courses": dto.ToCourseResponses(courses)})
}

// GetCourse godoc
// @Summary Get one course
// @Tags courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.CourseResponse
// @Failure 404 {object} map[string]interface{}
// @Router /courses/{courseId} [get]
func (h *CourseHandler) GetCourse(c *gin.Context) {
	course, err := h.courses.GetCourse(c.Request.Context(), c.Param("courseId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"course": dto.ToCourseResponse(course)})
}

// PurchaseCourse godoc
// @Summary Purchase a course
// @Description Pays the course price from the caller's bank account, splits revenue between instructor and platform, and enrolls the caller.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param purchase body dto.PurchaseCourseRequest true "Account secret"
// @Success 200 {object} dto.PurchaseResult
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /courses/{courseId}/purchase [post]
func (h *CourseHandler) PurchaseCourse(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.PurchaseCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.ledger.PurchaseCourse(c.Request.Context(), userID, c.Param("courseId"), req.Secret)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "course purchased successfully", gin.H{
		"transaction": result.Transaction,
		"newBalance":  result.NewBalance,
	})
}

// ListMaterials godoc
// @Summary List course materials
// @Description Returns content metadata; requires enrollment or course ownership.
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Success 200 {array} dto.MaterialResponse
// @Failure 403 {object} map[string]interface{}
// @Router /courses/{courseId}/materials [get]
func (h *CourseHandler) ListMaterials(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	materials, err := h.courses.ListMaterials(c.Request.Context(), userID, c.Param("courseId"))
	if err != nil {
		respondError(c, err)
		return
	}

	res := make([]dto.MaterialResponse, len(materials))
	for i := range materials {
		res[i] = dto.ToMaterialResponse(&materials[i])
	}
	respond(c, http.StatusOK, "", gin.H{"materials": res})
}
