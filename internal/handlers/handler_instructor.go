package handlers

import (
	"net/http"

	"github.com/coursebay/lms_backend/internal/core/domain"
	portssvc "github.com/coursebay/lms_backend/internal/core/ports/services"
	"github.com/coursebay/lms_backend/internal/dto"
	"github.com/coursebay/lms_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// InstructorHandler exposes the instructor surface: course management,
// earnings and payment validation.
type InstructorHandler struct {
	courses   portssvc.CourseSvcFacade
	ledger    portssvc.LedgerSvcFacade
	reporting portssvc.ReportingSvcFacade
}

func NewInstructorHandler(courses portssvc.CourseSvcFacade, ledger portssvc.LedgerSvcFacade, reporting portssvc.ReportingSvcFacade) *InstructorHandler {
	return &InstructorHandler{courses: courses, ledger: ledger, reporting: reporting}
}

func registerInstructorRoutes(rg *gin.RouterGroup, courses portssvc.CourseSvcFacade, ledger portssvc.LedgerSvcFacade, reporting portssvc.ReportingSvcFacade) {
	h := NewInstructorHandler(courses, ledger, reporting)

	instructor := rg.Group("/instructor", middleware.RequireRole("instructor"))
	instructor.POST("/courses", h.UploadCourse)
	instructor.GET("/courses", h.MyCourses)
	instructor.PUT("/courses/:courseId", h.UpdateCourse)
	instructor.POST("/courses/:courseId/materials", h.AddMaterial)
	instructor.POST("/courses/:courseId/quiz", h.AddQuizQuestion)
	instructor.GET("/students", h.ListStudents)
	instructor.GET("/earnings", h.Earnings)
	instructor.GET("/payments/pending", h.PendingPayments)
	instructor.POST("/payments/:transactionId/validate", h.ValidatePayment)
}

// UploadCourse godoc
// @Summary Upload a new course
// @Description Lists a course on the marketplace and pays the upload reward from the platform account.
// @Tags instructor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course body dto.CreateCourseRequest true "Course details"
// @Success 201 {object} dto.UploadCourseResult
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /instructor/courses [post]
func (h *InstructorHandler) UploadCourse(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	course, payment, err := h.courses.UploadCourse(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	result := dto.UploadCourseResult{Course: dto.ToCourseResponse(course)}
	message := "course uploaded successfully"
	if payment != nil {
		p := dto.ToTransactionResponse(payment)
		result.Payment = &p
		if payment.Status == domain.StatusPending {
			result.PaymentPending = true
			message = "course uploaded; upload payment pending"
		}
	}
	respond(c, http.StatusCreated, message, gin.H{
		"course":         result.Course,
		"payment":        result.Payment,
		"paymentPending": result.PaymentPending,
	})
}

// MyCourses godoc
// @Summary List the caller's courses
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CourseResponse
// @Router /instructor/courses [get]
func (h *InstructorHandler) MyCourses(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	courses, err := h.courses.ListCoursesByInstructor(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"courses": dto.ToCourseResponses(courses)})
}

// UpdateCourse godoc
// @Summary Update an owned course
// @Tags instructor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param course body dto.UpdateCourseRequest true "Fields to update"
// @Success 200 {object} dto.CourseResponse
// @Failure 403 {object} map[string]interface{}
// @Router /instructor/courses/{courseId} [put]
func (h *InstructorHandler) UpdateCourse(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	course, err := h.courses.UpdateCourse(c.Request.Context(), userID, c.Param("courseId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "course updated", gin.H{"course": dto.ToCourseResponse(course)})
}

// AddMaterial godoc
// @Summary Add material to an owned course
// @Tags instructor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param material body dto.AddMaterialRequest true "Material metadata"
// @Success 201 {object} dto.MaterialResponse
// @Failure 403 {object} map[string]interface{}
// @Router /instructor/courses/{courseId}/materials [post]
func (h *InstructorHandler) AddMaterial(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.AddMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	material, err := h.courses.AddMaterial(c.Request.Context(), userID, c.Param("courseId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "material added", gin.H{"material": dto.ToMaterialResponse(material)})
}

// AddQuizQuestion godoc
// @Summary Add a quiz question to an owned course
// @Tags instructor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param question body dto.AddQuizQuestionRequest true "Question with four options"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /instructor/courses/{courseId}/quiz [post]
func (h *InstructorHandler) AddQuizQuestion(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.AddQuizQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	question, err := h.courses.AddQuizQuestion(c.Request.Context(), userID, c.Param("courseId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "question added", gin.H{"questionId": question.QuestionID})
}

// ListStudents godoc
// @Summary List students across the caller's courses
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.EnrolledStudentResponse
// @Router /instructor/students [get]
func (h *InstructorHandler) ListStudents(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	students, err := h.reporting.ListStudents(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"students": students})
}

// Earnings godoc
// @Summary Get the caller's earnings summary
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.EarningsResult
// @Router /instructor/earnings [get]
func (h *InstructorHandler) Earnings(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.reporting.InstructorEarnings(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{
		"earnings":     result.Earnings,
		"transactions": result.Transactions,
	})
}

// PendingPayments godoc
// @Summary List unvalidated course payments
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.TransactionResponse
// @Router /instructor/payments/pending [get]
func (h *InstructorHandler) PendingPayments(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	txns, err := h.reporting.PendingInstructorPayments(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"payments": dto.ToTransactionResponses(txns)})
}

// ValidatePayment godoc
// @Summary Validate a received course payment
// @Description Acknowledges an instructor-payment transaction exactly once. The funds moved at purchase time.
// @Tags instructor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param transactionId path string true "Transaction ID"
// @Param validate body dto.ValidatePaymentRequest true "Account secret"
// @Success 200 {object} dto.ValidatePaymentResult
// @Failure 403 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /instructor/payments/{transactionId}/validate [post]
func (h *InstructorHandler) ValidatePayment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.ValidatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.ledger.ValidatePayment(c.Request.Context(), c.Param("transactionId"), userID, req.Secret)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "payment validated", gin.H{
		"payment":    result.Payment,
		"newBalance": result.NewBalance,
	})
}
