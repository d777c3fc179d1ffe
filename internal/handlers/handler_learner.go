package handlers

import (
	"net/http"

	portssvc "github.com/coursebay/lms_backend/internal/core/ports/services"
	"github.com/coursebay/lms_backend/internal/dto"
	"github.com/coursebay/lms_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// LearnerHandler exposes the enrolled-learner surface: course list, quizzes
// and certificates.
type LearnerHandler struct {
	courses portssvc.CourseSvcFacade
	quiz    portssvc.QuizSvcFacade
	certs   portssvc.CertificateSvcFacade
}

func NewLearnerHandler(courses portssvc.CourseSvcFacade, quiz portssvc.QuizSvcFacade, certs portssvc.CertificateSvcFacade) *LearnerHandler {
	return &LearnerHandler{courses: courses, quiz: quiz, certs: certs}
}

func registerLearnerRoutes(rg *gin.RouterGroup, courses portssvc.CourseSvcFacade, quiz portssvc.QuizSvcFacade, certs portssvc.CertificateSvcFacade) {
	h := NewLearnerHandler(courses, quiz, certs)

	learner := rg.Group("/learner", middleware.RequireRole("learner"))
	learner.GET("/my-courses", h.MyCourses)
	learner.GET("/courses/:courseId/quiz", h.GetQuiz)
	learner.POST("/courses/:courseId/quiz/submit", h.SubmitQuiz)
	learner.GET("/courses/:courseId/attempts", h.ListAttempts)
	learner.GET("/certificates", h.ListCertificates)
	learner.GET("/courses/:courseId/certificate", h.GetCertificate)
}

// MyCourses godoc
// @Summary List enrolled courses
// @Tags learner
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.EnrolledCourseResponse
// @Router /learner/my-courses [get]
func (h *LearnerHandler) MyCourses(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	courses, err := h.courses.ListEnrolledCourses(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"courses": courses})
}

// GetQuiz godoc
// @Summary Get a course quiz
// @Description Returns a randomized set of questions with answers stripped.
// @Tags learner
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Success 200 {array} dto.QuizQuestionResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /learner/courses/{courseId}/quiz [get]
func (h *LearnerHandler) GetQuiz(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	questions, err := h.quiz.GetQuiz(c.Request.Context(), userID, c.Param("courseId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"questions": questions})
}

// SubmitQuiz godoc
// @Summary Submit quiz answers
// @Description Grades the submission; a first passing attempt completes the course and issues a certificate.
// @Tags learner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param submission body dto.SubmitQuizRequest true "Answers"
// @Success 200 {object} dto.QuizResult
// @Failure 400 {object} map[string]interface{}
// @Router /learner/courses/{courseId}/quiz/submit [post]
func (h *LearnerHandler) SubmitQuiz(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.quiz.SubmitQuiz(c.Request.Context(), userID, c.Param("courseId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, result.Message, gin.H{"result": result})
}

// ListAttempts godoc
// @Summary List quiz attempts for a course
// @Tags learner
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Success 200 {array} dto.QuizAttemptResponse
// @Router /learner/courses/{courseId}/attempts [get]
func (h *LearnerHandler) ListAttempts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	attempts, err := h.quiz.ListAttempts(c.Request.Context(), userID, c.Param("courseId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"attempts": attempts})
}

// ListCertificates godoc
// @Summary List earned certificates
// @Tags learner
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CertificateResponse
// @Router /learner/certificates [get]
func (h *LearnerHandler) ListCertificates(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	certs, err := h.certs.ListCertificates(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"certificates": dto.ToCertificateResponses(certs)})
}

// GetCertificate godoc
// @Summary Get the certificate for a course
// @Tags learner
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.CertificateResponse
// @Failure 404 {object} map[string]interface{}
// @Router /learner/courses/{courseId}/certificate [get]
func (h *LearnerHandler) GetCertificate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	cert, err := h.certs.GetCertificateForCourse(c.Request.Context(), userID, c.Param("courseId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"certificate": dto.ToCertificateResponse(cert)})
}
