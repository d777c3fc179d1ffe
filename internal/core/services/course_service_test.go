package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/coursebay/lms_backend/internal/apperrors"
	"github.com/coursebay/lms_backend/internal/core/domain"
	"github.com/coursebay/lms_backend/internal/core/services"
	"github.com/coursebay/lms_backend/internal/dto"
	"github.com/coursebay/lms_backend/internal/platform/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CourseServiceTestSuite struct {
	suite.Suite
	cfg            *config.Config
	mockCourseRepo *MockCourseRepository
	mockUserRepo   *MockUserRepository
	mockLedger     *MockLedgerService
	service        *services.CourseService

	instructor domain.User
	course     domain.Course
}

func (suite *CourseServiceTestSuite) SetupTest() {
	suite.cfg = &config.Config{
		MaxActiveCourses:    3,
		CourseUploadPayment: decimal.NewFromInt(5000),
	}
	suite.mockCourseRepo = new(MockCourseRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockLedger = new(MockLedgerService)
	suite.service = services.NewCourseService(suite.cfg, suite.mockCourseRepo, suite.mockUserRepo, suite.mockLedger)

	bankAcc := "ACC-INSTR-1"
	suite.instructor = domain.User{
		UserID:            uuid.NewString(),
		Name:              "Ivan Instructor",
		Email:             "ivan@example.com",
		Role:              domain.RoleInstructor,
		BankAccountNumber: &bankAcc,
	}
	suite.course = domain.Course{
		CourseID:       uuid.NewString(),
		Title:          "Intro to Go",
		Description:    "Basics",
		Price:          decimal.NewFromInt(100),
		InstructorID:   suite.instructor.UserID,
		InstructorName: suite.instructor.Name,
		IsActive:       true,
	}
}

func (suite *CourseServiceTestSuite) uploadRequest() dto.CreateCourseRequest {
	return dto.CreateCourseRequest{
		Title:       "Advanced Go",
		Description: "Concurrency and friends",
		Price:       decimal.NewFromInt(150),
	}
}

func (suite *CourseServiceTestSuite) TestUploadCourse_Success() {
	ctx := context.Background()
	req := suite.uploadRequest()
	rewardTxn := &domain.Transaction{
		TransactionID: "TXN-1",
		Amount:        suite.cfg.CourseUploadPayment,
		Kind:          domain.CourseUploadPayment,
		Status:        domain.StatusCompleted,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.instructor.UserID).Return(&suite.instructor, nil).Once()
	suite.mockCourseRepo.On("CountActiveCourses", ctx).Return(1, nil).Once()
	suite.mockCourseRepo.On("FindCourseByInstructorAndTitle", ctx, suite.instructor.UserID, req.Title).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCourseRepo.On("SaveCourse", ctx, mock.AnythingOfType("domain.Course")).Return(nil).Once()
	suite.mockLedger.On("PayCourseUploadReward", ctx, &suite.instructor, mock.AnythingOfType("*domain.Course")).Return(rewardTxn, nil).Once()

	course, txn, err := suite.service.UploadCourse(ctx, suite.instructor.UserID, req)

	suite.Require().NoError(err)
	suite.Equal(req.Title, course.Title)
	suite.True(course.IsActive)
	suite.Equal(suite.instructor.Name, course.InstructorName)
	suite.Require().NotNil(txn)
	suite.Equal(domain.StatusCompleted, txn.Status)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *CourseServiceTestSuite) TestUploadCourse_RewardFailureKeepsCourseListed() {
	ctx := context.Background()
	req := suite.uploadRequest()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.instructor.UserID).Return(&suite.instructor, nil).Once()
	suite.mockCourseRepo.On("CountActiveCourses", ctx).Return(0, nil).Once()
	suite.mockCourseRepo.On("FindCourseByInstructorAndTitle", ctx, suite.instructor.UserID, req.Title).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCourseRepo.On("SaveCourse", ctx, mock.AnythingOfType("domain.Course")).Return(nil).Once()
	suite.mockLedger.On("PayCourseUploadReward", ctx, &suite.instructor, mock.AnythingOfType("*domain.Course")).Return(nil, errors.New("ledger write failed")).Once()

	course, txn, err := suite.service.UploadCourse(ctx, suite.instructor.UserID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(course)
	suite.Nil(txn)
}

func (suite *CourseServiceTestSuite) TestUploadCourse_ActiveCapReached() {
	ctx := context.Background()
	req := suite.uploadRequest()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.instructor.UserID).Return(&suite.instructor, nil).Once()
	suite.mockCourseRepo.On("CountActiveCourses", ctx).Return(suite.cfg.MaxActiveCourses, nil).Once()

	_, _, err := suite.service.UploadCourse(ctx, suite.instructor.UserID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCourseRepo.AssertNotCalled(suite.T(), "SaveCourse", mock.Anything, mock.Anything)
}

func (suite *CourseServiceTestSuite) TestUploadCourse_DuplicateTitle() {
	ctx := context.Background()
	req := suite.uploadRequest()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.instructor.UserID).Return(&suite.instructor, nil).Once()
	suite.mockCourseRepo.On("CountActiveCourses", ctx).Return(0, nil).Once()
	suite.mockCourseRepo.On("FindCourseByInstructorAndTitle", ctx, suite.instructor.UserID, req.Title).Return(&suite.course, nil).Once()

	_, _, err := suite.service.UploadCourse(ctx, suite.instructor.UserID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockCourseRepo.AssertNotCalled(suite.T(), "SaveCourse", mock.Anything, mock.Anything)
}

func (suite *CourseServiceTestSuite) TestUploadCourse_NoBankAccount() {
	ctx := context.Background()
	noBank := suite.instructor
	noBank.BankAccountNumber = nil

	suite.mockUserRepo.On("FindUserByID", ctx, noBank.UserID).Return(&noBank, nil).Once()

	_, _, err := suite.service.UploadCourse(ctx, noBank.UserID, suite.uploadRequest())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCourseRepo.AssertNotCalled(suite.T(), "CountActiveCourses", mock.Anything)
}

func (suite *CourseServiceTestSuite) TestUpdateCourse_NotOwner() {
	ctx := context.Background()
	stranger := uuid.NewString()
	newTitle := "Hijacked"

	suite.mockCourseRepo.On("FindCourseByID", ctx, suite.course.CourseID).Return(&suite.course, nil).Once()

	_, err := suite.service.UpdateCourse(ctx, stranger, suite.course.CourseID, dto.UpdateCourseRequest{Title: &newTitle})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockCourseRepo.AssertNotCalled(suite.T(), "UpdateCourse", mock.Anything, mock.Anything)
}

func (suite *CourseServiceTestSuite) TestUpdateCourse_ReactivationRespectsCap() {
	ctx := context.Background()
	suite.course.IsActive = false
	active := true

	suite.mockCourseRepo.On("FindCourseByID", ctx, suite.course.CourseID).Return(&suite.course, nil).Once()
	suite.mockCourseRepo.On("CountActiveCourses", ctx).Return(suite.cfg.MaxActiveCourses, nil).Once()

	_, err := suite.service.UpdateCourse(ctx, suite.instructor.UserID, suite.course.CourseID, dto.UpdateCourseRequest{IsActive: &active})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCourseRepo.AssertNotCalled(suite.T(), "UpdateCourse", mock.Anything, mock.Anything)
}

func (suite *CourseServiceTestSuite) TestUpdateCourse_PatchesOnlyProvidedFields() {
	ctx := context.Background()
	newPrice := decimal.NewFromInt(250)

	suite.mockCourseRepo.On("FindCourseByID", ctx, suite.course.CourseID).Return(&suite.course, nil).Once()

	var saved domain.Course
	suite.mockCourseRepo.On("UpdateCourse", ctx, mock.AnythingOfType("domain.Course")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Course)
		}).Return(nil).Once()

	updated, err := suite.service.UpdateCourse(ctx, suite.instructor.UserID, suite.course.CourseID, dto.UpdateCourseRequest{Price: &newPrice})

	suite.Require().NoError(err)
	suite.True(updated.Price.Equal(newPrice))
	suite.Equal(suite.course.Title, saved.Title)
	suite.True(saved.Price.Equal(newPrice))
}

func (suite *CourseServiceTestSuite) TestAddQuizQuestion_RejectsBadAnswerIndex() {
	ctx := context.Background()
	bad := 4

	suite.mockCourseRepo.On("FindCourseByID", ctx, suite.course.CourseID).Return(&suite.course, nil).Once()

	_, err := suite.service.AddQuizQuestion(ctx, suite.instructor.UserID, suite.course.CourseID, dto.AddQuizQuestionRequest{
		Question:      "Which keyword starts a goroutine?",
		Options:       []string{"go", "run", "spawn", "fork"},
		CorrectAnswer: &bad,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCourseRepo.AssertNotCalled(suite.T(), "SaveQuizQuestion", mock.Anything, mock.Anything)
}

func (suite *CourseServiceTestSuite) TestListMaterials_RequiresEnrollment() {
	ctx := context.Background()
	learnerID := uuid.NewString()

	suite.mockCourseRepo.On("FindCourseByID", ctx, suite.course.CourseID).Return(&suite.course, nil).Once()
	suite.mockUserRepo.On("FindEnrollment", ctx, learnerID, suite.course.CourseID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListMaterials(ctx, learnerID, suite.course.CourseID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockCourseRepo.AssertNotCalled(suite.T(), "ListMaterialsByCourse", mock.Anything, mock.Anything)
}

func (suite *CourseServiceTestSuite) TestListMaterials_OwnerSkipsEnrollmentCheck() {
	ctx := context.Background()
	materials := []domain.Material{{MaterialID: uuid.NewString(), CourseID: suite.course.CourseID, Kind: domain.MaterialVideo, Title: "Lesson 1"}}

	suite.mockCourseRepo.On("FindCourseByID", ctx, suite.course.CourseID).Return(&suite.course, nil).Once()
	suite.mockCourseRepo.On("ListMaterialsByCourse", ctx, suite.course.CourseID).Return(materials, nil).Once()

	got, err := suite.service.ListMaterials(ctx, suite.instructor.UserID, suite.course.CourseID)

	suite.Require().NoError(err)
	suite.Len(got, 1)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindEnrollment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CourseServiceTestSuite) TestListEnrolledCourses_SkipsRemovedCourses() {
	ctx := context.Background()
	learnerID := uuid.NewString()
	goneCourseID := uuid.NewString()
	enrollments := []domain.Enrollment{
		{UserID: learnerID, CourseID: suite.course.CourseID},
		{UserID: learnerID, CourseID: goneCourseID},
	}

	suite.mockUserRepo.On("ListEnrollmentsByUser", ctx, learnerID).Return(enrollments, nil).Once()
	suite.mockCourseRepo.On("FindCourseByID", ctx, suite.course.CourseID).Return(&suite.course, nil).Once()
	suite.mockCourseRepo.On("FindCourseByID", ctx, goneCourseID).Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.ListEnrolledCourses(ctx, learnerID)

	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal(suite.course.CourseID, got[0].Course.CourseID)
}

func TestCourseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CourseServiceTestSuite))
}
