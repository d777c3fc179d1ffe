package services_test

import (
	"context"
	"time"

	"github.com/coursebay/lms_backend/internal/core/domain"
	portsrepo "github.com/coursebay/lms_backend/internal/core/ports/repositories"
	portssvc "github.com/coursebay/lms_backend/internal/core/ports/services"
	"github.com/coursebay/lms_backend/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByNumbers(ctx context.Context, accountNumbers []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountNumbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) SaveLedgerEntries(ctx context.Context, changes []portsrepo.BalanceChange, transactions []domain.Transaction) error {
	args := m.Called(ctx, changes, transactions)
	return args.Error(0)
}

func (m *MockTransactionRepository) MarkValidated(ctx context.Context, transactionID string, at time.Time) error {
	args := m.Called(ctx, transactionID, at)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsersByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) CountUsersByRole(ctx context.Context, role domain.UserRole) (int, error) {
	args := m.Called(ctx, role)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) SetBankAccountNumber(ctx context.Context, userID string, accountNumber string) error {
	args := m.Called(ctx, userID, accountNumber)
	return args.Error(0)
}

func (m *MockUserRepository) SaveEnrollment(ctx context.Context, enrollment domain.Enrollment) error {
	args := m.Called(ctx, enrollment)
	return args.Error(0)
}

func (m *MockUserRepository) FindEnrollment(ctx context.Context, userID, courseID string) (*domain.Enrollment, error) {
	args := m.Called(ctx, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enrollment), args.Error(1)
}

func (m *MockUserRepository) ListEnrollmentsByUser(ctx context.Context, userID string) ([]domain.Enrollment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Enrollment), args.Error(1)
}

func (m *MockUserRepository) ListEnrollmentsByCourse(ctx context.Context, courseID string) ([]domain.Enrollment, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Enrollment), args.Error(1)
}

func (m *MockUserRepository) MarkEnrollmentCompleted(ctx context.Context, userID, courseID string, at time.Time) error {
	args := m.Called(ctx, userID, courseID, at)
	return args.Error(0)
}

// --- Mock CourseRepository ---

type MockCourseRepository struct {
	mock.Mock
}

var _ portsrepo.CourseRepositoryFacade = (*MockCourseRepository)(nil)

func (m *MockCourseRepository) SaveCourse(ctx context.Context, course domain.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseRepository) UpdateCourse(ctx context.Context, course domain.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseRepository) FindCourseByID(ctx context.Context, courseID string) (*domain.Course, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *MockCourseRepository) FindCourseByInstructorAndTitle(ctx context.Context, instructorID, title string) (*domain.Course, error) {
	args := m.Called(ctx, instructorID, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *MockCourseRepository) ListActiveCourses(ctx context.Context) ([]domain.Course, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Course), args.Error(1)
}

func (m *MockCourseRepository) ListAllCourses(ctx context.Context) ([]domain.Course, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Course), args.Error(1)
}

func (m *MockCourseRepository) ListCoursesByInstructor(ctx context.Context, instructorID string) ([]domain.Course, error) {
	args := m.Called(ctx, instructorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Course), args.Error(1)
}

func (m *MockCourseRepository) CountActiveCourses(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockCourseRepository) CountCourses(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockCourseRepository) SaveMaterial(ctx context.Context, material domain.Material) error {
	args := m.Called(ctx, material)
	return args.Error(0)
}

func (m *MockCourseRepository) ListMaterialsByCourse(ctx context.Context, courseID string) ([]domain.Material, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Material), args.Error(1)
}

func (m *MockCourseRepository) SaveQuizQuestion(ctx context.Context, question domain.QuizQuestion) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockCourseRepository) ListQuizQuestionsByCourse(ctx context.Context, courseID string) ([]domain.QuizQuestion, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuizQuestion), args.Error(1)
}

// --- Mock QuizAttemptRepository ---

type MockQuizAttemptRepository struct {
	mock.Mock
}

var _ portsrepo.QuizAttemptRepository = (*MockQuizAttemptRepository)(nil)

func (m *MockQuizAttemptRepository) SaveQuizAttempt(ctx context.Context, attempt domain.QuizAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockQuizAttemptRepository) ListAttemptsByUserAndCourse(ctx context.Context, userID, courseID string) ([]domain.QuizAttempt, error) {
	args := m.Called(ctx, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuizAttempt), args.Error(1)
}

// --- Mock CertificateRepository ---

type MockCertificateRepository struct {
	mock.Mock
}

var _ portsrepo.CertificateRepository = (*MockCertificateRepository)(nil)

func (m *MockCertificateRepository) SaveCertificate(ctx context.Context, cert domain.Certificate) error {
	args := m.Called(ctx, cert)
	return args.Error(0)
}

func (m *MockCertificateRepository) FindCertificateByUserAndCourse(ctx context.Context, userID, courseID string) (*domain.Certificate, error) {
	args := m.Called(ctx, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) ListCertificatesByUser(ctx context.Context, userID string) ([]domain.Certificate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Certificate), args.Error(1)
}

// --- Mock LedgerService (for course service tests) ---

type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) EnsurePlatformAccount(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLedgerService) CreateBankAccount(ctx context.Context, userID string, req dto.CreateBankAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) GetAccountForUser(ctx context.Context, userID string) (*domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) GetPlatformBalance(ctx context.Context) (*domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) Transfer(ctx context.Context, callerUserID string, req dto.TransferRequest) (*dto.TransferResult, error) {
	args := m.Called(ctx, callerUserID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransferResult), args.Error(1)
}

func (m *MockLedgerService) PurchaseCourse(ctx context.Context, learnerUserID, courseID, secret string) (*dto.PurchaseResult, error) {
	args := m.Called(ctx, learnerUserID, courseID, secret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PurchaseResult), args.Error(1)
}

func (m *MockLedgerService) ValidatePayment(ctx context.Context, transactionID, instructorUserID, secret string) (*dto.ValidatePaymentResult, error) {
	args := m.Called(ctx, transactionID, instructorUserID, secret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ValidatePaymentResult), args.Error(1)
}

func (m *MockLedgerService) PayCourseUploadReward(ctx context.Context, instructor *domain.User, course *domain.Course) (*domain.Transaction, error) {
	args := m.Called(ctx, instructor, course)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) ListTransactionsForUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
