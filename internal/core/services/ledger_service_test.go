package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/coursebay/lms_backend/internal/apperrors"
	"github.com/coursebay/lms_backend/internal/core/domain"
	portsrepo "github.com/coursebay/lms_backend/internal/core/ports/repositories"
	"github.com/coursebay/lms_backend/internal/core/services"
	"github.com/coursebay/lms_backend/internal/dto"
	"github.com/coursebay/lms_backend/internal/platform/config"
	"github.com/coursebay/lms_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testSecret = "s3cret99"

type LedgerServiceTestSuite struct {
	suite.Suite
	cfg             *config.Config
	mockAccountRepo *MockAccountRepository
	mockTxnRepo     *MockTransactionRepository
	mockUserRepo    *MockUserRepository
	mockCourseRepo  *MockCourseRepository
	service         *services.LedgerService

	secretHash string

	learner           domain.User
	instructor        domain.User
	learnerAccount    domain.Account
	instructorAccount domain.Account
	platformAccount   domain.Account
	course            domain.Course
}

func (suite *LedgerServiceTestSuite) SetupSuite() {
	hash, err := utils.HashSecret(testSecret)
	suite.Require().NoError(err)
	suite.secretHash = hash
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.cfg = &config.Config{
		PlatformAccountNumber:  "LMS-0000000001",
		PlatformHolderName:     "LMS Organization",
		PlatformInitialBalance: decimal.NewFromInt(30000),
		InitialAccountBalance:  decimal.NewFromInt(10000),
		InstructorShareRate:    decimal.NewFromFloat(0.70),
		CourseUploadPayment:    decimal.NewFromInt(5000),
		MaxActiveCourses:       5,
	}
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockCourseRepo = new(MockCourseRepository)
	suite.service = services.NewLedgerService(suite.cfg, suite.mockAccountRepo, suite.mockTxnRepo, suite.mockUserRepo, suite.mockCourseRepo)

	learnerAccNum := "ACC-LEARNER-1"
	instructorAccNum := "ACC-INSTR-1"

	suite.learner = domain.User{
		UserID:            uuid.NewString(),
		Name:              "Lena Learner",
		Email:             "lena@example.com",
		Role:              domain.RoleLearner,
		BankAccountNumber: &learnerAccNum,
	}
	suite.instructor = domain.User{
		UserID:            uuid.NewString(),
		Name:              "Ivan Instructor",
		Email:             "ivan@example.com",
		Role:              domain.RoleInstructor,
		BankAccountNumber: &instructorAccNum,
	}
	suite.learnerAccount = domain.Account{
		AccountNumber: learnerAccNum,
		UserID:        suite.learner.UserID,
		HolderName:    suite.learner.Name,
		Balance:       decimal.NewFromInt(10000),
		SecretHash:    suite.secretHash,
		AccountType:   domain.UserAccount,
		Version:       3,
	}
	suite.instructorAccount = domain.Account{
		AccountNumber: instructorAccNum,
		UserID:        suite.instructor.UserID,
		HolderName:    suite.instructor.Name,
		Balance:       decimal.NewFromInt(500),
		SecretHash:    suite.secretHash,
		AccountType:   domain.InstructorAccount,
		Version:       7,
	}
	suite.platformAccount = domain.Account{
		AccountNumber: suite.cfg.PlatformAccountNumber,
		HolderName:    suite.cfg.PlatformHolderName,
		Balance:       decimal.NewFromInt(30000),
		AccountType:   domain.PlatformAccount,
		Version:       1,
	}
	suite.course = domain.Course{
		CourseID:       uuid.NewString(),
		Title:          "Intro to Go",
		Price:          decimal.NewFromInt(100),
		InstructorID:   suite.instructor.UserID,
		InstructorName: suite.instructor.Name,
		IsActive:       true,
	}
}

func (suite *LedgerServiceTestSuite) purchaseAccountsMap() map[string]domain.Account {
	return map[string]domain.Account{
		suite.instructorAccount.AccountNumber: suite.instructorAccount,
		suite.platformAccount.AccountNumber:   suite.platformAccount,
	}
}

// expectPurchasePreamble stubs the precondition chain up to and including the
// learner account lookup.
func (suite *LedgerServiceTestSuite) expectPurchasePreamble(ctx context.Context) {
	suite.mockCourseRepo.On("FindCourseByID", ctx, suite.course.CourseID).Return(&suite.course, nil).Once()
	suite.mockUserRepo.On("FindEnrollment", ctx, suite.learner.UserID, suite.course.CourseID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.learner.UserID).Return(&suite.learner, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, suite.learnerAccount.AccountNumber).Return(&suite.learnerAccount, nil).Once()
}

// expectPurchaseSettlement stubs the instructor and platform/instructor
// account resolution reached only after secret and balance pass.
func (suite *LedgerServiceTestSuite) expectPurchaseSettlement(ctx context.Context) {
	suite.mockUserRepo.On("FindUserByID", ctx, suite.instructor.UserID).Return(&suite.instructor, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByNumbers", ctx, mock.Anything).Return(suite.purchaseAccountsMap(), nil).Once()
}

// --- PurchaseCourse ---

func (suite *LedgerServiceTestSuite) TestPurchaseCourse_SplitsRevenue() {
	ctx := context.Background()

	suite.expectPurchasePreamble(ctx)
	suite.expectPurchaseSettlement(ctx)

	var capturedChanges []portsrepo.BalanceChange
	var capturedTxns []domain.Transaction
	suite.mockTxnRepo.On("SaveLedgerEntries", ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			capturedChanges = args.Get(1).([]portsrepo.BalanceChange)
			capturedTxns = args.Get(2).([]domain.Transaction)
		}).Return(nil).Once()
	suite.mockUserRepo.On("SaveEnrollment", ctx, mock.AnythingOfType("domain.Enrollment")).Return(nil).Once()

	result, err := suite.service.PurchaseCourse(ctx, suite.learner.UserID, suite.course.CourseID, testSecret)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.True(result.NewBalance.Equal(decimal.NewFromInt(9900)))

	suite.Require().Len(capturedChanges, 3)
	deltaByAccount := make(map[string]decimal.Decimal)
	total := decimal.Zero
	for _, change := range capturedChanges {
		deltaByAccount[change.AccountNumber] = change.Delta
		total = total.Add(change.Delta)
	}
	suite.True(total.IsZero(), "balance changes must conserve money, got net %s", total)
	suite.True(deltaByAccount[suite.learnerAccount.AccountNumber].Equal(decimal.NewFromInt(-100)))
	suite.True(deltaByAccount[suite.instructorAccount.AccountNumber].Equal(decimal.NewFromInt(70)))
	suite.True(deltaByAccount[suite.platformAccount.AccountNumber].Equal(decimal.NewFromInt(30)))

	suite.Require().Len(capturedTxns, 3)
	suite.Equal(domain.CoursePurchase, capturedTxns[0].Kind)
	suite.Equal(suite.learnerAccount.AccountNumber, capturedTxns[0].FromAccount)
	suite.Equal(suite.platformAccount.AccountNumber, capturedTxns[0].ToAccount)
	suite.True(capturedTxns[0].Amount.Equal(decimal.NewFromInt(100)))
	suite.Equal(domain.InstructorPayment, capturedTxns[1].Kind)
	suite.Equal(suite.instructorAccount.AccountNumber, capturedTxns[1].ToAccount)
	suite.True(capturedTxns[1].Amount.Equal(decimal.NewFromInt(70)))
	suite.Equal(suite.instructor.UserID, capturedTxns[1].UserID)
	suite.False(capturedTxns[1].Validated)
	suite.Equal(domain.PlatformCommission, capturedTxns[2].Kind)
	suite.True(capturedTxns[2].Amount.Equal(decimal.NewFromInt(30)))

	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPurchaseCourse_OddPriceSplitsExactly() {
	ctx := context.Background()
	suite.course.Price = decimal.RequireFromString("99.99")

	suite.expectPurchasePreamble(ctx)
	suite.expectPurchaseSettlement(ctx)

	var capturedChanges []portsrepo.BalanceChange
	suite.mockTxnRepo.On("SaveLedgerEntries", ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			capturedChanges = args.Get(1).([]portsrepo.BalanceChange)
		}).Return(nil).Once()
	suite.mockUserRepo.On("SaveEnrollment", ctx, mock.AnythingOfType("domain.Enrollment")).Return(nil).Once()

	_, err := suite.service.PurchaseCourse(ctx, suite.learner.UserID, suite.course.CourseID, testSecret)

	suite.Require().NoError(err)
	suite.Require().Len(capturedChanges, 3)
	total := decimal.Zero
	for _, change := range capturedChanges {
		total = total.Add(change.Delta)
		if change.AccountNumber == suite.instructorAccount.AccountNumber {
			suite.True(change.Delta.Equal(decimal.RequireFromString("69.99")))
		}
		if change.AccountNumber == suite.platformAccount.AccountNumber {
			suite.True(change.Delta.Equal(decimal.RequireFromString("30.00")))
		}
	}
	suite.True(total.IsZero())
}

func (suite *LedgerServiceTestSuite) TestPurchaseCourse_InsufficientFunds() {
	ctx := context.Background()
	suite.learnerAccount.Balance = decimal.NewFromInt(50)

	suite.expectPurchasePreamble(ctx)

	_, err := suite.service.PurchaseCourse(ctx, suite.learner.UserID, suite.course.CourseID, testSecret)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByNumbers", mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveLedgerEntries", mock.Anything, mock.Anything, mock.Anything)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveEnrollment", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPurchaseCourse_WrongSecretBeforeInstructorLookup() {
	ctx := context.Background()

	suite.expectPurchasePreamble(ctx)

	_, err := suite.service.PurchaseCourse(ctx, suite.learner.UserID, suite.course.CourseID, "not-the-secret")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidSecret)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByID", ctx, suite.instructor.UserID)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByNumbers", mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveLedgerEntries", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPurchaseCourse_AlreadyEnrolled() {
	ctx := context.Background()

	suite.mockCourseRepo.On("FindCourseByID", ctx, suite.course.CourseID).Return(&suite.course, nil).Once()
	suite.mockUserRepo.On("FindEnrollment", ctx, suite.learner.UserID, suite.course.CourseID).
		Return(&domain.Enrollment{UserID: suite.learner.UserID, CourseID: suite.course.CourseID}, nil).Once()

	_, err := suite.service.PurchaseCourse(ctx, suite.learner.UserID, suite.course.CourseID, testSecret)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByID", mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByNumbers", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPurchaseCourse_InactiveCourse() {
	ctx := context.Background()
	suite.course.IsActive = false

	suite.mockCourseRepo.On("FindCourseByID", ctx, suite.course.CourseID).Return(&suite.course, nil).Once()

	_, err := suite.service.PurchaseCourse(ctx, suite.learner.UserID, suite.course.CourseID, testSecret)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindEnrollment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPurchaseCourse_MissingCourseBeforeAccountChecks() {
	ctx := context.Background()
	// Even a learner with no bank account sees the course error first.
	suite.learner.BankAccountNumber = nil

	suite.mockCourseRepo.On("FindCourseByID", ctx, suite.course.CourseID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.PurchaseCourse(ctx, suite.learner.UserID, suite.course.CourseID, testSecret)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByID", mock.Anything, mock.Anything)
}

// --- Transfer ---

func (suite *LedgerServiceTestSuite) TestTransfer_Success() {
	ctx := context.Background()
	req := dto.TransferRequest{
		FromAccount: suite.learnerAccount.AccountNumber,
		ToAccount:   suite.instructorAccount.AccountNumber,
		Amount:      decimal.NewFromInt(250),
		Secret:      testSecret,
	}

	suite.mockAccountRepo.On("FindAccountByNumber", ctx, req.FromAccount).Return(&suite.learnerAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, req.ToAccount).Return(&suite.instructorAccount, nil).Once()

	var capturedChanges []portsrepo.BalanceChange
	suite.mockTxnRepo.On("SaveLedgerEntries", ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			capturedChanges = args.Get(1).([]portsrepo.BalanceChange)
		}).Return(nil).Once()

	result, err := suite.service.Transfer(ctx, suite.learner.UserID, req)

	suite.Require().NoError(err)
	suite.True(result.NewBalance.Equal(decimal.NewFromInt(9750)))
	suite.Equal(string(domain.CoursePurchase), result.Transaction.Kind)

	suite.Require().Len(capturedChanges, 2)
	suite.True(capturedChanges[0].Delta.Equal(decimal.NewFromInt(-250)))
	suite.Equal(int64(3), capturedChanges[0].Version)
	suite.True(capturedChanges[1].Delta.Equal(decimal.NewFromInt(250)))
	suite.Equal(int64(7), capturedChanges[1].Version)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestTransfer_SourceMissing() {
	ctx := context.Background()
	req := dto.TransferRequest{
		FromAccount: "ACC-NOPE",
		ToAccount:   suite.instructorAccount.AccountNumber,
		Amount:      decimal.NewFromInt(10),
		Secret:      testSecret,
	}
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, "ACC-NOPE").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Transfer(ctx, suite.learner.UserID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAccountRepo.AssertNumberOfCalls(suite.T(), "FindAccountByNumber", 1)
}

func (suite *LedgerServiceTestSuite) TestTransfer_WrongSecretBeforeBalanceCheck() {
	ctx := context.Background()
	req := dto.TransferRequest{
		FromAccount: suite.learnerAccount.AccountNumber,
		ToAccount:   suite.instructorAccount.AccountNumber,
		// Amount exceeds the balance, but the secret check must fire first.
		Amount: decimal.NewFromInt(99999),
		Secret: "wrong",
	}
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, req.FromAccount).Return(&suite.learnerAccount, nil).Once()

	_, err := suite.service.Transfer(ctx, suite.learner.UserID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidSecret)
	suite.mockAccountRepo.AssertNumberOfCalls(suite.T(), "FindAccountByNumber", 1)
}

func (suite *LedgerServiceTestSuite) TestTransfer_InsufficientBeforeDestinationLookup() {
	ctx := context.Background()
	req := dto.TransferRequest{
		FromAccount: suite.learnerAccount.AccountNumber,
		ToAccount:   "ACC-NOPE", // missing, but balance check fires first
		Amount:      decimal.NewFromInt(99999),
		Secret:      testSecret,
	}
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, req.FromAccount).Return(&suite.learnerAccount, nil).Once()

	_, err := suite.service.Transfer(ctx, suite.learner.UserID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockAccountRepo.AssertNumberOfCalls(suite.T(), "FindAccountByNumber", 1)
}

func (suite *LedgerServiceTestSuite) TestTransfer_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.TransferRequest{
		FromAccount: suite.learnerAccount.AccountNumber,
		ToAccount:   suite.instructorAccount.AccountNumber,
		Amount:      decimal.Zero,
		Secret:      testSecret,
	}

	_, err := suite.service.Transfer(ctx, suite.learner.UserID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByNumber", mock.Anything, mock.Anything)
}

// --- ValidatePayment ---

func (suite *LedgerServiceTestSuite) instructorPaymentTxn() *domain.Transaction {
	return &domain.Transaction{
		TransactionID: "TXN-" + uuid.NewString(),
		FromAccount:   suite.platformAccount.AccountNumber,
		ToAccount:     suite.instructorAccount.AccountNumber,
		Amount:        decimal.NewFromInt(70),
		Kind:          domain.InstructorPayment,
		Status:        domain.StatusCompleted,
		CourseID:      suite.course.CourseID,
		CreatedAt:     time.Now(),
	}
}

func (suite *LedgerServiceTestSuite) TestValidatePayment_Success() {
	ctx := context.Background()
	txn := suite.instructorPaymentTxn()

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockCourseRepo.On("FindCourseByID", ctx, suite.course.CourseID).Return(&suite.course, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.instructor.UserID).Return(&suite.instructor, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, suite.instructorAccount.AccountNumber).Return(&suite.instructorAccount, nil).Once()
	suite.mockTxnRepo.On("MarkValidated", ctx, txn.TransactionID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := suite.service.ValidatePayment(ctx, txn.TransactionID, suite.instructor.UserID, testSecret)

	suite.Require().NoError(err)
	suite.True(result.Payment.Equal(decimal.NewFromInt(70)))
	suite.True(result.NewBalance.Equal(suite.instructorAccount.Balance))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestValidatePayment_ConcurrentValidationLosesRace() {
	ctx := context.Background()
	txn := suite.instructorPaymentTxn()

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockCourseRepo.On("FindCourseByID", ctx, suite.course.CourseID).Return(&suite.course, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.instructor.UserID).Return(&suite.instructor, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, suite.instructorAccount.AccountNumber).Return(&suite.instructorAccount, nil).Once()
	suite.mockTxnRepo.On("MarkValidated", ctx, txn.TransactionID, mock.AnythingOfType("time.Time")).Return(apperrors.ErrConflict).Once()

	_, err := suite.service.ValidatePayment(ctx, txn.TransactionID, suite.instructor.UserID, testSecret)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *LedgerServiceTestSuite) TestValidatePayment_AlreadyValidatedBeforeSecretCheck() {
	ctx := context.Background()
	txn := suite.instructorPaymentTxn()
	txn.Validated = true

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	// A stale payment is rejected before ownership or the secret are looked at.
	_, err := suite.service.ValidatePayment(ctx, txn.TransactionID, suite.instructor.UserID, "not-the-secret")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockCourseRepo.AssertNotCalled(suite.T(), "FindCourseByID", mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByNumber", mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "MarkValidated", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestValidatePayment_WrongInstructor() {
	ctx := context.Background()
	txn := suite.instructorPaymentTxn()
	stranger := uuid.NewString()

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockCourseRepo.On("FindCourseByID", ctx, suite.course.CourseID).Return(&suite.course, nil).Once()

	_, err := suite.service.ValidatePayment(ctx, txn.TransactionID, stranger, testSecret)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByID", mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "MarkValidated", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestValidatePayment_NotAnInstructorPayment() {
	ctx := context.Background()
	txn := suite.instructorPaymentTxn()
	txn.Kind = domain.CoursePurchase

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	_, err := suite.service.ValidatePayment(ctx, txn.TransactionID, suite.instructor.UserID, testSecret)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- PayCourseUploadReward ---

func (suite *LedgerServiceTestSuite) TestPayCourseUploadReward_Paid() {
	ctx := context.Background()

	accounts := map[string]domain.Account{
		suite.platformAccount.AccountNumber:   suite.platformAccount,
		suite.instructorAccount.AccountNumber: suite.instructorAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByNumbers", ctx, mock.Anything).Return(accounts, nil).Once()

	var capturedChanges []portsrepo.BalanceChange
	var capturedTxns []domain.Transaction
	suite.mockTxnRepo.On("SaveLedgerEntries", ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			capturedChanges = args.Get(1).([]portsrepo.BalanceChange)
			capturedTxns = args.Get(2).([]domain.Transaction)
		}).Return(nil).Once()

	txn, err := suite.service.PayCourseUploadReward(ctx, &suite.instructor, &suite.course)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCompleted, txn.Status)
	suite.Equal(domain.CourseUploadPayment, txn.Kind)
	suite.True(txn.Amount.Equal(decimal.NewFromInt(5000)))

	suite.Require().Len(capturedChanges, 2)
	suite.True(capturedChanges[0].Delta.Equal(decimal.NewFromInt(-5000)))
	suite.True(capturedChanges[1].Delta.Equal(decimal.NewFromInt(5000)))
	suite.Require().Len(capturedTxns, 1)
}

func (suite *LedgerServiceTestSuite) TestPayCourseUploadReward_PlatformShortRecordsPending() {
	ctx := context.Background()
	suite.platformAccount.Balance = decimal.NewFromInt(100)

	accounts := map[string]domain.Account{
		suite.platformAccount.AccountNumber:   suite.platformAccount,
		suite.instructorAccount.AccountNumber: suite.instructorAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByNumbers", ctx, mock.Anything).Return(accounts, nil).Once()

	var capturedChanges []portsrepo.BalanceChange
	suite.mockTxnRepo.On("SaveLedgerEntries", ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			capturedChanges = args.Get(1).([]portsrepo.BalanceChange)
		}).Return(nil).Once()

	txn, err := suite.service.PayCourseUploadReward(ctx, &suite.instructor, &suite.course)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, txn.Status)
	suite.Empty(capturedChanges, "a pending reward must not move balances")
}

// --- EnsurePlatformAccount ---

func (suite *LedgerServiceTestSuite) TestEnsurePlatformAccount_CreatesWhenMissing() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByNumber", ctx, suite.cfg.PlatformAccountNumber).Return(nil, apperrors.ErrNotFound).Once()

	var saved domain.Account
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Account)
		}).Return(nil).Once()

	err := suite.service.EnsurePlatformAccount(ctx)

	suite.Require().NoError(err)
	suite.Equal(suite.cfg.PlatformAccountNumber, saved.AccountNumber)
	suite.Equal(domain.PlatformAccount, saved.AccountType)
	suite.True(saved.Balance.Equal(decimal.NewFromInt(30000)))
}

func (suite *LedgerServiceTestSuite) TestEnsurePlatformAccount_AlreadyExists() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByNumber", ctx, suite.cfg.PlatformAccountNumber).Return(&suite.platformAccount, nil).Once()

	err := suite.service.EnsurePlatformAccount(ctx)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

// --- CreateBankAccount ---

func (suite *LedgerServiceTestSuite) TestCreateBankAccount_Success() {
	ctx := context.Background()
	newUser := domain.User{
		UserID: uuid.NewString(),
		Name:   "Nora New",
		Role:   domain.RoleLearner,
	}
	req := dto.CreateBankAccountRequest{AccountNumber: "ACC-NEW-1", Secret: testSecret}

	suite.mockUserRepo.On("FindUserByID", ctx, newUser.UserID).Return(&newUser, nil).Once()

	var saved domain.Account
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Account)
		}).Return(nil).Once()
	suite.mockUserRepo.On("SetBankAccountNumber", ctx, newUser.UserID, "ACC-NEW-1").Return(nil).Once()

	account, err := suite.service.CreateBankAccount(ctx, newUser.UserID, req)

	suite.Require().NoError(err)
	suite.True(account.Balance.Equal(decimal.NewFromInt(10000)))
	suite.Equal(domain.UserAccount, saved.AccountType)
	suite.True(utils.CheckSecretHash(testSecret, saved.SecretHash))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateBankAccount_AlreadyLinked() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.learner.UserID).Return(&suite.learner, nil).Once()

	_, err := suite.service.CreateBankAccount(ctx, suite.learner.UserID, dto.CreateBankAccountRequest{AccountNumber: "ACC-X", Secret: testSecret})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateBankAccount_ReservedNumber() {
	ctx := context.Background()
	newUser := domain.User{UserID: uuid.NewString(), Name: "Nora New", Role: domain.RoleLearner}

	suite.mockUserRepo.On("FindUserByID", ctx, newUser.UserID).Return(&newUser, nil).Once()

	_, err := suite.service.CreateBankAccount(ctx, newUser.UserID, dto.CreateBankAccountRequest{AccountNumber: suite.cfg.PlatformAccountNumber, Secret: testSecret})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
