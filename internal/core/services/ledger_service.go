package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/coursebay/lms_backend/internal/apperrors"
	"github.com/coursebay/lms_backend/internal/core/domain"
	portsrepo "github.com/coursebay/lms_backend/internal/core/ports/repositories"
	"github.com/coursebay/lms_backend/internal/dto"
	"github.com/coursebay/lms_backend/internal/middleware"
	"github.com/coursebay/lms_backend/internal/platform/config"
	"github.com/coursebay/lms_backend/internal/utils"
)

// LedgerService implements the internal ledger: account setup, transfers,
// the purchase revenue split and instructor-payment validation. Every
// balance mutation goes through the repository's atomic ledger write;
// nothing in this service updates a balance directly.
type LedgerService struct {
	cfg         *config.Config
	accountRepo portsrepo.AccountRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
	courseRepo  portsrepo.CourseRepositoryFacade
}

func NewLedgerService(cfg *config.Config, accountRepo portsrepo.AccountRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, courseRepo portsrepo.CourseRepositoryFacade) *LedgerService {
	return &LedgerService{
		cfg:         cfg,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		userRepo:    userRepo,
		courseRepo:  courseRepo,
	}
}

// EnsurePlatformAccount creates the platform account if it does not exist
// yet. Safe to call on every startup; an existing account is left untouched.
func (s *LedgerService) EnsurePlatformAccount(ctx context.Context) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	_, err := s.accountRepo.FindAccountByNumber(ctx, s.cfg.PlatformAccountNumber)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to look up platform account: %w", err)
	}

	now := time.Now()
	account := domain.Account{
		AccountNumber: s.cfg.PlatformAccountNumber,
		HolderName:    s.cfg.PlatformHolderName,
		Balance:       s.cfg.PlatformInitialBalance,
		AccountType:   domain.PlatformAccount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "system",
			LastUpdatedAt: now,
			LastUpdatedBy: "system",
		},
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		// Another replica may have created it between our check and write.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil
		}
		return fmt.Errorf("failed to create platform account: %w", err)
	}

	logger.Info("Platform account created",
		slog.String("account_number", account.AccountNumber),
		slog.String("balance", account.Balance.String()))
	return nil
}

func (s *LedgerService) CreateBankAccount(ctx context.Context, userID string, req dto.CreateBankAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.BankAccountNumber != nil {
		return nil, fmt.Errorf("%w: user already has a bank account", apperrors.ErrDuplicate)
	}
	if req.AccountNumber == s.cfg.PlatformAccountNumber {
		return nil, fmt.Errorf("%w: account number is reserved", apperrors.ErrValidation)
	}

	secretHash, err := utils.HashSecret(req.Secret)
	if err != nil {
		logger.Error("Failed to hash account secret", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash secret: %w", err)
	}

	accountType := domain.UserAccount
	if user.Role == domain.RoleInstructor {
		accountType = domain.InstructorAccount
	}

	now := time.Now()
	account := domain.Account{
		AccountNumber: req.AccountNumber,
		UserID:        user.UserID,
		HolderName:    user.Name,
		Balance:       s.cfg.InitialAccountBalance,
		SecretHash:    secretHash,
		AccountType:   accountType,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save bank account", slog.String("error", err.Error()), slog.String("account_number", req.AccountNumber))
		}
		return nil, err
	}
	if err := s.userRepo.SetBankAccountNumber(ctx, userID, account.AccountNumber); err != nil {
		logger.Error("Failed to link bank account to user", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to link bank account: %w", err)
	}

	logger.Info("Bank account created",
		slog.String("account_number", account.AccountNumber),
		slog.String("user_id", userID),
		slog.String("account_type", string(accountType)))
	return &account, nil
}

func (s *LedgerService) GetAccountForUser(ctx context.Context, userID string) (*domain.Account, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.BankAccountNumber == nil {
		return nil, fmt.Errorf("%w: no bank account on file", apperrors.ErrNotFound)
	}
	return s.accountRepo.FindAccountByNumber(ctx, *user.BankAccountNumber)
}

func (s *LedgerService) GetPlatformBalance(ctx context.Context) (*domain.Account, error) {
	return s.accountRepo.FindAccountByNumber(ctx, s.cfg.PlatformAccountNumber)
}

// Transfer moves req.Amount between two accounts. Preconditions run in a
// fixed order so callers see deterministic failures: source lookup, secret,
// balance, destination lookup.
func (s *LedgerService) Transfer(ctx context.Context, callerUserID string, req dto.TransferRequest) (*dto.TransferResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if req.FromAccount == req.ToAccount {
		return nil, fmt.Errorf("%w: source and destination accounts are the same", apperrors.ErrValidation)
	}

	fromAccount, err := s.accountRepo.FindAccountByNumber(ctx, req.FromAccount)
	if err != nil {
		return nil, err
	}
	if !utils.CheckSecretHash(req.Secret, fromAccount.SecretHash) {
		return nil, apperrors.ErrInvalidSecret
	}
	if fromAccount.Balance.LessThan(req.Amount) {
		return nil, apperrors.ErrInsufficientFunds
	}
	toAccount, err := s.accountRepo.FindAccountByNumber(ctx, req.ToAccount)
	if err != nil {
		return nil, err
	}

	kind := domain.TransactionKind(req.Kind)
	if kind == "" {
		kind = domain.CoursePurchase
	}

	txn := domain.Transaction{
		TransactionID: utils.NewTransactionID(),
		FromAccount:   fromAccount.AccountNumber,
		ToAccount:     toAccount.AccountNumber,
		Amount:        req.Amount,
		Kind:          kind,
		Status:        domain.StatusCompleted,
		CourseID:      req.CourseID,
		UserID:        callerUserID,
		Description:   req.Description,
		CreatedAt:     time.Now(),
	}
	changes := []portsrepo.BalanceChange{
		{AccountNumber: fromAccount.AccountNumber, Delta: req.Amount.Neg(), Version: fromAccount.Version},
		{AccountNumber: toAccount.AccountNumber, Delta: req.Amount, Version: toAccount.Version},
	}
	if err := s.txnRepo.SaveLedgerEntries(ctx, changes, []domain.Transaction{txn}); err != nil {
		logger.Error("Ledger write failed for transfer",
			slog.String("error", err.Error()),
			slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	logger.Info("Transfer completed",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("from", txn.FromAccount),
		slog.String("to", txn.ToAccount),
		slog.String("amount", txn.Amount.String()))
	return &dto.TransferResult{
		Transaction: dto.ToTransactionResponse(&txn),
		NewBalance:  fromAccount.Balance.Sub(req.Amount),
	}, nil
}

// PurchaseCourse executes a purchase as one economic event. The learner pays
// the full price, the instructor receives their share, the platform keeps
// the remainder, and the learner is enrolled. All three balance changes and
// all three transaction records land atomically.
func (s *LedgerService) PurchaseCourse(ctx context.Context, learnerUserID, courseID, secret string) (*dto.PurchaseResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Preconditions run in a fixed order so callers see deterministic
	// failures: course, enrollment, learner account, secret, balance,
	// platform account, instructor account.
	course, err := s.courseRepo.FindCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsActive {
		return nil, fmt.Errorf("%w: course is not available", apperrors.ErrValidation)
	}

	if existing, err := s.userRepo.FindEnrollment(ctx, learnerUserID, courseID); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: already enrolled in this course", apperrors.ErrDuplicate)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	learner, err := s.userRepo.FindUserByID(ctx, learnerUserID)
	if err != nil {
		return nil, err
	}
	if learner.BankAccountNumber == nil {
		return nil, fmt.Errorf("%w: bank account setup required before purchase", apperrors.ErrValidation)
	}
	learnerAccount, err := s.accountRepo.FindAccountByNumber(ctx, *learner.BankAccountNumber)
	if err != nil {
		return nil, err
	}
	if !utils.CheckSecretHash(secret, learnerAccount.SecretHash) {
		return nil, apperrors.ErrInvalidSecret
	}
	price := course.Price
	if learnerAccount.Balance.LessThan(price) {
		return nil, apperrors.ErrInsufficientFunds
	}

	instructor, err := s.userRepo.FindUserByID(ctx, course.InstructorID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve course instructor: %w", err)
	}
	if instructor.BankAccountNumber == nil {
		return nil, fmt.Errorf("%w: instructor has no bank account on file", apperrors.ErrValidation)
	}

	accounts, err := s.accountRepo.FindAccountsByNumbers(ctx, []string{
		s.cfg.PlatformAccountNumber,
		*instructor.BankAccountNumber,
	})
	if err != nil {
		return nil, err
	}
	platformAccount, ok := accounts[s.cfg.PlatformAccountNumber]
	if !ok {
		return nil, fmt.Errorf("%w: platform account not found", apperrors.ErrNotFound)
	}
	instructorAccount, ok := accounts[*instructor.BankAccountNumber]
	if !ok {
		return nil, fmt.Errorf("%w: instructor bank account not found", apperrors.ErrNotFound)
	}

	// The platform share is derived by subtraction so the two legs always
	// sum to the exact price, whatever the rounding of the multiply did.
	instructorShare := price.Mul(s.cfg.InstructorShareRate).Round(2)
	platformShare := price.Sub(instructorShare)

	now := time.Now()
	purchaseTxn := domain.Transaction{
		TransactionID: utils.NewTransactionID(),
		FromAccount:   learnerAccount.AccountNumber,
		ToAccount:     platformAccount.AccountNumber,
		Amount:        price,
		Kind:          domain.CoursePurchase,
		Status:        domain.StatusCompleted,
		CourseID:      course.CourseID,
		UserID:        learnerUserID,
		Description:   fmt.Sprintf("Purchase of course: %s", course.Title),
		CreatedAt:     now,
	}
	instructorTxn := domain.Transaction{
		TransactionID: utils.NewTransactionID(),
		FromAccount:   platformAccount.AccountNumber,
		ToAccount:     instructorAccount.AccountNumber,
		Amount:        instructorShare,
		Kind:          domain.InstructorPayment,
		Status:        domain.StatusCompleted,
		CourseID:      course.CourseID,
		UserID:        instructor.UserID,
		Description:   fmt.Sprintf("Instructor share for course: %s", course.Title),
		CreatedAt:     now,
	}
	commissionTxn := domain.Transaction{
		TransactionID: utils.NewTransactionID(),
		FromAccount:   platformAccount.AccountNumber,
		ToAccount:     platformAccount.AccountNumber,
		Amount:        platformShare,
		Kind:          domain.PlatformCommission,
		Status:        domain.StatusCompleted,
		CourseID:      course.CourseID,
		UserID:        learnerUserID,
		Description:   fmt.Sprintf("Platform commission for course: %s", course.Title),
		CreatedAt:     now,
	}

	// Net platform movement is +price -instructorShare = +platformShare.
	changes := []portsrepo.BalanceChange{
		{AccountNumber: learnerAccount.AccountNumber, Delta: price.Neg(), Version: learnerAccount.Version},
		{AccountNumber: instructorAccount.AccountNumber, Delta: instructorShare, Version: instructorAccount.Version},
		{AccountNumber: platformAccount.AccountNumber, Delta: platformShare, Version: platformAccount.Version},
	}
	txns := []domain.Transaction{purchaseTxn, instructorTxn, commissionTxn}
	if err := s.txnRepo.SaveLedgerEntries(ctx, changes, txns); err != nil {
		logger.Error("Ledger write failed for course purchase",
			slog.String("error", err.Error()),
			slog.String("course_id", courseID),
			slog.String("user_id", learnerUserID))
		return nil, err
	}

	enrollment := domain.Enrollment{
		UserID:     learnerUserID,
		CourseID:   course.CourseID,
		EnrolledAt: now,
	}
	if err := s.userRepo.SaveEnrollment(ctx, enrollment); err != nil {
		// Funds already moved; surface the error but do not roll the ledger
		// back. The purchase transaction is the source of truth.
		logger.Error("Enrollment write failed after ledger commit",
			slog.String("error", err.Error()),
			slog.String("course_id", courseID),
			slog.String("user_id", learnerUserID))
		return nil, fmt.Errorf("failed to record enrollment: %w", err)
	}

	logger.Info("Course purchased",
		slog.String("course_id", course.CourseID),
		slog.String("user_id", learnerUserID),
		slog.String("price", price.String()),
		slog.String("instructor_share", instructorShare.String()),
		slog.String("platform_share", platformShare.String()))
	return &dto.PurchaseResult{
		NewBalance:  learnerAccount.Balance.Sub(price),
		Transaction: dto.ToTransactionResponse(&purchaseTxn),
	}, nil
}

// ValidatePayment acknowledges an instructor-payment transaction. The funds
// moved when the purchase settled, so this flips the validated flag exactly
// once and moves no money.
func (s *LedgerService) ValidatePayment(ctx context.Context, transactionID, instructorUserID, secret string) (*dto.ValidatePaymentResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Kind != domain.InstructorPayment {
		return nil, fmt.Errorf("%w: transaction is not an instructor payment", apperrors.ErrValidation)
	}
	if txn.Validated {
		// MarkValidated below still guards the race; this rejects a stale
		// payment before the secret is ever inspected.
		return nil, fmt.Errorf("%w: payment already validated", apperrors.ErrConflict)
	}

	// Ownership follows the course, not the account the funds landed in.
	course, err := s.courseRepo.FindCourseByID(ctx, txn.CourseID)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != instructorUserID {
		return nil, fmt.Errorf("%w: payment belongs to another instructor", apperrors.ErrForbidden)
	}

	instructor, err := s.userRepo.FindUserByID(ctx, instructorUserID)
	if err != nil {
		return nil, err
	}
	if instructor.BankAccountNumber == nil {
		return nil, fmt.Errorf("%w: instructor has no bank account on file", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByNumber(ctx, *instructor.BankAccountNumber)
	if err != nil {
		return nil, err
	}
	if !utils.CheckSecretHash(secret, account.SecretHash) {
		return nil, apperrors.ErrInvalidSecret
	}

	if err := s.txnRepo.MarkValidated(ctx, transactionID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to mark payment validated",
				slog.String("error", err.Error()),
				slog.String("transaction_id", transactionID))
		}
		return nil, err
	}

	logger.Info("Instructor payment validated",
		slog.String("transaction_id", transactionID),
		slog.String("instructor_id", instructorUserID),
		slog.String("amount", txn.Amount.String()))
	return &dto.ValidatePaymentResult{
		Payment:    txn.Amount,
		NewBalance: account.Balance,
	}, nil
}

// PayCourseUploadReward pays the configured reward for a new course upload.
// When the platform cannot cover it the transaction is recorded as pending
// with no balance movement, so the debt stays visible in the ledger.
func (s *LedgerService) PayCourseUploadReward(ctx context.Context, instructor *domain.User, course *domain.Course) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if instructor.BankAccountNumber == nil {
		return nil, fmt.Errorf("%w: instructor has no bank account on file", apperrors.ErrValidation)
	}
	reward := s.cfg.CourseUploadPayment

	accounts, err := s.accountRepo.FindAccountsByNumbers(ctx, []string{
		s.cfg.PlatformAccountNumber,
		*instructor.BankAccountNumber,
	})
	if err != nil {
		return nil, err
	}
	platformAccount, ok := accounts[s.cfg.PlatformAccountNumber]
	if !ok {
		return nil, fmt.Errorf("%w: platform account not found", apperrors.ErrNotFound)
	}
	instructorAccount, ok := accounts[*instructor.BankAccountNumber]
	if !ok {
		return nil, fmt.Errorf("%w: instructor bank account not found", apperrors.ErrNotFound)
	}

	txn := domain.Transaction{
		TransactionID: utils.NewTransactionID(),
		FromAccount:   platformAccount.AccountNumber,
		ToAccount:     instructorAccount.AccountNumber,
		Amount:        reward,
		Kind:          domain.CourseUploadPayment,
		Status:        domain.StatusCompleted,
		CourseID:      course.CourseID,
		UserID:        instructor.UserID,
		Description:   fmt.Sprintf("Upload reward for course: %s", course.Title),
		CreatedAt:     time.Now(),
	}

	var changes []portsrepo.BalanceChange
	if platformAccount.Balance.LessThan(reward) {
		txn.Status = domain.StatusPending
		logger.Warn("Platform balance too low for upload reward; recording as pending",
			slog.String("course_id", course.CourseID),
			slog.String("platform_balance", platformAccount.Balance.String()),
			slog.String("reward", reward.String()))
	} else {
		changes = []portsrepo.BalanceChange{
			{AccountNumber: platformAccount.AccountNumber, Delta: reward.Neg(), Version: platformAccount.Version},
			{AccountNumber: instructorAccount.AccountNumber, Delta: reward, Version: instructorAccount.Version},
		}
	}
	if err := s.txnRepo.SaveLedgerEntries(ctx, changes, []domain.Transaction{txn}); err != nil {
		logger.Error("Ledger write failed for upload reward",
			slog.String("error", err.Error()),
			slog.String("course_id", course.CourseID))
		return nil, err
	}

	logger.Info("Upload reward recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("course_id", course.CourseID),
		slog.String("status", string(txn.Status)))
	return &txn, nil
}

func (s *LedgerService) ListTransactionsForUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.BankAccountNumber == nil {
		return nil, fmt.Errorf("%w: no bank account on file", apperrors.ErrNotFound)
	}
	return s.txnRepo.ListTransactions(ctx, portsrepo.TransactionFilter{AccountNumber: *user.BankAccountNumber})
}
