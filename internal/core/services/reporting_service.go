package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/coursebay/lms_backend/internal/apperrors"
	"github.com/coursebay/lms_backend/internal/core/domain"
	portsrepo "github.com/coursebay/lms_backend/internal/core/ports/repositories"
	"github.com/coursebay/lms_backend/internal/dto"
	"github.com/coursebay/lms_backend/internal/platform/config"
	"github.com/shopspring/decimal"
)

const defaultFeedLimit = 50

// ReportingService aggregates ledger and catalog data into the admin and
// instructor dashboards. Read-only; it never writes to any repository.
type ReportingService struct {
	cfg         *config.Config
	accountRepo portsrepo.AccountRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
	courseRepo  portsrepo.CourseRepositoryFacade
}

func NewReportingService(cfg *config.Config, accountRepo portsrepo.AccountRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, courseRepo portsrepo.CourseRepositoryFacade) *ReportingService {
	return &ReportingService{
		cfg:         cfg,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		userRepo:    userRepo,
		courseRepo:  courseRepo,
	}
}

func (s *ReportingService) PlatformStats(ctx context.Context) (*dto.PlatformStats, error) {
	instructors, err := s.userRepo.CountUsersByRole(ctx, domain.RoleInstructor)
	if err != nil {
		return nil, err
	}
	learners, err := s.userRepo.CountUsersByRole(ctx, domain.RoleLearner)
	if err != nil {
		return nil, err
	}
	totalCourses, err := s.courseRepo.CountCourses(ctx)
	if err != nil {
		return nil, err
	}
	activeCourses, err := s.courseRepo.CountActiveCourses(ctx)
	if err != nil {
		return nil, err
	}
	platform, err := s.accountRepo.FindAccountByNumber(ctx, s.cfg.PlatformAccountNumber)
	if err != nil {
		return nil, err
	}

	return &dto.PlatformStats{
		TotalInstructors: instructors,
		TotalLearners:    learners,
		TotalCourses:     totalCourses,
		ActiveCourses:    activeCourses,
		PlatformBalance:  platform.Balance,
	}, nil
}

func (s *ReportingService) AdminTransactions(ctx context.Context, kind domain.TransactionKind, limit int) (*dto.AdminTransactionsResult, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}

	txns, err := s.txnRepo.ListTransactions(ctx, portsrepo.TransactionFilter{Kind: kind, Limit: limit})
	if err != nil {
		return nil, err
	}

	stats := dto.TransactionStats{
		TotalRevenue:       decimal.Zero,
		InstructorPayments: decimal.Zero,
		PlatformCommission: decimal.Zero,
	}
	for i := range txns {
		switch txns[i].Kind {
		case domain.CoursePurchase:
			stats.TotalRevenue = stats.TotalRevenue.Add(txns[i].Amount)
			stats.TotalCoursesSold++
		case domain.InstructorPayment:
			stats.InstructorPayments = stats.InstructorPayments.Add(txns[i].Amount)
		case domain.PlatformCommission:
			stats.PlatformCommission = stats.PlatformCommission.Add(txns[i].Amount)
		}
	}

	return &dto.AdminTransactionsResult{
		Transactions: dto.ToTransactionResponses(txns),
		Stats:        stats,
	}, nil
}

func (s *ReportingService) InstructorEarnings(ctx context.Context, instructorUserID string) (*dto.EarningsResult, error) {
	instructor, err := s.userRepo.FindUserByID(ctx, instructorUserID)
	if err != nil {
		return nil, err
	}
	if instructor.BankAccountNumber == nil {
		return nil, fmt.Errorf("%w: bank account setup required", apperrors.ErrValidation)
	}
	account, err := s.accountRepo.FindAccountByNumber(ctx, *instructor.BankAccountNumber)
	if err != nil {
		return nil, err
	}

	txns, err := s.txnRepo.ListTransactions(ctx, portsrepo.TransactionFilter{
		AccountNumber: account.AccountNumber,
		Kinds:         []domain.TransactionKind{domain.CourseUploadPayment, domain.InstructorPayment},
	})
	if err != nil {
		return nil, err
	}

	earnings := dto.EarningsSummary{
		UploadPayments: decimal.Zero,
		CoursePayments: decimal.Zero,
		CurrentBalance: account.Balance,
	}
	incoming := txns[:0]
	for i := range txns {
		if txns[i].ToAccount != account.AccountNumber {
			continue
		}
		// Pending upload rewards were never paid out.
		if txns[i].Status == domain.StatusPending {
			continue
		}
		switch txns[i].Kind {
		case domain.CourseUploadPayment:
			earnings.UploadPayments = earnings.UploadPayments.Add(txns[i].Amount)
		case domain.InstructorPayment:
			earnings.CoursePayments = earnings.CoursePayments.Add(txns[i].Amount)
		}
		incoming = append(incoming, txns[i])
	}
	earnings.TotalEarned = earnings.UploadPayments.Add(earnings.CoursePayments)

	return &dto.EarningsResult{
		Earnings:     earnings,
		Transactions: dto.ToTransactionResponses(incoming),
	}, nil
}

func (s *ReportingService) PendingInstructorPayments(ctx context.Context, instructorUserID string) ([]domain.Transaction, error) {
	courses, err := s.courseRepo.ListCoursesByInstructor(ctx, instructorUserID)
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return []domain.Transaction{}, nil
	}
	courseIDs := make([]string, len(courses))
	for i := range courses {
		courseIDs[i] = courses[i].CourseID
	}

	return s.txnRepo.ListTransactions(ctx, portsrepo.TransactionFilter{
		Kind:            domain.InstructorPayment,
		CourseIDs:       courseIDs,
		OnlyUnvalidated: true,
	})
}

func (s *ReportingService) ListStudents(ctx context.Context, instructorUserID string) ([]dto.EnrolledStudentResponse, error) {
	courses, err := s.courseRepo.ListCoursesByInstructor(ctx, instructorUserID)
	if err != nil {
		return nil, err
	}

	students := make([]dto.EnrolledStudentResponse, 0)
	for _, course := range courses {
		enrollments, err := s.userRepo.ListEnrollmentsByCourse(ctx, course.CourseID)
		if err != nil {
			return nil, err
		}
		for _, e := range enrollments {
			user, err := s.userRepo.FindUserByID(ctx, e.UserID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					continue
				}
				return nil, err
			}
			students = append(students, dto.EnrolledStudentResponse{
				StudentName:  user.Name,
				StudentEmail: user.Email,
				CourseTitle:  course.Title,
				EnrolledAt:   e.EnrolledAt,
				Completed:    e.Completed,
			})
		}
	}
	return students, nil
}
