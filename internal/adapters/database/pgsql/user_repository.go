package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coursebay/lms_backend/internal/apperrors"
	"github.com/coursebay/lms_backend/internal/core/domain"
	portsrepo "github.com/coursebay/lms_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new repository for user and enrollment data.
func NewUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &userRepository{pool: pool}
}

var _ portsrepo.UserRepositoryFacade = (*userRepository)(nil)

const userColumns = `user_id, name, email, password_hash, role, bank_account_number, created_at, created_by, last_updated_at, last_updated_by`

func (r *userRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		user.UserID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.BankAccountNumber,
		user.CreatedAt,
		user.CreatedBy,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("email already registered: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user %s: %w", user.UserID, err)
	}
	return nil
}

func (r *userRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	return r.findUser(ctx, query, userID)
}

func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1;`
	return r.findUser(ctx, query, email)
}

func (r *userRepository) findUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (r *userRepository) ListUsersByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY created_at;`

	rows, err := r.pool.Query(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("failed to query users by role: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (r *userRepository) CountUsersByRole(ctx context.Context, role domain.UserRole) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1;`, role).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users by role: %w", err)
	}
	return count, nil
}

func (r *userRepository) SetBankAccountNumber(ctx context.Context, userID string, accountNumber string) error {
	query := `UPDATE users SET bank_account_number = $2, last_updated_at = $3 WHERE user_id = $1;`
	tag, err := r.pool.Exec(ctx, query, userID, accountNumber, time.Now())
	if err != nil {
		return fmt.Errorf("failed to link bank account for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *userRepository) SaveEnrollment(ctx context.Context, enrollment domain.Enrollment) error {
	query := `
		INSERT INTO enrollments (user_id, course_id, enrolled_at, completed, completed_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.pool.Exec(ctx, query,
		enrollment.UserID,
		enrollment.CourseID,
		enrollment.EnrolledAt,
		enrollment.Completed,
		enrollment.CompletedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("already enrolled: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save enrollment: %w", err)
	}
	return nil
}

func (r *userRepository) FindEnrollment(ctx context.Context, userID, courseID string) (*domain.Enrollment, error) {
	query := `
		SELECT user_id, course_id, enrolled_at, completed, completed_at
		FROM enrollments WHERE user_id = $1 AND course_id = $2;
	`
	var e domain.Enrollment
	err := r.pool.QueryRow(ctx, query, userID, courseID).Scan(
		&e.UserID, &e.CourseID, &e.EnrolledAt, &e.Completed, &e.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("enrollment: %w", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find enrollment: %w", err)
	}
	return &e, nil
}

func (r *userRepository) ListEnrollmentsByUser(ctx context.Context, userID string) ([]domain.Enrollment, error) {
	query := `
		SELECT user_id, course_id, enrolled_at, completed, completed_at
		FROM enrollments WHERE user_id = $1 ORDER BY enrolled_at DESC;
	`
	return r.listEnrollments(ctx, query, userID)
}

func (r *userRepository) ListEnrollmentsByCourse(ctx context.Context, courseID string) ([]domain.Enrollment, error) {
	query := `
		SELECT user_id, course_id, enrolled_at, completed, completed_at
		FROM enrollments WHERE course_id = $1 ORDER BY enrolled_at DESC;
	`
	return r.listEnrollments(ctx, query, courseID)
}

func (r *userRepository) listEnrollments(ctx context.Context, query string, arg any) ([]domain.Enrollment, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := make([]domain.Enrollment, 0)
	for rows.Next() {
		var e domain.Enrollment
		if err := rows.Scan(&e.UserID, &e.CourseID, &e.EnrolledAt, &e.Completed, &e.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment row: %w", err)
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

func (r *userRepository) MarkEnrollmentCompleted(ctx context.Context, userID, courseID string, at time.Time) error {
	query := `
		UPDATE enrollments SET completed = TRUE, completed_at = $3
		WHERE user_id = $1 AND course_id = $2 AND completed = FALSE;
	`
	// Already-completed rows are left alone; completion is idempotent.
	if _, err := r.pool.Exec(ctx, query, userID, courseID, at); err != nil {
		return fmt.Errorf("failed to mark enrollment completed: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.UserID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.BankAccountNumber,
		&user.CreatedAt,
		&user.CreatedBy,
		&user.LastUpdatedAt,
		&user.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
