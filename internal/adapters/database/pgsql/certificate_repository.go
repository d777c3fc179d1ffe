package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/coursebay/lms_backend/internal/apperrors"
	"github.com/coursebay/lms_backend/internal/core/domain"
	portsrepo "github.com/coursebay/lms_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type certificateRepository struct {
	pool *pgxpool.Pool
}

// NewCertificateRepository creates a new repository for completion
// certificates.
func NewCertificateRepository(pool *pgxpool.Pool) portsrepo.CertificateRepository {
	return &certificateRepository{pool: pool}
}

var _ portsrepo.CertificateRepository = (*certificateRepository)(nil)

const certColumns = `certificate_id, user_id, user_name, course_id, course_title, completion_date, issued_date`

func (r *certificateRepository) SaveCertificate(ctx context.Context, cert domain.Certificate) error {
	query := `
		INSERT INTO certificates (` + certColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.pool.Exec(ctx, query,
		cert.CertificateID,
		cert.UserID,
		cert.UserName,
		cert.CourseID,
		cert.CourseTitle,
		cert.CompletionDate,
		cert.IssuedDate,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("certificate already issued: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save certificate %s: %w", cert.CertificateID, err)
	}
	return nil
}

func (r *certificateRepository) FindCertificateByUserAndCourse(ctx context.Context, userID, courseID string) (*domain.Certificate, error) {
	query := `SELECT ` + certColumns + ` FROM certificates WHERE user_id = $1 AND course_id = $2;`

	var c domain.Certificate
	err := r.pool.QueryRow(ctx, query, userID, courseID).Scan(
		&c.CertificateID, &c.UserID, &c.UserName, &c.CourseID, &c.CourseTitle, &c.CompletionDate, &c.IssuedDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("certificate: %w", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find certificate: %w", err)
	}
	return &c, nil
}

func (r *certificateRepository) ListCertificatesByUser(ctx context.Context, userID string) ([]domain.Certificate, error) {
	query := `SELECT ` + certColumns + ` FROM certificates WHERE user_id = $1 ORDER BY issued_date DESC;`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query certificates: %w", err)
	}
	defer rows.Close()

	certs := make([]domain.Certificate, 0)
	for rows.Next() {
		var c domain.Certificate
		if err := rows.Scan(&c.CertificateID, &c.UserID, &c.UserName, &c.CourseID, &c.CourseTitle, &c.CompletionDate, &c.IssuedDate); err != nil {
			return nil, fmt.Errorf("failed to scan certificate row: %w", err)
		}
		certs = append(certs, c)
	}
	return certs, rows.Err()
}
