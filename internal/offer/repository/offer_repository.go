package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"studentsites/internal/domain"
	apperrors "studentsites/internal/errors"
)

const offersTable = "offers"

var offerColumns = []string{
	"id", "title", "discount_percentage", "applicable_package", "is_active", "created_date",
}

type offerRow struct {
	ID                 string    `db:"id"`
	Title              string    `db:"title"`
	DiscountPercentage int       `db:"discount_percentage"`
	ApplicablePackage  string    `db:"applicable_package"`
	IsActive           bool      `db:"is_active"`
	CreatedDate        time.Time `db:"created_date"`
}

func (r offerRow) toDomain() domain.Offer {
	return domain.Offer{
		ID:                 r.ID,
		Title:              r.Title,
		DiscountPercentage: r.DiscountPercentage,
		ApplicablePackage:  domain.PackageType(r.ApplicablePackage),
		IsActive:           r.IsActive,
		CreatedDate:        r.CreatedDate.UTC(),
	}
}

type MySQLOfferRepository struct {
	db      *sqlx.DB
	builder squirrel.StatementBuilderType
	timeout time.Duration
}

func NewMySQLOfferRepository(db *sqlx.DB, timeout time.Duration) *MySQLOfferRepository {
	return &MySQLOfferRepository{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		timeout: timeout,
	}
}

func (r *MySQLOfferRepository) Create(ctx context.Context, offer *domain.Offer) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	id := uuid.NewString()
	query, args, err := r.builder.Insert(offersTable).
		Columns(offerColumns...).
		Values(id, offer.Title, offer.DiscountPercentage, string(offer.ApplicablePackage), offer.IsActive, offer.CreatedDate).
		ToSql()
	if err != nil {
		return fmt.Errorf("building insert offer query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewPersistenceError("inserting offer", err)
	}

	offer.ID = id
	return nil
}

func (r *MySQLOfferRepository) FindAll(ctx context.Context) ([]domain.Offer, error) {
	return r.list(ctx, r.builder.Select(offerColumns...).
		From(offersTable).
		OrderBy("created_date DESC", "id DESC"))
}

func (r *MySQLOfferRepository) FindActive(ctx context.Context) ([]domain.Offer, error) {
	return r.list(ctx, r.builder.Select(offerColumns...).
		From(offersTable).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("created_date ASC", "id ASC"))
}

func (r *MySQLOfferRepository) list(ctx context.Context, q squirrel.SelectBuilder) ([]domain.Offer, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building list offers query: %w", err)
	}

	var rows []offerRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperrors.NewPersistenceError("querying offers", err)
	}

	offers := make([]domain.Offer, len(rows))
	for i, row := range rows {
		offers[i] = row.toDomain()
	}
	return offers, nil
}

func (r *MySQLOfferRepository) findByID(ctx context.Context, id string) (*domain.Offer, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query, args, err := r.builder.Select(offerColumns...).
		From(offersTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building find offer query: %w", err)
	}

	var row offerRow
	err = r.db.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, offerNotFound()
	}
	if err != nil {
		return nil, apperrors.NewPersistenceError("querying offer by id", err)
	}

	offer := row.toDomain()
	return &offer, nil
}

// SetActive reads the row back rather than trusting RowsAffected, which is
// zero when the flag already has the requested value.
func (r *MySQLOfferRepository) SetActive(ctx context.Context, id string, active bool) (*domain.Offer, error) {
	updateCtx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query, args, err := r.builder.Update(offersTable).
		Set("is_active", active).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building update offer query: %w", err)
	}

	if _, err := r.db.ExecContext(updateCtx, query, args...); err != nil {
		return nil, apperrors.NewPersistenceError("updating offer", err)
	}

	return r.findByID(ctx, id)
}

func (r *MySQLOfferRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query, args, err := r.builder.Delete(offersTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building delete offer query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewPersistenceError("deleting offer", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewPersistenceError("getting rows affected", err)
	}
	if rowsAffected == 0 {
		return offerNotFound()
	}
	return nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

func offerNotFound() error {
	return apperrors.NewNotFoundError("Offer not found.")
}
