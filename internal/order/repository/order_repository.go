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

const ordersTable = "orders"

var orderColumns = []string{
	"id", "name", "email", "phone", "website_type", "package_type",
	"referral", "preferences", "status", "order_date", "version",
}

type orderRow struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Email       string    `db:"email"`
	Phone       string    `db:"phone"`
	WebsiteType string    `db:"website_type"`
	PackageType string    `db:"package_type"`
	Referral    string    `db:"referral"`
	Preferences string    `db:"preferences"`
	Status      string    `db:"status"`
	OrderDate   time.Time `db:"order_date"`
	Version     int64     `db:"version"`
}

func (r orderRow) toDomain() domain.Order {
	return domain.Order{
		ID:          r.ID,
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		WebsiteType: r.WebsiteType,
		Package:     domain.PackageType(r.PackageType),
		Referral:    r.Referral,
		Preferences: r.Preferences,
		Status:      domain.Status(r.Status),
		OrderDate:   r.OrderDate.UTC(),
		Version:     r.Version,
	}
}

type MySQLOrderRepository struct {
	db      *sqlx.DB
	builder squirrel.StatementBuilderType
	timeout time.Duration
}

func NewMySQLOrderRepository(db *sqlx.DB, timeout time.Duration) *MySQLOrderRepository {
	return &MySQLOrderRepository{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		timeout: timeout,
	}
}

func (r *MySQLOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	id := uuid.NewString()
	query, args, err := r.builder.Insert(ordersTable).
		Columns(orderColumns...).
		Values(
			id, order.Name, order.Email, order.Phone, order.WebsiteType, string(order.Package),
			order.Referral, order.Preferences, string(order.Status), order.OrderDate, order.Version,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("building insert order query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewPersistenceError("inserting order", err)
	}

	order.ID = id
	return nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query, args, err := r.builder.Select(orderColumns...).
		From(ordersTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building find order query: %w", err)
	}

	var row orderRow
	err = r.db.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, orderNotFound()
	}
	if err != nil {
		return nil, apperrors.NewPersistenceError("querying order by id", err)
	}

	order := row.toDomain()
	return &order, nil
}

func (r *MySQLOrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, r.builder.Select(orderColumns...).From(ordersTable))
}

func (r *MySQLOrderRepository) FindByStatuses(ctx context.Context, statuses []domain.Status) ([]domain.Order, error) {
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}
	return r.list(ctx, r.builder.Select(orderColumns...).From(ordersTable).Where(squirrel.Eq{"status": values}))
}

func (r *MySQLOrderRepository) list(ctx context.Context, q squirrel.SelectBuilder) ([]domain.Order, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query, args, err := q.OrderBy("order_date DESC", "id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("building list orders query: %w", err)
	}

	var rows []orderRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperrors.NewPersistenceError("querying orders", err)
	}

	orders := make([]domain.Order, len(rows))
	for i, row := range rows {
		orders[i] = row.toDomain()
	}
	return orders, nil
}

// UpdateStatus always bumps the version, so an update to the current status
// still counts as an affected row.
func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, id string, status domain.Status, expectedVersion *int64) (*domain.Order, error) {
	updateCtx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	where := squirrel.Eq{"id": id}
	if expectedVersion != nil {
		where["version"] = *expectedVersion
	}

	query, args, err := r.builder.Update(ordersTable).
		Set("status", string(status)).
		Set("version", squirrel.Expr("version + 1")).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building update order status query: %w", err)
	}

	result, err := r.db.ExecContext(updateCtx, query, args...)
	if err != nil {
		return nil, apperrors.NewPersistenceError("updating order status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, apperrors.NewPersistenceError("getting rows affected", err)
	}

	if rowsAffected == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, versionConflict(id)
	}

	return r.FindByID(ctx, id)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

func orderNotFound() error {
	return apperrors.NewNotFoundError("Order not found.")
}

func versionConflict(id string) error {
	return apperrors.NewConflictError(fmt.Sprintf("order %s was modified by another request", id))
}
