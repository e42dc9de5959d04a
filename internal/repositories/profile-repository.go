package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"sales-dashboard/internal/entities"
	apperrors "sales-dashboard/pkg/errors"
)

const (
	profileTable  = "profiles"
	profileFields = "id, email, password_hash, full_name, role, active, created_at, updated_at"
)

type ProfileRepositoryInterface interface {
	ListActive(ctx context.Context) ([]entities.Profile, error)
	List(ctx context.Context, search string) ([]entities.Profile, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Profile, error)
	FindByEmail(ctx context.Context, email string) (*entities.Profile, error)
	Create(ctx context.Context, tx pgx.Tx, p entities.Profile) (*entities.Profile, error)
	Update(ctx context.Context, tx pgx.Tx, p entities.Profile) (*entities.Profile, error)
	UpdatePassword(ctx context.Context, tx pgx.Tx, id uuid.UUID, hash string) error
}

type profileRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewProfileRepository(storage *pgxpool.Pool, logger *zap.Logger) ProfileRepositoryInterface {
	return &profileRepository{storage: storage, logger: logger}
}

func scanProfile(row pgx.Row) (*entities.Profile, error) {
	var p entities.Profile
	var role string
	if err := row.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.FullName, &role, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao ler profiles: %w", err)
	}
	p.Role = entities.Role(role)
	return &p, nil
}

func (r *profileRepository) ListActive(ctx context.Context) ([]entities.Profile, error) {
	return r.list(ctx, psql.Select(profileFields).From(profileTable).Where(sq.Eq{"active": true}))
}

func (r *profileRepository) List(ctx context.Context, search string) ([]entities.Profile, error) {
	builder := psql.Select(profileFields).From(profileTable)
	if s := strings.TrimSpace(search); s != "" {
		builder = builder.Where(sq.Or{sq.ILike{"full_name": "%" + s + "%"}, sq.ILike{"email": "%" + s + "%"}})
	}
	return r.list(ctx, builder)
}

func (r *profileRepository) list(ctx context.Context, builder sq.SelectBuilder) ([]entities.Profile, error) {
	query, args, err := builder.OrderBy("full_name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar SQL de profiles: %w", err)
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar profiles: %w", err)
	}
	defer rows.Close()

	out := make([]entities.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *profileRepository) findOne(ctx context.Context, where sq.Sqlizer) (*entities.Profile, error) {
	query, args, err := psql.Select(profileFields).From(profileTable).Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar SQL de profiles: %w", err)
	}
	return scanProfile(r.storage.QueryRow(ctx, query, args...))
}

func (r *profileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Profile, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *profileRepository) FindByEmail(ctx context.Context, email string) (*entities.Profile, error) {
	return r.findOne(ctx, sq.Expr("LOWER(email) = LOWER(?)", strings.TrimSpace(email)))
}

func (r *profileRepository) Create(ctx context.Context, tx pgx.Tx, p entities.Profile) (*entities.Profile, error) {
	query, args, err := psql.Insert(profileTable).
		Columns("email", "password_hash", "full_name", "role", "active").
		Values(strings.ToLower(strings.TrimSpace(p.Email)), p.PasswordHash, p.FullName, string(p.Role), p.Active).
		Suffix("RETURNING " + profileFields).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar INSERT de profiles: %w", err)
	}
	created, err := scanProfile(pick(r.storage, tx).QueryRow(ctx, query, args...))
	return created, translateUnique(err)
}

func (r *profileRepository) Update(ctx context.Context, tx pgx.Tx, p entities.Profile) (*entities.Profile, error) {
	query, args, err := psql.Update(profileTable).
		Set("email", strings.ToLower(strings.TrimSpace(p.Email))).
		Set("full_name", p.FullName).
		Set("role", string(p.Role)).
		Set("active", p.Active).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": p.ID}).
		Suffix("RETURNING " + profileFields).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar UPDATE de profiles: %w", err)
	}
	updated, err := scanProfile(pick(r.storage, tx).QueryRow(ctx, query, args...))
	return updated, translateUnique(err)
}

func (r *profileRepository) UpdatePassword(ctx context.Context, tx pgx.Tx, id uuid.UUID, hash string) error {
	query, args, err := psql.Update(profileTable).
		Set("password_hash", hash).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao montar UPDATE de senha: %w", err)
	}
	tag, err := pick(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar senha: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// translateUnique maps unique violations to ErrAlreadyExists.
func translateUnique(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return apperrors.ErrAlreadyExists
	}
	return err
}
