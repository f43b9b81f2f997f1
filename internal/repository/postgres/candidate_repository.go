package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-candidate-registry/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const candidateColumns = `id, COALESCE(external_ref, ''), name, age, nationality, origin, notes, created_at, updated_at`

// sortColumns whitelists user-supplied sort fields against the schema.
var sortColumns = map[string]string{
	"external_ref": "external_ref",
	"name":         "name",
	"age":          "age",
	"nationality":  "nationality",
	"origin":       "origin",
	"created_at":   "created_at",
	"updated_at":   "updated_at",
}

type candidateRepository struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Candidate, int64, error) {
	where, args := buildWhere(filter)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM candidate`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count candidates: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM candidate%s%s LIMIT $%d OFFSET $%d`,
		candidateColumns, where, orderBy(filter), len(args)+1, len(args)+2)
	args = append(args, filter.Size, filter.Page*filter.Size)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search candidates: %w", err)
	}
	defer rows.Close()

	candidates, err := scanCandidates(rows)
	if err != nil {
		return nil, 0, err
	}
	return candidates, total, nil
}

func (r *candidateRepository) SearchAll(ctx context.Context, filter domain.SearchFilter) ([]domain.Candidate, error) {
	where, args := buildWhere(filter)

	query := fmt.Sprintf(`SELECT %s FROM candidate%s%s`, candidateColumns, where, orderBy(filter))
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidates: %w", err)
	}
	defer rows.Close()

	return scanCandidates(rows)
}

// buildWhere assembles the ILIKE substring conditions for the non-empty
// filter fields. Empty filters match everything.
func buildWhere(filter domain.SearchFilter) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	addLike := func(column, value string) {
		if value == "" {
			return
		}
		conditions = append(conditions, fmt.Sprintf("%s ILIKE $%d", column, argIndex))
		args = append(args, "%"+value+"%")
		argIndex++
	}
	addLike("name", filter.Name)
	addLike("nationality", filter.Nationality)
	addLike("origin", filter.Origin)

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func orderBy(filter domain.SearchFilter) string {
	column, ok := sortColumns[filter.Sort]
	if !ok {
		column = "external_ref"
	}
	direction := "ASC"
	if filter.Dir == "desc" {
		direction = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", column, direction)
}

func scanCandidates(rows pgx.Rows) ([]domain.Candidate, error) {
	candidates := []domain.Candidate{}
	for rows.Next() {
		var c domain.Candidate
		if err := rows.Scan(
			&c.ID, &c.ExternalRef, &c.Name, &c.Age,
			&c.Nationality, &c.Origin, &c.Notes,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// =================================================================================================
// Import Unit of Work
// =================================================================================================

// BeginImport opens the transaction that spans one CSV upload. Row writes
// inside it are fenced with savepoints so a failed row leaves the
// transaction usable and earlier rows commit.
func (r *candidateRepository) BeginImport(ctx context.Context) (domain.ImportUnit, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &importUnit{tx: tx}, nil
}

type importUnit struct {
	tx pgx.Tx
}

func (u *importUnit) GetByExternalRef(ctx context.Context, externalRef string) (*domain.Candidate, error) {
	query := fmt.Sprintf(`SELECT %s FROM candidate WHERE external_ref = $1`, candidateColumns)

	var c domain.Candidate
	err := u.tx.QueryRow(ctx, query, externalRef).Scan(
		&c.ID, &c.ExternalRef, &c.Name, &c.Age,
		&c.Nationality, &c.Origin, &c.Notes,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (u *importUnit) Create(ctx context.Context, c *domain.Candidate) error {
	// pgx nested Begin is a savepoint: a unique violation here must not
	// abort the upload transaction.
	sp, err := u.tx.Begin(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO candidate (external_ref, name, age, nationality, origin, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id`
	if err := sp.QueryRow(ctx, query,
		c.ExternalRef, c.Name, c.Age, c.Nationality, c.Origin, c.Notes,
	).Scan(&c.ID); err != nil {
		_ = sp.Rollback(ctx)
		return err
	}
	return sp.Commit(ctx)
}

func (u *importUnit) Update(ctx context.Context, c *domain.Candidate) error {
	sp, err := u.tx.Begin(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE candidate
		SET name = $1, age = $2, nationality = $3, origin = $4, notes = $5, updated_at = NOW()
		WHERE id = $6`
	if _, err := sp.Exec(ctx, query,
		c.Name, c.Age, c.Nationality, c.Origin, c.Notes, c.ID,
	); err != nil {
		_ = sp.Rollback(ctx)
		return err
	}
	return sp.Commit(ctx)
}

func (u *importUnit) Commit(ctx context.Context) error {
	return u.tx.Commit(ctx)
}

func (u *importUnit) Rollback(ctx context.Context) error {
	return u.tx.Rollback(ctx)
}
