package company

import (
	"context"
	"errors"
	"useradmin/internal/core/domain/company"
	"useradmin/internal/db"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const NAME_CONSTRAINT_NAME = "company_name_idx"

type PgxCompanyRepository struct {
	db db.Querier
}

func NewPgxRepository(db db.Querier) *PgxCompanyRepository {
	if db == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxCompanyRepository{db: db}
}

func (r *PgxCompanyRepository) Create(ctx context.Context, input company.CreateInput) (co company.Company, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO company (name, created_at) VALUES ($1, $2) RETURNING id, name, created_at`,
		input.Name,
		input.CreatedAt,
	)
	co, err = scanCompany(row)
	if err != nil {
		return co, mapUniqueConstraintError(err)
	}
	return co, nil
}

func (r *PgxCompanyRepository) GetByID(ctx context.Context, id company.ID) (co company.Company, err error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, created_at FROM company WHERE id = $1`, int64(id))
	co, err = scanCompany(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return co, company.ErrCompanyDoesNotExist
	}
	return co, err
}

func (r *PgxCompanyRepository) List(ctx context.Context) ([]company.Company, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, created_at FROM company ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := make([]company.Company, 0)
	for rows.Next() {
		co, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, co)
	}
	return companies, rows.Err()
}

func (r *PgxCompanyRepository) Exists(ctx context.Context, id company.ID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM company WHERE id = $1)`,
		int64(id),
	).Scan(&exists)
	return exists, err
}

func (r *PgxCompanyRepository) Update(ctx context.Context, input company.UpdateInput) (co company.Company, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE company SET name = $2 WHERE id = $1 RETURNING id, name, created_at`,
		int64(input.ID),
		input.Name,
	)
	co, err = scanCompany(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return co, company.ErrCompanyDoesNotExist
	}
	if err != nil {
		return co, mapUniqueConstraintError(err)
	}
	return co, nil
}

// Delete removes the company. Users referencing it keep existing with
// company_id set to NULL by the foreign key.
func (r *PgxCompanyRepository) Delete(ctx context.Context, id company.ID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM company WHERE id = $1`, int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return company.ErrCompanyDoesNotExist
	}
	return nil
}

func mapUniqueConstraintError(err error) error {
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) &&
		pgerr.Code == db.PG_UNIQUE_CONSTRAINT_ERR_CODE &&
		pgerr.ConstraintName == NAME_CONSTRAINT_NAME {
		return company.ErrCompanyNameAlreadyExists
	}
	return err
}

func scanCompany(row pgx.Row) (co company.Company, err error) {
	var id int64
	err = row.Scan(&id, &co.Name, &co.CreatedAt)
	if err != nil {
		return co, err
	}
	co.ID = company.ID(id)
	return co, nil
}
