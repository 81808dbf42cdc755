package user

import (
	"context"
	"database/sql"
	"errors"
	"time"
	c "useradmin/internal/core/domain/common"
	"useradmin/internal/core/domain/company"
	"useradmin/internal/core/domain/user"
	"useradmin/internal/db"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const USERNAME_CONSTRAINT_NAME = "user_username_idx"
const EMAIL_CONSTRAINT_NAME = "user_email_idx"

const userColumns = `id, username, email, password_hash, privacy_policy_accepted, role, company_id,
	is_email_verified, set_password_token, set_password_token_expiry,
	reset_password_token, reset_password_token_expiry, created_at, updated_at`

type PgxUserRepository struct {
	db db.Querier
}

func NewPgxRepository(db db.Querier) *PgxUserRepository {
	if db == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxUserRepository{db: db}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO "user" (username, email, privacy_policy_accepted, role, company_id,
			set_password_token, set_password_token_expiry, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING `+userColumns,
		input.Username,
		string(input.Email),
		input.PrivacyPolicyAccepted,
		string(input.Role),
		encodeCompanyID(input.CompanyID),
		encodeNullString(string(input.SetPasswordToken.Value), input.SetPasswordToken.IsPresent),
		encodeOptionalTime(input.SetPasswordTokenExpiry),
		input.CreatedAt,
	)
	u, err = scanUser(row)
	if err != nil {
		return u, mapUniqueConstraintError(err)
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE id = $1`, int64(id))
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE email = $1`, string(email))
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) GetByUsernameOrEmail(ctx context.Context, identifier string) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM "user" WHERE username = $1 OR email = $1`,
		identifier,
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) List(ctx context.Context) ([]user.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM "user" ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PgxUserRepository) Update(ctx context.Context, input user.UpdateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE "user" SET
			email = CASE WHEN $2 THEN $3 ELSE email END,
			role = CASE WHEN $4 THEN $5 ELSE role END,
			company_id = CASE WHEN $6 THEN $7 ELSE company_id END,
			privacy_policy_accepted = CASE WHEN $8 THEN $9 ELSE privacy_policy_accepted END,
			password_hash = CASE WHEN $10 THEN $11 ELSE password_hash END,
			set_password_token = CASE WHEN $10 THEN NULL ELSE set_password_token END,
			set_password_token_expiry = CASE WHEN $10 THEN NULL ELSE set_password_token_expiry END,
			updated_at = $12
		WHERE id = $1
		RETURNING `+userColumns,
		int64(input.ID),
		input.DoEmailUpdate,
		string(input.Email),
		input.DoRoleUpdate,
		string(input.Role),
		input.DoCompanyIDUpdate,
		encodeCompanyID(input.CompanyID),
		input.DoPrivacyPolicyUpdate,
		input.PrivacyPolicyAccepted,
		input.DoPasswordHashUpdate,
		encodeNullString(string(input.PasswordHash), input.DoPasswordHashUpdate),
		input.At,
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, mapUniqueConstraintError(err)
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) Delete(ctx context.Context, id user.ID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM "user" WHERE id = $1`, int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) GetBySetPasswordToken(
	ctx context.Context,
	token user.SetPasswordToken,
) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM "user" WHERE set_password_token = $1`,
		string(token),
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrTokenDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

// ConsumeSetPasswordToken updates the row only if the token is still
// set, so concurrent requests with the same token succeed at most once.
func (r *PgxUserRepository) ConsumeSetPasswordToken(
	ctx context.Context,
	input user.ConsumeSetPasswordTokenInput,
) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE "user" SET
			password_hash = $2,
			is_email_verified = TRUE,
			set_password_token = NULL,
			set_password_token_expiry = NULL,
			updated_at = $3
		WHERE set_password_token = $1
		RETURNING `+userColumns,
		string(input.Token),
		string(input.PasswordHash),
		input.At,
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrTokenDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) ClearSetPasswordToken(
	ctx context.Context,
	token user.SetPasswordToken,
	at time.Time,
) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET
			set_password_token = NULL,
			set_password_token_expiry = NULL,
			updated_at = $2
		WHERE set_password_token = $1`,
		string(token),
		at,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrTokenDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) SetResetPasswordToken(
	ctx context.Context,
	input user.SetResetPasswordTokenInput,
) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE "user" SET
			reset_password_token = $2,
			reset_password_token_expiry = $3,
			updated_at = $4
		WHERE id = $1
		RETURNING `+userColumns,
		int64(input.ID),
		string(input.Token),
		input.ExpiresAt,
		input.At,
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) GetByResetPasswordToken(
	ctx context.Context,
	token user.ResetPasswordToken,
) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM "user" WHERE reset_password_token = $1`,
		string(token),
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrTokenDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) ConsumeResetPasswordToken(
	ctx context.Context,
	input user.ConsumeResetPasswordTokenInput,
) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE "user" SET
			password_hash = $2,
			reset_password_token = NULL,
			reset_password_token_expiry = NULL,
			updated_at = $3
		WHERE reset_password_token = $1
		RETURNING `+userColumns,
		string(input.Token),
		string(input.PasswordHash),
		input.At,
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrTokenDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) ClearResetPasswordToken(
	ctx context.Context,
	token user.ResetPasswordToken,
	at time.Time,
) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET
			reset_password_token = NULL,
			reset_password_token_expiry = NULL,
			updated_at = $2
		WHERE reset_password_token = $1`,
		string(token),
		at,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrTokenDoesNotExist
	}
	return nil
}

func mapUniqueConstraintError(err error) error {
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) && pgerr.Code == db.PG_UNIQUE_CONSTRAINT_ERR_CODE {
		switch pgerr.ConstraintName {
		case USERNAME_CONSTRAINT_NAME:
			return user.ErrUsernameAlreadyExists
		case EMAIL_CONSTRAINT_NAME:
			return user.ErrEmailAlreadyExists
		}
	}
	return err
}

func encodeCompanyID(id c.Optional[company.ID]) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(id.Value), Valid: id.IsPresent}
}

func encodeNullString(s string, present bool) sql.NullString {
	return sql.NullString{String: s, Valid: present}
}

func encodeOptionalTime(at c.Optional[time.Time]) sql.NullTime {
	return sql.NullTime{Time: at.Value, Valid: at.IsPresent}
}

func scanUser(row pgx.Row) (u user.User, err error) {
	var (
		id                       int64
		passwordHash             sql.NullString
		companyID                sql.NullInt64
		setPasswordToken         sql.NullString
		setPasswordTokenExpiry   sql.NullTime
		resetPasswordToken       sql.NullString
		resetPasswordTokenExpiry sql.NullTime
		email                    string
		role                     string
	)
	err = row.Scan(
		&id,
		&u.Username,
		&email,
		&passwordHash,
		&u.PrivacyPolicyAccepted,
		&role,
		&companyID,
		&u.IsEmailVerified,
		&setPasswordToken,
		&setPasswordTokenExpiry,
		&resetPasswordToken,
		&resetPasswordTokenExpiry,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return u, err
	}
	u.ID = user.ID(id)
	u.Email = c.Email(email)
	u.Role = user.Role(role)
	u.PasswordHash = c.NewOptional(user.PasswordHash(passwordHash.String), passwordHash.Valid)
	u.CompanyID = c.NewOptional(company.ID(companyID.Int64), companyID.Valid)
	u.SetPasswordToken = c.NewOptional(user.SetPasswordToken(setPasswordToken.String), setPasswordToken.Valid)
	u.SetPasswordTokenExpiry = c.NewOptional(setPasswordTokenExpiry.Time, setPasswordTokenExpiry.Valid)
	u.ResetPasswordToken = c.NewOptional(user.ResetPasswordToken(resetPasswordToken.String), resetPasswordToken.Valid)
	u.ResetPasswordTokenExpiry = c.NewOptional(resetPasswordTokenExpiry.Time, resetPasswordTokenExpiry.Valid)
	return u, nil
}
