package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresRepository is the durable implementation of the contract.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a repo over an open connection pool.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the employees table and its unique email index.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS employees (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			age           INT NOT NULL DEFAULT 0,
			class         TEXT NOT NULL DEFAULT '',
			subjects      JSONB NOT NULL DEFAULT '[]',
			attendance    DOUBLE PRECISION NOT NULL DEFAULT 0,
			role          TEXT NOT NULL,
			avatar        TEXT NOT NULL DEFAULT '',
			date          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			email         TEXT NOT NULL UNIQUE,
			flagged       BOOLEAN NOT NULL DEFAULT FALSE,
			password_hash TEXT NOT NULL
		)
	`)
	return err
}

const employeeColumns = `id, name, age, class, subjects, attendance, role, avatar, date, email, flagged, password_hash`

func scanEmployee(row interface{ Scan(dest ...any) error }) (Employee, error) {
	var e Employee
	var subjects []byte
	err := row.Scan(&e.ID, &e.Name, &e.Age, &e.Class, &subjects, &e.Attendance,
		&e.Role, &e.Avatar, &e.Date, &e.Email, &e.Flagged, &e.PasswordHash)
	if err != nil {
		return Employee{}, err
	}
	if err := json.Unmarshal(subjects, &e.Subjects); err != nil {
		return Employee{}, fmt.Errorf("decode subjects: %w", err)
	}
	return e, nil
}

func encodeSubjects(subjects []string) ([]byte, error) {
	if subjects == nil {
		subjects = []string{}
	}
	return json.Marshal(subjects)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *PostgresRepository) FindAll(ctx context.Context) ([]Employee, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+employeeColumns+` FROM employees`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*Employee, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	e, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE email = $1`, email)
	e, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *PostgresRepository) Create(ctx context.Context, e Employee) (Employee, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Date.IsZero() {
		e.Date = time.Now().UTC()
	}
	subjects, err := encodeSubjects(e.Subjects)
	if err != nil {
		return Employee{}, err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO employees (`+employeeColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`, e.ID, e.Name, e.Age, e.Class, subjects, e.Attendance, e.Role, e.Avatar,
		e.Date, e.Email, e.Flagged, e.PasswordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return Employee{}, ErrEmailTaken
		}
		return Employee{}, err
	}
	return e, nil
}

// UpdateByID changes only the supplied fields and returns the full
// updated row, or nil when no record matches.
func (r *PostgresRepository) UpdateByID(ctx context.Context, id string, upd Update) (*Employee, error) {
	sets := []string{}
	args := []any{}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Age != nil {
		add("age", *upd.Age)
	}
	if upd.Class != nil {
		add("class", *upd.Class)
	}
	if upd.Subjects != nil {
		subjects, err := encodeSubjects(*upd.Subjects)
		if err != nil {
			return nil, err
		}
		add("subjects", subjects)
	}
	if upd.Attendance != nil {
		add("attendance", *upd.Attendance)
	}
	if upd.Role != nil {
		add("role", *upd.Role)
	}
	if upd.Avatar != nil {
		add("avatar", *upd.Avatar)
	}
	if upd.Date != nil {
		add("date", *upd.Date)
	}
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.Flagged != nil {
		add("flagged", *upd.Flagged)
	}
	if len(sets) == 0 {
		return r.FindByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE employees SET %s WHERE id = $%d RETURNING `+employeeColumns,
		strings.Join(sets, ", "), len(args))
	row := r.db.QueryRowContext(ctx, query, args...)
	e, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &e, nil
}

// DeleteByID is idempotent: deleting an unknown id is not an error.
func (r *PostgresRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	return err
}

// InsertMany bulk-loads seed rows one by one; duplicate emails are
// skipped so a partial batch still lands.
func (r *PostgresRepository) InsertMany(ctx context.Context, items []Employee) error {
	for _, e := range items {
		if _, err := r.Create(ctx, e); err != nil {
			if errors.Is(err, ErrEmailTaken) {
				continue
			}
			return err
		}
	}
	return nil
}
