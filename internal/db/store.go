package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"net/url"
	"regexp"
	"time"

	"github.com/KOFI-GYIMAH/portfolio/internal/models"
	"github.com/KOFI-GYIMAH/portfolio/pkg/errors"
	"github.com/KOFI-GYIMAH/portfolio/pkg/logger"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

const (
	dialectPostgres = "postgres"
	dialectSQLite   = "sqlite3"
)

var placeholder = regexp.MustCompile(`\$\d+`)

// * SQLStore keeps contact records in Postgres or SQLite behind database/sql
type SQLStore struct {
	db      *sql.DB
	dialect string
	now     func() time.Time
}

var _ models.ContactStore = (*SQLStore)(nil)

// * NewPostgresStore opens a Postgres pool. When the URL carries no password the
// * store key is used as one.
func NewPostgresStore(dsn, key string) (*SQLStore, error) {
	db, err := sql.Open("postgres", withPassword(dsn, key))
	if err != nil {
		return nil, errors.New(
			"DB_CONNECTION_ERROR",
			"Failed to open database connection",
			"Could not initialize database connection",
			err,
			errors.LevelError,
		).WithKind(errors.KindPersistence)
	}

	// * Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return open(db, dialectPostgres)
}

func NewSQLiteStore(path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.New(
			"DB_CONNECTION_ERROR",
			"Failed to open database connection",
			fmt.Sprintf("Could not open sqlite database '%s'", path),
			err,
			errors.LevelError,
		).WithKind(errors.KindPersistence)
	}

	// * sqlite allows a single writer
	db.SetMaxOpenConns(1)

	return open(db, dialectSQLite)
}

func open(db *sql.DB, dialect string) (*SQLStore, error) {
	// * Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.New(
			"DB_CONNECTION_ERROR",
			"Failed to verify database connection",
			"Database ping failed",
			err,
			errors.LevelError,
		).WithKind(errors.KindPersistence)
	}

	logger.Info("connected to %s database successfully 🎉", dialect)
	return newSQLStore(db, dialect), nil
}

func newSQLStore(db *sql.DB, dialect string) *SQLStore {
	return &SQLStore{db: db, dialect: dialect, now: time.Now}
}

func withPassword(dsn, key string) string {
	if key == "" {
		return dsn
	}
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" || u.User == nil {
		return dsn
	}
	if _, set := u.User.Password(); set {
		return dsn
	}
	u.User = url.UserPassword(u.User.Username(), key)
	return u.String()
}

func (s *SQLStore) Migrate() error {
	var (
		driver database.Driver
		err    error
	)

	switch s.dialect {
	case dialectSQLite:
		driver, err = sqlite3.WithInstance(s.db, &sqlite3.Config{})
	default:
		driver, err = postgres.WithInstance(s.db, &postgres.Config{})
	}
	if err != nil {
		return errors.New(
			"DB_MIGRATION_ERROR",
			"Failed to create migration driver",
			"Could not initialize migration driver instance",
			err,
			errors.LevelError,
		).WithKind(errors.KindPersistence)
	}

	dir := "migrations/postgres"
	if s.dialect == dialectSQLite {
		dir = "migrations/sqlite"
	}

	source, err := iofs.New(migrationsFS, dir)
	if err != nil {
		return errors.New(
			"DB_MIGRATION_ERROR",
			"Failed to load migrations",
			fmt.Sprintf("Could not read embedded migrations from '%s'", dir),
			err,
			errors.LevelError,
		).WithKind(errors.KindPersistence)
	}

	m, err := migrate.NewWithInstance("iofs", source, s.dialect, driver)
	if err != nil {
		return errors.New(
			"DB_MIGRATION_ERROR",
			"Failed to create migration instance",
			"Could not create migration instance with database",
			err,
			errors.LevelError,
		).WithKind(errors.KindPersistence)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.New(
			"DB_MIGRATION_ERROR",
			"Failed to run migrations",
			"Migration up operation failed",
			err,
			errors.LevelError,
		).WithKind(errors.KindPersistence)
	}

	return nil
}

func (s *SQLStore) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.New(
			"DB_CONNECTION_ERROR",
			"Failed to close database connection",
			"Error while closing database connection",
			err,
			errors.LevelWarning,
		).WithKind(errors.KindPersistence)
	}
	return nil
}

// * Ping is used by the health endpoint
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) rebind(query string) string {
	if s.dialect != dialectSQLite {
		return query
	}
	return placeholder.ReplaceAllString(query, "?")
}

func (s *SQLStore) WithTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.New(
			"DB_TRANSACTION_ERROR",
			"Failed to begin transaction",
			"Could not start database transaction",
			err,
			errors.LevelError,
		).WithKind(errors.KindPersistence)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.New(
				"DB_TRANSACTION_ERROR",
				"Transaction failed and rollback encountered error",
				"Transaction error with additional rollback failure",
				fmt.Errorf("transaction error: %v, rollback error: %w", err, rbErr),
				errors.LevelError,
			).WithKind(errors.KindPersistence)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.New(
			"DB_TRANSACTION_ERROR",
			"Failed to commit transaction",
			"Error while committing transaction",
			err,
			errors.LevelError,
		).WithKind(errors.KindPersistence)
	}

	return nil
}

const contactColumns = `id, name, email, subject, message, created_at, status`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (*models.Contact, error) {
	var c models.Contact
	var status string
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &c.CreatedAt, &status); err != nil {
		return nil, err
	}
	c.Status = models.ContactStatus(status)
	return &c, nil
}

func (s *SQLStore) InsertContact(ctx context.Context, form models.ContactForm) (*models.Contact, error) {
	query := s.rebind(`
		INSERT INTO contacts (name, email, subject, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`)

	contact := models.Contact{
		Name:      form.Name,
		Email:     form.Email,
		Subject:   form.Subject,
		Message:   form.Message,
		Status:    models.StatusNew,
		CreatedAt: s.now().UTC(),
	}

	err := s.db.QueryRowContext(ctx, query,
		contact.Name, contact.Email, contact.Subject, contact.Message,
		string(contact.Status), contact.CreatedAt,
	).Scan(&contact.ID)
	if err != nil {
		return nil, errors.New(
			"DB_CONTACT_ERROR",
			"Failed to insert contact",
			fmt.Sprintf("Could not insert contact from '%s'", form.Email),
			err,
			errors.LevelError,
		).WithKind(errors.KindPersistence)
	}

	return &contact, nil
}

func (s *SQLStore) ListContacts(ctx context.Context) ([]models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.New(
			"DB_CONTACT_ERROR",
			"Failed to query contacts",
			"Could not fetch contacts",
			err,
			errors.LevelError,
		).WithKind(errors.KindPersistence)
	}
	defer rows.Close()

	contacts := make([]models.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, errors.New(
				"DB_CONTACT_ERROR",
				"Failed to scan contact",
				"Error while scanning contact row",
				err,
				errors.LevelError,
			).WithKind(errors.KindPersistence)
		}
		contacts = append(contacts, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.New(
			"DB_CONTACT_ERROR",
			"Failed to process contacts",
			"Error while processing contact rows",
			err,
			errors.LevelError,
		).WithKind(errors.KindPersistence)
	}

	return contacts, nil
}

func (s *SQLStore) GetContact(ctx context.Context, id int64) (*models.Contact, error) {
	return s.getContact(ctx, s.db, id, false)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *SQLStore) getContact(ctx context.Context, q querier, id int64, lock bool) (*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1`
	if lock && s.dialect == dialectPostgres {
		query += ` FOR UPDATE`
	}

	c, err := scanContact(q.QueryRowContext(ctx, s.rebind(query), id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New(
				"DB_CONTACT_NOT_FOUND",
				"Contact not found",
				fmt.Sprintf("Contact '%d' does not exist", id),
				err,
				errors.LevelInfo,
			).WithKind(errors.KindNotFound)
		}
		return nil, errors.New(
			"DB_CONTACT_ERROR",
			"Failed to fetch contact",
			fmt.Sprintf("Could not fetch contact '%d'", id),
			err,
			errors.LevelError,
		).WithKind(errors.KindPersistence)
	}

	return c, nil
}

// * UpdateContactStatus moves a contact to status inside one transaction,
// * refusing transitions the status machine does not allow.
func (s *SQLStore) UpdateContactStatus(ctx context.Context, id int64, status models.ContactStatus) (*models.Contact, error) {
	var updated *models.Contact

	err := s.WithTransaction(ctx, func(tx *sql.Tx) error {
		current, err := s.getContact(ctx, tx, id, true)
		if err != nil {
			return err
		}

		if !current.Status.CanTransitionTo(status) {
			return errors.New(
				"CONTACT_STATUS_TRANSITION",
				"Status change not allowed",
				fmt.Sprintf("Contact '%d' cannot move from '%s' to '%s'", id, current.Status, status),
				nil,
				errors.LevelWarning,
			).WithKind(errors.KindValidation).WithStatus(409)
		}

		if _, err := tx.ExecContext(ctx, s.rebind(`UPDATE contacts SET status = $1 WHERE id = $2`), string(status), id); err != nil {
			return errors.New(
				"DB_CONTACT_ERROR",
				"Failed to update contact status",
				fmt.Sprintf("Could not update status of contact '%d'", id),
				err,
				errors.LevelError,
			).WithKind(errors.KindPersistence)
		}

		current.Status = status
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
