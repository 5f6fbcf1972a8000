// Package sqlite backs the repositories with an embedded database so the
// dashboard runs with zero external services. Queries mirror the postgres
// package with sqlite placeholders and pragmas.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"touchbase/internal/model"
	"touchbase/internal/repository"

	_ "modernc.org/sqlite"
)

// Open opens (or creates) the database at path. An empty path or ":memory:"
// selects an in-memory database.
func Open(path string) (*sql.DB, error) {
	trimmed := strings.TrimSpace(path)
	inMemory := trimmed == "" || trimmed == ":memory:" || strings.Contains(trimmed, "mode=memory")
	if trimmed == "" {
		trimmed = ":memory:"
	}
	db, err := sql.Open("sqlite", trimmed)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if !inMemory {
		if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
			return nil, fmt.Errorf("enable WAL: %w", err)
		}
	}
	return db, nil
}

// EnsureSchema applies the schema idempotently.
func EnsureSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			google_id TEXT UNIQUE NOT NULL,
			email TEXT NOT NULL,
			name TEXT NOT NULL,
			access_token TEXT,
			refresh_token TEXT,
			token_expiry TIMESTAMP,
			stale_threshold_days INTEGER NOT NULL DEFAULT 30,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			position INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			UNIQUE (user_id, name)
		);`,
		`CREATE TABLE IF NOT EXISTS contacts (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			category_id TEXT,
			position INTEGER NOT NULL DEFAULT 0,
			last_sent_at TIMESTAMP,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			UNIQUE (user_id, email)
		);`,
		`CREATE TABLE IF NOT EXISTS sent_mails (
			id TEXT PRIMARY KEY,
			contact_id TEXT NOT NULL,
			gmail_id TEXT NOT NULL,
			subject TEXT,
			note TEXT,
			status TEXT,
			sent_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP NOT NULL,
			UNIQUE (contact_id, gmail_id)
		);`,
		`CREATE TABLE IF NOT EXISTS attachments (
			id TEXT PRIMARY KEY,
			sent_mail_id TEXT NOT NULL,
			filename TEXT NOT NULL,
			mime_type TEXT,
			size INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS manual_drafts (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			contact_id TEXT,
			note TEXT,
			position INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL,
			sent_at TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_contacts_user ON contacts(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_sent_mails_contact ON sent_mails(contact_id);`,
		`CREATE INDEX IF NOT EXISTS idx_attachments_mail ON attachments(sent_mail_id);`,
		`CREATE INDEX IF NOT EXISTS idx_drafts_user ON manual_drafts(user_id);`,
	}
	for _, statement := range statements {
		if _, err := db.Exec(statement); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

type SQLiteUserRepository struct {
	db *sql.DB
}

func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

const userColumns = `id, google_id, email, name, access_token, refresh_token, token_expiry, stale_threshold_days, created_at, updated_at`

func (r *SQLiteUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (google_id) DO UPDATE SET
			email = excluded.email,
			name = excluded.name,
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			token_expiry = excluded.token_expiry,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.GoogleID, user.Email, user.Name,
		user.AccessToken, user.RefreshToken, user.TokenExpiry,
		user.StaleThresholdDays, user.CreatedAt, user.UpdatedAt)
	return err
}

func scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.GoogleID, &user.Email, &user.Name,
		&user.AccessToken, &user.RefreshToken, &user.TokenExpiry,
		&user.StaleThresholdDays, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *SQLiteUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *SQLiteUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE google_id = ?`, googleID))
}

func (r *SQLiteUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

func (r *SQLiteUserRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users SET email=?, name=?, access_token=?, refresh_token=?,
		token_expiry=?, stale_threshold_days=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`
	res, err := r.db.ExecContext(ctx, query,
		user.Email, user.Name, user.AccessToken, user.RefreshToken,
		user.TokenExpiry, user.StaleThresholdDays, user.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

type SQLiteCategoryRepository struct {
	db *sql.DB
}

func NewSQLiteCategoryRepository(db *sql.DB) *SQLiteCategoryRepository {
	return &SQLiteCategoryRepository{db: db}
}

const categoryColumns = `id, user_id, name, position, created_at, updated_at`

func (r *SQLiteCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	query := `INSERT INTO categories (` + categoryColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		category.ID, category.UserID, category.Name, category.Position,
		category.CreatedAt, category.UpdatedAt)
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	return err
}

func scanCategory(row *sql.Row) (*model.Category, error) {
	category := &model.Category{}
	err := row.Scan(
		&category.ID, &category.UserID, &category.Name, &category.Position,
		&category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

func (r *SQLiteCategoryRepository) FindByID(ctx context.Context, userID, id string) (*model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = ? AND user_id = ?`
	return scanCategory(r.db.QueryRowContext(ctx, query, id, userID))
}

func (r *SQLiteCategoryRepository) FindByName(ctx context.Context, userID, name string) (*model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = ? AND name = ? COLLATE NOCASE`
	return scanCategory(r.db.QueryRowContext(ctx, query, userID, name))
}

func (r *SQLiteCategoryRepository) FindAll(ctx context.Context, userID string) ([]*model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = ? ORDER BY position, name`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*model.Category
	for rows.Next() {
		category := &model.Category{}
		err := rows.Scan(
			&category.ID, &category.UserID, &category.Name, &category.Position,
			&category.CreatedAt, &category.UpdatedAt)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *SQLiteCategoryRepository) Update(ctx context.Context, category *model.Category) error {
	query := `UPDATE categories SET name=?, position=?, updated_at=CURRENT_TIMESTAMP WHERE id=? AND user_id=?`
	res, err := r.db.ExecContext(ctx, query,
		category.Name, category.Position, category.ID, category.UserID)
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *SQLiteCategoryRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *SQLiteCategoryRepository) Reorder(ctx context.Context, userID string, ids []string) error {
	return reorderRows(ctx, r.db, "categories", userID, ids)
}

func (r *SQLiteCategoryRepository) MaxPosition(ctx context.Context, userID string) (int, error) {
	return maxPosition(ctx, r.db, `SELECT COALESCE(MAX(position), -1) FROM categories WHERE user_id = ?`, userID)
}

type SQLiteContactRepository struct {
	db *sql.DB
}

func NewSQLiteContactRepository(db *sql.DB) *SQLiteContactRepository {
	return &SQLiteContactRepository{db: db}
}

const contactColumns = `id, user_id, name, email, category_id, position, last_sent_at, created_at, updated_at`

func (r *SQLiteContactRepository) Create(ctx context.Context, contact *model.Contact) error {
	query := `INSERT INTO contacts (` + contactColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		contact.ID, contact.UserID, contact.Name, contact.Email,
		contact.CategoryID, contact.Position, contact.LastSentAt,
		contact.CreatedAt, contact.UpdatedAt)
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	return err
}

func scanContact(row *sql.Row) (*model.Contact, error) {
	contact := &model.Contact{}
	err := row.Scan(
		&contact.ID, &contact.UserID, &contact.Name, &contact.Email,
		&contact.CategoryID, &contact.Position, &contact.LastSentAt,
		&contact.CreatedAt, &contact.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return contact, nil
}

func (r *SQLiteContactRepository) FindByID(ctx context.Context, userID, id string) (*model.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = ? AND user_id = ?`
	return scanContact(r.db.QueryRowContext(ctx, query, id, userID))
}

func (r *SQLiteContactRepository) FindByEmail(ctx context.Context, userID, email string) (*model.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE user_id = ? AND email = ? COLLATE NOCASE`
	return scanContact(r.db.QueryRowContext(ctx, query, userID, email))
}

func (r *SQLiteContactRepository) FindAll(ctx context.Context, userID string) ([]*model.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE user_id = ? ORDER BY position, name`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []*model.Contact
	for rows.Next() {
		contact := &model.Contact{}
		err := rows.Scan(
			&contact.ID, &contact.UserID, &contact.Name, &contact.Email,
			&contact.CategoryID, &contact.Position, &contact.LastSentAt,
			&contact.CreatedAt, &contact.UpdatedAt)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	return contacts, rows.Err()
}

func (r *SQLiteContactRepository) Update(ctx context.Context, contact *model.Contact) error {
	query := `
		UPDATE contacts SET name=?, email=?, category_id=?, position=?,
		last_sent_at=?, updated_at=CURRENT_TIMESTAMP WHERE id=? AND user_id=?`
	res, err := r.db.ExecContext(ctx, query,
		contact.Name, contact.Email, contact.CategoryID, contact.Position,
		contact.LastSentAt, contact.ID, contact.UserID)
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *SQLiteContactRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *SQLiteContactRepository) DetachCategory(ctx context.Context, userID, categoryID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE contacts SET category_id = NULL, updated_at = CURRENT_TIMESTAMP
		 WHERE user_id = ? AND category_id = ?`, userID, categoryID)
	return err
}

func (r *SQLiteContactRepository) Reorder(ctx context.Context, userID string, ids []string) error {
	return reorderRows(ctx, r.db, "contacts", userID, ids)
}

func (r *SQLiteContactRepository) MaxPosition(ctx context.Context, userID string) (int, error) {
	return maxPosition(ctx, r.db, `SELECT COALESCE(MAX(position), -1) FROM contacts WHERE user_id = ?`, userID)
}

type SQLiteSentMailRepository struct {
	db *sql.DB
}

func NewSQLiteSentMailRepository(db *sql.DB) *SQLiteSentMailRepository {
	return &SQLiteSentMailRepository{db: db}
}

func (r *SQLiteSentMailRepository) Create(ctx context.Context, mail *model.SentMail) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sent_mails (id, contact_id, gmail_id, subject, note, status, sent_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		mail.ID, mail.ContactID, mail.GmailID, mail.Subject, mail.Note,
		mail.Status, mail.SentAt, mail.CreatedAt)
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	if err != nil {
		return err
	}

	for _, a := range mail.Attachments {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO attachments (id, sent_mail_id, filename, mime_type, size)
			VALUES (?, ?, ?, ?, ?)`,
			a.ID, mail.ID, a.Filename, a.MimeType, a.Size)
		if err != nil {
			return err
		}
		a.SentMailID = mail.ID
	}
	return tx.Commit()
}

func (r *SQLiteSentMailRepository) FindByContactID(ctx context.Context, contactID string) ([]*model.SentMail, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, contact_id, gmail_id, subject, note, status, sent_at, created_at
		FROM sent_mails WHERE contact_id = ? ORDER BY sent_at DESC`, contactID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mails []*model.SentMail
	byID := make(map[string]*model.SentMail)
	for rows.Next() {
		mail := &model.SentMail{}
		err := rows.Scan(
			&mail.ID, &mail.ContactID, &mail.GmailID, &mail.Subject,
			&mail.Note, &mail.Status, &mail.SentAt, &mail.CreatedAt)
		if err != nil {
			return nil, err
		}
		mails = append(mails, mail)
		byID[mail.ID] = mail
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	attRows, err := r.db.QueryContext(ctx, `
		SELECT a.id, a.sent_mail_id, a.filename, a.mime_type, a.size
		FROM attachments a
		JOIN sent_mails m ON m.id = a.sent_mail_id
		WHERE m.contact_id = ?`, contactID)
	if err != nil {
		return nil, err
	}
	defer attRows.Close()

	for attRows.Next() {
		a := &model.Attachment{}
		if err := attRows.Scan(&a.ID, &a.SentMailID, &a.Filename, &a.MimeType, &a.Size); err != nil {
			return nil, err
		}
		if mail, ok := byID[a.SentMailID]; ok {
			mail.Attachments = append(mail.Attachments, a)
		}
	}
	return mails, attRows.Err()
}

func (r *SQLiteSentMailRepository) FindByGmailID(ctx context.Context, contactID, gmailID string) (*model.SentMail, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, contact_id, gmail_id, subject, note, status, sent_at, created_at
		FROM sent_mails WHERE contact_id = ? AND gmail_id = ?`, contactID, gmailID)

	mail := &model.SentMail{}
	err := row.Scan(
		&mail.ID, &mail.ContactID, &mail.GmailID, &mail.Subject,
		&mail.Note, &mail.Status, &mail.SentAt, &mail.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return mail, nil
}

func (r *SQLiteSentMailRepository) DeleteByContactID(ctx context.Context, contactID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM attachments WHERE sent_mail_id IN
		(SELECT id FROM sent_mails WHERE contact_id = ?)`, contactID)
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM sent_mails WHERE contact_id = ?`, contactID); err != nil {
		return err
	}
	return tx.Commit()
}

type SQLiteDraftRepository struct {
	db *sql.DB
}

func NewSQLiteDraftRepository(db *sql.DB) *SQLiteDraftRepository {
	return &SQLiteDraftRepository{db: db}
}

const draftColumns = `id, user_id, contact_id, note, position, created_at, sent_at`

func (r *SQLiteDraftRepository) Create(ctx context.Context, draft *model.ManualDraft) error {
	query := `INSERT INTO manual_drafts (` + draftColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		draft.ID, draft.UserID, draft.ContactID, draft.Note,
		draft.Position, draft.CreatedAt, draft.SentAt)
	return err
}

func (r *SQLiteDraftRepository) FindByID(ctx context.Context, userID, id string) (*model.ManualDraft, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+draftColumns+` FROM manual_drafts WHERE id = ? AND user_id = ?`, id, userID)
	draft := &model.ManualDraft{}
	err := row.Scan(
		&draft.ID, &draft.UserID, &draft.ContactID, &draft.Note,
		&draft.Position, &draft.CreatedAt, &draft.SentAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return draft, nil
}

func (r *SQLiteDraftRepository) queryDrafts(ctx context.Context, query string, args ...interface{}) ([]*model.ManualDraft, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drafts []*model.ManualDraft
	for rows.Next() {
		draft := &model.ManualDraft{}
		err := rows.Scan(
			&draft.ID, &draft.UserID, &draft.ContactID, &draft.Note,
			&draft.Position, &draft.CreatedAt, &draft.SentAt)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, draft)
	}
	return drafts, rows.Err()
}

func (r *SQLiteDraftRepository) FindAll(ctx context.Context, userID string) ([]*model.ManualDraft, error) {
	// NULL contact ids sort first in sqlite, keeping the unplaced pool on top.
	query := `SELECT ` + draftColumns + ` FROM manual_drafts WHERE user_id = ? ORDER BY contact_id, position`
	return r.queryDrafts(ctx, query, userID)
}

func (r *SQLiteDraftRepository) FindByContactID(ctx context.Context, userID string, contactID *string) ([]*model.ManualDraft, error) {
	if contactID == nil {
		query := `SELECT ` + draftColumns + ` FROM manual_drafts
			WHERE user_id = ? AND contact_id IS NULL ORDER BY position`
		return r.queryDrafts(ctx, query, userID)
	}
	query := `SELECT ` + draftColumns + ` FROM manual_drafts
		WHERE user_id = ? AND contact_id = ? ORDER BY position`
	return r.queryDrafts(ctx, query, userID, *contactID)
}

func (r *SQLiteDraftRepository) Update(ctx context.Context, draft *model.ManualDraft) error {
	query := `UPDATE manual_drafts SET contact_id=?, note=?, position=?, sent_at=? WHERE id=? AND user_id=?`
	res, err := r.db.ExecContext(ctx, query,
		draft.ContactID, draft.Note, draft.Position, draft.SentAt,
		draft.ID, draft.UserID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *SQLiteDraftRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM manual_drafts WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *SQLiteDraftRepository) Reorder(ctx context.Context, userID string, ids []string) error {
	return reorderRows(ctx, r.db, "manual_drafts", userID, ids)
}

func (r *SQLiteDraftRepository) MaxUnplacedPosition(ctx context.Context, userID string) (int, error) {
	return maxPosition(ctx, r.db,
		`SELECT COALESCE(MAX(position), -1) FROM manual_drafts WHERE user_id = ? AND contact_id IS NULL`,
		userID)
}

func (r *SQLiteDraftRepository) DetachContact(ctx context.Context, userID, contactID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var tail int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), -1) FROM manual_drafts WHERE user_id = ? AND contact_id IS NULL`,
		userID).Scan(&tail)
	if err != nil {
		return err
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT id FROM manual_drafts WHERE user_id = ? AND contact_id = ? ORDER BY position`,
		userID, contactID)
	if err != nil {
		return err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, id := range ids {
		tail++
		_, err = tx.ExecContext(ctx,
			`UPDATE manual_drafts SET contact_id = NULL, position = ? WHERE id = ?`, tail, id)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func reorderRows(ctx context.Context, db *sql.DB, table, userID string, ids []string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`UPDATE %s SET position = ? WHERE id = ? AND user_id = ?`, table)
	for i, id := range ids {
		res, err := tx.ExecContext(ctx, query, i, id, userID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return repository.ErrNotFound
		}
	}
	return tx.Commit()
}

func maxPosition(ctx context.Context, db *sql.DB, query, userID string) (int, error) {
	var max int
	err := db.QueryRowContext(ctx, query, userID).Scan(&max)
	return max, err
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
