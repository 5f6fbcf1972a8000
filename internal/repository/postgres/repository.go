package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"touchbase/internal/model"
	"touchbase/internal/repository"

	"github.com/lib/pq"
)

// isUniqueViolation maps the Postgres unique_violation code onto the
// repository conflict sentinel.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, google_id, email, name, access_token, refresh_token, token_expiry, stale_threshold_days, created_at, updated_at`

func (r *PostgresUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (google_id) DO UPDATE SET
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			token_expiry = EXCLUDED.token_expiry,
			updated_at = NOW()`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.GoogleID, user.Email, user.Name,
		user.AccessToken, user.RefreshToken, user.TokenExpiry,
		user.StaleThresholdDays, user.CreatedAt, user.UpdatedAt)
	return err
}

func (r *PostgresUserRepository) scanUser(row *sql.Row) (*model.User, error) {
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

func (r *PostgresUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE google_id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, googleID))
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresUserRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users SET email=$1, name=$2, access_token=$3, refresh_token=$4,
		token_expiry=$5, stale_threshold_days=$6, updated_at=NOW() WHERE id=$7`
	res, err := r.db.ExecContext(ctx, query,
		user.Email, user.Name, user.AccessToken, user.RefreshToken,
		user.TokenExpiry, user.StaleThresholdDays, user.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

type PostgresCategoryRepository struct {
	db *sql.DB
}

func NewPostgresCategoryRepository(db *sql.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

const categoryColumns = `id, user_id, name, position, created_at, updated_at`

func (r *PostgresCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
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

func (r *PostgresCategoryRepository) FindByID(ctx context.Context, userID, id string) (*model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1 AND user_id = $2`
	return scanCategory(r.db.QueryRowContext(ctx, query, id, userID))
}

func (r *PostgresCategoryRepository) FindByName(ctx context.Context, userID, name string) (*model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1 AND LOWER(name) = LOWER($2)`
	return scanCategory(r.db.QueryRowContext(ctx, query, userID, name))
}

func (r *PostgresCategoryRepository) FindAll(ctx context.Context, userID string) ([]*model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1 ORDER BY position, name`
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

func (r *PostgresCategoryRepository) Update(ctx context.Context, category *model.Category) error {
	query := `
		UPDATE categories SET name=$1, position=$2, updated_at=NOW()
		WHERE id=$3 AND user_id=$4`
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

func (r *PostgresCategoryRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PostgresCategoryRepository) Reorder(ctx context.Context, userID string, ids []string) error {
	return reorderRows(ctx, r.db, "categories", userID, ids)
}

func (r *PostgresCategoryRepository) MaxPosition(ctx context.Context, userID string) (int, error) {
	return maxPosition(ctx, r.db, `SELECT COALESCE(MAX(position), -1) FROM categories WHERE user_id = $1`, userID)
}

type PostgresContactRepository struct {
	db *sql.DB
}

func NewPostgresContactRepository(db *sql.DB) *PostgresContactRepository {
	return &PostgresContactRepository{db: db}
}

const contactColumns = `id, user_id, name, email, category_id, position, last_sent_at, created_at, updated_at`

func (r *PostgresContactRepository) Create(ctx context.Context, contact *model.Contact) error {
	query := `
		INSERT INTO contacts (` + contactColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
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

func (r *PostgresContactRepository) FindByID(ctx context.Context, userID, id string) (*model.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1 AND user_id = $2`
	return scanContact(r.db.QueryRowContext(ctx, query, id, userID))
}

func (r *PostgresContactRepository) FindByEmail(ctx context.Context, userID, email string) (*model.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE user_id = $1 AND LOWER(email) = LOWER($2)`
	return scanContact(r.db.QueryRowContext(ctx, query, userID, email))
}

func (r *PostgresContactRepository) FindAll(ctx context.Context, userID string) ([]*model.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE user_id = $1 ORDER BY position, name`
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

func (r *PostgresContactRepository) Update(ctx context.Context, contact *model.Contact) error {
	query := `
		UPDATE contacts SET name=$1, email=$2, category_id=$3, position=$4,
		last_sent_at=$5, updated_at=NOW() WHERE id=$6 AND user_id=$7`
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

func (r *PostgresContactRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM contacts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PostgresContactRepository) DetachCategory(ctx context.Context, userID, categoryID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE contacts SET category_id = NULL, updated_at = NOW()
		 WHERE user_id = $1 AND category_id = $2`, userID, categoryID)
	return err
}

func (r *PostgresContactRepository) Reorder(ctx context.Context, userID string, ids []string) error {
	return reorderRows(ctx, r.db, "contacts", userID, ids)
}

func (r *PostgresContactRepository) MaxPosition(ctx context.Context, userID string) (int, error) {
	return maxPosition(ctx, r.db, `SELECT COALESCE(MAX(position), -1) FROM contacts WHERE user_id = $1`, userID)
}

type PostgresSentMailRepository struct {
	db *sql.DB
}

func NewPostgresSentMailRepository(db *sql.DB) *PostgresSentMailRepository {
	return &PostgresSentMailRepository{db: db}
}

func (r *PostgresSentMailRepository) Create(ctx context.Context, mail *model.SentMail) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sent_mails (id, contact_id, gmail_id, subject, note, status, sent_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
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
			VALUES ($1, $2, $3, $4, $5)`,
			a.ID, mail.ID, a.Filename, a.MimeType, a.Size)
		if err != nil {
			return err
		}
		a.SentMailID = mail.ID
	}
	return tx.Commit()
}

func (r *PostgresSentMailRepository) FindByContactID(ctx context.Context, contactID string) ([]*model.SentMail, error) {
	query := `
		SELECT id, contact_id, gmail_id, subject, note, status, sent_at, created_at
		FROM sent_mails WHERE contact_id = $1 ORDER BY sent_at DESC`
	rows, err := r.db.QueryContext(ctx, query, contactID)
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
		WHERE m.contact_id = $1`, contactID)
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

func (r *PostgresSentMailRepository) FindByGmailID(ctx context.Context, contactID, gmailID string) (*model.SentMail, error) {
	query := `
		SELECT id, contact_id, gmail_id, subject, note, status, sent_at, created_at
		FROM sent_mails WHERE contact_id = $1 AND gmail_id = $2`
	row := r.db.QueryRowContext(ctx, query, contactID, gmailID)

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

func (r *PostgresSentMailRepository) DeleteByContactID(ctx context.Context, contactID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM attachments WHERE sent_mail_id IN
		(SELECT id FROM sent_mails WHERE contact_id = $1)`, contactID)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM sent_mails WHERE contact_id = $1`, contactID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

type PostgresDraftRepository struct {
	db *sql.DB
}

func NewPostgresDraftRepository(db *sql.DB) *PostgresDraftRepository {
	return &PostgresDraftRepository{db: db}
}

const draftColumns = `id, user_id, contact_id, note, position, created_at, sent_at`

func (r *PostgresDraftRepository) Create(ctx context.Context, draft *model.ManualDraft) error {
	query := `
		INSERT INTO manual_drafts (` + draftColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		draft.ID, draft.UserID, draft.ContactID, draft.Note,
		draft.Position, draft.CreatedAt, draft.SentAt)
	return err
}

func scanDraft(row *sql.Row) (*model.ManualDraft, error) {
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

func (r *PostgresDraftRepository) FindByID(ctx context.Context, userID, id string) (*model.ManualDraft, error) {
	query := `SELECT ` + draftColumns + ` FROM manual_drafts WHERE id = $1 AND user_id = $2`
	return scanDraft(r.db.QueryRowContext(ctx, query, id, userID))
}

func (r *PostgresDraftRepository) queryDrafts(ctx context.Context, query string, args ...interface{}) ([]*model.ManualDraft, error) {
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

func (r *PostgresDraftRepository) FindAll(ctx context.Context, userID string) ([]*model.ManualDraft, error) {
	query := `SELECT ` + draftColumns + ` FROM manual_drafts
		WHERE user_id = $1 ORDER BY contact_id NULLS FIRST, position`
	return r.queryDrafts(ctx, query, userID)
}

func (r *PostgresDraftRepository) FindByContactID(ctx context.Context, userID string, contactID *string) ([]*model.ManualDraft, error) {
	if contactID == nil {
		query := `SELECT ` + draftColumns + ` FROM manual_drafts
			WHERE user_id = $1 AND contact_id IS NULL ORDER BY position`
		return r.queryDrafts(ctx, query, userID)
	}
	query := `SELECT ` + draftColumns + ` FROM manual_drafts
		WHERE user_id = $1 AND contact_id = $2 ORDER BY position`
	return r.queryDrafts(ctx, query, userID, *contactID)
}

func (r *PostgresDraftRepository) Update(ctx context.Context, draft *model.ManualDraft) error {
	query := `
		UPDATE manual_drafts SET contact_id=$1, note=$2, position=$3, sent_at=$4
		WHERE id=$5 AND user_id=$6`
	res, err := r.db.ExecContext(ctx, query,
		draft.ContactID, draft.Note, draft.Position, draft.SentAt,
		draft.ID, draft.UserID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PostgresDraftRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM manual_drafts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PostgresDraftRepository) Reorder(ctx context.Context, userID string, ids []string) error {
	return reorderRows(ctx, r.db, "manual_drafts", userID, ids)
}

func (r *PostgresDraftRepository) MaxUnplacedPosition(ctx context.Context, userID string) (int, error) {
	return maxPosition(ctx, r.db,
		`SELECT COALESCE(MAX(position), -1) FROM manual_drafts WHERE user_id = $1 AND contact_id IS NULL`,
		userID)
}

func (r *PostgresDraftRepository) DetachContact(ctx context.Context, userID, contactID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var tail int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), -1) FROM manual_drafts WHERE user_id = $1 AND contact_id IS NULL`,
		userID).Scan(&tail)
	if err != nil {
		return err
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT id FROM manual_drafts WHERE user_id = $1 AND contact_id = $2 ORDER BY position`,
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
			`UPDATE manual_drafts SET contact_id = NULL, position = $1 WHERE id = $2`,
			tail, id)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// reorderRows rewrites positions for the given id list in one transaction.
// Each id must hit exactly one row owned by userID or the whole reorder
// rolls back.
func reorderRows(ctx context.Context, db *sql.DB, table, userID string, ids []string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`UPDATE %s SET position = $1 WHERE id = $2 AND user_id = $3`, table)
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

// InitializeDatabase creates the tables on first boot.
func InitializeDatabase(db *sql.DB) error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(255) PRIMARY KEY,
			google_id VARCHAR(255) UNIQUE NOT NULL,
			email VARCHAR(255) NOT NULL,
			name VARCHAR(255) NOT NULL,
			access_token TEXT,
			refresh_token TEXT,
			token_expiry TIMESTAMP,
			stale_threshold_days INTEGER NOT NULL DEFAULT 30,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id VARCHAR(255) PRIMARY KEY,
			user_id VARCHAR(255) NOT NULL,
			name VARCHAR(255) NOT NULL,
			position INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			UNIQUE (user_id, name)
		)`,
		`CREATE TABLE IF NOT EXISTS contacts (
			id VARCHAR(255) PRIMARY KEY,
			user_id VARCHAR(255) NOT NULL,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			category_id VARCHAR(255),
			position INTEGER NOT NULL DEFAULT 0,
			last_sent_at TIMESTAMP,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			UNIQUE (user_id, email)
		)`,
		`CREATE TABLE IF NOT EXISTS sent_mails (
			id VARCHAR(255) PRIMARY KEY,
			contact_id VARCHAR(255) NOT NULL,
			gmail_id VARCHAR(255) NOT NULL,
			subject TEXT,
			note TEXT,
			status VARCHAR(64),
			sent_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP NOT NULL,
			UNIQUE (contact_id, gmail_id)
		)`,
		`CREATE TABLE IF NOT EXISTS attachments (
			id VARCHAR(255) PRIMARY KEY,
			sent_mail_id VARCHAR(255) NOT NULL,
			filename TEXT NOT NULL,
			mime_type VARCHAR(255),
			size BIGINT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS manual_drafts (
			id VARCHAR(255) PRIMARY KEY,
			user_id VARCHAR(255) NOT NULL,
			contact_id VARCHAR(255),
			note TEXT,
			position INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL,
			sent_at TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_contacts_user ON contacts(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sent_mails_contact ON sent_mails(contact_id)`,
		`CREATE INDEX IF NOT EXISTS idx_attachments_mail ON attachments(sent_mail_id)`,
		`CREATE INDEX IF NOT EXISTS idx_drafts_user ON manual_drafts(user_id)`,
	}

	for _, table := range tables {
		if _, err := db.Exec(table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}
