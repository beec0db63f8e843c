package postgres

import (
	"context"
	"database/sql"

	"esignapi/internal/model"
	"esignapi/internal/repository"
)

// SignerPostgres is a PostgreSQL implementation of repository.SignerRepository.
type SignerPostgres struct {
	db *sql.DB
}

// NewSignerPostgres creates a new SignerPostgres repository.
func NewSignerPostgres(db *sql.DB) *SignerPostgres {
	return &SignerPostgres{db: db}
}

var _ repository.SignerRepository = (*SignerPostgres)(nil)

const signerColumns = `id, document_id, email, name, role, sign_order, status, color,
		created_at, updated_at`

func scanSigner(row interface{ Scan(...any) error }) (*model.Signer, error) {
	var s model.Signer
	var status string
	var name, role, color sql.NullString
	if err := row.Scan(
		&s.ID,
		&s.DocumentID,
		&s.Email,
		&name,
		&role,
		&s.Order,
		&status,
		&color,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	s.Status = model.SignerStatus(status)
	s.Name = name.String
	s.Role = role.String
	s.Color = color.String
	return &s, nil
}

// Create inserts a new signer row and returns the stored record.
func (r *SignerPostgres) Create(ctx context.Context, s *model.Signer) (*model.Signer, error) {
	const q = `
		INSERT INTO signers (id, document_id, email, name, role, sign_order, status, color,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + signerColumns
	row := r.db.QueryRowContext(ctx, q,
		s.ID,
		s.DocumentID,
		s.Email,
		nullStr(s.Name),
		nullStr(s.Role),
		s.Order,
		string(s.Status),
		nullStr(s.Color),
		s.CreatedAt,
		s.UpdatedAt,
	)
	return scanSigner(row)
}

// FindByID fetches a single signer by its ID.
func (r *SignerPostgres) FindByID(ctx context.Context, id string) (*model.Signer, error) {
	const q = `
		SELECT ` + signerColumns + `
		FROM signers
		WHERE id = $1
	`
	return scanSigner(r.db.QueryRowContext(ctx, q, id))
}

// ListByDocument returns the document's signers in signing order.
func (r *SignerPostgres) ListByDocument(ctx context.Context, documentID string) ([]model.Signer, error) {
	const q = `
		SELECT ` + signerColumns + `
		FROM signers
		WHERE document_id = $1
		ORDER BY sign_order, created_at
	`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	signers := make([]model.Signer, 0)
	for rows.Next() {
		s, err := scanSigner(rows)
		if err != nil {
			return nil, err
		}
		signers = append(signers, *s)
	}
	return signers, rows.Err()
}

// Update replaces a signer row by ID and returns the stored record.
func (r *SignerPostgres) Update(ctx context.Context, s *model.Signer) (*model.Signer, error) {
	const q = `
		UPDATE signers
		SET email = $2, name = $3, role = $4, sign_order = $5, color = $6, updated_at = now()
		WHERE id = $1
		RETURNING ` + signerColumns
	row := r.db.QueryRowContext(ctx, q,
		s.ID,
		s.Email,
		nullStr(s.Name),
		nullStr(s.Role),
		s.Order,
		nullStr(s.Color),
	)
	return scanSigner(row)
}

// UpdateStatus sets a signer's status.
func (r *SignerPostgres) UpdateStatus(ctx context.Context, id string, status model.SignerStatus) error {
	const q = `
		UPDATE signers
		SET status = $2, updated_at = now()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, q, id, string(status))
	return err
}

// Delete removes a signer by ID.
func (r *SignerPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM signers WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
