package postgres

import (
	"context"
	"database/sql"
	"errors"

	"esignapi/internal/model"
	"esignapi/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of
// repository.DocumentRepository. It uses database/sql with parameterized
// queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

// IsNoRowsError reports whether err is the driver's no-rows sentinel.
func IsNoRowsError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

const documentColumns = `id, filename, storage_path, size, content_type, page_count,
		due_date, message, expiry_days, notify_signers, created_at, updated_at`

func scanDocument(row interface{ Scan(...any) error }) (*model.Document, error) {
	var d model.Document
	var dueDate sql.NullTime
	var message sql.NullString
	if err := row.Scan(
		&d.ID,
		&d.Filename,
		&d.StoragePath,
		&d.Size,
		&d.ContentType,
		&d.PageCount,
		&dueDate,
		&message,
		&d.ExpiryDays,
		&d.NotifySigners,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if dueDate.Valid {
		t := dueDate.Time
		d.DueDate = &t
	}
	d.Message = message.String
	return &d, nil
}

// Create inserts the document row plus one row per page, atomically.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document, pages []model.PageDimensions) (*model.Document, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	const q = `
		INSERT INTO documents (id, filename, storage_path, size, content_type, page_count,
			due_date, message, expiry_days, notify_signers, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + documentColumns
	row := tx.QueryRowContext(ctx, q,
		doc.ID,
		doc.Filename,
		doc.StoragePath,
		doc.Size,
		doc.ContentType,
		doc.PageCount,
		doc.DueDate,
		doc.Message,
		doc.ExpiryDays,
		doc.NotifySigners,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	out, err := scanDocument(row)
	if err != nil {
		return nil, err
	}

	const qPage = `
		INSERT INTO document_pages (document_id, page_number, width, height)
		VALUES ($1, $2, $3, $4)
	`
	for _, p := range pages {
		if _, err := tx.ExecContext(ctx, qPage, out.ID, p.PageNumber, p.Width, p.Height); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE id = $1
	`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// List returns documents using LIMIT/OFFSET pagination and a total count.
func (r *DocumentPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	const qCount = `SELECT COUNT(*) FROM documents`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + documentColumns + `
		FROM documents
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Document]{
		Items: items,
		Total: total,
	}, nil
}

// Pages returns a document's per-page native dimensions in page order.
func (r *DocumentPostgres) Pages(ctx context.Context, documentID string) ([]model.PageDimensions, error) {
	const q = `
		SELECT document_id, page_number, width, height
		FROM document_pages
		WHERE document_id = $1
		ORDER BY page_number
	`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pages := make([]model.PageDimensions, 0)
	for rows.Next() {
		var p model.PageDimensions
		if err := rows.Scan(&p.DocumentID, &p.PageNumber, &p.Width, &p.Height); err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// UpdateSendOptions persists the preparation options the editor saves.
func (r *DocumentPostgres) UpdateSendOptions(ctx context.Context, doc *model.Document) error {
	const q = `
		UPDATE documents
		SET due_date = $2, message = $3, expiry_days = $4, notify_signers = $5, updated_at = now()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, q,
		doc.ID,
		doc.DueDate,
		doc.Message,
		doc.ExpiryDays,
		doc.NotifySigners,
	)
	return err
}

// Delete removes a document by ID. It does not return an error if the row
// does not exist; dependent rows cascade.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
