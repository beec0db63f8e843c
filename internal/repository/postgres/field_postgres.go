package postgres

import (
	"context"
	"database/sql"

	"esignapi/internal/model"
	"esignapi/internal/repository"
)

// FieldPostgres is a PostgreSQL implementation of repository.FieldRepository.
type FieldPostgres struct {
	db *sql.DB
}

// NewFieldPostgres creates a new FieldPostgres repository.
func NewFieldPostgres(db *sql.DB) *FieldPostgres {
	return &FieldPostgres{db: db}
}

var _ repository.FieldRepository = (*FieldPostgres)(nil)

const fieldColumns = `id, document_id, signer_id, type, label, required, placeholder,
		x, y, width, height, page_number, value, color, font_family, font_size,
		validation_rule, conditional_logic, options, background_color, border_color,
		text_color, created_at, updated_at`

// nullStr maps "" to NULL so optional columns stay NULL in the database
// while the domain model uses plain strings.
func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func fieldArgs(f *model.Field) []any {
	return []any{
		f.ID,
		f.DocumentID,
		nullStr(f.SignerID),
		string(f.Type),
		f.Label,
		f.Required,
		nullStr(f.Placeholder),
		f.X.Float64(),
		f.Y.Float64(),
		f.Width.Float64(),
		f.Height.Float64(),
		f.PageNumber.Int(),
		nullStr(f.Value),
		nullStr(f.Color),
		nullStr(f.FontFamily),
		f.FontSize.Int(),
		nullStr(f.ValidationRule),
		nullStr(f.ConditionalLogic),
		nullStr(f.Options),
		nullStr(f.BackgroundColor),
		nullStr(f.BorderColor),
		nullStr(f.TextColor),
		f.CreatedAt,
		f.UpdatedAt,
	}
}

func scanField(row interface{ Scan(...any) error }) (*model.Field, error) {
	var f model.Field
	var x, y, w, h float64
	var page, fontSize int
	var typ string
	var signerID, placeholder, value, color, fontFamily, validationRule,
		conditionalLogic, options, backgroundColor, borderColor, textColor sql.NullString
	if err := row.Scan(
		&f.ID,
		&f.DocumentID,
		&signerID,
		&typ,
		&f.Label,
		&f.Required,
		&placeholder,
		&x,
		&y,
		&w,
		&h,
		&page,
		&value,
		&color,
		&fontFamily,
		&fontSize,
		&validationRule,
		&conditionalLogic,
		&options,
		&backgroundColor,
		&borderColor,
		&textColor,
		&f.CreatedAt,
		&f.UpdatedAt,
	); err != nil {
		return nil, err
	}
	f.Type = model.FieldType(typ)
	f.X = model.FlexFloat(x)
	f.Y = model.FlexFloat(y)
	f.Width = model.FlexFloat(w)
	f.Height = model.FlexFloat(h)
	f.PageNumber = model.FlexInt(page)
	f.FontSize = model.FlexInt(fontSize)
	f.SignerID = signerID.String
	f.Placeholder = placeholder.String
	f.Value = value.String
	f.Color = color.String
	f.FontFamily = fontFamily.String
	f.ValidationRule = validationRule.String
	f.ConditionalLogic = conditionalLogic.String
	f.Options = options.String
	f.BackgroundColor = backgroundColor.String
	f.BorderColor = borderColor.String
	f.TextColor = textColor.String
	return &f, nil
}

const insertFieldSQL = `
		INSERT INTO fields (id, document_id, signer_id, type, label, required, placeholder,
			x, y, width, height, page_number, value, color, font_family, font_size,
			validation_rule, conditional_logic, options, background_color, border_color,
			text_color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24)
		RETURNING ` + fieldColumns

// Create inserts a new field row and returns the stored record.
func (r *FieldPostgres) Create(ctx context.Context, f *model.Field) (*model.Field, error) {
	row := r.db.QueryRowContext(ctx, insertFieldSQL, fieldArgs(f)...)
	return scanField(row)
}

// FindByID fetches a single field by its ID.
func (r *FieldPostgres) FindByID(ctx context.Context, id string) (*model.Field, error) {
	const q = `
		SELECT ` + fieldColumns + `
		FROM fields
		WHERE id = $1
	`
	return scanField(r.db.QueryRowContext(ctx, q, id))
}

// ListByDocument returns the document's fields in creation order, which is
// the overlay render order.
func (r *FieldPostgres) ListByDocument(ctx context.Context, documentID string) ([]model.Field, error) {
	const q = `
		SELECT ` + fieldColumns + `
		FROM fields
		WHERE document_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := make([]model.Field, 0)
	for rows.Next() {
		f, err := scanField(rows)
		if err != nil {
			return nil, err
		}
		fields = append(fields, *f)
	}
	return fields, rows.Err()
}

// Update replaces a field row by ID and returns the stored record.
func (r *FieldPostgres) Update(ctx context.Context, f *model.Field) (*model.Field, error) {
	const q = `
		UPDATE fields
		SET signer_id = $3, type = $4, label = $5, required = $6, placeholder = $7,
			x = $8, y = $9, width = $10, height = $11, page_number = $12, value = $13,
			color = $14, font_family = $15, font_size = $16, validation_rule = $17,
			conditional_logic = $18, options = $19, background_color = $20,
			border_color = $21, text_color = $22, updated_at = now()
		WHERE id = $1 AND document_id = $2
		RETURNING ` + fieldColumns
	// Drop created_at/updated_at from the tail; document_id ($2) scopes the
	// update rather than being written.
	args := fieldArgs(f)[:22]
	row := r.db.QueryRowContext(ctx, q, args...)
	return scanField(row)
}

// ReplaceForDocument deletes the document's fields and inserts the new set
// in one transaction. The editor's save flushes through here.
func (r *FieldPostgres) ReplaceForDocument(ctx context.Context, documentID string, fields []model.Field) ([]model.Field, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM fields WHERE document_id = $1`, documentID); err != nil {
		return nil, err
	}

	stored := make([]model.Field, 0, len(fields))
	for i := range fields {
		row := tx.QueryRowContext(ctx, insertFieldSQL, fieldArgs(&fields[i])...)
		f, err := scanField(row)
		if err != nil {
			return nil, err
		}
		stored = append(stored, *f)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return stored, nil
}

// UpdateValues writes filled values keyed by field ID, scoped to the
// document so a submission cannot touch another document's fields.
func (r *FieldPostgres) UpdateValues(ctx context.Context, documentID string, values map[string]string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const q = `
		UPDATE fields
		SET value = $3, updated_at = now()
		WHERE id = $1 AND document_id = $2
	`
	for id, v := range values {
		if _, err := tx.ExecContext(ctx, q, id, documentID, v); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Delete removes a field by ID.
func (r *FieldPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM fields WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
