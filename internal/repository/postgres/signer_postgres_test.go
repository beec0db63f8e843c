package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esignapi/internal/model"
)

var signerCols = []string{
	"id", "document_id", "email", "name", "role", "sign_order", "status", "color",
	"created_at", "updated_at",
}

func signerRow(id string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(signerCols).
		AddRow(id, "doc-1", "alice@example.com", "Alice", nil, 1, "PENDING", "#2563EB", now, now)
}

func TestSignerPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSignerPostgres(db)

	mock.ExpectQuery("INSERT INTO signers").
		WillReturnRows(signerRow("s1"))

	now := time.Now().UTC()
	s, err := repo.Create(context.Background(), &model.Signer{
		ID: "s1", DocumentID: "doc-1", Email: "alice@example.com", Name: "Alice",
		Order: 1, Status: model.SignerPending, Color: "#2563EB",
		CreatedAt: now, UpdatedAt: now,
	})

	assert.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, model.SignerPending, s.Status)
	assert.Empty(t, s.Role, "NULL role normalizes to empty")
}

func TestSignerPostgres_ListByDocument(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSignerPostgres(db)

	mock.ExpectQuery("SELECT (.+) FROM signers WHERE document_id").
		WithArgs("doc-1").
		WillReturnRows(signerRow("s1"))

	signers, err := repo.ListByDocument(context.Background(), "doc-1")

	assert.NoError(t, err)
	require.Len(t, signers, 1)
	assert.Equal(t, "alice@example.com", signers[0].Email)
}

func TestSignerPostgres_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSignerPostgres(db)

	mock.ExpectExec("UPDATE signers").
		WithArgs("s1", "COMPLETED").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.UpdateStatus(context.Background(), "s1", model.SignerCompleted)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignerPostgres_FindByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSignerPostgres(db)

	mock.ExpectQuery("SELECT (.+) FROM signers").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	s, err := repo.FindByID(context.Background(), "missing")

	assert.True(t, IsNoRowsError(err))
	assert.Nil(t, s)
}

func TestSignerPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSignerPostgres(db)

	mock.ExpectExec("DELETE FROM signers").
		WithArgs("s1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), "s1"))
}
