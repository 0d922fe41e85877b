package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hisdocs/his-docs-api/internal/models"
)

func TestFindDocumentByIDLegacyColumns(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDocumentRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "title", "description", "region", "person", "document_type", "attachments", "attachments_version", "file_path", "file_name", "file_size", "mime_type", "creator_id", "created_at", "updated_at"}).
		AddRow("d1", "老版对接说明", "", "华东", "Wang", "pdf", "[]", 0, "/uploads/documents/d1/spec.pdf", "spec.pdf", int64(1024), "application/pdf", "u1", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, description, region, person, document_type, attachments, attachments_version, file_path, file_name, file_size, mime_type, creator_id, created_at, updated_at FROM documents WHERE id = $1 LIMIT 1")).
		WithArgs("d1").
		WillReturnRows(rows)

	doc, err := repo.FindByID(context.Background(), "d1")
	require.NoError(t, err)

	list := doc.EffectiveAttachments()
	require.Len(t, list, 1)
	assert.Equal(t, "spec.pdf", list[0].Filename)
	assert.Equal(t, "/uploads/documents/d1/spec.pdf", list[0].FilePath)
	assert.Equal(t, int64(1024), list[0].FileSize)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateDocumentAttachmentsVersionMismatch(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDocumentRepository(db)

	mock.ExpectExec("UPDATE documents SET attachments").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateAttachments(context.Background(), "d1", models.AttachmentList{}, 1)
	require.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
