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

func TestListProjectsWithKeyword(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewProjectRepository(db)

	now := time.Now()
	listRows := sqlmock.NewRows([]string{"id", "name", "manager", "contact_info", "description", "documents", "attachments", "attachments_version", "creator_id", "created_at", "updated_at"}).
		AddRow("p1", "HIS Integration", "Li", "li@hospital.cn", "core HIS", "[]", "[]", 0, "u1", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, manager, contact_info, description, documents, attachments, attachments_version, creator_id, created_at, updated_at FROM projects WHERE 1=1 AND (LOWER(name) LIKE $1 OR LOWER(manager) LIKE $1 OR LOWER(description) LIKE $1) ORDER BY created_at DESC LIMIT 20 OFFSET 0")).
		WithArgs("%his%").
		WillReturnRows(listRows)

	countRows := sqlmock.NewRows([]string{"count"}).AddRow(1)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM projects WHERE 1=1 AND (LOWER(name) LIKE $1 OR LOWER(manager) LIKE $1 OR LOWER(description) LIKE $1)")).
		WithArgs("%his%").
		WillReturnRows(countRows)

	projects, total, err := repo.List(context.Background(), models.ProjectFilter{Keyword: "HIS"})
	require.NoError(t, err)
	assert.Len(t, projects, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProjectAttachmentsVersionMismatch(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewProjectRepository(db)

	mock.ExpectExec("UPDATE projects SET attachments").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateAttachments(context.Background(), "p1", models.AttachmentList{}, 3)
	require.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProjectAttachments(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewProjectRepository(db)

	mock.ExpectExec("UPDATE projects SET attachments").
		WillReturnResult(sqlmock.NewResult(0, 1))

	list := models.AttachmentList{{Filename: "spec.pdf", StoredFilename: "1700000000_spec.pdf"}}
	err := repo.UpdateAttachments(context.Background(), "p1", list, 0)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
