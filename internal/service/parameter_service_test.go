package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hisdocs/his-docs-api/internal/dto"
	"github.com/hisdocs/his-docs-api/internal/models"
	appErrors "github.com/hisdocs/his-docs-api/pkg/errors"
)

type fullParamRepoStub struct {
	parameters map[string]*models.Parameter
	nextID     int
}

func newFullParamRepoStub(parameters ...*models.Parameter) *fullParamRepoStub {
	stub := &fullParamRepoStub{parameters: make(map[string]*models.Parameter)}
	for _, p := range parameters {
		stub.parameters[p.ID] = p
	}
	return stub
}

func (s *fullParamRepoStub) ListByInterface(_ context.Context, interfaceID string, paramType models.ParamType) ([]models.Parameter, error) {
	result := make([]models.Parameter, 0)
	for _, p := range s.parameters {
		if p.InterfaceID == interfaceID && (paramType == "" || p.ParamType == paramType) {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (s *fullParamRepoStub) FindByID(_ context.Context, id string) (*models.Parameter, error) {
	p, ok := s.parameters[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *p
	return &copied, nil
}

func (s *fullParamRepoStub) Create(_ context.Context, parameter *models.Parameter) error {
	s.nextID++
	parameter.ID = parameter.FieldName
	s.parameters[parameter.ID] = parameter
	return nil
}

func (s *fullParamRepoStub) CreateBatch(ctx context.Context, parameters []models.Parameter) error {
	for i := range parameters {
		p := parameters[i]
		if err := s.Create(ctx, &p); err != nil {
			return err
		}
	}
	return nil
}

func (s *fullParamRepoStub) CountByInterface(_ context.Context, interfaceID string, paramType models.ParamType) (int, error) {
	count := 0
	for _, p := range s.parameters {
		if p.InterfaceID == interfaceID && (paramType == "" || p.ParamType == paramType) {
			count++
		}
	}
	return count, nil
}

func (s *fullParamRepoStub) Update(_ context.Context, parameter *models.Parameter) error {
	if _, ok := s.parameters[parameter.ID]; !ok {
		return sql.ErrNoRows
	}
	s.parameters[parameter.ID] = parameter
	return nil
}

func (s *fullParamRepoStub) Delete(_ context.Context, id string) error {
	delete(s.parameters, id)
	return nil
}

func newParameterService(repo *fullParamRepoStub, interfaces *interfaceRepoStub) *ParameterService {
	return NewParameterService(repo, interfaces, nil, nil)
}

func ownedInterface() *models.Interface {
	return &models.Interface{ID: "interface-1", Code: "HIS_PAT_001", CreatorID: "user-1"}
}

func TestPreviewImportContinuesAfterExistingParameters(t *testing.T) {
	repo := newFullParamRepoStub(
		&models.Parameter{ID: "p1", InterfaceID: "interface-1", ParamType: models.ParamTypeInput, FieldName: "patient_id"},
		&models.Parameter{ID: "p2", InterfaceID: "interface-1", ParamType: models.ParamTypeInput, FieldName: "card_no"},
	)
	svc := newParameterService(repo, newInterfaceRepoStub(ownedInterface()))

	resp, err := svc.PreviewImport(context.Background(), "interface-1", dto.ImportPreviewRequest{
		Text:      "dept_code\t科室编码\tvarchar\t\t是",
		ParamType: models.ParamTypeInput,
	})
	require.NoError(t, err)
	require.Len(t, resp.Parameters, 1)
	assert.Equal(t, 2, resp.Parameters[0].OrderIndex)
	assert.Equal(t, "tab", resp.Delimiter)
	assert.Zero(t, resp.Skipped)

	// Preview persists nothing.
	count, err := repo.CountByInterface(context.Background(), "interface-1", models.ParamTypeInput)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCommitImportRenumbersAndPersists(t *testing.T) {
	repo := newFullParamRepoStub(
		&models.Parameter{ID: "p1", InterfaceID: "interface-1", ParamType: models.ParamTypeInput, FieldName: "patient_id"},
	)
	svc := newParameterService(repo, newInterfaceRepoStub(ownedInterface()))

	created, err := svc.CommitImport(context.Background(), ownerClaims(), "interface-1", dto.ImportCommitRequest{
		ParamType: models.ParamTypeInput,
		Parameters: []dto.ParameterPayload{
			{FieldName: "dept_code", Name: "科室编码", DataType: "varchar", OrderIndex: 99},
			{FieldName: "visit_no", Name: "就诊流水号", DataType: "string"},
		},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, 1, created[0].OrderIndex)
	assert.Equal(t, 2, created[1].OrderIndex)

	count, err := repo.CountByInterface(context.Background(), "interface-1", models.ParamTypeInput)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestCommitImportOwnership(t *testing.T) {
	repo := newFullParamRepoStub()
	svc := newParameterService(repo, newInterfaceRepoStub(ownedInterface()))

	stranger := &models.JWTClaims{UserID: "user-2", Role: models.RoleUser}
	_, err := svc.CommitImport(context.Background(), stranger, "interface-1", dto.ImportCommitRequest{
		ParamType:  models.ParamTypeInput,
		Parameters: []dto.ParameterPayload{{FieldName: "x"}},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.parameters)
}

func TestCreateParameterAppendsOrderIndex(t *testing.T) {
	repo := newFullParamRepoStub(
		&models.Parameter{ID: "p1", InterfaceID: "interface-1", ParamType: models.ParamTypeInput},
		&models.Parameter{ID: "p2", InterfaceID: "interface-1", ParamType: models.ParamTypeOutput},
	)
	svc := newParameterService(repo, newInterfaceRepoStub(ownedInterface()))

	created, err := svc.Create(context.Background(), ownerClaims(), "interface-1", dto.ParameterPayload{
		FieldName: "dept_code",
		Name:      "科室编码",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ParamTypeInput, created.ParamType)
	assert.Equal(t, 1, created.OrderIndex)
}

func TestParameterOperationsUnknownInterface(t *testing.T) {
	svc := newParameterService(newFullParamRepoStub(), newInterfaceRepoStub())

	_, err := svc.List(context.Background(), "missing", "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
