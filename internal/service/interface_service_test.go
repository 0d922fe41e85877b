package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hisdocs/his-docs-api/internal/dto"
	"github.com/hisdocs/his-docs-api/internal/models"
	appErrors "github.com/hisdocs/his-docs-api/pkg/errors"
)

type interfaceRepoStub struct {
	interfaces  map[string]*models.Interface
	searchCalls int
}

func newInterfaceRepoStub(interfaces ...*models.Interface) *interfaceRepoStub {
	stub := &interfaceRepoStub{interfaces: make(map[string]*models.Interface)}
	for _, i := range interfaces {
		stub.interfaces[i.ID] = i
	}
	return stub
}

func (s *interfaceRepoStub) Search(_ context.Context, _ models.InterfaceFilter) ([]models.Interface, int, error) {
	s.searchCalls++
	result := make([]models.Interface, 0, len(s.interfaces))
	for _, i := range s.interfaces {
		result = append(result, *i)
	}
	return result, len(result), nil
}

func (s *interfaceRepoStub) FindByID(_ context.Context, id string) (*models.Interface, error) {
	i, ok := s.interfaces[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *i
	return &copied, nil
}

func (s *interfaceRepoStub) FindByCode(_ context.Context, code string) (*models.Interface, error) {
	for _, i := range s.interfaces {
		if i.Code == code {
			copied := *i
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *interfaceRepoStub) Create(_ context.Context, iface *models.Interface) error {
	if iface.ID == "" {
		iface.ID = "interface-" + iface.Code
	}
	s.interfaces[iface.ID] = iface
	return nil
}

func (s *interfaceRepoStub) Update(_ context.Context, iface *models.Interface) error {
	if _, ok := s.interfaces[iface.ID]; !ok {
		return sql.ErrNoRows
	}
	s.interfaces[iface.ID] = iface
	return nil
}

func (s *interfaceRepoStub) Delete(_ context.Context, id string) error {
	delete(s.interfaces, id)
	return nil
}

type paramRepoStub struct {
	byInterface map[string][]models.Parameter
}

func newParamRepoStub() *paramRepoStub {
	return &paramRepoStub{byInterface: make(map[string][]models.Parameter)}
}

func (s *paramRepoStub) ListByInterface(_ context.Context, interfaceID string, paramType models.ParamType) ([]models.Parameter, error) {
	result := make([]models.Parameter, 0)
	for _, p := range s.byInterface[interfaceID] {
		if paramType == "" || p.ParamType == paramType {
			result = append(result, p)
		}
	}
	return result, nil
}

func (s *paramRepoStub) ReplaceForInterface(_ context.Context, interfaceID string, parameters []models.Parameter) error {
	s.byInterface[interfaceID] = parameters
	return nil
}

type cacheRepoStub struct {
	entries map[string][]byte
}

func newCacheRepoStub() *cacheRepoStub {
	return &cacheRepoStub{entries: make(map[string][]byte)}
}

func (s *cacheRepoStub) Get(_ context.Context, key string, dest interface{}) error {
	data, ok := s.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (s *cacheRepoStub) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.entries[key] = data
	return nil
}

func (s *cacheRepoStub) DeleteByPattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
	return nil
}

func newInterfaceService(repo *interfaceRepoStub, params *paramRepoStub, projects *projectRepoStub, cache *cacheRepoStub) *InterfaceService {
	var cacheSvc *CacheService
	if cache != nil {
		cacheSvc = NewCacheService(cache, nil, time.Minute, nil, true)
	}
	return NewInterfaceService(repo, params, projects, cacheSvc, nil, nil)
}

func TestSearchServesRepeatedQueryFromCache(t *testing.T) {
	repo := newInterfaceRepoStub(&models.Interface{ID: "interface-1", Code: "HIS_PAT_001", Name: "患者信息查询"})
	cache := newCacheRepoStub()
	svc := newInterfaceService(repo, newParamRepoStub(), newProjectRepoStub(), cache)

	req := dto.SearchInterfacesRequest{Keyword: "患者"}

	first, err := svc.Search(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, first.Items, 1)
	assert.Equal(t, 1, repo.searchCalls)

	second, err := svc.Search(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.searchCalls, "second identical search must come from cache")
	assert.Equal(t, first.Items[0].Code, second.Items[0].Code)

	// A different filter misses the cache.
	_, err = svc.Search(context.Background(), dto.SearchInterfacesRequest{Keyword: "科室"})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.searchCalls)
}

func TestMutationInvalidatesSearchCache(t *testing.T) {
	repo := newInterfaceRepoStub(&models.Interface{ID: "interface-1", Code: "HIS_PAT_001", CreatorID: "user-1"})
	cache := newCacheRepoStub()
	svc := newInterfaceService(repo, newParamRepoStub(), newProjectRepoStub(), cache)

	req := dto.SearchInterfacesRequest{Keyword: "HIS"}
	_, err := svc.Search(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, cache.entries)

	name := "renamed"
	_, err = svc.Update(context.Background(), ownerClaims(), "interface-1", dto.UpdateInterfaceRequest{Name: &name})
	require.NoError(t, err)
	assert.Empty(t, cache.entries)

	_, err = svc.Search(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.searchCalls)
}

func TestSearchWorksWithoutCache(t *testing.T) {
	repo := newInterfaceRepoStub()
	svc := newInterfaceService(repo, newParamRepoStub(), newProjectRepoStub(), nil)

	result, err := svc.Search(context.Background(), dto.SearchInterfacesRequest{})
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.Equal(t, 1, result.Pagination.Page)
	assert.Equal(t, 20, result.Pagination.PageSize)
}

func TestCreateInterfaceDuplicateCode(t *testing.T) {
	repo := newInterfaceRepoStub(&models.Interface{ID: "interface-1", Code: "HIS_PAT_001"})
	projects := newProjectRepoStub(&models.Project{ID: "project-1"})
	svc := newInterfaceService(repo, newParamRepoStub(), projects, nil)

	_, err := svc.Create(context.Background(), ownerClaims(), dto.CreateInterfaceRequest{
		ProjectID:     "project-1",
		Code:          "HIS_PAT_001",
		Name:          "重复编码",
		InterfaceType: models.InterfaceTypeAPI,
	})
	require.Error(t, err)
	typed := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrDuplicateCode.Code, typed.Code)
	assert.Equal(t, 409, typed.Status)
}

func TestCreateInterfaceUnknownProject(t *testing.T) {
	svc := newInterfaceService(newInterfaceRepoStub(), newParamRepoStub(), newProjectRepoStub(), nil)

	_, err := svc.Create(context.Background(), ownerClaims(), dto.CreateInterfaceRequest{
		ProjectID:     "missing",
		Code:          "HIS_PAT_001",
		Name:          "患者信息查询",
		InterfaceType: models.InterfaceTypeAPI,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCreateInterfaceWithInlineParameters(t *testing.T) {
	repo := newInterfaceRepoStub()
	params := newParamRepoStub()
	projects := newProjectRepoStub(&models.Project{ID: "project-1"})
	svc := newInterfaceService(repo, params, projects, nil)

	iface, err := svc.Create(context.Background(), ownerClaims(), dto.CreateInterfaceRequest{
		ProjectID:     "project-1",
		Code:          "HIS_PAT_001",
		Name:          "患者信息查询",
		InterfaceType: models.InterfaceTypeAPI,
		Parameters: []dto.ParameterPayload{
			{FieldName: "patient_id", Name: "患者ID", DataType: "varchar", Required: true},
			{ParamType: models.ParamTypeOutput, FieldName: "name", Name: "姓名", DataType: "string"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.InterfaceStatusActive, iface.Status)

	stored := params.byInterface[iface.ID]
	require.Len(t, stored, 2)
	assert.Equal(t, models.ParamTypeInput, stored[0].ParamType)
	assert.Equal(t, 0, stored[0].OrderIndex)
	assert.Equal(t, models.ParamTypeOutput, stored[1].ParamType)
	assert.Equal(t, 1, stored[1].OrderIndex)
}
