package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/animeaux-api/internal/dto"
	"github.com/noah-isme/animeaux-api/internal/service"
)

type stubActivityService struct {
	listReq    dto.ActivityListRequest
	listResp   dto.ActivityListResponse
	getFields  []string
	getResp    dto.ActivityResponse
	getErr     error
	validation *validator.Validate
}

func (s *stubActivityService) Create(context.Context, service.ActivityParams) {}

func (s *stubActivityService) Get(_ context.Context, id string, fields []string) (dto.ActivityResponse, error) {
	s.getFields = fields
	if s.getErr != nil {
		return dto.ActivityResponse{}, s.getErr
	}
	return s.getResp, nil
}

func (s *stubActivityService) List(_ context.Context, req dto.ActivityListRequest) (dto.ActivityListResponse, error) {
	s.listReq = req
	if s.validation != nil {
		if err := s.validation.Struct(req); err != nil {
			return dto.ActivityListResponse{}, err
		}
	}
	return s.listResp, nil
}

func newActivityApp(svc service.ActivityService) *fiber.App {
	app := fiber.New()
	NewAdminActivityHandler(svc, zerolog.Nop()).Register(app.Group("/api/admin/activity"))
	return app
}

func TestAdminActivityListParsesFilters(t *testing.T) {
	svc := &stubActivityService{}
	app := newActivityApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/activity?page=2&page_size=500&actions=update,create&resources=animal&actor_ids=user-1&actor_ids=foster-family-availability&resource_id=abc&date_start=2024-01-01&date_end=2024-01-31", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	got := svc.listReq
	require.Equal(t, 2, got.Page)
	require.Equal(t, 200, got.PageSize)
	require.Equal(t, []string{"UPDATE", "CREATE"}, got.Actions)
	require.Equal(t, []string{"ANIMAL"}, got.Resources)
	require.Equal(t, []string{"user-1", "foster-family-availability"}, got.ActorIDs)
	require.Equal(t, "abc", got.ResourceID)
	require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *got.DateStart)
	require.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC), *got.DateEnd)
}

func TestAdminActivityListRejectsBadInput(t *testing.T) {
	svc := &stubActivityService{validation: validator.New(validator.WithRequiredStructEnabled())}
	app := newActivityApp(svc)

	cases := []string{
		"/api/admin/activity?page=abc",
		"/api/admin/activity?date_start=yesterday",
		"/api/admin/activity?date_start=2024-02-01&date_end=2024-01-01",
		"/api/admin/activity?actions=ARCHIVE",
	}
	for _, target := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode, target)
	}
}

func TestAdminActivityGet(t *testing.T) {
	svc := &stubActivityService{getResp: dto.ActivityResponse{ID: "log-1", Action: "CREATE"}}
	app := newActivityApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/activity/log-1?fields=id,action", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, []string{"id", "action"}, svc.getFields)

	svc.getErr = service.ErrActivityNotFound
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/activity/missing", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	svc.getErr = fmt.Errorf("%w: password", service.ErrInvalidActivityField)
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/activity/log-1?fields=password", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAdminActivityListContract(t *testing.T) {
	schemaPath, err := filepath.Abs(filepath.Join("testdata", "activity_list.schema.json"))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile("file://" + schemaPath)
	require.NoError(t, err)

	userID := "user-1"
	animalID := "animal-1"
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	svc := &stubActivityService{listResp: dto.ActivityListResponse{
		Items: []dto.ActivityResponse{
			{
				ID:         "log-2",
				ActorType:  "USER",
				ActorID:    userID,
				UserID:     &userID,
				Action:     "UPDATE",
				Resource:   "ANIMAL",
				ResourceID: animalID,
				AnimalID:   &animalID,
				Before:     map[string]interface{}{"status": "OPEN_TO_ADOPTION"},
				After:      map[string]interface{}{"status": "ADOPTED"},
				CreatedAt:  created,
			},
			{
				ID:         "log-1",
				ActorType:  "CRON",
				ActorID:    "foster-family-availability",
				Action:     "DELETE",
				Resource:   "FOSTER_FAMILY",
				ResourceID: "ff-1",
				Before:     map[string]interface{}{"displayName": "The Martins"},
				CreatedAt:  created.Add(-time.Hour),
			},
		},
		Pagination: dto.PaginationMeta{Page: 1, PageSize: 25, TotalItems: 2, TotalPages: 1},
	}}
	app := newActivityApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/activity", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.NoError(t, schema.Validate(payload))
}
