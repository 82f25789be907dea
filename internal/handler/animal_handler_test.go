package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/animeaux-api/internal/dto"
	"github.com/noah-isme/animeaux-api/internal/service"
)

type stubAnimalService struct {
	actor     service.ActivityActor
	listReq   dto.AnimalListRequest
	createReq dto.AnimalCreateRequest
	err       error
}

func (s *stubAnimalService) List(_ context.Context, req dto.AnimalListRequest) (dto.AnimalListResponse, error) {
	s.listReq = req
	return dto.AnimalListResponse{}, s.err
}

func (s *stubAnimalService) Get(context.Context, string) (dto.AnimalResponse, error) {
	return dto.AnimalResponse{}, s.err
}

func (s *stubAnimalService) Create(_ context.Context, payload dto.AnimalCreateRequest, actor service.ActivityActor) (dto.AnimalResponse, error) {
	s.createReq = payload
	s.actor = actor
	return dto.AnimalResponse{ID: "animal-1", Name: payload.Name}, s.err
}

func (s *stubAnimalService) Update(_ context.Context, id string, payload dto.AnimalUpdateRequest, actor service.ActivityActor) (dto.AnimalResponse, error) {
	s.actor = actor
	return dto.AnimalResponse{ID: id}, s.err
}

func (s *stubAnimalService) Delete(_ context.Context, id string, actor service.ActivityActor) error {
	s.actor = actor
	return s.err
}

func newAnimalApp(svc service.AnimalService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/admin/animals", func(c *fiber.Ctx) error {
		c.Locals("user_id", "user-7")
		return c.Next()
	})
	NewAnimalHandler(svc, zerolog.Nop()).Register(group)
	return app
}

func TestAnimalHandlerCreatePassesUserActor(t *testing.T) {
	svc := &stubAnimalService{}
	app := newAnimalApp(svc)

	body := `{"name":"Rex","species":"DOG","gender":"MALE","birthdate":"2020-05-01T00:00:00Z","pick_up_date":"2023-03-10T00:00:00Z","status":"UNAVAILABLE"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/animals", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, service.UserActor{ID: "user-7"}, svc.actor)
	require.Equal(t, "Rex", svc.createReq.Name)
}

func TestAnimalHandlerListParsesFilters(t *testing.T) {
	svc := &stubAnimalService{}
	app := newAnimalApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/animals?search=rex&species=dog,cat&status=ADOPTED", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "rex", svc.listReq.Search)
	require.Equal(t, []string{"dog", "cat"}, svc.listReq.Species)
	require.Equal(t, []string{"ADOPTED"}, svc.listReq.Statuses)
	require.Equal(t, 20, svc.listReq.PageSize)
}

func TestAnimalHandlerMapsNotFound(t *testing.T) {
	svc := &stubAnimalService{err: service.ErrAnimalNotFound}
	app := newAnimalApp(svc)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		resp, err := app.Test(httptest.NewRequest(method, "/api/admin/animals/missing", nil), -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusNotFound, resp.StatusCode, method)
	}

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/animals/missing", strings.NewReader(`{"name":"Ghost"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAnimalHandlerRejectsMalformedPayload(t *testing.T) {
	app := newAnimalApp(&stubAnimalService{})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/animals", strings.NewReader(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
