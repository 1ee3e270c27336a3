package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"study-buddy-be/internal/dto"
	"study-buddy-be/internal/pkg/logger"
	"study-buddy-be/internal/pkg/serverutils"
	"study-buddy-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTutorService struct {
	chatRes      *dto.ChatResponse
	chatErr      error
	gotRequest   *dto.ChatRequest
	materials    []byte
	materialsErr error
}

func (f *fakeTutorService) SendChat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	f.gotRequest = request
	return f.chatRes, f.chatErr
}

func (f *fakeTutorService) GetMaterials(ctx context.Context) ([]byte, error) {
	return f.materials, f.materialsErr
}

func newTestApp(svc service.ITutorService) *fiber.App {
	app := fiber.New()
	log := logger.NewNopLogger()

	app.Use(serverutils.CORSMiddleware())
	app.Use(serverutils.RecoverMiddleware(log))

	NewMaterialsController(svc, log).RegisterRoutes(app)
	NewChatController(svc, log).RegisterRoutes(app)
	return app
}

func decodeBody(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	return out
}

func TestChatMissingMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty message", body: `{"message": ""}`},
		{name: "no message key", body: `{"sessionId": "s1"}`},
		{name: "no body", body: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&fakeTutorService{})

			req := httptest.NewRequest("POST", "/chat", strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			res, err := app.Test(req)
			require.NoError(t, err)

			assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
			body := decodeBody(t, res.Body)
			assert.Contains(t, body, "error")
			assert.Equal(t, "Message is required", body["error"])
		})
	}
}

func TestChatSuccess(t *testing.T) {
	material := "photosynthesis"
	svc := &fakeTutorService{chatRes: &dto.ChatResponse{
		Response:           "Photosynthesis converts light into glucose.",
		SessionID:          "default-session",
		RelevantMaterialID: &material,
	}}
	app := newTestApp(svc)

	req := httptest.NewRequest("POST", "/chat", strings.NewReader(`{"message": "What is photosynthesis?"}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))

	body := decodeBody(t, res.Body)
	assert.NotEmpty(t, body["response"])
	assert.Equal(t, "default-session", body["sessionId"])
	assert.Equal(t, "photosynthesis", body["relevantMaterialId"])
	_, hasSources := body["sources"]
	assert.False(t, hasSources, "sources must be omitted when empty")

	assert.Equal(t, "What is photosynthesis?", svc.gotRequest.Message)
}

func TestChatWithoutContentTypeHeader(t *testing.T) {
	svc := &fakeTutorService{chatRes: &dto.ChatResponse{
		Response:  "Let's start with what you already know.",
		SessionID: "s1",
	}}
	app := newTestApp(svc)

	// API Gateway clients do not always set Content-Type; the body is
	// decoded as JSON regardless.
	req := httptest.NewRequest("POST", "/chat", strings.NewReader(`{"message": "What is photosynthesis?", "sessionId": "s1"}`))
	res, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	require.NotNil(t, svc.gotRequest)
	assert.Equal(t, "What is photosynthesis?", svc.gotRequest.Message)
	assert.Equal(t, "s1", svc.gotRequest.SessionID)
}

func TestChatMalformedBody(t *testing.T) {
	app := newTestApp(&fakeTutorService{})

	req := httptest.NewRequest("POST", "/chat", strings.NewReader(`{"message": `))
	res, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, res.StatusCode)
	body := decodeBody(t, res.Body)
	assert.Contains(t, body["error"], "Internal server error")
}

func TestChatNullMaterialAndSources(t *testing.T) {
	svc := &fakeTutorService{chatRes: &dto.ChatResponse{
		Response:  "Let's figure it out together.",
		SessionID: "s1",
		Sources: []dto.SourceDTO{{
			Content:      "passage",
			Score:        0.88,
			Source:       "s3://kb/mitosis.txt",
			DocumentName: "mitosis.txt",
		}},
	}}
	app := newTestApp(svc)

	req := httptest.NewRequest("POST", "/chat", strings.NewReader(`{"message": "Quiz me on mitosis", "sessionId": "s1"}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	body := decodeBody(t, res.Body)

	// relevantMaterialId is always present, null when no topic dominates
	val, present := body["relevantMaterialId"]
	assert.True(t, present)
	assert.Nil(t, val)

	sources := body["sources"].([]interface{})
	require.Len(t, sources, 1)
	entry := sources[0].(map[string]interface{})
	assert.Equal(t, "mitosis.txt", entry["documentName"])
	assert.Equal(t, 0.88, entry["score"])
}

func TestChatServiceFailure(t *testing.T) {
	svc := &fakeTutorService{chatErr: errors.New("model invocation: timeout")}
	app := newTestApp(svc)

	req := httptest.NewRequest("POST", "/chat", strings.NewReader(`{"message": "hello"}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, res.StatusCode)
	body := decodeBody(t, res.Body)
	assert.Contains(t, body["error"], "Internal server error")
}

func TestChatCatchAllRoute(t *testing.T) {
	svc := &fakeTutorService{chatRes: &dto.ChatResponse{Response: "hi", SessionID: "s1"}}
	app := newTestApp(svc)

	req := httptest.NewRequest("POST", "/anything/else", strings.NewReader(`{"message": "hello", "sessionId": "s1"}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}

func TestMaterialsSuccess(t *testing.T) {
	catalog := []byte(`{"materials": [{"id": "mitosis"}]}`)
	app := newTestApp(&fakeTutorService{materials: catalog})

	// Any GET path mentioning the catalog is served the same way.
	for _, path := range []string{"/materials", "/api/materials", "/materials/extra"} {
		req := httptest.NewRequest("GET", path, nil)
		res, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, res.StatusCode, path)
		assert.Contains(t, res.Header.Get("Content-Type"), "application/json")
		assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))

		raw, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		assert.Equal(t, catalog, raw, path)
	}
}

func TestMaterialsRouteDoesNotShadowChat(t *testing.T) {
	svc := &fakeTutorService{chatRes: &dto.ChatResponse{Response: "hi", SessionID: "s1"}}
	app := newTestApp(svc)

	// A GET without /materials in the path falls through to the chat
	// catch-all, which rejects it for lacking a message.
	req := httptest.NewRequest("GET", "/something", nil)
	res, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	body := decodeBody(t, res.Body)
	assert.Equal(t, "Message is required", body["error"])
}

func TestMaterialsNotFound(t *testing.T) {
	app := newTestApp(&fakeTutorService{materialsErr: service.ErrMaterialsNotFound})

	req := httptest.NewRequest("GET", "/materials", nil)
	res, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
	body := decodeBody(t, res.Body)
	assert.Equal(t, "Materials file not found", body["error"])
}

func TestMaterialsUnexpectedFailure(t *testing.T) {
	app := newTestApp(&fakeTutorService{materialsErr: errors.New("disk on fire")})

	req := httptest.NewRequest("GET", "/materials", nil)
	res, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, res.StatusCode)
	body := decodeBody(t, res.Body)
	assert.Contains(t, body["error"], "Error loading materials")
}

func TestCORSPreflight(t *testing.T) {
	app := newTestApp(&fakeTutorService{})

	for _, path := range []string{"/chat", "/materials", "/whatever"} {
		req := httptest.NewRequest("OPTIONS", path, nil)
		res, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, res.StatusCode, path)
		assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, POST, OPTIONS", res.Header.Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Content-Type", res.Header.Get("Access-Control-Allow-Headers"))
		assert.Equal(t, "86400", res.Header.Get("Access-Control-Max-Age"))

		raw, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		assert.Empty(t, raw)
	}
}
