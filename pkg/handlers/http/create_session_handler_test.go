package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/CloudArcade/GameGate/pkg/domain/session"
	"github.com/CloudArcade/GameGate/pkg/infra/gateway"
	gatewayMocks "github.com/CloudArcade/GameGate/pkg/infra/gateway/mocks"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func intPtr(i int) *int { return &i }

func newSessionApp(client gateway.Client, gatewayEnabled bool) *fiber.App {
	handler := NewCreateSessionHandler(testLogger(), client, gatewayEnabled)
	app := fiber.New()
	app.Post("/1.0/sessions/", handler.Handle)
	return app
}

func postSession(t *testing.T, app *fiber.App, body []byte) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", "/1.0/sessions/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeErrorMsg(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		ErrorMsg string `json:"error_msg"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.ErrorMsg
}

func TestCreateSessionHandler_GatewayDisabled(t *testing.T) {
	client := new(gatewayMocks.Client)
	app := newSessionApp(client, false)

	resp := postSession(t, app, []byte(`{"game": "pong"}`))

	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "no gateway connected", decodeErrorMsg(t, resp))
	client.AssertNotCalled(t, "CreateSession")
}

func TestCreateSessionHandler_NoBody(t *testing.T) {
	client := new(gatewayMocks.Client)
	app := newSessionApp(client, true)

	resp := postSession(t, app, nil)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid input", decodeErrorMsg(t, resp))
	client.AssertNotCalled(t, "CreateSession")
}

func TestCreateSessionHandler_EmptyObject(t *testing.T) {
	client := new(gatewayMocks.Client)
	app := newSessionApp(client, true)

	resp := postSession(t, app, []byte(`{}`))

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid input", decodeErrorMsg(t, resp))
}

func TestCreateSessionHandler_EmptyGame(t *testing.T) {
	client := new(gatewayMocks.Client)
	app := newSessionApp(client, true)

	resp := postSession(t, app, []byte(`{"game": ""}`))

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid game selected", decodeErrorMsg(t, resp))
	client.AssertNotCalled(t, "CreateSession")
}

func TestCreateSessionHandler_GameNotAString(t *testing.T) {
	client := new(gatewayMocks.Client)
	app := newSessionApp(client, true)

	resp := postSession(t, app, []byte(`{"game": 42}`))

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid game selected", decodeErrorMsg(t, resp))
}

func TestCreateSessionHandler_Success(t *testing.T) {
	client := new(gatewayMocks.Client)
	client.On("CreateSession", mock.Anything, session.NewCreateRequest("pong")).
		Return(&gateway.Response{
			StatusCode: intPtr(201),
			Metadata:   json.RawMessage(`{"id": "abc"}`),
		}, nil)

	app := newSessionApp(client, true)
	resp := postSession(t, app, []byte(`{"game": "pong"}`))

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": "abc"}`, string(body))
	client.AssertExpectations(t)
}

func TestCreateSessionHandler_UpstreamFailureStatus(t *testing.T) {
	client := new(gatewayMocks.Client)
	client.On("CreateSession", mock.Anything, mock.Anything).
		Return(&gateway.Response{StatusCode: intPtr(500)}, nil)

	app := newSessionApp(client, true)
	resp := postSession(t, app, []byte(`{"game": "pong"}`))

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "failed to create session", decodeErrorMsg(t, resp))
}

func TestCreateSessionHandler_UpstreamStatusMissing(t *testing.T) {
	client := new(gatewayMocks.Client)
	client.On("CreateSession", mock.Anything, mock.Anything).
		Return(&gateway.Response{Metadata: json.RawMessage(`{"id": "abc"}`)}, nil)

	app := newSessionApp(client, true)
	resp := postSession(t, app, []byte(`{"game": "pong"}`))

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "failed to create session", decodeErrorMsg(t, resp))
}

func TestCreateSessionHandler_TransportFailure(t *testing.T) {
	client := new(gatewayMocks.Client)
	client.On("CreateSession", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	app := newSessionApp(client, true)
	resp := postSession(t, app, []byte(`{"game": "pong"}`))

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "failed to create session", decodeErrorMsg(t, resp))
}
