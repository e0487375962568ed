package config

import (
	"Lost-Found-Registry/domain"
	"Lost-Found-Registry/internal/database"
	"Lost-Found-Registry/internal/utils/mailing"
	"Lost-Found-Registry/pkg/admin"
	"Lost-Found-Registry/pkg/jwt"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type outbox struct {
	mu    sync.Mutex
	token string
	png   []byte
	sent  int
}

func (o *outbox) Send(_ context.Context, mail mailing.Mail) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, a := range mail.Attachments {
		data, err := os.ReadFile(a.Path)
		if err != nil {
			return err
		}
		if strings.HasSuffix(a.Path, ".png") {
			o.png = data
		} else {
			o.token = string(data)
		}
	}
	o.sent++
	return nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Item    json.RawMessage `json:"item"`
}

type testServer struct {
	t     *testing.T
	app   *fiber.App
	mail  *outbox
	token string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("LOG_FILE", filepath.Join(dir, "logs", "app.log"))
	t.Setenv("UPLOADS_DIR", filepath.Join(dir, "uploads"))
	t.Setenv("RATE_LIMIT", "1000")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_SECRET", "")
	t.Setenv("AWS_S3_BUCKET", "")

	db := database.NewTestDB(t)
	jwtService, err := jwt.NewJWTServiceWithSecret("test-secret", time.Hour)
	require.NoError(t, err)
	adminService := admin.NewAdminService(admin.NewAdminRepository(db), jwtService)
	_, err = adminService.CreateAdmin(context.Background(), domain.CreateAdminRequest{
		Name: "Desk", Email: "desk@example.com", Password: "password1",
	})
	require.NoError(t, err)

	mail := &outbox{}
	app, err := NewAppWithMailer(db, mail)
	require.NoError(t, err)

	s := &testServer{t: t, app: app, mail: mail}
	res := s.do(http.MethodPost, "/api/v1/admin/login", map[string]string{
		"email": "desk@example.com", "password": "password1",
	}, http.StatusOK)
	var login domain.AdminLoginResponse
	require.NoError(t, json.Unmarshal(res.Data, &login))
	s.token = login.Token
	return s
}

func (s *testServer) send(req *http.Request, wantStatus int) envelope {
	s.t.Helper()
	if s.token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+s.token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	require.Equal(s.t, wantStatus, resp.StatusCode, string(body))

	var env envelope
	require.NoError(s.t, json.Unmarshal(body, &env), string(body))
	return env
}

func (s *testServer) do(method, path string, body any, wantStatus int) envelope {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return s.send(req, wantStatus)
}

func (s *testServer) createItem(title string) domain.ItemResponse {
	s.t.Helper()
	res := s.do(http.MethodPost, "/api/v1/items", map[string]string{
		"title":     title,
		"category":  "Accessories",
		"location":  "Library",
		"date":      "2024-01-10",
		"firstName": "Sam",
		"email":     "sam@example.com",
	}, http.StatusCreated)
	var it domain.ItemResponse
	require.NoError(s.t, json.Unmarshal(res.Data, &it))
	return it
}

func claimBody(qrData string) map[string]string {
	return map[string]string{
		"qrData":      qrData,
		"firstName":   "Jo",
		"lastName":    "Lee",
		"email":       "a@b.com",
		"phoneNumber": "555-1234",
	}
}

func TestClaimWorkflowOverHTTP(t *testing.T) {
	s := newTestServer(t)

	wallet := s.createItem("Wallet")
	assert.Equal(t, "lost", wallet.Status)
	assert.Equal(t, domain.DefaultDescription, wallet.Description)
	assert.Empty(t, wallet.Images)

	res := s.do(http.MethodPost, "/api/v1/admin/send-verification", map[string]string{
		"itemId": wallet.ID, "email": "a@b.com",
	}, http.StatusOK)
	assert.True(t, res.Success)
	assert.Equal(t, "QR code and text file sent successfully", res.Message)
	assert.Contains(t, s.mail.token, "Item ID: "+wallet.ID)

	res = s.do(http.MethodPost, "/api/v1/admin/verify-claim", claimBody(s.mail.token), http.StatusOK)
	assert.True(t, res.Success)
	assert.Equal(t, "Item claimed successfully", res.Message)
	var claimed domain.ClaimedItemResponse
	require.NoError(t, json.Unmarshal(res.Item, &claimed))
	assert.Equal(t, wallet.ID, claimed.ID)
	assert.Equal(t, "claimed", claimed.Status)
	assert.Equal(t, "Jo", claimed.Claimant.FirstName)

	res = s.do(http.MethodPost, "/api/v1/admin/verify-claim", claimBody(s.mail.token), http.StatusConflict)
	assert.False(t, res.Success)

	res = s.do(http.MethodGet, "/api/v1/admin/items/"+wallet.ID, nil, http.StatusOK)
	var stored domain.ItemResponse
	require.NoError(t, json.Unmarshal(res.Data, &stored))
	require.NotNil(t, stored.Claimant)
	require.NotNil(t, stored.QRCode)
	assert.NotEmpty(t, stored.QRCode.Base64)
	assert.Equal(t, "a@b.com", stored.Claimant.Email)

	res = s.do(http.MethodPost, "/api/v1/admin/items/"+wallet.ID+"/return", nil, http.StatusOK)
	require.NoError(t, json.Unmarshal(res.Data, &stored))
	assert.Equal(t, "returned", stored.Status)
}

func TestPublicViewsHideClaimQRCode(t *testing.T) {
	s := newTestServer(t)
	wallet := s.createItem("Wallet")

	s.do(http.MethodPost, "/api/v1/admin/send-verification", map[string]string{
		"itemId": wallet.ID, "email": "a@b.com",
	}, http.StatusOK)

	res := s.do(http.MethodGet, "/api/v1/admin/items/"+wallet.ID, nil, http.StatusOK)
	var detail domain.ItemResponse
	require.NoError(t, json.Unmarshal(res.Data, &detail))
	require.NotNil(t, detail.QRCode)
	require.NotEmpty(t, detail.QRCode.Base64)

	adminToken := s.token
	s.token = ""
	for _, path := range []string{
		"/api/v1/items/" + wallet.ID,
		"/api/v1/items",
		"/api/v1/items/search?query=wallet",
		"/api/v1/items/filter?category=Accessories",
	} {
		res = s.do(http.MethodGet, path, nil, http.StatusOK)
		assert.NotContains(t, string(res.Data), "qrCode", path)
		assert.NotContains(t, string(res.Data), detail.QRCode.Base64[:32], path)
	}
	s.do(http.MethodGet, "/api/v1/admin/items/"+wallet.ID, nil, http.StatusUnauthorized)
	s.token = adminToken
}

func TestNewAppRequiresJWTSecret(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LOG_FILE", filepath.Join(dir, "logs", "app.log"))
	t.Setenv("JWT_SECRET", "")

	app, err := NewAppWithMailer(database.NewTestDB(t), &outbox{})
	assert.ErrorIs(t, err, domain.ErrJWTSecretMissing)
	assert.Nil(t, app)
}

func TestVerifyClaimWithUploadedImage(t *testing.T) {
	s := newTestServer(t)
	umbrella := s.createItem("Umbrella")

	s.do(http.MethodPost, "/api/v1/admin/send-verification", map[string]string{
		"itemId": umbrella.ID, "email": "a@b.com",
	}, http.StatusOK)
	require.NotEmpty(t, s.mail.png)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range claimBody("") {
		if k != "qrData" {
			require.NoError(t, w.WriteField(k, v))
		}
	}
	part, err := w.CreateFormFile("qrCode", "scan.png")
	require.NoError(t, err)
	_, err = part.Write(s.mail.png)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/verify-claim", &body)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	res := s.send(req, http.StatusOK)

	var claimed domain.ClaimedItemResponse
	require.NoError(t, json.Unmarshal(res.Item, &claimed))
	assert.Equal(t, umbrella.ID, claimed.ID)
	assert.Equal(t, "claimed", claimed.Status)
}

func TestClaimErrorsOverHTTP(t *testing.T) {
	s := newTestServer(t)

	s.do(http.MethodPost, "/api/v1/admin/send-verification", map[string]string{
		"itemId": "missing", "email": "a@b.com",
	}, http.StatusNotFound)
	assert.Zero(t, s.mail.sent)

	s.do(http.MethodPost, "/api/v1/admin/send-verification", map[string]string{
		"itemId": "missing",
	}, http.StatusBadRequest)

	res := s.do(http.MethodPost, "/api/v1/admin/verify-claim", claimBody("Title: Wallet"), http.StatusBadRequest)
	assert.Equal(t, domain.ErrMalformedToken.Error(), res.Error)

	s.do(http.MethodPost, "/api/v1/admin/verify-claim", claimBody("Item ID: missing"), http.StatusNotFound)

	incomplete := claimBody("Item ID: missing")
	delete(incomplete, "phoneNumber")
	s.do(http.MethodPost, "/api/v1/admin/verify-claim", incomplete, http.StatusBadRequest)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)
	wallet := s.createItem("Wallet")
	s.token = ""

	s.do(http.MethodPost, "/api/v1/admin/send-verification", map[string]string{
		"itemId": wallet.ID, "email": "a@b.com",
	}, http.StatusUnauthorized)
	s.do(http.MethodPost, "/api/v1/admin/verify-claim", claimBody("Item ID: "+wallet.ID), http.StatusUnauthorized)
	s.do(http.MethodDelete, "/api/v1/items/"+wallet.ID, nil, http.StatusUnauthorized)

	s.do(http.MethodPost, "/api/v1/admin/login", map[string]string{
		"email": "desk@example.com", "password": "wrong-password",
	}, http.StatusUnauthorized)
}

func TestItemQueriesOverHTTP(t *testing.T) {
	s := newTestServer(t)
	s.createItem("Blue Umbrella")
	s.createItem("Wallet")

	res := s.do(http.MethodGet, "/api/v1/items", nil, http.StatusOK)
	var items []domain.ItemResponse
	require.NoError(t, json.Unmarshal(res.Data, &items))
	assert.Len(t, items, 2)

	res = s.do(http.MethodGet, "/api/v1/items/search?query=umbrella", nil, http.StatusOK)
	require.NoError(t, json.Unmarshal(res.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Blue Umbrella", items[0].Title)

	s.do(http.MethodGet, "/api/v1/items/search", nil, http.StatusBadRequest)

	res = s.do(http.MethodGet, "/api/v1/items/filter?category=Accessories&status=lost", nil, http.StatusOK)
	require.NoError(t, json.Unmarshal(res.Data, &items))
	assert.Len(t, items, 2)

	res = s.do(http.MethodPut, "/api/v1/items/"+items[0].ID, map[string]string{"status": "claimed"}, http.StatusConflict)
	assert.False(t, res.Success)

	s.do(http.MethodDelete, "/api/v1/items/"+items[0].ID, nil, http.StatusOK)
	s.do(http.MethodGet, "/api/v1/items/"+items[0].ID, nil, http.StatusNotFound)
}
