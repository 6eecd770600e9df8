package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pressroom/internal/featureflags"
	"pressroom/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func postJSON(t *testing.T, path string, body any, headers map[string]string) *http.Request {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(m *testMocks)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{"email": "new@example.com", "password": "password123"},
			mockSetup: func(m *testMocks) {
				m.users.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, nil)
				m.users.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Duplicate Email",
			body: map[string]string{"email": "exists@example.com", "password": "password123"},
			mockSetup: func(m *testMocks) {
				m.users.On("GetByEmail", mock.Anything, "exists@example.com").Return(&models.User{ID: 1}, nil)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "Invalid Email",
			body:           map[string]string{"email": "nope", "password": "password123"},
			mockSetup:      func(m *testMocks) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Short Password",
			body:           map[string]string{"email": "new@example.com", "password": "short"},
			mockSetup:      func(m *testMocks) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, app, mocks := newTestServer(t)
			tt.mockSetup(mocks)

			resp, err := app.Test(postJSON(t, "/api/auth/register", tt.body, nil))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestRegisterIgnoresRequestedRole(t *testing.T) {
	_, app, mocks := newTestServer(t)

	var created *models.User
	mocks.users.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, nil)
	mocks.users.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*models.User)
	}).Return(nil)

	body := map[string]string{"email": "new@example.com", "password": "password123", "role": "admin"}
	resp, err := app.Test(postJSON(t, "/api/auth/register", body, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotNil(t, created)
	assert.Equal(t, models.RoleReader, created.Role)
}

func TestRegisterByAdmin(t *testing.T) {
	t.Run("admin can provision an editor", func(t *testing.T) {
		s, app, mocks := newTestServer(t)
		mocks.users.On("GetByEmail", mock.Anything, "editor@example.com").Return(nil, nil)
		mocks.users.On("Create", mock.Anything, mock.Anything).Return(nil)

		body := map[string]string{"email": "editor@example.com", "password": "password123", "role": "editor"}
		headers := map[string]string{"Authorization": bearerFor(t, s, 1, models.RoleAdmin)}
		resp, err := app.Test(postJSON(t, "/api/auth/register-admin", body, headers))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("editor is forbidden", func(t *testing.T) {
		s, app, _ := newTestServer(t)
		body := map[string]string{"email": "x@example.com", "password": "password123", "role": "author"}
		headers := map[string]string{"Authorization": bearerFor(t, s, 2, models.RoleEditor)}
		resp, err := app.Test(postJSON(t, "/api/auth/register-admin", body, headers))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("unauthenticated is rejected", func(t *testing.T) {
		_, app, _ := newTestServer(t)
		body := map[string]string{"email": "x@example.com", "password": "password123"}
		resp, err := app.Test(postJSON(t, "/api/auth/register-admin", body, nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	digest, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{ID: 5, Email: "user@example.com", Password: string(digest), Role: models.RoleAuthor}

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(m *testMocks)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{"email": "user@example.com", "password": "password123"},
			mockSetup: func(m *testMocks) {
				m.users.On("GetByEmail", mock.Anything, "user@example.com").Return(user, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Wrong Password",
			body: map[string]string{"email": "user@example.com", "password": "wrong-password"},
			mockSetup: func(m *testMocks) {
				m.users.On("GetByEmail", mock.Anything, "user@example.com").Return(user, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Unknown Email",
			body: map[string]string{"email": "ghost@example.com", "password": "password123"},
			mockSetup: func(m *testMocks) {
				m.users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, app, mocks := newTestServer(t)
			tt.mockSetup(mocks)

			resp, err := app.Test(postJSON(t, "/api/auth/login", tt.body, nil))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				var body map[string]any
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.NotEmpty(t, body["token"])
			}
		})
	}
}

func TestWhoAmI(t *testing.T) {
	s, app, mocks := newTestServer(t)
	mocks.users.On("GetByID", mock.Anything, uint(5)).
		Return(&models.User{ID: 5, Email: "user@example.com", Role: models.RoleAuthor}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/whoami", nil)
	req.Header.Set("Authorization", bearerFor(t, s, 5, models.RoleAuthor))
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(5), body["user_id"])
	assert.Equal(t, "author", body["role"])
}

func TestWhoAmIUnauthenticated(t *testing.T) {
	_, app, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/whoami", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterClosedByFeatureFlag(t *testing.T) {
	s, app, _ := newTestServer(t)
	s.flags = featureflags.NewManager("registration_closed=on")

	body := map[string]string{"email": "new@example.com", "password": "password123"}
	resp, err := app.Test(postJSON(t, "/api/auth/register", body, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var errBody models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	assert.Equal(t, models.CodeForbidden, errBody.Code)
}
