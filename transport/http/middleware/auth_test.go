package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"travelbook/infras/jwt"
	jwtMocks "travelbook/infras/jwt/mocks"
	"travelbook/infras/otel/mocks"
	"travelbook/shared/constant"
	"travelbook/transport/http/middleware"
)

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	auth := middleware.NewAuthMiddleware(mockJWT, mockOtel)

	tests := []struct {
		name       string
		header     string
		setupMock  func()
		wantStatus int
		wantNext   bool
	}{
		{
			name:   "valid token reaches the handler",
			header: "Bearer valid-token",
			setupMock: func() {
				mockJWT.EXPECT().
					ValidateToken(gomock.Any(), "valid-token").
					Return(&jwt.Claims{UserID: "user-1", Email: "jane@example.com"}, nil)
			},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "missing header",
			header:     "",
			setupMock:  func() {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			header:     "Basic abc",
			setupMock:  func() {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "expired token",
			header: "Bearer expired-token",
			setupMock: func() {
				mockJWT.EXPECT().
					ValidateToken(gomock.Any(), "expired-token").
					Return(nil, jwt.ErrExpiredToken)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "claims without subject",
			header: "Bearer empty-subject",
			setupMock: func() {
				mockJWT.EXPECT().
					ValidateToken(gomock.Any(), "empty-subject").
					Return(&jwt.Claims{}, nil)
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			nextCalled := false

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true

				userID, _ := r.Context().Value(constant.ContextKeyUserID).(string)
				assert.Equal(t, "user-1", userID)

				claims := auth.ClaimsFromContext(r.Context())
				assert.NotNil(t, claims)
				assert.Equal(t, "user-1", claims.UserID)

				w.WriteHeader(http.StatusOK)
			})

			r := httptest.NewRequest("GET", "/api/bookings", nil)
			if tt.header != "" {
				r.Header.Set(constant.RequestHeaderAuthorization, tt.header)
			}

			w := httptest.NewRecorder()
			auth.Auth(next).ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
		})
	}
}
