package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"travelbook/config"
	"travelbook/infras/otel/mocks"
	cacheMocks "travelbook/shared/cache/mocks"
	"travelbook/shared/constant"
	"travelbook/transport/http/middleware"
)

func TestAppMiddleware_RateLimit(t *testing.T) {
	newApp := func(cache *cacheMocks.MockRedisCache, enable bool) middleware.AppMiddleware {
		cfg := &config.Config{}
		cfg.App.RateLimiter.Enable = enable
		cfg.App.RateLimiter.MaxRequests = 5
		cfg.App.RateLimiter.WindowSeconds = 60

		return middleware.NewAppMiddleware(mocks.NewOtel(), cfg, cache)
	}

	serve := func(app middleware.AppMiddleware) (*httptest.ResponseRecorder, bool) {
		nextCalled := false

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextCalled = true

			w.WriteHeader(http.StatusOK)
		})

		r := httptest.NewRequest("GET", "/api/services", nil)
		r.RemoteAddr = "10.0.0.7:51234"

		w := httptest.NewRecorder()
		app.RateLimit(next).ServeHTTP(w, r)

		return w, nextCalled
	}

	t.Run("disabled limiter never touches the cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockCache := cacheMocks.NewMockRedisCache(ctrl)

		w, nextCalled := serve(newApp(mockCache, false))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, nextCalled)
	})

	t.Run("request under the limit passes with counter headers", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockCache := cacheMocks.NewMockRedisCache(ctrl)
		mockCache.EXPECT().
			Increment(gomock.Any(), "limiter:10.0.0.7", 60).
			Return(int64(3), nil)

		w, nextCalled := serve(newApp(mockCache, true))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, nextCalled)
		assert.Equal(t, "5", w.Header().Get(constant.RequestHeaderRateLimit))
		assert.Equal(t, "2", w.Header().Get(constant.RequestHeaderRateLimitRemaining))
		assert.Equal(t, "60", w.Header().Get(constant.RequestHeaderRateLimitWindow))
	})

	t.Run("request over the limit is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockCache := cacheMocks.NewMockRedisCache(ctrl)
		mockCache.EXPECT().
			Increment(gomock.Any(), "limiter:10.0.0.7", 60).
			Return(int64(6), nil)

		w, nextCalled := serve(newApp(mockCache, true))

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.False(t, nextCalled)
	})

	t.Run("cache failure lets the request through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockCache := cacheMocks.NewMockRedisCache(ctrl)
		mockCache.EXPECT().
			Increment(gomock.Any(), "limiter:10.0.0.7", 60).
			Return(int64(0), errors.New("redis down"))

		w, nextCalled := serve(newApp(mockCache, true))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, nextCalled)
	})
}
