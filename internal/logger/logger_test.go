package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func swapObserved(t *testing.T) *observer.ObservedLogs {
	core, observed := observer.New(zapcore.InfoLevel)
	original := log
	Set(zap.New(core))
	t.Cleanup(func() { Set(original) })
	return observed
}

func TestInit(t *testing.T) {
	original := log
	defer Set(original)

	t.Run("Production", func(t *testing.T) {
		Init("production")
		assert.NotNil(t, log)
	})

	t.Run("Development", func(t *testing.T) {
		Init("development")
		assert.NotNil(t, log)
	})
}

func TestL(t *testing.T) {
	original := log
	defer Set(original)

	// Force nil to test lazy initialization
	Set(nil)
	t.Setenv("APP_ENV", "test")

	assert.NotNil(t, L())
	assert.NotNil(t, log)
}

func TestContextFunctions(t *testing.T) {
	ctx := context.Background()
	reqID := "test-request-id-123"

	newCtx := WithRequestID(ctx, reqID)
	assert.Equal(t, reqID, newCtx.Value(requestIDKey))
	assert.Equal(t, reqID, RequestIDFrom(newCtx))
	assert.Equal(t, "", RequestIDFrom(ctx))
}

func TestFromCtx(t *testing.T) {
	observed := swapObserved(t)

	t.Run("WithRequestIDAndUser", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-abc-123")
		ctx = WithUser(ctx, "user-1", "cook")

		FromCtx(ctx).Info("order advanced")

		logs := observed.TakeAll()
		assert.Len(t, logs, 1)
		fields := logs[0].ContextMap()
		assert.Equal(t, "req-abc-123", fields["request_id"])
		assert.Equal(t, "user-1", fields["user_id"])
		assert.Equal(t, "cook", fields["role"])
	})

	t.Run("Anonymous", func(t *testing.T) {
		FromCtx(context.Background()).Info("menu listed")

		logs := observed.TakeAll()
		assert.Len(t, logs, 1)
		fields := logs[0].ContextMap()
		_, hasReq := fields["request_id"]
		_, hasUser := fields["user_id"]
		assert.False(t, hasReq)
		assert.False(t, hasUser)
	})
}

func TestSync(t *testing.T) {
	assert.NotPanics(t, func() {
		Sync()
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, RequestIDFrom(r.Context()))
	}))

	t.Run("Generates ID when missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/menu", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	})

	t.Run("Preserves existing ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/menu", nil)
		req.Header.Set(RequestIDHeader, "test-id-123")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "test-id-123", w.Header().Get(RequestIDHeader))
	})
}
