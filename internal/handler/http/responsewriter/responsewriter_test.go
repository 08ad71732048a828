package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	require.NotNil(t, wrapped)
	assert.Equal(t, http.StatusOK, wrapped.StatusCode())
	assert.Equal(t, 0, wrapped.BytesWritten())
	assert.False(t, wrapped.Written())
}

func TestWrap_Idempotent(t *testing.T) {
	wrapped := Wrap(httptest.NewRecorder())
	assert.Same(t, wrapped, Wrap(wrapped))
}

func TestResponseWriter_WriteHeader(t *testing.T) {
	for _, code := range []int{http.StatusOK, http.StatusNotFound, http.StatusBadGateway} {
		t.Run(http.StatusText(code), func(t *testing.T) {
			rec := httptest.NewRecorder()
			wrapped := Wrap(rec)

			wrapped.WriteHeader(code)

			assert.Equal(t, code, wrapped.StatusCode())
			assert.True(t, wrapped.Written())
			assert.Equal(t, code, rec.Code)
		})
	}
}

func TestResponseWriter_WriteHeader_FirstCallWins(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	wrapped.WriteHeader(http.StatusNotFound)
	wrapped.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusNotFound, wrapped.StatusCode())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResponseWriter_Write(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	n, err := wrapped.Write([]byte(`{"products":[]}`))
	require.NoError(t, err)
	_, err = wrapped.Write([]byte("\n"))
	require.NoError(t, err)

	assert.Equal(t, 15, n)
	assert.Equal(t, 16, wrapped.BytesWritten())
	assert.Equal(t, http.StatusOK, wrapped.StatusCode())
	assert.Equal(t, "{\"products\":[]}\n", rec.Body.String())
}

func TestResponseWriter_Flush(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	wrapped.Flush()

	assert.True(t, rec.Flushed)
	assert.True(t, wrapped.Written())
}

func TestResponseWriter_Unwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	assert.Equal(t, rec, Wrap(rec).Unwrap())
}
