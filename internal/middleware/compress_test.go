package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseEncoder(t *testing.T) {
	const body = `{"ids":["a","b","c"]}`

	t.Run("compress json response", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(acceptEncodingHeader, gzipEncoding)
		response := httptest.NewRecorder()
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(contentTypeHeader, "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, body)
		})

		ResponseEncoder(handler).ServeHTTP(response, request)

		assert.Equal(t, http.StatusCreated, response.Code)
		assert.Equal(t, gzipEncoding, response.Header().Get(contentEncodingHeader))
		assert.Equal(t, body, decompress(t, response.Body))
	})

	t.Run("do not compress binary response", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(acceptEncodingHeader, gzipEncoding)
		response := httptest.NewRecorder()
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(contentTypeHeader, "application/octet-stream")
			_, _ = w.Write([]byte{1, 2, 3})
		})

		ResponseEncoder(handler).ServeHTTP(response, request)

		assert.Empty(t, response.Header().Get(contentEncodingHeader))
		assert.Equal(t, []byte{1, 2, 3}, response.Body.Bytes())
	})

	t.Run("client does not accept gzip", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		response := httptest.NewRecorder()
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(contentTypeHeader, "application/json")
			_, _ = io.WriteString(w, body)
		})

		ResponseEncoder(handler).ServeHTTP(response, request)

		assert.Empty(t, response.Header().Get(contentEncodingHeader))
		assert.Equal(t, body, response.Body.String())
	})
}

func TestRequestDecoder(t *testing.T) {
	t.Run("decompress request body", func(t *testing.T) {
		const body = `{"by":10}`
		request := httptest.NewRequest(http.MethodPost, "/", compress(t, body))
		request.Header.Set(contentEncodingHeader, gzipEncoding)
		response := httptest.NewRecorder()
		var got string
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			got = string(data)
			assert.Empty(t, r.Header.Get(contentEncodingHeader))
		})

		RequestDecoder(handler).ServeHTTP(response, request)

		assert.Equal(t, body, got)
	})

	t.Run("invalid gzip body", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("plain"))
		request.Header.Set(contentEncodingHeader, gzipEncoding)
		response := httptest.NewRecorder()
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

		RequestDecoder(handler).ServeHTTP(response, request)

		assert.Equal(t, http.StatusBadRequest, response.Code)
	})
}

func compress(t *testing.T, s string) io.Reader {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := io.WriteString(gz, s)
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	return &buf
}

func decompress(t *testing.T, r io.Reader) string {
	t.Helper()
	gz, err := gzip.NewReader(r)
	require.NoError(t, err)
	data, err := io.ReadAll(gz)
	require.NoError(t, err)
	return string(data)
}
