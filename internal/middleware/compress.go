package middleware

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

const (
	acceptEncodingHeader  = "Accept-Encoding"
	contentEncodingHeader = "Content-Encoding"
	contentLengthHeader   = "Content-Length"
	contentTypeHeader     = "Content-Type"
	varyHeader            = "Vary"
	gzipEncoding          = "gzip"
)

var compressibleTypes = []string{
	"application/json",
	"text/",
}

var gzipWriterPool = sync.Pool{
	New: func() interface{} {
		return gzip.NewWriter(io.Discard)
	},
}

// gzipResponseWriter сжимает ответ, если его Content-Type известен как сжимаемый.
// Решение принимается при отправке заголовка.
type gzipResponseWriter struct {
	http.ResponseWriter
	gz          *gzip.Writer
	decided     bool
	compressing bool
}

func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	if !w.decided {
		w.decide()
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *gzipResponseWriter) decide() {
	w.decided = true

	contentType := w.Header().Get(contentTypeHeader)
	for _, t := range compressibleTypes {
		if strings.HasPrefix(contentType, t) {
			w.compressing = true
			break
		}
	}

	if !w.compressing {
		return
	}

	w.Header().Set(contentEncodingHeader, gzipEncoding)
	w.Header().Add(varyHeader, acceptEncodingHeader)
	w.Header().Del(contentLengthHeader)
	w.gz.Reset(w.ResponseWriter)
}

func (w *gzipResponseWriter) Write(p []byte) (int, error) {
	if !w.decided {
		if w.Header().Get(contentTypeHeader) == "" {
			w.Header().Set(contentTypeHeader, http.DetectContentType(p))
		}
		w.WriteHeader(http.StatusOK)
	}

	if !w.compressing {
		return w.ResponseWriter.Write(p)
	}

	n, err := w.gz.Write(p)

	if err != nil {
		return 0, fmt.Errorf("write compressed: %w", err)
	}

	return n, nil
}

func (w *gzipResponseWriter) close() error {
	if !w.compressing {
		return nil
	}
	return w.gz.Close()
}

// gzipBody распаковывает тело запроса и закрывает его вместе с распаковщиком.
type gzipBody struct {
	*gzip.Reader
	body io.ReadCloser
}

func (b gzipBody) Close() error {
	return errors.Join(b.Reader.Close(), b.body.Close())
}

// ResponseEncoder сжимает JSON и текстовые ответы клиентов, которые принимают gzip.
func ResponseEncoder(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get(acceptEncodingHeader), gzipEncoding) {
			h.ServeHTTP(w, r)
			return
		}

		gz, ok := gzipWriterPool.Get().(*gzip.Writer)
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		defer gzipWriterPool.Put(gz)

		gw := &gzipResponseWriter{ResponseWriter: w, gz: gz}
		defer func() {
			_ = gw.close()
		}()

		h.ServeHTTP(gw, r)
	})
}

// RequestDecoder распаковывает тело запроса, сжатое gzip.
func RequestDecoder(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get(contentEncodingHeader), gzipEncoding) {
			h.ServeHTTP(w, r)
			return
		}

		gz, err := gzip.NewReader(r.Body)
		if err != nil {
			http.Error(w, "invalid gzip body", http.StatusBadRequest)
			return
		}

		body := gzipBody{Reader: gz, body: r.Body}
		defer func() { _ = body.Close() }()

		r.Body = body
		r.Header.Del(contentEncodingHeader)
		r.Header.Del(contentLengthHeader)
		r.ContentLength = -1

		h.ServeHTTP(w, r)
	})
}
