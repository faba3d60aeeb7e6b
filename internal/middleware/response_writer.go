package middleware

import (
	"net/http"
)

const defaultStatus = http.StatusOK

// StatusResponseWriter records the status code and body size for the
// request logger.
type StatusResponseWriter struct {
	http.ResponseWriter

	status        int
	headerWritten bool
	bytesSent     int64
}

func NewStatusResponseWriter(w http.ResponseWriter) *StatusResponseWriter {
	return &StatusResponseWriter{
		ResponseWriter: w,
		status:         defaultStatus,
	}
}

func (w *StatusResponseWriter) WriteHeader(statusCode int) {
	if w.headerWritten {
		return
	}
	w.ResponseWriter.WriteHeader(statusCode)
	w.status = statusCode
	w.headerWritten = true
}

func (w *StatusResponseWriter) Write(b []byte) (int, error) {
	if !w.headerWritten {
		w.WriteHeader(defaultStatus)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytesSent += int64(n)
	return n, err
}

func (w *StatusResponseWriter) Status() int {
	return w.status
}

func (w *StatusResponseWriter) BytesWritten() int64 {
	return w.bytesSent
}

// InjectWriter wraps the response writer so downstream middlewares can read
// the status code after the handler ran.
func InjectWriter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(NewStatusResponseWriter(w), r)
	})
}
