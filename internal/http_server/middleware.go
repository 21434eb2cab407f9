package http_server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ipoluianov/jsonstore/internal/logger"
)

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (c *statusRecorder) WriteHeader(code int) {
	if !c.wroteHeader {
		c.status = code
		c.wroteHeader = true
	}
	c.ResponseWriter.WriteHeader(code)
}

func (c *statusRecorder) Write(b []byte) (int, error) {
	if !c.wroteHeader {
		c.WriteHeader(http.StatusOK)
	}
	return c.ResponseWriter.Write(b)
}

// recoverMiddleware answers a panicking request with a 500 envelope unless
// the handler already started the response.
func (s *HttpServer) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				err := fmt.Errorf("panic: %v", rec)
				if rw.wroteHeader {
					logger.ErrorWithStack("[HttpServer]", err)
					return
				}
				s.writeError(rw, err)
			}
		}()
		next.ServeHTTP(rw, r)
	})
}

// purgeMiddleware drops expired mappings before the request is handled.
// Failures are logged only.
func (s *HttpServer) purgeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		removed, err := s.core.Purge(r.Context())
		if err != nil {
			logger.Error("[HttpServer]", "purge error:", err)
		} else if removed > 0 {
			logger.Println("[HttpServer]", "purged", removed, "expired mappings")
		}
		next.ServeHTTP(w, r)
	})
}

func (s *HttpServer) accessLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ipAddr := s.getRealAddr(r)
		s.accessLog.Write(fmt.Sprintf("%s %s - %s - %s - %s",
			r.Method, r.URL.RequestURI(), started.UTC().Format(time.RFC3339), ipAddr, r.UserAgent()))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			p := recover()
			status := rec.status
			if p != nil && !rec.wroteHeader {
				status = http.StatusInternalServerError
			}
			elapsed := time.Since(started)
			s.performanceLog.Write(fmt.Sprintf("%s %s %s - %d - %.3fms",
				started.UTC().Format(time.RFC3339), r.Method, r.URL.RequestURI(), status, float64(elapsed.Microseconds())/1000))
			if p != nil {
				panic(p)
			}
		}()
		next.ServeHTTP(rec, r)
	})
}
