package http_server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"
	"github.com/ipoluianov/jsonstore/internal/config"
	"github.com/ipoluianov/jsonstore/internal/core"
	"github.com/ipoluianov/jsonstore/internal/logger"
)

type HttpServer struct {
	srv     *http.Server
	r       *mux.Router
	handler http.Handler
	core    *core.Core
	config  config.Config

	accessLog      *logger.Sink
	performanceLog *logger.Sink
}

func NewHttpServer(conf config.Config, c *core.Core) *HttpServer {
	var s HttpServer
	s.config = conf
	s.core = c
	s.accessLog = logger.NewSink(filepath.Join(conf.Logs.Path, conf.Logs.AccessLog), logger.DefaultSinkBufferSize)
	s.performanceLog = logger.NewSink(filepath.Join(conf.Logs.Path, conf.Logs.PerformanceLog), logger.DefaultSinkBufferSize)

	s.r = mux.NewRouter()
	s.r.HandleFunc("/setData", s.processSetData).Methods(http.MethodPost)
	s.r.HandleFunc("/getData", s.processGetData).Methods(http.MethodGet)
	s.r.HandleFunc("/get", s.processGetData).Methods(http.MethodGet)
	s.r.HandleFunc("/getLogs", s.processGetLogs).Methods(http.MethodGet)
	s.r.HandleFunc("/info", s.processInfo).Methods(http.MethodGet)
	s.r.HandleFunc("/", s.processStatic).Methods(http.MethodGet)
	s.r.HandleFunc("/{filename}", s.processStatic).Methods(http.MethodGet)
	s.r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Success: false, Message: "Not found"})
	})
	s.r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Success: false, Message: "Method not allowed"})
	})

	// outermost first; wrapping the router also covers unmatched routes
	middlewares := []mux.MiddlewareFunc{
		s.recoverMiddleware,
		s.purgeMiddleware,
		s.accessLogMiddleware,
	}
	s.handler = s.r
	for i := len(middlewares) - 1; i >= 0; i-- {
		s.handler = middlewares[i].Middleware(s.handler)
	}
	return &s
}

func (s *HttpServer) Handler() http.Handler {
	return s.handler
}

// Start binds the listening socket synchronously and serves in the
// background. A bind failure is returned to the caller.
func (s *HttpServer) Start() error {
	s.srv = &http.Server{
		Addr:              ":" + fmt.Sprint(s.config.Http.HttpPort),
		Handler:           s.handler,
		ReadHeaderTimeout: time.Duration(s.config.Http.ReadHeaderTimeoutMs) * time.Millisecond,
	}
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.srv.Addr, err)
	}
	logger.Println("[HttpServer]", "listening on", ln.Addr().String())
	go func() {
		err := s.srv.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Println("[HttpServer]", "[error]", "HttpServer thListen error: ", err)
		}
	}()
	return nil
}

// Stop stops accepting connections, waits for in-flight requests until ctx
// is done and flushes the request logs.
func (s *HttpServer) Stop(ctx context.Context) error {
	var err error
	if s.srv != nil {
		err = s.srv.Shutdown(ctx)
	}
	s.accessLog.Close()
	s.performanceLog.Close()
	return err
}
