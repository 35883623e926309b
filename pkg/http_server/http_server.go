package http_server

import (
	"context"
	"net/http"
	"time"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 30 * time.Second
)

type Server struct {
	server *http.Server
	notify chan error
}

// New starts serving immediately; fatal listen errors arrive on Notify.
func New(handler http.Handler, address string) *Server {
	s := &Server{
		server: &http.Server{
			Handler:           handler,
			Addr:              address,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		notify: make(chan error, 1),
	}

	s.start()

	return s
}

func (s *Server) start() {
	go func() {
		s.notify <- s.server.ListenAndServe()
		close(s.notify)
	}()
}

func (s *Server) Notify() <-chan error {
	return s.notify
}

func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return s.server.Shutdown(ctx)
}
