// Package callback hosts the local landing endpoint the payment gateway
// redirects back to after a wallet funding attempt.
package callback

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recharge-earn/internal/flows"
)

const successPath = "/payment/success"

// Server is a short-lived local HTTP listener. It exists only for the
// window between opening the gateway checkout and the browser's return
// redirect, and hands the captured payment reference to the waiting flow.
type Server struct {
	logger *zap.Logger
	srv    *http.Server
	ln     net.Listener
	refs   chan string
}

func NewServer(logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{logger: logger, refs: make(chan string, 1)}
}

// Start binds addr and begins serving. Pass a port of 0 to let the OS pick.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("bind callback listener: %w", err)
	}
	s.ln = ln

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(zapLoggerMiddleware(s.logger), gin.Recovery())
	r.GET(successPath, s.handleReturn)

	s.srv = &http.Server{Handler: r}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Warn("callback server stopped", zap.Error(err))
		}
	}()
	s.logger.Info("callback server listening", zap.String("addr", ln.Addr().String()))
	return nil
}

// URL returns the landing address to register as the gateway's return URL.
func (s *Server) URL() string {
	return fmt.Sprintf("http://%s%s", s.ln.Addr().String(), successPath)
}

func (s *Server) handleReturn(c *gin.Context) {
	reference := flows.ReferenceFromQuery(c.Request.URL.Query())
	if reference == "" {
		c.Data(http.StatusBadRequest, "text/html; charset=utf-8",
			[]byte("<h3>No payment reference found.</h3><p>You can close this tab.</p>"))
		return
	}
	select {
	case s.refs <- reference:
	default:
		// A reference is already queued; the duplicate redirect is dropped.
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8",
		[]byte("<h3>Payment received.</h3><p>Return to the app to see your updated balance. You can close this tab.</p>"))
}

// WaitForReference blocks until the gateway redirects back with a reference
// or ctx expires.
func (s *Server) WaitForReference(ctx context.Context) (string, error) {
	select {
	case ref := <-s.refs:
		return ref, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Shutdown stops the listener gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
