// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/poiesic/maamar/search"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Injector pushes answers into platform conversations. *humains.Client
// implements it.
type Injector interface {
	Inject(ctx context.Context, clientID, conversationID string, values map[string]string) error
}

// Server is the HTTP front of the search index.
type Server struct {
	echo     *echo.Echo
	searcher *search.Searcher
	injector Injector
	logger   *slog.Logger
	metrics  *metrics

	injectTimeout time.Duration
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithInjector enables conversation injection for enveloped requests.
func WithInjector(injector Injector) Option {
	return func(s *Server) error {
		s.injector = injector
		return nil
	}
}

// WithInjectTimeout bounds each injection call. Default 10s.
func WithInjectTimeout(timeout time.Duration) Option {
	return func(s *Server) error {
		if timeout > 0 {
			s.injectTimeout = timeout
		}
		return nil
	}
}

// NewServer creates the HTTP server around a searcher.
func NewServer(searcher *search.Searcher, opts ...Option) (*Server, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}

	s := &Server{
		searcher:      searcher,
		logger:        slog.Default(),
		metrics:       newMetrics(),
		injectTimeout: 10 * time.Second,
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	e.GET("/health", s.handleHealth)
	e.GET("/search", s.handleSearch)
	e.POST("/search", s.handleSearch)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))

	s.echo = e
	return s, nil
}

// Handler exposes the routing tree, mainly for tests.
func (s *Server) Handler() http.Handler { return s.echo }

// Start blocks serving HTTP on addr until Shutdown or a listener error.
func (s *Server) Start(addr string) error {
	s.logger.Info("maamar search api listening", "addr", addr)
	return s.echo.Start(addr)
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Maamar Search API is running",
	})
}

func (s *Server) handleSearch(c echo.Context) error {
	start := time.Now()
	defer func() { s.metrics.duration.Observe(time.Since(start).Seconds()) }()

	clientID := c.Request().Header.Get("client-id")
	conversationID := c.Request().Header.Get("conversation-id")

	req, err := parseSearchRequest(c)
	if err != nil {
		s.metrics.searches.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	canInject := req.Enveloped && clientID != "" && conversationID != ""

	if req.Query.Name == "" && req.Query.Question == "" {
		s.metrics.searches.WithLabelValues("invalid").Inc()
		if canInject {
			s.inject(c.Request().Context(), clientID, conversationID, errMissingQuery)
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": errMissingQuery})
	}

	s.logger.Info("search request",
		"name", req.Query.Name, "question", req.Query.Question,
		"topN", req.Query.TopN, "enveloped", req.Enveloped)

	results, err := s.searcher.Search(c.Request().Context(), req.Query)
	if err != nil {
		s.metrics.searches.WithLabelValues("error").Inc()
		s.logger.Error("search failed", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	s.metrics.searches.WithLabelValues("ok").Inc()

	resp := buildResponse(results)
	if canInject {
		s.inject(c.Request().Context(), clientID, conversationID, answerText(resp))
	}
	return c.JSON(http.StatusOK, resp)
}

// inject pushes the answer into the conversation. It runs after the HTTP
// response value is computed and its outcome never changes that response.
func (s *Server) inject(ctx context.Context, clientID, conversationID, answer string) {
	if s.injector == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, s.injectTimeout)
	defer cancel()

	err := s.injector.Inject(ctx, clientID, conversationID, map[string]string{"server_search": answer})
	if err != nil {
		s.metrics.injections.WithLabelValues("error").Inc()
		s.logger.Warn("conversation injection failed",
			"clientID", clientID, "conversationID", conversationID, "err", err)
		return
	}
	s.metrics.injections.WithLabelValues("ok").Inc()
}
