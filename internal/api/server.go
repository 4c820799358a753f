// Package api serves the interviewer over HTTP.
package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"github.com/samcharles93/interviewer/internal/generation"
	"github.com/samcharles93/interviewer/internal/logger"
)

type Server struct {
	gen generation.Generator
	log logger.Logger
}

func NewServer(gen generation.Generator, log logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{gen: gen, log: log}
}

func (s *Server) Register(e *echo.Echo) {
	e.POST("/generate", s.handleGenerate)
}

// CORSConfig allows any origin and any header, for POST only.
func CORSConfig() middleware.CORSConfig {
	return middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodPost},
		AllowHeaders: []string{"*"},
	}
}

func (s *Server) handleGenerate(c *echo.Context) error {
	if s.gen == nil {
		return writeDetail(c, http.StatusInternalServerError, "no generator loaded")
	}
	req, err := decodeJSON[GenerateRequest](c.Request().Body)
	if err != nil {
		return writeDetail(c, http.StatusUnprocessableEntity, err.Error())
	}
	params, err := req.params()
	if err != nil {
		return writeDetail(c, statusFor(err), err.Error())
	}

	res, err := s.gen.Generate(c.Request().Context(), *req.Prompt, params)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			s.log.Error("generation failed", "error", err)
		}
		return writeDetail(c, status, err.Error())
	}
	s.log.Debug("generated", "chars", len(res.Text), "elapsed", res.Elapsed)
	return c.JSON(http.StatusOK, GenerateResponse{GeneratedText: res.Text})
}

func (r GenerateRequest) params() (generation.Params, error) {
	if r.Prompt == nil {
		return generation.Params{}, newInvalidRequest("prompt is required")
	}
	maxNew := generation.DefaultMaxNewTokens
	if r.MaxNewTokens != nil {
		maxNew = *r.MaxNewTokens
	}
	if maxNew <= 0 {
		return generation.Params{}, newInvalidRequest(fmt.Sprintf("max_new_tokens must be positive, got %d", maxNew))
	}
	temp := generation.DefaultTemperature
	if r.Temperature != nil {
		temp = *r.Temperature
	}
	params := generation.ServeParams(maxNew, temp)
	return params, params.Validate()
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	dec := json.NewDecoder(r)
	if err := dec.Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return out, errors.New("request body is required")
		}
		return out, err
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return out, errors.New("request body must contain a single JSON object")
	}
	return out, nil
}
