package server

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/agenthands/pylex/pkg/lexer"
	"github.com/agenthands/pylex/pkg/registry"
)

type TokenRouter struct {
	e        *echo.Echo
	registry *registry.Registry
	maxBytes int
}

func NewTokenRouter(e *echo.Echo, reg *registry.Registry, maxBytes int) *TokenRouter {
	return &TokenRouter{
		e:        e,
		registry: reg,
		maxBytes: maxBytes,
	}
}

func (r *TokenRouter) Bind() {
	r.e.POST("/v1/tokens", r.tokensHandler)
}

type tokenizeRequest struct {
	Language string `json:"language"`
	Source   string `json:"source"`
}

type tokenDTO struct {
	Kind   string `json:"kind"`
	Text   string `json:"text"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type tokenizeResponse struct {
	ID       string     `json:"id"`
	Language string     `json:"language"`
	Tokens   []tokenDTO `json:"tokens"`
}

func (r *TokenRouter) tokensHandler(c echo.Context) error {
	var req tokenizeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Language == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "language is required"})
	}
	if len(req.Source) > r.maxBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{"error": "source too large"})
	}

	lang, err := r.registry.Lookup(req.Language)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	tokens, err := lexer.Tokenize([]byte(req.Source))
	if err != nil {
		if errors.Is(err, lexer.ErrInvalidEncoding) {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}

	dtos := make([]tokenDTO, 0, len(tokens))
	for _, tok := range tokens {
		dtos = append(dtos, tokenDTO{
			Kind:   tok.Kind.String(),
			Text:   tok.Text,
			Start:  tok.Start,
			End:    tok.End,
			Line:   tok.Line,
			Column: tok.Column,
		})
	}

	return c.JSON(http.StatusOK, tokenizeResponse{
		ID:       uuid.NewString(),
		Language: lang.Name,
		Tokens:   dtos,
	})
}
