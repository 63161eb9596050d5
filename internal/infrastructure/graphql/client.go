package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/Catalogo-admin/internal/domain"
	"github.com/jhoicas/Catalogo-admin/pkg/logger"
)

// maxBodyBytes límite de lectura de una respuesta del gateway.
const maxBodyBytes = 8 << 20

// TokenSource entrega el token a adjuntar. Lo implementa auth.CredentialProvider.
type TokenSource interface {
	ValidToken(ctx context.Context) (string, error)
	ForceRefresh(ctx context.Context) (string, error)
}

// Operation consulta o mutación GraphQL con nombre.
type Operation struct {
	Name     string
	Document string
}

// Client punto de entrada único para toda llamada remota al gateway del catálogo.
// Adjunta el token, reintenta una sola vez ante "no autorizado" tras forzar la renovación
// y normaliza los fallos en *domain.GatewayError.
type Client struct {
	endpoint          string
	httpClient        *http.Client
	tokens            TokenSource
	onUnauthenticated func(ctx context.Context)
	log               *logger.Logger
}

// Option configura el cliente.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client (tests, transporte propio).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUnauthenticatedHandler registra el efecto visible para la capa de presentación
// (cerrar sesión y redirigir al login) cuando no hay credencial válida.
func WithUnauthenticatedHandler(fn func(ctx context.Context)) Option {
	return func(c *Client) { c.onUnauthenticated = fn }
}

// NewClient construye el cliente. timeout <= 0 deja el cliente sin límite propio.
func NewClient(endpoint string, timeout time.Duration, tokens TokenSource, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		log:        log.Component("gateway"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ── Protocolo GraphQL sobre HTTP ─────────────────────────────────────────────

type gqlRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message    string `json:"message"`
	ErrorType  string `json:"errorType"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// Execute ejecuta la operación y deserializa el payload data en out (puede ser nil).
func (c *Client) Execute(ctx context.Context, op Operation, variables map[string]any, out any) error {
	token, err := c.tokens.ValidToken(ctx)
	if err != nil {
		return c.unauthenticated(ctx, op, err)
	}

	var data json.RawMessage
	for attempt := 0; ; attempt++ {
		data, err = c.send(ctx, op, variables, token)
		if !isUnauthorized(err) {
			break
		}
		// Un único reintento, marcado: el segundo "no autorizado" es definitivo.
		if attempt > 0 {
			return c.unauthenticated(ctx, op, err)
		}
		c.log.Warn().Str("operation", op.Name).Msg("no autorizado; renovando token y reintentando")
		token, err = c.tokens.ForceRefresh(ctx)
		if err != nil {
			return c.unauthenticated(ctx, op, err)
		}
	}
	if err != nil {
		return err
	}

	if out == nil || len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &domain.GatewayError{
			Kind:    domain.KindTransport,
			Message: fmt.Sprintf("%s: deserializar data: %v", op.Name, err),
		}
	}
	return nil
}

// send hace un intento HTTP y clasifica el resultado.
func (c *Client) send(ctx context.Context, op Operation, variables map[string]any, token string) (json.RawMessage, error) {
	body, err := json.Marshal(gqlRequest{Query: op.Document, OperationName: op.Name, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("%s: serializar request: %w", op.Name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: crear HTTP request: %w", op.Name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.GatewayError{Kind: domain.KindTransport, Message: fmt.Sprintf("%s: %v", op.Name, err)}
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &domain.GatewayError{Kind: domain.KindTransport, Status: resp.StatusCode, Message: "leer respuesta: " + err.Error()}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, &domain.GatewayError{Kind: domain.KindUnauthenticated, Status: resp.StatusCode, Code: "UNAUTHORIZED"}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.GatewayError{
			Kind:    domain.KindTransport,
			Status:  resp.StatusCode,
			Message: truncate(strings.TrimSpace(string(rawBody)), 512),
		}
	}

	var gr gqlResponse
	if err := json.Unmarshal(rawBody, &gr); err != nil {
		return nil, &domain.GatewayError{Kind: domain.KindTransport, Status: resp.StatusCode, Message: "respuesta GraphQL ilegible"}
	}

	// Respuesta con éxito parcial: una sola entrada "Unauthorized" invalida todo el intento.
	for _, e := range gr.Errors {
		if isUnauthorizedEntry(e) {
			return nil, &domain.GatewayError{Kind: domain.KindUnauthenticated, Status: resp.StatusCode, Code: "UNAUTHORIZED", Message: e.Message}
		}
	}
	if len(gr.Errors) > 0 {
		first := gr.Errors[0]
		return nil, &domain.GatewayError{
			Kind:    domain.KindApplication,
			Status:  resp.StatusCode,
			Code:    firstNonEmpty(first.Extensions.Code, first.ErrorType),
			Message: first.Message,
		}
	}
	return gr.Data, nil
}

// unauthenticated dispara el cierre de sesión/redirección y devuelve el error fatal de sesión.
func (c *Client) unauthenticated(ctx context.Context, op Operation, cause error) error {
	c.log.Warn().Str("operation", op.Name).Err(cause).Msg("sin credencial válida; se requiere login")
	if c.onUnauthenticated != nil {
		c.onUnauthenticated(ctx)
	}
	return &domain.GatewayError{Kind: domain.KindUnauthenticated, Status: http.StatusUnauthorized, Code: "UNAUTHENTICATED", Message: cause.Error()}
}

func isUnauthorized(err error) bool {
	var gwErr *domain.GatewayError
	return errors.As(err, &gwErr) && gwErr.Kind == domain.KindUnauthenticated
}

func isUnauthorizedEntry(e gqlError) bool {
	switch {
	case strings.EqualFold(e.ErrorType, "Unauthorized"), strings.EqualFold(e.ErrorType, "UnauthorizedException"):
		return true
	case e.Extensions.Code == "UNAUTHENTICATED", e.Extensions.Code == "UNAUTHORIZED":
		return true
	}
	return strings.HasPrefix(e.Message, "Unauthorized")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
