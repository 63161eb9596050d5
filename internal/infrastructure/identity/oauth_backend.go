package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/jhoicas/Catalogo-admin/internal/domain/entity"
	"github.com/jhoicas/Catalogo-admin/pkg/logger"
)

// Config datos del proveedor de identidad alojado.
type Config struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
	// UseIDToken envía al gateway el id_token en lugar del access_token (pools de usuarios
	// que autorizan por identidad).
	UseIDToken bool
	Timeout    time.Duration
}

// OAuthBackend inicia sesión con el grant de contraseña y renueva con el refresh token.
type OAuthBackend struct {
	conf       *oauth2.Config
	useIDToken bool
	httpClient *http.Client
	log        *logger.Logger
}

// NewOAuthBackend construye el backend. Las credenciales del cliente viajan en el cuerpo.
func NewOAuthBackend(cfg Config, log *logger.Logger) *OAuthBackend {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OAuthBackend{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		useIDToken: cfg.UseIDToken,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.Component("identity"),
	}
}

// SignIn intercambia usuario y contraseña por tokens.
func (b *OAuthBackend) SignIn(ctx context.Context, username, password string) (entity.Session, error) {
	tok, err := b.conf.PasswordCredentialsToken(b.withClient(ctx), username, password)
	if err != nil {
		return entity.Session{}, fmt.Errorf("inicio de sesión: %s", describe(err))
	}
	s, err := b.session(tok)
	if err != nil {
		return entity.Session{}, err
	}
	s.Username = username
	return s, nil
}

// Refresh obtiene un token nuevo con el refresh token guardado.
func (b *OAuthBackend) Refresh(ctx context.Context, refreshToken string) (entity.Session, error) {
	src := b.conf.TokenSource(b.withClient(ctx), &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		return entity.Session{}, fmt.Errorf("renovación: %s", describe(err))
	}
	return b.session(tok)
}

func (b *OAuthBackend) withClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, b.httpClient)
}

func (b *OAuthBackend) session(tok *oauth2.Token) (entity.Session, error) {
	access := tok.AccessToken
	if b.useIDToken {
		id, _ := tok.Extra("id_token").(string)
		if id == "" {
			return entity.Session{}, errors.New("el proveedor no devolvió id_token")
		}
		access = id
	}
	return entity.Session{
		AccessToken:  access,
		RefreshToken: tok.RefreshToken,
		Expiry:       tok.Expiry,
	}, nil
}

// describe extrae el código OAuth2 del proveedor sin volcar el cuerpo completo.
func describe(err error) string {
	var rErr *oauth2.RetrieveError
	if errors.As(err, &rErr) {
		switch {
		case rErr.ErrorDescription != "":
			return rErr.ErrorDescription
		case rErr.ErrorCode != "":
			return rErr.ErrorCode
		case rErr.Response != nil:
			return rErr.Response.Status
		}
	}
	return err.Error()
}
