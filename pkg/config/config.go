package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del panel (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	Gateway  GatewayConfig
	Identity IdentityConfig
	Session  SessionConfig
	HTTP     HTTPConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
	PageSize int // tamaño de página pedido al gateway en los listados
}

// GatewayConfig endpoint GraphQL del catálogo.
type GatewayConfig struct {
	URL     string
	Timeout time.Duration
}

// IdentityConfig proveedor de identidad alojado (endpoint de tokens OAuth2).
type IdentityConfig struct {
	TokenURL      string
	ClientID      string
	ClientSecret  string
	Scopes        []string
	UseIDToken    bool          // adjuntar id_token en lugar de access_token (p. ej. Cognito + AppSync)
	RefreshLeeway time.Duration // margen antes de la expiración para renovar
}

// SessionConfig almacenamiento local durable de la sesión.
type SessionConfig struct {
	DBPath string
	Secret string // se deriva la clave de cifrado de los tokens persistidos
}

// HTTPConfig configuración del servidor HTTP del panel.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, GATEWAY_URL, IDENTITY_TOKEN_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env o config.env; ignoramos error si no existe
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "catalog-admin"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
			PageSize: getInt(v, "PAGE_SIZE", 50),
		},
		Gateway: GatewayConfig{
			URL:     getString(v, "GATEWAY_URL", "http://localhost:4000/graphql"),
			Timeout: time.Duration(getInt(v, "GATEWAY_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Identity: IdentityConfig{
			TokenURL:      getString(v, "IDENTITY_TOKEN_URL", ""),
			ClientID:      getString(v, "IDENTITY_CLIENT_ID", ""),
			ClientSecret:  getString(v, "IDENTITY_CLIENT_SECRET", ""),
			Scopes:        splitList(getString(v, "IDENTITY_SCOPES", "openid")),
			UseIDToken:    getBool(v, "IDENTITY_USE_ID_TOKEN", false),
			RefreshLeeway: time.Duration(getInt(v, "IDENTITY_REFRESH_LEEWAY_SECONDS", 60)) * time.Second,
		},
		Session: SessionConfig{
			DBPath: getString(v, "SESSION_DB_PATH", "catalog-admin.db"),
			Secret: getString(v, "SESSION_SECRET", "catalog-admin-local"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
	}

	if cfg.Gateway.URL == "" {
		return nil, fmt.Errorf("config: GATEWAY_URL requerido")
	}
	if cfg.App.PageSize <= 0 {
		cfg.App.PageSize = 50
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
}
