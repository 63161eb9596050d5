package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims claims estándar que emite el proveedor de identidad más el usuario.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username,omitempty"`
}

// Generate firma un token HS256 para el sujeto con la expiración indicada.
// Lo usan los tests y herramientas locales; en producción los tokens los emite el proveedor.
func Generate(secret, subject, issuer string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Username: subject,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ExpiresAt lee el claim exp sin verificar la firma: el cliente no tiene la clave del
// proveedor, solo necesita saber si el token sigue vigente antes de enviarlo.
func ExpiresAt(tokenString string) (time.Time, error) {
	claims := &Claims{}
	_, _, err := jwt.NewParser().ParseUnverified(tokenString, claims)
	if err != nil {
		return time.Time{}, fmt.Errorf("jwt: token ilegible: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("jwt: token sin exp")
	}
	return claims.ExpiresAt.Time, nil
}

// Subject devuelve el usuario del token (username o sub) sin verificar la firma.
func Subject(tokenString string) string {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return ""
	}
	if claims.Username != "" {
		return claims.Username
	}
	return claims.Subject
}
