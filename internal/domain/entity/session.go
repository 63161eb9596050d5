package entity

import "time"

// Session credenciales emitidas por el proveedor de identidad.
// AccessToken es el que se adjunta al gateway; RefreshToken permite renovarlo.
type Session struct {
	Username     string
	AccessToken  string
	RefreshToken string
	Expiry       time.Time // cero si el proveedor no la informa (se lee del JWT)
}

// HasRefresh indica si la sesión puede renovarse sin volver a pedir credenciales.
func (s Session) HasRefresh() bool { return s.RefreshToken != "" }
