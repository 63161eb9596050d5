package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Catalogo-admin/pkg/jwt"
)

func TestExpiresAt_LeeExpSinVerificarFirma(t *testing.T) {
	tok, err := pkgjwt.Generate("cualquier-secret", "ana", "test", time.Hour)
	require.NoError(t, err)

	exp, err := pkgjwt.ExpiresAt(tok)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)
	assert.Equal(t, "ana", pkgjwt.Subject(tok))
}

func TestExpiresAt_TokenExpiradoSigueLegible(t *testing.T) {
	tok, err := pkgjwt.Generate("s", "ana", "test", -time.Minute)
	require.NoError(t, err)

	exp, err := pkgjwt.ExpiresAt(tok)
	require.NoError(t, err, "un token vencido debe poder inspeccionarse para decidir renovarlo")
	assert.True(t, exp.Before(time.Now()))
}

func TestExpiresAt_TokenMalformado(t *testing.T) {
	_, err := pkgjwt.ExpiresAt("token.invalido.aqui")
	assert.Error(t, err)
	assert.Empty(t, pkgjwt.Subject("basura"))
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "ana", "test", time.Hour)
	assert.Error(t, err)
}
