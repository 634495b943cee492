package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWKRoundTrip(t *testing.T) {
	keyPair, err := NewEphemeralKeyPair()
	require.Nil(t, err)

	keyPairJWK, err := keyPair.JWK()
	require.Nil(t, err)
	assert.Equal(t, KID, keyPairJWK.KeyID())

	jwks := ExportJWKAsJWKS(keyPairJWK)
	assert.Len(t, jwks.Keys, 1)

	publicKey, err := PublicKeyFromJWK(keyPairJWK)
	require.Nil(t, err)
	assert.Equal(t, 0, keyPair.PublicKey.N.Cmp(publicKey.N))
	assert.Equal(t, keyPair.PublicKey.E, publicKey.E)
}

func TestNewKeyPairFromPemBytesRejectsGarbage(t *testing.T) {
	_, err := NewKeyPairFromPemBytes([]byte("not a pem"))
	assert.NotNil(t, err)
}
