package config

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripeEnabled(t *testing.T) {
	require.False(t, (&Config{}).StripeEnabled())
	require.False(t, (&Config{StripeSecretKey: "sk_test_..."}).StripeEnabled())
	require.True(t, (&Config{StripeSecretKey: "sk_test_51abc"}).StripeEnabled())
}

func TestLoadRSAKeys(t *testing.T) {
	priv, pub, err := loadRSAKeys("", "")
	require.NoError(t, err)
	require.Nil(t, priv)
	require.Nil(t, pub)

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})

	priv, pub, err = loadRSAKeys(base64.StdEncoding.EncodeToString(privPEM), "")
	require.NoError(t, err)
	require.True(t, key.Equal(priv))
	require.True(t, key.PublicKey.Equal(pub))

	_, _, err = loadRSAKeys("not-base64!", "")
	require.Error(t, err)
}

func TestLoadConfigFromEnvOnly(t *testing.T) {
	t.Setenv("BWS_ACCESS_TOKEN", "")
	t.Setenv("LD_SDK_KEY", "")
	t.Setenv("ENV", "dev")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_URL", "postgres://localhost/staynest")
	t.Setenv("APP_URL_FROM_ANYWHERE", "http://localhost:3000/")
	t.Setenv("OPERATOR_EMAIL", "  Ops@Staynest.dev ")
	t.Setenv("RSA_PRIVATE_KEY_BASE64", "")
	t.Setenv("UPLOAD_DIR", "")
	t.Setenv("SESSION_TTL", "30m")

	cfg := LoadConfig()
	require.Equal(t, "marketplace-service", cfg.AppName)
	require.Equal(t, "http://localhost:3000", cfg.AppUrl)
	require.Equal(t, "ops@staynest.dev", cfg.OperatorEmail)
	require.Equal(t, DefaultUploadDir, cfg.UploadDir)
	require.NotNil(t, cfg.RSAPrivateKey)
	require.Equal(t, "30m0s", cfg.SessionTTL.String())
	require.True(t, cfg.LDFlag_SeedDbWithTestData)
	require.Equal(t, "no-reply@staynest.dev", cfg.LDFlag_SendgridFromEmail)
}
