package config

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
)

type Config struct {
	OrganizationName    string
	AppName             string
	Env                 string
	AppPort             string
	AppUrl              string
	DBUrl               string
	StripeSecretKey     string
	StripeWebhookSecret string
	SendgridAPIKey      string
	RSAPrivateKey       *rsa.PrivateKey
	RSAPublicKey        *rsa.PublicKey
	OperatorEmail       string
	OperatorPassword    string
	MongoURI            string
	MongoDatabase       string
	UploadDir           string
	SessionTTL          time.Duration
	UniqueRunNumber     string
	UniqueRunnerID      string

	LDFlag_UsingIsolatedSchema         bool
	LDFlag_CORSHighSecurity            bool
	LDFlag_SendgridFromEmail           string
	LDFlag_SendgridSandboxMode         bool
	LDFlag_SeedDbWithTestData          bool
	LDFlag_ValidateEmailDeliverability bool
}

const (
	OrganizationName    = utils.OrganizationName
	LDConnectionTimeout = 5 * time.Second
	DefaultSessionTTL   = 12 * time.Hour
	DefaultUploadDir    = "./uploads"
	DefaultMongoDB      = "staynest"
	EnvProd             = "prod"
)

// Set with -ldflags at build time; defaults cover `go run`.
var (
	AppName             string
	UniqueRunNumber     string
	UniqueRunnerID      string
	LDServerContextKey  string
	LDServerContextKind string
)

// StripeEnabled reports whether a real Stripe key is configured. Placeholder
// keys copied from an example env file ("sk_test_...") count as unset.
func (c *Config) StripeEnabled() bool {
	return c.StripeSecretKey != "" && !strings.Contains(c.StripeSecretKey, "...")
}

// source resolves a setting from Bitwarden secrets first, then the
// process environment.
type source struct {
	secrets map[string]string
}

func (s source) get(key string) string {
	if v, ok := s.secrets[key]; ok && v != "" {
		return v
	}
	return os.Getenv(key)
}

func (s source) getOr(key, fallback string) string {
	if v := s.get(key); v != "" {
		return v
	}
	return fallback
}

func LoadConfig() *Config {
	applyLDFlagDefaults()

	if err := godotenv.Load(); err == nil {
		utils.Logger.Debug("Loaded .env file")
	}

	utils.Logger.Info("Loading config for app: ", AppName)

	env := os.Getenv("ENV")
	if env == "" {
		env = "dev"
	}

	src := source{secrets: loadBWSSecrets(env)}

	appPort := src.get("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}
	dbURL := src.get("DB_URL")
	if dbURL == "" {
		utils.Logger.Fatal("DB_URL not found in env or BWS secrets")
	}
	appUrl := src.getOr("APP_URL_FROM_ANYWHERE", "http://localhost:"+appPort)

	privKey, pubKey, err := loadRSAKeys(src.get("RSA_PRIVATE_KEY_BASE64"), src.get("RSA_PUBLIC_KEY_BASE64"))
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA key pair")
	}
	if privKey == nil {
		if env == EnvProd {
			utils.Logger.Fatal("RSA_PRIVATE_KEY_BASE64 is required in prod")
		}
		utils.Logger.Warn("No RSA key pair configured; generating an ephemeral one. Sessions will not survive a restart.")
		privKey, err = rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			utils.Logger.WithError(err).Fatal("Failed to generate ephemeral RSA key")
		}
		pubKey = &privKey.PublicKey
	}

	sessionTTL := DefaultSessionTTL
	if raw := src.get("SESSION_TTL"); raw != "" {
		if d, perr := time.ParseDuration(raw); perr == nil && d > 0 {
			sessionTTL = d
		} else {
			utils.Logger.Warnf("Ignoring invalid SESSION_TTL %q", raw)
		}
	}

	cfg := &Config{
		OrganizationName:    OrganizationName,
		AppName:             AppName,
		Env:                 env,
		AppPort:             appPort,
		AppUrl:              strings.TrimRight(appUrl, "/"),
		DBUrl:               dbURL,
		StripeSecretKey:     src.get("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: src.get("STRIPE_WEBHOOK_SECRET"),
		SendgridAPIKey:      src.get("SENDGRID_API_KEY"),
		RSAPrivateKey:       privKey,
		RSAPublicKey:        pubKey,
		OperatorEmail:       utils.NormalizeEmail(src.get("OPERATOR_EMAIL")),
		OperatorPassword:    src.get("OPERATOR_PASSWORD"),
		MongoURI:            src.get("MONGO_URI"),
		MongoDatabase:       src.getOr("MONGO_DATABASE", DefaultMongoDB),
		UploadDir:           src.getOr("UPLOAD_DIR", DefaultUploadDir),
		SessionTTL:          sessionTTL,
		UniqueRunNumber:     UniqueRunNumber,
		UniqueRunnerID:      UniqueRunnerID,
	}

	loadFlags(cfg, src.get("LD_SDK_KEY"))

	if !cfg.StripeEnabled() {
		utils.Logger.Warn("STRIPE_SECRET_KEY not configured; checkout runs in demo mode")
	}
	if cfg.OperatorEmail == "" || cfg.OperatorPassword == "" {
		utils.Logger.Warn("OPERATOR_EMAIL / OPERATOR_PASSWORD not configured; operator sign-in is disabled")
	}
	return cfg
}

func applyLDFlagDefaults() {
	if AppName == "" {
		AppName = "marketplace-service"
	}
	if UniqueRunNumber == "" {
		UniqueRunNumber = "0"
	}
	if UniqueRunnerID == "" {
		UniqueRunnerID = "local"
	}
	if LDServerContextKey == "" {
		LDServerContextKey = "server"
	}
	if LDServerContextKind == "" {
		LDServerContextKind = "user"
	}
}

// loadBWSSecrets merges the shared and app projects when BWS_ACCESS_TOKEN
// is set. App secrets win over shared ones.
func loadBWSSecrets(env string) map[string]string {
	if os.Getenv("BWS_ACCESS_TOKEN") == "" {
		return nil
	}

	client, err := utils.NewBWSSecretsClient()
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to initialize BWSSecretsClient")
	}
	defer client.Close()

	merged, err := client.LoadProjects(fmt.Sprintf("shared-%s", env), fmt.Sprintf("%s-%s", AppName, env))
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to fetch secrets from BWS")
	}
	utils.Logger.Infof("Loaded %d secrets from BWS", len(merged))
	return merged
}

// loadRSAKeys parses base64-encoded PEM keys. Both empty returns nils.
func loadRSAKeys(privB64, pubB64 string) (*rsa.PrivateKey, *rsa.PublicKey, error) {
	if privB64 == "" {
		return nil, nil, nil
	}
	privPEM, err := base64.StdEncoding.DecodeString(privB64)
	if err != nil {
		return nil, nil, fmt.Errorf("decode RSA_PRIVATE_KEY_BASE64: %w", err)
	}
	privKey, err := jwt.ParseRSAPrivateKeyFromPEM(privPEM)
	if err != nil {
		return nil, nil, fmt.Errorf("parse RSA private key: %w", err)
	}
	if pubB64 == "" {
		return privKey, &privKey.PublicKey, nil
	}
	pubPEM, err := base64.StdEncoding.DecodeString(pubB64)
	if err != nil {
		return nil, nil, fmt.Errorf("decode RSA_PUBLIC_KEY_BASE64: %w", err)
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		return nil, nil, fmt.Errorf("parse RSA public key: %w", err)
	}
	return privKey, pubKey, nil
}

// loadFlags evaluates the LaunchDarkly flags. Without an SDK key every
// flag keeps its safe default.
func loadFlags(cfg *Config, ldSDKKey string) {
	cfg.LDFlag_SendgridFromEmail = utils.DefaultSenderEmail
	cfg.LDFlag_SeedDbWithTestData = cfg.Env != EnvProd

	if ldSDKKey == "" {
		utils.Logger.Info("LD_SDK_KEY not set; using default feature flags")
		return
	}

	ldClient, err := ld.MakeClient(ldSDKKey, LDConnectionTimeout)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to create LaunchDarkly client")
	}
	defer ldClient.Close()

	ctx := ldcontext.NewWithKind(ldcontext.Kind(LDServerContextKind), LDServerContextKey)

	boolFlag := func(name string, fallback bool) bool {
		v, err := ldClient.BoolVariation(name, ctx, fallback)
		if err != nil {
			utils.Logger.WithError(err).Fatalf("Error retrieving %s flag", name)
		}
		utils.Logger.Debugf("%s flag: %t", name, v)
		return v
	}

	cfg.LDFlag_UsingIsolatedSchema = boolFlag("using_isolated_schema", false)
	cfg.LDFlag_CORSHighSecurity = boolFlag("cors_high_security", false)
	cfg.LDFlag_SendgridSandboxMode = boolFlag("sendgrid_sandbox_mode", false)
	cfg.LDFlag_SeedDbWithTestData = boolFlag("seed_db_with_test_data", cfg.LDFlag_SeedDbWithTestData)
	cfg.LDFlag_ValidateEmailDeliverability = boolFlag("validate_email_deliverability", false)

	sgFrom, err := ldClient.StringVariation("sendgrid_from_email", ctx, "")
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving sendgrid_from_email flag")
	}
	if sgFrom != "" {
		cfg.LDFlag_SendgridFromEmail = sgFrom
	}
}

func (c *Config) Close() {}
