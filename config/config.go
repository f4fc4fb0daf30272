package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
	defaultAccessTTL          = 15 * time.Minute
	defaultRefreshTTL         = 24 * time.Hour
	defaultOTPTTL             = 300 * time.Second
	defaultMetricsPath        = "/metrics"
)

// Supported signing algorithms. The codec only speaks HMAC.
const (
	AlgorithmHS256 = "HS256"
	AlgorithmHS384 = "HS384"
	AlgorithmHS512 = "HS512"
)

// OTP delivery modes.
const (
	OTPDeliveryLog    = "log"
	OTPDeliveryPubSub = "pubsub"
)

// Refresh role policies.
const (
	RefreshRoleCarry = "carry"
	RefreshRoleLive  = "live"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// Redis backs the ephemeral key-value store. When nil an in-process store is used,
	// which is only suitable for a single development instance.
	Redis *RedisConfig `json:"redis" yaml:"redis"`

	JWT JWTConfig `json:"jwt" yaml:"jwt"`

	OTP OTPConfig `json:"otp" yaml:"otp"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	// PubSub configuration for OTP delivery events
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	Metrics *MetricsConfig `json:"metrics" yaml:"metrics"`

	// Worker configures the OTP notifier process.
	Worker *WorkerConfig `json:"worker" yaml:"worker"`
}

// RedisConfig defines the connection to the shared key-value store.
type RedisConfig struct {
	Addr         string        `json:"addr" yaml:"addr"`
	Username     string        `json:"username" yaml:"username"`
	Password     string        `json:"password" yaml:"password"`
	DB           int           `json:"db" yaml:"db"`
	PoolSize     int           `json:"poolSize" yaml:"poolSize"`
	DialTimeout  time.Duration `json:"dialTimeout" yaml:"dialTimeout"`
	ReadTimeout  time.Duration `json:"readTimeout" yaml:"readTimeout"`
	WriteTimeout time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
}

// JWTConfig defines token signing and lifetimes.
type JWTConfig struct {
	Secret     string        `json:"secret" yaml:"secret"`
	Algorithm  string        `json:"algorithm" yaml:"algorithm"`
	AccessTTL  time.Duration `json:"accessTTL" yaml:"accessTTL"`
	RefreshTTL time.Duration `json:"refreshTTL" yaml:"refreshTTL"`
}

// OTPConfig defines the one-time passcode challenge.
type OTPConfig struct {
	TTL      time.Duration `json:"ttl" yaml:"ttl"`
	Delivery string        `json:"delivery" yaml:"delivery"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost int `json:"bcryptCost" yaml:"bcryptCost"`
	// RefreshRolePolicy decides where the role of a refreshed access token comes from:
	// "carry" copies it from the refresh token, "live" recomputes it from the user's groups.
	RefreshRolePolicy string `json:"refreshRolePolicy" yaml:"refreshRolePolicy"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
	// SlowQuery is the threshold above which SQL statements are logged as slow. Zero uses the default.
	SlowQuery time.Duration `json:"slowQuery" yaml:"slowQuery"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Optional service account file; application default credentials are used when empty
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path"`
}

// WorkerConfig defines the OTP notifier push endpoint.
type WorkerConfig struct {
	Port           int    `json:"port" yaml:"port"`
	VerifyPushAuth bool   `json:"verifyPushAuth" yaml:"verifyPushAuth"`
	Audience       string `json:"audience" yaml:"audience"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// JWT_ACCESSTTL -> jwt.accessTTL, following the keys already present in YAML.
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if cfg.Postgres != nil {
		// POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, ...
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if cfg.JWT.Algorithm == "" {
		cfg.JWT.Algorithm = AlgorithmHS256
	}
	if cfg.JWT.AccessTTL == 0 {
		cfg.JWT.AccessTTL = defaultAccessTTL
	}
	if cfg.JWT.RefreshTTL == 0 {
		cfg.JWT.RefreshTTL = defaultRefreshTTL
	}
	if cfg.OTP.TTL == 0 {
		cfg.OTP.TTL = defaultOTPTTL
	}
	if cfg.OTP.Delivery == "" {
		cfg.OTP.Delivery = OTPDeliveryLog
	}
	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.RefreshRolePolicy == "" {
		cfg.Auth.RefreshRolePolicy = RefreshRoleCarry
	}
	if cfg.Metrics != nil && cfg.Metrics.Path == "" {
		cfg.Metrics.Path = defaultMetricsPath
	}
}

// Validate rejects configurations the auth subsystem cannot run with.
func (cfg *Config) Validate() error {
	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		return errors.New("jwt.secret is required")
	}

	switch cfg.JWT.Algorithm {
	case AlgorithmHS256, AlgorithmHS384, AlgorithmHS512:
	default:
		return errors.Errorf("unsupported jwt.algorithm: %s", cfg.JWT.Algorithm)
	}

	if cfg.JWT.AccessTTL <= 0 || cfg.JWT.RefreshTTL <= 0 {
		return errors.New("jwt.accessTTL and jwt.refreshTTL must be positive")
	}

	if cfg.OTP.TTL <= 0 {
		return errors.New("otp.ttl must be positive")
	}

	switch cfg.OTP.Delivery {
	case OTPDeliveryLog, OTPDeliveryPubSub:
	default:
		return errors.Errorf("unknown otp.delivery: %s", cfg.OTP.Delivery)
	}

	if cfg.Auth != nil {
		switch cfg.Auth.RefreshRolePolicy {
		case RefreshRoleCarry, RefreshRoleLive:
		default:
			return errors.Errorf("unknown auth.refreshRolePolicy: %s", cfg.Auth.RefreshRolePolicy)
		}
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Format: POSTGRES_REPLICAS_{index}_{HOST|PORT|USERNAME|PASSWORD}
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
