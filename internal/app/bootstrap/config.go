package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/theRoadz/farcaster-neynar/internal/adapters/rpc"
	"gopkg.in/yaml.v3"
)

const (
	epochLayout       = "2006-01-02"
	maxCastSampleSize = 50
)

type Config struct {
	ServiceID string
	LogLevel  string

	HTTPPort int
	GRPCPort int

	NeynarAPIKey  string
	NeynarBaseURL string

	EthereumRPC string
	BaseRPC     string
	OptimismRPC string
	ArbitrumRPC string

	UpstreamTimeout  time.Duration
	OutboundProxyURL string

	KafkaBrokers       []string
	KafkaTopicLookups  string
	NATSURL            string
	NATSSubjectLookups string
	ZipkinURL          string
	MetricsEnabled     bool

	CastSampleSize   int
	AccountAgeEpoch  time.Time
	AccountAgeMaxFID int64
}

type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
		GRPCPort int    `yaml:"grpc_port"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"service"`
	Neynar struct {
		BaseURL        string `yaml:"base_url"`
		CastSampleSize int    `yaml:"cast_sample_size"`
	} `yaml:"neynar"`
	Chains struct {
		Ethereum string `yaml:"ethereum"`
		Base     string `yaml:"base"`
		Optimism string `yaml:"optimism"`
		Arbitrum string `yaml:"arbitrum"`
	} `yaml:"chains"`
	Upstream struct {
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		ProxyURL       string `yaml:"proxy_url"`
	} `yaml:"upstream"`
	Dependencies struct {
		KafkaBrokers       []string `yaml:"kafka_brokers"`
		KafkaTopicLookups  string   `yaml:"kafka_topic_lookups"`
		NATSURL            string   `yaml:"nats_url"`
		NATSSubjectLookups string   `yaml:"nats_subject_lookups"`
		ZipkinURL          string   `yaml:"zipkin_url"`
		MetricsEnabled     *bool    `yaml:"metrics_enabled"`
	} `yaml:"dependencies"`
	AccountAge struct {
		Epoch  string `yaml:"epoch"`
		MaxFID int64  `yaml:"max_fid"`
	} `yaml:"account_age"`
}

// LoadConfig applies defaults, then the YAML file at path (optional), then a
// .env file in the working directory (optional), then the process environment.
func LoadConfig(path string) (Config, error) {
	endpoints := rpc.DefaultEndpoints()
	cfg := Config{
		ServiceID:          "farcaster-neynar",
		LogLevel:           "info",
		HTTPPort:           8080,
		GRPCPort:           9090,
		NeynarBaseURL:      "https://api.neynar.com/v2/farcaster",
		EthereumRPC:        endpoints.Ethereum,
		BaseRPC:            endpoints.Base,
		OptimismRPC:        endpoints.Optimism,
		ArbitrumRPC:        endpoints.Arbitrum,
		UpstreamTimeout:    10 * time.Second,
		KafkaTopicLookups:  "farcaster.lookups",
		NATSSubjectLookups: "farcaster.lookups",
		MetricsEnabled:     true,
		CastSampleSize:     50,
		AccountAgeEpoch:    time.Date(2022, time.July, 1, 0, 0, 0, 0, time.UTC),
		AccountAgeMaxFID:   900000,
	}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := applyFile(&cfg, raw); err != nil {
			return Config{}, err
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}

	cfg.ServiceID = envOrDefault("SERVICE_ID", cfg.ServiceID)
	cfg.LogLevel = envOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.HTTPPort = envInt("HTTP_PORT", envInt("PORT", cfg.HTTPPort))
	cfg.GRPCPort = envInt("GRPC_PORT", cfg.GRPCPort)
	cfg.NeynarAPIKey = strings.TrimSpace(os.Getenv("NEYNAR_API_KEY"))
	cfg.NeynarBaseURL = envOrDefault("NEYNAR_BASE_URL", cfg.NeynarBaseURL)
	cfg.EthereumRPC = envOrDefault("ETHEREUM_RPC", cfg.EthereumRPC)
	cfg.BaseRPC = envOrDefault("BASE_RPC", cfg.BaseRPC)
	cfg.OptimismRPC = envOrDefault("OPTIMISM_RPC", cfg.OptimismRPC)
	cfg.ArbitrumRPC = envOrDefault("ARBITRUM_RPC", cfg.ArbitrumRPC)
	cfg.UpstreamTimeout = time.Duration(envInt("UPSTREAM_TIMEOUT_SECONDS", int(cfg.UpstreamTimeout.Seconds()))) * time.Second
	cfg.OutboundProxyURL = envOrDefault("OUTBOUND_PROXY_URL", cfg.OutboundProxyURL)
	cfg.KafkaBrokers = envCSV("KAFKA_BROKERS", cfg.KafkaBrokers)
	cfg.KafkaTopicLookups = envOrDefault("KAFKA_TOPIC_LOOKUPS", cfg.KafkaTopicLookups)
	cfg.NATSURL = envOrDefault("NATS_URL", cfg.NATSURL)
	cfg.NATSSubjectLookups = envOrDefault("NATS_SUBJECT_LOOKUPS", cfg.NATSSubjectLookups)
	cfg.ZipkinURL = envOrDefault("ZIPKIN_URL", cfg.ZipkinURL)
	cfg.MetricsEnabled = envBool("METRICS_ENABLED", cfg.MetricsEnabled)
	cfg.CastSampleSize = envInt("CAST_SAMPLE_SIZE", cfg.CastSampleSize)
	cfg.AccountAgeMaxFID = int64(envInt("ACCOUNT_AGE_MAX_FID", int(cfg.AccountAgeMaxFID)))
	if raw := strings.TrimSpace(os.Getenv("ACCOUNT_AGE_EPOCH")); raw != "" {
		epoch, err := time.Parse(epochLayout, raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse ACCOUNT_AGE_EPOCH: %w", err)
		}
		cfg.AccountAgeEpoch = epoch
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, raw []byte) error {
	var f configFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if f.Service.ID != "" {
		cfg.ServiceID = f.Service.ID
	}
	if f.Service.HTTPPort > 0 {
		cfg.HTTPPort = f.Service.HTTPPort
	}
	if f.Service.GRPCPort > 0 {
		cfg.GRPCPort = f.Service.GRPCPort
	}
	if f.Service.LogLevel != "" {
		cfg.LogLevel = f.Service.LogLevel
	}
	if f.Neynar.BaseURL != "" {
		cfg.NeynarBaseURL = f.Neynar.BaseURL
	}
	if f.Neynar.CastSampleSize > 0 {
		cfg.CastSampleSize = f.Neynar.CastSampleSize
	}
	if f.Chains.Ethereum != "" {
		cfg.EthereumRPC = f.Chains.Ethereum
	}
	if f.Chains.Base != "" {
		cfg.BaseRPC = f.Chains.Base
	}
	if f.Chains.Optimism != "" {
		cfg.OptimismRPC = f.Chains.Optimism
	}
	if f.Chains.Arbitrum != "" {
		cfg.ArbitrumRPC = f.Chains.Arbitrum
	}
	if f.Upstream.TimeoutSeconds > 0 {
		cfg.UpstreamTimeout = time.Duration(f.Upstream.TimeoutSeconds) * time.Second
	}
	cfg.OutboundProxyURL = f.Upstream.ProxyURL
	if len(f.Dependencies.KafkaBrokers) > 0 {
		cfg.KafkaBrokers = trimNonEmpty(f.Dependencies.KafkaBrokers)
	}
	if f.Dependencies.KafkaTopicLookups != "" {
		cfg.KafkaTopicLookups = f.Dependencies.KafkaTopicLookups
	}
	cfg.NATSURL = f.Dependencies.NATSURL
	if f.Dependencies.NATSSubjectLookups != "" {
		cfg.NATSSubjectLookups = f.Dependencies.NATSSubjectLookups
	}
	cfg.ZipkinURL = f.Dependencies.ZipkinURL
	if f.Dependencies.MetricsEnabled != nil {
		cfg.MetricsEnabled = *f.Dependencies.MetricsEnabled
	}
	if f.AccountAge.Epoch != "" {
		epoch, err := time.Parse(epochLayout, f.AccountAge.Epoch)
		if err != nil {
			return fmt.Errorf("parse account_age.epoch: %w", err)
		}
		cfg.AccountAgeEpoch = epoch
	}
	if f.AccountAge.MaxFID > 0 {
		cfg.AccountAgeMaxFID = f.AccountAge.MaxFID
	}
	return nil
}

func (c Config) validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP_PORT %d", c.HTTPPort)
	}
	if c.GRPCPort <= 0 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid GRPC_PORT %d", c.GRPCPort)
	}
	if c.CastSampleSize < 1 || c.CastSampleSize > maxCastSampleSize {
		return fmt.Errorf("CAST_SAMPLE_SIZE must be between 1 and %d", maxCastSampleSize)
	}
	if c.AccountAgeMaxFID <= 0 {
		return fmt.Errorf("ACCOUNT_AGE_MAX_FID must be positive")
	}
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

// loadDotEnv never overrides variables already set in the environment.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func envOrDefault(name, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(name)); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	default:
		return fallback
	}
}

func envCSV(name string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	return trimNonEmpty(strings.Split(raw, ","))
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
