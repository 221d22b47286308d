package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supplier codes. Codes never contain an underscore since they prefix offer ids.
const (
	SupplierLocal   = "local"
	SupplierGDS     = "gds"
	SupplierNDC     = "ndc"
	SupplierPartner = "partner"
)

// SupplierSettings is the resolved, immutable configuration of one adapter.
type SupplierSettings struct {
	Code    string
	Name    string
	Active  bool
	Healthy bool

	BaseURL      string
	AuthURL      string
	APIKey       string
	APISecret    string
	ClientID     string
	ClientSecret string
	APIVersion   string

	Timeout    time.Duration
	RetryTimes int
	RetryDelay time.Duration
	VerifyTLS  bool

	CacheSearch    bool
	SearchCacheTTL time.Duration
	OfferTTL       time.Duration
	TokenTTLMargin time.Duration

	SimulateSandboxFailures bool
	SandboxErrorCodes       []string

	RateLimitRPS   float64
	RateLimitBurst int

	Environment string

	// RecordID is the supplier_configs row backing these settings, 0 when file-configured only.
	RecordID uint
}

// HasRecord reports whether a persisted record backs these settings.
func (s SupplierSettings) HasRecord() bool {
	return s.RecordID != 0
}

// IsProduction reports whether the adapter runs against production.
func (s SupplierSettings) IsProduction() bool {
	return s.Environment == "production"
}

// SandboxSimulationEnabled reports whether sandbox-only booking failures may be simulated.
// Never true in production.
func (s SupplierSettings) SandboxSimulationEnabled() bool {
	return s.SimulateSandboxFailures && !s.IsProduction()
}

// IsSandboxErrorCode reports whether a provider error code is one of the configured sandbox-only codes.
func (s SupplierSettings) IsSandboxErrorCode(code string) bool {
	return code != "" && slices.Contains(s.SandboxErrorCodes, code)
}

// Validate checks the fields every remote adapter needs.
func (s SupplierSettings) Validate() error {
	if s.Code == "" || strings.Contains(s.Code, "_") {
		return fmt.Errorf("supplier code %q must be non-empty and contain no underscore", s.Code)
	}
	if s.Code != SupplierLocal && s.BaseURL == "" {
		return fmt.Errorf("supplier %s: base_url is required", s.Code)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("supplier %s: timeout must be positive", s.Code)
	}
	if s.RetryTimes < 0 {
		return fmt.Errorf("supplier %s: retry_times must not be negative", s.Code)
	}
	if s.CacheSearch && s.SearchCacheTTL > s.OfferTTL {
		return fmt.Errorf("supplier %s: search_cache_ttl must not exceed offer_ttl", s.Code)
	}
	return nil
}

// SupplierOverride is one configuration layer. Nil fields leave the lower layer untouched.
type SupplierOverride struct {
	Name   *string `mapstructure:"name"`
	Active *bool   `mapstructure:"active"`

	BaseURL      *string `mapstructure:"base_url"`
	AuthURL      *string `mapstructure:"auth_url"`
	APIKey       *string `mapstructure:"api_key"`
	APISecret    *string `mapstructure:"api_secret"`
	ClientID     *string `mapstructure:"client_id"`
	ClientSecret *string `mapstructure:"client_secret"`
	APIVersion   *string `mapstructure:"api_version"`

	Timeout    *time.Duration `mapstructure:"timeout"`
	RetryTimes *int           `mapstructure:"retry_times"`
	RetryDelay *time.Duration `mapstructure:"retry_delay"`
	VerifyTLS  *bool          `mapstructure:"verify_tls"`

	CacheSearch    *bool          `mapstructure:"cache_search"`
	SearchCacheTTL *time.Duration `mapstructure:"search_cache_ttl"`
	OfferTTL       *time.Duration `mapstructure:"offer_ttl"`

	SimulateSandboxFailures *bool    `mapstructure:"simulate_sandbox_failures"`
	SandboxErrorCodes       []string `mapstructure:"sandbox_error_codes"`

	RateLimitRPS   *float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst *int     `mapstructure:"rate_limit_burst"`

	Healthy  *bool `mapstructure:"-"`
	RecordID uint  `mapstructure:"-"`
}

// DefaultSupplierSettings returns the built-in layer for a supplier code,
// seeded from the process configuration when cfg is non-nil.
func DefaultSupplierSettings(code string, cfg *Config) SupplierSettings {
	s := SupplierSettings{
		Code:           code,
		Name:           code,
		Active:         true,
		Healthy:        true,
		Timeout:        30 * time.Second,
		RetryTimes:     2,
		RetryDelay:     time.Second,
		VerifyTLS:      true,
		SearchCacheTTL: 5 * time.Minute,
		OfferTTL:       30 * time.Minute,
		TokenTTLMargin: 2 * time.Minute,
		RateLimitRPS:   10,
		RateLimitBurst: 20,
		Environment:    "development",
	}

	switch code {
	case SupplierLocal:
		s.Name = "Local Inventory"
		s.RetryTimes = 0
		s.Timeout = 5 * time.Second
		s.RateLimitRPS = 0
	case SupplierGDS:
		s.Name = "GDS"
		s.BaseURL = "https://test.api.amadeus.com"
		s.SandboxErrorCodes = []string{"34651"}
	case SupplierNDC:
		s.Name = "NDC Aggregator"
		s.BaseURL = "https://api.duffel.com"
		s.APIVersion = "v2"
	case SupplierPartner:
		s.Name = "Partner API"
	}

	if cfg != nil {
		s.Environment = cfg.App.Env
		s.CacheSearch = cfg.Cache.SearchEnabled
		s.SearchCacheTTL = cfg.Cache.SearchTTL
		s.OfferTTL = cfg.Cache.OfferTTL
		s.TokenTTLMargin = cfg.Cache.TokenTTLMargin
		if code != SupplierLocal {
			s.RateLimitRPS = cfg.RateLimit.RequestsPerSecond
			s.RateLimitBurst = cfg.RateLimit.Burst
		}
	}

	return s
}

// ResolveSupplier applies layers over base in order, later layers winning.
// The usual order is file defaults then the database record.
func ResolveSupplier(base SupplierSettings, layers ...*SupplierOverride) SupplierSettings {
	s := base
	s.SandboxErrorCodes = slices.Clone(base.SandboxErrorCodes)

	for _, o := range layers {
		if o == nil {
			continue
		}
		setString(&s.Name, o.Name)
		setBool(&s.Active, o.Active)
		setBool(&s.Healthy, o.Healthy)
		setString(&s.BaseURL, o.BaseURL)
		setString(&s.AuthURL, o.AuthURL)
		setString(&s.APIKey, o.APIKey)
		setString(&s.APISecret, o.APISecret)
		setString(&s.ClientID, o.ClientID)
		setString(&s.ClientSecret, o.ClientSecret)
		setString(&s.APIVersion, o.APIVersion)
		setDuration(&s.Timeout, o.Timeout)
		if o.RetryTimes != nil {
			s.RetryTimes = *o.RetryTimes
		}
		setDuration(&s.RetryDelay, o.RetryDelay)
		setBool(&s.VerifyTLS, o.VerifyTLS)
		setBool(&s.CacheSearch, o.CacheSearch)
		setDuration(&s.SearchCacheTTL, o.SearchCacheTTL)
		setDuration(&s.OfferTTL, o.OfferTTL)
		setBool(&s.SimulateSandboxFailures, o.SimulateSandboxFailures)
		if o.SandboxErrorCodes != nil {
			s.SandboxErrorCodes = slices.Clone(o.SandboxErrorCodes)
		}
		if o.RateLimitRPS != nil {
			s.RateLimitRPS = *o.RateLimitRPS
		}
		if o.RateLimitBurst != nil {
			s.RateLimitBurst = *o.RateLimitBurst
		}
		if o.RecordID != 0 {
			s.RecordID = o.RecordID
		}
	}

	s.BaseURL = strings.TrimRight(s.BaseURL, "/")
	return s
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *time.Duration) {
	if v != nil {
		*dst = *v
	}
}

type suppliersFile struct {
	Suppliers map[string]SupplierOverride `mapstructure:"suppliers"`
}

// LoadSupplierDefaults reads the suppliers defaults file. A missing file is not an error.
// Keys present in the file can be overridden from the environment,
// e.g. FSG_SUPPLIERS_GDS_CLIENT_SECRET.
func LoadSupplierDefaults(path string) (map[string]SupplierOverride, error) {
	out := make(map[string]SupplierOverride)
	if path == "" {
		return out, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("FSG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return out, nil
		}
		return nil, fmt.Errorf("failed to read suppliers file: %w", err)
	}

	var file suppliersFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal suppliers file: %w", err)
	}

	for code, o := range file.Suppliers {
		out[strings.ToLower(code)] = o
	}
	return out, nil
}
