// Package config loads the service configuration from the environment.
//
// Every option recognized by the original SSOtica integration is kept
// under its original variable name. Everything has a default except the
// portal credentials.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Defaults for every optional setting.
const (
	DefaultPort            = "3189"
	DefaultBaseURL         = "https://app.ssotica.com.br"
	DefaultReceivablesPath = "/financeiro/contas-a-receber/LwlRRM/listar"
	DefaultSearchTypeValue = "nome_apelido"
	DefaultStatusAberto    = "aberto"
	DefaultStatusAtraso    = "atraso"
	DefaultResultsTimeout  = 10 * time.Second
)

// Config holds every setting the service consumes.
type Config struct {
	// Port is the HTTP listen port.
	Port string

	// BaseURL is the portal root, also the login page.
	BaseURL string

	// ReceivablesPath is the path of the "Contas a Receber" listing.
	ReceivablesPath string

	// SearchTypeValue is the value selected in the search-type select
	// element (search by name/nickname).
	SearchTypeValue string

	// StatusAberto and StatusAtraso are the lowercase keywords matched
	// against installment statuses to classify them open or overdue.
	StatusAberto string
	StatusAtraso string

	// ResultsTimeout bounds the wait for search results to appear.
	ResultsTimeout time.Duration

	// Email and Password are the portal credentials. Opaque; passed
	// through to the login form unmodified.
	Email    string
	Password string
}

// Load reads the configuration from the environment, applying defaults
// everywhere one exists.
func Load() (Config, error) {
	cfg := Config{
		Port:            envOr("PORT", DefaultPort),
		BaseURL:         envOr("SSOTICA_BASE_URL", DefaultBaseURL),
		ReceivablesPath: envOr("SSOTICA_CONTAS_A_RECEBER_PATH", DefaultReceivablesPath),
		SearchTypeValue: envOr("SSOTICA_SEARCH_TYPE_VALUE", DefaultSearchTypeValue),
		StatusAberto:    envOr("STATUS_FILTER_ABERTO", DefaultStatusAberto),
		StatusAtraso:    envOr("STATUS_FILTER_ATRASO", DefaultStatusAtraso),
		ResultsTimeout:  DefaultResultsTimeout,
		Email:           os.Getenv("SSOTICA_EMAIL"),
		Password:        os.Getenv("SSOTICA_PASSWORD"),
	}

	if raw := os.Getenv("WAIT_FOR_RESULTS_TIMEOUT"); raw != "" {
		millis, err := strconv.Atoi(raw)
		if err != nil || millis <= 0 {
			return Config{}, fmt.Errorf("invalid WAIT_FOR_RESULTS_TIMEOUT %q", raw)
		}
		cfg.ResultsTimeout = time.Duration(millis) * time.Millisecond
	}

	return cfg, nil
}

// Validate reports whether the configuration is complete enough to
// start the service. Credentials are the only settings without
// defaults.
func (c Config) Validate() error {
	if c.Email == "" {
		return errors.New("SSOTICA_EMAIL is required")
	}
	if c.Password == "" {
		return errors.New("SSOTICA_PASSWORD is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
