// Package vault implements kv.Reader over the Vault HTTP API.
package vault

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/systmms/vaultkv/internal/logging"
	"github.com/systmms/vaultkv/pkg/kv"
)

const (
	DefaultTimeout = 30 * time.Second

	// maxErrorBody bounds how much of an error response is kept for messages.
	maxErrorBody = 4 * 1024
)

// Config holds the connection settings for a Vault server.
type Config struct {
	Address    string `yaml:"address"`     // Vault server address
	Namespace  string `yaml:"namespace"`   // Vault namespace (Vault Enterprise)
	CACert     string `yaml:"ca_cert"`     // Path to CA certificate
	ClientCert string `yaml:"client_cert"` // Path to client certificate
	ClientKey  string `yaml:"client_key"`  // Path to client key
	TLSSkip    bool   `yaml:"tls_skip"`    // Skip TLS verification (not recommended)
	TimeoutMs  int    `yaml:"timeout_ms"`  // Request timeout in milliseconds
}

// ApplyEnv overrides config fields from the standard VAULT_* environment
// variables, matching the vault CLI's conventions.
func (c *Config) ApplyEnv() {
	if addr := os.Getenv("VAULT_ADDR"); addr != "" {
		c.Address = addr
	}
	if namespace := os.Getenv("VAULT_NAMESPACE"); namespace != "" {
		c.Namespace = namespace
	}
	if caCert := os.Getenv("VAULT_CACERT"); caCert != "" {
		c.CACert = caCert
	}
	if clientCert := os.Getenv("VAULT_CLIENT_CERT"); clientCert != "" {
		c.ClientCert = clientCert
	}
	if clientKey := os.Getenv("VAULT_CLIENT_KEY"); clientKey != "" {
		c.ClientKey = clientKey
	}
	if skip := os.Getenv("VAULT_SKIP_VERIFY"); skip == "1" || strings.EqualFold(skip, "true") {
		c.TLSSkip = true
	}
}

func (c Config) timeout() time.Duration {
	if c.TimeoutMs > 0 {
		return time.Duration(c.TimeoutMs) * time.Millisecond
	}
	return DefaultTimeout
}

// TokenSource supplies the Vault token attached to each request.
type TokenSource interface {
	Token() (string, error)
}

// Client talks to a single Vault server. It implements kv.Reader.
type Client struct {
	config Config
	tokens TokenSource
	logger *logging.Logger
	http   *http.Client
}

// New creates a Client for cfg. It fails when cfg has no address or when the
// configured TLS material cannot be loaded.
func New(cfg Config, tokens TokenSource, logger *logging.Logger) (*Client, error) {
	if cfg.Address == "" {
		return nil, fmt.Errorf("vault address is required (set vault.address or VAULT_ADDR)")
	}
	if logger == nil {
		logger = logging.New(false, true)
	}

	httpClient, err := newHTTPClient(cfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		config: cfg,
		tokens: tokens,
		logger: logger,
		http:   httpClient,
	}, nil
}

// Read fetches path from Vault. A 404 yields (nil, nil); any other
// non-success status yields a *kv.RequestError carrying the status code.
func (c *Client) Read(ctx context.Context, path string) (*kv.Response, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("no vault token available: %w", err)
	}

	url := strings.TrimSuffix(c.config.Address, "/") + "/v1/" + strings.TrimPrefix(path, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Vault-Token", token)
	if c.config.Namespace != "" {
		req.Header.Set("X-Vault-Namespace", c.config.Namespace)
	}

	c.logger.Debug("GET %s", url)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil // nothing at this path
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &kv.RequestError{
			StatusCode: resp.StatusCode,
			Path:       path,
			Body:       readErrorBody(resp.Body),
		}
	}

	var response kv.Response
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &response, nil
}

// readErrorBody extracts Vault's error strings from a failed response,
// falling back to the raw body.
func readErrorBody(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return ""
	}

	var parsed struct {
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Errors) > 0 {
		return strings.Join(parsed.Errors, "; ")
	}

	return strings.TrimSpace(string(body))
}

// newHTTPClient builds the underlying HTTP client, loading TLS material when
// configured.
func newHTTPClient(cfg Config) (*http.Client, error) {
	client := &http.Client{
		Timeout: cfg.timeout(),
	}

	if !cfg.TLSSkip && cfg.CACert == "" && cfg.ClientCert == "" {
		return client, nil
	}

	tlsConfig := &tls.Config{
		InsecureSkipVerify: cfg.TLSSkip,
	}

	if cfg.CACert != "" {
		pem, err := os.ReadFile(cfg.CACert)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in %s", cfg.CACert)
		}
		tlsConfig.RootCAs = pool
	}

	if cfg.ClientCert != "" || cfg.ClientKey != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCert, cfg.ClientKey)
		if err != nil {
			return nil, fmt.Errorf("failed to load client certificate: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	client.Transport = &http.Transport{
		TLSClientConfig: tlsConfig,
	}

	return client, nil
}
