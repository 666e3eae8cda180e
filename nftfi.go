// Package nftfi assembles the loan SDK: network parameter tables, the
// contract adapter registry, the loan action router and the REST query
// services, behind one constructor.
package nftfi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/LendzLabs/nftfi-go/account"
	"github.com/LendzLabs/nftfi-go/api"
	"github.com/LendzLabs/nftfi-go/auth"
	"github.com/LendzLabs/nftfi-go/config"
	"github.com/LendzLabs/nftfi-go/contracts"
	"github.com/LendzLabs/nftfi-go/listings"
	"github.com/LendzLabs/nftfi-go/loans"
	"github.com/LendzLabs/nftfi-go/observability/logging"
	"github.com/LendzLabs/nftfi-go/observability/metrics"
)

// Client is the assembled SDK for one network.
type Client struct {
	Loans    *loans.Service
	Listings *listings.Service

	network *config.Network
	backend *contracts.EthBackend
	log     *slog.Logger
}

type options struct {
	cfg         *config.Config
	networkName string
	account     account.Account
	backend     contracts.Backend
	providerURL string
	httpClient  *http.Client
	logger      *slog.Logger
	registerer  prometheus.Registerer
}

// Option configures the client.
type Option func(*options)

// WithConfig replaces the embedded parameter tables.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithNetwork selects the network table; defaults to "mainnet".
func WithNetwork(name string) Option {
	return func(o *options) { o.networkName = name }
}

// WithAccount sets the signing identity. Without one, read paths work and
// every action fails its precondition check.
func WithAccount(acct account.Account) Option {
	return func(o *options) { o.account = acct }
}

// WithBackend injects a contract-call backend directly, bypassing
// WithProviderURL.
func WithBackend(backend contracts.Backend) Option {
	return func(o *options) { o.backend = backend }
}

// WithProviderURL dials a JSON-RPC node as the contract-call backend.
func WithProviderURL(rawURL string) Option {
	return func(o *options) { o.providerURL = rawURL }
}

// WithHTTPClient overrides the HTTP client used against the REST API.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *options) { o.httpClient = httpClient }
}

// WithLogger overrides the default structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.logger = log }
}

// WithMetrics registers the SDK's collectors against reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// New assembles a client. Construction dials the RPC node when
// WithProviderURL is used but performs no contract I/O; adapters bind
// lazily on first action.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	o := options{networkName: "mainnet"}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := o.cfg
	if cfg == nil {
		loaded, err := config.Default()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	network, ok := cfg.Network(o.networkName)
	if !ok {
		return nil, fmt.Errorf("nftfi: unknown network %q", o.networkName)
	}

	log := o.logger
	if log == nil {
		log = logging.New(o.networkName)
	}
	acct := o.account
	if acct == nil {
		acct = account.Unconfigured()
	}

	client := &Client{network: network, log: log}

	backend := o.backend
	if backend == nil && o.providerURL != "" {
		ethBackend, err := contracts.NewEthBackend(ctx, o.providerURL, acct)
		if err != nil {
			return nil, err
		}
		client.backend = ethBackend
		backend = ethBackend
	}
	if backend == nil {
		backend = contracts.Unavailable()
	}

	apiOpts := []api.Option{api.WithLogger(log)}
	if o.httpClient != nil {
		apiOpts = append(apiOpts, api.WithHTTPClient(o.httpClient))
	}
	authClient, err := api.New(network.API.BaseURL, apiOpts...)
	if err != nil {
		return nil, err
	}
	tokens := auth.New(authClient, acct)
	apiClient, err := api.New(network.API.BaseURL, append(apiOpts, api.WithTokenSource(tokens))...)
	if err != nil {
		return nil, err
	}

	registry := contracts.NewRegistry(network, backend, log)
	m := metrics.New(o.registerer)

	client.Loans = loans.NewService(loans.ServiceConfig{
		Registry: registry,
		Account:  acct,
		API:      apiClient,
		Network:  network,
		Logger:   log,
		Metrics:  m,
	})
	client.Listings = listings.NewService(apiClient, network, log)
	return client, nil
}

// Network returns the active network parameter table.
func (c *Client) Network() *config.Network {
	return c.network
}

// Close releases the RPC connection when the client dialed one itself.
func (c *Client) Close() {
	if c != nil && c.backend != nil {
		c.backend.Close()
	}
}
