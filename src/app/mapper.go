package app

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	cfg "assetmapper/src/configuration"
)

type (
	// AssetMapper maps the asset server API into Asset records.
	AssetMapper struct {
		serverURL string
		authToken string
		authMode  AuthMode
		protocol  Protocol
		client    HTTPDoer
		logger    *log.Logger
	}

	Option func(*AssetMapper)
)

const defaultTimeout = 30 * time.Second

func WithAuthMode(mode AuthMode) Option {
	return func(m *AssetMapper) {
		if mode != AuthDefault {
			m.authMode = mode
		}
	}
}

func WithHTTPClient(client HTTPDoer) Option {
	return func(m *AssetMapper) {
		if client != nil {
			m.client = client
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(m *AssetMapper) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewAssetMapper creates a mapper for the server at serverURL. An empty
// authToken sends every request anonymously. Nothing is validated here:
// a malformed serverURL surfaces as an error on the first request.
func NewAssetMapper(serverURL, authToken string, protocol Protocol, opts ...Option) *AssetMapper {
	mapper := &AssetMapper{
		serverURL: serverURL,
		authToken: authToken,
		authMode:  protocol.Auth,
		protocol:  protocol,
		client:    &http.Client{Timeout: defaultTimeout},
		logger:    log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(mapper)
	}
	return mapper
}

// NewAssetMapperFromProperties builds the mapper described by the ASSETS_
// configuration section.
func NewAssetMapperFromProperties(config *cfg.Properties, client HTTPDoer) (*AssetMapper, error) {
	if config == nil {
		return nil, fmt.Errorf("config is not valid")
	}
	protocol, err := ProtocolByName(config.Assets.Protocol)
	if err != nil {
		return nil, err
	}
	mode, err := ParseAuthMode(config.Assets.AuthMode)
	if err != nil {
		return nil, err
	}
	opts := []Option{WithAuthMode(mode), WithHTTPClient(client)}
	if strings.EqualFold(config.LogLevel, "DEBUG") {
		opts = append(opts, WithLogger(log.Default()))
	}
	return NewAssetMapper(config.Assets.ServerURL, config.Assets.AuthToken, protocol, opts...), nil
}

func (m *AssetMapper) ServerURL() string {
	return m.serverURL
}

func (m *AssetMapper) Protocol() Protocol {
	return m.protocol
}

// Get fetches the metadata of a single asset.
func (m *AssetMapper) Get(ctx context.Context, id string) (*Asset, error) {
	_, data, err := m.execute(ctx, requestCall{
		method: http.MethodGet,
		target: joinURL(m.serverURL, id) + m.protocol.MetaSuffix,
	})
	if err != nil {
		return nil, err
	}
	return m.formatAsset(data)
}

// All lists the assets on the server, filtered by search when it is not empty.
// The server's order is preserved.
func (m *AssetMapper) All(ctx context.Context, search string) ([]Asset, error) {
	call := requestCall{
		method: http.MethodGet,
		target: m.serverURL,
	}
	if search != "" {
		call.query = url.Values{"q": {search}}
	}

	_, data, err := m.execute(ctx, call)
	if err != nil {
		return nil, err
	}
	return m.formatAssets(data)
}

// Create uploads content under a friendly name from which the server
// derives the asset path.
func (m *AssetMapper) Create(ctx context.Context, content []byte, name string, opts CreateOptions) (CreateResult, error) {
	return m.createAsset(ctx, map[string]any{
		"asset":              base64.StdEncoding.EncodeToString(content),
		m.protocol.NameField: name,
		"tags":               opts.Tags,
		"optimize":           opts.Optimize,
		"type":               "base64",
	})
}

// CreateAtPath uploads content to an explicit path on the server.
func (m *AssetMapper) CreateAtPath(ctx context.Context, content []byte, urlPath, tags string) (CreateResult, error) {
	if m.protocol.PathField == "" {
		return CreateResult{}, fmt.Errorf("create at path with protocol %q: %w", m.protocol.Name, ErrUnsupported)
	}
	return m.createAsset(ctx, map[string]any{
		"asset":              base64.StdEncoding.EncodeToString(content),
		m.protocol.PathField: urlPath,
		"tags":               tags,
		"type":               "base64",
	})
}

// Update replaces the tags of an asset.
func (m *AssetMapper) Update(ctx context.Context, id, tags string) (*Asset, error) {
	_, data, err := m.execute(ctx, requestCall{
		method:  http.MethodPut,
		target:  joinURL(m.serverURL, id),
		payload: map[string]any{"tags": tags},
	})
	if err != nil {
		return nil, err
	}
	return m.formatAsset(data)
}

func (m *AssetMapper) createAsset(ctx context.Context, payload map[string]any) (CreateResult, error) {
	status, data, err := m.execute(ctx, requestCall{
		method:  http.MethodPost,
		target:  m.serverURL,
		payload: payload,
		allowed: []int{http.StatusConflict},
	})
	if err != nil {
		return CreateResult{}, err
	}

	if status == http.StatusConflict {
		if !json.Valid(data) {
			return CreateResult{}, fmt.Errorf("decode conflict response: invalid JSON body")
		}
		return CreateResult{Conflict: json.RawMessage(data)}, nil
	}

	asset, err := m.formatAsset(data)
	if err != nil {
		return CreateResult{}, err
	}
	return CreateResult{Asset: asset}, nil
}
