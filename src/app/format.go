package app

import (
	"encoding/json"
	"fmt"
	"mime"
	"path"
	"slices"
	"strings"
)

var imageTypes = []string{"image/png", "image/jpeg", "image/svg+xml", "image/gif"}

func (m *AssetMapper) formatAssets(data []byte) ([]Asset, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode asset list: %w", err)
	}

	assets := make([]Asset, 0, len(items))
	for _, item := range items {
		asset, err := m.formatAsset(item)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *asset)
	}
	return assets, nil
}

func (m *AssetMapper) formatAsset(data []byte) (*Asset, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decode asset: %w", err)
	}

	var asset Asset
	for name, target := range map[string]*string{
		m.protocol.KeyField: &asset.Path,
		"tags":              &asset.Tags,
		"created":           &asset.Created,
	} {
		raw, ok := fields[name]
		if !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrMalformedAsset, name)
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return nil, fmt.Errorf("%w: field %q: %v", ErrMalformedAsset, name, err)
		}
	}

	asset.URL = joinURL(m.serverURL, asset.Path)
	asset.Image = isImage(asset.Path)
	asset.keyField = m.protocol.KeyField
	return &asset, nil
}

// isImage guesses the MIME type from the name's extension.
func isImage(name string) bool {
	mimetype := mime.TypeByExtension(path.Ext(name))
	if index := strings.IndexByte(mimetype, ';'); index >= 0 {
		mimetype = strings.TrimSpace(mimetype[:index])
	}
	return slices.Contains(imageTypes, mimetype)
}

// joinURL joins base and name with exactly one slash between them.
func joinURL(base, name string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(name, "/")
}
