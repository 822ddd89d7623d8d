package app

import (
	"encoding/json"
	"errors"
)

type (
	// Asset is the normalized record of an asset stored on the server.
	Asset struct {
		// Path is the server assigned path or filename of the asset.
		Path string

		// Tags is the comma separated tag string, passed through as is.
		Tags string

		// URL is the absolute address of the asset on the server.
		URL string

		// Image reports whether the path names a recognized image type.
		Image bool

		// Created is the server timestamp, passed through as is.
		Created string

		keyField string
	}

	// CreateResult holds the outcome of a create call. Exactly one of Asset
	// and Conflict is set.
	CreateResult struct {
		Asset *Asset `json:"asset,omitempty"`

		// Conflict is the raw server body returned when the asset already exists.
		Conflict json.RawMessage `json:"conflict,omitempty"`
	}

	CreateOptions struct {
		Tags     string
		Optimize bool
	}
)

var (
	ErrMalformedAsset = errors.New("malformed asset response")
	ErrUnsupported    = errors.New("operation not supported by asset protocol")
)

func (r CreateResult) Conflicted() bool {
	return r.Asset == nil && r.Conflict != nil
}

// KeyField returns the name the asset path is published under.
func (a Asset) KeyField() string {
	if a.keyField == "" {
		return ProtocolInfo.KeyField
	}
	return a.keyField
}

func (a Asset) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		a.KeyField(): a.Path,
		"tags":       a.Tags,
		"url":        a.URL,
		"image":      a.Image,
		"created":    a.Created,
	})
}
