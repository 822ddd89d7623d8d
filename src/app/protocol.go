package app

import (
	"fmt"
	"strings"
)

type (
	// AuthMode selects how the auth token travels with a request.
	AuthMode string

	// BodyEncoding selects how create and update payloads are serialized.
	BodyEncoding int

	// Protocol describes one version of the asset server API. A mapper speaks
	// exactly one protocol for its whole lifetime.
	Protocol struct {
		Name string
		// KeyField is the response field holding the asset path or filename.
		KeyField string
		// MetaSuffix is appended to the asset URL to fetch its metadata.
		MetaSuffix string
		// Auth is the default token placement, overridable per mapper.
		Auth AuthMode
		Body BodyEncoding
		// NameField carries the friendly name on create.
		NameField string
		// PathField carries an explicit target path on create; empty if unsupported.
		PathField string
	}
)

const (
	AuthDefault AuthMode = ""
	AuthHeader  AuthMode = "header"
	AuthQuery   AuthMode = "query"
)

const (
	BodyForm BodyEncoding = iota
	BodyJSON
)

var (
	// ProtocolInfo is the path based API: metadata lives at {path}/info and
	// the token is sent in the Authorization header.
	ProtocolInfo = Protocol{
		Name:       "info",
		KeyField:   "file_path",
		MetaSuffix: "/info",
		Auth:       AuthHeader,
		Body:       BodyForm,
		NameField:  "friendly-name",
		PathField:  "url-path",
	}

	// ProtocolJSON is the filename based API: metadata lives at {filename}.json
	// and the token is sent as a query parameter.
	ProtocolJSON = Protocol{
		Name:       "json",
		KeyField:   "filename",
		MetaSuffix: ".json",
		Auth:       AuthQuery,
		Body:       BodyJSON,
		NameField:  "friendly-name",
		PathField:  "url-path",
	}

	protocols = []Protocol{ProtocolInfo, ProtocolJSON}
)

// ProtocolByName resolves a protocol version by name. There is no default:
// an empty or unknown name is an error.
func ProtocolByName(name string) (Protocol, error) {
	for _, p := range protocols {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Protocol{}, fmt.Errorf("unknown asset protocol %q", name)
}

func ParseAuthMode(value string) (AuthMode, error) {
	switch mode := AuthMode(strings.ToLower(value)); mode {
	case AuthDefault, AuthHeader, AuthQuery:
		return mode, nil
	}
	return AuthDefault, fmt.Errorf("unknown auth mode %q", value)
}
