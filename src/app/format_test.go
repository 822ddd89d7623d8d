package app

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func stringsReader(s string) io.Reader {
	return strings.NewReader(s)
}

func TestIsImage(t *testing.T) {
	for name, want := range map[string]bool{
		"logo.png":          true,
		"photo.jpg":         true,
		"photo.jpeg":        true,
		"PHOTO.JPG":         true,
		"diagram.svg":       true,
		"anim.gif":          true,
		"dir/sub/icon.png":  true,
		"notes.txt":         false,
		"report.pdf":        false,
		"archive.tar.gz":    false,
		"no-extension":      false,
		"":                  false,
		"logo.png.unknownx": false,
	} {
		assert.Equal(t, want, isImage(name), name)
	}
}

func TestJoinURL(t *testing.T) {
	for _, base := range []string{"https://assets.example.com", "https://assets.example.com/", "https://assets.example.com//"} {
		for _, name := range []string{"logo.png", "/logo.png", "//logo.png"} {
			assert.Equal(t, "https://assets.example.com/logo.png", joinURL(base, name), base+" + "+name)
		}
	}
	assert.Equal(t, "https://assets.example.com/v1/a/b.png", joinURL("https://assets.example.com/v1/", "/a/b.png"))
}

func TestFormatAsset(t *testing.T) {
	mapper := NewAssetMapper("https://assets.example.com/v1", "", ProtocolInfo)

	asset, err := mapper.formatAsset([]byte(`{"file_path":"/x.gif","tags":"t","created":"c","extra":1}`))
	require.NoError(t, err)
	assert.Equal(t, "/x.gif", asset.Path)
	assert.Equal(t, "https://assets.example.com/v1/x.gif", asset.URL)
	assert.True(t, asset.Image)

	_, err = mapper.formatAsset([]byte(`{"file_path":"x.gif","created":"c"}`))
	assert.ErrorIs(t, err, ErrMalformedAsset)

	_, err = mapper.formatAsset([]byte(`{"file_path":42,"tags":"t","created":"c"}`))
	assert.ErrorIs(t, err, ErrMalformedAsset)
}

func TestProtocolByName(t *testing.T) {
	p, err := ProtocolByName("INFO")
	require.NoError(t, err)
	assert.Equal(t, ProtocolInfo, p)

	p, err = ProtocolByName("json")
	require.NoError(t, err)
	assert.Equal(t, ProtocolJSON, p)

	_, err = ProtocolByName("")
	assert.Error(t, err)

	mode, err := ParseAuthMode("Query")
	require.NoError(t, err)
	assert.Equal(t, AuthQuery, mode)

	_, err = ParseAuthMode("cookie")
	assert.Error(t, err)
}
