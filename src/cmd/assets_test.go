package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFriendlyName(t *testing.T) {
	tests := []struct {
		file, name, want string
	}{
		{file: "./img/logo.png", want: "logo.png"},
		{file: "logo.png", want: "logo.png"},
		{file: "/tmp/assets/icon.svg", want: "icon.svg"},
		{file: "./img/logo.png", name: "brand logo", want: "brand logo"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, friendlyName(tt.file, tt.name), tt.file)
	}
}
