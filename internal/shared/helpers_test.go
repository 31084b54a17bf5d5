package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePipName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Flask", "flask"},
		{"my_pkg", "my-pkg"},
		{"Django_Rest.Framework", "django-rest-framework"},
		{"  requests  ", "requests"},
		{"already-normal", "already-normal"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePipName(tt.input), "input %q", tt.input)
	}
}

func TestHTTPStatusError(t *testing.T) {
	err := HTTPStatusError(503, "http://host/simple/")
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "http://host/simple/")
}
