package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectLicenses(t *testing.T) {
	tests := []struct {
		self, deps bool
		want       []License
	}{
		{true, true, []License{ThisSoftware, Dependencies}},
		{true, false, []License{ThisSoftware}},
		{false, true, []License{Dependencies}},
		{false, false, []License{}},
	}
	for _, tt := range tests {
		got := SelectLicenses(tt.self, tt.deps)
		assert.Equal(t, tt.want, got, "self=%t deps=%t", tt.self, tt.deps)
	}
}

func TestLicense_String(t *testing.T) {
	assert.Equal(t, "this-software", ThisSoftware.String())
	assert.Equal(t, "dependencies", Dependencies.String())
	assert.Equal(t, "unknown", License(7).String())
}
