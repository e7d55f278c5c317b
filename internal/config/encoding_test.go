package config

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJPEGSettings_DefaultWhenAbsent(t *testing.T) {
	s, err := NewJPEGSettings(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultJPEGQuality, s.Quality())
}

func TestNewJPEGSettings_AcceptsWholeRange(t *testing.T) {
	for q := MinJPEGQuality; q <= MaxJPEGQuality; q++ {
		s, err := NewJPEGSettings(strp(fmt.Sprint(q)))
		require.NoError(t, err, "quality %d", q)
		assert.Equal(t, q, s.Quality())
	}
}

func TestNewJPEGSettings_RejectsInvalidValues(t *testing.T) {
	for _, v := range []string{"0", "101", "-1", "1000", "", "abc", "85.5", " 85", "1e2", "9999999999999999999999"} {
		t.Run(fmt.Sprintf("%q", v), func(t *testing.T) {
			_, err := NewJPEGSettings(strp(v))
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "jpeg-encoding-quality", verr.Flag)
			assert.Equal(t, v, verr.Value)
			assert.Contains(t, err.Error(), fmt.Sprintf("%q", v))
			assert.Contains(t, err.Error(), "1 and 100")
		})
	}
}

func TestResolveEncodingSettings(t *testing.T) {
	s, err := ResolveEncodingSettings(strp("10"), true)
	require.NoError(t, err)
	assert.Equal(t, 10, s.JPEG.Quality())
	assert.True(t, s.PNM.ASCII)

	_, err = ResolveEncodingSettings(strp("nope"), true)
	require.Error(t, err)

	s, err = ResolveEncodingSettings(nil, false)
	require.NoError(t, err)
	assert.Equal(t, NewPNMSettings(false), s.PNM)
}
