package dovetale

import (
	"testing"

	errs "dovetale/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlatform(t *testing.T) {
	for _, p := range Platforms {
		got, err := ParsePlatform(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	got, err := ParsePlatform(" YouTube ")
	require.NoError(t, err)
	assert.Equal(t, PlatformYouTube, got)

	_, err = ParsePlatform("")
	assert.True(t, errs.IsMissingParameter(err))

	_, err = ParsePlatform("myspace")
	assert.True(t, errs.Is(err, errs.ErrorTypeInvalidParameter))
}

func TestParseProfileID(t *testing.T) {
	tests := []struct {
		name        string
		profileType string
		profile     string
		platform    string
		want        ProfileID
		wantErr     errs.ErrorType
	}{
		{
			name:        "url ignores platform",
			profileType: "url",
			profile:     "https://twitter.com/x",
			platform:    "instagram",
			want:        ProfileURL{URL: "https://twitter.com/x"},
		},
		{
			name:        "username",
			profileType: "username",
			profile:     "abc",
			platform:    "instagram",
			want:        Username{Platform: PlatformInstagram, Name: "abc"},
		},
		{
			name:     "type defaults to username",
			profile:  "abc",
			platform: "twitch",
			want:     Username{Platform: PlatformTwitch, Name: "abc"},
		},
		{
			name:        "platform id",
			profileType: "platformid",
			profile:     "12345",
			platform:    "facebook",
			want:        PlatformID{Platform: PlatformFacebook, ID: "12345"},
		},
		{
			name:        "username without platform",
			profileType: "username",
			profile:     "abc",
			wantErr:     errs.ErrorTypeMissingParameter,
		},
		{
			name:        "empty profile",
			profileType: "url",
			wantErr:     errs.ErrorTypeMissingParameter,
		},
		{
			name:        "unknown type",
			profileType: "email",
			profile:     "a@b.c",
			wantErr:     errs.ErrorTypeInvalidParameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseProfileID(tt.profileType, tt.profile, tt.platform)
			if tt.wantErr != "" {
				assert.True(t, errs.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProfileIDParams(t *testing.T) {
	params, err := ByPlatformID(PlatformTwitter, "42").params()
	require.NoError(t, err)
	assert.Equal(t, "platform=twitter&platform_id=42", params.Encode())

	_, err = Username{Platform: "myspace", Name: "tom"}.params()
	assert.True(t, errs.Is(err, errs.ErrorTypeInvalidParameter))

	assert.Equal(t, ProfileTypePlatformID, ByPlatformID(PlatformTwitch, "1").Type())
	assert.Equal(t, "instagram/@natgeo", ByUsername(PlatformInstagram, "natgeo").String())
	assert.Equal(t, "natgeo", ByUsername(PlatformInstagram, "natgeo").Value())
}

func TestParseListID(t *testing.T) {
	assert.Equal(t, 42, ParseListID("42"))
	assert.Equal(t, 42, ParseListID(" 42 "))
	assert.Equal(t, 0, ParseListID("abc"))
	assert.Equal(t, 0, ParseListID(""))
	assert.Equal(t, 0, ParseListID("-5"))
}
