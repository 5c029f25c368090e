package dovetale

import (
	"fmt"
	"net/url"
	"strings"

	errs "dovetale/pkg/errors"
)

// Platform is a social network supported by Dovetale
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTwitter   Platform = "twitter"
	PlatformYouTube   Platform = "youtube"
	PlatformFacebook  Platform = "facebook"
	PlatformTwitch    Platform = "twitch"
)

// Platforms lists every supported platform
var Platforms = []Platform{
	PlatformInstagram,
	PlatformTwitter,
	PlatformYouTube,
	PlatformFacebook,
	PlatformTwitch,
}

// Valid reports whether p is one of the supported platforms
func (p Platform) Valid() bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}

func (p Platform) String() string {
	return string(p)
}

// ParsePlatform converts a platform name into a Platform
func ParsePlatform(s string) (Platform, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", errs.MissingParameter("platform")
	}
	p := Platform(s)
	if !p.Valid() {
		return "", errs.InvalidParameter("platform", s)
	}
	return p, nil
}

// ProfileType tags how a profile is identified
type ProfileType string

const (
	ProfileTypeURL        ProfileType = "url"
	ProfileTypeUsername   ProfileType = "username"
	ProfileTypePlatformID ProfileType = "platformid"
)

// ProfileID identifies a social profile. It is implemented only by
// ProfileURL, Username and PlatformID.
type ProfileID interface {
	Type() ProfileType
	// Value is the identifier itself: the URL, username or numeric id
	Value() string
	String() string

	// params validates the identifier and returns its request parameters
	params() (url.Values, error)
}

// ProfileURL identifies a profile by its full URL, e.g. https://twitter.com/XCELTALENT
type ProfileURL struct {
	URL string
}

// Username identifies a profile by its handle on a platform
type Username struct {
	Platform Platform
	Name     string
}

// PlatformID identifies a profile by the numeric id the platform assigned to it
type PlatformID struct {
	Platform Platform
	ID       string
}

// ByURL returns a URL profile identifier
func ByURL(profileURL string) ProfileURL {
	return ProfileURL{URL: profileURL}
}

// ByUsername returns a username profile identifier
func ByUsername(platform Platform, name string) Username {
	return Username{Platform: platform, Name: name}
}

// ByPlatformID returns a platform-id profile identifier
func ByPlatformID(platform Platform, id string) PlatformID {
	return PlatformID{Platform: platform, ID: id}
}

func (p ProfileURL) Type() ProfileType { return ProfileTypeURL }
func (p ProfileURL) Value() string     { return p.URL }
func (p ProfileURL) String() string    { return p.URL }

func (p ProfileURL) params() (url.Values, error) {
	if strings.TrimSpace(p.URL) == "" {
		return nil, errs.MissingParameter("url")
	}
	return url.Values{"url": {p.URL}}, nil
}

func (p Username) Type() ProfileType { return ProfileTypeUsername }
func (p Username) Value() string     { return p.Name }
func (p Username) String() string    { return fmt.Sprintf("%s/@%s", p.Platform, p.Name) }

func (p Username) params() (url.Values, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, errs.MissingParameter("username")
	}
	if err := checkPlatform(p.Platform); err != nil {
		return nil, err
	}
	return url.Values{
		"platform": {string(p.Platform)},
		"username": {p.Name},
	}, nil
}

func (p PlatformID) Type() ProfileType { return ProfileTypePlatformID }
func (p PlatformID) Value() string     { return p.ID }
func (p PlatformID) String() string    { return fmt.Sprintf("%s/#%s", p.Platform, p.ID) }

func (p PlatformID) params() (url.Values, error) {
	if strings.TrimSpace(p.ID) == "" {
		return nil, errs.MissingParameter("platform_id")
	}
	if err := checkPlatform(p.Platform); err != nil {
		return nil, err
	}
	return url.Values{
		"platform":    {string(p.Platform)},
		"platform_id": {p.ID},
	}, nil
}

// resolveProfile dereferences pointer variants. A nil identifier, typed or
// not, is reported as missing.
func resolveProfile(profile ProfileID) (ProfileID, error) {
	switch p := profile.(type) {
	case nil:
		return nil, errs.MissingParameter("profile")
	case *ProfileURL:
		if p == nil {
			return nil, errs.MissingParameter("profile")
		}
		return *p, nil
	case *Username:
		if p == nil {
			return nil, errs.MissingParameter("profile")
		}
		return *p, nil
	case *PlatformID:
		if p == nil {
			return nil, errs.MissingParameter("profile")
		}
		return *p, nil
	}
	return profile, nil
}

func checkPlatform(p Platform) error {
	if p == "" {
		return errs.MissingParameter("platform")
	}
	if !p.Valid() {
		return errs.InvalidParameter("platform", string(p))
	}
	return nil
}

// ParseProfileID builds a ProfileID from the string tags url, username and
// platformid. The platform is ignored for url and required otherwise.
func ParseProfileID(profileType, profile, platform string) (ProfileID, error) {
	if strings.TrimSpace(profile) == "" {
		return nil, errs.MissingParameter("profile")
	}

	pt := ProfileType(strings.ToLower(strings.TrimSpace(profileType)))
	if pt == "" {
		pt = ProfileTypeUsername
	}

	switch pt {
	case ProfileTypeURL:
		return ByURL(profile), nil
	case ProfileTypeUsername, ProfileTypePlatformID:
		p, err := ParsePlatform(platform)
		if err != nil {
			return nil, err
		}
		if pt == ProfileTypeUsername {
			return ByUsername(p, profile), nil
		}
		return ByPlatformID(p, profile), nil
	default:
		return nil, errs.InvalidParameter("profile type", profileType)
	}
}
