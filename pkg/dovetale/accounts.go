package dovetale

import (
	"context"
	"net/http"
)

// GetProfile fetches a profile from the accounts endpoint using any kind
// of identifier
func (c *Client) GetProfile(ctx context.Context, profile ProfileID) (*Response, error) {
	profile, err := resolveProfile(profile)
	if err != nil {
		return nil, err
	}

	params, err := profile.params()
	if err != nil {
		return nil, err
	}

	c.logger.DebugWithFields("fetching profile", map[string]interface{}{
		"profile_type": profile.Type(),
		"profile":      profile.String(),
	})

	return c.Do(ctx, http.MethodGet, c.accountsURL(), params, nil)
}

// GetProfileByURL fetches a profile by its full URL on any platform
func (c *Client) GetProfileByURL(ctx context.Context, profileURL string) (*Response, error) {
	return c.GetProfile(ctx, ByURL(profileURL))
}

func (c *Client) byUsername(ctx context.Context, p Platform, username string) (*Response, error) {
	return c.GetProfile(ctx, ByUsername(p, username))
}

func (c *Client) byPlatformID(ctx context.Context, p Platform, id string) (*Response, error) {
	return c.GetProfile(ctx, ByPlatformID(p, id))
}

// GetInstagramProfileByUsername fetches an Instagram profile by handle
func (c *Client) GetInstagramProfileByUsername(ctx context.Context, username string) (*Response, error) {
	return c.byUsername(ctx, PlatformInstagram, username)
}

// GetInstagramProfileByProfileID fetches an Instagram profile by its numeric id
func (c *Client) GetInstagramProfileByProfileID(ctx context.Context, id string) (*Response, error) {
	return c.byPlatformID(ctx, PlatformInstagram, id)
}

// GetTwitterProfileByUsername fetches a Twitter profile by handle
func (c *Client) GetTwitterProfileByUsername(ctx context.Context, username string) (*Response, error) {
	return c.byUsername(ctx, PlatformTwitter, username)
}

// GetTwitterProfileByProfileID fetches a Twitter profile by its numeric id
func (c *Client) GetTwitterProfileByProfileID(ctx context.Context, id string) (*Response, error) {
	return c.byPlatformID(ctx, PlatformTwitter, id)
}

// GetYouTubeProfileByUsername fetches a YouTube channel by username
func (c *Client) GetYouTubeProfileByUsername(ctx context.Context, username string) (*Response, error) {
	return c.byUsername(ctx, PlatformYouTube, username)
}

// GetYouTubeProfileByProfileID fetches a YouTube channel by its channel id
func (c *Client) GetYouTubeProfileByProfileID(ctx context.Context, id string) (*Response, error) {
	return c.byPlatformID(ctx, PlatformYouTube, id)
}

// GetFacebookProfileByUsername fetches a Facebook page by username
func (c *Client) GetFacebookProfileByUsername(ctx context.Context, username string) (*Response, error) {
	return c.byUsername(ctx, PlatformFacebook, username)
}

// GetFacebookProfileByProfileID fetches a Facebook page by its numeric id
func (c *Client) GetFacebookProfileByProfileID(ctx context.Context, id string) (*Response, error) {
	return c.byPlatformID(ctx, PlatformFacebook, id)
}

// GetTwitchProfileByUsername fetches a Twitch channel by login name
func (c *Client) GetTwitchProfileByUsername(ctx context.Context, username string) (*Response, error) {
	return c.byUsername(ctx, PlatformTwitch, username)
}

// GetTwitchProfileByProfileID fetches a Twitch channel by its numeric id
func (c *Client) GetTwitchProfileByProfileID(ctx context.Context, id string) (*Response, error) {
	return c.byPlatformID(ctx, PlatformTwitch, id)
}
