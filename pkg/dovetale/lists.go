package dovetale

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	errs "dovetale/pkg/errors"
)

// AddProfileToList queues a profile for tracking in a list. Only URL and
// username identifiers are accepted; the list endpoint has no platform-id form.
func (c *Client) AddProfileToList(ctx context.Context, listID int, profile ProfileID) (*Response, error) {
	if listID <= 0 {
		return nil, missing("list_id")
	}
	profile, err := resolveProfile(profile)
	if err != nil {
		return nil, err
	}

	var params url.Values
	switch p := profile.(type) {
	case ProfileURL, Username:
		params, err = p.params()
	case PlatformID:
		return nil, errs.UnsupportedProfileType(string(p.Type()), "add profile to list")
	default:
		return nil, errs.InvalidParameter("profile type", string(profile.Type()))
	}
	if err != nil {
		return nil, err
	}

	c.logger.InfoWithFields("adding profile to list", map[string]interface{}{
		"list_id":      listID,
		"profile_type": profile.Type(),
		"profile":      profile.String(),
	})

	return c.Do(ctx, http.MethodPost, c.listURL(listID), params, map[string]string{
		"Cache-Control": "no-cache",
	})
}

// GetList fetches one page of the profiles tracked in a list. Pages start at
// DefaultPage.
func (c *Client) GetList(ctx context.Context, listID, page int) (*Response, error) {
	if listID <= 0 {
		return nil, missing("list_id")
	}
	if page <= 0 {
		return nil, missing("page")
	}

	return c.Do(ctx, http.MethodGet, c.listPageURL(listID, page), nil, nil)
}

// ParseListID converts a textual list id. Anything that is not a positive
// integer yields 0, which the list operations reject as missing.
func ParseListID(s string) int {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id < 0 {
		return 0
	}
	return id
}

func missing(name string) error {
	return errs.MissingParameter(name)
}
