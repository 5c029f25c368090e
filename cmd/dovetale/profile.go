package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dovetale/pkg/dovetale"
	"dovetale/pkg/storage"
)

type lookupFunc func(ctx context.Context, value string) (*dovetale.Response, error)

// lookups binds each platform to its username and platform-id methods
func lookups(c *dovetale.Client) (byUsername, byID map[dovetale.Platform]lookupFunc) {
	byUsername = map[dovetale.Platform]lookupFunc{
		dovetale.PlatformInstagram: c.GetInstagramProfileByUsername,
		dovetale.PlatformTwitter:   c.GetTwitterProfileByUsername,
		dovetale.PlatformYouTube:   c.GetYouTubeProfileByUsername,
		dovetale.PlatformFacebook:  c.GetFacebookProfileByUsername,
		dovetale.PlatformTwitch:    c.GetTwitchProfileByUsername,
	}
	byID = map[dovetale.Platform]lookupFunc{
		dovetale.PlatformInstagram: c.GetInstagramProfileByProfileID,
		dovetale.PlatformTwitter:   c.GetTwitterProfileByProfileID,
		dovetale.PlatformYouTube:   c.GetYouTubeProfileByProfileID,
		dovetale.PlatformFacebook:  c.GetFacebookProfileByProfileID,
		dovetale.PlatformTwitch:    c.GetTwitchProfileByProfileID,
	}
	return byUsername, byID
}

func newProfileCmd(a *app) *cobra.Command {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Look up a social media profile",
		Long: `Look up a profile's data on Instagram, Twitter, YouTube, Facebook or Twitch.

A profile can be identified by its full URL, by platform and username, or by
platform and the numeric id the platform assigned to it.`,
	}

	urlCmd := &cobra.Command{
		Use:   "url <profile-url>",
		Short: "Look up a profile by its URL",
		Example: `  dovetale profile url https://twitter.com/XCELTALENT
  dovetale profile url https://www.instagram.com/natgeo --query followers_count`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient(cmd.Context())
			if err != nil {
				return err
			}
			resp, err := client.GetProfileByURL(cmd.Context(), args[0])
			return a.emit("accounts", "url_"+args[0], resp, err)
		},
	}

	usernameCmd := &cobra.Command{
		Use:     "username <platform> <username>",
		Short:   "Look up a profile by platform and username",
		Example: `  dovetale profile username instagram natgeo`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlatformLookup(cmd, args[0], args[1], false)
		},
	}

	idCmd := &cobra.Command{
		Use:     "id <platform> <platform-id>",
		Short:   "Look up a profile by platform and platform id",
		Example: `  dovetale profile id twitter 783214`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlatformLookup(cmd, args[0], args[1], true)
		},
	}

	profileCmd.AddCommand(urlCmd, usernameCmd, idCmd)
	return profileCmd
}

func (a *app) runPlatformLookup(cmd *cobra.Command, rawPlatform, value string, byPlatformID bool) error {
	platform, err := dovetale.ParsePlatform(rawPlatform)
	if err != nil {
		return err
	}

	client, err := a.newClient(cmd.Context())
	if err != nil {
		return err
	}

	byUsername, byID := lookups(client)
	fn, kind := byUsername[platform], "username"
	if byPlatformID {
		fn, kind = byID[platform], "id"
	}

	a.log.InfoWithFields("looking up profile", map[string]interface{}{
		"platform": platform,
		kind:       value,
	})

	resp, err := fn(cmd.Context(), value)
	key := storage.SanitizeKey(fmt.Sprintf("%s_%s_%s", platform, kind, value))
	return a.emit("accounts", key, resp, err)
}
