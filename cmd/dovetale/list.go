package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dovetale/pkg/dovetale"
	errs "dovetale/pkg/errors"
)

func newListCmd(a *app) *cobra.Command {
	var (
		profileType string
		platform    string
		page        int
	)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Manage tracked profile lists",
		Long: `Add profiles to a Dovetale list and read a list's contents.

Lists are created in the Dovetale web application; use the numeric id shown there.`,
	}

	addCmd := &cobra.Command{
		Use:   "add <list-id> <profile>",
		Short: "Add a profile to a list",
		Long: `Add a profile to a list by URL or by platform and username.

Platform ids cannot be used here; look the profile up first to find its URL.`,
		Example: `  dovetale list add 42 natgeo --platform instagram
  dovetale list add 42 https://twitter.com/XCELTALENT --type url`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID := dovetale.ParseListID(args[0])
			if listID == 0 {
				return errs.MissingParameter("list_id")
			}

			profile, err := dovetale.ParseProfileID(profileType, args[1], platform)
			if err != nil {
				return err
			}

			client, err := a.newClient(cmd.Context())
			if err != nil {
				return err
			}

			resp, err := client.AddProfileToList(cmd.Context(), listID, profile)
			if err == nil {
				a.printer.Success(fmt.Sprintf("Added %s to list %d", profile, listID))
			}
			return a.emit("lists", fmt.Sprintf("list_%d_add", listID), resp, err)
		},
	}
	addCmd.Flags().StringVarP(&profileType, "type", "t", string(dovetale.ProfileTypeUsername), "profile identifier type (username, url)")
	addCmd.Flags().StringVarP(&platform, "platform", "p", "", "platform for username profiles (instagram, twitter, youtube, facebook, twitch)")

	getCmd := &cobra.Command{
		Use:   "get <list-id>",
		Short: "Show one page of a list",
		Example: `  dovetale list get 42
  dovetale list get 42 --page 3 --query profiles.#.username`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID := dovetale.ParseListID(args[0])
			if listID == 0 {
				return errs.MissingParameter("list_id")
			}

			client, err := a.newClient(cmd.Context())
			if err != nil {
				return err
			}

			resp, err := client.GetList(cmd.Context(), listID, page)
			return a.emit("lists", fmt.Sprintf("list_%d_page_%d", listID, page), resp, err)
		},
	}
	getCmd.Flags().IntVar(&page, "page", dovetale.DefaultPage, "page number, starting at 1")

	listCmd.AddCommand(addCmd, getCmd)
	return listCmd
}
