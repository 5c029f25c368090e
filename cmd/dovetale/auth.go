package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"dovetale/pkg/auth"
	"dovetale/pkg/dovetale"
)

func newAuthCmd(a *app) *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage API credentials",
		Long: `Manage stored Dovetale API credentials securely.

Credentials are stored using:
  - System keychain (when available)
  - Encrypted file with PBKDF2 key derivation
  - Environment variables (read-only)

Never share your client secret or config files!`,
	}

	var verify, guide bool
	loginCmd := &cobra.Command{
		Use:   "login [name]",
		Short: "Store API credentials securely",
		Long: `Store a client ID and client secret in the system keychain or encrypted file.

Several sets of credentials can be stored under different names and chosen
with --account. The name defaults to "default".`,
		Example: `  # Interactive login
  dovetale auth login

  # Store under a name and check them against the API
  dovetale auth login staging --verify`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := auth.DefaultName
			if len(args) > 0 {
				name = args[0]
			}
			return a.runLogin(cmd, name, verify, guide)
		},
	}
	loginCmd.Flags().BoolVar(&verify, "verify", false, "exchange the credentials for a token before storing them")
	loginCmd.Flags().BoolVar(&guide, "guide", false, "show where to find API credentials first")

	logoutCmd := &cobra.Command{
		Use:   "logout [name]",
		Short: "Remove stored credentials",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := auth.DefaultName
			if len(args) > 0 {
				name = args[0]
			}

			manager, err := a.newManager()
			if err != nil {
				return fmt.Errorf("failed to initialize credential manager: %w", err)
			}
			if err := manager.Delete(name); err != nil {
				return err
			}
			a.printer.Success("Credentials removed: " + name)
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored credentials",
		Long:  `List stored credentials with secrets masked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := a.newManager()
			if err != nil {
				return fmt.Errorf("failed to initialize credential manager: %w", err)
			}

			all, err := manager.List()
			if err != nil {
				return err
			}
			if len(all) == 0 {
				a.printer.Info("No stored credentials", "Use 'dovetale auth login' to add some")
				return nil
			}

			for i, creds := range all {
				sanitized := auth.SanitizeCredentials(creds)
				fmt.Fprintf(a.out, "%d. Name: %s\n", i+1, sanitized.Name)
				fmt.Fprintf(a.out, "   Client ID: %s\n", sanitized.ClientID)
				fmt.Fprintf(a.out, "   Client Secret: %s\n", sanitized.ClientSecret)
				fmt.Fprintf(a.out, "   Last Modified: %s\n", sanitized.LastModified.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}

	authCmd.AddCommand(loginCmd, logoutCmd, listCmd)
	return authCmd
}

func (a *app) runLogin(cmd *cobra.Command, name string, verify, guide bool) error {
	manager, err := a.newManager()
	if err != nil {
		return fmt.Errorf("failed to initialize credential manager: %w", err)
	}

	if guide {
		a.printer.Banner("Dovetale API credentials")
		auth.ShowCredentialGuide(a.errOut)
	}

	reader := bufio.NewReader(a.in)

	if existing, _ := manager.Retrieve(name); existing != nil {
		fmt.Fprintf(a.errOut, "Credentials '%s' already exist. Replace them? (y/N): ", name)
		input, _ := reader.ReadString('\n')
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(input)), "y") {
			return nil
		}
	}

	clientID := a.opts.clientID
	if clientID == "" {
		fmt.Fprint(a.errOut, "Client ID: ")
		input, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to read client ID: %w", err)
		}
		clientID = strings.TrimSpace(input)
	}

	clientSecret := a.opts.clientSecret
	if clientSecret == "" {
		fmt.Fprint(a.errOut, "Client secret (hidden): ")
		clientSecret, err = readSecret(a.in, reader)
		fmt.Fprintln(a.errOut)
		if err != nil {
			return fmt.Errorf("failed to read client secret: %w", err)
		}
	}

	creds := &auth.Credentials{Name: name, ClientID: clientID, ClientSecret: clientSecret}
	if err := creds.Validate(); err != nil {
		return err
	}

	if verify {
		opts := append(dovetale.FromConfig(a.cfg.Dovetale), dovetale.WithLogger(a.log))
		if _, err := dovetale.NewClient(cmd.Context(), clientID, clientSecret, opts...); err != nil {
			return err
		}
		a.printer.Success("Credentials verified")
	}

	if err := manager.Store(creds); err != nil {
		return err
	}

	a.printer.Success("Credentials saved: " + name)
	a.printer.Info("Client Secret", auth.MaskString(clientSecret))
	return nil
}

// readSecret reads without echo from a terminal, or a plain line otherwise
func readSecret(in io.Reader, buffered *bufio.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := buffered.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
