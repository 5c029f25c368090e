package main

import (
	"context"
	"errors"
	"fmt"

	"dovetale/pkg/auth"
	"dovetale/pkg/dovetale"
	errs "dovetale/pkg/errors"
	"dovetale/pkg/storage"
)

// errNoCredentials is returned when no source provides a client id and secret
var errNoCredentials = errors.New("no API credentials configured")

// resolveCredentials picks credentials from the merged configuration first,
// then from the credential store
func (a *app) resolveCredentials() (*auth.Credentials, error) {
	if a.cfg.HasCredentials() && a.opts.account == "" {
		return &auth.Credentials{
			Name:         "config",
			ClientID:     a.cfg.Dovetale.ClientID,
			ClientSecret: a.cfg.Dovetale.ClientSecret,
		}, nil
	}

	manager, err := a.newManager()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize credential manager: %w", err)
	}

	var creds *auth.Credentials
	if a.opts.account != "" {
		creds, err = manager.Retrieve(a.opts.account)
	} else {
		creds, err = manager.RetrieveDefault()
	}
	if err != nil {
		if errors.Is(err, auth.ErrCredentialsNotFound) {
			auth.ShowQuickGuide(a.errOut)
			return nil, errNoCredentials
		}
		return nil, err
	}
	return creds, nil
}

// newClient authenticates against the API
func (a *app) newClient(ctx context.Context) (*dovetale.Client, error) {
	creds, err := a.resolveCredentials()
	if err != nil {
		return nil, err
	}

	a.log.DebugWithFields("authenticating", map[string]interface{}{
		"credentials": creds.Name,
		"client_id":   creds.ClientID,
	})

	opts := append(dovetale.FromConfig(a.cfg.Dovetale), dovetale.WithLogger(a.log))
	client, err := dovetale.NewClient(ctx, creds.ClientID, creds.ClientSecret, opts...)
	if err != nil {
		return nil, err
	}

	a.log.DebugWithFields("client ready", map[string]interface{}{
		"base_url":        client.BaseURL(),
		"param_placement": client.ParamPlacement().String(),
	})
	return client, nil
}

// emit saves and prints a response. A remote failure still prints the body
// the server sent before the error is returned.
func (a *app) emit(group, key string, resp *dovetale.Response, callErr error) error {
	if resp == nil {
		return callErr
	}

	if a.cfg.Output.Directory != "" && callErr == nil {
		manager, err := storage.NewManager(a.cfg.Output.Directory, a.cfg.Output.Pretty)
		if err != nil {
			return err
		}
		replaced := manager.Exists(group, key)
		path, err := manager.Save(group, key, resp.Body)
		if err != nil {
			return err
		}
		if replaced {
			a.printer.Info("Replaced existing snapshot", path)
		} else {
			a.printer.Info("Saved", path)
		}
		a.log.DebugWithFields("saved snapshot", map[string]interface{}{
			"dir":       manager.OutputDir(),
			"snapshots": manager.Count(),
			"replaced":  replaced,
		})
	}

	if a.opts.query != "" && callErr == nil {
		result := resp.Get(a.opts.query)
		if !result.Exists() {
			return fmt.Errorf("path %q not found in response", a.opts.query)
		}
		if a.opts.raw || result.IsObject() || result.IsArray() {
			a.printer.JSON([]byte(result.Raw), a.opts.raw)
		} else {
			fmt.Fprintln(a.out, result.String())
		}
		return nil
	}

	if resp.Empty() && callErr == nil {
		a.printer.Dim("(empty response)")
		return nil
	}
	a.printer.JSON(resp.Body, a.opts.raw)
	return callErr
}

// exitCode maps failures onto distinct process exit codes
func exitCode(err error) int {
	var e *errs.Error
	if !errors.As(err, &e) {
		return 1
	}
	switch e.Type {
	case errs.ErrorTypeMissingParameter, errs.ErrorTypeInvalidParameter, errs.ErrorTypeUnsupportedProfileType:
		return 2
	case errs.ErrorTypeAuthenticationFailed:
		return 3
	case errs.ErrorTypeRemoteRequestFailed:
		return 4
	default:
		return 1
	}
}
