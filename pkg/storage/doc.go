// Package storage saves Dovetale API responses to disk.
//
// Each snapshot is written to <dir>/<group>/<key>.json using a temporary
// file and rename, so a reader never sees a partial file. Groups and keys
// are sanitized into safe file names.
//
// Usage:
//
//	manager, err := storage.NewManager("snapshots", true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	path, err := manager.Save("accounts", "twitter_XCELTALENT", resp.Body)
package storage
