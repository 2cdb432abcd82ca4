package app

import (
	"github.com/spf13/cobra"

	"github.com/authorsite/authorsite/internal/adminsession"
	"github.com/authorsite/authorsite/internal/client"
	"github.com/authorsite/authorsite/internal/localstore"
)

var siteURL string

// addSiteFlag lets cmd override Client.SiteURL.
func addSiteFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&siteURL, "site", "", "site url (default Client.SiteURL)")
}

// openLocal opens the client state file.
func openLocal() (*localstore.Store, error) {
	return localstore.Open(cfg.Client.StateFile)
}

// newClient builds an api client on local. Writes carry the admin header while an
// admin session is valid.
func newClient(local *localstore.Store) (*client.Client, error) {
	clientCfg := cfg.Client
	if siteURL != "" {
		clientCfg.SiteURL = siteURL
	}

	c := client.New(clientCfg, cfg.Webserver.AdminHeader, local)

	_, ok, err := adminsession.New(local).Current()
	if err != nil {
		return nil, err
	}

	c.Admin = ok

	return c, nil
}
