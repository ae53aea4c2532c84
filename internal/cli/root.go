package cli

import (
	"encoding/json"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"studentsites/internal/adminclient"
)

const defaultServer = "http://localhost:8080"

type clientFactory func() *adminclient.Client

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("SITESCTL")
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "sitesctl",
		Short:         "Admin console for the StudentSites API",
		Long:          "sitesctl manages StudentSites orders, offers and packages from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().String("server", defaultServer, "API base URL (env SITESCTL_SERVER)")
	cmd.PersistentFlags().Duration("timeout", 10*time.Second, "request timeout")
	_ = v.BindPFlag("server", cmd.PersistentFlags().Lookup("server"))
	_ = v.BindPFlag("timeout", cmd.PersistentFlags().Lookup("timeout"))

	newClient := func() *adminclient.Client {
		return adminclient.New(v.GetString("server"), adminclient.WithTimeout(v.GetDuration("timeout")))
	}

	cmd.AddCommand(newOrdersCmd(newClient))
	cmd.AddCommand(newProjectsCmd(newClient))
	cmd.AddCommand(newOffersCmd(newClient))
	cmd.AddCommand(newPackagesCmd(newClient))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
