package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProjectsCmd(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "Show the public project showcase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := newClient().ListProjects(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing projects: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderProjects(projects))
			return nil
		},
	}
}

func newPackagesCmd(newClient clientFactory) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "packages",
		Short: "Show packages with current offer pricing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			packages, err := newClient().ListPackages(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing packages: %w", err)
			}
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), packages)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderPackages(packages))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}
