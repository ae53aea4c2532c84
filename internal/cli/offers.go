package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"studentsites/internal/dto"
)

func newOffersCmd(newClient clientFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "offers",
		Short: "Manage promotional offers",
	}
	cmd.AddCommand(newOffersListCmd(newClient))
	cmd.AddCommand(newOffersCreateCmd(newClient))
	cmd.AddCommand(newOffersToggleCmd(newClient, "activate", true))
	cmd.AddCommand(newOffersToggleCmd(newClient, "deactivate", false))
	cmd.AddCommand(newOffersDeleteCmd(newClient))
	return cmd
}

func newOffersListCmd(newClient clientFactory) *cobra.Command {
	var (
		activeOnly bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List offers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()

			var (
				offers []dto.OfferResponse
				err    error
			)
			if activeOnly {
				offers, err = client.ListActiveOffers(cmd.Context())
			} else {
				offers, err = client.ListOffers(cmd.Context())
			}
			if err != nil {
				return fmt.Errorf("listing offers: %w", err)
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), offers)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderOffers(offers))
			return nil
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "only active offers")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func newOffersCreateCmd(newClient clientFactory) *cobra.Command {
	var req dto.CreateOfferRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an active offer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			offer, err := newClient().CreateOffer(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("creating offer: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderSuccess(fmt.Sprintf("Offer %s created: %d%% off %s", offer.ID, offer.DiscountPercentage, offer.ApplicablePackage)))
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Title, "title", "", "offer title")
	cmd.Flags().IntVar(&req.DiscountPercentage, "discount", 0, "discount percentage, 1 to 99")
	cmd.Flags().StringVar(&req.ApplicablePackage, "package", "", "basic, standard or pro")
	return cmd
}

func newOffersToggleCmd(newClient clientFactory, use string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <offer-id>",
		Short: fmt.Sprintf("Mark an offer as %sd", use),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offer, err := newClient().SetOfferActive(cmd.Context(), args[0], active)
			if err != nil {
				return fmt.Errorf("updating offer: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderSuccess(fmt.Sprintf("Offer %s %sd", offer.ID, use)))
			return nil
		},
	}
}

func newOffersDeleteCmd(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <offer-id>",
		Short: "Delete an offer permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := newClient().DeleteOffer(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("deleting offer: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderSuccess(msg))
			return nil
		},
	}
}
