package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"studentsites/internal/adminclient"
	"studentsites/internal/domain"
	"studentsites/internal/dto"
)

func newOrdersCmd(newClient clientFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List, submit and update orders",
	}
	cmd.AddCommand(newOrdersListCmd(newClient))
	cmd.AddCommand(newOrdersSubmitCmd(newClient))
	cmd.AddCommand(newOrdersSetStatusCmd(newClient))
	return cmd
}

func newOrdersListCmd(newClient clientFactory) *cobra.Command {
	var (
		filter     dto.OrderFilterQuery
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().ListOrders(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("listing orders: %w", err)
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), resp)
			}

			orders := make([]domain.Order, len(resp))
			for i, o := range resp {
				orders[i] = o.ToDomain()
			}
			fmt.Fprint(cmd.OutOrStdout(), renderOrders(orders))
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.WebsiteType, "website-type", "", "only this website type (All for any)")
	cmd.Flags().StringVar(&filter.Package, "package", "", "only this package (All for any)")
	cmd.Flags().StringVar(&filter.Referral, "referral", "", "referral contains this text, case-insensitive")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func newOrdersSubmitCmd(newClient clientFactory) *cobra.Command {
	var req dto.SubmitOrderRequest

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a new order on behalf of a customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := newClient().SubmitOrder(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("submitting order: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderSuccess(msg))
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "customer name")
	cmd.Flags().StringVar(&req.Email, "email", "", "customer email")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "customer phone")
	cmd.Flags().StringVar(&req.WebsiteType, "website-type", "", "Portfolio, Resume, Project or Blog")
	cmd.Flags().StringVar(&req.Package, "package", "", "basic, standard or pro")
	cmd.Flags().StringVar(&req.Referral, "referral", "", "how the customer heard about us")
	cmd.Flags().StringVar(&req.Preferences, "preferences", "", "design preferences")
	return cmd
}

func newOrdersSetStatusCmd(newClient clientFactory) *cobra.Command {
	var version int64

	cmd := &cobra.Command{
		Use:   "set-status <order-id> <status>",
		Short: "Move an order to Pending, Accepted, Rejected or Completed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, status := args[0], domain.Status(args[1])

			board := adminclient.NewBoard(newClient())
			if err := board.Refresh(cmd.Context()); err != nil {
				return err
			}

			var expected *int64
			if cmd.Flags().Changed("version") {
				expected = &version
			}

			before, ok := board.Find(id)
			if !ok {
				return fmt.Errorf("order %s not found", id)
			}
			updated, err := board.SetStatus(cmd.Context(), id, status, expected)
			if err != nil {
				fmt.Fprint(cmd.OutOrStdout(), renderAlert(fmt.Sprintf("Failed to update status, order %s stays %s", id, before.Status)))
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), renderSuccess(fmt.Sprintf("Order %s is now %s (version %d)", updated.ID, statusBadge(updated.Status), updated.Version)))
			return nil
		},
	}

	cmd.Flags().Int64Var(&version, "version", 0, "only update if the order is still at this version")
	return cmd
}
