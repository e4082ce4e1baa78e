package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NikhilTirunagiri/GMUBookSwap/pkg/contact"
)

func cartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the local cart",
		Long: `The cart lives on this machine, not on the server. Adding a listing
snapshots its details locally; when you are ready, the contact command
produces a mailto link for the seller.`,
	}

	cmd.AddCommand(cartAddCmd())
	cmd.AddCommand(cartRemoveCmd())
	cmd.AddCommand(cartListCmd())
	cmd.AddCommand(cartClearCmd())
	cmd.AddCommand(cartTotalCmd())
	cmd.AddCommand(cartContactCmd())

	return cmd
}

func cartAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <id>",
		Short: "Add a listing to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _ := newClient()
			l, err := c.GetBook(context.Background(), args[0])
			if err != nil {
				return err
			}

			ct, err := newCart()
			if err != nil {
				return err
			}
			if err := ct.Add(l.CartEntry()); err != nil {
				return err
			}

			fmt.Printf("Added %q to cart (%d items).\n", l.Title, ct.Count())
			return nil
		},
	}
}

func cartRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a listing from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := newCart()
			if err != nil {
				return err
			}

			entry, ok := ct.Entry(args[0])
			if !ok {
				return fmt.Errorf("listing %s is not in the cart", args[0])
			}
			if err := ct.Remove(args[0]); err != nil {
				return err
			}

			fmt.Printf("Removed %q from cart (%d items left).\n", entry.Title, ct.Count())
			return nil
		},
	}
}

func cartListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the cart contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := newCart()
			if err != nil {
				return err
			}

			items := ct.Items()
			if jsonOutput() {
				return outputJSON(items)
			}
			if len(items) == 0 {
				fmt.Println("Cart is empty.")
				return nil
			}

			if err := printCartTable(items); err != nil {
				return err
			}
			fmt.Printf("\nTotal: $%.2f (%d items)\n", ct.Total(), ct.Count())
			return nil
		},
	}
}

func cartClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := newCart()
			if err != nil {
				return err
			}
			if err := ct.Clear(); err != nil {
				return err
			}

			fmt.Println("Cart cleared.")
			return nil
		},
	}
}

func cartTotalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "total",
		Short: "Show the cart total",
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := newCart()
			if err != nil {
				return err
			}

			fmt.Printf("Total: $%.2f (%d items)\n", ct.Total(), ct.Count())
			return nil
		},
	}
}

func cartContactCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contact <id>",
		Short: "Print a mailto link for a cart item's seller",
		Long:  "Prints a prefilled mailto URL for the seller of a cart item. Open it in a mail client to ask whether the listing is still available.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := newCart()
			if err != nil {
				return err
			}

			entry, ok := ct.Entry(args[0])
			if !ok {
				return fmt.Errorf("listing %s is not in the cart", args[0])
			}
			if entry.SellerEmail == "" {
				return fmt.Errorf("cart entry %s has no seller email", args[0])
			}

			fmt.Println(contact.ForEntry(entry))
			return nil
		},
	}
}
