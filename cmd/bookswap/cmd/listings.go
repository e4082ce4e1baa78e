package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/NikhilTirunagiri/GMUBookSwap/internal/api/client"
	domain "github.com/NikhilTirunagiri/GMUBookSwap/pkg/types"
)

func listingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listings",
		Short: "Manage your book listings",
	}

	cmd.AddCommand(listingsGetCmd())
	cmd.AddCommand(listingsCreateCmd())
	cmd.AddCommand(listingsUpdateCmd())
	cmd.AddCommand(listingsDeleteCmd())
	cmd.AddCommand(listingsMineCmd())

	return cmd
}

func listingsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _ := newClient()
			l, err := c.GetBook(context.Background(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(l)
			}
			return printBookDetail(l)
		},
	}
}

func listingsCreateCmd() *cobra.Command {
	var (
		title       string
		author      string
		isbn        string
		genre       string
		kind        string
		trade       string
		price       float64
		condition   string
		description string
		imageURL    string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a listing",
		Long:  "Creates a listing owned by the logged-in user. The seller name and email come from your profile.",
		Example: `  bookswap listings create --title "Calculus: Early Transcendentals" --author "James Stewart" --price 45.99
  bookswap listings create --title "IEEE Spectrum March 2026" --kind journal --trade borrow --price 0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" {
				return fmt.Errorf("--title is required")
			}
			if price < 0 {
				return fmt.Errorf("--price must not be negative")
			}

			c, _ := newClient()
			ctx := context.Background()

			user, err := requireUser(ctx, c)
			if err != nil {
				return err
			}

			sellerName := user.FullName
			if sellerName == "" {
				sellerName = user.Email
			}

			created, err := c.CreateBook(ctx, &apiclient.BookRequest{
				Title:        title,
				Author:       author,
				ISBN:         isbn,
				Genre:        genre,
				MaterialType: kind,
				TradeType:    trade,
				Price:        price,
				Condition:    condition,
				Description:  description,
				ImageURL:     imageURL,
				SellerName:   sellerName,
				SellerEmail:  user.Email,
			})
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(created)
			}

			fmt.Printf("Listing created: %s (%s)\n", created.Title, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "listing title")
	cmd.Flags().StringVar(&author, "author", "", "author name")
	cmd.Flags().StringVar(&isbn, "isbn", "", "ISBN, 10 or 13 digits, hyphens allowed")
	cmd.Flags().StringVar(&genre, "genre", "", "genre or subject")
	cmd.Flags().StringVar(&kind, "kind", "book", "material kind (book, journal, article)")
	cmd.Flags().StringVar(&trade, "trade", "buy", "trade type (buy, trade, borrow)")
	cmd.Flags().Float64Var(&price, "price", 0, "asking price in USD")
	cmd.Flags().StringVar(&condition, "condition", "", "physical condition")
	cmd.Flags().StringVar(&description, "description", "", "free-form description")
	cmd.Flags().StringVar(&imageURL, "image-url", "", "external image URL")

	return cmd
}

func listingsUpdateCmd() *cobra.Command {
	var (
		title       string
		author      string
		isbn        string
		genre       string
		kind        string
		trade       string
		price       float64
		condition   string
		description string
		imageURL    string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a listing",
		Long:  "Updates a listing you own. Only the flags you pass change; everything else keeps its current value.",
		Example: `  bookswap listings update 6b3e9a10-70f2-4f0e-9c93-1c1f6f3a2b4d --price 39.99
  bookswap listings update 6b3e9a10-70f2-4f0e-9c93-1c1f6f3a2b4d --condition "Like new" --trade trade`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("price") && price < 0 {
				return fmt.Errorf("--price must not be negative")
			}

			c, _ := newClient()
			ctx := context.Background()

			existing, err := c.GetBook(ctx, args[0])
			if err != nil {
				return err
			}

			req := &apiclient.BookRequest{
				Title:        existing.Title,
				Author:       existing.Author,
				ISBN:         existing.ISBN,
				Genre:        existing.Genre,
				MaterialType: string(existing.MaterialType),
				TradeType:    string(existing.TradeType),
				Price:        existing.Price,
				Condition:    existing.Condition,
				Description:  existing.Description,
				ImageURL:     existing.ImageURL,
				SellerName:   existing.SellerName,
				SellerEmail:  existing.SellerEmail,
			}

			flags := cmd.Flags()
			if flags.Changed("title") {
				req.Title = title
			}
			if flags.Changed("author") {
				req.Author = author
			}
			if flags.Changed("isbn") {
				req.ISBN = isbn
			}
			if flags.Changed("genre") {
				req.Genre = genre
			}
			if flags.Changed("kind") {
				req.MaterialType = kind
			}
			if flags.Changed("trade") {
				req.TradeType = trade
			}
			if flags.Changed("price") {
				req.Price = price
			}
			if flags.Changed("condition") {
				req.Condition = condition
			}
			if flags.Changed("description") {
				req.Description = description
			}
			if flags.Changed("image-url") {
				req.ImageURL = imageURL
			}

			updated, err := c.UpdateBook(ctx, args[0], req)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(updated)
			}

			fmt.Printf("Listing updated: %s (%s)\n", updated.Title, updated.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "listing title")
	cmd.Flags().StringVar(&author, "author", "", "author name")
	cmd.Flags().StringVar(&isbn, "isbn", "", "ISBN, 10 or 13 digits, hyphens allowed")
	cmd.Flags().StringVar(&genre, "genre", "", "genre or subject")
	cmd.Flags().StringVar(&kind, "kind", "", "material kind (book, journal, article)")
	cmd.Flags().StringVar(&trade, "trade", "", "trade type (buy, trade, borrow)")
	cmd.Flags().Float64Var(&price, "price", 0, "asking price in USD")
	cmd.Flags().StringVar(&condition, "condition", "", "physical condition")
	cmd.Flags().StringVar(&description, "description", "", "free-form description")
	cmd.Flags().StringVar(&imageURL, "image-url", "", "external image URL")

	return cmd
}

func listingsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _ := newClient()
			if err := c.DeleteBook(context.Background(), args[0]); err != nil {
				return err
			}

			fmt.Printf("Listing %s deleted.\n", args[0])
			return nil
		},
	}
}

func listingsMineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List your own listings",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _ := newClient()
			ctx := context.Background()

			user, err := requireUser(ctx, c)
			if err != nil {
				return err
			}

			resp, err := c.ListBooks(ctx, &apiclient.ListBooksParams{Seller: user.Email})
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}
			if len(resp.Books) == 0 {
				fmt.Println("You have no listings.")
				return nil
			}

			fmt.Printf("%d listings for %s\n\n", resp.Total, user.Email)
			return printBooksTable(resp.Books)
		},
	}
}

// requireUser fetches the logged-in user's profile, translating an
// unauthorized response into a login hint.
func requireUser(ctx context.Context, c *apiclient.Client) (*domain.User, error) {
	u, err := c.Me(ctx)
	if err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) {
			return nil, fmt.Errorf("not logged in, run: bookswap auth login")
		}
		return nil, err
	}
	return u, nil
}
