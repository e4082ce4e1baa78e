package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	apiclient "github.com/NikhilTirunagiri/GMUBookSwap/internal/api/client"
	"github.com/NikhilTirunagiri/GMUBookSwap/pkg/search"
	domain "github.com/NikhilTirunagiri/GMUBookSwap/pkg/types"
)

func browseCmd() *cobra.Command {
	var (
		term        string
		scope       string
		match       string
		kind        string
		sortBy      string
		page        int
		pageSize    int
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse and search the catalog",
		Long: `Fetches the catalog and searches it locally, the same way the web
client does: filter by kind, match a keyword against one field or all
of them, sort, and paginate. With --interactive the query can be
refined live against the fetched catalog.`,
		Example: `  bookswap browse
  bookswap browse --query calculus --sort price-asc
  bookswap browse --query "linear algebra" --scope title --match exact
  bookswap browse --kind journal --page 2 --page-size 10
  bookswap browse --interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := search.Query{
				Term:     term,
				Scope:    search.Scope(scope),
				Match:    search.Match(match),
				Kind:     domain.MaterialType(kind),
				Sort:     search.Sort(sortBy),
				Page:     page,
				PageSize: pageSize,
			}
			if !q.Scope.Valid() {
				return fmt.Errorf("invalid scope %q (any, title, author, genre, isbn)", scope)
			}
			if !q.Match.Valid() {
				return fmt.Errorf("invalid match %q (contains, exact)", match)
			}
			if kind != "" && !q.Kind.Valid() {
				return fmt.Errorf("invalid kind %q (book, journal, article)", kind)
			}
			if !q.Sort.Valid() {
				return fmt.Errorf("invalid sort %q (relevance, newest, price-asc, price-desc)", sortBy)
			}

			c, _ := newClient()
			if interactive {
				return runBrowseREPL(c, q)
			}

			resp, err := c.ListBooks(context.Background(), nil)
			if err != nil {
				return err
			}

			res := search.Run(resp.Books, q)
			if jsonOutput() {
				return outputJSON(res)
			}
			if res.Total == 0 {
				fmt.Println("No listings found.")
				return nil
			}

			fmt.Printf("Page %d: showing %d of %d listings\n\n", res.Page, len(res.Items), res.Total)
			return printBooksTable(res.Items)
		},
	}

	cmd.Flags().StringVar(&term, "query", "", "search term")
	cmd.Flags().StringVar(&scope, "scope", "any", "field to search (any, title, author, genre, isbn)")
	cmd.Flags().StringVar(&match, "match", "contains", "match mode (contains, exact)")
	cmd.Flags().StringVar(&kind, "kind", "", "filter by material kind (book, journal, article)")
	cmd.Flags().StringVar(&sortBy, "sort", "relevance", "sort order (relevance, newest, price-asc, price-desc)")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", search.DefaultPageSize, "listings per page (0 shows everything)")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "refine the query interactively")

	return cmd
}

// runBrowseREPL drives a search controller from a line-oriented prompt.
// Results print asynchronously as queries settle, matching how the web
// client refreshes while the user types.
func runBrowseREPL(c *apiclient.Client, q search.Query) error {
	fetch := search.FetcherFunc(func(ctx context.Context) ([]domain.Listing, error) {
		resp, err := c.ListBooks(ctx, nil)
		if err != nil {
			return nil, err
		}
		return resp.Books, nil
	})

	ctrl := search.NewController(fetch,
		func(r search.Result) {
			switch {
			case r.Total == 0:
				fmt.Print("\nNo listings match.\n> ")
			case len(r.Items) == 0:
				fmt.Printf("\nPage %d is out of range (%d listings total).\n> ", r.Page, r.Total)
			default:
				fmt.Printf("\nPage %d: %d of %d listings\n", r.Page, len(r.Items), r.Total)
				_ = printBooksTable(r.Items)
				fmt.Print("> ")
			}
		},
		search.WithErrorHandler(func(err error) {
			fmt.Fprintf(os.Stderr, "\nsearch failed: %v\n", err)
			fmt.Print("> ")
		}),
		search.WithQuery(q),
	)
	defer ctrl.Close()

	fmt.Println("Interactive browse. Type 'help' for commands, 'quit' to exit.")
	ctrl.Search()

	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			fmt.Print("> ")
			continue
		}
		fields := strings.Fields(line)
		arg := ""
		if len(fields) > 1 {
			arg = strings.TrimSpace(strings.TrimPrefix(line, fields[0]))
		}

		switch fields[0] {
		case "quit", "exit":
			return nil
		case "help":
			printBrowseHelp()
			fmt.Print("> ")
		case "q":
			ctrl.SetTerm(arg)
		case "search":
			ctrl.Search()
		case "scope":
			s := search.Scope(arg)
			if !s.Valid() {
				fmt.Print("scope must be one of: any, title, author, genre, isbn\n> ")
				continue
			}
			ctrl.SetScope(s)
		case "match":
			m := search.Match(arg)
			if !m.Valid() {
				fmt.Print("match must be one of: contains, exact\n> ")
				continue
			}
			ctrl.SetMatch(m)
		case "kind":
			k := domain.MaterialType(arg)
			if arg != "" && !k.Valid() {
				fmt.Print("kind must be one of: book, journal, article (no argument clears it)\n> ")
				continue
			}
			ctrl.SetKind(k)
		case "sort":
			s := search.Sort(arg)
			if !s.Valid() {
				fmt.Print("sort must be one of: relevance, newest, price-asc, price-desc\n> ")
				continue
			}
			ctrl.SetSort(s)
		case "page":
			n, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Print("page needs a number\n> ")
				continue
			}
			ctrl.SetPage(n)
		case "size":
			n, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Print("size needs a number\n> ")
				continue
			}
			ctrl.SetPageSize(n)
		default:
			fmt.Printf("unknown command %q, type 'help'\n> ", fields[0])
		}
	}
	return sc.Err()
}

func printBrowseHelp() {
	fmt.Print(`Commands:
  q <term>   set the search term (runs after a short pause)
  search     run the current query now
  scope <s>  search one field: any, title, author, genre, isbn
  match <m>  contains or exact
  kind <k>   filter by book, journal, article (no argument clears it)
  sort <s>   relevance, newest, price-asc, price-desc
  page <n>   jump to page n
  size <n>   listings per page (0 shows everything)
  quit       exit
`)
}
