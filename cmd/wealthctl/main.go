// Command wealthctl queries the wealth and fund product lists from a terminal.
package main

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/bobmcallan/wealth-portal/internal/catalog"
	"github.com/bobmcallan/wealth-portal/internal/config"
)

var (
	// Global flags
	configFiles []string
	verbose     bool
	asJSON      bool
	visitorID   string

	// list and filters flags
	listType string
	state    = catalog.DefaultState()
	sortKey  string

	// share flags
	noCopy bool
)

// Clipboard access, swapped out in tests.
var (
	clipboardWriteAll    = clipboard.WriteAll
	clipboardUnsupported = func() bool { return clipboard.Unsupported }
)

var rootCmd = &cobra.Command{
	Use:   "wealthctl",
	Short: "Query wealth and fund product lists",
	Long: `wealthctl loads the configured product data (embedded, a directory or
an HTTP base URL) and prints product lists, filter options, market cycles and
share text. Favorites are read from and written to the configured storage.`,
	SilenceUsage: true,
	Version:      config.GetFullVersion(),
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List products after search, filters and sort",
	Example: `  wealthctl list --type fund --sort 6m
  wealthctl list -q 招商 --risk R2 --favorites`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Show the issuer, bank, currency and risk values of a list",
	Args:  cobra.NoArgs,
	RunE:  runFilters,
}

var cyclesCmd = &cobra.Command{
	Use:   "cycles",
	Short: "Show market-cycle assessments",
	Args:  cobra.NoArgs,
	RunE:  runCycles,
}

var shareCmd = &cobra.Command{
	Use:   "share [product-id]",
	Short: "Print share text and copy it to the clipboard",
	Long: `Prints the share text for a product and copies it to the clipboard.
Without a product id the list itself is shared.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShare,
}

var favCmd = &cobra.Command{
	Use:   "fav",
	Short: "Manage favorite products",
}

var favListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print favorite product ids",
	Args:  cobra.NoArgs,
	RunE:  runFavList,
}

var favToggleCmd = &cobra.Command{
	Use:   "toggle [product-id]",
	Short: "Add or remove a product from favorites",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavToggle,
}

func init() {
	rootCmd.PersistentFlags().StringSliceVarP(&configFiles, "config", "c", nil, "Configuration file path (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print JSON instead of text")
	rootCmd.PersistentFlags().StringVar(&visitorID, "visitor", "", "Visitor id whose favorites are used")

	for _, cmd := range []*cobra.Command{listCmd, filtersCmd, shareCmd} {
		cmd.Flags().StringVarP(&listType, "type", "t", "wealth", "Product list: wealth or fund")
	}

	listCmd.Flags().StringVarP(&state.Query, "query", "q", "", "Search text")
	listCmd.Flags().StringVarP(&sortKey, "sort", "s", "name", "Sort key: name, 1m, 3m or 6m")
	listCmd.Flags().StringVar(&state.Issuer, "issuer", catalog.All, "Issuer filter")
	listCmd.Flags().StringVar(&state.Bank, "bank", catalog.All, "Bank filter")
	listCmd.Flags().StringVar(&state.Currency, "currency", catalog.All, "Currency filter")
	listCmd.Flags().StringVar(&state.RiskLevel, "risk", catalog.All, "Risk level filter")
	listCmd.Flags().BoolVarP(&state.FavoritesOnly, "favorites", "f", false, "Only show favorites")

	shareCmd.Flags().BoolVar(&noCopy, "no-copy", false, "Print the text without copying it")

	favCmd.AddCommand(favListCmd)
	favCmd.AddCommand(favToggleCmd)

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(filtersCmd)
	rootCmd.AddCommand(cyclesCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(favCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
