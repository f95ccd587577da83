package main

import (
	"encoding/json"

	"homefinder/internal/filter"
	"homefinder/internal/model"

	"github.com/spf13/cobra"
)

var listingsCategory string

var listingsCmd = &cobra.Command{
	Use:   "listings [keyword]",
	Short: "Print published listings as JSON",
	Long:  `Fetches published listings, optionally matching a keyword and filtered by category, and prints them as JSON.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runListings,
}

func init() {
	listingsCmd.Flags().StringVarP(&listingsCategory, "category", "c", "",
		"Category filter (buy, rent, vacation-rentals, luxury, commercial)")
	rootCmd.AddCommand(listingsCmd)
}

func runListings(cmd *cobra.Command, args []string) error {
	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx := cmd.Context()
	var listings []model.Listing
	if len(args) == 1 {
		listings, err = rt.listings.GetPublished(ctx, args[0])
	} else {
		listings, err = rt.listings.GetAllPublished(ctx)
	}
	if err != nil {
		return err
	}

	engine := filter.New(listings)
	engine.Select(model.ParseCategory(listingsCategory))

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(engine.Visible())
}
