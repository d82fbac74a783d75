package cli

import (
	"github.com/spf13/cobra"

	"github.com/MaestroMetty/confesercenti-vallo-app/internal/display"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/geocode"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/logger"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/models"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/province"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/service"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/store"
)

func newSearchCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search stores by text, category and postal code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := service.SearchRequest{
				Term:       opts.query,
				Category:   opts.category,
				PostalCode: opts.postalCode,
			}
			if cmd.Flags().Changed("lat") {
				req.Latitude = &opts.lat
			}
			if cmd.Flags().Changed("lon") {
				req.Longitude = &opts.lon
			}

			var geo geocode.Geocoder
			if req.Latitude != nil && req.Longitude != nil {
				geo = geocode.NewNominatimClient(opts.geocoderURL, "", 0)
			}

			svc, err := openService(opts, geo)
			if err != nil {
				return err
			}
			defer svc.Close()

			result, err := svc.Search(cmd.Context(), req)
			if err != nil {
				return err
			}

			if opts.jsonOutput {
				return display.PrintJSON(cmd.OutOrStdout(), result)
			}
			display.PrintSearchResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
	registerSearchFlags(cmd.Flags(), opts)
	return cmd
}

func newCategoriesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories present in the stores file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := openService(opts, nil)
			if err != nil {
				return err
			}
			defer svc.Close()

			categories, err := svc.Categories()
			if err != nil {
				return err
			}

			if opts.jsonOutput {
				return display.PrintJSON(cmd.OutOrStdout(), categories)
			}
			display.PrintCategories(cmd.OutOrStdout(), categories)
			return nil
		},
	}
}

func newProvincesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provinces",
		Short: "List the province reference table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lookup, err := loadLookup(opts)
			if err != nil {
				return err
			}

			// provinces do not need the stores file
			provinces := lookup.Records()
			if opts.region != "" {
				provinces = lookup.ByRegion(opts.region)
			}
			if provinces == nil {
				provinces = []models.Province{}
			}

			if opts.jsonOutput {
				return display.PrintJSON(cmd.OutOrStdout(), provinces)
			}
			display.PrintProvinces(cmd.OutOrStdout(), provinces)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.region, "region", "r", "", "Only provinces of this region")
	return cmd
}

func newPromotionsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "promotions",
		Short: "List running promotions, highest priority first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			csvStore, err := openStore(opts)
			if err != nil {
				return err
			}
			if err := csvStore.LoadPromotions(opts.promotionsPath); err != nil {
				return dataError("reading promotions", err)
			}

			svc, err := newService(opts, csvStore, nil)
			if err != nil {
				return err
			}
			defer svc.Close()

			var promotions []models.Promotion
			if cmd.Flags().Changed("store") {
				promotions, err = svc.StorePromotions(opts.storeID)
			} else {
				promotions, err = svc.ActivePromotions()
			}
			if err != nil {
				return err
			}

			if opts.jsonOutput {
				return display.PrintJSON(cmd.OutOrStdout(), models.PromotionList{Promotions: promotions, Count: len(promotions)})
			}
			display.PrintPromotions(cmd.OutOrStdout(), promotions)
			return nil
		},
	}
	cmd.Flags().Int64VarP(&opts.storeID, "store", "s", 0, "Only promotions of this store id")
	return cmd
}

func openService(opts *options, geo geocode.Geocoder) (*service.StoreService, error) {
	csvStore, err := openStore(opts)
	if err != nil {
		return nil, err
	}
	return newService(opts, csvStore, geo)
}

func openStore(opts *options) (*store.CSVStore, error) {
	csvStore, err := store.NewCSVStore(opts.storesPath)
	if err != nil {
		return nil, dataError("reading stores", err)
	}
	return csvStore, nil
}

func newService(opts *options, st store.Store, geo geocode.Geocoder) (*service.StoreService, error) {
	lookup, err := loadLookup(opts)
	if err != nil {
		return nil, err
	}
	return service.NewStoreService(st, lookup, geo, nil, logger.Nop()), nil
}

func loadLookup(opts *options) (*province.Lookup, error) {
	var (
		records []models.Province
		err     error
	)
	if opts.provincesPath != "" {
		records, err = province.LoadCSV(opts.provincesPath)
	} else {
		records, err = province.Default()
	}
	if err != nil {
		return nil, dataError("reading provinces", err)
	}
	return province.BuildLookup(records), nil
}
