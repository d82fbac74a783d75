// Package cli implements the storesearch command line tool, which runs the
// store search against a local stores CSV file.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/MaestroMetty/confesercenti-vallo-app/internal/display"
)

const (
	defaultStoresPath     = "./data/stores.csv"
	defaultPromotionsPath = "./data/promotions.csv"
)

// options holds every flag of one invocation.
type options struct {
	storesPath     string
	promotionsPath string
	provincesPath  string
	jsonOutput     bool

	query       string
	category    string
	postalCode  string
	lat         float64
	lon         float64
	geocoderURL string

	region string

	storeID int64
}

// Execute runs the CLI with the process arguments and exits.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes one invocation and returns the exit code. When stdout is not
// a terminal, output defaults to JSON unless --json=false is given.
func Run(args []string, stdout, stderr io.Writer) int {
	opts := &options{}
	root := newRootCmd(opts)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	root.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if !cmd.Flags().Changed("json") && !isTTY(stdout) {
			opts.jsonOutput = true
		}
	}

	if err := root.Execute(); err != nil {
		cliErr := classify(err)
		if opts.jsonOutput {
			printErrorJSON(stderr, cliErr)
		} else {
			display.PrintError(stderr, formatErrorText(cliErr))
		}
		return cliErr.ExitCode
	}
	return ExitSuccess
}

func newRootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "storesearch",
		Short: "Search the associated stores from the command line",
		Long: "Runs the same search as the app's store list against a stores CSV file.\n" +
			"Free text matches name, city, postal code and province (name or code).",
		Example: `  storesearch search -q salerno
  storesearch search --category bar --cap 84078
  storesearch categories --json
  storesearch provinces --region campania
  storesearch promotions --store 2`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.storesPath, "stores", envOr("STORES_PATH", defaultStoresPath), "Stores CSV file")
	pf.StringVar(&opts.promotionsPath, "promotions", envOr("PROMOTIONS_PATH", defaultPromotionsPath), "Promotions CSV file")
	pf.StringVar(&opts.provincesPath, "provinces", os.Getenv("PROVINCES_PATH"), "Province reference CSV (default: built-in table)")
	pf.BoolVar(&opts.jsonOutput, "json", false, "Output as JSON")

	root.AddCommand(newSearchCmd(opts), newCategoriesCmd(opts), newProvincesCmd(opts), newPromotionsCmd(opts))
	return root
}

func registerSearchFlags(f *pflag.FlagSet, opts *options) {
	f.StringVarP(&opts.query, "query", "q", "", "Free text search")
	f.StringVarP(&opts.category, "category", "c", "", "Exact category (e.g. bar, pizzeria)")
	f.StringVar(&opts.postalCode, "cap", "", "Your postal code; only stores with the same CAP are shown")
	f.Float64Var(&opts.lat, "lat", 0, "Your latitude, reverse geocoded to a postal code (requires --lon)")
	f.Float64Var(&opts.lon, "lon", 0, "Your longitude (requires --lat)")
	f.StringVar(&opts.geocoderURL, "geocoder-url", envOr("GEOCODER_URL", ""), "Nominatim base URL")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func isTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
