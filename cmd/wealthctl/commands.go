package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/wealth-portal/internal/catalog"
	"github.com/bobmcallan/wealth-portal/internal/common"
	"github.com/bobmcallan/wealth-portal/internal/config"
	"github.com/bobmcallan/wealth-portal/internal/favorites"
	"github.com/bobmcallan/wealth-portal/internal/loader"
	"github.com/bobmcallan/wealth-portal/internal/models"
	"github.com/bobmcallan/wealth-portal/internal/share"
	"github.com/bobmcallan/wealth-portal/internal/storage"
)

// session is the loaded configuration and data one command works on.
type session struct {
	cfg    *config.Config
	logger *common.Logger
	engine *catalog.Engine
	data   *models.Dataset
}

func loadConfig() (*config.Config, error) {
	paths := configFiles
	if len(paths) == 0 {
		for _, p := range []string{"wealth-portal.toml", filepath.Join("config", "wealth-portal.toml")} {
			if _, err := os.Stat(p); err == nil {
				paths = []string{p}
				break
			}
		}
	}
	return config.LoadFromFiles(paths...)
}

func newLogger() *common.Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}
	return common.NewLoggerFromConfig(common.LoggingConfig{
		Level:   level,
		Outputs: []string{"console"},
	})
}

// openSession loads configuration and the full data set. A failed load is
// returned as an error; nothing partial is shown.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger()

	src, err := loader.NewSource(&cfg.Data)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("source", src.String()).Msg("loading data")

	data, err := loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("failed to load data from %s: %w", src, err)
	}

	return &session{
		cfg:    cfg,
		logger: logger,
		engine: catalog.NewEngine(cfg.Data.Locale),
		data:   data,
	}, nil
}

// openFavorites opens the configured storage and returns the visitor's
// favorites store. The caller must call the returned close function.
func openFavorites(ctx context.Context, cfg *config.Config, logger *common.Logger) (*favorites.Store, func() error, error) {
	mgr, err := storage.NewStorageManager(ctx, logger, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}
	store := favorites.NewStore(mgr.KeyValueStorage(), favorites.Key(visitorID), logger)
	return store, mgr.Close, nil
}

func parseListType() (models.ProductType, error) {
	t, ok := models.ParseProductType(listType)
	if !ok {
		return "", fmt.Errorf("unknown product type %q (want wealth or fund)", listType)
	}
	return t, nil
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	t, err := parseListType()
	if err != nil {
		return err
	}
	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	favs, closeStore, err := openFavorites(ctx, s.cfg, s.logger)
	if err != nil {
		return err
	}
	defer closeStore()
	set := favs.Load(ctx)

	q := state
	q.Sort = catalog.ParseSortKey(sortKey)
	products := s.engine.Derive(s.data.Products(t), q, set)

	out := cmd.OutOrStdout()
	if asJSON {
		return writeJSON(out, products)
	}
	if len(products) == 0 {
		fmt.Fprintln(out, "no products match")
		return nil
	}
	printProducts(out, products, set)
	fmt.Fprintf(out, "\n%d of %d %s products\n", len(products), len(s.data.Products(t)), t)
	return nil
}

func printProducts(w io.Writer, products []models.Product, set favorites.Set) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tNAME\tCODE\t1M\t3M\t6M\tBANKS")
	for i := range products {
		p := &products[i]
		mark := ""
		if set.Contains(p.ID) {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			mark, p.ID, p.Name, p.Code,
			returnText(p, models.Period1M),
			returnText(p, models.Period3M),
			returnText(p, models.Period6M),
			strings.Join(p.Banks, "、"))
	}
	tw.Flush()
}

func returnText(p *models.Product, period models.Period) string {
	v, ok := p.Returns.Get(period)
	if !ok {
		return share.UnknownReturn
	}
	return models.FormatReturn(v) + "%"
}

func runFilters(cmd *cobra.Command, args []string) error {
	t, err := parseListType()
	if err != nil {
		return err
	}
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}

	products := s.data.Products(t)
	opts := s.engine.Options(products)
	out := cmd.OutOrStdout()
	if asJSON {
		return writeJSON(out, opts)
	}

	fmt.Fprintf(out, "issuers:     %s\n", strings.Join(opts.Issuers, ", "))
	fmt.Fprintf(out, "banks:       %s\n", strings.Join(opts.Banks, ", "))
	fmt.Fprintf(out, "currencies:  %s\n", strings.Join(opts.Currencies, ", "))
	fmt.Fprintf(out, "risk levels: %s\n", strings.Join(opts.RiskLevels, ", "))
	if ts, ok := catalog.LastUpdated(products); ok {
		fmt.Fprintf(out, "updated:     %s\n", ts.Format("2006-01-02 15:04"))
	}
	return nil
}

func runCycles(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if asJSON {
		return writeJSON(out, s.data.Cycles)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ASSET\tSTAGE\tPROGRESS\tSUGGESTION")
	for _, c := range s.data.Cycles {
		fmt.Fprintf(tw, "%s\t%s\t%d%%\t%s\n", c.Asset, c.Stage, c.Progress, c.Suggestion)
	}
	return tw.Flush()
}

func runShare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	t, err := parseListType()
	if err != nil {
		return err
	}
	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	var product models.Product
	if len(args) == 0 {
		product = share.ListCard(t)
	} else {
		found := false
		for _, p := range s.data.Products(t) {
			if p.ID == args[0] {
				product, found = p, true
				break
			}
		}
		if !found {
			return fmt.Errorf("product %q not found in %s list", args[0], t)
		}
	}

	payload := share.NewPayload(t, &product, s.cfg.BaseURL()+"/#"+string(t))
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, payload.Text)

	var target share.Clipboard
	if !noCopy && !clipboardUnsupported() {
		target = share.ClipboardFunc(clipboardWriteAll)
	}
	result, err := share.NewSharer(nil, target, s.logger).Share(ctx, payload)
	switch {
	case errors.Is(err, share.ErrNoShareTarget):
		return nil
	case err != nil:
		fmt.Fprintf(cmd.ErrOrStderr(), "\n%v\n", err)
		return nil
	}
	fmt.Fprintf(out, "\n%s\n", result.Message)
	return nil
}

func runFavList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, closeStore, err := openFavorites(ctx, cfg, newLogger())
	if err != nil {
		return err
	}
	defer closeStore()

	set := store.Load(ctx)
	out := cmd.OutOrStdout()
	if asJSON {
		return writeJSON(out, set)
	}
	for _, id := range set {
		fmt.Fprintln(out, id)
	}
	return nil
}

func runFavToggle(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, closeStore, err := openFavorites(ctx, cfg, newLogger())
	if err != nil {
		return err
	}
	defer closeStore()

	set, err := store.Toggle(ctx, args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if asJSON {
		return writeJSON(out, map[string]any{
			"id":        args[0],
			"favorited": set.Contains(args[0]),
			"favorites": set,
		})
	}
	if set.Contains(args[0]) {
		fmt.Fprintf(out, "added %s (%d favorites)\n", args[0], len(set))
	} else {
		fmt.Fprintf(out, "removed %s (%d favorites)\n", args[0], len(set))
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
