// Command catalog browses the product catalog from a terminal, page by page
// and category by category.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"

	"egreen-site/internal/domain/entity"
	"egreen-site/internal/i18n"
	"egreen-site/internal/infra/catalogapi"
	"egreen-site/internal/observability/logging"
	"egreen-site/internal/usecase/catalog"
)

func main() {
	var (
		baseURL  = flag.StringP("base-url", "u", os.Getenv("CATALOG_API_BASE_URL"), "catalog API root (env CATALOG_API_BASE_URL)")
		locale   = flag.StringP("locale", "l", "en", "display locale")
		limit    = flag.IntP("limit", "n", 10, "products per page")
		category = flag.String("category", "", "initial category id")
		timeout  = flag.Duration("timeout", 10*time.Second, "timeout of a single API call")
		logLevel = flag.String("log-level", "warn", "log level")
	)
	flag.Parse()

	logger, err := logging.New(logging.Options{Level: *logLevel, Format: logging.FormatText, Output: os.Stderr})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg := catalogapi.DefaultConfig()
	cfg.BaseURL = *baseURL
	cfg.Timeout = *timeout
	client, err := catalogapi.New(cfg, catalogapi.WithLogger(logger))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	resolver, err := i18n.NewResolver(i18n.DefaultConfig())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	loc, ok := resolver.Parse(*locale)
	if !ok {
		fmt.Fprintf(os.Stderr, "unsupported locale %q (supported: %v)\n", *locale, resolver.Supported())
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := &repl{
		browser:  catalog.NewBrowser(client, *limit, *category),
		resolver: resolver,
		locale:   loc,
		out:      os.Stdout,
	}
	if err := r.run(ctx, os.Stdin); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// display resolves a localized field for the REPL's locale.
func (r *repl) display(s entity.LocalizedString) string {
	return r.resolver.Resolve(s, r.locale)
}
