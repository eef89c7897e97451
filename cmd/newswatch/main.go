package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dongbanlab/newswatch/internal/aggregate"
	"github.com/dongbanlab/newswatch/internal/config"
	"github.com/dongbanlab/newswatch/internal/domain"
	"github.com/dongbanlab/newswatch/internal/enrich"
	"github.com/dongbanlab/newswatch/internal/export"
	"github.com/dongbanlab/newswatch/internal/logger"
	"github.com/dongbanlab/newswatch/internal/session"
	"github.com/dongbanlab/newswatch/internal/view"
	"github.com/dongbanlab/newswatch/pkg/feeds"
	"github.com/dongbanlab/newswatch/pkg/httpclient"
)

const defaultSessionID = "cli"

var configPath string

func main() {
	// A missing .env is fine; explicit config comes from flags and env.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "newswatch",
		Short: "Aggregate news feed results across search keywords",
		Long: `newswatch fans a keyword set out over the Google News RSS search
endpoint, deduplicates the results by normalized URL, optionally filters
them against relevance terms, and prints or exports the collection.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
	rootCmd.AddCommand(createRunCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func createRunCmd() *cobra.Command {
	var (
		keywordsFlag string
		maxPer       int
		noDedup      bool
		filter       bool
		enrichPages  bool
		sortKey      string
		search       string
		keywordSel   string
		sourceSel    string
		page         int
		pageSize     int
		formats      []string
		outDir       string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one aggregation and show the first page of results",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(configPath)
			if err != nil {
				return err
			}

			log, err := logger.New(settings.LogLevel)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			keywords := settings.Keywords
			if strings.TrimSpace(keywordsFlag) != "" {
				keywords = strings.Split(keywordsFlag, ",")
			}
			if maxPer > 0 {
				settings.MaxPerKeyword = maxPer
			}
			if pageSize > 0 {
				settings.PageSize = pageSize
			}
			if outDir != "" {
				settings.ExportDir = outDir
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fetcher := feeds.NewFetcher(httpclient.NewRestyClient(settings.FetchTimeout), log)
			agg := aggregate.New(fetcher, aggregate.Options{
				MaxPerKeyword:  settings.MaxPerKeyword,
				Locale:         feeds.Locale{Language: settings.Language, Country: settings.Country},
				Dedup:          settings.Dedup && !noDedup,
				Filter:         settings.Filter || filter,
				RelevanceTerms: settings.RelevanceTerms,
				Pacer:          aggregate.DelayPacer{Delay: settings.PacingDelay},
			}, log)

			col, err := agg.Run(ctx, keywords)
			if err != nil {
				if errors.Is(err, aggregate.ErrNoKeywords) {
					return errors.New("select at least one keyword before starting a run")
				}
				return err
			}

			if enrichPages && !col.Empty() {
				enricher := enrich.NewEnricher(httpclient.NewRestyClient(settings.FetchTimeout), log)
				col = col.WithArticles(enricher.Apply(ctx, settings.PacingDelay, col.Articles))
			}

			store := session.NewStore()
			store.Put(defaultSessionID, col)

			printRun(cmd, col)

			pg := view.Apply(col, view.Query{
				Search:   search,
				Keyword:  keywordSel,
				Source:   sourceSel,
				SortKey:  sortKey,
				Page:     page,
				PageSize: settings.PageSize,
			})
			printPage(cmd, pg, page)

			if len(formats) > 0 {
				if err := exportCollection(cmd, col, formats, settings.ExportDir); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&keywordsFlag, "keywords", "k", "", "Comma-delimited search keywords (default: configured keyword set)")
	cmd.Flags().IntVar(&maxPer, "max", 0, "Maximum articles per keyword")
	cmd.Flags().BoolVar(&noDedup, "no-dedup", false, "Keep duplicate URLs across keywords")
	cmd.Flags().BoolVar(&filter, "filter", false, "Apply the relevance term filter")
	cmd.Flags().BoolVar(&enrichPages, "enrich", false, "Scrape article pages to fill missing summaries and media URLs")
	cmd.Flags().StringVar(&sortKey, "sort", view.SortRecency, "Sort key: recency, title or source")
	cmd.Flags().StringVar(&search, "search", "", "Keep only articles containing this term")
	cmd.Flags().StringVar(&keywordSel, "keyword", view.FilterAll, "Restrict results to one collected keyword")
	cmd.Flags().StringVar(&sourceSel, "source", view.FilterAll, "Restrict results to one publisher")
	cmd.Flags().IntVar(&page, "page", 1, "Result page to print (1-based)")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Articles per page")
	cmd.Flags().StringSliceVar(&formats, "export", nil, "Export formats: json, csv, xlsx")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Directory for export files")

	return cmd
}

// printRun summarizes the aggregation result, including per-keyword
// fetch failures, which are informational, never fatal.
func printRun(cmd *cobra.Command, col *domain.Collection) {
	for _, notice := range col.Notices {
		cmd.Printf("notice: fetch failed for %q: %s\n", notice.Keyword, notice.Reason)
	}
	for _, count := range col.Counts {
		cmd.Printf("%-40s fetched %3d, accepted %3d\n", count.Keyword, count.Fetched, count.Accepted)
	}
	if col.Empty() {
		cmd.Println("no articles collected; try different keywords or run again later")
		return
	}
	cmd.Printf("collected %d unique articles in %s\n",
		col.Len(), col.EndedAt.Sub(col.StartedAt).Round(time.Millisecond))
}

func printPage(cmd *cobra.Command, pg view.Page, page int) {
	if pg.Total == 0 {
		return
	}
	cmd.Printf("page %d/%d (%d matching)\n", page, pg.TotalPages, pg.Total)
	for _, a := range pg.Items {
		line := a.Title
		if a.Source != "" {
			line += " - " + a.Source
		}
		if a.PublishedDate != "" {
			line += " (" + a.PublishedDate + ")"
		}
		cmd.Println("  " + line)
	}
}

func exportCollection(cmd *cobra.Command, col *domain.Collection, formats []string, dir string) error {
	registry := export.DefaultRegistry()
	now := time.Now()

	for _, format := range formats {
		exporter, err := registry.For(format)
		if err != nil {
			return err
		}

		path := filepath.Join(dir, export.FileName(exporter.Format(), now))
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		if err := exporter.Write(f, col.Articles); err != nil {
			f.Close()
			return fmt.Errorf("export %s: %w", exporter.Format(), err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close export file: %w", err)
		}
		cmd.Printf("exported %s\n", path)
	}
	return nil
}
