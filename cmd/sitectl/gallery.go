package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/jkco/site-core/internal/config"
	"github.com/jkco/site-core/internal/database"
	"github.com/jkco/site-core/internal/models"
	"github.com/jkco/site-core/internal/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Listings are ordered by display order, so recency is sorted client-side
// over this many rows.
const statsScanLimit = 100

type galleryStats struct {
	Total  int64                 `json:"total"`
	Latest []models.GalleryImage `json:"latest"`
}

func newGalleryStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gallery-stats",
		Short: "Print the gallery size and the most recently added images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			limit, _ := cmd.Flags().GetInt("limit")
			jsonOutput, _ := cmd.Flags().GetBool("json")

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			db, err := database.Connect(ctx, cfg, zap.NewNop())
			if err != nil {
				return err
			}
			defer db.Close(context.Background())

			stats, err := collectGalleryStats(ctx, db.Stores.Gallery, limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			}
			return printGalleryStats(cmd.OutOrStdout(), stats)
		},
	}
	cmd.Flags().Int("limit", 5, "images to show")
	cmd.Flags().Bool("json", false, "output as JSON")
	return cmd
}

// collectGalleryStats counts every image, hidden ones included, and returns
// the n most recently created.
func collectGalleryStats(ctx context.Context, repo repository.GalleryRepository, n int) (galleryStats, error) {
	res, err := repo.List(ctx, repository.GalleryFilter{IncludeHidden: true}, repository.Page{Limit: statsScanLimit})
	if err != nil {
		return galleryStats{}, fmt.Errorf("list gallery: %w", err)
	}
	items := res.Items
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	if n >= 0 && len(items) > n {
		items = items[:n]
	}
	return galleryStats{Total: res.Total, Latest: items}, nil
}

func printGalleryStats(out io.Writer, stats galleryStats) error {
	fmt.Fprintf(out, "Total images in gallery: %d\n", stats.Total)
	if len(stats.Latest) == 0 {
		return nil
	}
	fmt.Fprintf(out, "Latest %d images:\n", len(stats.Latest))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tCREATED\tVISIBLE\tURL")
	for _, img := range stats.Latest {
		fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", img.Title, img.CreatedAt.Format(time.RFC3339), img.IsVisible, img.ImageURL)
	}
	return w.Flush()
}
