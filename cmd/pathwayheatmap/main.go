// pathwayheatmap renders a pathway-focused log2 fold-change heatmap: only
// the genes on a pathway membership list are drawn, labeled by their pathway
// annotation. With -compare, a second expression table is prepared the same
// way and the two are shown side by side with a visual gap between the
// column groups.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/degmap/degmap"
	"github.com/degmap/degmap/annot"
	"github.com/degmap/degmap/heatmap"
	"github.com/degmap/degmap/lfc"
	"github.com/degmap/degmap/tabfile"
)

func main() {
	var configPath, comparePath string
	flag.StringVar(&configPath, "config", "", "Path to the JSON run configuration.")
	flag.StringVar(&comparePath, "compare", "", "Optional second expression table for a side-by-side comparison view.")
	flag.Parse()

	if configPath == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := degmap.ParseConfigFromPath(configPath)
	if err != nil {
		log.Fatalln(err)
	}
	if cfg.PathwayPath == "" {
		log.Fatalf("config %s: pathway path is required", configPath)
	}

	entries, err := loadPathways(cfg)
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("Loaded %d pathway members from %s", len(entries), cfg.PathwayPath)

	cleaner, err := annot.NewCleaner(cfg.PathwayID.Prefix, cfg.PathwayID.Suffix, cfg.PathwayID.Strict)
	if err != nil {
		log.Fatalln(err)
	}

	left, err := prepare(cfg, cfg.ExpressionPath, entries, cleaner)
	if err != nil {
		log.Fatalln(err)
	}

	params := heatmap.Params{
		WidthMM:    cfg.FigureWidthMM,
		HeightMM:   cfg.FigureHeightMM,
		FontFamily: cfg.FontFamily,
		RowFontPt:  cfg.RowFontPt,
		ColFontPt:  cfg.ColFontPt,
		Robust:     cfg.RobustScale,
	}

	if comparePath == "" {
		if err := heatmap.Render(left, cfg.OutputPath, params); err != nil {
			log.Fatalln(err)
		}
		log.Println("Figure saved to", cfg.OutputPath)
		return
	}

	right, err := prepare(cfg, comparePath, entries, cleaner)
	if err != nil {
		log.Fatalln(err)
	}

	merged, err := lfc.MergeConditions(left, right, cfg.LeftSuffix, cfg.RightSuffix)
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("Comparison view holds %d genes common to both tables", merged.Rows())

	if err := heatmap.RenderMerged(merged, cfg.OutputPath, params); err != nil {
		log.Fatalln(err)
	}
	log.Println("Figure saved to", cfg.OutputPath)
}

// prepare runs one expression table through the pathway pipeline: load,
// inner-join against the pathway list, optionally filter by the fold-change
// cutoffs, and sort.
func prepare(cfg degmap.Config, path string, entries []annot.PathwayEntry, cleaner *annot.Cleaner) (*lfc.Table, error) {
	table, err := loadExpression(cfg, path)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded %d genes x %d conditions from %s", table.Rows(), len(table.Conditions), path)

	merged, err := annot.MergePathways(table, entries, cleaner, cfg.LabelSeparator)
	if err != nil {
		return nil, err
	}
	log.Printf("%d of %d genes are on the pathway list", merged.Rows(), table.Rows())

	// Pathway views usually plot the whole gene set; cutoffs apply only when
	// configured.
	if cfg.LFCLow != 0 || cfg.LFCHigh != 0 {
		if merged, err = merged.Filter(cfg.LFCLow, cfg.LFCHigh); err != nil {
			if _, empty := err.(lfc.EmptyResultError); empty {
				log.Println("Warning: the fold-change cutoffs look misconfigured for this input")
			}
			return nil, err
		}
	}

	if cfg.SortBy != "" {
		if err := merged.SortBy(cfg.SortBy); err != nil {
			return nil, err
		}
	}

	return merged, nil
}

func loadExpression(cfg degmap.Config, path string) (*lfc.Table, error) {
	var delim rune
	var err error
	if cfg.Delimiter != "" {
		delim = rune(cfg.Delimiter[0])
	} else if delim, err = degmap.SniffTable(path); err != nil {
		return nil, err
	}

	r, err := degmap.OpenTable(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	tab, err := tabfile.Read(r, delim)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return lfc.Load(tab, cfg.IDColumn, cfg.Conditions)
}

func loadPathways(cfg degmap.Config) ([]annot.PathwayEntry, error) {
	r, err := degmap.OpenTable(cfg.PathwayPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return annot.ReadPathways(r)
}
