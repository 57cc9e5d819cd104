// lfcheatmap renders a whole-transcriptome log2 fold-change heatmap from a
// DESeq2-style expression table and a gene annotation table: genes are
// labeled by symbol and name, filtered by fold-change cutoffs, sorted by one
// condition, and drawn on a diverging color scale anchored at zero.
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
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to the JSON run configuration.")
	flag.Parse()

	if configPath == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := degmap.ParseConfigFromPath(configPath)
	if err != nil {
		log.Fatalln(err)
	}
	if cfg.AnnotationPath == "" {
		log.Fatalf("config %s: annotation path is required", configPath)
	}

	table, err := loadExpression(cfg)
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("Loaded %d genes x %d conditions from %s", table.Rows(), len(table.Conditions), cfg.ExpressionPath)

	cleaner, err := annot.NewCleaner(cfg.ExpressionID.Prefix, cfg.ExpressionID.Suffix, cfg.ExpressionID.Strict)
	if err != nil {
		log.Fatalln(err)
	}
	if err := table.CleanIDs(cleaner.Clean); err != nil {
		log.Fatalln(err)
	}

	annotations, err := loadAnnotations(cfg)
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("Loaded %d %q annotations from %s", len(annotations), cfg.FeatureMarker, cfg.AnnotationPath)

	annot.Annotate(table, annotations, cfg.LabelSeparator)

	filtered, err := table.Filter(cfg.LFCLow, cfg.LFCHigh)
	if err != nil {
		if _, empty := err.(lfc.EmptyResultError); empty {
			log.Println("Warning: the fold-change cutoffs look misconfigured for this input")
		}
		log.Fatalln(err)
	}
	log.Printf("Found %d DEGs with LFC cutoffs %g,%g", filtered.Rows(), cfg.LFCLow, cfg.LFCHigh)

	if cfg.SortBy != "" {
		if err := filtered.SortBy(cfg.SortBy); err != nil {
			log.Fatalln(err)
		}
	}

	if err := heatmap.Render(filtered, cfg.OutputPath, heatmap.Params{
		WidthMM:    cfg.FigureWidthMM,
		HeightMM:   cfg.FigureHeightMM,
		FontFamily: cfg.FontFamily,
		RowFontPt:  cfg.RowFontPt,
		ColFontPt:  cfg.ColFontPt,
		Robust:     cfg.RobustScale,
	}); err != nil {
		log.Fatalln(err)
	}

	log.Println("Figure saved to", cfg.OutputPath)
}

func loadExpression(cfg degmap.Config) (*lfc.Table, error) {
	delim, err := cfg.ExpressionDelimiter()
	if err != nil {
		return nil, err
	}

	r, err := degmap.OpenTable(cfg.ExpressionPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	tab, err := tabfile.Read(r, delim)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.ExpressionPath, err)
	}

	return lfc.Load(tab, cfg.IDColumn, cfg.Conditions)
}

func loadAnnotations(cfg degmap.Config) (map[string]annot.Annotation, error) {
	r, err := degmap.OpenTable(cfg.AnnotationPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return annot.ReadAnnotations(r, cfg.FeatureMarker)
}
