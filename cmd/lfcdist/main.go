// lfcdist plots the sorted log2 fold-change values of each condition column
// as one curve per condition. Eyeballing where the curves flatten is a quick
// way to pick the fold-change cutoffs before rendering a heatmap.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/degmap/degmap"
	"github.com/degmap/degmap/lfc"
	"github.com/degmap/degmap/tabfile"
)

func main() {
	var configPath, outPath string
	flag.StringVar(&configPath, "config", "", "Path to the JSON run configuration.")
	flag.StringVar(&outPath, "out", "lfcdist.png", "Path for the output PNG.")
	flag.Parse()

	if configPath == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := degmap.ParseConfigFromPath(configPath)
	if err != nil {
		log.Fatalln(err)
	}

	table, err := loadExpression(cfg)
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("Loaded %d genes x %d conditions from %s", table.Rows(), len(table.Conditions), cfg.ExpressionPath)

	if err := plotDistributions(table, outPath); err != nil {
		log.Fatalln(err)
	}

	log.Println("Distribution plot saved to", outPath)
}

func plotDistributions(t *lfc.Table, outPath string) error {
	series := make([]chart.Series, 0, len(t.Conditions))
	for col, cond := range t.Conditions {
		vals := make([]float64, len(t.Values))
		for r, row := range t.Values {
			vals[r] = row[col]
		}
		sort.Float64s(vals)

		series = append(series, chart.ContinuousSeries{
			Name:    cond,
			XValues: intSeq(len(vals)),
			YValues: vals,
		})
	}

	graph := chart.Chart{
		Width:  1024,
		Height: 512,
		XAxis: chart.XAxis{
			Name: "gene rank",
		},
		YAxis: chart.YAxis{
			Name: "log2 fold change",
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	// Render to a byte buffer
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return err
	}

	outFile, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer outFile.Close()

	if _, err := buffer.WriteTo(outFile); err != nil {
		return err
	}

	return nil
}

func intSeq(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
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
