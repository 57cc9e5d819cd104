package degmap

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/carbocation/pfx"
)

// CleanRule describes how raw gene identifiers from one data source are
// normalized before joining: a literal prefix to strip and an end-anchored
// regular expression for the suffix. With Strict set, an identifier that does
// not carry the expected prefix or suffix is an error rather than a
// pass-through, so unexpectedly shaped identifiers surface instead of being
// silently mis-cleaned.
type CleanRule struct {
	Prefix string `json:"prefix"`
	Suffix string `json:"suffix"`
	Strict bool   `json:"strict"`
}

// Config is the JSON run configuration for one heatmap invocation.
type Config struct {
	ConfigPath string `json:"-"`

	// Input and output paths
	ExpressionPath string `json:"expression"`
	AnnotationPath string `json:"annotation"`
	PathwayPath    string `json:"pathway"`
	OutputPath     string `json:"output"`

	// Table schema
	IDColumn   string   `json:"id_column"`
	Conditions []string `json:"conditions"`
	SortBy     string   `json:"sort_by"`

	// Expression tables are usually tab-separated; leave empty to sniff.
	Delimiter string `json:"delimiter"`

	// Fold-change thresholds. A row survives when any condition value falls
	// below LFCLow or above LFCHigh.
	LFCLow  float64 `json:"lfc_low"`
	LFCHigh float64 `json:"lfc_high"`

	// Identifier normalization, per data source
	ExpressionID CleanRule `json:"expression_id"`
	PathwayID    CleanRule `json:"pathway_id"`

	// Only annotation rows whose feature type contains this marker are used
	// (e.g. "mRNA" for NCBI feature tables).
	FeatureMarker string `json:"feature_marker"`

	// Separator between symbol and name in the derived gene label
	LabelSeparator string `json:"label_separator"`

	// Suffixes marking left/right provenance in the two-condition view
	LeftSuffix  string `json:"left_suffix"`
	RightSuffix string `json:"right_suffix"`

	// Figure geometry and typography
	FigureWidthMM  float64 `json:"figure_width_mm"`
	FigureHeightMM float64 `json:"figure_height_mm"`
	FontFamily     string  `json:"font_family"`
	RowFontPt      float64 `json:"row_font_pt"`
	ColFontPt      float64 `json:"col_font_pt"`

	// Clip the color scale to the 2nd-98th percentile of the rendered values
	RobustScale bool `json:"robust_scale"`
}

// ParseConfigFromPath reads a JSON run configuration, expands ~ in all paths,
// applies defaults, and validates the result.
func ParseConfigFromPath(path string) (Config, error) {
	out := Config{ConfigPath: path}

	f, err := os.Open(ExpandHome(path))
	if err != nil {
		return out, pfx.Err(err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&out); err != nil {
		if e, ok := err.(*json.SyntaxError); ok {
			log.Printf("syntax error at byte offset %d", e.Offset)
		}
		return out, pfx.Err(err)
	}

	out.ExpressionPath = ExpandHome(out.ExpressionPath)
	out.AnnotationPath = ExpandHome(out.AnnotationPath)
	out.PathwayPath = ExpandHome(out.PathwayPath)
	out.OutputPath = ExpandHome(out.OutputPath)

	out.applyDefaults()

	return out, out.Validate()
}

func (c *Config) applyDefaults() {
	if c.IDColumn == "" {
		c.IDColumn = "Gene_id"
	}
	if c.FeatureMarker == "" {
		c.FeatureMarker = "mRNA"
	}
	if c.LabelSeparator == "" {
		c.LabelSeparator = " | "
	}
	if c.LeftSuffix == "" {
		c.LeftSuffix = "_x"
	}
	if c.RightSuffix == "" {
		c.RightSuffix = "_y"
	}
	if c.FigureWidthMM == 0 {
		c.FigureWidthMM = 210
	}
	if c.FigureHeightMM == 0 {
		c.FigureHeightMM = 297
	}
	if c.FontFamily == "" {
		c.FontFamily = "Arial"
	}
	if c.RowFontPt == 0 {
		c.RowFontPt = 11
	}
	if c.ColFontPt == 0 {
		c.ColFontPt = 12
	}
}

// Validate checks that the configuration names everything the pipeline needs
// and that the identifier-cleanup patterns compile.
func (c Config) Validate() error {
	if c.ExpressionPath == "" {
		return fmt.Errorf("config %s: expression path is required", c.ConfigPath)
	}
	if c.OutputPath == "" {
		return fmt.Errorf("config %s: output path is required", c.ConfigPath)
	}
	if len(c.Conditions) == 0 {
		return fmt.Errorf("config %s: at least one condition column is required", c.ConfigPath)
	}

	if c.SortBy != "" {
		found := false
		for _, cond := range c.Conditions {
			if cond == c.SortBy {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("config %s: sort_by column %q is not one of the condition columns", c.ConfigPath, c.SortBy)
		}
	}

	for _, rule := range []CleanRule{c.ExpressionID, c.PathwayID} {
		if rule.Suffix == "" {
			continue
		}
		if _, err := regexp.Compile(anchorSuffix(rule.Suffix)); err != nil {
			return fmt.Errorf("config %s: invalid suffix pattern %q: %v", c.ConfigPath, rule.Suffix, err)
		}
	}

	if c.Delimiter != "" && c.Delimiter != "\t" && c.Delimiter != "," {
		return fmt.Errorf("config %s: delimiter must be tab or comma, got %q", c.ConfigPath, c.Delimiter)
	}

	return nil
}

// ExpressionDelimiter returns the configured delimiter for the expression
// table, or sniffs it from the file when the config leaves it unset.
func (c Config) ExpressionDelimiter() (rune, error) {
	if c.Delimiter != "" {
		return rune(c.Delimiter[0]), nil
	}
	return SniffTable(c.ExpressionPath)
}

// anchorSuffix guarantees a suffix pattern only matches at the end of an
// identifier.
func anchorSuffix(pattern string) string {
	if strings.HasSuffix(pattern, "$") {
		return pattern
	}
	return pattern + "$"
}
