// Package annot enriches expression tables with gene annotations and pathway
// membership, normalizing identifiers so the tables join on a common key.
package annot

import (
	"fmt"
	"regexp"
	"strings"
)

// Cleaner normalizes raw gene identifiers by stripping a literal prefix and
// an end-anchored suffix pattern. These strips encode upstream naming
// conventions (e.g. a species-code prefix like "Parand_" and a transcript
// version suffix like ".1"), so both are configured per data source rather
// than hardcoded.
type Cleaner struct {
	prefix string
	suffix *regexp.Regexp
	strict bool
}

// NewCleaner compiles a cleanup rule. The suffix pattern is anchored to the
// end of the identifier if it is not already. With strict set, identifiers
// missing the expected prefix or suffix are an error instead of passing
// through unchanged.
func NewCleaner(prefix, suffixPattern string, strict bool) (*Cleaner, error) {
	c := &Cleaner{prefix: prefix, strict: strict}

	if suffixPattern != "" {
		if !strings.HasSuffix(suffixPattern, "$") {
			suffixPattern += "$"
		}
		re, err := regexp.Compile(suffixPattern)
		if err != nil {
			return nil, fmt.Errorf("suffix pattern %q: %v", suffixPattern, err)
		}
		c.suffix = re
	}

	return c, nil
}

// Clean applies the cleanup rule to one raw identifier.
func (c *Cleaner) Clean(id string) (string, error) {
	if c == nil {
		return id, nil
	}

	out := id
	if c.prefix != "" {
		if strings.HasPrefix(out, c.prefix) {
			out = out[len(c.prefix):]
		} else if c.strict {
			return "", fmt.Errorf("identifier %q does not carry the expected prefix %q", id, c.prefix)
		}
	}

	if c.suffix != nil {
		stripped := c.suffix.ReplaceAllString(out, "")
		if stripped == out && c.strict {
			return "", fmt.Errorf("identifier %q does not match the expected suffix pattern %q", id, c.suffix)
		}
		out = stripped
	}

	return out, nil
}
