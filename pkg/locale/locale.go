// Package locale provides localized text lookup for dialogue rendering.
package locale

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
)

// Translator resolves a localization key to display text. When the key is
// unknown, the fallback is returned, or the key itself when no fallback is
// given.
type Translator interface {
	Translate(key string, params map[string]string, fallback string) string
}

// Table is a flat key-to-string table for one language. A nil Table is a
// valid Translator that always falls back.
type Table map[string]string

// Translate implements Translator with {param} interpolation.
func (t Table) Translate(key string, params map[string]string, fallback string) string {
	s, ok := t[key]
	if !ok {
		if fallback != "" {
			s = fallback
		} else {
			s = key
		}
	}
	for name, val := range params {
		s = strings.ReplaceAll(s, "{"+name+"}", val)
	}
	return s
}

// Catalog holds one table per supported language and selects the best
// match for a requested locale.
type Catalog struct {
	tags    []language.Tag
	tables  map[language.Tag]Table
	matcher language.Matcher
}

// LoadCatalog reads every <tag>.json string table from dir. File names
// must be valid BCP 47 tags (e.g. en.json, pt-BR.json).
func LoadCatalog(dir string) (*Catalog, error) {
	c := &Catalog{tables: make(map[language.Tag]Table)}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		name := strings.TrimSuffix(filepath.Base(path), ".json")
		tag, err := language.Parse(name)
		if err != nil {
			return fmt.Errorf("invalid locale file name %q: %w", filepath.Base(path), err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read locale file %s: %w", path, err)
		}

		var table Table
		if err := json.Unmarshal(data, &table); err != nil {
			return fmt.Errorf("failed to unmarshal locale file %s: %w", path, err)
		}

		c.tags = append(c.tags, tag)
		c.tables[tag] = table
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(c.tags) == 0 {
		return nil, fmt.Errorf("no locale tables found in %s", dir)
	}

	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

// Pick returns the table best matching the preferred locales, falling back
// to the catalog's first table when nothing matches.
func (c *Catalog) Pick(preferred ...string) Table {
	_, index := language.MatchStrings(c.matcher, preferred...)
	return c.tables[c.tags[index]]
}
