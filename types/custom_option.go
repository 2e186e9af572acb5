// custom_option.go defines the libav options passed through the configs.

package types

import (
	"fmt"
	"strings"
)

type DictionaryItem struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

type DictionaryItems []DictionaryItem

// Deduplicate keeps only the last item of every key, preserving the
// order of the kept items.
func (s DictionaryItems) Deduplicate() DictionaryItems {
	last := make(map[string]int, len(s))
	for idx, item := range s {
		last[item.Key] = idx
	}
	result := make(DictionaryItems, 0, len(last))
	for idx, item := range s {
		if last[item.Key] != idx {
			continue
		}
		result = append(result, item)
	}
	return result
}

func (s DictionaryItems) String() string {
	parts := make([]string, 0, len(s))
	for _, item := range s {
		parts = append(parts, item.Key+"="+item.Value)
	}
	return strings.Join(parts, ",")
}

// Set parses "key=value" and appends it; it makes DictionaryItems usable
// as a repeatable command line flag.
func (s *DictionaryItems) Set(v string) error {
	key, value, ok := strings.Cut(v, "=")
	if !ok || key == "" {
		return fmt.Errorf("expected 'key=value', got '%s'", v)
	}
	*s = append(*s, DictionaryItem{Key: key, Value: value})
	return nil
}

func (s *DictionaryItems) Type() string {
	return "key=value"
}
