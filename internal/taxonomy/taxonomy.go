// Package taxonomy holds the two static reason dictionaries — whole-image
// ("overall") reasons and localized ("flaw") reasons — and the helpers that
// turn persisted composite codes back into grouped form.
package taxonomy

import "strings"

type Item struct {
	Key          string
	Label        string
	Example      string
	HasTextInput bool
}

type Group struct {
	Key   string
	Title string
	Items []Item
}

// Code builds the composite reason code used everywhere a reason is
// referenced: "<group>:<item>".
func Code(groupKey, itemKey string) string {
	return groupKey + ":" + itemKey
}

// CodesToGrouped splits composite codes into a lookup of group key to item
// keys. Malformed codes (missing group or item segment) are dropped; item
// keys are de-duplicated per group. The function is total: it runs on
// externally persisted data and must never fail.
func CodesToGrouped(codes []string) map[string][]string {
	grouped := make(map[string][]string)
	for _, code := range codes {
		group, item, found := strings.Cut(code, ":")
		if !found || group == "" || item == "" {
			continue
		}
		if contains(grouped[group], item) {
			continue
		}
		grouped[group] = append(grouped[group], item)
	}
	return grouped
}

// Lookup resolves a composite code against both taxonomies. Used when
// rendering reference answers, where only the code is persisted.
func Lookup(code string) (Group, Item, bool) {
	groupKey, itemKey, found := strings.Cut(code, ":")
	if !found {
		return Group{}, Item{}, false
	}
	for _, groups := range [][]Group{Overall(), Flaw()} {
		for _, g := range groups {
			if g.Key != groupKey {
				continue
			}
			for _, it := range g.Items {
				if it.Key == itemKey {
					return g, it, true
				}
			}
		}
	}
	return Group{}, Item{}, false
}

func contains(items []string, key string) bool {
	for _, it := range items {
		if it == key {
			return true
		}
	}
	return false
}
