package input

import (
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Rune aliases for keys that can't be bare single-char TOML keys
var runeAliases = map[string]rune{
	"backslash": '\\',
	"quote":     '"',
}

// KeymapFile is the TOML layout of a standalone keymap file
//
//	[keys]
//	down = "next_product"
//	[runes]
//	j = "next_product"
type KeymapFile struct {
	Keys  map[string]string `toml:"keys"`
	Runes map[string]string `toml:"runes"`
}

// LoadKeyConfig parses TOML keymap data into a sparse override KeyTable
// Only sections/keys present in TOML are populated
// Returns error on unknown action names, invalid key names, or parse failure
func LoadKeyConfig(data []byte) (*KeyTable, error) {
	var f KeymapFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("keymap parse: %w", err)
	}
	return ParseKeyBindings(f.Keys, f.Runes)
}

// ParseKeyBindings builds a sparse override KeyTable from name → action maps
// A nil section leaves the corresponding KeyTable map nil
func ParseKeyBindings(keys, runes map[string]string) (*KeyTable, error) {
	kt := &KeyTable{}

	if keys != nil {
		kt.SpecialKeys = make(map[Key]KeyEntry, len(keys))
		for keyStr, actionName := range keys {
			k, ok := KeyByName(strings.ToLower(keyStr))
			if !ok {
				return nil, fmt.Errorf("[keys] unknown key name: %q", keyStr)
			}
			entry, err := resolveAction(actionName)
			if err != nil {
				return nil, fmt.Errorf("[keys] key %q: %w", keyStr, err)
			}
			kt.SpecialKeys[k] = entry
		}
	}

	if runes != nil {
		kt.Runes = make(map[rune]KeyEntry, len(runes))
		for keyStr, actionName := range runes {
			r, err := resolveRune(keyStr)
			if err != nil {
				return nil, fmt.Errorf("[runes] key %q: %w", keyStr, err)
			}
			entry, err := resolveAction(actionName)
			if err != nil {
				return nil, fmt.Errorf("[runes] key %q: %w", keyStr, err)
			}
			kt.Runes[r] = entry
		}
	}

	return kt, nil
}

// resolveRune converts a TOML key string to a rune
// Accepts single characters and named aliases, digits are reserved for jump input
func resolveRune(s string) (rune, error) {
	// Named alias
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}

	runes := []rune(s)
	if len(runes) != 1 {
		return 0, fmt.Errorf("invalid rune key: %q (expected single character or alias)", s)
	}
	if runes[0] >= '0' && runes[0] <= '9' {
		return 0, fmt.Errorf("digit %q is reserved for jump input", s)
	}
	if runes[0] == ' ' {
		return 0, fmt.Errorf("space must be bound in [keys]")
	}
	return runes[0], nil
}

// resolveAction converts an action name string to a KeyEntry
func resolveAction(name string) (KeyEntry, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	entry, ok := ActionEntry(name)
	if !ok {
		return KeyEntry{}, fmt.Errorf("unknown action: %q", name)
	}
	return entry, nil
}

// MergeKeyTable returns a new KeyTable with base values overridden by non-nil override maps
// Override entries with BehaviorNone ("none" action) delete the key from the result
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	result := base.Clone()
	if override == nil {
		return result
	}

	mergeMap(result.SpecialKeys, override.SpecialKeys)
	mergeMap(result.Runes, override.Runes)

	return result
}

func mergeMap[K comparable](base, override map[K]KeyEntry) {
	if override == nil {
		return
	}
	for k, v := range override {
		if v.Behavior == BehaviorNone {
			delete(base, k)
		} else {
			base[k] = v
		}
	}
}
