package input

import "sort"

// actionRegistry maps canonical action names to KeyEntry structs
// Used by keymap config loader to resolve TOML action strings to bindings
var actionRegistry map[string]KeyEntry

func init() {
	actionRegistry = buildActionRegistry()
}

func buildActionRegistry() map[string]KeyEntry {
	return map[string]KeyEntry{
		// Unbind sentinel
		"none": {},

		// Sequential navigation, names match the external event names
		"next_product":     {BehaviorNavigate, IntentNextProduct},
		"previous_product": {BehaviorNavigate, IntentPreviousProduct},
		"next_image":       {BehaviorNavigate, IntentNextImage},
		"previous_image":   {BehaviorNavigate, IntentPreviousImage},

		// Jump buffer control
		"commit_jump": {BehaviorCommit, IntentJumpToProduct},
		"cancel_jump": {BehaviorCancel, IntentNone},
	}
}

// ActionEntry returns the KeyEntry for a canonical action name
func ActionEntry(name string) (KeyEntry, bool) {
	entry, ok := actionRegistry[name]
	return entry, ok
}

// ActionNames returns all registered action names, sorted
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
