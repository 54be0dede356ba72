package ui

import (
	"github.com/atotto/clipboard"

	"autolight/internal/autocomplete"
	"autolight/internal/debug"
)

// FillOnSelect copies the selected choice's text into field.
func FillOnSelect(field *Field) autocomplete.Listener {
	return autocomplete.ListenerFuncs{
		OnSelect: func(choice autocomplete.Choice, _ *autocomplete.Controller) {
			field.SetValue(choice.Text())
		},
	}
}

// ParamFromSelect narrows target by passing the selected choice's value as
// the extra parameter key, the way a city field depends on a country field.
func ParamFromSelect(target *autocomplete.Controller, key string) autocomplete.Listener {
	return autocomplete.ListenerFuncs{
		OnSelect: func(choice autocomplete.Choice, _ *autocomplete.Controller) {
			target.SetParam(key, choice.Value())
		},
	}
}

// clipboardWrite is swapped in tests.
var clipboardWrite = clipboard.WriteAll

// CopyOnSelect writes the selected choice's value to the system clipboard.
// Failures are logged and otherwise ignored.
func CopyOnSelect() autocomplete.Listener {
	return autocomplete.ListenerFuncs{
		OnSelect: func(choice autocomplete.Choice, c *autocomplete.Controller) {
			if err := clipboardWrite(choice.Value()); err != nil {
				debug.Logf("copy %q from %s: %v", choice.Value(), c.ID(), err)
			}
		},
	}
}
