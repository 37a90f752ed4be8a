package tracker

import (
	"context"

	"github.com/sandeepkv93/daytrack/internal/storage"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Theme reads the persisted UI theme, defaulting to dark when unset or
// unrecognized.
func (t *Tracker) Theme(ctx context.Context) string {
	if theme := t.loadString(ctx, storage.KeyTheme); theme == ThemeLight {
		return ThemeLight
	}
	return ThemeDark
}

// SetTheme persists the theme; unrecognized values are ignored.
func (t *Tracker) SetTheme(ctx context.Context, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return nil
	}
	return t.store.Set(ctx, storage.KeyTheme, theme)
}
