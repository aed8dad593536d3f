package config

import (
	"go.uber.org/zap"

	"github.com/javiermolinar/habitcal/internal/calendar"
	"github.com/javiermolinar/habitcal/internal/render"
)

// ContextOptions returns the settings that shape the month grid.
func (c *Config) ContextOptions() calendar.ContextOptions {
	return calendar.ContextOptions{
		StartOfWeek: c.StartOfWeekIndex(),
		MonthFormat: c.Calendar.MonthFormat,
	}
}

// RenderOptions returns a snapshot of the calendar settings for one render
// call. Markdown content is rendered with goldmark.
func (c *Config) RenderOptions(sourcePath string, log *zap.Logger) render.Options {
	return render.Options{
		Weekdays:       c.WeekdayLabels(),
		DisplayHead:    c.Calendar.DisplayHead,
		EnableHTML:     c.Calendar.EnableHTML,
		EnableMarkdown: c.Calendar.EnableMarkdown,
		SourcePath:     sourcePath,
		Markup:         render.NewMarkdown(),
		Logger:         log,
	}
}

// HTMLOptions returns the HTML writer settings.
func (c *Config) HTMLOptions() render.HTMLOptions {
	return render.HTMLOptions{Sanitize: c.Calendar.SanitizeHTML}
}
