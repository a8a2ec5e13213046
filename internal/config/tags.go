package config

import "time"

// TagConfig holds the default values of the seven tag roster used when a
// game is exported without loaded tags.
type TagConfig struct {
	Event string
	Site  string
	Date  string
	Round string
	White string
	Black string
}

// NewTagConfig creates a TagConfig with PGN's "unknown" placeholders and
// today's date.
func NewTagConfig() *TagConfig {
	return &TagConfig{
		Event: "?",
		Site:  "?",
		Date:  time.Now().Format("2006.01.02"),
		Round: "?",
		White: "?",
		Black: "?",
	}
}

// Defaults returns the tag values keyed by tag name.
func (t *TagConfig) Defaults() map[string]string {
	return map[string]string{
		"Event": t.Event,
		"Site":  t.Site,
		"Date":  t.Date,
		"Round": t.Round,
		"White": t.White,
		"Black": t.Black,
	}
}
