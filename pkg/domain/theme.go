package domain

// Theme field names as they appear in outlines.
const (
	KeyPrimaryColor     = "primary_color"
	KeySecondaryColor   = "secondary_color"
	KeyAccentColor      = "accent_color"
	KeyBackgroundColor  = "background_color"
	KeyTextColor        = "text_color"
	KeyFontFamily       = "font_family"
	KeyTitleFontSize    = "title_font_size"
	KeySubtitleFontSize = "subtitle_font_size"
	KeyBodyFontSize     = "body_font_size"
)

// ColorKeys lists the four colors every theme must carry.
var ColorKeys = []string{KeyPrimaryColor, KeySecondaryColor, KeyAccentColor, KeyBackgroundColor}

// Theme holds the colors and fonts shared by every slide of a presentation.
type Theme struct {
	PrimaryColor     string `json:"primary_color" yaml:"primary_color" mapstructure:"primary_color"`
	SecondaryColor   string `json:"secondary_color" yaml:"secondary_color" mapstructure:"secondary_color"`
	AccentColor      string `json:"accent_color" yaml:"accent_color" mapstructure:"accent_color"`
	BackgroundColor  string `json:"background_color" yaml:"background_color" mapstructure:"background_color"`
	TextColor        string `json:"text_color" yaml:"text_color" mapstructure:"text_color"`
	FontFamily       string `json:"font_family" yaml:"font_family" mapstructure:"font_family"`
	TitleFontSize    int    `json:"title_font_size" yaml:"title_font_size" mapstructure:"title_font_size"`
	SubtitleFontSize int    `json:"subtitle_font_size" yaml:"subtitle_font_size" mapstructure:"subtitle_font_size"`
	BodyFontSize     int    `json:"body_font_size" yaml:"body_font_size" mapstructure:"body_font_size"`
}

// DefaultTheme returns the fallback theme used when an outline omits one.
func DefaultTheme() Theme {
	return Theme{
		PrimaryColor:     "#0072C6",
		SecondaryColor:   "#404040",
		AccentColor:      "#00B294",
		BackgroundColor:  "#FFFFFF",
		TextColor:        "#000000",
		FontFamily:       "Segoe UI",
		TitleFontSize:    44,
		SubtitleFontSize: 32,
		BodyFontSize:     24,
	}
}

// Merge returns t with every zero-valued field taken from fallback.
func (t Theme) Merge(fallback Theme) Theme {
	if t.PrimaryColor == "" {
		t.PrimaryColor = fallback.PrimaryColor
	}
	if t.SecondaryColor == "" {
		t.SecondaryColor = fallback.SecondaryColor
	}
	if t.AccentColor == "" {
		t.AccentColor = fallback.AccentColor
	}
	if t.BackgroundColor == "" {
		t.BackgroundColor = fallback.BackgroundColor
	}
	if t.TextColor == "" {
		t.TextColor = fallback.TextColor
	}
	if t.FontFamily == "" {
		t.FontFamily = fallback.FontFamily
	}
	if t.TitleFontSize <= 0 {
		t.TitleFontSize = fallback.TitleFontSize
	}
	if t.SubtitleFontSize <= 0 {
		t.SubtitleFontSize = fallback.SubtitleFontSize
	}
	if t.BodyFontSize <= 0 {
		t.BodyFontSize = fallback.BodyFontSize
	}
	return t
}

// Fields returns the theme as an outline-shaped map.
func (t Theme) Fields() map[string]any {
	return map[string]any{
		KeyPrimaryColor:     t.PrimaryColor,
		KeySecondaryColor:   t.SecondaryColor,
		KeyAccentColor:      t.AccentColor,
		KeyBackgroundColor:  t.BackgroundColor,
		KeyTextColor:        t.TextColor,
		KeyFontFamily:       t.FontFamily,
		KeyTitleFontSize:    t.TitleFontSize,
		KeySubtitleFontSize: t.SubtitleFontSize,
		KeyBodyFontSize:     t.BodyFontSize,
	}
}
