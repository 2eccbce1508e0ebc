package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rpager/internal/config"
	"github.com/kk-code-lab/rpager/internal/styled"
)

// ColorTheme defines application colors.
type ColorTheme struct {
	Background      tcell.Color
	Foreground      tcell.Color
	StandoutFg      tcell.Color
	Standout2Fg     tcell.Color
	FillerFg        tcell.Color
	TitlebarBg      tcell.Color
	TitlebarFg      tcell.Color
	TitlebarReverse bool
	MessageFg       tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:      tcell.ColorDefault,
		Foreground:      tcell.ColorDefault,
		StandoutFg:      tcell.GetColor("#44aaff"),
		Standout2Fg:     tcell.GetColor("#888888"),
		FillerFg:        tcell.ColorLightSlateGray,
		TitlebarBg:      tcell.ColorDefault,
		TitlebarFg:      tcell.ColorDefault,
		TitlebarReverse: true,
		MessageFg:       tcell.Color33,
	}
}

// ThemeFromConfig applies user colour overrides to the default theme.
func ThemeFromConfig(t config.Theme) ColorTheme {
	theme := GetColorTheme()
	if t.Standout != "" {
		theme.StandoutFg = tcell.GetColor(t.Standout)
	}
	if t.Standout2 != "" {
		theme.Standout2Fg = tcell.GetColor(t.Standout2)
	}
	theme.TitlebarReverse = t.TitlebarReverse
	return theme
}

func (t ColorTheme) baseStyle() tcell.Style {
	return tcell.StyleDefault.Background(t.Background).Foreground(t.Foreground)
}

// runStyle maps a decoded highlight to its terminal style.
func (t ColorTheme) runStyle(s styled.Style) tcell.Style {
	base := t.baseStyle()
	switch s {
	case styled.StyleStandout:
		return base.Foreground(t.StandoutFg).Bold(true)
	case styled.StyleStandout2:
		return base.Foreground(t.Standout2Fg).Underline(true)
	default:
		return base
	}
}

func (t ColorTheme) titlebarStyle() tcell.Style {
	style := tcell.StyleDefault.Background(t.TitlebarBg).Foreground(t.TitlebarFg)
	if t.TitlebarReverse {
		style = style.Reverse(true)
	}
	return style
}
