package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Theme holds color constants for the chat panel.
type Theme struct {
	BgColor          tcell.Color
	FgColor          tcell.Color
	MutedColor       tcell.Color
	AccentColor      tcell.Color
	AccentFgColor    tcell.Color
	BorderColor      tcell.Color
	BorderFocusColor tcell.Color
	OnlineColor      tcell.Color
	OfflineColor     tcell.Color
	OutgoingColor    tcell.Color
	IncomingColor    tcell.Color
	ActiveRowBg      tcell.Color
	ActiveRowFg      tcell.Color
	HintKeyColor     tcell.Color
	FlashInfoColor   tcell.Color
	FlashWarnColor   tcell.Color
	FlashErrColor    tcell.Color
}

// DefaultTheme returns the community site's teal-on-dark palette.
func DefaultTheme() *Theme {
	return &Theme{
		BgColor:          tcell.ColorBlack,
		FgColor:          tcell.ColorWhiteSmoke,
		MutedColor:       tcell.ColorGray,
		AccentColor:      tcell.ColorTeal,
		AccentFgColor:    tcell.ColorWhite,
		BorderColor:      tcell.ColorTeal,
		BorderFocusColor: tcell.ColorMediumTurquoise,
		OnlineColor:      tcell.ColorLimeGreen,
		OfflineColor:     tcell.ColorDarkGray,
		OutgoingColor:    tcell.ColorMediumTurquoise,
		IncomingColor:    tcell.ColorLightGray,
		ActiveRowBg:      tcell.ColorDarkSlateGray,
		ActiveRowFg:      tcell.ColorMediumTurquoise,
		HintKeyColor:     tcell.ColorDodgerBlue,
		FlashInfoColor:   tcell.ColorNavajoWhite,
		FlashWarnColor:   tcell.ColorOrange,
		FlashErrColor:    tcell.ColorOrangeRed,
	}
}

// Tag returns c as a tview color tag value, e.g. "#008080".
func Tag(c tcell.Color) string {
	return fmt.Sprintf("#%06x", c.Hex())
}
