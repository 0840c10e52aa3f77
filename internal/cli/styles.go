// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lunabrook/moodscope/internal/model"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#B794F4") // Soft violet
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4") // Teal
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D") // Yellow
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B") // Red
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats errors or failure messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(0, 1)
)

// emotionColors maps each emotion kind to its display color.
var emotionColors = map[model.EmotionKind]lipgloss.Color{
	model.EmotionHappy:     lipgloss.Color("#FFD93D"),
	model.EmotionSad:       lipgloss.Color("#6C91BF"),
	model.EmotionAngry:     lipgloss.Color("#FF6B6B"),
	model.EmotionAnxious:   lipgloss.Color("#C084FC"),
	model.EmotionNeutral:   lipgloss.Color("#A0A0A0"),
	model.EmotionExcited:   lipgloss.Color("#FF9F45"),
	model.EmotionFearful:   lipgloss.Color("#8675A9"),
	model.EmotionDisgusted: lipgloss.Color("#7FB069"),
	model.EmotionSurprised: lipgloss.Color("#5BC0EB"),
	model.EmotionCalm:      lipgloss.Color("#4ECDC4"),
}

// EmotionStyle returns the display style for an emotion kind.
func EmotionStyle(kind model.EmotionKind) lipgloss.Style {
	color, ok := emotionColors[kind]
	if !ok {
		color = SubtleColor
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color)
}
