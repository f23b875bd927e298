package tui

import "github.com/charmbracelet/lipgloss"

var bannerStyle = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#EEEEEE"}).
	Bold(true)

// Banner is the ASCII art printed by the version command. It spells
// "MERMAIDFIX".
const Banner = ` __  __ ___ ___ __  __   _   ___ ___    ___ _____  __
|  \/  | __| _ \  \/  | /_\ |_ _|   \  | __|_ _\ \/ /
| |\/| | _||   / |\/| |/ _ \ | || |) | | _| | | >  <
|_|  |_|___|_|_\_|  |_/_/ \_\___|___/  |_| |___/_/\_\`

// RenderBanner returns the styled banner.
func RenderBanner() string {
	return bannerStyle.Render(Banner)
}
