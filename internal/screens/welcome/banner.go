package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/certlab/internal/ui/theme"
)

const bannerArt = `
  ██████╗███████╗██████╗ ████████╗██╗      █████╗ ██████╗
 ██╔════╝██╔════╝██╔══██╗╚══██╔══╝██║     ██╔══██╗██╔══██╗
 ██║     █████╗  ██████╔╝   ██║   ██║     ███████║██████╔╝
 ██║     ██╔══╝  ██╔══██╗   ██║   ██║     ██╔══██║██╔══██╗
 ╚██████╗███████╗██║  ██║   ██║   ███████╗██║  ██║██████╔╝
  ╚═════╝╚══════╝╚═╝  ╚═╝   ╚═╝   ╚══════╝╚═╝  ╚═╝╚═════╝`

const bannerCompact = "C E R T L A B"

// RenderBanner returns the CERTLAB banner in the primary color, or a
// compact fallback for terminals narrower than the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < lipgloss.Width(bannerArt)+2 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
