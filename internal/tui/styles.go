package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/GiuseppeDM98/net-worth-tracker-sub003/internal/simulation"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	countStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	goodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	badStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// successRateStyle picks a color band for the rate.
func successRateStyle(rate decimal.Decimal) lipgloss.Style {
	switch {
	case rate.GreaterThanOrEqual(decimal.NewFromInt(90)):
		return goodStyle
	case rate.GreaterThanOrEqual(decimal.NewFromInt(75)):
		return warnStyle
	default:
		return badStyle
	}
}

// SummaryBanner renders the headline numbers of a run in a bordered card.
func SummaryBanner(results *simulation.Results) string {
	var sb strings.Builder

	rate := results.SuccessRate
	sb.WriteString(fmt.Sprintf("%s %s\n",
		labelStyle.Render("Success rate:"),
		successRateStyle(rate).Render(rate.StringFixed(1)+"%")))
	sb.WriteString(fmt.Sprintf("%s %d succeeded, %d failed\n",
		labelStyle.Render("Trials:      "),
		results.SuccessCount, results.FailureCount))
	sb.WriteString(fmt.Sprintf("%s $%s",
		labelStyle.Render("Median final:"),
		results.MedianFinalValue.Round(0).String()))

	if fa := results.FailureAnalysis; fa != nil {
		sb.WriteString(fmt.Sprintf("\n%s year %d (median)",
			labelStyle.Render("Depletion:   "), fa.MedianFailureYear))
	}

	return bannerStyle.Render(sb.String())
}
