package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"studentsites/internal/domain"
	"studentsites/internal/dto"
)

var (
	accent  = lipgloss.Color("#7C3AED") // violet
	dim     = lipgloss.Color("#6B7280")
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
	warning = lipgloss.Color("#F59E0B")
	info    = lipgloss.Color("#3B82F6")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(dim)
	dimStyle    = lipgloss.NewStyle().Foreground(dim)
	strikeStyle = lipgloss.NewStyle().Foreground(dim).Strikethrough(true)
	priceStyle  = lipgloss.NewStyle().Bold(true).Foreground(success)
	alertStyle  = lipgloss.NewStyle().Bold(true).Foreground(danger)
	okStyle     = lipgloss.NewStyle().Foreground(success)

	statusColors = map[domain.Status]lipgloss.Color{
		domain.StatusPending:   warning,
		domain.StatusAccepted:  success,
		domain.StatusCompleted: info,
		domain.StatusRejected:  danger,
	}
)

func cell(width int, s string) string {
	return lipgloss.NewStyle().Width(width).MaxWidth(width).Render(s)
}

func statusBadge(s domain.Status) string {
	color, ok := statusColors[s]
	if !ok {
		color = dim
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color).Render(string(s))
}

func row(cells ...string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func renderOrders(orders []domain.Order) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Orders (%d)", len(orders))) + "\n")
	if len(orders) == 0 {
		b.WriteString(dimStyle.Render("no orders match") + "\n")
		return b.String()
	}

	b.WriteString(headerStyle.Render(row(
		cell(26, "ID"), cell(20, "NAME"), cell(14, "TYPE"), cell(10, "PACKAGE"),
		cell(12, "STATUS"), cell(18, "REFERRAL"), cell(12, "DATE"),
	)) + "\n")
	for _, o := range orders {
		b.WriteString(row(
			cell(26, o.ID),
			cell(20, o.Name),
			cell(14, o.WebsiteType),
			cell(10, string(o.Package)),
			cell(12, statusBadge(o.Status)),
			cell(18, o.Referral),
			cell(12, o.OrderDate.Format("2006-01-02")),
		) + "\n")
	}
	return b.String()
}

func renderProjects(projects []dto.ProjectResponse) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Our Projects") + "\n")
	if len(projects) == 0 {
		b.WriteString(dimStyle.Render("nothing to show yet") + "\n")
		return b.String()
	}
	for _, p := range projects {
		b.WriteString(row(
			cell(24, p.Name),
			cell(16, p.WebsiteType),
			statusBadge(domain.Status(p.Status)),
		) + "\n")
	}
	return b.String()
}

func renderOffers(offers []dto.OfferResponse) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Offers (%d)", len(offers))) + "\n")
	if len(offers) == 0 {
		b.WriteString(dimStyle.Render("no offers") + "\n")
		return b.String()
	}

	b.WriteString(headerStyle.Render(row(
		cell(26, "ID"), cell(28, "TITLE"), cell(10, "DISCOUNT"), cell(10, "PACKAGE"), cell(10, "ACTIVE"), cell(12, "CREATED"),
	)) + "\n")
	for _, o := range offers {
		active := dimStyle.Render("no")
		if o.IsActive {
			active = okStyle.Render("yes")
		}
		b.WriteString(row(
			cell(26, o.ID),
			cell(28, o.Title),
			cell(10, fmt.Sprintf("%d%%", o.DiscountPercentage)),
			cell(10, o.ApplicablePackage),
			cell(10, active),
			cell(12, o.CreatedDate.Format("2006-01-02")),
		) + "\n")
	}
	return b.String()
}

func renderPackages(packages []dto.PackageResponse) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Packages") + "\n")
	for _, p := range packages {
		name := p.Title
		if p.Popular {
			name += " ★"
		}

		price := priceStyle.Render(p.DisplayPrice.String())
		if p.StrikePrice != nil {
			price = strikeStyle.Render(p.StrikePrice.String()) + " " + price
		}
		if p.DiscountPercentage != nil {
			price += " " + alertStyle.Render(fmt.Sprintf("-%d%%", *p.DiscountPercentage))
		}

		b.WriteString(row(cell(14, name), price) + "\n")
		for _, f := range p.Features {
			b.WriteString(dimStyle.Render("  · "+f) + "\n")
		}
	}
	return b.String()
}

func renderAlert(msg string) string {
	return alertStyle.Render("✗ "+msg) + "\n"
}

func renderSuccess(msg string) string {
	return okStyle.Render("✓ "+msg) + "\n"
}
