// Package render draws the expense screen for a terminal: window tabs,
// totals, the per-category bar breakdown and the expense list.
//
// Styles are bound to the destination writer, so output sent to a pipe or a
// buffer is plain text while a terminal gets colors.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"spendlog/internal/core"
	"spendlog/internal/services"
)

const (
	EmptyList  = "No expenses yet."
	EmptyChart = "No expenses yet. Add some to see the chart."

	filledCell = "█"
	emptyCell  = "░"
	keyMarker  = "■"
)

// DefaultPalette holds the chart colors, cycled by category position.
var DefaultPalette = []lipgloss.Color{
	"#24bafb", "#60a5fa", "#f472b6", "#fbbf24",
	"#34d399", "#8b5cf6", "#fb923c", "#10b981",
	"#ec4899", "#06b6d4", "#eab308", "#ef4444",
}

var hundred = decimal.NewFromInt(100)

type Styles struct {
	Title    lipgloss.Style
	Active   lipgloss.Style
	Inactive lipgloss.Style
	Total    lipgloss.Style
	Muted    lipgloss.Style
	Empty    lipgloss.Style
}

func defaultStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title:    r.NewStyle().Bold(true),
		Active:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#24bafb")),
		Inactive: r.NewStyle().Foreground(lipgloss.Color("#828282")),
		Total:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ef4444")),
		Muted:    r.NewStyle().Foreground(lipgloss.Color("#7f849c")),
		Empty:    r.NewStyle().Foreground(lipgloss.Color("#7f849c")).Italic(true),
	}
}

type Renderer struct {
	CurrencySymbol string
	BarWidth       int
	Palette        []lipgloss.Color
	Styles         Styles

	lg *lipgloss.Renderer
}

type Option func(*Renderer)

func WithCurrencySymbol(symbol string) Option {
	return func(r *Renderer) {
		r.CurrencySymbol = symbol
	}
}

func WithBarWidth(width int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.BarWidth = width
		}
	}
}

func WithPalette(palette ...lipgloss.Color) Option {
	return func(r *Renderer) {
		if len(palette) > 0 {
			r.Palette = palette
		}
	}
}

// New returns a renderer whose color support is detected from w.
func New(w io.Writer, opts ...Option) *Renderer {
	lg := lipgloss.NewRenderer(w)
	r := &Renderer{
		CurrencySymbol: "$",
		BarWidth:       24,
		Palette:        DefaultPalette,
		Styles:         defaultStyles(lg),
		lg:             lg,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Money formats an amount with the currency symbol and two decimals.
func (r *Renderer) Money(d decimal.Decimal) string {
	return r.CurrencySymbol + core.FormatAmount(d)
}

func (r *Renderer) color(i int) lipgloss.Color {
	return r.Palette[i%len(r.Palette)]
}

// WindowTabs lists the window identifiers with the active one marked.
func (r *Renderer) WindowTabs(active core.Window) string {
	tabs := make([]string, 0, len(core.Windows()))
	for _, w := range core.Windows() {
		if w == active {
			tabs = append(tabs, r.Styles.Active.Render("["+w.String()+"]"))
			continue
		}
		tabs = append(tabs, r.Styles.Inactive.Render(" "+w.String()+" "))
	}
	return strings.Join(tabs, " ")
}

// Totals prints the overall total followed by each category total.
func (r *Renderer) Totals(s core.Summary) string {
	var b strings.Builder
	b.WriteString(r.Styles.Total.Render("Total Spending: " + r.Money(s.Total)))
	for _, ca := range s.ByCategory.Entries() {
		fmt.Fprintf(&b, "\n%s: %s", ca.Name, r.Money(ca.Amount))
	}
	return b.String()
}

// barCells scales a percentage to the bar width. Any non-zero share gets at
// least one cell.
func (r *Renderer) barCells(pct decimal.Decimal) int {
	cells := int(pct.Mul(decimal.NewFromInt(int64(r.BarWidth))).Div(hundred).Round(0).IntPart())
	if cells < 1 && pct.IsPositive() {
		cells = 1
	}
	if cells > r.BarWidth {
		cells = r.BarWidth
	}
	return cells
}

// Breakdown draws one proportional bar per category and the color key.
func (r *Renderer) Breakdown(s core.Summary) string {
	shares, ok := s.Shares()
	if !ok {
		return r.Styles.Empty.Render(EmptyChart)
	}

	nameWidth, amountWidth := 0, 0
	for _, sh := range shares {
		nameWidth = max(nameWidth, lipgloss.Width(sh.Category))
		amountWidth = max(amountWidth, lipgloss.Width(r.Money(sh.Amount)))
	}

	lines := []string{r.Styles.Title.Render("Expenses by Category")}
	for i, sh := range shares {
		cells := r.barCells(sh.Percent)
		bar := r.lg.NewStyle().Foreground(r.color(i)).Render(strings.Repeat(filledCell, cells)) +
			r.Styles.Muted.Render(strings.Repeat(emptyCell, r.BarWidth-cells))
		lines = append(lines, fmt.Sprintf("%s  %s  %s %6s",
			pad(sh.Category, nameWidth),
			padLeft(r.Money(sh.Amount), amountWidth),
			bar,
			core.FormatPercent(sh.Percent)))
	}

	lines = append(lines, "", r.Styles.Title.Render("Category Breakdown"))
	for i, sh := range shares {
		marker := r.lg.NewStyle().Foreground(r.color(i)).Render(keyMarker)
		lines = append(lines, marker+" "+sh.Category)
	}
	return strings.Join(lines, "\n")
}

// List prints one row per expense in the order given.
func (r *Renderer) List(expenses []core.Expense) string {
	if len(expenses) == 0 {
		return r.Styles.Empty.Render(EmptyList)
	}

	idWidth, amountWidth, categoryWidth := 0, 0, 0
	for _, e := range expenses {
		idWidth = max(idWidth, len(fmt.Sprint(e.ID))+1)
		amountWidth = max(amountWidth, lipgloss.Width(r.Money(e.Amount)))
		categoryWidth = max(categoryWidth, lipgloss.Width(e.Category))
	}

	lines := make([]string, 0, len(expenses))
	for _, e := range expenses {
		row := fmt.Sprintf("%s  %s  %s  %s",
			r.Styles.Muted.Render(pad(fmt.Sprintf("#%d", e.ID), idWidth)),
			e.Date.String(),
			padLeft(r.Money(e.Amount), amountWidth),
			pad(e.Category, categoryWidth))
		if e.HasNote() && e.NoteText() != "" {
			row += "  " + r.Styles.Muted.Render(e.NoteText())
		}
		lines = append(lines, strings.TrimRight(row, " "))
	}
	return strings.Join(lines, "\n")
}

// Screen composes the whole view. footer is printed last when not empty.
func (r *Renderer) Screen(v services.View, footer string) string {
	sections := []string{
		r.WindowTabs(v.Window),
		r.Totals(v.Summary),
		r.Breakdown(v.Summary),
		r.Styles.Title.Render("Expenses"),
		r.List(v.Expenses),
	}
	if v.Window == core.WindowWeek {
		sections[0] += r.Styles.Muted.Render(fmt.Sprintf("  %s .. %s", v.Week.Start, v.Week.End))
	}
	if footer != "" {
		sections = append(sections, r.Styles.Muted.Render(footer))
	}
	return strings.Join(sections, "\n\n")
}

func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func padLeft(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}
