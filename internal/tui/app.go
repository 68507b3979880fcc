// Package tui provides the interactive Bubble Tea estimator for colest.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/NihalShah4/cost-of-living-estimator/internal/basket"
	"github.com/NihalShah4/cost-of-living-estimator/internal/cli"
	"github.com/NihalShah4/cost-of-living-estimator/internal/estimate"
	"github.com/NihalShah4/cost-of-living-estimator/internal/lifestyle"
	"github.com/NihalShah4/cost-of-living-estimator/internal/refdata"
	"github.com/NihalShah4/cost-of-living-estimator/internal/rpp"
	"github.com/NihalShah4/cost-of-living-estimator/internal/tui/components"
	"github.com/NihalShah4/cost-of-living-estimator/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// LoadFunc produces the price parity table. It runs off the UI goroutine.
type LoadFunc func(ctx context.Context) (*rpp.Table, refdata.Info, error)

// Options configures a new App.
type Options struct {
	Load      LoadFunc
	Catalog   *lifestyle.Catalog
	Basket    basket.Basket
	State     string
	Household estimate.Household
}

// tableLoadedMsg is sent when Load finishes.
type tableLoadedMsg struct {
	table *rpp.Table
	info  refdata.Info
	err   error
}

// App is the root Bubble Tea model.
type App struct {
	opts Options

	// Data
	est    *estimate.Estimator
	info   refdata.Info
	loaded bool

	// Form, then results
	vals      *formValues
	form      *huh.Form
	household *estimate.HouseholdResult
	steps     *estimate.Result
	err       error // last estimate error, shown above the form

	// UI state
	spinner spinner.Model
	width   int
	height  int
}

const (
	maxContentWidth = 100
	labelWidth      = 16
)

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	if opts.Catalog == nil {
		opts.Catalog = lifestyle.Default()
	}
	if opts.Household.Adults == 0 {
		opts.Household = estimate.DefaultHousehold()
	}
	if opts.Basket == (basket.Basket{}) {
		opts.Basket = basket.Default()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	return App{opts: opts, spinner: sp}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, loadTableCmd(a.opts.Load))
}

func loadTableCmd(load LoadFunc) tea.Cmd {
	return func() tea.Msg {
		if load == nil {
			return tableLoadedMsg{table: rpp.Default(), info: refdata.Info{Source: rpp.SourceBuiltin}}
		}
		t, info, err := load(context.Background())
		return tableLoadedMsg{table: t, info: info, err: err}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(a.contentWidth())
		}
		return a, nil

	case tableLoadedMsg:
		a.loaded = true
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.est = estimate.New(msg.table, a.opts.Catalog)
		a.info = msg.info
		a.vals = newFormValues(a.opts.State, a.opts.Household, a.est.Catalog())
		return a, a.openForm()

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.form == nil {
			return a.updateResultKeys(msg)
		}
	}

	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a *App) openForm() tea.Cmd {
	a.form = newEstimateForm(a.vals, a.est.Table(), a.est.Catalog())
	if a.width > 0 {
		a.form = a.form.WithWidth(a.contentWidth())
	}
	return a.form.Init()
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		a.form = nil
		if err := a.compute(); err != nil {
			a.err = err
			return a, a.openForm()
		}
		return a, nil
	case huh.StateAborted:
		return a, tea.Quit
	}
	return a, cmd
}

func (a App) updateResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.est == nil {
		// Loading failed; any key exits.
		if a.loaded {
			return a, tea.Quit
		}
		return a, nil
	}
	switch msg.String() {
	case "q", "esc":
		return a, tea.Quit
	case "e", "enter":
		a.household, a.steps = nil, nil
		return a, a.openForm()
	}
	return a, nil
}

// compute runs both estimates for the current form values.
func (a *App) compute() error {
	h := a.vals.household()
	hr, err := a.est.EstimateHousehold(a.vals.state, h, a.opts.Basket)
	if err != nil {
		return err
	}
	res, err := a.est.Estimate(estimate.Request{
		State:      a.vals.state,
		Basket:     a.opts.Basket.Monthly(),
		Selections: h.Selections,
	})
	if err != nil {
		return err
	}
	a.household, a.steps, a.err = &hr, &res, nil
	return nil
}

func (a App) contentWidth() int {
	return min(max(a.width, 40), maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.est == nil {
		return a.viewFatal()
	}
	if a.form != nil {
		return a.viewForm()
	}
	return a.viewResult()
}

func (a App) viewLoading() string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3).
		Render(a.spinner.View() + lipgloss.NewStyle().Foreground(t.TextMuted).Render(" Loading price parity data..."))
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func (a App) viewFatal() string {
	t := theme.Active
	return "\n  " + lipgloss.NewStyle().Foreground(t.Error).Render(fmt.Sprintf("Could not load price data: %v", a.err)) +
		"\n\n  " + lipgloss.NewStyle().Foreground(t.TextDim).Render("Press any key to exit.") + "\n"
}

func (a App) header() string {
	t := theme.Active
	return lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Render("◈ colest") +
		lipgloss.NewStyle().Foreground(t.TextMuted).Render(" · Lifestyle-based cost of living")
}

func (a App) viewForm() string {
	var b strings.Builder
	b.WriteString("\n ")
	b.WriteString(a.header())
	b.WriteString("\n\n")
	if a.err != nil {
		b.WriteString(" ")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Active.Error).Render(a.err.Error()))
		b.WriteString("\n\n")
	}
	b.WriteString(a.form.View())
	return b.String()
}

func (a App) viewResult() string {
	if a.household == nil || a.steps == nil {
		return ""
	}
	w := a.contentWidth()
	hr, res := a.household, a.steps

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(a.header())
	b.WriteString("\n\n")

	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Monthly", Value: cli.FormatUSD(hr.Total), Note: hr.State.Name},
		{Label: "Annual", Value: cli.FormatUSD(hr.Annual())},
		{Label: "RPP index", Value: cli.FormatIndex(hr.State.Index), Note: cli.FormatFactor(hr.State.Factor())},
		{Label: "Lifestyle", Value: cli.FormatFactor(res.Multiplier()), Note: "vs national basket"},
	}, w))
	b.WriteString("\n")

	inner := components.CardInnerWidth(w)
	barW := max(inner-labelWidth-16, 8)

	var lines []string
	for _, l := range hr.Lines {
		share := 0.0
		if hr.Total > 0 {
			share = l.Monthly / hr.Total
		}
		lines = append(lines, components.ShareBar(l.Category, cli.FormatUSD(l.Monthly), share, labelWidth, barW))
	}
	b.WriteString(components.ContentCard("Household budget", strings.Join(lines, "\n"), w, true))
	b.WriteString("\n")

	var maxAbs float64
	for _, c := range res.Breakdown[1:] {
		maxAbs = max(maxAbs, abs(c.Amount))
	}
	var steps []string
	for _, c := range res.Breakdown[1:] {
		label := c.Category
		if c.Tier != "" {
			label += " " + c.Tier
		}
		steps = append(steps, components.StepBar(label, cli.FormatDelta(c.Amount), c.Amount, maxAbs, labelWidth+6, barW-6))
	}
	title := fmt.Sprintf("How your choices move a %s basket to %s", cli.FormatUSD(res.Basket), cli.FormatUSD(res.Total))
	b.WriteString(components.ContentCard(title, strings.Join(steps, "\n"), w, false))
	b.WriteString("\n")

	source := string(a.info.Source)
	if a.info.Stale {
		source += " (stale)"
	}
	b.WriteString(components.RenderStatusBar(w, "[e]dit  [q]uit", source))

	return b.String()
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
