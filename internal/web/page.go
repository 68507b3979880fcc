package web

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/NihalShah4/cost-of-living-estimator/internal/cli"
	"github.com/NihalShah4/cost-of-living-estimator/internal/estimate"
	"github.com/NihalShah4/cost-of-living-estimator/internal/lifestyle"

	"github.com/a-h/templ"
)

// FormData fills the estimate form.
type FormData struct {
	State     string
	States    []string
	Catalog   []lifestyle.Category
	Household estimate.Household
	Error     string
}

// ResultData fills the result page.
type ResultData struct {
	Household estimate.HouseholdResult
	Steps     estimate.Result
	Income    estimate.Income
	Source    string
}

const pageStyle = `body{font-family:system-ui,sans-serif;max-width:46rem;margin:2rem auto;padding:0 1rem;color:#222}
fieldset{border:1px solid #ccc;margin:0 0 1rem;padding:.75rem}
label{display:block;margin:.35rem 0}
table{border-collapse:collapse;width:100%}
td,th{padding:.25rem .5rem;border-bottom:1px solid #eee;text-align:right}
td:first-child,th:first-child{text-align:left}
.error{color:#a00;font-weight:600}
.muted{color:#777}`

// page writes the shared document around body.
func page(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw("<!doctype html><html lang=\"en\"><head><meta charset=\"utf-8\">")
		hw.raw("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">")
		hw.raw("<title>" + templ.EscapeString(title) + " · colest</title>")
		hw.raw("<style>" + pageStyle + "</style></head><body>")
		hw.raw("<h1>" + templ.EscapeString(title) + "</h1>")
		if hw.err != nil {
			return hw.err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		hw.raw("</body></html>")
		return hw.err
	})
}

// FormPage renders the estimate form, showing d.Error when set.
func FormPage(d FormData) templ.Component {
	return page("Cost of living", templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		if d.Error != "" {
			hw.raw("<p class=\"error\" role=\"alert\">" + templ.EscapeString(d.Error) + "</p>")
		}
		hw.raw("<form method=\"post\" action=\"/estimate\">")

		hw.raw("<fieldset><legend>Location</legend><label>State <input name=\"state\" list=\"states\" required value=\"" +
			templ.EscapeString(d.State) + "\"></label><datalist id=\"states\">")
		for _, name := range d.States {
			hw.raw("<option value=\"" + templ.EscapeString(name) + "\">")
		}
		hw.raw("</datalist></fieldset>")

		h := d.Household
		hw.raw("<fieldset><legend>Household</legend>")
		hw.numberInput("Adults", "adults", h.Adults, estimate.MinAdults, estimate.MaxAdults)
		hw.numberInput("Kids", "kids", h.Kids, 0, estimate.MaxKids)
		hw.numberInput("Cars", "cars", h.Cars, 0, estimate.MaxCars)
		checked := ""
		if h.Gym {
			checked = " checked"
		}
		hw.raw("<label><input type=\"checkbox\" name=\"gym\" value=\"1\"" + checked + "> Gym membership</label>")
		hw.raw("<label>Travel <select name=\"travel\">")
		for _, lvl := range estimate.TravelLevels() {
			hw.option(lvl, lvl, strings.EqualFold(lvl, h.Travel))
		}
		hw.raw("</select></label></fieldset>")

		hw.raw("<fieldset><legend>Lifestyle</legend>")
		for _, cat := range d.Catalog {
			current, ok := h.Selections.Get(cat.Name)
			if !ok {
				current = cat.Neutral
			}
			hw.raw("<label>" + templ.EscapeString(labelOr(cat.Label, cat.Name)) +
				" <select name=\"" + templ.EscapeString(cat.Name) + "\">")
			for _, t := range cat.Tiers {
				text := labelOr(t.Label, t.Name) + " " + cli.FormatFactor(t.Multiplier)
				hw.option(t.Name, text, strings.EqualFold(t.Name, current))
			}
			hw.raw("</select></label>")
		}
		hw.raw("</fieldset><button type=\"submit\">Estimate</button></form>")
		return hw.err
	}))
}

// ResultPage renders a household budget with its multiplier breakdown and
// recommended income.
func ResultPage(d ResultData) templ.Component {
	title := "Cost of living in " + d.Household.State.Name
	return page(title, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hr := d.Household

		hw.raw("<p>Monthly <strong>" + cli.FormatUSD(hr.Total) + "</strong>, annual <strong>" +
			cli.FormatUSD(hr.Annual()) + "</strong>. Price parity " +
			templ.EscapeString(cli.FormatFactor(hr.State.Factor())) + ".</p>")

		hw.raw("<h2>Household budget</h2><table><thead><tr><th>Category</th><th>Monthly</th><th>Annual</th></tr></thead><tbody>")
		for _, l := range hr.Lines {
			hw.row(l.Category, cli.FormatUSD(l.Monthly), cli.FormatUSD(l.Annual()))
		}
		hw.raw("</tbody></table>")

		hw.raw("<h2>How the estimate builds up</h2><table><thead><tr><th>Step</th><th>Factor</th><th>Change</th></tr></thead><tbody>")
		for _, c := range d.Steps.Breakdown {
			step := c.Category
			if c.Tier != "" {
				step += " (" + c.Tier + ")"
			}
			hw.row(step, cli.FormatFactor(c.Factor), cli.FormatDelta(c.Amount))
		}
		hw.row("Total", cli.FormatFactor(d.Steps.Multiplier()), cli.FormatUSD(d.Steps.Total))
		hw.raw("</tbody></table>")

		in := d.Income
		hw.raw("<h2>Recommended income</h2><table><tbody>")
		hw.row("Expenses with buffer", cli.FormatUSD(in.ExpensesAdjusted), "")
		hw.row("Net monthly", cli.FormatUSD(in.NetMonthly), "saves "+cli.FormatPercent(in.SavingsRate))
		hw.row("Gross monthly", cli.FormatUSD(in.GrossMonthly), "tax "+cli.FormatPercent(in.TaxRate))
		hw.row("Gross annual", cli.FormatUSD(in.GrossAnnual), "")
		hw.raw("</tbody></table>")

		hw.raw("<p class=\"muted\">RPP source: " + templ.EscapeString(d.Source) + ". <a href=\"/\">New estimate</a></p>")
		return hw.err
	}))
}

// htmlWriter keeps the first write error so page code can write freely.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) row(cells ...string) {
	h.raw("<tr>")
	for _, c := range cells {
		h.raw("<td>" + templ.EscapeString(c) + "</td>")
	}
	h.raw("</tr>")
}

func (h *htmlWriter) option(value, text string, selected bool) {
	sel := ""
	if selected {
		sel = " selected"
	}
	h.raw("<option value=\"" + templ.EscapeString(value) + "\"" + sel + ">" + templ.EscapeString(text) + "</option>")
}

func (h *htmlWriter) numberInput(label, name string, value, lo, hi int) {
	h.raw("<label>" + label + " <input type=\"number\" name=\"" + name + "\" value=\"" + strconv.Itoa(value) +
		"\" min=\"" + strconv.Itoa(lo) + "\" max=\"" + strconv.Itoa(hi) + "\"></label>")
}

func labelOr(label, name string) string {
	if label != "" {
		return label
	}
	return name
}
