package tui

import (
	"fmt"
	"strings"

	"github.com/NihalShah4/cost-of-living-estimator/internal/estimate"
	"github.com/NihalShah4/cost-of-living-estimator/internal/lifestyle"
	"github.com/NihalShah4/cost-of-living-estimator/internal/rpp"

	"github.com/charmbracelet/huh"
)

// formValues holds everything the estimate form edits. The form is rebuilt
// from the same values when the user goes back to edit.
type formValues struct {
	state  string
	adults int
	kids   int
	cars   int
	gym    bool
	travel string
	tiers  map[string]*string // category -> tier name
	order  []string           // catalog order of tiers
}

func newFormValues(state string, h estimate.Household, catalog *lifestyle.Catalog) *formValues {
	v := &formValues{
		state:  state,
		adults: max(h.Adults, estimate.MinAdults),
		kids:   h.Kids,
		cars:   h.Cars,
		gym:    h.Gym,
		travel: h.Travel,
		tiers:  make(map[string]*string),
	}
	if v.travel == "" {
		v.travel = estimate.TravelNone
	}
	for _, cat := range catalog.Categories() {
		tier := cat.Neutral
		if t, ok := h.Selections.Get(cat.Name); ok {
			if ct, ok := cat.Tier(t); ok {
				tier = ct.Name
			}
		}
		v.tiers[cat.Name] = &tier
		v.order = append(v.order, cat.Name)
	}
	return v
}

func (v *formValues) selections() lifestyle.Selections {
	sel := make(lifestyle.Selections, len(v.tiers))
	for _, name := range v.order {
		sel[name] = *v.tiers[name]
	}
	return sel
}

func (v *formValues) household() estimate.Household {
	return estimate.Household{
		Adults:     v.adults,
		Kids:       v.kids,
		Cars:       v.cars,
		Gym:        v.gym,
		Travel:     v.travel,
		Selections: v.selections(),
	}
}

// newEstimateForm builds the three-page estimate form.
func newEstimateForm(v *formValues, table *rpp.Table, catalog *lifestyle.Catalog) *huh.Form {
	location := huh.NewGroup(
		huh.NewInput().
			Title("State").
			Description("Two-letter code or full name, e.g. NJ or New Jersey").
			Suggestions(table.Names()).
			Value(&v.state).
			Validate(stateValidator(table)),
	).Title("Location")

	household := huh.NewGroup(
		huh.NewSelect[int]().
			Title("Adults").
			Options(intOptions(estimate.MinAdults, estimate.MaxAdults)...).
			Value(&v.adults),
		huh.NewSelect[int]().
			Title("Kids").
			Options(intOptions(0, estimate.MaxKids)...).
			Value(&v.kids),
		huh.NewSelect[int]().
			Title("Cars").
			Options(intOptions(0, estimate.MaxCars)...).
			Value(&v.cars),
		huh.NewConfirm().
			Title("Gym membership").
			Affirmative("Yes").
			Negative("No").
			Value(&v.gym),
		huh.NewSelect[string]().
			Title("Travel").
			Options(travelOptions()...).
			Value(&v.travel),
	).Title("Household")

	var fields []huh.Field
	for _, cat := range catalog.Categories() {
		fields = append(fields, huh.NewSelect[string]().
			Title(labelOr(cat.Label, cat.Name)).
			Options(tierOptions(cat)...).
			Value(v.tiers[cat.Name]))
	}
	lifestyleGroup := huh.NewGroup(fields...).Title("Lifestyle")

	return huh.NewForm(location, household, lifestyleGroup).
		WithTheme(huh.ThemeCharm()).
		WithShowHelp(true)
}

func stateValidator(table *rpp.Table) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("enter a state")
		}
		if _, err := table.Lookup(s); err != nil {
			return fmt.Errorf("unknown state %q, try a full name like New Jersey", s)
		}
		return nil
	}
}

func intOptions(lo, hi int) []huh.Option[int] {
	opts := make([]huh.Option[int], 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		opts = append(opts, huh.NewOption(fmt.Sprint(i), i))
	}
	return opts
}

func travelOptions() []huh.Option[string] {
	levels := estimate.TravelLevels()
	opts := make([]huh.Option[string], len(levels))
	for i, l := range levels {
		opts[i] = huh.NewOption(strings.ToUpper(l[:1])+l[1:], l)
	}
	return opts
}

func tierOptions(cat lifestyle.Category) []huh.Option[string] {
	opts := make([]huh.Option[string], len(cat.Tiers))
	for i, t := range cat.Tiers {
		key := fmt.Sprintf("%s  ×%.2f", labelOr(t.Label, t.Name), t.Multiplier)
		opts[i] = huh.NewOption(key, t.Name)
	}
	return opts
}

func labelOr(label, name string) string {
	if label != "" {
		return label
	}
	return name
}
