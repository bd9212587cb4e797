package views

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/checkfox/go_carprice/internal/models"
)

const (
	// SubmitLabel is the submit control label when a request can be sent
	SubmitLabel = "Estimate Price"

	// SubmitLabelInFlight replaces the submit label while a request is outstanding
	SubmitLabelInFlight = "Estimating..."

	// LoadingLabel is shown for a list that has not settled yet
	LoadingLabel = "Loading options..."
)

// EstimateView renders the estimate screen. One view is created per activation.
type EstimateView struct {
	out      io.Writer
	currency string

	mu            sync.Mutex
	advisoryShown bool
}

// NewEstimateView creates a view writing to out with the given currency symbol
func NewEstimateView(out io.Writer, currency string) *EstimateView {
	return &EstimateView{out: out, currency: currency}
}

// RenderHeader writes the screen title
func (v *EstimateView) RenderHeader() {
	color.New(color.FgHiWhite, color.Bold).Fprintln(v.out, "Used Car Price Estimator")
	fmt.Fprintln(v.out, "Fill the details below and get a fast, fair estimate.")
	fmt.Fprintln(v.out)
}

// RenderLoading writes the affordance shown until the reference lists settle
func (v *EstimateView) RenderLoading() {
	color.New(color.FgHiBlack).Fprintln(v.out, LoadingLabel)
}

// RenderOptions writes the settled choices. A failed load raises the advisory
// at most once per view, however many lists failed.
func (v *EstimateView) RenderOptions(snapshot models.OptionSnapshot) {
	if snapshot.LoadFailed() {
		v.mu.Lock()
		shown := v.advisoryShown
		v.advisoryShown = true
		v.mu.Unlock()

		if !shown {
			color.New(color.FgYellow).Fprintln(v.out, models.MessageOptionsUnavailable)
		}
	}

	for _, list := range models.AllReferenceLists() {
		choices := snapshot.Choices(list)
		fmt.Fprintf(v.out, "%s (%d)\n", listTitle(list), len(choices))
		for i, c := range choices {
			fmt.Fprintf(v.out, "  %d. %s\n", i+1, Capitalize(c))
		}
	}
	fmt.Fprintln(v.out)
}

// RenderSummary writes the draft about to be submitted
func (v *EstimateView) RenderSummary(draft models.FormDraft) {
	for _, f := range models.AllFields() {
		value := draft.Get(f)
		switch f {
		case models.FieldBrand, models.FieldFuelType, models.FieldTransmission:
			value = Capitalize(value)
		case models.FieldKmDriven:
			value = FormatKm(value)
		case models.FieldOwner:
			value = FormatOwner(value)
		}
		fmt.Fprintf(v.out, "  %-26s %s\n", f.Label()+":", value)
	}
}

// RenderState writes whatever the state shows. At most one of the result and
// error cards appears, and only for a terminal state.
func (v *EstimateView) RenderState(state models.SubmissionState) {
	switch state.Status() {
	case models.SubmissionStatusInFlight:
		v.RenderSubmitControl(state)
	case models.SubmissionStatusSucceeded:
		price, _ := state.Price()
		v.renderResult(price)
	case models.SubmissionStatusFailed:
		msg, _ := state.Message()
		v.renderError(msg)
	}
}

func (v *EstimateView) renderResult(price float64) {
	fmt.Fprintln(v.out)
	color.New(color.FgGreen, color.Bold).Fprintf(v.out, "Estimated Price: %s\n", FormatPrice(v.currency, price))
	color.New(color.FgGreen).Fprintln(v.out, "This is a quick estimate based on your inputs.")
	fmt.Fprintln(v.out)
}

func (v *EstimateView) renderError(msg string) {
	fmt.Fprintln(v.out)
	color.New(color.FgRed, color.Bold).Fprintln(v.out, "Something went wrong")
	color.New(color.FgRed).Fprintln(v.out, msg)
	fmt.Fprintln(v.out)
}

// RenderSubmitControl writes the submit control with the label for state
func (v *EstimateView) RenderSubmitControl(state models.SubmissionState) {
	color.New(color.FgHiBlue).Fprintf(v.out, "[%s]\n", SubmitLabelFor(state))
}

// SubmitLabelFor returns the submit control label for a state
func SubmitLabelFor(state models.SubmissionState) string {
	if state.IsInFlight() {
		return SubmitLabelInFlight
	}
	return SubmitLabel
}

func listTitle(list models.ReferenceList) string {
	switch list {
	case models.ReferenceListBrands:
		return "Brands"
	case models.ReferenceListFuelTypes:
		return "Fuel Types"
	case models.ReferenceListTransmissions:
		return "Transmissions"
	default:
		return list.String()
	}
}
