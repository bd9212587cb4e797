// Package views renders the landing and estimate screens to a terminal.
package views

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// RenderLanding writes the landing screen and points the user at the estimate command
func RenderLanding(w io.Writer, program string) {
	title := color.New(color.FgHiMagenta, color.Bold)
	cta := color.New(color.FgHiBlue, color.Bold)

	title.Fprintln(w, "Have a Used Car?")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Curious what it's worth?")
	fmt.Fprintln(w, "Get a fast, fair market estimate in seconds.")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s  %s\n", cta.Sprint("Let's Estimate →"), color.New(color.FgHiBlack).Sprintf("%s estimate", program))
}
