package cli

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkfox/go_carprice/internal/config"
	"github.com/checkfox/go_carprice/internal/models"
	"github.com/checkfox/go_carprice/internal/testutil"
)

func init() {
	color.NoColor = true
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Backend: config.BackendConfig{
			URL:            baseURL,
			PredictTimeout: 2 * time.Second,
			OptionsTimeout: 2 * time.Second,
		},
		Logging: config.LoggingConfig{Level: "info", Format: "text"},
		Display: config.DisplayConfig{CurrencySymbol: "₹"},
	}
}

func executeCommand(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func forceInteractive(t *testing.T, interactive bool) {
	t.Helper()
	previous := isInteractive
	isInteractive = func(io.Reader) bool { return interactive }
	t.Cleanup(func() { isInteractive = previous })
}

var completeFlags = []string{
	"--brand", "maruti",
	"--year", "2018",
	"--fuel-type", "petrol",
	"--transmission", "manual",
	"--km-driven", "50000",
	"--owner", "0",
}

func TestRunLanding(t *testing.T) {
	root := &cobra.Command{Use: "carprice", RunE: RunLanding}

	out, err := executeCommand(t, root, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Have a Used Car?")
	assert.Contains(t, out, "carprice estimate")
}

func TestEstimate_NonInteractiveSuccess(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	forceInteractive(t, false)

	out, err := executeCommand(t, EstimateCmd(testConfig(backend.URL())), "", completeFlags...)

	require.NoError(t, err)
	assert.Contains(t, out, "Estimated Price: ₹4,52,000")
	assert.Contains(t, out, "[Estimate Price]")
	assert.Contains(t, out, "Estimating...")
	assert.Less(t, strings.Index(out, "[Estimate Price]"), strings.Index(out, "[Estimating...]"))
	assert.NotContains(t, out, "Something went wrong")
	assert.Equal(t, 1, backend.PredictCount())
	assert.Equal(t, "50000", backend.LastForm().Get("km_driven"))
	assert.Equal(t, "0", backend.LastForm().Get("owner"))
}

func TestEstimate_IncompleteFlagsFailWithoutRequest(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	forceInteractive(t, false)

	out, err := executeCommand(t, EstimateCmd(testConfig(backend.URL())), "",
		"--brand", "maruti", "--year", "2018", "--no-input")

	require.ErrorIs(t, err, ErrEstimateFailed)
	assert.Contains(t, out, "Something went wrong")
	assert.Contains(t, out, models.MessageIncompleteForm)
	assert.Equal(t, 0, backend.PredictCount())
}

func TestEstimate_ServerErrorExitsWithFailure(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.SetPrediction(http.StatusBadRequest, `{"error": "invalid year"}`)
	forceInteractive(t, false)

	out, err := executeCommand(t, EstimateCmd(testConfig(backend.URL())), "", completeFlags...)

	require.ErrorIs(t, err, ErrEstimateFailed)
	assert.Contains(t, err.Error(), "invalid year")
	assert.Contains(t, out, "invalid year")
	assert.NotContains(t, out, "Estimated Price")
}

func TestEstimate_OptionsFailureStillSubmits(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.SetListResponse(models.ReferenceListBrands, http.StatusInternalServerError, `{}`)
	backend.SetListResponse(models.ReferenceListFuelTypes, http.StatusInternalServerError, `{}`)
	forceInteractive(t, false)

	out, err := executeCommand(t, EstimateCmd(testConfig(backend.URL())), "", completeFlags...)

	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, models.MessageOptionsUnavailable))
	assert.Contains(t, out, "Estimated Price")
}

func TestEstimate_InteractivePromptsRemainingFields(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	forceInteractive(t, true)

	// brand from the list, fuel type and transmission by number, the rest typed
	stdin := strings.Join([]string{
		"2",      // brand -> hyundai
		"2019",   // year
		"2",      // fuel type -> diesel
		"Manual", // transmission, verbatim
		"42000",  // km driven
		"1",      // owner
		"n",      // estimate again?
	}, "\n") + "\n"

	out, err := executeCommand(t, EstimateCmd(testConfig(backend.URL())), stdin)

	require.NoError(t, err)
	form := backend.LastForm()
	assert.Equal(t, "hyundai", form.Get("brand"))
	assert.Equal(t, "2019", form.Get("year"))
	assert.Equal(t, "diesel", form.Get("fuel_type"))
	assert.Equal(t, "Manual", form.Get("transmission"))
	assert.Equal(t, "42000", form.Get("km_driven"))
	assert.Equal(t, "1", form.Get("owner"))
	assert.Contains(t, out, "Estimated Price")
}

func TestEstimate_InteractiveResubmit(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	forceInteractive(t, true)

	// Owner is missing: the first attempt fails locally, the second pass
	// keeps every value and fills in the owner
	args := completeFlags[:len(completeFlags)-2]
	stdin := strings.Join([]string{
		"",
		"y",
		"", "", "", "", "", "2",
		"n",
	}, "\n") + "\n"

	out, err := executeCommand(t, EstimateCmd(testConfig(backend.URL())), stdin, args...)

	require.NoError(t, err)
	assert.Equal(t, 1, backend.PredictCount())
	assert.Equal(t, "2", backend.LastForm().Get("owner"))
	assert.Equal(t, "maruti", backend.LastForm().Get("brand"))
	assert.Contains(t, out, models.MessageIncompleteForm)
	assert.Contains(t, out, "Estimated Price: ₹4,52,000")
}

func TestOptionsCmd(t *testing.T) {
	backend := testutil.NewFakeBackend(t)

	out, err := executeCommand(t, OptionsCmd(testConfig(backend.URL())), "")

	require.NoError(t, err)
	assert.Contains(t, out, "1. Maruti")
	assert.Contains(t, out, "Transmissions (2)")
	assert.NotContains(t, out, models.MessageOptionsUnavailable)
	for _, list := range models.AllReferenceLists() {
		assert.Equal(t, 1, backend.ListCount(list))
	}
}

func TestOptionsCmd_BackendDown(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	url := backend.URL()
	backend.Server.Close()

	out, err := executeCommand(t, OptionsCmd(testConfig(url)), "")

	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, models.MessageOptionsUnavailable))
	assert.Contains(t, out, "Brands (0)")
}

func TestFlagName(t *testing.T) {
	assert.Equal(t, "fuel-type", flagName(models.FieldFuelType))
	assert.Equal(t, "km-driven", flagName(models.FieldKmDriven))
	assert.Equal(t, "brand", flagName(models.FieldBrand))
}
