// Package estimator owns the estimation form draft and drives a single
// prediction request at a time through its submission states.
package estimator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/checkfox/go_carprice/internal/client"
	"github.com/checkfox/go_carprice/internal/logger"
	"github.com/checkfox/go_carprice/internal/models"
	"github.com/checkfox/go_carprice/internal/services"
)

// ErrPredictorRequired is returned by NewController when no predictor is configured
var ErrPredictorRequired = errors.New("estimator: predictor is required")

// Predictor sends a complete draft to the prediction backend
type Predictor interface {
	PredictPrice(ctx context.Context, draft models.FormDraft) (*client.PredictionResponse, error)
}

// DraftValidator checks a draft before it is sent
type DraftValidator interface {
	ValidateDraft(draft models.FormDraft) *services.ValidationResult
}

// StateListener is notified of every state the controller enters, in order.
// It runs under the controller lock and must not call back into the controller.
type StateListener func(state models.SubmissionState)

// Controller tracks one view activation's form draft and submission state
type Controller struct {
	predictor Predictor
	validator DraftValidator

	mu        sync.Mutex
	draft     models.FormDraft
	state     models.SubmissionState
	listeners []StateListener
}

// ControllerConfig holds the collaborators of a Controller
type ControllerConfig struct {
	Predictor Predictor
	Validator DraftValidator
}

// NewController creates a controller in the IDLE state with an empty draft.
// The predictor is required; a nil validator defaults to presence validation.
func NewController(config ControllerConfig) (*Controller, error) {
	if config.Predictor == nil {
		return nil, ErrPredictorRequired
	}
	if config.Validator == nil {
		config.Validator = services.NewValidator()
	}

	return &Controller{
		predictor: config.Predictor,
		validator: config.Validator,
		state:     models.IdleState(),
	}, nil
}

// OnStateChange registers a listener called synchronously after each transition
func (c *Controller) OnStateChange(listener StateListener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, listener)
}

// SetField updates one field of the draft. Edits are allowed at any time;
// a request already in flight keeps the values it was sent with.
func (c *Controller) SetField(field models.Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.Set(field, value)
}

// Draft returns a copy of the current draft
func (c *Controller) Draft() models.FormDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// State returns the current submission state
func (c *Controller) State() models.SubmissionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CanSubmit reports whether the submit control should be enabled
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.state.IsInFlight()
}

// Submit validates the draft and, when complete, sends exactly one prediction request.
// It blocks until the request settles and returns the resulting terminal state.
// While a request is in flight it returns the current state and models.ErrSubmissionInFlight
// without sending anything.
func (c *Controller) Submit(ctx context.Context) (models.SubmissionState, error) {
	c.mu.Lock()
	if c.state.IsInFlight() {
		current := c.state
		c.mu.Unlock()
		logger.Debug(ctx, "Submit ignored, request already in flight")
		return current, models.ErrSubmissionInFlight
	}

	// Entering VALIDATING clears any previous price or message
	c.transitionLocked(ctx, models.ValidatingState())

	draft := c.draft
	result := c.validator.ValidateDraft(draft)
	if !result.Valid {
		logger.Info(ctx, "Draft incomplete, request not sent", "missing_fields", fmt.Sprint(result.MissingFields))
		failed := models.FailedState(result.Message)
		c.transitionLocked(ctx, failed)
		c.mu.Unlock()
		return failed, nil
	}

	c.transitionLocked(ctx, models.InFlightState())
	c.mu.Unlock()

	startTime := time.Now()
	resp, err := c.predictor.PredictPrice(ctx, draft)

	var next models.SubmissionState
	if err != nil {
		logger.LogError(ctx, "Price estimation failed", err)
		next = models.FailedState(models.UserMessage(err))
	} else {
		logger.Info(ctx, "Price estimated",
			"estimated_price", resp.EstimatedPrice,
			"duration_ms", time.Since(startTime).Milliseconds())
		next = models.SucceededState(resp.EstimatedPrice)
	}

	c.mu.Lock()
	c.transitionLocked(ctx, next)
	c.mu.Unlock()

	return next, nil
}

// transitionLocked replaces the state wholesale and notifies listeners. Caller holds c.mu.
func (c *Controller) transitionLocked(ctx context.Context, next models.SubmissionState) {
	old := c.state
	c.state = next
	logger.LogStateTransition(ctx, old.Status().String(), next.Status().String())
	for _, listener := range c.listeners {
		listener(next)
	}
}
