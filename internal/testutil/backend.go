// Package testutil provides a fake prediction backend for tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/checkfox/go_carprice/internal/models"
)

// DefaultBrands is served by /get_brand_names unless overridden
var DefaultBrands = []string{"maruti", "hyundai", "honda", "toyota"}

// DefaultFuelTypes is served by /get_fuel_types unless overridden
var DefaultFuelTypes = []string{"petrol", "diesel", "cng", "electric"}

// DefaultTransmissions is served by /get_transmission_types unless overridden
var DefaultTransmissions = []string{"manual", "automatic"}

// DefaultPrice is returned by /predict_car_price unless overridden
const DefaultPrice = 452000

// CannedResponse is a fixed status code and raw body
type CannedResponse struct {
	Status int
	Body   string
}

// FakeBackend mimics the four endpoints of the prediction backend
type FakeBackend struct {
	Server *httptest.Server

	mu             sync.Mutex
	lists          map[models.ReferenceList]CannedResponse
	listDelays     map[models.ReferenceList]time.Duration
	listRequests   map[models.ReferenceList]int
	prediction     CannedResponse
	predictGate    chan struct{}
	predictCount   int
	lastForm       url.Values
	lastRequestID  string
	predictStarted chan struct{}
}

// NewFakeBackend starts a backend serving the default lists and price.
// It is closed automatically when the test ends.
func NewFakeBackend(t testing.TB) *FakeBackend {
	t.Helper()

	b := &FakeBackend{
		lists:          make(map[models.ReferenceList]CannedResponse),
		listDelays:     make(map[models.ReferenceList]time.Duration),
		listRequests:   make(map[models.ReferenceList]int),
		predictStarted: make(chan struct{}, 64),
	}
	b.SetListValues(models.ReferenceListBrands, DefaultBrands)
	b.SetListValues(models.ReferenceListFuelTypes, DefaultFuelTypes)
	b.SetListValues(models.ReferenceListTransmissions, DefaultTransmissions)
	b.SetPrediction(http.StatusOK, fmt.Sprintf(`{"estimated_price": %d}`, DefaultPrice))

	router := mux.NewRouter()
	router.Use(recoverMiddleware)
	for _, list := range models.AllReferenceLists() {
		router.HandleFunc(list.Path(), b.listHandler(list)).Methods(http.MethodGet)
	}
	router.HandleFunc("/predict_car_price", b.handlePredict).Methods(http.MethodPost)

	b.Server = httptest.NewServer(router)
	t.Cleanup(func() {
		b.ReleasePredictions()
		b.Server.Close()
	})
	return b
}

// URL returns the base URL of the fake backend
func (b *FakeBackend) URL() string {
	return b.Server.URL
}

// SetListValues serves values under the list's key with status 200
func (b *FakeBackend) SetListValues(list models.ReferenceList, values []string) {
	data, _ := json.Marshal(map[string][]string{list.JSONKey(): values})
	b.SetListResponse(list, http.StatusOK, string(data))
}

// SetListResponse serves a raw response for a list endpoint
func (b *FakeBackend) SetListResponse(list models.ReferenceList, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lists[list] = CannedResponse{Status: status, Body: body}
}

// SetListDelay delays the response of a list endpoint
func (b *FakeBackend) SetListDelay(list models.ReferenceList, delay time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listDelays[list] = delay
}

// SetPrediction serves a raw response for the prediction endpoint
func (b *FakeBackend) SetPrediction(status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prediction = CannedResponse{Status: status, Body: body}
}

// HoldPredictions makes prediction requests block until ReleasePredictions is called
func (b *FakeBackend) HoldPredictions() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.predictGate == nil {
		b.predictGate = make(chan struct{})
	}
}

// ReleasePredictions unblocks held prediction requests
func (b *FakeBackend) ReleasePredictions() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.predictGate != nil {
		close(b.predictGate)
		b.predictGate = nil
	}
}

// PredictStarted receives one value per prediction request that reached the handler
func (b *FakeBackend) PredictStarted() <-chan struct{} {
	return b.predictStarted
}

// PredictCount returns the number of prediction requests received
func (b *FakeBackend) PredictCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.predictCount
}

// ListCount returns the number of requests received for a list endpoint
func (b *FakeBackend) ListCount(list models.ReferenceList) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.listRequests[list]
}

// LastForm returns the form values of the most recent prediction request
func (b *FakeBackend) LastForm() url.Values {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastForm
}

// LastRequestID returns the X-Request-ID header of the most recent prediction request
func (b *FakeBackend) LastRequestID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastRequestID
}

func (b *FakeBackend) listHandler(list models.ReferenceList) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.listRequests[list]++
		resp := b.lists[list]
		delay := b.listDelays[list]
		b.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}

		writeCanned(w, resp)
	}
}

func (b *FakeBackend) handlePredict(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		writeCanned(w, CannedResponse{Status: http.StatusBadRequest, Body: `{"error": "expected multipart form"}`})
		return
	}

	b.mu.Lock()
	b.predictCount++
	b.lastForm = url.Values(r.MultipartForm.Value)
	b.lastRequestID = r.Header.Get("X-Request-ID")
	resp := b.prediction
	gate := b.predictGate
	b.mu.Unlock()

	select {
	case b.predictStarted <- struct{}{}:
	default:
	}

	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
	}

	writeCanned(w, resp)
}

func writeCanned(w http.ResponseWriter, resp CannedResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(resp.Status)
	w.Write([]byte(resp.Body))
}

// recoverMiddleware turns handler panics into 500 responses tagged with a correlation id
func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				correlationID := uuid.New().String()
				log.Printf("[%s] Panic recovered: %v", correlationID, err)

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Correlation-ID", correlationID)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{
					"error":          "internal server error",
					"correlation_id": correlationID,
				})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
