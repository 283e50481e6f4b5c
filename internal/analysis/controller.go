package analysis

import (
	"context"
	"strings"

	"studyguide/internal/logging"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Phase is the lifecycle state of the analysis request.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseError
)

// String returns the display name for each phase
func (p Phase) String() string {
	names := []string{"idle", "loading", "success", "error"}
	if int(p) >= 0 && int(p) < len(names) {
		return names[p]
	}
	return "unknown"
}

// State is a snapshot of the request lifecycle. Outside idle and loading
// exactly one of Result and ErrorMessage is set.
type State struct {
	Phase        Phase
	Result       *Result
	ErrorMessage string
	// Seq is the sequence number of the most recently issued request.
	Seq uint64
}

// Ticket identifies one issued request. Only the ticket with the highest
// sequence number may settle the controller.
type Ticket struct {
	Seq       uint64
	RequestID string
	Request   Request
}

// Controller is the request lifecycle state machine:
//
//	idle --submit--> loading --success--> success
//	                 loading --failure--> error
//	success|error --submit--> loading
//
// It is owned by a single event loop and is not safe for concurrent use.
type Controller struct {
	state    State
	validate *validator.Validate
}

// NewController returns a controller in the idle phase.
func NewController() *Controller {
	return &Controller{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// State returns the current snapshot.
func (c *Controller) State() State { return c.state }

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.state.Phase }

// Loading reports whether a request is in flight.
func (c *Controller) Loading() bool { return c.state.Phase == PhaseLoading }

// CanSubmit reports whether submission should be enabled for the inputs.
func (c *Controller) CanSubmit(url1, url2 string) bool {
	return !c.Loading() && strings.TrimSpace(url1) != "" && strings.TrimSpace(url2) != ""
}

// Begin moves the controller to loading and issues a ticket for the request
// the caller is about to send. Any previous result or error is cleared.
func (c *Controller) Begin(url1, url2 string) (Ticket, error) {
	if c.Loading() {
		logging.RequestWarn("submit rejected: request %d still in flight", c.state.Seq)
		return Ticket{}, ErrRequestInFlight
	}
	req := Request{URL1: strings.TrimSpace(url1), URL2: strings.TrimSpace(url2)}
	if err := c.validate.Struct(req); err != nil {
		return Ticket{}, toValidationErrors(err)
	}

	seq := c.state.Seq + 1
	c.state = State{Phase: PhaseLoading, Seq: seq}
	t := Ticket{Seq: seq, RequestID: uuid.NewString(), Request: req}
	logging.Request("request %d (%s) loading", t.Seq, t.RequestID)
	return t, nil
}

// Settle applies the outcome of the request identified by t. It returns
// false, leaving the state untouched, for stale tickets or when nothing is
// loading.
func (c *Controller) Settle(t Ticket, result *Result, err error) bool {
	if t.Seq != c.state.Seq || c.state.Phase != PhaseLoading {
		logging.RequestDebug("discarding settle for request %d (current %d, phase %s)", t.Seq, c.state.Seq, c.state.Phase)
		return false
	}
	switch {
	case err != nil:
		c.state = State{Phase: PhaseError, ErrorMessage: UserMessage(err), Seq: t.Seq}
		logging.Request("request %d failed: %v", t.Seq, err)
	case result == nil:
		c.state = State{Phase: PhaseError, ErrorMessage: MessageUnexpected, Seq: t.Seq}
		logging.RequestWarn("request %d returned no result", t.Seq)
	default:
		c.state = State{Phase: PhaseSuccess, Result: result, Seq: t.Seq}
		logging.Request("request %d succeeded", t.Seq)
	}
	return true
}

// Submit runs one full request cycle synchronously: Begin, a single call to
// a.Analyze, and Settle. The returned error is the request failure, if any;
// the user-facing message is in the returned state.
func (c *Controller) Submit(ctx context.Context, a Analyzer, url1, url2 string) (State, error) {
	t, err := c.Begin(url1, url2)
	if err != nil {
		return c.state, err
	}
	result, err := a.Analyze(ContextWithRequestID(ctx, t.RequestID), t.Request)
	c.Settle(t, result, err)
	return c.state, err
}
