package dispatch

import (
	"context"
	"fmt"

	"github.com/freela-market/freela-backend/internal/auth"
)

// Request is implemented by every command and query routed through the
// Dispatcher. Names must be unique across the process.
type Request interface {
	RequestName() string
}

// Validatable requests declare field rules checked by the validation
// behavior before the handler runs.
type Validatable interface {
	Validate() []FieldViolation
}

// Handler executes a single command or query.
type Handler func(ctx context.Context, p auth.Principal, req Request) (any, error)

// Behavior runs before the handler. A non-nil error short-circuits the
// pipeline and is returned to the caller unchanged.
type Behavior func(ctx context.Context, p auth.Principal, req Request) error

// Dispatcher routes a request to exactly one handler after running an
// ordered list of behaviors. The handler table is built once at startup;
// registration problems are configuration errors, not runtime ones.
type Dispatcher struct {
	handlers  map[string]Handler
	behaviors []Behavior
}

func New(behaviors ...Behavior) *Dispatcher {
	return &Dispatcher{
		handlers:  make(map[string]Handler),
		behaviors: behaviors,
	}
}

// Register binds a request name to its handler. Registering the same name
// twice is ambiguous and fails so main can abort at startup.
func (d *Dispatcher) Register(name string, h Handler) error {
	if name == "" {
		return fmt.Errorf("register: empty request name")
	}
	if h == nil {
		return fmt.Errorf("register %s: nil handler", name)
	}
	if _, ok := d.handlers[name]; ok {
		return fmt.Errorf("register %s: %w", name, ErrDuplicateHandler)
	}

	d.handlers[name] = h
	return nil
}

// Send runs the behavior pipeline and then the handler for req. Handler
// failures propagate unchanged; nothing is retried.
func (d *Dispatcher) Send(ctx context.Context, p auth.Principal, req Request) (any, error) {
	h, ok := d.handlers[req.RequestName()]
	if !ok {
		return nil, fmt.Errorf("%s: %w", req.RequestName(), ErrNoHandler)
	}

	for _, b := range d.behaviors {
		if err := b(ctx, p, req); err != nil {
			return nil, err
		}
	}

	return h(ctx, p, req)
}
