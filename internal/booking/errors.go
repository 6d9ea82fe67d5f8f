package booking

// Code is a stable machine-readable error code.  Handlers translate
// codes into HTTP statuses; the codes themselves never change so API
// clients can branch on them.
type Code string

const (
	CodeInvalidWindow             Code = "invalid_window"
	CodeResourceInactive          Code = "resource_inactive"
	CodeNoAvailability            Code = "no_availability"
	CodeInvalidTransition         Code = "invalid_transition"
	CodeCancellationWindowExpired Code = "cancellation_window_expired"
	CodeNotFound                  Code = "not_found"
	CodeUnauthorized              Code = "unauthorized"
)

// Error is a typed booking failure carrying a stable code and a
// human-readable message.  All failures from this package are one of
// the sentinel values below, so callers can use errors.Is.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	// ErrInvalidWindow is returned when a requested time window does
	// not satisfy end > start.
	ErrInvalidWindow = &Error{Code: CodeInvalidWindow, Message: "time window end must be after start"}

	// ErrResourceInactive is returned when allocating against a
	// resource that is not accepting reservations.
	ErrResourceInactive = &Error{Code: CodeResourceInactive, Message: "resource is not active"}

	// ErrNoAvailability is returned when the resource's concurrent
	// capacity would be exceeded or no capacity unit can be claimed.
	// Losing a concurrent claim race surfaces as this error as well.
	ErrNoAvailability = &Error{Code: CodeNoAvailability, Message: "no availability for the requested window"}

	// ErrInvalidTransition is returned for any status change outside
	// the allowed state machine, including any change out of a
	// terminal status.
	ErrInvalidTransition = &Error{Code: CodeInvalidTransition, Message: "status transition not permitted"}

	// ErrCancellationWindowExpired is returned when a requester tries
	// to cancel closer to the start time than the minimum lead time.
	ErrCancellationWindowExpired = &Error{Code: CodeCancellationWindowExpired, Message: "cancellation window has expired"}

	// ErrNotFound is returned when the referenced resource or
	// reservation does not exist.
	ErrNotFound = &Error{Code: CodeNotFound, Message: "not found"}

	// ErrUnauthorized is returned when the actor's role does not
	// permit the requested operation.
	ErrUnauthorized = &Error{Code: CodeUnauthorized, Message: "actor not permitted to perform this operation"}
)
