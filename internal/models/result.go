package models

// Outcome tags the result of a call to the vehicles API.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeEmpty   Outcome = "empty"
	OutcomeFailure Outcome = "failure"
)

// ListResult is the outcome of listing vehicles. Vehicles is never nil so callers can
// render it directly; it is empty for both OutcomeEmpty and OutcomeFailure.
type ListResult struct {
	Outcome  Outcome
	Vehicles []Vehicle
	Err      error
}

// ListSucceeded tags vehicles as OutcomeSuccess, or OutcomeEmpty when there are none.
func ListSucceeded(vehicles []Vehicle) ListResult {
	if len(vehicles) == 0 {
		return ListResult{Outcome: OutcomeEmpty, Vehicles: []Vehicle{}}
	}
	return ListResult{Outcome: OutcomeSuccess, Vehicles: vehicles}
}

// ListFailed wraps err as OutcomeFailure with an empty listing.
func ListFailed(err error) ListResult {
	return ListResult{Outcome: OutcomeFailure, Vehicles: []Vehicle{}, Err: err}
}

// Failed reports whether the listing could not be fetched.
func (r ListResult) Failed() bool {
	return r.Outcome == OutcomeFailure
}

// CreateResult is the outcome of creating a vehicle. Vehicle is nil unless Outcome is
// OutcomeSuccess.
type CreateResult struct {
	Outcome Outcome
	Vehicle *Vehicle
	Err     error
}

// CreateSucceeded tags the created vehicle as OutcomeSuccess.
func CreateSucceeded(v Vehicle) CreateResult {
	return CreateResult{Outcome: OutcomeSuccess, Vehicle: &v}
}

// CreateFailed wraps err as OutcomeFailure.
func CreateFailed(err error) CreateResult {
	return CreateResult{Outcome: OutcomeFailure, Err: err}
}

// Failed reports whether the vehicle was not created.
func (r CreateResult) Failed() bool {
	return r.Outcome == OutcomeFailure
}
