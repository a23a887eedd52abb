package idempotency

import "time"

// Status enum
type Status string

const (
	StatusStarted   Status = "started"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Key tracks one logical side-effecting operation. Key is globally unique and
// Endpoint names the operation and its parameters.
type Key struct {
	ID         string
	Key        string
	Endpoint   string
	Status     Status
	ResultPath *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Outcome is what a guarded call reports back to the caller.
type Outcome struct {
	// Replayed is true when a previous success was returned without running the operation.
	Replayed   bool
	ResultPath string
}

type KeyResponse struct {
	ID         string    `json:"id"`
	Key        string    `json:"key"`
	Endpoint   string    `json:"endpoint"`
	Status     Status    `json:"status"`
	ResultPath *string   `json:"resultPath,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func ToKeyResponse(k Key) KeyResponse {
	return KeyResponse{
		ID:         k.ID,
		Key:        k.Key,
		Endpoint:   k.Endpoint,
		Status:     k.Status,
		ResultPath: k.ResultPath,
		CreatedAt:  k.CreatedAt,
		UpdatedAt:  k.UpdatedAt,
	}
}

type KeyFilter struct {
	Status *Status
	Page   int
	Limit  int
}
