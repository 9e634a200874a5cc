package models

type OutcomeStatus string

const (
	OutcomeSuccess  OutcomeStatus = "SUCCESS"
	OutcomeRejected OutcomeStatus = "REJECTED"
	OutcomeFailed   OutcomeStatus = "FAILED"
	OutcomeNotFound OutcomeStatus = "NOT_FOUND"
)

const (
	MsgOperationSuccessful = "Operation Successful"
	MsgNotAuthorized       = "Operation Unsuccessful : Not Authorized To Update This Property"
	MsgExceptionOccurred   = "Exception Occurred"
	MsgBookingNotFound     = "Booking Not Found"
)

// Outcome is the result of a mutating booking operation. Callers branch on
// Status; it is never replaced by a returned error.
type Outcome struct {
	Status     OutcomeStatus
	Message    string
	CreationID string
	Exception  string
}

func Succeeded(creationID string) Outcome {
	return Outcome{Status: OutcomeSuccess, Message: MsgOperationSuccessful, CreationID: creationID}
}

func Rejected() Outcome {
	return Outcome{Status: OutcomeRejected, Message: MsgNotAuthorized}
}

func Failed(err error) Outcome {
	return Outcome{Status: OutcomeFailed, Message: MsgExceptionOccurred, Exception: err.Error()}
}

func NotFound() Outcome {
	return Outcome{Status: OutcomeNotFound, Message: MsgBookingNotFound}
}

func (o Outcome) OK() bool {
	return o.Status == OutcomeSuccess
}
