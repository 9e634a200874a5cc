package models

// MasterData holds the lookup lists used to populate client forms.
// It is built once at startup and must not be mutated afterwards.
type MasterData struct {
	Speciality   []string `json:"speciality"`
	BookingClass []string `json:"bookingClass"`
}
