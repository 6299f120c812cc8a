package scheduling

// Appointment lifecycle status. The schema also carries "available" for
// compatibility with older exports; the booking path only ever writes
// "booked".
type Status string

const (
	StatusBooked    Status = "booked"
	StatusAvailable Status = "available"
)
