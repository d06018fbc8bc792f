package models

// ReservationStatus adalah lifecycle reservasi. Transisi hanya satu arah:
// PENDING -> PAID atau PENDING -> EXPIRED. Status terminal tidak boleh
// ditimpa oleh event yang datang terlambat.
type ReservationStatus string

const (
	ReservationPending ReservationStatus = "PENDING"
	ReservationPaid    ReservationStatus = "PAID"
	ReservationExpired ReservationStatus = "EXPIRED"
)

var validReservationNext = map[ReservationStatus]map[ReservationStatus]bool{
	ReservationPending: {ReservationPaid: true, ReservationExpired: true},
	ReservationPaid:    {},
	ReservationExpired: {},
}

func CanTransitionReservation(from, to ReservationStatus) bool {
	return validReservationNext[from][to]
}

// Status invoice internal. Status lain dari provider diteruskan apa adanya.
const (
	InvoiceStatusAwaiting = "Menunggu Pembayaran"
	InvoiceStatusPaid     = "Lunas"
	InvoiceStatusExpired  = "Expired"
)

const (
	RefundStatusNotRequested = "Not Requested"
	RefundStatusRequested    = "Request Refund"
)

// ArrivalPendingConfirmation dipasang pada reservasi begitu pembayaran masuk.
const ArrivalPendingConfirmation = "Pending Confirmation"
