package resources

import (
	"math"
	"strings"
	"time"

	"github.com/eliteresort/resortadmin/internal/apiclient"
	"github.com/eliteresort/resortadmin/internal/config"
)

// BookingsClient manages bookings. Listing uses the aggregate endpoint
// that joins guest and payment details.
type BookingsClient struct {
	resourceClient
}

// NewBookingsClient builds the bookings client against the configured paths.
func NewBookingsClient(c *apiclient.Client, api *config.APIConfig) *BookingsClient {
	return &BookingsClient{resourceClient{
		c:          c,
		listKey:    "bookings",
		itemKey:    "booking",
		collection: api.Path(config.PathBookings),
		listPath:   api.Path(config.PathBookingsList),
		idKeys:     []string{"bookingId", "_id", "id"},
		canon:      canonBooking,
	}}
}

func canonBooking(r Record) Record {
	return Record{
		"id":            r.ID("bookingId", "_id", "id"),
		"userName":      r.First("", "userName", "name"),
		"userEmail":     r.First("", "userEmail", "email"),
		"phone":         r.First("", "phone", "mobile"),
		"roomNumber":    r.First("", "roomNumber", "roomNo", "number"),
		"roomType":      r.First("", "roomType", "type"),
		"bookingStatus": strings.ToUpper(r.First("", "bookingStatus", "status")),
		"paymentStatus": strings.ToUpper(r.First("", "paymentStatus")),
		"paymentId":     r.First("", "paymentId"),
		"paymentMethod": r.First("", "paymentMethod"),
		"idProof":       r.First("", "idProof"),
		"checkIn":       r.First("", "checkIn", "check_in"),
		"checkOut":      r.First("", "checkOut", "check_out"),
		"amount":        r.Float(0, "amount", "totalAmount"),
	}
}

// BookingSearchFields are the fields the bookings screen matches a query
// against.
func BookingSearchFields() []string {
	return []string{
		"id", "userName", "userEmail", "phone", "roomNumber",
		"roomType", "paymentId", "paymentMethod", "idProof",
	}
}

// Booking status filter fields, keyed by filter name.
const (
	FilterBookingStatus = "bookingStatus"
	FilterPaymentStatus = "paymentStatus"
)

// Nights computes the stay length between two timestamps, rounding partial
// nights up. Returns 0 for unparseable or non-positive ranges.
func Nights(checkIn, checkOut string) int {
	a, errA := parseWhen(checkIn)
	b, errB := parseWhen(checkOut)
	if errA != nil || errB != nil {
		return 0
	}
	nights := int(math.Ceil(b.Sub(a).Hours() / 24))
	if nights < 0 {
		return 0
	}
	return nights
}

func parseWhen(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Parse(time.RFC3339, value)
}
