package formview

import (
	"strings"

	"github.com/eliteresort/resortadmin/internal/convert"
	"github.com/eliteresort/resortadmin/internal/resources"
)

// Room form field names.
const (
	FieldRoomNo       = "roomNo"
	FieldRoomType     = "roomType"
	FieldPrice        = "price"
	FieldCapacity     = "capacity"
	FieldAvailability = "availability"
	FieldDescription  = "description"
	FieldImageURL     = "imageUrl"
)

// Availability options offered by the room form.
var Availabilities = []string{"available", "unavailable"}

// NewRoomForm builds the add/edit room form with its payload mapping:
// trimmed strings, numeric coercions and the availability toggle mapped
// to a boolean. The image URL is omitted from the payload when no image
// was uploaded.
func NewRoomForm(mode Mode) *Form {
	trim := func(v string) interface{} { return strings.TrimSpace(v) }
	return New(mode, "failed to save room",
		FieldSpec{
			Name:       FieldRoomNo,
			Rules:      []Rule{NonEmpty("Room number is required.")},
			PayloadKey: "roomNumber",
			Map:        trim,
		},
		FieldSpec{
			Name:       FieldRoomType,
			Rules:      []Rule{OneOf(resources.RoomTypes, "Room type is required.")},
			PayloadKey: "type",
		},
		FieldSpec{
			Name:       FieldPrice,
			Rules:      []Rule{PositiveNumber("Enter a valid price.")},
			PayloadKey: "pricePerNight",
			Map:        func(v string) interface{} { return convert.ToFloat(v, 0) },
		},
		FieldSpec{
			Name:       FieldCapacity,
			Rules:      []Rule{PositiveNumber("Enter a valid capacity.")},
			PayloadKey: "capacity",
			Map:        func(v string) interface{} { return convert.ToInt(v, 0) },
		},
		FieldSpec{
			Name:       FieldAvailability,
			Rules:      []Rule{OneOf(Availabilities, "Availability is required.")},
			PayloadKey: "available",
			Map:        func(v string) interface{} { return v == "available" },
		},
		FieldSpec{
			Name:       FieldDescription,
			Rules:      []Rule{NonEmpty("Description is required.")},
			PayloadKey: "description",
			Map:        trim,
		},
		FieldSpec{
			Name:       FieldImageURL,
			PayloadKey: "imageUrl",
			OmitEmpty:  true,
		},
	)
}

// PopulateRoomForm fills an edit form from a normalized room record.
func PopulateRoomForm(form *Form, room resources.Record) {
	availability := "available"
	if !room.Bool(true, "available") {
		availability = "unavailable"
	}
	form.SetAll(map[string]string{
		FieldRoomNo:       room.First("", "roomNumber"),
		FieldRoomType:     room.First("", "type"),
		FieldPrice:        convert.ToString(room["pricePerNight"], ""),
		FieldCapacity:     convert.ToString(room["capacity"], ""),
		FieldAvailability: availability,
		FieldDescription:  room.First("", "description"),
		FieldImageURL:     room.First("", "imageUrl"),
	})
}
