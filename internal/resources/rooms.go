package resources

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/eliteresort/resortadmin/internal/apiclient"
	"github.com/eliteresort/resortadmin/internal/config"
	"github.com/eliteresort/resortadmin/internal/convert"
)

// RoomTypes is the fixed room type vocabulary offered by the room form.
var RoomTypes = []string{
	"Deluxe Room",
	"Single Room",
	"Double Suite",
	"Family Room",
	"Executive Suite",
	"Presidential Suite",
}

// RoomsClient manages rooms, including the image upload endpoint.
type RoomsClient struct {
	resourceClient
	uploadPath string
}

// NewRoomsClient builds the rooms client against the configured paths.
func NewRoomsClient(c *apiclient.Client, api *config.APIConfig) *RoomsClient {
	return &RoomsClient{
		resourceClient: resourceClient{
			c:          c,
			listKey:    "rooms",
			itemKey:    "room",
			collection: api.Path(config.PathRooms),
			idKeys:     []string{"roomId", "_id", "id"},
			canon:      canonRoom,
		},
		uploadPath: api.Path(config.PathRoomUpload),
	}
}

// canonRoom resolves the field aliases that have accumulated across
// backend revisions (roomNumber/number/roomNo, type/roomType, a boolean
// available vs an availability string).
func canonRoom(r Record) Record {
	available := true
	if v, ok := r["available"]; ok {
		available = convert.ToBool(v, true)
	} else if v, ok := r["availability"]; ok {
		available = convert.ToBool(v, true)
	}
	return Record{
		"id":            r.ID("roomId", "_id", "id"),
		"roomNumber":    r.First("", "roomNumber", "number", "roomNo"),
		"type":          r.First("", "type", "roomType"),
		"pricePerNight": r.Float(0, "pricePerNight", "price"),
		"capacity":      r.Float(0, "capacity"),
		"available":     available,
		"description":   r.First("", "description"),
		"imageUrl":      r.First("", "imageUrl", "image", "photo"),
	}
}

// RoomSearchFields are the fields the rooms screen matches a query against.
func RoomSearchFields() []string {
	return []string{"roomNumber", "type"}
}

// UploadImage sends one image as multipart form data and returns the
// stored URL. The upload endpoint has returned both a bare URL string and
// a JSON object with the URL under varying keys, so all of those parse.
func (rc *RoomsClient) UploadImage(ctx context.Context, filename string, content io.Reader) (string, error) {
	raw, err := rc.c.Upload(ctx, http.MethodPost, rc.uploadPath, "image", filename, content, nil)
	if err != nil {
		return "", err
	}
	if u := extractUploadURL(raw); u != "" {
		return u, nil
	}
	return "", errors.New("upload response contained no URL")
}

func extractUploadURL(raw []byte) string {
	body := strings.TrimSpace(string(raw))
	if body == "" {
		return ""
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err == nil {
		for _, key := range []string{"url", "imageUrl", "location", "Location", "secure_url"} {
			if s := convert.ToString(obj[key], ""); s != "" {
				return s
			}
		}
		return ""
	}

	var quoted string
	if err := json.Unmarshal(raw, &quoted); err == nil {
		return quoted
	}
	return body
}
