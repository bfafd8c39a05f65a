// Package dashboard aggregates the overview metrics shown on the landing
// screen. It is the only place two backend fetches run concurrently; both
// are awaited and either failure fails the whole aggregate.
package dashboard

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/eliteresort/resortadmin/internal/resources"
)

// Lister is the slice of a resource client the dashboard needs.
type Lister interface {
	List(ctx context.Context, params url.Values) ([]resources.Record, error)
}

// Bucket is one bar of a grouped count.
type Bucket struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Metrics is the aggregated overview.
type Metrics struct {
	TotalUsers    int `json:"totalUsers"`
	TotalRooms    int `json:"totalRooms"`
	ActiveRooms   int `json:"activeRooms"`
	InactiveRooms int `json:"inactiveRooms"`

	RoomsByCategory []Bucket `json:"roomsByCategory"`
	UsersByCity     []Bucket `json:"usersByCity"`
}

// Service computes dashboard metrics from the users and rooms clients.
type Service struct {
	users Lister
	rooms Lister
}

// New builds the dashboard service.
func New(users, rooms Lister) *Service {
	return &Service{users: users, rooms: rooms}
}

// Load fetches users and rooms concurrently and derives the metrics.
func (s *Service) Load(ctx context.Context) (*Metrics, error) {
	var (
		wg       sync.WaitGroup
		users    []resources.Record
		rooms    []resources.Record
		usersErr error
		roomsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		users, usersErr = s.users.List(ctx, nil)
	}()
	go func() {
		defer wg.Done()
		rooms, roomsErr = s.rooms.List(ctx, nil)
	}()
	wg.Wait()

	if usersErr != nil {
		return nil, usersErr
	}
	if roomsErr != nil {
		return nil, roomsErr
	}

	metrics := &Metrics{
		TotalUsers: len(users),
		TotalRooms: len(rooms),
	}
	for _, room := range rooms {
		if room.Bool(true, "available") {
			metrics.ActiveRooms++
		}
	}
	metrics.InactiveRooms = metrics.TotalRooms - metrics.ActiveRooms

	metrics.RoomsByCategory = groupCount(rooms, func(r resources.Record) string {
		return strings.ToLower(r.First("", "type"))
	})
	metrics.UsersByCity = groupCount(users, func(r resources.Record) string {
		return normalizeCity(r.First("", "city"))
	})
	return metrics, nil
}

// groupCount buckets records by key, dropping empty keys, sorted by count
// descending then label so rendering is stable.
func groupCount(records []resources.Record, keyFn func(resources.Record) string) []Bucket {
	counts := map[string]int{}
	for _, record := range records {
		if key := keyFn(record); key != "" {
			counts[key]++
		}
	}
	buckets := make([]Bucket, 0, len(counts))
	for label, value := range counts {
		buckets = append(buckets, Bucket{Label: label, Value: value})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Value != buckets[j].Value {
			return buckets[i].Value > buckets[j].Value
		}
		return buckets[i].Label < buckets[j].Label
	})
	return buckets
}

// normalizeCity collapses whitespace and case so "Nagpur" and " nagpur "
// land in the same bucket.
func normalizeCity(city string) string {
	return strings.ToLower(strings.Join(strings.Fields(city), " "))
}
