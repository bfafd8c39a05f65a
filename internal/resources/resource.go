package resources

import (
	"context"
	"net/url"

	"github.com/eliteresort/resortadmin/internal/apiclient"
)

// resourceClient implements the CRUD surface shared by every resource.
// Concrete clients supply paths, envelope keys, the ID priority list and
// an alias-resolving canon function.
type resourceClient struct {
	c *apiclient.Client

	// listKey is the collection envelope key ("users"), itemKey the
	// single-record one ("user").
	listKey string
	itemKey string

	collection string // prefixed collection path for create/get/update/delete
	listPath   string // optional list override; empty means collection

	idKeys []string
	canon  func(Record) Record
}

func (rc *resourceClient) canonical(r Record) Record {
	if r == nil {
		return nil
	}
	if rc.canon == nil {
		return r
	}
	return rc.canon(r)
}

// List fetches and normalizes the full collection. Filter params are
// passed through for backends that implement server-side search; the
// screens filter client-side regardless.
func (rc *resourceClient) List(ctx context.Context, params url.Values) ([]Record, error) {
	path := rc.listPath
	if path == "" {
		path = rc.collection
	}
	raw, err := rc.c.Get(ctx, path, params)
	if err != nil {
		return nil, err
	}
	records := NormalizeList(raw, rc.listKey)
	out := make([]Record, 0, len(records))
	for _, r := range records {
		out = append(out, rc.canonical(r))
	}
	return out, nil
}

// Get fetches one record by its canonical key.
func (rc *resourceClient) Get(ctx context.Context, id string) (Record, error) {
	raw, err := rc.c.Get(ctx, rc.collection+"/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return rc.canonical(NormalizeOne(raw, rc.itemKey)), nil
}

// Create posts a new record and returns the backend's view of it.
func (rc *resourceClient) Create(ctx context.Context, payload map[string]interface{}) (Record, error) {
	raw, err := rc.c.Post(ctx, rc.collection, payload)
	if err != nil {
		return nil, err
	}
	return rc.canonical(NormalizeOne(raw, rc.itemKey)), nil
}

// Update puts changed fields for one record.
func (rc *resourceClient) Update(ctx context.Context, id string, payload map[string]interface{}) (Record, error) {
	raw, err := rc.c.Put(ctx, rc.collection+"/"+url.PathEscape(id), payload)
	if err != nil {
		return nil, err
	}
	return rc.canonical(NormalizeOne(raw, rc.itemKey)), nil
}

// Delete removes one record. Errors propagate unchanged; the caller owns
// presentation.
func (rc *resourceClient) Delete(ctx context.Context, id string) error {
	_, err := rc.c.Delete(ctx, rc.collection+"/"+url.PathEscape(id))
	return err
}
