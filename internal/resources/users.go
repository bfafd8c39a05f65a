package resources

import (
	"github.com/eliteresort/resortadmin/internal/apiclient"
	"github.com/eliteresort/resortadmin/internal/config"
)

// UsersClient manages guest accounts.
type UsersClient struct {
	resourceClient
}

// NewUsersClient builds the users client against the configured paths.
func NewUsersClient(c *apiclient.Client, api *config.APIConfig) *UsersClient {
	return &UsersClient{resourceClient{
		c:          c,
		listKey:    "users",
		itemKey:    "user",
		collection: api.Path(config.PathUsers),
		idKeys:     []string{"id", "_id", "userId"},
		canon:      canonUser,
	}}
}

func canonUser(r Record) Record {
	return Record{
		"id":            r.ID("id", "_id", "userId"),
		"name":          r.First("", "name", "fullName"),
		"email":         r.First("", "email"),
		"phone":         r.First("", "phone", "mobile"),
		"city":          r.First("", "city"),
		"idProofType":   r.First("", "idProofType", "id_proof_type"),
		"idProofNumber": r.First("", "idProofNumber", "id_proof_number"),
		"createdAt":     r.First("", "createdAt", "created_at"),
	}
}

// UserSearchFields are the fields the users screen matches a query against.
func UserSearchFields() []string {
	return []string{"name", "email", "phone", "idProofType", "idProofNumber"}
}
