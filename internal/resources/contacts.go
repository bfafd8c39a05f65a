package resources

import (
	"github.com/eliteresort/resortadmin/internal/apiclient"
	"github.com/eliteresort/resortadmin/internal/config"
)

// ContactsClient manages guest enquiries.
type ContactsClient struct {
	resourceClient
}

// NewContactsClient builds the contacts client. The list endpoint lives on
// its own path (".../all") in every backend revision seen so far.
func NewContactsClient(c *apiclient.Client, api *config.APIConfig) *ContactsClient {
	return &ContactsClient{resourceClient{
		c:          c,
		listKey:    "contacts",
		itemKey:    "contact",
		collection: api.Path(config.PathContacts),
		listPath:   api.Path(config.PathContactsList),
		idKeys:     []string{"_id", "id", "contactId"},
		canon:      canonContact,
	}}
}

func canonContact(r Record) Record {
	return Record{
		"id":      r.ID("_id", "id", "contactId"),
		"user":    r.First("", "user", "name", "fullName"),
		"email":   r.First("", "email"),
		"phone":   r.First("", "phone", "mobile"),
		"subject": r.First("Other", "subject", "queryType", "topic"),
		"message": r.First("", "message", "query", "msg"),
		"date":    r.First("", "date", "createdAt", "created_at"),
	}
}

// ContactSearchFields are the fields the contacts screen matches a query
// against.
func ContactSearchFields() []string {
	return []string{"user", "email", "phone", "subject", "message"}
}
