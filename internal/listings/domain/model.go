package domain

import "github.com/GoSim-25-26J-441/property-listing-backend/internal/docstore"

const (
	CollectionProperty = "property"
	CollectionUser     = "user"
)

// Document field names
const (
	FieldID         = "id"
	FieldOwnerID    = "ownerId"
	FieldEmail      = "email"
	FieldName       = "name"
	FieldPhotoURL   = "photoURL"
	FieldProperties = "properties"
)

// PropertyFields are the descriptive fields accepted when a property is created.
// Values are stored as received.
var PropertyFields = []string{
	"shortAddress",
	"fullAddress",
	"price",
	"city",
	"phone",
	"propertySize",
	"propertyType",
	"lotSize",
	"numOfBathrooms",
	"numOfBedrooms",
	"images",
}

// User is the per-identity record. Its document id is the verified uid.
type User struct {
	ID         string   `json:"-"`
	Email      string   `json:"email"`
	Name       string   `json:"name"`
	PhotoURL   string   `json:"photoURL"`
	Properties []string `json:"properties"`
}

func (u *User) Document() docstore.Document {
	props := u.Properties
	if props == nil {
		props = []string{}
	}
	return docstore.Document{
		FieldEmail:      u.Email,
		FieldName:       u.Name,
		FieldPhotoURL:   u.PhotoURL,
		FieldProperties: props,
	}
}

func UserFromDocument(id string, doc docstore.Document) *User {
	return &User{
		ID:         id,
		Email:      doc.String(FieldEmail),
		Name:       doc.String(FieldName),
		PhotoURL:   doc.String(FieldPhotoURL),
		Properties: doc.StringSlice(FieldProperties),
	}
}

// Property is a stored property document plus its id. Fields are kept
// schemaless so that whatever the owner submitted round-trips unchanged.
type Property struct {
	ID     string
	Fields docstore.Document
}

func (p *Property) OwnerID() string {
	return p.Fields.String(FieldOwnerID)
}

// JSON returns the fields with the id attached, as served to clients.
func (p *Property) JSON() map[string]interface{} {
	out := make(map[string]interface{}, len(p.Fields)+1)
	for k, v := range p.Fields {
		out[k] = v
	}
	out[FieldID] = p.ID
	return out
}

// NewPropertyDocument picks the known property fields out of body and stamps the owner.
// Fields absent from body are left out; any ownerId in body is ignored.
func NewPropertyDocument(ownerID string, body map[string]interface{}) docstore.Document {
	doc := docstore.Document{}
	for _, f := range PropertyFields {
		if v, ok := body[f]; ok {
			doc[f] = v
		}
	}
	doc[FieldOwnerID] = ownerID
	return doc
}
