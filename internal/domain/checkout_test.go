package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// The order document embeds shipping info, so its fields must land in Mongo
// under the same snake_case names every other persisted document uses.
func TestShippingInfo_DocumentFieldNames(t *testing.T) {
	info := ShippingInfo{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "5551234567",
		Street:    "12 Analytical Way",
		City:      "London",
		State:     "LDN",
		ZipCode:   "E1 6AN",
		Country:   "UK",
	}

	raw, err := bson.Marshal(info)
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))

	for _, key := range []string{"first_name", "last_name", "email", "phone", "street", "city", "state", "zip_code", "country"} {
		assert.Contains(t, doc, key)
	}
	assert.NotContains(t, doc, "firstname")
	assert.NotContains(t, doc, "zipcode")
	// Optional fields stay out of the document when empty.
	assert.NotContains(t, doc, "company")
	assert.NotContains(t, doc, "apartment")
}
