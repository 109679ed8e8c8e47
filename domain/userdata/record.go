// Package userdata defines the single entity family stored in the user-data
// table. Every item shares the partition key (userId) and is discriminated by
// an entityType tag; the sort key encodes the book/page/word hierarchy.
package userdata

// Entity type discriminators stored on every item.
const (
	EntityTypeProfile = "PROFILE"
	EntityTypeBook    = "BOOK"
	EntityTypePage    = "PAGE"
	EntityTypeWord    = "WORD"
)

// Record is one item in the table. A single struct covers all four entity
// types; attributes not used by a type are omitted from both the wire and the
// stored representation. Attribute names match the table schema exactly.
type Record struct {
	UserID     string `json:"userId" dynamodbav:"userId"`
	SK         string `json:"sk" dynamodbav:"sk"`
	EntityType string `json:"entityType" dynamodbav:"entityType"`
	UserLevel  int    `json:"userLevel,omitempty" dynamodbav:"userLevel,omitempty"`
	BookID     string `json:"bookId,omitempty" dynamodbav:"bookId,omitempty"`
	Title      string `json:"title,omitempty" dynamodbav:"title,omitempty"`
	PageNumber string `json:"pageNumber,omitempty" dynamodbav:"pageNumber,omitempty"`
	Word       string `json:"word,omitempty" dynamodbav:"word,omitempty"`
	Meaning    string `json:"meaning,omitempty" dynamodbav:"meaning,omitempty"`
	Example    string `json:"example,omitempty" dynamodbav:"example,omitempty"`
	CreatedAt  int64  `json:"createdAt,omitempty" dynamodbav:"createdAt,omitempty"`
	UpdatedAt  int64  `json:"updatedAt,omitempty" dynamodbav:"updatedAt,omitempty"`
}

// WordInput is one element of a bulk word save. The word itself becomes part
// of the sort key; meaning and example are free-form attributes.
type WordInput struct {
	Word    string
	Meaning string
	Example string
}
