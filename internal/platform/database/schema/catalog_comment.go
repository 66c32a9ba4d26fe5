package schema

// CatalogCommentTable represents the 'catalog.comment' table
type CatalogCommentTable struct {
	Table     string
	ID        string
	ReviewID  string
	AuthorID  string
	Text      string
	CreatedAt string
	UpdatedAt string
}

// CatalogComment is the schema definition for catalog.comment
var CatalogComment = CatalogCommentTable{
	Table:     "catalog.comment",
	ID:        "id",
	ReviewID:  "reviewid",
	AuthorID:  "authorid",
	Text:      "text",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t CatalogCommentTable) Columns() []string {
	return []string{
		t.ID, t.ReviewID, t.AuthorID, t.Text,
		t.CreatedAt, t.UpdatedAt,
	}
}
