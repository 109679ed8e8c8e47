package dynamodb

import "fmt"

// Sort-key construction for the profile/book/page/word hierarchy. Keys are
// plain string concatenation with no numeric padding, so lexicographic
// sort-key order may differ from numeric order for ids of differing digit
// length. That matches the table's existing data and is deliberate.
const (
	// ProfileSK is the fixed sort key of the single PROFILE item per user.
	ProfileSK = "PROFILE"

	// BookPrefix scopes a prefix scan to every item under every book.
	BookPrefix = "BOOK#"
)

// BookSK returns the sort key of a BOOK item.
func BookSK(bookID string) string {
	return fmt.Sprintf("BOOK#%s", bookID)
}

// PageSK returns the sort key of a PAGE item.
func PageSK(bookID, pageNumber string) string {
	return fmt.Sprintf("BOOK#%s#PAGE#%s", bookID, pageNumber)
}

// WordSK returns the sort key of a WORD item.
func WordSK(bookID, pageNumber, word string) string {
	return fmt.Sprintf("BOOK#%s#PAGE#%s#WORD#%s", bookID, pageNumber, word)
}

// PagePrefix scopes a prefix scan to every item under one book's pages.
// WORD sort keys begin with the same prefix as their page, so a scan over
// this prefix also matches the words nested under each page.
func PagePrefix(bookID string) string {
	return fmt.Sprintf("BOOK#%s#PAGE#", bookID)
}
