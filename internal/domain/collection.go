package domain

import "slices"

// Collection is an ordered list of books, newest first.
type Collection struct {
	Books []Book `json:"books"`
}

// NewCollection wraps books without copying them.
func NewCollection(books []Book) Collection {
	return Collection{Books: books}
}

// Len returns the number of books.
func (c *Collection) Len() int {
	return len(c.Books)
}

// Find returns the book with the given ID.
func (c *Collection) Find(id string) (Book, bool) {
	i := c.index(id)
	if i < 0 {
		return Book{}, false
	}
	return c.Books[i], true
}

// Add prepends a book so the newest entry comes first.
func (c *Collection) Add(book Book) {
	c.Books = slices.Insert(c.Books, 0, book)
}

// Replace swaps in book for the entry with the same ID.
// Returns false and leaves the collection untouched if no entry matches.
func (c *Collection) Replace(book Book) bool {
	i := c.index(book.ID)
	if i < 0 {
		return false
	}
	c.Books[i] = book
	return true
}

// Remove deletes the book with the given ID.
func (c *Collection) Remove(id string) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.Books = slices.Delete(c.Books, i, i+1)
	return true
}

// Clone returns a deep copy suitable for handing to another goroutine.
func (c Collection) Clone() Collection {
	if c.Books == nil {
		return Collection{}
	}
	out := make([]Book, len(c.Books))
	for i, b := range c.Books {
		out[i] = b.Clone()
	}
	return Collection{Books: out}
}

func (c *Collection) index(id string) int {
	return slices.IndexFunc(c.Books, func(b Book) bool { return b.ID == id })
}
