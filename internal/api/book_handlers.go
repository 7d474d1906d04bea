package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/pagetrail/pagetrail-server/internal/domain"
	"github.com/pagetrail/pagetrail-server/internal/notes"
	"github.com/pagetrail/pagetrail-server/internal/progress"
	"github.com/pagetrail/pagetrail-server/internal/service"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books",
		Summary:     "List books",
		Description: "Returns the caller's books, optionally searched, filtered by status and sorted",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createBook",
		Method:        http.MethodPost,
		Path:          "/api/v1/books",
		Summary:       "Add book",
		Description:   "Adds a book at the front of the collection",
		Tags:          []string{"Books"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleCreateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}",
		Summary:     "Get book",
		Description: "Returns a book by ID",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBook",
		Method:      http.MethodPatch,
		Path:        "/api/v1/books/{id}",
		Summary:     "Update book",
		Description: "Updates book metadata. Omitted fields are unchanged",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBook",
		Method:      http.MethodDelete,
		Path:        "/api/v1/books/{id}",
		Summary:     "Delete book",
		Description: "Removes a book from the collection",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "saveNotes",
		Method:      http.MethodPut,
		Path:        "/api/v1/books/{id}/notes",
		Summary:     "Save notes",
		Description: "Replaces the book's notes. HTML is converted to Markdown",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSaveNotes)

	huma.Register(s.api, huma.Operation{
		OperationID: "addQuote",
		Method:      http.MethodPost,
		Path:        "/api/v1/books/{id}/quotes",
		Summary:     "Add quote",
		Description: "Saves a passage from the book",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddQuote)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteQuote",
		Method:      http.MethodDelete,
		Path:        "/api/v1/books/{id}/quotes/{quoteID}",
		Summary:     "Delete quote",
		Description: "Removes a saved quote",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteQuote)
}

// === DTOs ===

// BookResponse is a book with its derived completion percentage.
type BookResponse struct {
	domain.Book
	Percent int `json:"percent" doc:"Completion percentage, 0 when the page count is unknown"`
}

func newBookResponse(b domain.Book) BookResponse {
	return BookResponse{Book: b, Percent: progress.Percent(b)}
}

// ListBooksInput contains parameters for listing books.
type ListBooksInput struct {
	Authorization string `header:"Authorization"`
	Query         string `query:"q" doc:"Substring matched against title, author and description"`
	Status        string `query:"status" doc:"Filter by status: to-read, reading, finished"`
	Sort          string `query:"sort" doc:"Sort order: date-desc, date-asc, title, author, progress"`
}

// ListBooksResponse contains a list of books.
type ListBooksResponse struct {
	Books []BookResponse `json:"books" doc:"Books in the requested order"`
	Total int            `json:"total" doc:"Number of books returned"`
}

// ListBooksOutput wraps the list books response for Huma.
type ListBooksOutput struct {
	Body ListBooksResponse
}

// BookInput identifies a single book.
type BookInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Book ID"`
}

// BookOutput wraps a book response for Huma.
type BookOutput struct {
	Body BookResponse
}

// CreateBookBody is the request body for adding a book.
type CreateBookBody struct {
	Title       string `json:"title" doc:"Book title"`
	Author      string `json:"author" doc:"Book author"`
	CoverURL    string `json:"coverUrl,omitempty" doc:"Cover image URL; a placeholder is used when empty"`
	Description string `json:"description,omitempty" doc:"Book description"`
	Category    string `json:"category,omitempty" doc:"Category; defaults to Uncategorized"`
	Status      string `json:"status,omitempty" doc:"Initial status; defaults to to-read"`
	TotalPages  int    `json:"totalPages,omitempty" doc:"Page count, 0 if unknown"`
	CurrentPage int    `json:"currentPage,omitempty" doc:"Starting page"`
}

// CreateBookInput wraps the create book request for Huma.
type CreateBookInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateBookBody
}

// UpdateBookBody is the request body for updating a book.
type UpdateBookBody struct {
	Title       *string `json:"title,omitempty" doc:"Book title"`
	Author      *string `json:"author,omitempty" doc:"Book author"`
	CoverURL    *string `json:"coverUrl,omitempty" doc:"Cover image URL"`
	Description *string `json:"description,omitempty" doc:"Book description"`
	Category    *string `json:"category,omitempty" doc:"Category; empty resets to Uncategorized"`
	TotalPages  *int    `json:"totalPages,omitempty" doc:"Page count"`
}

// UpdateBookInput wraps the update book request for Huma.
type UpdateBookInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Book ID"`
	Body          UpdateBookBody
}

// MutationResponse reports the outcome of a change to one book.
type MutationResponse struct {
	Book   *BookResponse `json:"book,omitempty" doc:"The book after the change; absent when not found"`
	Found  bool          `json:"found" doc:"False when no book has the given ID; nothing was changed"`
	Synced bool          `json:"synced" doc:"True when the change was saved to the remote store"`
}

// MutationOutput wraps a mutation response for Huma.
type MutationOutput struct {
	Body MutationResponse
}

func newMutationOutput(res *service.MutationResult) *MutationOutput {
	out := &MutationOutput{Body: MutationResponse{Found: res.Found, Synced: res.Synced}}
	if res.Found {
		book := newBookResponse(res.Book)
		out.Body.Book = &book
	}
	return out
}

// SaveNotesBody is the request body for saving notes.
type SaveNotesBody struct {
	Text   string `json:"text" doc:"Note text"`
	Format string `json:"format,omitempty" doc:"markdown or html; detected when omitted"`
}

// SaveNotesInput wraps the save notes request for Huma.
type SaveNotesInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Book ID"`
	Body          SaveNotesBody
}

// AddQuoteBody is the request body for adding a quote.
type AddQuoteBody struct {
	Text string `json:"text" doc:"Quoted passage"`
}

// AddQuoteInput wraps the add quote request for Huma.
type AddQuoteInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Book ID"`
	Body          AddQuoteBody
}

// DeleteQuoteInput identifies a quote.
type DeleteQuoteInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Book ID"`
	QuoteID       string `path:"quoteID" doc:"Quote ID"`
}

// === Handlers ===

func (s *Server) handleListBooks(ctx context.Context, input *ListBooksInput) (*ListBooksOutput, error) {
	identity, err := s.identify(input.Authorization)
	if err != nil {
		return nil, err
	}

	books, err := s.services.Library.ListBooks(ctx, identity, service.ListOptions{
		Query:  input.Query,
		Status: domain.Status(input.Status),
		Sort:   service.SortOrder(input.Sort),
	})
	if err != nil {
		return nil, err
	}

	resp := make([]BookResponse, len(books))
	for i, b := range books {
		resp[i] = newBookResponse(b)
	}

	return &ListBooksOutput{Body: ListBooksResponse{Books: resp, Total: len(resp)}}, nil
}

func (s *Server) handleCreateBook(ctx context.Context, input *CreateBookInput) (*MutationOutput, error) {
	identity, err := s.identify(input.Authorization)
	if err != nil {
		return nil, err
	}

	res, err := s.services.Library.AddBook(ctx, identity, service.CreateBookRequest{
		Title:       input.Body.Title,
		Author:      input.Body.Author,
		CoverURL:    input.Body.CoverURL,
		Description: input.Body.Description,
		Category:    input.Body.Category,
		Status:      domain.Status(input.Body.Status),
		TotalPages:  input.Body.TotalPages,
		CurrentPage: input.Body.CurrentPage,
	})
	if err != nil {
		return nil, err
	}

	return newMutationOutput(res), nil
}

func (s *Server) handleGetBook(ctx context.Context, input *BookInput) (*BookOutput, error) {
	identity, err := s.identify(input.Authorization)
	if err != nil {
		return nil, err
	}

	book, err := s.services.Library.GetBook(ctx, identity, input.ID)
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: newBookResponse(book)}, nil
}

func (s *Server) handleUpdateBook(ctx context.Context, input *UpdateBookInput) (*MutationOutput, error) {
	identity, err := s.identify(input.Authorization)
	if err != nil {
		return nil, err
	}

	res, err := s.services.Library.UpdateBook(ctx, identity, input.ID, service.UpdateBookRequest{
		Title:       input.Body.Title,
		Author:      input.Body.Author,
		CoverURL:    input.Body.CoverURL,
		Description: input.Body.Description,
		Category:    input.Body.Category,
		TotalPages:  input.Body.TotalPages,
	})
	if err != nil {
		return nil, err
	}

	return newMutationOutput(res), nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *BookInput) (*MutationOutput, error) {
	identity, err := s.identify(input.Authorization)
	if err != nil {
		return nil, err
	}

	res, err := s.services.Library.DeleteBook(ctx, identity, input.ID)
	if err != nil {
		return nil, err
	}

	return newMutationOutput(res), nil
}

func (s *Server) handleSaveNotes(ctx context.Context, input *SaveNotesInput) (*MutationOutput, error) {
	identity, err := s.identify(input.Authorization)
	if err != nil {
		return nil, err
	}

	res, err := s.services.Library.SaveNotes(ctx, identity, input.ID, input.Body.Text, notes.Format(input.Body.Format))
	if err != nil {
		return nil, err
	}

	return newMutationOutput(res), nil
}

func (s *Server) handleAddQuote(ctx context.Context, input *AddQuoteInput) (*MutationOutput, error) {
	identity, err := s.identify(input.Authorization)
	if err != nil {
		return nil, err
	}

	res, err := s.services.Library.AddQuote(ctx, identity, input.ID, input.Body.Text)
	if err != nil {
		return nil, err
	}

	return newMutationOutput(res), nil
}

func (s *Server) handleDeleteQuote(ctx context.Context, input *DeleteQuoteInput) (*MutationOutput, error) {
	identity, err := s.identify(input.Authorization)
	if err != nil {
		return nil, err
	}

	res, err := s.services.Library.DeleteQuote(ctx, identity, input.ID, input.QuoteID)
	if err != nil {
		return nil, err
	}

	return newMutationOutput(res), nil
}
