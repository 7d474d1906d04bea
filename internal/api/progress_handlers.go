package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/pagetrail/pagetrail-server/internal/domain"
)

func (s *Server) registerProgressRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "setCurrentPage",
		Method:      http.MethodPut,
		Path:        "/api/v1/books/{id}/progress",
		Summary:     "Set current page",
		Description: "Moves the book to a page. Forward movement is recorded as today's reading session",
		Tags:        []string{"Progress"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSetCurrentPage)

	huma.Register(s.api, huma.Operation{
		OperationID: "addPages",
		Method:      http.MethodPost,
		Path:        "/api/v1/books/{id}/pages",
		Summary:     "Add pages",
		Description: "Advances the book by a number of pages",
		Tags:        []string{"Progress"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddPages)

	huma.Register(s.api, huma.Operation{
		OperationID: "setStatus",
		Method:      http.MethodPut,
		Path:        "/api/v1/books/{id}/status",
		Summary:     "Set status",
		Description: "Changes the reading status. Moving back to to-read resets the page",
		Tags:        []string{"Progress"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSetStatus)
}

// SetPageInput wraps the set page request for Huma.
type SetPageInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Book ID"`
	Body          struct {
		Page int `json:"page" doc:"Requested page; clamped to the book's page count"`
	}
}

// AddPagesInput wraps the add pages request for Huma.
type AddPagesInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Book ID"`
	Body          struct {
		Pages int `json:"pages" doc:"Pages read, must be positive"`
	}
}

// SetStatusInput wraps the set status request for Huma.
type SetStatusInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Book ID"`
	Body          struct {
		Status string `json:"status" doc:"to-read, reading or finished"`
	}
}

func (s *Server) handleSetCurrentPage(ctx context.Context, input *SetPageInput) (*MutationOutput, error) {
	identity, err := s.identify(input.Authorization)
	if err != nil {
		return nil, err
	}

	res, err := s.services.Library.SetCurrentPage(ctx, identity, input.ID, input.Body.Page)
	if err != nil {
		return nil, err
	}

	return newMutationOutput(res), nil
}

func (s *Server) handleAddPages(ctx context.Context, input *AddPagesInput) (*MutationOutput, error) {
	identity, err := s.identify(input.Authorization)
	if err != nil {
		return nil, err
	}

	res, err := s.services.Library.AddPages(ctx, identity, input.ID, input.Body.Pages)
	if err != nil {
		return nil, err
	}

	return newMutationOutput(res), nil
}

func (s *Server) handleSetStatus(ctx context.Context, input *SetStatusInput) (*MutationOutput, error) {
	identity, err := s.identify(input.Authorization)
	if err != nil {
		return nil, err
	}

	res, err := s.services.Library.SetStatus(ctx, identity, input.ID, domain.Status(input.Body.Status))
	if err != nil {
		return nil, err
	}

	return newMutationOutput(res), nil
}
