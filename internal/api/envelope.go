package api

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/pagetrail/pagetrail-server/internal/errors"
	"github.com/pagetrail/pagetrail-server/internal/http/response"
)

// EnvelopeTransformer wraps every huma response body in the versioned
// envelope: {"v":1,"success":true,"data":...} for 2xx and
// {"v":1,"success":false,"error":...,"code":...} for errors.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		return response.Fail(domainerrors.Code(apiErr.Code), apiErr.Message, apiErr.Details), nil
	}
	if strings.HasPrefix(status, "2") {
		return response.Wrap(v), nil
	}
	return v, nil
}
