package middleware

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rezkam/calendar/internal/infrastructure/http/response"
)

func TestParseValidationError(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want []response.ErrorField
	}{
		{
			name: "nil error",
			want: []response.ErrorField{},
		},
		{
			name: "schema error at nested field",
			err:  errors.New(`request body has an error: doesn't match schema: Error at "/repeat/type": value is not one of the allowed values`),
			want: []response.ErrorField{{Field: "repeat.type", Issue: "value is not one of the allowed values"}},
		},
		{
			name: "query parameter",
			err:  errors.New(`parameter "scope" in query has an error: value is not one of the allowed values ["single","all"]`),
			want: []response.ErrorField{{Field: "scope", Issue: `value is not one of the allowed values ["single","all"]`}},
		},
		{
			name: "missing body",
			err:  errors.New("request body has an error: value is required but missing"),
			want: []response.ErrorField{{Field: "body", Issue: "required field missing"}},
		},
		{
			name: "unrecognized",
			err:  errors.New("no matching operation was found"),
			want: []response.ErrorField{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, parseValidationError(tc.err))
		})
	}
}
