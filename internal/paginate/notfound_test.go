package paginate

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"bugninjaplatform/internal/domain"
)

func TestClassifyNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want NotFoundKind
	}{
		{"project missing", &domain.APIError{Status: 404, Message: "Project with id p1 not found"}, NotFoundParent},
		{"lowercase project", &domain.APIError{Status: 404, Message: "project not found"}, NotFoundParent},
		{"wrapped", fmt.Errorf("list: %w", &domain.APIError{Status: 404, Message: "Project p1 Not Found"}), NotFoundParent},
		{"test case missing", &domain.APIError{Status: 404, Message: "Test case tc-1 not found"}, NotFoundStale},
		{"404 other wording", &domain.APIError{Status: 404, Message: "Not Found page"}, NotFoundStale},
		{"404 unrelated", &domain.APIError{Status: 404, Message: "route missing"}, NotFoundNone},
		{"500 with wording", &domain.APIError{Status: 500, Message: "project not found in cache"}, NotFoundNone},
		{"transport", &domain.APIError{Code: domain.CodeTimeout, Message: "timeout"}, NotFoundNone},
		{"plain error", errors.New("not found"), NotFoundNone},
		{"nil", nil, NotFoundNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyNotFound(tt.err))
		})
	}
	assert.Equal(t, "parent", NotFoundParent.String())
}
