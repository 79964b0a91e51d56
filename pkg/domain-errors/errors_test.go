package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("matches the direct code", func(t *testing.T) {
		err := New(CodeInvalidTransition, "cannot complete from CANCELLED")
		assert.True(t, HasCode(err, CodeInvalidTransition))
		assert.False(t, HasCode(err, CodeForbidden))
	})

	t.Run("walks wrapped chains", func(t *testing.T) {
		inner := New(CodeNotFound, "request not found")
		outer := Wrap(inner, CodeInternal, "load failed")
		assert.True(t, HasCode(outer, CodeInternal))
		assert.True(t, HasCode(outer, CodeNotFound))
	})

	t.Run("survives fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", New(CodeConcurrentModification, "stale version"))
		assert.True(t, HasCode(err, CodeConcurrentModification))
	})

	t.Run("nil and foreign errors carry no code", func(t *testing.T) {
		assert.False(t, HasCode(nil, CodeInternal))
		assert.False(t, HasCode(errors.New("plain"), CodeInternal))
	})
}

func TestValidation(t *testing.T) {
	err := Validation("contract_amount", "must be positive")
	require.True(t, HasCode(err, CodeValidation))
	assert.Equal(t, "contract_amount", Field(err))
	assert.Equal(t, "validation: contract_amount: must be positive", err.Error())

	assert.Empty(t, Field(New(CodeForbidden, "role not permitted")))
	assert.Empty(t, Field(nil))
}

func TestWrapPreservesChain(t *testing.T) {
	sentinel := errors.New("row not found")
	err := Wrap(sentinel, CodeNotFound, "request not found")
	assert.True(t, errors.Is(err, sentinel))
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:             http.StatusBadRequest,
		CodeAttachmentsRequired:    http.StatusBadRequest,
		CodeUnauthorized:           http.StatusUnauthorized,
		CodeForbidden:              http.StatusForbidden,
		CodeNotFound:               http.StatusNotFound,
		CodeInvalidTransition:      http.StatusConflict,
		CodeSettlementRequired:     http.StatusConflict,
		CodeAlreadyCompleted:       http.StatusConflict,
		CodeCandidateListFull:      http.StatusConflict,
		CodeDuplicateCandidate:     http.StatusConflict,
		CodeConcurrentModification: http.StatusConflict,
		CodeInternal:               http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), string(code))
	}
}
