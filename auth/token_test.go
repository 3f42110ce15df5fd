package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestIssueAndValidate(t *testing.T) {
	tokens := New([]byte("super-secret"), 15*time.Minute)
	userID := primitive.NewObjectID()

	token, err := tokens.Issue(userID)
	require.NoError(t, err)

	got, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestValidateExpired(t *testing.T) {
	// A negative lifetime issues an already-expired token.
	tokens := New([]byte("super-secret"), -time.Minute)

	token, err := tokens.Issue(primitive.NewObjectID())
	require.NoError(t, err)

	_, err = tokens.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateWrongSecret(t *testing.T) {
	issuer := New([]byte("right-secret"), 15*time.Minute)
	verifier := New([]byte("wrong-secret"), 15*time.Minute)

	token, err := issuer.Issue(primitive.NewObjectID())
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateMalformed(t *testing.T) {
	tokens := New([]byte("super-secret"), 15*time.Minute)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := tokens.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
