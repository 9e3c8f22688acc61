package authenticator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type tokenObj struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

func Test_jwtTokenEngine(t *testing.T) {
	engine := NewTokenEngine[tokenObj]("secret", time.Minute)

	token, err := engine.Generate("user1", tokenObj{ID: "user1", Role: "traveler"})
	require.NoError(t, err)

	obj, err := engine.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user1", obj.ID)
	require.Equal(t, "traveler", obj.Role)
}

func Test_jwtTokenEngine_WrongSecret(t *testing.T) {
	engine := NewTokenEngine[tokenObj]("secret", time.Minute)
	another := NewTokenEngine[tokenObj]("another-secret", time.Minute)

	token, err := engine.Generate("user1", tokenObj{ID: "user1"})
	require.NoError(t, err)

	_, err = another.Verify(token)
	require.Error(t, err)
}

func Test_jwtTokenEngine_Expired(t *testing.T) {
	engine := NewTokenEngine[tokenObj]("secret", -time.Minute)

	token, err := engine.Generate("user1", tokenObj{ID: "user1"})
	require.NoError(t, err)

	_, err = engine.Verify(token)
	require.Error(t, err)
}
