package authenticator

import (
	"testing"
	"time"

	"github.com/spinmall/backend/config"
	"github.com/stretchr/testify/require"
)

type tokenObj struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

func TestTokenEngineRoundTrip(t *testing.T) {
	engine := NewTokenEngine[tokenObj](config.TokenConfigs{
		Secret:     "secret",
		Expiration: time.Hour,
	})

	token, err := engine.Generate("user-1", tokenObj{ID: "user-1", Role: "admin"})
	require.NoError(t, err)

	obj, err := engine.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", obj.ID)
	require.Equal(t, "admin", obj.Role)
}

func TestTokenEngineRejectsWrongSecret(t *testing.T) {
	engine := NewTokenEngine[tokenObj](config.TokenConfigs{
		Secret:     "secret",
		Expiration: time.Hour,
	})
	other := NewTokenEngine[tokenObj](config.TokenConfigs{
		Secret:     "another-secret",
		Expiration: time.Hour,
	})

	token, err := engine.Generate("user-1", tokenObj{ID: "user-1"})
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.Error(t, err)
}

func TestTokenEngineRejectsExpired(t *testing.T) {
	engine := NewTokenEngine[tokenObj](config.TokenConfigs{
		Secret:     "secret",
		Expiration: -time.Hour,
	})

	token, err := engine.Generate("user-1", tokenObj{ID: "user-1"})
	require.NoError(t, err)

	_, err = engine.Verify(token)
	require.Error(t, err)
}
