package auth

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/lshigami/Bulletin/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute, NewBlacklist(nil))
	raw, issued, err := issuer.Issue(&model.User{ID: 42, Username: "alice"})
	require.NoError(t, err)

	claims, err := issuer.Parse(context.Background(), raw)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, issued.ID, claims.ID)
}

func TestParse_RejectsWrongSecretAndExpiry(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute, nil)
	raw, _, err := issuer.Issue(&model.User{ID: 1, Username: "a"})
	require.NoError(t, err)

	other := NewTokenIssuer("other", time.Minute, nil)
	_, err = other.Parse(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	issuer.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = issuer.Parse(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Parse(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRevoke(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})

	issuer := NewTokenIssuer("secret", time.Minute, NewBlacklist(client))
	ctx := context.Background()
	raw, claims, err := issuer.Issue(&model.User{ID: 7, Username: "bob"})
	require.NoError(t, err)

	require.NoError(t, issuer.Revoke(ctx, claims))
	_, err = issuer.Parse(ctx, raw)
	assert.ErrorIs(t, err, ErrRevokedToken)

	// the blacklist entry lives only as long as the token would have
	m.FastForward(2 * time.Minute)
	revoked, err := issuer.blacklist.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestBlacklist_NoClientNoop(t *testing.T) {
	b := NewBlacklist(nil)
	ctx := context.Background()
	require.NoError(t, b.Revoke(ctx, "id", time.Second))
	revoked, err := b.IsRevoked(ctx, "id")
	require.NoError(t, err)
	assert.False(t, revoked)
}
