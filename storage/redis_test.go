package storage

import (
	"testing"
	"time"

	"fixora/config"
	"fixora/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisTestStore(t *testing.T, clientID string) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	prev := config.AppConfig
	config.AppConfig.RedisAddr = mr.Addr()
	config.AppConfig.RedisPassword = ""
	config.AppConfig.RedisDraftDB = 0
	t.Cleanup(func() { config.AppConfig = prev })

	s, err := NewRedisStore(clientID)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, mr
}

func TestRedisDraftMergeAcrossWrites(t *testing.T) {
	s, _ := newRedisTestStore(t, "device-1")

	require.NoError(t, s.SaveDraft(models.SessionDraftRecord{
		ServiceID:      intp(7),
		BookedServices: []int{7},
	}))
	require.NoError(t, s.SaveDraft(models.SessionDraftRecord{ServiceTierID: intp(20)}))

	record, err := s.ReadDraft()
	require.NoError(t, err)
	require.NotNil(t, record.ServiceID)
	assert.Equal(t, 7, *record.ServiceID)
	require.NotNil(t, record.ServiceTierID)
	assert.Equal(t, 20, *record.ServiceTierID)
}

func TestRedisDraftCarriesTTLButPendingDoesNot(t *testing.T) {
	s, mr := newRedisTestStore(t, "device-1")

	require.NoError(t, s.SaveDraft(models.SessionDraftRecord{ServiceID: intp(7)}))
	require.NoError(t, s.SavePending(models.PendingBooking{
		Draft:   models.BookingDraft{SelectedServiceIDs: []int{7}},
		Step:    models.StepServiceDetails,
		SavedAt: time.Now(),
	}))

	assert.Greater(t, mr.TTL("sessionDraft:device-1"), time.Duration(0), "drafts expire on their own")
	assert.Equal(t, time.Duration(0), mr.TTL("pendingBooking:device-1"), "pending bookings are cleared manually, never by expiry")
}

func TestRedisPendingLifecycle(t *testing.T) {
	s, _ := newRedisTestStore(t, "device-1")

	pending, err := s.ReadPending()
	require.NoError(t, err)
	assert.Nil(t, pending)

	require.NoError(t, s.SavePending(models.PendingBooking{
		Draft:      models.BookingDraft{SelectedServiceIDs: []int{7}},
		Step:       models.StepServiceDetails,
		FromSearch: true,
		SavedAt:    time.Now(),
	}))

	pending, err = s.ReadPending()
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.True(t, pending.FromSearch)
	assert.Equal(t, []int{7}, pending.Draft.SelectedServiceIDs)

	require.NoError(t, s.ClearPending())
	pending, err = s.ReadPending()
	require.NoError(t, err)
	assert.Nil(t, pending)
}

func TestRedisSessionLifecycle(t *testing.T) {
	s, mr := newRedisTestStore(t, "device-1")

	session, err := s.ReadSession()
	require.NoError(t, err)
	assert.Nil(t, session, "absent session reads as nil, not an error")

	require.NoError(t, s.SaveSession(models.AuthSession{
		User:            &models.User{ID: 7, UserType: models.UserTypeCustomer},
		Token:           "tok",
		IsAuthenticated: true,
		IsVerified:      true,
	}))
	assert.Equal(t, time.Duration(0), mr.TTL("authSession:device-1"), "sessions never expire on their own")

	session, err = s.ReadSession()
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "tok", session.Token)
	require.NotNil(t, session.User)
	assert.Equal(t, 7, session.User.ID)

	require.NoError(t, s.ClearSession())
	session, err = s.ReadSession()
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestRedisCachedRequestsReplacedWholesale(t *testing.T) {
	s, _ := newRedisTestStore(t, "device-1")

	require.NoError(t, s.CacheRequests([]models.RequestItem{{ID: 1}, {ID: 2}}))
	require.NoError(t, s.CacheRequests([]models.RequestItem{{ID: 3}}))

	cached, err := s.CachedRequests()
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, 3, cached[0].ID)
}

func TestRedisKeysScopedByClientID(t *testing.T) {
	a, _ := newRedisTestStore(t, "device-a")
	b, err := NewRedisStore("device-b")
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, a.SaveDraft(models.SessionDraftRecord{ServiceID: intp(7)}))

	record, err := b.ReadDraft()
	require.NoError(t, err)
	assert.True(t, record.IsEmpty(), "another device never sees this device's draft")
}

func TestRedisEmptyClientIDGetsGeneratedOne(t *testing.T) {
	a, _ := newRedisTestStore(t, "")
	b, err := NewRedisStore("")
	require.NoError(t, err)
	defer b.Close()

	assert.NotEmpty(t, a.clientID)
	assert.NotEqual(t, a.clientID, b.clientID)
}
