package swipe

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohits-web03/dealls/internal/models"
)

var now = time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

func newUser() *models.User {
	return &models.User{ID: uuid.New()}
}

// withSwipes gives u n distinct swipes dated on day.
func withSwipes(u *models.User, n int, day time.Time) *models.User {
	stamp := day
	u.LastSwipeDate = &stamp
	for i := 0; i < n; i++ {
		u.SwipedProfiles = append(u.SwipedProfiles, models.SwipeRecord{
			UserID:    u.ID,
			TargetID:  uuid.New(),
			Direction: models.DirectionLeft,
			Date:      Day(day),
		})
	}
	return u
}

func TestEvaluate_FirstSwipeEver(t *testing.T) {
	actor, target := newUser(), newUser()

	out := Evaluate(actor, target, models.DirectionRight, now)

	require.True(t, out.Accepted)
	assert.True(t, out.Reset)
	assert.Equal(t, "2024-03-15", out.Day)
	assert.Equal(t, 1, out.TotalSwipes)
	assert.Equal(t, Remaining{Count: 9}, out.Remaining)
	assert.Equal(t, "You like this user", out.Message)
	require.NotNil(t, actor.LastSwipeDate)
	assert.Equal(t, now, *actor.LastSwipeDate)
	require.Len(t, actor.SwipedProfiles, 1)
	assert.Equal(t, target.ID, out.Record.TargetID)
	assert.Equal(t, actor.ID, out.Record.UserID)
	assert.Equal(t, "2024-03-15", out.Record.Date)
}

func TestEvaluate_LeftSwipeMessage(t *testing.T) {
	out := Evaluate(newUser(), newUser(), models.DirectionLeft, now)

	require.True(t, out.Accepted)
	assert.Equal(t, "You passed this user", out.Message)
}

func TestEvaluate_TenthSwipeReachesZeroRemaining(t *testing.T) {
	actor := withSwipes(newUser(), 9, now.Add(-2*time.Hour))

	out := Evaluate(actor, newUser(), models.DirectionRight, now)

	require.True(t, out.Accepted)
	assert.False(t, out.Reset)
	assert.Equal(t, 10, out.TotalSwipes)
	assert.Equal(t, Remaining{Count: 0}, out.Remaining)
	assert.Contains(t, out.Message, "like")
}

func TestEvaluate_LimitReached(t *testing.T) {
	actor := withSwipes(newUser(), DailyLimit, now.Add(-time.Hour))

	out := Evaluate(actor, newUser(), models.DirectionRight, now)

	assert.False(t, out.Accepted)
	assert.Equal(t, LimitReached, out.Rejection)
	assert.Equal(t, 10, out.TotalSwipes)
	assert.Nil(t, out.Record)
	assert.Len(t, actor.SwipedProfiles, DailyLimit)
}

func TestEvaluate_AlreadySwipedToday(t *testing.T) {
	actor := withSwipes(newUser(), 3, now.Add(-time.Hour))
	target := &models.User{ID: actor.SwipedProfiles[1].TargetID}

	out := Evaluate(actor, target, models.DirectionRight, now)

	assert.False(t, out.Accepted)
	assert.Equal(t, AlreadySwiped, out.Rejection)
	assert.Equal(t, 3, out.TotalSwipes)
	assert.Len(t, actor.SwipedProfiles, 3)
}

func TestEvaluate_AlreadySwipedWinsOverLimit(t *testing.T) {
	actor := withSwipes(newUser(), DailyLimit, now.Add(-time.Hour))
	target := &models.User{ID: actor.SwipedProfiles[0].TargetID}

	out := Evaluate(actor, target, models.DirectionLeft, now)

	assert.Equal(t, AlreadySwiped, out.Rejection)
	assert.Equal(t, 10, out.TotalSwipes)
}

func TestEvaluate_NewDayResetsQuota(t *testing.T) {
	actor := withSwipes(newUser(), DailyLimit, now.Add(-24*time.Hour))
	yesterdayTarget := &models.User{ID: actor.SwipedProfiles[0].TargetID}

	out := Evaluate(actor, yesterdayTarget, models.DirectionRight, now)

	require.True(t, out.Accepted)
	assert.True(t, out.Reset)
	assert.Equal(t, 1, out.TotalSwipes)
	require.Len(t, actor.SwipedProfiles, 1)
	assert.Equal(t, "2024-03-15", actor.SwipedProfiles[0].Date)
}

func TestEvaluate_ResetVisibleOnRejection(t *testing.T) {
	// Stale history is cleared before the checks run, even if a later
	// check would reject.
	actor := withSwipes(newUser(), 4, now.AddDate(0, 0, -3))

	out := Evaluate(actor, newUser(), models.DirectionLeft, now)

	require.True(t, out.Accepted)
	assert.True(t, out.Reset)
	assert.Len(t, actor.SwipedProfiles, 1)
}

func TestEvaluate_DayUsesUTC(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	// 2024-03-16 01:00 in Jakarta is still 2024-03-15 in UTC.
	local := time.Date(2024, 3, 16, 1, 0, 0, 0, jakarta)
	actor := withSwipes(newUser(), 2, now)

	out := Evaluate(actor, newUser(), models.DirectionLeft, local)

	assert.False(t, out.Reset)
	assert.Equal(t, "2024-03-15", out.Day)
	assert.Equal(t, 3, out.TotalSwipes)
}

func TestEvaluate_UnlimitedNeverLimited(t *testing.T) {
	actor := withSwipes(newUser(), 50, now.Add(-time.Hour))
	actor.IsPremium = true
	actor.PremiumFeatures.UnlimitedSwipes = true

	out := Evaluate(actor, newUser(), models.DirectionRight, now)

	require.True(t, out.Accepted)
	assert.Equal(t, 51, out.TotalSwipes)
	assert.True(t, out.Remaining.Unlimited)
}

func TestEvaluate_UnlimitedFeatureRequiresPremium(t *testing.T) {
	actor := withSwipes(newUser(), DailyLimit, now.Add(-time.Hour))
	actor.PremiumFeatures.UnlimitedSwipes = true

	out := Evaluate(actor, newUser(), models.DirectionRight, now)

	assert.Equal(t, LimitReached, out.Rejection)
}

func TestEvaluate_PremiumWithoutUnlimitedIsCapped(t *testing.T) {
	actor := withSwipes(newUser(), DailyLimit, now.Add(-time.Hour))
	actor.IsPremium = true

	out := Evaluate(actor, newUser(), models.DirectionRight, now)

	assert.Equal(t, LimitReached, out.Rejection)
}

func TestEvaluate_TargetVerified(t *testing.T) {
	target := newUser()
	target.PremiumFeatures.VerifiedLabel = true

	out := Evaluate(newUser(), target, models.DirectionRight, now)
	assert.False(t, out.TargetIsVerified)

	target.IsPremium = true
	out = Evaluate(newUser(), target, models.DirectionRight, now)
	assert.True(t, out.TargetIsVerified)
}

func TestEvaluate_AcceptedCountNeverExceedsLimit(t *testing.T) {
	actor := newUser()
	accepted := 0
	for i := 0; i < 25; i++ {
		out := Evaluate(actor, newUser(), models.DirectionLeft, now.Add(time.Duration(i)*time.Minute))
		if out.Accepted {
			accepted++
		}
	}

	assert.Equal(t, DailyLimit, accepted)
	assert.Len(t, actor.SwipedProfiles, DailyLimit)
}

func TestRemaining_MarshalJSON(t *testing.T) {
	cases := []struct {
		in   Remaining
		want string
	}{
		{Remaining{Unlimited: true, Count: 3}, `"unlimited"`},
		{Remaining{Count: 7}, `7`},
		{Remaining{}, `0`},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprint(tc.want), func(t *testing.T) {
			b, err := json.Marshal(tc.in)
			require.NoError(t, err)
			assert.JSONEq(t, tc.want, string(b))
		})
	}
}
