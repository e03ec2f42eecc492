// Package swipe decides whether a swipe is allowed under the daily quota and
// applies the outcome to the actor's in-memory swipe history.
package swipe

import (
	"encoding/json"
	"time"

	"github.com/rohits-web03/dealls/internal/models"
)

// DailyLimit is the number of swipes a user without unlimited swipes may
// make per calendar day.
const DailyLimit = 10

const dayLayout = "2006-01-02"

type Rejection string

const (
	AlreadySwiped Rejection = "ALREADY_SWIPED"
	LimitReached  Rejection = "LIMIT_REACHED"
)

// Remaining is the number of swipes left today, or unlimited.
type Remaining struct {
	Unlimited bool
	Count     int
}

func (r Remaining) MarshalJSON() ([]byte, error) {
	if r.Unlimited {
		return json.Marshal("unlimited")
	}
	return json.Marshal(r.Count)
}

type Outcome struct {
	Accepted         bool
	Rejection        Rejection
	Message          string
	TotalSwipes      int
	Remaining        Remaining
	TargetIsVerified bool

	// Day is the calendar day the swipe was evaluated on.
	Day string
	// Reset is set when the actor's history was cleared for a new day.
	Reset bool
	// Record is the appended record on the accepted path.
	Record *models.SwipeRecord
}

// Day returns the UTC calendar day of t as YYYY-MM-DD.
func Day(t time.Time) string {
	return t.UTC().Format(dayLayout)
}

// Evaluate runs the quota rules for actor swiping target at now. The caller
// has already checked that both users exist and differ. actor is mutated:
// its history is reset on a new day and the new record appended when the
// swipe is accepted.
func Evaluate(actor, target *models.User, direction models.Direction, now time.Time) Outcome {
	today := Day(now)
	lastDay := ""
	if actor.LastSwipeDate != nil {
		lastDay = Day(*actor.LastSwipeDate)
	}

	out := Outcome{Day: today}
	if today != lastDay {
		actor.SwipedProfiles = nil
		stamp := now
		actor.LastSwipeDate = &stamp
		out.Reset = true
	}

	todays := 0
	for _, rec := range actor.SwipedProfiles {
		if rec.Date != today {
			continue
		}
		if rec.TargetID == target.ID {
			out.Rejection = AlreadySwiped
			out.Message = "You have already swiped this profile today."
		}
		todays++
	}
	if out.Rejection != "" {
		out.TotalSwipes = todays
		return out
	}

	unlimited := actor.HasUnlimitedSwipes()
	if !unlimited && todays >= DailyLimit {
		out.Rejection = LimitReached
		out.Message = "You have reached your daily swipe limit. Consider upgrading to Premium for unlimited swipes!"
		out.TotalSwipes = todays
		return out
	}

	actor.SwipedProfiles = append(actor.SwipedProfiles, models.SwipeRecord{
		UserID:    actor.ID,
		TargetID:  target.ID,
		Direction: direction,
		Date:      today,
	})

	out.Accepted = true
	out.Record = &actor.SwipedProfiles[len(actor.SwipedProfiles)-1]
	out.TotalSwipes = todays + 1
	out.Remaining = Remaining{Unlimited: unlimited, Count: max(0, DailyLimit-out.TotalSwipes)}
	out.TargetIsVerified = target.IsVerified()
	if direction == models.DirectionRight {
		out.Message = "You like this user"
	} else {
		out.Message = "You passed this user"
	}
	return out
}
