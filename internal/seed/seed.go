// Package seed fills a store with demo users.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rohits-web03/dealls/internal/models"
	"github.com/rohits-web03/dealls/internal/repositories"
)

const (
	DefaultPassword = "Password1!"
	premiumUsers    = 5
	insertWorkers   = 4
)

var names = [][2]string{
	{"john", "smith"}, {"emma", "johnson"}, {"alex", "williams"}, {"sarah", "brown"},
	{"mike", "jones"}, {"lisa", "garcia"}, {"david", "miller"}, {"anna", "davis"},
	{"james", "rodriguez"}, {"olivia", "martinez"}, {"william", "hernandez"}, {"sophia", "lopez"},
	{"robert", "gonzalez"}, {"isabella", "wilson"}, {"michael", "anderson"}, {"emily", "thomas"},
	{"daniel", "taylor"}, {"ava", "moore"}, {"joseph", "jackson"}, {"mia", "martin"},
}

type Hasher interface {
	Hash(password string) (string, error)
}

// Users builds the demo users, all sharing passwordHash. The first five are
// premium; even-indexed premium users get unlimited swipes and the verified
// label, index 2 always gets the label.
func Users(passwordHash string, now time.Time) []*models.User {
	users := make([]*models.User, len(names))
	for i, n := range names {
		created := now.AddDate(0, 0, -(len(names) - i))
		premium := i < premiumUsers
		u := &models.User{
			Username:  n[0] + "_" + n[1],
			Email:     n[0] + "." + n[1] + "@example.com",
			Password:  passwordHash,
			IsPremium: premium,
			PremiumFeatures: models.PremiumFeatures{
				UnlimitedSwipes: premium && i%2 == 0,
				VerifiedLabel:   premium && (i%2 == 0 || i == 2),
			},
			CreatedAt: created,
		}
		if i%3 == 0 {
			u.LastLogin = &created
		}
		users[i] = u
	}
	return users
}

// Result counts what Run did.
type Result struct {
	Created int
	Skipped int
}

// Run inserts the demo users. Users whose email or username already exists
// are skipped, so running it twice is harmless.
func Run(ctx context.Context, store repositories.UserStore, hasher Hasher, log *slog.Logger) (Result, error) {
	hash, err := hasher.Hash(DefaultPassword)
	if err != nil {
		return Result{}, fmt.Errorf("hash seed password: %w", err)
	}
	users := Users(hash, time.Now().UTC())

	created := make([]bool, len(users))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(insertWorkers)
	for i, u := range users {
		g.Go(func() error {
			err := store.Create(gctx, u)
			var dup *repositories.DuplicateFieldError
			switch {
			case errors.As(err, &dup):
				log.Info("user exists, skipping", slog.String("username", u.Username), slog.String("field", dup.Field))
				return nil
			case err != nil:
				return fmt.Errorf("create %s: %w", u.Username, err)
			}
			created[i] = true
			log.Info("user created",
				slog.String("id", u.ID.String()),
				slog.String("username", u.Username),
				slog.Bool("premium", u.IsPremium),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var res Result
	for _, ok := range created {
		if ok {
			res.Created++
		} else {
			res.Skipped++
		}
	}
	return res, nil
}
