// Package seed loads the badge and challenge catalogue into the database.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"habitserver/internal/models"
	"habitserver/internal/store"
)

var (
	//go:embed badges.yaml
	badgesYAML []byte
	//go:embed challenges.yaml
	challengesYAML []byte
)

type challengeDef struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Duration    string `yaml:"duration"`
}

type Result struct {
	Badges     int
	Challenges int
}

func Badges() ([]models.Badge, error) {
	var badges []models.Badge
	if err := yaml.Unmarshal(badgesYAML, &badges); err != nil {
		return nil, errors.Wrap(err, "seed: badges.yaml")
	}
	for _, b := range badges {
		if b.Name == "" || b.Threshold <= 0 {
			return nil, errors.Errorf("seed: invalid badge %q", b.Name)
		}
		switch b.Type {
		case models.BadgeHabitCount, models.BadgeStreak, models.BadgeSocial:
		default:
			return nil, errors.Errorf("seed: badge %q has unknown type %q", b.Name, b.Type)
		}
	}
	return badges, nil
}

func challenges() ([]challengeDef, error) {
	var defs []challengeDef
	if err := yaml.Unmarshal(challengesYAML, &defs); err != nil {
		return nil, errors.Wrap(err, "seed: challenges.yaml")
	}
	return defs, nil
}

// Run upserts every badge and creates missing challenges, each with its
// "<name> Forum" group room. It is safe to run repeatedly; Result counts
// only the challenges created by this call.
func Run(ctx context.Context, st *store.Store, logFn func(msg string, keyvals ...interface{})) (Result, error) {
	if logFn == nil {
		logFn = func(string, ...interface{}) {}
	}
	var res Result

	badges, err := Badges()
	if err != nil {
		return res, err
	}
	defs, err := challenges()
	if err != nil {
		return res, err
	}

	err = st.WithTx(ctx, func(tx *store.Store) error {
		for i := range badges {
			if err := tx.UpsertBadge(ctx, &badges[i]); err != nil {
				return err
			}
			res.Badges++
		}

		for _, def := range defs {
			_, err := tx.GetChallengeByName(ctx, def.Name)
			if err == nil {
				continue
			}
			if !errors.Is(err, store.ErrNotFound) {
				return err
			}

			forum := fmt.Sprintf("%s Forum", def.Name)
			room, err := tx.CreateRoom(ctx, true, &forum)
			if err != nil {
				return err
			}
			c := &models.Challenge{
				Name:        def.Name,
				Description: def.Description,
				Duration:    def.Duration,
				RoomID:      &room.ID,
			}
			if err := tx.CreateChallenge(ctx, c); err != nil {
				return err
			}
			logFn("created challenge", "name", c.Name, "room", room.ID)
			res.Challenges++
		}
		return nil
	})
	if err != nil {
		return Result{}, errors.Wrap(err, "seed.Run")
	}

	logFn("seed complete", "badges", res.Badges, "challenges", res.Challenges)
	return res, nil
}
