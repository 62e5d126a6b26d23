package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matemagica/matemagica/internal/store"
)

// ErrNoProfile is returned when no profile is active yet.
var ErrNoProfile = errors.New("no active profile; create one with 'matemagica profile create'")

// AppContext carries the active profile and its progress through a command.
// Nothing here is global: commands load one, mutate progress, and save.
type AppContext struct {
	Store    *store.Store
	Profile  *Profile
	Progress *Progress
}

// Load opens the active profile and its progress document.
func Load(ctx context.Context, st *store.Store) (*AppContext, error) {
	id, err := st.ActiveProfile(ctx)
	if err == store.ErrNotFound {
		return nil, ErrNoProfile
	}
	if err != nil {
		return nil, fmt.Errorf("resolve active profile: %w", err)
	}
	return loadByID(ctx, st, id)
}

func loadByID(ctx context.Context, st *store.Store, id string) (*AppContext, error) {
	raw, err := st.LoadProfile(ctx, id)
	if err == store.ErrNotFound {
		return nil, ErrNoProfile
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}

	ac := &AppContext{Store: st, Profile: &p}
	raw, err = st.LoadProgress(ctx, id)
	switch {
	case err == store.ErrNotFound:
		ac.Progress = NewProgress(&p, time.Now())
		if err := ac.Save(ctx); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("load progress: %w", err)
	default:
		var prog Progress
		if err := json.Unmarshal(raw, &prog); err != nil {
			return nil, fmt.Errorf("decode progress: %w", err)
		}
		prog.normalize()
		ac.Progress = &prog
	}
	return ac, nil
}

// Create registers a new profile, seeds its progress, and makes it active.
func Create(ctx context.Context, st *store.Store, p Profile) (*AppContext, error) {
	if p.FirstName == "" {
		return nil, errors.New("profile needs a first name")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.StartEntry == 0 {
		p.StartEntry = p.GradeYear
	}

	raw, err := json.Marshal(&p)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	if err := st.SaveProfile(ctx, p.ID, raw); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	if err := st.SetActiveProfile(ctx, p.ID); err != nil {
		return nil, fmt.Errorf("activate profile: %w", err)
	}

	ac := &AppContext{Store: st, Profile: &p, Progress: NewProgress(&p, time.Now())}
	if err := ac.Save(ctx); err != nil {
		return nil, err
	}
	return ac, nil
}

// Switch makes another profile active and loads it.
func Switch(ctx context.Context, st *store.Store, id string) (*AppContext, error) {
	if _, err := st.LoadProfile(ctx, id); err == store.ErrNotFound {
		return nil, fmt.Errorf("unknown profile %q", id)
	} else if err != nil {
		return nil, err
	}
	if err := st.SetActiveProfile(ctx, id); err != nil {
		return nil, err
	}
	return loadByID(ctx, st, id)
}

// List returns all stored profiles, oldest first.
func List(ctx context.Context, st *store.Store) ([]Profile, error) {
	docs, err := st.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Profile, 0, len(docs))
	for _, doc := range docs {
		var p Profile
		if err := json.Unmarshal(doc, &p); err != nil {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Save persists the progress document.
func (ac *AppContext) Save(ctx context.Context) error {
	raw, err := json.Marshal(ac.Progress)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := ac.Store.SaveProgress(ctx, ac.Profile.ID, raw); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// ResetProgress discards the progress document and starts over, keeping the
// profile identity.
func (ac *AppContext) ResetProgress(ctx context.Context) error {
	ac.Progress = NewProgress(ac.Profile, time.Now())
	return ac.Save(ctx)
}
