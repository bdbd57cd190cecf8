package entdriver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/motorlogic/garage/pkg/session"
	"github.com/motorlogic/garage/pkg/storage"
	"github.com/motorlogic/garage/pkg/storage/ent"
	entprofile "github.com/motorlogic/garage/pkg/storage/ent/profile"
)

// AddProfile stores a profile, enforcing the per-owner cap inside the insert
// transaction so two racing adds cannot both slip under the limit.
func (ed *EntDriver) AddProfile(ctx context.Context, p *session.Profile) (*session.Profile, error) {
	if p == nil {
		return nil, errors.New("cannot store nil profile")
	}
	if p.OwnerID == "" {
		return nil, errors.New("profile owner id required")
	}
	if session.IsGuestOwner(p.OwnerID) {
		return nil, storage.InvalidTierError{OwnerID: p.OwnerID, Tier: session.TierPersistent}
	}

	var payload map[string]any
	if len(p.Payload) > 0 {
		if err := json.Unmarshal(p.Payload, &payload); err != nil {
			return nil, fmt.Errorf("decoding profile payload: %w", err)
		}
	}

	id := p.ID
	if id == "" {
		id = uuid.NewString()
	}
	now := ed.now()

	tx, err := ed.Client.Tx(ctx)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}

	count, err := tx.Profile.Query().
		Where(entprofile.OwnerID(p.OwnerID)).
		Count(ctx)
	if err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("counting profiles: %w", err)
	}
	if count >= ed.Opts.MaxProfiles {
		if ed.Opts.CapPolicy == storage.CapReject {
			_ = tx.Rollback()
			return nil, storage.ProfileLimitError{OwnerID: p.OwnerID, Limit: ed.Opts.MaxProfiles}
		}
		lru, err := tx.Profile.Query().
			Where(entprofile.OwnerID(p.OwnerID)).
			Order(ent.Asc(entprofile.FieldLastUsedAt)).
			First(ctx)
		if err != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("finding eviction candidate: %w", err)
		}
		if err := tx.Profile.DeleteOneID(lru.ID).Exec(ctx); err != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("evicting profile: %w", err)
		}
	}

	row, err := tx.Profile.Create().
		SetID(id).
		SetOwnerID(p.OwnerID).
		SetPayload(payload).
		SetUsageCount(p.UsageCount).
		SetLastUsedAt(now).
		SetCreatedAt(now).
		Save(ctx)
	if err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("creating profile: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing: %w", err)
	}
	return toDomainProfile(row)
}

// GetProfile returns a profile by id.
func (ed *EntDriver) GetProfile(ctx context.Context, id string) (*session.Profile, error) {
	row, err := ed.Client.Profile.Get(ctx, id)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, storage.ProfileNotFoundError{ID: id}
		}
		return nil, fmt.Errorf("getting profile: %w", err)
	}
	return toDomainProfile(row)
}

// ListProfiles returns the owner's profiles, most recently used first.
func (ed *EntDriver) ListProfiles(ctx context.Context, ownerID string) ([]*session.Profile, error) {
	rows, err := ed.Client.Profile.Query().
		Where(entprofile.OwnerID(ownerID)).
		Order(ent.Desc(entprofile.FieldLastUsedAt)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	out := make([]*session.Profile, 0, len(rows))
	for _, row := range rows {
		p, err := toDomainProfile(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// TouchProfile records a use.
func (ed *EntDriver) TouchProfile(ctx context.Context, id string) error {
	err := ed.Client.Profile.UpdateOneID(id).
		AddUsageCount(1).
		SetLastUsedAt(ed.now()).
		Exec(ctx)
	if ent.IsNotFound(err) {
		return storage.ProfileNotFoundError{ID: id}
	}
	return err
}

// DeleteProfile is idempotent.
func (ed *EntDriver) DeleteProfile(ctx context.Context, id string) error {
	_, err := ed.Client.Profile.Delete().
		Where(entprofile.ID(id)).
		Exec(ctx)
	return err
}

func toDomainProfile(row *ent.Profile) (*session.Profile, error) {
	payload, err := json.Marshal(row.Payload)
	if err != nil {
		return nil, fmt.Errorf("encoding profile payload: %w", err)
	}
	return &session.Profile{
		ID:         row.ID,
		OwnerID:    row.OwnerID,
		Payload:    payload,
		UsageCount: row.UsageCount,
		LastUsedAt: row.LastUsedAt,
		CreatedAt:  row.CreatedAt,
	}, nil
}
