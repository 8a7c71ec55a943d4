// Package workspace defines the persisted data model: named tuning
// profiles, the full workspace snapshot, its versioned JSON codec, and
// the merge function that reconciles two divergent snapshots.
package workspace

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/liquidframes/motioncore/internal/bench"
	"github.com/liquidframes/motioncore/internal/tuning"
)

// #region profile

// PlaceholderName replaces an empty profile name on normalization.
const PlaceholderName = "Untitled Profile"

// Profile is a named, saved tuning with optional benchmark baseline.
type Profile struct {
	ID        string
	Name      string
	Notes     string
	Tags      []string
	Tuning    tuning.Tuning
	Baseline  *bench.Baseline
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewProfile creates a profile with a fresh id and normalized metadata.
func NewProfile(name, notes string, tags []string, t tuning.Tuning, now time.Time) Profile {
	p := Profile{
		ID:        uuid.NewString(),
		Name:      name,
		Notes:     notes,
		Tags:      tags,
		Tuning:    t.Normalized(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return p.NormalizedMetadata()
}

// NormalizedMetadata trims name and notes, substitutes the placeholder
// name, and deduplicates tags case-insensitively keeping first spelling.
func (p Profile) NormalizedMetadata() Profile {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		p.Name = PlaceholderName
	}
	p.Notes = strings.TrimSpace(p.Notes)

	seen := make(map[string]struct{}, len(p.Tags))
	tags := make([]string, 0, len(p.Tags))
	for _, tag := range p.Tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		tags = append(tags, tag)
	}
	p.Tags = tags
	return p
}

// #endregion profile
