// Package engine is the pure computation core behind the BioAura views.
// Every function takes an already-fetched snapshot of records and derives
// aggregates locally; nothing here performs I/O or keeps state across calls.
package engine

import (
	"strings"

	"github.com/bioaura/platform/backend-go/internal/domain"
)

const (
	unknownPlace   = "Unknown"
	defaultCountry = "India"
	defaultType    = "Retail"
)

// ContextIndex pairs the resolved pharmacy list with its id lookup. Lookups
// that miss are data-quality skips for the aggregators, never errors.
type ContextIndex struct {
	Pharmacies []domain.PharmacyContext
	ByID       map[string]domain.PharmacyContext
}

// Lookup returns the context for a pharmacy id and whether it resolved.
func (c ContextIndex) Lookup(pharmacyID string) (domain.PharmacyContext, bool) {
	ctx, ok := c.ByID[pharmacyID]
	return ctx, ok
}

// ResolveContexts joins identity records with their business profiles into
// one normalized context per pharmacy. Profile data wins over identity data;
// missing fields fall back to identity values and then to fixed defaults, so
// an absent profile never drops a pharmacy from the network.
func ResolveContexts(identities []domain.PharmacyIdentity, profiles []domain.PharmacyProfile) ContextIndex {
	profileByEmail := make(map[string]domain.PharmacyProfile, len(profiles))
	for _, p := range profiles {
		if p.Email != "" {
			profileByEmail[p.Email] = p
		}
	}

	index := ContextIndex{
		Pharmacies: make([]domain.PharmacyContext, 0, len(identities)),
		ByID:       make(map[string]domain.PharmacyContext, len(identities)),
	}

	for _, id := range identities {
		profile := profileByEmail[id.Email]

		name := strings.TrimSpace(id.PharmacyName)
		if name == "" {
			name = strings.TrimSpace(strings.TrimSpace(id.FirstName) + " " + strings.TrimSpace(id.LastName))
		}
		businessName := firstNonEmpty(profile.BusinessName, name, "Pharmacy")

		var coords *domain.Coordinates
		if profile.Latitude != nil && profile.Longitude != nil {
			coords = &domain.Coordinates{Lat: *profile.Latitude, Lng: *profile.Longitude}
		}

		ctx := domain.PharmacyContext{
			ID:               id.ID,
			Email:            id.Email,
			Phone:            firstNonEmpty(id.Phone, profile.Phone),
			BusinessName:     businessName,
			Type:             firstNonEmpty(profile.PharmacyType, id.PharmacyType, defaultType),
			LicenseNumber:    firstNonEmpty(profile.LicenseNumber, id.PharmacyLicense),
			Address:          firstNonEmpty(profile.Address, id.Street),
			City:             firstNonEmpty(profile.City, id.City, unknownPlace),
			State:            firstNonEmpty(profile.State, id.State, unknownPlace),
			Country:          firstNonEmpty(profile.Country, id.Country, defaultCountry),
			Coordinates:      coords,
			EmergencyContact: profile.EmergencyContact,
		}

		index.Pharmacies = append(index.Pharmacies, ctx)
		index.ByID[ctx.ID] = ctx
	}

	return index
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
