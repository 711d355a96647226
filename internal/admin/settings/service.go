package settings

import (
	"context"
	"sync"
)

// ConnectedAccount is one external account linked to the store.
type ConnectedAccount struct {
	Title    string
	Subtitle string
}

// Preferences holds the store-level locale selections.
type Preferences struct {
	Country  string
	Language string
}

// Overview is the full settings screen payload.
type Overview struct {
	Accounts    []ConnectedAccount
	Preferences Preferences
}

// Service exposes store settings for the settings screen.
type Service interface {
	Overview(ctx context.Context) (*Overview, error)
	UpdatePreferences(ctx context.Context, prefs Preferences) error
}

// StaticService keeps settings in memory for local development and tests.
type StaticService struct {
	mu       sync.Mutex
	accounts []ConnectedAccount
	prefs    Preferences
}

// NewStaticService returns settings seeded with representative accounts.
func NewStaticService() *StaticService {
	return &StaticService{
		accounts: []ConnectedAccount{
			{Title: "Google Account", Subtitle: "ops@adflow.example"},
			{Title: "Google Merchant Center", Subtitle: "AdFlow Demo Store"},
			{Title: "Google Ads", Subtitle: "AdFlow Demo Campaigns"},
		},
		prefs: Preferences{Country: "us", Language: "en"},
	}
}

// Overview returns the current settings state.
func (s *StaticService) Overview(ctx context.Context) (*Overview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &Overview{
		Accounts:    append([]ConnectedAccount(nil), s.accounts...),
		Preferences: s.prefs,
	}, nil
}

// UpdatePreferences replaces the locale selections.
func (s *StaticService) UpdatePreferences(ctx context.Context, prefs Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prefs.Country != "" {
		s.prefs.Country = prefs.Country
	}
	if prefs.Language != "" {
		s.prefs.Language = prefs.Language
	}
	return nil
}
