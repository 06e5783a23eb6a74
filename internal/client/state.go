package client

import (
	"sync"

	"github.com/wsantoso/gold-tracker/internal/models"
)

// State is the client session state: the last-loaded purchase list and price
// snapshot, and the editing marker. The purchase list is always replaced
// wholesale after a re-fetch, never patched in place.
type State struct {
	mu        sync.RWMutex
	purchases []models.Purchase
	prices    *models.PriceSnapshot
	editingID *uint
}

func NewState() *State {
	return &State{}
}

func (s *State) SetPurchases(purchases []models.Purchase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purchases = purchases
}

func (s *State) Purchases() []models.Purchase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.purchases
}

// Find locates a purchase by id in the loaded list. No network call is made.
func (s *State) Find(id uint) (models.Purchase, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.purchases {
		if p.ID == id {
			return p, true
		}
	}
	return models.Purchase{}, false
}

func (s *State) SetPrices(snap *models.PriceSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices = snap
}

func (s *State) Prices() *models.PriceSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prices
}

// StartEditing marks form submissions as updates targeting id.
func (s *State) StartEditing(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editingID = &id
}

// StopEditing returns the session to create mode.
func (s *State) StopEditing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editingID = nil
}

// EditingID reports the record targeted by edit mode, if any.
func (s *State) EditingID() (uint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.editingID == nil {
		return 0, false
	}
	return *s.editingID, true
}
