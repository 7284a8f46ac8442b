package document

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tutelearn/platform-service/internal/models"
)

// Store loads the flat JSON dashboard documents from a data directory
// and serves them from memory. Reload swaps the whole snapshot under
// the lock, so readers never see a half-loaded state.
type Store struct {
	dataDir string

	mu          sync.RWMutex
	ads         []models.AdCampaign
	analytics   []models.AnalyticsReport
	influencers []models.Influencer
	investors   []models.Investor
}

const (
	adsFile         = "ads.json"
	analyticsFile   = "analytics.json"
	influencersFile = "influencers.json"
	investorsFile   = "investors.json"
)

func NewStore(dataDir string) *Store {
	return &Store{dataDir: dataDir}
}

// Load reads all documents from disk. Called at startup and on reload.
func (s *Store) Load() error {
	var (
		ads         []models.AdCampaign
		analytics   []models.AnalyticsReport
		influencers []models.Influencer
		investors   []models.Investor
	)

	if err := s.readFile(adsFile, &ads); err != nil {
		return err
	}
	if err := s.readFile(analyticsFile, &analytics); err != nil {
		return err
	}
	if err := s.readFile(influencersFile, &influencers); err != nil {
		return err
	}
	if err := s.readFile(investorsFile, &investors); err != nil {
		return err
	}

	s.mu.Lock()
	s.ads = ads
	s.analytics = analytics
	s.influencers = influencers
	s.investors = investors
	s.mu.Unlock()

	return nil
}

func (s *Store) readFile(name string, dest interface{}) error {
	path := filepath.Join(s.dataDir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read document %s: %w", name, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to parse document %s: %w", name, err)
	}
	return nil
}

// Ads returns a copy of the loaded ad campaigns.
func (s *Store) Ads() []models.AdCampaign {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.AdCampaign, len(s.ads))
	copy(out, s.ads)
	return out
}

// Analytics returns a copy of the loaded analytics reports.
func (s *Store) Analytics() []models.AnalyticsReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.AnalyticsReport, len(s.analytics))
	copy(out, s.analytics)
	return out
}

// Influencers returns a copy of the loaded influencer profiles.
func (s *Store) Influencers() []models.Influencer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Influencer, len(s.influencers))
	copy(out, s.influencers)
	return out
}

// Investors returns a copy of the loaded investor profiles.
func (s *Store) Investors() []models.Investor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Investor, len(s.investors))
	copy(out, s.investors)
	return out
}
