package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tutelearn/platform-service/internal/models"
	"github.com/tutelearn/platform-service/internal/repositories/document"
)

func newDocumentStore(t *testing.T) *document.Store {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"ads.json": `[
			{"id":"ad-1","title":"Coding Bootcamp","sponsor":"CodeCraft","type":"banner","description":"Learn to code","active":true},
			{"id":"ad-2","title":"Math Prep","sponsor":"NumberWorks","type":"video","description":"Olympiad prep","active":true},
			{"id":"ad-3","title":"Science Quiz","sponsor":"LabBox","type":"sponsored_quiz","description":"Lab safety","active":false}
		]`,
		"analytics.json": `[
			{"id":"rep-1","title":"Weekly Actives","category":"engagement","description":"WAU","period":"2026-W33","metrics":{"wau":100}},
			{"id":"rep-2","title":"Retention","category":"retention","description":"30d cohort","period":"2026-07","metrics":{"d30":0.28}}
		]`,
		"influencers.json": `[
			{"id":"inf-1","name":"Maya Chen","handle":"@mayalearns","tier":"macro","category":"science","followers":482000,"engagement":4.7},
			{"id":"inf-2","name":"Dev Okafor","handle":"@devsolves","tier":"micro","category":"math","followers":58400,"engagement":6.2}
		]`,
		"investors.json": `[
			{"id":"inv-1","name":"Helena Vogt","firm":"Bright Harbor","tier":"seed"},
			{"id":"inv-2","name":"Marcus Lin","firm":"Meridian","tier":"growth"}
		]`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	store := document.NewStore(dir)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load documents: %v", err)
	}
	return store
}

func TestDashboard_AdsFilters(t *testing.T) {
	e := newTestEnv(t)
	svc := NewDashboardService(e.repo, newDocumentStore(t), e.logger)

	tests := []struct {
		name    string
		filters DashboardFilters
		wantIDs []string
	}{
		{name: "no filters", filters: DashboardFilters{}, wantIDs: []string{"ad-1", "ad-2", "ad-3"}},
		{name: "by type", filters: DashboardFilters{Type: "video"}, wantIDs: []string{"ad-2"}},
		{name: "type case insensitive", filters: DashboardFilters{Type: "BANNER"}, wantIDs: []string{"ad-1"}},
		{name: "by sponsor", filters: DashboardFilters{Sponsor: "LabBox"}, wantIDs: []string{"ad-3"}},
		{name: "search over description", filters: DashboardFilters{Search: "olympiad"}, wantIDs: []string{"ad-2"}},
		{name: "limit", filters: DashboardFilters{Limit: 2}, wantIDs: []string{"ad-1", "ad-2"}},
		{name: "no match", filters: DashboardFilters{Sponsor: "nobody"}, wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ads := svc.Ads(context.Background(), tt.filters)
			if len(ads) != len(tt.wantIDs) {
				t.Fatalf("got %d ads, want %d", len(ads), len(tt.wantIDs))
			}
			for i, ad := range ads {
				if ad.ID != tt.wantIDs[i] {
					t.Errorf("ad[%d].ID = %s, want %s", i, ad.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestDashboard_AnalyticsCategory(t *testing.T) {
	e := newTestEnv(t)
	svc := NewDashboardService(e.repo, newDocumentStore(t), e.logger)

	reports := svc.Analytics(context.Background(), DashboardFilters{Category: "retention"})
	if len(reports) != 1 || reports[0].ID != "rep-2" {
		t.Errorf("reports = %+v, want only rep-2", reports)
	}
}

func TestDashboard_InfluencersTierAndSearch(t *testing.T) {
	e := newTestEnv(t)
	svc := NewDashboardService(e.repo, newDocumentStore(t), e.logger)

	byTier := svc.Influencers(context.Background(), DashboardFilters{Tier: "micro"})
	if len(byTier) != 1 || byTier[0].ID != "inf-2" {
		t.Errorf("byTier = %+v, want only inf-2", byTier)
	}

	bySearch := svc.Influencers(context.Background(), DashboardFilters{Search: "maya"})
	if len(bySearch) != 1 || bySearch[0].ID != "inf-1" {
		t.Errorf("bySearch = %+v, want only inf-1", bySearch)
	}
}

func TestDashboard_InvestorsTier(t *testing.T) {
	e := newTestEnv(t)
	svc := NewDashboardService(e.repo, newDocumentStore(t), e.logger)

	investors := svc.Investors(context.Background(), DashboardFilters{Tier: "growth"})
	if len(investors) != 1 || investors[0].ID != "inv-2" {
		t.Errorf("investors = %+v, want only inv-2", investors)
	}
}

func TestDashboard_QuizTopics(t *testing.T) {
	e := newTestEnv(t)
	svc := NewDashboardService(e.repo, newDocumentStore(t), e.logger)

	topics := []*models.QuizTopic{
		{Title: "Space Exploration", Category: "science", Difficulty: models.DifficultyBeginner, AgeGroup: "8-10"},
		{Title: "Ancient Rome", Category: "history", Difficulty: models.DifficultyIntermediate, AgeGroup: "11-13"},
	}
	for _, topic := range topics {
		if err := e.repo.Topic().Create(context.Background(), nil, topic); err != nil {
			t.Fatalf("failed to create topic: %v", err)
		}
	}

	byCategory, err := svc.QuizTopics(context.Background(), DashboardFilters{Category: "history"})
	if err != nil {
		t.Fatalf("QuizTopics returned error: %v", err)
	}
	if len(byCategory) != 1 || byCategory[0].Title != "Ancient Rome" {
		t.Errorf("byCategory = %+v, want only Ancient Rome", byCategory)
	}

	bySearch, err := svc.QuizTopics(context.Background(), DashboardFilters{Search: "space"})
	if err != nil {
		t.Fatalf("QuizTopics returned error: %v", err)
	}
	if len(bySearch) != 1 || bySearch[0].Title != "Space Exploration" {
		t.Errorf("bySearch = %+v, want only Space Exploration", bySearch)
	}
}
