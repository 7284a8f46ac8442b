package models

// Dashboard documents are loaded from flat JSON files and served
// read-only. They never touch the relational store.

type AdCampaign struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Sponsor     string   `json:"sponsor"`
	Type        string   `json:"type"` // banner, video, sponsored_quiz
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	TargetURL   string   `json:"targetUrl,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Active      bool     `json:"active"`
	Impressions int      `json:"impressions"`
	Clicks      int      `json:"clicks"`
}

type AnalyticsReport struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Category    string             `json:"category"` // engagement, retention, growth
	Description string             `json:"description"`
	Period      string             `json:"period"`
	Metrics     map[string]float64 `json:"metrics"`
}

type Influencer struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Handle     string   `json:"handle"`
	Tier       string   `json:"tier"` // nano, micro, macro
	Category   string   `json:"category"`
	Followers  int      `json:"followers"`
	Engagement float64  `json:"engagement"`
	Platforms  []string `json:"platforms,omitempty"`
	Bio        string   `json:"bio,omitempty"`
}

type Investor struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Firm      string   `json:"firm"`
	Tier      string   `json:"tier"` // seed, series_a, growth
	Focus     []string `json:"focus,omitempty"`
	Bio       string   `json:"bio,omitempty"`
	ContactID string   `json:"contactId,omitempty"`
}

// Leaderboard projections

type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	UserID     uint   `json:"userId"`
	Name       string `json:"name"`
	School     string `json:"school,omitempty"`
	TutePoints int    `json:"tutePoints"`
}

type SchoolRank struct {
	Rank        int    `json:"rank"`
	School      string `json:"school"`
	TotalPoints int    `json:"totalPoints"`
	MemberCount int    `json:"memberCount"`
}
