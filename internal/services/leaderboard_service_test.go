package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/tutelearn/platform-service/internal/models"
)

func newRankingClient(t *testing.T) *redis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func seedPoints(t *testing.T, e *testEnv, user *models.User, points int) *models.User {
	t.Helper()

	if _, err := e.repo.User().AddTutePoints(context.Background(), nil, user.ID, points); err != nil {
		t.Fatalf("failed to seed points: %v", err)
	}
	reloaded, err := e.repo.User().GetByID(context.Background(), nil, user.ID)
	if err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	return reloaded
}

func TestLeaderboard_InvalidType(t *testing.T) {
	e := newTestEnv(t)
	svc := NewLeaderboardService(e.repo, nil, e.logger)

	_, err := svc.Get(context.Background(), "teachers", 10)
	if !errors.Is(err, ErrInvalidLeaderboard) {
		t.Errorf("expected ErrInvalidLeaderboard, got %v", err)
	}
}

func TestLeaderboard_UsersFromSQL(t *testing.T) {
	e := newTestEnv(t)
	svc := NewLeaderboardService(e.repo, nil, e.logger)

	seedPoints(t, e, e.createUser(t, "alice", "Northside High"), 30)
	seedPoints(t, e, e.createUser(t, "bob", "Southside High"), 50)
	seedPoints(t, e, e.createUser(t, "carol", "Northside High"), 10)

	entries, err := svc.Users(context.Background(), 10)
	if err != nil {
		t.Fatalf("Users returned error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	if entries[0].Name != "bob" || entries[0].TutePoints != 50 || entries[0].Rank != 1 {
		t.Errorf("top entry = %+v, want bob with 50 points at rank 1", entries[0])
	}
	if entries[2].Name != "carol" || entries[2].Rank != 3 {
		t.Errorf("last entry = %+v, want carol at rank 3", entries[2])
	}
}

func TestLeaderboard_UsersFromRankingSet(t *testing.T) {
	e := newTestEnv(t)
	client := newRankingClient(t)
	svc := NewLeaderboardService(e.repo, client, e.logger)

	alice := seedPoints(t, e, e.createUser(t, "alice", ""), 30)
	bob := seedPoints(t, e, e.createUser(t, "bob", ""), 50)

	if err := svc.RecordPoints(context.Background(), alice); err != nil {
		t.Fatalf("RecordPoints returned error: %v", err)
	}
	if err := svc.RecordPoints(context.Background(), bob); err != nil {
		t.Fatalf("RecordPoints returned error: %v", err)
	}

	entries, err := svc.Users(context.Background(), 10)
	if err != nil {
		t.Fatalf("Users returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].UserID != bob.ID || entries[0].TutePoints != 50 {
		t.Errorf("top entry = %+v, want bob with 50 points", entries[0])
	}
	if entries[1].Rank != 2 {
		t.Errorf("second entry rank = %d, want 2", entries[1].Rank)
	}
}

func TestLeaderboard_StaleRankingMemberSkipped(t *testing.T) {
	e := newTestEnv(t)
	client := newRankingClient(t)
	svc := NewLeaderboardService(e.repo, client, e.logger)

	alice := seedPoints(t, e, e.createUser(t, "alice", ""), 30)
	if err := svc.RecordPoints(context.Background(), alice); err != nil {
		t.Fatalf("RecordPoints returned error: %v", err)
	}

	// A member with no matching user row is dropped from the response
	if err := client.ZAdd(context.Background(), "ranking:users", redis.Z{Score: 99, Member: "424242"}).Err(); err != nil {
		t.Fatalf("failed to seed stale member: %v", err)
	}

	entries, err := svc.Users(context.Background(), 10)
	if err != nil {
		t.Fatalf("Users returned error: %v", err)
	}
	if len(entries) != 1 || entries[0].UserID != alice.ID {
		t.Errorf("entries = %+v, want only alice", entries)
	}
}

func TestLeaderboard_Schools(t *testing.T) {
	e := newTestEnv(t)
	svc := NewLeaderboardService(e.repo, nil, e.logger)

	seedPoints(t, e, e.createUser(t, "alice", "Northside High"), 30)
	seedPoints(t, e, e.createUser(t, "bob", "Northside High"), 20)
	seedPoints(t, e, e.createUser(t, "carol", "Southside High"), 40)
	seedPoints(t, e, e.createUser(t, "dave", ""), 99)

	ranks, err := svc.Schools(context.Background(), 10)
	if err != nil {
		t.Fatalf("Schools returned error: %v", err)
	}
	if len(ranks) != 2 {
		t.Fatalf("expected 2 schools, got %d", len(ranks))
	}

	if ranks[0].School != "Northside High" || ranks[0].TotalPoints != 50 || ranks[0].MemberCount != 2 {
		t.Errorf("top school = %+v, want Northside High with 50 points and 2 members", ranks[0])
	}
	if ranks[1].Rank != 2 {
		t.Errorf("second school rank = %d, want 2", ranks[1].Rank)
	}
}

func TestLeaderboard_NoPasswordMaterial(t *testing.T) {
	e := newTestEnv(t)
	svc := NewLeaderboardService(e.repo, nil, e.logger)

	seedPoints(t, e, e.createUser(t, "alice", "Northside High"), 30)

	entries, err := svc.Users(context.Background(), 10)
	if err != nil {
		t.Fatalf("Users returned error: %v", err)
	}

	encoded, err := json.Marshal(entries)
	if err != nil {
		t.Fatalf("failed to marshal entries: %v", err)
	}
	if strings.Contains(strings.ToLower(string(encoded)), "password") {
		t.Errorf("leaderboard payload leaks password material: %s", encoded)
	}
}
