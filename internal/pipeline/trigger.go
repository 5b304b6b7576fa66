package pipeline

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/pable/go-cs-smartban/internal/model"
)

// Trigger filters navigation events. An id is ignored while a run for it is
// in flight and once it is the last successfully processed match. Runs for
// different ids are not tracked against each other: they may race, and the
// later write wins.
type Trigger struct {
	mu       sync.Mutex
	last     string
	inFlight map[string]bool
}

// Begin claims matchID for a run. It reports false when the id is already
// running or was the last match processed.
func (t *Trigger) Begin(matchID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if matchID == t.last || t.inFlight[matchID] {
		return false
	}
	if t.inFlight == nil {
		t.inFlight = make(map[string]bool)
	}
	t.inFlight[matchID] = true
	return true
}

// Finish releases matchID. A successful run becomes the last processed match.
func (t *Trigger) Finish(matchID string, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.inFlight, matchID)
	if ok {
		t.last = matchID
	}
}

// Last returns the last processed match id.
func (t *Trigger) Last() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}

// Handle runs p for matchID unless Begin rejects it, in which case it
// returns (nil, nil). Only a successful run advances the trigger, so a
// failed match is retried on the next event.
func Handle(ctx context.Context, p *Pipeline, t *Trigger, matchID string) (*model.StoredComparison, error) {
	if matchID == "" || !t.Begin(matchID) {
		return nil, nil
	}
	out, err := p.Run(ctx, matchID)
	t.Finish(matchID, err == nil)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MatchIDFromURL extracts the match id from a FACEIT room URL such as
// https://www.faceit.com/en/csgo/room/1-abc/scoreboard. A bare id without
// scheme or slashes is returned unchanged.
func MatchIDFromURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if !strings.Contains(raw, "/") {
		return raw, true
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", false
	}
	host := strings.ToLower(u.Hostname())
	if host != "faceit.com" && !strings.HasSuffix(host, ".faceit.com") {
		return "", false
	}

	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+2 < len(segs); i++ {
		if (segs[i] == "csgo" || segs[i] == "cs2") && segs[i+1] == "room" && segs[i+2] != "" {
			return segs[i+2], true
		}
	}
	return "", false
}
