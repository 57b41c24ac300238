package snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lsta-labs/dealdesk/internal/db"
	"github.com/lsta-labs/dealdesk/internal/negotiation"
)

// Key is the single namespaced storage key the session persists under.
const Key = "dealdesk:session"

// Version is bumped whenever the session payload gains fields. Older
// payloads still load: missing fields default to their initial values.
const Version = 2

// Session is the persisted slice of state: the deal, its negotiations,
// and the audit log.
type Session struct {
	Deal         negotiation.Deal          `json:"deal"`
	Negotiations []negotiation.Negotiation `json:"negotiations"`
	Activities   []negotiation.Activity    `json:"activities"`
}

type envelope struct {
	Version int     `json:"version"`
	Session Session `json:"session"`
}

// Encode wraps the session in a versioned envelope.
func Encode(s *Session) ([]byte, error) {
	return json.Marshal(envelope{Version: Version, Session: *s})
}

// Decode unwraps an envelope of any prior version, defaulting fields the
// writing version did not know about rather than failing to load. A
// negotiation without a status starts over in pending; a deal persisted
// before the circulate gate existed loads as not circulated.
func Decode(data []byte) (*Session, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	s := env.Session
	for i := range s.Negotiations {
		if s.Negotiations[i].Status == "" {
			s.Negotiations[i].Status = negotiation.StatusPending
		}
	}
	return &s, nil
}

// Persister reads and writes the session snapshot through the database.
type Persister struct {
	db *db.DB
}

func NewPersister(database *db.DB) *Persister {
	return &Persister{db: database}
}

func (p *Persister) Save(ctx context.Context, s *Session) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	return p.db.SaveSnapshot(ctx, Key, Version, data)
}

// Load returns the persisted session, or db.ErrNoSnapshot when none has
// been saved yet.
func (p *Persister) Load(ctx context.Context) (*Session, error) {
	_, data, err := p.db.LoadSnapshot(ctx, Key)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
