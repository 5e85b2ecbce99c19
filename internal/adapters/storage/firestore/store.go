package firestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/PabloGalante/atelier-agent/internal/domain"
)

var ErrSessionExists = errors.New("session already exists")

type Store struct {
	client *firestore.Client
}

var (
	_ domain.SessionStore = (*Store)(nil)
	_ domain.LeadStore    = (*Store)(nil)
)

// NewStore creates a Firestore store for projectID. The client honours
// FIRESTORE_EMULATOR_HOST.
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// ─────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────

func (s *Store) sessionsCol() *firestore.CollectionRef {
	return s.client.Collection("sessions")
}

func (s *Store) sessionRef(id domain.SessionID) *firestore.DocumentRef {
	return s.sessionsCol().Doc(string(id))
}

func (s *Store) leadsCol() *firestore.CollectionRef {
	return s.client.Collection("leads")
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

// sessionDoc keeps the queryable fields flat and the full state as JSON.
type sessionDoc struct {
	Phase     string    `firestore:"phase"`
	Language  string    `firestore:"language"`
	Payload   string    `firestore:"payload"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

type leadDoc struct {
	SessionID string    `firestore:"session_id"`
	Kind      string    `firestore:"kind"`
	Email     string    `firestore:"email"`
	JourneyID string    `firestore:"journey_id"`
	CourseIDs []string  `firestore:"course_ids"`
	Language  string    `firestore:"language"`
	CreatedAt time.Time `firestore:"created_at"`
}

func toSessionDoc(state *domain.ConversationState) (sessionDoc, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return sessionDoc{}, fmt.Errorf("encode session: %w", err)
	}
	return sessionDoc{
		Phase:     string(state.Phase),
		Language:  string(state.Profile.Language),
		Payload:   string(raw),
		CreatedAt: state.CreatedAt,
		UpdatedAt: state.UpdatedAt,
	}, nil
}

// ─────────────────────────────────────────
// SessionStore implementation
// ─────────────────────────────────────────

func (s *Store) Create(ctx context.Context, state *domain.ConversationState) error {
	doc, err := toSessionDoc(state)
	if err != nil {
		return err
	}

	_, err = s.sessionRef(state.SessionID).Create(ctx, doc)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return ErrSessionExists
		}
		return fmt.Errorf("firestore Create session: %w", err)
	}
	return nil
}

func (s *Store) Put(ctx context.Context, state *domain.ConversationState) error {
	doc, err := toSessionDoc(state)
	if err != nil {
		return err
	}

	_, err = s.sessionRef(state.SessionID).Set(ctx, doc)
	if err != nil {
		return fmt.Errorf("firestore Put session: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id domain.SessionID) (*domain.ConversationState, error) {
	snap, err := s.sessionRef(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("firestore Get session: %w", err)
	}

	var doc sessionDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore Get session decode: %w", err)
	}

	var state domain.ConversationState
	if err := json.Unmarshal([]byte(doc.Payload), &state); err != nil {
		return nil, fmt.Errorf("firestore Get session payload: %w", err)
	}
	state.SessionID = id
	return &state, nil
}

// ─────────────────────────────────────────
// LeadStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendLead(ctx context.Context, lead *domain.Lead) error {
	doc := leadDoc{
		SessionID: string(lead.SessionID),
		Kind:      string(lead.Kind),
		Email:     lead.Email,
		JourneyID: lead.JourneyID,
		CourseIDs: lead.CourseIDs,
		Language:  string(lead.Language),
		CreatedAt: lead.CreatedAt,
	}

	ref := s.leadsCol().NewDoc()
	if lead.ID != "" {
		ref = s.leadsCol().Doc(string(lead.ID))
	}
	if _, err := ref.Set(ctx, doc); err != nil {
		return fmt.Errorf("firestore AppendLead: %w", err)
	}
	lead.ID = domain.LeadID(ref.ID)
	return nil
}

// ListLeads returns the newest `limit` leads, oldest first.
func (s *Store) ListLeads(ctx context.Context, limit int) ([]*domain.Lead, error) {
	q := s.leadsCol().OrderBy("created_at", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*domain.Lead
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore ListLeads: %w", err)
		}

		var doc leadDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode leadDoc: %w", err)
		}

		out = append(out, &domain.Lead{
			ID:        domain.LeadID(snap.Ref.ID),
			SessionID: domain.SessionID(doc.SessionID),
			Kind:      domain.LeadKind(doc.Kind),
			Email:     doc.Email,
			JourneyID: doc.JourneyID,
			CourseIDs: doc.CourseIDs,
			Language:  domain.Language(doc.Language),
			CreatedAt: doc.CreatedAt,
		})
	}

	// reverse into chronological order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
