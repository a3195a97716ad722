package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Event struct {
	ID        string          `json:"id"`
	ActorID   string          `json:"actorId"`
	Action    string          `json:"action"`
	Entity    string          `json:"entity"`
	EntityID  string          `json:"entityId"`
	RequestID string          `json:"requestId"`
	IP        string          `json:"ip"`
	Details   json.RawMessage `json:"details,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

type Service struct {
	DB *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Service {
	return &Service{DB: db}
}

// Record appends one entry to the audit log. Details may be any
// JSON-marshalable value or nil.
func (s *Service) Record(ctx context.Context, actorID, action, entity, entityID, requestID, ip string, details any) error {
	var detailsJSON []byte
	if details != nil {
		payload, err := json.Marshal(details)
		if err != nil {
			return err
		}
		detailsJSON = payload
	}

	_, err := s.DB.Exec(ctx, `
    INSERT INTO audit_log (actor_id, action, entity, entity_id, request_id, ip, details)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
  `, actorID, action, entity, entityID, requestID, ip, detailsJSON)
	return err
}

// ListForEntity returns the trail for one record, newest first.
func (s *Service) ListForEntity(ctx context.Context, entity, entityID string, limit int) ([]Event, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, actor_id, action, entity, entity_id, COALESCE(request_id, ''), COALESCE(ip, ''), details, created_at
    FROM audit_log
    WHERE entity = $1 AND entity_id = $2
    ORDER BY created_at DESC
    LIMIT $3
  `, entity, entityID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var evt Event
		if err := rows.Scan(&evt.ID, &evt.ActorID, &evt.Action, &evt.Entity, &evt.EntityID, &evt.RequestID, &evt.IP, &evt.Details, &evt.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, evt)
	}
	return out, rows.Err()
}
