package storage

import (
	"context"
	"fmt"
	"time"
)

// Message is a stored contact form submission.
type Message struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Body       string    `json:"body"`
	ReceivedAt time.Time `json:"received_at"`
	Delivered  bool      `json:"delivered"`
}

// SaveMessage inserts m. Saving the same ID twice is an error.
func (s *Store) SaveMessage(ctx context.Context, m Message) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contact_messages (id, name, email, body, received_at, delivered) VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Email, m.Body, m.ReceivedAt.UTC(), m.Delivered)
	if err != nil {
		return fmt.Errorf("save message: %w", err)
	}
	return nil
}

// MarkDelivered flags a message as handed to the sender.
func (s *Store) MarkDelivered(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE contact_messages SET delivered = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark delivered: %w", err)
	}
	return nil
}

// RecentMessages returns the newest submissions first.
func (s *Store) RecentMessages(ctx context.Context, limit int) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, body, received_at, delivered
		FROM contact_messages ORDER BY received_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Body, &m.ReceivedAt, &m.Delivered); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
