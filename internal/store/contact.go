// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"folio/internal/models"
)

// ContactStore manages contact form messages.
type ContactStore struct {
	db *sql.DB
}

// NewContactStore returns a new ContactStore.
func NewContactStore(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

const contactColumns = `id, name, email, subject, message, read, ip_address, created_at`

func scanContact(scanner interface{ Scan(...any) error }) (*models.Contact, error) {
	var c models.Contact
	err := scanner.Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &c.Read, &c.IPAddress, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persists a new message and returns the saved row.
func (s *ContactStore) Create(c *models.Contact) (*models.Contact, error) {
	row := s.db.QueryRow(`
		INSERT INTO contacts (name, email, subject, message, ip_address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+contactColumns,
		c.Name, c.Email, c.Subject, c.Message, c.IPAddress,
	)
	saved, err := scanContact(row)
	if err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return saved, nil
}

// List returns all messages, newest first.
func (s *ContactStore) List() ([]models.Contact, error) {
	rows, err := s.db.Query(`SELECT ` + contactColumns + ` FROM contacts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var items []models.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// MarkRead flags a message as read. Returns nil if the message does not exist.
func (s *ContactStore) MarkRead(id int64) (*models.Contact, error) {
	row := s.db.QueryRow(`UPDATE contacts SET read = TRUE WHERE id = $1 RETURNING `+contactColumns, id)
	c, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mark contact read: %w", err)
	}
	return c, nil
}

// Delete removes a message and reports whether a row was deleted.
func (s *ContactStore) Delete(id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete contact: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete contact: %w", err)
	}
	return n > 0, nil
}

// UnreadCount returns the number of messages not yet marked read.
func (s *ContactStore) UnreadCount() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM contacts WHERE NOT read`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count unread contacts: %w", err)
	}
	return n, nil
}

// Count returns the total number of stored messages.
func (s *ContactStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM contacts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return n, nil
}
