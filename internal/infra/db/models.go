package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Site struct {
	ID        uuid.UUID `db:"id"`
	OwnerID   uuid.UUID `db:"owner_id"`
	Slug      string    `db:"slug"`
	Template  string    `db:"template"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type BusinessProfile struct {
	SiteID      uuid.UUID       `db:"site_id"`
	Name        string          `db:"name"`
	Tagline     string          `db:"tagline"`
	Description string          `db:"description"`
	Industry    string          `db:"industry"`
	Phone       string          `db:"phone"`
	Email       string          `db:"email"`
	Address     string          `db:"address"`
	City        string          `db:"city"`
	Socials     json.RawMessage `db:"socials"`
	LogoAssetID *uuid.UUID      `db:"logo_asset_id"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

type Page struct {
	ID          uuid.UUID       `db:"id"`
	SiteID      uuid.UUID       `db:"site_id"`
	Key         string          `db:"key"`
	Title       string          `db:"title"`
	Data        json.RawMessage `db:"data"`
	Status      string          `db:"status"`
	Position    int             `db:"position"`
	PublishedAt *time.Time      `db:"published_at"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

type Domain struct {
	ID        uuid.UUID `db:"id"`
	SiteID    uuid.UUID `db:"site_id"`
	Hostname  string    `db:"hostname"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Asset struct {
	ID        uuid.UUID `db:"id"`
	SiteID    uuid.UUID `db:"site_id"`
	Path      string    `db:"path"`
	MimeType  string    `db:"mime_type"`
	Size      int64     `db:"size"`
	CreatedAt time.Time `db:"created_at"`
}

type Outbox struct {
	ID        uint64          `db:"id"`
	Event     string          `db:"event"`
	Status    int             `db:"status"`
	Payload   json.RawMessage `db:"payload"`
	CreatedAt time.Time       `db:"created_at"`
}
