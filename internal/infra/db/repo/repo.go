package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Builder-Lawyers/site-builder/internal/application/errs"
	"github.com/Builder-Lawyers/site-builder/internal/domain/consts"
	"github.com/Builder-Lawyers/site-builder/internal/domain/entity"
	"github.com/Builder-Lawyers/site-builder/internal/infra/db"
	"github.com/Builder-Lawyers/site-builder/pkg/interfaces"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const siteColumns = "id, owner_id, slug, template, status, created_at, updated_at"

type SiteRepo struct {
	tx pgx.Tx
}

func NewSiteRepo(tx pgx.Tx) *SiteRepo {
	return &SiteRepo{tx: tx}
}

func scanSite(row pgx.Row) (*entity.Site, error) {
	var m db.Site
	if err := row.Scan(&m.ID, &m.OwnerID, &m.Slug, &m.Template, &m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return db.MapSiteModelToEntity(m), nil
}

func (r *SiteRepo) InsertSite(ctx context.Context, site *entity.Site) error {
	_, err := r.tx.Exec(ctx, `INSERT INTO builder.sites (id, owner_id, slug, template, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`, site.ID, site.OwnerID, site.Slug, site.Template, site.Status, site.CreatedAt, site.UpdatedAt)
	return errs.FromDB("site", err)
}

func (r *SiteRepo) GetSite(ctx context.Context, id uuid.UUID) (*entity.Site, error) {
	site, err := scanSite(r.tx.QueryRow(ctx, "SELECT "+siteColumns+" FROM builder.sites WHERE id = $1", id))
	return site, errs.FromDB("site", err)
}

// GetSiteForUpdate locks the site row until the transaction ends.
func (r *SiteRepo) GetSiteForUpdate(ctx context.Context, id uuid.UUID) (*entity.Site, error) {
	site, err := scanSite(r.tx.QueryRow(ctx, "SELECT "+siteColumns+" FROM builder.sites WHERE id = $1 FOR UPDATE", id))
	return site, errs.FromDB("site", err)
}

func (r *SiteRepo) GetSiteBySlug(ctx context.Context, slug string) (*entity.Site, error) {
	site, err := scanSite(r.tx.QueryRow(ctx, "SELECT "+siteColumns+" FROM builder.sites WHERE slug = $1", slug))
	return site, errs.FromDB("site", err)
}

func (r *SiteRepo) ListSitesByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Site, error) {
	rows, err := r.tx.Query(ctx, "SELECT "+siteColumns+" FROM builder.sites WHERE owner_id = $1 ORDER BY created_at", ownerID)
	if err != nil {
		return nil, errs.FromDB("site", err)
	}
	defer rows.Close()

	sites := []*entity.Site{}
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, errs.FromDB("site", err)
		}
		sites = append(sites, site)
	}
	return sites, errs.FromDB("site", rows.Err())
}

func (r *SiteRepo) UpdateSite(ctx context.Context, site *entity.Site) error {
	tag, err := r.tx.Exec(ctx, "UPDATE builder.sites SET slug = $1, template = $2, status = $3, updated_at = $4 WHERE id = $5",
		site.Slug, site.Template, site.Status, site.UpdatedAt, site.ID)
	if err != nil {
		return errs.FromDB("site", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFoundError{Resource: "site"}
	}
	return nil
}

func (r *SiteRepo) DeleteSite(ctx context.Context, id uuid.UUID) error {
	tag, err := r.tx.Exec(ctx, "DELETE FROM builder.sites WHERE id = $1", id)
	if err != nil {
		return errs.FromDB("site", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFoundError{Resource: "site"}
	}
	return nil
}

type ProfileRepo struct {
	tx pgx.Tx
}

func NewProfileRepo(tx pgx.Tx) *ProfileRepo {
	return &ProfileRepo{tx: tx}
}

func (r *ProfileRepo) GetProfile(ctx context.Context, siteID uuid.UUID) (*entity.BusinessProfile, error) {
	var m db.BusinessProfile
	err := r.tx.QueryRow(ctx, `SELECT site_id, name, tagline, description, industry, phone, email, address, city, socials, logo_asset_id, updated_at
		FROM builder.business_profiles WHERE site_id = $1`, siteID).Scan(&m.SiteID, &m.Name, &m.Tagline, &m.Description,
		&m.Industry, &m.Phone, &m.Email, &m.Address, &m.City, &m.Socials, &m.LogoAssetID, &m.UpdatedAt)
	if err != nil {
		return nil, errs.FromDB("business profile", err)
	}
	return db.MapProfileModelToEntity(m)
}

// UpsertProfile writes the whole profile, replacing any previous values.
func (r *ProfileRepo) UpsertProfile(ctx context.Context, profile *entity.BusinessProfile) error {
	m, err := db.MapProfileEntityToModel(profile)
	if err != nil {
		return err
	}
	_, err = r.tx.Exec(ctx, `INSERT INTO builder.business_profiles
		(site_id, name, tagline, description, industry, phone, email, address, city, socials, logo_asset_id, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (site_id) DO UPDATE SET name = EXCLUDED.name, tagline = EXCLUDED.tagline, description = EXCLUDED.description,
		industry = EXCLUDED.industry, phone = EXCLUDED.phone, email = EXCLUDED.email, address = EXCLUDED.address, city = EXCLUDED.city,
		socials = EXCLUDED.socials, logo_asset_id = EXCLUDED.logo_asset_id, updated_at = EXCLUDED.updated_at`,
		m.SiteID, m.Name, m.Tagline, m.Description, m.Industry, m.Phone, m.Email, m.Address, m.City, m.Socials, m.LogoAssetID, m.UpdatedAt)
	return errs.FromDB("business profile", err)
}

const pageColumns = "id, site_id, key, title, data, status, position, published_at, created_at, updated_at"

type PageRepo struct {
	tx pgx.Tx
}

func NewPageRepo(tx pgx.Tx) *PageRepo {
	return &PageRepo{tx: tx}
}

func scanPage(row pgx.Row) (*entity.Page, error) {
	var m db.Page
	if err := row.Scan(&m.ID, &m.SiteID, &m.Key, &m.Title, &m.Data, &m.Status, &m.Position, &m.PublishedAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, errs.FromDB("page", err)
	}
	return db.MapPageModelToEntity(m)
}

func (r *PageRepo) InsertPage(ctx context.Context, page *entity.Page) error {
	m, err := db.MapPageEntityToModel(page)
	if err != nil {
		return err
	}
	_, err = r.tx.Exec(ctx, "INSERT INTO builder.pages ("+pageColumns+") VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)",
		m.ID, m.SiteID, m.Key, m.Title, m.Data, m.Status, m.Position, m.PublishedAt, m.CreatedAt, m.UpdatedAt)
	return errs.FromDB("page", err)
}

func (r *PageRepo) GetPage(ctx context.Context, siteID uuid.UUID, key consts.PageKey) (*entity.Page, error) {
	return scanPage(r.tx.QueryRow(ctx, "SELECT "+pageColumns+" FROM builder.pages WHERE site_id = $1 AND key = $2", siteID, key))
}

func (r *PageRepo) ListPages(ctx context.Context, siteID uuid.UUID) ([]*entity.Page, error) {
	return r.list(ctx, "SELECT "+pageColumns+" FROM builder.pages WHERE site_id = $1 ORDER BY position, created_at", siteID)
}

func (r *PageRepo) ListPublishedPages(ctx context.Context, siteID uuid.UUID) ([]*entity.Page, error) {
	return r.list(ctx, "SELECT "+pageColumns+" FROM builder.pages WHERE site_id = $1 AND status = $2 ORDER BY position, created_at",
		siteID, consts.PageStatusPublished)
}

func (r *PageRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Page, error) {
	rows, err := r.tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errs.FromDB("page", err)
	}
	defer rows.Close()

	pages := []*entity.Page{}
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, errs.FromDB("page", rows.Err())
}

func (r *PageRepo) NextPosition(ctx context.Context, siteID uuid.UUID) (int, error) {
	var pos int
	err := r.tx.QueryRow(ctx, "SELECT COALESCE(MAX(position) + 1, 0) FROM builder.pages WHERE site_id = $1", siteID).Scan(&pos)
	return pos, errs.FromDB("page", err)
}

// UpdatePage stores title, data, status and published_at of an existing page.
func (r *PageRepo) UpdatePage(ctx context.Context, page *entity.Page) error {
	m, err := db.MapPageEntityToModel(page)
	if err != nil {
		return err
	}
	tag, err := r.tx.Exec(ctx, `UPDATE builder.pages SET title = $1, data = $2, status = $3, published_at = $4, updated_at = $5
		WHERE site_id = $6 AND key = $7`, m.Title, m.Data, m.Status, m.PublishedAt, m.UpdatedAt, m.SiteID, m.Key)
	if err != nil {
		return errs.FromDB("page", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFoundError{Resource: "page"}
	}
	return nil
}

func (r *PageRepo) DeletePage(ctx context.Context, siteID uuid.UUID, key consts.PageKey) error {
	tag, err := r.tx.Exec(ctx, "DELETE FROM builder.pages WHERE site_id = $1 AND key = $2", siteID, key)
	if err != nil {
		return errs.FromDB("page", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFoundError{Resource: "page"}
	}
	return nil
}

const domainColumns = "id, site_id, hostname, status, created_at, updated_at"

type DomainRepo struct {
	tx pgx.Tx
}

func NewDomainRepo(tx pgx.Tx) *DomainRepo {
	return &DomainRepo{tx: tx}
}

func scanDomain(row pgx.Row) (*entity.Domain, error) {
	var m db.Domain
	if err := row.Scan(&m.ID, &m.SiteID, &m.Hostname, &m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, errs.FromDB("domain", err)
	}
	return db.MapDomainModelToEntity(m), nil
}

func (r *DomainRepo) InsertDomain(ctx context.Context, domain *entity.Domain) error {
	_, err := r.tx.Exec(ctx, "INSERT INTO builder.domains ("+domainColumns+") VALUES ($1,$2,$3,$4,$5,$6)",
		domain.ID, domain.SiteID, domain.Hostname, domain.Status, domain.CreatedAt, domain.UpdatedAt)
	return errs.FromDB("domain", err)
}

func (r *DomainRepo) GetDomain(ctx context.Context, siteID, id uuid.UUID) (*entity.Domain, error) {
	return scanDomain(r.tx.QueryRow(ctx, "SELECT "+domainColumns+" FROM builder.domains WHERE site_id = $1 AND id = $2", siteID, id))
}

func (r *DomainRepo) GetDomainByHostname(ctx context.Context, hostname string) (*entity.Domain, error) {
	return scanDomain(r.tx.QueryRow(ctx, "SELECT "+domainColumns+" FROM builder.domains WHERE hostname = $1", hostname))
}

func (r *DomainRepo) ListDomains(ctx context.Context, siteID uuid.UUID) ([]*entity.Domain, error) {
	rows, err := r.tx.Query(ctx, "SELECT "+domainColumns+" FROM builder.domains WHERE site_id = $1 ORDER BY created_at", siteID)
	if err != nil {
		return nil, errs.FromDB("domain", err)
	}
	defer rows.Close()

	domains := []*entity.Domain{}
	for rows.Next() {
		domain, err := scanDomain(rows)
		if err != nil {
			return nil, err
		}
		domains = append(domains, domain)
	}
	return domains, errs.FromDB("domain", rows.Err())
}

func (r *DomainRepo) SetDomainStatus(ctx context.Context, id uuid.UUID, status consts.DomainStatus, at time.Time) error {
	tag, err := r.tx.Exec(ctx, "UPDATE builder.domains SET status = $1, updated_at = $2 WHERE id = $3", status, at, id)
	if err != nil {
		return errs.FromDB("domain", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFoundError{Resource: "domain"}
	}
	return nil
}

func (r *DomainRepo) DeleteDomain(ctx context.Context, siteID, id uuid.UUID) error {
	tag, err := r.tx.Exec(ctx, "DELETE FROM builder.domains WHERE site_id = $1 AND id = $2", siteID, id)
	if err != nil {
		return errs.FromDB("domain", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFoundError{Resource: "domain"}
	}
	return nil
}

const assetColumns = "id, site_id, path, mime_type, size, created_at"

type AssetRepo struct {
	tx pgx.Tx
}

func NewAssetRepo(tx pgx.Tx) *AssetRepo {
	return &AssetRepo{tx: tx}
}

func scanAsset(row pgx.Row) (*entity.Asset, error) {
	var m db.Asset
	if err := row.Scan(&m.ID, &m.SiteID, &m.Path, &m.MimeType, &m.Size, &m.CreatedAt); err != nil {
		return nil, errs.FromDB("asset", err)
	}
	return db.MapAssetModelToEntity(m), nil
}

func (r *AssetRepo) InsertAsset(ctx context.Context, asset *entity.Asset) error {
	_, err := r.tx.Exec(ctx, "INSERT INTO builder.assets ("+assetColumns+") VALUES ($1,$2,$3,$4,$5,$6)",
		asset.ID, asset.SiteID, asset.Path, asset.MimeType, asset.Size, asset.CreatedAt)
	return errs.FromDB("asset", err)
}

func (r *AssetRepo) GetAsset(ctx context.Context, siteID, id uuid.UUID) (*entity.Asset, error) {
	return scanAsset(r.tx.QueryRow(ctx, "SELECT "+assetColumns+" FROM builder.assets WHERE site_id = $1 AND id = $2", siteID, id))
}

func (r *AssetRepo) ListAssets(ctx context.Context, siteID uuid.UUID) ([]*entity.Asset, error) {
	rows, err := r.tx.Query(ctx, "SELECT "+assetColumns+" FROM builder.assets WHERE site_id = $1 ORDER BY created_at DESC", siteID)
	if err != nil {
		return nil, errs.FromDB("asset", err)
	}
	defer rows.Close()

	assets := []*entity.Asset{}
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, errs.FromDB("asset", rows.Err())
}

// DeleteAsset removes the row. A profile logo pointing at it is cleared by
// the foreign key.
func (r *AssetRepo) DeleteAsset(ctx context.Context, siteID, id uuid.UUID) error {
	tag, err := r.tx.Exec(ctx, "DELETE FROM builder.assets WHERE site_id = $1 AND id = $2", siteID, id)
	if err != nil {
		return errs.FromDB("asset", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFoundError{Resource: "asset"}
	}
	return nil
}

type EventRepo struct {
	tx pgx.Tx
}

func NewEventRepo(tx pgx.Tx) *EventRepo {
	return &EventRepo{tx: tx}
}

func (e *EventRepo) InsertEvent(ctx context.Context, event interfaces.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("err marshalling event payload, %v", err)
	}
	outbox := db.Outbox{
		Event:     event.GetType(),
		Status:    int(consts.NotProcessed),
		Payload:   payload,
		CreatedAt: time.Now(),
	}
	_, err = e.tx.Exec(ctx, "INSERT INTO builder.outbox (event, status, payload, created_at) VALUES ($1,$2,$3,$4)",
		outbox.Event, outbox.Status, outbox.Payload, outbox.CreatedAt)
	if err != nil {
		return fmt.Errorf("err inserting a new event, %v", err)
	}

	return nil
}
