package file

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"time"

	"github.com/Builder-Lawyers/site-builder/internal/application/errs"
	"github.com/Builder-Lawyers/site-builder/internal/application/sites"
	"github.com/Builder-Lawyers/site-builder/internal/domain/entity"
	"github.com/Builder-Lawyers/site-builder/internal/infra/auth"
	"github.com/Builder-Lawyers/site-builder/internal/infra/db/repo"
	"github.com/Builder-Lawyers/site-builder/internal/infra/metrics"
	"github.com/Builder-Lawyers/site-builder/internal/infra/storage"
	dbs "github.com/Builder-Lawyers/site-builder/pkg/db"
	"github.com/google/uuid"
)

type UploadFile struct {
	uowFactory *dbs.UOWFactory
	storage    *storage.Storage
	cfg        UploadConfig
}

func NewUploadFile(factory *dbs.UOWFactory, storage *storage.Storage, cfg UploadConfig) *UploadFile {
	return &UploadFile{uowFactory: factory, storage: storage, cfg: cfg}
}

func (c *UploadFile) Execute(ctx context.Context, siteID uuid.UUID, fileHeader *multipart.FileHeader, identity *auth.Identity) (_ *entity.Asset, _ string, err error) {
	if fileHeader.Size > c.cfg.MaxBytes {
		return nil, "", errs.Invalidf("file is larger than %d bytes", c.cfg.MaxBytes)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, "", fmt.Errorf("err opening file, %v", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, c.cfg.MaxBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("err reading file, %v", err)
	}
	if int64(len(data)) > c.cfg.MaxBytes {
		return nil, "", errs.Invalidf("file is larger than %d bytes", c.cfg.MaxBytes)
	}
	if len(data) == 0 {
		return nil, "", errs.Invalidf("file is empty")
	}
	mimeType, ok := sniffType(data[:min(len(data), 512)], fileHeader.Filename)
	if !ok {
		return nil, "", errs.ValidationError{
			Err:     fmt.Errorf("file type %s is not allowed", mimeType),
			Details: []string{"file: allowed types are png, jpeg, webp, gif, svg and pdf"},
		}
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin(ctx)
	if err != nil {
		return nil, "", err
	}
	defer uow.Finalize(&err)

	site, err := sites.Owned(ctx, tx, siteID, identity)
	if err != nil {
		return nil, "", err
	}

	asset := &entity.Asset{
		ID:        uuid.New(),
		SiteID:    site.ID,
		MimeType:  mimeType,
		Size:      int64(len(data)),
		CreatedAt: time.Now(),
	}
	asset.Path = sites.AssetKey(site.ID, asset.ID, allowedTypes[mimeType])

	url, err := c.storage.UploadFile(ctx, asset.Path, &mimeType, bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("err uploading to s3, %v", err)
	}

	if err = repo.NewAssetRepo(tx).InsertAsset(ctx, asset); err != nil {
		if delErr := c.storage.DeleteFile(ctx, asset.Path); delErr != nil {
			slog.Error("err removing orphaned upload", "key", asset.Path, "err", delErr)
		}
		return nil, "", err
	}

	metrics.AssetsUploadedTotal.WithLabelValues(mimeType).Inc()
	slog.Info("asset uploaded", "siteID", site.ID, "assetID", asset.ID, "mimeType", mimeType, "size", asset.Size)
	return asset, url, nil
}

type DeleteFile struct {
	uowFactory *dbs.UOWFactory
	storage    *storage.Storage
}

func NewDeleteFile(factory *dbs.UOWFactory, storage *storage.Storage) *DeleteFile {
	return &DeleteFile{uowFactory: factory, storage: storage}
}

// Execute removes the asset row and its object. A profile logo pointing at
// the asset is cleared by the database.
func (c *DeleteFile) Execute(ctx context.Context, siteID, assetID uuid.UUID, identity *auth.Identity) (err error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Finalize(&err)

	site, err := sites.Owned(ctx, tx, siteID, identity)
	if err != nil {
		return err
	}

	assetRepo := repo.NewAssetRepo(tx)
	asset, err := assetRepo.GetAsset(ctx, site.ID, assetID)
	if err != nil {
		return err
	}
	if err = assetRepo.DeleteAsset(ctx, site.ID, asset.ID); err != nil {
		return err
	}
	if err = c.storage.DeleteFile(ctx, asset.Path); err != nil {
		return fmt.Errorf("err deleting %s from s3, %w", asset.Path, err)
	}
	if err = sites.RefreshSnapshot(ctx, tx, site); err != nil {
		return err
	}

	slog.Info("asset deleted", "siteID", site.ID, "assetID", asset.ID)
	return nil
}
