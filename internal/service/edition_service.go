// internal/service/edition_service.go
package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/apperrors"
	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/model"
	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/repository"
	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/storage"
)

type EditionService struct {
	EditionRepo repository.EditionRepositoryInterface
	Store       storage.ObjectStore
	Log         *zap.SugaredLogger
}

func (s *EditionService) List() ([]model.Edition, error) {
	return s.EditionRepo.List()
}

func (s *EditionService) Create(titulo string, descripcion, fecha *string) (*model.Edition, error) {
	if strings.TrimSpace(titulo) == "" {
		return nil, apperrors.NewValidation("El título es requerido")
	}

	e := &model.Edition{
		Titulo:      titulo,
		Descripcion: descripcion,
		Fecha:       fecha,
	}
	if err := s.EditionRepo.Create(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes the edition row and cleans up its stored page images and
// cover. Object cleanup is best effort: an unreachable bucket must not leave
// the edition itself behind.
func (s *EditionService) Delete(ctx context.Context, id string) error {
	edition, err := s.EditionRepo.GetByID(id)
	if err != nil {
		return err
	}

	keys, err := s.EditionRepo.PageImageKeys(id)
	if err != nil {
		return err
	}
	if edition.CoverURL != nil && *edition.CoverURL != "" {
		keys = append(keys, *edition.CoverURL)
	}

	if len(keys) > 0 {
		if err := s.Store.Delete(ctx, keys...); err != nil {
			s.Log.Warnw("failed to delete edition objects", "edition_id", id, "error", err)
		}
	}

	return s.EditionRepo.Delete(id)
}

// UploadPage stores the image and registers the page. Re-uploading an
// existing page number replaces the image reference (upsert), so a page
// appears exactly once per number.
func (s *EditionService) UploadPage(ctx context.Context, editionID string, numero int, isCover bool, contentType string, file io.Reader, size int64) (string, error) {
	if numero < 1 {
		return "", apperrors.NewValidation("Número de página no válido")
	}

	if _, err := s.EditionRepo.GetByID(editionID); err != nil {
		return "", err
	}

	key := fmt.Sprintf("editions/%s/%d_%d.webp", editionID, numero, time.Now().UnixMilli())
	if err := s.Store.Put(ctx, key, contentType, file, size); err != nil {
		return "", err
	}

	if isCover {
		if err := s.EditionRepo.SetCover(editionID, key); err != nil {
			return "", err
		}
	}

	if err := s.EditionRepo.UpsertPage(&model.Page{
		EdicionID: editionID,
		Numero:    numero,
		ImagenURL: key,
	}); err != nil {
		return "", err
	}

	return key, nil
}

func (s *EditionService) ListPages(editionID string) ([]model.Page, error) {
	if _, err := s.EditionRepo.GetByID(editionID); err != nil {
		return nil, err
	}
	return s.EditionRepo.ListPages(editionID)
}
