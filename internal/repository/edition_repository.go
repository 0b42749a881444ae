// internal/repository/edition_repository.go
package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/apperrors"
	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/model"
)

type EditionRepositoryInterface interface {
	List() ([]model.Edition, error)
	GetByID(id string) (*model.Edition, error)
	Create(e *model.Edition) error
	Delete(id string) error
	SetCover(id, key string) error
	UpsertPage(p *model.Page) error
	ListPages(editionID string) ([]model.Page, error)
	PageImageKeys(editionID string) ([]string, error)
}

type EditionRepository struct {
	DB *sql.DB
}

func (r *EditionRepository) List() ([]model.Edition, error) {
	query := `
        SELECT id, titulo, descripcion, cover_url, fecha, publicada, created_at, updated_at
        FROM ediciones ORDER BY fecha DESC NULLS LAST, created_at DESC
    `
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	editions := []model.Edition{}
	for rows.Next() {
		var e model.Edition
		if err := rows.Scan(&e.ID, &e.Titulo, &e.Descripcion, &e.CoverURL, &e.Fecha, &e.Publicada, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		editions = append(editions, e)
	}
	return editions, rows.Err()
}

func (r *EditionRepository) GetByID(id string) (*model.Edition, error) {
	query := `
        SELECT id, titulo, descripcion, cover_url, fecha, publicada, created_at, updated_at
        FROM ediciones WHERE id=$1
    `
	var e model.Edition
	err := r.DB.QueryRow(query, id).Scan(&e.ID, &e.Titulo, &e.Descripcion, &e.CoverURL, &e.Fecha, &e.Publicada, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NewNotFound("edition", id)
		}
		return nil, err
	}
	return &e, nil
}

func (r *EditionRepository) Create(e *model.Edition) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	query := `
        INSERT INTO ediciones (id, titulo, descripcion, fecha, publicada, created_at, updated_at)
        VALUES ($1, $2, $3, $4, FALSE, $5, $6)
    `
	_, err := r.DB.Exec(query, e.ID, e.Titulo, e.Descripcion, e.Fecha, e.CreatedAt, e.UpdatedAt)
	return err
}

// Delete removes the edition row; paginas go with it via ON DELETE CASCADE.
func (r *EditionRepository) Delete(id string) error {
	_, err := r.DB.Exec(`DELETE FROM ediciones WHERE id=$1`, id)
	return err
}

func (r *EditionRepository) SetCover(id, key string) error {
	query := `UPDATE ediciones SET cover_url=$1, updated_at=$2 WHERE id=$3`
	_, err := r.DB.Exec(query, key, time.Now().UTC(), id)
	return err
}

// UpsertPage inserts the page row, or replaces the stored image reference when
// the page number already exists for the edition.
func (r *EditionRepository) UpsertPage(p *model.Page) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	query := `
        INSERT INTO paginas (id, edicion_id, numero, imagen_url, created_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (edicion_id, numero) DO UPDATE SET imagen_url = EXCLUDED.imagen_url
    `
	_, err := r.DB.Exec(query, p.ID, p.EdicionID, p.Numero, p.ImagenURL, p.CreatedAt)
	return err
}

func (r *EditionRepository) ListPages(editionID string) ([]model.Page, error) {
	query := `
        SELECT id, edicion_id, numero, imagen_url, created_at
        FROM paginas WHERE edicion_id=$1 ORDER BY numero ASC
    `
	rows, err := r.DB.Query(query, editionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pages := []model.Page{}
	for rows.Next() {
		var p model.Page
		if err := rows.Scan(&p.ID, &p.EdicionID, &p.Numero, &p.ImagenURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

func (r *EditionRepository) PageImageKeys(editionID string) ([]string, error) {
	rows, err := r.DB.Query(`SELECT imagen_url FROM paginas WHERE edicion_id=$1`, editionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

var _ EditionRepositoryInterface = (*EditionRepository)(nil)
