// internal/model/edition.go
package model

import "time"

// Edition is one published issue of the magazine. Field names follow the
// public API (Spanish), same as the frontend expects.
type Edition struct {
	ID          string    `db:"id" json:"id"`
	Titulo      string    `db:"titulo" json:"titulo"`
	Descripcion *string   `db:"descripcion" json:"descripcion,omitempty"`
	CoverURL    *string   `db:"cover_url" json:"cover_url,omitempty"`
	Fecha       *string   `db:"fecha" json:"fecha,omitempty"`
	Publicada   bool      `db:"publicada" json:"publicada"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Page is a single scanned page of an edition. (edicion_id, numero) is unique;
// re-uploading a page number replaces the stored image reference.
type Page struct {
	ID        string    `db:"id" json:"id"`
	EdicionID string    `db:"edicion_id" json:"edicion_id"`
	Numero    int       `db:"numero" json:"numero"`
	ImagenURL string    `db:"imagen_url" json:"imagen_url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
