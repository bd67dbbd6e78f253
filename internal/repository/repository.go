// Package repository declares the storage interfaces the service layer
// depends on. Implementations live in sub-packages (see repository/sqlite).
package repository

import (
	"context"

	"github.com/sakif/articles/internal/model"
)

// ArticleRepository persists articles.
//
// Absence is not an error here: Find returns (nil, nil) for a missing id,
// and Update/Delete report how many rows they touched (0 when the id does
// not exist). Turning those into domain errors is the caller's job.
type ArticleRepository interface {
	List(ctx context.Context) ([]model.Article, error)
	Find(ctx context.Context, id int64) (*model.Article, error)
	Create(ctx context.Context, partial model.PartialArticle) (int64, error)
	Update(ctx context.Context, id int64, partial model.PartialArticle) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Ping(ctx context.Context) error
}
