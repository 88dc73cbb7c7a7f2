package document

import "github.com/buildline/buildline/internal/domain"

type Repository interface {
	domain.TrackedRepository[Document]
}
