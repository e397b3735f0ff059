package repository

import "context"

// Entity is anything a list screen can manage: it only needs a stable id.
type Entity interface {
	EntityID() int64
}

// Repository is the CRUD surface an entity list controller drives. P is the
// payload the form produces; T is the authoritative entity the store returns.
type Repository[T Entity, P any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, payload P) (T, error)
	Update(ctx context.Context, id int64, payload P) (T, error)
	Delete(ctx context.Context, id int64) error
}

// TokenSource yields the current session's bearer token.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource fixed at construction time.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }
