package resumes

import "context"

// Repo maps the résumé aggregate onto one parent record and three child
// record collections. Save assigns identities to the résumé and to any
// child element that lacks one, writing them back onto the passed value
// so callers always hold usable ids afterwards. Children dropped from a
// list since the last save are deleted from storage, not orphaned.
type Repo interface {
	Save(ctx context.Context, resume *Resume) error
	GetByID(ctx context.Context, id string) (Resume, error)
	GetByUserID(ctx context.Context, userID string) ([]Resume, error)
	Delete(ctx context.Context, id string) (bool, error)
}
