package article

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lorenzcipher/association-backend/internal/models"
	"github.com/lorenzcipher/association-backend/internal/storage"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateArticle(ctx context.Context, article models.Article) (primitive.ObjectID, error) {
	args := m.Called(ctx, article)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *RepoMock) FindArticleByID(ctx context.Context, id primitive.ObjectID) (*models.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *RepoMock) ListArticles(ctx context.Context, filter models.ArticleFilter) ([]models.Article, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Article), args.Get(1).(int64), args.Error(2)
}

func (m *RepoMock) UpdateArticle(ctx context.Context, id primitive.ObjectID, update models.ArticleUpdate) (*models.Article, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *RepoMock) DeleteArticle(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func NewNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func memberIdentity() *models.Identity {
	return &models.Identity{UserID: primitive.NewObjectID(), Role: models.RoleMember, IsMember: true}
}

func adminIdentity() *models.Identity {
	return &models.Identity{UserID: primitive.NewObjectID(), Role: models.RoleAdmin}
}

func TestList_VisibilityFilters(t *testing.T) {
	tests := []struct {
		name     string
		identity *models.Identity
		want     models.ArticleFilter
	}{
		{
			name:     "anonymous sees only public published",
			identity: nil,
			want:     models.ArticleFilter{OnlyPublished: true, PublicOnly: true, Page: 1, Limit: 20},
		},
		{
			name:     "non-member sees only public published",
			identity: &models.Identity{UserID: primitive.NewObjectID(), Role: models.RoleMember},
			want:     models.ArticleFilter{OnlyPublished: true, PublicOnly: true, Page: 1, Limit: 20},
		},
		{
			name:     "member sees member-only published",
			identity: memberIdentity(),
			want:     models.ArticleFilter{OnlyPublished: true, Page: 1, Limit: 20},
		},
		{
			name:     "admin sees drafts too",
			identity: adminIdentity(),
			want:     models.ArticleFilter{Page: 1, Limit: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			svc := NewArticleService(repo, NewNoopLogger())

			repo.On("ListArticles", mock.Anything, tt.want).
				Return([]models.Article{}, int64(0), nil)

			_, _, err := svc.List(context.Background(), tt.identity, models.ArticleFilter{Page: 1, Limit: 20})
			assert.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}

func TestRead_AccessControl(t *testing.T) {
	published := &models.Article{ID: primitive.NewObjectID(), IsPublished: true}
	memberOnly := &models.Article{ID: primitive.NewObjectID(), IsPublished: true, IsMemberOnly: true}
	draft := &models.Article{ID: primitive.NewObjectID(), IsPublished: false}

	tests := []struct {
		name     string
		article  *models.Article
		identity *models.Identity
		wantErr  error
	}{
		{"anonymous reads public", published, nil, nil},
		{"anonymous blocked from member-only", memberOnly, nil, ErrMembersOnly},
		{"non-member blocked from member-only", memberOnly, &models.Identity{Role: models.RoleMember}, ErrMembersOnly},
		{"member reads member-only", memberOnly, memberIdentity(), nil},
		{"admin reads member-only", memberOnly, adminIdentity(), nil},
		{"draft hidden from member", draft, memberIdentity(), ErrArticleNotFound},
		{"admin reads draft", draft, adminIdentity(), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			svc := NewArticleService(repo, NewNoopLogger())

			repo.On("FindArticleByID", mock.Anything, tt.article.ID).Return(tt.article, nil)

			got, err := svc.Read(context.Background(), tt.identity, tt.article.ID)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				assert.Equal(t, tt.article.ID, got.ID)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestRead_NotFound(t *testing.T) {
	repo := new(RepoMock)
	svc := NewArticleService(repo, NewNoopLogger())

	id := primitive.NewObjectID()
	repo.On("FindArticleByID", mock.Anything, id).Return(nil, storage.ErrNotFound)

	_, err := svc.Read(context.Background(), adminIdentity(), id)
	assert.ErrorIs(t, err, ErrArticleNotFound)
}

func TestCreate(t *testing.T) {
	repo := new(RepoMock)
	svc := NewArticleService(repo, NewNoopLogger())

	author := primitive.NewObjectID()
	id := primitive.NewObjectID()
	created := &models.Article{ID: id, AuthorID: author, Title: "Nouvelles techniques"}

	repo.On("CreateArticle", mock.Anything, mock.MatchedBy(func(a models.Article) bool {
		return a.AuthorID == author
	})).Return(id, nil)
	repo.On("FindArticleByID", mock.Anything, id).Return(created, nil)

	got, err := svc.Create(context.Background(), author, models.Article{Title: "Nouvelles techniques"})
	assert.NoError(t, err)
	assert.Equal(t, author, got.AuthorID)
}

func TestDelete_NotFound(t *testing.T) {
	repo := new(RepoMock)
	svc := NewArticleService(repo, NewNoopLogger())

	id := primitive.NewObjectID()
	repo.On("DeleteArticle", mock.Anything, id).Return(storage.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), id), ErrArticleNotFound)
}
