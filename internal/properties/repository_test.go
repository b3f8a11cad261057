package properties

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gharmitra/platform-backend/pkg/pagination"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Property{}, &PropertyImage{}))
	return db
}

func seedProperty(t *testing.T, repo Repository, ownerID uuid.UUID, city string, verified bool) *Property {
	p := &Property{
		ID:                 uuid.New(),
		OwnerID:            ownerID,
		Title:              "2BHK in " + city,
		PropertyType:       "APARTMENT",
		ListingType:        ListingRent,
		Price:              25000,
		City:               city,
		Status:             "ACTIVE",
		VerificationStatus: VerificationNotVerified,
	}
	if verified {
		p.VerificationStatus = VerificationVerified
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestRepositoryCreateAndGet(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ownerID := uuid.New()

	created := seedProperty(t, repo, ownerID, "Delhi", false)

	got, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, VerificationNotVerified, got.VerificationStatus)
}

func TestRepositoryGetMissing(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestRepositoryListFilters(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ownerID := uuid.New()

	seedProperty(t, repo, ownerID, "Delhi", true)
	seedProperty(t, repo, ownerID, "Delhi", false)
	seedProperty(t, repo, ownerID, "Mumbai", false)

	page := pagination.Parse("1", "10")

	list, total, err := repo.List(context.Background(), Filter{City: "Delhi", Page: page})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, list, 2)

	list, total, err = repo.List(context.Background(), Filter{City: "Delhi", VerifiedOnly: true, Page: page})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, VerificationVerified, list[0].VerificationStatus)
}

func TestRepositorySoftDelete(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	p := seedProperty(t, repo, uuid.New(), "Delhi", false)

	require.NoError(t, repo.Delete(context.Background(), p.ID))

	_, err := repo.GetByID(context.Background(), p.ID)
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestRepositoryImages(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	p := seedProperty(t, repo, uuid.New(), "Delhi", false)

	require.NoError(t, repo.AddImage(context.Background(), &PropertyImage{
		ID: uuid.New(), PropertyID: p.ID, URL: "https://cdn.example.com/a.jpg",
	}))
	require.NoError(t, repo.AddImage(context.Background(), &PropertyImage{
		ID: uuid.New(), PropertyID: p.ID, URL: "https://cdn.example.com/b.jpg", IsPrimary: true,
	}))

	images, err := repo.ListImages(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.True(t, images[0].IsPrimary)
}
