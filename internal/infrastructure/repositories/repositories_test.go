package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/you/blogsvc/domain"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&DBUser{},
		&DBOtp{},
		&DBCategory{},
		&DBType{},
		&DBTag{},
		&DBPost{},
		&DBProduct{},
		&DBProductImage{},
		&DBSetting{},
	))
	return db
}

func postInput(title string) domain.PostInput {
	return domain.PostInput{
		Title:    title,
		Content:  "summary",
		Body:     "<p>body</p>",
		Image:    "a.jpg",
		AuthorID: 1,
		Category: "tech",
		Type:     "article",
		Tags:     []string{"go", "web"},
	}
}

func TestUserRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("create assigns id and timestamps", func(t *testing.T) {
		user := &domain.User{Phone: "912345678", PasswordHash: "hash", Role: domain.RoleUser, Status: domain.StatusActive}
		require.NoError(t, repo.Create(ctx, user))

		assert.NotZero(t, user.ID)
		assert.False(t, user.CreatedAt.IsZero())

		found, err := repo.FindByPhone(ctx, "912345678")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.Equal(t, "hash", found.PasswordHash)
	})

	t.Run("unknown phone", func(t *testing.T) {
		_, err := repo.FindByPhone(ctx, "900000000")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 9999)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("update persists the failure counter and touches updated_at", func(t *testing.T) {
		user := &domain.User{Phone: "911111111", Role: domain.RoleUser, Status: domain.StatusActive}
		require.NoError(t, repo.Create(ctx, user))

		user.ErrorLoginCount = 2
		user.Status = domain.StatusFreeze
		require.NoError(t, repo.Update(ctx, user))

		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, found.ErrorLoginCount)
		assert.Equal(t, domain.StatusFreeze, found.Status)
		assert.False(t, found.UpdatedAt.IsZero())
	})

	t.Run("list pages by id ascending", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewUserRepository(db)
		for _, phone := range []string{"901", "902", "903"} {
			require.NoError(t, repo.Create(ctx, &domain.User{Phone: phone, Role: domain.RoleUser, Status: domain.StatusActive}))
		}

		users, err := repo.List(ctx, 1, 2)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "902", users[0].Phone)
		assert.Equal(t, "903", users[1].Phone)
	})
}

func TestOtpRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewOtpRepository(db)
	ctx := context.Background()

	otp := &domain.OtpRequest{Phone: "912345678", OtpHash: "hash", RememberToken: "remember", Count: 1}
	require.NoError(t, repo.Create(ctx, otp))
	assert.NotZero(t, otp.ID)

	found, err := repo.FindByPhone(ctx, "912345678")
	require.NoError(t, err)
	assert.Equal(t, "remember", found.RememberToken)
	assert.Equal(t, 1, found.Count)

	found.Count = 2
	found.VerifyToken = "verify"
	require.NoError(t, repo.Update(ctx, found))

	again, err := repo.FindByPhone(ctx, "912345678")
	require.NoError(t, err)
	assert.Equal(t, 2, again.Count)
	assert.Equal(t, "verify", again.VerifyToken)

	_, err = repo.FindByPhone(ctx, "900000000")
	assert.ErrorIs(t, err, domain.ErrOtpNotFound)
}

func TestPostRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create resolves taxonomy by name", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewPostRepository(db)

		post, err := repo.Create(ctx, postInput("first"))
		require.NoError(t, err)
		assert.NotZero(t, post.ID)

		full, err := repo.FindWithRelations(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "tech", full.Category)
		assert.Equal(t, "article", full.Type)
		assert.ElementsMatch(t, []string{"go", "web"}, full.Tags)
	})

	t.Run("repeated names create no duplicate taxonomy rows", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewPostRepository(db)

		_, err := repo.Create(ctx, postInput("first"))
		require.NoError(t, err)
		_, err = repo.Create(ctx, postInput("second"))
		require.NoError(t, err)

		var categories, types, tags int64
		require.NoError(t, db.Model(&DBCategory{}).Count(&categories).Error)
		require.NoError(t, db.Model(&DBType{}).Count(&types).Error)
		require.NoError(t, db.Model(&DBTag{}).Count(&tags).Error)
		assert.EqualValues(t, 1, categories)
		assert.EqualValues(t, 1, types)
		assert.EqualValues(t, 2, tags)
	})

	t.Run("update keeps the image when none is given and replaces tags", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewPostRepository(db)

		post, err := repo.Create(ctx, postInput("first"))
		require.NoError(t, err)

		in := postInput("renamed")
		in.Image = ""
		in.Tags = []string{"backend"}
		updated, err := repo.Update(ctx, post.ID, in)
		require.NoError(t, err)
		assert.Equal(t, "renamed", updated.Title)
		assert.Equal(t, "a.jpg", updated.Image)

		full, err := repo.FindWithRelations(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"backend"}, full.Tags)
	})

	t.Run("update replaces the image when one is given", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewPostRepository(db)

		post, err := repo.Create(ctx, postInput("first"))
		require.NoError(t, err)

		in := postInput("first")
		in.Image = "b.jpg"
		updated, err := repo.Update(ctx, post.ID, in)
		require.NoError(t, err)
		assert.Equal(t, "b.jpg", updated.Image)
	})

	t.Run("update of a missing post", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewPostRepository(db)
		_, err := repo.Update(ctx, 999, postInput("x"))
		assert.ErrorIs(t, err, domain.ErrModelNotFound)
	})

	t.Run("delete removes the row and its tag links", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewPostRepository(db)

		post, err := repo.Create(ctx, postInput("first"))
		require.NoError(t, err)
		require.NoError(t, repo.Delete(ctx, post.ID))

		_, err = repo.FindByID(ctx, post.ID)
		assert.ErrorIs(t, err, domain.ErrModelNotFound)

		var links int64
		require.NoError(t, db.Table("post_tags").Count(&links).Error)
		assert.Zero(t, links)

		assert.ErrorIs(t, repo.Delete(ctx, post.ID), domain.ErrModelNotFound)
	})

	t.Run("offset listing is newest first", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewPostRepository(db)

		base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		var ids []uint
		for i := 0; i < 3; i++ {
			post, err := repo.Create(ctx, postInput("post"))
			require.NoError(t, err)
			ids = append(ids, post.ID)
			require.NoError(t, db.Model(&DBPost{}).Where("id = ?", post.ID).
				UpdateColumn("updated_at", base.Add(time.Duration(i)*time.Hour)).Error)
		}

		rows, err := repo.ListOffset(ctx, domain.PostListOptions{Skip: 1, Take: 2})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, ids[1], rows[0].ID)
		assert.Equal(t, ids[0], rows[1].ID)
	})

	t.Run("cursor listing returns rows strictly after the cursor", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewPostRepository(db)

		var ids []uint
		for i := 0; i < 3; i++ {
			post, err := repo.Create(ctx, postInput("post"))
			require.NoError(t, err)
			ids = append(ids, post.ID)
		}

		rows, err := repo.ListCursor(ctx, domain.PostListOptions{Cursor: ids[0], Take: 5})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, ids[1], rows[0].ID)
		assert.Equal(t, ids[2], rows[1].ID)
	})
}

func productInput(name string, images ...string) domain.ProductInput {
	return domain.ProductInput{
		Name:        name,
		Description: "desc",
		Price:       100,
		Discount:    0,
		Inventory:   3,
		Category:    "clothes",
		Type:        "shirt",
		Tags:        []string{"summer"},
		ImagePaths:  images,
	}
}

func TestProductRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create stores image rows and taxonomy", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewProductRepository(db)

		product, err := repo.Create(ctx, productInput("shirt", "a.jpg", "b.jpg"))
		require.NoError(t, err)
		assert.Equal(t, domain.StatusActive, product.Status)
		require.Len(t, product.Images, 2)

		full, err := repo.FindWithRelations(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "clothes", full.Category)
		assert.Equal(t, "shirt", full.Type)
		assert.Equal(t, []string{"summer"}, full.Tags)
	})

	t.Run("update replaces image rows when new ones are given", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewProductRepository(db)

		product, err := repo.Create(ctx, productInput("shirt", "a.jpg", "b.jpg"))
		require.NoError(t, err)

		updated, err := repo.Update(ctx, product.ID, productInput("shirt", "c.jpg"))
		require.NoError(t, err)
		require.Len(t, updated.Images, 1)
		assert.Equal(t, "c.jpg", updated.Images[0].Path)

		var rows int64
		require.NoError(t, db.Model(&DBProductImage{}).Count(&rows).Error)
		assert.EqualValues(t, 1, rows)
	})

	t.Run("update keeps image rows when none are given", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewProductRepository(db)

		product, err := repo.Create(ctx, productInput("shirt", "a.jpg", "b.jpg"))
		require.NoError(t, err)

		in := productInput("renamed")
		in.Price = 80
		updated, err := repo.Update(ctx, product.ID, in)
		require.NoError(t, err)
		assert.Equal(t, "renamed", updated.Name)
		assert.Equal(t, float64(80), updated.Price)
		assert.Len(t, updated.Images, 2)
	})

	t.Run("delete removes image rows with the product", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewProductRepository(db)

		product, err := repo.Create(ctx, productInput("shirt", "a.jpg"))
		require.NoError(t, err)
		require.NoError(t, repo.Delete(ctx, product.ID))

		_, err = repo.FindByID(ctx, product.ID)
		assert.ErrorIs(t, err, domain.ErrModelNotFound)

		var rows int64
		require.NoError(t, db.Model(&DBProductImage{}).Count(&rows).Error)
		assert.Zero(t, rows)
	})

	t.Run("cursor listing is newest first with taxonomy filters", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewProductRepository(db)

		_, err := repo.Create(ctx, productInput("shirt", "a.jpg"))
		require.NoError(t, err)
		_, err = repo.Create(ctx, productInput("shirt 2", "b.jpg"))
		require.NoError(t, err)

		pants := productInput("pants", "c.jpg")
		pants.Category = "outdoor"
		created, err := repo.Create(ctx, pants)
		require.NoError(t, err)

		rows, err := repo.ListCursor(ctx, domain.ProductListOptions{Take: 5})
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "pants", rows[0].Name)
		assert.Equal(t, "c.jpg", rows[0].Image)

		rows, err = repo.ListCursor(ctx, domain.ProductListOptions{Take: 5, Cursor: created.ID})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "shirt 2", rows[0].Name)

		var outdoor DBCategory
		require.NoError(t, db.Where("name = ?", "outdoor").First(&outdoor).Error)
		rows, err = repo.ListCursor(ctx, domain.ProductListOptions{Take: 5, Categories: []uint{outdoor.ID}})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, created.ID, rows[0].ID)
	})
}

func TestSettingRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewSettingRepository(db)
	ctx := context.Background()

	_, err := repo.Get(ctx, "maintenance")
	assert.ErrorIs(t, err, domain.ErrModelNotFound)

	require.NoError(t, repo.Upsert(ctx, "maintenance", "true"))
	setting, err := repo.Get(ctx, "maintenance")
	require.NoError(t, err)
	assert.Equal(t, "true", setting.Value)

	require.NoError(t, repo.Upsert(ctx, "maintenance", "false"))
	setting, err = repo.Get(ctx, "maintenance")
	require.NoError(t, err)
	assert.Equal(t, "false", setting.Value)

	var rows int64
	require.NoError(t, db.Model(&DBSetting{}).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)
}
