package seed

import (
	"math/rand"
	"strings"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.PostCategory{},
		&models.Post{},
	))
	return db
}

func TestSeedPopulatesAllTables(t *testing.T) {
	db := setupSeedDB(t)

	require.NoError(t, Seed(db, Options{NumUsers: 3, NumPosts: 20, ShouldClean: true}))

	var userCount, postCount, catCount, pcCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	require.NoError(t, db.Model(&models.Category{}).Count(&catCount).Error)
	require.NoError(t, db.Model(&models.PostCategory{}).Count(&pcCount).Error)

	assert.Equal(t, int64(3), userCount)
	assert.Equal(t, int64(20), postCount)
	assert.Equal(t, int64(len(categoryNames)), catCount)
	assert.Equal(t, int64(len(postCategoryNames)), pcCount)

	// the taxonomy sets deliberately include inactive entries
	var inactiveCats, inactivePCs int64
	require.NoError(t, db.Model(&models.Category{}).Where("status = ?", false).Count(&inactiveCats).Error)
	require.NoError(t, db.Model(&models.PostCategory{}).Where("status = ?", false).Count(&inactivePCs).Error)
	assert.NotZero(t, inactiveCats)
	assert.NotZero(t, inactivePCs)

	// every slug is unique and well-formed
	var posts []models.Post
	require.NoError(t, db.Find(&posts).Error)
	seen := map[string]bool{}
	for _, p := range posts {
		assert.False(t, seen[p.Slug], "duplicate slug %q", p.Slug)
		seen[p.Slug] = true
		assert.NotEmpty(t, p.Slug)
		assert.NotZero(t, p.AuthorID)
	}
}

func TestSeedCleanRemovesPriorRows(t *testing.T) {
	db := setupSeedDB(t)

	require.NoError(t, Seed(db, Options{NumUsers: 2, NumPosts: 5, ShouldClean: false}))
	require.NoError(t, Seed(db, Options{NumUsers: 2, NumPosts: 5, ShouldClean: true}))

	var userCount, postCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	assert.Equal(t, int64(2), userCount)
	assert.Equal(t, int64(5), postCount)
}

func TestSlugFragment(t *testing.T) {
	t.Parallel()
	tests := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"What's New in Go 1.22", "whats-new-in-go-122"},
		{"  Trim Me  ", "trim-me"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slugFragment(tt.title), "title %q", tt.title)
	}

	long := slugFragment(strings.Repeat("word ", 30))
	assert.LessOrEqual(t, len(long), 60)
}

func TestRandomTagsDrawsFromPool(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(1))
	pool := map[string]bool{}
	for _, tag := range tagPool {
		pool[tag] = true
	}

	for i := 0; i < 50; i++ {
		tags := strings.Split(randomTags(r), ", ")
		require.NotEmpty(t, tags)
		assert.LessOrEqual(t, len(tags), 4)
		seen := map[string]bool{}
		for _, tag := range tags {
			assert.True(t, pool[tag], "unknown tag %q", tag)
			assert.False(t, seen[tag], "repeated tag %q", tag)
			seen[tag] = true
		}
	}
}

func TestFactoryBuildsPersistedEntities(t *testing.T) {
	db := setupSeedDB(t)
	factory := NewFactory(db)

	user, err := factory.CreateUser(func(u *models.User) { u.Email = "fixed@example.com" })
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "fixed@example.com", user.Email)

	post, err := factory.CreatePost(user, func(p *models.Post) { p.Published = false })
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	assert.Equal(t, user.ID, post.AuthorID)
	assert.False(t, post.Published)

	category, err := factory.CreateCategory()
	require.NoError(t, err)
	assert.True(t, category.Status)

	pc, err := factory.CreatePostCategory(func(p *models.PostCategory) { p.Status = false })
	require.NoError(t, err)
	assert.False(t, pc.Status)
}
