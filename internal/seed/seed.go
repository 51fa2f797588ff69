// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var (
	categoryNames = []string{
		"Engineering", "Design", "Product", "Announcements", "Tutorials",
		"Opinion", "Interviews", "Case Studies",
	}

	postCategoryNames = []string{
		"Technology", "Lifestyle", "Travel", "Food", "Science",
		"Business", "Culture", "Open Source",
	}

	tagPool = []string{
		"go", "golang", "web", "databases", "postgres", "redis", "docker",
		"kubernetes", "testing", "performance", "security", "devops",
		"frontend", "backend", "api", "career", "writing", "productivity",
	}
)

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("seeding database with %d users and %d posts", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("warning: could not clear all existing data, continuing anyway")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	categories, err := createCategories(db)
	if err != nil {
		return fmt.Errorf("failed to create categories: %w", err)
	}
	log.Printf("created %d categories", len(categories))

	postCategories, err := createPostCategories(db)
	if err != nil {
		return fmt.Errorf("failed to create post categories: %w", err)
	}
	log.Printf("created %d post categories", len(postCategories))

	posts, err := createPosts(db, users, categories, postCategories, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	return nil
}

// clearData removes all rows in FK-safe order.
func clearData(db *gorm.DB) error {
	tables := []string{"posts", "post_categories", "categories", "users"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, count int) ([]*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		user := &models.User{
			Name:     gofakeit.Name(),
			Email:    fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Password: string(hashedPassword),
		}
		if err := db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createCategories(db *gorm.DB) ([]*models.Category, error) {
	categories := make([]*models.Category, 0, len(categoryNames))
	for i, name := range categoryNames {
		category := &models.Category{
			Name:        name,
			Description: gofakeit.Sentence(8),
			// a couple of inactive entries so admin filters have data
			Status: i%5 != 4,
		}
		if err := db.Create(category).Error; err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func createPostCategories(db *gorm.DB) ([]*models.PostCategory, error) {
	postCategories := make([]*models.PostCategory, 0, len(postCategoryNames))
	for i, name := range postCategoryNames {
		postCategory := &models.PostCategory{
			Name:        name,
			Description: gofakeit.Sentence(8),
			Image:       fmt.Sprintf("https://picsum.photos/seed/%s/600/400", gofakeit.UUID()),
			Status:      i%4 != 3,
		}
		if err := db.Create(postCategory).Error; err != nil {
			return nil, err
		}
		postCategories = append(postCategories, postCategory)
	}
	return postCategories, nil
}

func createPosts(db *gorm.DB, users []*models.User, categories []*models.Category, postCategories []*models.PostCategory, count int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to assign posts to")
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[r.Intn(len(users))]
		title := strings.TrimSuffix(gofakeit.Sentence(r.Intn(6)+3), ".")

		post := &models.Post{
			Title:   title,
			Content: gofakeit.Paragraph(3, 5, 12, "\n\n"),
			Slug:    fmt.Sprintf("%s-%d", slugFragment(title), i),
			Tags:    randomTags(r),
			Image:   fmt.Sprintf("https://picsum.photos/seed/%s/800/450", gofakeit.UUID()),
			// roughly a quarter stay drafts
			Published: r.Intn(4) != 0,
			AuthorID:  author.ID,
		}
		if r.Intn(3) != 0 {
			post.CategoryID = &categories[r.Intn(len(categories))].ID
		}
		if r.Intn(3) != 0 {
			post.PostCategoryID = &postCategories[r.Intn(len(postCategories))].ID
		}

		// realistic created_at spread over the last 90 days
		daysBack := r.Intn(90)
		post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
			time.Duration(r.Intn(24))*time.Hour)

		if err := db.Create(post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func randomTags(r *rand.Rand) string {
	n := r.Intn(4) + 1
	picked := make([]string, 0, n)
	seen := map[string]bool{}
	for len(picked) < n {
		tag := tagPool[r.Intn(len(tagPool))]
		if !seen[tag] {
			seen[tag] = true
			picked = append(picked, tag)
		}
	}
	return strings.Join(picked, ", ")
}

func slugFragment(title string) string {
	fragment := strings.ToLower(title)
	fragment = strings.Map(func(c rune) rune {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			return c
		case c == ' ':
			return '-'
		default:
			return -1
		}
	}, fragment)
	if len(fragment) > 60 {
		fragment = fragment[:60]
	}
	return strings.Trim(fragment, "-")
}
