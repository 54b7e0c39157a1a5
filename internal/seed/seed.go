// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"skillswap/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the login password for every seeded account.
const DefaultPassword = "password123"

// Options configuration for the seeder
type Options struct {
	NumUsers        int
	MaxPostsPerUser int
	ShouldClean     bool
}

var skillPool = []string{
	"guitar", "piano", "cooking", "baking", "photography", "drawing",
	"spanish", "french", "japanese", "yoga", "chess", "juggling",
	"woodworking", "knitting", "gardening", "surfing", "climbing",
	"public speaking", "video editing", "3d printing",
}

// Seeder creates demo accounts and posts.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
}

func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded rows. Posts go first to satisfy the foreign key.
func (s *Seeder) ClearAll() error {
	if err := s.db.Unscoped().Where("1 = 1").Delete(&models.Post{}).Error; err != nil {
		return fmt.Errorf("clear posts: %w", err)
	}
	if err := s.db.Unscoped().Where("1 = 1").Delete(&models.User{}).Error; err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	return nil
}

// Run seeds opts.NumUsers accounts, each with a random number of posts up to
// opts.MaxPostsPerUser. All accounts share DefaultPassword. With ShouldClean
// set, existing rows are removed first.
func (s *Seeder) Run(opts Options) ([]models.User, error) {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 20
	}
	if opts.MaxPostsPerUser < 0 {
		opts.MaxPostsPerUser = 0
	}

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return nil, err
		}
	}

	// One hash shared by every account; hashing per user makes large seeds slow.
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	users := make([]models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user := s.buildUser(string(hash))
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("create seed user %q: %w", user.Username, err)
		}

		for p := 0; p < s.rand.Intn(opts.MaxPostsPerUser+1); p++ {
			post := s.buildPost(user.ID)
			if err := s.db.Create(&post).Error; err != nil {
				return nil, fmt.Errorf("create seed post for %q: %w", user.Username, err)
			}
		}
		users = append(users, user)
	}

	log.Printf("seeded %d users (password %q)", len(users), DefaultPassword)
	return users, nil
}

func (s *Seeder) buildUser(passwordHash string) models.User {
	skills := make([]string, 0, 3)
	for _, idx := range s.rand.Perm(len(skillPool))[:1+s.rand.Intn(3)] {
		skills = append(skills, skillPool[idx])
	}

	return models.User{
		FullName:   gofakeit.Name(),
		Username:   fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		Email:      gofakeit.Email(),
		Mobile:     gofakeit.Phone(),
		Password:   passwordHash,
		Bio:        gofakeit.Sentence(10),
		ProfilePic: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Skills:     skills,
		Swaps:      s.rand.Intn(20),
		Points:     s.rand.Intn(500),
		Rating:     s.rand.Intn(6),
	}
}

func (s *Seeder) buildPost(userID uint) models.Post {
	daysBack := s.rand.Intn(90)
	return models.Post{
		UserID:    userID,
		ImageURL:  fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
		CreatedAt: time.Now().Add(-time.Duration(daysBack) * 24 * time.Hour),
	}
}
