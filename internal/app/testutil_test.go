package app

import (
	"context"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"miniblog/internal/model"
	"miniblog/internal/pkg/passhash"
	"miniblog/internal/platform/rabbitmq"
	"miniblog/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql db: %v", err)
	}
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&model.User{}, &model.Post{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

type fixture struct {
	db       *gorm.DB
	users    *repository.UserRepository
	posts    *repository.PostRepository
	hasher   *passhash.Hasher
	auth     *AuthService
	identity *IdentityService
	recovery *RecoveryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	posts := repository.NewPostRepository(db)
	hasher := passhash.NewHasher(bcrypt.MinCost)
	return &fixture{
		db:       db,
		users:    users,
		posts:    posts,
		hasher:   hasher,
		auth:     NewAuthService(users, hasher),
		identity: NewIdentityService(users),
		recovery: NewRecoveryService(users, hasher),
	}
}

func (f *fixture) mustRegister(t *testing.T, input RegisterInput) *model.User {
	t.Helper()
	user, err := f.auth.Register(input)
	if err != nil {
		t.Fatalf("register %q: %v", input.Username, err)
	}
	return user
}

func aliceInput() RegisterInput {
	return RegisterInput{
		Username:    "alice",
		Email:       "alice@example.com",
		PhoneNumber: "555-0100",
		BirthDate:   "1990-01-01",
		Password:    "alice-password",
	}
}

func bobInput() RegisterInput {
	return RegisterInput{
		Username:    "bob",
		Email:       "bob@example.com",
		PhoneNumber: "555-0101",
		BirthDate:   "1985-06-15",
		Password:    "bob-password",
	}
}

type memoryCache struct {
	mu    sync.Mutex
	posts map[uint]model.Post
	sets  int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{posts: make(map[uint]model.Post)}
}

func (c *memoryCache) Get(_ context.Context, postID uint) (*model.Post, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	post, ok := c.posts[postID]
	if !ok {
		return nil, false, nil
	}
	copied := post
	return &copied, true, nil
}

func (c *memoryCache) Set(_ context.Context, post *model.Post) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.posts[post.PostID] = *post
	c.sets++
	return nil
}

func (c *memoryCache) Delete(_ context.Context, postID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.posts, postID)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []rabbitmq.ViewEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event rabbitmq.ViewEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}
