package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Abdullah-Baher/social-app-back/models"
)

// MemoryUserStore is an in-memory UserStore used in tests and local runs
// without a database. Mutations take the lock and re-read the record before
// applying the idempotent set operation.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[primitive.ObjectID]models.User)}
}

func (s *MemoryUserStore) Get(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return cloneUser(user), nil
}

func (s *MemoryUserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *MemoryUserStore) Insert(ctx context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return ErrDuplicate
		}
	}
	s.users[user.ID] = cloneUser(user)
	return nil
}

func (s *MemoryUserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *MemoryUserStore) All(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, cloneUser(user))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func (s *MemoryUserStore) ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var users []models.User
	for _, id := range ids {
		if user, ok := s.users[id]; ok {
			users = append(users, cloneUser(user))
		}
	}
	return users, nil
}

func (s *MemoryUserStore) SearchByName(ctx context.Context, fragment string, limit int64) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fragment = strings.ToLower(fragment)
	var users []models.User
	for _, user := range s.users {
		if int64(len(users)) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(user.Name), fragment) {
			users = append(users, cloneUser(user))
		}
	}
	return users, nil
}

func (s *MemoryUserStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, name, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	if email != "" {
		for uid, existing := range s.users {
			if uid != id && existing.Email == email {
				return ErrDuplicate
			}
		}
		user.Email = email
	}
	if name != "" {
		user.Name = name
	}
	s.users[id] = user
	return nil
}

func (s *MemoryUserStore) SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	user.Password = hash
	s.users[id] = user
	return nil
}

func (s *MemoryUserStore) AddFollowing(ctx context.Context, id, target primitive.ObjectID) error {
	return s.mutate(id, func(u *models.User) { u.Following = addID(u.Following, target) })
}

func (s *MemoryUserStore) RemoveFollowing(ctx context.Context, id, target primitive.ObjectID) error {
	return s.mutate(id, func(u *models.User) { u.Following = removeID(u.Following, target) })
}

func (s *MemoryUserStore) AddFollower(ctx context.Context, id, follower primitive.ObjectID) error {
	return s.mutate(id, func(u *models.User) { u.FollowedBy = addID(u.FollowedBy, follower) })
}

func (s *MemoryUserStore) RemoveFollower(ctx context.Context, id, follower primitive.ObjectID) error {
	return s.mutate(id, func(u *models.User) { u.FollowedBy = removeID(u.FollowedBy, follower) })
}

func (s *MemoryUserStore) mutate(id primitive.ObjectID, fn func(*models.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	fn(&user)
	s.users[id] = user
	return nil
}

// MemoryPostStore is an in-memory PostStore for tests.
type MemoryPostStore struct {
	mu    sync.RWMutex
	posts map[primitive.ObjectID]models.Post
}

func NewMemoryPostStore() *MemoryPostStore {
	return &MemoryPostStore{posts: make(map[primitive.ObjectID]models.Post)}
}

func (s *MemoryPostStore) Get(ctx context.Context, id primitive.ObjectID) (models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	post, ok := s.posts[id]
	if !ok {
		return models.Post{}, ErrNotFound
	}
	return clonePost(post), nil
}

func (s *MemoryPostStore) Insert(ctx context.Context, post models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[post.ID] = clonePost(post)
	return nil
}

func (s *MemoryPostStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *MemoryPostStore) UpdateText(ctx context.Context, id primitive.ObjectID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return ErrNotFound
	}
	post.Text = text
	s.posts[id] = post
	return nil
}

func (s *MemoryPostStore) All(ctx context.Context) ([]models.Post, error) {
	return s.filter(func(models.Post) bool { return true }), nil
}

func (s *MemoryPostStore) ByCreator(ctx context.Context, creator primitive.ObjectID) ([]models.Post, error) {
	return s.filter(func(p models.Post) bool { return p.CreatedBy == creator }), nil
}

func (s *MemoryPostStore) ByCreators(ctx context.Context, creators []primitive.ObjectID) ([]models.Post, error) {
	return s.filter(func(p models.Post) bool { return models.ContainsID(creators, p.CreatedBy) }), nil
}

func (s *MemoryPostStore) DeleteByCreator(ctx context.Context, creator primitive.ObjectID) ([]models.Post, error) {
	deleted := s.filter(func(p models.Post) bool { return p.CreatedBy == creator })
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, post := range deleted {
		delete(s.posts, post.ID)
	}
	return deleted, nil
}

func (s *MemoryPostStore) AddLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	return s.mutate(postID, func(p *models.Post) { p.LikedBy = addID(p.LikedBy, userID) })
}

func (s *MemoryPostStore) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	return s.mutate(postID, func(p *models.Post) { p.LikedBy = removeID(p.LikedBy, userID) })
}

func (s *MemoryPostStore) mutate(id primitive.ObjectID, fn func(*models.Post)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return ErrNotFound
	}
	fn(&post)
	s.posts[id] = post
	return nil
}

func (s *MemoryPostStore) filter(keep func(models.Post) bool) []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var posts []models.Post
	for _, post := range s.posts {
		if keep(post) {
			posts = append(posts, clonePost(post))
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts
}

func cloneUser(u models.User) models.User {
	u.Following = append([]primitive.ObjectID(nil), u.Following...)
	u.FollowedBy = append([]primitive.ObjectID(nil), u.FollowedBy...)
	return u
}

func clonePost(p models.Post) models.Post {
	p.LikedBy = append([]primitive.ObjectID(nil), p.LikedBy...)
	return p
}

func addID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	if models.ContainsID(ids, id) {
		return ids
	}
	return append(ids, id)
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
