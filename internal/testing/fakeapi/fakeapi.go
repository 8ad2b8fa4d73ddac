package fakeapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/forumhq/forumctl/internal/model"
)

var signingKey = []byte("fakeapi-signing-key")

// account pairs a user with its password, kept server-side only.
type account struct {
	user     model.User
	password string
}

// Server is an in-memory forum backend for tests. It speaks the same
// contract as the real API: bearer-token auth, paginated posts and
// comments, multipart upload, and the accessToken response field.
type Server struct {
	t    *testing.T
	http *httptest.Server

	mu       sync.Mutex
	nextID   int64
	accounts map[string]*account // by username
	forums   []model.Forum
	posts    []model.Post
	comments []*model.Comment

	// LegacyTokenField makes auth responses use "token" instead of
	// "accessToken", mimicking older backend builds.
	LegacyTokenField bool

	// Requests counts every request received, by method and path pattern.
	Requests map[string]int
}

// New starts a fake backend and registers its shutdown with t.Cleanup.
func New(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{
		t:        t,
		accounts: make(map[string]*account),
		Requests: make(map[string]int),
	}

	engine := gin.New()
	api := engine.Group("/api")
	api.Use(s.count)

	api.POST("/auth/login", s.login)
	api.POST("/auth/register", s.register)
	api.POST("/auth/logout", s.logout)

	authed := api.Group("")
	authed.Use(s.requireAuth)
	authed.GET("/auth/me", s.currentUser)
	authed.PUT("/users/me", s.updateProfile)
	authed.GET("/forums", s.listForums)
	authed.GET("/forums/:id", s.getForum)
	authed.POST("/forums", s.createForum)
	authed.GET("/posts", s.listPosts)
	authed.GET("/posts/:id", s.getPost)
	authed.POST("/posts", s.createPost)
	authed.PUT("/posts/:id", s.updatePost)
	authed.DELETE("/posts/:id", s.deletePost)
	authed.GET("/comments", s.listComments)
	authed.POST("/comments", s.createComment)
	authed.PUT("/comments/:id", s.updateComment)
	authed.DELETE("/comments/:id", s.deleteComment)
	authed.POST("/upload", s.upload)

	s.http = httptest.NewServer(engine)
	t.Cleanup(s.http.Close)
	return s
}

// URL returns the base URL clients should point at, /api prefix included.
func (s *Server) URL() string {
	return s.http.URL + "/api"
}

func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

// ============================================================================
// Seeding
// ============================================================================

// SeedUser registers an account directly, bypassing the register endpoint.
func (s *Server) SeedUser(username, password string) *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC().Truncate(time.Second)
	acct := &account{
		user: model.User{
			ID:          s.id(),
			Username:    username,
			Email:       username + "@example.com",
			DisplayName: username,
			Role:        "USER",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		password: password,
	}
	s.accounts[username] = acct
	return &acct.user
}

// SeedForum creates a forum owned by creator.
func (s *Server) SeedForum(name, description string, creator *model.User) *model.Forum {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC().Truncate(time.Second)
	forum := model.Forum{
		ID:          s.id(),
		Name:        name,
		Description: description,
		CreatedBy:   creator,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.forums = append(s.forums, forum)
	return &s.forums[len(s.forums)-1]
}

// SeedPost creates a post inside forum.
func (s *Server) SeedPost(forum *model.Forum, author *model.User, title, content string) *model.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC().Truncate(time.Second)
	post := model.Post{
		ID:        s.id(),
		Title:     title,
		Content:   content,
		Author:    author,
		Forum:     forum,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.posts = append(s.posts, post)
	return &s.posts[len(s.posts)-1]
}

// SeedComment creates a root comment on a post.
func (s *Server) SeedComment(post *model.Post, author *model.User, content string) *model.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC().Truncate(time.Second)
	comment := &model.Comment{
		ID:        s.id(),
		Content:   content,
		Author:    author,
		PostID:    post.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.comments = append(s.comments, comment)
	return comment
}

// IssueToken mints a signed token for user, as login would.
func (s *Server) IssueToken(user *model.User) string {
	return s.issueToken(user)
}

func (s *Server) issueToken(user *model.User) string {
	claims := jwt.MapClaims{
		"sub":      strconv.FormatInt(user.ID, 10),
		"username": user.Username,
		"exp":      time.Now().Add(time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		s.t.Fatalf("fakeapi: signing token: %v", err)
	}
	return token
}

// ============================================================================
// Middleware
// ============================================================================

func (s *Server) count(c *gin.Context) {
	s.mu.Lock()
	s.Requests[c.Request.Method+" "+c.FullPath()]++
	s.mu.Unlock()
	c.Next()
}

func (s *Server) requireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
		return
	}

	parsed, err := jwt.Parse(parts[1], func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return signingKey, nil
	})
	if err != nil || !parsed.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
		return
	}

	claims := parsed.Claims.(jwt.MapClaims)
	username, _ := claims["username"].(string)
	s.mu.Lock()
	acct, ok := s.accounts[username]
	s.mu.Unlock()
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unknown account"})
		return
	}
	c.Set("user", &acct.user)
	c.Next()
}

func currentUserFrom(c *gin.Context) *model.User {
	u, _ := c.Get("user")
	return u.(*model.User)
}

// ============================================================================
// Auth handlers
// ============================================================================

func (s *Server) authResponse(user *model.User) gin.H {
	resp := gin.H{
		"id":          user.ID,
		"username":    user.Username,
		"email":       user.Email,
		"displayName": user.DisplayName,
		"role":        user.Role,
	}
	if s.LegacyTokenField {
		resp["token"] = s.issueToken(user)
	} else {
		resp["accessToken"] = s.issueToken(user)
	}
	return resp
}

func (s *Server) login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "malformed login request"})
		return
	}

	s.mu.Lock()
	acct, ok := s.accounts[req.Username]
	s.mu.Unlock()
	if !ok || acct.password != req.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "bad credentials"})
		return
	}
	c.JSON(http.StatusOK, s.authResponse(&acct.user))
}

func (s *Server) register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "malformed register request"})
		return
	}

	s.mu.Lock()
	if _, exists := s.accounts[req.Username]; exists {
		s.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"message": "username already taken"})
		return
	}
	now := time.Now().UTC().Truncate(time.Second)
	acct := &account{
		user: model.User{
			ID:          s.id(),
			Username:    req.Username,
			Email:       req.Email,
			DisplayName: req.DisplayName,
			Role:        "USER",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		password: req.Password,
	}
	s.accounts[req.Username] = acct
	s.mu.Unlock()

	c.JSON(http.StatusOK, s.authResponse(&acct.user))
}

func (s *Server) logout(c *gin.Context) {
	c.Status(http.StatusOK)
}

func (s *Server) currentUser(c *gin.Context) {
	c.JSON(http.StatusOK, currentUserFrom(c))
}

func (s *Server) updateProfile(c *gin.Context) {
	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "malformed profile update"})
		return
	}

	user := currentUserFrom(c)
	s.mu.Lock()
	if req.DisplayName != "" {
		user.DisplayName = req.DisplayName
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	user.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	s.mu.Unlock()

	c.JSON(http.StatusOK, user)
}

// ============================================================================
// Forum handlers
// ============================================================================

func (s *Server) listForums(c *gin.Context) {
	s.mu.Lock()
	forums := make([]model.Forum, len(s.forums))
	copy(forums, s.forums)
	s.mu.Unlock()

	sort.Slice(forums, func(i, j int) bool {
		if !forums[i].CreatedAt.Equal(forums[j].CreatedAt) {
			return forums[i].CreatedAt.After(forums[j].CreatedAt)
		}
		return forums[i].ID > forums[j].ID
	})
	c.JSON(http.StatusOK, forums)
}

func (s *Server) getForum(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.forums {
		if s.forums[i].ID == id {
			c.JSON(http.StatusOK, s.forums[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "forum not found"})
}

func (s *Server) createForum(c *gin.Context) {
	var req model.CreateForumRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "forum name is required"})
		return
	}

	user := currentUserFrom(c)
	s.mu.Lock()
	now := time.Now().UTC().Truncate(time.Second)
	forum := model.Forum{
		ID:          s.id(),
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   user,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.forums = append(s.forums, forum)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, forum)
}

// ============================================================================
// Post handlers
// ============================================================================

// paginate slices items into the requested zero-based page.
func paginate[T any](items []T, page, size int) model.PageResponse[T] {
	if size <= 0 {
		size = model.DefaultPageSize
	}
	if page < 0 {
		page = 0
	}
	total := len(items)
	totalPages := (total + size - 1) / size
	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return model.PageResponse[T]{
		Content:       append([]T{}, items[start:end]...),
		TotalElements: int64(total),
		TotalPages:    totalPages,
		Size:          size,
		Number:        page,
		First:         page == 0,
		Last:          page >= totalPages-1,
	}
}

func (s *Server) listPosts(c *gin.Context) {
	forumID, _ := strconv.ParseInt(c.Query("forumId"), 10, 64)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	s.mu.Lock()
	var matched []model.Post
	for _, p := range s.posts {
		if p.Forum != nil && p.Forum.ID == forumID {
			matched = append(matched, p)
		}
	}
	s.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	if matched == nil {
		matched = []model.Post{}
	}
	c.JSON(http.StatusOK, paginate(matched, page, size))
}

func (s *Server) getPost(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			c.JSON(http.StatusOK, s.posts[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "post not found"})
}

func (s *Server) createPost(c *gin.Context) {
	var req model.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "title is required"})
		return
	}

	s.mu.Lock()
	var forum *model.Forum
	for i := range s.forums {
		if s.forums[i].ID == req.ForumID {
			forum = &s.forums[i]
			break
		}
	}
	if forum == nil {
		s.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"message": "forum not found"})
		return
	}
	now := time.Now().UTC().Truncate(time.Second)
	post := model.Post{
		ID:        s.id(),
		Title:     req.Title,
		Content:   req.Content,
		Author:    currentUserFrom(c),
		Forum:     forum,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.posts = append(s.posts, post)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, post)
}

func (s *Server) updatePost(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	var req model.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "malformed post update"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			if req.Title != nil {
				s.posts[i].Title = *req.Title
			}
			if req.Content != nil {
				s.posts[i].Content = *req.Content
			}
			s.posts[i].UpdatedAt = time.Now().UTC().Truncate(time.Second)
			c.JSON(http.StatusOK, s.posts[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "post not found"})
}

func (s *Server) deletePost(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			c.JSON(http.StatusOK, true)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "post not found"})
}

// ============================================================================
// Comment handlers
// ============================================================================

func (s *Server) listComments(c *gin.Context) {
	postID, _ := strconv.ParseInt(c.Query("postId"), 10, 64)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	s.mu.Lock()
	var roots []*model.Comment
	for _, cm := range s.comments {
		if cm.PostID == postID && cm.ParentCommentID == nil {
			roots = append(roots, cm)
		}
	}
	s.mu.Unlock()

	if roots == nil {
		roots = []*model.Comment{}
	}
	c.JSON(http.StatusOK, paginate(roots, page, size))
}

func (s *Server) createComment(c *gin.Context) {
	var req model.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "comment content is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC().Truncate(time.Second)
	comment := &model.Comment{
		ID:              s.id(),
		Content:         req.Content,
		Author:          currentUserFrom(c),
		PostID:          req.PostID,
		ParentCommentID: req.ParentCommentID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if req.ParentCommentID != nil {
		parent := s.findComment(*req.ParentCommentID)
		if parent == nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "parent comment not found"})
			return
		}
		parent.Replies = append(parent.Replies, comment)
	}
	s.comments = append(s.comments, comment)

	c.JSON(http.StatusCreated, comment)
}

func (s *Server) findComment(id int64) *model.Comment {
	for _, cm := range s.comments {
		if cm.ID == id {
			return cm
		}
	}
	return nil
}

func (s *Server) updateComment(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	var req model.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "malformed comment update"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cm := s.findComment(id); cm != nil {
		cm.Content = req.Content
		cm.UpdatedAt = time.Now().UTC().Truncate(time.Second)
		c.JSON(http.StatusOK, cm)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "comment not found"})
}

func (s *Server) deleteComment(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cm := range s.comments {
		if cm.ID == id {
			s.comments = append(s.comments[:i], s.comments[i+1:]...)
			c.JSON(http.StatusOK, true)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "comment not found"})
}

// ============================================================================
// Upload handler
// ============================================================================

func (s *Server) upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "file part is required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":      s.http.URL + "/files/" + file.Filename,
		"filename": file.Filename,
		"size":     file.Size,
	})
}
