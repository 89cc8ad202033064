// Package testbackend runs an in-process fake of the distribution backend
// for end-to-end tests of the client.
package testbackend

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/bft-labs/distclient/internal/domain"
)

// TokenTTL is the lifetime of issued tokens.
const TokenTTL = time.Hour

// Request is one request as received by the fake.
type Request struct {
	Method        string
	Path          string
	Query         url.Values
	Authorization string
	RequestID     string
}

type account struct {
	hash   []byte
	active bool
	user   domain.User
}

type failure struct {
	status int
	detail string
}

// Server is a fake backend. Fixtures may be replaced at any time.
type Server struct {
	*httptest.Server

	secret []byte

	mu         sync.Mutex
	accounts   map[string]account
	revoked    map[string]bool
	failures   map[string]failure
	requests   []Request
	partners   []domain.Partner
	products   []domain.Product
	operations []domain.Operation
	dashboard  domain.DashboardSummary
}

// New starts a fake backend. Call Close when done.
func New() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		secret:   []byte("testbackend-secret"),
		accounts: make(map[string]account),
		revoked:  make(map[string]bool),
		failures: make(map[string]failure),
	}

	r := gin.New()
	r.Use(s.record(), s.injectFailures())

	auth := r.Group("/auth")
	auth.POST("/login/json", s.login)
	auth.GET("/me", s.requireAuth(), s.me)
	auth.POST("/logout", s.requireAuth(), s.logout)

	mi := r.Group("/microinvest", s.requireAuth())
	mi.GET("/dashboard", s.getDashboard)
	mi.GET("/partners", s.listPartners)
	mi.GET("/products", s.listProducts)
	mi.GET("/operations", s.listOperations)
	mi.GET("/operations/:id", s.getOperation)

	s.Server = httptest.NewServer(r)
	return s
}

// AddUser registers an account. Inactive accounts are refused with 403.
func (s *Server) AddUser(email, password string, active bool) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := len(s.accounts) + 1
	s.accounts[email] = account{
		hash:   hash,
		active: active,
		user: domain.User{
			ID:       id,
			Username: strings.SplitN(email, "@", 2)[0],
			Email:    email,
			IsActive: active,
		},
	}
}

// SetPartners replaces the partner fixture.
func (s *Server) SetPartners(p []domain.Partner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.partners = p
}

// SetProducts replaces the product fixture.
func (s *Server) SetProducts(p []domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = p
}

// SetOperations replaces the operation fixture.
func (s *Server) SetOperations(o []domain.Operation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.operations = o
}

// SetDashboard replaces the dashboard fixture.
func (s *Server) SetDashboard(d domain.DashboardSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dashboard = d
}

// FailPath makes every request to path answer status with detail until
// cleared with status 0.
func (s *Server) FailPath(path string, status int, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, path)
		return
	}
	s.failures[path] = failure{status: status, detail: detail}
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// RequestsTo returns the requests received for path.
func (s *Server) RequestsTo(path string) []Request {
	var out []Request
	for _, r := range s.Requests() {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// IssueToken signs a token for email that expires after ttl.
func (s *Server) IssueToken(email string, ttl time.Duration) string {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": email,
		"exp": time.Now().Add(ttl).Unix(),
	}).SignedString(s.secret)
	if err != nil {
		panic(err)
	}
	return tok
}

func (s *Server) record() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        c.Request.Method,
			Path:          c.Request.URL.Path,
			Query:         c.Request.URL.Query(),
			Authorization: c.GetHeader("Authorization"),
			RequestID:     c.GetHeader("X-Request-ID"),
		})
		s.mu.Unlock()
		c.Next()
	}
}

func (s *Server) injectFailures() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		f, ok := s.failures[c.Request.URL.Path]
		s.mu.Unlock()
		if ok {
			c.AbortWithStatusJSON(f.status, gin.H{"detail": f.detail})
			return
		}
		c.Next()
	}
}

func detail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": msg})
}

func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || raw == "" {
			detail(c, http.StatusUnauthorized, "Not authenticated")
			return
		}

		s.mu.Lock()
		revoked := s.revoked[raw]
		s.mu.Unlock()
		if revoked {
			detail(c, http.StatusUnauthorized, "Token has been revoked")
			return
		}

		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) { return s.secret, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !tok.Valid {
			detail(c, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		sub, _ := tok.Claims.GetSubject()
		c.Set("email", sub)
		c.Set("token", raw)
		c.Next()
	}
}
