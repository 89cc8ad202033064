package testbackend

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/bft-labs/distclient/internal/domain"
)

func (s *Server) login(c *gin.Context) {
	var req domain.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, "invalid payload")
		return
	}

	s.mu.Lock()
	acct, ok := s.accounts[req.Email]
	s.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(acct.hash, []byte(req.Password)) != nil {
		detail(c, http.StatusUnauthorized, "Incorrect email or password")
		return
	}
	if !acct.active {
		detail(c, http.StatusForbidden, "Inactive user")
		return
	}

	c.JSON(http.StatusOK, domain.Token{
		AccessToken: s.IssueToken(req.Email, TokenTTL),
		TokenType:   "bearer",
	})
}

func (s *Server) me(c *gin.Context) {
	s.mu.Lock()
	acct, ok := s.accounts[c.GetString("email")]
	s.mu.Unlock()
	if !ok {
		detail(c, http.StatusNotFound, "User not found")
		return
	}
	c.JSON(http.StatusOK, acct.user)
}

func (s *Server) logout(c *gin.Context) {
	s.mu.Lock()
	s.revoked[c.GetString("token")] = true
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

func (s *Server) getDashboard(c *gin.Context) {
	period := c.DefaultQuery("period", "7d")
	switch period {
	case "7d", "3m", "1y":
	case "custom":
		if c.Query("start_date") == "" || c.Query("end_date") == "" {
			detail(c, http.StatusBadRequest, "Start and end dates are required for custom period")
			return
		}
	default:
		detail(c, http.StatusBadRequest, "Invalid period")
		return
	}

	s.mu.Lock()
	d := s.dashboard
	s.mu.Unlock()
	if d.RecentOperations == nil {
		d.RecentOperations = []domain.Operation{}
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) listPartners(c *gin.Context) {
	page, limit, ok := pageParams(c, "limit")
	if !ok {
		return
	}

	s.mu.Lock()
	all := s.partners
	s.mu.Unlock()

	var hits []domain.Partner
	for _, p := range all {
		if matches(p.Company, c.Query("company")) &&
			matches(p.MOL, c.Query("mol")) &&
			matches(p.Phone, c.Query("phone")) &&
			matches(p.TaxNo, c.Query("tax_no")) {
			hits = append(hits, p)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"page":          page,
		"limit":         limit,
		"total_records": len(hits),
		"partners":      window(hits, (page-1)*limit, limit),
	})
}

func (s *Server) listProducts(c *gin.Context) {
	page, size, ok := pageParams(c, "page_size")
	if !ok {
		return
	}

	s.mu.Lock()
	all := s.products
	s.mu.Unlock()

	var hits []domain.Product
	for _, p := range all {
		if matches(p.Name, c.Query("name")) &&
			matches(p.Code, c.Query("code")) &&
			matches(p.Barcode, c.Query("bar_code")) {
			hits = append(hits, p)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"page":          page,
		"page_size":     size,
		"total_records": len(hits),
		"products":      window(hits, (page-1)*size, size),
	})
}

func (s *Server) listOperations(c *gin.Context) {
	page, limit, ok := pageParams(c, "limit")
	if !ok {
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", strconv.Itoa((page-1)*limit)))
	if err != nil || offset < 0 {
		detail(c, http.StatusUnprocessableEntity, "offset must be a non-negative integer")
		return
	}

	start, err := queryDate(c, "start_date")
	if err != nil {
		detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	end, err := queryDate(c, "end_date")
	if err != nil {
		detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.mu.Lock()
	all := s.operations
	s.mu.Unlock()

	var hits []domain.Operation
	for _, o := range all {
		if !matches(o.PartnerName, c.Query("partner_name")) ||
			!matches(o.GoodName, c.Query("good_name")) ||
			!matches(o.Name, c.Query("oper_name")) {
			continue
		}
		day := o.Date.Time.Truncate(24 * time.Hour)
		if !start.IsZero() && day.Before(start) {
			continue
		}
		if !end.IsZero() && day.After(end) {
			continue
		}
		hits = append(hits, o)
	}

	c.JSON(http.StatusOK, gin.H{
		"page":          page,
		"limit":         limit,
		"total_records": len(hits),
		"operations":    window(hits, offset, limit),
	})
}

func (s *Server) getOperation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		detail(c, http.StatusUnprocessableEntity, "id must be an integer")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.operations {
		if o.ID == id {
			c.JSON(http.StatusOK, o)
			return
		}
	}
	detail(c, http.StatusNotFound, "Operation not found")
}

func pageParams(c *gin.Context, sizeKey string) (page, size int, ok bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		detail(c, http.StatusUnprocessableEntity, "page must be >= 1")
		return 0, 0, false
	}
	size, err = strconv.Atoi(c.DefaultQuery(sizeKey, strconv.Itoa(domain.DefaultLimit)))
	if err != nil || size < 1 || size > domain.MaxLimit {
		detail(c, http.StatusUnprocessableEntity, sizeKey+" must be between 1 and 100")
		return 0, 0, false
	}
	return page, size, true
}

func queryDate(c *gin.Context, key string) (time.Time, error) {
	v := c.Query(key)
	if v == "" {
		return time.Time{}, nil
	}
	return time.Parse(domain.DateLayout, v)
}

func matches(field, filter string) bool {
	return filter == "" || strings.Contains(strings.ToLower(field), strings.ToLower(filter))
}

func window[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := min(offset+limit, len(items))
	return items[offset:end]
}
