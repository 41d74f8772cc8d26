package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/CrestNiraj12/rivalsnexus/domain"
	"github.com/CrestNiraj12/rivalsnexus/infra/auth"
)

const (
	minBanMinutes = 5
	maxBanMinutes = 24 * 60
	mailTimeout   = 30 * time.Second
)

var editableFields = map[string]bool{
	"name": true, "email": true, "password": true, "bio": true,
	"favoriteCharacter": true, "mainHeroId": true, "rank": true,
	"winrate": true, "avatar": true,
}

func publicAccount(rec *domain.UserRecord) domain.Account {
	a := rec.Account
	if a.Username == "" {
		a.Username = a.Name
	}
	if a.Avatar == "" {
		a.Avatar = domain.DefaultAvatar
	}
	if a.FavoriteCharacter == "" {
		a.FavoriteCharacter = "Not set"
	}
	if a.Rank == "" {
		a.Rank = "Unranked"
	}
	if a.Role == "" {
		a.Role = domain.RoleUser
	}
	return a
}

func (s *Server) register(c *gin.Context) {
	var req domain.Registration
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, err.Error())
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = strings.TrimSpace(req.Username)
	}
	email := domain.NormalizeEmail(req.Email)
	password := strings.TrimSpace(req.Password)
	if name == "" || email == "" || password == "" {
		abortError(c, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		abortError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	role := domain.RoleUser
	if s.isAdminEmail(email) {
		role = domain.RoleAdmin
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		username = name
	}
	rec := &domain.UserRecord{
		Account: domain.Account{
			Name:              name,
			Username:          username,
			Email:             email,
			Avatar:            req.Avatar,
			FavoriteCharacter: req.FavoriteCharacter,
			MainHeroID:        req.MainHeroID,
			Role:              role,
		},
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(c.Request.Context(), rec); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			abortError(c, http.StatusConflict, "Email already registered. Please log in instead.")
			return
		}
		s.logger.Error("register failed", "err", err)
		abortError(c, http.StatusBadRequest, "Registration failed.")
		return
	}

	acct := publicAccount(rec)
	go s.sendWelcome(acct)

	c.JSON(http.StatusCreated, gin.H{"message": "User registered", "user": acct})
}

func (s *Server) sendWelcome(acct domain.Account) {
	if s.mailer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
	defer cancel()
	if err := s.mailer.SendWelcome(ctx, acct); err != nil {
		s.logger.Error("welcome mail failed", "email", acct.Email, "err", err)
	}
}

func (s *Server) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	_ = c.ShouldBindJSON(&req)
	email := domain.NormalizeEmail(req.Email)
	password := strings.TrimSpace(req.Password)
	if email == "" || password == "" {
		abortError(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	ctx := c.Request.Context()
	rec, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		abortError(c, http.StatusUnauthorized, "Account not found. Please register first or check your email address.")
		return
	}
	if err != nil {
		s.logger.Error("login lookup failed", "err", err)
		abortError(c, http.StatusInternalServerError, "Login failed. Please try again.")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)) != nil {
		abortError(c, http.StatusUnauthorized, "Incorrect password. Please check your password and try again.")
		return
	}

	now := s.now()
	if rec.BannedAt(now) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":       fmt.Sprintf("Your account has been banned. Try again in %s.", remainingText(rec.BannedUntil.Sub(now))),
			"bannedUntil": rec.BannedUntil,
		})
		return
	}

	if s.isAdminEmail(rec.Email) && rec.Role != domain.RoleAdmin {
		rec.Role = domain.RoleAdmin
		if err := s.repo.Save(ctx, rec); err != nil {
			s.logger.Error("admin promotion failed", "err", err)
		}
	}

	acct := publicAccount(rec)
	token, err := auth.IssueToken(s.cfg.JWTSecret, acct.ID, acct.Role, now)
	if err != nil {
		abortError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "user": acct, "token": token})
}

// remainingText renders a ban's remaining time in whole minutes, or whole
// hours from 60 minutes up, rounding up.
func remainingText(d time.Duration) string {
	mins := int(math.Ceil(d.Minutes()))
	if mins >= 60 {
		return fmt.Sprintf("%d hour(s)", int(math.Ceil(float64(mins)/60)))
	}
	return fmt.Sprintf("%d minute(s)", mins)
}

func (s *Server) listUsers(c *gin.Context) {
	recs, err := s.repo.List(c.Request.Context())
	if err != nil {
		s.logger.Error("list users failed", "err", err)
		abortError(c, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]domain.Account, 0, len(recs))
	for i := range recs {
		out = append(out, publicAccount(&recs[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getUser(c *gin.Context) {
	rec, ok := s.findUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, publicAccount(rec))
}

func (s *Server) updateUser(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		abortError(c, http.StatusBadRequest, "Invalid body")
		return
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		abortError(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	for k := range fields {
		if !editableFields[k] {
			abortError(c, http.StatusBadRequest, fmt.Sprintf("Field %q cannot be changed", k))
			return
		}
	}
	var patch domain.ProfilePatch
	if err := json.Unmarshal(raw, &patch); err != nil {
		abortError(c, http.StatusBadRequest, err.Error())
		return
	}

	rec, ok := s.findUser(c)
	if !ok {
		return
	}
	if err := applyPatch(rec, patch); err != nil {
		abortError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.repo.Save(c.Request.Context(), rec); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			abortError(c, http.StatusConflict, "Email already registered.")
			return
		}
		abortError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": publicAccount(rec)})
}

func applyPatch(rec *domain.UserRecord, p domain.ProfilePatch) error {
	if p.Name != nil {
		rec.Name = strings.TrimSpace(*p.Name)
		rec.Username = rec.Name
	}
	if p.Email != nil {
		email := domain.NormalizeEmail(*p.Email)
		if email == "" {
			return fmt.Errorf("email cannot be empty")
		}
		rec.Email = email
	}
	if p.Password != nil {
		pw := strings.TrimSpace(*p.Password)
		if pw == "" {
			return fmt.Errorf("password cannot be empty")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}
		rec.PasswordHash = string(hash)
	}
	if p.Bio != nil {
		rec.Bio = *p.Bio
	}
	if p.FavoriteCharacter != nil {
		rec.FavoriteCharacter = *p.FavoriteCharacter
	}
	if p.MainHeroID != nil {
		rec.MainHeroID = *p.MainHeroID
	}
	if p.Rank != nil {
		rec.Rank = *p.Rank
	}
	if p.Winrate != nil {
		rec.Winrate = *p.Winrate
	}
	if p.Avatar != nil {
		rec.Avatar = *p.Avatar
	}
	return nil
}

func (s *Server) banUser(c *gin.Context) {
	var req struct {
		Minutes *float64 `json:"minutes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Minutes == nil {
		abortError(c, http.StatusBadRequest, "minutes is required")
		return
	}
	minutes := int(math.Floor(*req.Minutes))
	if minutes < minBanMinutes || minutes > maxBanMinutes {
		abortError(c, http.StatusBadRequest, fmt.Sprintf("Ban duration must be between %d and %d minutes.", minBanMinutes, maxBanMinutes))
		return
	}

	rec, ok := s.findUser(c)
	if !ok {
		return
	}
	if rec.Role == domain.RoleAdmin {
		abortError(c, http.StatusBadRequest, "Cannot ban an admin account.")
		return
	}
	until := s.now().Add(time.Duration(minutes) * time.Minute)
	rec.BannedUntil = &until
	if err := s.repo.Save(c.Request.Context(), rec); err != nil {
		abortError(c, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Info("user banned", "id", rec.ID, "minutes", minutes)
	c.JSON(http.StatusOK, gin.H{"message": "User banned", "user": publicAccount(rec)})
}

func (s *Server) unbanUser(c *gin.Context) {
	rec, ok := s.findUser(c)
	if !ok {
		return
	}
	rec.BannedUntil = nil
	if err := s.repo.Save(c.Request.Context(), rec); err != nil {
		abortError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User unbanned", "user": publicAccount(rec)})
}

func (s *Server) deleteUser(c *gin.Context) {
	err := s.repo.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, domain.ErrNotFound) {
		abortError(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		abortError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

func (s *Server) findUser(c *gin.Context) (*domain.UserRecord, bool) {
	rec, err := s.repo.FindByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, domain.ErrNotFound) {
		abortError(c, http.StatusNotFound, "User not found")
		return nil, false
	}
	if err != nil {
		abortError(c, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return rec, true
}
