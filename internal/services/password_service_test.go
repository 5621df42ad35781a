package services

import (
	"strings"
	"testing"

	"fintrack-api/internal/config"

	"github.com/stretchr/testify/suite"
)

// PasswordServiceTestSuite defines the test suite for PasswordService
type PasswordServiceTestSuite struct {
	suite.Suite
	service PasswordServiceInterface
}

// SetupTest runs before each test
func (s *PasswordServiceTestSuite) SetupTest() {
	s.service = NewPasswordService(&config.SecurityConfig{
		// Minimum cost keeps the bcrypt-heavy tests fast
		BCryptCost:        4,
		PasswordMinLength: 8,
	})
}

// TestPasswordServiceSuite runs the test suite
func TestPasswordServiceSuite(t *testing.T) {
	suite.Run(t, new(PasswordServiceTestSuite))
}

func (s *PasswordServiceTestSuite) TestValidatePassword_ValidPassword() {
	s.NoError(s.service.ValidatePassword("secret123"))
}

func (s *PasswordServiceTestSuite) TestValidatePassword_TooShort() {
	err := s.service.ValidatePassword("abc1")
	s.Error(err)
	s.Contains(err.Error(), "password must be at least 8 characters")
}

func (s *PasswordServiceTestSuite) TestValidatePassword_TooLong() {
	err := s.service.ValidatePassword(strings.Repeat("a", 70) + "123")
	s.ErrorIs(err, ErrPasswordTooLong)
}

func (s *PasswordServiceTestSuite) TestValidatePassword_MissingLetter() {
	err := s.service.ValidatePassword("12345678")
	s.ErrorIs(err, ErrPasswordNoLetter)
}

func (s *PasswordServiceTestSuite) TestValidatePassword_MissingNumber() {
	err := s.service.ValidatePassword("abcdefgh")
	s.ErrorIs(err, ErrPasswordNoNumber)
}

func (s *PasswordServiceTestSuite) TestValidatePassword_Empty() {
	s.ErrorIs(s.service.ValidatePassword(""), ErrPasswordEmpty)
}

func (s *PasswordServiceTestSuite) TestHashAndComparePassword() {
	hash, err := s.service.HashPassword("secret123")
	s.Require().NoError(err)
	s.NotEqual("secret123", hash)

	s.True(s.service.ComparePassword("secret123", hash))
	s.False(s.service.ComparePassword("secret124", hash))
}

func (s *PasswordServiceTestSuite) TestHashPassword_RejectsInvalid() {
	_, err := s.service.HashPassword("short")
	s.Error(err)
	s.Contains(err.Error(), "password validation failed")
}

func (s *PasswordServiceTestSuite) TestHashPassword_UniqueSalts() {
	first, err := s.service.HashPassword("secret123")
	s.Require().NoError(err)
	second, err := s.service.HashPassword("secret123")
	s.Require().NoError(err)

	s.NotEqual(first, second)
}
