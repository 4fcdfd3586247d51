package auth

import (
	"log/slog"
	"strconv"
	"strings"
)

// Service is the auth service with its dependencies.
type Service struct {
	repo           RepositoryAPI
	tokenGenerator TokenGeneratorAPI
	bcryptCost     int
	logger         *slog.Logger
}

func NewService(repo RepositoryAPI, tokenGen TokenGeneratorAPI, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:           repo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

// Authenticate validates credentials and returns an identity assertion.
// Unknown username and wrong password produce the same error.
func (s *Service) Authenticate(dto LoginDTO) (*LoginResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	account, err := s.repo.GetByUsername(dto.Username)
	if err != nil {
		s.logger.Warn("login lookup failed", "username", dto.Username)
		return nil, ErrInvalidCredentials
	}

	if err := VerifyPassword(account.PasswordHash, dto.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokenGenerator.GenerateToken(strconv.FormatInt(account.ID, 10), account.Username)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token: token,
		User:  account.ToView(),
	}, nil
}

// Register hashes the password and persists a new account. A username
// or email collision with any existing account fails with
// ErrAlreadyExists; the unique indexes close the remaining race.
func (s *Service) Register(dto RegisterDTO) (*Account, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	email := strings.ToLower(dto.Email)
	exists, err := s.repo.ExistsByUsernameOrEmail(dto.Username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyExists
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	sno, err := s.repo.NextSequenceNumber()
	if err != nil {
		return nil, err
	}

	account := &Account{
		Sno:          sno,
		Username:     dto.Username,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.repo.Create(account); err != nil {
		return nil, err
	}

	s.logger.Info("account registered", "username", account.Username, "sno", account.Sno)
	return account, nil
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// GetAccount resolves the claims back to a stored account, confirming
// the token still matches a real user.
func (s *Service) GetAccount(claims *Claims) (*Account, error) {
	account, err := s.repo.GetByUsername(claims.Username)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if strconv.FormatInt(account.ID, 10) != claims.UserID {
		return nil, ErrInvalidToken
	}
	return account, nil
}
