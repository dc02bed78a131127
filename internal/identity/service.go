package identity

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/VitaminP8/blogery/internal/auth"
	"github.com/VitaminP8/blogery/internal/metrics"
	"github.com/VitaminP8/blogery/internal/session"
	"github.com/VitaminP8/blogery/internal/user"
	"github.com/VitaminP8/blogery/models"
)

const DefaultSessionTTL = 72 * time.Hour

// sessionClaims - содержимое токена; ID (jti) указывает на серверную запись сессии
type sessionClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// Service регистрирует и аутентифицирует пользователей и ведет их сессии.
// Токен подписан секретом, но действителен только пока жива запись сессии в хранилище,
// поэтому EndSession отзывает его сразу.
type Service struct {
	users    user.UserStorage
	sessions session.SessionStorage
	hasher   PasswordHasher
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

func NewService(users user.UserStorage, sessions session.SessionStorage, hasher PasswordHasher, secret []byte, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Service{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		secret:   secret,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Register создает пользователя и сразу открывает для него сессию
func (s *Service) Register(name, email, password string) (token string, u *models.User, err error) {
	defer func() { metrics.Observe(metrics.AuthAttempts, "register", err) }()

	_, err = s.users.GetUserByEmail(email)
	if err == nil {
		return "", nil, fmt.Errorf("register %s: %w", email, models.ErrDuplicateEmail)
	}
	if !errors.Is(err, models.ErrNotFound) {
		return "", nil, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return "", nil, err
	}

	// хранилище само отклонит email, занятый между проверкой и вставкой
	u, err = s.users.CreateUser(name, email, hashed)
	if err != nil {
		return "", nil, err
	}

	token, err = s.startSession(u)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *Service) Authenticate(email, password string) (token string, u *models.User, err error) {
	defer func() { metrics.Observe(metrics.AuthAttempts, "login", err) }()

	u, err = s.users.GetUserByEmail(email)
	if errors.Is(err, models.ErrNotFound) {
		return "", nil, fmt.Errorf("login %s: %w", email, models.ErrNoSuchAccount)
	}
	if err != nil {
		return "", nil, err
	}

	if err = s.hasher.Compare(u.Password, password); err != nil {
		return "", nil, err
	}

	token, err = s.startSession(u)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// CurrentActor возвращает (nil, nil) для невалидного, просроченного или отозванного токена
func (s *Service) CurrentActor(token string) (*auth.Actor, error) {
	claims, err := s.parse(token, true)
	if err != nil {
		return nil, nil
	}

	sess, err := s.sessions.GetSession(claims.ID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if sess.UserID != claims.UserID {
		return nil, nil
	}

	u, err := s.users.GetUserById(sess.UserID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &auth.Actor{ID: u.ID, Name: u.Name, Email: u.Email}, nil
}

// EndSession идемпотентна: пустой, чужой или уже отозванный токен - не ошибка
func (s *Service) EndSession(token string) (err error) {
	if token == "" {
		return nil
	}

	// срок действия не проверяем: просроченную сессию тоже нужно удалить
	claims, err := s.parse(token, false)
	if err != nil {
		return nil
	}

	defer func() { metrics.Observe(metrics.AuthAttempts, "logout", err) }()
	return s.sessions.DeleteSession(claims.ID)
}

func (s *Service) startSession(u *models.User) (string, error) {
	sess, err := s.sessions.CreateSession(u.ID, s.ttl)
	if err != nil {
		return "", err
	}

	claims := sessionClaims{
		UserID: u.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			Subject:   strconv.FormatUint(uint64(u.ID), 10),
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (s *Service) parse(tokenString string, validate bool) (*sessionClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if !validate {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	claims := &sessionClaims{}
	token, err := jwt.NewParser(opts...).ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.ID == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
