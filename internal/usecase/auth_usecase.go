package usecase

import (
	"context"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"quickcart/internal/apperr"
	"quickcart/internal/domain/model"
	repo "quickcart/internal/repository"
)

// アクセストークンを発行する約束。実装はmain側（JWT）。
type TokenIssuer interface {
	Issue(user model.User, now time.Time) (string, time.Time, error)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// AuthUsecaseは会員登録とログイン。
// 登録で作られるroleは常にcustomerで、昇格できる経路はない。
type AuthUsecase struct {
	users    repo.UserRepository
	hasher   PasswordHasher
	verifier PasswordVerifier
	issuer   TokenIssuer
	clock    Clock
}

// DI
func NewAuthUsecase(
	users repo.UserRepository,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	issuer TokenIssuer,
	clock Clock,
) *AuthUsecase {
	return &AuthUsecase{
		users:    users,
		hasher:   hasher,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      model.User `json:"user"`
}

// 会員登録。roleは常にcustomer。
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (model.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)

	// 必須チェック
	if name == "" || email == "" || in.Password == "" {
		return model.User{}, apperr.Validation("name, email and password are required")
	}

	// email形式
	if _, err := mail.ParseAddress(email); err != nil {
		return model.User{}, apperr.Validation("invalid email")
	}

	// パスワード最低文字数
	if len(in.Password) < 8 {
		return model.User{}, apperr.Validation("password too short")
	}

	// email重複チェック
	existing, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return model.User{}, apperr.Internal()
	}
	if existing != nil {
		return model.User{}, apperr.Conflict("email already used")
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, apperr.Internal()
	}

	user := model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         model.RoleCustomer,
		CreatedAt:    u.clock.Now(),
	}

	// UNIQUE(email)があるので同時登録の競合はここで落ちる
	if err := u.users.Create(ctx, &user); err != nil {
		return model.User{}, apperr.Conflict("email already used")
	}

	return user, nil
}

// ログイン。成功でアクセストークンを返す。
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return LoginOutput{}, apperr.Validation("email and password are required")
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return LoginOutput{}, apperr.Internal()
	}

	// ユーザー不在とパスワード不一致は同じメッセージにする
	if user == nil || !u.verifier.Verify(user.PasswordHash, in.Password) {
		return LoginOutput{}, apperr.New(http.StatusUnauthorized, apperr.KindUnauthorized, "invalid email or password")
	}

	token, expiresAt, err := u.issuer.Issue(*user, u.clock.Now())
	if err != nil {
		return LoginOutput{}, apperr.Internal()
	}

	return LoginOutput{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      *user,
	}, nil
}
