package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/erp-comercial/internal/application/dto"
	"github.com/jhoicas/erp-comercial/internal/application/ports"
	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/jhoicas/erp-comercial/internal/domain/repository"
	"github.com/jhoicas/erp-comercial/pkg/jwt"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// InviteTTL validade do link de convite.
const InviteTTL = 7 * 24 * time.Hour

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login e gestão de usuários e cargos atribuídos.
type AuthUseCase struct {
	userRepo     repository.UserRepository
	positionRepo repository.PositionRepository
	inviter      ports.UserInviter
	jwtCfg       JWTConfig
	cost         int
	log          zerolog.Logger
}

// NewAuthUseCase constrói o caso de uso de auth. Sem WithInviter os convites
// por e-mail ficam desligados.
func NewAuthUseCase(userRepo repository.UserRepository, positionRepo repository.PositionRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		positionRepo: positionRepo,
		jwtCfg:       jwtCfg,
		cost:         bcrypt.DefaultCost,
		log:          zerolog.Nop(),
	}
}

// WithInviter liga o envio de convites pela fila.
func (uc *AuthUseCase) WithInviter(inviter ports.UserInviter, log zerolog.Logger) *AuthUseCase {
	uc.inviter = inviter
	uc.log = log
	return uc
}

// WithBcryptCost troca o custo do bcrypt (testes usam bcrypt.MinCost).
func (uc *AuthUseCase) WithBcryptCost(cost int) *AuthUseCase {
	uc.cost = cost
	return uc
}

// Login confere email e senha e emite o JWT. Email inexistente e senha errada
// devolvem o mesmo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: email ou senha inválidos", domain.ErrUnauthorized)
	}
	// Convite pendente: sem senha não há login.
	if !user.HasPassword() {
		return nil, fmt.Errorf("%w: email ou senha inválidos", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, fmt.Errorf("%w: email ou senha inválidos", domain.ErrUnauthorized)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: usuário inativo", domain.ErrForbidden)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		User:      toUserResponse(user),
	}, nil
}

// CreateUser cadastra um usuário ativo. Com senha, grava o bcrypt; sem senha,
// o usuário fica com convite pendente e o e-mail de convite é agendado. Falha
// ao agendar não desfaz o cadastro: o admin pode reenviar com SendInvite.
func (uc *AuthUseCase) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !validRole(in.Role) {
		return nil, fmt.Errorf("%w: papel inválido", domain.ErrInvalidInput)
	}
	var hash string
	if in.Password != "" {
		h, err := uc.hashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		hash = h
	}
	position, err := uc.findPosition(ctx, in.CargoID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: hash,
		Role:         in.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if user.Name == "" {
		user.Name = user.Email
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	if position != nil {
		if err := uc.userRepo.SetPosition(ctx, user.ID, position.ID); err != nil {
			return nil, err
		}
		user.PositionID, user.PositionName = position.ID, position.Name
	}
	if !user.HasPassword() {
		if err := uc.enqueueInvite(ctx, user); err != nil {
			uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("convite não agendado")
		}
	}
	out := toUserResponse(user)
	return &out, nil
}

// UpdateUser edita nome, email, papel, status e cargo. Campos vazios ficam como estão.
func (uc *AuthUseCase) UpdateUser(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: usuário não encontrado", domain.ErrNotFound)
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		if len([]rune(name)) < 2 {
			return nil, fmt.Errorf("%w: nome deve ter ao menos 2 caracteres", domain.ErrInvalidInput)
		}
		user.Name = name
	}
	if email := strings.ToLower(strings.TrimSpace(in.Email)); email != "" {
		user.Email = email
	}
	if in.Role != "" {
		if !validRole(in.Role) {
			return nil, fmt.Errorf("%w: papel inválido", domain.ErrInvalidInput)
		}
		user.Role = in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.CargoID != nil {
		if _, err := uc.findPosition(ctx, *in.CargoID); err != nil {
			return nil, err
		}
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if in.CargoID != nil {
		if err := uc.userRepo.SetPosition(ctx, user.ID, *in.CargoID); err != nil {
			return nil, err
		}
	}
	return uc.getUser(ctx, user.ID)
}

// SendInvite (re)agenda o convite de um usuário que ainda não definiu senha.
func (uc *AuthUseCase) SendInvite(ctx context.Context, id string) error {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: usuário não encontrado", domain.ErrNotFound)
	}
	if user.HasPassword() {
		return fmt.Errorf("%w: usuário já definiu a senha", domain.ErrInvalidState)
	}
	if !user.IsActive {
		return fmt.Errorf("%w: usuário inativo", domain.ErrInvalidState)
	}
	return uc.enqueueInvite(ctx, user)
}

// AcceptInvite define a senha do usuário convidado. O convite vale uma vez:
// depois que a senha existe, o mesmo token é recusado.
func (uc *AuthUseCase) AcceptInvite(ctx context.Context, in dto.AcceptInviteRequest) (*dto.UserResponse, error) {
	claims, err := jwt.ParseInvite(uc.jwtCfg.Secret, in.Token)
	if err != nil {
		return nil, fmt.Errorf("%w: convite inválido ou expirado", domain.ErrUnauthorized)
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: convite inválido ou expirado", domain.ErrUnauthorized)
	}
	if user.HasPassword() {
		return nil, fmt.Errorf("%w: convite já utilizado", domain.ErrInvalidState)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: usuário inativo", domain.ErrForbidden)
	}
	hash, err := uc.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	out := toUserResponse(user)
	return &out, nil
}

func (uc *AuthUseCase) enqueueInvite(ctx context.Context, user *entity.User) error {
	if uc.inviter == nil {
		return ports.ErrJobsDisabled
	}
	token, err := jwt.GenerateInvite(uc.jwtCfg.Secret, user.ID, uc.jwtCfg.Issuer, InviteTTL)
	if err != nil {
		return err
	}
	return uc.inviter.EnqueueUserInvite(ctx, ports.UserInvite{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Token:  token,
	})
}

func (uc *AuthUseCase) hashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", fmt.Errorf("%w: a senha deve ter ao menos 8 caracteres", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// findPosition devolve nil para id vazio e ErrNotFound para cargo inexistente.
func (uc *AuthUseCase) findPosition(ctx context.Context, id string) (*entity.Position, error) {
	if id == "" {
		return nil, nil
	}
	p, err := uc.positionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: cargo não encontrado", domain.ErrNotFound)
	}
	return p, nil
}

func (uc *AuthUseCase) getUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: usuário não encontrado", domain.ErrNotFound)
	}
	out := toUserResponse(user)
	return &out, nil
}

func validRole(role string) bool {
	switch role {
	case entity.RoleAdmin, entity.RoleStockClerk, entity.RoleSeller:
		return true
	}
	return false
}

// EnsureAdmin cria o administrador inicial se o email ainda não existir.
// Devolve true quando criou.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	existing, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	if password == "" {
		return false, fmt.Errorf("%w: senha do administrador é obrigatória", domain.ErrInvalidInput)
	}
	_, err = uc.CreateUser(ctx, dto.CreateUserRequest{Name: name, Email: email, Password: password, Role: entity.RoleAdmin})
	return err == nil, err
}

// ListUsers lista todos os usuários.
func (uc *AuthUseCase) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out, nil
}

// SetActive ativa ou desativa um usuário. Tokens já emitidos deixam de valer
// porque o middleware confere IsActive a cada requisição.
func (uc *AuthUseCase) SetActive(ctx context.Context, id string, active bool) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: usuário não encontrado", domain.ErrNotFound)
	}
	user.IsActive = active
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	out := toUserResponse(user)
	return &out, nil
}

// CheckActive confirma que o usuário do token existe e está ativo.
func (uc *AuthUseCase) CheckActive(ctx context.Context, userID string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: usuário não encontrado", domain.ErrUnauthorized)
	}
	if !user.IsActive {
		return fmt.Errorf("%w: usuário inativo", domain.ErrForbidden)
	}
	return nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		IsActive:      u.IsActive,
		PendingInvite: !u.HasPassword(),
		CargoID:       u.PositionID,
		CargoName:     u.PositionName,
	}
}
