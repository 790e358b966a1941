package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/you/blogsvc/domain"
)

// Daily budgets for one phone: OTP requests and wrong-code/wrong-token
// attempts. Both reset when the local calendar date rolls over.
const (
	maxDailyRequests = 3
	maxDailyErrors   = 5
)

// OtpServiceImpl implements domain.OtpService: the request → verify →
// confirm state machine for registration, and its password-reset twin.
type OtpServiceImpl struct {
	userRepo      domain.UserRepository
	otpRepo       domain.OtpRepository
	hasher        domain.PasswordHasher
	tokenSvc      domain.TokenService
	sms           domain.SmsSender
	verifyWindow  time.Duration
	confirmWindow time.Duration
}

// OtpConfig holds the expiry windows for the two token-gated steps.
type OtpConfig struct {
	VerifyWindow  time.Duration
	ConfirmWindow time.Duration
}

// NewOtpService creates a new OTP service.
func NewOtpService(
	userRepo domain.UserRepository,
	otpRepo domain.OtpRepository,
	hasher domain.PasswordHasher,
	tokenSvc domain.TokenService,
	sms domain.SmsSender,
	config OtpConfig,
) domain.OtpService {
	return &OtpServiceImpl{
		userRepo:      userRepo,
		otpRepo:       otpRepo,
		hasher:        hasher,
		tokenSvc:      tokenSvc,
		sms:           sms,
		verifyWindow:  config.VerifyWindow,
		confirmWindow: config.ConfirmWindow,
	}
}

// RequestOtp implements domain.OtpService. The phone is normalized, checked
// against existing users, and the daily request budget is enforced before a
// fresh code and remember token are stored.
func (s *OtpServiceImpl) RequestOtp(ctx context.Context, phone string) (*domain.OtpResult, error) {
	phone = NormalizePhone(phone)

	if err := s.ensureNotRegistered(ctx, phone); err != nil {
		return nil, err
	}

	return s.startOtpCycle(ctx, phone)
}

// VerifyOtp implements domain.OtpService.
func (s *OtpServiceImpl) VerifyOtp(ctx context.Context, phone, code, rememberToken string) (*domain.OtpResult, error) {
	if err := s.ensureNotRegistered(ctx, phone); err != nil {
		return nil, err
	}
	return s.verifyCode(ctx, phone, code, rememberToken)
}

// ConfirmPassword implements domain.OtpService. On success the user row is
// created and a token pair minted; re-running the step fails because the
// phone is registered now.
func (s *OtpServiceImpl) ConfirmPassword(ctx context.Context, phone, password, verifyToken string) (*domain.AuthResult, error) {
	if err := s.ensureNotRegistered(ctx, phone); err != nil {
		return nil, err
	}

	if _, err := s.checkConfirmStep(ctx, phone, verifyToken); err != nil {
		return nil, err
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Phone:        phone,
		PasswordHash: passwordHash,
		Role:         domain.RoleUser,
		Status:       domain.StatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return issueTokens(ctx, s.userRepo, s.tokenSvc, user)
}

// ForgetPassword implements domain.OtpService: the same request step with
// the existence check inverted, since only a registered phone can reset.
func (s *OtpServiceImpl) ForgetPassword(ctx context.Context, phone string) (*domain.OtpResult, error) {
	phone = NormalizePhone(phone)

	if _, err := s.userRepo.FindByPhone(ctx, phone); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrNotRegistered
		}
		return nil, err
	}

	return s.startOtpCycle(ctx, phone)
}

// VerifyResetOtp implements domain.OtpService.
func (s *OtpServiceImpl) VerifyResetOtp(ctx context.Context, phone, code, rememberToken string) (*domain.OtpResult, error) {
	if _, err := s.userRepo.FindByPhone(ctx, phone); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrNotRegistered
		}
		return nil, err
	}
	return s.verifyCode(ctx, phone, code, rememberToken)
}

// ResetPassword implements domain.OtpService. The stored password hash is
// replaced and a fresh token pair issued, which also revokes every existing
// session for the account.
func (s *OtpServiceImpl) ResetPassword(ctx context.Context, phone, password, verifyToken string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrNotRegistered
		}
		return nil, err
	}

	otp, err := s.checkConfirmStep(ctx, phone, verifyToken)
	if err != nil {
		return nil, err
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// The verify token is single use: clearing it makes a replay of this
	// step fail the token check. Registration gets the same property from
	// the now-existing user row.
	otp.VerifyToken = ""
	if err := s.otpRepo.Update(ctx, otp); err != nil {
		return nil, err
	}

	user.PasswordHash = passwordHash
	user.ErrorLoginCount = 0
	user.Status = domain.StatusActive

	return issueTokens(ctx, s.userRepo, s.tokenSvc, user)
}

// startOtpCycle generates and stores a hashed code plus remember token,
// enforcing the daily budgets on an existing row.
func (s *OtpServiceImpl) startOtpCycle(ctx context.Context, phone string) (*domain.OtpResult, error) {
	code, err := generateOtp()
	if err != nil {
		return nil, err
	}
	otpHash, err := s.hasher.Hash(code)
	if err != nil {
		return nil, fmt.Errorf("failed to hash otp: %w", err)
	}
	token := generateToken()

	otp, err := s.otpRepo.FindByPhone(ctx, phone)
	switch {
	case errors.Is(err, domain.ErrOtpNotFound):
		otp = &domain.OtpRequest{
			Phone:         phone,
			OtpHash:       otpHash,
			RememberToken: token,
			Count:         1,
		}
		if err := s.otpRepo.Create(ctx, otp); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		sameDate := sameCalendarDate(otp.UpdatedAt, time.Now())
		if sameDate && otp.Error == maxDailyErrors {
			return nil, domain.ErrOtpLocked
		}
		if !sameDate {
			otp.Count = 1
			otp.Error = 0
		} else if otp.Count == maxDailyRequests {
			return nil, domain.ErrOtpRequestLimit
		} else {
			otp.Count++
		}
		otp.OtpHash = otpHash
		otp.RememberToken = token
		if err := s.otpRepo.Update(ctx, otp); err != nil {
			return nil, err
		}
	}

	if err := s.sms.Send(phone, fmt.Sprintf("Your verification code is %s", code)); err != nil {
		return nil, fmt.Errorf("failed to send otp: %w", err)
	}

	return &domain.OtpResult{Phone: phone, Token: token}, nil
}

// verifyCode checks the remember token and code against the stored row.
// A wrong token exhausts the day's error budget immediately; a wrong code
// costs one attempt.
func (s *OtpServiceImpl) verifyCode(ctx context.Context, phone, code, rememberToken string) (*domain.OtpResult, error) {
	otp, err := s.otpRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sameDate := sameCalendarDate(otp.UpdatedAt, now)
	if sameDate && otp.Error == maxDailyErrors {
		return nil, domain.ErrOtpLocked
	}

	if otp.RememberToken != rememberToken {
		otp.Error = maxDailyErrors
		if err := s.otpRepo.Update(ctx, otp); err != nil {
			return nil, err
		}
		return nil, domain.ErrInvalidToken
	}

	if now.Sub(otp.UpdatedAt) > s.verifyWindow {
		return nil, domain.ErrOtpExpired
	}

	if !s.hasher.Verify(otp.OtpHash, code) {
		if !sameDate {
			otp.Error = 1
		} else {
			otp.Error++
		}
		if err := s.otpRepo.Update(ctx, otp); err != nil {
			return nil, err
		}
		return nil, domain.ErrInvalidOtp
	}

	otp.VerifyToken = generateToken()
	otp.Error = 0
	otp.Count = 1
	if err := s.otpRepo.Update(ctx, otp); err != nil {
		return nil, err
	}

	return &domain.OtpResult{Phone: otp.Phone, Token: otp.VerifyToken}, nil
}

// checkConfirmStep validates the verify token and the longer confirm window.
// The lockout from a prior bad day persists until a fresh OTP cycle.
func (s *OtpServiceImpl) checkConfirmStep(ctx context.Context, phone, verifyToken string) (*domain.OtpRequest, error) {
	otp, err := s.otpRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	if otp.Error == maxDailyErrors {
		return nil, domain.ErrOtpFlowLocked
	}

	// An empty stored token means no confirm step is pending, so nothing
	// the caller presents can match it.
	if otp.VerifyToken == "" || otp.VerifyToken != verifyToken {
		otp.Error = maxDailyErrors
		if err := s.otpRepo.Update(ctx, otp); err != nil {
			return nil, err
		}
		return nil, domain.ErrInvalidToken
	}

	if time.Since(otp.UpdatedAt) > s.confirmWindow {
		return nil, domain.ErrOtpExpired
	}

	return otp, nil
}

func (s *OtpServiceImpl) ensureNotRegistered(ctx context.Context, phone string) error {
	_, err := s.userRepo.FindByPhone(ctx, phone)
	if err == nil {
		return domain.ErrAlreadyRegistered
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	return nil
}
