package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/you/blogsvc/domain"
)

// OtpRepositoryImpl implements domain.OtpRepository using GORM.
type OtpRepositoryImpl struct {
	db *gorm.DB
}

// NewOtpRepository creates a new OTP repository.
func NewOtpRepository(db *gorm.DB) domain.OtpRepository {
	return &OtpRepositoryImpl{db: db}
}

// Create implements domain.OtpRepository.
func (r *OtpRepositoryImpl) Create(ctx context.Context, otp *domain.OtpRequest) error {
	dbOtp := otpToDB(otp)
	if err := r.db.WithContext(ctx).Create(dbOtp).Error; err != nil {
		return err
	}
	otp.ID = dbOtp.ID
	otp.CreatedAt = dbOtp.CreatedAt
	otp.UpdatedAt = dbOtp.UpdatedAt
	return nil
}

// FindByPhone implements domain.OtpRepository.
func (r *OtpRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.OtpRequest, error) {
	var dbOtp DBOtp
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&dbOtp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOtpNotFound
		}
		return nil, err
	}
	return otpToDomain(&dbOtp), nil
}

// Update implements domain.OtpRepository. Save touches UpdatedAt; the expiry
// windows and daily counters both key off that column.
func (r *OtpRepositoryImpl) Update(ctx context.Context, otp *domain.OtpRequest) error {
	dbOtp := otpToDB(otp)
	if err := r.db.WithContext(ctx).Save(dbOtp).Error; err != nil {
		return err
	}
	otp.UpdatedAt = dbOtp.UpdatedAt
	return nil
}

func otpToDB(otp *domain.OtpRequest) *DBOtp {
	return &DBOtp{
		ID:            otp.ID,
		Phone:         otp.Phone,
		OtpHash:       otp.OtpHash,
		RememberToken: otp.RememberToken,
		VerifyToken:   otp.VerifyToken,
		Count:         otp.Count,
		Error:         otp.Error,
		CreatedAt:     otp.CreatedAt,
	}
}

func otpToDomain(dbOtp *DBOtp) *domain.OtpRequest {
	return &domain.OtpRequest{
		ID:            dbOtp.ID,
		Phone:         dbOtp.Phone,
		OtpHash:       dbOtp.OtpHash,
		RememberToken: dbOtp.RememberToken,
		VerifyToken:   dbOtp.VerifyToken,
		Count:         dbOtp.Count,
		Error:         dbOtp.Error,
		CreatedAt:     dbOtp.CreatedAt,
		UpdatedAt:     dbOtp.UpdatedAt,
	}
}
