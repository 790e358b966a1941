package repositories

import "time"

// Database models with GORM tags. Domain types stay persistence-free; every
// repository maps between the two.

type DBUser struct {
	ID              uint   `gorm:"primaryKey"`
	Phone           string `gorm:"uniqueIndex;size:32"`
	PasswordHash    string `gorm:"column:password;size:128"`
	Role            string `gorm:"size:32;default:USER"`
	Status          string `gorm:"size:16;default:ACTIVE"`
	ErrorLoginCount int
	RefreshToken    string `gorm:"size:1024"`
	CreatedAt       time.Time
	UpdatedAt       time.Time `gorm:"index"`
}

func (DBUser) TableName() string { return "users" }

type DBOtp struct {
	ID            uint   `gorm:"primaryKey"`
	Phone         string `gorm:"uniqueIndex;size:32"`
	OtpHash       string `gorm:"column:otp;size:128"`
	RememberToken string `gorm:"size:128"`
	VerifyToken   string `gorm:"size:128"`
	Count         int
	Error         int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (DBOtp) TableName() string { return "otps" }

type DBCategory struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:64"`
}

func (DBCategory) TableName() string { return "categories" }

type DBType struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:64"`
}

func (DBType) TableName() string { return "types" }

type DBTag struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:64"`
}

func (DBTag) TableName() string { return "tags" }

type DBPost struct {
	ID         uint   `gorm:"primaryKey"`
	Title      string `gorm:"size:255"`
	Content    string `gorm:"type:text"`
	Body       string `gorm:"type:text"`
	Image      string `gorm:"size:255"`
	AuthorID   uint   `gorm:"index"`
	CategoryID uint
	Category   DBCategory
	TypeID     uint
	Type       DBType
	Tags       []DBTag `gorm:"many2many:post_tags"`
	CreatedAt  time.Time
	UpdatedAt  time.Time `gorm:"index"`
}

func (DBPost) TableName() string { return "posts" }

type DBProduct struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:255"`
	Description string `gorm:"type:text"`
	Price       float64
	Discount    float64
	Inventory   int
	Status      string `gorm:"size:16;default:ACTIVE"`
	CategoryID  uint
	Category    DBCategory
	TypeID      uint
	Type        DBType
	Tags        []DBTag          `gorm:"many2many:product_tags"`
	Images      []DBProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (DBProduct) TableName() string { return "products" }

type DBProductImage struct {
	ID        uint `gorm:"primaryKey"`
	ProductID uint `gorm:"index"`
	Path      string `gorm:"size:255"`
}

func (DBProductImage) TableName() string { return "product_images" }

type DBSetting struct {
	ID    uint   `gorm:"primaryKey"`
	Key   string `gorm:"uniqueIndex;size:64"`
	Value string `gorm:"size:255"`
}

func (DBSetting) TableName() string { return "settings" }
