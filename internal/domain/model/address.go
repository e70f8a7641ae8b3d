package model

import "time"

// 配送先住所
type Address struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	//国
	Country string `gorm:"type:varchar(100);not null" json:"country"`

	//宛名
	FullName string `gorm:"type:varchar(255);not null" json:"full_name"`

	//電話番号
	PhoneNumber string `gorm:"type:varchar(30);not null" json:"phone_number"`

	//郵便番号
	Pincode string `gorm:"type:varchar(20);not null" json:"pincode"`

	//地区・町名など
	Area string `gorm:"type:varchar(255);not null" json:"area"`

	//目印
	Landmark string `gorm:"type:varchar(255);not null" json:"landmark"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
