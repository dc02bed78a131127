package models

import "time"

// Формат даты публикации поста: "October 17, 2026"
const PostDateLayout = "January 02, 2006"

type User struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	Email     string    `gorm:"type:varchar(250);unique;not null" json:"email"`
	Name      string    `gorm:"type:varchar(250);not null" json:"name"`
	Password  string    `gorm:"type:varchar(250);not null" json:"-"` // только хеш
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

type Post struct {
	ID       uint   `gorm:"primary_key" json:"id"`
	Title    string `gorm:"type:varchar(250);unique;not null" json:"title"`
	Subtitle string `gorm:"type:varchar(250);not null" json:"subtitle"`
	Date     string `gorm:"type:varchar(250);not null" json:"date"`
	Body     string `gorm:"type:text;not null" json:"body"`
	ImgURL   string `gorm:"column:img_url;type:varchar(250);not null" json:"img_url"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
}

func (Post) TableName() string {
	return "blog_posts"
}

type Comment struct {
	ID     uint   `gorm:"primary_key" json:"id"`
	Text   string `gorm:"column:comment;type:text;not null" json:"text"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	PostID uint   `gorm:"not null;index" json:"post_id"`
}

func (Comment) TableName() string {
	return "comments"
}

// Session - серверная запись о входе пользователя, ID попадает в jti токена
type Session struct {
	ID        string    `gorm:"primary_key;type:varchar(64)"`
	UserID    uint      `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
}

func (Session) TableName() string {
	return "sessions"
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
