package inbox

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message statuses.
const (
	StatusNew       = "new"
	StatusProcessed = "processed"
	StatusApproved  = "approved"
)

// Message is one entry in the mock mail inbox. The attachment key points
// into attachment storage and holds the source checklist document.
type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	From           string    `gorm:"type:varchar(255);column:from_address" json:"from"`
	Subject        string    `gorm:"type:varchar(512)" json:"subject"`
	Snippet        string    `gorm:"type:text" json:"snippet"`
	Status         string    `gorm:"type:varchar(20);not null;default:'new'" json:"status"`
	AttachmentKey  string    `gorm:"type:varchar(255)" json:"attachmentKey"`
	AttachmentName string    `gorm:"type:varchar(255)" json:"attachmentName"`
	ReceivedAt     time.Time `json:"receivedAt"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"-"`
}

// TableName returns the table name for Message
func (Message) TableName() string {
	return "inbox_messages"
}

// ListResult is one page of inbox messages.
type ListResult struct {
	TotalCount int64     `json:"totalCount"`
	Messages   []Message `json:"messages"`
	Offset     int       `json:"offset"`
	Limit      int       `json:"limit"`
}

// Store handles database operations for inbox messages.
type Store struct {
	db *gorm.DB
}

// NewStore creates an inbox store and migrates its schema.
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Message{}); err != nil {
		return nil, fmt.Errorf("failed to migrate inbox schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Create inserts a new message.
func (s *Store) Create(ctx context.Context, msg *Message) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	if msg.Status == "" {
		msg.Status = StatusNew
	}
	if msg.ReceivedAt.IsZero() {
		msg.ReceivedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("failed to create inbox message: %w", err)
	}
	return nil
}

// Get retrieves a message by ID.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*Message, error) {
	var msg Message
	if err := s.db.WithContext(ctx).First(&msg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// List returns one page of messages, newest first.
func (s *Store) List(ctx context.Context, offset, limit int) (*ListResult, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&Message{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count inbox messages: %w", err)
	}

	var messages []Message
	err := s.db.WithContext(ctx).
		Order("received_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list inbox messages: %w", err)
	}

	return &ListResult{
		TotalCount: total,
		Messages:   messages,
		Offset:     offset,
		Limit:      limit,
	}, nil
}

// UpdateStatus moves a message to the given status.
func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := s.db.WithContext(ctx).Model(&Message{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update message status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
