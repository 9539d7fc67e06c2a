package postgres

import (
	"gorm.io/gorm"

	"github.com/mindgraphix/platform/internal/contact"
	contactDatamodel "github.com/mindgraphix/platform/internal/core/datamodel/contact"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) contact.RepositoryAPI {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) GetAll(skip, limit int) ([]*contactDatamodel.Message, error) {
	var messages []*contactDatamodel.Message
	err := r.db.Order("created_at DESC").Offset(skip).Limit(limit).Find(&messages).Error
	return messages, err
}

func (r *MessageRepository) GetByID(id int64) (*contactDatamodel.Message, error) {
	var m contactDatamodel.Message
	err := r.db.Where("id = ?", id).First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *MessageRepository) Create(m *contactDatamodel.Message) error {
	return r.db.Create(m).Error
}
