package service

import (
	"gorm.io/gorm"

	"newscred/internal/model"
)

// SavedService manages user-saved articles. URL is the identity key:
// saving the same URL twice is a no-op reported to the caller.
type SavedService struct {
	db *gorm.DB
}

func NewSavedService(db *gorm.DB) *SavedService {
	return &SavedService{db: db}
}

// Save stores the article and reports whether it was newly created.
func (s *SavedService) Save(article *model.SavedArticle) (bool, error) {
	result := s.db.Where("url = ?", article.URL).FirstOrCreate(article)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// All returns every saved article, newest first.
func (s *SavedService) All() ([]model.SavedArticle, error) {
	var articles []model.SavedArticle
	err := s.db.Order("created_at DESC").Find(&articles).Error
	return articles, err
}

// Delete removes the saved article with the given URL and reports
// whether anything was deleted.
func (s *SavedService) Delete(url string) (bool, error) {
	result := s.db.Where("url = ?", url).Delete(&model.SavedArticle{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
