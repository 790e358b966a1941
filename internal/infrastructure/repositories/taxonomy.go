package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Connect-or-create for taxonomy rows: insert with DoNothing on the unique
// name constraint, then re-fetch. Two concurrent creates of the same name
// resolve through the constraint; the loser reads the winner's row.

func upsertCategory(tx *gorm.DB, name string) (*DBCategory, error) {
	row := DBCategory{Name: name}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		if err := tx.Where("name = ?", name).First(&row).Error; err != nil {
			return nil, err
		}
	}
	return &row, nil
}

func upsertType(tx *gorm.DB, name string) (*DBType, error) {
	row := DBType{Name: name}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		if err := tx.Where("name = ?", name).First(&row).Error; err != nil {
			return nil, err
		}
	}
	return &row, nil
}

func upsertTags(tx *gorm.DB, names []string) ([]DBTag, error) {
	tags := make([]DBTag, 0, len(names))
	for _, name := range names {
		row := DBTag{Name: name}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&row).Error
		if err != nil {
			return nil, err
		}
		if row.ID == 0 {
			if err := tx.Where("name = ?", name).First(&row).Error; err != nil {
				return nil, err
			}
		}
		tags = append(tags, row)
	}
	return tags, nil
}
